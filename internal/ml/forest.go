// Package ml implements the fare regression model: a forest of bagged
// regression trees with deterministic seeding, plus the train/test split and
// evaluation metrics used by the training job.
package ml

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"
)

const (
	defaultMaxDepth = 16
	defaultMinLeaf  = 5
)

// ForestConfig controls forest training.
type ForestConfig struct {
	Estimators int
	MaxDepth   int
	MinLeaf    int
	Seed       int64
}

// Forest is an ensemble of bagged regression trees. Predictions average the
// per-tree outputs. Fields are exported for gob encoding.
type Forest struct {
	Trees      []*Tree
	NumFeature int
}

// FitForest trains a forest on X (rows x features) and y. Each tree is fit
// on a bootstrap sample drawn from a per-tree generator derived from the
// configured seed, so results are reproducible regardless of how many
// worker goroutines run the fitting.
func FitForest(X [][]float64, y []float64, cfg ForestConfig) (*Forest, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("no training rows")
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("feature rows (%d) and targets (%d) differ", len(X), len(y))
	}
	if cfg.Estimators <= 0 {
		return nil, fmt.Errorf("estimator count must be positive, got %d", cfg.Estimators)
	}
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	minLeaf := cfg.MinLeaf
	if minLeaf <= 0 {
		minLeaf = defaultMinLeaf
	}

	forest := &Forest{
		Trees:      make([]*Tree, cfg.Estimators),
		NumFeature: len(X[0]),
	}

	workers := runtime.NumCPU()
	if workers > cfg.Estimators {
		workers = cfg.Estimators
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				rng := rand.New(rand.NewSource(cfg.Seed + int64(t)))
				idx := bootstrapSample(rng, len(X))
				tree := newTree(maxDepth, minLeaf)
				tree.fit(X, y, idx)
				forest.Trees[t] = tree
			}
		}()
	}
	for t := 0; t < cfg.Estimators; t++ {
		jobs <- t
	}
	close(jobs)
	wg.Wait()

	return forest, nil
}

// Predict returns the forest prediction for one input row.
func (f *Forest) Predict(x []float64) (float64, error) {
	if len(x) != f.NumFeature {
		return 0, fmt.Errorf("expected %d features, got %d", f.NumFeature, len(x))
	}
	var sum float64
	for _, tree := range f.Trees {
		sum += tree.predict(x)
	}
	return sum / float64(len(f.Trees)), nil
}

// PredictBatch returns predictions for every row of X.
func (f *Forest) PredictBatch(X [][]float64) ([]float64, error) {
	out := make([]float64, len(X))
	for i, x := range X {
		p, err := f.Predict(x)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func bootstrapSample(rng *rand.Rand, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.Intn(n)
	}
	return idx
}
