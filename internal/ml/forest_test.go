package ml

import (
	"math"
	"math/rand"
	"testing"
)

// linearDataset builds rows where y = 3*x0 + 2*x1 with a little noise.
func linearDataset(n int, seed int64) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x0 := rng.Float64() * 10
		x1 := rng.Float64() * 10
		X[i] = []float64{x0, x1}
		y[i] = 3*x0 + 2*x1 + rng.NormFloat64()*0.1
	}
	return X, y
}

func TestFitForestPredictsHeldOut(t *testing.T) {
	X, y := linearDataset(600, 1)
	XTrain, XTest, yTrain, yTest, err := TrainTestSplit(X, y, 0.2, 42)
	if err != nil {
		t.Fatal(err)
	}

	forest, err := FitForest(XTrain, yTrain, ForestConfig{Estimators: 30, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}

	predicted, err := forest.PredictBatch(XTest)
	if err != nil {
		t.Fatal(err)
	}
	if r2 := R2(predicted, yTest); r2 < 0.8 {
		t.Errorf("holdout R2 = %v, want >= 0.8 on a near-linear target", r2)
	}
}

func TestFitForestDeterministic(t *testing.T) {
	X, y := linearDataset(200, 2)
	cfg := ForestConfig{Estimators: 10, Seed: 42}

	f1, err := FitForest(X, y, cfg)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := FitForest(X, y, cfg)
	if err != nil {
		t.Fatal(err)
	}

	probe := []float64{5, 5}
	p1, err := f1.Predict(probe)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := f2.Predict(probe)
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 {
		t.Errorf("same seed gave different predictions: %v vs %v", p1, p2)
	}
}

func TestFitForestValidation(t *testing.T) {
	if _, err := FitForest(nil, nil, ForestConfig{Estimators: 10, Seed: 42}); err == nil {
		t.Error("expected error for empty training set")
	}
	X, y := linearDataset(10, 3)
	if _, err := FitForest(X, y, ForestConfig{Estimators: 0, Seed: 42}); err == nil {
		t.Error("expected error for zero estimators")
	}
	if _, err := FitForest(X, y[:5], ForestConfig{Estimators: 10, Seed: 42}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestPredictFeatureCount(t *testing.T) {
	X, y := linearDataset(50, 4)
	forest, err := FitForest(X, y, ForestConfig{Estimators: 5, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := forest.Predict([]float64{1}); err == nil {
		t.Error("expected error for wrong feature count")
	}
}

func TestTreeFitsConstantTarget(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}}
	y := []float64{7, 7, 7, 7, 7, 7, 7, 7}
	forest, err := FitForest(X, y, ForestConfig{Estimators: 3, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	p, err := forest.Predict([]float64{4.5})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p-7) > 1e-9 {
		t.Errorf("constant target predicted %v, want 7", p)
	}
}
