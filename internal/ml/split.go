package ml

import (
	"fmt"
	"math"
	"math/rand"
)

// TrainTestSplit shuffles rows with the given seed and partitions them by
// the test fraction. Repeated calls with the same seed and inputs produce
// identical row membership.
func TrainTestSplit(X [][]float64, y []float64, testSize float64, seed int64) (XTrain, XTest [][]float64, yTrain, yTest []float64, err error) {
	if len(X) != len(y) {
		return nil, nil, nil, nil, fmt.Errorf("feature rows (%d) and targets (%d) differ", len(X), len(y))
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, fmt.Errorf("test size must be in (0, 1), got %g", testSize)
	}

	n := len(X)
	nTest := int(math.Ceil(float64(n) * testSize))
	if nTest >= n {
		nTest = n - 1
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	for _, i := range perm[:nTest] {
		XTest = append(XTest, X[i])
		yTest = append(yTest, y[i])
	}
	for _, i := range perm[nTest:] {
		XTrain = append(XTrain, X[i])
		yTrain = append(yTrain, y[i])
	}
	return XTrain, XTest, yTrain, yTest, nil
}

// Subsample picks size rows without replacement using the given seed. When
// size is zero or not smaller than the input, the input is returned as-is.
func Subsample(X [][]float64, y []float64, size int, seed int64) ([][]float64, []float64) {
	if size <= 0 || size >= len(X) {
		return X, y
	}
	perm := rand.New(rand.NewSource(seed)).Perm(len(X))
	outX := make([][]float64, 0, size)
	outY := make([]float64, 0, size)
	for _, i := range perm[:size] {
		outX = append(outX, X[i])
		outY = append(outY, y[i])
	}
	return outX, outY
}
