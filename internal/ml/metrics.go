package ml

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// RMSE computes the root mean squared error between predictions and truth.
func RMSE(predicted, actual []float64) float64 {
	if len(predicted) == 0 {
		return 0
	}
	var sum float64
	for i, p := range predicted {
		d := p - actual[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(predicted)))
}

// R2 computes the coefficient of determination on the holdout set.
func R2(predicted, actual []float64) float64 {
	if len(predicted) == 0 {
		return 0
	}
	return stat.RSquaredFrom(predicted, actual, nil)
}
