package ml

import (
	"math"
	"testing"
)

func TestRMSE(t *testing.T) {
	tests := []struct {
		name      string
		predicted []float64
		actual    []float64
		want      float64
	}{
		{"perfect", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"constant offset", []float64{2, 3, 4}, []float64{1, 2, 3}, 1},
		{"mixed", []float64{0, 0}, []float64{3, 4}, math.Sqrt(12.5)},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMSE(tt.predicted, tt.actual); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RMSE = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestR2(t *testing.T) {
	actual := []float64{1, 2, 3, 4, 5}
	if got := R2(actual, actual); math.Abs(got-1) > 1e-9 {
		t.Errorf("perfect predictions: R2 = %v, want 1", got)
	}

	mean := []float64{3, 3, 3, 3, 3}
	if got := R2(mean, actual); math.Abs(got) > 1e-9 {
		t.Errorf("mean predictor: R2 = %v, want 0", got)
	}
}
