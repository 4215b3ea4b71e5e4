package ml

import (
	"fmt"

	"github.com/urbanmobility/analytics-backend-go/internal/dataset"
)

// PredictRow applies the forest to the first row of the input frame,
// selecting exactly the named feature columns in order. Missing columns
// fail with the frame's lookup error.
func PredictRow(f *Forest, features []string, frame *dataset.Frame) (float64, error) {
	if frame.Len() == 0 {
		return 0, fmt.Errorf("input frame is empty")
	}
	x, err := frame.Row(0, features)
	if err != nil {
		return 0, err
	}
	return f.Predict(x)
}
