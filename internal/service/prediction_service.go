package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/urbanmobility/analytics-backend-go/internal/dataset"
	"github.com/urbanmobility/analytics-backend-go/internal/ml"
	"github.com/urbanmobility/analytics-backend-go/internal/models"
	"github.com/urbanmobility/analytics-backend-go/internal/modelstore"
)

// ErrNoModel marks the recognized "no trained model yet" state. Handlers
// turn it into guidance to run the training job, not into a failure.
var ErrNoModel = errors.New("no trained model available, run the train command first")

// PredictionService serves fare predictions from the latest available model,
// preferring the local model file over the database artifact. A resolved
// bundle is kept for the process lifetime; while no model exists the store
// is re-probed on each request so a fresh training run is picked up without
// a restart.
type PredictionService struct {
	modelPath string
	store     *modelstore.Store

	mu     sync.Mutex
	bundle *modelstore.Bundle
}

// NewPredictionService creates a prediction service. A nil store disables
// the database fallback, leaving file loading only.
func NewPredictionService(modelPath string, store *modelstore.Store) *PredictionService {
	return &PredictionService{modelPath: modelPath, store: store}
}

// Model returns the served bundle, or nil when none is available.
func (s *PredictionService) Model(ctx context.Context) (*modelstore.Bundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bundle != nil {
		return s.bundle, nil
	}

	bundle, err := modelstore.Load(ctx, s.modelPath, s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	s.bundle = bundle
	return bundle, nil
}

// PredictFare builds a single-row input frame from the submitted features
// and returns the model's scalar prediction.
func (s *PredictionService) PredictFare(ctx context.Context, input models.PredictionInput) (float64, error) {
	bundle, err := s.Model(ctx)
	if err != nil {
		return 0, err
	}
	if bundle == nil {
		return 0, ErrNoModel
	}

	frame, err := inputFrame(input)
	if err != nil {
		return 0, err
	}
	return ml.PredictRow(bundle.Model, bundle.Features, frame)
}

func inputFrame(input models.PredictionInput) (*dataset.Frame, error) {
	frame := dataset.NewFrame()
	cols := []struct {
		name  string
		value float64
	}{
		{"distance_km", input.DistanceKM},
		{"duration_min", input.DurationMin},
		{"hour", float64(input.Hour)},
		{"day_of_week", float64(input.DayOfWeek)},
		{"surge_multiplier", input.SurgeMultiplier},
	}
	for _, c := range cols {
		if err := frame.AddFloats(c.name, []float64{c.value}, nil); err != nil {
			return nil, err
		}
	}
	return frame, nil
}
