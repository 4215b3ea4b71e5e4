// Package training implements the offline fare-model training job: pull
// projected rows from the store, clean them, fit the forest, evaluate on a
// holdout split and persist the artifact.
package training

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/urbanmobility/analytics-backend-go/internal/database"
	"github.com/urbanmobility/analytics-backend-go/internal/dataset"
	"github.com/urbanmobility/analytics-backend-go/internal/ml"
	"github.com/urbanmobility/analytics-backend-go/internal/models"
	"github.com/urbanmobility/analytics-backend-go/internal/modelstore"
)

// Features is the ordered model input column list. The serving path selects
// exactly these columns in this order.
var Features = []string{
	"distance_km",
	"duration_min",
	"hour",
	"day_of_week",
	"surge_multiplier",
}

// Target is the regression target column.
const Target = "fare"

// Config holds the training job parameters.
type Config struct {
	OutputPath string
	Limit      int64 // max rows pulled from the store, 0 = unlimited
	Sample     int   // optional training-row cap after cleaning, 0 = all
	TestSize   float64
	Estimators int
	SkipMongo  bool
	Seed       int64
}

// Result reports what a training run produced.
type Result struct {
	Bundle    *modelstore.Bundle
	RowsUsed  int
	TrainRows int
	TestRows  int
	Elapsed   time.Duration
}

// Run executes the full training pipeline against the store. It fails
// before writing anything when no usable rows remain after dropping
// incomplete records.
func Run(ctx context.Context, db *database.Mongo, cfg Config) (*Result, error) {
	columns := append(append([]string{}, Features...), Target)
	log.Printf("Loading training data (limit=%d)...", cfg.Limit)
	frame, err := dataset.LoadFromMongo(ctx, db.Trips(), cfg.Limit, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to load training data: %w", err)
	}
	log.Printf("Loaded %d rows.", frame.Len())

	var store *modelstore.Store
	if !cfg.SkipMongo {
		store, err = modelstore.NewStore(db)
		if err != nil {
			return nil, err
		}
	}
	return RunOnFrame(ctx, frame, store, cfg)
}

// RunOnFrame trains on an already loaded frame. A nil store together with
// SkipMongo confines the artifact to the output file.
func RunOnFrame(ctx context.Context, frame *dataset.Frame, store *modelstore.Store, cfg Config) (*Result, error) {
	start := time.Now()

	X, y, err := cleanRows(frame)
	if err != nil {
		return nil, err
	}
	if len(X) == 0 {
		return nil, fmt.Errorf("no usable rows after dropping incomplete records, check the trips collection")
	}

	if cfg.Sample > 0 && len(X) > cfg.Sample {
		X, y = ml.Subsample(X, y, cfg.Sample, cfg.Seed)
		log.Printf("Sampled %d rows for training.", cfg.Sample)
	}

	XTrain, XTest, yTrain, yTest, err := ml.TrainTestSplit(X, y, cfg.TestSize, cfg.Seed)
	if err != nil {
		return nil, err
	}

	log.Printf("Fitting forest (%d estimators, %d train rows)...", cfg.Estimators, len(XTrain))
	forest, err := ml.FitForest(XTrain, yTrain, ml.ForestConfig{
		Estimators: cfg.Estimators,
		Seed:       cfg.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fit forest: %w", err)
	}

	predicted, err := forest.PredictBatch(XTest)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate on holdout: %w", err)
	}
	metrics := models.Metrics{
		RMSE: ml.RMSE(predicted, yTest),
		R2:   ml.R2(predicted, yTest),
	}

	bundle := &modelstore.Bundle{
		Model:    forest,
		Features: Features,
		Metrics:  metrics,
	}

	log.Printf("Writing model file %s...", cfg.OutputPath)
	if err := modelstore.SaveToFile(cfg.OutputPath, bundle); err != nil {
		return nil, err
	}

	if !cfg.SkipMongo && store != nil {
		log.Println("Saving model to Mongo (GridFS)...")
		if err := store.Save(ctx, bundle); err != nil {
			return nil, err
		}
	} else {
		log.Println("Skipping Mongo write.")
	}

	return &Result{
		Bundle:    bundle,
		RowsUsed:  len(X),
		TrainRows: len(XTrain),
		TestRows:  len(XTest),
		Elapsed:   time.Since(start),
	}, nil
}

// cleanRows materializes the feature matrix and target vector, dropping any
// row with a missing required value.
func cleanRows(frame *dataset.Frame) ([][]float64, []float64, error) {
	n := frame.Len()
	columns := append(append([]string{}, Features...), Target)

	values := make([][]float64, len(columns))
	masks := make([][]bool, len(columns))
	for j, name := range columns {
		v, mask, err := frame.Floats(name)
		if err != nil {
			return nil, nil, fmt.Errorf("missing training column: %w", err)
		}
		values[j] = v
		masks[j] = mask
	}

	var X [][]float64
	var y []float64
	for i := 0; i < n; i++ {
		complete := true
		for j := range columns {
			if !masks[j][i] {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		row := make([]float64, len(Features))
		for j := range Features {
			row[j] = values[j][i]
		}
		X = append(X, row)
		y = append(y, values[len(columns)-1][i])
	}
	return X, y, nil
}
