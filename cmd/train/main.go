// Command train fits the fare regression model on trips pulled from the
// store and saves the artifact to a file and, unless disabled, to Mongo.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/urbanmobility/analytics-backend-go/internal/config"
	"github.com/urbanmobility/analytics-backend-go/internal/database"
	"github.com/urbanmobility/analytics-backend-go/internal/training"
)

func main() {
	output := flag.String("output", "fare_model.gob", "path to save the model file")
	limit := flag.Int64("limit", 100000, "max documents pulled from the store (0 = unlimited)")
	sample := flag.Int("sample", 0, "after cleaning, train on at most N rows (0 = use all)")
	testSize := flag.Float64("test-size", 0.2, "test split fraction")
	estimators := flag.Int("n-estimators", 300, "number of trees in the forest")
	noMongo := flag.Bool("no-mongo", false, "only save to file, skip the Mongo write")
	flag.Parse()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if err := cfg.RequireMongo(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	log.Println("Connecting to Mongo...")
	db, err := database.Connect(ctx, database.Config{
		URI:            cfg.MongoURI,
		DBName:         cfg.DBName,
		CollectionName: cfg.CollectionName,
	})
	if err != nil {
		log.Fatal("Failed to connect to store:", err)
	}
	defer db.Close(ctx)

	result, err := training.Run(ctx, db, training.Config{
		OutputPath: *output,
		Limit:      *limit,
		Sample:     *sample,
		TestSize:   *testSize,
		Estimators: *estimators,
		SkipMongo:  *noMongo,
		Seed:       42,
	})
	if err != nil {
		log.Fatal("Training failed: ", err)
	}

	metrics := result.Bundle.Metrics
	log.Printf("Done in %s. RMSE: %.2f | R2: %.3f | rows used: %d (train %d / test %d)",
		result.Elapsed.Round(time.Millisecond), metrics.RMSE, metrics.R2,
		result.RowsUsed, result.TrainRows, result.TestRows)
}
