package main

import (
	"context"
	"log"

	"github.com/urbanmobility/analytics-backend-go/internal/api"
	"github.com/urbanmobility/analytics-backend-go/internal/cache"
	"github.com/urbanmobility/analytics-backend-go/internal/config"
	"github.com/urbanmobility/analytics-backend-go/internal/database"
	"github.com/urbanmobility/analytics-backend-go/internal/handler"
	"github.com/urbanmobility/analytics-backend-go/internal/modelstore"
	"github.com/urbanmobility/analytics-backend-go/internal/service"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	ctx := context.Background()

	// The server stays up without the store: analytics is disabled with a
	// warning, fare prediction from the model file keeps working.
	var db *database.Mongo
	if err := cfg.RequireMongo(); err != nil {
		log.Printf("Warning: %v. Analytics disabled.", err)
	} else {
		db, err = database.Connect(ctx, database.Config{
			URI:            cfg.MongoURI,
			DBName:         cfg.DBName,
			CollectionName: cfg.CollectionName,
		})
		if err != nil {
			log.Printf("Warning: store unreachable: %v. Analytics disabled.", err)
			db = nil
		}
	}

	var analyticsHandler *handler.AnalyticsHandler
	var store *modelstore.Store
	var ping func(ctx context.Context) error

	if db != nil {
		defer db.Close(ctx)
		ping = db.Ping

		analyticsService := service.NewAnalyticsService(db, cache.New(cfg.CacheTTL))
		analyticsHandler = handler.NewAnalyticsHandler(analyticsService)

		store, err = modelstore.NewStore(db)
		if err != nil {
			log.Printf("Warning: model store unavailable: %v", err)
		}
	}

	predictionService := service.NewPredictionService(cfg.ModelPath, store)
	predictionHandler := handler.NewPredictionHandler(predictionService)

	router := api.SetupRouter(analyticsHandler, predictionHandler, ping)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
