// Command import loads a generated trip CSV into the Mongo trips
// collection, replacing whatever is there. Records are inserted in batches.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/urbanmobility/analytics-backend-go/internal/config"
	"github.com/urbanmobility/analytics-backend-go/internal/database"
	"github.com/urbanmobility/analytics-backend-go/internal/models"
)

const batchSize = 5000

func main() {
	input := flag.String("input", "data/urban_mobility_trips.csv", "input CSV path")
	flag.Parse()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if err := cfg.RequireMongo(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, database.Config{
		URI:            cfg.MongoURI,
		DBName:         cfg.DBName,
		CollectionName: cfg.CollectionName,
	})
	if err != nil {
		log.Fatal("Failed to connect to store:", err)
	}
	defer db.Close(ctx)

	total, err := importCSV(ctx, db, *input)
	if err != nil {
		log.Fatal("Import failed: ", err)
	}
	log.Printf("Imported %d trips into %s.%s", total, cfg.DBName, cfg.CollectionName)
}

func importCSV(ctx context.Context, db *database.Mongo, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s (run the generate command first): %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	// Bulk replacement: the collection is rebuilt from scratch.
	if _, err := db.Trips().DeleteMany(ctx, bson.M{}); err != nil {
		return 0, fmt.Errorf("failed to clear trips collection: %w", err)
	}

	var batch []interface{}
	total := 0
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		trip, err := parseTrip(record, index)
		if err != nil {
			return total, fmt.Errorf("line %d: %w", line, err)
		}
		batch = append(batch, trip)

		if len(batch) >= batchSize {
			if err := insertBatch(ctx, db, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := insertBatch(ctx, db, batch); err != nil {
			return total, err
		}
		total += len(batch)
	}
	return total, nil
}

func insertBatch(ctx context.Context, db *database.Mongo, batch []interface{}) error {
	if _, err := db.Trips().InsertMany(ctx, batch); err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}
	return nil
}

func parseTrip(record []string, index map[string]int) (models.Trip, error) {
	get := func(name string) (string, error) {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return "", fmt.Errorf("missing column %q", name)
		}
		return record[i], nil
	}
	var trip models.Trip
	var firstErr error

	str := func(name string) string {
		v, err := get(name)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return v
	}
	f64 := func(name string) float64 {
		v, err := strconv.ParseFloat(str(name), 64)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("column %q: %w", name, err)
		}
		return v
	}
	num := func(name string) int {
		v, err := strconv.Atoi(str(name))
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("column %q: %w", name, err)
		}
		return v
	}

	pickup, err := time.Parse(time.RFC3339, str("pickup_time"))
	if err != nil && firstErr == nil {
		firstErr = fmt.Errorf("column \"pickup_time\": %w", err)
	}

	trip = models.Trip{
		PickupTime:         pickup,
		PickupZone:         str("pickup_zone"),
		DropoffZone:        str("dropoff_zone"),
		DistanceKM:         f64("distance_km"),
		DurationMin:        f64("duration_min"),
		VehicleType:        str("vehicle_type"),
		PaymentMethod:      str("payment_method"),
		WeatherCondition:   str("weather_condition"),
		Hour:               num("hour"),
		DayOfWeek:          num("day_of_week"),
		IsPeakHour:         num("is_peak_hour"),
		ZoneDemandLevel:    num("zone_demand_level"),
		TripDistanceBucket: num("trip_distance_bucket"),
		SurgeMultiplier:    f64("surge_multiplier"),
		Fare:               f64("fare"),
	}
	return trip, firstErr
}
