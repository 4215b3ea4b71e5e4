// Command generate writes a synthetic ride-hailing trip dataset to CSV.
// Generation is fully seeded, so the same flags always produce the same
// file. Import it with the import command.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	zones = []string{
		"District_1", "District_3", "District_5", "Binh_Thanh",
		"Phu_Nhuan", "District_10", "District_7", "Thu_Duc",
	}
	vehicleTypes   = []string{"bike", "car", "suv"}
	vehicleWeights = []float64{0.5, 0.4, 0.1}
	paymentMethods = []string{"cash", "card", "wallet"}
	weathers       = []string{"clear", "rain", "heavy_rain"}
	weatherWeights = []float64{0.6, 0.3, 0.1}

	peakHours = map[int]bool{7: true, 8: true, 9: true, 16: true, 17: true, 18: true, 19: true}
)

var header = []string{
	"pickup_time", "pickup_zone", "dropoff_zone", "distance_km", "duration_min",
	"vehicle_type", "payment_method", "weather_condition", "hour", "day_of_week",
	"is_peak_hour", "zone_demand_level", "trip_distance_bucket", "surge_multiplier", "fare",
}

func main() {
	out := flag.String("output", "data/urban_mobility_trips.csv", "output CSV path")
	rows := flag.Int("rows", 300000, "number of trips to generate")
	seed := flag.Uint64("seed", 42, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	// Trip durations follow a gamma distribution (shape 2.5, scale 6 min).
	gamma := distuv.Gamma{Alpha: 2.5, Beta: 1.0 / 6.0, Src: rng}

	demandLevels := make(map[string]int, len(zones))
	for _, zone := range zones {
		demandLevels[zone] = 1 + rng.Intn(3)
	}

	if err := writeCSV(*out, *rows, rng, gamma, demandLevels); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %d trips to %s", *rows, *out)
}

func writeCSV(path string, rows int, rng *rand.Rand, gamma distuv.Gamma, demandLevels map[string]int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return err
	}

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		pickup := start.Add(time.Duration(i) * time.Second)

		duration := round(gamma.Rand(), 1)
		distance := round(duration*uniform(rng, 0.3, 0.5), 2)

		pickupZone := zones[rng.Intn(len(zones))]
		weather := weightedChoice(rng, weathers, weatherWeights)

		hour := pickup.Hour()
		dow := (int(pickup.Weekday()) + 6) % 7 // Monday = 0
		peak := 0
		if peakHours[hour] {
			peak = 1
		}
		demand := demandLevels[pickupZone]

		surge := 1.0 + float64(demand)/5.0
		if peak == 1 {
			surge += uniform(rng, 0.2, 0.6)
		}
		if weather != "clear" {
			surge += uniform(rng, 0.1, 0.5)
		}
		surge = round(surge, 2)

		fare := math.Round((8000 + distance*12000) * surge)

		record := []string{
			pickup.Format(time.RFC3339),
			pickupZone,
			zones[rng.Intn(len(zones))],
			formatFloat(distance),
			formatFloat(duration),
			weightedChoice(rng, vehicleTypes, vehicleWeights),
			paymentMethods[rng.Intn(len(paymentMethods))],
			weather,
			strconv.Itoa(hour),
			strconv.Itoa(dow),
			strconv.Itoa(peak),
			strconv.Itoa(demand),
			strconv.Itoa(distanceBucket(distance)),
			formatFloat(surge),
			formatFloat(fare),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func distanceBucket(km float64) int {
	switch {
	case km <= 3:
		return 0
	case km <= 7:
		return 1
	case km <= 15:
		return 2
	default:
		return 3
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func weightedChoice(rng *rand.Rand, values []string, weights []float64) string {
	r := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return values[i]
		}
	}
	return values[len(values)-1]
}

func round(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
