// Package analytics provides the group-by summaries behind the dashboard
// charts. Each function is pure: it reads a frame and returns a small
// summary table. Rows with a null grouping key are excluded; keys with no
// matching rows are simply absent (no zero-fill).
package analytics

import (
	"sort"

	"github.com/urbanmobility/analytics-backend-go/internal/dataset"
	"github.com/urbanmobility/analytics-backend-go/internal/models"
)

// fareAgg accumulates per-group counts and fare sums. Trip counts include
// every row whose grouping key is present; fare sums and means only consider
// rows with a valid fare.
type fareAgg struct {
	count     int
	fareCount int
	fareSum   float64
}

func (a *fareAgg) mean() float64 {
	if a.fareCount == 0 {
		return 0
	}
	return a.fareSum / float64(a.fareCount)
}

// TripsByZone counts trips grouped by pickup zone.
func TripsByZone(f *dataset.Frame) ([]models.ZoneTrips, error) {
	groups, err := groupFares(f, "pickup_zone")
	if err != nil {
		return nil, err
	}
	out := make([]models.ZoneTrips, 0, len(groups))
	for zone, agg := range groups {
		out = append(out, models.ZoneTrips{Zone: zone, Trips: agg.count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Zone < out[j].Zone })
	return out, nil
}

// RevenueByZone sums fares grouped by pickup zone.
func RevenueByZone(f *dataset.Frame) ([]models.ZoneRevenue, error) {
	groups, err := groupFares(f, "pickup_zone")
	if err != nil {
		return nil, err
	}
	out := make([]models.ZoneRevenue, 0, len(groups))
	for zone, agg := range groups {
		out = append(out, models.ZoneRevenue{Zone: zone, Revenue: agg.fareSum})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Zone < out[j].Zone })
	return out, nil
}

// TripsByHour counts trips grouped by hour of day, ordered ascending.
func TripsByHour(f *dataset.Frame) ([]models.HourTrips, error) {
	hours, valid, err := f.Ints("hour")
	if err != nil {
		return nil, err
	}
	counts := make(map[int]int)
	for i, h := range hours {
		if !valid[i] {
			continue
		}
		counts[int(h)]++
	}
	out := make([]models.HourTrips, 0, len(counts))
	for h, n := range counts {
		out = append(out, models.HourTrips{Hour: h, Trips: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out, nil
}

// AvgFareByVehicle computes the mean fare grouped by vehicle type.
func AvgFareByVehicle(f *dataset.Frame) ([]models.VehicleFare, error) {
	groups, err := groupFares(f, "vehicle_type")
	if err != nil {
		return nil, err
	}
	out := make([]models.VehicleFare, 0, len(groups))
	for vehicle, agg := range groups {
		out = append(out, models.VehicleFare{
			VehicleType: vehicle,
			AvgFare:     agg.mean(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VehicleType < out[j].VehicleType })
	return out, nil
}

// SurgeVsFare computes the mean fare grouped by the raw surge multiplier
// value. Surge values are generated rounded to two decimals, so grouping on
// the float itself yields one row per observed level.
func SurgeVsFare(f *dataset.Frame) ([]models.SurgeFare, error) {
	surges, surgeValid, err := f.Floats("surge_multiplier")
	if err != nil {
		return nil, err
	}
	fares, fareValid, err := f.Floats("fare")
	if err != nil {
		return nil, err
	}

	groups := make(map[float64]*fareAgg)
	for i, s := range surges {
		if !surgeValid[i] {
			continue
		}
		agg, ok := groups[s]
		if !ok {
			agg = &fareAgg{}
			groups[s] = agg
		}
		agg.count++
		if fareValid[i] {
			agg.fareCount++
			agg.fareSum += fares[i]
		}
	}

	out := make([]models.SurgeFare, 0, len(groups))
	for s, agg := range groups {
		out = append(out, models.SurgeFare{
			SurgeMultiplier: s,
			AvgFare:         agg.mean(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SurgeMultiplier < out[j].SurgeMultiplier })
	return out, nil
}

// WeatherImpact computes trip count and mean fare jointly, grouped by
// weather condition.
func WeatherImpact(f *dataset.Frame) ([]models.WeatherImpact, error) {
	groups, err := groupFares(f, "weather_condition")
	if err != nil {
		return nil, err
	}
	out := make([]models.WeatherImpact, 0, len(groups))
	for weather, agg := range groups {
		out = append(out, models.WeatherImpact{
			WeatherCondition: weather,
			Trips:            agg.count,
			AvgFare:          agg.mean(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeatherCondition < out[j].WeatherCondition })
	return out, nil
}

// groupFares accumulates trip count and fare sum per distinct value of a
// string key column. Rows with a null key are skipped entirely.
func groupFares(f *dataset.Frame, key string) (map[string]*fareAgg, error) {
	keys, keyValid, err := f.Strings(key)
	if err != nil {
		return nil, err
	}
	fares, fareValid, err := f.Floats("fare")
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*fareAgg)
	for i, k := range keys {
		if !keyValid[i] {
			continue
		}
		agg, ok := groups[k]
		if !ok {
			agg = &fareAgg{}
			groups[k] = agg
		}
		agg.count++
		if fareValid[i] {
			agg.fareCount++
			agg.fareSum += fares[i]
		}
	}
	return groups, nil
}
