package models

// ZoneTrips is one row of the trips-by-zone summary.
type ZoneTrips struct {
	Zone  string `json:"zone"`
	Trips int    `json:"trips"`
}

// ZoneRevenue is one row of the revenue-by-zone summary.
type ZoneRevenue struct {
	Zone    string  `json:"zone"`
	Revenue float64 `json:"revenue"`
}

// HourTrips is one row of the trips-by-hour summary, ordered by hour.
type HourTrips struct {
	Hour  int `json:"hour"`
	Trips int `json:"trips"`
}

// VehicleFare is one row of the average-fare-by-vehicle summary.
type VehicleFare struct {
	VehicleType string  `json:"vehicle_type"`
	AvgFare     float64 `json:"avg_fare"`
}

// SurgeFare is one row of the surge-vs-fare summary. The grouping key is the
// raw surge value as stored, not a bucket.
type SurgeFare struct {
	SurgeMultiplier float64 `json:"surge_multiplier"`
	AvgFare         float64 `json:"avg_fare"`
}

// WeatherImpact is one row of the weather summary with trip count and
// average fare combined.
type WeatherImpact struct {
	WeatherCondition string  `json:"weather_condition"`
	Trips            int     `json:"trips"`
	AvgFare          float64 `json:"avg_fare"`
}

// Dashboard bundles all six analytics summaries for one request.
type Dashboard struct {
	TripsByZone      []ZoneTrips     `json:"trips_by_zone"`
	RevenueByZone    []ZoneRevenue   `json:"revenue_by_zone"`
	TripsByHour      []HourTrips     `json:"trips_by_hour"`
	AvgFareByVehicle []VehicleFare   `json:"avg_fare_by_vehicle"`
	SurgeVsFare      []SurgeFare     `json:"surge_vs_fare"`
	WeatherImpact    []WeatherImpact `json:"weather_impact"`
}

// PredictionInput is the feature set submitted to the predict endpoint.
type PredictionInput struct {
	DistanceKM      float64 `json:"distance_km" binding:"required"`
	DurationMin     float64 `json:"duration_min" binding:"required"`
	Hour            int     `json:"hour"`
	DayOfWeek       int     `json:"day_of_week"`
	SurgeMultiplier float64 `json:"surge_multiplier" binding:"required"`
}
