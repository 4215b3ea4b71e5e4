package models

import "time"

// Trip is one ride event as stored in the trips collection. Records are
// written in bulk by the import job and read-only afterwards.
type Trip struct {
	PickupTime         time.Time `bson:"pickup_time" json:"pickup_time"`
	PickupZone         string    `bson:"pickup_zone" json:"pickup_zone"`
	DropoffZone        string    `bson:"dropoff_zone" json:"dropoff_zone"`
	DistanceKM         float64   `bson:"distance_km" json:"distance_km"`
	DurationMin        float64   `bson:"duration_min" json:"duration_min"`
	VehicleType        string    `bson:"vehicle_type" json:"vehicle_type"`
	PaymentMethod      string    `bson:"payment_method" json:"payment_method"`
	WeatherCondition   string    `bson:"weather_condition" json:"weather_condition"`
	Hour               int       `bson:"hour" json:"hour"`
	DayOfWeek          int       `bson:"day_of_week" json:"day_of_week"`
	IsPeakHour         int       `bson:"is_peak_hour" json:"is_peak_hour"`
	ZoneDemandLevel    int       `bson:"zone_demand_level" json:"zone_demand_level"`
	TripDistanceBucket int       `bson:"trip_distance_bucket" json:"trip_distance_bucket"`
	SurgeMultiplier    float64   `bson:"surge_multiplier" json:"surge_multiplier"`
	Fare               float64   `bson:"fare" json:"fare"`
}
