package service

import (
	"context"
	"fmt"

	"github.com/urbanmobility/analytics-backend-go/internal/analytics"
	"github.com/urbanmobility/analytics-backend-go/internal/cache"
	"github.com/urbanmobility/analytics-backend-go/internal/database"
	"github.com/urbanmobility/analytics-backend-go/internal/dataset"
	"github.com/urbanmobility/analytics-backend-go/internal/models"
)

const (
	// DefaultLimit keeps a dashboard request light on memory.
	DefaultLimit = 1000
	minLimit     = 500
	maxLimit     = 10000
)

// AnalyticsService computes the dashboard summaries. Loaded frames and
// computed dashboards are cached by (operation, limit) for the configured
// TTL so repeated requests within a session skip the store round-trip.
type AnalyticsService struct {
	db    *database.Mongo
	cache *cache.Cache
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(db *database.Mongo, c *cache.Cache) *AnalyticsService {
	return &AnalyticsService{db: db, cache: c}
}

// ClampLimit normalizes the requested row limit into the supported range.
// Zero or negative means the default.
func ClampLimit(limit int64) int64 {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit < minLimit {
		return minLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// Ping reports whether the store is reachable.
func (s *AnalyticsService) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *AnalyticsService) frame(ctx context.Context, limit int64) (*dataset.Frame, error) {
	key := fmt.Sprintf("frame:%d", limit)
	value, err := s.cache.GetOrCompute(key, func() (interface{}, error) {
		return dataset.LoadFromMongo(ctx, s.db.Trips(), limit, dataset.DashboardColumns)
	})
	if err != nil {
		return nil, err
	}
	return value.(*dataset.Frame), nil
}

// Dashboard computes all six summaries for the given row limit.
func (s *AnalyticsService) Dashboard(ctx context.Context, limit int64) (*models.Dashboard, error) {
	limit = ClampLimit(limit)
	key := fmt.Sprintf("dashboard:%d", limit)

	value, err := s.cache.GetOrCompute(key, func() (interface{}, error) {
		frame, err := s.frame(ctx, limit)
		if err != nil {
			return nil, err
		}
		return buildDashboard(frame)
	})
	if err != nil {
		return nil, err
	}
	return value.(*models.Dashboard), nil
}

func buildDashboard(frame *dataset.Frame) (*models.Dashboard, error) {
	tripsZone, err := analytics.TripsByZone(frame)
	if err != nil {
		return nil, err
	}
	revenueZone, err := analytics.RevenueByZone(frame)
	if err != nil {
		return nil, err
	}
	tripsHour, err := analytics.TripsByHour(frame)
	if err != nil {
		return nil, err
	}
	vehicleFare, err := analytics.AvgFareByVehicle(frame)
	if err != nil {
		return nil, err
	}
	surgeFare, err := analytics.SurgeVsFare(frame)
	if err != nil {
		return nil, err
	}
	weather, err := analytics.WeatherImpact(frame)
	if err != nil {
		return nil, err
	}
	return &models.Dashboard{
		TripsByZone:      tripsZone,
		RevenueByZone:    revenueZone,
		TripsByHour:      tripsHour,
		AvgFareByVehicle: vehicleFare,
		SurgeVsFare:      surgeFare,
		WeatherImpact:    weather,
	}, nil
}

// TripsByZone computes one summary without building the full dashboard.
func (s *AnalyticsService) TripsByZone(ctx context.Context, limit int64) ([]models.ZoneTrips, error) {
	frame, err := s.frame(ctx, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	return analytics.TripsByZone(frame)
}

// RevenueByZone computes fare sums grouped by pickup zone.
func (s *AnalyticsService) RevenueByZone(ctx context.Context, limit int64) ([]models.ZoneRevenue, error) {
	frame, err := s.frame(ctx, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	return analytics.RevenueByZone(frame)
}

// TripsByHour computes trip counts grouped by hour, ascending.
func (s *AnalyticsService) TripsByHour(ctx context.Context, limit int64) ([]models.HourTrips, error) {
	frame, err := s.frame(ctx, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	return analytics.TripsByHour(frame)
}

// AvgFareByVehicle computes mean fares grouped by vehicle type.
func (s *AnalyticsService) AvgFareByVehicle(ctx context.Context, limit int64) ([]models.VehicleFare, error) {
	frame, err := s.frame(ctx, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	return analytics.AvgFareByVehicle(frame)
}

// SurgeVsFare computes mean fares grouped by raw surge multiplier.
func (s *AnalyticsService) SurgeVsFare(ctx context.Context, limit int64) ([]models.SurgeFare, error) {
	frame, err := s.frame(ctx, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	return analytics.SurgeVsFare(frame)
}

// WeatherImpact computes trip count and mean fare grouped by weather.
func (s *AnalyticsService) WeatherImpact(ctx context.Context, limit int64) ([]models.WeatherImpact, error) {
	frame, err := s.frame(ctx, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	return analytics.WeatherImpact(frame)
}
