package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/urbanmobility/analytics-backend-go/internal/models"
	"github.com/urbanmobility/analytics-backend-go/pkg/response"
)

// AnalyticsProvider is the service surface the analytics handlers need.
type AnalyticsProvider interface {
	Ping(ctx context.Context) error
	Dashboard(ctx context.Context, limit int64) (*models.Dashboard, error)
	TripsByZone(ctx context.Context, limit int64) ([]models.ZoneTrips, error)
	RevenueByZone(ctx context.Context, limit int64) ([]models.ZoneRevenue, error)
	TripsByHour(ctx context.Context, limit int64) ([]models.HourTrips, error)
	AvgFareByVehicle(ctx context.Context, limit int64) ([]models.VehicleFare, error)
	SurgeVsFare(ctx context.Context, limit int64) ([]models.SurgeFare, error)
	WeatherImpact(ctx context.Context, limit int64) ([]models.WeatherImpact, error)
}

// AnalyticsHandler handles HTTP requests for the dashboard summaries.
type AnalyticsHandler struct {
	analytics AnalyticsProvider
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(analytics AnalyticsProvider) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func parseLimit(c *gin.Context) (int64, bool) {
	raw := c.DefaultQuery("limit", "0")
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 0 {
		response.BadRequest(c, "Invalid limit parameter")
		return 0, false
	}
	return limit, true
}

// storeError reports query failures as 503: analytics needs the store, but
// the rest of the API keeps working.
func storeError(c *gin.Context, err error) {
	response.ServiceUnavailable(c, "Failed to load trip data from the store: "+err.Error())
}

// GetDashboard handles GET /api/v1/analytics/dashboard
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	dashboard, err := h.analytics.Dashboard(c.Request.Context(), limit)
	if err != nil {
		storeError(c, err)
		return
	}
	response.Success(c, dashboard)
}

// GetTripsByZone handles GET /api/v1/analytics/trips-by-zone
func (h *AnalyticsHandler) GetTripsByZone(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	rows, err := h.analytics.TripsByZone(c.Request.Context(), limit)
	if err != nil {
		storeError(c, err)
		return
	}
	response.Success(c, rows)
}

// GetRevenueByZone handles GET /api/v1/analytics/revenue-by-zone
func (h *AnalyticsHandler) GetRevenueByZone(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	rows, err := h.analytics.RevenueByZone(c.Request.Context(), limit)
	if err != nil {
		storeError(c, err)
		return
	}
	response.Success(c, rows)
}

// GetTripsByHour handles GET /api/v1/analytics/trips-by-hour
func (h *AnalyticsHandler) GetTripsByHour(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	rows, err := h.analytics.TripsByHour(c.Request.Context(), limit)
	if err != nil {
		storeError(c, err)
		return
	}
	response.Success(c, rows)
}

// GetAvgFareByVehicle handles GET /api/v1/analytics/avg-fare-by-vehicle
func (h *AnalyticsHandler) GetAvgFareByVehicle(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	rows, err := h.analytics.AvgFareByVehicle(c.Request.Context(), limit)
	if err != nil {
		storeError(c, err)
		return
	}
	response.Success(c, rows)
}

// GetSurgeVsFare handles GET /api/v1/analytics/surge-vs-fare
func (h *AnalyticsHandler) GetSurgeVsFare(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	rows, err := h.analytics.SurgeVsFare(c.Request.Context(), limit)
	if err != nil {
		storeError(c, err)
		return
	}
	response.Success(c, rows)
}

// GetWeatherImpact handles GET /api/v1/analytics/weather-impact
func (h *AnalyticsHandler) GetWeatherImpact(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	rows, err := h.analytics.WeatherImpact(c.Request.Context(), limit)
	if err != nil {
		storeError(c, err)
		return
	}
	response.Success(c, rows)
}
