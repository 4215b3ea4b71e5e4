package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/urbanmobility/analytics-backend-go/internal/models"
)

// fakeAnalytics records the limit it was called with and can simulate a
// store outage.
type fakeAnalytics struct {
	lastLimit int64
	down      bool
}

var errStoreDown = errors.New("server selection timeout")

func (f *fakeAnalytics) Ping(ctx context.Context) error {
	if f.down {
		return errStoreDown
	}
	return nil
}

func (f *fakeAnalytics) Dashboard(ctx context.Context, limit int64) (*models.Dashboard, error) {
	f.lastLimit = limit
	if f.down {
		return nil, errStoreDown
	}
	return &models.Dashboard{}, nil
}

func (f *fakeAnalytics) TripsByZone(ctx context.Context, limit int64) ([]models.ZoneTrips, error) {
	f.lastLimit = limit
	if f.down {
		return nil, errStoreDown
	}
	return []models.ZoneTrips{{Zone: "District_1", Trips: 42}}, nil
}

func (f *fakeAnalytics) RevenueByZone(ctx context.Context, limit int64) ([]models.ZoneRevenue, error) {
	return nil, nil
}

func (f *fakeAnalytics) TripsByHour(ctx context.Context, limit int64) ([]models.HourTrips, error) {
	return nil, nil
}

func (f *fakeAnalytics) AvgFareByVehicle(ctx context.Context, limit int64) ([]models.VehicleFare, error) {
	return nil, nil
}

func (f *fakeAnalytics) SurgeVsFare(ctx context.Context, limit int64) ([]models.SurgeFare, error) {
	return nil, nil
}

func (f *fakeAnalytics) WeatherImpact(ctx context.Context, limit int64) ([]models.WeatherImpact, error) {
	return nil, nil
}

func analyticsRouter(a AnalyticsProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAnalyticsHandler(a)
	r.GET("/api/v1/analytics/dashboard", h.GetDashboard)
	r.GET("/api/v1/analytics/trips-by-zone", h.GetTripsByZone)
	return r
}

func TestGetDashboard(t *testing.T) {
	fake := &fakeAnalytics{}
	r := analyticsRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/dashboard?limit=2000", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if fake.lastLimit != 2000 {
		t.Errorf("limit passed = %d, want 2000", fake.lastLimit)
	}
}

func TestGetDashboardInvalidLimit(t *testing.T) {
	r := analyticsRouter(&fakeAnalytics{})

	for _, limit := range []string{"abc", "-5"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/dashboard?limit="+limit, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: status = %d, want 400", limit, w.Code)
		}
	}
}

func TestStoreDownIs503(t *testing.T) {
	r := analyticsRouter(&fakeAnalytics{down: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/trips-by-zone", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}
