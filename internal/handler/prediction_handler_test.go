package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/urbanmobility/analytics-backend-go/internal/models"
	"github.com/urbanmobility/analytics-backend-go/internal/modelstore"
	"github.com/urbanmobility/analytics-backend-go/internal/service"
)

// fakePredictor stands in for the prediction service.
type fakePredictor struct {
	bundle *modelstore.Bundle
	fare   float64
}

func (f *fakePredictor) Model(ctx context.Context) (*modelstore.Bundle, error) {
	return f.bundle, nil
}

func (f *fakePredictor) PredictFare(ctx context.Context, input models.PredictionInput) (float64, error) {
	if f.bundle == nil {
		return 0, service.ErrNoModel
	}
	return f.fare, nil
}

func predictionRouter(p FarePredictor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPredictionHandler(p)
	r.GET("/api/v1/model", h.GetModel)
	r.POST("/api/v1/predict", h.Predict)
	return r
}

func TestGetModelNoModelGivesGuidance(t *testing.T) {
	r := predictionRouter(&fakePredictor{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/model", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "train") {
		t.Errorf("guidance should mention the train command, got %s", w.Body.String())
	}
}

func TestGetModelReportsMetrics(t *testing.T) {
	r := predictionRouter(&fakePredictor{
		bundle: &modelstore.Bundle{
			Features: []string{"distance_km"},
			Metrics:  models.Metrics{RMSE: 1500, R2: 0.95},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/model", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "fare_regression") {
		t.Errorf("model info should include the model type, got %s", w.Body.String())
	}
}

func TestPredictReturnsFare(t *testing.T) {
	r := predictionRouter(&fakePredictor{
		bundle: &modelstore.Bundle{},
		fare:   81600,
	})

	body := `{"distance_km":5,"duration_min":15,"hour":9,"day_of_week":2,"surge_multiplier":1.2}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Fare float64 `json:"fare"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Fare != 81600 {
		t.Errorf("fare = %v, want 81600", resp.Data.Fare)
	}
}

func TestPredictWithoutModelGivesGuidance(t *testing.T) {
	r := predictionRouter(&fakePredictor{})

	body := `{"distance_km":5,"duration_min":15,"hour":9,"day_of_week":2,"surge_multiplier":1.2}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestPredictRejectsMalformedBody(t *testing.T) {
	r := predictionRouter(&fakePredictor{bundle: &modelstore.Bundle{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
