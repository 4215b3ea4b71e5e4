package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/urbanmobility/analytics-backend-go/internal/models"
	"github.com/urbanmobility/analytics-backend-go/internal/modelstore"
	"github.com/urbanmobility/analytics-backend-go/internal/service"
	"github.com/urbanmobility/analytics-backend-go/pkg/response"
)

// noModelGuidance is shown when neither the model file nor the database has
// a trained artifact.
const noModelGuidance = "No trained model found (file or database). Run the train command, then the server will pick the model file up automatically."

// FarePredictor is the service surface the prediction handlers need.
type FarePredictor interface {
	Model(ctx context.Context) (*modelstore.Bundle, error)
	PredictFare(ctx context.Context, input models.PredictionInput) (float64, error)
}

// PredictionHandler handles HTTP requests for fare prediction.
type PredictionHandler struct {
	predictor FarePredictor
}

// NewPredictionHandler creates a new prediction handler.
func NewPredictionHandler(predictor FarePredictor) *PredictionHandler {
	return &PredictionHandler{predictor: predictor}
}

// GetModel handles GET /api/v1/model. It reports the served model's
// features and metrics, or guidance when no model is available yet.
func (h *PredictionHandler) GetModel(c *gin.Context) {
	bundle, err := h.predictor.Model(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if bundle == nil {
		response.NotFound(c, noModelGuidance)
		return
	}
	response.Success(c, gin.H{
		"model_type": models.ModelTypeFareRegression,
		"features":   bundle.Features,
		"metrics":    bundle.Metrics,
	})
}

// Predict handles POST /api/v1/predict
func (h *PredictionHandler) Predict(c *gin.Context) {
	var input models.PredictionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid prediction input: "+err.Error())
		return
	}

	fare, err := h.predictor.PredictFare(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrNoModel) {
			response.NotFound(c, noModelGuidance)
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"fare": fare})
}
