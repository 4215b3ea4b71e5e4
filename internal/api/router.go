package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/urbanmobility/analytics-backend-go/internal/handler"
	"github.com/urbanmobility/analytics-backend-go/internal/middleware"
	"github.com/urbanmobility/analytics-backend-go/pkg/response"
)

const storeDownMessage = "Trip store is not connected. Analytics is unavailable; fare prediction from a model file still works."

// SetupRouter wires the HTTP routes. analyticsHandler may be nil when the
// store was unreachable at startup; analytics routes then answer 503 while
// prediction keeps working.
func SetupRouter(analyticsHandler *handler.AnalyticsHandler, predictionHandler *handler.PredictionHandler, ping func(ctx context.Context) error) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		store := "disconnected"
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
			defer cancel()
			if err := ping(ctx); err == nil {
				store = "connected"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"store":  store,
		})
	})

	api := r.Group("/api/v1")
	{
		analytics := api.Group("/analytics")
		analytics.Use(middleware.RateLimit(60, time.Minute))
		if analyticsHandler == nil {
			storeDown := func(c *gin.Context) {
				response.ServiceUnavailable(c, storeDownMessage)
			}
			analytics.GET("/dashboard", storeDown)
			analytics.GET("/trips-by-zone", storeDown)
			analytics.GET("/revenue-by-zone", storeDown)
			analytics.GET("/trips-by-hour", storeDown)
			analytics.GET("/avg-fare-by-vehicle", storeDown)
			analytics.GET("/surge-vs-fare", storeDown)
			analytics.GET("/weather-impact", storeDown)
		} else {
			analytics.GET("/dashboard", analyticsHandler.GetDashboard)
			analytics.GET("/trips-by-zone", analyticsHandler.GetTripsByZone)
			analytics.GET("/revenue-by-zone", analyticsHandler.GetRevenueByZone)
			analytics.GET("/trips-by-hour", analyticsHandler.GetTripsByHour)
			analytics.GET("/avg-fare-by-vehicle", analyticsHandler.GetAvgFareByVehicle)
			analytics.GET("/surge-vs-fare", analyticsHandler.GetSurgeVsFare)
			analytics.GET("/weather-impact", analyticsHandler.GetWeatherImpact)
		}

		api.GET("/model", predictionHandler.GetModel)
		api.POST("/predict", predictionHandler.Predict)
	}

	return r
}
