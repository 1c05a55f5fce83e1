package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ecoally/ecolens/internal/usecase"
)

const serviceVersion = "2.0.0"

type analyzeRequest struct {
	ImageURL    string   `json:"imageUrl" binding:"required"`
	StudentID   string   `json:"studentId"`
	ChallengeID string   `json:"challengeId"`
	GeoLat      *float64 `json:"geoLat"`
	GeoLng      *float64 `json:"geoLng"`
}

// RegisterRoutes wires the HTTP handlers to the Gin router.
func RegisterRoutes(router *gin.Engine, uc *usecase.AnalysisUseCase, logger *zap.Logger) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "EcoLens Analysis Service",
			"version": serviceVersion,
			"endpoints": gin.H{
				"POST /analyze": "Analyse an eco-action image by URL",
				"GET /health":   "Health check and feature flags",
			},
		})
	})

	router.GET("/health", func(c *gin.Context) {
		status := uc.Status(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"model":     status.Model,
			"finetuned": status.FineTuned,
			"plantnet":  status.PlantNet,
			"geocoding": status.Geocoding,
			"opencage":  status.OpenCage,
			"redis":     status.Redis,
		})
	})

	router.POST("/analyze", func(c *gin.Context) {
		var req analyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		if !strings.HasPrefix(req.ImageURL, "http://") && !strings.HasPrefix(req.ImageURL, "https://") {
			c.JSON(http.StatusBadRequest, errorResponse("imageUrl must be a valid HTTP(S) URL"))
			return
		}

		result, err := uc.Analyze(c.Request.Context(), usecase.Request{
			ImageURL:    req.ImageURL,
			StudentID:   req.StudentID,
			ChallengeID: req.ChallengeID,
			GeoLat:      req.GeoLat,
			GeoLng:      req.GeoLng,
		})
		if err != nil {
			logger.Error("analysis failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorResponse("internal analysis error"))
			return
		}

		if !result.Success {
			c.JSON(http.StatusUnprocessableEntity, result)
			return
		}
		c.JSON(http.StatusOK, result)
	})
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
