package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitaltrack/backend/internal/logger"
	"github.com/vitaltrack/backend/internal/models"
	"github.com/vitaltrack/backend/internal/service"
)

// InsightsHandler handles insight-related HTTP requests
type InsightsHandler struct {
	metricsService service.MetricsService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(metricsService service.MetricsService) *InsightsHandler {
	return &InsightsHandler{
		metricsService: metricsService,
	}
}

// GetInsights returns the persisted insight set for the authenticated user
// GET /api/v1/insights
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	log := logger.Ctx(c.Request.Context())

	insights, err := h.metricsService.GetInsights(c.Request.Context(), userID.(string))
	if err != nil {
		log.Error("failed to get insights", logger.Err(err), logger.String("user_id", userID.(string)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, insights)
}

// RefreshInsights recomputes insights from the raw logs
// POST /api/v1/insights/refresh
func (h *InsightsHandler) RefreshInsights(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	log := logger.Ctx(c.Request.Context())

	insights, err := h.metricsService.RefreshInsights(c.Request.Context(), userID.(string))
	if err != nil {
		log.Error("failed to refresh insights", logger.Err(err), logger.String("user_id", userID.(string)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, insights)
}

// MarkViewed marks an insight as seen
// POST /api/v1/insights/:id/viewed
func (h *InsightsHandler) MarkViewed(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.metricsService.MarkInsightViewed(c.Request.Context(), userID.(string), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Dismiss permanently suppresses an insight's rule
// POST /api/v1/insights/:id/dismiss
func (h *InsightsHandler) Dismiss(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.metricsService.DismissInsight(c.Request.Context(), userID.(string), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Snooze hides an insight until a deadline
// POST /api/v1/insights/:id/snooze
func (h *InsightsHandler) Snooze(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.SnoozeInsightRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := h.metricsService.SnoozeInsight(c.Request.Context(), userID.(string), c.Param("id"), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
