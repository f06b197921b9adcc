package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitaltrack/backend/internal/logger"
	"github.com/vitaltrack/backend/internal/service"
)

// DashboardHandler handles scoring and analysis HTTP requests
type DashboardHandler struct {
	metricsService service.MetricsService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(metricsService service.MetricsService) *DashboardHandler {
	return &DashboardHandler{
		metricsService: metricsService,
	}
}

// GetDashboard returns everything the dashboard renders in one call
// GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	log := logger.Ctx(c.Request.Context())

	dashboard, err := h.metricsService.GetDashboard(c.Request.Context(), userID.(string))
	if err != nil {
		log.Error("failed to build dashboard", logger.Err(err), logger.String("user_id", userID.(string)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetRecovery returns today's recovery score and training recommendation
// GET /api/v1/metrics/recovery
func (h *DashboardHandler) GetRecovery(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recovery, recommendation, err := h.metricsService.GetRecovery(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recovery":       recovery,
		"recommendation": recommendation,
	})
}

// GetWellness returns today's wellness score
// GET /api/v1/metrics/wellness
func (h *DashboardHandler) GetWellness(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	wellness, err := h.metricsService.GetWellness(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"wellness": wellness})
}

// GetStreaks returns consecutive-day adherence per tracked metric
// GET /api/v1/metrics/streaks
func (h *DashboardHandler) GetStreaks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	streaks, err := h.metricsService.GetStreaks(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"streaks": streaks})
}

// GetCorrelations returns the cross-metric associations
// GET /api/v1/metrics/correlations
func (h *DashboardHandler) GetCorrelations(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	correlations, err := h.metricsService.GetCorrelations(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"correlations": correlations})
}

// GetPatterns returns day-of-week and time-of-day mood patterns
// GET /api/v1/metrics/patterns
func (h *DashboardHandler) GetPatterns(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	patterns, err := h.metricsService.GetPatterns(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"patterns": patterns})
}
