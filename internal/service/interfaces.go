package service

import (
	"context"

	"github.com/vitaltrack/backend/internal/models"
)

// MetricsService defines the interface for scoring and insight business logic
type MetricsService interface {
	GetDashboard(ctx context.Context, userID string) (*models.DashboardResponse, error)
	GetRecovery(ctx context.Context, userID string) (*models.RecoveryComponents, *models.TrainingRecommendation, error)
	GetWellness(ctx context.Context, userID string) (*models.WellnessScore, error)
	GetStreaks(ctx context.Context, userID string) (map[string]models.StreakResult, error)
	GetCorrelations(ctx context.Context, userID string) ([]models.CorrelationResult, error)
	GetPatterns(ctx context.Context, userID string) (*models.PatternSummary, error)

	GetInsights(ctx context.Context, userID string) (*models.InsightsResponse, error)
	RefreshInsights(ctx context.Context, userID string) (*models.InsightsResponse, error)
	MarkInsightViewed(ctx context.Context, userID, insightID string) error
	DismissInsight(ctx context.Context, userID, insightID string) error
	SnoozeInsight(ctx context.Context, userID, insightID string, req *models.SnoozeInsightRequest) error
}
