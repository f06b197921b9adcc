package repository

import (
	"context"
	"time"

	"github.com/vitaltrack/backend/internal/models"
)

// DailyLogRepository defines the interface for raw health log data access.
// All range queries are inclusive of from and to.
type DailyLogRepository interface {
	GetSleepLogs(ctx context.Context, userID string, from, to time.Time) ([]models.SleepLog, error)
	GetCheckIns(ctx context.Context, userID string, from, to time.Time) ([]models.CheckIn, error)
	GetWorkouts(ctx context.Context, userID string, from, to time.Time) ([]models.WorkoutLog, error)
	GetHydration(ctx context.Context, userID string, from, to time.Time) ([]models.HydrationLog, error)
}

// InsightRepository defines the interface for insight persistence
type InsightRepository interface {
	GetByUserID(ctx context.Context, userID string) ([]models.Insight, error)
	GetByID(ctx context.Context, id string) (*models.Insight, error)
	ReplaceGenerated(ctx context.Context, userID string, insights []models.Insight) error
	MarkViewed(ctx context.Context, id string) error
	Dismiss(ctx context.Context, id string, at time.Time) error
	Snooze(ctx context.Context, id string, until *time.Time) error
}
