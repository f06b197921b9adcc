package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vitaltrack/backend/internal/models"
	"github.com/vitaltrack/backend/pkg/supabase"
)

const dateLayout = "2006-01-02"

type dailyLogRepository struct {
	client *supabase.Client
}

// NewDailyLogRepository creates a new daily log repository
func NewDailyLogRepository(client *supabase.Client) DailyLogRepository {
	return &dailyLogRepository{client: client}
}

// rangeQuery builds a user-scoped inclusive date range filter on the given
// column, ordered ascending so downstream calculators see days in order.
func rangeQuery(userID, column string, from, to time.Time) map[string]interface{} {
	return map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(%s.gte.%s,%s.lte.%s)", column, from.Format(dateLayout), column, to.Format(dateLayout)),
		"select":  "*",
		"order":   fmt.Sprintf("%s.asc", column),
	}
}

func (r *dailyLogRepository) GetSleepLogs(ctx context.Context, userID string, from, to time.Time) ([]models.SleepLog, error) {
	body, err := r.client.Query("sleep_logs", rangeQuery(userID, "date", from, to))
	if err != nil {
		return nil, fmt.Errorf("failed to get sleep logs: %w", err)
	}

	var logs []models.SleepLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return logs, nil
}

func (r *dailyLogRepository) GetCheckIns(ctx context.Context, userID string, from, to time.Time) ([]models.CheckIn, error) {
	// Check-ins are timestamped, not day-keyed; widen the upper bound so the
	// whole final day is included.
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and": fmt.Sprintf("(timestamp.gte.%s,timestamp.lt.%s)",
			from.Format(time.RFC3339), to.AddDate(0, 0, 1).Format(time.RFC3339)),
		"select": "*",
		"order":  "timestamp.asc",
	}

	body, err := r.client.Query("check_ins", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-ins: %w", err)
	}

	var checkIns []models.CheckIn
	if err := json.Unmarshal(body, &checkIns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return checkIns, nil
}

func (r *dailyLogRepository) GetWorkouts(ctx context.Context, userID string, from, to time.Time) ([]models.WorkoutLog, error) {
	body, err := r.client.Query("workout_logs", rangeQuery(userID, "date", from, to))
	if err != nil {
		return nil, fmt.Errorf("failed to get workouts: %w", err)
	}

	var workouts []models.WorkoutLog
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return workouts, nil
}

func (r *dailyLogRepository) GetHydration(ctx context.Context, userID string, from, to time.Time) ([]models.HydrationLog, error) {
	body, err := r.client.Query("hydration_logs", rangeQuery(userID, "date", from, to))
	if err != nil {
		return nil, fmt.Errorf("failed to get hydration logs: %w", err)
	}

	var logs []models.HydrationLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return logs, nil
}
