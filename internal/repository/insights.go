package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vitaltrack/backend/internal/models"
	"github.com/vitaltrack/backend/pkg/supabase"
)

type insightRepository struct {
	client *supabase.Client
}

// NewInsightRepository creates a new insight repository
func NewInsightRepository(client *supabase.Client) InsightRepository {
	return &insightRepository{client: client}
}

func (r *insightRepository) GetByUserID(ctx context.Context, userID string) ([]models.Insight, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
		"order":   "created_at.desc",
	}

	body, err := r.client.Query("insights", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get insights: %w", err)
	}

	var insights []models.Insight
	if err := json.Unmarshal(body, &insights); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return insights, nil
}

func (r *insightRepository) GetByID(ctx context.Context, id string) (*models.Insight, error) {
	query := map[string]interface{}{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*",
	}

	body, err := r.client.Query("insights", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get insight: %w", err)
	}

	var insights []models.Insight
	if err := json.Unmarshal(body, &insights); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(insights) == 0 {
		return nil, fmt.Errorf("insight not found")
	}

	return &insights[0], nil
}

// ReplaceGenerated swaps the user's active insight set for a freshly generated
// one. Dismissed rows are left in place: dismissal is permanent and the
// generator uses them to suppress matching rule keys on future runs.
func (r *insightRepository) ReplaceGenerated(ctx context.Context, userID string, insights []models.Insight) error {
	query := map[string]interface{}{
		"user_id":   fmt.Sprintf("eq.%s", userID),
		"dismissed": "eq.false",
	}

	if err := r.client.DeleteWhere("insights", query); err != nil {
		return fmt.Errorf("failed to clear generated insights: %w", err)
	}

	if len(insights) == 0 {
		return nil
	}

	// PostgREST requires all objects to have the same keys for bulk insert
	data := make([]map[string]interface{}, len(insights))
	for i, insight := range insights {
		item := map[string]interface{}{
			"id":          insight.ID,
			"user_id":     insight.UserID,
			"type":        insight.Type,
			"priority":    insight.Priority,
			"category":    insight.Category,
			"rule_key":    insight.RuleKey,
			"title":       insight.Title,
			"description": insight.Description,
			"icon":        insight.Icon,
			"action":      nil,
			"viewed":      insight.Viewed,
			"dismissed":   false,
			"expires_at":  nil,
			"created_at":  insight.CreatedAt,
		}
		if insight.Action != nil {
			item["action"] = insight.Action
		}
		if insight.ExpiresAt != nil {
			item["expires_at"] = insight.ExpiresAt
		}
		data[i] = item
	}

	if _, err := r.client.Insert("insights", data); err != nil {
		return fmt.Errorf("failed to insert insights: %w", err)
	}

	return nil
}

func (r *insightRepository) MarkViewed(ctx context.Context, id string) error {
	data := map[string]interface{}{
		"viewed": true,
	}

	if _, err := r.client.Update("insights", id, data); err != nil {
		return fmt.Errorf("failed to mark insight viewed: %w", err)
	}

	return nil
}

func (r *insightRepository) Dismiss(ctx context.Context, id string, at time.Time) error {
	data := map[string]interface{}{
		"dismissed":    true,
		"dismissed_at": at,
	}

	if _, err := r.client.Update("insights", id, data); err != nil {
		return fmt.Errorf("failed to dismiss insight: %w", err)
	}

	return nil
}

func (r *insightRepository) Snooze(ctx context.Context, id string, until *time.Time) error {
	data := map[string]interface{}{
		"expires_at": nil,
	}
	if until != nil {
		data["expires_at"] = until
	}

	if _, err := r.client.Update("insights", id, data); err != nil {
		return fmt.Errorf("failed to snooze insight: %w", err)
	}

	return nil
}
