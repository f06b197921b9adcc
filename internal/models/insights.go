package models

import "time"

// InsightType represents the type of insight
type InsightType string

const (
	InsightTypeAchievement    InsightType = "achievement"
	InsightTypePattern        InsightType = "pattern"
	InsightTypeTrend          InsightType = "trend"
	InsightTypeAlert          InsightType = "alert"
	InsightTypeRecommendation InsightType = "recommendation"
	InsightTypePrediction     InsightType = "prediction"
	InsightTypeCorrelation    InsightType = "correlation"
)

// InsightPriority orders insights in the default view
type InsightPriority string

const (
	PriorityCritical InsightPriority = "critical"
	PriorityHigh     InsightPriority = "high"
	PriorityMedium   InsightPriority = "medium"
	PriorityLow      InsightPriority = "low"
)

// Rank returns the sort rank of a priority (lower sorts first).
func (p InsightPriority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// InsightAction is an optional call to action attached to an insight.
type InsightAction struct {
	Label string `json:"label"`
	Route string `json:"route"`
}

// Insight is a generated, prioritized observation surfaced to the user.
//
// Lifecycle: created -> (viewed)* -> dismissed (terminal), or snoozed via
// ExpiresAt; a snoozed insight reappears on regeneration once ExpiresAt has
// passed if its triggering condition still holds. RuleKey is the stable
// identity across regenerations - dismissal is matched on it, not on row ID,
// so recomputing insights never resurrects a dismissed one.
type Insight struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        InsightType     `json:"type"`
	Priority    InsightPriority `json:"priority"`
	Category    string          `json:"category"`
	RuleKey     string          `json:"rule_key"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Action      *InsightAction  `json:"action,omitempty"`
	Viewed      bool            `json:"viewed"`
	Dismissed   bool            `json:"dismissed"`
	DismissedAt *time.Time      `json:"dismissed_at,omitempty"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Snoozed reports whether the insight is snoozed as of now.
func (i *Insight) Snoozed(now time.Time) bool {
	return i.ExpiresAt != nil && i.ExpiresAt.After(now)
}

// InsightsResponse is the API response for the insights list.
type InsightsResponse struct {
	Insights    []Insight `json:"insights"`
	GeneratedAt time.Time `json:"generated_at"`
}

// DashboardResponse aggregates everything the dashboard renders in one call.
type DashboardResponse struct {
	Recovery       *RecoveryComponents     `json:"recovery,omitempty"`
	Recommendation *TrainingRecommendation `json:"recommendation,omitempty"`
	Wellness       *WellnessScore          `json:"wellness,omitempty"`
	Streaks        map[string]StreakResult `json:"streaks"`
	Correlations   []CorrelationResult     `json:"correlations"`
	Patterns       *PatternSummary         `json:"patterns,omitempty"`
	Suggestions    []Insight               `json:"suggestions"` // bounded top-N of the full insight set
	GeneratedAt    time.Time               `json:"generated_at"`
	DataSufficient bool                    `json:"data_sufficient"`
	MinDaysNeeded  int                     `json:"min_days_needed,omitempty"`
}

// SnoozeInsightRequest controls how long an insight stays hidden.
// Hours distinguishes three cases: absent uses the configured default,
// an explicit null clears an existing snooze, a value snoozes for that long.
// Until, when set, wins over Hours.
type SnoozeInsightRequest struct {
	Hours NullableInt  `json:"hours"`
	Until NullableTime `json:"until"`
}
