package engine

import (
	"testing"
	"time"

	"github.com/vitaltrack/backend/internal/models"
)

func baseRuleInput(now time.Time) RuleInput {
	return RuleInput{
		Now:            now,
		SleepGoalHours: 8,
		WellnessTrend:  models.TrendStable,
		SleepTrend:     models.TrendStable,
	}
}

func TestGenerateInsights_HydrationStreakAchievement(t *testing.T) {
	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)
	in := baseRuleInput(now)
	in.HydrationStreak = models.StreakResult{Current: 4, Best: 4}

	got := GenerateInsights(in, nil)
	ins := findInsight(t, got, "hydration:streak")

	if ins.Type != models.InsightTypeAchievement {
		t.Errorf("Type = %q, want achievement", ins.Type)
	}
	if ins.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want medium", ins.Priority)
	}
	if ins.ID != "" {
		t.Errorf("new insight has ID %q, want empty (assigned on persist)", ins.ID)
	}
	if !ins.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want the injected now", ins.CreatedAt)
	}
}

func TestGenerateInsights_CriticalRecoveryOutranksEverything(t *testing.T) {
	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)
	in := baseRuleInput(now)
	in.HydrationStreak = models.StreakResult{Current: 10, Best: 10} // high priority
	in.Recovery = &models.RecoveryComponents{Score: 25, Measured: 4}

	got := GenerateInsights(in, nil)
	if len(got) < 2 {
		t.Fatalf("got %d insights, want at least 2", len(got))
	}
	if got[0].RuleKey != "recovery:rest" {
		t.Errorf("first insight = %q, want recovery:rest (critical)", got[0].RuleKey)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Priority.Rank() < got[i-1].Priority.Rank() {
			t.Errorf("insights out of priority order at %d: %q after %q",
				i, got[i].Priority, got[i-1].Priority)
		}
	}
}

func TestGenerateInsights_DismissedRuleStaysDismissed(t *testing.T) {
	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)
	in := baseRuleInput(now)
	in.HydrationStreak = models.StreakResult{Current: 4, Best: 4}

	dismissedAt := now.Add(-24 * time.Hour)
	prior := []models.Insight{{
		ID:          "ins-1",
		RuleKey:     "hydration:streak",
		Dismissed:   true,
		DismissedAt: &dismissedAt,
	}}

	got := GenerateInsights(in, prior)
	for _, ins := range got {
		if ins.RuleKey == "hydration:streak" {
			t.Error("dismissed insight resurfaced on regeneration")
		}
	}
}

func TestGenerateInsights_SnoozedCarriedUntouchedUntilExpiry(t *testing.T) {
	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)
	in := baseRuleInput(now)
	in.HydrationStreak = models.StreakResult{Current: 4, Best: 4}

	expires := now.Add(12 * time.Hour)
	created := now.Add(-48 * time.Hour)
	prior := []models.Insight{{
		ID:        "ins-2",
		RuleKey:   "hydration:streak",
		Title:     "Sequência de hidratação",
		ExpiresAt: &expires,
		CreatedAt: created,
		Viewed:    true,
	}}

	got := GenerateInsights(in, prior)
	ins := findInsight(t, got, "hydration:streak")

	if ins.ExpiresAt == nil || !ins.ExpiresAt.Equal(expires) {
		t.Errorf("snoozed insight lost its ExpiresAt: %+v", ins.ExpiresAt)
	}
	if !ins.CreatedAt.Equal(created) || !ins.Viewed {
		t.Error("snoozed insight must be carried through unchanged")
	}

	// And a snoozed insight never makes the suggestion list.
	top := TopSuggestions(got, DefaultSuggestionLimit, now)
	for _, s := range top {
		if s.RuleKey == "hydration:streak" {
			t.Error("snoozed insight surfaced in TopSuggestions")
		}
	}
}

func TestGenerateInsights_ExpiredSnoozeRegeneratesWhileConditionHolds(t *testing.T) {
	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)
	in := baseRuleInput(now)
	in.HydrationStreak = models.StreakResult{Current: 4, Best: 4}

	expired := now.Add(-1 * time.Hour)
	prior := []models.Insight{{
		ID:        "ins-3",
		RuleKey:   "hydration:streak",
		ExpiresAt: &expired,
		CreatedAt: now.Add(-72 * time.Hour),
		Viewed:    true,
	}}

	got := GenerateInsights(in, prior)
	ins := findInsight(t, got, "hydration:streak")

	if ins.ID != "ins-3" {
		t.Errorf("regenerated insight lost its row identity: ID = %q", ins.ID)
	}
	if !ins.CreatedAt.Equal(now) || ins.Viewed {
		t.Error("expired snooze should reappear fresh (new CreatedAt, unviewed)")
	}
	if ins.ExpiresAt != nil {
		t.Error("regenerated insight still carries the old snooze")
	}
}

func TestGenerateInsights_ExpiredSnoozeDroppedWhenConditionResolved(t *testing.T) {
	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)
	in := baseRuleInput(now) // streak of zero: the rule no longer fires

	expired := now.Add(-1 * time.Hour)
	prior := []models.Insight{{
		ID:        "ins-4",
		RuleKey:   "hydration:streak",
		ExpiresAt: &expired,
	}}

	got := GenerateInsights(in, prior)
	for _, ins := range got {
		if ins.RuleKey == "hydration:streak" {
			t.Error("resolved insight reappeared after its snooze expired")
		}
	}
}

func TestGenerateInsights_ActivePriorKeepsIdentity(t *testing.T) {
	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)
	in := baseRuleInput(now)
	in.HydrationStreak = models.StreakResult{Current: 5, Best: 9}

	created := now.Add(-24 * time.Hour)
	prior := []models.Insight{{
		ID:        "ins-5",
		RuleKey:   "hydration:streak",
		CreatedAt: created,
		Viewed:    true,
	}}

	got := GenerateInsights(in, prior)
	ins := findInsight(t, got, "hydration:streak")

	if ins.ID != "ins-5" || !ins.CreatedAt.Equal(created) || !ins.Viewed {
		t.Errorf("regeneration reset an active insight: %+v", ins)
	}
}

func TestGenerateInsights_CorrelationAndPatternRules(t *testing.T) {
	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)
	in := baseRuleInput(now)
	in.Correlations = []models.CorrelationResult{
		{MetricA: MetricWorkout, MetricB: MetricMood, Coefficient: 0.6, Reliable: true,
			Kind: models.CorrelationMeanDifference, Strength: "moderada", SampleSize: 10},
		{MetricA: MetricSleepQuality, MetricB: MetricStress, Coefficient: 0.1, Reliable: true,
			Kind: models.CorrelationPearson, Strength: "muito fraca", SampleSize: 10},
	}
	in.Patterns = models.PatternSummary{
		BestDays:      []models.DayOfWeekPattern{{Weekday: "sábado", AvgMood: 4.5, Samples: 6}},
		BestTimeOfDay: &models.TimeOfDayPattern{Bucket: BucketMorning, AvgMood: 4.2, Samples: 8},
	}

	got := GenerateInsights(in, nil)

	findInsight(t, got, "correlation:workout_mood")
	findInsight(t, got, "pattern:best_day")
	findInsight(t, got, "pattern:best_time")

	// The weak sleep-stress association must not fire.
	for _, ins := range got {
		if ins.RuleKey == "correlation:sleep_stress" {
			t.Error("weak correlation produced an insight")
		}
	}
}

func TestGenerateInsights_SleepDeficitAndPrediction(t *testing.T) {
	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)
	in := baseRuleInput(now)
	in.SleepAvg = floatPtr(6.2)
	in.SleepTrend = models.TrendDown
	in.Recovery = &models.RecoveryComponents{Score: 55, Measured: 3}

	got := GenerateInsights(in, nil)
	findInsight(t, got, "sleep:deficit")
	findInsight(t, got, "prediction:energy_dip")
}

func TestTopSuggestions_CapsTheDefaultView(t *testing.T) {
	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)
	in := baseRuleInput(now)
	in.HydrationStreak = models.StreakResult{Current: 8, Best: 8}
	in.Recovery = &models.RecoveryComponents{Score: 30, Measured: 4}
	in.SleepAvg = floatPtr(5)
	in.WellnessTrend = models.TrendDown
	in.Wellness = &models.WellnessScore{Score: 42, HasData: true}

	got := GenerateInsights(in, nil)
	if len(got) <= DefaultSuggestionLimit {
		t.Fatalf("scenario only produced %d insights, need more than %d to exercise the cap",
			len(got), DefaultSuggestionLimit)
	}

	top := TopSuggestions(got, DefaultSuggestionLimit, now)
	if len(top) != DefaultSuggestionLimit {
		t.Errorf("TopSuggestions returned %d, want %d", len(top), DefaultSuggestionLimit)
	}
	if top[0].RuleKey != "recovery:rest" {
		t.Errorf("top suggestion = %q, want the critical recovery alert", top[0].RuleKey)
	}
}

func findInsight(t *testing.T, insights []models.Insight, ruleKey string) models.Insight {
	t.Helper()
	for _, ins := range insights {
		if ins.RuleKey == ruleKey {
			return ins
		}
	}
	t.Fatalf("no insight for rule %q (got %d insights)", ruleKey, len(insights))
	return models.Insight{}
}
