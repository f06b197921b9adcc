package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vitaltrack/backend/internal/config"
	"github.com/vitaltrack/backend/internal/engine"
	"github.com/vitaltrack/backend/internal/models"
	"github.com/vitaltrack/backend/internal/repository"
)

// Streak series keys in the dashboard response.
const (
	StreakHydration = "hydration"
	StreakWorkout   = "workout"
)

type metricsService struct {
	logRepo     repository.DailyLogRepository
	insightRepo repository.InsightRepository
	cfg         config.MetricsConfig

	// now is injected so the whole pipeline is testable against a fixed
	// reference date. Every calculator receives time through it; none call
	// time.Now themselves.
	now func() time.Time
}

// NewMetricsService creates a new metrics service
func NewMetricsService(logRepo repository.DailyLogRepository, insightRepo repository.InsightRepository, cfg config.MetricsConfig) MetricsService {
	return &metricsService{
		logRepo:     logRepo,
		insightRepo: insightRepo,
		cfg:         cfg,
		now:         time.Now,
	}
}

// logWindow is one user's raw logs over the analysis window.
type logWindow struct {
	from, to  time.Time
	sleeps    []models.SleepLog
	checkIns  []models.CheckIn
	workouts  []models.WorkoutLog
	hydration []models.HydrationLog
}

func (s *metricsService) loadWindow(ctx context.Context, userID string, today time.Time) (*logWindow, error) {
	w := &logWindow{
		from: today.AddDate(0, 0, -(s.cfg.WindowDays - 1)),
		to:   today,
	}

	var err error
	if w.sleeps, err = s.logRepo.GetSleepLogs(ctx, userID, w.from, w.to); err != nil {
		return nil, fmt.Errorf("failed to load sleep logs: %w", err)
	}
	if w.checkIns, err = s.logRepo.GetCheckIns(ctx, userID, w.from, w.to); err != nil {
		return nil, fmt.Errorf("failed to load check-ins: %w", err)
	}
	if w.workouts, err = s.logRepo.GetWorkouts(ctx, userID, w.from, w.to); err != nil {
		return nil, fmt.Errorf("failed to load workouts: %w", err)
	}
	if w.hydration, err = s.logRepo.GetHydration(ctx, userID, w.from, w.to); err != nil {
		return nil, fmt.Errorf("failed to load hydration logs: %w", err)
	}

	return w, nil
}

// buildDailyBundles collapses the raw window into one normalized bundle per
// calendar day, sorted ascending. Multiple check-ins on a day are averaged;
// a signal nobody logged stays nil.
func buildDailyBundles(w *logWindow) []models.DailyLogBundle {
	byDay := make(map[string]*models.DailyLogBundle)
	bundle := func(d time.Time) *models.DailyLogBundle {
		key := engine.DateKey(d)
		if b, ok := byDay[key]; ok {
			return b
		}
		b := &models.DailyLogBundle{Date: d}
		byDay[key] = b
		return b
	}

	for _, sl := range w.sleeps {
		b := bundle(sl.Date)
		hours := sl.DurationHours
		b.SleepHours = &hours
		b.SleepQuality = sl.Quality
	}

	type acc struct {
		sum   float64
		count int
	}
	sums := make(map[string]map[string]*acc)
	add := func(d time.Time, field string, v float64) {
		key := engine.DateKey(d)
		if sums[key] == nil {
			sums[key] = make(map[string]*acc)
		}
		if sums[key][field] == nil {
			sums[key][field] = &acc{}
		}
		sums[key][field].sum += v
		sums[key][field].count++
	}
	for _, ci := range w.checkIns {
		bundle(ci.Timestamp)
		if ci.Mood != nil {
			add(ci.Timestamp, "mood", float64(*ci.Mood))
		}
		if ci.Stress != nil {
			add(ci.Timestamp, "stress", float64(*ci.Stress))
		}
		if ci.Energy != nil {
			add(ci.Timestamp, "energy", float64(*ci.Energy))
		}
		if ci.Soreness != nil {
			add(ci.Timestamp, "soreness", *ci.Soreness)
		}
	}
	for key, fields := range sums {
		b := byDay[key]
		if a := fields["mood"]; a != nil {
			v := int(math.Round(a.sum / float64(a.count)))
			b.Mood = &v
		}
		if a := fields["stress"]; a != nil {
			v := int(math.Round(a.sum / float64(a.count)))
			b.Stress = &v
		}
		if a := fields["energy"]; a != nil {
			v := int(math.Round(a.sum / float64(a.count)))
			b.Energy = &v
		}
		if a := fields["soreness"]; a != nil {
			v := a.sum / float64(a.count)
			b.Soreness = &v
		}
	}

	for _, wo := range w.workouts {
		if !wo.Completed {
			continue
		}
		b := bundle(wo.Date)
		b.WorkoutDone = true
		if wo.Morning {
			b.MorningWorkout = true
		}
	}

	for _, h := range w.hydration {
		b := bundle(h.Date)
		b.HydrationMl += h.TotalMl
		if h.GoalMl > b.HydrationGoalMl {
			b.HydrationGoalMl = h.GoalMl
		}
	}

	bundles := make([]models.DailyLogBundle, 0, len(byDay))
	for _, b := range byDay {
		bundles = append(bundles, *b)
	}
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].Date.Before(bundles[j].Date) })
	return bundles
}

func findBundle(bundles []models.DailyLogBundle, day time.Time) *models.DailyLogBundle {
	key := engine.DateKey(day)
	for i := range bundles {
		if engine.DateKey(bundles[i].Date) == key {
			return &bundles[i]
		}
	}
	return nil
}

func recoveryInput(b *models.DailyLogBundle) engine.RecoveryInput {
	if b == nil {
		return engine.RecoveryInput{}
	}
	return engine.RecoveryInput{
		SleepHours:   b.SleepHours,
		SleepQuality: b.SleepQuality,
		Energy:       b.Energy,
		Stress:       b.Stress,
		Soreness:     b.Soreness,
	}
}

func (s *metricsService) wellnessFor(b *models.DailyLogBundle) models.WellnessScore {
	if b == nil {
		return models.WellnessScore{Score: 50, HasData: false}
	}
	in := engine.WellnessInput{
		Mood:   b.Mood,
		Stress: b.Stress,
		Energy: b.Energy,
	}
	if sleep, ok := engine.SleepScore(b.SleepHours, b.SleepQuality, s.cfg.SleepGoalHours); ok {
		in.SleepScore = &sleep
	}
	return engine.ComputeWellnessScore(in)
}

// hydrationTotals expresses each day as its goal attainment rate so days with
// different goals share one series; a rate of 1.0 means goal met.
func (s *metricsService) hydrationTotals(bundles []models.DailyLogBundle) []models.DailyTotal {
	totals := make([]models.DailyTotal, 0, len(bundles))
	for _, b := range bundles {
		if b.HydrationMl == 0 && b.HydrationGoalMl == 0 {
			continue
		}
		goal := b.HydrationGoalMl
		if goal <= 0 {
			goal = s.cfg.HydrationGoalMl
		}
		totals = append(totals, models.DailyTotal{
			Date:  b.Date,
			Total: engine.GoalRate(b.HydrationMl, goal),
		})
	}
	return totals
}

func workoutTotals(bundles []models.DailyLogBundle) []models.DailyTotal {
	totals := make([]models.DailyTotal, 0, len(bundles))
	for _, b := range bundles {
		if !b.WorkoutDone {
			continue
		}
		totals = append(totals, models.DailyTotal{Date: b.Date, Total: 1})
	}
	return totals
}

func (s *metricsService) computeStreaks(bundles []models.DailyLogBundle, today time.Time) map[string]models.StreakResult {
	return map[string]models.StreakResult{
		StreakHydration: engine.ComputeStreak(s.hydrationTotals(bundles), 1.0, today),
		StreakWorkout:   engine.ComputeStreak(workoutTotals(bundles), 1.0, today),
	}
}

// sleepAverage is the mean nightly duration over the trailing seven days.
func sleepAverage(bundles []models.DailyLogBundle, today time.Time) *float64 {
	cutoff := today.AddDate(0, 0, -6)
	var sum float64
	var n int
	for _, b := range bundles {
		if b.SleepHours == nil || b.Date.Before(cutoff) {
			continue
		}
		sum += *b.SleepHours
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

func (s *metricsService) wellnessSeries(bundles []models.DailyLogBundle) []float64 {
	series := make([]float64, 0, len(bundles))
	for i := range bundles {
		ws := s.wellnessFor(&bundles[i])
		if ws.HasData {
			series = append(series, float64(ws.Score))
		}
	}
	return series
}

func sleepSeries(bundles []models.DailyLogBundle) []float64 {
	series := make([]float64, 0, len(bundles))
	for _, b := range bundles {
		if b.SleepHours != nil {
			series = append(series, *b.SleepHours)
		}
	}
	return series
}

func trendOf(series []float64) models.TrendDirection {
	prior, recent := engine.SplitHalves(series)
	return engine.ClassifyTrend(recent, prior)
}

func (s *metricsService) correlationConfig() engine.CorrelationConfig {
	return engine.CorrelationConfig{MinSamples: s.cfg.MinCorrelationSamples}
}

// buildRuleInput assembles everything the insight rules evaluate against.
func (s *metricsService) buildRuleInput(now time.Time, w *logWindow, bundles []models.DailyLogBundle) engine.RuleInput {
	today := startOfDay(now)
	todayBundle := findBundle(bundles, today)

	in := engine.RuleInput{
		Now:             now,
		HydrationStreak: engine.ComputeStreak(s.hydrationTotals(bundles), 1.0, today),
		SleepAvg:        sleepAverage(bundles, today),
		SleepGoalHours:  s.cfg.SleepGoalHours,
		WellnessTrend:   trendOf(s.wellnessSeries(bundles)),
		SleepTrend:      trendOf(sleepSeries(bundles)),
		Correlations:    engine.ComputeCorrelations(w.checkIns, w.workouts, w.sleeps, s.correlationConfig()),
		Patterns:        engine.ComputePatterns(w.checkIns),
	}

	if todayBundle != nil {
		rec := engine.ComputeRecoveryComponents(recoveryInput(todayBundle), s.cfg.SleepGoalHours)
		in.Recovery = &rec
		ws := s.wellnessFor(todayBundle)
		in.Wellness = &ws

		if todayBundle.HydrationMl > 0 || todayBundle.HydrationGoalMl > 0 {
			goal := todayBundle.HydrationGoalMl
			if goal <= 0 {
				goal = s.cfg.HydrationGoalMl
			}
			in.HydrationToday = &models.HydrationLog{
				Date:    todayBundle.Date,
				TotalMl: todayBundle.HydrationMl,
				GoalMl:  goal,
			}
		}
	}

	return in
}

// regenerate runs the insight rules against the window, reconciles with the
// persisted set and writes the result back. New insights get their IDs here;
// the engine leaves them empty.
func (s *metricsService) regenerate(ctx context.Context, userID string, now time.Time, w *logWindow, bundles []models.DailyLogBundle) ([]models.Insight, error) {
	prior, err := s.insightRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior insights: %w", err)
	}

	insights := engine.GenerateInsights(s.buildRuleInput(now, w, bundles), prior)
	for i := range insights {
		insights[i].UserID = userID
		if insights[i].ID == "" {
			insights[i].ID = uuid.New().String()
		}
	}

	if err := s.insightRepo.ReplaceGenerated(ctx, userID, insights); err != nil {
		return nil, fmt.Errorf("failed to persist insights: %w", err)
	}

	return insights, nil
}

func (s *metricsService) GetDashboard(ctx context.Context, userID string) (*models.DashboardResponse, error) {
	now := s.now()
	today := startOfDay(now)

	w, err := s.loadWindow(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	bundles := buildDailyBundles(w)

	resp := &models.DashboardResponse{
		Streaks:      s.computeStreaks(bundles, today),
		Correlations: engine.ComputeCorrelations(w.checkIns, w.workouts, w.sleeps, s.correlationConfig()),
		GeneratedAt:  now,
	}

	if todayBundle := findBundle(bundles, today); todayBundle != nil {
		rec := engine.ComputeRecoveryComponents(recoveryInput(todayBundle), s.cfg.SleepGoalHours)
		if rec.Measured > 0 {
			recommendation := engine.GetTrainingRecommendation(rec.Score)
			resp.Recovery = &rec
			resp.Recommendation = &recommendation
		}
		if ws := s.wellnessFor(todayBundle); ws.HasData {
			resp.Wellness = &ws
		}
	}

	if patterns := engine.ComputePatterns(w.checkIns); len(patterns.BestDays) > 0 {
		resp.Patterns = &patterns
	}

	resp.DataSufficient = len(bundles) >= s.cfg.MinCorrelationSamples
	if !resp.DataSufficient {
		resp.MinDaysNeeded = s.cfg.MinCorrelationSamples
	}

	insights, err := s.regenerate(ctx, userID, now, w, bundles)
	if err != nil {
		return nil, err
	}
	resp.Suggestions = engine.TopSuggestions(insights, s.cfg.SuggestionLimit, now)

	return resp, nil
}

func (s *metricsService) GetRecovery(ctx context.Context, userID string) (*models.RecoveryComponents, *models.TrainingRecommendation, error) {
	now := s.now()
	today := startOfDay(now)

	w, err := s.loadWindow(ctx, userID, today)
	if err != nil {
		return nil, nil, err
	}

	bundles := buildDailyBundles(w)
	rec := engine.ComputeRecoveryComponents(recoveryInput(findBundle(bundles, today)), s.cfg.SleepGoalHours)
	recommendation := engine.GetTrainingRecommendation(rec.Score)
	return &rec, &recommendation, nil
}

func (s *metricsService) GetWellness(ctx context.Context, userID string) (*models.WellnessScore, error) {
	now := s.now()
	today := startOfDay(now)

	w, err := s.loadWindow(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	ws := s.wellnessFor(findBundle(buildDailyBundles(w), today))
	return &ws, nil
}

func (s *metricsService) GetStreaks(ctx context.Context, userID string) (map[string]models.StreakResult, error) {
	today := startOfDay(s.now())

	w, err := s.loadWindow(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	return s.computeStreaks(buildDailyBundles(w), today), nil
}

func (s *metricsService) GetCorrelations(ctx context.Context, userID string) ([]models.CorrelationResult, error) {
	today := startOfDay(s.now())

	w, err := s.loadWindow(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	return engine.ComputeCorrelations(w.checkIns, w.workouts, w.sleeps, s.correlationConfig()), nil
}

func (s *metricsService) GetPatterns(ctx context.Context, userID string) (*models.PatternSummary, error) {
	today := startOfDay(s.now())

	w, err := s.loadWindow(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	patterns := engine.ComputePatterns(w.checkIns)
	return &patterns, nil
}

// GetInsights returns the persisted insight set without recomputing it.
// Dismissed rows are kept in storage for suppression but never surfaced.
func (s *metricsService) GetInsights(ctx context.Context, userID string) (*models.InsightsResponse, error) {
	all, err := s.insightRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get insights: %w", err)
	}

	visible := make([]models.Insight, 0, len(all))
	for _, ins := range all {
		if ins.Dismissed {
			continue
		}
		visible = append(visible, ins)
	}
	engine.SortInsights(visible)

	return &models.InsightsResponse{
		Insights:    visible,
		GeneratedAt: s.now(),
	}, nil
}

// RefreshInsights recomputes the insight set from the raw logs and persists it.
func (s *metricsService) RefreshInsights(ctx context.Context, userID string) (*models.InsightsResponse, error) {
	now := s.now()
	today := startOfDay(now)

	w, err := s.loadWindow(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	insights, err := s.regenerate(ctx, userID, now, w, buildDailyBundles(w))
	if err != nil {
		return nil, err
	}

	return &models.InsightsResponse{
		Insights:    insights,
		GeneratedAt: now,
	}, nil
}

func (s *metricsService) MarkInsightViewed(ctx context.Context, userID, insightID string) error {
	if _, err := s.ownedInsight(ctx, userID, insightID); err != nil {
		return err
	}
	return s.insightRepo.MarkViewed(ctx, insightID)
}

func (s *metricsService) DismissInsight(ctx context.Context, userID, insightID string) error {
	if _, err := s.ownedInsight(ctx, userID, insightID); err != nil {
		return err
	}
	return s.insightRepo.Dismiss(ctx, insightID, s.now())
}

// SnoozeInsight hides an insight until a deadline. The request distinguishes
// three shapes: absent fields snooze for the configured default, an explicit
// null clears an existing snooze, and a value sets the deadline (an absolute
// until wins over hours).
func (s *metricsService) SnoozeInsight(ctx context.Context, userID, insightID string, req *models.SnoozeInsightRequest) error {
	if _, err := s.ownedInsight(ctx, userID, insightID); err != nil {
		return err
	}

	now := s.now()
	defaultUntil := now.Add(time.Duration(s.cfg.SnoozeHours) * time.Hour)
	until := &defaultUntil

	switch {
	case req == nil:
	case req.Until.Set:
		if !req.Until.Valid {
			until = nil
		} else if !req.Until.Value.After(now) {
			return fmt.Errorf("snooze deadline must be in the future")
		} else {
			until = &req.Until.Value
		}
	case req.Hours.Set:
		if !req.Hours.Valid {
			until = nil
		} else if req.Hours.Value <= 0 {
			return fmt.Errorf("snooze hours must be positive")
		} else {
			t := now.Add(time.Duration(req.Hours.Value) * time.Hour)
			until = &t
		}
	}

	return s.insightRepo.Snooze(ctx, insightID, until)
}

func (s *metricsService) ownedInsight(ctx context.Context, userID, insightID string) (*models.Insight, error) {
	insight, err := s.insightRepo.GetByID(ctx, insightID)
	if err != nil {
		return nil, err
	}
	if insight.UserID != userID {
		return nil, fmt.Errorf("insight not found")
	}
	return insight, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
