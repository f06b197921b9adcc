package models

import "time"

// RecoveryComponents holds the four normalized sub-scores (0-100) behind a
// day's recovery score, plus the blended score itself. Values are derived
// fresh from that day's logs and never mutated afterwards.
type RecoveryComponents struct {
	Sleep    float64 `json:"sleep"`
	Energy   float64 `json:"energy"`
	Stress   float64 `json:"stress"`   // inverted: lower reported stress scores higher
	Soreness float64 `json:"soreness"` // inverted
	Score    int     `json:"score"`
	// Measured counts how many of the four signals were actually logged.
	// Zero means the score is a pure neutral placeholder, not a reading.
	Measured int `json:"measured_signals"`
}

// TrainingRecommendation maps a recovery score to a suggested intensity tier.
type TrainingRecommendation struct {
	Level     string `json:"level"`
	Title     string `json:"title"`
	Rationale string `json:"rationale"`
}

// WellnessScore is the 0-100 mood/stress/energy/sleep blend. HasData is false
// when none of the inputs were logged, in which case Score is the neutral
// midpoint and must not be presented as a measurement.
type WellnessScore struct {
	Score   int  `json:"score"`
	HasData bool `json:"has_data"`
}

// DailyTotal is one day of a goal-tracked series (e.g. hydration ml).
type DailyTotal struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

// StreakResult holds consecutive-day goal adherence for one metric+goal pair.
// Always recomputed from the full window, never maintained incrementally.
type StreakResult struct {
	Current int `json:"current_streak"`
	Best    int `json:"best_streak"`
}

// CorrelationKind distinguishes true Pearson coefficients from the
// mean-difference statistics used for binary groupings. The two read on the
// same -1..1 scale but are not comparable, so results always carry their kind.
type CorrelationKind string

const (
	CorrelationPearson        CorrelationKind = "pearson"
	CorrelationMeanDifference CorrelationKind = "mean_difference"
)

// CorrelationResult is one computed association between two metrics.
// An unreliable result (too few samples, zero variance) keeps Coefficient 0
// and Reliable false rather than disappearing, so callers can tell "no data"
// from "no relationship".
type CorrelationResult struct {
	MetricA     string          `json:"metric_a"`
	MetricB     string          `json:"metric_b"`
	Coefficient float64         `json:"coefficient"`
	SampleSize  int             `json:"sample_size"`
	Kind        CorrelationKind `json:"kind"`
	Reliable    bool            `json:"reliable"`
	Strength    string          `json:"strength"` // product copy: muito fraca / fraca / moderada / forte
}

// DayOfWeekPattern is the mood average for one weekday bucket.
type DayOfWeekPattern struct {
	Weekday string  `json:"weekday"`
	AvgMood float64 `json:"avg_mood"`
	Samples int     `json:"samples"`
}

// TimeOfDayPattern is the mood average for one manhã/tarde/noite bucket.
type TimeOfDayPattern struct {
	Bucket  string  `json:"bucket"`
	AvgMood float64 `json:"avg_mood"`
	Samples int     `json:"samples"`
}

// PatternSummary ranks the weekday and time-of-day buckets. Empty buckets are
// excluded rather than averaged as zero; with a single populated bucket that
// bucket is both best and worst.
type PatternSummary struct {
	BestDays      []DayOfWeekPattern `json:"best_days"`
	WorstDays     []DayOfWeekPattern `json:"worst_days"`
	BestTimeOfDay *TimeOfDayPattern  `json:"best_time_of_day,omitempty"`
}

// TrendDirection classifies a recent-vs-prior comparison.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)
