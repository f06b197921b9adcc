package models

import "time"

// SleepLog is one night of sleep, keyed by the calendar day the night ended on.
type SleepLog struct {
	ID            string    `json:"id,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	Date          time.Time `json:"date"`
	DurationHours float64   `json:"duration_hours"`
	Quality       *int      `json:"quality,omitempty"` // 1-5, nil when the night was not rated
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// CheckIn is a mood/stress/energy self report. Every scale field is optional:
// users routinely skip questions, and a skipped question is not a 1.
type CheckIn struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Mood      *int      `json:"mood,omitempty"`     // 1-5
	Stress    *int      `json:"stress,omitempty"`   // 1-5
	Energy    *int      `json:"energy,omitempty"`   // 1-5
	Soreness  *float64  `json:"soreness,omitempty"` // 1-5, mean of reported body-area intensities
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// WorkoutLog records whether a workout happened on a given day.
type WorkoutLog struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
	Morning   bool      `json:"morning"` // started before noon, user-local time
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// HydrationLog is one day's water intake total against its goal.
type HydrationLog struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Date      time.Time `json:"date"`
	TotalMl   int       `json:"total_ml"`
	GoalMl    int       `json:"goal_ml"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// DailyLogBundle collects one calendar day's normalized signals for scoring.
// Nil means "not logged", which every calculator must treat differently from
// a logged minimum value.
type DailyLogBundle struct {
	Date            time.Time `json:"date"`
	SleepHours      *float64  `json:"sleep_hours,omitempty"`
	SleepQuality    *int      `json:"sleep_quality,omitempty"`
	Mood            *int      `json:"mood,omitempty"`
	Stress          *int      `json:"stress,omitempty"`
	Energy          *int      `json:"energy,omitempty"`
	Soreness        *float64  `json:"soreness,omitempty"`
	WorkoutDone     bool      `json:"workout_done"`
	MorningWorkout  bool      `json:"morning_workout"`
	HydrationMl     int       `json:"hydration_ml"`
	HydrationGoalMl int       `json:"hydration_goal_ml"`
}
