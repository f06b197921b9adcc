package engine

import (
	"sort"
	"time"

	"github.com/vitaltrack/backend/internal/models"
)

// ComputeStreak counts consecutive qualifying days in a day-indexed series of
// totals. A day qualifies when its total meets the goal; a missing date or a
// day below goal breaks the run.
//
// The current streak only counts if the most recent qualifying day is today
// or yesterday relative to the supplied reference date - a user who simply
// hasn't logged yet today should not watch their streak reset at midnight.
// The whole window is walked on every call; streaks are never maintained
// incrementally, so a missed update can't leave a stale count behind.
func ComputeStreak(totals []models.DailyTotal, goal float64, today time.Time) models.StreakResult {
	if len(totals) == 0 {
		return models.StreakResult{}
	}

	// Collapse to one entry per calendar day. If the same day shows up
	// twice the day qualifies when any of its entries does.
	qualifying := make(map[string]time.Time)
	for _, dt := range totals {
		if dt.Total >= goal {
			qualifying[DateKey(dt.Date)] = startOfDay(dt.Date)
		}
	}
	if len(qualifying) == 0 {
		return models.StreakResult{}
	}

	days := make([]time.Time, 0, len(qualifying))
	for _, d := range qualifying {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	best := 0
	run := 0
	for i, d := range days {
		if i > 0 && isNextDay(days[i-1], d) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}

	// run now holds the length of the trailing run ending at the most
	// recent qualifying day.
	current := 0
	last := days[len(days)-1]
	ref := startOfDay(today)
	if sameDay(last, ref) || isNextDay(last, ref) {
		current = run
	}

	return models.StreakResult{Current: current, Best: best}
}

// isNextDay reports whether b is the calendar day immediately after a.
// Comparison is done on calendar days, not 24h spans, so DST shifts don't
// split a streak.
func isNextDay(a, b time.Time) bool {
	return sameDay(a.AddDate(0, 0, 1), b)
}
