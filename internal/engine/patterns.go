package engine

import (
	"sort"

	"github.com/vitaltrack/backend/internal/models"
)

// weekdayNames indexes by time.Weekday (Sunday = 0).
var weekdayNames = [7]string{
	"domingo",
	"segunda-feira",
	"terça-feira",
	"quarta-feira",
	"quinta-feira",
	"sexta-feira",
	"sábado",
}

// Time-of-day buckets: before noon is manhã, before 18:00 is tarde, the rest
// is noite.
const (
	BucketMorning   = "manhã"
	BucketAfternoon = "tarde"
	BucketEvening   = "noite"
)

func timeOfDayBucket(hour int) string {
	switch {
	case hour < 12:
		return BucketMorning
	case hour < 18:
		return BucketAfternoon
	default:
		return BucketEvening
	}
}

type bucketAcc struct {
	label string
	sum   float64
	count int
}

// ComputePatterns groups reported mood by weekday and by time-of-day bucket
// and ranks the averages. Empty buckets are excluded from the ranking, never
// averaged in as zero. Ties keep first-seen order (stable sort) so output is
// deterministic; with a single populated weekday that day is both the best
// and the worst.
func ComputePatterns(checkins []models.CheckIn) models.PatternSummary {
	var dayOrder, todOrder []*bucketAcc
	dayIndex := make(map[string]*bucketAcc)
	todIndex := make(map[string]*bucketAcc)

	for _, c := range checkins {
		if c.Mood == nil {
			continue
		}
		mood := float64(clampScale(*c.Mood))

		dayLabel := weekdayNames[int(c.Timestamp.Weekday())]
		day, exists := dayIndex[dayLabel]
		if !exists {
			day = &bucketAcc{label: dayLabel}
			dayIndex[dayLabel] = day
			dayOrder = append(dayOrder, day)
		}
		day.sum += mood
		day.count++

		todLabel := timeOfDayBucket(c.Timestamp.Hour())
		tod, exists := todIndex[todLabel]
		if !exists {
			tod = &bucketAcc{label: todLabel}
			todIndex[todLabel] = tod
			todOrder = append(todOrder, tod)
		}
		tod.sum += mood
		tod.count++
	}

	summary := models.PatternSummary{}

	if len(dayOrder) > 0 {
		days := make([]models.DayOfWeekPattern, 0, len(dayOrder))
		for _, b := range dayOrder {
			days = append(days, models.DayOfWeekPattern{
				Weekday: b.label,
				AvgMood: b.sum / float64(b.count),
				Samples: b.count,
			})
		}
		sort.SliceStable(days, func(i, j int) bool { return days[i].AvgMood > days[j].AvgMood })

		summary.BestDays = topDays(days, 2)
		summary.WorstDays = bottomDays(days, 2)
	}

	if len(todOrder) > 0 {
		best := todOrder[0]
		bestAvg := best.sum / float64(best.count)
		for _, b := range todOrder[1:] {
			if avg := b.sum / float64(b.count); avg > bestAvg {
				best, bestAvg = b, avg
			}
		}
		summary.BestTimeOfDay = &models.TimeOfDayPattern{
			Bucket:  best.label,
			AvgMood: bestAvg,
			Samples: best.count,
		}
	}

	return summary
}

func topDays(sorted []models.DayOfWeekPattern, n int) []models.DayOfWeekPattern {
	if len(sorted) < n {
		n = len(sorted)
	}
	out := make([]models.DayOfWeekPattern, n)
	copy(out, sorted[:n])
	return out
}

// bottomDays returns the n lowest-average buckets, worst first.
func bottomDays(sorted []models.DayOfWeekPattern, n int) []models.DayOfWeekPattern {
	if len(sorted) < n {
		n = len(sorted)
	}
	out := make([]models.DayOfWeekPattern, 0, n)
	for i := len(sorted) - 1; i >= len(sorted)-n; i-- {
		out = append(out, sorted[i])
	}
	return out
}
