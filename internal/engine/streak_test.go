package engine

import (
	"testing"
	"time"

	"github.com/vitaltrack/backend/internal/models"
)

func day(t *testing.T, offset int) time.Time {
	t.Helper()
	base := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestComputeStreak_EmptyInput(t *testing.T) {
	got := ComputeStreak(nil, 3000, day(t, 0))
	if got.Current != 0 || got.Best != 0 {
		t.Errorf("ComputeStreak(nil) = %+v, want {0 0}", got)
	}
}

func TestComputeStreak_SingleQualifyingDayToday(t *testing.T) {
	totals := []models.DailyTotal{{Date: day(t, 0), Total: 3000}}
	got := ComputeStreak(totals, 3000, day(t, 0))
	if got.Current != 1 || got.Best != 1 {
		t.Errorf("got %+v, want {Current:1 Best:1}", got)
	}
}

func TestComputeStreak_HydrationScenario(t *testing.T) {
	// d-6 and d-3 miss the goal; qualifying days are d-5, d-4, d-2, d-1, today.
	totals := []models.DailyTotal{
		{Date: day(t, -6), Total: 2000},
		{Date: day(t, -5), Total: 3200},
		{Date: day(t, -4), Total: 3100},
		{Date: day(t, -3), Total: 1800},
		{Date: day(t, -2), Total: 3300},
		{Date: day(t, -1), Total: 3050},
		{Date: day(t, 0), Total: 3000},
	}
	got := ComputeStreak(totals, 3000, day(t, 0))
	if got.Current != 3 {
		t.Errorf("Current = %d, want 3", got.Current)
	}
	if got.Best != 3 {
		t.Errorf("Best = %d, want 3", got.Best)
	}
}

func TestComputeStreak_GapBreaksCurrentButNotBest(t *testing.T) {
	// Five-day run, then a gap, then a fresh single day today.
	totals := []models.DailyTotal{
		{Date: day(t, -9), Total: 3100},
		{Date: day(t, -8), Total: 3100},
		{Date: day(t, -7), Total: 3100},
		{Date: day(t, -6), Total: 3100},
		{Date: day(t, -5), Total: 3100},
		{Date: day(t, 0), Total: 3100},
	}
	got := ComputeStreak(totals, 3000, day(t, 0))
	if got.Current != 1 {
		t.Errorf("Current = %d, want 1 (run restarts after gap)", got.Current)
	}
	if got.Best != 5 {
		t.Errorf("Best = %d, want 5 (historical maximum retained)", got.Best)
	}
}

func TestComputeStreak_NotLoggedTodayKeepsStreak(t *testing.T) {
	// Most recent qualifying day is yesterday: streak must not reset just
	// because today hasn't been logged yet.
	totals := []models.DailyTotal{
		{Date: day(t, -3), Total: 3100},
		{Date: day(t, -2), Total: 3100},
		{Date: day(t, -1), Total: 3100},
	}
	got := ComputeStreak(totals, 3000, day(t, 0))
	if got.Current != 3 {
		t.Errorf("Current = %d, want 3", got.Current)
	}
}

func TestComputeStreak_StaleRunDoesNotCount(t *testing.T) {
	// Last qualifying day is two days ago: the run is over.
	totals := []models.DailyTotal{
		{Date: day(t, -4), Total: 3100},
		{Date: day(t, -3), Total: 3100},
		{Date: day(t, -2), Total: 3100},
	}
	got := ComputeStreak(totals, 3000, day(t, 0))
	if got.Current != 0 {
		t.Errorf("Current = %d, want 0", got.Current)
	}
	if got.Best != 3 {
		t.Errorf("Best = %d, want 3", got.Best)
	}
}

func TestComputeStreak_NoQualifyingDays(t *testing.T) {
	totals := []models.DailyTotal{
		{Date: day(t, -1), Total: 100},
		{Date: day(t, 0), Total: 200},
	}
	got := ComputeStreak(totals, 3000, day(t, 0))
	if got.Current != 0 || got.Best != 0 {
		t.Errorf("got %+v, want {0 0}", got)
	}
}

func TestComputeStreak_BestAlwaysAtLeastCurrent(t *testing.T) {
	cases := [][]models.DailyTotal{
		{{Date: day(t, 0), Total: 3000}},
		{{Date: day(t, -1), Total: 3000}, {Date: day(t, 0), Total: 3000}},
		{
			{Date: day(t, -5), Total: 3000},
			{Date: day(t, -4), Total: 3000},
			{Date: day(t, -2), Total: 3000},
			{Date: day(t, 0), Total: 2000},
		},
		nil,
	}
	for i, totals := range cases {
		got := ComputeStreak(totals, 3000, day(t, 0))
		if got.Best < got.Current {
			t.Errorf("case %d: Best (%d) < Current (%d)", i, got.Best, got.Current)
		}
		if got.Best < 0 || got.Current < 0 {
			t.Errorf("case %d: negative streak %+v", i, got)
		}
	}
}

func TestComputeStreak_DuplicateDayEntries(t *testing.T) {
	// Two rows for the same day must not count as a two-day streak.
	totals := []models.DailyTotal{
		{Date: day(t, 0), Total: 3100},
		{Date: day(t, 0).Add(6 * time.Hour), Total: 3200},
	}
	got := ComputeStreak(totals, 3000, day(t, 0))
	if got.Current != 1 || got.Best != 1 {
		t.Errorf("got %+v, want {Current:1 Best:1}", got)
	}
}
