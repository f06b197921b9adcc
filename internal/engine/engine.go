// Package engine implements the scoring, streak, correlation and insight
// computations behind the VitalTrack dashboards.
//
// Everything in this package is pure and synchronous: "today" is always an
// argument, never read from the clock, so identical inputs produce identical
// outputs. Side effects (fetching logs, persisting insights) live in the
// service and repository layers.
package engine

import "time"

// Scale bounds for the 1-5 self-report signals (mood, stress, energy,
// quality, soreness).
const (
	ScaleMin = 1
	ScaleMax = 5

	// NeutralScaleValue substitutes for a missing 1-5 signal. Treating
	// absence as the midpoint (50/100) keeps skipped check-in fields from
	// tanking a score as if the user had reported the worst value.
	NeutralScaleValue = 3

	// NeutralComponent is the 0-100 equivalent of NeutralScaleValue.
	NeutralComponent = 50.0
)

const dateLayout = "2006-01-02"

// DateKey normalizes a timestamp to its calendar-day key.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sameDay reports whether a and b fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampScale rejects out-of-range self-report values at the boundary by
// pinning them to the valid 1-5 range instead of letting them skew a blend.
func clampScale(v int) int {
	return clampInt(v, ScaleMin, ScaleMax)
}

// scaleUp maps a 1-5 value where higher is better onto 0-100.
func scaleUp(v int) float64 {
	return float64(clampScale(v)-ScaleMin) / float64(ScaleMax-ScaleMin) * 100
}

// scaleDown maps a 1-5 value where lower is better onto 0-100 (inverted).
func scaleDown(v int) float64 {
	return float64(ScaleMax-clampScale(v)) / float64(ScaleMax-ScaleMin) * 100
}
