package engine

import (
	"math"
	"sort"
	"time"

	"github.com/vitaltrack/backend/internal/models"
)

// MinCorrelationSamples is the floor below which a coefficient is forced to
// zero and flagged unreliable. Inferred from the product rules rather than a
// single authoritative source; raise it via CorrelationConfig once product
// signs off on a different value.
const MinCorrelationSamples = 3

// Metric identifiers used in CorrelationResult pairs.
const (
	MetricWorkout        = "workout"
	MetricMorningWorkout = "morning_workout"
	MetricMood           = "mood"
	MetricEnergy         = "energy"
	MetricStress         = "stress"
	MetricSleepQuality   = "sleep_quality"
)

// CorrelationConfig tunes the analyzer. The zero value uses the defaults.
type CorrelationConfig struct {
	// MinSamples is the minimum paired observations (or observations per
	// group, for mean-difference stats) before a result is reliable.
	// Values below MinCorrelationSamples are raised to it.
	MinSamples int
}

func (c CorrelationConfig) minSamples() int {
	if c.MinSamples < MinCorrelationSamples {
		return MinCorrelationSamples
	}
	return c.MinSamples
}

// Pearson computes the Pearson correlation coefficient over two equal-length
// series. It returns 0 with ok=false for fewer than MinCorrelationSamples
// paired observations, mismatched lengths, or zero variance in either series;
// it never returns NaN. The coefficient is clamped to [-1, 1].
func Pearson(x, y []float64) (r float64, ok bool) {
	n := len(x)
	if n != len(y) || n < MinCorrelationSamples {
		return 0, false
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var numerator, denomX, denomY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		numerator += dx * dy
		denomX += dx * dx
		denomY += dy * dy
	}

	if denomX == 0 || denomY == 0 {
		return 0, false // no variance, no relationship to report
	}

	return clamp(numerator/math.Sqrt(denomX*denomY), -1, 1), true
}

// meanDifference is the difference of group means normalized by the scale
// range. Used instead of Pearson where one side is a sparse binary grouping
// (workout day vs rest day); the two statistics read on the same -1..1 scale
// but are labeled distinctly so they are never mixed up. Both groups need
// minSamples observations before the result counts as reliable.
func meanDifference(groupA, groupB []float64, scaleRange float64, minSamples int) (diff float64, ok bool) {
	if len(groupA) < minSamples || len(groupB) < minSamples || scaleRange <= 0 {
		return 0, false
	}
	return clamp((mean(groupA)-mean(groupB))/scaleRange, -1, 1), true
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StrengthLabel classifies |coefficient| using the product copy scale.
func StrengthLabel(coefficient float64) string {
	a := math.Abs(coefficient)
	switch {
	case a < 0.2:
		return "muito fraca"
	case a < 0.4:
		return "fraca"
	case a <= 0.7:
		return "moderada"
	default:
		return "forte"
	}
}

// dayStats is the per-day aggregation of check-in signals. Multiple check-ins
// on one day average together; a signal nobody reported stays absent.
type dayStats struct {
	mood, stress, energy       float64
	moodN, stressN, energyN    int
}

func (d *dayStats) moodAvg() (float64, bool) {
	if d.moodN == 0 {
		return 0, false
	}
	return d.mood / float64(d.moodN), true
}

func (d *dayStats) stressAvg() (float64, bool) {
	if d.stressN == 0 {
		return 0, false
	}
	return d.stress / float64(d.stressN), true
}

func (d *dayStats) energyAvg() (float64, bool) {
	if d.energyN == 0 {
		return 0, false
	}
	return d.energy / float64(d.energyN), true
}

func aggregateByDay(checkins []models.CheckIn) (map[string]*dayStats, []string) {
	byDay := make(map[string]*dayStats)
	var order []string
	for _, c := range checkins {
		key := DateKey(c.Timestamp)
		st, exists := byDay[key]
		if !exists {
			st = &dayStats{}
			byDay[key] = st
			order = append(order, key)
		}
		if c.Mood != nil {
			st.mood += float64(clampScale(*c.Mood))
			st.moodN++
		}
		if c.Stress != nil {
			st.stress += float64(clampScale(*c.Stress))
			st.stressN++
		}
		if c.Energy != nil {
			st.energy += float64(clampScale(*c.Energy))
			st.energyN++
		}
	}
	sort.Strings(order)
	return byDay, order
}

// ComputeCorrelations produces the four named behavioral associations:
//
//   - workout vs mood: mean-difference of mood on workout days vs rest days
//   - sleep vs stress: Pearson between the previous night's sleep quality and
//     today's stress, sign-flipped so positive reads "better sleep, less stress"
//   - workout vs energy: Pearson between a workout indicator and same-day energy
//   - morning workout vs mood: mean-difference of morning-workout days vs all others
//
// Unreliable results are returned with a zero coefficient and Reliable=false
// rather than omitted, so "no data" stays distinguishable from "no relationship".
func ComputeCorrelations(checkins []models.CheckIn, workouts []models.WorkoutLog, sleeps []models.SleepLog, cfg CorrelationConfig) []models.CorrelationResult {
	minSamples := cfg.minSamples()

	byDay, days := aggregateByDay(checkins)

	workoutDays := make(map[string]bool)
	morningDays := make(map[string]bool)
	for _, w := range workouts {
		if !w.Completed {
			continue
		}
		key := DateKey(w.Date)
		workoutDays[key] = true
		if w.Morning {
			morningDays[key] = true
		}
	}

	sleepQuality := make(map[string]float64)
	for _, s := range sleeps {
		if s.Quality != nil {
			sleepQuality[DateKey(s.Date)] = float64(clampScale(*s.Quality))
		}
	}

	results := make([]models.CorrelationResult, 0, 4)
	results = append(results, workoutVsMood(byDay, days, workoutDays, minSamples))
	results = append(results, sleepVsStress(byDay, days, sleepQuality, minSamples))
	results = append(results, workoutVsEnergy(byDay, days, workoutDays, minSamples))
	results = append(results, morningWorkoutVsMood(byDay, days, morningDays, minSamples))
	return results
}

func workoutVsMood(byDay map[string]*dayStats, days []string, workoutDays map[string]bool, minSamples int) models.CorrelationResult {
	var onDays, offDays []float64
	for _, key := range days {
		m, ok := byDay[key].moodAvg()
		if !ok {
			continue
		}
		if workoutDays[key] {
			onDays = append(onDays, m)
		} else {
			offDays = append(offDays, m)
		}
	}

	diff, ok := meanDifference(onDays, offDays, ScaleMax, minSamples)
	return newResult(MetricWorkout, MetricMood, diff, len(onDays)+len(offDays), models.CorrelationMeanDifference, ok)
}

// sleepVsStress joins sleep quality at date d-1 with stress at date d and
// flips the sign so a positive coefficient reads "better sleep, less stress".
func sleepVsStress(byDay map[string]*dayStats, days []string, sleepQuality map[string]float64, minSamples int) models.CorrelationResult {
	var x, y []float64
	for _, key := range days {
		s, ok := byDay[key].stressAvg()
		if !ok {
			continue
		}
		day, err := time.Parse(dateLayout, key)
		if err != nil {
			continue
		}
		q, ok := sleepQuality[DateKey(day.AddDate(0, 0, -1))]
		if !ok {
			continue
		}
		x = append(x, q)
		y = append(y, s)
	}

	r, ok := Pearson(x, y)
	reliable := ok && len(x) >= minSamples
	if !reliable {
		r = 0
	}
	return newResult(MetricSleepQuality, MetricStress, -r, len(x), models.CorrelationPearson, reliable)
}

func workoutVsEnergy(byDay map[string]*dayStats, days []string, workoutDays map[string]bool, minSamples int) models.CorrelationResult {
	var x, y []float64
	for _, key := range days {
		e, ok := byDay[key].energyAvg()
		if !ok {
			continue
		}
		indicator := 0.0
		if workoutDays[key] {
			indicator = 1.0
		}
		x = append(x, indicator)
		y = append(y, e)
	}

	r, ok := Pearson(x, y)
	reliable := ok && len(x) >= minSamples
	if !reliable {
		r = 0
	}
	return newResult(MetricWorkout, MetricEnergy, r, len(x), models.CorrelationPearson, reliable)
}

func morningWorkoutVsMood(byDay map[string]*dayStats, days []string, morningDays map[string]bool, minSamples int) models.CorrelationResult {
	var morning, other []float64
	for _, key := range days {
		m, ok := byDay[key].moodAvg()
		if !ok {
			continue
		}
		if morningDays[key] {
			morning = append(morning, m)
		} else {
			other = append(other, m)
		}
	}

	diff, ok := meanDifference(morning, other, ScaleMax, minSamples)
	return newResult(MetricMorningWorkout, MetricMood, diff, len(morning)+len(other), models.CorrelationMeanDifference, ok)
}

func newResult(metricA, metricB string, coefficient float64, sampleSize int, kind models.CorrelationKind, reliable bool) models.CorrelationResult {
	if !reliable {
		coefficient = 0
	}
	return models.CorrelationResult{
		MetricA:     metricA,
		MetricB:     metricB,
		Coefficient: coefficient,
		SampleSize:  sampleSize,
		Kind:        kind,
		Reliable:    reliable,
		Strength:    StrengthLabel(coefficient),
	}
}
