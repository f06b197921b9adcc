package engine

import (
	"math"

	"github.com/vitaltrack/backend/internal/models"
)

// Wellness blend weights. Fixed product-defined split; distinct from the
// recovery weighting.
const (
	WellnessWeightMood   = 0.30
	WellnessWeightStress = 0.25
	WellnessWeightEnergy = 0.20
	WellnessWeightSleep  = 0.25
)

// WellnessInput carries the signals behind the wellness score. SleepScore is
// a 0-100 value supplied by the caller (typically the sleep component from
// SleepScore); this calculator only blends, it does not own sleep math.
type WellnessInput struct {
	Mood       *int // 1-5
	Stress     *int // 1-5, lower is better
	Energy     *int // 1-5
	SleepScore *float64 // 0-100
}

// ComputeWellnessScore blends mood, inverted stress, energy and the sleep
// proxy into a 0-100 integer. Missing signals substitute the neutral
// midpoint; HasData is false when nothing at all was logged so the caller
// can render "keep logging" instead of a fake 50.
func ComputeWellnessScore(in WellnessInput) models.WellnessScore {
	hasData := false

	mood := NeutralComponent
	if in.Mood != nil {
		mood = scaleUp(*in.Mood)
		hasData = true
	}

	stress := NeutralComponent
	if in.Stress != nil {
		stress = scaleDown(*in.Stress)
		hasData = true
	}

	energy := NeutralComponent
	if in.Energy != nil {
		energy = scaleUp(*in.Energy)
		hasData = true
	}

	sleep := NeutralComponent
	if in.SleepScore != nil {
		sleep = clamp(*in.SleepScore, 0, 100)
		hasData = true
	}

	blended := WellnessWeightMood*mood +
		WellnessWeightStress*stress +
		WellnessWeightEnergy*energy +
		WellnessWeightSleep*sleep

	return models.WellnessScore{
		Score:   clampInt(int(math.Round(blended)), 0, 100),
		HasData: hasData,
	}
}
