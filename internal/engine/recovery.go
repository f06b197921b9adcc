package engine

import (
	"math"

	"github.com/vitaltrack/backend/internal/models"
)

// DefaultSleepGoalHours is the duration a full sleep component assumes when
// the user hasn't configured their own goal.
const DefaultSleepGoalHours = 8.0

// RecoveryWeights blends the four normalized components into the recovery
// score. The split mirrors the wellness weighting pattern; it is a value
// rather than inlined constants so product can re-tune it without touching
// the math. Pending sign-off, see config.
type RecoveryWeights struct {
	Sleep    float64
	Energy   float64
	Stress   float64
	Soreness float64
}

// DefaultRecoveryWeights is the shipped blend.
var DefaultRecoveryWeights = RecoveryWeights{
	Sleep:    0.30,
	Energy:   0.25,
	Stress:   0.25,
	Soreness: 0.20,
}

// RecoveryInput carries one day's raw signals. Nil means "not logged" and is
// substituted with the neutral midpoint, never with the worst value.
type RecoveryInput struct {
	SleepHours   *float64
	SleepQuality *int // 1-5
	Energy       *int // 1-5
	Stress       *int // 1-5, lower is better
	Soreness     *float64 // 1-5, lower is better
}

// ComputeRecoveryComponents normalizes each signal to 0-100 and blends them
// with DefaultRecoveryWeights.
func ComputeRecoveryComponents(in RecoveryInput, sleepGoalHours float64) models.RecoveryComponents {
	return ComputeRecoveryComponentsWeighted(in, sleepGoalHours, DefaultRecoveryWeights)
}

// ComputeRecoveryComponentsWeighted is ComputeRecoveryComponents with an
// explicit weight set.
func ComputeRecoveryComponentsWeighted(in RecoveryInput, sleepGoalHours float64, w RecoveryWeights) models.RecoveryComponents {
	measured := 0

	sleep, ok := SleepScore(in.SleepHours, in.SleepQuality, sleepGoalHours)
	if ok {
		measured++
	}

	energy := NeutralComponent
	if in.Energy != nil {
		energy = scaleUp(*in.Energy)
		measured++
	}

	// Stress and soreness are inverted: a low report is a good sign.
	stress := NeutralComponent
	if in.Stress != nil {
		stress = scaleDown(*in.Stress)
		measured++
	}

	soreness := NeutralComponent
	if in.Soreness != nil {
		v := int(math.Round(clamp(*in.Soreness, ScaleMin, ScaleMax)))
		soreness = scaleDown(v)
		measured++
	}

	blended := w.Sleep*sleep + w.Energy*energy + w.Stress*stress + w.Soreness*soreness
	score := clampInt(int(math.Round(blended)), 0, 100)

	return models.RecoveryComponents{
		Sleep:    sleep,
		Energy:   energy,
		Stress:   stress,
		Soreness: soreness,
		Score:    score,
		Measured: measured,
	}
}

// SleepScore converts a night of sleep into a 0-100 component. Duration is
// scaled against the goal and capped, so oversleeping never exceeds 100, and
// the quality rating folds in as a multiplier between 0.5 (quality 1) and 1.0
// (quality 5). A missing quality uses the neutral midpoint; a missing
// duration yields the neutral component and ok=false so callers can tell a
// placeholder from a measurement.
func SleepScore(hours *float64, quality *int, goalHours float64) (score float64, ok bool) {
	if hours == nil {
		return NeutralComponent, false
	}
	if goalHours <= 0 {
		goalHours = DefaultSleepGoalHours
	}

	h := math.Max(*hours, 0)
	base := clamp(h/goalHours, 0, 1) * 100

	q := NeutralScaleValue
	if quality != nil {
		q = clampScale(*quality)
	}
	mult := 0.5 + 0.5*float64(q-ScaleMin)/float64(ScaleMax-ScaleMin)

	return base * mult, true
}

// Training recommendation tiers. Thresholds are deterministic; the rationale
// strings are product copy.
const (
	RecoveryTrainHardMin = 80
	RecoveryNormalMin    = 60
	RecoveryLightMin     = 40
)

// GetTrainingRecommendation maps a recovery score onto a suggested training
// intensity for the day.
func GetTrainingRecommendation(score int) models.TrainingRecommendation {
	switch {
	case score >= RecoveryTrainHardMin:
		return models.TrainingRecommendation{
			Level:     "intenso",
			Title:     "Pode treinar pesado",
			Rationale: "Recuperação alta: sono, energia e músculos prontos para um treino intenso.",
		}
	case score >= RecoveryNormalMin:
		return models.TrainingRecommendation{
			Level:     "normal",
			Title:     "Treino normal",
			Rationale: "Recuperação boa. Mantenha o plano de treino de hoje.",
		}
	case score >= RecoveryLightMin:
		return models.TrainingRecommendation{
			Level:     "leve",
			Title:     "Treino leve ou recuperação ativa",
			Rationale: "Recuperação parcial. Prefira volume baixo, mobilidade ou caminhada.",
		}
	default:
		return models.TrainingRecommendation{
			Level:     "descanso",
			Title:     "Dia de descanso",
			Rationale: "Recuperação baixa. Descansar hoje protege os próximos treinos.",
		}
	}
}
