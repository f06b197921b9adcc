package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/vitaltrack/backend/internal/models"
)

// DefaultSuggestionLimit caps the contextual suggestions shown in the
// default dashboard view. The full generated set stays queryable.
const DefaultSuggestionLimit = 3

// RuleInput is everything the insight rules may look at. It is assembled by
// the caller from current metrics, streaks, analyzer output and raw
// thresholds; rules never reach outside of it.
type RuleInput struct {
	Now             time.Time
	Recovery        *models.RecoveryComponents
	Wellness        *models.WellnessScore
	HydrationStreak models.StreakResult
	HydrationToday  *models.HydrationLog
	SleepAvg        *float64 // mean nightly hours over the recent window
	SleepGoalHours  float64
	WellnessTrend   models.TrendDirection
	SleepTrend      models.TrendDirection
	Correlations    []models.CorrelationResult
	Patterns        models.PatternSummary
}

func (in RuleInput) correlation(metricA, metricB string) *models.CorrelationResult {
	for i := range in.Correlations {
		c := &in.Correlations[i]
		if c.MetricA == metricA && c.MetricB == metricB {
			return c
		}
	}
	return nil
}

// rule is one independent predicate producing zero or one candidate insight.
// Rules form a closed set evaluated in order; no rule depends on another rule
// having fired.
type rule struct {
	key  string
	eval func(RuleInput) *models.Insight
}

func newInsight(in RuleInput, key string, typ models.InsightType, priority models.InsightPriority, category, title, description, icon string) *models.Insight {
	return &models.Insight{
		Type:        typ,
		Priority:    priority,
		Category:    category,
		RuleKey:     key,
		Title:       title,
		Description: description,
		Icon:        icon,
		CreatedAt:   in.Now,
	}
}

var rules = []rule{
	{
		key: "hydration:streak",
		eval: func(in RuleInput) *models.Insight {
			s := in.HydrationStreak
			if s.Current < 3 {
				return nil
			}
			priority := models.PriorityMedium
			desc := fmt.Sprintf("Você bateu sua meta de água por %d dias seguidos.", s.Current)
			if s.Current >= 7 {
				priority = models.PriorityHigh
			}
			if s.Current >= s.Best {
				desc += " Sua melhor sequência até agora!"
			}
			return newInsight(in, "hydration:streak", models.InsightTypeAchievement, priority,
				"hydration", "Sequência de hidratação", desc, "droplet")
		},
	},
	{
		key: "hydration:low_today",
		eval: func(in RuleInput) *models.Insight {
			h := in.HydrationToday
			if h == nil || h.GoalMl <= 0 || h.TotalMl*2 >= h.GoalMl {
				return nil
			}
			ins := newInsight(in, "hydration:low_today", models.InsightTypeAlert, models.PriorityMedium,
				"hydration", "Hidratação baixa hoje",
				fmt.Sprintf("Você bebeu %s de %s hoje (%s da meta).",
					FormatVolume(h.TotalMl), FormatVolume(h.GoalMl), FormatGoalRate(h.TotalMl, h.GoalMl)),
				"droplet")
			ins.Action = &models.InsightAction{Label: "Registrar água", Route: "/hydration"}
			return ins
		},
	},
	{
		key: "hydration:restart",
		eval: func(in RuleInput) *models.Insight {
			s := in.HydrationStreak
			if s.Current != 0 || s.Best < 5 {
				return nil
			}
			ins := newInsight(in, "hydration:restart", models.InsightTypeRecommendation, models.PriorityLow,
				"hydration", "Retome sua sequência",
				fmt.Sprintf("Sua melhor sequência de hidratação foi de %d dias. Que tal recomeçar hoje?", s.Best),
				"droplet")
			ins.Action = &models.InsightAction{Label: "Registrar água", Route: "/hydration"}
			return ins
		},
	},
	{
		key: "recovery:rest",
		eval: func(in RuleInput) *models.Insight {
			r := in.Recovery
			if r == nil || r.Measured == 0 || r.Score >= RecoveryLightMin {
				return nil
			}
			return newInsight(in, "recovery:rest", models.InsightTypeAlert, models.PriorityCritical,
				"recovery", "Seu corpo pede descanso",
				fmt.Sprintf("Recuperação em %d/100. Descansar hoje protege os próximos treinos.", r.Score),
				"battery-low")
		},
	},
	{
		key: "recovery:train_hard",
		eval: func(in RuleInput) *models.Insight {
			r := in.Recovery
			if r == nil || r.Measured == 0 || r.Score < RecoveryTrainHardMin {
				return nil
			}
			ins := newInsight(in, "recovery:train_hard", models.InsightTypeRecommendation, models.PriorityMedium,
				"recovery", "Pode treinar pesado",
				fmt.Sprintf("Recuperação em %d/100. Bom dia para um treino intenso.", r.Score),
				"dumbbell")
			ins.Action = &models.InsightAction{Label: "Ver treino", Route: "/workouts"}
			return ins
		},
	},
	{
		key: "wellness:declining",
		eval: func(in RuleInput) *models.Insight {
			if in.Wellness == nil || !in.Wellness.HasData || in.WellnessTrend != models.TrendDown {
				return nil
			}
			return newInsight(in, "wellness:declining", models.InsightTypeTrend, models.PriorityHigh,
				"wellness", "Seu bem-estar vem caindo",
				"Humor, estresse e energia pioraram em relação à semana anterior. Vale olhar sono e carga de treino.",
				"trending-down")
		},
	},
	{
		key: "wellness:improving",
		eval: func(in RuleInput) *models.Insight {
			if in.Wellness == nil || !in.Wellness.HasData || in.WellnessTrend != models.TrendUp {
				return nil
			}
			return newInsight(in, "wellness:improving", models.InsightTypeTrend, models.PriorityLow,
				"wellness", "Seu bem-estar está melhorando",
				"Os últimos dias foram melhores que a semana anterior. Continue assim!",
				"trending-up")
		},
	},
	{
		key: "sleep:deficit",
		eval: func(in RuleInput) *models.Insight {
			if in.SleepAvg == nil || in.SleepGoalHours <= 0 || *in.SleepAvg >= in.SleepGoalHours-1 {
				return nil
			}
			return newInsight(in, "sleep:deficit", models.InsightTypeAlert, models.PriorityHigh,
				"sleep", "Sono abaixo da meta",
				fmt.Sprintf("Você dormiu em média %.1fh por noite, abaixo da meta de %.0fh.",
					*in.SleepAvg, in.SleepGoalHours),
				"moon")
		},
	},
	{
		key: "correlation:sleep_stress",
		eval: func(in RuleInput) *models.Insight {
			c := in.correlation(MetricSleepQuality, MetricStress)
			if c == nil || !c.Reliable || c.Coefficient < 0.4 {
				return nil
			}
			return newInsight(in, "correlation:sleep_stress", models.InsightTypeCorrelation, models.PriorityMedium,
				"sleep", "Sono e estresse andam juntos",
				fmt.Sprintf("Noites bem dormidas reduzem seu estresse no dia seguinte (associação %s).", c.Strength),
				"link")
		},
	},
	{
		key: "correlation:workout_mood",
		eval: func(in RuleInput) *models.Insight {
			c := in.correlation(MetricWorkout, MetricMood)
			if c == nil || !c.Reliable || c.Coefficient < 0.4 {
				return nil
			}
			return newInsight(in, "correlation:workout_mood", models.InsightTypeCorrelation, models.PriorityMedium,
				"training", "Treinar melhora seu humor",
				fmt.Sprintf("Seu humor é melhor em dias de treino (associação %s).", c.Strength),
				"link")
		},
	},
	{
		key: "pattern:best_day",
		eval: func(in RuleInput) *models.Insight {
			days := in.Patterns.BestDays
			if len(days) == 0 || days[0].Samples < MinCorrelationSamples {
				return nil
			}
			return newInsight(in, "pattern:best_day", models.InsightTypePattern, models.PriorityLow,
				"mood", "Seu melhor dia da semana",
				fmt.Sprintf("Seu humor costuma ser melhor em %s (média %.1f/5).", days[0].Weekday, days[0].AvgMood),
				"calendar")
		},
	},
	{
		key: "pattern:best_time",
		eval: func(in RuleInput) *models.Insight {
			t := in.Patterns.BestTimeOfDay
			if t == nil || t.Samples < MinCorrelationSamples {
				return nil
			}
			return newInsight(in, "pattern:best_time", models.InsightTypePattern, models.PriorityLow,
				"mood", "Seu melhor horário",
				fmt.Sprintf("Pela %s seu humor tende a ser mais alto (média %.1f/5).", t.Bucket, t.AvgMood),
				"clock")
		},
	},
	{
		key: "prediction:energy_dip",
		eval: func(in RuleInput) *models.Insight {
			if in.SleepTrend != models.TrendDown || in.Recovery == nil ||
				in.Recovery.Measured == 0 || in.Recovery.Score >= RecoveryNormalMin {
				return nil
			}
			return newInsight(in, "prediction:energy_dip", models.InsightTypePrediction, models.PriorityMedium,
				"energy", "Energia pode cair amanhã",
				"Seu sono vem caindo e a recuperação está parcial. Priorizar o sono hoje evita um dia arrastado amanhã.",
				"activity")
		},
	},
}

// GenerateInsights evaluates every rule against the input and reconciles the
// candidates with the previously persisted set:
//
//   - a dismissed prior insight suppresses its rule permanently
//   - a snoozed prior insight is carried through untouched until it expires
//   - an expired snooze whose condition still holds regenerates fresh; one
//     whose condition resolved is dropped
//   - an active prior insight keeps its identity (ID, CreatedAt, Viewed) so
//     regeneration is idempotent
//
// The result is sorted by priority, then recency. Newly created insights have
// an empty ID; the persistence layer assigns one.
func GenerateInsights(in RuleInput, prior []models.Insight) []models.Insight {
	priorByKey := make(map[string]*models.Insight, len(prior))
	for i := range prior {
		priorByKey[prior[i].RuleKey] = &prior[i]
	}

	out := make([]models.Insight, 0, len(rules))
	for _, r := range rules {
		p := priorByKey[r.key]

		if p != nil && p.Dismissed {
			continue
		}
		if p != nil && p.Snoozed(in.Now) {
			out = append(out, *p)
			continue
		}

		cand := r.eval(in)
		if cand == nil {
			continue
		}

		if p != nil {
			cand.ID = p.ID
			if p.ExpiresAt == nil {
				// Still active: keep its identity instead of resetting it.
				cand.CreatedAt = p.CreatedAt
				cand.Viewed = p.Viewed
			}
			// An expired snooze falls through with a fresh CreatedAt and
			// Viewed=false: the insight reappears as new.
		}
		out = append(out, *cand)
	}

	SortInsights(out)
	return out
}

// SortInsights orders insights by priority rank, then most recent first.
func SortInsights(insights []models.Insight) {
	sort.SliceStable(insights, func(i, j int) bool {
		ri, rj := insights[i].Priority.Rank(), insights[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return insights[i].CreatedAt.After(insights[j].CreatedAt)
	})
}

// TopSuggestions returns the first n insights that are visible right now
// (not snoozed). Pass DefaultSuggestionLimit for the dashboard cap.
func TopSuggestions(insights []models.Insight, n int, now time.Time) []models.Insight {
	if n <= 0 {
		n = DefaultSuggestionLimit
	}
	out := make([]models.Insight, 0, n)
	for i := range insights {
		if insights[i].Snoozed(now) {
			continue
		}
		out = append(out, insights[i])
		if len(out) == n {
			break
		}
	}
	return out
}
