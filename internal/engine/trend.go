package engine

import "github.com/vitaltrack/backend/internal/models"

// trendBandPercent is the dead band around zero change: moves within ±5% of
// the prior mean are reported as stable.
const trendBandPercent = 5.0

// ClassifyTrend compares the mean of a recent window against the mean of the
// prior window and classifies the move. An empty prior window with recent
// activity reads as up; with no data on either side the result is stable.
func ClassifyTrend(recent, prior []float64) models.TrendDirection {
	if len(recent) == 0 {
		return models.TrendStable
	}

	recentMean := mean(recent)
	if len(prior) == 0 {
		if recentMean > 0 {
			return models.TrendUp
		}
		return models.TrendStable
	}

	priorMean := mean(prior)
	if priorMean == 0 {
		if recentMean > 0 {
			return models.TrendUp
		}
		return models.TrendStable
	}

	changePercent := (recentMean - priorMean) / priorMean * 100
	switch {
	case changePercent > trendBandPercent:
		return models.TrendUp
	case changePercent < -trendBandPercent:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}

// SplitHalves splits an ordered series into prior and recent halves for
// trend classification. The recent half gets the extra element when the
// length is odd.
func SplitHalves(values []float64) (prior, recent []float64) {
	mid := len(values) / 2
	return values[:mid], values[mid:]
}
