package engine

import (
	"fmt"
	"math"
)

// FormatVolume renders a millilitre amount the way the app displays it:
// litres with one decimal from 1L up, millilitres below.
func FormatVolume(ml int) string {
	if ml >= 1000 {
		return fmt.Sprintf("%.1fL", float64(ml)/1000)
	}
	return fmt.Sprintf("%dml", ml)
}

// GoalRate returns total/goal as a fraction, 0 when there is no goal.
func GoalRate(total, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return float64(total) / float64(goal)
}

// FormatGoalRate renders goal adherence as a whole percentage.
func FormatGoalRate(total, goal int) string {
	return fmt.Sprintf("%d%%", int(math.Round(GoalRate(total, goal)*100)))
}
