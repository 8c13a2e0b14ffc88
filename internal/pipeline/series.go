package pipeline

import "github.com/theirongolddev/savebonus/internal/model"

// BuildSeries returns the before/after ADB-change polylines for charting.
// Both start at (1, 0), pass through the measured change on the as-of day,
// and end at the projected change on the last day of the month.
func BuildSeries(r model.Results) model.Series {
	common := []model.Point{
		{Day: 1, Value: 0},
		{Day: r.BalanceAsOf, Value: r.ADBIncreaseVsLastMonth},
	}

	before := append(append(make([]model.Point, 0, 3), common...),
		model.Point{Day: r.DaysInMonth, Value: r.ProjectedADBChangeBeforeAdjustment})
	after := append(append(make([]model.Point, 0, 3), common...),
		model.Point{Day: r.DaysInMonth, Value: r.ProjectedADBChangeAfterAdjustment})

	return model.Series{Before: before, After: after}
}
