// Package pipeline computes Save Bonus projections and their chart series.
package pipeline

import (
	"math"

	"github.com/theirongolddev/savebonus/internal/model"
)

// MinADBIncrement is the month-over-month ADB increase the bonus requires.
const MinADBIncrement = 500.0

// Compute derives every projection quantity for in over a month of
// daysInMonth days. Each step uses only quantities computed above it.
// Compute does no I/O and is safe to call concurrently.
func Compute(in model.Inputs, daysInMonth int) (model.Results, error) {
	if daysInMonth <= 0 {
		return model.Results{}, newEngineError(KindCalendarFault, ErrCalendarFault, "days in month = %d", daysInMonth)
	}
	if err := checkFinite(in); err != nil {
		return model.Results{}, err
	}

	r := model.Results{Inputs: in, DaysInMonth: daysInMonth}
	d := float64(daysInMonth)

	r.RemainingDays = daysInMonth - in.BalanceAsOf
	switch {
	case r.RemainingDays == 0:
		return model.Results{}, newEngineError(KindUndefinedAdjustment, ErrUndefinedAdjustment,
			"balance as of day %d is the last day of a %d-day month", in.BalanceAsOf, daysInMonth)
	case r.RemainingDays < 0:
		return model.Results{}, newEngineError(KindUndefinedAdjustment, ErrUndefinedAdjustment,
			"balance as of day %d is past the end of a %d-day month", in.BalanceAsOf, daysInMonth)
	}
	remaining := float64(r.RemainingDays)

	r.LastMonthADB = in.CurrentMonthADB - in.ADBIncreaseVsLastMonth
	r.CurrentMonthMinADB = r.LastMonthADB + MinADBIncrement
	r.CurrentAmount = float64(in.BalanceAsOf) * in.CurrentMonthADB
	r.TotalAmountNeeded = d * r.CurrentMonthMinADB
	r.IncreaseIfNoWithdrawals = remaining * in.AvailableBalance
	r.ProjectedIncreaseBeforeAdjustment = r.CurrentAmount + r.IncreaseIfNoWithdrawals
	r.ProjectedADBBeforeAdjustment = r.ProjectedIncreaseBeforeAdjustment / d
	r.BufferADB = in.Buffer * d
	r.Adjustment = r.TotalAmountNeeded - r.ProjectedIncreaseBeforeAdjustment + r.BufferADB
	r.ProjectedIncreaseAfterAdjustment = r.ProjectedIncreaseBeforeAdjustment + r.Adjustment
	r.ProjectedADBAfterAdjustment = r.ProjectedIncreaseAfterAdjustment / d
	r.ProjectedADBChangeBeforeAdjustment = r.ProjectedADBBeforeAdjustment - r.LastMonthADB
	r.ProjectedADBChangeAfterAdjustment = r.ProjectedADBAfterAdjustment - r.LastMonthADB
	r.AdjustmentDaily = r.Adjustment / remaining
	r.AmountToAddOrRemoveNextMonth = r.ProjectedADBAfterAdjustment - in.AvailableBalance + r.AdjustmentDaily

	if err := checkFiniteResults(r); err != nil {
		return model.Results{}, err
	}
	return r, nil
}

func checkFinite(in model.Inputs) error {
	fields := []struct {
		name string
		v    float64
	}{
		{"available balance", in.AvailableBalance},
		{"current month ADB", in.CurrentMonthADB},
		{"ADB increase vs last month", in.ADBIncreaseVsLastMonth},
		{"buffer", in.Buffer},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return newEngineError(KindNonFinite, ErrNonFinite, "%s = %v", f.name, f.v)
		}
	}
	return nil
}

// checkFiniteResults catches overflow from huge but finite inputs.
func checkFiniteResults(r model.Results) error {
	for _, v := range []float64{
		r.TotalAmountNeeded,
		r.ProjectedIncreaseBeforeAdjustment,
		r.Adjustment,
		r.ProjectedIncreaseAfterAdjustment,
		r.AdjustmentDaily,
		r.AmountToAddOrRemoveNextMonth,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return newEngineError(KindNonFinite, ErrNonFinite, "result overflowed")
		}
	}
	return nil
}
