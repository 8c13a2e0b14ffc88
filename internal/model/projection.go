// Package model defines the value types shared across savebonus.
package model

// DefaultBuffer is the safety margin ADB used when the user leaves it blank.
const DefaultBuffer = 50.0

// Inputs holds the figures copied from the bank portal.
type Inputs struct {
	AvailableBalance       float64 `json:"available_balance"`
	CurrentMonthADB        float64 `json:"current_month_adb"`
	ADBIncreaseVsLastMonth float64 `json:"adb_increase_vs_last_month"`
	BalanceAsOf            int     `json:"balance_as_of"` // day of month the figures were measured
	Buffer                 float64 `json:"buffer"`
}

// Results holds the inputs and every quantity derived from them for one
// month. Only pipeline.Compute builds a Results; treat it as read-only.
type Results struct {
	Inputs
	DaysInMonth int `json:"days_in_month"`

	RemainingDays      int     `json:"remaining_days"`
	LastMonthADB       float64 `json:"last_month_adb"`
	CurrentMonthMinADB float64 `json:"current_month_min_adb"`

	// Day-weighted balance sums (ADB × days).
	CurrentAmount                     float64 `json:"current_amount"`
	TotalAmountNeeded                 float64 `json:"total_amount_needed"`
	IncreaseIfNoWithdrawals           float64 `json:"increase_if_no_withdrawals"`
	ProjectedIncreaseBeforeAdjustment float64 `json:"projected_increase_before_adjustment"`
	BufferADB                         float64 `json:"buffer_adb"`
	Adjustment                        float64 `json:"adjustment"`
	ProjectedIncreaseAfterAdjustment  float64 `json:"projected_increase_after_adjustment"`

	ProjectedADBBeforeAdjustment       float64 `json:"projected_adb_before_adjustment"`
	ProjectedADBAfterAdjustment        float64 `json:"projected_adb_after_adjustment"`
	ProjectedADBChangeBeforeAdjustment float64 `json:"projected_adb_change_before_adjustment"`
	ProjectedADBChangeAfterAdjustment  float64 `json:"projected_adb_change_after_adjustment"`

	AdjustmentDaily              float64 `json:"adjustment_daily"`
	AmountToAddOrRemoveNextMonth float64 `json:"amount_to_add_or_remove_next_month"`
}

// Progress returns CurrentAmount / TotalAmountNeeded, or 0 when nothing is needed.
func (r Results) Progress() float64 {
	if r.TotalAmountNeeded == 0 {
		return 0
	}
	return r.CurrentAmount / r.TotalAmountNeeded
}

// Point is one vertex of a chart polyline.
type Point struct {
	Day   int     `json:"day"`
	Value float64 `json:"value"`
}

// Series holds the ADB-change polylines without and with the adjustment.
type Series struct {
	Before []Point `json:"before"`
	After  []Point `json:"after"`
}
