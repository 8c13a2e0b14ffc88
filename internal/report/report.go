// Package report renders calculation results as text for front ends.
// Rendering depends on the Results value alone.
package report

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/savebonus/internal/cli"
	"github.com/theirongolddev/savebonus/internal/model"
)

// OperationalNotices are shown by front ends next to every result.
var OperationalNotices = []string{
	"Daily transaction cutoff applies at 10:00 PM (SGT)",
	"No account movements are processed on Sundays",
}

// Assumption qualifies every projection.
const Assumption = "The projections assume no additional inflows or outflows for the remainder of the month. " +
	"Any account activity will materially impact the computed figures."

// Headline returns the one-line transfer recommendation.
func Headline(r model.Results) string {
	return fmt.Sprintf("Required Transfer (in/out): %s (%s)",
		cli.FormatSignedMoney(r.AdjustmentDaily), cli.TransferLabel(r.AdjustmentDaily))
}

// Format renders the plain-text report.
func Format(r model.Results) string {
	var b strings.Builder
	b.WriteString(Headline(r))
	b.WriteString("\n")
	b.WriteString("Positive = Deposit; Negative = Withdraw\n\n")
	b.WriteString("Detailed Metrics\n")
	for _, line := range detailLines(r, "  *") {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Markdown renders the report as markdown, suitable for glamour.
func Markdown(r model.Results) string {
	var b strings.Builder
	b.WriteString("### TL;DR\n")
	fmt.Fprintf(&b, "##### Required Transfer (in/out): %s\n", cli.FormatSignedMoney(r.AdjustmentDaily))
	fmt.Fprintf(&b, "%s. Positive = Deposit; Negative = Withdraw\n\n", cli.TransferLabel(r.AdjustmentDaily))
	b.WriteString("### Detailed Metrics\n")
	for _, line := range detailLines(r, "    -") {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// Notices renders the operational notices block.
func Notices() string {
	var b strings.Builder
	b.WriteString("Operational Notes:\n")
	for _, n := range OperationalNotices {
		b.WriteString("- ")
		b.WriteString(n)
		b.WriteString("\n")
	}
	return b.String()
}

func detailLines(r model.Results, sub string) []string {
	return []string{
		"- For One-Day Adjustment: " + cli.FormatMoney(r.Adjustment),
		"- Last Month ADB: " + cli.FormatMoney(r.LastMonthADB),
		"- Current Month Average Daily Balance:",
		fmt.Sprintf("%s Current ADB (as of day %d): %s, Change: %s", sub, r.BalanceAsOf,
			cli.FormatMoney(r.CurrentMonthADB), cli.FormatSignedMoney(r.ADBIncreaseVsLastMonth)),
		fmt.Sprintf("%s Projected ADB before adjustment: %s, Change: %s", sub,
			cli.FormatMoney(r.ProjectedADBBeforeAdjustment), cli.FormatSignedMoney(r.ProjectedADBChangeBeforeAdjustment)),
		fmt.Sprintf("%s Projected ADB after adjustment: %s, Change: %s", sub,
			cli.FormatMoney(r.ProjectedADBAfterAdjustment), cli.FormatSignedMoney(r.ProjectedADBChangeAfterAdjustment)),
		fmt.Sprintf("- Progress: %s/%s", cli.FormatMoney(r.CurrentAmount), cli.FormatMoney(r.TotalAmountNeeded)),
		"- Amount to add/remove on 1st next month: " + cli.FormatMoney(r.AmountToAddOrRemoveNextMonth),
	}
}
