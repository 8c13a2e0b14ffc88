package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/savebonus/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	depositStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGreen)

	withdrawStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
// A row holding the single cell "---" renders as a separator.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table. The first column is left-aligned,
// the rest right-aligned.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && !isSeparator(row) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i == 0 {
				b.WriteString(valueStyle.Render(" " + cell + pad + " "))
			} else {
				b.WriteString(valueStyle.Render(" " + pad + cell + " "))
			}
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))

	return b.String()
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == "---"
}

func rule(widths []int, left, mid, right string) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
	return b.String()
}

// TransferLabel names the direction of a daily transfer amount.
func TransferLabel(v float64) string {
	switch s := FormatMoney(v); {
	case s == "0.00":
		return "No transfer needed"
	case strings.HasPrefix(s, "-"):
		return "Withdraw"
	default:
		return "Deposit"
	}
}

// RenderHeadline renders the recommended transfer, colored by direction.
func RenderHeadline(r model.Results) string {
	label := TransferLabel(r.AdjustmentDaily)
	style := depositStyle
	if label == "Withdraw" {
		style = withdrawStyle
	}
	return "  " + mutedStyle.Render("Required transfer (in/out): ") +
		style.Render(fmt.Sprintf("%s  %s", FormatSignedMoney(r.AdjustmentDaily), label))
}

// ResultsTable lays out the detail block of a calculation.
func ResultsTable(r model.Results) Table {
	return Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"One-day adjustment", FormatMoney(r.Adjustment)},
			{"Last month ADB", FormatMoney(r.LastMonthADB)},
			{"Required ADB (+500)", FormatMoney(r.CurrentMonthMinADB)},
			{"---"},
			{fmt.Sprintf("Current ADB (day %d)", r.BalanceAsOf), FormatMoney(r.CurrentMonthADB)},
			{"  change", FormatSignedMoney(r.ADBIncreaseVsLastMonth)},
			{"Projected ADB before", FormatMoney(r.ProjectedADBBeforeAdjustment)},
			{"  change", FormatSignedMoney(r.ProjectedADBChangeBeforeAdjustment)},
			{"Projected ADB after", FormatMoney(r.ProjectedADBAfterAdjustment)},
			{"  change", FormatSignedMoney(r.ProjectedADBChangeAfterAdjustment)},
			{"---"},
			{"Progress", fmt.Sprintf("%s/%s (%s)",
				FormatMoney(r.CurrentAmount), FormatMoney(r.TotalAmountNeeded), FormatPercent(r.Progress()))},
			{"Remaining days", fmt.Sprintf("%d of %d", r.RemainingDays, r.DaysInMonth)},
			{"Add/remove on 1st next month", FormatMoney(r.AmountToAddOrRemoveNextMonth)},
		},
	}
}

// RenderNotes renders front-end notices as dimmed bullet lines.
func RenderNotes(title string, notes []string) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(warnStyle.Render(title))
	b.WriteString("\n")
	for _, n := range notes {
		b.WriteString(mutedStyle.Render("  - " + n))
		b.WriteString("\n")
	}
	return b.String()
}
