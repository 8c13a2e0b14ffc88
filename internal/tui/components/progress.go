package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/savebonus/internal/tui/theme"
)

// ColorForProgress returns red/orange/accent/green as pct approaches the goal.
func ColorForProgress(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 1:
		return t.Deposit
	case pct >= 0.5:
		return t.Accent
	case pct >= 0.25:
		return t.Warn
	default:
		return t.Withdraw
	}
}

// ProgressBar renders a labeled goal bar: label, bar, then percentage.
func ProgressBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active

	shown := pct
	if shown < 0 {
		shown = 0
	}
	if shown > 1 {
		shown = 1
	}
	color := ColorForProgress(pct)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(shown) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
