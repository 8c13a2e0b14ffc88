package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/savebonus/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	widths := LayoutRow(100, 3)
	if len(widths) != 3 {
		t.Fatalf("len(LayoutRow) = %d, want 3", len(widths))
	}
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if sum != 100 {
		t.Fatalf("widths sum = %d, want 100", sum)
	}
	if widths[0] != 34 || widths[2] != 33 {
		t.Fatalf("LayoutRow(100, 3) = %v, want [34 33 33]", widths)
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow(10, 0) should be nil")
	}
}

func TestCardRow_PadsShortCardsWithBackground(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := MetricCard(Metric{Label: "Daily", Value: "+1,675.00"}, 22)
	tallCard := ContentCard("Notes", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatalf("setup: short card has %d lines, tall card %d", shortLines, tallLines)
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("padding line %d has no ANSI styling: %q", i, lines[i])
		}
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 44 {
			t.Errorf("line %d width = %d, want 44", i, w)
		}
	}
}

func TestMetricCardRow_FillsWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Deposit", Value: "+1,675.00", Color: theme.Active.Deposit},
		{Label: "Progress", Value: "5.0%"},
		{Label: "Next month", Value: "+3,125.00", Note: "one-shot"},
	}, 91)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 91 {
			t.Errorf("line %d width = %d, want 91", i, w)
		}
	}
	if !strings.Contains(row, "one-shot") {
		t.Error("note text missing from metric card")
	}
	if MetricCardRow(nil, 80) != "" {
		t.Error("MetricCardRow(nil) should be empty")
	}
}

func TestCardInnerWidth(t *testing.T) {
	if got := CardInnerWidth(40); got != 36 {
		t.Fatalf("CardInnerWidth(40) = %d, want 36", got)
	}
	if got := CardInnerWidth(5); got != 10 {
		t.Fatalf("CardInnerWidth(5) = %d, want 10", got)
	}
}
