package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/savebonus/internal/model"
	"github.com/theirongolddev/savebonus/internal/tui/theme"
)

const (
	glyphBefore = '○'
	glyphAfter  = '●'
	glyphBoth   = '◉'
	glyphZero   = '┈'
)

// LineChart plots the before/after ADB-change polylines over the month.
// width and height are the full chart size including axis labels.
func LineChart(s model.Series, width, height int) string {
	if len(s.Before) == 0 || len(s.After) == 0 {
		return ""
	}
	t := theme.Active

	lastDay := max(s.Before[len(s.Before)-1].Day, s.After[len(s.After)-1].Day)
	if lastDay < 2 {
		lastDay = 2
	}

	lo, hi := 0.0, 0.0
	for _, p := range append(append([]model.Point{}, s.Before...), s.After...) {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	if hi == lo {
		hi = lo + 1
	}

	// Y-axis labels: top, zero, bottom
	yLabels := map[int]string{}
	plotH := max(height-3, 3) // x-axis line, x labels, legend
	toRow := func(v float64) int {
		return int(math.Round((hi - v) / (hi - lo) * float64(plotH-1)))
	}
	yLabels[0] = formatChartLabel(hi)
	yLabels[plotH-1] = formatChartLabel(lo)
	yLabels[toRow(0)] = "0"
	yLabelW := 1
	for _, l := range yLabels {
		yLabelW = max(yLabelW, len(l))
	}

	plotW := max(width-yLabelW-1, 10)
	toCol := func(day int) int {
		return int(math.Round(float64(day-1) / float64(lastDay-1) * float64(plotW-1)))
	}

	grid := make([][]rune, plotH)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", plotW))
	}
	zeroRow := toRow(0)
	for c := range grid[zeroRow] {
		grid[zeroRow][c] = glyphZero
	}

	plot := func(points []model.Point, glyph rune) {
		for i := 1; i < len(points); i++ {
			p0, p1 := points[i-1], points[i]
			c0, c1 := toCol(p0.Day), toCol(p1.Day)
			for c := c0; c <= c1; c++ {
				frac := 0.0
				if c1 > c0 {
					frac = float64(c-c0) / float64(c1-c0)
				}
				row := toRow(p0.Value + frac*(p1.Value-p0.Value))
				switch grid[row][c] {
				case glyph, glyphBoth:
				case glyphBefore, glyphAfter:
					grid[row][c] = glyphBoth
				default:
					grid[row][c] = glyph
				}
			}
		}
	}
	plot(s.Before, glyphBefore)
	plot(s.After, glyphAfter)

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	beforeStyle := lipgloss.NewStyle().Foreground(t.Before).Background(t.Surface)
	afterStyle := lipgloss.NewStyle().Foreground(t.After).Background(t.Surface)
	bothStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)

	var b strings.Builder
	for r, row := range grid {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, yLabels[r])))
		b.WriteString(axisStyle.Render("│"))
		for _, g := range row {
			switch g {
			case glyphBefore:
				b.WriteString(beforeStyle.Render(string(g)))
			case glyphAfter:
				b.WriteString(afterStyle.Render(string(g)))
			case glyphBoth:
				b.WriteString(bothStyle.Render(string(g)))
			default:
				b.WriteString(axisStyle.Render(string(g)))
			}
		}
		b.WriteString("\n")
	}

	// X-axis with day labels at the polyline vertices
	b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW) + "└" + strings.Repeat("─", plotW)))
	b.WriteString("\n")
	labels := []rune(strings.Repeat(" ", plotW))
	for _, p := range s.After {
		lbl := fmt.Sprintf("%d", p.Day)
		pos := min(toCol(p.Day), plotW-len(lbl))
		if pos > 0 && labels[pos-1] != ' ' {
			continue
		}
		copy(labels[pos:], []rune(lbl))
	}
	b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW+1) + string(labels)))
	b.WriteString("\n")

	b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(beforeStyle.Render(string(glyphBefore) + " Before adjustment"))
	b.WriteString(axisStyle.Render("   "))
	b.WriteString(afterStyle.Render(string(glyphAfter) + " After adjustment"))

	return b.String()
}

func formatChartLabel(v float64) string {
	if v < 0 {
		return "-" + formatChartLabel(-v)
	}
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
