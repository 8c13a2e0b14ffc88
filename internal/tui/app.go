// Package tui provides the interactive Bubble Tea front end for savebonus.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/savebonus/internal/calendar"
	"github.com/theirongolddev/savebonus/internal/cli"
	"github.com/theirongolddev/savebonus/internal/config"
	"github.com/theirongolddev/savebonus/internal/input"
	"github.com/theirongolddev/savebonus/internal/model"
	"github.com/theirongolddev/savebonus/internal/pipeline"
	"github.com/theirongolddev/savebonus/internal/report"
	"github.com/theirongolddev/savebonus/internal/tui/components"
	"github.com/theirongolddev/savebonus/internal/tui/theme"
)

const (
	tabReport = iota
	tabChart
)

var tabNames = []string{"Report", "Chart"}

const (
	maxContentWidth  = 120
	minContentHeight = 5
	minChartHeight   = 8
)

// App is the root Bubble Tea model: an input form, then a results view.
type App struct {
	calendar      calendar.Provider
	defaultBuffer float64
	days          int

	form *huh.Form
	vals *formValues

	results *model.Results
	series  model.Series
	err     error

	width     int
	height    int
	activeTab int
}

// NewApp creates the app with the form ready for input.
func NewApp(cal calendar.Provider, cfg config.Config) App {
	a := App{
		calendar:      cal,
		defaultBuffer: cfg.General.DefaultBuffer,
	}
	a.resetForm()
	return a
}

func (a *App) resetForm() {
	a.days = a.calendar.DaysInCurrentMonth()
	a.vals = &formValues{}
	a.form = newInputForm(a.vals, a.days, a.calendar.DefaultBalanceAsOf(), a.defaultBuffer)
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.width, maxContentWidth)).WithHeight(a.height)
	}
	a.results = nil
	a.series = model.Series{}
	a.err = nil
	a.activeTab = tabReport
}

// Results returns the last computed results, if any.
func (a App) Results() (model.Results, bool) {
	if a.results == nil {
		return model.Results{}, false
	}
	return *a.results, true
}

// Err returns the error from the last completed form, if any.
func (a App) Err() error {
	return a.err
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.form.Init()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width, maxContentWidth)).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return a, tea.Quit
		}
		if a.form != nil {
			return a.updateForm(msg)
		}

		switch key {
		case "q", "esc":
			return a, tea.Quit
		case "r":
			a.resetForm()
			return a, a.form.Init()
		case "tab", "right", "left":
			if a.results != nil {
				a.activeTab = (a.activeTab + 1) % len(tabNames)
			}
		case "1":
			a.activeTab = tabReport
		case "2":
			if a.results != nil {
				a.activeTab = tabChart
			}
		}
		return a, nil
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.compute()
		a.form = nil
		return a, nil
	case huh.StateAborted:
		return a, tea.Quit
	}
	return a, cmd
}

func (a *App) compute() {
	in, err := input.Parse(a.vals.raw(), a.days, a.defaultBuffer)
	if err != nil {
		a.err = err
		return
	}
	r, err := pipeline.Compute(in, a.days)
	if err != nil {
		a.err = err
		return
	}
	a.results = &r
	a.series = pipeline.BuildSeries(r)
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.form != nil {
		return a.form.View()
	}
	if a.width == 0 {
		return ""
	}
	if a.err != nil {
		return a.viewError()
	}
	return a.viewMain()
}

func (a App) viewError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Withdraw).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.Withdraw).Background(t.Surface).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Cannot compute a transfer"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.err.Error()))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("r start over · q quit"))

	return lipgloss.Place(a.width, max(a.height, 1), lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()), lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := a.renderTabBar(w)
	statusBar := a.renderStatusBar(w)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabChart:
		content = a.renderChartTab(cw, contentH)
	default:
		content = a.renderReportTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, max(a.height, 1), lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderTabBar(w int) string {
	t := theme.Active

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	activeStyle := lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent).Bold(true).Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	parts := []string{logoStyle.Render(" ◈ savebonus "), spaceStyle.Render(" ")}
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == a.activeTab {
			parts = append(parts, activeStyle.Render(label))
		} else {
			parts = append(parts, inactiveStyle.Render(label))
		}
	}

	return lipgloss.NewStyle().Background(t.Surface).Width(w).Render(strings.Join(parts, ""))
}

func (a App) renderStatusBar(w int) string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	for _, bind := range []struct{ key, desc string }{
		{"tab", "switch"}, {"r", "recalculate"}, {"q", "quit"},
	} {
		b.WriteString(descStyle.Render(" "))
		b.WriteString(keyStyle.Render(bind.key))
		b.WriteString(descStyle.Render(" " + bind.desc + " "))
	}
	right := descStyle.Render(fmt.Sprintf("%d days in month ", a.days))

	gap := max(w-lipgloss.Width(b.String())-lipgloss.Width(right), 0)
	return b.String() + descStyle.Render(strings.Repeat(" ", gap)) + right
}

func (a App) renderReportTab(cw int) string {
	t := theme.Active
	r := a.results
	if r == nil {
		return ""
	}

	transferColor := t.Deposit
	if cli.TransferLabel(r.AdjustmentDaily) == "Withdraw" {
		transferColor = t.Withdraw
	}

	metrics := components.MetricCardRow([]components.Metric{
		{
			Label: "Required transfer (in/out)",
			Value: cli.FormatSignedMoney(r.AdjustmentDaily),
			Note:  cli.TransferLabel(r.AdjustmentDaily),
			Color: transferColor,
		},
		{
			Label: "Required ADB (+500)",
			Value: cli.FormatMoney(r.CurrentMonthMinADB),
			Note:  "last month " + cli.FormatMoney(r.LastMonthADB),
		},
		{
			Label: "Projected ADB after",
			Value: cli.FormatMoney(r.ProjectedADBAfterAdjustment),
			Note:  "change " + cli.FormatSignedMoney(r.ProjectedADBChangeAfterAdjustment),
		},
		{
			Label: "1st of next month",
			Value: cli.FormatSignedMoney(r.AmountToAddOrRemoveNextMonth),
			Note:  "add or remove",
		},
	}, cw)

	inner := components.CardInnerWidth(cw)
	bar := components.ProgressBar("Progress", r.Progress(), 10, max(inner-16, 10))
	progressBody := bar + "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(
		fmt.Sprintf("%s of %s balance-days, %d of %d days left",
			cli.FormatMoney(r.CurrentAmount), cli.FormatMoney(r.TotalAmountNeeded),
			r.RemainingDays, r.DaysInMonth))
	progress := components.ContentCard("Month progress", progressBody, cw)

	widths := components.LayoutRow(cw, 2)
	details := components.ContentCard("Detailed metrics", detailBody(*r), widths[0])
	notes := components.ContentCard("Operational notes", notesBody(components.CardInnerWidth(widths[1])), widths[1])

	return lipgloss.JoinVertical(lipgloss.Left, metrics, progress, components.CardRow([]string{details, notes}))
}

func (a App) renderChartTab(cw, h int) string {
	inner := components.CardInnerWidth(cw)
	chartH := max(h-3, minChartHeight) // card border + title
	chart := components.LineChart(a.series, inner, chartH)
	return components.ContentCard("ADB change vs last month", chart, cw)
}

func detailBody(r model.Results) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	rows := []struct{ label, value string }{
		{"One-day adjustment", cli.FormatMoney(r.Adjustment)},
		{fmt.Sprintf("ADB as of day %d", r.BalanceAsOf), cli.FormatMoney(r.CurrentMonthADB)},
		{"  change", cli.FormatSignedMoney(r.ADBIncreaseVsLastMonth)},
		{"Projected ADB before", cli.FormatMoney(r.ProjectedADBBeforeAdjustment)},
		{"  change", cli.FormatSignedMoney(r.ProjectedADBChangeBeforeAdjustment)},
		{"Buffer", cli.FormatMoney(r.Buffer)},
	}
	labelW := 0
	for _, row := range rows {
		labelW = max(labelW, len(row.label))
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%-*s  ", labelW, row.label))+valueStyle.Render(row.value))
	}
	return strings.Join(lines, "\n")
}

func notesBody(width int) string {
	t := theme.Active
	warnStyle := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface).Width(width)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Width(width)

	lines := make([]string, 0, len(report.OperationalNotices)+1)
	for _, n := range report.OperationalNotices {
		lines = append(lines, warnStyle.Render("• "+n))
	}
	lines = append(lines, dimStyle.Render(report.Assumption))
	return strings.Join(lines, "\n")
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
