package server

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/theirongolddev/savebonus/internal/cli"
	"github.com/theirongolddev/savebonus/internal/input"
	"github.com/theirongolddev/savebonus/internal/model"
)

type formFields struct {
	AvailableBalance       string
	CurrentMonthADB        string
	ADBIncreaseVsLastMonth string
	BalanceAsOf            string
	Buffer                 string
}

func (f formFields) raw() input.Raw {
	return input.Raw{
		AvailableBalance:       f.AvailableBalance,
		CurrentMonthADB:        f.CurrentMonthADB,
		ADBIncreaseVsLastMonth: f.ADBIncreaseVsLastMonth,
		BalanceAsOf:            f.BalanceAsOf,
		Buffer:                 f.Buffer,
	}
}

type pageData struct {
	DaysInMonth int
	Form        formFields
	Error       string
	Report      string
	Chart       *chartData
	Notices     []string
	Assumption  string
}

// Chart geometry in SVG user units.
const (
	chartW   = 640.0
	chartH   = 260.0
	chartPad = 48.0
)

type axisLabel struct {
	X, Y float64
	Text string
}

type chartData struct {
	Width, Height float64
	Before        string // polyline points
	After         string
	ZeroY         float64
	Left, Right   float64
	XLabels       []axisLabel
	YLabels       []axisLabel
}

// newChartData projects both series into SVG coordinates.
func newChartData(s model.Series) *chartData {
	if len(s.Before) == 0 || len(s.After) == 0 {
		return nil
	}

	lastDay := max(s.Before[len(s.Before)-1].Day, s.After[len(s.After)-1].Day, 2)
	lo, hi := 0.0, 0.0
	for _, pts := range [][]model.Point{s.Before, s.After} {
		for _, p := range pts {
			lo = math.Min(lo, p.Value)
			hi = math.Max(hi, p.Value)
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	x := func(day int) float64 {
		return chartPad + float64(day-1)/float64(lastDay-1)*(chartW-2*chartPad)
	}
	y := func(v float64) float64 {
		return chartPad/2 + (hi-v)/(hi-lo)*(chartH-1.5*chartPad)
	}
	points := func(pts []model.Point) string {
		parts := make([]string, len(pts))
		for i, p := range pts {
			parts[i] = fmt.Sprintf("%.1f,%.1f", x(p.Day), y(p.Value))
		}
		return strings.Join(parts, " ")
	}

	c := &chartData{
		Width:  chartW,
		Height: chartH,
		Before: points(s.Before),
		After:  points(s.After),
		ZeroY:  y(0),
		Left:   x(1),
		Right:  x(lastDay),
		YLabels: []axisLabel{
			{X: chartPad - 6, Y: y(hi), Text: cli.FormatMoney(hi)},
			{X: chartPad - 6, Y: y(lo), Text: cli.FormatMoney(lo)},
		},
	}
	seen := map[int]bool{}
	for _, p := range s.After {
		if seen[p.Day] {
			continue
		}
		seen[p.Day] = true
		c.XLabels = append(c.XLabels, axisLabel{X: x(p.Day), Y: chartH - chartPad/4, Text: fmt.Sprintf("%d", p.Day)})
	}
	return c
}

var pageFuncs = template.FuncMap{
	"px": func(v float64) string { return fmt.Sprintf("%.1f", v) },
}

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Save Bonus Calculator</title>
<style>
body { font-family: system-ui, sans-serif; background: #100F0F; color: #FFFCF0; max-width: 760px; margin: 2rem auto; padding: 0 1rem; }
label { display: block; margin-top: .75rem; color: #878580; }
input { width: 100%; padding: .4rem; background: #1C1B1A; color: #FFFCF0; border: 1px solid #403E3C; border-radius: 4px; }
button { margin-top: 1rem; padding: .5rem 1.25rem; background: #3AA99F; color: #100F0F; border: 0; border-radius: 4px; font-weight: 600; }
pre { background: #1C1B1A; padding: 1rem; border-radius: 6px; overflow-x: auto; }
.error { color: #D14D41; }
.notes { color: #DA702C; }
.dim { color: #575653; font-size: .9rem; }
</style>
</head>
<body>
<h1>Save Bonus Calculator</h1>
{{if .Error}}<p class="error" role="alert">{{.Error}}</p>{{end}}
<form method="post" action="/">
  <label>Available Balance <input name="available_balance" value="{{.Form.AvailableBalance}}" required></label>
  <label>Current Month Average Daily Balance <input name="current_month_adb" value="{{.Form.CurrentMonthADB}}" required></label>
  <label>ADB Increase vs Last Month <input name="adb_increase_vs_last_month" value="{{.Form.ADBIncreaseVsLastMonth}}" required></label>
  <label>Balance As Of (day 1-{{.DaysInMonth}}) <input name="balance_as_of" value="{{.Form.BalanceAsOf}}" required></label>
  <label>Safety Buffer (optional) <input name="buffer" value="{{.Form.Buffer}}"></label>
  <button type="submit">Calculate</button>
</form>
{{if .Report}}
<h2>Result</h2>
<pre>{{.Report}}</pre>
{{end}}
{{with .Chart}}
<svg viewBox="0 0 {{px .Width}} {{px .Height}}" width="100%" role="img" aria-label="Projected ADB change">
  <line x1="{{px .Left}}" y1="{{px .ZeroY}}" x2="{{px .Right}}" y2="{{px .ZeroY}}" stroke="#575653" stroke-dasharray="4 4"/>
  {{range .YLabels}}<text x="{{px .X}}" y="{{px .Y}}" fill="#878580" font-size="11" text-anchor="end">{{.Text}}</text>{{end}}
  {{range .XLabels}}<text x="{{px .X}}" y="{{px .Y}}" fill="#878580" font-size="11" text-anchor="middle">{{.Text}}</text>{{end}}
  <polyline points="{{.Before}}" fill="none" stroke="#D0A215" stroke-width="2"/>
  <polyline points="{{.After}}" fill="none" stroke="#4385BE" stroke-width="2"/>
</svg>
<p class="dim"><span style="color:#D0A215">&#9679;</span> Before adjustment &nbsp; <span style="color:#4385BE">&#9679;</span> After adjustment</p>
{{end}}
<h3 class="notes">Operational Notes</h3>
<ul class="notes">{{range .Notices}}<li>{{.}}</li>{{end}}</ul>
<p class="dim">{{.Assumption}}</p>
</body>
</html>
`
