package report

import (
	"strings"
	"testing"

	"github.com/theirongolddev/savebonus/internal/model"
	"github.com/theirongolddev/savebonus/internal/pipeline"
)

func mustCompute(t *testing.T, in model.Inputs, days int) model.Results {
	t.Helper()
	r, err := pipeline.Compute(in, days)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return r
}

func workedResults(t *testing.T) model.Results {
	return mustCompute(t, model.Inputs{
		AvailableBalance:       1000,
		CurrentMonthADB:        2000,
		ADBIncreaseVsLastMonth: 100,
		BalanceAsOf:            10,
		Buffer:                 50,
	}, 30)
}

func TestFormat_WorkedScenario(t *testing.T) {
	want := `Required Transfer (in/out): +1,675.00 (Deposit)
Positive = Deposit; Negative = Withdraw

Detailed Metrics
- For One-Day Adjustment: 33,500.00
- Last Month ADB: 1,900.00
- Current Month Average Daily Balance:
  * Current ADB (as of day 10): 2,000.00, Change: +100.00
  * Projected ADB before adjustment: 1,333.33, Change: -566.67
  * Projected ADB after adjustment: 2,450.00, Change: +550.00
- Progress: 20,000.00/72,000.00
- Amount to add/remove on 1st next month: 3,125.00`

	if got := Format(workedResults(t)); got != want {
		t.Fatalf("Format mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormat_Withdraw(t *testing.T) {
	r := mustCompute(t, model.Inputs{
		AvailableBalance:       250000,
		CurrentMonthADB:        180000,
		ADBIncreaseVsLastMonth: 1200,
		BalanceAsOf:            20,
		Buffer:                 75,
	}, 28)

	got := Headline(r)
	if !strings.HasPrefix(got, "Required Transfer (in/out): -72,187.50 (Withdraw)") {
		t.Fatalf("Headline = %q, want withdraw of 72,187.50", got)
	}
}

func TestFormat_Deterministic(t *testing.T) {
	r := workedResults(t)
	if Format(r) != Format(r) {
		t.Fatal("Format is not deterministic")
	}
}

func TestMarkdown_ContainsSections(t *testing.T) {
	md := Markdown(workedResults(t))
	for _, want := range []string{
		"### TL;DR",
		"##### Required Transfer (in/out): +1,675.00",
		"### Detailed Metrics",
		"- Progress: 20,000.00/72,000.00",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q:\n%s", want, md)
		}
	}
}

func TestNotices(t *testing.T) {
	n := Notices()
	if !strings.Contains(n, "10:00 PM (SGT)") || !strings.Contains(n, "Sundays") {
		t.Fatalf("Notices = %q, want cutoff and Sunday notices", n)
	}
}
