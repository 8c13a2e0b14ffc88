package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/savebonus/internal/tui/theme"
)

func TestColorForProgress(t *testing.T) {
	theme.SetActive("flexoki-dark")
	a := theme.Active

	cases := []struct {
		pct  float64
		want string
	}{
		{-0.2, string(a.Withdraw)},
		{0.1, string(a.Withdraw)},
		{0.3, string(a.Warn)},
		{0.75, string(a.Accent)},
		{1.0, string(a.Deposit)},
		{1.8, string(a.Deposit)},
	}
	for _, c := range cases {
		if got := string(ColorForProgress(c.pct)); got != c.want {
			t.Errorf("ColorForProgress(%v) = %s, want %s", c.pct, got, c.want)
		}
	}
}

func TestProgressBar_ShowsUnclampedPercent(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := stripANSI(ProgressBar("Goal", 1.25, 8, 20))
	if !strings.HasPrefix(out, "Goal    ") {
		t.Fatalf("label not padded: %q", out)
	}
	if !strings.HasSuffix(out, "125%") {
		t.Fatalf("percentage = %q, want suffix 125%%", out)
	}
}
