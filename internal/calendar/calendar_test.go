package calendar

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.January, 31},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2025, time.December, 31},
		{2025, time.September, 30},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.year, c.month); got != c.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestDaysInMonth_InvalidMonth(t *testing.T) {
	if got := DaysInMonth(2024, 13); got != 0 {
		t.Fatalf("DaysInMonth(2024, 13) = %d, want 0", got)
	}
}

func TestDaysInMonth_MatchesTimePackage(t *testing.T) {
	for year := 1999; year <= 2032; year++ {
		for m := time.January; m <= time.December; m++ {
			// Day 0 of the next month normalizes to the last day of m.
			want := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
			if got := DaysInMonth(year, m); got != want {
				t.Fatalf("DaysInMonth(%d, %d) = %d, want %d", year, m, got, want)
			}
		}
	}
}

func TestProvider_TodayUsesSGT(t *testing.T) {
	// 2024-01-31 17:30 UTC is already 2024-02-01 in Singapore.
	p := NewProvider(FixedClock{T: time.Date(2024, 1, 31, 17, 30, 0, 0, time.UTC)})

	d := p.Today()
	if d.Year != 2024 || d.Month != time.February || d.Day != 1 {
		t.Fatalf("Today() = %+v, want 2024-02-01", d)
	}
	if got := p.DaysInCurrentMonth(); got != 29 {
		t.Fatalf("DaysInCurrentMonth() = %d, want 29", got)
	}
}

func TestProvider_DefaultBalanceAsOf(t *testing.T) {
	first := NewProvider(FixedClock{T: time.Date(2024, 3, 1, 2, 0, 0, 0, SGT)})
	if got := first.DefaultBalanceAsOf(); got != 1 {
		t.Fatalf("DefaultBalanceAsOf() on the 1st = %d, want 1", got)
	}

	mid := NewProvider(FixedClock{T: time.Date(2024, 3, 15, 9, 0, 0, 0, SGT)})
	if got := mid.DefaultBalanceAsOf(); got != 14 {
		t.Fatalf("DefaultBalanceAsOf() on the 15th = %d, want 14", got)
	}
}

func TestNewProvider_NilClock(t *testing.T) {
	p := NewProvider(nil)
	if _, ok := p.Clock.(RealClock); !ok {
		t.Fatalf("NewProvider(nil).Clock = %T, want RealClock", p.Clock)
	}
	if n := p.DaysInCurrentMonth(); n < 28 || n > 31 {
		t.Fatalf("DaysInCurrentMonth() = %d, want 28..31", n)
	}
}
