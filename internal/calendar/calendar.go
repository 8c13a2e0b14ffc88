// Package calendar supplies month lengths and the current date in
// Singapore Time. It is the only package that reads the wall clock.
package calendar

import "time"

// SGT is Singapore Time. Singapore has no daylight saving, so a fixed
// offset is exact and needs no tz database on the host.
var SGT = time.FixedZone("SGT", 8*60*60)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock returns the system time.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns T.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed time.
func (c FixedClock) Now() time.Time {
	return c.T
}

// Date is a calendar date in SGT.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// IsLeapYear reports whether year has a February 29th.
func IsLeapYear(year int) bool {
	return year%400 == 0 || (year%4 == 0 && year%100 != 0)
}

// DaysInMonth returns the number of days in the given month.
// Months outside 1..12 return 0.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.January, time.March, time.May, time.July,
		time.August, time.October, time.December:
		return 31
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// Provider answers date questions relative to its clock, in SGT.
type Provider struct {
	Clock Clock
}

// NewProvider returns a Provider backed by c. A nil clock uses RealClock.
func NewProvider(c Clock) Provider {
	if c == nil {
		c = RealClock{}
	}
	return Provider{Clock: c}
}

// Today returns the current SGT date.
func (p Provider) Today() Date {
	clk := p.Clock
	if clk == nil {
		clk = RealClock{}
	}
	now := clk.Now().In(SGT)
	return Date{Year: now.Year(), Month: now.Month(), Day: now.Day()}
}

// DaysInCurrentMonth returns the length of the current SGT month.
func (p Provider) DaysInCurrentMonth() int {
	d := p.Today()
	return DaysInMonth(d.Year, d.Month)
}

// DefaultBalanceAsOf is the day front ends pre-fill for "balance as of".
// Bank portals report figures as of the previous day, so this is
// yesterday, never earlier than the 1st.
func (p Provider) DefaultBalanceAsOf() int {
	d := p.Today()
	if d.Day <= 1 {
		return 1
	}
	return d.Day - 1
}
