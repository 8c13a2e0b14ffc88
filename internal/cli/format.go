// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with comma separators and exactly two
// decimals, rounding half away from zero.
// e.g., 1333.3333 -> "1,333.33", -566.665 -> "-566.67"
func FormatMoney(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")

	out := groupDigits(whole) + "." + frac
	if neg && out != "0.00" {
		return "-" + out
	}
	return out
}

// FormatSignedMoney is FormatMoney with an explicit "+" on positive amounts.
func FormatSignedMoney(v float64) string {
	s := FormatMoney(v)
	if s == "0.00" || strings.HasPrefix(s, "-") {
		return s
	}
	return "+" + s
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// groupDigits inserts a comma every three digits from the right.
// e.g., "1234567" -> "1,234,567"
func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
