// Package input parses and range-checks raw user text before it reaches
// the calculator. Its errors are recoverable: front ends re-prompt.
package input

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/theirongolddev/savebonus/internal/model"
)

// Sentinel errors wrapped by *FieldError.
var (
	ErrMalformedNumber = errors.New("not a valid number")
	ErrInvalidRange    = errors.New("out of range")
)

// Field names used in errors and prompts.
const (
	FieldAvailableBalance = "available balance"
	FieldCurrentMonthADB  = "current month ADB"
	FieldADBIncrease      = "ADB increase vs last month"
	FieldBalanceAsOf      = "balance as of"
	FieldBuffer           = "buffer"
)

// FieldError describes a rejected field value.
type FieldError struct {
	Field string
	Value string
	Hint  string
	Err   error
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%s: %q is %s", e.Field, e.Value, e.Err)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// Unwrap lets errors.Is match the sentinel.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// amountPattern matches plain digits or comma-grouped thousands, with an
// optional fraction.
var amountPattern = regexp.MustCompile(`^(\d+|\d{1,3}(,\d{3})+)(\.\d*)?$|^\.\d+$`)

// ParseAmount parses a money amount. Surrounding spaces, one leading sign,
// a "$" and comma thousands separators are accepted.
func ParseAmount(field, text string) (float64, error) {
	s := strings.TrimSpace(text)
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = strings.TrimSpace(s[1:])
	case strings.HasPrefix(s, "+"):
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimPrefix(s, "$")

	if !amountPattern.MatchString(s) {
		return 0, &FieldError{Field: field, Value: text, Err: ErrMalformedNumber}
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, &FieldError{Field: field, Value: text, Err: ErrMalformedNumber}
	}
	if neg {
		v = -v
	}
	return v, nil
}

// ParseDay parses a day-of-month integer.
func ParseDay(field, text string) (int, error) {
	s := strings.TrimSpace(text)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &FieldError{Field: field, Value: text, Hint: "whole day number", Err: ErrMalformedNumber}
	}
	return n, nil
}

// ParseBuffer parses the optional buffer; blank text yields def.
func ParseBuffer(text string, def float64) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return def, nil
	}
	return ParseAmount(FieldBuffer, text)
}

// CheckBalanceAsOf verifies 1 <= day <= daysInMonth.
func CheckBalanceAsOf(day, daysInMonth int) error {
	if day < 1 || day > daysInMonth {
		return &FieldError{
			Field: FieldBalanceAsOf,
			Value: strconv.Itoa(day),
			Hint:  fmt.Sprintf("must be between 1 and %d", daysInMonth),
			Err:   ErrInvalidRange,
		}
	}
	return nil
}

// CheckNonNegative verifies v >= 0.
func CheckNonNegative(field string, v float64) error {
	if v < 0 {
		return &FieldError{
			Field: field,
			Value: strconv.FormatFloat(v, 'f', -1, 64),
			Hint:  "must not be negative",
			Err:   ErrInvalidRange,
		}
	}
	return nil
}

// Validate range-checks a fully parsed Inputs. A balance-as-of on the last
// day of the month passes; the calculator reports it.
func Validate(in model.Inputs, daysInMonth int) error {
	if err := CheckNonNegative(FieldAvailableBalance, in.AvailableBalance); err != nil {
		return err
	}
	if err := CheckBalanceAsOf(in.BalanceAsOf, daysInMonth); err != nil {
		return err
	}
	return CheckNonNegative(FieldBuffer, in.Buffer)
}

// Raw holds unparsed text for every field, as typed into a form.
type Raw struct {
	AvailableBalance       string
	CurrentMonthADB        string
	ADBIncreaseVsLastMonth string
	BalanceAsOf            string
	Buffer                 string
}

// Parse converts a Raw form into validated Inputs.
func Parse(raw Raw, daysInMonth int, defaultBuffer float64) (model.Inputs, error) {
	var (
		in  model.Inputs
		err error
	)
	if in.AvailableBalance, err = ParseAmount(FieldAvailableBalance, raw.AvailableBalance); err != nil {
		return model.Inputs{}, err
	}
	if in.CurrentMonthADB, err = ParseAmount(FieldCurrentMonthADB, raw.CurrentMonthADB); err != nil {
		return model.Inputs{}, err
	}
	if in.ADBIncreaseVsLastMonth, err = ParseAmount(FieldADBIncrease, raw.ADBIncreaseVsLastMonth); err != nil {
		return model.Inputs{}, err
	}
	if in.BalanceAsOf, err = ParseDay(FieldBalanceAsOf, raw.BalanceAsOf); err != nil {
		return model.Inputs{}, err
	}
	if in.Buffer, err = ParseBuffer(raw.Buffer, defaultBuffer); err != nil {
		return model.Inputs{}, err
	}
	if err := Validate(in, daysInMonth); err != nil {
		return model.Inputs{}, err
	}
	return in, nil
}
