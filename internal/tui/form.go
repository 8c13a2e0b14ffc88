package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/theirongolddev/savebonus/internal/input"
	"github.com/theirongolddev/savebonus/internal/tui/theme"
)

// formValues holds the raw text bound to the huh inputs. It lives behind a
// pointer so the bindings survive App being copied on every Update.
type formValues struct {
	balance  string
	adb      string
	increase string
	asOf     string
	buffer   string
}

func (v *formValues) raw() input.Raw {
	return input.Raw{
		AvailableBalance:       v.balance,
		CurrentMonthADB:        v.adb,
		ADBIncreaseVsLastMonth: v.increase,
		BalanceAsOf:            v.asOf,
		Buffer:                 v.buffer,
	}
}

func newInputForm(vals *formValues, daysInMonth, defaultAsOf int, defaultBuffer float64) *huh.Form {
	if vals.asOf == "" {
		vals.asOf = strconv.Itoa(defaultAsOf)
	}
	if vals.buffer == "" {
		vals.buffer = strconv.FormatFloat(defaultBuffer, 'f', -1, 64)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Save Bonus Calculator").
				Description("Figures from the bank portal. Amounts accept commas and a leading $."),

			huh.NewInput().
				Title("Available Balance").
				Placeholder("10,000.00").
				Value(&vals.balance).
				Validate(func(s string) error {
					v, err := input.ParseAmount(input.FieldAvailableBalance, s)
					if err != nil {
						return err
					}
					return input.CheckNonNegative(input.FieldAvailableBalance, v)
				}),

			huh.NewInput().
				Title("Current Month Average Daily Balance").
				Value(&vals.adb).
				Validate(func(s string) error {
					_, err := input.ParseAmount(input.FieldCurrentMonthADB, s)
					return err
				}),

			huh.NewInput().
				Title("ADB Increase vs Last Month").
				Description("Negative if the ADB dropped.").
				Value(&vals.increase).
				Validate(func(s string) error {
					_, err := input.ParseAmount(input.FieldADBIncrease, s)
					return err
				}),

			huh.NewInput().
				Title(fmt.Sprintf("Balance As Of (day 1-%d)", daysInMonth)).
				Value(&vals.asOf).
				Validate(func(s string) error {
					day, err := input.ParseDay(input.FieldBalanceAsOf, s)
					if err != nil {
						return err
					}
					return input.CheckBalanceAsOf(day, daysInMonth)
				}),

			huh.NewInput().
				Title("Safety Buffer").
				Description("Extra ADB to aim for. Blank uses the default.").
				Value(&vals.buffer).
				Validate(func(s string) error {
					v, err := input.ParseBuffer(s, defaultBuffer)
					if err != nil {
						return err
					}
					return input.CheckNonNegative(input.FieldBuffer, v)
				}),
		),
	).WithTheme(theme.Active.Form()).WithShowHelp(true)

	return form
}
