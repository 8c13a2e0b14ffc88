// Package theme defines color themes for the savebonus terminal UI.
package theme

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	Border       lipgloss.Color // Subtle borders
	BorderAccent lipgloss.Color // Focused card borders
	TextDim      lipgloss.Color // Hints, axis labels
	TextMuted    lipgloss.Color // Labels, metadata
	TextPrimary  lipgloss.Color // Primary content text
	Accent       lipgloss.Color // Active tab, titles
	AccentBright lipgloss.Color
	Deposit      lipgloss.Color // Money in, goal reached
	Withdraw     lipgloss.Color // Money out, shortfall
	Warn         lipgloss.Color // Operational notices
	Before       lipgloss.Color // "before adjustment" series
	After        lipgloss.Color // "after adjustment" series

	// Form is the huh form theme that matches this palette.
	Form func() *huh.Theme
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme - warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Deposit:      lipgloss.Color("#879A39"),
	Withdraw:     lipgloss.Color("#D14D41"),
	Warn:         lipgloss.Color("#DA702C"),
	Before:       lipgloss.Color("#D0A215"),
	After:        lipgloss.Color("#4385BE"),
	Form:         huh.ThemeCharm,
}

// CatppuccinMocha is a warm pastel theme with soft, soothing colors.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   lipgloss.Color("#1E1E2E"),
	Surface:      lipgloss.Color("#313244"),
	Border:       lipgloss.Color("#585B70"),
	BorderAccent: lipgloss.Color("#89B4FA"),
	TextDim:      lipgloss.Color("#6C7086"),
	TextMuted:    lipgloss.Color("#A6ADC8"),
	TextPrimary:  lipgloss.Color("#CDD6F4"),
	Accent:       lipgloss.Color("#89B4FA"),
	AccentBright: lipgloss.Color("#B4D0FB"),
	Deposit:      lipgloss.Color("#A6E3A1"),
	Withdraw:     lipgloss.Color("#F38BA8"),
	Warn:         lipgloss.Color("#FAB387"),
	Before:       lipgloss.Color("#F9E2AF"),
	After:        lipgloss.Color("#94E2D5"),
	Form:         huh.ThemeCatppuccin,
}

// TokyoNight is a cool blue/purple theme inspired by Tokyo city lights.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   lipgloss.Color("#1A1B26"),
	Surface:      lipgloss.Color("#24283B"),
	Border:       lipgloss.Color("#565F89"),
	BorderAccent: lipgloss.Color("#7AA2F7"),
	TextDim:      lipgloss.Color("#565F89"),
	TextMuted:    lipgloss.Color("#A9B1D6"),
	TextPrimary:  lipgloss.Color("#C0CAF5"),
	Accent:       lipgloss.Color("#7AA2F7"),
	AccentBright: lipgloss.Color("#A9C1FF"),
	Deposit:      lipgloss.Color("#9ECE6A"),
	Withdraw:     lipgloss.Color("#F7768E"),
	Warn:         lipgloss.Color("#FF9E64"),
	Before:       lipgloss.Color("#E0AF68"),
	After:        lipgloss.Color("#BB9AF7"),
	Form:         huh.ThemeDracula,
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Deposit:      lipgloss.Color("2"),
	Withdraw:     lipgloss.Color("1"),
	Warn:         lipgloss.Color("3"),
	Before:       lipgloss.Color("3"),
	After:        lipgloss.Color("4"),
	Form:         huh.ThemeBase16,
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
