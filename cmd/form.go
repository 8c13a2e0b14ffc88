package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/theirongolddev/savebonus/internal/report"
	"github.com/theirongolddev/savebonus/internal/tui"
	"github.com/theirongolddev/savebonus/internal/tui/theme"
)

var formCmd = &cobra.Command{
	Use:     "form",
	Aliases: []string{"tui"},
	Short:   "Fill in the calculator interactively",
	Args:    cobra.NoArgs,
	RunE:    runForm,
}

func init() {
	rootCmd.AddCommand(formCmd)
}

func runForm(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	p := tea.NewProgram(tui.NewApp(calendarProvider, cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	// Leave the answer on screen after the alt screen closes.
	if app, ok := final.(tui.App); ok {
		if r, ok := app.Results(); ok {
			fmt.Fprintln(cmd.OutOrStdout(), report.Headline(r))
		}
	}
	return nil
}
