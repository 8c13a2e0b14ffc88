package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/theirongolddev/savebonus/internal/cli"
	"github.com/theirongolddev/savebonus/internal/config"
	"github.com/theirongolddev/savebonus/internal/input"
	"github.com/theirongolddev/savebonus/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Edit the saved defaults",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()
	theme.SetActive(cfg.Appearance.Theme)

	buffer := strconv.FormatFloat(cfg.General.DefaultBuffer, 'f', -1, 64)
	themeName := cfg.Appearance.Theme
	addr := cfg.Server.Addr

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default safety buffer").
				Description("Extra ADB to aim for when the buffer is left blank.").
				Value(&buffer).
				Validate(func(s string) error {
					v, err := input.ParseAmount(input.FieldBuffer, s)
					if err != nil {
						return err
					}
					return input.CheckNonNegative(input.FieldBuffer, v)
				}),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),

			huh.NewInput().
				Title("Server listen address").
				Value(&addr).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("address must not be empty")
					}
					return nil
				}),
		),
	).WithTheme(theme.Active.Form())

	if err := form.Run(); err != nil {
		return err
	}

	// Validated by the form above.
	cfg.General.DefaultBuffer, _ = input.ParseAmount(input.FieldBuffer, buffer)
	cfg.Appearance.Theme = themeName
	cfg.Server.Addr = addr

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Default buffer: %s\n", formatBuffer(cfg.General.DefaultBuffer))
	fmt.Fprintf(out, "  Saved to %s\n", config.ConfigPath())
	fmt.Fprintln(out, "  Run `savebonus setup` anytime to reconfigure.")
	fmt.Fprintln(out)
	return nil
}

func formatBuffer(v float64) string {
	return cli.FormatMoney(v)
}
