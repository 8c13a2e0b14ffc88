// Package cmd implements the savebonus CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/theirongolddev/savebonus/internal/calendar"
	"github.com/theirongolddev/savebonus/internal/config"
)

var flagVerbose bool

// calendarProvider answers "what month is it" for every command.
var calendarProvider = calendar.NewProvider(nil)

var rootCmd = &cobra.Command{
	Use:   "savebonus",
	Short: "Save Bonus ADB calculator",
	Long: `Work out the daily transfer that keeps this month's average daily balance
at least 500 above last month's, plus a safety buffer.

Run with --balance, --adb and --increase for a one-shot report, or use
the form, chat and serve commands for interactive front ends.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !calcFlagsSet(cmd) {
			return cmd.Help()
		}
		return runCalc(cmd, args)
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	addCalcFlags(rootCmd)
}

// loadConfig loads config, returning defaults on error so every command
// can still run with a corrupted file.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config error, using defaults: %v\n", err)
	}
	return cfg
}
