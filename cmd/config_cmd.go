package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/theirongolddev/savebonus/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Default buffer: %s\n", formatBuffer(cfg.General.DefaultBuffer))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Server]")
	addr := config.GetServerAddr(cfg)
	if addr != cfg.Server.Addr {
		fmt.Fprintf(out, "    Address:        %s (from SAVEBONUS_ADDR)\n", addr)
	} else {
		fmt.Fprintf(out, "    Address:        %s\n", addr)
	}
	fmt.Fprintf(out, "    Session TTL:    %ds\n", cfg.Server.SessionTTLSec)
	fmt.Fprintf(out, "    Sweep schedule: %s\n", cfg.Server.SweepSchedule)
	fmt.Fprintf(out, "    Max sessions:   %d\n", cfg.Server.MaxSessions)
	fmt.Fprintf(out, "    Log level:      %s\n", cfg.Server.LogLevel)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `savebonus setup` to reconfigure.")
	return nil
}
