package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/theirongolddev/savebonus/internal/cli"
	"github.com/theirongolddev/savebonus/internal/input"
	"github.com/theirongolddev/savebonus/internal/model"
	"github.com/theirongolddev/savebonus/internal/pipeline"
	"github.com/theirongolddev/savebonus/internal/report"
)

var (
	flagBalance  string
	flagADB      string
	flagIncrease string
	flagAsOf     string
	flagBuffer   string
	flagDays     int
	flagMarkdown bool
	flagJSON     bool
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute the required daily transfer",
	Example: `  savebonus calc --balance 1000 --adb 2000 --increase 100 --as-of 10
  savebonus calc --balance '$12,500' --adb 11800 --increase -250 --json`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	addCalcFlags(calcCmd)
	rootCmd.AddCommand(calcCmd)
}

func addCalcFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flagBalance, "balance", "", "Available balance")
	f.StringVar(&flagADB, "adb", "", "Current month average daily balance")
	f.StringVar(&flagIncrease, "increase", "", "ADB increase vs last month (negative if it dropped)")
	f.StringVar(&flagAsOf, "as-of", "", "Day of month the figures are as of (default yesterday)")
	f.StringVar(&flagBuffer, "buffer", "", "Safety buffer ADB (default from config)")
	f.IntVar(&flagDays, "days", 0, "Override the number of days in the month")
	f.BoolVar(&flagMarkdown, "markdown", false, "Render the report as markdown")
	f.BoolVar(&flagJSON, "json", false, "Print results and chart series as JSON")
}

func calcFlagsSet(cmd *cobra.Command) bool {
	for _, name := range []string{"balance", "adb", "increase", "as-of", "buffer", "days"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

type calcOutput struct {
	Results model.Results `json:"results"`
	Series  model.Series  `json:"series"`
	Report  string        `json:"report"`
}

func runCalc(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"--balance", flagBalance}, {"--adb", flagADB}, {"--increase", flagIncrease},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}

	days := calendarProvider.DaysInCurrentMonth()
	if cmd.Flags().Changed("days") {
		if flagDays < 28 || flagDays > 31 {
			return fmt.Errorf("--days must be between 28 and 31, got %d", flagDays)
		}
		days = flagDays
	}
	asOf := flagAsOf
	if asOf == "" {
		asOf = strconv.Itoa(min(calendarProvider.DefaultBalanceAsOf(), days))
	}

	in, err := input.Parse(input.Raw{
		AvailableBalance:       flagBalance,
		CurrentMonthADB:        flagADB,
		ADBIncreaseVsLastMonth: flagIncrease,
		BalanceAsOf:            asOf,
		Buffer:                 flagBuffer,
	}, days, cfg.General.DefaultBuffer)
	if err != nil {
		return err
	}

	r, err := pipeline.Compute(in, days)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case flagJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(calcOutput{Results: r, Series: pipeline.BuildSeries(r), Report: report.Format(r)})
	case flagMarkdown:
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("creating markdown renderer: %w", err)
		}
		md, err := renderer.Render(report.Markdown(r) + "\n" + report.Notices() + "\n" + report.Assumption + "\n")
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
		_, err = fmt.Fprint(out, md)
		return err
	default:
		printCalc(out, r)
		return nil
	}
}

func printCalc(out io.Writer, r model.Results) {
	notes := append(append([]string{}, report.OperationalNotices...), report.Assumption)

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("Save Bonus  ·  day %d of %d", r.BalanceAsOf, r.DaysInMonth)))
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderHeadline(r))
	fmt.Fprintln(out, "  Positive = Deposit; Negative = Withdraw")
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.ResultsTable(r)))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderNotes("Operational notes", notes))
}
