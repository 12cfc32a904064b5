package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jparise/timecalc/internal/result"
	"github.com/jparise/timecalc/internal/timeparse"
)

func newBetweenCmd(a *app) *cobra.Command {
	var (
		output outputFormat
		tz     string
	)

	cmd := &cobra.Command{
		Use:   "between <time> <time>",
		Short: "Measure the span between two points in time",
		Long: `Measure the absolute span between two points in time.

A time is "now", "@<unix milliseconds>", YYYY-MM-DD, "YYYY-MM-DD HH:MM:SS"
or RFC3339. Times without a zone are read in --tz.

Examples:
  timecalc between 2024-01-01 now
  timecalc between "2024-03-01 09:00:00" "2024-03-01 17:30:00"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("invalid --tz %q: %w", tz, err)
			}

			now := time.Now()
			start, err := timeparse.ParseTime(args[0], now, loc)
			if err != nil {
				return err
			}
			end, err := timeparse.ParseTime(args[1], now, loc)
			if err != nil {
				return err
			}

			r, err := result.New(timeparse.Span(start, end), a.cfg.Presentation)
			if err != nil {
				return err
			}
			expression := fmt.Sprintf("%s .. %s", args[0], args[1])
			return printSummary(cmd.OutOrStdout(), output, r.Summary(expression), a.colorize)
		},
	}

	addOutputFlag(cmd, &output)
	cmd.Flags().StringVar(&tz, "tz", "Local", "time zone for times without one (IANA name, UTC, or Local)")
	return cmd
}
