package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jparise/timecalc/internal/expr"
	"github.com/jparise/timecalc/internal/result"
	"github.com/jparise/timecalc/internal/timeunit"
)

func newEvalCmd(a *app) *cobra.Command {
	var (
		output   outputFormat
		noMillis bool
		collapse []string
	)

	cmd := &cobra.Command{
		Use:   "eval <expression>...",
		Short: "Evaluate a time expression",
		Long: `Evaluate a time expression and print the resulting duration.

Arguments are joined with spaces into a single expression, so quoting is
optional.

--collapse folds the next larger non-zero unit into the given unit and may
be repeated; "--collapse m" turns "1 hour, 2 minutes" into "62 minutes".
The given unit must itself be non-zero, and a larger non-zero unit must
remain to fold into it.

Examples:
  timecalc eval 1w 1d 1s
  timecalc eval "(2h + 30m) * 3"
  timecalc eval --output json 1.5d
  timecalc eval --collapse h 2d 3h`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")

			presentation := a.cfg.Presentation
			if noMillis {
				presentation.IncludeMilliseconds = false
			}

			var units []timeunit.Unit
			for _, name := range collapse {
				u, ok := timeunit.Parse(name)
				if !ok {
					return fmt.Errorf("invalid --collapse unit %q", name)
				}
				units = append(units, u)
			}

			factory, err := expr.NewFactory(a.cfg.Expression)
			if err != nil {
				return err
			}
			e, err := factory.Build(raw)
			if err != nil {
				return err
			}
			slog.Debug("parsed expression", "expression", e.String())

			total, err := e.Millis()
			if err != nil {
				return err
			}
			r, err := result.New(total, presentation)
			if err != nil {
				return err
			}

			layout := result.NewLayout(r, true)
			for _, u := range units {
				if !layout.Handle(u, result.SingleTap) {
					return fmt.Errorf("cannot collapse into %s: the %s block is zero or no larger unit is shown", u.Plural(), u)
				}
			}

			s, err := layout.Summary(raw)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), output, s, a.colorize)
		},
	}

	addOutputFlag(cmd, &output)
	cmd.Flags().BoolVar(&noMillis, "no-millis", false,
		"fold milliseconds into the smallest unit as a fraction")
	cmd.Flags().StringSliceVar(&collapse, "collapse", nil,
		"fold the next larger unit into this unit (can be specified multiple times)")

	return cmd
}
