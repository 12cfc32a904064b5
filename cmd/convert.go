package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jparise/timecalc/internal/convert"
	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/result"
	"github.com/jparise/timecalc/internal/timeunit"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <value> <from> <to>",
		Short: "Convert a value between time units",
		Long: `Convert a value from one time unit to another.

Months are 30 days and years are 365 days.

Examples:
  timecalc convert 90 m h
  timecalc convert 1 year days`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := num.Parse(args[0])
			if err != nil {
				return err
			}
			from, ok := timeunit.Parse(args[1])
			if !ok {
				return fmt.Errorf("unknown unit %q", args[1])
			}
			to, ok := timeunit.Parse(args[2])
			if !ok {
				return fmt.Errorf("unknown unit %q", args[2])
			}

			out, err := convert.Convert(v, from, to)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Quantity(out, to, a.cfg.Presentation.Locale))
			return err
		},
	}
}
