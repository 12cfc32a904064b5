package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/result"
)

func newDecomposeCmd(a *app) *cobra.Command {
	var output outputFormat

	cmd := &cobra.Command{
		Use:   "decompose <milliseconds>",
		Short: "Split a millisecond total into units",
		Long: `Split a total number of milliseconds into the largest units first.

Examples:
  timecalc decompose 691201000
  timecalc decompose --units h,m 5400000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := num.Parse(args[0])
			if err != nil {
				return err
			}
			r, err := result.New(total, a.cfg.Presentation)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), output, r.Summary(""), a.colorize)
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}
