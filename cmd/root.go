package cmd

import (
	"fmt"
	"log/slog"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/spf13/cobra"

	"github.com/jparise/timecalc/internal/config"
	"github.com/jparise/timecalc/internal/num"
)

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

var version = "dev"

// app holds the state shared by every subcommand: persistent flags and the
// configuration resolved from them before a subcommand runs.
type app struct {
	configPath string
	color      colorMode
	verbose    bool
	rounding   num.Rounding

	cfg        config.Config
	colorize   bool
	hyperlinks bool
}

func newRootCmd() *cobra.Command {
	a := &app{color: colorAuto, rounding: num.RoundNone}

	root := &cobra.Command{
		Use:   "timecalc",
		Short: "Calculate with durations",
		Long: `timecalc evaluates time expressions and converts between time units.

Units (case-insensitive, singular or plural):
  ms  millisecond      d   day
  s   second           w   week
  m   minute           mo  month (30 days)
  h   hour             y   year (365 days)

Expressions combine quantities with + - * / and parentheses. Adjacent
quantities are summed, so "1h 30m" is 90 minutes. A bare number uses the
default unit.

Settings are read from $XDG_CONFIG_HOME/timecalc/config.yaml (or --config),
then TIMECALC_* environment variables, then flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "",
		"config file (default: $XDG_CONFIG_HOME/timecalc/config.yaml)")
	flags.Var(&a.color, "color",
		"colorize output: auto, always, never")
	flags.BoolVarP(&a.verbose, "verbose", "v", false,
		"log debug messages to stderr")
	flags.String("locale", "en",
		"language used for digit grouping (e.g. en, de, fr)")
	flags.String("default-unit", "s",
		"unit of bare numbers in expressions")
	flags.Var(&a.rounding, "rounding",
		"round totals to whole milliseconds: none, half-even, down, up")
	flags.String("units", "y,mo,w,d,h,m,s,ms",
		"comma-separated units results are decomposed into")

	root.AddCommand(
		newEvalCmd(a),
		newConvertCmd(a),
		newDecomposeCmd(a),
		newBetweenCmd(a),
		newBatchCmd(a),
	)

	return root
}

// load resolves the configuration and logging for the command about to run.
func (a *app) load(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	v := config.New(a.configPath)
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	switch a.color {
	case colorAlways:
		a.colorize = true
	case colorNever:
		a.colorize = false
	case colorAuto:
		terminal := term.FromEnv()
		a.colorize = terminal.IsColorEnabled()
	}
	a.hyperlinks = a.colorize && term.FromEnv().IsTerminalOutput()

	slog.Debug("resolved configuration",
		"default_unit", cfg.Expression.DefaultUnit,
		"rounding", cfg.Expression.Rounding,
		"locale", cfg.Presentation.Locale,
		"jobs", cfg.Jobs)
	return nil
}

var rootCmd = newRootCmd()

func Execute() error {
	return rootCmd.Execute()
}
