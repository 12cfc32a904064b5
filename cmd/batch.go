package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jparise/timecalc/internal/batch"
	"github.com/jparise/timecalc/internal/expr"
	"github.com/jparise/timecalc/internal/github"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		pattern    string
		ignoreCase bool
		fullPath   bool
		excludes   []string
		noCache    bool
		cacheDir   string
		cacheTTL   time.Duration
		summary    bool
	)

	cmd := &cobra.Command{
		Use:   "batch <source>...",
		Short: "Evaluate files of expressions",
		Long: `Evaluate every expression in files read from local directories or GitHub.

Each matching file holds one expression per line. Blank lines are skipped
and "#" starts a comment.

<source> can be:
  <dir>                 A local directory (searched recursively)
  <owner>               Every repository of a user or organization
  <owner>/<repo>        A repository's default branch
  <owner>/<repo>@<ref>  A repository at a branch, tag or SHA

<pattern> is matched against file names (or full paths with --full-path):
  *              Match any characters (e.g., "*.time")
  **             Match across directories (e.g., "plans/**/*.time")
  {...}          Match alternatives (e.g., "*.{time,txt}")

Examples:
  timecalc batch ./estimates
  timecalc batch --pattern "*.txt" octocat/plans@main
  timecalc batch -E "draft*" ./estimates octocat`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sources := make([]batch.Source, 0, len(args))
			for _, arg := range args {
				src, err := batch.ParseSource(arg)
				if err != nil {
					return err
				}
				sources = append(sources, src)
			}

			factory, err := expr.NewFactory(a.cfg.Expression)
			if err != nil {
				return err
			}

			opts := &batch.Options{
				Pattern:    pattern,
				Sources:    sources,
				IgnoreCase: ignoreCase,
				FullPath:   fullPath,
				Excludes:   excludes,
				ClientOpts: github.ClientOptions{
					DisableCache: noCache,
					CacheDir:     cacheDir,
					CacheTTL:     cacheTTL,
				},
				Jobs:    a.cfg.Jobs,
				Summary: summary || a.verbose,
			}

			b := batch.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), a.colorize, a.hyperlinks, factory, a.cfg.Presentation)
			stats, err := b.Run(ctx, opts)
			if err != nil {
				return err
			}
			if stats.Failures > 0 {
				return fmt.Errorf("%d of %d expressions failed", stats.Failures, stats.Expressions)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "*.time",
		"glob pattern selecting expression files")
	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false,
		"case-insensitive pattern matching")
	cmd.Flags().BoolVarP(&fullPath, "full-path", "p", false,
		"match pattern against full path (default: basename only)")
	cmd.Flags().StringSliceVarP(&excludes, "exclude", "E", []string{},
		"exclude patterns (can be specified multiple times)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false,
		"bypass cache, always fetch fresh data")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "",
		"override cache directory location")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 24*time.Hour,
		"cache time-to-live (e.g., 1h, 30m, 24h)")
	cmd.Flags().IntP("jobs", "j", 10,
		"maximum concurrent file evaluations")
	cmd.Flags().BoolVar(&summary, "summary", false,
		"print totals to stderr when done")

	return cmd
}
