// Package batch evaluates files of time expressions from local directories
// and GitHub repositories.
package batch

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/semaphore"

	"github.com/jparise/timecalc/internal/expr"
	"github.com/jparise/timecalc/internal/github"
	"github.com/jparise/timecalc/internal/result"
)

// Files larger than this are skipped.
const maxFileSize = 1 << 20

// Batch orchestrates reading and evaluating expression files.
type Batch struct {
	output       *Output
	client       *github.Client
	factory      *expr.Factory
	presentation result.Config
}

// Stats counts what a run processed.
type Stats struct {
	Files       int
	Expressions int
	Failures    int // Expressions that failed to evaluate
}

type file struct {
	repo github.Repository // Zero for local files
	path string
	read func(context.Context) ([]byte, error)
}

type evaluation struct {
	line       int
	expression string
	text       string
	err        error
}

// New creates a new Batch that evaluates with factory and formats results
// with presentation.
func New(stdout, stderr io.Writer, colorize, hyperlinks bool, factory *expr.Factory, presentation result.Config) *Batch {
	return &Batch{
		output:       NewOutput(stdout, stderr, colorize, hyperlinks),
		factory:      factory,
		presentation: presentation,
	}
}

// Run evaluates every file matched by opts.
func (b *Batch) Run(ctx context.Context, opts *Options) (Stats, error) {
	var stats Stats

	files, err := b.collect(ctx, opts)
	if err != nil {
		return stats, err
	}
	if len(files) == 0 {
		b.output.Warningf("No files match the pattern")
		return stats, nil
	}
	stats.Files = len(files)

	// Evaluate files concurrently with bounded parallelism
	var wg sync.WaitGroup
	var errorCount, expressions, failures atomic.Int32
	sem := semaphore.NewWeighted(int64(opts.Jobs))

	for _, f := range files {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return stats, err
		}

		wg.Add(1)
		go func(f file) {
			defer wg.Done()
			defer sem.Release(1)

			lines, err := b.evaluateFile(ctx, f)
			if err != nil {
				errorCount.Add(1)
				b.output.Warningf("%s: %v", f.String(), err)
				return
			}

			expressions.Add(int32(len(lines)))
			for _, l := range lines {
				if l.err != nil {
					failures.Add(1)
				}
			}
			b.output.Report(f, lines)
		}(f)
	}

	wg.Wait()

	stats.Expressions = int(expressions.Load())
	stats.Failures = int(failures.Load())

	if opts.Summary {
		b.output.Infof("Evaluated %d expressions in %d files (%d failed)",
			stats.Expressions, stats.Files, stats.Failures)
	}

	if int(errorCount.Load()) == len(files) {
		return stats, fmt.Errorf("failed to read all %d files", len(files))
	}

	return stats, nil
}

func (f file) String() string {
	if f.repo.FullName == "" {
		return f.path
	}
	return f.repo.FullName + ":" + f.path
}

func (b *Batch) evaluateFile(ctx context.Context, f file) ([]evaluation, error) {
	data, err := f.read(ctx)
	if err != nil {
		return nil, err
	}

	var lines []evaluation
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; scanner.Scan(); n++ {
		raw, _, _ := strings.Cut(scanner.Text(), "#")
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		text, err := b.evaluate(raw)
		lines = append(lines, evaluation{line: n, expression: raw, text: text, err: err})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	slog.Debug("evaluated file", "file", f.String(), "expressions", len(lines))
	return lines, nil
}

func (b *Batch) evaluate(raw string) (string, error) {
	e, err := b.factory.Build(raw)
	if err != nil {
		return "", err
	}
	total, err := e.Millis()
	if err != nil {
		return "", err
	}
	r, err := result.New(total, b.presentation)
	if err != nil {
		return "", err
	}
	return r.Format(b.presentation.Locale), nil
}

// collect resolves every source into the files to evaluate.
func (b *Batch) collect(ctx context.Context, opts *Options) ([]file, error) {
	var files []file
	var repos []github.Repository

	for _, src := range opts.Sources {
		if src.IsLocal() {
			local, err := b.localFiles(src.Dir, opts)
			if err != nil {
				return nil, err
			}
			files = append(files, local...)
			continue
		}

		if b.client == nil {
			client, err := github.NewClient(opts.ClientOpts)
			if err != nil {
				return nil, err
			}
			b.client = client
		}

		// Fetch either the single named repo or all of an owner's repos.
		if src.Repo != "" {
			r, err := b.client.GetRepo(ctx, src.Owner, src.Repo)
			if err != nil {
				b.output.Warningf("%s: %v", src, err)
				continue
			}
			r.Ref = src.Ref
			repos = append(repos, r)
		} else {
			owned, err := b.client.ListRepos(ctx, src.Owner)
			if err != nil {
				return nil, err
			}
			repos = append(repos, owned...)
		}
	}

	// An explicit owner/repo may also have been expanded from its owner.
	// Deduplicate while preserving input order.
	seen := make(map[string]bool)
	for _, repo := range repos {
		key := repo.FullName + "@" + repo.TreeRef()
		if seen[key] {
			continue
		}
		seen[key] = true

		remote, err := b.repoFiles(ctx, repo, opts)
		if err != nil {
			b.output.Warningf("%s: %v", repo.FullName, err)
			continue
		}
		files = append(files, remote...)
	}

	return files, nil
}

func (b *Batch) localFiles(dir string, opts *Options) ([]file, error) {
	var files []file
	err := fs.WalkDir(os.DirFS(dir), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		ok, err := matches(p, opts)
		if err != nil || !ok {
			return err
		}

		name := filepath.Join(dir, filepath.FromSlash(p))
		if info, err := d.Info(); err == nil && info.Size() > maxFileSize {
			b.output.Warningf("%s: larger than %d bytes, skipping", name, maxFileSize)
			return nil
		}

		files = append(files, file{
			path: name,
			read: func(context.Context) ([]byte, error) { return os.ReadFile(name) },
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	return files, nil
}

func (b *Batch) repoFiles(ctx context.Context, repo github.Repository, opts *Options) ([]file, error) {
	tree, err := b.client.GetTree(ctx, repo)
	if err != nil {
		return nil, err
	}

	if tree.Truncated {
		b.output.Warningf("%s: exceeds GitHub's API limit (100k files or 7MB) - results are incomplete", repo.FullName)
	}

	var files []file
	for _, entry := range tree.Tree {
		if !entry.IsFile() {
			continue
		}

		ok, err := matches(entry.Path, opts)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if entry.Size > maxFileSize {
			b.output.Warningf("%s:%s: larger than %d bytes, skipping", repo.FullName, entry.Path, maxFileSize)
			continue
		}

		sha := entry.SHA
		files = append(files, file{
			repo: repo,
			path: entry.Path,
			read: func(ctx context.Context) ([]byte, error) { return b.client.GetBlob(ctx, repo, sha) },
		})
	}
	return files, nil
}

// matches reports whether a slash-separated path matches the pattern and no
// exclude.
func matches(p string, opts *Options) (bool, error) {
	matchPath := p
	if !opts.FullPath {
		matchPath = path.Base(matchPath)
	}

	pattern := opts.Pattern
	if opts.IgnoreCase {
		pattern = strings.ToLower(pattern)
		matchPath = strings.ToLower(matchPath)
	}

	matched, err := doublestar.Match(pattern, matchPath)
	if err != nil {
		return false, fmt.Errorf("pattern %q failed to match path %q: %w", opts.Pattern, p, err)
	}
	if !matched {
		return false, nil
	}

	for _, exclude := range opts.Excludes {
		if opts.IgnoreCase {
			exclude = strings.ToLower(exclude)
		}
		excluded, err := doublestar.Match(exclude, matchPath)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q failed to match path %q: %w", exclude, p, err)
		}
		if excluded {
			return false, nil
		}
	}

	return true, nil
}
