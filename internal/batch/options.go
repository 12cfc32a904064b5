package batch

import (
	"fmt"
	"os"
	"strings"

	"github.com/jparise/timecalc/internal/github"
)

// Source is a place expression files are read from: either a local
// directory or a GitHub owner or repository.
type Source struct {
	Dir   string // Local directory (empty for GitHub sources)
	Owner string // Repository owner (user or organization)
	Repo  string // Repository name (empty means every repo of Owner)
	Ref   string // Branch/tag/SHA (empty means the default branch)
}

// IsLocal reports whether s names a local directory.
func (s Source) IsLocal() bool {
	return s.Dir != ""
}

func (s Source) String() string {
	switch {
	case s.IsLocal():
		return s.Dir
	case s.Repo == "":
		return s.Owner
	case s.Ref != "":
		return s.Owner + "/" + s.Repo + "@" + s.Ref
	default:
		return s.Owner + "/" + s.Repo
	}
}

// ParseSource parses a source argument. Existing directories and paths
// starting with "." or "/" are local; anything else is "owner",
// "owner/repo" or "owner/repo@ref".
func ParseSource(spec string) (Source, error) {
	if spec == "" {
		return Source{}, fmt.Errorf("empty source")
	}

	if strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/") {
		return Source{Dir: spec}, nil
	}
	if info, err := os.Stat(spec); err == nil && info.IsDir() {
		return Source{Dir: spec}, nil
	}

	var src Source
	name, ref, hasRef := strings.Cut(spec, "@")
	if hasRef {
		if ref == "" {
			return Source{}, fmt.Errorf("invalid source: %s (empty ref)", spec)
		}
		src.Ref = ref
	}

	parts := strings.Split(name, "/")
	switch {
	case len(parts) == 1 && parts[0] != "" && !hasRef:
		src.Owner = parts[0]
	case len(parts) == 2 && parts[0] != "" && parts[1] != "":
		src.Owner, src.Repo = parts[0], parts[1]
	default:
		return Source{}, fmt.Errorf("invalid source: %s (expected a directory, owner, or owner/repo[@ref])", spec)
	}
	return src, nil
}

// Options contains all batch parameters.
type Options struct {
	Pattern    string // Glob matched against file names (or paths with FullPath)
	Sources    []Source
	IgnoreCase bool
	FullPath   bool
	Excludes   []string // Exclude patterns
	ClientOpts github.ClientOptions
	Jobs       int  // Maximum concurrent file evaluations
	Summary    bool // Report totals to stderr when done
}
