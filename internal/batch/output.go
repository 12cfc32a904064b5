package batch

import (
	"fmt"
	"io"
	"sync"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/mgutz/ansi"
)

// Output handles all output formatting with optional color and hyperlink support.
type Output struct {
	mu         sync.Mutex
	stdout     io.Writer
	stderr     io.Writer
	hostname   string
	hyperlinks bool

	cyan   func(string) string
	green  func(string) string
	white  func(string) string
	yellow func(string) string
	red    func(string) string
}

// NewOutput creates a new Output with optional color and hyperlink support.
func NewOutput(stdout, stderr io.Writer, colorize, hyperlinks bool) *Output {
	hostname, _ := auth.DefaultHost()

	color := func(name string) func(string) string {
		if colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	return &Output{
		stdout:     stdout,
		stderr:     stderr,
		hostname:   hostname,
		hyperlinks: hyperlinks,
		cyan:       color("cyan"),
		green:      color("green+b"),
		white:      color("white"),
		yellow:     color("yellow"),
		red:        color("red+b"),
	}
}

func makeHyperlink(url, text string) string {
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// location formats a line position as path:line or owner/repo:path:line.
func (o *Output) location(f file, line int) string {
	if f.repo.FullName == "" {
		return fmt.Sprintf("%s:%d", o.cyan(f.path), line)
	}

	formatted := fmt.Sprintf("%s:%s:%d", o.cyan(f.repo.FullName), o.white(f.path), line)
	if o.hyperlinks {
		url := fmt.Sprintf("https://%s/%s/blob/%s/%s#L%d",
			o.hostname, f.repo.FullName, f.repo.TreeRef(), f.path, line)
		formatted = makeHyperlink(url, formatted)
	}
	return formatted
}

// Report writes every evaluated line of a file. Lines of one file are never
// interleaved with another's.
func (o *Output) Report(f file, lines []evaluation) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, l := range lines {
		loc := o.location(f, l.line)
		if l.err != nil {
			fmt.Fprintf(o.stdout, "%s: %s %s %v\n", loc, l.expression, o.red("error:"), l.err)
			continue
		}
		fmt.Fprintf(o.stdout, "%s: %s = %s\n", loc, l.expression, o.green(l.text))
	}
}

// Warningf writes a formatted warning message to stderr.
func (o *Output) Warningf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.yellow("Warning: ")+format+"\n", args...)
}

// Infof writes a formatted informational message to stderr.
func (o *Output) Infof(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, format+"\n", args...)
}
