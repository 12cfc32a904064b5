package batch

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jparise/timecalc/internal/github"
)

func TestNewOutput(t *testing.T) {
	tests := []struct {
		name       string
		colorize   bool
		hyperlinks bool
	}{
		{
			name:       "with colors and hyperlinks",
			colorize:   true,
			hyperlinks: true,
		},
		{
			name:       "with colors only",
			colorize:   true,
			hyperlinks: false,
		},
		{
			name:       "without colors or hyperlinks",
			colorize:   false,
			hyperlinks: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := NewOutput(&bytes.Buffer{}, &bytes.Buffer{}, tt.colorize, tt.hyperlinks)
			colorFuncs := []struct {
				name string
				fn   func(string) string
			}{
				{"cyan", output.cyan},
				{"green", output.green},
				{"white", output.white},
				{"yellow", output.yellow},
				{"red", output.red},
			}
			for _, cf := range colorFuncs {
				if cf.fn == nil {
					t.Fatalf("NewOutput() %s color func is nil", cf.name)
				}
				s := cf.fn("test")
				if tt.colorize && s == "test" {
					t.Errorf("NewOutput() expected %s color func to return ANSI codes", cf.name)
				}
				if !tt.colorize && s != "test" {
					t.Errorf("NewOutput() expected %s color func to return plain string, got %q", cf.name, s)
				}
			}
		})
	}
}

func TestReport(t *testing.T) {
	repo := github.Repository{Owner: "octocat", Name: "plans", FullName: "octocat/plans", DefaultBranch: "main"}

	tests := []struct {
		name       string
		file       file
		lines      []evaluation
		hyperlinks bool
		want       []string
		wantURL    string
	}{
		{
			name:  "local file",
			file:  file{path: "plans/sprint.time"},
			lines: []evaluation{{line: 3, expression: "90s", text: "1 minute, 30 seconds"}},
			want:  []string{"plans/sprint.time:3: 90s = 1 minute, 30 seconds"},
		},
		{
			name: "failure",
			file: file{path: "a.time"},
			lines: []evaluation{
				{line: 1, expression: "1h", text: "1 hour"},
				{line: 2, expression: "1 parsec", err: errors.New("unknown unit")},
			},
			want: []string{"a.time:1: 1h = 1 hour", "a.time:2: 1 parsec error: unknown unit"},
		},
		{
			name:       "repository file with hyperlinks",
			file:       file{repo: repo, path: "q3/estimate.time"},
			lines:      []evaluation{{line: 7, expression: "2d", text: "2 days"}},
			hyperlinks: true,
			want:       []string{"octocat/plans:q3/estimate.time:7", "2d = 2 days"},
			wantURL:    "https://github.com/octocat/plans/blob/main/q3/estimate.time#L7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			output := NewOutput(stdout, stderr, false, tt.hyperlinks)

			output.Report(tt.file, tt.lines)
			got := stdout.String()

			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("Report() output = %q, want to contain %q", got, want)
				}
			}
			if n := strings.Count(got, "\n"); n != len(tt.lines) {
				t.Errorf("Report() wrote %d lines, want %d", n, len(tt.lines))
			}
			if tt.wantURL != "" && !strings.Contains(got, tt.wantURL) {
				t.Errorf("Report() output = %q, want to contain URL %q", got, tt.wantURL)
			}
			if stderr.Len() != 0 {
				t.Errorf("Report() wrote to stderr: %q", stderr.String())
			}
		})
	}
}

func TestWarningf(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	output := NewOutput(stdout, stderr, false, false)

	output.Warningf("%s/%s has %d files", "owner", "repo", 100000)

	if want := "Warning: owner/repo has 100000 files"; !strings.Contains(stderr.String(), want) {
		t.Errorf("Warningf() output = %q, want to contain %q", stderr.String(), want)
	}
	if stdout.Len() != 0 {
		t.Errorf("Warningf() wrote to stdout: %q", stdout.String())
	}
}

func TestInfof(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	output := NewOutput(stdout, stderr, false, false)

	output.Infof("evaluated %d files", 3)

	if want := "evaluated 3 files\n"; stderr.String() != want {
		t.Errorf("Infof() output = %q, want %q", stderr.String(), want)
	}
	if stdout.Len() != 0 {
		t.Errorf("Infof() wrote to stdout: %q", stdout.String())
	}
}

func TestOutputThreadSafety(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	output := NewOutput(stdout, stderr, false, false)

	const numGoroutines = 10
	const numCalls = 100

	lines := []evaluation{
		{line: 1, expression: "1h", text: "1 hour"},
		{line: 2, expression: "2h", text: "2 hours"},
	}

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 3)

	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range numCalls {
				output.Report(file{path: "a.time"}, lines)
			}
		}()
		go func() {
			defer wg.Done()
			for range numCalls {
				output.Warningf("warning")
			}
		}()
		go func() {
			defer wg.Done()
			for range numCalls {
				output.Infof("info")
			}
		}()
	}

	wg.Wait()

	stdoutLines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	if want := numGoroutines * numCalls * len(lines); len(stdoutLines) != want {
		t.Fatalf("stdout lines = %d, want %d", len(stdoutLines), want)
	}
	// Each report's lines stay adjacent.
	for i := 0; i < len(stdoutLines); i += 2 {
		if !strings.HasPrefix(stdoutLines[i], "a.time:1:") || !strings.HasPrefix(stdoutLines[i+1], "a.time:2:") {
			t.Fatalf("interleaved output at line %d: %q, %q", i, stdoutLines[i], stdoutLines[i+1])
		}
	}

	if want := numGoroutines * numCalls * 2; strings.Count(stderr.String(), "\n") != want {
		t.Errorf("stderr lines = %d, want %d (Warningf + Infof)", strings.Count(stderr.String(), "\n"), want)
	}
}
