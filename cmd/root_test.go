package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jparise/timecalc/internal/convert"
	"github.com/jparise/timecalc/internal/timeparse"
)

func TestColorMode(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
		want    colorMode
	}{
		{
			name:    "auto",
			value:   "auto",
			wantErr: false,
			want:    colorAuto,
		},
		{
			name:    "always",
			value:   "always",
			wantErr: false,
			want:    colorAlways,
		},
		{
			name:    "never",
			value:   "never",
			wantErr: false,
			want:    colorNever,
		},
		{
			name:    "invalid value",
			value:   "invalid",
			wantErr: true,
		},
		{
			name:    "empty string",
			value:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c colorMode
			err := c.Set(tt.value)

			if tt.wantErr {
				if err == nil {
					t.Errorf("colorMode.Set(%q) expected error, got nil", tt.value)
				}
				return
			}

			if err != nil {
				t.Errorf("colorMode.Set(%q) unexpected error: %v", tt.value, err)
				return
			}

			if c != tt.want {
				t.Errorf("colorMode.Set(%q) = %v, want %v", tt.value, c, tt.want)
			}

			// Test String() method
			if c.String() != tt.value {
				t.Errorf("colorMode.String() = %q, want %q", c.String(), tt.value)
			}

			// Test Type() method
			if c.Type() != "colorMode" {
				t.Errorf("colorMode.Type() = %q, want %q", c.Type(), "colorMode")
			}
		})
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		value   string
		want    outputFormat
		wantErr bool
	}{
		{value: "text", want: outputText},
		{value: "json", want: outputJSON},
		{value: "yaml", want: outputYAML},
		{value: "xml", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var o outputFormat
			err := o.Set(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("outputFormat.Set(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err == nil && o != tt.want {
				t.Errorf("outputFormat.Set(%q) = %v, want %v", tt.value, o, tt.want)
			}
		})
	}
}

// execute runs the CLI with an empty config directory and colors disabled.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"joined arguments", []string{"eval", "1w", "1d", "1s"}, "1 week, 1 day, 1 second"},
		{"bare number", []string{"eval", "90"}, "1 minute, 30 seconds"},
		{"arithmetic", []string{"eval", "(2h + 30m) * 3"}, "7 hours, 30 minutes"},
		{"default unit flag", []string{"--default-unit", "m", "eval", "90"}, "1 hour, 30 minutes"},
		{"units flag", []string{"--units", "h,m", "eval", "1d"}, "24 hours"},
		{"no millis", []string{"eval", "--no-millis", "1500ms"}, "1.5 seconds"},
		{"rounding", []string{"--rounding", "up", "eval", "1ms / 4"}, "1 millisecond"},
		{"collapse", []string{"eval", "--collapse", "m", "1h 2m"}, "62 minutes"},
		{"zero", []string{"eval", "1h - 60m"}, "0 milliseconds"},
		{"locale", []string{"--locale", "de", "--units", "d", "eval", "1000000d"}, "1.000.000 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", stdout)
		})
	}
}

func TestEvalStructuredOutput(t *testing.T) {
	stdout, _, err := execute(t, "eval", "-o", "json", "90s")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"expression": "90s",
		"millis": 90000,
		"units": [{"unit": "minute", "value": 1}, {"unit": "second", "value": 30}],
		"text": "1 minute, 30 seconds"
	}`, stdout)

	stdout, _, err = execute(t, "eval", "--output", "yaml", "90s")
	require.NoError(t, err)
	assert.Contains(t, stdout, "millis: 90000\n")
	assert.Contains(t, stdout, "text: 1 minute, 30 seconds\n")
}

func TestEvalErrors(t *testing.T) {
	_, _, err := execute(t, "eval", "1s - 2s")
	assert.True(t, errors.Is(err, convert.ErrRange), "got %v", err)

	_, _, err = execute(t, "eval", "5 foo")
	var perr *timeparse.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "foo", perr.Token)

	_, _, err = execute(t, "eval", "--collapse", "parsec", "1h")
	assert.ErrorContains(t, err, "parsec")

	// The zero minute block is hidden, so there is nothing to fold into it.
	_, _, err = execute(t, "eval", "--collapse", "m", "2h")
	assert.ErrorContains(t, err, "cannot collapse into minutes")

	_, _, err = execute(t, "eval", "--collapse", "h", "2h")
	assert.ErrorContains(t, err, "cannot collapse into hours")

	_, _, err = execute(t, "--rounding", "sideways", "eval", "1h")
	assert.Error(t, err)

	_, _, err = execute(t, "eval")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	stdout, _, err := execute(t, "convert", "90", "m", "h")
	require.NoError(t, err)
	assert.Equal(t, "1.5 hours\n", stdout)

	stdout, _, err = execute(t, "convert", "1", "year", "days")
	require.NoError(t, err)
	assert.Equal(t, "365 days\n", stdout)

	_, _, err = execute(t, "convert", "1", "parsec", "d")
	assert.ErrorContains(t, err, "parsec")

	_, _, err = execute(t, "convert", "abc", "s", "m")
	assert.Error(t, err)
}

func TestDecompose(t *testing.T) {
	stdout, _, err := execute(t, "decompose", "691201000")
	require.NoError(t, err)
	assert.Equal(t, "1 week, 1 day, 1 second\n", stdout)

	_, _, err = execute(t, "decompose", "--", "-5")
	assert.True(t, errors.Is(err, convert.ErrRange), "got %v", err)
}

func TestBetween(t *testing.T) {
	stdout, _, err := execute(t, "between", "--tz", "UTC", "2024-01-02", "2024-01-01 12:00:00")
	require.NoError(t, err)
	assert.Equal(t, "12 hours\n", stdout)

	_, _, err = execute(t, "between", "--tz", "Mars/Olympus", "now", "now")
	assert.ErrorContains(t, err, "invalid --tz")

	_, _, err = execute(t, "between", "yesterday", "now")
	assert.Error(t, err)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.time"), []byte("1h 30m\n1s - 2s\n"), 0o644))

	stdout, _, err := execute(t, "batch", "-j", "1", dir)
	assert.ErrorContains(t, err, "1 of 2 expressions failed")
	assert.Contains(t, stdout, "a.time:1: 1h 30m = 1 hour, 30 minutes")

	_, _, err = execute(t, "batch", "-j", "0", dir)
	assert.ErrorContains(t, err, "jobs must be between 1 and 100")

	_, _, err = execute(t, "batch", "a/b/c")
	assert.Error(t, err)
}

func TestConfigSources(t *testing.T) {
	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "timecalc.yaml")
		require.NoError(t, os.WriteFile(path, []byte("default_unit: h\n"), 0o644))

		stdout, _, err := execute(t, "--config", path, "eval", "2")
		require.NoError(t, err)
		assert.Equal(t, "2 hours\n", stdout)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("TIMECALC_DEFAULT_UNIT", "d")

		stdout, _, err := execute(t, "eval", "2")
		require.NoError(t, err)
		assert.Equal(t, "2 days\n", stdout)
	})

	t.Run("flag beats environment", func(t *testing.T) {
		t.Setenv("TIMECALC_DEFAULT_UNIT", "d")

		stdout, _, err := execute(t, "--default-unit", "w", "eval", "2")
		require.NoError(t, err)
		assert.Equal(t, "2 weeks\n", stdout)
	})

	t.Run("verbose logging", func(t *testing.T) {
		_, stderr, err := execute(t, "--verbose", "eval", "2")
		require.NoError(t, err)
		assert.True(t, strings.Contains(stderr, "resolved configuration"), "stderr = %q", stderr)
	})
}
