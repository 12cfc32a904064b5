package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/timeunit"
	"github.com/jparise/timecalc/internal/timevar"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(New(""))
	require.NoError(t, err)

	assert.Equal(t, timeunit.Second, cfg.Expression.DefaultUnit)
	assert.Equal(t, num.RoundNone, cfg.Expression.Rounding)
	assert.True(t, cfg.Presentation.IncludeMilliseconds)
	assert.Equal(t, timevar.Fill(true), cfg.Presentation.Units)
	assert.Equal(t, language.English.String(), cfg.Presentation.Locale.String())
	assert.Equal(t, 10, cfg.Jobs)
}

func TestConfigFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
default_unit: minutes
rounding: half-even
include_milliseconds: false
units: [y, d, h]
locale: de
jobs: 4
`)

	cfg, err := Load(New(path))
	require.NoError(t, err)

	assert.Equal(t, timeunit.Minute, cfg.Expression.DefaultUnit)
	assert.Equal(t, num.RoundHalfEven, cfg.Expression.Rounding)
	assert.False(t, cfg.Presentation.IncludeMilliseconds)
	assert.Equal(t, []timeunit.Unit{timeunit.Hour, timeunit.Day, timeunit.Year}, timevar.Units(cfg.Presentation.Units))
	assert.Equal(t, "de", cfg.Presentation.Locale.String())
	assert.Equal(t, 4, cfg.Jobs)
}

func TestPrecedence(t *testing.T) {
	path := writeConfig(t, "config.toml", `
default_unit = "hour"
rounding = "up"
jobs = 3
`)
	t.Setenv("TIMECALC_DEFAULT_UNIT", "day")
	t.Setenv("TIMECALC_JOBS", "5")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("default-unit", "second", "")
	flags.Int("jobs", 10, "")
	require.NoError(t, flags.Parse([]string{"--jobs", "7"}))

	v := New(path)
	require.NoError(t, BindFlags(v, flags))
	cfg, err := Load(v)
	require.NoError(t, err)

	// Environment beats file, changed flag beats environment.
	assert.Equal(t, timeunit.Day, cfg.Expression.DefaultUnit)
	assert.Equal(t, 7, cfg.Jobs)
	// File beats default.
	assert.Equal(t, num.RoundUp, cfg.Expression.Rounding)
}

func TestUnitsFromEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TIMECALC_UNITS", "w,d")

	cfg, err := Load(New(""))
	require.NoError(t, err)
	assert.Equal(t, []timeunit.Unit{timeunit.Day, timeunit.Week}, timevar.Units(cfg.Presentation.Units))
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unit", "default_unit: fortnight\n"},
		{"rounding", "rounding: sideways\n"},
		{"units", "units: [d, eon]\n"},
		{"empty units", "units: []\n"},
		{"locale", "locale: \"!!\"\n"},
		{"jobs", "jobs: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(New(writeConfig(t, "config.yaml", tt.content)))
			assert.Error(t, err)
		})
	}
}

func TestMissingExplicitFile(t *testing.T) {
	_, err := Load(New(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}
