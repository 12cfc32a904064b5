// Package config loads timecalc's settings once at startup from defaults, a
// config file, TIMECALC_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jparise/timecalc/internal/expr"
	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/result"
	"github.com/jparise/timecalc/internal/timeunit"
	"github.com/jparise/timecalc/internal/timevar"
)

// Keys recognized in config files and, upper-cased with a TIMECALC_ prefix,
// in the environment.
const (
	KeyDefaultUnit         = "default_unit"
	KeyRounding            = "rounding"
	KeyIncludeMilliseconds = "include_milliseconds"
	KeyUnits               = "units"
	KeyLocale              = "locale"
	KeyJobs                = "jobs"
)

const envPrefix = "TIMECALC"

// Config is the resolved configuration. It is read-only once loaded.
type Config struct {
	Expression   expr.Config
	Presentation result.Config
	Jobs         int // Maximum concurrent file evaluations
}

// New returns a viper instance with defaults and environment bindings. A
// non-empty path names the config file explicitly; otherwise
// $XDG_CONFIG_HOME/timecalc/config.{yaml,toml,json} is used if present.
func New(path string) *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDefaultUnit, timeunit.Second.String())
	v.SetDefault(KeyRounding, string(num.RoundNone))
	v.SetDefault(KeyIncludeMilliseconds, true)
	v.SetDefault(KeyUnits, "y,mo,w,d,h,m,s,ms")
	v.SetDefault(KeyLocale, "en")
	v.SetDefault(KeyJobs, 10)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "timecalc"))
		}
	}
	return v
}

// BindFlags lets flags override every other source. Flags are looked up by
// the key name with underscores replaced by dashes; missing flags are
// skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeyDefaultUnit, KeyRounding, KeyIncludeMilliseconds, KeyUnits, KeyLocale, KeyJobs} {
		f := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", f.Name, err)
		}
	}
	return nil
}

// Load reads the config file, if any, and resolves every setting.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		slog.Debug("no config file found, using defaults")
	} else {
		slog.Debug("loaded config", "file", v.ConfigFileUsed())
	}
	return Resolve(v)
}

// Resolve converts the values held by v into a Config.
func Resolve(v *viper.Viper) (Config, error) {
	var cfg Config

	unitName := v.GetString(KeyDefaultUnit)
	unit, ok := timeunit.Parse(unitName)
	if !ok {
		return Config{}, fmt.Errorf("invalid %s %q", KeyDefaultUnit, unitName)
	}

	var rounding num.Rounding
	if err := rounding.Set(v.GetString(KeyRounding)); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyRounding, err)
	}

	cfg.Expression = expr.Config{DefaultUnit: unit, Rounding: rounding}
	if err := cfg.Expression.Validate(); err != nil {
		return Config{}, err
	}

	// Lists may arrive as YAML sequences or as one comma-separated string.
	units, err := timeunit.ParseList(strings.Join(v.GetStringSlice(KeyUnits), ","))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyUnits, err)
	}
	if len(units) == 0 {
		return Config{}, fmt.Errorf("invalid %s: at least one unit is required", KeyUnits)
	}

	tag, err := num.ParseLocale(v.GetString(KeyLocale))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s %q: %w", KeyLocale, v.GetString(KeyLocale), err)
	}

	cfg.Presentation = result.Config{
		IncludeMilliseconds: v.GetBool(KeyIncludeMilliseconds),
		Units:               timevar.Only(units...),
		Locale:              tag,
	}

	cfg.Jobs = v.GetInt(KeyJobs)
	if cfg.Jobs < 1 || cfg.Jobs > 100 {
		return Config{}, fmt.Errorf("%s must be between 1 and 100, got %d", KeyJobs, cfg.Jobs)
	}

	return cfg, nil
}
