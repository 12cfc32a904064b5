package expr

import (
	"fmt"

	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/timeunit"
)

// Config controls how raw expressions are interpreted. It is a value type;
// a Factory keeps its own copy.
type Config struct {
	// DefaultUnit is the unit given to bare numbers that stand for a duration.
	DefaultUnit timeunit.Unit
	// Rounding is applied to the evaluated total at whole-millisecond scale.
	Rounding num.Rounding
}

// DefaultConfig returns seconds as the default unit and no rounding.
func DefaultConfig() Config {
	return Config{
		DefaultUnit: timeunit.Second,
		Rounding:    num.RoundNone,
	}
}

// Validate reports the first invalid option.
func (c Config) Validate() error {
	if !c.DefaultUnit.Valid() {
		return fmt.Errorf("invalid default unit %v", c.DefaultUnit)
	}
	switch c.Rounding {
	case num.RoundNone, num.RoundHalfEven, num.RoundDown, num.RoundUp:
	default:
		return fmt.Errorf("invalid rounding %q", c.Rounding)
	}
	return nil
}
