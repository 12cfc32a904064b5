// Package result holds the final artifact of a calculation and the display
// state a presenter derives from it.
package result

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/jparise/timecalc/internal/convert"
	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/timeunit"
	"github.com/jparise/timecalc/internal/timevar"
)

// Config selects how a result is presented.
type Config struct {
	// IncludeMilliseconds keeps a millisecond component. When false the
	// remainder below one second is shown as a fraction of the smallest unit.
	IncludeMilliseconds bool
	// Units are the units a total may be decomposed into.
	Units timevar.TimeVariable[bool]
	// Locale is the language used for digit grouping.
	Locale language.Tag
}

// DefaultConfig shows every unit, milliseconds included, with English
// grouping.
func DefaultConfig() Config {
	return Config{
		IncludeMilliseconds: true,
		Units:               timevar.Fill(true),
		Locale:              language.English,
	}
}

// Mask returns the units a result is decomposed into after applying
// IncludeMilliseconds.
func (c Config) Mask() timevar.TimeVariable[bool] {
	if c.IncludeMilliseconds {
		return c.Units
	}
	return c.Units.With(timeunit.Millisecond, false)
}

// TimeResult is an evaluated duration ready for presentation. It is
// immutable.
type TimeResult struct {
	millis   num.Num
	variable timevar.TimeVariable[num.Num]
	cfg      Config
}

// New decomposes a millisecond total under cfg.
func New(total num.Num, cfg Config) (TimeResult, error) {
	tv, err := convert.Converter{}.DecomposeInto(total, cfg.Mask())
	if err != nil {
		return TimeResult{}, err
	}
	return TimeResult{millis: total, variable: tv, cfg: cfg}, nil
}

// FromVariable recomposes tv into a total and decomposes it again under cfg,
// so "90 minutes" comes out as 1 hour 30 minutes.
func FromVariable(tv timevar.TimeVariable[num.Num], cfg Config) (TimeResult, error) {
	total, err := convert.Converter{}.ToMillis(tv)
	if err != nil {
		return TimeResult{}, err
	}
	return New(total, cfg)
}

// Millis returns the total in milliseconds.
func (r TimeResult) Millis() num.Num { return r.millis }

// Variable returns the decomposed duration.
func (r TimeResult) Variable() timevar.TimeVariable[num.Num] { return r.variable }

// Config returns the presentation config the result was built with.
func (r TimeResult) Config() Config { return r.cfg }

// Get returns the magnitude for u.
func (r TimeResult) Get(u timeunit.Unit) num.Num { return r.variable.Get(u) }

// IsZero reports whether u's magnitude is zero.
func (r TimeResult) IsZero(u timeunit.Unit) bool { return r.variable.Get(u).IsZero() }

// VisibleUnits returns the enabled units with a non-zero magnitude, largest
// first. A zero result shows its smallest enabled unit.
func (r TimeResult) VisibleUnits() []timeunit.Unit {
	enabled := timevar.Units(r.cfg.Mask())
	var units []timeunit.Unit
	for i := len(enabled) - 1; i >= 0; i-- {
		if !r.IsZero(enabled[i]) {
			units = append(units, enabled[i])
		}
	}
	if len(units) == 0 && len(enabled) > 0 {
		units = append(units, enabled[0])
	}
	return units
}

// String renders the result in English, e.g. "1 week, 1 day, 1 second".
func (r TimeResult) String() string {
	return r.Format(language.English)
}

// Format is String with the digit grouping of tag.
func (r TimeResult) Format(tag language.Tag) string {
	units := r.VisibleUnits()
	parts := make([]string, 0, len(units))
	for _, u := range units {
		parts = append(parts, Quantity(r.Get(u), u, tag))
	}
	return strings.Join(parts, ", ")
}

// Quantity renders a magnitude with its unit name, e.g. "1 day" or
// "1,500 years".
func Quantity(v num.Num, u timeunit.Unit, tag language.Tag) string {
	name := u.Plural()
	if v.Equal(num.One) {
		name = u.String()
	}
	return v.Format(tag) + " " + name
}
