// Package expr builds and evaluates time expressions.
package expr

import (
	"github.com/jparise/timecalc/internal/convert"
	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/timeparse"
	"github.com/jparise/timecalc/internal/timeunit"
	"github.com/jparise/timecalc/internal/timevar"
)

// Factory builds expressions under one Config. It is safe for concurrent
// use.
type Factory struct {
	cfg  Config
	conv convert.Converter
}

// NewFactory returns a factory bound to cfg.
func NewFactory(cfg Config) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Factory{cfg: cfg}, nil
}

// Config returns the factory's configuration.
func (f *Factory) Config() Config {
	return f.cfg
}

// Build parses raw and checks that every operation is between compatible
// operands. Malformed text yields a *timeparse.ParseError.
func (f *Factory) Build(raw string) (*Expression, error) {
	root, err := timeparse.Parse(raw)
	if err != nil {
		return nil, err
	}
	if _, err := check(raw, root); err != nil {
		return nil, err
	}
	return &Expression{raw: raw, root: root, cfg: f.cfg, conv: f.conv}, nil
}

// Expression is a parsed, type-checked time expression. It is immutable.
type Expression struct {
	raw  string
	root timeparse.Node
	cfg  Config
	conv convert.Converter
}

// Raw returns the text the expression was built from.
func (e *Expression) Raw() string {
	return e.raw
}

// String returns the expression in canonical form, e.g. "1h 30m + 2d".
func (e *Expression) String() string {
	return e.root.String()
}

// Millis evaluates the expression to a total in milliseconds, rounded
// according to the configuration. Negative totals are rejected with a
// *convert.RangeError.
func (e *Expression) Millis() (num.Num, error) {
	v, err := e.eval(e.root)
	if err != nil {
		return num.Zero, err
	}
	if !v.duration {
		if v.n, err = e.promote(v.n); err != nil {
			return num.Zero, err
		}
	}
	total := v.n.Round(0, e.cfg.Rounding)
	if total.IsNeg() {
		return num.Zero, &convert.RangeError{Value: e.raw, Reason: "negative durations are not supported"}
	}
	return total, nil
}

// Evaluate resolves the expression into a duration decomposed greedily over
// every unit.
func (e *Expression) Evaluate() (timevar.TimeVariable[num.Num], error) {
	total, err := e.Millis()
	if err != nil {
		return timevar.Zero, err
	}
	return e.conv.Decompose(total)
}

// promote turns a bare number into milliseconds of the default unit.
func (e *Expression) promote(n num.Num) (num.Num, error) {
	return convert.Convert(n, e.cfg.DefaultUnit, timeunit.Millisecond)
}
