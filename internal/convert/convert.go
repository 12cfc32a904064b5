// Package convert converts magnitudes between time units and between
// decomposed durations and millisecond totals.
//
// Every conversion goes through milliseconds using the fixed unit lengths in
// package timeunit, so chaining A to B to C agrees with converting A to C
// directly up to decimal rounding.
package convert

import (
	"errors"
	"fmt"

	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/timeunit"
)

// ErrRange is matched by every *RangeError.
var ErrRange = errors.New("conversion out of range")

// RangeError reports input the converter does not accept: an unknown unit,
// a negative duration, or a decomposition with no target units.
type RangeError struct {
	Value  string
	Reason string
}

func (e *RangeError) Error() string {
	if e.Value == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Value, e.Reason)
}

func (e *RangeError) Is(target error) bool { return target == ErrRange }

// Convert converts v from one unit to another. Converting a unit to itself
// returns v unchanged.
func Convert(v num.Num, from, to timeunit.Unit) (num.Num, error) {
	if !from.Valid() {
		return num.Zero, &RangeError{Value: from.String(), Reason: "unknown source unit"}
	}
	if !to.Valid() {
		return num.Zero, &RangeError{Value: to.String(), Reason: "unknown target unit"}
	}
	if from == to {
		return v, nil
	}

	ms, err := v.Mul(num.FromInt(from.Millis()))
	if err != nil {
		return num.Zero, fmt.Errorf("converting %s %s to %s: %w", v, from.Plural(), to.Plural(), err)
	}
	if to == timeunit.Millisecond {
		return ms, nil
	}
	out, err := ms.Quo(num.FromInt(to.Millis()))
	if err != nil {
		return num.Zero, fmt.Errorf("converting %s %s to %s: %w", v, from.Plural(), to.Plural(), err)
	}
	return out, nil
}
