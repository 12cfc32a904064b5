// Package timevar holds per-unit vectors: one value for every time unit.
package timevar

import (
	"iter"

	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/timeunit"
)

// TimeVariable is an immutable vector with exactly one T per unit. It is a
// plain value; copies share nothing.
//
// A TimeVariable[num.Num] is a decomposed duration. A TimeVariable[bool] is a
// per-unit mask, used e.g. to choose which units a result is shown in.
type TimeVariable[T any] struct {
	values [timeunit.Count]T
}

// New builds a duration from eight magnitudes in ascending unit order.
func New(millis, seconds, minutes, hours, days, weeks, months, years num.Num) TimeVariable[num.Num] {
	return TimeVariable[num.Num]{values: [timeunit.Count]num.Num{
		millis, seconds, minutes, hours, days, weeks, months, years,
	}}
}

// Fill returns a vector with every unit set to v.
func Fill[T any](v T) TimeVariable[T] {
	var tv TimeVariable[T]
	for i := range tv.values {
		tv.values[i] = v
	}
	return tv
}

// Only returns a mask that is true for the given units.
func Only(units ...timeunit.Unit) TimeVariable[bool] {
	b := NewBuilder[bool]()
	for _, u := range units {
		b.Set(u, true)
	}
	return b.Build()
}

// Get returns the value for u. It panics if u is not a valid unit.
func (tv TimeVariable[T]) Get(u timeunit.Unit) T {
	mustBeValid(u)
	return tv.values[u]
}

// With returns a copy of tv with u set to v.
func (tv TimeVariable[T]) With(u timeunit.Unit, v T) TimeVariable[T] {
	mustBeValid(u)
	tv.values[u] = v
	return tv
}

// All yields every (unit, value) pair in ascending unit order.
func (tv TimeVariable[T]) All() iter.Seq2[timeunit.Unit, T] {
	return func(yield func(timeunit.Unit, T) bool) {
		for _, u := range timeunit.All() {
			if !yield(u, tv.values[u]) {
				return
			}
		}
	}
}

// Map applies f to every value.
func Map[T, U any](tv TimeVariable[T], f func(timeunit.Unit, T) U) TimeVariable[U] {
	var out TimeVariable[U]
	for u, v := range tv.All() {
		out.values[u] = f(u, v)
	}
	return out
}

// Units returns the units whose mask value is true, ascending.
func Units(mask TimeVariable[bool]) []timeunit.Unit {
	var units []timeunit.Unit
	for u, on := range mask.All() {
		if on {
			units = append(units, u)
		}
	}
	return units
}

// Zero is the duration with every magnitude zero.
var Zero = Fill(num.Zero)

// IsZero reports whether every magnitude is zero.
func IsZero(tv TimeVariable[num.Num]) bool {
	for _, v := range tv.All() {
		if !v.IsZero() {
			return false
		}
	}
	return true
}

// Equal reports whether two durations hold numerically equal magnitudes.
func Equal(a, b TimeVariable[num.Num]) bool {
	for u, v := range a.All() {
		if !v.Equal(b.Get(u)) {
			return false
		}
	}
	return true
}
