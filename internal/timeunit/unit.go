// Package timeunit defines the eight ordered units a duration is measured in.
package timeunit

import (
	"fmt"
	"iter"
	"strings"
)

// Unit is a granularity of duration measurement. Units are totally ordered
// from Millisecond to Year.
type Unit int

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

// Count is the number of units.
const Count = int(Year) + 1

// Fixed lengths in milliseconds. Months and years are calendar-approximate:
// a month is 30 days and a year is 365 days.
var millis = [Count]int64{
	Millisecond: 1,
	Second:      1000,
	Minute:      60 * 1000,
	Hour:        60 * 60 * 1000,
	Day:         24 * 60 * 60 * 1000,
	Week:        7 * 24 * 60 * 60 * 1000,
	Month:       30 * 24 * 60 * 60 * 1000,
	Year:        365 * 24 * 60 * 60 * 1000,
}

var names = [Count]string{"millisecond", "second", "minute", "hour", "day", "week", "month", "year"}

var symbols = [Count]string{"ms", "s", "m", "h", "d", "w", "mo", "y"}

var aliases = map[string]Unit{
	"msec": Millisecond,
	"sec":  Second,
	"min":  Minute,
	"hr":   Hour,
	"wk":   Week,
	"yr":   Year,
}

// All returns every unit in ascending order.
func All() []Unit {
	return []Unit{Millisecond, Second, Minute, Hour, Day, Week, Month, Year}
}

// Valid reports whether u is one of the eight defined units.
func (u Unit) Valid() bool {
	return u >= Millisecond && u <= Year
}

// Millis returns the length of one u in milliseconds.
func (u Unit) Millis() int64 {
	u.mustBeValid()
	return millis[u]
}

// Prev returns the unit immediately before u. It reports false for Millisecond.
func (u Unit) Prev() (Unit, bool) {
	if u <= Millisecond || !u.Valid() {
		return 0, false
	}
	return u - 1, true
}

// Next returns the unit immediately after u. It reports false for Year.
func (u Unit) Next() (Unit, bool) {
	if u >= Year || !u.Valid() {
		return 0, false
	}
	return u + 1, true
}

// AllNext yields every unit strictly after u in ascending order. The
// sequence may be ranged over any number of times.
func (u Unit) AllNext() iter.Seq[Unit] {
	return func(yield func(Unit) bool) {
		for n, ok := u.Next(); ok; n, ok = n.Next() {
			if !yield(n) {
				return
			}
		}
	}
}

// AllPrev yields every unit strictly before u, nearest first.
func (u Unit) AllPrev() iter.Seq[Unit] {
	return func(yield func(Unit) bool) {
		for p, ok := u.Prev(); ok; p, ok = p.Prev() {
			if !yield(p) {
				return
			}
		}
	}
}

// String returns the singular English name, e.g. "minute".
func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return names[u]
}

// Symbol returns the short form used in expressions, e.g. "mo".
func (u Unit) Symbol() string {
	u.mustBeValid()
	return symbols[u]
}

// Plural returns the English name for a count other than one.
func (u Unit) Plural() string {
	return u.String() + "s"
}

// Parse resolves a unit token: a symbol ("h"), a short alias ("hr") or the
// singular or plural name ("hours"). Matching is case-insensitive.
func Parse(token string) (Unit, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	for u := Millisecond; u <= Year; u++ {
		if t == symbols[u] || t == names[u] || t == names[u]+"s" {
			return u, true
		}
	}
	if u, ok := aliases[t]; ok {
		return u, true
	}
	if u, ok := aliases[strings.TrimSuffix(t, "s")]; ok {
		return u, true
	}
	return 0, false
}

// ParseList parses a comma-separated list of unit tokens.
func ParseList(s string) ([]Unit, error) {
	var units []Unit
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		u, ok := Parse(part)
		if !ok {
			return nil, fmt.Errorf("unknown unit %q", part)
		}
		units = append(units, u)
	}
	return units, nil
}

func (u Unit) mustBeValid() {
	if !u.Valid() {
		panic(fmt.Sprintf("timeunit: invalid unit %d", int(u)))
	}
}
