package timevar

import (
	"fmt"

	"github.com/jparise/timecalc/internal/timeunit"
)

// Builder assembles a TimeVariable one unit at a time. Build copies the
// current values, so later Sets never reach a built value. A Builder is not
// safe for concurrent use.
type Builder[T any] struct {
	values [timeunit.Count]T
}

// NewBuilder returns a builder with every unit at T's zero value.
func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{}
}

// From returns a builder seeded with tv.
func From[T any](tv TimeVariable[T]) *Builder[T] {
	return &Builder[T]{values: tv.values}
}

// Set assigns v to u and returns the builder for chaining.
func (b *Builder[T]) Set(u timeunit.Unit, v T) *Builder[T] {
	mustBeValid(u)
	b.values[u] = v
	return b
}

// Get returns the value currently assigned to u.
func (b *Builder[T]) Get(u timeunit.Unit) T {
	mustBeValid(u)
	return b.values[u]
}

// Build returns an immutable snapshot.
func (b *Builder[T]) Build() TimeVariable[T] {
	return TimeVariable[T]{values: b.values}
}

// A missing unit entry is a broken invariant, not bad input.
func mustBeValid(u timeunit.Unit) {
	if !u.Valid() {
		panic(fmt.Sprintf("timevar: invalid unit %d", int(u)))
	}
}
