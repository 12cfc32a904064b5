package timevar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/timeunit"
)

func TestNewPositional(t *testing.T) {
	tv := New(num.FromInt(1), num.FromInt(2), num.FromInt(3), num.FromInt(4),
		num.FromInt(5), num.FromInt(6), num.FromInt(7), num.FromInt(8))

	for i, u := range timeunit.All() {
		assert.True(t, tv.Get(u).Equal(num.FromInt(int64(i+1))), "unit %v", u)
	}
}

func TestZero(t *testing.T) {
	assert.True(t, IsZero(Zero))
	for u, v := range Zero.All() {
		assert.True(t, v.IsZero(), "unit %v", u)
	}
	assert.False(t, IsZero(Zero.With(timeunit.Week, num.One)))
}

func TestWithDoesNotMutate(t *testing.T) {
	orig := Zero
	changed := orig.With(timeunit.Hour, num.FromInt(3))

	assert.True(t, orig.Get(timeunit.Hour).IsZero())
	assert.True(t, changed.Get(timeunit.Hour).Equal(num.FromInt(3)))
}

func TestBuilderSnapshot(t *testing.T) {
	b := NewBuilder[bool]()
	b.Set(timeunit.Day, true).Set(timeunit.Hour, true)
	first := b.Build()

	b.Set(timeunit.Day, false)
	second := b.Build()

	assert.True(t, first.Get(timeunit.Day))
	assert.False(t, second.Get(timeunit.Day))
	assert.True(t, b.Get(timeunit.Hour))
}

func TestFromSeedsBuilder(t *testing.T) {
	tv := Fill(true)
	mask := From(tv).Set(timeunit.Millisecond, false).Build()

	assert.False(t, mask.Get(timeunit.Millisecond))
	assert.True(t, tv.Get(timeunit.Millisecond))
	assert.Len(t, Units(mask), timeunit.Count-1)
}

func TestOnlyAndUnits(t *testing.T) {
	mask := Only(timeunit.Year, timeunit.Minute)
	assert.Equal(t, []timeunit.Unit{timeunit.Minute, timeunit.Year}, Units(mask))
}

func TestMap(t *testing.T) {
	tv := Fill(num.FromInt(2))
	mask := Map(tv, func(u timeunit.Unit, v num.Num) bool {
		return u >= timeunit.Day && !v.IsZero()
	})
	assert.Equal(t, []timeunit.Unit{timeunit.Day, timeunit.Week, timeunit.Month, timeunit.Year}, Units(mask))
}

func TestEqual(t *testing.T) {
	a := Zero.With(timeunit.Second, num.MustParse("1.50"))
	b := Zero.With(timeunit.Second, num.MustParse("1.5"))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, Zero))
}

func TestInvalidUnitPanics(t *testing.T) {
	assert.Panics(t, func() { Zero.Get(timeunit.Unit(-1)) })
	assert.Panics(t, func() { NewBuilder[bool]().Set(timeunit.Unit(8), true) })
}
