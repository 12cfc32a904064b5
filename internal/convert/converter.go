package convert

import (
	"iter"
	"slices"

	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/timeunit"
	"github.com/jparise/timecalc/internal/timevar"
)

// Converter moves between decomposed durations and millisecond totals. It
// holds no state; the zero value is ready to use.
type Converter struct{}

// ToMillis returns the total length of tv in milliseconds.
func (Converter) ToMillis(tv timevar.TimeVariable[num.Num]) (num.Num, error) {
	total := num.Zero
	for u, v := range tv.All() {
		ms, err := Convert(v, u, timeunit.Millisecond)
		if err != nil {
			return num.Zero, err
		}
		if total, err = total.Add(ms); err != nil {
			return num.Zero, err
		}
	}
	return total, nil
}

// Decompose splits a millisecond total over every unit, largest first: each
// unit takes as many whole multiples as fit and passes the remainder down.
// 18 months (540 days) therefore decomposes as 1 year, 5 months, 3 weeks, 4 days.
func (c Converter) Decompose(ms num.Num) (timevar.TimeVariable[num.Num], error) {
	return c.DecomposeInto(ms, timevar.Fill(true))
}

// DecomposeInto is Decompose restricted to the units enabled in mask.
// Disabled units stay zero and their share flows into the next smaller
// enabled unit. The smallest enabled unit receives whatever is left, which
// may be fractional.
func (Converter) DecomposeInto(ms num.Num, mask timevar.TimeVariable[bool]) (timevar.TimeVariable[num.Num], error) {
	if ms.IsNeg() {
		return timevar.Zero, &RangeError{Value: ms.String() + "ms", Reason: "negative durations are not supported"}
	}

	units := timevar.Units(mask)
	if len(units) == 0 {
		return timevar.Zero, &RangeError{Reason: "no units to decompose into"}
	}

	b := timevar.NewBuilder[num.Num]()
	remaining := ms
	smallest := units[0]
	for _, u := range slices.Backward(units) {
		if u == smallest {
			break
		}
		q, r, err := remaining.QuoRem(num.FromInt(u.Millis()))
		if err != nil {
			return timevar.Zero, err
		}
		b.Set(u, q)
		remaining = r
	}

	last, err := Convert(remaining, timeunit.Millisecond, smallest)
	if err != nil {
		return timevar.Zero, err
	}
	b.Set(smallest, last)
	return b.Build(), nil
}

// Fold returns tv's magnitude for into plus the magnitudes of units,
// each converted to into.
func (Converter) Fold(tv timevar.TimeVariable[num.Num], into timeunit.Unit, units iter.Seq[timeunit.Unit]) (num.Num, error) {
	total := tv.Get(into)
	for u := range units {
		v, err := Convert(tv.Get(u), u, into)
		if err != nil {
			return num.Zero, err
		}
		if total, err = total.Add(v); err != nil {
			return num.Zero, err
		}
	}
	return total, nil
}
