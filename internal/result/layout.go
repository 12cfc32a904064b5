package result

import (
	"fmt"
	"slices"

	"github.com/jparise/timecalc/internal/convert"
	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/timeunit"
)

// BlockState is the display state of one unit's block.
type BlockState int

const (
	Visible BlockState = iota
	// VisibleMaximized marks a block that has absorbed collapsed blocks.
	VisibleMaximized
	Hidden
	Collapsed
)

func (s BlockState) String() string {
	switch s {
	case Visible:
		return "visible"
	case VisibleMaximized:
		return "visible-maximized"
	case Hidden:
		return "hidden"
	case Collapsed:
		return "collapsed"
	}
	return fmt.Sprintf("BlockState(%d)", int(s))
}

func (s BlockState) shown() bool {
	return s == Visible || s == VisibleMaximized
}

// Interaction is a user gesture on a block.
type Interaction int

const (
	SingleTap Interaction = iota
	DoubleTap
)

// Layout tracks which unit blocks of a result are shown, and folds collapsed
// larger units into the block that absorbed them. A Layout is not safe for
// concurrent use.
type Layout struct {
	result TimeResult
	states [timeunit.Count]BlockState
}

// NewLayout returns a layout over r. Units outside r's presentation mask are
// hidden; so are zero-valued units when hideZero is set.
func NewLayout(r TimeResult, hideZero bool) *Layout {
	l := &Layout{result: r}
	mask := r.cfg.Mask()
	for _, u := range timeunit.All() {
		if !mask.Get(u) || (hideZero && r.IsZero(u)) {
			l.states[u] = Hidden
		}
	}
	return l
}

// State returns u's block state.
func (l *Layout) State(u timeunit.Unit) BlockState {
	return l.states[u]
}

// Maximized reports whether u shows the marker for absorbed blocks.
func (l *Layout) Maximized(u timeunit.Unit) bool {
	return l.states[u] == VisibleMaximized
}

// Handle routes a gesture on u: a single tap collapses the next block, a
// double tap expands it again. It reports whether anything changed.
func (l *Layout) Handle(u timeunit.Unit, i Interaction) bool {
	if !l.states[u].shown() {
		return false
	}
	switch i {
	case SingleTap:
		return l.CollapseNext(u)
	case DoubleTap:
		return l.ExpandNext(u)
	}
	return false
}

// CollapseNext folds the first shown block after u into u.
func (l *Layout) CollapseNext(u timeunit.Unit) bool {
	target, ok := l.firstShownAfter(u)
	if !ok {
		return false
	}
	l.states[target] = Collapsed
	l.states[u] = VisibleMaximized
	return true
}

// ExpandNext restores the block just before the first shown block after u,
// or the last unit after u when nothing after it is shown. It reports false
// when that block is not Collapsed. Expanding the block adjacent to u clears
// u's maximize marker.
func (l *Layout) ExpandNext(u timeunit.Unit) bool {
	target, ok := l.firstShownAfter(u)
	if ok {
		target, ok = target.Prev()
	} else {
		for n := range u.AllNext() {
			target, ok = n, true
		}
	}
	if !ok || target <= u || l.states[target] != Collapsed {
		return false
	}
	l.states[target] = Visible

	if prev, _ := target.Prev(); prev == u {
		l.states[u] = Visible
	}
	return true
}

// Value returns what u's block displays: its own magnitude plus the blocks
// collapsed into it, converted to u. Hidden blocks in between hold zero or
// are excluded from the result, so folding them is harmless.
func (l *Layout) Value(u timeunit.Unit) (num.Num, error) {
	return convert.Converter{}.Fold(l.result.variable, u, slices.Values(l.chain(u)))
}

// chain returns the units after u up to, not including, the next shown one.
func (l *Layout) chain(u timeunit.Unit) []timeunit.Unit {
	var units []timeunit.Unit
	for n := range u.AllNext() {
		if l.states[n].shown() {
			break
		}
		units = append(units, n)
	}
	return units
}

func (l *Layout) firstShownAfter(u timeunit.Unit) (timeunit.Unit, bool) {
	for n := range u.AllNext() {
		if l.states[n].shown() {
			return n, true
		}
	}
	return 0, false
}

// Shown returns the shown units, largest first. When every block is hidden
// the result's smallest enabled unit is returned so a zero total still
// renders.
func (l *Layout) Shown() []timeunit.Unit {
	var units []timeunit.Unit
	for _, u := range slices.Backward(timeunit.All()) {
		if l.states[u].shown() {
			units = append(units, u)
		}
	}
	if len(units) == 0 {
		return l.result.VisibleUnits()
	}
	return units
}

// Summary is TimeResult.Summary with collapsed blocks folded into the block
// that absorbed them.
func (l *Layout) Summary(expression string) (Summary, error) {
	return l.result.summarize(expression, l.Shown(), l.Value)
}
