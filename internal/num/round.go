package num

import "fmt"

// Rounding selects how fractional values are reduced to a fixed scale.
type Rounding string

const (
	RoundNone     Rounding = "none"
	RoundHalfEven Rounding = "half-even"
	RoundDown     Rounding = "down"
	RoundUp       Rounding = "up"
)

// String is used both by fmt.Print and by Cobra in help text.
func (r *Rounding) String() string {
	return string(*r)
}

// Set must have pointer receiver to validate and set the value.
func (r *Rounding) Set(v string) error {
	switch Rounding(v) {
	case RoundNone, RoundHalfEven, RoundDown, RoundUp:
		*r = Rounding(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"none\", \"half-even\", \"down\", or \"up\"")
	}
}

// Type is only used in help text.
func (r *Rounding) Type() string {
	return "rounding"
}

// Round reduces n to scale fractional digits using mode. RoundDown and
// RoundUp are floor and ceiling respectively; RoundNone returns n unchanged.
func (n Num) Round(scale int, mode Rounding) Num {
	switch mode {
	case RoundHalfEven:
		return Num{d: n.d.Round(scale)}
	case RoundDown:
		return Num{d: n.d.Floor(scale)}
	case RoundUp:
		return Num{d: n.d.Ceil(scale)}
	default:
		return n
	}
}
