// Package num provides the decimal number type used for every time magnitude.
//
// Values are immutable and backed by github.com/govalues/decimal, which keeps up
// to 19 significant digits. That is enough for whole-millisecond totals of
// hundreds of millions of years; anything larger is reported as an overflow
// rather than silently losing precision.
package num

import (
	"errors"
	"fmt"
	"strings"

	"github.com/govalues/decimal"
	"gopkg.in/yaml.v3"
)

// ErrOverflow is matched by every *OverflowError.
var ErrOverflow = errors.New("numeric overflow")

// OverflowError reports an arithmetic operation whose result cannot be
// represented.
type OverflowError struct {
	Op  string // add, sub, mul, quo
	Err error  // underlying decimal error
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s: value out of range: %v", e.Op, e.Err)
}

func (e *OverflowError) Unwrap() error { return e.Err }

func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }

// Num is an immutable decimal value. The zero value is zero.
type Num struct {
	d decimal.Decimal
}

// Zero is the canonical zero.
var Zero = Num{}

// One is the number 1.
var One = FromInt(1)

// FromInt returns n as a Num.
func FromInt(n int64) Num {
	return Num{d: decimal.MustNew(n, 0)}
}

// FromDecimal wraps a decimal value.
func FromDecimal(d decimal.Decimal) Num {
	return Num{d: d}
}

// Parse parses a decimal string such as "42", "-3" or "1.25".
func Parse(s string) (Num, error) {
	d, err := decimal.Parse(strings.TrimSpace(s))
	if err != nil {
		return Zero, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Num{d: d}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Num {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Decimal returns the underlying decimal value.
func (n Num) Decimal() decimal.Decimal { return n.d }

func wrap(op string, d decimal.Decimal, err error) (Num, error) {
	if err != nil {
		return Zero, &OverflowError{Op: op, Err: err}
	}
	return Num{d: d}, nil
}

// Add returns n + m.
func (n Num) Add(m Num) (Num, error) {
	d, err := n.d.Add(m.d)
	return wrap("add", d, err)
}

// Sub returns n - m.
func (n Num) Sub(m Num) (Num, error) {
	d, err := n.d.Sub(m.d)
	return wrap("sub", d, err)
}

// Mul returns n * m.
func (n Num) Mul(m Num) (Num, error) {
	d, err := n.d.Mul(m.d)
	return wrap("mul", d, err)
}

// Quo returns n / m. Division by zero is reported as an *OverflowError.
func (n Num) Quo(m Num) (Num, error) {
	d, err := n.d.Quo(m.d)
	return wrap("quo", d, err)
}

// QuoRem returns the integer quotient and the remainder of n / m. The
// remainder has the sign of n.
func (n Num) QuoRem(m Num) (q, r Num, err error) {
	dq, dr, err := n.d.QuoRem(m.d)
	if err != nil {
		return Zero, Zero, &OverflowError{Op: "quo", Err: err}
	}
	return Num{d: dq}, Num{d: dr}, nil
}

// Neg returns -n.
func (n Num) Neg() Num { return Num{d: n.d.Neg()} }

// Abs returns |n|.
func (n Num) Abs() Num { return Num{d: n.d.Abs()} }

// Cmp compares n and m and returns -1, 0 or +1.
func (n Num) Cmp(m Num) int { return n.d.Cmp(m.d) }

// Equal reports whether n and m are numerically equal, ignoring scale.
func (n Num) Equal(m Num) bool { return n.d.Cmp(m.d) == 0 }

// Less reports whether n < m.
func (n Num) Less(m Num) bool { return n.d.Cmp(m.d) < 0 }

// IsZero reports whether n is exactly zero.
func (n Num) IsZero() bool { return n.d.IsZero() }

// IsNeg reports whether n < 0.
func (n Num) IsNeg() bool { return n.d.IsNeg() }

// IsInt reports whether n has no fractional part.
func (n Num) IsInt() bool { return n.d.IsInt() }

// Sign returns -1, 0 or +1.
func (n Num) Sign() int { return n.d.Sign() }

// Int64 returns the integer part of n if it fits in an int64.
func (n Num) Int64() (int64, bool) {
	whole, _, ok := n.d.Int64(0)
	return whole, ok
}

// String returns n without trailing fractional zeros, e.g. "1.5" or "-20".
func (n Num) String() string {
	return n.d.Trim(0).String()
}

// MarshalText implements encoding.TextMarshaler.
func (n Num) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Num) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// MarshalJSON encodes n as a bare JSON number.
func (n Num) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted strings.
func (n *Num) UnmarshalJSON(data []byte) error {
	return n.UnmarshalText([]byte(strings.Trim(string(data), `"`)))
}

// MarshalYAML encodes n as a plain YAML number.
func (n Num) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: n.String()}, nil
}

// Sum adds all values, stopping at the first overflow.
func Sum(values ...Num) (Num, error) {
	total := Zero
	for _, v := range values {
		var err error
		total, err = total.Add(v)
		if err != nil {
			return Zero, err
		}
	}
	return total, nil
}
