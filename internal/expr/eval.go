package expr

import (
	"fmt"

	"github.com/jparise/timecalc/internal/convert"
	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/timeparse"
	"github.com/jparise/timecalc/internal/timeunit"
)

// check reports whether n is a duration (true) or a scalar (false) and
// rejects products of two durations and division by a duration. Sums and
// differences are durations when any operand is; bare numbers alone stay
// scalar.
func check(raw string, n timeparse.Node) (bool, error) {
	switch n := n.(type) {
	case *timeparse.Quantity:
		return n.HasUnit, nil
	case *timeparse.Sum:
		duration := false
		for _, t := range n.Terms {
			d, err := check(raw, t)
			if err != nil {
				return false, err
			}
			duration = duration || d
		}
		return duration, nil
	case *timeparse.Binary:
		left, err := check(raw, n.Left)
		if err != nil {
			return false, err
		}
		right, err := check(raw, n.Right)
		if err != nil {
			return false, err
		}
		switch n.Op {
		case '*':
			if left && right {
				return false, operandError(raw, n, "cannot multiply two durations")
			}
			return left || right, nil
		case '/':
			if right {
				return false, operandError(raw, n, "cannot divide by a duration")
			}
			return left, nil
		default:
			return left || right, nil
		}
	default:
		panic(fmt.Sprintf("expr: unexpected node %T", n))
	}
}

func operandError(raw string, b *timeparse.Binary, msg string) error {
	return &timeparse.ParseError{Input: raw, Pos: b.Offset, Token: string(b.Op), Msg: msg}
}

// value is an intermediate result: milliseconds when duration is set,
// otherwise a plain number.
type value struct {
	n        num.Num
	duration bool
}

func (e *Expression) eval(n timeparse.Node) (value, error) {
	switch n := n.(type) {
	case *timeparse.Quantity:
		if !n.HasUnit {
			return value{n: n.Value}, nil
		}
		ms, err := convert.Convert(n.Value, n.Unit, timeunit.Millisecond)
		return value{n: ms, duration: true}, err
	case *timeparse.Sum:
		values := make([]value, 0, len(n.Terms))
		for _, t := range n.Terms {
			v, err := e.eval(t)
			if err != nil {
				return value{}, err
			}
			values = append(values, v)
		}
		return e.add(values...)
	case *timeparse.Binary:
		return e.evalBinary(n)
	default:
		panic(fmt.Sprintf("expr: unexpected node %T", n))
	}
}

// add sums values. When any of them is a duration, bare numbers take the
// default unit and the sum is a duration.
func (e *Expression) add(values ...value) (value, error) {
	duration := false
	for _, v := range values {
		duration = duration || v.duration
	}

	total := num.Zero
	for _, v := range values {
		n, err := v.n, error(nil)
		if duration && !v.duration {
			if n, err = e.promote(n); err != nil {
				return value{}, err
			}
		}
		if total, err = total.Add(n); err != nil {
			return value{}, err
		}
	}
	return value{n: total, duration: duration}, nil
}

func (e *Expression) evalBinary(b *timeparse.Binary) (value, error) {
	left, err := e.eval(b.Left)
	if err != nil {
		return value{}, err
	}
	right, err := e.eval(b.Right)
	if err != nil {
		return value{}, err
	}

	switch b.Op {
	case '+':
		return e.add(left, right)
	case '-':
		right.n = right.n.Neg()
		return e.add(left, right)
	}

	var out num.Num
	if b.Op == '*' {
		out, err = left.n.Mul(right.n)
	} else {
		out, err = left.n.Quo(right.n)
	}
	return value{n: out, duration: left.duration || right.duration}, err
}
