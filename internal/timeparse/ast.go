package timeparse

import (
	"strings"

	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/timeunit"
)

// Node is a parsed expression.
type Node interface {
	// Pos is the byte offset where the node starts.
	Pos() int
	String() string
}

// Quantity is a number with an optional unit. A quantity without a unit is
// a bare number; its meaning depends on where it appears.
type Quantity struct {
	Value   num.Num
	Unit    timeunit.Unit
	HasUnit bool
	Offset  int
}

func (q *Quantity) Pos() int { return q.Offset }

func (q *Quantity) String() string {
	if !q.HasUnit {
		return q.Value.String()
	}
	return q.Value.String() + q.Unit.Symbol()
}

// Binary is an arithmetic operation. Op is one of + - * /.
type Binary struct {
	Op     byte
	Left   Node
	Right  Node
	Offset int
}

func (b *Binary) Pos() int { return b.Left.Pos() }

func (b *Binary) String() string {
	return wrap(b.Left, b.Op, false) + " " + string(b.Op) + " " + wrap(b.Right, b.Op, true)
}

// Sum is a run of adjacent quantities with no operator between them, as in
// "1h 30m". Its value is the sum of its terms.
type Sum struct {
	Terms []Node
}

func (s *Sum) Pos() int { return s.Terms[0].Pos() }

func (s *Sum) String() string {
	parts := make([]string, len(s.Terms))
	for i, t := range s.Terms {
		parts[i] = wrap(t, ' ', false)
	}
	return strings.Join(parts, " ")
}

func precedence(op byte) int {
	switch op {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	case ' ':
		return 3
	}
	return 4
}

// wrap parenthesizes child when printing it bare would change its meaning
// inside a parent with operator op.
func wrap(child Node, op byte, right bool) string {
	s := child.String()
	var childOp byte
	switch c := child.(type) {
	case *Binary:
		childOp = c.Op
	case *Sum:
		childOp = ' '
	default:
		return s
	}
	pc, pp := precedence(childOp), precedence(op)
	if pc < pp || (right && pc == pp && op != ' ') {
		return "(" + s + ")"
	}
	return s
}
