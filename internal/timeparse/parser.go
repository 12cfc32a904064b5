package timeparse

import (
	"fmt"

	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/timeunit"
)

// Parse parses a time expression:
//
//	expr   := term (('+' | '-') term)*
//	term   := sum (('*' | '/') sum)*
//	sum    := factor+
//	factor := NUMBER [UNIT] | '(' expr ')'
//
// Errors are *ParseError for malformed text and *num.OverflowError for
// numbers with more digits than a Num can hold.
func Parse(s string) (Node, error) {
	tokens, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &parser{input: s, tokens: tokens}
	if p.peek().kind == tokEOF {
		return nil, p.errorf(p.peek(), "empty expression")
	}

	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		if t.kind == tokRParen {
			return nil, p.errorf(t, "unbalanced parenthesis")
		}
		return nil, p.errorf(t, "unexpected token")
	}
	return n, nil
}

type parser struct {
	input  string
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) *ParseError {
	return &ParseError{Input: p.input, Pos: t.pos, Token: t.text, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) isOp(ops string) bool {
	t := p.peek()
	if t.kind != tokOp {
		return false
	}
	for i := range len(ops) {
		if t.text[0] == ops[i] {
			return true
		}
	}
	return false
}

func (p *parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+-") {
		op := p.next()
		right, err := p.operand(op, p.term)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.text[0], Left: left, Right: right, Offset: op.pos}
	}
	return left, nil
}

func (p *parser) term() (Node, error) {
	left, err := p.sum()
	if err != nil {
		return nil, err
	}
	for p.isOp("*/") {
		op := p.next()
		right, err := p.operand(op, p.sum)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.text[0], Left: left, Right: right, Offset: op.pos}
	}
	return left, nil
}

// operand parses the right-hand side of op, reporting a dangling operator
// against the operator itself.
func (p *parser) operand(op token, parse func() (Node, error)) (Node, error) {
	switch t := p.peek(); t.kind {
	case tokEOF, tokRParen, tokOp:
		return nil, p.errorf(op, "operator is missing its right operand")
	}
	return parse()
}

func (p *parser) sum() (Node, error) {
	first, err := p.factor()
	if err != nil {
		return nil, err
	}
	terms := []Node{first}
	for {
		t := p.peek()
		if t.kind != tokNumber && t.kind != tokLParen {
			break
		}
		f, err := p.factor()
		if err != nil {
			return nil, err
		}
		terms = append(terms, f)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return &Sum{Terms: terms}, nil
}

func (p *parser) factor() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		text := t.text
		if text[0] == '.' {
			text = "0" + text
		}
		v, err := num.Parse(text)
		if err != nil {
			// The lexer only produces well-formed numbers, so this is range.
			return nil, &num.OverflowError{Op: "parse", Err: err}
		}
		q := &Quantity{Value: v, Offset: t.pos}
		if w := p.peek(); w.kind == tokWord {
			u, ok := timeunit.Parse(w.text)
			if !ok {
				return nil, p.errorf(w, "unknown unit")
			}
			p.next()
			q.Unit, q.HasUnit = u, true
		}
		return q, nil
	case tokLParen:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, p.errorf(t, "unbalanced parenthesis")
		}
		p.next()
		return inner, nil
	case tokWord:
		if _, ok := timeunit.Parse(t.text); ok {
			return nil, p.errorf(t, "unit is missing its number")
		}
		return nil, p.errorf(t, "unknown unit")
	case tokOp:
		return nil, p.errorf(t, "operator is missing its left operand")
	case tokRParen:
		return nil, p.errorf(t, "unbalanced parenthesis")
	default:
		return nil, p.errorf(t, "unexpected end of expression")
	}
}
