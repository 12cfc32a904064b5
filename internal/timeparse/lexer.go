// Package timeparse parses time expressions such as "1h 30m + 2 days" and
// timestamps.
package timeparse

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ParseError reports malformed expression text. Pos is the byte offset of
// Token in the input.
type ParseError struct {
	Input string
	Pos   int
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid expression %q at position %d: %s", e.Input, e.Pos, e.Msg)
	}
	return fmt.Sprintf("invalid expression %q at position %d (%q): %s", e.Input, e.Pos, e.Token, e.Msg)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokWord
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// tokenize splits s into numbers, words, operators and parentheses. A unit
// may be glued to its number ("1h30m") or separated by spaces.
func tokenize(s string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case isDigit(s[i]) || (s[i] == '.' && i+1 < len(s) && isDigit(s[i+1])):
			start := i
			seenDot := false
			for i < len(s) {
				if s[i] == '.' && !seenDot && i+1 < len(s) && isDigit(s[i+1]) {
					seenDot = true
				} else if !isDigit(s[i]) {
					break
				}
				i++
			}
			tokens = append(tokens, token{kind: tokNumber, text: s[start:i], pos: start})
		case unicode.IsLetter(r):
			start := i
			for i < len(s) {
				r, size := utf8.DecodeRuneInString(s[i:])
				if !unicode.IsLetter(r) {
					break
				}
				i += size
			}
			tokens = append(tokens, token{kind: tokWord, text: s[start:i], pos: start})
		case r == '+' || r == '-' || r == '*' || r == '/':
			tokens = append(tokens, token{kind: tokOp, text: string(r), pos: i})
			i += size
		case r == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: i})
			i += size
		case r == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: i})
			i += size
		default:
			return nil, &ParseError{Input: s, Pos: i, Token: string(r), Msg: "unexpected character"}
		}
	}
	tokens = append(tokens, token{kind: tokEOF, pos: len(s)})
	return tokens, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
