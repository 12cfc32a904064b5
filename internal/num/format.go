package num

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Format renders n with the digit grouping and decimal separator of tag,
// e.g. "1,234,567.5" for English or "1.234.567,5" for German. The fraction is
// copied digit for digit so no precision is lost.
func (n Num) Format(tag language.Tag) string {
	p := message.NewPrinter(tag)

	abs := n.d.Abs().Trim(0)

	var b strings.Builder
	if n.IsNeg() {
		b.WriteByte('-')
	}
	if whole, _, ok := abs.Trunc(0).Int64(0); ok {
		b.WriteString(p.Sprint(number.Decimal(whole)))
	} else {
		// The printer only groups int64 values; group the digits by hand.
		b.WriteString(groupDigits(abs.Trunc(0).String(), groupSeparator(p)))
	}

	s := abs.String()
	if i := strings.IndexByte(s, '.'); i >= 0 {
		b.WriteString(decimalSeparator(p))
		b.WriteString(s[i+1:])
	}
	return b.String()
}

// decimalSeparator asks the printer how it renders 1.5 and keeps what sits
// between the digits.
func decimalSeparator(p *message.Printer) string {
	s := p.Sprint(number.Decimal(1.5, number.Scale(1)))
	s = strings.TrimPrefix(s, "1")
	s = strings.TrimSuffix(s, "5")
	if s == "" {
		return "."
	}
	return s
}

// groupSeparator asks the printer how it renders one million and keeps what
// sits between the first two groups.
func groupSeparator(p *message.Printer) string {
	s := strings.TrimPrefix(p.Sprint(number.Decimal(1_000_000)), "1")
	if i := strings.IndexByte(s, '0'); i > 0 {
		return s[:i]
	}
	return ""
}

// groupDigits inserts sep between every three digits of an unsigned integer
// string, counting from the right.
func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseLocale returns the language tag for a BCP-47 string, defaulting to
// English for an empty string.
func ParseLocale(s string) (language.Tag, error) {
	if s == "" {
		return language.English, nil
	}
	return language.Parse(s)
}
