package result

import (
	"strings"

	"github.com/jparise/timecalc/internal/num"
	"github.com/jparise/timecalc/internal/timeunit"
)

// Summary is the serializable form of a TimeResult.
type Summary struct {
	Expression string      `json:"expression,omitempty" yaml:"expression,omitempty"`
	Millis     num.Num     `json:"millis" yaml:"millis"`
	Units      []UnitValue `json:"units" yaml:"units"`
	Text       string      `json:"text" yaml:"text"`
}

// UnitValue is one visible component of a result.
type UnitValue struct {
	Unit  string  `json:"unit" yaml:"unit"`
	Value num.Num `json:"value" yaml:"value"`
}

// Summary returns the serializable form of r, labelled with the expression
// that produced it.
func (r TimeResult) Summary(expression string) Summary {
	s, _ := r.summarize(expression, r.VisibleUnits(), func(u timeunit.Unit) (num.Num, error) {
		return r.Get(u), nil
	})
	return s
}

func (r TimeResult) summarize(expression string, units []timeunit.Unit, value func(timeunit.Unit) (num.Num, error)) (Summary, error) {
	s := Summary{Expression: expression, Millis: r.millis}
	parts := make([]string, 0, len(units))
	for _, u := range units {
		v, err := value(u)
		if err != nil {
			return Summary{}, err
		}
		s.Units = append(s.Units, UnitValue{Unit: u.String(), Value: v})
		parts = append(parts, Quantity(v, u, r.cfg.Locale))
	}
	s.Text = strings.Join(parts, ", ")
	return s, nil
}
