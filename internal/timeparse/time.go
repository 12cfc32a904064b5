package timeparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jparise/timecalc/internal/num"
)

// ParseTime parses a point in time. Supported formats:
//   - now (the given reference time)
//   - YYYY-MM-DD (midnight in loc)
//   - YYYY-MM-DD HH:MM:SS (in loc)
//   - RFC3339: 2018-10-27T10:00:00Z (zone taken from the string)
//   - @<unix milliseconds>
//
// A nil loc means UTC.
func ParseTime(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)

	if strings.EqualFold(s, "now") {
		return now, nil
	}

	if ms, ok := strings.CutPrefix(s, "@"); ok {
		n, err := strconv.ParseInt(ms, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid unix milliseconds %q: %w", ms, err)
		}
		return time.UnixMilli(n).In(loc), nil
	}

	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}

	if t, err := time.ParseInLocation(time.DateTime, s, loc); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid time format %q (expected now, @millis, YYYY-MM-DD, YYYY-MM-DD HH:MM:SS, or RFC3339)", s)
}

// Span returns the absolute distance between a and b in milliseconds.
func Span(a, b time.Time) num.Num {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return num.FromInt(d.Milliseconds())
}
