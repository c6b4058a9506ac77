// Package dates generates the inclusive day sequences a reconciliation run
// walks over. Dates are handled as YYYY-MM-DD strings throughout the system;
// their lexicographic order matches chronological order.
package dates

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the canonical calendar-day format used across the system.
const Layout = "2006-01-02"

// ErrInvalidFormat reports an input that does not parse as YYYY-MM-DD.
var ErrInvalidFormat = errors.New("invalid date format, expected YYYY-MM-DD")

// Range returns every calendar day from from to to, inclusive, in order.
// A from later than to yields an empty sequence, not an error. Both bounds
// are validated before anything else in a run touches the network, so a
// malformed date fails with no side effects.
func Range(from, to string) ([]string, error) {
	start, err := time.Parse(Layout, from)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, from)
	}

	end, err := time.Parse(Layout, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, to)
	}

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(Layout))
	}
	return days, nil
}

// Valid reports whether s is a well-formed YYYY-MM-DD calendar date.
func Valid(s string) bool {
	_, err := time.Parse(Layout, s)
	return err == nil
}

// Today returns the current calendar day, formatted.
func Today() string {
	return time.Now().Format(Layout)
}
