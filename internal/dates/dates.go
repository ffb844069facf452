// Package dates parses calendar dates in the single canonical
// YYYY-MM-DD form. Input that a lenient parser would silently fix
// (day overflow, unpadded month or day) is rejected by reformatting
// the parsed date and comparing it byte-for-byte with the original.
package dates

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the only accepted textual date representation.
const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Parse returns the calendar date encoded by value, or ErrInvalidDate.
// The result carries no time component and no timezone beyond UTC.
func Parse(value string) (time.Time, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	// time.Parse accepts unpadded fields for this layout, so a value
	// like 2024-1-2 parses fine but is not canonical.
	if t.Format(Layout) != value {
		return time.Time{}, fmt.Errorf("%w: %q is not in form %s", ErrInvalidDate, value, Layout)
	}
	return t, nil
}

// Format renders t back to the canonical form. Format(Parse(x)) == x
// for every x Parse accepts.
func Format(t time.Time) string {
	return t.Format(Layout)
}
