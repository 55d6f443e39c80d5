// Package week computes the Monday that starts the upcoming week and formats
// it the way page filenames and templates expect.
package week

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the ISO calendar date format used for week strings.
const Layout = "2006-01-02"

// NextMonday returns the first Monday strictly after ref. When ref is itself
// a Monday the result is the following Monday, never ref.
func NextMonday(ref time.Time) time.Time {
	// Monday=0 ... Sunday=6
	weekday := (int(ref.Weekday()) + 6) % 7
	daysAhead := ((0-weekday)%7 + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	y, m, d := ref.Date()
	return time.Date(y, m, d+daysAhead, 0, 0, 0, 0, ref.Location())
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads a YYYY-MM-DD date in the local time zone.
func Parse(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("week: empty date")
	}
	t, err := time.ParseInLocation(Layout, trimmed, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("week: parse %q: %w", value, err)
	}
	return t, nil
}
