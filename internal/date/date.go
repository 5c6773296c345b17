// Package date provides parsing and formatting for due timestamps.
package date

import (
	"fmt"
	"time"
)

const (
	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02 15:04"
)

// ParseDue parses a due timestamp in "YYYY-MM-DD HH:MM" or "YYYY-MM-DD"
// form. A date without a time of day means end of that day (23:59 local),
// matching how people state deadlines.
func ParseDue(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateTimeFormat, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(dateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due %q: expected YYYY-MM-DD or YYYY-MM-DD HH:MM", s)
	}
	return t.Add(23*time.Hour + 59*time.Minute), nil
}

// FormatDue renders a due timestamp for display. The time of day is dropped
// when it carries no information (exact midnight).
func FormatDue(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 {
		return t.Format(dateFormat)
	}
	return t.Format(dateTimeFormat)
}
