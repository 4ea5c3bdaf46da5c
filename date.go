package mdblog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// ErrInvalidDate is wrapped by ParseDate for input matching neither accepted
// shape.
var ErrInvalidDate = errors.New("invalid post date")

// fallbackDate is the sort key of posts whose date cannot be parsed.
var fallbackDate = time.Unix(0, 0)

// ParseDate accepts "2006-01-02 15:04" and "2006-01-02" in the local time zone.
// A date without time of day is placed at noon so that rendering only the date
// never shifts it across a day boundary.
func ParseDate(s string) (time.Time, error) {
	cleaned := strings.TrimSpace(s)

	if strings.Contains(cleaned, " ") {
		t, err := time.ParseInLocation(dateTimeLayout, cleaned, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
		}
		return t, nil
	}

	t, err := time.ParseInLocation(dateLayout, cleaned, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local), nil
}

// FormatDate renders a stored date with the precision it was written in: a
// value with a time of day keeps hours and minutes. Dates that cannot be parsed
// are returned trimmed but otherwise untouched.
func FormatDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	if strings.Contains(strings.TrimSpace(s), " ") {
		return t.Format(dateTimeLayout)
	}
	return t.Format(dateLayout)
}
