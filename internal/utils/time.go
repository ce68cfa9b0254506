package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/mozd/internal/constants"
)

// Now returns the current time. Tests replace it to pin "today".
var Now = time.Now

// Today returns today's date string (YYYY-MM-DD) in local time.
func Today() string {
	return Now().Format(constants.DateFormat)
}

// ParseDate parses a persisted date string (YYYY-MM-DD) at midnight local time.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, dateStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return t, nil
}

// GregorianMonthKey returns the YYYY-MM key of a persisted date.
func GregorianMonthKey(dateStr string) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return t.Format(constants.MonthFormat), nil
}
