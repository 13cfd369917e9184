// Package dateutil holds the calendar arithmetic the scheduling and streak
// engines are built on. Everything here operates on date-only values: times
// of day are stripped before any subtraction so daylight-saving shifts and
// partial days can never produce off-by-one results.
package dateutil

import (
	"time"

	"github.com/stridehq/stride/internal/constants"
	"github.com/stridehq/stride/internal/validation"
)

// Truncate strips the time-of-day and location from t, leaving midnight UTC
// on the same calendar date.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayDifference returns the number of whole calendar days between a and b,
// positive when b is after a. Both values are date-normalized first, so the
// division is exact.
func DayDifference(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)) / (24 * time.Hour))
}

// ISODate formats t as YYYY-MM-DD using its calendar fields. This is the
// canonical key for completion lookups.
func ISODate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DayOfWeek returns the weekday of t as 0=Sunday through 6=Saturday.
func DayOfWeek(t time.Time) int {
	return int(t.Weekday())
}

// ParseDate parses a strict YYYY-MM-DD string into a date-only value.
// Malformed input fails with a validation error naming the field; it is
// never coerced to the current date.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, validation.NewError(field, "%q is not a valid %s date", s, constants.DateFormat)
	}
	return Truncate(t), nil
}

// Days returns every calendar date from start through end inclusive. An end
// before start yields an empty slice.
func Days(start, end time.Time) []time.Time {
	start, end = Truncate(start), Truncate(end)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
