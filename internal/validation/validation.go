package validation

import (
	"fmt"

	"github.com/stridehq/stride/internal/constants"
	"github.com/stridehq/stride/internal/models"
)

// Error is a value-level validation failure naming the offending field.
// The core never retries or recovers; these surface directly to the caller.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewError creates a validation error for the given field.
func NewError(field, format string, args ...interface{}) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// CheckFrequency rejects empty or unrecognized frequency values. The
// schedule evaluator fails closed on bad frequencies, but streak and
// aggregation entry points refuse to process a habit without a usable one.
func CheckFrequency(field string, f models.Frequency) error {
	if f == "" {
		return NewError(field, "frequency is not set")
	}
	if !f.Valid() {
		return NewError(field, "unrecognized frequency %q", f)
	}
	return nil
}

// CheckDate rejects strings that are not strict YYYY-MM-DD dates. Malformed
// dates are never silently coerced.
func CheckDate(field, date string) error {
	if date == "" {
		return NewError(field, "date is required")
	}
	if _, err := parseDate(date); err != nil {
		return NewError(field, "%q is not a valid %s date", date, constants.DateFormat)
	}
	return nil
}

// CheckHabit validates the fields of a habit record before it is stored.
func CheckHabit(h models.Habit) error {
	if h.Name == "" {
		return NewError("name", "name is required")
	}
	if err := CheckFrequency("frequency", h.Frequency); err != nil {
		return err
	}
	if h.ReminderTime != "" {
		if _, err := parseClock(h.ReminderTime); err != nil {
			return NewError("reminderTime", "%q is not a valid %s time", h.ReminderTime, constants.TimeFormat)
		}
	}
	if h.CreatedAt.IsZero() {
		return NewError("createdAt", "creation time is not set")
	}
	return nil
}

// CheckPatch validates the populated fields of a habit patch.
func CheckPatch(p models.HabitPatch) error {
	if p.Name != nil && *p.Name == "" {
		return NewError("name", "name cannot be empty")
	}
	if p.Frequency != nil {
		if err := CheckFrequency("frequency", *p.Frequency); err != nil {
			return err
		}
	}
	if p.ReminderTime != nil && *p.ReminderTime != "" {
		if _, err := parseClock(*p.ReminderTime); err != nil {
			return NewError("reminderTime", "%q is not a valid %s time", *p.ReminderTime, constants.TimeFormat)
		}
	}
	return nil
}

// CheckDateRange validates a start/end pair and their ordering.
func CheckDateRange(start, end string) error {
	if err := CheckDate("startDate", start); err != nil {
		return err
	}
	if err := CheckDate("endDate", end); err != nil {
		return err
	}
	if end < start {
		return NewError("endDate", "end date %s precedes start date %s", end, start)
	}
	return nil
}
