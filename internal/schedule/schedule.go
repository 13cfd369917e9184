// Package schedule decides, for any habit and calendar date, whether the
// habit is due on that date. Evaluation is pure: no side effects, same
// inputs always produce the same verdict.
package schedule

import (
	"time"

	"github.com/stridehq/stride/internal/dateutil"
	"github.com/stridehq/stride/internal/models"
)

// IsDue reports whether the habit is due on the given date.
//
//   - daily: always due.
//   - alternate: due when the whole-day distance from CreatedAt is even,
//     anchoring the pattern to the creation date. Holds for dates before
//     creation as well.
//   - weekly: due on Mondays, regardless of creation date. The fixed anchor
//     is intentional and differs from alternate's creation-relative one.
//   - custom: no schedule grammar is defined upstream; the documented
//     fallback is "due whenever a non-empty payload is present".
//
// Unrecognized frequencies fail closed (not due) rather than erroring —
// validating the stored value is the caller's job.
func IsDue(h models.Habit, date time.Time) bool {
	switch h.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyAlternate:
		diff := dateutil.DayDifference(h.CreatedAt, date)
		return diff%2 == 0
	case models.FrequencyWeekly:
		return date.Weekday() == time.Monday
	case models.FrequencyCustom:
		return h.HasCustomSchedule()
	default:
		return false
	}
}

// DueCount returns how many of the given dates the habit is due on.
func DueCount(h models.Habit, dates []time.Time) int {
	n := 0
	for _, d := range dates {
		if IsDue(h, d) {
			n++
		}
	}
	return n
}
