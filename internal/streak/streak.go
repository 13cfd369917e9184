// Package streak derives streak state from a habit's completion history.
//
// Two entry points exist: OnCompletionAdded is the cheap incremental path
// for completions applied in non-decreasing date order, and Recompute
// rebuilds the state from the full history. After a removal or any
// out-of-order insertion (e.g. a backfilled date) the incremental path is
// not well-defined — callers must use Recompute.
package streak

import (
	"sort"
	"time"

	"github.com/stridehq/stride/internal/dateutil"
	"github.com/stridehq/stride/internal/models"
	"github.com/stridehq/stride/internal/validation"
)

// expectedGap is the day distance between consecutive scheduled occurrences:
// 2 for alternate habits, 1 for everything else.
func expectedGap(f models.Frequency) int {
	if f == models.FrequencyAlternate {
		return 2
	}
	return 1
}

// OnCompletionAdded applies a newly recorded completion to the streak state
// and returns the updated state.
//
// For alternate habits a gap of 2 days extends the streak and a gap of 1 is
// treated as the same logical cycle (no change). For all other frequencies a
// gap of 1 extends and a gap of 0 is a tolerated duplicate day. Any other
// gap resets the streak to 1.
//
// Precondition: completions are applied in non-decreasing date order. The
// function cannot detect violations; callers performing backfills must use
// Recompute instead.
func OnCompletionAdded(h models.Habit, s models.Streak, date string) (models.Streak, error) {
	if err := validation.CheckFrequency("frequency", h.Frequency); err != nil {
		return s, err
	}
	newDate, err := dateutil.ParseDate("date", date)
	if err != nil {
		return s, err
	}

	streak := 1
	if s.LastCompletedDate != "" {
		last, err := dateutil.ParseDate("lastCompletedDate", s.LastCompletedDate)
		if err != nil {
			return s, err
		}
		gap := dateutil.DayDifference(last, newDate)

		if h.Frequency == models.FrequencyAlternate {
			switch gap {
			case 2:
				streak = s.CurrentStreak + 1
			case 1:
				streak = s.CurrentStreak
			}
		} else {
			switch gap {
			case 1:
				streak = s.CurrentStreak + 1
			case 0:
				streak = s.CurrentStreak
			}
		}
	}

	s.CurrentStreak = streak
	if streak > s.LongestStreak {
		s.LongestStreak = streak
	}
	s.LastCompletedDate = date
	s.UpdatedAt = time.Now()
	return s, nil
}

// Recompute rebuilds the streak state from the complete completion list.
// It is order-insensitive and idempotent, and is the required path after a
// completion removal or backfill.
//
// The current streak is the run of correctly spaced completions starting at
// the most recent one; the longest streak is the longest such run anywhere
// in the history. A history where every gap mismatches yields 1/1: each
// completion is an isolated run.
func Recompute(h models.Habit, completions []models.Completion) (models.Streak, error) {
	if err := validation.CheckFrequency("frequency", h.Frequency); err != nil {
		return models.Streak{}, err
	}

	s := models.Streak{HabitID: h.ID, UpdatedAt: time.Now()}
	if len(completions) == 0 {
		return s, nil
	}

	dates := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		d, err := dateutil.ParseDate("date", c.Date)
		if err != nil {
			return models.Streak{}, err
		}
		dates = append(dates, d)
	}
	// Most recent first.
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	want := expectedGap(h.Frequency)
	current := 0
	longest := 0
	run := 1
	headRun := true

	for i := 1; i < len(dates); i++ {
		gap := dateutil.DayDifference(dates[i], dates[i-1])
		if gap == want {
			run++
			continue
		}
		if headRun {
			current = run
			headRun = false
		}
		if run > longest {
			longest = run
		}
		run = 1
	}
	if headRun {
		current = run
	}
	if run > longest {
		longest = run
	}

	s.CurrentStreak = current
	s.LongestStreak = longest
	s.LastCompletedDate = dateutil.ISODate(dates[0])
	return s, nil
}
