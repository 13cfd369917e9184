// Package stats is the aggregation engine: per-day scheduled/completed
// counts over a date range and per-habit rolling completion rates. It reads
// due-date verdicts from the schedule evaluator and merges them with stored
// completions; it owns no state of its own.
package stats

import (
	"time"

	"github.com/stridehq/stride/internal/constants"
	"github.com/stridehq/stride/internal/dateutil"
	"github.com/stridehq/stride/internal/logger"
	"github.com/stridehq/stride/internal/models"
	"github.com/stridehq/stride/internal/schedule"
	"github.com/stridehq/stride/internal/streak"
	"github.com/stridehq/stride/internal/validation"
)

// DailyStats computes one DailyStat per calendar date in the inclusive
// [start, end] range. completionsByDate is keyed by YYYY-MM-DD.
//
// TotalHabits counts habits due that date. CompletedHabits counts every
// completion recorded that date, including ones for habits that were not
// due — a long-standing quirk of the stats endpoint that downstream
// consumers depend on, kept until product says otherwise.
//
// A habit with a missing frequency cannot be evaluated; it is skipped and
// logged rather than aborting the whole range.
func DailyStats(habits []models.Habit, completionsByDate map[string][]models.Completion, start, end time.Time) []models.DailyStat {
	days := dateutil.Days(start, end)
	out := make([]models.DailyStat, 0, len(days))

	usable := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if err := validation.CheckFrequency("frequency", h.Frequency); err != nil {
			logger.Warn("Skipping habit with unusable frequency", "habit", h.ID, "error", err)
			continue
		}
		usable = append(usable, h)
	}

	for _, day := range days {
		total := 0
		for _, h := range usable {
			if schedule.IsDue(h, day) {
				total++
			}
		}
		key := dateutil.ISODate(day)
		completed := len(completionsByDate[key])

		rate := 0.0
		if total > 0 {
			rate = float64(completed) / float64(total) * 100
		}
		out = append(out, models.DailyStat{
			Date:            key,
			TotalHabits:     total,
			CompletedHabits: completed,
			CompletionRate:  rate,
		})
	}
	return out
}

// CompletionRate returns the habit's completion percentage over the
// trailing windowDays ending at (and including) today: the fraction of
// due-dates in the window that have a matching completion. A window with no
// due-dates yields exactly 0.
func CompletionRate(h models.Habit, completions []models.Completion, today time.Time, windowDays int) (float64, error) {
	if err := validation.CheckFrequency("frequency", h.Frequency); err != nil {
		return 0, err
	}

	done := make(map[string]bool, len(completions))
	for _, c := range completions {
		done[c.Date] = true
	}

	due := 0
	hit := 0
	for i := 0; i < windowDays; i++ {
		day := dateutil.Truncate(today).AddDate(0, 0, -i)
		if !schedule.IsDue(h, day) {
			continue
		}
		due++
		if done[dateutil.ISODate(day)] {
			hit++
		}
	}
	if due == 0 {
		return 0, nil
	}
	return float64(hit) / float64(due) * 100, nil
}

// WithStats joins each habit with its streak state, completion list, and
// today-derived fields. A missing streak record means "all zeros", not an
// error. Habits that cannot be evaluated are skipped and logged so one bad
// record never empties the whole listing.
func WithStats(habits []models.Habit, completionsByHabit map[string][]models.Completion, streaksByHabit map[string]models.Streak, today time.Time) []models.HabitWithStats {
	todayKey := dateutil.ISODate(today)
	out := make([]models.HabitWithStats, 0, len(habits))

	for _, h := range habits {
		completions := completionsByHabit[h.ID]

		rate, err := CompletionRate(h, completions, today, constants.RateWindowDays)
		if err != nil {
			logger.Warn("Skipping habit with unusable frequency", "habit", h.ID, "error", err)
			continue
		}

		st, ok := streaksByHabit[h.ID]
		if !ok {
			st = models.Streak{HabitID: h.ID}
		}

		completedToday := false
		for _, c := range completions {
			if c.Date == todayKey {
				completedToday = true
				break
			}
		}

		out = append(out, models.HabitWithStats{
			Habit:          h,
			Streak:         st,
			Completions:    completions,
			CompletedToday: completedToday,
			ScheduledToday: schedule.IsDue(h, today),
			CompletionRate: rate,
		})
	}
	return out
}

// RecomputeAll rebuilds streak state for every habit from its completion
// history. Used by consistency checks and bulk imports; failures are
// reported per habit rather than aborting the batch.
func RecomputeAll(habits []models.Habit, completionsByHabit map[string][]models.Completion) (map[string]models.Streak, map[string]error) {
	streaks := make(map[string]models.Streak, len(habits))
	errs := make(map[string]error)
	for _, h := range habits {
		s, err := streak.Recompute(h, completionsByHabit[h.ID])
		if err != nil {
			errs[h.ID] = err
			continue
		}
		streaks[h.ID] = s
	}
	return streaks, errs
}
