// Package tracker composes the scheduling, streak, and aggregation engines
// with a storage provider. It owns the write-path invariants the engines
// assume: completion uniqueness is checked before streak math runs, and
// completion mutations are serialized so two concurrent marks for the same
// habit cannot race the streak update.
package tracker

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stridehq/stride/internal/constants"
	"github.com/stridehq/stride/internal/dateutil"
	"github.com/stridehq/stride/internal/logger"
	"github.com/stridehq/stride/internal/models"
	"github.com/stridehq/stride/internal/stats"
	"github.com/stridehq/stride/internal/storage"
	"github.com/stridehq/stride/internal/streak"
	"github.com/stridehq/stride/internal/validation"
)

// Tracker is the application service over a storage provider.
type Tracker struct {
	store storage.Provider

	// Serializes completion add/remove with their streak updates.
	mu sync.Mutex
}

func New(store storage.Provider) *Tracker {
	return &Tracker{store: store}
}

// CreateHabit validates and stores a new habit with a zeroed streak record.
func (t *Tracker) CreateHabit(h models.Habit) (models.Habit, error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	now := time.Now()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	h.UpdatedAt = now
	h.IsActive = true

	if err := validation.CheckHabit(h); err != nil {
		return models.Habit{}, err
	}
	if err := t.store.AddHabit(h); err != nil {
		return models.Habit{}, err
	}
	logger.Info("Habit created", "habit", h.ID, "frequency", h.Frequency)
	return h, nil
}

// UpdateHabit applies a partial update. CreatedAt and ID are immutable.
func (t *Tracker) UpdateHabit(id string, patch models.HabitPatch) (models.Habit, error) {
	if err := validation.CheckPatch(patch); err != nil {
		return models.Habit{}, err
	}
	h, err := t.store.GetHabit(id)
	if err != nil {
		return models.Habit{}, err
	}
	h = patch.Apply(h, time.Now())
	if err := t.store.UpdateHabit(h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// DeleteHabit soft-deletes the habit. Its completions and streak record
// stay in place and restore with it.
func (t *Tracker) DeleteHabit(id string) error {
	return t.store.DeleteHabit(id)
}

func (t *Tracker) RestoreHabit(id string) error {
	return t.store.RestoreHabit(id)
}

func (t *Tracker) GetHabit(id string) (models.Habit, error) {
	return t.store.GetHabit(id)
}

func (t *Tracker) ListHabits(includeInactive bool) ([]models.Habit, error) {
	return t.store.GetAllHabits(includeInactive)
}

// AddCompletion records a completion for the habit on the given date and
// updates its streak. Marking a date that is already marked is a no-op.
//
// Appends at or after the last completed date take the incremental streak
// path; anything earlier is a backfill, which the incremental rules cannot
// express, so the streak is fully recomputed instead.
func (t *Tracker) AddCompletion(habitID, date, notes string) (models.Completion, error) {
	if err := validation.CheckDate("date", date); err != nil {
		return models.Completion{}, err
	}
	h, err := t.store.GetHabit(habitID)
	if err != nil {
		return models.Completion{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	c := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     habitID,
		Date:        date,
		Notes:       notes,
		CompletedAt: time.Now(),
	}
	if err := t.store.AddCompletion(c); err != nil {
		if errors.Is(err, storage.ErrDuplicateCompletion) {
			logger.Debug("Completion already recorded", "habit", habitID, "date", date)
			return t.store.GetCompletion(habitID, date)
		}
		return models.Completion{}, err
	}

	st, err := t.store.GetStreak(habitID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.Completion{}, err
	}

	var updated models.Streak
	if st.LastCompletedDate == "" || date >= st.LastCompletedDate {
		updated, err = streak.OnCompletionAdded(h, st, date)
	} else {
		updated, err = t.recomputeLocked(h)
	}
	if err != nil {
		return models.Completion{}, err
	}
	updated.ID = st.ID
	updated.HabitID = habitID
	if err := t.store.SaveStreak(updated); err != nil {
		return models.Completion{}, err
	}

	t.celebrate(h, updated)
	return c, nil
}

// RemoveCompletion deletes a completion and fully recomputes the streak;
// incremental subtraction is not defined for streak state.
func (t *Tracker) RemoveCompletion(habitID, date string) error {
	if err := validation.CheckDate("date", date); err != nil {
		return err
	}
	h, err := t.store.GetHabit(habitID)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.RemoveCompletion(habitID, date); err != nil {
		return err
	}

	st, err := t.store.GetStreak(habitID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	updated, err := t.recomputeLocked(h)
	if err != nil {
		return err
	}
	updated.ID = st.ID
	updated.HabitID = habitID
	return t.store.SaveStreak(updated)
}

func (t *Tracker) recomputeLocked(h models.Habit) (models.Streak, error) {
	completions, err := t.store.GetCompletions(h.ID, "", "")
	if err != nil {
		return models.Streak{}, err
	}
	return streak.Recompute(h, completions)
}

// celebrate queues a notification record when a completion extends the
// longest streak past a week multiple. Delivery is someone else's problem.
func (t *Tracker) celebrate(h models.Habit, st models.Streak) {
	if st.CurrentStreak == 0 || st.CurrentStreak != st.LongestStreak || st.CurrentStreak%7 != 0 {
		return
	}
	n := models.Notification{
		ID:        uuid.New().String(),
		Title:     "Streak milestone",
		Message:   h.Name + " is on a personal-best streak",
		Type:      models.NotificationCelebration,
		HabitID:   h.ID,
		CreatedAt: time.Now(),
	}
	if err := t.store.AddNotification(n); err != nil {
		logger.Warn("Failed to queue notification", "habit", h.ID, "error", err)
	}
}

// GetStreak returns the habit's streak state; absence means all zeros.
func (t *Tracker) GetStreak(habitID string) (models.Streak, error) {
	st, err := t.store.GetStreak(habitID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Streak{HabitID: habitID}, nil
	}
	return st, err
}

// HabitsWithStats returns every active habit joined with its derived stats
// as of today.
func (t *Tracker) HabitsWithStats(today time.Time) ([]models.HabitWithStats, error) {
	habits, err := t.store.GetAllHabits(false)
	if err != nil {
		return nil, err
	}

	completionsByHabit := make(map[string][]models.Completion, len(habits))
	streaksByHabit := make(map[string]models.Streak, len(habits))
	for _, h := range habits {
		completions, err := t.store.GetCompletions(h.ID, "", "")
		if err != nil {
			return nil, err
		}
		completionsByHabit[h.ID] = completions

		st, err := t.store.GetStreak(h.ID)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				return nil, err
			}
			continue
		}
		streaksByHabit[h.ID] = st
	}

	return stats.WithStats(habits, completionsByHabit, streaksByHabit, today), nil
}

// DailyStats computes per-day scheduled/completed counts over the inclusive
// date range.
func (t *Tracker) DailyStats(startDate, endDate string) ([]models.DailyStat, error) {
	if err := validation.CheckDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	start, err := dateutil.ParseDate("startDate", startDate)
	if err != nil {
		return nil, err
	}
	end, err := dateutil.ParseDate("endDate", endDate)
	if err != nil {
		return nil, err
	}

	habits, err := t.store.GetAllHabits(false)
	if err != nil {
		return nil, err
	}

	completionsByDate := make(map[string][]models.Completion)
	for _, day := range dateutil.Days(start, end) {
		key := dateutil.ISODate(day)
		completions, err := t.store.GetCompletionsForDate(key)
		if err != nil {
			return nil, err
		}
		if len(completions) > 0 {
			completionsByDate[key] = completions
		}
	}

	return stats.DailyStats(habits, completionsByDate, start, end), nil
}

// CompletionRate returns the habit's trailing 30-day completion rate.
func (t *Tracker) CompletionRate(habitID string, today time.Time) (float64, error) {
	h, err := t.store.GetHabit(habitID)
	if err != nil {
		return 0, err
	}
	completions, err := t.store.GetCompletions(habitID, "", "")
	if err != nil {
		return 0, err
	}
	return stats.CompletionRate(h, completions, today, constants.RateWindowDays)
}

// Completions returns the habit's completions in the optional date range.
func (t *Tracker) Completions(habitID, startDate, endDate string) ([]models.Completion, error) {
	if _, err := t.store.GetHabit(habitID); err != nil {
		return nil, err
	}
	return t.store.GetCompletions(habitID, startDate, endDate)
}

// Notifications returns the most recent notification records.
func (t *Tracker) Notifications(limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = constants.NotificationLimit
	}
	return t.store.GetNotifications(limit)
}

func (t *Tracker) AddNotification(n models.Notification) (models.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if err := t.store.AddNotification(n); err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

func (t *Tracker) MarkNotificationRead(id string) error {
	return t.store.MarkNotificationRead(id)
}
