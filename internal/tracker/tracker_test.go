package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/stridehq/stride/internal/models"
	"github.com/stridehq/stride/internal/storage"
	"github.com/stridehq/stride/internal/validation"
)

func newTracker(t *testing.T) *Tracker {
	t.Helper()
	return New(storage.NewMemoryStore())
}

func mustCreate(t *testing.T, tr *Tracker, name string, f models.Frequency, createdAt string) models.Habit {
	t.Helper()
	created, err := time.Parse("2006-01-02", createdAt)
	if err != nil {
		t.Fatal(err)
	}
	h, err := tr.CreateHabit(models.Habit{Name: name, Frequency: f, CreatedAt: created})
	if err != nil {
		t.Fatalf("CreateHabit(%s): %v", name, err)
	}
	return h
}

func mustMark(t *testing.T, tr *Tracker, habitID, date string) {
	t.Helper()
	if _, err := tr.AddCompletion(habitID, date, ""); err != nil {
		t.Fatalf("AddCompletion(%s, %s): %v", habitID, date, err)
	}
}

func TestCreateHabit(t *testing.T) {
	tr := newTracker(t)
	h := mustCreate(t, tr, "Morning run", models.FrequencyDaily, "2024-03-01")

	if h.ID == "" {
		t.Error("expected a generated id")
	}
	if !h.IsActive {
		t.Error("new habits are active")
	}

	// Streak state exists from the start.
	st, err := tr.GetStreak(h.ID)
	if err != nil {
		t.Fatalf("GetStreak: %v", err)
	}
	if st.CurrentStreak != 0 || st.LongestStreak != 0 {
		t.Errorf("expected zeroed streak, got %+v", st)
	}

	_, err = tr.CreateHabit(models.Habit{Name: "", Frequency: models.FrequencyDaily})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Errorf("expected validation error for empty name, got %v", err)
	}
}

func TestUpdateHabit(t *testing.T) {
	tr := newTracker(t)
	h := mustCreate(t, tr, "Read", models.FrequencyDaily, "2024-03-01")

	name := "Read fiction"
	freq := models.FrequencyAlternate
	updated, err := tr.UpdateHabit(h.ID, models.HabitPatch{Name: &name, Frequency: &freq})
	if err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}
	if updated.Name != name || updated.Frequency != freq {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.ID != h.ID || !updated.CreatedAt.Equal(h.CreatedAt) {
		t.Error("id and creation time are immutable")
	}

	empty := ""
	if _, err := tr.UpdateHabit(h.ID, models.HabitPatch{Name: &empty}); err == nil {
		t.Error("expected validation error for empty name patch")
	}
	if _, err := tr.UpdateHabit("ghost", models.HabitPatch{Name: &name}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddCompletionIncrementalPath(t *testing.T) {
	tr := newTracker(t)
	h := mustCreate(t, tr, "Meditate", models.FrequencyDaily, "2024-03-01")

	mustMark(t, tr, h.ID, "2024-03-01")
	mustMark(t, tr, h.ID, "2024-03-02")
	mustMark(t, tr, h.ID, "2024-03-03")

	st, err := tr.GetStreak(h.ID)
	if err != nil {
		t.Fatalf("GetStreak: %v", err)
	}
	if st.CurrentStreak != 3 || st.LongestStreak != 3 || st.LastCompletedDate != "2024-03-03" {
		t.Errorf("expected 3/3 ending 03-03, got %+v", st)
	}
}

func TestAddCompletionDuplicateIsNoOp(t *testing.T) {
	tr := newTracker(t)
	h := mustCreate(t, tr, "Meditate", models.FrequencyDaily, "2024-03-01")

	first, err := tr.AddCompletion(h.ID, "2024-03-01", "")
	if err != nil {
		t.Fatalf("AddCompletion: %v", err)
	}
	again, err := tr.AddCompletion(h.ID, "2024-03-01", "")
	if err != nil {
		t.Fatalf("duplicate mark should not error: %v", err)
	}
	if again.ID != first.ID {
		t.Error("duplicate mark should return the existing completion")
	}

	st, err := tr.GetStreak(h.ID)
	if err != nil {
		t.Fatalf("GetStreak: %v", err)
	}
	if st.CurrentStreak != 1 {
		t.Errorf("duplicate mark must not inflate the streak, got %d", st.CurrentStreak)
	}

	cs, err := tr.Completions(h.ID, "", "")
	if err != nil {
		t.Fatalf("Completions: %v", err)
	}
	if len(cs) != 1 {
		t.Errorf("expected a single stored completion, got %d", len(cs))
	}
}

func TestAddCompletionBackfillRecomputes(t *testing.T) {
	tr := newTracker(t)
	h := mustCreate(t, tr, "Meditate", models.FrequencyDaily, "2024-03-01")

	mustMark(t, tr, h.ID, "2024-03-01")
	mustMark(t, tr, h.ID, "2024-03-03")

	st, err := tr.GetStreak(h.ID)
	if err != nil {
		t.Fatalf("GetStreak: %v", err)
	}
	if st.CurrentStreak != 1 {
		t.Fatalf("gap should have reset the streak, got %d", st.CurrentStreak)
	}

	// Backfilling the missing day stitches the run back together.
	mustMark(t, tr, h.ID, "2024-03-02")
	st, err = tr.GetStreak(h.ID)
	if err != nil {
		t.Fatalf("GetStreak: %v", err)
	}
	if st.CurrentStreak != 3 || st.LongestStreak != 3 {
		t.Errorf("expected 3/3 after backfill, got %+v", st)
	}
	if st.LastCompletedDate != "2024-03-03" {
		t.Errorf("backfill must not move the last completed date back, got %s", st.LastCompletedDate)
	}
}

func TestRemoveCompletionRecomputes(t *testing.T) {
	tr := newTracker(t)
	h := mustCreate(t, tr, "Meditate", models.FrequencyDaily, "2024-03-01")

	mustMark(t, tr, h.ID, "2024-03-01")
	mustMark(t, tr, h.ID, "2024-03-02")
	mustMark(t, tr, h.ID, "2024-03-03")

	if err := tr.RemoveCompletion(h.ID, "2024-03-02"); err != nil {
		t.Fatalf("RemoveCompletion: %v", err)
	}

	st, err := tr.GetStreak(h.ID)
	if err != nil {
		t.Fatalf("GetStreak: %v", err)
	}
	if st.CurrentStreak != 1 || st.LongestStreak != 1 {
		t.Errorf("expected 1/1 after removal, got %+v", st)
	}

	if err := tr.RemoveCompletion(h.ID, "2024-03-02"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("removing a missing completion should be ErrNotFound, got %v", err)
	}
}

func TestAddCompletionValidation(t *testing.T) {
	tr := newTracker(t)
	h := mustCreate(t, tr, "Meditate", models.FrequencyDaily, "2024-03-01")

	_, err := tr.AddCompletion(h.ID, "03/01/2024", "")
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Errorf("expected validation error for malformed date, got %v", err)
	}

	if _, err := tr.AddCompletion("ghost", "2024-03-01", ""); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown habit, got %v", err)
	}
}

func TestCelebrationNotification(t *testing.T) {
	tr := newTracker(t)
	h := mustCreate(t, tr, "Meditate", models.FrequencyDaily, "2024-03-01")

	// A 7-day personal-best run queues exactly one celebration.
	for i := 1; i <= 7; i++ {
		mustMark(t, tr, h.ID, time.Date(2024, 3, i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"))
	}

	ns, err := tr.Notifications(10)
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	if len(ns) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(ns))
	}
	if ns[0].Type != models.NotificationCelebration || ns[0].HabitID != h.ID {
		t.Errorf("unexpected notification: %+v", ns[0])
	}

	if err := tr.MarkNotificationRead(ns[0].ID); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}
	ns, err = tr.Notifications(10)
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	if !ns[0].IsRead {
		t.Error("notification should be marked read")
	}
}

func TestSoftDeleteHidesFromStats(t *testing.T) {
	tr := newTracker(t)
	h := mustCreate(t, tr, "Meditate", models.FrequencyDaily, "2024-03-01")
	mustMark(t, tr, h.ID, "2024-03-01")

	if err := tr.DeleteHabit(h.ID); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}

	withStats, err := tr.HabitsWithStats(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("HabitsWithStats: %v", err)
	}
	if len(withStats) != 0 {
		t.Errorf("deleted habit should not appear, got %d entries", len(withStats))
	}

	// History and streak survive the delete and come back on restore.
	if err := tr.RestoreHabit(h.ID); err != nil {
		t.Fatalf("RestoreHabit: %v", err)
	}
	withStats, err = tr.HabitsWithStats(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("HabitsWithStats: %v", err)
	}
	if len(withStats) != 1 {
		t.Fatalf("restored habit should reappear, got %d entries", len(withStats))
	}
	if withStats[0].Streak.CurrentStreak != 1 || !withStats[0].CompletedToday {
		t.Errorf("restored habit lost its history: %+v", withStats[0])
	}
}

func TestHabitsWithStats(t *testing.T) {
	tr := newTracker(t)
	today := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	daily := mustCreate(t, tr, "Run", models.FrequencyDaily, "2024-03-01")
	alt := mustCreate(t, tr, "Swim", models.FrequencyAlternate, "2024-03-01")
	mustMark(t, tr, daily.ID, "2024-03-02")

	got, err := tr.HabitsWithStats(today)
	if err != nil {
		t.Fatalf("HabitsWithStats: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}

	byID := map[string]models.HabitWithStats{}
	for _, hw := range got {
		byID[hw.ID] = hw
	}
	if !byID[daily.ID].CompletedToday || !byID[daily.ID].ScheduledToday {
		t.Errorf("daily habit should be scheduled and completed: %+v", byID[daily.ID])
	}
	// Alternate habit created 03-01 is off on 03-02.
	if byID[alt.ID].ScheduledToday || byID[alt.ID].CompletedToday {
		t.Errorf("alternate habit should be off today: %+v", byID[alt.ID])
	}
}

func TestDailyStats(t *testing.T) {
	tr := newTracker(t)
	h := mustCreate(t, tr, "Run", models.FrequencyDaily, "2024-03-01")
	mustMark(t, tr, h.ID, "2024-03-01")

	got, err := tr.DailyStats("2024-03-01", "2024-03-02")
	if err != nil {
		t.Fatalf("DailyStats: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].CompletedHabits != 1 || got[0].CompletionRate != 100 {
		t.Errorf("03-01: %+v", got[0])
	}
	if got[1].CompletedHabits != 0 {
		t.Errorf("03-02: %+v", got[1])
	}

	if _, err := tr.DailyStats("2024-03-05", "2024-03-01"); err == nil {
		t.Error("inverted range should fail")
	}
	if _, err := tr.DailyStats("bad", "2024-03-01"); err == nil {
		t.Error("malformed start date should fail")
	}
}

func TestCompletionRate(t *testing.T) {
	tr := newTracker(t)
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	h := mustCreate(t, tr, "Run", models.FrequencyDaily, "2024-01-01")

	for i := 0; i < 15; i++ {
		mustMark(t, tr, h.ID, today.AddDate(0, 0, -i).Format("2006-01-02"))
	}

	rate, err := tr.CompletionRate(h.ID, today)
	if err != nil {
		t.Fatalf("CompletionRate: %v", err)
	}
	if rate != 50 {
		t.Errorf("15 of the trailing 30 days completed, expected 50, got %v", rate)
	}

	if _, err := tr.CompletionRate("ghost", today); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
