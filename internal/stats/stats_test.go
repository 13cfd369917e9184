package stats

import (
	"testing"
	"time"

	"github.com/stridehq/stride/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func habit(id string, f models.Frequency, createdAt string) models.Habit {
	return models.Habit{ID: id, Name: "habit " + id, Frequency: f, CreatedAt: date(createdAt), IsActive: true}
}

func completion(habitID, day string) models.Completion {
	return models.Completion{ID: habitID + "-" + day, HabitID: habitID, Date: day}
}

func TestDailyStatsEmptyHabitSet(t *testing.T) {
	got := DailyStats(nil, nil, date("2024-03-01"), date("2024-03-03"))
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	for _, st := range got {
		if st.TotalHabits != 0 || st.CompletedHabits != 0 || st.CompletionRate != 0 {
			t.Errorf("expected zeroed stat for %s, got %+v", st.Date, st)
		}
	}
	if got[0].Date != "2024-03-01" || got[2].Date != "2024-03-03" {
		t.Errorf("unexpected range: %s .. %s", got[0].Date, got[2].Date)
	}
}

func TestDailyStatsCounts(t *testing.T) {
	habits := []models.Habit{
		habit("h1", models.FrequencyDaily, "2024-01-01"),
		habit("h2", models.FrequencyAlternate, "2024-03-01"), // due 03-01, 03-03
	}
	byDate := map[string][]models.Completion{
		"2024-03-01": {completion("h1", "2024-03-01"), completion("h2", "2024-03-01")},
		"2024-03-02": {completion("h1", "2024-03-02")},
	}

	got := DailyStats(habits, byDate, date("2024-03-01"), date("2024-03-03"))
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}

	if got[0].TotalHabits != 2 || got[0].CompletedHabits != 2 || got[0].CompletionRate != 100 {
		t.Errorf("03-01: got %+v", got[0])
	}
	if got[1].TotalHabits != 1 || got[1].CompletedHabits != 1 {
		t.Errorf("03-02: got %+v", got[1])
	}
	if got[2].TotalHabits != 2 || got[2].CompletedHabits != 0 || got[2].CompletionRate != 0 {
		t.Errorf("03-03: got %+v", got[2])
	}
}

func TestDailyStatsCountsOffScheduleCompletions(t *testing.T) {
	// CompletedHabits counts every completion recorded that date, even for
	// habits not due. The rate can exceed 100 as a result.
	habits := []models.Habit{
		habit("h1", models.FrequencyDaily, "2024-01-01"),
		habit("h2", models.FrequencyAlternate, "2024-03-01"), // not due 03-02
	}
	byDate := map[string][]models.Completion{
		"2024-03-02": {completion("h1", "2024-03-02"), completion("h2", "2024-03-02")},
	}

	got := DailyStats(habits, byDate, date("2024-03-02"), date("2024-03-02"))
	if got[0].TotalHabits != 1 {
		t.Errorf("expected 1 due habit, got %d", got[0].TotalHabits)
	}
	if got[0].CompletedHabits != 2 {
		t.Errorf("off-schedule completion must still count; got %d", got[0].CompletedHabits)
	}
	if got[0].CompletionRate != 200 {
		t.Errorf("expected rate 200, got %v", got[0].CompletionRate)
	}
}

func TestDailyStatsSkipsUnusableHabit(t *testing.T) {
	habits := []models.Habit{
		habit("good", models.FrequencyDaily, "2024-01-01"),
		habit("bad", "", "2024-01-01"),
	}
	got := DailyStats(habits, nil, date("2024-03-01"), date("2024-03-01"))
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].TotalHabits != 1 {
		t.Errorf("broken habit must be skipped, not counted; got %d", got[0].TotalHabits)
	}
}

func TestCompletionRate(t *testing.T) {
	today := date("2024-03-10")

	t.Run("daily full window", func(t *testing.T) {
		h := habit("h1", models.FrequencyDaily, "2024-01-01")
		var cs []models.Completion
		for i := 0; i < 10; i++ {
			cs = append(cs, completion("h1", today.AddDate(0, 0, -i).Format("2006-01-02")))
		}
		rate, err := CompletionRate(h, cs, today, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rate != 100 {
			t.Errorf("expected 100, got %v", rate)
		}
	})

	t.Run("partial", func(t *testing.T) {
		h := habit("h1", models.FrequencyDaily, "2024-01-01")
		cs := []models.Completion{
			completion("h1", "2024-03-10"),
			completion("h1", "2024-03-08"),
			completion("h1", "2024-03-06"),
		}
		rate, err := CompletionRate(h, cs, today, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rate != 30 {
			t.Errorf("expected 30, got %v", rate)
		}
	})

	t.Run("off-schedule completions do not count", func(t *testing.T) {
		// Alternate habit created 03-09: due on even gaps from creation.
		h := habit("h1", models.FrequencyAlternate, "2024-03-09")
		cs := []models.Completion{
			completion("h1", "2024-03-10"), // not a due date
		}
		rate, err := CompletionRate(h, cs, today, 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rate != 0 {
			t.Errorf("expected 0, got %v", rate)
		}
	})

	t.Run("no due dates yields zero not NaN", func(t *testing.T) {
		// Weekly habit, window chosen to contain no Mondays.
		h := habit("h1", models.FrequencyWeekly, "2024-01-01")
		rate, err := CompletionRate(h, nil, date("2024-03-09"), 5) // Tue..Sat
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rate != 0 {
			t.Errorf("expected exactly 0, got %v", rate)
		}
	})

	t.Run("unusable frequency errors", func(t *testing.T) {
		h := habit("h1", "", "2024-01-01")
		if _, err := CompletionRate(h, nil, today, 10); err == nil {
			t.Error("expected error for unset frequency")
		}
	})
}

func TestWithStats(t *testing.T) {
	today := date("2024-03-10")
	h1 := habit("h1", models.FrequencyDaily, "2024-01-01")
	h2 := habit("h2", models.FrequencyAlternate, "2024-03-09") // not due 03-10

	byHabit := map[string][]models.Completion{
		"h1": {completion("h1", "2024-03-10"), completion("h1", "2024-03-09")},
	}
	streaks := map[string]models.Streak{
		"h1": {HabitID: "h1", CurrentStreak: 2, LongestStreak: 5, LastCompletedDate: "2024-03-10"},
	}

	got := WithStats([]models.Habit{h1, h2}, byHabit, streaks, today)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}

	first := got[0]
	if !first.CompletedToday || !first.ScheduledToday {
		t.Errorf("h1 should be scheduled and completed today: %+v", first)
	}
	if first.Streak.CurrentStreak != 2 || first.Streak.LongestStreak != 5 {
		t.Errorf("h1 streak not joined: %+v", first.Streak)
	}
	if len(first.Completions) != 2 {
		t.Errorf("h1 completions not joined: %d", len(first.Completions))
	}

	second := got[1]
	if second.CompletedToday || second.ScheduledToday {
		t.Errorf("h2 should be neither scheduled nor completed today: %+v", second)
	}
	if second.Streak.CurrentStreak != 0 || second.Streak.LongestStreak != 0 || second.Streak.LastCompletedDate != "" {
		t.Errorf("missing streak record must read as zeros: %+v", second.Streak)
	}
	if second.Streak.HabitID != "h2" {
		t.Errorf("zero streak must still carry the habit id, got %q", second.Streak.HabitID)
	}
}

func TestWithStatsSkipsUnusableHabit(t *testing.T) {
	today := date("2024-03-10")
	habits := []models.Habit{
		habit("good", models.FrequencyDaily, "2024-01-01"),
		habit("bad", "monthly", "2024-01-01"),
	}
	got := WithStats(habits, nil, nil, today)
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].ID != "good" {
		t.Errorf("expected the usable habit to survive, got %q", got[0].ID)
	}
}

func TestRecomputeAll(t *testing.T) {
	habits := []models.Habit{
		habit("h1", models.FrequencyDaily, "2024-01-01"),
		habit("bad", "", "2024-01-01"),
	}
	byHabit := map[string][]models.Completion{
		"h1": {completion("h1", "2024-03-01"), completion("h1", "2024-03-02")},
	}

	streaks, errs := RecomputeAll(habits, byHabit)
	if len(errs) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(errs))
	}
	if _, ok := errs["bad"]; !ok {
		t.Error("expected the broken habit to be reported")
	}
	st, ok := streaks["h1"]
	if !ok {
		t.Fatal("expected h1 to be recomputed despite the broken habit")
	}
	if st.CurrentStreak != 2 || st.LongestStreak != 2 {
		t.Errorf("expected 2/2, got %d/%d", st.CurrentStreak, st.LongestStreak)
	}
}
