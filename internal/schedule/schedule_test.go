package schedule

import (
	"encoding/json"
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

func habit(f models.Frequency, createdAt string) models.Habit {
	return models.Habit{
		ID:        "h1",
		Name:      "test habit",
		Frequency: f,
		CreatedAt: date(createdAt),
		IsActive:  true,
	}
}

func TestIsDueDaily(t *testing.T) {
	h := habit(models.FrequencyDaily, "2024-01-01")
	for _, d := range []string{"2023-06-15", "2024-01-01", "2024-01-02", "2026-12-31"} {
		if !IsDue(h, date(d)) {
			t.Errorf("daily habit should be due on %s", d)
		}
	}
}

func TestIsDueAlternateParity(t *testing.T) {
	h := habit(models.FrequencyAlternate, "2024-01-01")

	tests := []struct {
		day  string
		want bool
	}{
		{"2024-01-01", true},  // creation day, diff 0
		{"2024-01-02", false}, // diff 1
		{"2024-01-03", true},  // diff 2
		{"2024-01-05", true},
		{"2024-01-31", true},  // diff 30
		{"2023-12-31", false}, // diff -1, pattern holds before creation
		{"2023-12-30", true},  // diff -2
	}
	for _, tt := range tests {
		if got := IsDue(h, date(tt.day)); got != tt.want {
			t.Errorf("alternate IsDue(%s) = %v, want %v", tt.day, got, tt.want)
		}
	}
}

func TestIsDueAlternateAnchorsToCreation(t *testing.T) {
	// Two habits created a day apart are due on opposite days.
	a := habit(models.FrequencyAlternate, "2024-01-01")
	b := habit(models.FrequencyAlternate, "2024-01-02")
	day := date("2024-01-03")
	if !IsDue(a, day) {
		t.Error("habit created 01-01 should be due 01-03")
	}
	if IsDue(b, day) {
		t.Error("habit created 01-02 should not be due 01-03")
	}
}

func TestIsDueWeeklyMondayAnchor(t *testing.T) {
	// The weekly anchor is fixed to Monday and ignores the creation date.
	h := habit(models.FrequencyWeekly, "2024-03-07") // a Thursday

	if !IsDue(h, date("2024-03-04")) {
		t.Error("weekly habit should be due on Monday 2024-03-04")
	}
	if !IsDue(h, date("2024-03-11")) {
		t.Error("weekly habit should be due on Monday 2024-03-11")
	}
	for _, d := range []string{"2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08", "2024-03-09", "2024-03-10"} {
		if IsDue(h, date(d)) {
			t.Errorf("weekly habit should not be due on %s", d)
		}
	}
}

func TestIsDueCustomFallback(t *testing.T) {
	day := date("2024-03-07")

	withPayload := habit(models.FrequencyCustom, "2024-01-01")
	withPayload.CustomSchedule = json.RawMessage(`{"days":["tue","thu"]}`)
	if !IsDue(withPayload, day) {
		t.Error("custom habit with a payload should be due")
	}

	noPayload := habit(models.FrequencyCustom, "2024-01-01")
	if IsDue(noPayload, day) {
		t.Error("custom habit without a payload should not be due")
	}

	nullPayload := habit(models.FrequencyCustom, "2024-01-01")
	nullPayload.CustomSchedule = json.RawMessage(`null`)
	if IsDue(nullPayload, day) {
		t.Error("custom habit with a null payload should not be due")
	}
}

func TestIsDueUnknownFrequencyFailsClosed(t *testing.T) {
	day := date("2024-03-07")
	for _, f := range []models.Frequency{"", "monthly", "biweekly"} {
		h := habit(f, "2024-01-01")
		if IsDue(h, day) {
			t.Errorf("unrecognized frequency %q should never be due", f)
		}
	}
}

func TestIsDueDeterministic(t *testing.T) {
	h := habit(models.FrequencyAlternate, "2024-01-01")
	day := date("2024-02-14")
	first := IsDue(h, day)
	for i := 0; i < 100; i++ {
		if IsDue(h, day) != first {
			t.Fatal("IsDue must be referentially transparent")
		}
	}
}

func TestDueCount(t *testing.T) {
	h := habit(models.FrequencyAlternate, "2024-01-01")
	days := []time.Time{date("2024-01-01"), date("2024-01-02"), date("2024-01-03"), date("2024-01-04")}
	if got := DueCount(h, days); got != 2 {
		t.Errorf("expected 2 due days, got %d", got)
	}
}
