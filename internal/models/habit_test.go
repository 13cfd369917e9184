package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFrequencyValid(t *testing.T) {
	for _, f := range []Frequency{FrequencyDaily, FrequencyAlternate, FrequencyWeekly, FrequencyCustom} {
		if !f.Valid() {
			t.Errorf("%q should be valid", f)
		}
	}
	for _, f := range []Frequency{"", "DAILY", "monthly"} {
		if f.Valid() {
			t.Errorf("%q should be invalid", f)
		}
	}
}

func TestHasCustomSchedule(t *testing.T) {
	tests := []struct {
		payload string
		want    bool
	}{
		{"", false},
		{"null", false},
		{"{}", false},
		{`{"days":["mon"]}`, true},
		{`[1,3,5]`, true},
	}
	for _, tt := range tests {
		h := Habit{CustomSchedule: json.RawMessage(tt.payload)}
		if got := h.HasCustomSchedule(); got != tt.want {
			t.Errorf("HasCustomSchedule(%q) = %v, want %v", tt.payload, got, tt.want)
		}
	}
}

func TestHabitPatchApply(t *testing.T) {
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	h := Habit{
		ID:        "h1",
		Name:      "Read",
		Category:  "learning",
		Frequency: FrequencyDaily,
		IsActive:  true,
		CreatedAt: created,
		UpdatedAt: created,
	}

	name := "Read fiction"
	freq := FrequencyWeekly
	inactive := false
	got := HabitPatch{Name: &name, Frequency: &freq, IsActive: &inactive}.Apply(h, now)

	if got.Name != name || got.Frequency != freq || got.IsActive {
		t.Errorf("patch not applied: %+v", got)
	}
	if got.Category != "learning" {
		t.Error("untouched fields must survive")
	}
	if got.ID != "h1" || !got.CreatedAt.Equal(created) {
		t.Error("id and creation time are immutable")
	}
	if !got.UpdatedAt.Equal(now) {
		t.Errorf("expected UpdatedAt bump to %v, got %v", now, got.UpdatedAt)
	}

	// An empty patch still bumps UpdatedAt but changes nothing else.
	unchanged := HabitPatch{}.Apply(h, now)
	if unchanged.Name != h.Name || unchanged.Frequency != h.Frequency {
		t.Errorf("empty patch changed fields: %+v", unchanged)
	}
}
