package models

import (
	"encoding/json"
	"time"
)

// Frequency is the recurrence rule type governing which calendar dates a
// habit is due.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyAlternate Frequency = "alternate"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyCustom    Frequency = "custom"
)

// Valid reports whether f is one of the recognized frequency values.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyAlternate, FrequencyWeekly, FrequencyCustom:
		return true
	}
	return false
}

// Habit represents a recurring activity a user tracks.
//
// CreatedAt is immutable once set; for alternate-frequency habits it anchors
// the every-other-day pattern. IsActive false means soft-deleted: the habit
// and its completion history survive but are excluded from default listings.
type Habit struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Description    string          `json:"description,omitempty"`
	Frequency      Frequency       `json:"frequency"`
	CustomSchedule json.RawMessage `json:"customSchedule,omitempty"`
	ReminderTime   string          `json:"reminderTime,omitempty"` // HH:MM format
	Color          string          `json:"color,omitempty"`
	Icon           string          `json:"icon,omitempty"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// HasCustomSchedule reports whether the habit carries a non-empty custom
// schedule payload. JSON null and the empty object both count as absent.
func (h Habit) HasCustomSchedule() bool {
	s := string(h.CustomSchedule)
	return s != "" && s != "null" && s != "{}"
}

// HabitPatch is a partial update to a habit. Nil fields are left unchanged.
// ID and CreatedAt are not patchable.
type HabitPatch struct {
	Name           *string          `json:"name,omitempty"`
	Category       *string          `json:"category,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Frequency      *Frequency       `json:"frequency,omitempty"`
	CustomSchedule *json.RawMessage `json:"customSchedule,omitempty"`
	ReminderTime   *string          `json:"reminderTime,omitempty"`
	Color          *string          `json:"color,omitempty"`
	Icon           *string          `json:"icon,omitempty"`
	IsActive       *bool            `json:"isActive,omitempty"`
}

// Apply merges the patch onto h and returns the result, bumping UpdatedAt.
func (p HabitPatch) Apply(h Habit, now time.Time) Habit {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Category != nil {
		h.Category = *p.Category
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Frequency != nil {
		h.Frequency = *p.Frequency
	}
	if p.CustomSchedule != nil {
		h.CustomSchedule = *p.CustomSchedule
	}
	if p.ReminderTime != nil {
		h.ReminderTime = *p.ReminderTime
	}
	if p.Color != nil {
		h.Color = *p.Color
	}
	if p.Icon != nil {
		h.Icon = *p.Icon
	}
	if p.IsActive != nil {
		h.IsActive = *p.IsActive
	}
	h.UpdatedAt = now
	return h
}
