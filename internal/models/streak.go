package models

import "time"

// Streak is the derived streak state for a single habit. One exists per
// habit, created zeroed alongside it, and it lives as long as the habit
// record does (soft-deleting the habit leaves it in place).
//
// Invariant: LongestStreak >= CurrentStreak.
type Streak struct {
	ID                string    `json:"id"`
	HabitID           string    `json:"habitId"`
	CurrentStreak     int       `json:"currentStreak"`
	LongestStreak     int       `json:"longestStreak"`
	LastCompletedDate string    `json:"lastCompletedDate,omitempty"` // YYYY-MM-DD, empty = never completed
	UpdatedAt         time.Time `json:"updatedAt"`
}
