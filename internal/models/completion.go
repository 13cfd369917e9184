package models

import "time"

// Completion records that a habit was performed on a specific calendar day.
// At most one completion may exist per (HabitID, Date) pair; streak math
// assumes uniqueness. CompletedAt is the recording timestamp and is kept for
// audit only — scheduling and streak logic never read it.
type Completion struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habitId"`
	Date        string    `json:"date"` // YYYY-MM-DD format
	Notes       string    `json:"notes,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
}
