package models

// DailyStat is a computed-on-demand summary of a single calendar day.
//
// CompletedHabits counts every completion recorded that day, whether or not
// the completing habit was actually due — matching the historical behavior
// of the stats endpoint. See stats.DailyStats.
type DailyStat struct {
	Date            string  `json:"date"`
	TotalHabits     int     `json:"totalHabits"`
	CompletedHabits int     `json:"completedHabits"`
	CompletionRate  float64 `json:"completionRate"`
}

// HabitWithStats joins a habit with its derived streak and completion data
// for presentation. Consumers render these fields verbatim and must not
// re-derive streaks or due-dates themselves.
type HabitWithStats struct {
	Habit
	Streak         Streak       `json:"streak"`
	Completions    []Completion `json:"completions"`
	CompletedToday bool         `json:"completedToday"`
	ScheduledToday bool         `json:"scheduledToday"`
	CompletionRate float64      `json:"completionRate"`
}
