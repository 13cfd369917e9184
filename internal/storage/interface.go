package storage

import (
	"errors"

	"github.com/stridehq/stride/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateCompletion is returned when a completion already exists
	// for the same habit and date. Streak math assumes at most one
	// completion per (habit, date) pair, so stores must never silently
	// accept a second one.
	ErrDuplicateCompletion = errors.New("completion already recorded for this date")
)

// Provider is the persistence collaborator. Implementations guarantee the
// completion uniqueness invariant before the streak engine is invoked and
// persist whatever streak state it returns. The engine itself never touches
// a Provider; composition happens in the tracker.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits(includeInactive bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error // soft delete: clears IsActive
	RestoreHabit(id string) error

	// Completions
	AddCompletion(models.Completion) error
	GetCompletion(habitID, date string) (models.Completion, error)
	GetCompletions(habitID, startDate, endDate string) ([]models.Completion, error)
	GetCompletionsForDate(date string) ([]models.Completion, error)
	GetAllCompletions() ([]models.Completion, error)
	RemoveCompletion(habitID, date string) error

	// Streaks
	GetStreak(habitID string) (models.Streak, error)
	SaveStreak(models.Streak) error

	// Notifications
	AddNotification(models.Notification) error
	GetNotifications(limit int) ([]models.Notification, error)
	MarkNotificationRead(id string) error

	// Utils
	GetConfigPath() string
}
