package models

import "time"

type NotificationType string

const (
	NotificationReminder    NotificationType = "reminder"
	NotificationCelebration NotificationType = "celebration"
	NotificationMotivation  NotificationType = "motivation"
)

// Notification is an in-app notification record. Delivery (push, OS
// notifications) is handled outside this application; we only store and
// serve the records.
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"isRead"`
	HabitID   string           `json:"habitId,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
