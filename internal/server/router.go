package server

import (
	"net/http"

	"github.com/stridehq/stride/internal/tracker"
)

// NewRouter wires the REST API onto a ServeMux.
func NewRouter(t *tracker.Tracker) *http.ServeMux {
	mux := http.NewServeMux()
	h := NewHandler(t)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Habits
	mux.HandleFunc("GET /api/habits", WithLogging(h.ListHabits))
	mux.HandleFunc("POST /api/habits", WithLogging(h.CreateHabit))
	mux.HandleFunc("GET /api/habits/{id}", WithLogging(h.GetHabit))
	mux.HandleFunc("PATCH /api/habits/{id}", WithLogging(h.PatchHabit))
	mux.HandleFunc("DELETE /api/habits/{id}", WithLogging(h.DeleteHabit))

	// Completions
	mux.HandleFunc("GET /api/habits/{id}/completions", WithLogging(h.ListCompletions))
	mux.HandleFunc("POST /api/habits/{id}/completions", WithLogging(h.AddCompletion))
	mux.HandleFunc("DELETE /api/habits/{id}/completions/{date}", WithLogging(h.RemoveCompletion))

	// Analytics
	mux.HandleFunc("GET /api/analytics/daily-stats", WithLogging(h.DailyStats))

	// Notifications
	mux.HandleFunc("GET /api/notifications", WithLogging(h.ListNotifications))
	mux.HandleFunc("POST /api/notifications", WithLogging(h.AddNotification))
	mux.HandleFunc("PATCH /api/notifications/{id}/read", WithLogging(h.MarkNotificationRead))

	return mux
}
