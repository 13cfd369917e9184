package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/stridehq/stride/internal/constants"
	"github.com/stridehq/stride/internal/dateutil"
	"github.com/stridehq/stride/internal/logger"
	"github.com/stridehq/stride/internal/models"
	"github.com/stridehq/stride/internal/storage"
	"github.com/stridehq/stride/internal/tracker"
	"github.com/stridehq/stride/internal/validation"
)

// Handler serves the REST API over a tracker.
type Handler struct {
	tracker *tracker.Tracker
}

func NewHandler(t *tracker.Tracker) *Handler {
	return &Handler{tracker: t}
}

// writeError maps tracker/storage failures to HTTP responses: validation
// failures name the offending field with a 400, missing records become 404,
// everything else is a 500 with the detail kept server-side.
func writeError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		ErrorResponse(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, storage.ErrNotFound):
		ErrorResponse(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrDuplicateCompletion):
		ErrorResponse(w, http.StatusConflict, "completion already recorded for this date")
	default:
		logger.Error("request failed", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "internal error")
	}
}

// ListHabits handles GET /api/habits
func (h *Handler) ListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := h.tracker.HabitsWithStats(time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, habits)
}

// GetHabit handles GET /api/habits/{id}
func (h *Handler) GetHabit(w http.ResponseWriter, r *http.Request) {
	habit, err := h.tracker.GetHabit(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, habit)
}

// CreateHabit handles POST /api/habits
func (h *Handler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	var habit models.Habit
	if err := ParseJSONBody(r, &habit); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	created, err := h.tracker.CreateHabit(habit)
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, created)
}

// PatchHabit handles PATCH /api/habits/{id}
func (h *Handler) PatchHabit(w http.ResponseWriter, r *http.Request) {
	var patch models.HabitPatch
	if err := ParseJSONBody(r, &patch); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	habit, err := h.tracker.UpdateHabit(r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, habit)
}

// DeleteHabit handles DELETE /api/habits/{id}
func (h *Handler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	if err := h.tracker.DeleteHabit(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCompletions handles GET /api/habits/{id}/completions
func (h *Handler) ListCompletions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	completions, err := h.tracker.Completions(r.PathValue("id"), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeError(w, err)
		return
	}
	if completions == nil {
		completions = []models.Completion{}
	}
	JSONResponse(w, http.StatusOK, completions)
}

// AddCompletion handles POST /api/habits/{id}/completions
func (h *Handler) AddCompletion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date  string `json:"date"`
		Notes string `json:"notes"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	completion, err := h.tracker.AddCompletion(r.PathValue("id"), req.Date, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, completion)
}

// RemoveCompletion handles DELETE /api/habits/{id}/completions/{date}
func (h *Handler) RemoveCompletion(w http.ResponseWriter, r *http.Request) {
	if err := h.tracker.RemoveCompletion(r.PathValue("id"), r.PathValue("date")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DailyStats handles GET /api/analytics/daily-stats?startDate=&endDate=
// Defaults to the trailing week when no range is given.
func (h *Handler) DailyStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := q.Get("startDate"), q.Get("endDate")
	if start == "" || end == "" {
		today := dateutil.Truncate(time.Now())
		end = dateutil.ISODate(today)
		start = dateutil.ISODate(today.AddDate(0, 0, -(constants.DefaultStatsDays - 1)))
	}
	dailyStats, err := h.tracker.DailyStats(start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, dailyStats)
}

// ListNotifications handles GET /api/notifications
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.tracker.Notifications(constants.NotificationLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	JSONResponse(w, http.StatusOK, notifications)
}

// AddNotification handles POST /api/notifications
func (h *Handler) AddNotification(w http.ResponseWriter, r *http.Request) {
	var n models.Notification
	if err := ParseJSONBody(r, &n); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if n.Title == "" || n.Message == "" {
		ErrorResponse(w, http.StatusBadRequest, "title and message are required")
		return
	}
	created, err := h.tracker.AddNotification(n)
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, created)
}

// MarkNotificationRead handles PATCH /api/notifications/{id}/read
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.tracker.MarkNotificationRead(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
