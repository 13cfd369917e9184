package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stridehq/stride/internal/models"
)

// MemoryStore is a map-backed Provider. It holds everything in process
// memory, so it suits tests and the --store memory mode; nothing survives a
// restart. Instances are constructed explicitly and injected — there is no
// package-level singleton.
type MemoryStore struct {
	mu            sync.RWMutex
	habits        map[string]models.Habit
	completions   map[string]models.Completion // keyed by completion ID
	streaks       map[string]models.Streak     // keyed by habit ID
	notifications map[string]models.Notification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		habits:        make(map[string]models.Habit),
		completions:   make(map[string]models.Completion),
		streaks:       make(map[string]models.Streak),
		notifications: make(map[string]models.Notification),
	}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) AddHabit(h models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.habits[h.ID] = h
	// Streak state is born zeroed alongside the habit.
	if _, ok := s.streaks[h.ID]; !ok {
		s.streaks[h.ID] = models.Streak{
			ID:        uuid.New().String(),
			HabitID:   h.ID,
			UpdatedAt: time.Now(),
		}
	}
	return nil
}

func (s *MemoryStore) GetHabit(id string) (models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.habits[id]
	if !ok {
		return models.Habit{}, ErrNotFound
	}
	return h, nil
}

func (s *MemoryStore) GetAllHabits(includeInactive bool) ([]models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	habits := make([]models.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		if !includeInactive && !h.IsActive {
			continue
		}
		habits = append(habits, h)
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
	return habits, nil
}

func (s *MemoryStore) UpdateHabit(h models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.habits[h.ID]; !ok {
		return ErrNotFound
	}
	s.habits[h.ID] = h
	return nil
}

func (s *MemoryStore) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[id]
	if !ok {
		return ErrNotFound
	}
	h.IsActive = false
	h.UpdatedAt = time.Now()
	s.habits[id] = h
	return nil
}

func (s *MemoryStore) RestoreHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[id]
	if !ok {
		return ErrNotFound
	}
	h.IsActive = true
	h.UpdatedAt = time.Now()
	s.habits[id] = h
	return nil
}

func (s *MemoryStore) AddCompletion(c models.Completion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.completions {
		if existing.HabitID == c.HabitID && existing.Date == c.Date {
			return ErrDuplicateCompletion
		}
	}
	s.completions[c.ID] = c
	return nil
}

func (s *MemoryStore) GetCompletion(habitID, date string) (models.Completion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.completions {
		if c.HabitID == habitID && c.Date == date {
			return c, nil
		}
	}
	return models.Completion{}, ErrNotFound
}

// GetCompletions returns the habit's completions, most recent date first.
// Empty start/end bounds are open-ended.
func (s *MemoryStore) GetCompletions(habitID, startDate, endDate string) ([]models.Completion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Completion
	for _, c := range s.completions {
		if c.HabitID != habitID {
			continue
		}
		if startDate != "" && c.Date < startDate {
			continue
		}
		if endDate != "" && c.Date > endDate {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *MemoryStore) GetCompletionsForDate(date string) ([]models.Completion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Completion
	for _, c := range s.completions {
		if c.Date == date {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HabitID < out[j].HabitID })
	return out, nil
}

func (s *MemoryStore) GetAllCompletions() ([]models.Completion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Completion, 0, len(s.completions))
	for _, c := range s.completions {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *MemoryStore) RemoveCompletion(habitID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range s.completions {
		if c.HabitID == habitID && c.Date == date {
			delete(s.completions, id)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) GetStreak(habitID string) (models.Streak, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.streaks[habitID]
	if !ok {
		return models.Streak{}, ErrNotFound
	}
	return st, nil
}

func (s *MemoryStore) SaveStreak(st models.Streak) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.ID == "" {
		if existing, ok := s.streaks[st.HabitID]; ok {
			st.ID = existing.ID
		} else {
			st.ID = uuid.New().String()
		}
	}
	s.streaks[st.HabitID] = st
	return nil
}

func (s *MemoryStore) AddNotification(n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications[n.ID] = n
	return nil
}

func (s *MemoryStore) GetNotifications(limit int) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) MarkNotificationRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return ErrNotFound
	}
	n.IsRead = true
	s.notifications[id] = n
	return nil
}

func (s *MemoryStore) GetConfigPath() string { return ":memory:" }
