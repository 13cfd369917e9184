package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/stridehq/stride/internal/models"
)

// SQLiteStore is the default Provider, backed by a single-file SQLite
// database.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	frequency TEXT NOT NULL,
	custom_schedule TEXT,
	reminder_time TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	icon TEXT NOT NULL DEFAULT '',
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS completions (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL REFERENCES habits(id),
	date TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	completed_at TEXT NOT NULL,
	UNIQUE(habit_id, date)
);

CREATE TABLE IF NOT EXISTS streaks (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL UNIQUE REFERENCES habits(id),
	current_streak INTEGER NOT NULL DEFAULT 0,
	longest_streak INTEGER NOT NULL DEFAULT 0,
	last_completed_date TEXT,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	type TEXT NOT NULL,
	is_read INTEGER NOT NULL DEFAULT 0,
	habit_id TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_completions_date ON completions(date);
`

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'stride init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) AddHabit(h models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (id, name, category, description, frequency, custom_schedule,
			reminder_time, color, icon, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Category, h.Description, string(h.Frequency), rawToNull(h.CustomSchedule),
		h.ReminderTime, h.Color, h.Icon, boolToInt(h.IsActive),
		h.CreatedAt.Format(time.RFC3339), h.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	// Streak state is born zeroed alongside the habit.
	_, err = s.db.Exec(`
		INSERT OR IGNORE INTO streaks (id, habit_id, current_streak, longest_streak, last_completed_date, updated_at)
		VALUES (?, ?, 0, 0, NULL, ?)`,
		newID(), h.ID, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to initialize streak: %w", err)
	}
	return nil
}

const habitColumns = `id, name, category, description, frequency, custom_schedule,
	reminder_time, color, icon, is_active, created_at, updated_at`

func (s *SQLiteStore) scanHabit(row interface{ Scan(...interface{}) error }) (models.Habit, error) {
	var h models.Habit
	var frequency, createdAt, updatedAt string
	var customSchedule sql.NullString
	var isActive int

	err := row.Scan(&h.ID, &h.Name, &h.Category, &h.Description, &frequency, &customSchedule,
		&h.ReminderTime, &h.Color, &h.Icon, &isActive, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Habit{}, ErrNotFound
		}
		return models.Habit{}, err
	}

	h.Frequency = models.Frequency(frequency)
	h.IsActive = isActive != 0
	if customSchedule.Valid {
		h.CustomSchedule = json.RawMessage(customSchedule.String)
	}
	if h.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if h.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return h, nil
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	return s.scanHabit(row)
}

func (s *SQLiteStore) GetAllHabits(includeInactive bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits`
	if !includeInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := s.scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *SQLiteStore) UpdateHabit(h models.Habit) error {
	res, err := s.db.Exec(`
		UPDATE habits SET name = ?, category = ?, description = ?, frequency = ?,
			custom_schedule = ?, reminder_time = ?, color = ?, icon = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		h.Name, h.Category, h.Description, string(h.Frequency), rawToNull(h.CustomSchedule),
		h.ReminderTime, h.Color, h.Icon, boolToInt(h.IsActive),
		h.UpdatedAt.Format(time.RFC3339), h.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireRow(res)
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	res, err := s.db.Exec(`UPDATE habits SET is_active = 0, updated_at = ? WHERE id = ?`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLiteStore) RestoreHabit(id string) error {
	res, err := s.db.Exec(`UPDATE habits SET is_active = 1, updated_at = ? WHERE id = ?`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLiteStore) AddCompletion(c models.Completion) error {
	var count int
	if err := s.db.QueryRow(`SELECT count(*) FROM completions WHERE habit_id = ? AND date = ?`,
		c.HabitID, c.Date).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateCompletion
	}

	_, err := s.db.Exec(`
		INSERT INTO completions (id, habit_id, date, notes, completed_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.HabitID, c.Date, c.Notes, c.CompletedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert completion: %w", err)
	}
	return nil
}

func (s *SQLiteStore) scanCompletion(row interface{ Scan(...interface{}) error }) (models.Completion, error) {
	var c models.Completion
	var completedAt string

	err := row.Scan(&c.ID, &c.HabitID, &c.Date, &c.Notes, &completedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Completion{}, ErrNotFound
		}
		return models.Completion{}, err
	}
	if c.CompletedAt, err = time.Parse(time.RFC3339, completedAt); err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse completed_at: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) GetCompletion(habitID, date string) (models.Completion, error) {
	row := s.db.QueryRow(`
		SELECT id, habit_id, date, notes, completed_at
		FROM completions WHERE habit_id = ? AND date = ?`, habitID, date)
	return s.scanCompletion(row)
}

func (s *SQLiteStore) GetCompletions(habitID, startDate, endDate string) ([]models.Completion, error) {
	query := `SELECT id, habit_id, date, notes, completed_at FROM completions WHERE habit_id = ?`
	args := []interface{}{habitID}
	if startDate != "" {
		query += ` AND date >= ?`
		args = append(args, startDate)
	}
	if endDate != "" {
		query += ` AND date <= ?`
		args = append(args, endDate)
	}
	query += ` ORDER BY date DESC`
	return s.queryCompletions(query, args...)
}

func (s *SQLiteStore) GetCompletionsForDate(date string) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT id, habit_id, date, notes, completed_at
		FROM completions WHERE date = ? ORDER BY habit_id`, date)
}

func (s *SQLiteStore) GetAllCompletions() ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT id, habit_id, date, notes, completed_at
		FROM completions ORDER BY date DESC`)
}

func (s *SQLiteStore) queryCompletions(query string, args ...interface{}) ([]models.Completion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		c, err := s.scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func (s *SQLiteStore) RemoveCompletion(habitID, date string) error {
	res, err := s.db.Exec(`DELETE FROM completions WHERE habit_id = ? AND date = ?`, habitID, date)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLiteStore) GetStreak(habitID string) (models.Streak, error) {
	row := s.db.QueryRow(`
		SELECT id, habit_id, current_streak, longest_streak, last_completed_date, updated_at
		FROM streaks WHERE habit_id = ?`, habitID)

	var st models.Streak
	var lastCompleted sql.NullString
	var updatedAt string

	err := row.Scan(&st.ID, &st.HabitID, &st.CurrentStreak, &st.LongestStreak, &lastCompleted, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Streak{}, ErrNotFound
		}
		return models.Streak{}, err
	}
	if lastCompleted.Valid {
		st.LastCompletedDate = lastCompleted.String
	}
	if st.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Streak{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return st, nil
}

func (s *SQLiteStore) SaveStreak(st models.Streak) error {
	if st.ID == "" {
		st.ID = newID()
	}
	_, err := s.db.Exec(`
		INSERT INTO streaks (id, habit_id, current_streak, longest_streak, last_completed_date, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(habit_id) DO UPDATE SET
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			last_completed_date = excluded.last_completed_date,
			updated_at = excluded.updated_at`,
		st.ID, st.HabitID, st.CurrentStreak, st.LongestStreak,
		strToNull(st.LastCompletedDate), st.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddNotification(n models.Notification) error {
	_, err := s.db.Exec(`
		INSERT INTO notifications (id, title, message, type, is_read, habit_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Message, string(n.Type), boolToInt(n.IsRead),
		strToNull(n.HabitID), n.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetNotifications(limit int) ([]models.Notification, error) {
	rows, err := s.db.Query(`
		SELECT id, title, message, type, is_read, habit_id, created_at
		FROM notifications ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var typ, createdAt string
		var habitID sql.NullString
		var isRead int

		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &typ, &isRead, &habitID, &createdAt); err != nil {
			return nil, err
		}
		n.Type = models.NotificationType(typ)
		n.IsRead = isRead != 0
		if habitID.Valid {
			n.HabitID = habitID.String
		}
		if n.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *SQLiteStore) MarkNotificationRead(id string) error {
	res, err := s.db.Exec(`UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLiteStore) GetConfigPath() string { return s.path }
