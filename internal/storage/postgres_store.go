package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"

	"github.com/stridehq/stride/internal/models"
)

// PostgresStore is a Provider backed by PostgreSQL, for setups where the
// database lives off-host. The connection string must not carry embedded
// credentials; use the OS keyring, environment, or .pgpass.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{connStr: connStr}
}

// HasEmbeddedCredentials reports whether a postgres:// connection string
// carries a password inline.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	frequency TEXT NOT NULL,
	custom_schedule JSONB,
	reminder_time TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	icon TEXT NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS completions (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL REFERENCES habits(id),
	date TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	completed_at TIMESTAMPTZ NOT NULL,
	UNIQUE(habit_id, date)
);

CREATE TABLE IF NOT EXISTS streaks (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL UNIQUE REFERENCES habits(id),
	current_streak INTEGER NOT NULL DEFAULT 0,
	longest_streak INTEGER NOT NULL DEFAULT 0,
	last_completed_date TEXT,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	type TEXT NOT NULL,
	is_read BOOLEAN NOT NULL DEFAULT FALSE,
	habit_id TEXT,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_completions_date ON completions(date);
`

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) AddHabit(h models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (id, name, category, description, frequency, custom_schedule,
			reminder_time, color, icon, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		h.ID, h.Name, h.Category, h.Description, string(h.Frequency), rawToNull(h.CustomSchedule),
		h.ReminderTime, h.Color, h.Icon, h.IsActive, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO streaks (id, habit_id, current_streak, longest_streak, last_completed_date, updated_at)
		VALUES ($1, $2, 0, 0, NULL, $3)
		ON CONFLICT (habit_id) DO NOTHING`,
		newID(), h.ID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to initialize streak: %w", err)
	}
	return nil
}

func (s *PostgresStore) scanHabit(row interface{ Scan(...interface{}) error }) (models.Habit, error) {
	var h models.Habit
	var frequency string
	var customSchedule sql.NullString

	err := row.Scan(&h.ID, &h.Name, &h.Category, &h.Description, &frequency, &customSchedule,
		&h.ReminderTime, &h.Color, &h.Icon, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Habit{}, ErrNotFound
		}
		return models.Habit{}, err
	}
	h.Frequency = models.Frequency(frequency)
	if customSchedule.Valid {
		h.CustomSchedule = json.RawMessage(customSchedule.String)
	}
	return h, nil
}

func (s *PostgresStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = $1`, id)
	return s.scanHabit(row)
}

func (s *PostgresStore) GetAllHabits(includeInactive bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits`
	if !includeInactive {
		query += ` WHERE is_active`
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

func (s *PostgresStore) UpdateHabit(h models.Habit) error {
	res, err := s.db.Exec(`
		UPDATE habits SET name = $1, category = $2, description = $3, frequency = $4,
			custom_schedule = $5, reminder_time = $6, color = $7, icon = $8, is_active = $9, updated_at = $10
		WHERE id = $11`,
		h.Name, h.Category, h.Description, string(h.Frequency), rawToNull(h.CustomSchedule),
		h.ReminderTime, h.Color, h.Icon, h.IsActive, h.UpdatedAt, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) DeleteHabit(id string) error {
	res, err := s.db.Exec(`UPDATE habits SET is_active = FALSE, updated_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PostgresStore) RestoreHabit(id string) error {
	res, err := s.db.Exec(`UPDATE habits SET is_active = TRUE, updated_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PostgresStore) AddCompletion(c models.Completion) error {
	var count int
	if err := s.db.QueryRow(`SELECT count(*) FROM completions WHERE habit_id = $1 AND date = $2`,
		c.HabitID, c.Date).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateCompletion
	}

	_, err := s.db.Exec(`
		INSERT INTO completions (id, habit_id, date, notes, completed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.HabitID, c.Date, c.Notes, c.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to insert completion: %w", err)
	}
	return nil
}

func (s *PostgresStore) scanCompletion(row interface{ Scan(...interface{}) error }) (models.Completion, error) {
	var c models.Completion
	err := row.Scan(&c.ID, &c.HabitID, &c.Date, &c.Notes, &c.CompletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Completion{}, ErrNotFound
		}
		return models.Completion{}, err
	}
	return c, nil
}

func (s *PostgresStore) GetCompletion(habitID, date string) (models.Completion, error) {
	row := s.db.QueryRow(`
		SELECT id, habit_id, date, notes, completed_at
		FROM completions WHERE habit_id = $1 AND date = $2`, habitID, date)
	return s.scanCompletion(row)
}

func (s *PostgresStore) GetCompletions(habitID, startDate, endDate string) ([]models.Completion, error) {
	query := `SELECT id, habit_id, date, notes, completed_at FROM completions WHERE habit_id = $1`
	args := []interface{}{habitID}
	if startDate != "" {
		args = append(args, startDate)
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if endDate != "" {
		args = append(args, endDate)
		query += fmt.Sprintf(` AND date <= $%d`, len(args))
	}
	query += ` ORDER BY date DESC`
	return s.queryCompletions(query, args...)
}

func (s *PostgresStore) GetCompletionsForDate(date string) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT id, habit_id, date, notes, completed_at
		FROM completions WHERE date = $1 ORDER BY habit_id`, date)
}

func (s *PostgresStore) GetAllCompletions() ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT id, habit_id, date, notes, completed_at
		FROM completions ORDER BY date DESC`)
}

func (s *PostgresStore) queryCompletions(query string, args ...interface{}) ([]models.Completion, error) {
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

func (s *PostgresStore) RemoveCompletion(habitID, date string) error {
	res, err := s.db.Exec(`DELETE FROM completions WHERE habit_id = $1 AND date = $2`, habitID, date)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PostgresStore) GetStreak(habitID string) (models.Streak, error) {
	row := s.db.QueryRow(`
		SELECT id, habit_id, current_streak, longest_streak, last_completed_date, updated_at
		FROM streaks WHERE habit_id = $1`, habitID)

	var st models.Streak
	var lastCompleted sql.NullString

	err := row.Scan(&st.ID, &st.HabitID, &st.CurrentStreak, &st.LongestStreak, &lastCompleted, &st.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Streak{}, ErrNotFound
		}
		return models.Streak{}, err
	}
	if lastCompleted.Valid {
		st.LastCompletedDate = lastCompleted.String
	}
	return st, nil
}

func (s *PostgresStore) SaveStreak(st models.Streak) error {
	if st.ID == "" {
		st.ID = newID()
	}
	_, err := s.db.Exec(`
		INSERT INTO streaks (id, habit_id, current_streak, longest_streak, last_completed_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (habit_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_completed_date = EXCLUDED.last_completed_date,
			updated_at = EXCLUDED.updated_at`,
		st.ID, st.HabitID, st.CurrentStreak, st.LongestStreak,
		strToNull(st.LastCompletedDate), st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}
	return nil
}

func (s *PostgresStore) AddNotification(n models.Notification) error {
	_, err := s.db.Exec(`
		INSERT INTO notifications (id, title, message, type, is_read, habit_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.Title, n.Message, string(n.Type), n.IsRead, strToNull(n.HabitID), n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetNotifications(limit int) ([]models.Notification, error) {
	rows, err := s.db.Query(`
		SELECT id, title, message, type, is_read, habit_id, created_at
		FROM notifications ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var typ string
		var habitID sql.NullString

		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &typ, &n.IsRead, &habitID, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Type = models.NotificationType(typ)
		if habitID.Valid {
			n.HabitID = habitID.String
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *PostgresStore) MarkNotificationRead(id string) error {
	res, err := s.db.Exec(`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PostgresStore) GetConfigPath() string { return s.connStr }
