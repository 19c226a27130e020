package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	_ "modernc.org/sqlite"
)

const dayFormat = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS records (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	habit_id INTEGER NOT NULL REFERENCES habits (id) ON DELETE CASCADE,
	date     DATE NOT NULL,
	UNIQUE (habit_id, date)
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

// Init creates the config directory, opens the database, and ensures the
// schema exists. It is safe to call on an already-initialized database.
func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Load opens an existing database and fails if it has not been initialized.
func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitual init' first")
	}

	return s.open()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) open() error {
	// The pragma rides on the DSN so cascade deletes work on every pooled
	// connection, not just the first.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", s.path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

// cleanName validates and trims a habit name.
func cleanName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("habit name cannot be empty: %w", models.ErrInvalidInput)
	}
	return trimmed, nil
}

// cleanDate validates a date string and returns its canonical YYYY-MM-DD
// form so stored dates compare by string equality.
func cleanDate(date string) (string, error) {
	trimmed := strings.TrimSpace(date)
	if trimmed == "" {
		return "", fmt.Errorf("date cannot be empty: %w", models.ErrInvalidInput)
	}
	day, err := time.Parse(dayFormat, trimmed)
	if err != nil {
		return "", fmt.Errorf("date %q is not a valid YYYY-MM-DD date: %w", trimmed, models.ErrInvalidInput)
	}
	return day.Format(dayFormat), nil
}

func (s *SQLiteStore) CreateHabit(name string) (models.Habit, error) {
	trimmed, err := cleanName(name)
	if err != nil {
		return models.Habit{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Habit{}, err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM habits WHERE name = ?", trimmed).Scan(&count); err != nil {
		return models.Habit{}, fmt.Errorf("failed to check habit name: %w", err)
	}
	if count > 0 {
		return models.Habit{}, fmt.Errorf("habit %q: %w", trimmed, models.ErrAlreadyExists)
	}

	res, err := tx.Exec("INSERT INTO habits (name) VALUES (?)", trimmed)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to insert habit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Habit{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Habit{}, err
	}

	return models.Habit{ID: id, Name: trimmed}, nil
}

func (s *SQLiteStore) FindHabitByName(name string) (models.Habit, error) {
	trimmed := strings.TrimSpace(name)

	var h models.Habit
	err := s.db.QueryRow("SELECT id, name FROM habits WHERE name = ?", trimmed).Scan(&h.ID, &h.Name)
	if err == sql.ErrNoRows {
		return models.Habit{}, fmt.Errorf("habit %q: %w", trimmed, models.ErrNotFound)
	}
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to find habit: %w", err)
	}
	return h, nil
}

func (s *SQLiteStore) FindHabitByID(id int64) (models.Habit, error) {
	var h models.Habit
	err := s.db.QueryRow("SELECT id, name FROM habits WHERE id = ?", id).Scan(&h.ID, &h.Name)
	if err == sql.ErrNoRows {
		return models.Habit{}, fmt.Errorf("habit %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to find habit: %w", err)
	}
	return h, nil
}

func (s *SQLiteStore) ListHabits() ([]models.Habit, error) {
	rows, err := s.db.Query("SELECT id, name FROM habits ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var h models.Habit
		if err := rows.Scan(&h.ID, &h.Name); err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *SQLiteStore) RenameHabit(id int64, newName string) (models.Habit, error) {
	trimmed, err := cleanName(newName)
	if err != nil {
		return models.Habit{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Habit{}, err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM habits WHERE id = ?", id).Scan(&count); err != nil {
		return models.Habit{}, fmt.Errorf("failed to check habit existence: %w", err)
	}
	if count == 0 {
		return models.Habit{}, fmt.Errorf("habit %d: %w", id, models.ErrNotFound)
	}

	if err := tx.QueryRow("SELECT COUNT(*) FROM habits WHERE name = ? AND id != ?", trimmed, id).Scan(&count); err != nil {
		return models.Habit{}, fmt.Errorf("failed to check habit name: %w", err)
	}
	if count > 0 {
		return models.Habit{}, fmt.Errorf("habit %q: %w", trimmed, models.ErrAlreadyExists)
	}

	if _, err := tx.Exec("UPDATE habits SET name = ? WHERE id = ?", trimmed, id); err != nil {
		return models.Habit{}, fmt.Errorf("failed to rename habit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Habit{}, err
	}

	return models.Habit{ID: id, Name: trimmed}, nil
}

// DeleteHabit removes the habit and all of its records in one transaction.
// Deleting an absent id fails with ErrNotFound rather than succeeding
// silently.
func (s *SQLiteStore) DeleteHabit(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM habits WHERE id = ?", id).Scan(&count); err != nil {
		return fmt.Errorf("failed to check habit existence: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("habit %d: %w", id, models.ErrNotFound)
	}

	// Records go with it via ON DELETE CASCADE.
	if _, err := tx.Exec("DELETE FROM habits WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) CreateRecord(habitID int64, date string) (models.Record, error) {
	day, err := cleanDate(date)
	if err != nil {
		return models.Record{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Record{}, err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM habits WHERE id = ?", habitID).Scan(&count); err != nil {
		return models.Record{}, fmt.Errorf("failed to check habit existence: %w", err)
	}
	if count == 0 {
		return models.Record{}, fmt.Errorf("habit %d: %w", habitID, models.ErrNotFound)
	}

	if err := tx.QueryRow("SELECT COUNT(*) FROM records WHERE habit_id = ? AND date = ?", habitID, day).Scan(&count); err != nil {
		return models.Record{}, fmt.Errorf("failed to check record date: %w", err)
	}
	if count > 0 {
		return models.Record{}, fmt.Errorf("record for %s: %w", day, models.ErrAlreadyExists)
	}

	res, err := tx.Exec("INSERT INTO records (habit_id, date) VALUES (?, ?)", habitID, day)
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Record{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Record{}, err
	}

	return models.Record{ID: id, HabitID: habitID, Date: day}, nil
}

func (s *SQLiteStore) ListRecords(habitID int64) ([]models.Record, error) {
	rows, err := s.db.Query(
		"SELECT id, habit_id, date FROM records WHERE habit_id = ? ORDER BY date DESC", habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.ID, &r.HabitID, &r.Date); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) FindRecordByDate(habitID int64, date string) (models.Record, error) {
	day, err := cleanDate(date)
	if err != nil {
		return models.Record{}, err
	}

	var r models.Record
	err = s.db.QueryRow(
		"SELECT id, habit_id, date FROM records WHERE habit_id = ? AND date = ?", habitID, day).
		Scan(&r.ID, &r.HabitID, &r.Date)
	if err == sql.ErrNoRows {
		return models.Record{}, fmt.Errorf("record for %s: %w", day, models.ErrNotFound)
	}
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to find record: %w", err)
	}
	return r, nil
}

func (s *SQLiteStore) UpdateRecord(id int64, newDate string) (models.Record, error) {
	day, err := cleanDate(newDate)
	if err != nil {
		return models.Record{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Record{}, err
	}
	defer tx.Rollback()

	var habitID int64
	err = tx.QueryRow("SELECT habit_id FROM records WHERE id = ?", id).Scan(&habitID)
	if err == sql.ErrNoRows {
		return models.Record{}, fmt.Errorf("record %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to check record existence: %w", err)
	}

	var count int
	if err := tx.QueryRow(
		"SELECT COUNT(*) FROM records WHERE habit_id = ? AND date = ? AND id != ?", habitID, day, id).
		Scan(&count); err != nil {
		return models.Record{}, fmt.Errorf("failed to check record date: %w", err)
	}
	if count > 0 {
		return models.Record{}, fmt.Errorf("record for %s: %w", day, models.ErrAlreadyExists)
	}

	if _, err := tx.Exec("UPDATE records SET date = ? WHERE id = ?", day, id); err != nil {
		return models.Record{}, fmt.Errorf("failed to update record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Record{}, err
	}

	return models.Record{ID: id, HabitID: habitID, Date: day}, nil
}

func (s *SQLiteStore) DeleteRecord(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM records WHERE id = ?", id).Scan(&count); err != nil {
		return fmt.Errorf("failed to check record existence: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("record %d: %w", id, models.ErrNotFound)
	}

	if _, err := tx.Exec("DELETE FROM records WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) IntegrityCheck() error {
	var result string
	if err := s.db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("integrity check failed to run: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check reported: %s", result)
	}
	return nil
}

func (s *SQLiteStore) ForeignKeyCheck() error {
	rows, err := s.db.Query("PRAGMA foreign_key_check")
	if err != nil {
		return fmt.Errorf("foreign key check failed to run: %w", err)
	}
	defer rows.Close()

	violations := 0
	for rows.Next() {
		violations++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if violations > 0 {
		return fmt.Errorf("foreign key check found %d violation(s)", violations)
	}
	return nil
}

func (s *SQLiteStore) GetStats() (Stats, error) {
	var stats Stats
	if err := s.db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&stats.Habits); err != nil {
		return Stats{}, fmt.Errorf("failed to count habits: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&stats.Records); err != nil {
		return Stats{}, fmt.Errorf("failed to count records: %w", err)
	}
	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM records WHERE habit_id NOT IN (SELECT id FROM habits)").
		Scan(&stats.Orphans); err != nil {
		return Stats{}, fmt.Errorf("failed to count orphan records: %w", err)
	}
	return stats, nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
