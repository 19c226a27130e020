package storage

import "github.com/julianstephens/habitual/internal/models"

// Stats summarizes database contents for diagnostics.
type Stats struct {
	Habits  int64
	Records int64
	Orphans int64
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	CreateHabit(name string) (models.Habit, error)
	FindHabitByName(name string) (models.Habit, error)
	FindHabitByID(id int64) (models.Habit, error)
	ListHabits() ([]models.Habit, error)
	RenameHabit(id int64, newName string) (models.Habit, error)
	DeleteHabit(id int64) error

	// Records
	CreateRecord(habitID int64, date string) (models.Record, error)
	ListRecords(habitID int64) ([]models.Record, error)
	FindRecordByDate(habitID int64, date string) (models.Record, error)
	UpdateRecord(id int64, newDate string) (models.Record, error)
	DeleteRecord(id int64) error

	// Diagnostics
	IntegrityCheck() error
	ForeignKeyCheck() error
	GetStats() (Stats, error)

	// Utils
	GetConfigPath() string
}
