package models

// Habit represents a named activity the user tracks
type Habit struct {
	ID   int64
	Name string
}

// Record represents a single day on which a habit was kept
type Record struct {
	ID      int64
	HabitID int64
	Date    string // YYYY-MM-DD format
}
