package storage

import "time"

// Companion is one user's creature. Vitals are stored as REAL because decay
// applies fractional deltas; they stay clamped to [0,100].
type Companion struct {
	Key        string
	Name       string
	Level      int
	Experience int
	Stage      string

	Happiness   float64
	Hunger      float64
	Energy      float64
	Health      float64
	Cleanliness float64

	TotalPoints int
	StreakDays  int

	LastFed      time.Time
	LastCaredFor time.Time
	CreatedAt    time.Time
}

type Task struct {
	ID          int64
	Title       string
	Description *string
	Category    string

	IsRecurring   bool
	Completed     bool
	CompletedDate *time.Time
	DailyStreak   int

	Reward             int
	ProgressionValue   int
	ProgressionChainID *int64
	ParentTaskID       *int64

	CreatedAt time.Time
}

type Quest struct {
	ID             int64
	Code           string
	Title          string
	Description    *string
	Type           string
	LinkedActivity string
	TaskCategory   *string

	TargetCount     int
	CurrentProgress int
	RewardPoints    int
	RewardXP        int

	Completed     bool
	CompletedDate *time.Time

	CreatedAt time.Time
	ExpiresAt time.Time
}

type ActivityLog struct {
	ID       int64
	Kind     string
	Note     *string
	Value    *float64
	LoggedAt time.Time
}
