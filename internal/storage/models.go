package storage

import "time"

// Task is a single quest.
type Task struct {
	ID          string
	Title       string
	Description string
	Difficulty  string
	Category    string
	Completed   bool
	CreatedAt   time.Time
	CompletedAt *time.Time
	XPReward    int
	Photo       string
	Audio       string
}

type Requirement struct {
	Type  string
	Value int
}

type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Unlocked    bool
	UnlockedAt  *time.Time
	Requirement Requirement
}

// Progress is the player's aggregate state. Level and CurrentXP are always
// derived from TotalXP.
type Progress struct {
	Level          int
	CurrentXP      int
	TotalXP        int
	TasksCompleted int
	CurrentStreak  int
	LongestStreak  int
}

// CompletionEntry is one row of the completion journal. XPDelta is negative
// when a task was reopened.
type CompletionEntry struct {
	ID         int64
	TaskID     string
	Title      string
	XPDelta    int
	LevelAfter int
	OccurredAt time.Time
}
