package engine

import (
	"fmt"

	"taskquest/internal/storage"
)

// XPPerLevel is the fixed width of every level band.
const XPPerLevel = 100

// XPRewardFor returns the reward frozen into a task at creation time.
func XPRewardFor(d Difficulty) (int, error) {
	if !d.IsValid() {
		return 0, fmt.Errorf("invalid difficulty: %q", d)
	}
	switch d {
	case DifficultyMedium:
		return 25, nil
	case DifficultyHard:
		return 50, nil
	default:
		return 10, nil
	}
}

// LevelForTotalXP returns the 1-based level for totalXP. Negative input counts as zero.
func LevelForTotalXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/XPPerLevel + 1
}

// XPIntoLevel returns progress within the current level band.
func XPIntoLevel(totalXP int) int {
	if totalXP < 0 {
		return 0
	}
	return totalXP % XPPerLevel
}

func XPToNextLevel(totalXP int) int {
	return XPPerLevel - XPIntoLevel(totalXP)
}

func DefaultProgress() storage.Progress {
	return storage.Progress{Level: 1}
}

func withTotalXP(p storage.Progress, totalXP int) storage.Progress {
	if totalXP < 0 {
		totalXP = 0
	}
	p.TotalXP = totalXP
	p.Level = LevelForTotalXP(totalXP)
	p.CurrentXP = XPIntoLevel(totalXP)
	return p
}

// ApplyCompletion credits xpReward and one completed task. leveledUp is
// reported for notifications only.
func ApplyCompletion(p storage.Progress, xpReward int) (next storage.Progress, leveledUp bool) {
	next = withTotalXP(p, p.TotalXP+xpReward)
	next.TasksCompleted = p.TasksCompleted + 1
	return next, next.Level > p.Level
}

// RevertCompletion is the inverse of ApplyCompletion, clamped at zero. Near
// the floor it is therefore not an exact inverse.
func RevertCompletion(p storage.Progress, xpReward int) storage.Progress {
	next := withTotalXP(p, p.TotalXP-xpReward)
	next.TasksCompleted = max(0, p.TasksCompleted-1)
	return next
}
