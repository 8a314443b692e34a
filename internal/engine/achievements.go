package engine

import (
	"time"

	"taskquest/internal/storage"
)

// DefaultAchievements returns the locked set created on first run.
func DefaultAchievements() []storage.Achievement {
	return []storage.Achievement{
		{
			ID:          "1",
			Title:       "First Quest",
			Description: "Complete your first task",
			Icon:        "🎯",
			Requirement: storage.Requirement{Type: string(RequirementTasksCompleted), Value: 1},
		},
		{
			ID:          "2",
			Title:       "Task Master",
			Description: "Complete 10 tasks",
			Icon:        "⭐",
			Requirement: storage.Requirement{Type: string(RequirementTasksCompleted), Value: 10},
		},
		{
			ID:          "3",
			Title:       "Streak Champion",
			Description: "Maintain a 7-day streak",
			Icon:        "🔥",
			Requirement: storage.Requirement{Type: string(RequirementStreakDays), Value: 7},
		},
		{
			ID:          "4",
			Title:       "Level Up!",
			Description: "Reach level 5",
			Icon:        "🏆",
			Requirement: storage.Requirement{Type: string(RequirementLevelReached), Value: 5},
		},
	}
}

// requirementMet reports whether p satisfies r. Unknown types never match.
func requirementMet(r storage.Requirement, p storage.Progress) bool {
	var have int
	switch RequirementType(r.Type) {
	case RequirementTasksCompleted:
		have = p.TasksCompleted
	case RequirementLevelReached:
		have = p.Level
	case RequirementStreakDays:
		have = p.CurrentStreak
	case RequirementXPEarned:
		have = p.TotalXP
	default:
		return false
	}
	return have >= r.Value
}

// EvaluateAchievements unlocks every locked achievement whose requirement p
// meets. Order is preserved and unlocked entries are never touched, so an
// achievement cannot be revoked. The input slice is not modified.
func EvaluateAchievements(achievements []storage.Achievement, p storage.Progress, now time.Time) (next []storage.Achievement, newlyUnlocked []storage.Achievement) {
	next = make([]storage.Achievement, len(achievements))
	copy(next, achievements)

	for i := range next {
		if next[i].Unlocked {
			continue
		}
		if !requirementMet(next[i].Requirement, p) {
			continue
		}
		at := now
		next[i].Unlocked = true
		next[i].UnlockedAt = &at
		newlyUnlocked = append(newlyUnlocked, next[i])
	}
	return next, newlyUnlocked
}

// CountUnlocked returns how many achievements have been unlocked.
func CountUnlocked(achievements []storage.Achievement) int {
	n := 0
	for _, a := range achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}
