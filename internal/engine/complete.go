package engine

import (
	"fmt"
	"time"

	"taskquest/internal/storage"
)

type ToggleResult struct {
	Task        storage.Task
	Completed   bool // state after the toggle
	XPDelta     int  // negative when the task was reopened
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	Unlocked    []storage.Achievement
	Events      []Event
	State       State
}

// ToggleComplete flips the completion state of task id, moves XP accordingly
// and evaluates achievements against the resulting progress.
//
// Events are ordered: quest completed, level up, then one per unlocked
// achievement.
func (s State) ToggleComplete(id string, now time.Time) (State, *ToggleResult, error) {
	i := s.indexOf(id)
	if i < 0 {
		return s, nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	next := s.Clone()
	t := next.Tasks[i]
	res := &ToggleResult{LevelBefore: s.Progress.Level}

	if !t.Completed {
		at := now
		t.Completed = true
		t.CompletedAt = &at

		progress, leveledUp := ApplyCompletion(next.Progress, t.XPReward)
		next.Progress = progress
		res.XPDelta = t.XPReward
		res.LevelUp = leveledUp
		res.Events = append(res.Events, Event{
			Kind:      EventQuestCompleted,
			TaskID:    t.ID,
			Title:     t.Title,
			XP:        t.XPReward,
			Level:     progress.Level,
			LeveledUp: leveledUp,
		})
		if leveledUp {
			res.Events = append(res.Events, Event{Kind: EventLevelUp, Level: progress.Level})
		}
	} else {
		t.Completed = false
		t.CompletedAt = nil

		next.Progress = RevertCompletion(next.Progress, t.XPReward)
		res.XPDelta = -t.XPReward
		res.Events = append(res.Events, Event{
			Kind:   EventQuestReopened,
			TaskID: t.ID,
			Title:  t.Title,
			XP:     t.XPReward,
			Level:  next.Progress.Level,
		})
	}
	next.Tasks[i] = t

	achievements, unlocked := EvaluateAchievements(next.Achievements, next.Progress, now)
	next.Achievements = achievements
	for _, a := range unlocked {
		res.Events = append(res.Events, Event{
			Kind:        EventAchievementUnlocked,
			Title:       a.Title,
			Description: a.Description,
		})
	}

	res.Task = t
	res.Completed = t.Completed
	res.LevelAfter = next.Progress.Level
	res.Unlocked = unlocked
	res.State = next
	return next, res, nil
}
