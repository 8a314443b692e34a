package engine

import "fmt"

type EventKind string

const (
	EventQuestCreated        EventKind = "quest_created"
	EventQuestUpdated        EventKind = "quest_updated"
	EventQuestCompleted      EventKind = "quest_completed"
	EventQuestReopened       EventKind = "quest_reopened"
	EventLevelUp             EventKind = "level_up"
	EventAchievementUnlocked EventKind = "achievement_unlocked"
	EventReset               EventKind = "reset"
)

// Event is an advisory notification for the presentation layer. Dropping an
// event never affects state.
type Event struct {
	Kind        EventKind
	TaskID      string
	Title       string
	Description string
	XP          int
	Level       int
	LeveledUp   bool
}

// Message renders a one-line human summary.
func (e Event) Message() string {
	switch e.Kind {
	case EventQuestCreated:
		return fmt.Sprintf("Quest created: %s. Complete it to earn %d XP!", e.Title, e.XP)
	case EventQuestUpdated:
		return fmt.Sprintf("Quest updated: %s", e.Title)
	case EventQuestCompleted:
		if e.LeveledUp {
			return fmt.Sprintf("Quest completed! +%d XP earned. Level %d achieved!", e.XP, e.Level)
		}
		return fmt.Sprintf("Quest completed! +%d XP earned.", e.XP)
	case EventQuestReopened:
		return fmt.Sprintf("Quest reopened: %s (-%d XP)", e.Title, e.XP)
	case EventLevelUp:
		return fmt.Sprintf("LEVEL UP! You've reached level %d!", e.Level)
	case EventAchievementUnlocked:
		return fmt.Sprintf("Achievement unlocked! %s: %s", e.Title, e.Description)
	case EventReset:
		return "All progress has been reset. Start your quest anew!"
	default:
		return string(e.Kind)
	}
}
