package engine

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Category is descriptive only; it never affects rewards.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategoryLearning:
		return true
	default:
		return false
	}
}

// DefaultCategory is used when user input is missing.
const DefaultCategory = CategoryPersonal

type RequirementType string

const (
	RequirementTasksCompleted RequirementType = "tasks_completed"
	RequirementStreakDays     RequirementType = "streak_days"
	RequirementXPEarned       RequirementType = "xp_earned"
	RequirementLevelReached   RequirementType = "level_reached"
)
