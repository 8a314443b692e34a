package engine

import (
	"fmt"
	"strings"
)

// ParseDifficulty parses user input to a Difficulty.
// Accepts names and the short forms e/m/h.
func ParseDifficulty(input string) (Difficulty, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "e", "easy":
		return DifficultyEasy, nil
	case "m", "med", "medium":
		return DifficultyMedium, nil
	case "h", "hard":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("invalid difficulty: %q", input)
	}
}

// ParseCategory parses user input to a Category.
// Empty input returns DefaultCategory.
func ParseCategory(input string) (Category, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return DefaultCategory, nil
	case "job":
		s = string(CategoryWork)
	case "home":
		s = string(CategoryPersonal)
	case "fitness":
		s = string(CategoryHealth)
	case "study":
		s = string(CategoryLearning)
	}
	if c := Category(s); c.IsValid() {
		return c, nil
	}
	return "", fmt.Errorf("invalid category: %q", input)
}
