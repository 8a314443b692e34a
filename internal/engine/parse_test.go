package engine

import "testing"

func TestParseDifficulty(t *testing.T) {
	cases := map[string]Difficulty{"e": DifficultyEasy, " Medium ": DifficultyMedium, "med": DifficultyMedium, "H": DifficultyHard}
	for in, want := range cases {
		got, err := ParseDifficulty(in)
		if err != nil || got != want {
			t.Fatalf("ParseDifficulty(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParseDifficulty("legendary"); err == nil {
		t.Fatalf("expected error for unknown difficulty")
	}
}

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"":         DefaultCategory,
		"work":     CategoryWork,
		"job":      CategoryWork,
		"Home":     CategoryPersonal,
		"fitness":  CategoryHealth,
		" study ":  CategoryLearning,
		"LEARNING": CategoryLearning,
		"personal": CategoryPersonal,
	}
	for in, want := range cases {
		got, err := ParseCategory(in)
		if err != nil || got != want {
			t.Fatalf("ParseCategory(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParseCategory("chores"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}
