package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the persisted timestamp format: UTC, millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

type taskRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Difficulty  string  `json:"difficulty"`
	Category    string  `json:"category"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"createdAt"`
	CompletedAt *string `json:"completedAt,omitempty"`
	XPReward    int     `json:"xpReward"`
	Photo       string  `json:"photo,omitempty"`
	Audio       string  `json:"audio,omitempty"`
}

type requirementRecord struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

type achievementRecord struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	Unlocked    bool              `json:"unlocked"`
	UnlockedAt  *string           `json:"unlockedAt,omitempty"`
	Requirement requirementRecord `json:"requirement"`
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

func parseOptionalTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// EncodeTasks renders tasks as a JSON array.
func EncodeTasks(tasks []Task) (string, error) {
	out := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskRecord{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Difficulty:  t.Difficulty,
			Category:    t.Category,
			Completed:   t.Completed,
			CreatedAt:   FormatTime(t.CreatedAt),
			CompletedAt: formatOptionalTime(t.CompletedAt),
			XPReward:    t.XPReward,
			Photo:       t.Photo,
			Audio:       t.Audio,
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(data), nil
}

// DecodeTasks parses text produced by EncodeTasks. On malformed input it
// returns an empty, non-nil slice together with the error so callers can
// log it and carry on with empty state.
func DecodeTasks(text string) ([]Task, error) {
	if strings.TrimSpace(text) == "" {
		return []Task{}, nil
	}

	var records []taskRecord
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return []Task{}, fmt.Errorf("decode tasks: %w", err)
	}

	out := make([]Task, 0, len(records))
	for i, r := range records {
		createdAt, err := ParseTime(r.CreatedAt)
		if err != nil {
			return []Task{}, fmt.Errorf("decode tasks: task %d createdAt: %w", i, err)
		}
		completedAt, err := parseOptionalTime(r.CompletedAt)
		if err != nil {
			return []Task{}, fmt.Errorf("decode tasks: task %d completedAt: %w", i, err)
		}
		out = append(out, Task{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Difficulty:  r.Difficulty,
			Category:    r.Category,
			Completed:   r.Completed,
			CreatedAt:   createdAt,
			CompletedAt: completedAt,
			XPReward:    r.XPReward,
			Photo:       r.Photo,
			Audio:       r.Audio,
		})
	}
	return out, nil
}

func EncodeAchievements(achievements []Achievement) (string, error) {
	out := make([]achievementRecord, 0, len(achievements))
	for _, a := range achievements {
		out = append(out, achievementRecord{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			Unlocked:    a.Unlocked,
			UnlockedAt:  formatOptionalTime(a.UnlockedAt),
			Requirement: requirementRecord{Type: a.Requirement.Type, Value: a.Requirement.Value},
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode achievements: %w", err)
	}
	return string(data), nil
}

// DecodeAchievements mirrors DecodeTasks, including the fail-soft result.
func DecodeAchievements(text string) ([]Achievement, error) {
	if strings.TrimSpace(text) == "" {
		return []Achievement{}, nil
	}

	var records []achievementRecord
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return []Achievement{}, fmt.Errorf("decode achievements: %w", err)
	}

	out := make([]Achievement, 0, len(records))
	for i, r := range records {
		unlockedAt, err := parseOptionalTime(r.UnlockedAt)
		if err != nil {
			return []Achievement{}, fmt.Errorf("decode achievements: achievement %d unlockedAt: %w", i, err)
		}
		out = append(out, Achievement{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Icon:        r.Icon,
			Unlocked:    r.Unlocked,
			UnlockedAt:  unlockedAt,
			Requirement: Requirement{Type: r.Requirement.Type, Value: r.Requirement.Value},
		})
	}
	return out, nil
}
