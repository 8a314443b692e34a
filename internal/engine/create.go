package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"taskquest/internal/storage"
)

var validate = validator.New()

// TaskInput carries the user-editable fields of a task. It is used for both
// creation and edits.
type TaskInput struct {
	Title       string     `validate:"required,max=200"`
	Description string     `validate:"max=2000"`
	Difficulty  Difficulty `validate:"required,oneof=easy medium hard"`
	Category    Category   `validate:"required,oneof=work personal health learning"`
	Photo       string
	Audio       string
}

func (in TaskInput) normalize() (TaskInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Category == "" {
		in.Category = DefaultCategory
	}
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return TaskInput{}, toValidationError(fieldErrs[0])
		}
		return TaskInput{}, err
	}
	return in, nil
}

func toValidationError(fe validator.FieldError) ValidationError {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return ValidationError{Field: field, Reason: "is required"}
	case "oneof":
		return ValidationError{Field: field, Reason: fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))}
	case "max":
		return ValidationError{Field: field, Reason: fmt.Sprintf("must be at most %s characters", fe.Param())}
	default:
		return ValidationError{Field: field, Reason: fe.Tag()}
	}
}

// AddTask prepends a new incomplete task. The reward is derived from the
// difficulty once, here, and never recomputed.
func (s State) AddTask(in TaskInput, id string, now time.Time) (State, storage.Task, []Event, error) {
	in, err := in.normalize()
	if err != nil {
		return s, storage.Task{}, nil, err
	}
	if strings.TrimSpace(id) == "" {
		return s, storage.Task{}, nil, ValidationError{Field: "id", Reason: "is required"}
	}
	if s.indexOf(id) >= 0 {
		return s, storage.Task{}, nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	reward, err := XPRewardFor(in.Difficulty)
	if err != nil {
		return s, storage.Task{}, nil, err
	}

	task := storage.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Difficulty:  string(in.Difficulty),
		Category:    string(in.Category),
		Completed:   false,
		CreatedAt:   now,
		XPReward:    reward,
		Photo:       in.Photo,
		Audio:       in.Audio,
	}

	next := s.Clone()
	next.Tasks = append([]storage.Task{task}, next.Tasks...)

	events := []Event{{
		Kind:        EventQuestCreated,
		TaskID:      task.ID,
		Title:       task.Title,
		Description: string(in.Difficulty),
		XP:          reward,
	}}
	return next, task, events, nil
}
