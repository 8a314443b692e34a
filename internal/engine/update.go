package engine

import (
	"fmt"

	"taskquest/internal/storage"
)

// UpdateTask replaces the editable fields of task id. Identity, completion
// state, timestamps and the XP reward are kept: changing the difficulty
// after creation does not change the reward.
func (s State) UpdateTask(id string, in TaskInput) (State, storage.Task, []Event, error) {
	i := s.indexOf(id)
	if i < 0 {
		return s, storage.Task{}, nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	in, err := in.normalize()
	if err != nil {
		return s, storage.Task{}, nil, err
	}

	next := s.Clone()
	t := next.Tasks[i]
	t.Title = in.Title
	t.Description = in.Description
	t.Difficulty = string(in.Difficulty)
	t.Category = string(in.Category)
	t.Photo = in.Photo
	t.Audio = in.Audio
	next.Tasks[i] = t

	return next, t, []Event{{Kind: EventQuestUpdated, TaskID: t.ID, Title: t.Title}}, nil
}

// InputFromTask returns the editable fields of t, for callers that change a
// subset of them.
func InputFromTask(t storage.Task) TaskInput {
	return TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Difficulty:  Difficulty(t.Difficulty),
		Category:    Category(t.Category),
		Photo:       t.Photo,
		Audio:       t.Audio,
	}
}
