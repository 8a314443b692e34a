package engine

import (
	"strings"

	"taskquest/internal/storage"
)

// State is the whole application state. Commands never mutate a State in
// place: they return a new value and leave persistence to the caller.
type State struct {
	Tasks        []storage.Task
	Achievements []storage.Achievement
	Progress     storage.Progress
}

// NewState returns the fresh-install state.
func NewState() State {
	return State{
		Tasks:        []storage.Task{},
		Achievements: DefaultAchievements(),
		Progress:     DefaultProgress(),
	}
}

// Clone returns a copy whose slices do not alias s.
func (s State) Clone() State {
	tasks := make([]storage.Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	achievements := make([]storage.Achievement, len(s.Achievements))
	copy(achievements, s.Achievements)
	return State{Tasks: tasks, Achievements: achievements, Progress: s.Progress}
}

func (s State) indexOf(id string) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) FindTask(id string) (storage.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return storage.Task{}, false
	}
	return s.Tasks[i], true
}

// ResolveID maps an exact id or a unique id prefix to a task id.
func (s State) ResolveID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrTaskNotFound
	}
	if s.indexOf(ref) >= 0 {
		return ref, nil
	}
	match := ""
	for _, t := range s.Tasks {
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", ErrAmbiguousID
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", ErrTaskNotFound
	}
	return match, nil
}

// Pending returns incomplete tasks in collection order.
func (s State) Pending() []storage.Task {
	var out []storage.Task
	for _, t := range s.Tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Completed returns completed tasks in collection order.
func (s State) Completed() []storage.Task {
	var out []storage.Task
	for _, t := range s.Tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Reset returns the fresh-install state. Callers must obtain confirmation
// from the user before invoking it.
func (s State) Reset() (State, []Event) {
	return NewState(), []Event{{Kind: EventReset}}
}
