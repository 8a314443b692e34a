package engine

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrDuplicateID  = errors.New("task id already exists")
	ErrAmbiguousID  = errors.New("task id prefix is ambiguous")
)

// ValidationError indicates rejected command input. No state was changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
