package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no task carries the requested ID.
	ErrNotFound = errors.New("task not found")
	// ErrNothingToUndo is returned when the undo slot holds nothing reversible.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// ValidationError reports an empty or malformed command argument.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return e.Reason
}

// IndexError reports a position outside 1..Count.
type IndexError struct {
	Position int
	Count    int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("position %d out of range (1..%d)", e.Position, e.Count)
}

// PersistError wraps a failed write of the task list. The in-memory list is
// left as it was before the command.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("save tasks: %v", e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *PersistError) Unwrap() error {
	return e.Err
}
