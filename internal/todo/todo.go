// Package todo defines the task model, the ordered task list and the service
// that applies commands to it. The Repository interface lets the service run
// against the line file or SQLite without either leaking into this package.
package todo

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MihkelHunter/kif/internal/date"
)

// Kind is the task variant. It fixes which extra fields a Task carries.
type Kind int

const (
	KindPlain Kind = iota + 1
	KindDeadline
	KindTimeRange
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindTimeRange:
		return "event"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Tag is the one-letter marker shown in listings.
func (k Kind) Tag() string {
	switch k {
	case KindDeadline:
		return "D"
	case KindTimeRange:
		return "E"
	default:
		return "T"
	}
}

// Task is the central domain object.
//
// ID is assigned when the task is constructed and is never persisted; it
// identifies the task while positions shift underneath it.
type Task struct {
	ID          uuid.UUID
	Kind        Kind
	Description string
	Done        bool

	Due   date.Date // KindDeadline
	Start string    // KindTimeRange
	End   string    // KindTimeRange
}

// NewPlain builds a task with only a description.
func NewPlain(description string) (Task, error) {
	desc, err := requireText("description", description)
	if err != nil {
		return Task{}, err
	}
	return Task{ID: uuid.New(), Kind: KindPlain, Description: desc}, nil
}

// NewDeadline builds a task due on the given day.
func NewDeadline(description string, due date.Date) (Task, error) {
	desc, err := requireText("description", description)
	if err != nil {
		return Task{}, err
	}
	if due.IsZero() {
		return Task{}, &ValidationError{Field: "by", Reason: "a deadline needs a date"}
	}
	return Task{ID: uuid.New(), Kind: KindDeadline, Description: desc, Due: due}, nil
}

// NewTimeRange builds a task spanning start to end. Both bounds are free text.
func NewTimeRange(description, start, end string) (Task, error) {
	desc, err := requireText("description", description)
	if err != nil {
		return Task{}, err
	}
	from, err := requireText("from", start)
	if err != nil {
		return Task{}, err
	}
	to, err := requireText("to", end)
	if err != nil {
		return Task{}, err
	}
	return Task{ID: uuid.New(), Kind: KindTimeRange, Description: desc, Start: from, End: to}, nil
}

func requireText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: field, Reason: fmt.Sprintf("the %s cannot be empty", field)}
	}
	return s, nil
}

// Recreate returns a not-done copy of t under a fresh ID.
func (t Task) Recreate() Task {
	c := t
	c.ID = uuid.New()
	c.Done = false
	return c
}

// Equivalent reports whether t and o hold the same values, ignoring identity.
func (t Task) Equivalent(o Task) bool {
	return t.Kind == o.Kind &&
		t.Description == o.Description &&
		t.Done == o.Done &&
		t.Due == o.Due &&
		t.Start == o.Start &&
		t.End == o.End
}

func (t Task) statusIcon() string {
	if t.Done {
		return "X"
	}
	return " "
}

// String renders the task the way listings show it, e.g. "[D][ ] report (by: Mar 03 2025)".
func (t Task) String() string {
	base := fmt.Sprintf("[%s][%s] %s", t.Kind.Tag(), t.statusIcon(), t.Description)
	switch t.Kind {
	case KindDeadline:
		return fmt.Sprintf("%s (by: %s)", base, t.Due.Display())
	case KindTimeRange:
		return fmt.Sprintf("%s (from: %s to: %s)", base, t.Start, t.End)
	default:
		return base
	}
}

// Repository is the storage contract. Save always receives the full list in
// order and replaces whatever was stored before.
type Repository interface {
	Load() ([]Task, error)
	Save(tasks []Task) error
	Close() error
}
