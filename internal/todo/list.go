package todo

import (
	"slices"

	"github.com/google/uuid"
)

// List is the ordered task collection. A task's position is its index plus
// one; removing a task shifts every later task down by one.
type List struct {
	tasks []Task
}

// NewList returns a list holding a copy of tasks in order.
func NewList(tasks []Task) *List {
	return &List{tasks: slices.Clone(tasks)}
}

// Add appends t and returns its position.
func (l *List) Add(t Task) int {
	l.tasks = append(l.tasks, t)
	return len(l.tasks)
}

// Get returns the task at pos.
func (l *List) Get(pos int) (Task, error) {
	if err := l.check(pos); err != nil {
		return Task{}, err
	}
	return l.tasks[pos-1], nil
}

// IndexOf returns the position of the task with the given ID.
func (l *List) IndexOf(id uuid.UUID) (int, error) {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i + 1, nil
		}
	}
	return 0, ErrNotFound
}

// SetDone sets the done flag of the task at pos.
func (l *List) SetDone(pos int, done bool) error {
	if err := l.check(pos); err != nil {
		return err
	}
	l.tasks[pos-1].Done = done
	return nil
}

// Remove deletes the task at pos and returns it.
func (l *List) Remove(pos int) (Task, error) {
	if err := l.check(pos); err != nil {
		return Task{}, err
	}
	t := l.tasks[pos-1]
	l.tasks = slices.Delete(l.tasks, pos-1, pos)
	return t, nil
}

// Count returns the number of tasks.
func (l *List) Count() int {
	return len(l.tasks)
}

// All returns a copy of the tasks in order.
func (l *List) All() []Task {
	return slices.Clone(l.tasks)
}

// Clone returns an independent copy of the list.
func (l *List) Clone() *List {
	return NewList(l.tasks)
}

func (l *List) check(pos int) error {
	if pos < 1 || pos > len(l.tasks) {
		return &IndexError{Position: pos, Count: len(l.tasks)}
	}
	return nil
}
