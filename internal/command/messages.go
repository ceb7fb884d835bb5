package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MihkelHunter/kif/internal/date"
	"github.com/MihkelHunter/kif/internal/todo"
)

// FailurePrefix starts every failure reply.
const FailurePrefix = "OOPS!!! "

// Greeting is shown when a session starts.
func Greeting() string {
	return "Hello! I'm Kif\nWhat can I do for you?"
}

func goodbyeMessage() string {
	return "Bye. Hope to see you again soon!"
}

func countLine(n int) string {
	if n == 1 {
		return "Now you have 1 task in the list."
	}
	return fmt.Sprintf("Now you have %d tasks in the list.", n)
}

func addedMessage(t todo.Task, count int) string {
	return fmt.Sprintf("Got it. I've added this task:\n  %s\n%s", t, countLine(count))
}

func markedMessage(t todo.Task) string {
	return fmt.Sprintf("Nice! I've marked this task as done:\n  %s", t)
}

func unmarkedMessage(t todo.Task) string {
	return fmt.Sprintf("OK, I've marked this task as not done yet:\n  %s", t)
}

func removedMessage(t todo.Task, count int) string {
	return fmt.Sprintf("Noted. I've removed this task:\n  %s\n%s", t, countLine(count))
}

func listMessage(tasks []todo.Task) string {
	if len(tasks) == 0 {
		return "Your list is empty."
	}
	var b strings.Builder
	b.WriteString("Here are the tasks in your list:")
	for i, t := range tasks {
		fmt.Fprintf(&b, "\n%d.%s", i+1, t)
	}
	return b.String()
}

func undoneMessage(u todo.Undone) string {
	var body string
	switch u.Op {
	case todo.OpMark:
		body = unmarkedMessage(u.Task)
	case todo.OpUnmark:
		body = markedMessage(u.Task)
	case todo.OpDelete:
		body = addedMessage(u.Task, u.Count)
	default:
		body = removedMessage(u.Task, u.Count)
	}
	return fmt.Sprintf("Undid the last %s.\n%s", u.Op, body)
}

// FailureMessage renders err as a reply. Every failure reply starts with FailurePrefix.
func FailureMessage(err error) string {
	var (
		ve *todo.ValidationError
		ie *todo.IndexError
		fe *date.FormatError
		pe *todo.PersistError
	)
	var msg string
	switch {
	case errors.As(err, &ve):
		msg = ve.Reason + "."
	case errors.As(err, &ie):
		msg = fmt.Sprintf("There is no task %d. %s", ie.Position, countLine(ie.Count))
	case errors.As(err, &fe):
		msg = fmt.Sprintf("%q is not a date. Please use yyyy-mm-dd, e.g. 2025-03-03.", fe.Input)
	case errors.As(err, &pe):
		msg = fmt.Sprintf("I could not save your tasks: %v", pe.Err)
	case errors.Is(err, todo.ErrNothingToUndo):
		msg = "There is nothing to undo."
	case errors.Is(err, todo.ErrNotFound):
		msg = "That task is no longer in your list."
	case errors.Is(err, ErrUnknownCommand):
		msg = "I'm sorry, but I don't know what that means :-("
	default:
		msg = err.Error()
	}
	return FailurePrefix + msg
}
