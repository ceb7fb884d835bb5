package command

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/MihkelHunter/kif/internal/date"
	"github.com/MihkelHunter/kif/internal/todo"
)

// Reply is the outcome of one input line. Exactly one of a success text or
// a failure text is produced; Err is set for failures.
type Reply struct {
	Text string
	Err  error
	Exit bool
}

// Failed reports whether the command was rejected.
func (r Reply) Failed() bool {
	return r.Err != nil
}

// Engine dispatches commands to a todo.Service and renders the replies.
type Engine struct {
	svc *todo.Service
}

// New returns an engine over svc.
func New(svc *todo.Service) *Engine {
	return &Engine{svc: svc}
}

// Service returns the underlying session.
func (e *Engine) Service() *todo.Service {
	return e.svc
}

// Handle parses and runs one input line.
func (e *Engine) Handle(line string) Reply {
	cmd, err := Parse(line)
	if err != nil {
		log.Debug().Err(err).Str("line", line).Msg("rejected input")
		return Reply{Text: FailureMessage(err), Err: err}
	}
	return e.Execute(cmd)
}

// Execute runs a parsed command.
func (e *Engine) Execute(cmd Command) Reply {
	var (
		text string
		err  error
	)
	switch cmd.Name {
	case NameList:
		text = e.List()
	case NameMark:
		text, err = e.Mark(cmd.Position)
	case NameUnmark:
		text, err = e.Unmark(cmd.Position)
	case NameTodo:
		text, err = e.Todo(cmd.Description)
	case NameDeadline:
		text, err = e.Deadline(cmd.Description, cmd.By)
	case NameEvent:
		text, err = e.Event(cmd.Description, cmd.From, cmd.To)
	case NameDelete:
		text, err = e.Delete(cmd.Position)
	case NameUndo:
		text, err = e.Undo()
	case NameBye:
		return Reply{Text: e.Bye(), Exit: true}
	default:
		err = fmt.Errorf("%q: %w", cmd.Name, ErrUnknownCommand)
	}
	if err != nil {
		log.Debug().Err(err).Str("command", string(cmd.Name)).Msg("command failed")
		return Reply{Text: FailureMessage(err), Err: err}
	}
	return Reply{Text: text}
}

func (e *Engine) List() string {
	return listMessage(e.svc.List())
}

func (e *Engine) Mark(pos int) (string, error) {
	t, err := e.svc.Mark(pos)
	if err != nil {
		return "", err
	}
	return markedMessage(t), nil
}

func (e *Engine) Unmark(pos int) (string, error) {
	t, err := e.svc.Unmark(pos)
	if err != nil {
		return "", err
	}
	return unmarkedMessage(t), nil
}

func (e *Engine) Todo(description string) (string, error) {
	t, err := todo.NewPlain(description)
	if err != nil {
		return "", err
	}
	return e.add(t)
}

// Deadline parses by as yyyy-mm-dd before creating the task.
func (e *Engine) Deadline(description, by string) (string, error) {
	due, err := date.Parse(by)
	if err != nil {
		return "", err
	}
	t, err := todo.NewDeadline(description, due)
	if err != nil {
		return "", err
	}
	return e.add(t)
}

func (e *Engine) Event(description, from, to string) (string, error) {
	t, err := todo.NewTimeRange(description, from, to)
	if err != nil {
		return "", err
	}
	return e.add(t)
}

func (e *Engine) Delete(pos int) (string, error) {
	t, err := e.svc.Delete(pos)
	if err != nil {
		return "", err
	}
	return removedMessage(t, e.svc.Count()), nil
}

func (e *Engine) Undo() (string, error) {
	u, err := e.svc.Undo()
	if err != nil {
		return "", err
	}
	return undoneMessage(u), nil
}

// Bye ends the session. A following undo is rejected.
func (e *Engine) Bye() string {
	e.svc.Exit()
	return goodbyeMessage()
}

func (e *Engine) add(t todo.Task) (string, error) {
	if _, err := e.svc.Add(t); err != nil {
		return "", err
	}
	return addedMessage(t, e.svc.Count()), nil
}
