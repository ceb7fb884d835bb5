package todo

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Op names the command that last touched the undo slot.
type Op int

const (
	OpNone Op = iota
	OpList
	OpMark
	OpUnmark
	OpTodo
	OpDeadline
	OpEvent
	OpDelete
	OpUndo
	OpBye
)

var opNames = [...]string{
	OpNone:     "none",
	OpList:     "list",
	OpMark:     "mark",
	OpUnmark:   "unmark",
	OpTodo:     "todo",
	OpDeadline: "deadline",
	OpEvent:    "event",
	OpDelete:   "delete",
	OpUndo:     "undo",
	OpBye:      "bye",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("op(%d)", int(o))
	}
	return opNames[o]
}

func opForKind(k Kind) Op {
	switch k {
	case KindDeadline:
		return OpDeadline
	case KindTimeRange:
		return OpEvent
	default:
		return OpTodo
	}
}

// undoSlot remembers the last command and the task it affected. hasTask is
// false after list, undo and bye, which leaves nothing to reverse.
type undoSlot struct {
	op      Op
	task    Task
	hasTask bool
}

// Undone describes a reversed command.
type Undone struct {
	Op    Op   // command that was reversed
	Task  Task // task after the reversal; for a reversed creation, the removed task
	Count int  // tasks in the list afterwards
}

// Option configures a Service.
type Option func(*Service)

// WithListClearsUndo controls whether listing forgets the pending undo.
// It defaults to true.
func WithListClearsUndo(clears bool) Option {
	return func(s *Service) {
		s.listClearsUndo = clears
	}
}

// Service wraps the repository and holds the session state: the task list
// and the single-slot undo memory. It is not safe for concurrent use.
//
// Every mutation is applied to a clone of the list, saved, and only then
// committed, so a failed save leaves memory, disk and the undo slot untouched.
type Service struct {
	repo           Repository
	list           *List
	last           undoSlot
	listClearsUndo bool
}

// NewService loads the stored tasks and returns a session over them.
func NewService(repo Repository, opts ...Option) (*Service, error) {
	tasks, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	s := &Service{
		repo:           repo,
		list:           NewList(tasks),
		listClearsUndo: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	log.Debug().Int("count", s.list.Count()).Msg("tasks loaded")
	return s, nil
}

// Tasks returns the current tasks without touching the undo slot.
func (s *Service) Tasks() []Task {
	return s.list.All()
}

// Count returns the number of tasks.
func (s *Service) Count() int {
	return s.list.Count()
}

// LastOp returns the command currently held in the undo slot.
func (s *Service) LastOp() Op {
	return s.last.op
}

// List returns the current tasks as the list command.
func (s *Service) List() []Task {
	if s.listClearsUndo {
		s.last = undoSlot{op: OpList}
	}
	return s.list.All()
}

// Mark sets the task at pos done.
func (s *Service) Mark(pos int) (Task, error) {
	t, err := s.setDone(pos, true)
	if err != nil {
		return Task{}, err
	}
	s.remember(OpMark, t)
	return t, nil
}

// Unmark sets the task at pos not done.
func (s *Service) Unmark(pos int) (Task, error) {
	t, err := s.setDone(pos, false)
	if err != nil {
		return Task{}, err
	}
	s.remember(OpUnmark, t)
	return t, nil
}

// Add appends a task built by one of the New constructors and returns its position.
func (s *Service) Add(t Task) (int, error) {
	switch t.Kind {
	case KindPlain, KindDeadline, KindTimeRange:
	default:
		return 0, &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown task kind %d", int(t.Kind))}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	pos, err := s.add(t)
	if err != nil {
		return 0, err
	}
	s.remember(opForKind(t.Kind), t)
	return pos, nil
}

// Delete removes the task at pos and returns it.
func (s *Service) Delete(pos int) (Task, error) {
	t, err := s.remove(pos)
	if err != nil {
		return Task{}, err
	}
	s.remember(OpDelete, t)
	return t, nil
}

// Exit records the end of the session; a following undo is rejected.
func (s *Service) Exit() {
	s.last = undoSlot{op: OpBye}
}

// Undo reverses the last mutating command. Only one level is kept: after a
// successful undo the slot holds OpUndo and a second undo returns
// ErrNothingToUndo.
func (s *Service) Undo() (Undone, error) {
	if !s.last.hasTask {
		return Undone{}, ErrNothingToUndo
	}

	var (
		u   Undone
		err error
	)
	switch s.last.op {
	case OpMark:
		u, err = s.undoDone(false)
	case OpUnmark:
		u, err = s.undoDone(true)
	case OpTodo, OpDeadline, OpEvent:
		u, err = s.undoCreate()
	case OpDelete:
		u, err = s.undoDelete()
	default:
		return Undone{}, ErrNothingToUndo
	}
	if err != nil {
		return Undone{}, err
	}

	log.Debug().Stringer("op", u.Op).Int("count", u.Count).Msg("undone")
	s.last = undoSlot{op: OpUndo}
	return u, nil
}

// Close releases the repository.
func (s *Service) Close() error {
	return s.repo.Close()
}

func (s *Service) undoDone(done bool) (Undone, error) {
	op := s.last.op
	pos, err := s.list.IndexOf(s.last.task.ID)
	if err != nil {
		return Undone{}, err
	}
	t, err := s.setDone(pos, done)
	if err != nil {
		return Undone{}, err
	}
	return Undone{Op: op, Task: t, Count: s.list.Count()}, nil
}

func (s *Service) undoCreate() (Undone, error) {
	op := s.last.op
	pos, err := s.list.IndexOf(s.last.task.ID)
	if err != nil {
		return Undone{}, err
	}
	t, err := s.remove(pos)
	if err != nil {
		return Undone{}, err
	}
	return Undone{Op: op, Task: t, Count: s.list.Count()}, nil
}

// undoDelete re-adds an equivalent of the removed task at the end of the
// list, then restores its done flag as a second saved step.
func (s *Service) undoDelete() (Undone, error) {
	removed := s.last.task
	restored := removed.Recreate()
	pos, err := s.add(restored)
	if err != nil {
		return Undone{}, err
	}
	if removed.Done {
		t, err := s.setDone(pos, true)
		if err != nil {
			// the task is back but not done; the undo itself has happened
			s.last = undoSlot{op: OpUndo}
			return Undone{}, err
		}
		restored = t
	}
	return Undone{Op: OpDelete, Task: restored, Count: s.list.Count()}, nil
}

func (s *Service) setDone(pos int, done bool) (Task, error) {
	next := s.list.Clone()
	if err := next.SetDone(pos, done); err != nil {
		return Task{}, err
	}
	if err := s.commit(next); err != nil {
		return Task{}, err
	}
	return next.Get(pos)
}

func (s *Service) add(t Task) (int, error) {
	next := s.list.Clone()
	pos := next.Add(t)
	if err := s.commit(next); err != nil {
		return 0, err
	}
	return pos, nil
}

func (s *Service) remove(pos int) (Task, error) {
	next := s.list.Clone()
	t, err := next.Remove(pos)
	if err != nil {
		return Task{}, err
	}
	if err := s.commit(next); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Service) commit(next *List) error {
	if err := s.repo.Save(next.All()); err != nil {
		log.Error().Err(err).Msg("save tasks")
		return &PersistError{Err: err}
	}
	s.list = next
	return nil
}

func (s *Service) remember(op Op, t Task) {
	s.last = undoSlot{op: op, task: t, hasTask: true}
}
