package command

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/kif/internal/date"
	"github.com/MihkelHunter/kif/internal/store"
	"github.com/MihkelHunter/kif/internal/todo"
)

func newTestEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.txt")
	fs, err := store.NewFile(path)
	require.NoError(t, err)
	svc, err := todo.NewService(fs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return New(svc), path
}

func run(t *testing.T, e *Engine, lines ...string) Reply {
	t.Helper()
	var r Reply
	for _, line := range lines {
		r = e.Handle(line)
	}
	return r
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestTodoIsSavedImmediately(t *testing.T) {
	t.Parallel()

	e, path := newTestEngine(t)
	r := e.Handle("todo Buy milk")
	require.False(t, r.Failed(), r.Text)
	assert.Equal(t, "Got it. I've added this task:\n  [T][ ] Buy milk\nNow you have 1 task in the list.", r.Text)

	tasks := e.Service().Tasks()
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Done)
	assert.Equal(t, "false|Buy milk\n", readFile(t, path))
}

func TestUndoDeadlineRemovesItFromFile(t *testing.T) {
	t.Parallel()

	e, path := newTestEngine(t)
	r := e.Handle("deadline Submit report /by 2025-03-03")
	require.False(t, r.Failed(), r.Text)
	assert.Contains(t, r.Text, "[D][ ] Submit report (by: Mar 03 2025)")
	assert.Equal(t, "false|Submit report|2025-03-03\n", readFile(t, path))

	r = e.Handle("undo")
	require.False(t, r.Failed(), r.Text)
	assert.True(t, strings.HasPrefix(r.Text, "Undid the last deadline.\nNoted. I've removed this task:"), r.Text)
	assert.Equal(t, 0, e.Service().Count())
	assert.Empty(t, readFile(t, path))
}

func TestUndoDeleteReaddsAtEnd(t *testing.T) {
	t.Parallel()

	e, path := newTestEngine(t)
	run(t, e, "todo A", "event B /from 1pm /to 2pm", "todo C", "mark 2")

	r := e.Handle("delete 2")
	require.False(t, r.Failed(), r.Text)
	assert.Equal(t, "C", e.Service().Tasks()[1].Description)

	r = e.Handle("undo")
	require.False(t, r.Failed(), r.Text)
	assert.Contains(t, r.Text, "[E][X] B (from: 1pm to: 2pm)")
	assert.Contains(t, r.Text, "Now you have 3 tasks in the list.")

	tasks := e.Service().Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "B", tasks[2].Description)
	assert.True(t, tasks[2].Done)
	assert.Equal(t, "false|A\nfalse|C\ntrue|B|1pm|2pm\n", readFile(t, path))
}

func TestMarkOnEmptyListLeavesUndoRejected(t *testing.T) {
	t.Parallel()

	e, path := newTestEngine(t)
	r := e.Handle("mark 1")
	require.True(t, r.Failed())
	var ie *todo.IndexError
	require.True(t, errors.As(r.Err, &ie), "error = %v", r.Err)
	assert.True(t, strings.HasPrefix(r.Text, FailurePrefix))

	r = e.Handle("undo")
	require.True(t, r.Failed())
	assert.ErrorIs(t, r.Err, todo.ErrNothingToUndo)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no save should have happened")
}

func TestSecondUndoIsRejected(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	run(t, e, "todo A", "todo B")

	r := e.Handle("undo")
	require.False(t, r.Failed(), r.Text)
	r = e.Handle("undo")
	require.True(t, r.Failed())
	assert.Equal(t, FailurePrefix+"There is nothing to undo.", r.Text)
	assert.Equal(t, 1, e.Service().Count())
}

func TestUndoMarkRestoresFlag(t *testing.T) {
	t.Parallel()

	e, path := newTestEngine(t)
	run(t, e, "todo A", "mark 1")
	assert.Equal(t, "true|A\n", readFile(t, path))

	r := e.Handle("undo")
	require.False(t, r.Failed(), r.Text)
	assert.Equal(t, "Undid the last mark.\nOK, I've marked this task as not done yet:\n  [T][ ] A", r.Text)
	assert.Equal(t, "false|A\n", readFile(t, path))
}

func TestFailedCommandsKeepUndo(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	run(t, e, "todo A")

	for _, line := range []string{"deadline x /by tomorrow", "delete 5", "nonsense", "event x"} {
		r := e.Handle(line)
		require.True(t, r.Failed(), line)
		assert.True(t, strings.HasPrefix(r.Text, FailurePrefix), r.Text)
	}
	assert.Equal(t, todo.OpTodo, e.Service().LastOp())

	r := e.Handle("undo")
	require.False(t, r.Failed(), r.Text)
	assert.Equal(t, 0, e.Service().Count())
}

func TestBadDateIsFormatError(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	r := e.Handle("deadline report /by 03/03/2025")
	require.True(t, r.Failed())
	var fe *date.FormatError
	require.True(t, errors.As(r.Err, &fe), "error = %v", r.Err)
	assert.Contains(t, r.Text, `"03/03/2025" is not a date`)
	assert.Equal(t, 0, e.Service().Count())
}

func TestListRendersPositions(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	assert.Equal(t, "Your list is empty.", e.Handle("list").Text)

	run(t, e, "todo A", "deadline B /by 2024-02-29", "mark 2")
	r := e.Handle("list")
	require.False(t, r.Failed())
	assert.Equal(t, "Here are the tasks in your list:\n1.[T][ ] A\n2.[D][X] B (by: Feb 29 2024)", r.Text)

	r = e.Handle("undo")
	assert.ErrorIs(t, r.Err, todo.ErrNothingToUndo)
}

func TestByeEndsSession(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	run(t, e, "todo A")
	r := e.Handle("bye")
	assert.True(t, r.Exit)
	assert.False(t, r.Failed())
	assert.Equal(t, "Bye. Hope to see you again soon!", r.Text)

	r = e.Handle("undo")
	assert.ErrorIs(t, r.Err, todo.ErrNothingToUndo)
}

func TestTasksSurviveRestart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.txt")
	fs, err := store.NewFile(path)
	require.NoError(t, err)
	svc, err := todo.NewService(fs)
	require.NoError(t, err)
	run(t, New(svc), "todo A | with pipe", "deadline B /by 2025-12-31", "event C /from x /to y", "mark 3")
	require.NoError(t, svc.Close())

	fs, err = store.NewFile(path)
	require.NoError(t, err)
	svc, err = todo.NewService(fs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	r := New(svc).Handle("list")
	assert.Equal(t, "Here are the tasks in your list:\n"+
		"1.[T][ ] A | with pipe\n"+
		"2.[D][ ] B (by: Dec 31 2025)\n"+
		"3.[E][X] C (from: x to: y)", r.Text)
}
