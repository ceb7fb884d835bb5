package ui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/kif/internal/command"
	"github.com/MihkelHunter/kif/internal/store"
	"github.com/MihkelHunter/kif/internal/todo"
)

func newTestEngine(t *testing.T) *command.Engine {
	t.Helper()
	fs, err := store.NewFile(filepath.Join(t.TempDir(), "tasks.txt"))
	require.NoError(t, err)
	svc, err := todo.NewService(fs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return command.New(svc)
}

func TestConsoleSession(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	in := strings.NewReader("todo Buy milk\n\n   \nlist\nbye\ntodo never\n")
	var out bytes.Buffer
	require.NoError(t, RunConsole(in, &out, e))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, divider+"\n Hello! I'm Kif\n"), text)
	assert.Contains(t, text, " Got it. I've added this task:\n   [T][ ] Buy milk\n")
	assert.Contains(t, text, " Here are the tasks in your list:\n 1.[T][ ] Buy milk\n")
	assert.True(t, strings.HasSuffix(text, " Bye. Hope to see you again soon!\n"+divider+"\n"), text)
	assert.NotContains(t, text, "never")
	assert.Equal(t, 1, e.Service().Count())
	assert.Equal(t, 8, strings.Count(text, divider), "four framed replies")
}

func TestConsoleStopsAtEndOfInput(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	var out bytes.Buffer
	require.NoError(t, RunConsole(strings.NewReader("blah"), &out, e))
	assert.Contains(t, out.String(), command.FailurePrefix)
}

func TestIsTTYRejectsBuffers(t *testing.T) {
	t.Parallel()

	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func TestTUISubmitRunsCommand(t *testing.T) {
	t.Parallel()

	m := newTUIModel(newTestEngine(t))
	assert.Contains(t, m.View(), "What can I do for you?")

	m.input.SetValue("todo A")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.input.Value())
	require.Len(t, m.history, 1)
	assert.Contains(t, m.View(), "[T][ ] A")

	m.input.SetValue("mark 9")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.history, 2)
	assert.True(t, m.history[1].reply.Failed())

	m.input.SetValue("   ")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, m.history, 2)
}

func TestTUIQuitsOnBye(t *testing.T) {
	t.Parallel()

	m := newTUIModel(newTestEngine(t))
	m.input.SetValue("bye")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.done)
	assert.NotContains(t, m.View(), "enter: run")
}

func TestTUIKeepsRecentHistory(t *testing.T) {
	t.Parallel()

	m := newTUIModel(newTestEngine(t))
	for range transcriptLimit + 5 {
		m.input.SetValue("list")
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	assert.Len(t, m.history, transcriptLimit)
}
