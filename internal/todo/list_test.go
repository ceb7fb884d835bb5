package todo

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPlain(t *testing.T, desc string) Task {
	t.Helper()
	task, err := NewPlain(desc)
	require.NoError(t, err)
	return task
}

func TestListPreservesOrder(t *testing.T) {
	t.Parallel()

	l := NewList(nil)
	var want []Task
	for _, d := range []string{"a", "b", "c", "d", "e"} {
		task := mustPlain(t, d)
		pos := l.Add(task)
		want = append(want, task)
		assert.Equal(t, len(want), pos)
	}

	_, err := l.Remove(2)
	require.NoError(t, err)
	want = append(want[:1], want[2:]...)
	_, err = l.Remove(4)
	require.NoError(t, err)
	want = want[:3]

	require.Equal(t, len(want), l.Count())
	for i := range want {
		got, err := l.Get(i + 1)
		require.NoError(t, err)
		assert.Equal(t, want[i].ID, got.ID, "position %d", i+1)
	}
}

func TestListRemoveShiftsPositions(t *testing.T) {
	t.Parallel()

	a, b, c := mustPlain(t, "A"), mustPlain(t, "B"), mustPlain(t, "C")
	l := NewList([]Task{a, b, c})

	removed, err := l.Remove(2)
	require.NoError(t, err)
	assert.Equal(t, b.ID, removed.ID)

	got, err := l.Get(2)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	pos, err := l.IndexOf(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, pos)
}

func TestListOutOfRange(t *testing.T) {
	t.Parallel()

	l := NewList([]Task{mustPlain(t, "only")})
	for _, pos := range []int{-1, 0, 2} {
		_, err := l.Get(pos)
		var ie *IndexError
		require.True(t, errors.As(err, &ie), "Get(%d) error = %v", pos, err)
		assert.Equal(t, pos, ie.Position)
		assert.Equal(t, 1, ie.Count)

		assert.Error(t, l.SetDone(pos, true))
		_, err = l.Remove(pos)
		assert.Error(t, err)
	}
	assert.Equal(t, 1, l.Count())
}

func TestListIndexOfUsesIdentity(t *testing.T) {
	t.Parallel()

	a := mustPlain(t, "same")
	b := mustPlain(t, "same")
	l := NewList([]Task{a, b})

	pos, err := l.IndexOf(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, pos)

	_, err = l.IndexOf(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSetDoneIdempotent(t *testing.T) {
	t.Parallel()

	l := NewList([]Task{mustPlain(t, "x")})
	require.NoError(t, l.SetDone(1, true))
	require.NoError(t, l.SetDone(1, true))
	got, err := l.Get(1)
	require.NoError(t, err)
	assert.True(t, got.Done)
}

func TestListCloneIsIndependent(t *testing.T) {
	t.Parallel()

	l := NewList([]Task{mustPlain(t, "x")})
	c := l.Clone()
	require.NoError(t, c.SetDone(1, true))
	c.Add(mustPlain(t, "y"))

	got, err := l.Get(1)
	require.NoError(t, err)
	assert.False(t, got.Done)
	assert.Equal(t, 1, l.Count())
}
