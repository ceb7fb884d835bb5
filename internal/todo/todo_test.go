package todo

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/kif/internal/date"
)

func TestConstructorsTrimAndValidate(t *testing.T) {
	t.Parallel()

	task, err := NewPlain("  Buy milk ")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Description)
	assert.Equal(t, KindPlain, task.Kind)
	assert.False(t, task.Done)

	_, err = NewPlain("   ")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "description", ve.Field)

	_, err = NewDeadline("report", date.Date{})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "by", ve.Field)

	_, err = NewTimeRange("party", "Mon", " ")
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "to", ve.Field)
}

func TestTaskString(t *testing.T) {
	t.Parallel()

	plain, err := NewPlain("read book")
	require.NoError(t, err)
	assert.Equal(t, "[T][ ] read book", plain.String())

	dl, err := NewDeadline("Submit report", date.New(2025, time.March, 3))
	require.NoError(t, err)
	dl.Done = true
	assert.Equal(t, "[D][X] Submit report (by: Mar 03 2025)", dl.String())

	ev, err := NewTimeRange("Birthday Party", "Monday", "Sunday")
	require.NoError(t, err)
	assert.Equal(t, "[E][ ] Birthday Party (from: Monday to: Sunday)", ev.String())
}

func TestRecreate(t *testing.T) {
	t.Parallel()

	orig, err := NewTimeRange("meet", "2pm", "4pm")
	require.NoError(t, err)
	orig.Done = true

	c := orig.Recreate()
	assert.NotEqual(t, orig.ID, c.ID)
	assert.False(t, c.Done)
	c.Done = true
	assert.True(t, orig.Equivalent(c))
}
