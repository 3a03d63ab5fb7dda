package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func timePtr(h, min int) *time.Time {
	t := time.Date(0, 1, 1, h, min, 0, 0, time.Local)
	return &t
}

func TestNote_SetReminder(t *testing.T) {
	t.Run("both set arms the note", func(t *testing.T) {
		n := &Note{Content: "Buy milk", Status: StatusNoTasks, ReminderFired: true}

		err := n.SetReminder(datePtr(2024, time.June, 1), timePtr(9, 0))
		require.NoError(t, err)

		assert.True(t, n.HasReminder())
		assert.True(t, n.ReminderArmed())
		assert.False(t, n.ReminderFired)
		assert.Equal(t, StatusPending, n.Status)
	})

	t.Run("one nil is rejected and changes nothing", func(t *testing.T) {
		n := &Note{Content: "Buy milk"}
		require.NoError(t, n.SetReminder(datePtr(2024, time.June, 1), timePtr(9, 0)))
		before := *n

		err := n.SetReminder(datePtr(2024, time.June, 2), nil)
		assert.ErrorIs(t, err, ErrInvalidReminder)
		assert.Equal(t, before, *n)

		err = n.SetReminder(nil, timePtr(10, 0))
		assert.ErrorIs(t, err, ErrInvalidReminder)
		assert.Equal(t, before, *n)
	})

	t.Run("both nil clears the reminder", func(t *testing.T) {
		n := &Note{Content: "Buy milk"}
		require.NoError(t, n.SetReminder(datePtr(2024, time.June, 1), timePtr(9, 0)))
		n.ReminderFired = true

		require.NoError(t, n.SetReminder(nil, nil))

		assert.False(t, n.HasReminder())
		assert.False(t, n.ReminderArmed())
		assert.False(t, n.ReminderFired)
		assert.Equal(t, StatusNoTasks, n.Status)
	})

	t.Run("setting a new reminder re-arms a fired note", func(t *testing.T) {
		n := &Note{Content: "Buy milk"}
		require.NoError(t, n.SetReminder(datePtr(2024, time.June, 1), timePtr(9, 0)))
		n.ReminderFired = true
		n.Status = StatusCompleted

		require.NoError(t, n.SetReminder(datePtr(2024, time.June, 2), timePtr(9, 0)))

		assert.True(t, n.ReminderArmed())
		assert.Equal(t, StatusPending, n.Status)
	})
}

func TestNote_ReminderInstant(t *testing.T) {
	n := &Note{}
	assert.True(t, n.ReminderInstant().IsZero())

	require.NoError(t, n.SetReminder(datePtr(2024, time.June, 1), timePtr(9, 30)))
	want := time.Date(2024, time.June, 1, 9, 30, 0, 0, time.Local)
	assert.Equal(t, want, n.ReminderInstant())
}

func TestNote_FormattedReminder(t *testing.T) {
	n := &Note{}
	assert.Equal(t, "No reminder set", n.FormattedReminder())

	require.NoError(t, n.SetReminder(datePtr(2024, time.June, 1), timePtr(9, 5)))
	assert.Equal(t, "Jun 1, 2024 09:05 AM", n.FormattedReminder())
}

func TestNote_TaskStatus(t *testing.T) {
	n := &Note{}
	assert.Equal(t, StatusNoTasks, n.TaskStatus())

	n.Tasks = []Task{{Description: "a", Completed: true}, {Description: "b"}}
	assert.Equal(t, StatusPending, n.TaskStatus())

	n.Tasks[1].Completed = true
	assert.Equal(t, StatusCompleted, n.TaskStatus())
}

func TestNote_DisplayStatus(t *testing.T) {
	n := &Note{Tasks: []Task{{Description: "a", Completed: true}}}
	assert.Equal(t, StatusCompleted, n.DisplayStatus())

	// An armed reminder overrides the task-derived status.
	require.NoError(t, n.SetReminder(datePtr(2030, time.January, 1), timePtr(0, 0)))
	assert.Equal(t, StatusPending, n.DisplayStatus())

	n.ReminderFired = true
	assert.Equal(t, StatusCompleted, n.DisplayStatus())

	n.ClearReminder()
	assert.Equal(t, StatusCompleted, n.DisplayStatus())
}
