package db

import (
	"time"
)

type Status string

const (
	StatusNoTasks   Status = "No Tasks"
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// Task is a single checklist entry on a note. Tasks are stored as a
// JSON array in the notes table.
type Task struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Note is a sticky note. A reminder is an optional (date, time) pair;
// both fields are set or both are nil, never one without the other.
type Note struct {
	ID            int64      `json:"id"`
	Content       string     `json:"content"`
	Color         string     `json:"color"`
	Date          time.Time  `json:"date"`
	Tasks         []Task     `json:"tasks"`
	ReminderDate  *time.Time `json:"reminder_date,omitempty"`
	ReminderTime  *time.Time `json:"reminder_time,omitempty"`
	Status        Status     `json:"status"`
	ReminderFired bool       `json:"reminder_fired"`
}

func (n *Note) HasReminder() bool {
	return n.ReminderDate != nil && n.ReminderTime != nil
}

// ReminderArmed reports whether the note's reminder is set and has not
// been fired yet. The scheduler only ever transitions armed notes.
func (n *Note) ReminderArmed() bool {
	return n.HasReminder() && !n.ReminderFired
}

// ReminderInstant combines the reminder date and time into a single
// instant in the local timezone. Zero value when no reminder is set.
func (n *Note) ReminderInstant() time.Time {
	if !n.HasReminder() {
		return time.Time{}
	}
	d, t := *n.ReminderDate, *n.ReminderTime
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local)
}

// SetReminder arms the note with a new reminder, resetting the fired
// flag and status so the scheduler will pick it up again. Passing nil
// for both clears the reminder; passing nil for exactly one is a
// contract violation and leaves the note unchanged.
func (n *Note) SetReminder(date, tm *time.Time) error {
	if date == nil && tm == nil {
		n.ClearReminder()
		return nil
	}
	if date == nil || tm == nil {
		return ErrInvalidReminder
	}
	n.ReminderDate = date
	n.ReminderTime = tm
	n.ReminderFired = false
	n.Status = StatusPending
	return nil
}

// ClearReminder removes the reminder and any armed/fired state.
func (n *Note) ClearReminder() {
	n.ReminderDate = nil
	n.ReminderTime = nil
	n.ReminderFired = false
	n.Status = n.TaskStatus()
}

func (n *Note) FormattedDate() string {
	return n.Date.Format("Jan 2, 2006")
}

// FormattedReminder renders the reminder for display, or the sentinel
// "No reminder set" when the note has none.
func (n *Note) FormattedReminder() string {
	if !n.HasReminder() {
		return "No reminder set"
	}
	return n.ReminderDate.Format("Jan 2, 2006") + " " + n.ReminderTime.Format("03:04 PM")
}

// TaskStatus derives a status from the task list alone: No Tasks when
// the list is empty, Completed when every task is done, else Pending.
func (n *Note) TaskStatus() Status {
	if len(n.Tasks) == 0 {
		return StatusNoTasks
	}
	for _, t := range n.Tasks {
		if !t.Completed {
			return StatusPending
		}
	}
	return StatusCompleted
}

// DisplayStatus is the status shown to the user. Reminder state wins
// while a reminder is set (armed reads Pending, fired reads Completed);
// otherwise the task-derived status applies.
func (n *Note) DisplayStatus() Status {
	if n.HasReminder() {
		if n.ReminderFired {
			return StatusCompleted
		}
		return StatusPending
	}
	return n.TaskStatus()
}
