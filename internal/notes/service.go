// Package notes is the surface the presentation layer talks to. It
// owns no state of its own: every mutation goes through the store, and
// reminder changes are mirrored into the scheduler.
package notes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anoteapp/anote/internal/db"
)

// ErrEmptyContent is returned when a note would be created or saved
// with no content. The editor discards empty saves.
var ErrEmptyContent = errors.New("note content is empty")

// ReminderScheduler is the slice of the scheduler the service needs to
// keep one-shot timers in sync with reminder edits.
type ReminderScheduler interface {
	Arm(n *db.Note)
	Disarm(id int64)
	OnFired(fn func(db.Note))
}

type Service struct {
	store *db.DB
	sched ReminderScheduler
}

func NewService(store *db.DB, sched ReminderScheduler) *Service {
	return &Service{store: store, sched: sched}
}

// CreateNote persists a new note and returns it with its assigned id.
func (s *Service) CreateNote(content, color string, date time.Time) (*db.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	n := &db.Note{
		Content: content,
		Color:   color,
		Date:    date,
		Status:  db.StatusNoTasks,
	}
	if err := s.store.CreateNote(n); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return n, nil
}

func (s *Service) GetNote(id int64) (*db.Note, error) {
	return s.store.GetNote(id)
}

func (s *Service) ListNotes() ([]db.Note, error) {
	return s.store.ListNotes()
}

func (s *Service) SearchNotes(query string, f db.Filter) ([]db.Note, error) {
	return s.store.SearchNotes(query, f)
}

// EditNote replaces the note's content and persists it.
func (s *Service) EditNote(n *db.Note, newContent string) error {
	if strings.TrimSpace(newContent) == "" {
		return ErrEmptyContent
	}
	n.Content = newContent
	return s.store.UpdateNote(n)
}

// SetTasks replaces the note's task list and refreshes the
// task-derived status. The reminder state machine is untouched.
func (s *Service) SetTasks(n *db.Note, tasks []db.Task) error {
	n.Tasks = tasks
	if !n.HasReminder() {
		n.Status = n.TaskStatus()
	}
	return s.store.UpdateNote(n)
}

// SetReminder arms or clears the note's reminder and persists it.
// Passing nil for both clears; passing nil for exactly one fails with
// db.ErrInvalidReminder and changes nothing.
func (s *Service) SetReminder(n *db.Note, date, tm *time.Time) error {
	if err := n.SetReminder(date, tm); err != nil {
		return err
	}
	if err := s.store.UpdateNote(n); err != nil {
		return fmt.Errorf("failed to persist reminder: %w", err)
	}

	if n.HasReminder() {
		s.sched.Arm(n)
	} else {
		s.sched.Disarm(n.ID)
	}
	return nil
}

// DeleteNote removes the note and cancels any pending one-shot timer.
// Deleting an already deleted note is a no-op.
func (s *Service) DeleteNote(id int64) error {
	s.sched.Disarm(id)
	return s.store.DeleteNote(id)
}

// OnReminderFired registers a callback for the UI to refresh itself
// when the scheduler fires a reminder.
func (s *Service) OnReminderFired(fn func(db.Note)) {
	s.sched.OnFired(fn)
}
