// Package scheduler watches armed reminders and fires each one exactly
// once: a periodic scan catches anything overdue, and per-note one-shot
// timers give precise delivery for reminders set while running. Both
// paths go through the same gate, so only one of them wins.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/anoteapp/anote/internal/db"
	"github.com/anoteapp/anote/internal/notify"
)

const (
	NotificationTitle = "Note Reminder"
	NotificationBody  = "Time to check your note!"

	DefaultTickInterval = time.Minute
)

// Store is the slice of the note store the scheduler needs.
type Store interface {
	GetNote(id int64) (*db.Note, error)
	ArmedNotes() ([]db.Note, error)
	UpdateNote(n *db.Note) error
}

type Option func(*Scheduler)

func WithTickInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.interval = d }
}

// WithClock replaces the time source. Tests use this to control "now".
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

type Scheduler struct {
	store    Store
	notifier notify.Notifier
	interval time.Duration
	now      func() time.Time

	// mu serializes the check-transition-persist sequence so the
	// one-shot and periodic paths cannot both observe an armed note.
	mu      sync.Mutex
	timers  map[int64]*time.Timer
	stopped bool
	onFired func(db.Note)
}

func New(store Store, notifier notify.Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:    store,
		notifier: notifier,
		interval: DefaultTickInterval,
		now:      time.Now,
		timers:   make(map[int64]*time.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnFired registers a callback invoked after a reminder has been
// persisted and notified. The UI uses it to refresh its view.
func (s *Scheduler) OnFired(fn func(db.Note)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFired = fn
}

// Start rebuilds one-shot timers for reminders persisted before this
// run, then scans on every tick until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	log.Printf("[scheduler] starting, tick interval %s", s.interval)
	s.loadArmed()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Stop()
			return
		case <-ticker.C:
			s.CheckReminders()
		}
	}
}

// Stop cancels all pending one-shot timers and refuses further
// transitions. Safe to call more than once; a dispatch that already
// started is allowed to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	log.Printf("[scheduler] stopped")
}

// CheckReminders runs one scan: every armed note whose reminder
// instant has passed is fired. One failing note does not stop the
// rest of the scan.
func (s *Scheduler) CheckReminders() {
	notes, err := s.store.ArmedNotes()
	if err != nil {
		log.Printf("[scheduler] failed to load armed notes: %v", err)
		return
	}

	now := s.now()
	for _, n := range notes {
		if n.ReminderInstant().After(now) {
			continue
		}
		s.fire(n.ID)
	}
}

// Arm registers a one-shot timer for the note's reminder. A reminder
// already in the past gets no one-shot; the periodic scan picks it up
// on its next pass, so a stale backlog never fires a burst on load.
func (s *Scheduler) Arm(n *db.Note) {
	if !n.ReminderArmed() {
		s.Disarm(n.ID)
		return
	}

	id := n.ID
	delay := n.ReminderInstant().Sub(s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	if delay <= 0 {
		return
	}

	s.timers[id] = time.AfterFunc(delay, func() {
		s.fire(id)
		s.removeTimer(id)
	})
}

// Disarm cancels the one-shot timer for a note, if any.
func (s *Scheduler) Disarm(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *Scheduler) loadArmed() {
	notes, err := s.store.ArmedNotes()
	if err != nil {
		log.Printf("[scheduler] failed to load armed notes: %v", err)
		return
	}
	count := 0
	for i := range notes {
		if notes[i].ReminderInstant().After(s.now()) {
			s.Arm(&notes[i])
			count++
		}
	}
	log.Printf("[scheduler] armed %d pending reminders", count)
}

// fire transitions a single note from armed to fired. It re-reads the
// note under the lock so a one-shot and a tick racing on the same note
// resolve to a single notification. The note is persisted first and
// notified only if the persist succeeds; on failure it stays armed and
// the next tick retries.
func (s *Scheduler) fire(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	n, err := s.store.GetNote(id)
	if err != nil {
		log.Printf("[scheduler] failed to read note %d: %v", id, err)
		return
	}
	if n == nil || !n.ReminderArmed() {
		return
	}
	if n.ReminderInstant().After(s.now()) {
		return
	}

	n.ReminderFired = true
	n.Status = db.StatusCompleted
	if err := s.store.UpdateNote(n); err != nil {
		log.Printf("[scheduler] failed to persist reminder for note %d: %v", id, err)
		return
	}

	if err := s.notifier.Notify(NotificationTitle, NotificationBody); err != nil {
		log.Printf("[scheduler] notification failed for note %d: %v", id, err)
	}

	if s.onFired != nil {
		go s.onFired(*n)
	}
}

func (s *Scheduler) removeTimer(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers, id)
}
