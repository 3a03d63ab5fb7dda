package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	dateFormat = "2006-01-02"
	timeFormat = "15:04:05"
)

// CreateNote inserts the note and assigns its id. The note keeps a
// zero id if the insert fails.
func (db *DB) CreateNote(n *Note) error {
	tasksJSON, err := json.Marshal(n.Tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	reminderDate, reminderTime := encodeReminder(n)

	result, err := db.conn.Exec(`
		INSERT INTO notes (content, color, date, tasks, reminder_date, reminder_time, status, reminder_fired)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, n.Content, n.Color, n.Date.Format(dateFormat), string(tasksJSON),
		reminderDate, reminderTime, string(n.Status), boolToInt(n.ReminderFired))

	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	n.ID = id
	return nil
}

func (db *DB) GetNote(id int64) (*Note, error) {
	row := db.conn.QueryRow(`
		SELECT id, content, color, date, tasks, reminder_date, reminder_time,
		       COALESCE(status, 'No Tasks'), COALESCE(reminder_fired, 0)
		FROM notes WHERE id = ?
	`, id)

	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return n, nil
}

// ListNotes returns every note ordered by id. The order is stable but
// callers impose their own display order.
func (db *DB) ListNotes() ([]Note, error) {
	rows, err := db.conn.Query(`
		SELECT id, content, color, date, tasks, reminder_date, reminder_time,
		       COALESCE(status, 'No Tasks'), COALESCE(reminder_fired, 0)
		FROM notes
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	return collectNotes(rows)
}

// UpdateNote overwrites the row matching the note's id. Returns
// ErrNotFound when no row matches.
func (db *DB) UpdateNote(n *Note) error {
	tasksJSON, err := json.Marshal(n.Tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	reminderDate, reminderTime := encodeReminder(n)

	result, err := db.conn.Exec(`
		UPDATE notes
		SET content = ?, color = ?, date = ?, tasks = ?, reminder_date = ?, reminder_time = ?,
		    status = ?, reminder_fired = ?
		WHERE id = ?
	`, n.Content, n.Color, n.Date.Format(dateFormat), string(tasksJSON),
		reminderDate, reminderTime, string(n.Status), boolToInt(n.ReminderFired), n.ID)

	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteNote removes the row matching id. Deleting an absent id is a
// no-op.
func (db *DB) DeleteNote(id int64) error {
	_, err := db.conn.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// Filter narrows SearchNotes results. Zero values match everything.
type Filter struct {
	Color  string
	Status Status
	Date   *time.Time
}

// SearchNotes returns notes whose content contains query, further
// narrowed by the filter. An empty query with a zero filter is
// equivalent to ListNotes.
func (db *DB) SearchNotes(query string, f Filter) ([]Note, error) {
	var args []interface{}
	var conditions []string

	baseQuery := `
		SELECT id, content, color, date, tasks, reminder_date, reminder_time,
		       COALESCE(status, 'No Tasks'), COALESCE(reminder_fired, 0)
		FROM notes`

	if query != "" {
		conditions = append(conditions, `content LIKE ?`)
		args = append(args, "%"+query+"%")
	}
	if f.Color != "" {
		conditions = append(conditions, `color = ?`)
		args = append(args, f.Color)
	}
	if f.Date != nil {
		conditions = append(conditions, `date = ?`)
		args = append(args, f.Date.Format(dateFormat))
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY id ASC"

	rows, err := db.conn.Query(baseQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	defer rows.Close()

	notes, err := collectNotes(rows)
	if err != nil {
		return nil, err
	}

	// Status is derived (reminder state overrides the task-derived
	// status), so it filters in memory rather than in SQL.
	if f.Status == "" {
		return notes, nil
	}
	filtered := notes[:0]
	for _, n := range notes {
		if n.DisplayStatus() == f.Status {
			filtered = append(filtered, n)
		}
	}
	return filtered, nil
}

// ArmedNotes returns notes with a reminder set and not yet fired. The
// scheduler uses this to rebuild its one-shot timers on startup.
func (db *DB) ArmedNotes() ([]Note, error) {
	rows, err := db.conn.Query(`
		SELECT id, content, color, date, tasks, reminder_date, reminder_time,
		       COALESCE(status, 'No Tasks'), COALESCE(reminder_fired, 0)
		FROM notes
		WHERE reminder_date IS NOT NULL AND reminder_time IS NOT NULL
		  AND COALESCE(reminder_fired, 0) = 0
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list armed notes: %w", err)
	}
	defer rows.Close()

	return collectNotes(rows)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(s scanner) (*Note, error) {
	var n Note
	var dateStr, status string
	var tasksJSON, reminderDate, reminderTime sql.NullString
	var fired int

	if err := s.Scan(&n.ID, &n.Content, &n.Color, &dateStr, &tasksJSON,
		&reminderDate, &reminderTime, &status, &fired); err != nil {
		return nil, err
	}

	date, err := time.Parse(dateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse note date: %w", err)
	}
	n.Date = date

	if tasksJSON.Valid && tasksJSON.String != "" {
		if err := json.Unmarshal([]byte(tasksJSON.String), &n.Tasks); err != nil {
			n.Tasks = nil
		}
	}

	// Reminder columns are always written as a pair; tolerate a half
	// pair from an external writer by treating it as no reminder.
	if reminderDate.Valid && reminderTime.Valid {
		rd, err := time.Parse(dateFormat, reminderDate.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse reminder date: %w", err)
		}
		rt, err := time.Parse(timeFormat, reminderTime.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse reminder time: %w", err)
		}
		n.ReminderDate = &rd
		n.ReminderTime = &rt
	}

	n.Status = Status(status)
	n.ReminderFired = fired == 1

	return &n, nil
}

func collectNotes(rows *sql.Rows) ([]Note, error) {
	var notes []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func encodeReminder(n *Note) (date, tm interface{}) {
	if !n.HasReminder() {
		return nil, nil
	}
	return n.ReminderDate.Format(dateFormat), n.ReminderTime.Format(timeFormat)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
