package db

import "errors"

var (
	// ErrNotFound is returned by update/delete calls that reference an
	// id with no matching row.
	ErrNotFound = errors.New("note not found")

	// ErrInvalidReminder is returned when exactly one of the reminder
	// date/time pair is provided.
	ErrInvalidReminder = errors.New("reminder date and time must be set together")
)
