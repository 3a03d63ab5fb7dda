package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn *sql.DB
}

func New(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT NOT NULL,
		color TEXT NOT NULL,
		date TEXT NOT NULL,
		tasks TEXT,
		reminder_date TEXT,
		reminder_time TEXT,
		status TEXT DEFAULT 'No Tasks',
		reminder_fired INTEGER DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_notes_date ON notes(date);
	CREATE INDEX IF NOT EXISTS idx_notes_reminder ON notes(reminder_date, reminder_fired);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		return err
	}

	// Migration: add new columns if they don't exist
	// Ignore errors as columns may already exist
	db.conn.Exec(`ALTER TABLE notes ADD COLUMN status TEXT DEFAULT 'No Tasks'`)
	db.conn.Exec(`ALTER TABLE notes ADD COLUMN reminder_fired INTEGER DEFAULT 0`)

	db.conn.Exec(`CREATE INDEX IF NOT EXISTS idx_notes_reminder ON notes(reminder_date, reminder_fired)`)

	return nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}
