// Package manifest records what a migration run created, in a SQLite
// database under the scanned tree's state directory. A run's note records
// mirror the in-memory path map: inserted once during upload, read-only
// afterwards. The tracked-notes table remembers singleton notes (the CSS
// theme note) across runs so they are updated instead of duplicated.
package manifest

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gosimple/slug"
	_ "modernc.org/sqlite"
)

// FileName is the manifest database file name inside the state directory.
const FileName = "manifest.db"

// DB is the manifest database handle.
type DB struct {
	db *sql.DB
}

// NoteRecord is one created note.
type NoteRecord struct {
	Path   string
	NoteID string
	Title  string
	Kind   string
}

// RunRecord summarizes one migration run.
type RunRecord struct {
	ID           string
	RootPath     string
	ParentNoteID string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Open opens or creates the manifest database inside stateDir, creating
// the directory if needed.
func Open(stateDir string) (*DB, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(stateDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("open manifest database: %w", err)
	}

	d := &DB{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id             TEXT PRIMARY KEY,
		root_path      TEXT NOT NULL,
		parent_note_id TEXT NOT NULL,
		started_at     TEXT NOT NULL,
		finished_at    TEXT
	);
	CREATE TABLE IF NOT EXISTS notes (
		run_id  TEXT NOT NULL REFERENCES runs(id),
		path    TEXT NOT NULL,
		note_id TEXT NOT NULL,
		title   TEXT NOT NULL,
		kind    TEXT NOT NULL,
		PRIMARY KEY (run_id, path)
	);
	CREATE TABLE IF NOT EXISTS tracked_notes (
		name    TEXT PRIMARY KEY,
		note_id TEXT NOT NULL
	);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize manifest schema: %w", err)
	}
	return nil
}

// NewRunID derives a stable, readable run identifier from the tree root
// and start time.
func NewRunID(rootPath string, now time.Time) string {
	return slug.Make(filepath.Base(rootPath)) + "-" + now.UTC().Format("20060102-150405")
}

// BeginRun inserts a run row.
func (d *DB) BeginRun(runID, rootPath, parentNoteID string, startedAt time.Time) error {
	_, err := d.db.Exec(
		`INSERT INTO runs (id, root_path, parent_note_id, started_at) VALUES (?, ?, ?, ?)`,
		runID, rootPath, parentNoteID, startedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record run start: %w", err)
	}
	return nil
}

// FinishRun stamps a run's completion time.
func (d *DB) FinishRun(runID string, finishedAt time.Time) error {
	_, err := d.db.Exec(
		`UPDATE runs SET finished_at = ? WHERE id = ?`,
		finishedAt.UTC().Format(time.RFC3339), runID,
	)
	if err != nil {
		return fmt.Errorf("record run finish: %w", err)
	}
	return nil
}

// RecordNote inserts one created-note row. A path is recorded at most once
// per run; the primary key enforces the invariant.
func (d *DB) RecordNote(runID, path, noteID, title, kind string) error {
	_, err := d.db.Exec(
		`INSERT INTO notes (run_id, path, note_id, title, kind) VALUES (?, ?, ?, ?, ?)`,
		runID, path, noteID, title, kind,
	)
	if err != nil {
		return fmt.Errorf("record note %s: %w", title, err)
	}
	return nil
}

// NotesForRun returns every note recorded for a run, ordered by path.
func (d *DB) NotesForRun(runID string) ([]NoteRecord, error) {
	rows, err := d.db.Query(
		`SELECT path, note_id, title, kind FROM notes WHERE run_id = ? ORDER BY path`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query notes for run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []NoteRecord
	for rows.Next() {
		var n NoteRecord
		if err := rows.Scan(&n.Path, &n.NoteID, &n.Title, &n.Kind); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// TrackedNoteID returns the remembered note ID for a singleton note name,
// or "" if none is tracked.
func (d *DB) TrackedNoteID(name string) (string, error) {
	var id string
	err := d.db.QueryRow(`SELECT note_id FROM tracked_notes WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("look up tracked note %s: %w", name, err)
	}
	return id, nil
}

// TrackNote remembers (or replaces) the note ID for a singleton note name.
func (d *DB) TrackNote(name, noteID string) error {
	_, err := d.db.Exec(
		`INSERT INTO tracked_notes (name, note_id) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET note_id = excluded.note_id`,
		name, noteID,
	)
	if err != nil {
		return fmt.Errorf("track note %s: %w", name, err)
	}
	return nil
}

// RunRecorder adapts a run to the uploader's Recorder interface.
type RunRecorder struct {
	DB    *DB
	RunID string
}

// RecordNote implements upload.Recorder.
func (r *RunRecorder) RecordNote(path, noteID, title, kind string) error {
	return r.DB.RecordNote(r.RunID, path, noteID, title, kind)
}
