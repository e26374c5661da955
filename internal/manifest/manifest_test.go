package manifest

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), ".talon"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewRunID(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	got := NewRunID("/home/someone/My Vault", now)
	want := "my-vault-20260831-120000"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunLifecycle(t *testing.T) {
	db := openTestDB(t)
	started := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	runID := NewRunID("/tmp/vault", started)
	if err := db.BeginRun(runID, "/tmp/vault", "root", started); err != nil {
		t.Fatal(err)
	}

	rec := &RunRecorder{DB: db, RunID: runID}
	if err := rec.RecordNote("/tmp/vault/b.md", "n2", "b", "document"); err != nil {
		t.Fatal(err)
	}
	if err := rec.RecordNote("/tmp/vault/a.md", "n1", "a", "document"); err != nil {
		t.Fatal(err)
	}

	if err := db.FinishRun(runID, started.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}

	notes, err := db.NotesForRun(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 {
		t.Fatalf("notes=%d, want 2", len(notes))
	}
	// Ordered by path.
	if notes[0].NoteID != "n1" || notes[1].NoteID != "n2" {
		t.Errorf("notes=%+v", notes)
	}
}

func TestRecordNoteDuplicatePathRejected(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	if err := db.BeginRun("r1", "/v", "root", now); err != nil {
		t.Fatal(err)
	}
	if err := db.RecordNote("r1", "/v/a.md", "n1", "a", "document"); err != nil {
		t.Fatal(err)
	}
	if err := db.RecordNote("r1", "/v/a.md", "n2", "a", "document"); err == nil {
		t.Fatal("expected duplicate path insert to fail")
	}
}

func TestTrackedNotes(t *testing.T) {
	db := openTestDB(t)

	id, err := db.TrackedNoteID("appCss")
	if err != nil {
		t.Fatal(err)
	}
	if id != "" {
		t.Errorf("expected no tracked note, got %q", id)
	}

	if err := db.TrackNote("appCss", "css1"); err != nil {
		t.Fatal(err)
	}
	if err := db.TrackNote("appCss", "css2"); err != nil {
		t.Fatal(err)
	}

	id, err = db.TrackedNoteID("appCss")
	if err != nil {
		t.Fatal(err)
	}
	if id != "css2" {
		t.Errorf("tracked id=%q, want css2", id)
	}
}
