// Package upload implements the two-phase migration of a markdown tree
// into Trilium notes.
//
// Phase one materializes the tree pre-order, parent before children, while
// document bodies still carry placeholder spans for unresolved wikilinks.
// Phase two runs only after the whole tree exists: it creates placeholder
// notes for reference targets that were never uploaded, rewrites every
// pending body so placeholder spans become reference links, and finally
// records one typed relation per reference.
package upload

import (
	"os"

	"github.com/aidanlsb/talon/internal/convert"
	"github.com/aidanlsb/talon/internal/etapi"
	"github.com/aidanlsb/talon/internal/scan"
)

const (
	noteTypeText      = "text"
	labelReadOnly     = "readOnly"
	relationReference = "references"
	orphansTitle      = "Orphans"

	orphansContent     = "<p>This note contains placeholder notes created for unresolved wiki links.</p>"
	placeholderContent = "<p><em>This note was automatically created as a placeholder for a wiki link reference.</em></p>"
)

// Service is the remote note surface the uploader depends on. Every call is
// a blocking round-trip that may fail; the uploader never assumes success.
type Service interface {
	CreateNote(p etapi.CreateNoteParams) (string, error)
	CreateAttribute(p etapi.CreateAttributeParams) (string, error)
	SearchByTitle(title string) ([]etapi.SearchResult, error)
	UpdateNoteContent(noteID, content string) error
}

// Recorder receives a record for every note created during a run.
type Recorder interface {
	RecordNote(path, noteID, title, kind string) error
}

// pendingRelation is one (source note, target name) pair awaiting a
// relation edge. Pairs are never deduplicated.
type pendingRelation struct {
	sourceNoteID string
	targetName   string
}

// pendingRewrite is a note whose content still carries placeholder spans.
type pendingRewrite struct {
	noteID  string
	content string
}

// Uploader owns all run-scoped state. It is not safe for concurrent use;
// a run is strictly sequential.
type Uploader struct {
	svc      Service
	conv     *convert.Converter
	readFile func(string) ([]byte, error)
	logf     func(format string, args ...interface{})
	warnf    func(format string, args ...interface{})
	rec      Recorder

	pathToID         map[string]string
	titleToID        map[string]string
	pendingRelations []pendingRelation
	pendingRewrites  []pendingRewrite
	orphansNoteID    string

	report *Report
}

// Options configures an Uploader. Zero values select working defaults.
type Options struct {
	Converter *convert.Converter
	// ReadFile loads a document body by path (defaults to os.ReadFile).
	ReadFile func(string) ([]byte, error)
	// Logf receives per-operation progress lines.
	Logf func(format string, args ...interface{})
	// Warnf receives non-fatal failure lines.
	Warnf func(format string, args ...interface{})
	// Recorder, if set, is notified of every created note.
	Recorder Recorder
}

// New creates an Uploader backed by the given remote service.
func New(svc Service, opts *Options) *Uploader {
	u := &Uploader{
		svc:      svc,
		readFile: os.ReadFile,
		logf:     func(string, ...interface{}) {},
		warnf:    func(string, ...interface{}) {},
	}
	if opts != nil {
		if opts.Converter != nil {
			u.conv = opts.Converter
		}
		if opts.ReadFile != nil {
			u.readFile = opts.ReadFile
		}
		if opts.Logf != nil {
			u.logf = opts.Logf
		}
		if opts.Warnf != nil {
			u.warnf = opts.Warnf
		}
		u.rec = opts.Recorder
	}
	if u.conv == nil {
		u.conv = convert.New()
		u.conv.Warnf = u.warnf
	}
	return u
}

// UploadTree migrates the tree under parentNoteID and returns the run
// report. Materialization, reference resolution and relation creation run
// strictly in that order: resolution needs every title known, relations
// need every target (including placeholders) created.
func (u *Uploader) UploadTree(root *scan.Node, parentNoteID string) *Report {
	u.pathToID = make(map[string]string)
	u.titleToID = make(map[string]string)
	u.pendingRelations = nil
	u.pendingRewrites = nil
	u.orphansNoteID = ""
	u.report = &Report{}

	u.materialize(root, parentNoteID)
	u.resolveReferences(parentNoteID)
	u.createRelations()

	return u.report
}

// NoteID returns the created note ID for a tree path, if any.
func (u *Uploader) NoteID(path string) (string, bool) {
	id, ok := u.pathToID[path]
	return id, ok
}

// addReadOnlyLabel tags a note read-only. Failures are logged, not fatal.
func (u *Uploader) addReadOnlyLabel(noteID string) {
	_, err := u.svc.CreateAttribute(etapi.CreateAttributeParams{
		NoteID: noteID,
		Type:   "label",
		Name:   labelReadOnly,
	})
	if err != nil {
		u.warnf("add readOnly label to %s: %v", noteID, err)
	}
}
