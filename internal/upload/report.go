package upload

// NoteFailure records a node that produced no note.
type NoteFailure struct {
	Path  string `json:"path"`
	Title string `json:"title"`
	Error string `json:"error"`
}

// Report is the typed outcome of one run. Partial failure is visible here
// rather than only in log lines.
type Report struct {
	ContainersCreated   int           `json:"containers_created"`
	DocumentsCreated    int           `json:"documents_created"`
	NoteFailures        []NoteFailure `json:"note_failures,omitempty"`
	LabelsCreated       int           `json:"labels_created"`
	LabelFailures       int           `json:"label_failures,omitempty"`
	PlaceholdersCreated int           `json:"placeholders_created"`
	NotesRewritten      int           `json:"notes_rewritten"`
	LinksResolved       int           `json:"links_resolved"`
	UnresolvedLinks     int           `json:"unresolved_links,omitempty"`
	RewriteFailures     int           `json:"rewrite_failures,omitempty"`
	RelationsCreated    int           `json:"relations_created"`
	RelationFailures    int           `json:"relation_failures,omitempty"`
	TitleCollisions     []string      `json:"title_collisions,omitempty"`
}

// NotesCreated is the total count of created notes, placeholders excluded.
func (r *Report) NotesCreated() int {
	return r.ContainersCreated + r.DocumentsCreated
}

// HasFailures reports whether any operation in the run failed.
func (r *Report) HasFailures() bool {
	return len(r.NoteFailures) > 0 ||
		r.LabelFailures > 0 ||
		r.UnresolvedLinks > 0 ||
		r.RewriteFailures > 0 ||
		r.RelationFailures > 0
}

func (r *Report) noteFailed(path, title string, err error) {
	r.NoteFailures = append(r.NoteFailures, NoteFailure{
		Path:  path,
		Title: title,
		Error: err.Error(),
	})
}
