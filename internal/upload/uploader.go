package upload

import (
	"fmt"

	"github.com/aidanlsb/talon/internal/etapi"
	"github.com/aidanlsb/talon/internal/parser"
	"github.com/aidanlsb/talon/internal/scan"
)

// materialize creates notes pre-order so a container's ID exists before any
// child call is issued. A failed create yields no note ID for that node;
// children are still attempted against the missing parent and fail
// predictably rather than being specially skipped.
func (u *Uploader) materialize(node *scan.Node, parentNoteID string) {
	if node.IsContainer() {
		noteID := u.createContainerNote(node, parentNoteID)
		if noteID != "" {
			u.pathToID[node.Path] = noteID
		}
		for _, child := range node.Children {
			u.materialize(child, noteID)
		}
		return
	}

	if noteID := u.createDocumentNote(node, parentNoteID); noteID != "" {
		u.pathToID[node.Path] = noteID
	}
}

func (u *Uploader) createContainerNote(node *scan.Node, parentNoteID string) string {
	noteID, err := u.svc.CreateNote(etapi.CreateNoteParams{
		ParentNoteID: parentNoteID,
		Title:        node.Title,
		Type:         noteTypeText,
		Content:      fmt.Sprintf("<p>Notes from folder: %s</p>", node.Name),
	})
	if err != nil {
		u.warnf("create folder note %s: %v", node.Name, err)
		u.report.noteFailed(node.Path, node.Title, err)
		return ""
	}

	u.addReadOnlyLabel(noteID)
	u.recordNote(node, noteID)
	u.report.ContainersCreated++
	u.logf("created folder note: %s (ID: %s)", node.Name, noteID)
	return noteID
}

func (u *Uploader) createDocumentNote(node *scan.Node, parentNoteID string) string {
	raw, err := u.readFile(node.Path)
	if err != nil {
		u.warnf("read %s: %v", node.Path, err)
		u.report.noteFailed(node.Path, node.Title, err)
		return ""
	}

	meta, body, err := parser.SplitFrontmatter(string(raw))
	if err != nil {
		// Local recovery: the document uploads without metadata.
		u.warnf("%s: %v", node.Name, err)
	}

	refs, marked := parser.ExtractRefs(body)

	content, err := u.conv.Convert(marked)
	if err != nil {
		u.warnf("convert %s: %v", node.Name, err)
		u.report.noteFailed(node.Path, node.Title, err)
		return ""
	}

	noteID, err := u.svc.CreateNote(etapi.CreateNoteParams{
		ParentNoteID: parentNoteID,
		Title:        node.Title,
		Type:         noteTypeText,
		Content:      content,
	})
	if err != nil {
		u.warnf("create note %s: %v", node.Title, err)
		u.report.noteFailed(node.Path, node.Title, err)
		return ""
	}

	u.addReadOnlyLabel(noteID)

	if prev, exists := u.titleToID[node.Title]; exists {
		// Last writer wins; surface the ambiguity instead of hiding it.
		u.warnf("duplicate title %q: references will resolve to %s, not %s", node.Title, noteID, prev)
		u.report.TitleCollisions = append(u.report.TitleCollisions, node.Title)
	}
	u.titleToID[node.Title] = noteID
	u.recordNote(node, noteID)

	labels := u.applyLabels(noteID, meta)

	if len(refs) > 0 {
		u.pendingRewrites = append(u.pendingRewrites, pendingRewrite{noteID: noteID, content: content})
		for _, ref := range refs {
			u.pendingRelations = append(u.pendingRelations, pendingRelation{
				sourceNoteID: noteID,
				targetName:   ref.Name,
			})
		}
	}

	u.report.DocumentsCreated++
	switch {
	case labels > 0 && len(refs) > 0:
		u.logf("created note: %s (ID: %s) with %d label(s), %d link(s)", node.Title, noteID, labels, len(refs))
	case labels > 0:
		u.logf("created note: %s (ID: %s) with %d label(s)", node.Title, noteID, labels)
	case len(refs) > 0:
		u.logf("created note: %s (ID: %s) with %d link(s)", node.Title, noteID, len(refs))
	default:
		u.logf("created note: %s (ID: %s)", node.Title, noteID)
	}

	return noteID
}

func (u *Uploader) recordNote(node *scan.Node, noteID string) {
	if u.rec == nil {
		return
	}
	kind := "document"
	if node.IsContainer() {
		kind = "container"
	}
	if err := u.rec.RecordNote(node.Path, noteID, node.Title, kind); err != nil {
		u.warnf("record note %s in manifest: %v", node.Title, err)
	}
}
