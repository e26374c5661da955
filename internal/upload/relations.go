package upload

import (
	"github.com/aidanlsb/talon/internal/etapi"
)

// createRelations emits one typed relation per recorded (source, target)
// pair. It runs after resolution, so every target name, including
// placeholders, has a note ID. Pairs are not deduplicated: a document that
// references the same target twice gets two identical edges.
func (u *Uploader) createRelations() {
	if len(u.pendingRelations) == 0 {
		return
	}
	u.logf("creating %d relation(s)...", len(u.pendingRelations))

	for _, pending := range u.pendingRelations {
		targetID, ok := u.titleToID[pending.targetName]
		if !ok {
			// Should not occur after placeholder creation.
			u.warnf("cannot find note titled %q for relation", pending.targetName)
			u.report.RelationFailures++
			continue
		}

		_, err := u.svc.CreateAttribute(etapi.CreateAttributeParams{
			NoteID: pending.sourceNoteID,
			Type:   "relation",
			Name:   relationReference,
			Value:  targetID,
		})
		if err != nil {
			u.warnf("create relation %s -> %s: %v", pending.sourceNoteID, pending.targetName, err)
			u.report.RelationFailures++
			continue
		}
		u.report.RelationsCreated++
	}
}
