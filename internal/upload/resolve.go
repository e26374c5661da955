package upload

import (
	"github.com/aidanlsb/talon/internal/etapi"
	"github.com/aidanlsb/talon/internal/wikilink"
)

// resolveReferences runs strictly after the whole tree is materialized, so
// forward references resolve regardless of traversal order. Orphan names
// are collected across every pending rewrite before any placeholder note is
// created, which guarantees exactly one placeholder per distinct missing
// name no matter how many documents mention it.
func (u *Uploader) resolveReferences(runParentID string) {
	if len(u.pendingRewrites) == 0 {
		return
	}
	u.logf("updating %d note(s) with wiki links...", len(u.pendingRewrites))

	orphans := u.collectOrphans()
	if len(orphans) > 0 {
		u.logf("creating %d placeholder note(s) for missing wiki links...", len(orphans))
		u.createPlaceholders(orphans, runParentID)
	}

	for _, pending := range u.pendingRewrites {
		u.rewriteNote(pending)
	}
}

// collectOrphans returns the distinct referenced names with no created
// note, in first-reference order.
func (u *Uploader) collectOrphans() []string {
	var orphans []string
	seen := make(map[string]bool)

	for _, pending := range u.pendingRewrites {
		for _, m := range wikilink.PlaceholderRe.FindAllStringSubmatch(pending.content, -1) {
			name := m[1]
			if seen[name] {
				continue
			}
			if _, exists := u.titleToID[name]; exists {
				continue
			}
			seen[name] = true
			orphans = append(orphans, name)
		}
	}

	return orphans
}

func (u *Uploader) createPlaceholders(names []string, runParentID string) {
	parentID := u.ensureOrphansNote(runParentID)

	for _, name := range names {
		noteID, err := u.svc.CreateNote(etapi.CreateNoteParams{
			ParentNoteID: parentID,
			Title:        name,
			Type:         noteTypeText,
			Content:      placeholderContent,
		})
		if err != nil {
			u.warnf("create placeholder note %s: %v", name, err)
			continue
		}
		u.addReadOnlyLabel(noteID)
		u.titleToID[name] = noteID
		u.report.PlaceholdersCreated++
		u.logf("created placeholder note: %s (ID: %s)", name, noteID)
	}
}

// ensureOrphansNote finds or creates the container that holds placeholder
// notes. It runs at most once per run, and only when orphans exist. If
// creation fails the run-level parent is used so placeholders still land
// somewhere predictable.
func (u *Uploader) ensureOrphansNote(runParentID string) string {
	if u.orphansNoteID != "" {
		return u.orphansNoteID
	}

	results, err := u.svc.SearchByTitle(orphansTitle)
	if err != nil {
		u.warnf("search for %s note: %v", orphansTitle, err)
	} else if len(results) > 0 {
		u.orphansNoteID = results[0].NoteID
		u.logf("found existing %s note (ID: %s)", orphansTitle, u.orphansNoteID)
		return u.orphansNoteID
	}

	noteID, err := u.svc.CreateNote(etapi.CreateNoteParams{
		ParentNoteID: runParentID,
		Title:        orphansTitle,
		Type:         noteTypeText,
		Content:      orphansContent,
	})
	if err != nil {
		u.warnf("create %s note, falling back to run parent: %v", orphansTitle, err)
		u.orphansNoteID = runParentID
		return u.orphansNoteID
	}

	u.addReadOnlyLabel(noteID)
	u.orphansNoteID = noteID
	u.logf("created %s note (ID: %s)", orphansTitle, noteID)
	return u.orphansNoteID
}

// rewriteNote replaces every placeholder span with a reference link and
// persists the content when it changed. Persistence failures are logged
// per note and do not abort the pass.
func (u *Uploader) rewriteNote(pending pendingRewrite) {
	resolved := 0
	updated := wikilink.PlaceholderRe.ReplaceAllStringFunc(pending.content, func(marker string) string {
		m := wikilink.PlaceholderRe.FindStringSubmatch(marker)
		name, display := m[1], m[2]

		targetID, ok := u.titleToID[name]
		if !ok {
			// Should not occur once placeholders exist; keep it visible.
			u.warnf("no note found for reference %q", name)
			u.report.UnresolvedLinks++
			return wikilink.UnresolvedSpan(display)
		}
		resolved++
		return wikilink.ReferenceLink(targetID, display)
	})

	if updated == pending.content {
		return
	}
	if err := u.svc.UpdateNoteContent(pending.noteID, updated); err != nil {
		u.warnf("update note %s content: %v", pending.noteID, err)
		u.report.RewriteFailures++
		return
	}
	u.report.LinksResolved += resolved
	u.report.NotesRewritten++
}
