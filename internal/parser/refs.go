package parser

import (
	"strings"

	"github.com/aidanlsb/talon/internal/wikilink"
)

// Reference is one wikilink occurrence found in a document body.
type Reference struct {
	Name    string // resolved note name (last path segment)
	Display string // text the rendered link should show
	Line    int    // line number where found (1-indexed)
}

// ExtractRefs extracts wikilink references from a document body and rewrites
// each occurrence to an inert placeholder span that survives markdown
// conversion. References are returned in document order, duplicates
// included. Refs inside fenced code blocks and inline code spans are left
// as literal text.
func ExtractRefs(content string) ([]Reference, string) {
	var refs []Reference

	lines := strings.Split(content, "\n")
	out := make([]string, len(lines))
	state := FenceState{}
	for i, line := range lines {
		if state.UpdateFenceState(line) {
			out[i] = line
			continue // This line is a fence marker
		}
		if state.InFence {
			out[i] = line
			continue // Inside a fenced code block
		}

		// Match against a copy with inline code blanked out; positions are
		// preserved, so replacements apply cleanly to the original line.
		sanitized := RemoveInlineCode(line)
		matches := wikilink.FindAllInLine(sanitized)
		if len(matches) == 0 {
			out[i] = line
			continue
		}

		var b strings.Builder
		prev := 0
		for _, m := range matches {
			name := m.Name()
			refs = append(refs, Reference{
				Name:    name,
				Display: m.Display(),
				Line:    i + 1,
			})
			b.WriteString(line[prev:m.Start])
			b.WriteString(wikilink.Placeholder(name, m.Display()))
			prev = m.End
		}
		b.WriteString(line[prev:])
		out[i] = b.String()
	}

	return refs, strings.Join(out, "\n")
}
