// Package wikilink provides canonical parsing/scanning of wikilinks.
//
// Wikilink grammar:
//   [[target]]
//   [[path/target|display text]]
//
// Notes:
// - The target is trimmed of surrounding whitespace.
// - The display text (if present) is also trimmed.
// - The resolved name of a link is the segment after the last '/' in the
//   target; the path prefix only disambiguates for the reader.
// - This package intentionally does NOT understand markdown code fences;
//   higher-level parsers decide whether scanning is enabled for a region.
package wikilink

import (
	"fmt"
	"regexp"
	"strings"
)

// Match represents a wikilink found in a string (typically a single line).
type Match struct {
	Target      string
	DisplayText *string
	Start       int
	End         int
	Literal     string
}

// Name returns the resolved note name for the match target.
func (m Match) Name() string {
	return ResolveName(m.Target)
}

// Display returns the text a rendered link should show: the display text if
// present, otherwise the target as written.
func (m Match) Display() string {
	if m.DisplayText != nil {
		return *m.DisplayText
	}
	return m.Target
}

// re matches [[target]] or [[target|display]].
// The target cannot contain [ or ] so malformed bracket runs stay literal.
var re = regexp.MustCompile(`\[\[([^\]\[|]+)(?:\|([^\]]+))?\]\]`)

// ResolveName returns the note name a target refers to: the segment after
// the last path separator, trimmed.
func ResolveName(target string) string {
	if i := strings.LastIndex(target, "/"); i >= 0 {
		target = target[i+1:]
	}
	return strings.TrimSpace(target)
}

// ParseExact parses a string that is exactly a wikilink literal, returning
// its target and optional display text.
func ParseExact(s string) (target string, display *string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[[") || !strings.HasSuffix(s, "]]") {
		return "", nil, false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "[["), "]]")
	parts := strings.SplitN(inner, "|", 2)
	target = strings.TrimSpace(parts[0])
	if target == "" {
		return "", nil, false
	}
	if len(parts) == 2 {
		d := strings.TrimSpace(parts[1])
		display = &d
	}
	return target, display, true
}

// FindAllInLine finds wikilinks in a single line.
// Matches preceded by '[' are skipped so bracket runs like [[[x]]] stay literal.
func FindAllInLine(line string) []Match {
	var out []Match

	matches := re.FindAllStringSubmatchIndex(line, -1)
	for _, m := range matches {
		if len(m) < 4 {
			continue
		}
		start, end := m[0], m[1]

		if start > 0 && line[start-1] == '[' {
			continue
		}

		target := strings.TrimSpace(line[m[2]:m[3]])
		if target == "" {
			continue
		}

		var display *string
		if len(m) >= 6 && m[4] >= 0 && m[5] >= 0 {
			d := strings.TrimSpace(line[m[4]:m[5]])
			display = &d
		}

		out = append(out, Match{
			Target:      target,
			DisplayText: display,
			Start:       start,
			End:         end,
			Literal:     line[start:end],
		})
	}

	return out
}

// Placeholder is the inert marker a wikilink becomes before markdown
// conversion. It is raw inline HTML so the renderer passes it through
// verbatim, and the data attribute is improbable enough that user content
// cannot collide with it. The resolver rewrites these spans into reference
// links once every target has a note ID.
func Placeholder(name, display string) string {
	return fmt.Sprintf(`<span data-wiki-link="%s">%s</span>`, name, display)
}

// PlaceholderRe matches placeholder spans in converted note content.
// Group 1 is the resolved note name, group 2 the display text.
var PlaceholderRe = regexp.MustCompile(`<span data-wiki-link="([^"]+)">([^<]*)</span>`)

// ReferenceLink renders the final Trilium reference link for a resolved target.
func ReferenceLink(noteID, display string) string {
	return fmt.Sprintf(`<a class="reference-link" href="#root/%s">%s</a>`, noteID, display)
}

// UnresolvedSpan marks a placeholder whose target could not be resolved.
// It should not occur once placeholder notes exist; the styling makes the
// failure visible in the note body instead of silently dropping the link.
func UnresolvedSpan(display string) string {
	return fmt.Sprintf(`<span style="color: red;" title="Note not found">%s</span>`, display)
}
