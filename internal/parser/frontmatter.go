// Package parser handles parsing markdown documents before upload.
package parser

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontmatterBounds returns the opening and closing frontmatter line indices.
// It only detects frontmatter when the document's first line is '---' at
// column zero; an indented delimiter is body text. The closing delimiter may
// be '---' or '...'. If frontmatter is present but unclosed, endLine is -1.
func FrontmatterBounds(lines []string) (startLine int, endLine int, ok bool) {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t\r") != "---" {
		return 0, -1, false
	}

	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "---" || trimmed == "..." {
			return 0, i, true
		}
	}

	return 0, -1, true
}

// SplitFrontmatter splits a leading YAML frontmatter block from a document.
// Returns the parsed metadata and the remaining body. If no frontmatter is
// present the body is the input unchanged and metadata is nil. If the block
// fails to parse as YAML, the document is returned unchanged along with the
// parse error so the caller can warn and continue.
func SplitFrontmatter(content string) (map[string]interface{}, string, error) {
	lines := strings.Split(content, "\n")

	_, endLine, ok := FrontmatterBounds(lines)
	if !ok || endLine == -1 {
		return nil, content, nil
	}

	raw := strings.Join(lines[1:endLine], "\n")
	body := strings.Join(lines[endLine+1:], "\n")

	var meta map[string]interface{}
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, content, fmt.Errorf("parse frontmatter as YAML: %w", err)
	}

	// YAML decodes an empty document (or comments/whitespace only) into a
	// nil map. Treat that as "no metadata" but still strip the block.
	if meta == nil {
		return nil, body, nil
	}

	return meta, body, nil
}
