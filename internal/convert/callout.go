package convert

import (
	"fmt"
	"regexp"
	"strings"
)

// allowedCalloutTypes are the callout kinds the Trilium theme styles
// (the Obsidian set). Unknown types fall back to "note".
var allowedCalloutTypes = map[string]bool{
	"note": true, "abstract": true, "summary": true, "tldr": true,
	"info": true, "todo": true, "tip": true, "hint": true,
	"important": true, "success": true, "check": true, "done": true,
	"question": true, "help": true, "faq": true, "warning": true,
	"caution": true, "attention": true, "failure": true, "fail": true,
	"missing": true, "danger": true, "error": true, "bug": true,
	"example": true, "quote": true, "cite": true,
}

// calloutRe matches an Obsidian-style callout block:
//
//	> [!type] optional title
//	> content line 1
//	> content line 2
var calloutRe = regexp.MustCompile(`(?m)^>[ \t]*\[!(\w+)\]([^\n]*)\n((?:>.*\n?)*)`)

// convertCallouts rewrites callout blockquotes into aside elements. The
// callout body is rendered to HTML here; the resulting aside passes through
// the main conversion as a raw HTML block.
func (c *Converter) convertCallouts(markdown string) string {
	return calloutRe.ReplaceAllStringFunc(markdown, func(block string) string {
		sub := calloutRe.FindStringSubmatch(block)
		kind := strings.ToLower(sub[1])
		title := strings.TrimSpace(sub[2])
		body := sub[3]

		if !allowedCalloutTypes[kind] {
			c.Warnf("unknown callout type '[!%s]', using 'note' instead", kind)
			kind = "note"
		}

		var contentLines []string
		for _, line := range strings.Split(body, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			line = strings.TrimPrefix(line, ">")
			contentLines = append(contentLines, strings.TrimLeft(line, " \t"))
		}

		contentHTML, err := c.renderFragment(strings.Join(contentLines, "\n"))
		if err != nil {
			// Leave the block as a plain blockquote for the main pass.
			c.Warnf("render callout body: %v", err)
			return block
		}

		var b strings.Builder
		fmt.Fprintf(&b, "<aside class=\"admon %s\">\n", kind)
		if title != "" {
			fmt.Fprintf(&b, "    <p class=\"admon-title\"><strong>%s</strong></p>\n", title)
		}
		fmt.Fprintf(&b, "    %s\n</aside>\n", contentHTML)
		return b.String()
	})
}
