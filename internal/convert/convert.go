// Package convert turns markdown bodies into HTML suitable for Trilium
// note content.
//
// Conversion must preserve the placeholder spans injected during reference
// extraction verbatim; the renderer therefore allows raw HTML through.
package convert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter converts markdown to Trilium-ready HTML.
type Converter struct {
	md goldmark.Markdown

	// Warnf receives non-fatal conversion warnings (unknown callout types).
	// Defaults to a no-op.
	Warnf func(format string, args ...interface{})
}

// New creates a Converter with the GFM extensions Trilium content relies on
// (tables, strikethrough, task lists) and raw HTML enabled so placeholder
// spans and callout asides pass through.
func New() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		Warnf: func(string, ...interface{}) {},
	}
}

// Convert converts a markdown body to HTML. Callout blockquotes are
// transformed first so their bodies render as asides rather than plain
// blockquotes.
func (c *Converter) Convert(markdown string) (string, error) {
	withCallouts := c.convertCallouts(markdown)

	out, err := c.render(withCallouts)
	if err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return out, nil
}

func (c *Converter) render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderFragment renders an embedded markdown fragment (callout bodies)
// and trims the surrounding whitespace goldmark adds.
func (c *Converter) renderFragment(markdown string) (string, error) {
	out, err := c.render(markdown)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
