package ui

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/talon/internal/scan"
)

const (
	iconContainer = "📁"
	iconDocument  = "📄"
)

// RenderTree returns an indented listing of the migration tree, one entry
// per node in traversal order.
func RenderTree(root *scan.Node) string {
	return RenderTreeFunc(root, nil)
}

// RenderTreeFunc renders the tree with an optional per-node annotation
// appended to each line. A nil or empty annotation leaves the line bare.
func RenderTreeFunc(root *scan.Node, annotate func(*scan.Node) string) string {
	var b strings.Builder
	renderNode(&b, root, 0, annotate)
	return b.String()
}

func renderNode(b *strings.Builder, node *scan.Node, depth int, annotate func(*scan.Node) string) {
	icon := iconDocument
	if node.IsContainer() {
		icon = iconContainer
	}

	indent := strings.Repeat("  ", depth)
	line := indent + icon + " " + node.Name
	if node.IsContainer() && depth > 0 {
		line += " " + Count(len(node.Children), "entry", "entries")
	}
	if annotate != nil {
		if note := annotate(node); note != "" {
			line += " " + note
		}
	}
	fmt.Fprintln(b, line)

	for _, child := range node.Children {
		renderNode(b, child, depth+1, annotate)
	}
}
