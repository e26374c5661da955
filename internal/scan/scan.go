// Package scan discovers the markdown tree selected for migration.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StateDirName is the per-tree state directory (run manifests live here).
// It is always excluded from scanning.
const StateDirName = ".talon"

// Kind classifies a tree node.
type Kind int

const (
	// Container is a directory that becomes a container note.
	Container Kind = iota
	// Document is a markdown file that becomes a content note.
	Document
)

// Node represents one file-system entry selected for migration.
// Children are ordered lexicographically by name and the ordering is stable
// across runs. Nodes are built once during scanning and never removed.
type Node struct {
	Path     string // absolute path; unique key for the node
	Name     string // base name including extension
	Title    string // display title (file stem, or directory name)
	Kind     Kind
	Children []*Node
}

// IsContainer reports whether the node is a directory-backed container.
func (n *Node) IsContainer() bool {
	return n.Kind == Container
}

// Documents returns all document nodes in the subtree, in traversal order.
func (n *Node) Documents() []*Node {
	var out []*Node
	n.walk(func(node *Node) {
		if node.Kind == Document {
			out = append(out, node)
		}
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}

// Options controls tree discovery.
type Options struct {
	// IncludeHidden includes entries whose name starts with '.'.
	// The state directory is excluded regardless.
	IncludeHidden bool
}

// Scan builds the migration tree rooted at dir. Only directories and .md
// files are admitted; everything else is skipped. A directory with no
// admitted children is still included with an empty child list.
func Scan(dir string, opts Options) (*Node, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	root := &Node{
		Path:  abs,
		Name:  filepath.Base(abs),
		Title: filepath.Base(abs),
		Kind:  Container,
	}
	if err := scanChildren(root, opts); err != nil {
		return nil, err
	}
	return root, nil
}

func scanChildren(parent *Node, opts Options) error {
	// os.ReadDir returns entries sorted by name, which is the declared
	// child order for the whole pipeline.
	entries, err := os.ReadDir(parent.Path)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", parent.Path, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if name == StateDirName {
			continue
		}
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(parent.Path, name)
		if entry.IsDir() {
			child := &Node{
				Path:  path,
				Name:  name,
				Title: name,
				Kind:  Container,
			}
			if err := scanChildren(child, opts); err != nil {
				return err
			}
			parent.Children = append(parent.Children, child)
			continue
		}

		if !strings.EqualFold(filepath.Ext(name), ".md") {
			continue
		}
		parent.Children = append(parent.Children, &Node{
			Path:  path,
			Name:  name,
			Title: strings.TrimSuffix(name, filepath.Ext(name)),
			Kind:  Document,
		})
	}

	return nil
}
