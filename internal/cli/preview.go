package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/talon/internal/parser"
	"github.com/aidanlsb/talon/internal/scan"
	"github.com/aidanlsb/talon/internal/ui"
	"github.com/aidanlsb/talon/internal/upload"
)

var (
	previewIncludeHidden bool
	previewRenderFile    string
)

var previewCmd = &cobra.Command{
	Use:   "preview <directory>",
	Short: "Show what a push would upload, without uploading",
	Long: `Preview the migration tree for a directory.

Prints the folder/document structure a push would create. With --render, a
single document is rendered in the terminal along with its extracted
references and labels.

Examples:
  tln preview ~/vault
  tln preview ~/vault --render ~/vault/guides/intro.md`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

// previewNode is the JSON shape for one tree entry.
type previewNode struct {
	Title    string        `json:"title"`
	Kind     string        `json:"kind"`
	Children []previewNode `json:"children,omitempty"`
}

func runPreview(cmd *cobra.Command, args []string) error {
	tree, err := scan.Scan(args[0], scan.Options{IncludeHidden: previewIncludeHidden})
	if err != nil {
		return handleError(ErrDirNotFound, err, "")
	}

	docs := tree.Documents()
	if len(docs) == 0 {
		return handleErrorMsg(ErrNothingToDo, "no markdown files found", "Check the directory, or pass --include-hidden")
	}

	if previewRenderFile != "" {
		return renderDocument(previewRenderFile)
	}

	if jsonOutput {
		outputSuccess(toPreviewNode(tree))
		return nil
	}

	fmt.Print(ui.RenderTreeFunc(tree, annotateDocument))
	fmt.Printf("\nfound %d markdown file(s); nothing uploaded\n", len(docs))
	return nil
}

// annotateDocument appends the reference and label counts a document would
// produce, so a preview shows the interesting part of the upload up front.
func annotateDocument(n *scan.Node) string {
	if n.IsContainer() {
		return ""
	}
	raw, err := os.ReadFile(n.Path)
	if err != nil {
		return ""
	}
	meta, body, _ := parser.SplitFrontmatter(string(raw))
	refs, _ := parser.ExtractRefs(body)
	labels := upload.TagsFromMetadata(meta)
	if len(refs) == 0 && len(labels) == 0 {
		return ""
	}
	return ui.Hint(fmt.Sprintf("(%d link(s), %d label(s))", len(refs), len(labels)))
}

func toPreviewNode(n *scan.Node) previewNode {
	kind := "document"
	if n.IsContainer() {
		kind = "container"
	}
	out := previewNode{Title: n.Title, Kind: kind}
	for _, c := range n.Children {
		out.Children = append(out.Children, toPreviewNode(c))
	}
	return out
}

// renderDocument shows one document the way the uploader sees it: body
// rendered for the terminal, plus the references and labels it would
// produce.
func renderDocument(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return handleError(ErrFileReadError, err, "")
	}

	meta, body, err := parser.SplitFrontmatter(string(raw))
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Warningf("%v", err))
	}
	refs, _ := parser.ExtractRefs(body)

	display := ui.NewDisplayContext()
	rendered, err := ui.RenderMarkdown(body, display.TermWidth)
	if err != nil {
		return handleError(ErrInternal, fmt.Errorf("render markdown: %w", err), "")
	}
	fmt.Print(rendered)

	if len(refs) > 0 {
		fmt.Println(ui.Header("References"))
		for _, ref := range refs {
			fmt.Printf("  %s %s\n", ui.NoteID(ref.Name), ui.Hint(fmt.Sprintf("line %d", ref.Line)))
		}
	}
	if tags := upload.TagsFromMetadata(meta); len(tags) > 0 {
		fmt.Println(ui.Header("Labels"))
		for _, tag := range tags {
			name, value := upload.SplitTag(tag)
			if value != "" {
				fmt.Printf("  #%s=%s\n", name, value)
			} else {
				fmt.Printf("  #%s\n", name)
			}
		}
	}
	return nil
}

func init() {
	previewCmd.Flags().BoolVar(&previewIncludeHidden, "include-hidden", false, "Include hidden files and folders")
	previewCmd.Flags().StringVar(&previewRenderFile, "render", "", "Render a single document in the terminal")
}
