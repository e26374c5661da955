package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/talon/internal/etapi"
	"github.com/aidanlsb/talon/internal/manifest"
	"github.com/aidanlsb/talon/internal/scan"
	"github.com/aidanlsb/talon/internal/ui"
)

// cssTrackedName is the manifest key for the theme note, so repeated
// uploads update the same note instead of creating duplicates.
const cssTrackedName = "appCss"

var cssCmd = &cobra.Command{
	Use:   "css <file.css>",
	Short: "Upload a CSS theme note to Trilium",
	Long: `Upload a stylesheet as a code note labeled #appCss, which Trilium
injects into its UI. The note ID is remembered in a manifest next to the
CSS file, so running the command again updates the existing note.

Examples:
  tln css ~/vault/theme.css`,
	Args: cobra.ExactArgs(1),
	RunE: runCSS,
}

// cssResult is the JSON payload for a CSS upload.
type cssResult struct {
	NoteID  string `json:"note_id"`
	Updated bool   `json:"updated"`
}

func runCSS(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !strings.EqualFold(filepath.Ext(path), ".css") {
		return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("not a CSS file: %s", path), "")
	}

	server, err := resolveServer()
	if err != nil {
		return handleError(ErrServerNotConfigured, err, "")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return handleError(ErrFileReadError, err, "")
	}

	client := etapi.New(server.URL, server.Token, nil)

	// The manifest lives next to the stylesheet. Losing it just means the
	// next upload creates a fresh note.
	var db *manifest.DB
	db, err = manifest.Open(filepath.Join(filepath.Dir(path), scan.StateDirName))
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Warningf("manifest unavailable: %v", err))
		db = nil
	} else {
		defer db.Close()
	}

	if db != nil {
		noteID, err := db.TrackedNoteID(cssTrackedName)
		if err != nil {
			fmt.Fprintln(os.Stderr, ui.Warningf("%v", err))
		} else if noteID != "" {
			if err := client.UpdateNoteContent(noteID, string(content)); err != nil {
				return handleError(ErrUploadFailed, fmt.Errorf("update CSS note: %w", err), "")
			}
			if jsonOutput {
				outputSuccess(cssResult{NoteID: noteID, Updated: true})
			} else {
				fmt.Println(ui.Successf("updated CSS note %s", ui.NoteID(noteID)))
			}
			return nil
		}
	}

	noteID, err := client.CreateNote(etapi.CreateNoteParams{
		ParentNoteID: server.ParentNoteID,
		Title:        "custom",
		Type:         "code",
		Mime:         "text/css",
		Content:      string(content),
	})
	if err != nil {
		return handleError(ErrUploadFailed, fmt.Errorf("create CSS note: %w", err), "")
	}

	if _, err := client.CreateAttribute(etapi.CreateAttributeParams{
		NoteID: noteID,
		Type:   "label",
		Name:   cssTrackedName,
	}); err != nil {
		fmt.Fprintln(os.Stderr, ui.Warningf("add #%s label: %v", cssTrackedName, err))
	}

	if db != nil {
		if err := db.TrackNote(cssTrackedName, noteID); err != nil {
			fmt.Fprintln(os.Stderr, ui.Warningf("%v", err))
		}
	}

	if jsonOutput {
		outputSuccess(cssResult{NoteID: noteID})
	} else {
		fmt.Println(ui.Successf("created CSS note %s", ui.NoteID(noteID)))
		fmt.Println(ui.Hint("Trilium applies #appCss notes after a frontend reload"))
	}
	return nil
}
