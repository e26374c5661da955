package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/talon/internal/etapi"
	"github.com/aidanlsb/talon/internal/manifest"
	"github.com/aidanlsb/talon/internal/scan"
	"github.com/aidanlsb/talon/internal/ui"
	"github.com/aidanlsb/talon/internal/upload"
)

var (
	pushIncludeHidden bool
	pushVerbose       bool
)

var pushCmd = &cobra.Command{
	Use:   "push <directory>",
	Short: "Upload a markdown tree to Trilium",
	Long: `Upload a directory of markdown files to Trilium, preserving hierarchy.

The whole tree is created first, then wikilinks are resolved in a second
pass so documents may freely reference notes created after them. Targets
that exist nowhere in the tree get placeholder notes under an Orphans
container. A manifest of created notes is written to .talon/ inside the
pushed directory.

Examples:
  # Push a vault under the root note
  tln push ~/vault

  # Push under a specific parent note using a configured server
  tln push ~/vault --server home --parent abc123

  # Include hidden files and folders
  tln push ~/vault --include-hidden`,
	Args: cobra.ExactArgs(1),
	RunE: runPush,
}

// pushResult is the JSON payload for a completed push.
type pushResult struct {
	RunID  string         `json:"run_id"`
	Report *upload.Report `json:"report"`
}

func runPush(cmd *cobra.Command, args []string) error {
	dir := args[0]

	server, err := resolveServer()
	if err != nil {
		return handleError(ErrServerNotConfigured, err, "")
	}

	tree, err := scan.Scan(dir, scan.Options{IncludeHidden: pushIncludeHidden})
	if err != nil {
		return handleError(ErrDirNotFound, err, "")
	}

	docs := tree.Documents()
	if len(docs) == 0 {
		return handleErrorMsg(ErrNothingToDo, "no markdown files found", "Check the directory, or pass --include-hidden")
	}
	if !jsonOutput {
		fmt.Printf("scanning %s %s\n", ui.NoteID(tree.Path), ui.Count(len(docs), "document", "documents"))
	}

	// The manifest is best-effort: a run proceeds without one.
	var recorder upload.Recorder
	var db *manifest.DB
	runID := manifest.NewRunID(tree.Path, time.Now())
	db, err = manifest.Open(filepath.Join(tree.Path, scan.StateDirName))
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Warningf("manifest unavailable: %v", err))
	} else {
		defer db.Close()
		if err := db.BeginRun(runID, tree.Path, server.ParentNoteID, time.Now()); err != nil {
			fmt.Fprintln(os.Stderr, ui.Warningf("manifest unavailable: %v", err))
			db.Close()
			db = nil
		} else {
			recorder = &manifest.RunRecorder{DB: db, RunID: runID}
		}
	}

	client := etapi.New(server.URL, server.Token, nil)
	uploader := upload.New(client, &upload.Options{
		Recorder: recorder,
		Logf: func(format string, args ...interface{}) {
			if pushVerbose && !jsonOutput {
				fmt.Println(ui.Successf(format, args...))
			}
		},
		Warnf: func(format string, args ...interface{}) {
			fmt.Fprintln(os.Stderr, ui.Warningf(format, args...))
		},
	})

	report := uploader.UploadTree(tree, server.ParentNoteID)

	if db != nil {
		if err := db.FinishRun(runID, time.Now()); err != nil {
			fmt.Fprintln(os.Stderr, ui.Warningf("finish manifest run: %v", err))
		}
	}

	if jsonOutput {
		outputSuccess(pushResult{RunID: runID, Report: report})
	} else {
		printReport(report)
	}

	if report.NotesCreated() == 0 {
		return handleErrorMsg(ErrUploadFailed, "no notes were created", "Check the server URL and token")
	}
	return nil
}

func printReport(r *upload.Report) {
	fmt.Println(ui.Successf("created %d note(s): %d folder(s), %d document(s)",
		r.NotesCreated(), r.ContainersCreated, r.DocumentsCreated))
	if r.LabelsCreated > 0 {
		fmt.Println(ui.Successf("added %d label(s)", r.LabelsCreated))
	}
	if r.PlaceholdersCreated > 0 {
		fmt.Println(ui.Infof("created %d placeholder note(s) for missing wiki links", r.PlaceholdersCreated))
	}
	if r.NotesRewritten > 0 {
		fmt.Println(ui.Successf("resolved %d link(s) in %d note(s)", r.LinksResolved, r.NotesRewritten))
	}
	if r.RelationsCreated > 0 {
		fmt.Println(ui.Successf("created %d relation(s)", r.RelationsCreated))
	}
	for _, title := range r.TitleCollisions {
		fmt.Println(ui.Warningf("duplicate title %q: links resolve to the last note created with it", title))
	}
	if len(r.NoteFailures) > 0 {
		fmt.Println(ui.Errorf("%d note(s) failed", len(r.NoteFailures)))
		for _, f := range r.NoteFailures {
			fmt.Printf("   %s %s\n", ui.SymbolError, f.Path)
		}
	}
	if r.LabelFailures > 0 || r.RewriteFailures > 0 || r.RelationFailures > 0 || r.UnresolvedLinks > 0 {
		fmt.Println(ui.Warningf("partial failures: %d label(s), %d rewrite(s), %d relation(s), %d unresolved link(s)",
			r.LabelFailures, r.RewriteFailures, r.RelationFailures, r.UnresolvedLinks))
	}
}

func init() {
	pushCmd.Flags().BoolVar(&pushIncludeHidden, "include-hidden", false, "Include hidden files and folders")
	pushCmd.Flags().BoolVarP(&pushVerbose, "verbose", "v", false, "Print a line per created note")
}
