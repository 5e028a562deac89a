package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gistpad/gpd/internal/note"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a folder or a note",
}

var addFolderCmd = &cobra.Command{
	Use:   "folder <title>",
	Short: "Add an empty folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddFolder,
}

var (
	addNoteKind string
	addNoteFile string
)

var addNoteCmd = &cobra.Command{
	Use:   "note <folder> <title>",
	Short: "Add a note to a folder",
	Long: `Add a note to a folder, creating the folder if needed.

Content is read from --file, or from stdin when --file is "-" or omitted
with piped input. An empty note is created otherwise.

Examples:
  gpd add note Work "Meeting notes"
  gpd add note Work Roadmap --file roadmap.md
  cat diagram.mmd | gpd add note Work Flow --kind diagram --file -`,
	Args: cobra.ExactArgs(2),
	RunE: runAddNote,
}

func init() {
	addNoteCmd.Flags().StringVar(&addNoteKind, "kind", string(note.KindMarkdown), "Content kind: markdown or diagram")
	addNoteCmd.Flags().StringVar(&addNoteFile, "file", "", "Read content from a file ('-' for stdin)")
	addCmd.AddCommand(addFolderCmd)
	addCmd.AddCommand(addNoteCmd)
}

func runAddFolder(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, w, err := loadWorkspace(cfg)
	if err != nil {
		return err
	}

	title := args[0]
	if w.FindFolder(title) != nil {
		return fmt.Errorf("folder %q already exists", title)
	}

	w.Folders = append(w.Folders, note.Folder{
		ID:       note.NewID(),
		Title:    title,
		Expanded: true,
	})
	if err := store.Save(w); err != nil {
		return err
	}

	fmt.Printf("Added folder %q\n", title)
	return nil
}

func runAddNote(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, w, err := loadWorkspace(cfg)
	if err != nil {
		return err
	}

	folderTitle, title := args[0], args[1]

	kind := note.Kind(addNoteKind)
	if kind != note.KindMarkdown && kind != note.KindDiagram {
		return fmt.Errorf("unknown kind %q (want markdown or diagram)", addNoteKind)
	}

	content, err := readContent(addNoteFile)
	if err != nil {
		return err
	}

	folder := w.FindFolder(folderTitle)
	if folder == nil {
		w.Folders = append(w.Folders, note.Folder{
			ID:       note.NewID(),
			Title:    folderTitle,
			Expanded: true,
		})
		folder = &w.Folders[len(w.Folders)-1]
	}
	if folder.FindFile(title) != nil {
		return fmt.Errorf("note %q already exists in folder %q", title, folderTitle)
	}

	folder.Files = append(folder.Files, note.File{
		ID:      note.NewID(),
		Title:   title,
		Kind:    kind,
		Content: content,
	})
	if err := store.Save(w); err != nil {
		return err
	}

	fmt.Printf("Added note %q to folder %q\n", title, folderTitle)
	return nil
}

// readContent reads note content from a file path, stdin ('-'), or returns
// empty content when no source is given.
func readContent(path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}
}
