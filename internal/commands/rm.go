package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Remove a folder or a note",
}

var rmFolderCmd = &cobra.Command{
	Use:   "folder <title>",
	Short: "Remove a folder and all its notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runRmFolder,
}

var rmNoteCmd = &cobra.Command{
	Use:   "note <folder> <title>",
	Short: "Remove a note",
	Args:  cobra.ExactArgs(2),
	RunE:  runRmNote,
}

func init() {
	rmCmd.AddCommand(rmFolderCmd)
	rmCmd.AddCommand(rmNoteCmd)
}

func runRmFolder(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, w, err := loadWorkspace(cfg)
	if err != nil {
		return err
	}

	title := args[0]
	kept := w.Folders[:0]
	removed := false
	for _, folder := range w.Folders {
		if folder.Title == title {
			removed = true
			continue
		}
		kept = append(kept, folder)
	}
	if !removed {
		return fmt.Errorf("no folder %q", title)
	}
	w.Folders = kept

	if err := store.Save(w); err != nil {
		return err
	}

	fmt.Printf("Removed folder %q\n", title)
	return nil
}

func runRmNote(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, w, err := loadWorkspace(cfg)
	if err != nil {
		return err
	}

	folder := w.FindFolder(args[0])
	if folder == nil {
		return fmt.Errorf("no folder %q", args[0])
	}

	kept := folder.Files[:0]
	removed := false
	for _, file := range folder.Files {
		if file.Title == args[1] {
			removed = true
			continue
		}
		kept = append(kept, file)
	}
	if !removed {
		return fmt.Errorf("no note %q in folder %q", args[1], args[0])
	}
	folder.Files = kept

	if err := store.Save(w); err != nil {
		return err
	}

	fmt.Printf("Removed note %q from folder %q\n", args[1], args[0])
	return nil
}
