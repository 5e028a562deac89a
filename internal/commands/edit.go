package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var editFile string

var editCmd = &cobra.Command{
	Use:   "edit <folder> <note>",
	Short: "Replace a note's content",
	Long: `Replace a note's content from a file or stdin.

Examples:
  gpd edit Work Roadmap --file roadmap.md
  echo '# Hi' | gpd edit Work Roadmap --file -`,
	Args: cobra.ExactArgs(2),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editFile, "file", "-", "Read content from a file ('-' for stdin)")
}

func runEdit(cmd *cobra.Command, args []string) error {
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
	file := folder.FindFile(args[1])
	if file == nil {
		return fmt.Errorf("no note %q in folder %q", args[1], args[0])
	}

	content, err := readContent(editFile)
	if err != nil {
		return err
	}
	file.Content = content

	if err := store.Save(w); err != nil {
		return err
	}

	fmt.Printf("Updated %q in folder %q\n", args[1], args[0])
	return nil
}
