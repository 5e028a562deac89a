package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List folders and notes",
	RunE:  runLs,
}

func runLs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, w, err := loadWorkspace(cfg)
	if err != nil {
		return err
	}

	if len(w.Folders) == 0 {
		fmt.Println("(empty workspace)")
		return nil
	}

	for _, folder := range w.Folders {
		fmt.Printf("%s/\n", folder.Title)
		for _, file := range folder.Files {
			fmt.Printf("  %s (%s, %d bytes)\n", file.Title, file.Kind, len(file.Content))
		}
	}
	return nil
}
