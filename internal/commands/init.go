package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gistpad/gpd/internal/config"
	"github.com/gistpad/gpd/internal/note"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .gistpad config and an empty workspace",
	Long: `Create a .gistpad configuration file in the current directory and an
empty workspace under the data directory.

The API token is read from GISTPAD_TOKEN or GITHUB_TOKEN (or from the
token field in .gistpad). No gist is created until the first save.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.GetPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := &config.Config{}
	if err := cfg.Save(); err != nil {
		return err
	}

	// Materialize an empty workspace so editing commands and the watcher
	// have a file to work with.
	loaded, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	store := note.NewStore(loaded.ResolvedDataDir())
	if err := store.Save(&note.Workspace{}); err != nil {
		return err
	}

	fmt.Printf("Created %s and %s\n", path, store.Path())
	fmt.Println("Set GISTPAD_TOKEN (or GITHUB_TOKEN) and run 'gpd save' to create the cloud backup.")
	return nil
}
