package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gistpad/gpd/internal/gist"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Back up the workspace to the cloud",
	Long: `Back up the workspace to the cloud store.

Creates the backup gist on first save; later saves update it in place,
deleting remote files that no longer exist locally.`,
	RunE: runSave,
}

func runSave(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, _, err := buildEngine(cfg, nil, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), gist.DefaultTimeout)
	defer cancel()
	return engine.Save(ctx)
}
