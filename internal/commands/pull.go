package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gistpad/gpd/internal/gist"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace local notes with the cloud backup",
	Long: `Replace the local workspace with the current cloud backup.

This overwrites local notes without prompting. Use 'gpd check' for the
conflict-aware path.`,
	RunE: runPull,
}

func runPull(cmd *cobra.Command, args []string) error {
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
	return engine.Pull(ctx)
}
