package commands

import (
	"context"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one sync check now",
	Long: `Run a single sync check against the cloud backup.

Compares the cloud content fingerprint against the last-synced baseline.
Divergence surfaces a countdown-gated conflict prompt; agreement may
trigger an auto-save of recent local edits.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// No timeout: the conflict prompt can legitimately wait on the user.
	engine, _, err := buildEngine(cfg, newTerminalPrompter(), nil)
	if err != nil {
		return err
	}
	return engine.RunCheck(context.Background(), "manual")
}
