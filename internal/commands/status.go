package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gistpad/gpd/internal/sync"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workspace and sync status",
	Long: `Show the workspace summary and sync baseline.

Displays:
  - Folder and file counts
  - The active remote identifier (if any)
  - The last-synced fingerprint
  - Whether a credential is available

Examples:
  gpd status           # Show status
  gpd status --json    # Output as JSON`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
}

// StatusResult contains the result of the status command.
type StatusResult struct {
	Folders        int    `json:"folders"`
	Files          int    `json:"files"`
	GistID         string `json:"gist_id,omitempty"`
	LastSyncedHash string `json:"last_synced_hash,omitempty"`
	HasCredential  bool   `json:"has_credential"`
	IntervalSecs   int    `json:"sync_interval_seconds"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, w, err := loadWorkspace(cfg)
	if err != nil {
		return err
	}

	state, err := sync.LoadState(statePath(cfg))
	if err != nil {
		return fmt.Errorf("loading sync state: %w", err)
	}

	result := StatusResult{
		Folders:        len(w.Folders),
		Files:          w.FileCount(),
		GistID:         state.GistID,
		LastSyncedHash: state.LastSyncedHash,
		HasCredential:  cfg.ResolvedToken() != "",
		IntervalSecs:   int(cfg.ResolvedInterval().Seconds()),
	}

	if statusJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Workspace: %d folders, %d files\n", result.Folders, result.Files)
	if result.GistID != "" {
		fmt.Printf("Backup:    %s\n", result.GistID)
		fmt.Printf("Baseline:  %s\n", result.LastSyncedHash)
	} else {
		fmt.Println("Backup:    not configured (run 'gpd save' to create one)")
	}
	if result.HasCredential {
		fmt.Println("Token:     available")
	} else {
		fmt.Println("Token:     missing (set GISTPAD_TOKEN or GITHUB_TOKEN)")
	}
	fmt.Printf("Interval:  %ds\n", result.IntervalSecs)
	return nil
}
