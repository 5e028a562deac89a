package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gistpad/gpd/internal/gist"
	"github.com/gistpad/gpd/internal/sync"
)

var revisionsCmd = &cobra.Command{
	Use:   "revisions",
	Short: "List cloud backup revisions",
	Long: `List the revision history of the cloud backup, newest first.

Pass a version to 'gpd restore' to roll the workspace back.`,
	RunE: runRevisions,
}

func runRevisions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	state, err := sync.LoadState(statePath(cfg))
	if err != nil {
		return fmt.Errorf("loading sync state: %w", err)
	}
	if state.GistID == "" {
		fmt.Println("No cloud backup configured yet")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gist.DefaultTimeout)
	defer cancel()

	revisions, err := newStoreClient(cfg).ListRevisions(ctx, state.GistID)
	if err != nil {
		return err
	}
	if len(revisions) == 0 {
		fmt.Println("No revisions found")
		return nil
	}

	for _, rev := range revisions {
		fmt.Printf("%s  %s\n", rev.Version, rev.CommittedAt.Format(time.RFC3339))
	}
	return nil
}

var restoreCmd = &cobra.Command{
	Use:   "restore <version>",
	Short: "Restore a cloud backup revision",
	Long: `Replace the local workspace with a historical revision and save it
as the new cloud backup head.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
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
	return engine.Restore(ctx, args[0])
}

var findBackupAdopt bool

var findBackupCmd = &cobra.Command{
	Use:   "find-backup",
	Short: "Find the newest gist on the account",
	Long: `Find the newest gist on the authenticated account.

Useful after losing local state: shows the newest gist so you can decide
whether it is your notes backup. With --adopt, records its identifier as
the active backup and pulls its content into the workspace.`,
	RunE: runFindBackup,
}

func init() {
	findBackupCmd.Flags().BoolVar(&findBackupAdopt, "adopt", false, "Adopt the found gist as the active backup and pull it")
}

func runFindBackup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), gist.DefaultTimeout)
	defer cancel()

	snap, err := newStoreClient(cfg).Newest(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		fmt.Println("No gists found on this account")
		return nil
	}

	fmt.Printf("Newest gist: %s (%d files, updated %s)\n",
		snap.ID, len(snap.Files), snap.UpdatedAt.Format(time.RFC3339))

	if !findBackupAdopt {
		fmt.Println("Run with --adopt to use it as the active backup")
		return nil
	}

	state, err := sync.LoadState(statePath(cfg))
	if err != nil {
		return fmt.Errorf("loading sync state: %w", err)
	}
	state.GistID = snap.ID
	state.LastSyncedHash = ""
	if err := sync.SaveState(statePath(cfg), state); err != nil {
		return fmt.Errorf("persisting sync state: %w", err)
	}

	engine, _, err := buildEngine(cfg, nil, nil)
	if err != nil {
		return err
	}
	return engine.Pull(ctx)
}
