// Package commands implements the gpd CLI commands.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gistpad/gpd/internal/config"
)

var versionInfo struct {
	version string
	commit  string
	date    string
}

// SetVersionInfo sets version information from main (populated by goreleaser).
func SetVersionInfo(version, commit, date string) {
	versionInfo.version = version
	versionInfo.commit = commit
	versionInfo.date = date
}

var configFlag string

var rootCmd = &cobra.Command{
	Use:   "gpd",
	Short: "note workspace with gist backup",
	Long: `gpd manages a local note workspace (Markdown and diagram files in
folders) with optional cloud backup to a gist-style document store.

The sync engine keeps a fingerprint of the last state confirmed on both
sides. Periodic checks compare the remote against that baseline: divergence
surfaces a countdown-gated conflict prompt, agreement enables auto-save of
recent local edits.

Setup:
  gpd init              - Create .gistpad config and an empty workspace
  gpd save              - Back up the workspace (creates the gist on first save)
  gpd watch             - Run the periodic sync loop

Environment variables:
  GISTPAD_TOKEN         - API token (takes precedence over the config file)
  GITHUB_TOKEN          - Fallback API token`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Use an alternate .gistpad config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(revisionsCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(findBackupCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadDotenvBestEffort() {
	// Prefer the directory containing .gistpad so subdir invocations work.
	if path, err := config.FindPath(); err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))
		return
	}
	// Fallback: load from the current working directory.
	_ = godotenv.Load()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gpd %s\n", versionInfo.version)
		if versionInfo.commit != "" && versionInfo.commit != "none" {
			fmt.Printf("  commit: %s\n", versionInfo.commit)
		}
		if versionInfo.date != "" && versionInfo.date != "unknown" {
			fmt.Printf("  built:  %s\n", versionInfo.date)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	// Parse --config globally before cobra runs so every command (and the
	// dotenv lookup) sees the override.
	for i, arg := range os.Args[1:] {
		if arg == "--config" && i+2 < len(os.Args) {
			config.SetPath(os.Args[i+2])
		} else if len(arg) > len("--config=") && arg[:len("--config=")] == "--config=" {
			config.SetPath(arg[len("--config="):])
		}
	}
	loadDotenvBestEffort()

	return rootCmd.Execute()
}
