// gpd - note workspace with gist backup
//
// Manages a local workspace of Markdown and diagram notes and keeps it
// backed up to a gist-style cloud store. The sync engine compares content
// fingerprints against the last-synced baseline to detect divergence,
// surface conflicts, and auto-save recent edits.
package main

import (
	"fmt"
	"os"

	"github.com/gistpad/gpd/internal/commands"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
