package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gistpad/gpd/internal/config"
	"github.com/gistpad/gpd/internal/gist"
	"github.com/gistpad/gpd/internal/note"
	"github.com/gistpad/gpd/internal/sync"
)

// loadConfig loads and validates the .gistpad configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no .gistpad file found - run 'gpd init' first")
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid .gistpad config: %w", err)
	}
	return cfg, nil
}

// statePath returns the sync state file path for a config.
func statePath(cfg *config.Config) string {
	return filepath.Join(cfg.ResolvedDataDir(), sync.StateFileName)
}

// newStoreClient builds the gist client from a config.
func newStoreClient(cfg *config.Config) *gist.Client {
	if token := cfg.ResolvedToken(); token != "" {
		return gist.NewWithToken(cfg.ResolvedAPIURL(), token)
	}
	return gist.New(cfg.ResolvedAPIURL())
}

// buildEngine wires a sync engine from a config. The returned state is the
// engine's own; callers needing to inspect it should read it before running
// engine operations concurrently.
func buildEngine(cfg *config.Config, prompter sync.Prompter, logf func(string, ...any)) (*sync.Engine, *sync.State, error) {
	state, err := sync.LoadState(statePath(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("loading sync state: %w", err)
	}

	engine := sync.NewEngine(sync.Options{
		Store:         newStoreClient(cfg),
		Workspace:     note.NewStore(cfg.ResolvedDataDir()),
		State:         state,
		StatePath:     statePath(cfg),
		Prompter:      prompter,
		Notifier:      &terminalNotifier{out: os.Stderr},
		HasCredential: func() bool { return cfg.ResolvedToken() != "" },
		Description:   cfg.ResolvedDescription(),
		Public:        cfg.Public,
		Interval:      cfg.ResolvedInterval(),
		Logf:          logf,
	})
	return engine, state, nil
}

// loadWorkspace loads the workspace for a config.
func loadWorkspace(cfg *config.Config) (*note.Store, *note.Workspace, error) {
	store := note.NewStore(cfg.ResolvedDataDir())
	w, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	return store, w, nil
}
