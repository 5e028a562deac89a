package note

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WorkspaceFileName is the local workspace file name.
const WorkspaceFileName = "workspace.json"

// Store persists the workspace tree as JSON inside a data directory.
//
// Saves use the write-rename pattern so a crash mid-write never corrupts the
// workspace file. Concurrent writers are not supported; the last writer wins.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the workspace file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, WorkspaceFileName)
}

// Load reads the workspace from disk. A missing file yields an empty
// workspace; a corrupt file is an error, since overwriting it could destroy
// notes the user still wants.
func (s *Store) Load() (*Workspace, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &Workspace{}, nil
		}
		return nil, fmt.Errorf("reading workspace: %w", err)
	}

	var w Workspace
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.Path(), err)
	}
	return &w, nil
}

// Save writes the workspace to disk atomically.
func (s *Store) Save(w *Workspace) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling workspace: %w", err)
	}

	tmpPath := s.Path() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing workspace: %w", err)
	}
	return os.Rename(tmpPath, s.Path())
}
