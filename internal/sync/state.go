// Sync session state.
//
// IMPORTANT: Concurrent access is not supported. Running multiple gpd
// processes simultaneously may cause race conditions when updating the state
// file. The last writer wins; the baseline fingerprint self-heals on the next
// check, at the cost of one spurious conflict prompt.
package sync

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// StateFileName is the persisted sync state file name.
const StateFileName = "sync-state.json"

// State holds the sync session state.
//
// GistID and LastSyncedHash survive restarts. The two timestamps are
// memory-only and reset to "never" on each process start: lastSuccessfulSync
// feeds the idle-return heuristic, lastLocalEdit feeds auto-save gating and
// conflict countdown selection.
//
// LastSyncedHash, once set, always reflects a fingerprint that was observed
// as the remote's content and accepted as ground truth. It is mutated at
// exactly three points - first-observation adoption, conflict confirm, and
// successful save - and never before the remote operation is confirmed.
type State struct {
	// GistID is the sole pointer to "which remote document is mine".
	GistID string `json:"gist_id,omitempty"`

	// LastSyncedHash is the last fingerprint confirmed to match both local
	// and remote state.
	LastSyncedHash string `json:"last_synced_hash,omitempty"`

	lastSuccessfulSync time.Time
	lastLocalEdit      time.Time
}

// LoadState loads persisted sync state from file.
// Returns empty state (no baseline, triggering first-observation adoption on
// the next check) if the file doesn't exist or is corrupt.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		// Corrupt file - start from no baseline
		return &State{}, nil
	}
	return &state, nil
}

// SaveState saves the persisted portion of the state atomically.
// Uses write-rename to prevent corruption.
func SaveState(path string, state *State) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// HasBaseline reports whether a remote fingerprint has ever been accepted as
// ground truth.
func (s *State) HasBaseline() bool {
	return s.LastSyncedHash != ""
}

// LastSuccessfulSync returns the instant of the last confirmed agreement
// with the remote, or zero if none this session.
func (s *State) LastSuccessfulSync() time.Time {
	return s.lastSuccessfulSync
}

// LastLocalEdit returns the instant of the most recent local edit, or zero
// if none this session.
func (s *State) LastLocalEdit() time.Time {
	return s.lastLocalEdit
}
