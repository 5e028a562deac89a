package sync

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadState_FileNotExists(t *testing.T) {
	// Non-existent file should return empty state (first-observation adoption
	// on the next check)
	state, err := LoadState("/nonexistent/path/sync-state.json")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}

	if state == nil {
		t.Fatal("Expected non-nil state")
	}
	if state.HasBaseline() {
		t.Error("Expected no baseline for missing file")
	}
	if state.GistID != "" {
		t.Errorf("Expected empty GistID, got %s", state.GistID)
	}
}

func TestLoadState_CorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sync-state.json")

	if err := os.WriteFile(path, []byte("this is not valid json"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	// Corrupt file should return empty state, not an error
	state, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if state.HasBaseline() {
		t.Error("Expected no baseline for corrupt file")
	}
}

func TestLoadState_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sync-state.json")

	content := `{
  "gist_id": "abc123",
  "last_synced_hash": "deadbeef"
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	state, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}

	if state.GistID != "abc123" {
		t.Errorf("Expected gist id abc123, got %s", state.GistID)
	}
	if state.LastSyncedHash != "deadbeef" {
		t.Errorf("Expected hash deadbeef, got %s", state.LastSyncedHash)
	}
	if !state.HasBaseline() {
		t.Error("Expected HasBaseline for loaded hash")
	}
}

func TestSaveState_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "subdir", "sync-state.json")

	state := &State{
		GistID:         "abc123",
		LastSyncedHash: "deadbeef",
	}

	if err := SaveState(path, state); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	loaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if loaded.GistID != "abc123" || loaded.LastSyncedHash != "deadbeef" {
		t.Errorf("Round trip mismatch: got %+v", loaded)
	}
}

func TestSaveState_TimestampsNotPersisted(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sync-state.json")

	state := &State{GistID: "abc123", LastSyncedHash: "deadbeef"}
	state.lastSuccessfulSync = fixedNow()
	state.lastLocalEdit = fixedNow()

	if err := SaveState(path, state); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	loaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if !loaded.LastSuccessfulSync().IsZero() {
		t.Error("Expected lastSuccessfulSync to reset on load")
	}
	if !loaded.LastLocalEdit().IsZero() {
		t.Error("Expected lastLocalEdit to reset on load")
	}
}

func TestSaveState_Atomic(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sync-state.json")

	if err := SaveState(path, &State{GistID: "abc123"}); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	tmpPath := path + ".tmp"
	if _, err := os.Stat(tmpPath); !os.IsNotExist(err) {
		t.Error("Expected .tmp file to be removed after atomic save")
	}
}
