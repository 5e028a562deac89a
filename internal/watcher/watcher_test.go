package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workspace.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("Failed to write workspace file: %v", err)
	}

	w, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(path); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(`{"folders":[]}`), 0644); err != nil {
		t.Fatalf("Failed to modify workspace file: %v", err)
	}

	select {
	case ev := <-w.Events():
		abs, _ := filepath.Abs(path)
		if ev.Path != abs {
			t.Errorf("Expected event for %s, got %s", abs, ev.Path)
		}
		if ev.At.IsZero() {
			t.Error("Expected non-zero event time")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for write event")
	}
}

func TestWatcher_DetectsAtomicRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workspace.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("Failed to write workspace file: %v", err)
	}

	w, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(path); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	// Simulate the store's write-rename save.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(`{"folders":[]}`), 0644); err != nil {
		t.Fatalf("Failed to write tmp file: %v", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		t.Fatalf("Failed to rename: %v", err)
	}

	select {
	case <-w.Events():
		// The replaced inode still produces an event because the directory
		// is watched, not the file.
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for rename event")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workspace.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("Failed to write workspace file: %v", err)
	}

	w, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(path); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write other file: %v", err)
	}

	select {
	case ev := <-w.Events():
		t.Errorf("Expected no event for unrelated file, got %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StartTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workspace.json")

	w, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(path); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(path); err == nil {
		t.Error("Expected error starting an already running watcher")
	}
	if !w.IsRunning() {
		t.Error("Expected watcher still running")
	}
}

func TestWatcher_StopIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workspace.json")

	w, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(path); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Second Stop failed: %v", err)
	}
	if w.IsRunning() {
		t.Error("Expected watcher stopped")
	}
}
