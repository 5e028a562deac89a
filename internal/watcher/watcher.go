// Package watcher provides file system watching for the workspace file.
//
// The watch daemon uses it to learn when the user last edited their notes:
// every write to the workspace file becomes an edit instant fed into the
// sync engine's auto-save gating.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EditEvent reports a write to the watched workspace file.
type EditEvent struct {
	// Path is the workspace file that changed.
	Path string
	// At is when the change was observed.
	At time.Time
}

// WorkspaceWatcher watches a single workspace file for edits.
// It uses fsnotify for cross-platform file system event monitoring.
type WorkspaceWatcher struct {
	watcher *fsnotify.Watcher
	events  chan EditEvent
	errors  chan error
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	path    string
}

// New creates a WorkspaceWatcher. The watcher must be started with Start()
// before it will emit events.
func New() (*WorkspaceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &WorkspaceWatcher{
		watcher: watcher,
		events:  make(chan EditEvent, 16),
		errors:  make(chan error, 4),
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching the directory containing the workspace file.
// The directory is watched rather than the file itself so atomic
// write-rename saves (which replace the inode) keep producing events.
func (w *WorkspaceWatcher) Start(workspacePath string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher already running")
	}

	abs, err := filepath.Abs(workspacePath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", workspacePath, err)
	}
	w.path = abs

	if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w.running = true
	w.wg.Add(1)
	go w.processEvents()

	return nil
}

// Stop stops watching and cleans up resources. It blocks until the event
// processing goroutine has exited.
func (w *WorkspaceWatcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("closing watcher: %w", err)
	}

	w.wg.Wait()

	close(w.events)
	close(w.errors)

	return nil
}

// Events returns the channel that emits edit events.
// The channel is closed when the watcher is stopped.
func (w *WorkspaceWatcher) Events() <-chan EditEvent {
	return w.events
}

// Errors returns the channel that emits watch errors.
// The channel is closed when the watcher is stopped.
func (w *WorkspaceWatcher) Errors() <-chan error {
	return w.errors
}

func (w *WorkspaceWatcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if edit, ok := w.convertEvent(event); ok {
				select {
				case w.events <- edit:
				case <-w.done:
					return
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			case <-w.done:
				return
			}
		}
	}
}

// convertEvent filters directory events down to writes of the workspace
// file. Create counts as a write: atomic saves land as rename-into-place.
func (w *WorkspaceWatcher) convertEvent(event fsnotify.Event) (EditEvent, bool) {
	abs, err := filepath.Abs(event.Name)
	if err != nil || abs != w.path {
		return EditEvent{}, false
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return EditEvent{}, false
	}

	return EditEvent{Path: abs, At: time.Now()}, true
}

// IsRunning returns true if the watcher is currently running.
func (w *WorkspaceWatcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
