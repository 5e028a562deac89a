package sync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	stdsync "sync"
	"time"

	"github.com/gistpad/gpd/internal/gist"
	"github.com/gistpad/gpd/internal/note"
)

// DefaultInterval is the periodic check interval.
const DefaultInterval = 2 * time.Minute

// RemoteStore is the subset of the gist client the engine depends on.
// Implemented by *gist.Client; tests substitute a fake.
type RemoteStore interface {
	Fetch(ctx context.Context, id string) (*gist.Snapshot, error)
	Create(ctx context.Context, description string, public bool, files map[string]string) (*gist.Snapshot, error)
	Update(ctx context.Context, id string, files map[string]string, deletions []string) (*gist.Snapshot, error)
	FetchRevision(ctx context.Context, id, version string) (*gist.Snapshot, error)
}

// WorkspaceStore persists the local workspace tree. Implemented by *note.Store.
type WorkspaceStore interface {
	Load() (*note.Workspace, error)
	Save(w *note.Workspace) error
}

// Options configures an Engine.
type Options struct {
	Store     RemoteStore
	Workspace WorkspaceStore
	State     *State
	StatePath string

	// Prompter resolves conflicts. Nil means conflicts are always cancelled.
	Prompter Prompter
	// Notifier receives status and notification events. Nil means discard.
	Notifier Notifier
	// HasCredential reports whether a remote credential is currently
	// available. Nil means "always".
	HasCredential func() bool

	// Description and Public are applied when creating the remote snapshot.
	Description string
	Public      bool

	// Interval between periodic checks. Zero means DefaultInterval.
	Interval time.Duration
	// Now returns the current time. Zero means time.Now.
	Now func() time.Time
	// Logf receives periodic-tick diagnostics. Nil means discard.
	Logf func(format string, args ...any)
}

// Engine reconciles the local workspace against the remote snapshot.
//
// It owns the single mutable gist-id/baseline-hash pair. The pair is mutated
// at exactly three points: first-observation adoption, conflict confirm, and
// successful save. It is never advanced on a failure path.
type Engine struct {
	store         RemoteStore
	ws            WorkspaceStore
	state         *State
	statePath     string
	prompter      Prompter
	notifier      Notifier
	hasCredential func() bool
	description   string
	public        bool
	interval      time.Duration
	now           func() time.Time
	logf          func(string, ...any)

	// mu serializes checks, saves, and state mutation. Periodic ticks use
	// TryLock so a tick that fires while work is in flight is skipped, not
	// queued.
	mu stdsync.Mutex
}

// NewEngine creates an Engine from options, applying defaults.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		store:         opts.Store,
		ws:            opts.Workspace,
		state:         opts.State,
		statePath:     opts.StatePath,
		prompter:      opts.Prompter,
		notifier:      opts.Notifier,
		hasCredential: opts.HasCredential,
		description:   opts.Description,
		public:        opts.Public,
		interval:      opts.Interval,
		now:           opts.Now,
		logf:          opts.Logf,
	}
	if e.notifier == nil {
		e.notifier = NopNotifier{}
	}
	if e.hasCredential == nil {
		e.hasCredential = func() bool { return true }
	}
	if e.interval <= 0 {
		e.interval = DefaultInterval
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.logf == nil {
		e.logf = func(string, ...any) {}
	}
	return e
}

// Interval returns the periodic check interval.
func (e *Engine) Interval() time.Duration {
	return e.interval
}

// idleReturnThreshold is the gap after which a check counts as an
// idle-return: the user has been away long enough that a conflict prompt
// should resolve with less urgency toward local content.
func (e *Engine) idleReturnThreshold() time.Duration {
	return 2 * e.interval
}

// MarkLocalEdit records the instant of the most recent local edit.
func (e *Engine) MarkLocalEdit(t time.Time) {
	e.mu.Lock()
	e.state.lastLocalEdit = t
	e.mu.Unlock()
}

// Run performs one immediate check, then checks at the configured interval
// until ctx is cancelled. Ticks are explicitly serialized: a tick that fires
// while a previous check (or a manual save) is still in flight is skipped
// rather than queued; the next tick is the implicit retry. Per-tick failures
// are logged and never terminate the loop.
func (e *Engine) Run(ctx context.Context) error {
	e.tick(ctx, "startup")

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.tick(ctx, "interval")
		}
	}
}

func (e *Engine) tick(ctx context.Context, reason string) {
	if !e.mu.TryLock() {
		e.logf("sync check (%s) skipped: previous operation still in flight", reason)
		return
	}
	defer e.mu.Unlock()

	if err := e.runCheck(ctx, reason); err != nil {
		e.logf("sync check (%s) failed: %v", reason, err)
	}
}

// RunCheck performs a single reconciliation check.
func (e *Engine) RunCheck(ctx context.Context, reason string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runCheck(ctx, reason)
}

// runCheck is the heart of the machine. Callers hold e.mu.
//
// An unconfigured backup or a failed fetch aborts the check silently: both
// are valid steady states for a workspace without cloud backup, not
// failures. The zero lastSuccessfulSync ("never this session") makes the
// first check after a restart count as an idle-return, matching a user
// coming back to a long-closed workspace.
func (e *Engine) runCheck(ctx context.Context, reason string) error {
	now := e.now()
	idleReturn := now.Sub(e.state.lastSuccessfulSync) > e.idleReturnThreshold()

	if e.state.GistID == "" {
		e.logf("sync check (%s): no backup configured", reason)
		return nil
	}

	snap, err := e.store.Fetch(ctx, e.state.GistID)
	if err != nil {
		e.logf("sync check (%s): fetch failed: %v", reason, err)
		return nil
	}

	cloudHash := Fingerprint(snap.Files)

	// First observation ever (fresh device): there is no prior baseline to
	// compare local edits against, so the remote read is adopted as ground
	// truth. No conflict prompt, no auto-save this check.
	if !e.state.HasBaseline() {
		e.state.LastSyncedHash = cloudHash
		if err := e.persistState(); err != nil {
			return err
		}
		e.state.lastSuccessfulSync = now
		e.notifier.Status(StatusSynced)
		return nil
	}

	if cloudHash != e.state.LastSyncedHash {
		return e.resolveConflict(ctx, snap, idleReturn)
	}

	e.state.lastSuccessfulSync = now
	e.notifier.Status(StatusSynced)
	return e.maybeAutoSave(ctx, now)
}

// maybeAutoSave saves if the user edited within the last check window and a
// fresh re-check of the remote hash still matches the baseline. The re-check
// guards against the remote changing between the equality check and this
// decision; a mismatch means the next regular check will surface the
// conflict instead.
func (e *Engine) maybeAutoSave(ctx context.Context, now time.Time) error {
	if e.state.lastLocalEdit.IsZero() || now.Sub(e.state.lastLocalEdit) >= e.interval {
		return nil
	}

	snap, err := e.store.Fetch(ctx, e.state.GistID)
	if err != nil {
		e.logf("auto-save skipped: re-check fetch failed: %v", err)
		return nil
	}
	if Fingerprint(snap.Files) != e.state.LastSyncedHash {
		e.logf("auto-save skipped: remote changed since eligibility check")
		return nil
	}

	return e.save(ctx)
}

// Save flattens the current workspace and writes it to the remote store.
func (e *Engine) Save(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.save(ctx)
}

// save performs the remote write. Callers hold e.mu.
//
// The baseline fingerprint is recomputed from the store's returned content,
// not from the locally flattened map: the store is the source of truth for
// the exact stored bytes. On any failure the sync state is left untouched.
func (e *Engine) save(ctx context.Context) error {
	if !e.hasCredential() {
		e.notifier.Notify(SeverityWarning, "Sign in to back up your notes")
		return nil
	}

	e.notifier.Status(StatusSaving)

	w, err := e.ws.Load()
	if err != nil {
		e.notifier.Status(StatusError)
		e.notifier.Notify(SeverityError, fmt.Sprintf("Save failed: %v", err))
		return err
	}
	files := note.Flatten(w)

	var saved *gist.Snapshot
	if e.state.GistID != "" {
		// The store does not infer deletion from omission: diff against the
		// current remote listing and delete removed paths explicitly.
		prior, err := e.store.Fetch(ctx, e.state.GistID)
		if err != nil {
			e.notifier.Status(StatusError)
			e.notifier.Notify(SeverityError, fmt.Sprintf("Save failed: %v", err))
			return err
		}
		var deletions []string
		for p := range prior.Files {
			if _, ok := files[p]; !ok {
				deletions = append(deletions, p)
			}
		}
		sort.Strings(deletions)

		saved, err = e.store.Update(ctx, e.state.GistID, files, deletions)
		if err != nil {
			e.notifier.Status(StatusError)
			e.notifier.Notify(SeverityError, fmt.Sprintf("Save failed: %v", err))
			return err
		}
	} else {
		saved, err = e.store.Create(ctx, e.description, e.public, files)
		if err != nil {
			e.notifier.Status(StatusError)
			e.notifier.Notify(SeverityError, fmt.Sprintf("Save failed: %v", err))
			return err
		}
	}

	e.state.GistID = saved.ID
	e.state.LastSyncedHash = Fingerprint(saved.Files)
	if err := e.persistState(); err != nil {
		e.notifier.Status(StatusError)
		e.notifier.Notify(SeverityError, fmt.Sprintf("Save failed: %v", err))
		return err
	}
	e.state.lastSuccessfulSync = e.now()
	e.notifier.Status(StatusSynced)
	e.notifier.Notify(SeveritySuccess, "Notes backed up")
	return nil
}

// resolveConflict presents the countdown-gated choice between the fetched
// remote snapshot and the local workspace. The baseline hash advances only
// in the confirm path. Countdown expiry is treated as cancel: silently
// replacing local content would be the one unrecoverable outcome.
func (e *Engine) resolveConflict(ctx context.Context, snap *gist.Snapshot, idleReturn bool) error {
	now := e.now()
	prompt := Prompt{
		Countdown: countdownFor(now, e.state.lastLocalEdit),
		Message: fmt.Sprintf("Cloud backup changed since the last sync (%d files, updated %s). Load it and replace local notes?",
			len(snap.Files), snap.UpdatedAt.Format(time.RFC3339)),
		IdleReturn: idleReturn,
	}

	decision := DecisionCancelled
	if e.prompter != nil {
		d, err := e.prompter.Resolve(ctx, prompt)
		if err != nil {
			return fmt.Errorf("resolving conflict: %w", err)
		}
		decision = d
	}

	if decision != DecisionConfirmed {
		e.notifier.Notify(SeverityWarning, "Keeping local notes; your next save will overwrite the newer cloud backup")
		return nil
	}

	if err := e.adoptSnapshot(snap); err != nil {
		return err
	}
	e.notifier.Notify(SeveritySuccess, "Notes loaded from cloud backup")
	return nil
}

// adoptSnapshot atomically switches to a remote snapshot: replace and persist
// the local workspace first, then advance the gist-id/baseline pair. Callers
// hold e.mu. The snapshot's identifier may differ from the previous one.
func (e *Engine) adoptSnapshot(snap *gist.Snapshot) error {
	w := note.Rebuild(snap.Files)
	if err := e.ws.Save(w); err != nil {
		e.notifier.Status(StatusError)
		e.notifier.Notify(SeverityError, fmt.Sprintf("Load failed: %v", err))
		return err
	}

	e.state.GistID = snap.ID
	e.state.LastSyncedHash = Fingerprint(snap.Files)
	if err := e.persistState(); err != nil {
		return err
	}
	e.state.lastSuccessfulSync = e.now()
	e.notifier.Status(StatusSynced)
	return nil
}

// Pull replaces the local workspace with the current remote snapshot.
// User-initiated; failures surface exactly one notification.
func (e *Engine) Pull(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.GistID == "" {
		e.notifier.Notify(SeverityInfo, "No cloud backup configured yet")
		return nil
	}

	snap, err := e.store.Fetch(ctx, e.state.GistID)
	if err != nil {
		switch {
		case errors.Is(err, gist.ErrNotFound):
			e.notifier.Notify(SeverityWarning, "No cloud backup found for the stored identifier")
		case errors.Is(err, gist.ErrAuth):
			e.notifier.Notify(SeverityWarning, "Sign in to load your cloud backup")
		default:
			e.notifier.Status(StatusError)
			e.notifier.Notify(SeverityError, fmt.Sprintf("Load failed: %v", err))
		}
		return err
	}

	if err := e.adoptSnapshot(snap); err != nil {
		return err
	}
	e.notifier.Notify(SeveritySuccess, "Notes loaded from cloud backup")
	return nil
}

// Restore replaces the local workspace with a historical revision and saves
// it as the new remote head. The baseline hash is not advanced from the
// revision content itself - it only ever reflects a confirmed remote head -
// so the restore becomes durable through the save.
func (e *Engine) Restore(ctx context.Context, version string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.GistID == "" {
		e.notifier.Notify(SeverityInfo, "No cloud backup configured yet")
		return nil
	}

	snap, err := e.store.FetchRevision(ctx, e.state.GistID, version)
	if err != nil {
		e.notifier.Status(StatusError)
		e.notifier.Notify(SeverityError, fmt.Sprintf("Restore failed: %v", err))
		return err
	}

	w := note.Rebuild(snap.Files)
	if err := e.ws.Save(w); err != nil {
		e.notifier.Status(StatusError)
		e.notifier.Notify(SeverityError, fmt.Sprintf("Restore failed: %v", err))
		return err
	}

	if err := e.save(ctx); err != nil {
		return err
	}
	e.notifier.Notify(SeveritySuccess, fmt.Sprintf("Restored revision %s", version))
	return nil
}

func (e *Engine) persistState() error {
	if err := SaveState(e.statePath, e.state); err != nil {
		return fmt.Errorf("persisting sync state: %w", err)
	}
	return nil
}
