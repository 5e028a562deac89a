package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gistpad/gpd/internal/note"
	"github.com/gistpad/gpd/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the periodic sync loop",
	Long: `Run the periodic sync loop in the foreground.

Performs an immediate check, then checks at the configured interval.
The workspace file is watched for edits so recent local changes are
auto-saved when the cloud still matches the last-synced baseline.

Stop with Ctrl-C.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logf := func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
	engine, _, err := buildEngine(cfg, newTerminalPrompter(), logf)
	if err != nil {
		return err
	}

	w, err := watcher.New()
	if err != nil {
		return err
	}
	store := note.NewStore(cfg.ResolvedDataDir())
	if err := w.Start(store.Path()); err != nil {
		return err
	}
	defer w.Stop()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events():
				if !ok {
					return
				}
				engine.MarkLocalEdit(ev.At)
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				logf("watch error: %v", err)
			}
		}
	}()

	fmt.Fprintf(os.Stderr, "gpd: watching %s (check interval %s)\n", store.Path(), engine.Interval())

	if err := engine.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "gpd: stopped")
	return nil
}
