package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/gistpad/gpd/internal/sync"
)

// terminalPrompter asks the user to confirm or reject adopting a remote
// snapshot, with a countdown. Exactly one decision is produced per prompt:
// the user's explicit choice, DecisionTimedOut on countdown expiry, or
// DecisionCancelled if the context is cancelled first.
//
// On a non-interactive stdin the prompt cannot be answered; it resolves
// immediately as timed out, which the engine treats as cancel (local notes
// are never replaced without an explicit yes).
type terminalPrompter struct {
	in  io.Reader
	out io.Writer
	// isTerminal overrides TTY detection in tests.
	isTerminal func() bool
}

func newTerminalPrompter() *terminalPrompter {
	return &terminalPrompter{
		in:         os.Stdin,
		out:        os.Stderr,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

func (p *terminalPrompter) Resolve(ctx context.Context, prompt sync.Prompt) (sync.Decision, error) {
	if !p.isTerminal() {
		fmt.Fprintf(p.out, "CONFLICT: %s (non-interactive, keeping local notes)\n", prompt.Message)
		return sync.DecisionTimedOut, nil
	}

	urgency := ""
	if prompt.IdleReturn {
		urgency = " (workspace was idle for a while)"
	}
	fmt.Fprintf(p.out, "CONFLICT%s: %s\n", urgency, prompt.Message)
	fmt.Fprintf(p.out, "Answer y/N within %d seconds: ", int(prompt.Countdown/time.Second))

	answers := make(chan string, 1)
	go func() {
		reader := bufio.NewReader(p.in)
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		answers <- strings.ToLower(strings.TrimSpace(line))
	}()

	timer := time.NewTimer(prompt.Countdown)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return sync.DecisionCancelled, nil
	case <-timer.C:
		fmt.Fprintln(p.out, "\ntimed out, keeping local notes")
		return sync.DecisionTimedOut, nil
	case answer := <-answers:
		if answer == "y" || answer == "yes" {
			return sync.DecisionConfirmed, nil
		}
		return sync.DecisionCancelled, nil
	}
}
