package sync

import (
	"context"
	"time"
)

// Decision is the outcome of a conflict prompt.
type Decision int

const (
	// DecisionConfirmed adopts the remote snapshot, replacing local content.
	DecisionConfirmed Decision = iota
	// DecisionCancelled keeps local content; the next save will overwrite
	// the newer remote content.
	DecisionCancelled
	// DecisionTimedOut means the countdown expired without a choice.
	// The engine treats it as cancel.
	DecisionTimedOut
)

// String returns a human-readable representation of the decision.
func (d Decision) String() string {
	switch d {
	case DecisionConfirmed:
		return "confirmed"
	case DecisionCancelled:
		return "cancelled"
	case DecisionTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Countdown durations for the conflict prompt. A user who edited within the
// last activeEditWindow gets the longer countdown so an in-progress edit
// isn't clobbered before they notice; an idle user has nothing at risk and
// the prompt resolves quickly.
const (
	activeEditWindow = 30 * time.Second
	activeCountdown  = 30 * time.Second
	idleCountdown    = 10 * time.Second
)

// Prompt describes a pending conflict decision.
type Prompt struct {
	// Countdown is how long the prompter should wait before timing out.
	Countdown time.Duration
	// Message is the human-readable conflict description.
	Message string
	// IdleReturn signals a long gap since the last confirmed sync; the
	// prompter may use it to adjust urgency, nothing else.
	IdleReturn bool
}

// Prompter presents a conflict decision to the user. Implementations must
// resolve to exactly one Decision per call: explicit choice, countdown
// expiry (DecisionTimedOut), or context cancellation (DecisionCancelled).
type Prompter interface {
	Resolve(ctx context.Context, prompt Prompt) (Decision, error)
}

// countdownFor selects the prompt countdown from the last local edit time.
func countdownFor(now, lastLocalEdit time.Time) time.Duration {
	if !lastLocalEdit.IsZero() && now.Sub(lastLocalEdit) < activeEditWindow {
		return activeCountdown
	}
	return idleCountdown
}
