package sync

import (
	"testing"
	"time"
)

func TestCountdownFor(t *testing.T) {
	now := fixedNow()

	tests := []struct {
		name          string
		lastLocalEdit time.Time
		want          time.Duration
	}{
		{"never edited", time.Time{}, idleCountdown},
		{"edited just now", now, activeCountdown},
		{"edited 29s ago", now.Add(-29 * time.Second), activeCountdown},
		{"edited exactly 30s ago", now.Add(-30 * time.Second), idleCountdown},
		{"edited minutes ago", now.Add(-5 * time.Minute), idleCountdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countdownFor(now, tt.lastLocalEdit); got != tt.want {
				t.Errorf("countdownFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecision_String(t *testing.T) {
	tests := []struct {
		decision Decision
		want     string
	}{
		{DecisionConfirmed, "confirmed"},
		{DecisionCancelled, "cancelled"},
		{DecisionTimedOut, "timed out"},
		{Decision(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.decision.String(); got != tt.want {
			t.Errorf("Decision(%d).String() = %q, want %q", tt.decision, got, tt.want)
		}
	}
}
