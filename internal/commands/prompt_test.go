package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gistpad/gpd/internal/sync"
)

func TestTerminalPrompter_NonInteractive(t *testing.T) {
	var out bytes.Buffer
	p := &terminalPrompter{
		in:         strings.NewReader(""),
		out:        &out,
		isTerminal: func() bool { return false },
	}

	decision, err := p.Resolve(context.Background(), sync.Prompt{
		Countdown: 30 * time.Second,
		Message:   "cloud changed",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if decision != sync.DecisionTimedOut {
		t.Errorf("Expected timed out on non-interactive stdin, got %v", decision)
	}
	if !strings.Contains(out.String(), "keeping local notes") {
		t.Errorf("Expected explanation in output, got %q", out.String())
	}
}

func TestTerminalPrompter_Answers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  sync.Decision
	}{
		{"yes short", "y\n", sync.DecisionConfirmed},
		{"yes long", "yes\n", sync.DecisionConfirmed},
		{"yes uppercase", "Y\n", sync.DecisionConfirmed},
		{"no", "n\n", sync.DecisionCancelled},
		{"empty line", "\n", sync.DecisionCancelled},
		{"garbage", "maybe\n", sync.DecisionCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := &terminalPrompter{
				in:         strings.NewReader(tt.input),
				out:        &out,
				isTerminal: func() bool { return true },
			}

			decision, err := p.Resolve(context.Background(), sync.Prompt{
				Countdown: 5 * time.Second,
				Message:   "cloud changed",
			})
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if decision != tt.want {
				t.Errorf("Expected %v for input %q, got %v", tt.want, tt.input, decision)
			}
		})
	}
}

func TestTerminalPrompter_CountdownExpires(t *testing.T) {
	var out bytes.Buffer
	p := &terminalPrompter{
		in:         strings.NewReader(""), // EOF, no answer ever arrives
		out:        &out,
		isTerminal: func() bool { return true },
	}

	decision, err := p.Resolve(context.Background(), sync.Prompt{
		Countdown: 20 * time.Millisecond,
		Message:   "cloud changed",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if decision != sync.DecisionTimedOut {
		t.Errorf("Expected timed out, got %v", decision)
	}
}

func TestTerminalPrompter_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	p := &terminalPrompter{
		in:         strings.NewReader(""),
		out:        &out,
		isTerminal: func() bool { return true },
	}

	decision, err := p.Resolve(ctx, sync.Prompt{
		Countdown: 5 * time.Second,
		Message:   "cloud changed",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if decision != sync.DecisionCancelled {
		t.Errorf("Expected cancelled, got %v", decision)
	}
}

func TestTerminalPrompter_IdleReturnNote(t *testing.T) {
	var out bytes.Buffer
	p := &terminalPrompter{
		in:         strings.NewReader("n\n"),
		out:        &out,
		isTerminal: func() bool { return true },
	}

	if _, err := p.Resolve(context.Background(), sync.Prompt{
		Countdown:  5 * time.Second,
		Message:    "cloud changed",
		IdleReturn: true,
	}); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !strings.Contains(out.String(), "idle") {
		t.Errorf("Expected idle note in prompt, got %q", out.String())
	}
}
