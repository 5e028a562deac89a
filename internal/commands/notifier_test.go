package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gistpad/gpd/internal/sync"
)

func TestTerminalNotifier_Tags(t *testing.T) {
	tests := []struct {
		severity sync.Severity
		wantTag  string
	}{
		{sync.SeverityInfo, "INFO:"},
		{sync.SeveritySuccess, "OK:"},
		{sync.SeverityWarning, "WARN:"},
		{sync.SeverityError, "ERROR:"},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		n := &terminalNotifier{out: &out}
		n.Notify(tt.severity, "something happened")

		if !strings.HasPrefix(out.String(), tt.wantTag) {
			t.Errorf("Expected prefix %q, got %q", tt.wantTag, out.String())
		}
	}
}

func TestTerminalNotifier_StatusQuietExceptError(t *testing.T) {
	var out bytes.Buffer
	n := &terminalNotifier{out: &out}

	n.Status(sync.StatusSaving)
	n.Status(sync.StatusSynced)
	if out.Len() != 0 {
		t.Errorf("Expected no output for non-error statuses, got %q", out.String())
	}

	n.Status(sync.StatusError)
	if !strings.Contains(out.String(), "error") {
		t.Errorf("Expected error line, got %q", out.String())
	}
}
