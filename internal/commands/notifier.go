package commands

import (
	"fmt"
	"io"

	"github.com/gistpad/gpd/internal/sync"
)

// terminalNotifier prints engine notifications to a writer, one line per
// event, tagged with severity. Status transitions are quiet except for
// errors; the notifications carry the human-readable outcome.
type terminalNotifier struct {
	out io.Writer
}

func (n *terminalNotifier) Status(status sync.Status) {
	if status == sync.StatusError {
		fmt.Fprintln(n.out, "sync: error")
	}
}

func (n *terminalNotifier) Notify(severity sync.Severity, message string) {
	var tag string
	switch severity {
	case sync.SeveritySuccess:
		tag = "OK"
	case sync.SeverityWarning:
		tag = "WARN"
	case sync.SeverityError:
		tag = "ERROR"
	default:
		tag = "INFO"
	}
	fmt.Fprintf(n.out, "%s: %s\n", tag, message)
}
