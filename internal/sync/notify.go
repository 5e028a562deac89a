package sync

// Status is a coarse sync-state transition emitted while the engine works.
type Status int

const (
	// StatusSaving indicates a remote write is in flight.
	StatusSaving Status = iota
	// StatusSynced indicates local and remote agree.
	StatusSynced
	// StatusError indicates the last operation failed.
	StatusError
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusSaving:
		return "saving"
	case StatusSynced:
		return "synced"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Severity tags a notification for display.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// String returns a human-readable representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Notifier receives status transitions and human-readable notifications from
// the engine. Every failure path ends in exactly one Notify call; periodic
// tick failures are log-only and never reach the notifier.
type Notifier interface {
	Status(status Status)
	Notify(severity Severity, message string)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) Status(Status)           {}
func (NopNotifier) Notify(Severity, string) {}
