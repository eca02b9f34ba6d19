package provisioning

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Logger is the minimal printf-style logging interface.
type Logger interface {
	Printf(format string, v ...any)
}

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	Logger

	// Debugf logs detail that is only shown in verbose mode (commands, output).
	Debugf(format string, v ...any)

	// Event emits a structured event
	Event(event Event)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type     EventType         // Type of event
	Phase    string            // Phase name (e.g., "platform", "trust-key")
	Message  string            // Human-readable message
	Resource string            // Path, package or service the event is about
	Err      error             // Cause for failure events
	Fields   map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceWritten indicates a file was written on the target.
	EventResourceWritten EventType = "resource.written"
	// EventResourceInstalled indicates packages were installed.
	EventResourceInstalled EventType = "resource.installed"
	// EventResourceRemoved indicates a package was removed.
	EventResourceRemoved EventType = "resource.removed"
	// EventResourceChanged indicates a service or account was changed.
	EventResourceChanged EventType = "resource.changed"

	// EventWarning indicates a non-fatal problem.
	EventWarning EventType = "warning"
)

// ConsoleObserver implements Observer on top of a logr.Logger.
type ConsoleObserver struct {
	log           logr.Logger
	contextFields map[string]string
}

// NewConsoleObserver creates an observer that logs through log.
func NewConsoleObserver(log logr.Logger) *ConsoleObserver {
	return &ConsoleObserver{
		log:           log,
		contextFields: make(map[string]string),
	}
}

// NewLogger creates a human-readable logr.Logger writing one line per entry to w.
// verbosity 1 enables Debugf output.
func NewLogger(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			_, _ = fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		_, _ = fmt.Fprintln(w, args)
	}, funcr.Options{
		LogTimestamp:    true,
		TimestampFormat: "15:04:05",
		Verbosity:       verbosity,
	})
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...any) {
	o.log.Info(fmt.Sprintf(format, v...), o.keysAndValues(nil)...)
}

// Debugf implements Observer.
func (o *ConsoleObserver) Debugf(format string, v ...any) {
	o.log.V(1).Info(fmt.Sprintf(format, v...), o.keysAndValues(nil)...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	kv := []any{"event", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	kv = append(kv, o.keysAndValues(event.Fields)...)

	if event.Type == EventPhaseFailed {
		err := event.Err
		if err == nil {
			err = errors.New(event.Message)
		}
		o.log.Error(err, event.Message, kv...)
		return
	}
	o.log.Info(event.Message, kv...)
}

// WithFields implements Observer.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	maps.Copy(newFields, o.contextFields)
	maps.Copy(newFields, fields)

	return &ConsoleObserver{
		log:           o.log,
		contextFields: newFields,
	}
}

// keysAndValues merges context fields with extra, extra taking precedence,
// in sorted key order so log lines are stable.
func (o *ConsoleObserver) keysAndValues(extra map[string]string) []any {
	merged := make(map[string]string, len(o.contextFields)+len(extra))
	maps.Copy(merged, o.contextFields)
	maps.Copy(merged, extra)

	kv := make([]any, 0, 2*len(merged))
	for _, k := range slices.Sorted(maps.Keys(merged)) {
		kv = append(kv, k, merged[k])
	}
	return kv
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: "failed",
		Err:     err,
	})
}

// LogFileWritten logs a file written on the target.
func LogFileWritten(observer Observer, phase, path string, size int) {
	observer.Event(Event{
		Type:     EventResourceWritten,
		Phase:    phase,
		Resource: path,
		Message:  "file written",
		Fields: map[string]string{
			"bytes": fmt.Sprint(size),
		},
	})
}

// LogPackagesInstalled logs a successful package installation.
func LogPackagesInstalled(observer Observer, phase string, packages []string) {
	observer.Event(Event{
		Type:    EventResourceInstalled,
		Phase:   phase,
		Message: fmt.Sprintf("installed %d packages", len(packages)),
		Fields: map[string]string{
			"packages": fmt.Sprint(packages),
		},
	})
}

// LogChanged logs a change to a service, account or package.
func LogChanged(observer Observer, phase, resource, message string) {
	observer.Event(Event{
		Type:     EventResourceChanged,
		Phase:    phase,
		Resource: resource,
		Message:  message,
	})
}
