package testing

import (
	"fmt"
	"sync"

	"github.com/imamik/hostprep/internal/provisioning"
)

// RecordingObserver is a provisioning.Observer that keeps everything in memory.
type RecordingObserver struct {
	mu       sync.Mutex
	events   []provisioning.Event
	messages []string
}

// NewRecordingObserver creates an empty recorder.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

// Printf implements provisioning.Logger.
func (r *RecordingObserver) Printf(format string, v ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, fmt.Sprintf(format, v...))
}

// Debugf implements provisioning.Observer; debug output is discarded.
func (r *RecordingObserver) Debugf(string, ...any) {}

// Event implements provisioning.Observer.
func (r *RecordingObserver) Event(e provisioning.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// WithFields implements provisioning.Observer. Fields are dropped; the
// returned observer records into the same buffers.
func (r *RecordingObserver) WithFields(map[string]string) provisioning.Observer {
	return r
}

// Events returns recorded events of the given type, or all events if none given.
func (r *RecordingObserver) Events(types ...provisioning.EventType) []provisioning.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(types) == 0 {
		return append([]provisioning.Event(nil), r.events...)
	}
	var out []provisioning.Event
	for _, e := range r.events {
		for _, t := range types {
			if e.Type == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Messages returns the formatted Printf messages.
func (r *RecordingObserver) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}
