package diagram

import "sync"

// EventKind names the operation that produced an [Event].
type EventKind string

const (
	EventPlace   EventKind = "place"
	EventRoute   EventKind = "route"
	EventUnroute EventKind = "unroute"
	EventGrow    EventKind = "grow"
	EventClone   EventKind = "clone"
	EventPurge   EventKind = "purge"
)

// Event describes one mutation of a [Manager]. Snapshot is the structural
// text of the grid right after it.
type Event struct {
	Kind     EventKind
	Message  string
	Snapshot string
}

// Recorder receives events from a [Manager]. It must not call back into the
// manager that emitted the event.
type Recorder interface {
	Record(Event)
}

// RecorderFunc adapts a function to [Recorder].
type RecorderFunc func(Event)

// Record calls f(e).
func (f RecorderFunc) Record(e Event) { f(e) }

// History is a [Recorder] that keeps every event. It is safe for concurrent
// use.
type History struct {
	mu     sync.Mutex
	events []Event
}

// Record appends e.
func (h *History) Record(e Event) {
	h.mu.Lock()
	h.events = append(h.events, e)
	h.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (h *History) Events() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Event(nil), h.events...)
}

// Len returns the number of recorded events.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

// Reset drops all events.
func (h *History) Reset() {
	h.mu.Lock()
	h.events = nil
	h.mu.Unlock()
}

// Tee forwards every event to each non-nil recorder in order.
func Tee(recs ...Recorder) Recorder {
	return RecorderFunc(func(e Event) {
		for _, r := range recs {
			if r != nil {
				r.Record(e)
			}
		}
	})
}
