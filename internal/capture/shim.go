package capture

import (
	"sync"

	"github.com/flaregun-dev/flaregun/internal/model"
)

// RawEvent is a failure recorded before the full capture client was
// available: message and stack as observed, with none of the full
// layer's fingerprinting or redaction applied yet.
type RawEvent struct {
	Type    string
	Message string
	Stack   string
	URL     string
}

// Shim is the pre-initialization capture buffer: a bounded queue of raw
// events recorded before the full client exists. It is the explicit
// handoff contract between the early-loading hook and the client —
// enqueue on one side, a single Adopt on the other.
type Shim struct {
	mu       sync.Mutex
	events   []RawEvent
	capacity int
	drained  bool
	dropped  int
}

// NewShim creates a shim holding at most capacity raw events.
func NewShim(capacity int) *Shim {
	if capacity <= 0 {
		capacity = defaultQueueSize
	}
	return &Shim{capacity: capacity}
}

// Enqueue records a raw event. Once the buffer is full, or after the
// shim has been drained, further events are dropped.
func (s *Shim) Enqueue(ev RawEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drained || len(s.events) >= s.capacity {
		s.dropped++
		return
	}
	s.events = append(s.events, ev)
}

// Len returns the number of buffered events.
func (s *Shim) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// drain hands the buffered events over exactly once. Subsequent calls
// return nil.
func (s *Shim) drain() []RawEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drained {
		return nil
	}
	s.drained = true
	events := s.events
	s.events = nil
	return events
}

// Adopt drains the shim and resends every buffered event through the
// full pipeline: fingerprints are recomputed and redaction applied with
// the now-available logic. The shim is consumed; adopting it again is a
// no-op.
func (c *Client) Adopt(shim *Shim) {
	if shim == nil {
		return
	}
	for _, ev := range shim.drain() {
		eventType := ev.Type
		if eventType == "" {
			eventType = model.DefaultType
		}
		url := ev.URL
		if url == "" {
			url = c.cfg.URL
		}
		c.captureFrom(ev.Message, ev.Stack, url, eventType)
	}
}
