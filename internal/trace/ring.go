package trace

import (
	"io"
	"sync"
)

// RingLogger keeps the last N events in memory (circular buffer).
type RingLogger struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	head     int  // next write position
	full     bool // has wrapped around
	level    Level
}

// NewRingLogger creates a new RingLogger with specified capacity.
func NewRingLogger(capacity int, level Level) *RingLogger {
	if capacity <= 0 {
		capacity = 4096
	}

	return &RingLogger{
		events:   make([]Event, capacity),
		capacity: capacity,
		level:    level,
	}
}

// Log adds an event to the ring buffer.
func (t *RingLogger) Log(ev *Event) {
	if !t.level.ShouldEmit(ev.Level) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	stored := *ev
	stored.Seq = NextSeq()
	t.events[t.head] = stored
	t.head = (t.head + 1) % t.capacity

	if t.head == 0 {
		t.full = true
	}
}

// Snapshot returns a copy of all stored events in chronological order.
func (t *RingLogger) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.full {
		result := make([]Event, t.head)
		copy(result, t.events[:t.head])
		return result
	}

	result := make([]Event, t.capacity)
	copy(result, t.events[t.head:])
	copy(result[t.capacity-t.head:], t.events[:t.head])
	return result
}

// Messages returns the stored events in text format without newlines.
func (t *RingLogger) Messages() []string {
	events := t.Snapshot()
	out := make([]string, len(events))
	for i := range events {
		line := FormatEvent(&events[i], FormatText)
		out[i] = string(line[:len(line)-1])
	}
	return out
}

// Dump writes all events to the provided writer in the specified format.
func (t *RingLogger) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()

	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}

	return nil
}

// Flush is a no-op for RingLogger since everything is in memory.
func (t *RingLogger) Flush() error {
	return nil
}

// Close is a no-op for RingLogger.
func (t *RingLogger) Close() error {
	return nil
}

// Level returns the current threshold.
func (t *RingLogger) Level() Level {
	return t.level
}

// Enabled reports whether events of level l are kept.
func (t *RingLogger) Enabled(l Level) bool {
	return t.level.ShouldEmit(l)
}
