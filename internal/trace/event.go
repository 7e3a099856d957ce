package trace

import (
	"sync/atomic"
	"time"
)

var globalSeq uint64

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return atomic.AddUint64(&globalSeq, 1)
}

// Event is one log record.
type Event struct {
	Time  time.Time // wall-clock timestamp
	Seq   uint64    // global sequence number (monotonic)
	Level Level
	Msg   string
	// File, Line and Col locate the event in the source; Line is 1-based,
	// Col is 0-based. Empty File means the event has no position.
	File  string
	Line  int
	Col   int
	Extra map[string]string // extensible key-value pairs
}

// HasPos reports whether the event carries a source position.
func (ev *Event) HasPos() bool {
	return ev.File != "" || ev.Line > 0
}
