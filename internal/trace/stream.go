package trace

import (
	"io"
	"sync"
)

// StreamLogger writes events immediately to an io.Writer.
type StreamLogger struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
}

// NewStreamLogger creates a new StreamLogger.
func NewStreamLogger(w io.Writer, level Level, format Format) *StreamLogger {
	return &StreamLogger{
		w:      w,
		level:  level,
		format: format,
	}
}

// Log writes an event to the output.
func (t *StreamLogger) Log(ev *Event) {
	if !t.level.ShouldEmit(ev.Level) {
		return
	}

	ev.Seq = NextSeq()

	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()

	// Best-effort write - don't fail the transform on log errors
	if _, err := t.w.Write(data); err != nil {
		_ = err
	}
}

// Flush ensures all buffered data is written.
// For StreamLogger this is a no-op unless the writer buffers.
func (t *StreamLogger) Flush() error {
	if flusher, ok := t.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes and closes the writer if it implements io.Closer.
func (t *StreamLogger) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Level returns the current threshold.
func (t *StreamLogger) Level() Level {
	return t.level
}

// Enabled reports whether events of level l are written.
func (t *StreamLogger) Enabled(l Level) bool {
	return t.level.ShouldEmit(l)
}
