package trace

// MultiLogger fans out events to multiple loggers.
type MultiLogger struct {
	loggers []Logger
	level   Level
}

// NewMultiLogger creates a new MultiLogger that emits to all provided loggers.
func NewMultiLogger(level Level, loggers ...Logger) *MultiLogger {
	return &MultiLogger{
		loggers: loggers,
		level:   level,
	}
}

// Log sends the event to all underlying loggers.
func (t *MultiLogger) Log(ev *Event) {
	for _, l := range t.loggers {
		l.Log(ev)
	}
}

// Flush flushes all underlying loggers.
func (t *MultiLogger) Flush() error {
	var firstErr error
	for _, l := range t.loggers {
		if err := l.Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes all underlying loggers.
func (t *MultiLogger) Close() error {
	var firstErr error
	for _, l := range t.loggers {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Level returns the configured level.
func (t *MultiLogger) Level() Level {
	return t.level
}

// Enabled reports whether any underlying logger takes events of level l.
func (t *MultiLogger) Enabled(l Level) bool {
	for _, lg := range t.loggers {
		if lg.Enabled(l) {
			return true
		}
	}
	return false
}
