package trace

// nopLogger is a no-op implementation for zero overhead when logging is off.
type nopLogger struct{}

// Log does nothing.
func (nopLogger) Log(*Event) {}

// Flush does nothing.
func (nopLogger) Flush() error { return nil }

// Close does nothing.
func (nopLogger) Close() error { return nil }

// Level returns LevelOff.
func (nopLogger) Level() Level { return LevelOff }

// Enabled always returns false.
func (nopLogger) Enabled(Level) bool { return false }

// Nop is the package-level singleton nop logger.
var Nop Logger = nopLogger{}
