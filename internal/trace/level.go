package trace

import "fmt"

// Level is the priority of an event and the threshold of a logger.
type Level uint8

// Значения совпадают с приоритетами исходного плагина: чем больше, тем важнее.
const (
	LevelDebug Level = 10
	LevelInfo  Level = 20
	LevelWarn  Level = 30
	LevelOff   Level = 40
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF":
		return LevelOff, nil
	case "debug", "DEBUG":
		return LevelDebug, nil
	case "info", "INFO":
		return LevelInfo, nil
	case "warn", "WARN":
		return LevelWarn, nil
	default:
		return LevelOff, fmt.Errorf("invalid logLevel %s. Expected one of: debug, info, warn, off", s)
	}
}

// ShouldEmit reports whether a logger at level l writes an event of level ev.
func (l Level) ShouldEmit(ev Level) bool {
	return l != LevelOff && ev != LevelOff && ev >= l
}

// MarshalText implements encoding.TextMarshaler so levels read naturally
// in TOML and JSON.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
