package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Logger receives transform log events.
type Logger interface {
	// Log records an event. Must be goroutine-safe.
	Log(ev *Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	// Level returns the threshold of the logger.
	Level() Level

	// Enabled reports whether an event of level l would be written.
	Enabled(l Level) bool
}

// StorageMode determines how events are stored.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // immediate write
	ModeRing                          // circular buffer
	ModeBoth                          // stream + ring
)

// String returns the string representation of StorageMode.
func (m StorageMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Config holds logger configuration.
type Config struct {
	Level      Level       // threshold
	Mode       StorageMode // storage mode, ModeStream when zero
	Format     Format      // output format (FormatAuto for auto-detection)
	Output     io.Writer   // for stream mode (if nil, use OutputPath)
	OutputPath string      // alternative: file path ("-" or "" for stdout)
	RingSize   int         // for ring mode (default 4096)
}

// New creates a Logger based on Config.
func New(cfg Config) (Logger, error) {
	if cfg.Level == LevelOff || cfg.Level == 0 {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = 4096
	}
	if cfg.Mode == 0 {
		cfg.Mode = ModeStream
	}

	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") {
			format = FormatNDJSON
		}
	}

	switch cfg.Mode {
	case ModeStream:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		return NewStreamLogger(w, cfg.Level, format), nil

	case ModeRing:
		return NewRingLogger(cfg.RingSize, cfg.Level), nil

	case ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		stream := NewStreamLogger(w, cfg.Level, format)
		ring := NewRingLogger(cfg.RingSize, cfg.Level)
		return NewMultiLogger(cfg.Level, stream, ring), nil

	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
}

// openOutput opens the output writer from config. The plugin logged to
// stdout, so does the stream logger by default.
func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}

	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return nopCloser{os.Stdout}, nil
	}

	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output: %w", err)
	}

	return f, nil
}

// nopCloser keeps Close from closing stdout.
type nopCloser struct{ io.Writer }

// Logf emits a formatted event at level without a position.
func Logf(l Logger, level Level, format string, args ...any) {
	if l == nil || !l.Enabled(level) {
		return
	}
	l.Log(&Event{Time: time.Now(), Level: level, Msg: fmt.Sprintf(format, args...)})
}

// LogAt emits msg at level with a source position.
func LogAt(l Logger, level Level, file string, line, col int, msg string) {
	if l == nil || !l.Enabled(level) {
		return
	}
	l.Log(&Event{Time: time.Now(), Level: level, Msg: msg, File: file, Line: line, Col: col})
}
