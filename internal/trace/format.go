package trace

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format represents the output format for events.
type Format uint8

const (
	FormatAuto   Format = iota // text, unless the output path ends in .ndjson
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts a string to Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid log format: %q (expected: auto|text|ndjson)", s)
	}
}

// Prefix is the tag written after the level in text output.
const Prefix = "reflective-bind"

// FormatEvent formats an event according to the specified format.
func FormatEvent(ev *Event, format Format) []byte {
	switch format {
	case FormatNDJSON:
		return formatNDJSON(ev)
	default:
		return formatText(ev)
	}
}

// formatNDJSON formats an event as newline-delimited JSON.
func formatNDJSON(ev *Event) []byte {
	type jsonEvent struct {
		Time  string            `json:"time"`
		Seq   uint64            `json:"seq"`
		Level string            `json:"level"`
		Msg   string            `json:"msg"`
		File  string            `json:"file,omitempty"`
		Line  int               `json:"line,omitempty"`
		Col   int               `json:"col,omitempty"`
		Extra map[string]string `json:"extra,omitempty"`
	}

	j := jsonEvent{
		Time:  ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:   ev.Seq,
		Level: ev.Level.String(),
		Msg:   ev.Msg,
		File:  ev.File,
		Line:  ev.Line,
		Col:   ev.Col,
		Extra: ev.Extra,
	}

	data, _ := json.Marshal(j)
	data = append(data, '\n')
	return data
}

// formatText formats an event as one line:
// <level>/reflective-bind: <msg> (<file> <line>:<col>)
func formatText(ev *Event) []byte {
	var sb strings.Builder
	sb.WriteString(ev.Level.String())
	sb.WriteString("/")
	sb.WriteString(Prefix)
	sb.WriteString(": ")
	sb.WriteString(ev.Msg)
	if ev.HasPos() {
		fmt.Fprintf(&sb, " (%s %d:%d)", ev.File, ev.Line, ev.Col)
	}
	sb.WriteString("\n")
	return []byte(sb.String())
}
