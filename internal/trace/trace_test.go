package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "debug", "info", "warn"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if l.String() != s {
			t.Fatalf("round trip %q -> %q", s, l)
		}
	}
	_, err := ParseLevel("verbose")
	if err == nil || !strings.Contains(err.Error(), "Expected one of: debug, info, warn, off") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLevelThreshold(t *testing.T) {
	tests := []struct {
		logger, event Level
		want          bool
	}{
		{LevelDebug, LevelDebug, true},
		{LevelDebug, LevelWarn, true},
		{LevelInfo, LevelDebug, false},
		{LevelWarn, LevelInfo, false},
		{LevelWarn, LevelWarn, true},
		{LevelOff, LevelWarn, false},
	}
	for _, tt := range tests {
		if got := tt.logger.ShouldEmit(tt.event); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.logger, tt.event, got, tt.want)
		}
	}
}

func TestStreamTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewStreamLogger(&buf, LevelInfo, FormatText)
	LogAt(l, LevelWarn, "src/a.jsx", 12, 4, "Cannot transform")
	LogAt(l, LevelDebug, "src/a.jsx", 1, 0, "dropped")
	Logf(l, LevelInfo, "Total inline functions transformed: %d", 3)

	want := "warn/reflective-bind: Cannot transform (src/a.jsx 12:4)\n" +
		"info/reflective-bind: Total inline functions transformed: 3\n"
	if buf.String() != want {
		t.Fatalf("output mismatch:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewStreamLogger(&buf, LevelDebug, FormatNDJSON)
	LogAt(l, LevelDebug, "a.jsx", 2, 3, "Transformed arrow function")
	out := buf.String()
	for _, part := range []string{`"level":"debug"`, `"msg":"Transformed arrow function"`, `"file":"a.jsx"`, `"line":2`, `"col":3`} {
		if !strings.Contains(out, part) {
			t.Fatalf("missing %s in %s", part, out)
		}
	}
}

func TestRingWrapsAround(t *testing.T) {
	r := NewRingLogger(2, LevelDebug)
	for _, m := range []string{"one", "two", "three"} {
		Logf(r, LevelDebug, "%s", m)
	}
	got := r.Messages()
	if len(got) != 2 || got[0] != "debug/reflective-bind: two" || got[1] != "debug/reflective-bind: three" {
		t.Fatalf("unexpected snapshot: %q", got)
	}
}

func TestMultiAndContext(t *testing.T) {
	warn := NewRingLogger(8, LevelWarn)
	debug := NewRingLogger(8, LevelDebug)
	ctx := WithLogger(context.Background(), NewMultiLogger(LevelDebug, warn, debug))

	l := FromContext(ctx)
	Logf(l, LevelInfo, "info")
	Logf(l, LevelWarn, "warn")
	if len(warn.Snapshot()) != 1 || len(debug.Snapshot()) != 2 {
		t.Fatalf("fan-out mismatch: warn=%d debug=%d", len(warn.Snapshot()), len(debug.Snapshot()))
	}
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected Nop without a logger in context")
	}
}

func TestNewOffIsNop(t *testing.T) {
	l, err := New(Config{Level: LevelOff})
	if err != nil || l != Nop {
		t.Fatalf("expected Nop, got %v %v", l, err)
	}
	var buf bytes.Buffer
	l, err = New(Config{Level: LevelWarn, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Logf(l, LevelWarn, "x")
	if buf.String() != "warn/reflective-bind: x\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
