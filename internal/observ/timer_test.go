package observ

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeClock продвигается на step при каждом вызове
func fakeClock(step time.Duration) func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	idx := tm.Begin("parse")
	tm.End(idx, "")
	err := tm.Measure("transform", func() error { return errors.New("boom") })
	if err == nil {
		t.Fatal("Measure must return the phase error")
	}
	tm.End(99, "ignored")

	want := Report{
		TotalMS: 2,
		Phases: []PhaseReport{
			{Name: "parse", DurationMS: 1},
			{Name: "transform", DurationMS: 1, Note: "failed"},
		},
	}
	if diff := cmp.Diff(want, tm.Report()); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestSumAndSummary(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1}, {Name: "print", DurationMS: 2}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "print", DurationMS: 1}, {Name: "write", DurationMS: 3}}}

	got := Sum(a, b)
	want := Report{TotalMS: 7, Phases: []PhaseReport{
		{Name: "parse", DurationMS: 1},
		{Name: "print", DurationMS: 3},
		{Name: "write", DurationMS: 3},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sum mismatch (-want +got):\n%s", diff)
	}

	s := got.Summary("timings")
	if !strings.HasPrefix(s, "timings:\n") || !strings.Contains(s, "print                   3.00 ms") {
		t.Errorf("unexpected summary:\n%s", s)
	}
	if (Report{}).Summary("empty") != "empty:\n  total                   0.00 ms\n" {
		t.Errorf("unexpected empty summary: %q", (Report{}).Summary("empty"))
	}
}
