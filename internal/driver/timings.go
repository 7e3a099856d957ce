package driver

import (
	"time"

	"github.com/qza7849467chensh5/reflective-bind/internal/observ"
)

// TimingPayload is the JSON shape of --timings output.
type TimingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// Timings collects per-file timing payloads followed by the run total.
// Files without a timing report are skipped.
func Timings(results []FileResult) []TimingPayload {
	var (
		out     []TimingPayload
		reports []observ.Report
	)
	for _, r := range results {
		if r.Timing == nil {
			continue
		}
		reports = append(reports, *r.Timing)
		out = append(out, TimingPayload{
			Kind:    "file",
			Path:    r.Path,
			TotalMS: r.Timing.TotalMS,
			Phases:  r.Timing.Phases,
		})
	}
	if len(reports) == 0 {
		return nil
	}
	total := observ.Sum(reports...)
	return append(out, TimingPayload{Kind: "pipeline", TotalMS: total.TotalMS, Phases: total.Phases})
}

func durationOf(r observ.Report) time.Duration {
	return time.Duration(r.TotalMS * float64(time.Millisecond))
}
