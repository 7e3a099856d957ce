package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/diagfmt"
	"github.com/qza7849467chensh5/reflective-bind/internal/driver"
	"github.com/qza7849467chensh5/reflective-bind/internal/observ"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
)

// outputFlags collects the flags that shape what report prints.
type outputFlags struct {
	mode           driver.Mode
	format         string
	quiet          bool
	timings        bool
	maxDiagnostics int
	pathMode       diagfmt.PathMode
}

func readOutputFlags(cmd *cobra.Command) (outputFlags, error) {
	var out outputFlags
	var err error
	root := cmd.Root().PersistentFlags()
	if out.format, err = cmd.Flags().GetString("format"); err != nil {
		return out, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch out.format {
	case "pretty", "json":
	default:
		return out, fmt.Errorf("unknown format: %s", out.format)
	}
	if out.quiet, err = root.GetBool("quiet"); err != nil {
		return out, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if out.timings, err = root.GetBool("timings"); err != nil {
		return out, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if out.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return out, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if out.pathMode, err = pathMode(cmd); err != nil {
		return out, err
	}
	return out, nil
}

type fileJSON struct {
	Path     string   `json:"path"`
	Changed  bool     `json:"changed"`
	Cached   bool     `json:"cached,omitempty"`
	Skipped  bool     `json:"skipped,omitempty"`
	Rewrites int      `json:"rewrites"`
	Hoisted  []string `json:"hoisted,omitempty"`
	Helper   string   `json:"helper,omitempty"`
	Output   string   `json:"output,omitempty"`
	Error    string   `json:"error,omitempty"`
}

type runJSON struct {
	Files       []fileJSON                `json:"files"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
	Timings     []driver.TimingPayload    `json:"timings,omitempty"`
}

// runStats counts outcomes across results.
type runStats struct {
	total, changed, cached, failed, skipped int
}

func collectStats(results []driver.FileResult) runStats {
	var s runStats
	for i := range results {
		r := &results[i]
		s.total++
		switch {
		case r.Failed():
			s.failed++
		case r.Changed:
			s.changed++
		}
		if r.Cached {
			s.cached++
		}
		if r.Result.Skipped {
			s.skipped++
		}
	}
	return s
}

// report prints diagnostics, output and summary for a finished run and
// turns failures into the command error.
func report(cmd *cobra.Command, fs *source.FileSet, results []driver.FileResult, out outputFlags) error {
	bag := diag.NewBag(out.maxDiagnostics)
	for i := range results {
		if results[i].Bag != nil {
			bag.Merge(results[i].Bag)
		}
	}
	bag.Sort()
	bag.Dedup()
	stats := collectStats(results)

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	if out.format == "json" {
		if err := writeRunJSON(stdout, fs, bag, results, out); err != nil {
			return err
		}
	} else {
		if bag.Len() > 0 {
			useColor, err := colorEnabled(cmd, os.Stderr)
			if err != nil {
				return err
			}
			diagfmt.Pretty(stderr, bag, fs, diagfmt.PrettyOpts{
				Color:     useColor,
				Context:   2,
				PathMode:  out.pathMode,
				ShowNotes: true,
			})
		}
		for i := range results {
			r := &results[i]
			switch {
			case r.Err != nil:
				fmt.Fprintf(stderr, "%s: %v\n", r.Path, r.Err)
			case out.mode == driver.ModeStdout && !r.Failed():
				if _, err := stdout.Write(r.Output); err != nil {
					return err
				}
			case out.mode == driver.ModeCheck && r.Changed && !r.Failed():
				fmt.Fprintf(stdout, "would rewrite %s\n", r.Path)
			}
		}
		if out.timings {
			printTimings(stderr, results)
		}
		if !out.quiet && out.mode != driver.ModeStdout {
			printSummary(stderr, stats, out.mode)
		}
	}

	if stats.failed > 0 {
		return fmt.Errorf("%d of %d files failed", stats.failed, stats.total)
	}
	if out.mode == driver.ModeCheck && stats.changed > 0 {
		return fmt.Errorf("%d %w", stats.changed, errWouldRewrite)
	}
	return nil
}

func writeRunJSON(w io.Writer, fs *source.FileSet, bag *diag.Bag, results []driver.FileResult, out outputFlags) error {
	payload := runJSON{
		Files: make([]fileJSON, 0, len(results)),
		Diagnostics: diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         out.pathMode,
			IncludeNotes:     true,
		}),
	}
	for i := range results {
		r := &results[i]
		entry := fileJSON{
			Path:     r.Path,
			Changed:  r.Changed,
			Cached:   r.Cached,
			Skipped:  r.Result.Skipped,
			Rewrites: r.Result.Rewrites,
			Hoisted:  r.Result.Hoisted,
			Helper:   r.Result.Helper,
		}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		if out.mode == driver.ModeStdout && !r.Failed() {
			entry.Output = string(r.Output)
		}
		payload.Files = append(payload.Files, entry)
	}
	if out.timings {
		payload.Timings = driver.Timings(results)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(payload)
}

func printSummary(w io.Writer, s runStats, mode driver.Mode) {
	verb := "rewritten"
	if mode == driver.ModeCheck {
		verb = "would change"
	}
	fmt.Fprintf(w, "%d files: %d %s, %d cached", s.total, s.changed, verb, s.cached)
	if s.skipped > 0 {
		fmt.Fprintf(w, ", %d opted out", s.skipped)
	}
	if s.failed > 0 {
		fmt.Fprintf(w, ", %d failed", s.failed)
	}
	fmt.Fprintln(w)
}

func printTimings(w io.Writer, results []driver.FileResult) {
	var reports []observ.Report
	for i := range results {
		if results[i].Timing != nil {
			reports = append(reports, *results[i].Timing)
		}
	}
	if len(reports) == 0 {
		return
	}
	fmt.Fprint(w, observ.Sum(reports...).Summary("timings"))
}
