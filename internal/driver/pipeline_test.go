package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/driver"
	"github.com/qza7849467chensh5/reflective-bind/internal/project"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
	"github.com/qza7849467chensh5/reflective-bind/internal/testkit"
)

const (
	bindSrc  = "const g = expr.bind(ctx, 1, 2);\n"
	bindWant = "import { babelBind as _rbBabelBind } from \"reflective-bind\";\n" +
		"const g = _rbBabelBind(expr, ctx, 1, 2);\n"
	plainSrc  = "export const x = 1;\n"
	brokenSrc = "const = ;\n"
	optOutSrc = "// @no-reflective-bind-babel\nconst g = f.bind(this);\n"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestListFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/a.jsx":                   plainSrc,
		"src/b.js":                    plainSrc,
		"src/style.css":               "",
		"src/vendor.min.js":           plainSrc,
		"node_modules/react/index.js": plainSrc,
		"extra.txt":                   "",
	})

	got, err := driver.ListFiles([]string{root, filepath.Join(root, "extra.txt"), filepath.Join(root, "src", "a.jsx")},
		project.Default().Files)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(root, "extra.txt"),
		filepath.Join(root, "src", "a.jsx"),
		filepath.Join(root, "src", "b.js"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListFiles mismatch (-want +got):\n%s", diff)
	}

	if _, err := driver.ListFiles([]string{filepath.Join(root, "missing")}, project.Default().Files); err == nil {
		t.Error("expected an error for a missing target")
	}
}

func TestTransformFilesWrite(t *testing.T) {
	root := writeTree(t, map[string]string{
		"bind.js":   bindSrc,
		"plain.js":  plainSrc,
		"broken.js": brokenSrc,
		"optout.js": optOutSrc,
	})
	files, err := driver.ListFiles([]string{root}, project.Default().Files)
	if err != nil {
		t.Fatal(err)
	}

	results, err := driver.TransformFiles(context.Background(), source.NewFileSet(), files,
		driver.Options{Mode: driver.ModeWrite, Jobs: 2, Timings: true})
	if err != nil {
		t.Fatalf("TransformFiles: %v", err)
	}

	byName := make(map[string]driver.FileResult, len(results))
	for _, r := range results {
		byName[filepath.Base(r.Path)] = r
	}

	bind := byName["bind.js"]
	if !bind.Changed || bind.Failed() || bind.Result.Rewrites != 1 {
		t.Errorf("bind.js: %+v (%s)", bind, testkit.Summary(bind.Bag))
	}
	if diff := cmp.Diff(bindWant, readFile(t, filepath.Join(root, "bind.js"))); diff != "" {
		t.Errorf("bind.js on disk (-want +got):\n%s", diff)
	}
	if bind.Timing == nil || len(bind.Timing.Phases) == 0 {
		t.Errorf("bind.js has no timings")
	}

	if r := byName["plain.js"]; r.Changed || r.Failed() {
		t.Errorf("plain.js: %+v", r)
	}

	broken := byName["broken.js"]
	if !broken.Failed() || broken.Changed || broken.Bag.Count(diag.SevError) == 0 {
		t.Errorf("broken.js: %+v", broken)
	}
	if got := readFile(t, filepath.Join(root, "broken.js")); got != brokenSrc {
		t.Errorf("broken.js was modified: %q", got)
	}

	optout := byName["optout.js"]
	if !optout.Result.Skipped || optout.Changed {
		t.Errorf("optout.js: %+v", optout)
	}

	if tm := driver.Timings(results); len(tm) == 0 || tm[len(tm)-1].Kind != "pipeline" {
		t.Errorf("unexpected timings %+v", tm)
	}
}

func TestTransformFilesCheckDoesNotWrite(t *testing.T) {
	root := writeTree(t, map[string]string{"bind.jsx": bindSrc})
	path := filepath.Join(root, "bind.jsx")

	results, err := driver.TransformFiles(context.Background(), source.NewFileSet(), []string{path},
		driver.Options{Mode: driver.ModeCheck})
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].Changed || string(results[0].Output) != bindWant {
		t.Errorf("unexpected result %+v", results[0])
	}
	if got := readFile(t, path); got != bindSrc {
		t.Errorf("check mode wrote the file: %q", got)
	}
}

func TestTransformFilesKeepsBOMAndCRLF(t *testing.T) {
	src := "\xEF\xBB\xBFconst g = f.bind(this);\r\n"
	root := writeTree(t, map[string]string{"bom.js": src})
	path := filepath.Join(root, "bom.js")

	if _, err := driver.TransformFiles(context.Background(), source.NewFileSet(), []string{path},
		driver.Options{Mode: driver.ModeWrite}); err != nil {
		t.Fatal(err)
	}
	want := "\xEF\xBB\xBFimport { babelBind as _rbBabelBind } from \"reflective-bind\";\r\n" +
		"const g = _rbBabelBind(f, this);\r\n"
	if diff := cmp.Diff(want, readFile(t, path)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformFilesCache(t *testing.T) {
	root := writeTree(t, map[string]string{"bind.js": bindSrc})
	path := filepath.Join(root, "bind.js")
	cache, err := driver.OpenDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.Options{Mode: driver.ModeCheck, Cache: cache}

	first, err := driver.TransformFiles(context.Background(), source.NewFileSet(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := driver.TransformFiles(context.Background(), source.NewFileSet(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].Cached || !second[0].Cached {
		t.Fatalf("cached flags: first=%v second=%v", first[0].Cached, second[0].Cached)
	}
	if diff := cmp.Diff(string(first[0].Output), string(second[0].Output)); diff != "" {
		t.Errorf("cached output differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first[0].Result, second[0].Result); diff != "" {
		t.Errorf("cached result differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(testkit.Summary(first[0].Bag), testkit.Summary(second[0].Bag)); diff != "" {
		t.Errorf("cached diagnostics differ (-first +second):\n%s", diff)
	}

	// другие опции - другой ключ
	opts.Transform.HelperName = "bind"
	third, err := driver.TransformFiles(context.Background(), source.NewFileSet(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third[0].Cached {
		t.Error("options change must miss the cache")
	}

	entries, size, err := cache.Stats()
	if err != nil || entries != 2 || size == 0 {
		t.Errorf("Stats = %d, %d, %v", entries, size, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if entries, _, _ := cache.Stats(); entries != 0 {
		t.Errorf("entries after DropAll = %d", entries)
	}
}

type recordSink struct {
	mu     sync.Mutex
	events []driver.Event
}

func (s *recordSink) OnEvent(ev driver.Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func TestTransformFilesEventsAndLoadErrors(t *testing.T) {
	root := writeTree(t, map[string]string{"bind.js": bindSrc})
	good := filepath.Join(root, "bind.js")
	missing := filepath.Join(root, "gone.js")
	sink := &recordSink{}

	results, err := driver.TransformFiles(context.Background(), source.NewFileSet(), []string{good, missing},
		driver.Options{Mode: driver.ModeCheck, Sink: sink, Jobs: 1})
	if err != nil {
		t.Fatal(err)
	}
	if results[1].Err == nil || !results[1].Failed() {
		t.Errorf("missing file: %+v", results[1])
	}

	final := map[string]driver.Status{}
	queued := 0
	for _, ev := range sink.events {
		switch ev.Status {
		case driver.StatusQueued:
			queued++
		case driver.StatusDone, driver.StatusError, driver.StatusCached:
			final[ev.File] = ev.Status
		}
	}
	want := map[string]driver.Status{good: driver.StatusDone, missing: driver.StatusError}
	if queued != 2 || !cmp.Equal(want, final) {
		t.Errorf("queued=%d final=%v", queued, final)
	}
}

func TestTransformFilesCancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"bind.js": bindSrc})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := driver.TransformFiles(ctx, source.NewFileSet(), []string{filepath.Join(root, "bind.js")},
		driver.Options{Mode: driver.ModeWrite})
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
	if got := readFile(t, filepath.Join(root, "bind.js")); got != bindSrc {
		t.Errorf("cancelled run wrote the file: %q", got)
	}
}

func TestTransformSource(t *testing.T) {
	res := driver.TransformSource(context.Background(), source.NewFileSet(), "<stdin>", []byte(bindSrc),
		driver.Options{Mode: driver.ModeWrite})
	if res.Failed() || !res.Changed || string(res.Output) != bindWant {
		t.Errorf("unexpected result %+v (%s)", res, testkit.Summary(res.Bag))
	}
}
