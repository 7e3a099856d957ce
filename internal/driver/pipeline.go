package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/observ"
	"github.com/qza7849467chensh5/reflective-bind/internal/parser"
	"github.com/qza7849467chensh5/reflective-bind/internal/printer"
	"github.com/qza7849467chensh5/reflective-bind/internal/project"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
	"github.com/qza7849467chensh5/reflective-bind/internal/trace"
	"github.com/qza7849467chensh5/reflective-bind/internal/transform"
)

// Mode selects what happens to a transformed file.
type Mode uint8

const (
	// ModeWrite rewrites changed files in place.
	ModeWrite Mode = iota
	// ModeCheck only reports which files would change.
	ModeCheck
	// ModeStdout keeps the output in FileResult for the caller to print.
	ModeStdout
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options configures a multi-file run.
type Options struct {
	Transform      transform.Options
	Print          printer.Options
	Mode           Mode
	Jobs           int // 0 - GOMAXPROCS
	MaxDiagnostics int
	Cache          *DiskCache
	Sink           ProgressSink
	Timings        bool
}

// FileResult содержит результат обработки одного файла
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Result transform.Result
	// Output is the printed file; equal to the input when nothing changed
	// or an error kept the file untouched.
	Output  []byte
	Changed bool
	Cached  bool
	// Err is set when the file could not be loaded or the run was cancelled.
	Err    error
	Timing *observ.Report
}

// Failed reports whether the file kept its original content because of an error.
func (r *FileResult) Failed() bool {
	return r.Err != nil || (r.Bag != nil && r.Bag.HasErrors())
}

type pipeline struct {
	fs   *source.FileSet
	opts Options
}

// TransformFiles runs the per-file pipeline over files in parallel.
// Results keep the order of files. The returned error is only set when ctx
// was cancelled; per-file failures are reported through FileResult.
func TransformFiles(ctx context.Context, fileSet *source.FileSet, files []string, opts Options) ([]FileResult, error) {
	if len(files) == 0 {
		return nil, nil
	}
	for _, path := range files {
		emit(opts.Sink, Event{File: path, Status: StatusQueued})
	}

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))
	p := &pipeline{fs: fileSet, opts: opts}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				results[i] = FileResult{Path: path, Err: gctx.Err()}
				return gctx.Err()
			default:
			}
			results[i] = p.file(gctx, path)
			if err := results[i].Err; isCancel(err) {
				return err
			}
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

// TransformSource runs the pipeline on in-memory content (stdin).
// The result is never written back.
func TransformSource(ctx context.Context, fileSet *source.FileSet, name string, content []byte, opts Options) FileResult {
	if opts.Mode == ModeWrite {
		opts.Mode = ModeStdout
	}
	p := &pipeline{fs: fileSet, opts: opts}
	res := FileResult{Path: name, Bag: diag.NewBag(opts.MaxDiagnostics)}
	timer := observ.NewTimer()
	p.process(ctx, &res, fileSet.AddVirtual(name, content), timer)
	return res
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (p *pipeline) file(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path, Bag: diag.NewBag(p.opts.MaxDiagnostics)}
	timer := observ.NewTimer()

	emit(p.opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	var fileID source.FileID
	err := timer.Measure("load", func() error {
		var loadErr error
		fileID, loadErr = p.fs.Load(path)
		return loadErr
	})
	if err != nil {
		res.Err = fmt.Errorf("failed to load file: %w", err)
		p.finish(&res, timer, StageLoad)
		return res
	}
	p.process(ctx, &res, fileID, timer)
	return res
}

func (p *pipeline) process(ctx context.Context, res *FileResult, fileID source.FileID, timer *observ.Timer) {
	file := p.fs.Get(fileID)
	res.FileID = fileID
	res.Output = file.Content

	var key project.Digest
	useCache := p.opts.Cache != nil && !logging(p.opts.Transform.LogLevel)
	if useCache {
		key = cacheKey(file, p.opts.Transform)
		var payload DiskPayload
		ok, err := p.opts.Cache.Get(key, &payload)
		if err != nil {
			diag.ReportWarning(&diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, source.Span{File: fileID},
				"cache entry unreadable: "+err.Error()).Emit()
		}
		if ok {
			payload.restoreDiagnostics(fileID, res.Bag)
			res.Output = payload.Output
			res.Result = transform.Result{
				Rewrites: payload.Rewrites,
				Skipped:  payload.Skipped,
				Hoisted:  payload.Hoisted,
				Helper:   payload.Helper,
			}
			res.Cached = true
			p.complete(res, file, timer)
			return
		}
	}

	// Парсим файл
	emit(p.opts.Sink, Event{File: res.Path, Stage: StageParse, Status: StatusWorking})
	maxErrors, err := safecast.Conv[uint](max(p.opts.MaxDiagnostics, 0))
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}
	var parsed parser.Result
	_ = timer.Measure("parse", func() error {
		parsed = parser.ParseFile(file, parser.Options{
			Reporter:  &diag.BagReporter{Bag: res.Bag},
			MaxErrors: maxErrors,
		})
		return nil
	})
	if res.Bag.HasErrors() {
		p.finish(res, timer, StageParse)
		return
	}

	rootSpan := parsed.Tree.Node(parsed.Tree.Root).Span
	emit(p.opts.Sink, Event{File: res.Path, Stage: StageTransform, Status: StatusWorking})
	topts := p.opts.Transform
	topts.Reporter = &diag.BagReporter{Bag: res.Bag}
	err = timer.Measure("transform", func() error {
		var unitErr error
		res.Result, unitErr = transform.Unit(ctx, parsed.Tree, topts)
		return unitErr
	})
	if err != nil {
		res.Result = transform.Result{}
		if isCancel(err) {
			res.Err = err
		} else {
			diag.ReportError(topts.Reporter, diag.TrnInternal, rootSpan, err.Error()).Emit()
		}
		p.finish(res, timer, StageTransform)
		return
	}

	emit(p.opts.Sink, Event{File: res.Path, Stage: StagePrint, Status: StatusWorking})
	err = timer.Measure("print", func() error {
		out, printErr := printer.Print(parsed.Tree, p.opts.Print)
		if printErr == nil {
			res.Output = out
		}
		return printErr
	})
	if err != nil {
		res.Result = transform.Result{}
		diag.ReportError(topts.Reporter, diag.TrnInternal, rootSpan, err.Error()).Emit()
		p.finish(res, timer, StagePrint)
		return
	}

	if useCache {
		if err := p.opts.Cache.Put(key, resultToPayload(res, file)); err != nil {
			diag.ReportWarning(topts.Reporter, diag.IOCacheError, source.Span{File: fileID},
				"cannot store cache entry: "+err.Error()).Emit()
		}
	}
	p.complete(res, file, timer)
}

// complete сравнивает вывод с исходником и при необходимости пишет файл.
func (p *pipeline) complete(res *FileResult, file *source.File, timer *observ.Timer) {
	res.Changed = !bytes.Equal(res.Output, file.Content)
	if res.Changed && p.opts.Mode == ModeWrite && file.Flags&source.FileVirtual == 0 {
		emit(p.opts.Sink, Event{File: res.Path, Stage: StageWrite, Status: StatusWorking})
		err := timer.Measure("write", func() error {
			return writeFile(res.Path, res.Output, file.Flags&source.FileHadBOM != 0)
		})
		if err != nil {
			diag.ReportError(&diag.BagReporter{Bag: res.Bag}, diag.IOWriteFileError,
				source.Span{File: file.ID}, err.Error()).Emit()
			p.finish(res, timer, StageWrite)
			return
		}
	}
	p.finish(res, timer, "")
}

func (p *pipeline) finish(res *FileResult, timer *observ.Timer, failed Stage) {
	report := timer.Report()
	if p.opts.Timings {
		res.Timing = &report
	}
	status := StatusDone
	switch {
	case res.Failed():
		status = StatusError
	case res.Cached:
		status = StatusCached
	}
	emit(p.opts.Sink, Event{
		File:    res.Path,
		Stage:   failed,
		Status:  status,
		Err:     res.Err,
		Elapsed: durationOf(report),
	})
}

// writeFile атомарно заменяет файл, сохраняя права и BOM.
func writeFile(path string, content []byte, bom bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".rbind-*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if bom {
		if _, err := f.Write(utf8BOM); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Chmod(info.Mode().Perm()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return os.Rename(f.Name(), path)
}

func logging(level trace.Level) bool {
	return level != 0 && level != trace.LevelOff
}
