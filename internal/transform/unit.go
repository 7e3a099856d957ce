package transform

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync/atomic"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/hoist"
	"github.com/qza7849467chensh5/reflective-bind/internal/symbols"
	"github.com/qza7849467chensh5/reflective-bind/internal/trace"
)

// optOut matches the marker line that disables the transform for a file.
var optOut = regexp.MustCompile(`(?m)^// @no-reflective-bind-babel\r?$`)

// totalRewrites counts rewrites over every unit of the process.
var totalRewrites atomic.Int64

// TotalRewrites returns the number of rewrites made by all units so far.
func TotalRewrites() int64 { return totalRewrites.Load() }

var errBadPhase = errors.New("invalid transform phase transition")

// Result summarizes the rewrites made in one file.
type Result struct {
	// Rewrites counts rewritten bind calls and hoisted closures.
	Rewrites int
	// Skipped is set when the file carries the opt-out marker.
	Skipped bool
	// Hoisted lists the names of hoisted functions in creation order.
	Hoisted []string
	// Helper is the local name of the imported helper, empty when nothing
	// was rewritten.
	Helper string
}

// phase: состояние прохода по файлу.
type phase uint8

const (
	phaseIdle phase = iota
	phaseScanning
	phaseFinalizing
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseScanning:
		return "scanning"
	case phaseFinalizing:
		return "finalizing"
	}
	return "unknown"
}

// unit is the state of one transform call. It is never shared.
type unit struct {
	ctx   context.Context
	tree  *ast.Tree
	table *symbols.Table
	opts  Options
	props *regexp.Regexp
	hopts hoist.Options
	tgt   *hoist.Target
	log   trace.Logger

	phase    phase
	rewrites int
	hoisted  []string
	// stale: дерево менялось после последней сборки таблицы
	stale    bool
	declined map[ast.NodeID]struct{}
	pending  []ast.NodeID
}

// Unit rewrites tree in place. On error the tree may be partly rewritten
// and must not be printed; callers keep the original source instead.
func Unit(ctx context.Context, tree *ast.Tree, opts Options) (Result, error) {
	opts = opts.withDefaults()
	props, err := opts.propFilter()
	if err != nil {
		return Result{}, err
	}
	if optOut.Match(tree.File.Content) {
		diag.ReportInfo(opts.Reporter, diag.TrnOptOut, tree.Node(tree.Root).Span,
			"file opted out of reflective-bind").Emit()
		return Result{Skipped: true}, nil
	}

	table, err := symbols.Build(tree)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", tree.File.Path, err)
	}
	u := &unit{
		ctx:      ctx,
		tree:     tree,
		table:    table,
		opts:     opts,
		props:    props,
		hopts:    hoist.Options{ContextFields: opts.ContextFields},
		log:      trace.FromContext(ctx),
		declined: make(map[ast.NodeID]struct{}),
	}
	// имя хелпера резервируется до любых вынесений, как _rbBabelBind
	u.tgt = &hoist.Target{
		Table:  table,
		Helper: table.GenerateUID(opts.HelperName),
		Prefix: opts.HoistedPrefix,
	}

	if err := u.run(); err != nil {
		return Result{}, fmt.Errorf("%s: %w", tree.File.Path, err)
	}
	res := Result{Rewrites: u.rewrites, Hoisted: u.hoisted}
	if u.rewrites > 0 {
		res.Helper = u.tgt.Helper
	}
	return res, nil
}

func (u *unit) setPhase(next phase) error {
	ok := false
	switch u.phase {
	case phaseIdle:
		ok = next == phaseScanning
	case phaseScanning:
		ok = next == phaseIdle || next == phaseFinalizing
	case phaseFinalizing:
		ok = next == phaseIdle
	}
	if !ok {
		return fmt.Errorf("%s -> %s: %w", u.phase, next, errBadPhase)
	}
	u.phase = next
	return nil
}

func (u *unit) run() error {
	if err := u.setPhase(phaseScanning); err != nil {
		return err
	}
	if err := u.walk(u.tree.Root); err != nil {
		return err
	}
	// вынесенные тела обходятся после основного прохода
	for len(u.pending) > 0 {
		decl := u.pending[0]
		u.pending = u.pending[1:]
		if err := u.walk(decl); err != nil {
			return err
		}
	}

	if u.rewrites == 0 {
		return u.setPhase(phaseIdle)
	}
	if err := u.setPhase(phaseFinalizing); err != nil {
		return err
	}
	if _, err := hoist.AddImport(u.tgt, u.opts.HelperModule); err != nil {
		return err
	}
	total := totalRewrites.Add(int64(u.rewrites))
	if u.opts.LogLevel.ShouldEmit(trace.LevelDebug) {
		trace.Logf(u.log, trace.LevelDebug, "Total inline functions transformed: %d", total)
	}
	return u.setPhase(phaseIdle)
}

// refresh rebuilds the binding table if the tree changed since the last build.
func (u *unit) refresh() error {
	if !u.stale {
		return nil
	}
	if err := u.table.Rebuild(); err != nil {
		return err
	}
	u.stale = false
	return nil
}
