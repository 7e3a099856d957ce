package transform

import (
	"fmt"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/hoist"
)

// hoistArrow analyzes an arrow reached from a JSX container and hoists it
// when the analysis allows.
func (u *unit) hoistArrow(arrow ast.NodeID) error {
	if _, ok := u.declined[arrow]; ok {
		return nil
	}
	if !hoist.IsCandidate(u.tree, arrow) {
		u.debug(arrow, "Skipping async or generator arrow function")
		return nil
	}
	if err := u.refresh(); err != nil {
		return err
	}
	// на верхнем уровне выносить некуда
	if u.table.ScopeOf(arrow) == u.table.Root {
		u.debug(arrow, "Skipping arrow function defined in the outermost scope")
		diag.ReportInfo(u.opts.Reporter, diag.TrnTopLevelClosure, u.span(arrow),
			"arrow function is already at the top level").Emit()
		return nil
	}

	pos := u.tree.Position(arrow)
	v, err := hoist.Analyze(u.ctx, u.table, arrow, u.hopts)
	if err != nil {
		return fmt.Errorf("analyze arrow function at %d:%d: %w", pos.Line, pos.Col, err)
	}
	for _, a := range v.Advice {
		u.info(a.Node, a.Message())
		diag.ReportInfo(u.opts.Reporter, diag.TrnNestedProperty, u.span(a.Node), a.Message()).Emit()
	}
	if !v.CanHoist {
		u.declined[arrow] = struct{}{}
		msg := v.Blocker.Message()
		u.warn(v.Blocker.Node, msg)
		diag.ReportWarning(u.opts.Reporter, diag.TrnHoistDeclined, u.span(v.Blocker.Node), msg).
			WithNote(u.span(arrow), "arrow function defined here").
			Emit()
		return nil
	}

	u.debug(arrow, "Transformed arrow function")
	span := u.span(arrow)
	params, err := hoist.Normalize(u.table, v.Context)
	if err != nil {
		return fmt.Errorf("normalize arrow function at %d:%d: %w", pos.Line, pos.Col, err)
	}
	h, err := hoist.Hoist(u.tgt, arrow, v, params)
	if err != nil {
		return fmt.Errorf("hoist arrow function at %d:%d: %w", pos.Line, pos.Col, err)
	}
	u.rewrites++
	u.stale = true
	u.hoisted = append(u.hoisted, h.Name)
	u.pending = append(u.pending, h.Decl)
	diag.ReportInfo(u.opts.Reporter, diag.TrnClosureHoisted, span,
		fmt.Sprintf("arrow function hoisted to %s", h.Name)).Emit()
	return nil
}
