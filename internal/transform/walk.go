package transform

import (
	"fmt"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/hoist"
	"github.com/qza7849467chensh5/reflective-bind/internal/symbols"
)

// item is a pending node of the walk. quiet disables closure analysis in
// the subtree; bind calls there are still rewritten.
type item struct {
	id    ast.NodeID
	quiet bool
}

// walk visits the subtree of root in pre-order with an explicit stack.
// Children are read after the node was handled, so a replaced node is
// descended through its replacement.
func (u *unit) walk(root ast.NodeID) error {
	stack := []item{{id: root}}
	for n := 0; len(stack) > 0; n++ {
		if n%256 == 0 {
			if err := u.ctx.Err(); err != nil {
				return err
			}
		}
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !u.tree.Attached(it.id) {
			continue
		}

		cur, quiet, descend, err := u.enter(it)
		if err != nil {
			return err
		}
		if !descend {
			continue
		}
		kids := u.tree.Children(cur)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, item{id: kids[i], quiet: quiet})
		}
	}
	return nil
}

// enter handles one node and returns the node now in its slot.
func (u *unit) enter(it item) (cur ast.NodeID, quiet, descend bool, err error) {
	cur, quiet = it.id, it.quiet
	kind := u.tree.Kind(cur)
	switch {
	case kind.IsFlow():
		return cur, quiet, false, nil
	case kind == ast.CallExpression:
		cur, err = u.rewriteBind(cur)
	case kind == ast.JSXOpeningElement:
		// у host-тегов (div, my-widget) компонентов нет, сравнивать нечего
		if name := u.tree.Child(cur, ast.FieldName); u.tree.Is(name, ast.JSXIdentifier) {
			if text := u.tree.Text(name); text != "this" && symbols.IsIntrinsicTag(text) {
				quiet = true
			}
		}
	case kind == ast.JSXAttribute:
		if u.skipAttribute(cur) {
			quiet = true
		}
	case kind == ast.JSXExpressionContainer:
		if !quiet {
			err = u.container(cur)
		}
	}
	return cur, quiet, err == nil, err
}

// skipAttribute reports whether closures under attr stay untouched: ref
// callbacks, and names rejected by the prop name filter.
func (u *unit) skipAttribute(attr ast.NodeID) bool {
	name := u.tree.Child(attr, ast.FieldName)
	if u.tree.Is(name, ast.JSXIdentifier) && u.tree.Text(name) == "ref" {
		return true
	}
	return u.props != nil && !u.props.MatchString(attrName(u.tree, name))
}

func attrName(tree *ast.Tree, name ast.NodeID) string {
	if tree.Is(name, ast.JSXNamespacedName) {
		return tree.Text(tree.Child(name, ast.FieldNamespace)) + ":" + tree.Text(tree.Child(name, ast.FieldName))
	}
	return tree.Text(name)
}

// container processes the expression of a JSX expression container. An
// identifier stands for every value the variable may hold: its declaration
// and each later assignment.
func (u *unit) container(id ast.NodeID) error {
	expr := u.tree.Child(id, ast.FieldExpression)
	if !u.tree.Is(expr, ast.Identifier) {
		return u.process(expr)
	}
	if err := u.refresh(); err != nil {
		return err
	}
	sym := u.table.Symbol(u.table.Resolve(expr))
	if sym == nil {
		return nil
	}
	// таблица пересобирается после каждого вынесения, sym после этого мёртв
	sites := make([]ast.NodeID, 0, 1+len(sym.Violations))
	sites = append(sites, sym.Decl)
	sites = append(sites, sym.Violations...)
	for _, site := range sites {
		if err := u.process(site); err != nil {
			return err
		}
	}
	return nil
}

// process follows a value to the expressions that produce it.
func (u *unit) process(id ast.NodeID) error {
	if !id.IsValid() || !u.tree.Attached(id) {
		return nil
	}
	switch u.tree.Kind(id) {
	case ast.VariableDeclarator:
		return u.process(u.tree.Child(id, ast.FieldInit))
	case ast.AssignmentExpression:
		return u.process(u.tree.Child(id, ast.FieldRight))
	case ast.ConditionalExpression:
		if err := u.process(u.tree.Child(id, ast.FieldConsequent)); err != nil {
			return err
		}
		return u.process(u.tree.Child(id, ast.FieldAlternate))
	case ast.CallExpression:
		_, err := u.rewriteBind(id)
		return err
	case ast.ArrowFunctionExpression:
		return u.hoistArrow(id)
	}
	return nil
}

// rewriteBind rewrites call if it is expr.bind(...) and returns the node
// now in its slot.
func (u *unit) rewriteBind(call ast.NodeID) (ast.NodeID, error) {
	if !hoist.IsBindCall(u.tree, call) {
		return call, nil
	}
	u.debug(call, "Transformed call to 'bind'")
	repl, err := hoist.RewriteBind(u.tgt, call)
	if err != nil {
		return call, err
	}
	u.rewrites++
	u.stale = true
	diag.ReportInfo(u.opts.Reporter, diag.TrnBindRewritten, u.span(repl),
		fmt.Sprintf("call to 'bind' rewritten to %s", u.tgt.Helper)).Emit()
	return repl, nil
}
