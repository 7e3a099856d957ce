package symbols

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
)

// Второй проход: ссылки, записи (violations) и метки. Области уже созданы,
// текущая область вычисляется по nodeScope так же, как в ScopeOf.

func (r *resolver) resolveNode(id ast.NodeID, scope ScopeID) {
	tree := r.table.Tree
	n := tree.Node(id)
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.TypeAnnotation, ast.TypeParameters, ast.FlowDeclaration:
		return
	case ast.Identifier, ast.JSXIdentifier:
		if IsReference(tree, id) {
			r.reference(id, scope)
		}
		return
	case ast.LabeledStatement, ast.BreakStatement, ast.ContinueStatement:
		if label := tree.Child(id, ast.FieldLabel); label.IsValid() {
			r.table.names[tree.Text(label)] = struct{}{}
		}
	case ast.AssignmentExpression:
		r.violate(tree.Child(id, ast.FieldLeft), id, scope)
	case ast.UpdateExpression:
		r.violate(tree.Child(id, ast.FieldArgument), id, scope)
	case ast.ForInStatement, ast.ForOfStatement:
		if left := tree.Child(id, ast.FieldLeft); !tree.Is(left, ast.VariableDeclaration) {
			r.violate(left, id, r.table.nodeScope[id])
		}
	}
	for _, c := range tree.Children(id) {
		inner := scope
		if s, ok := r.table.nodeScope[id]; ok && inOwnScope(n.Kind, tree.Node(c).Field) {
			inner = s
		}
		r.resolveNode(c, inner)
	}
}

func (r *resolver) reference(ident ast.NodeID, scope ScopeID) {
	name := r.table.Tree.Text(ident)
	r.table.names[name] = struct{}{}
	if sym := r.table.Symbols.Get(r.table.Lookup(scope, name)); sym != nil {
		sym.References = append(sym.References, ident)
		return
	}
	r.table.globals[name] = append(r.table.globals[name], ident)
}

// violate records site as a write to every binding assigned by target.
func (r *resolver) violate(target, site ast.NodeID, scope ScopeID) {
	PatternNames(r.table.Tree, target, func(ident ast.NodeID) {
		if sym := r.table.Symbols.Get(r.table.Lookup(scope, r.table.Tree.Text(ident))); sym != nil {
			sym.Violations = append(sym.Violations, site)
		}
	})
}
