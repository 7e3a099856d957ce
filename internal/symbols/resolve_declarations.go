package symbols

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
)

// Первый проход: создаёт области видимости и объявляет имена.

func (r *resolver) declareList(ids []ast.NodeID) {
	for _, id := range ids {
		r.declareNode(id)
	}
}

func (r *resolver) declareChildren(id ast.NodeID) {
	r.declareList(r.table.Tree.Children(id))
}

func (r *resolver) declareNode(id ast.NodeID) {
	tree := r.table.Tree
	n := tree.Node(id)
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.TypeAnnotation, ast.TypeParameters, ast.FlowDeclaration:
		return
	case ast.FunctionDeclaration:
		if name := tree.Child(id, ast.FieldID); name.IsValid() {
			r.declare(r.current(), name, id, SymbolFunction)
		}
		r.declareFunction(id)
		return
	case ast.FunctionExpression, ast.ArrowFunctionExpression, ast.ObjectMethod, ast.ClassMethod:
		r.declareFunction(id)
		return
	case ast.ClassDeclaration, ast.ClassExpression:
		r.declareClass(id)
		return
	case ast.VariableDeclaration:
		r.declareVariables(id)
		return
	case ast.ImportDeclaration:
		r.declareImport(id)
		return
	case ast.BlockStatement:
		r.enter(ScopeBlock, id)
		r.declareChildren(id)
		r.leave()
		return
	case ast.ForStatement, ast.ForInStatement, ast.ForOfStatement:
		r.enter(ScopeFor, id)
		r.declareChildren(id)
		r.leave()
		return
	case ast.SwitchStatement:
		r.declareNode(tree.Child(id, ast.FieldDiscriminant))
		r.enter(ScopeSwitch, id)
		r.declareList(tree.List(id, ast.FieldCases))
		r.leave()
		return
	case ast.CatchClause:
		scope := r.enter(ScopeCatch, id)
		if param := tree.Child(id, ast.FieldParam); param.IsValid() {
			r.declarePattern(param, param, SymbolCatch, scope)
		}
		// тело catch делит область с параметром
		r.declareChildren(tree.Child(id, ast.FieldBody))
		r.leave()
		return
	case ast.StaticBlock:
		r.enter(ScopeStaticBlock, id)
		r.declareChildren(id)
		r.leave()
		return
	}
	r.declareChildren(id)
}

func (r *resolver) declareFunction(fn ast.NodeID) {
	tree := r.table.Tree
	kind := tree.Kind(fn)
	if kind == ast.ObjectMethod || kind == ast.ClassMethod {
		r.declareList(tree.List(fn, ast.FieldDecorators))
		if tree.Node(fn).Flags.Has(ast.FlagComputed) {
			r.declareNode(tree.Child(fn, ast.FieldKey))
		}
	}

	scope := r.enter(ScopeFunction, fn)
	if kind == ast.FunctionExpression {
		if name := tree.Child(fn, ast.FieldID); name.IsValid() {
			r.declare(scope, name, fn, SymbolLocal)
		}
	}
	for _, param := range tree.List(fn, ast.FieldParams) {
		r.declarePattern(param, param, SymbolParam, scope)
	}
	body := tree.Child(fn, ast.FieldBody)
	if tree.Is(body, ast.BlockStatement) {
		r.declareChildren(body)
	} else {
		r.declareNode(body)
	}
	r.leave()
}

func (r *resolver) declareClass(class ast.NodeID) {
	tree := r.table.Tree
	r.declareList(tree.List(class, ast.FieldDecorators))
	name := tree.Child(class, ast.FieldID)
	if name.IsValid() && tree.Is(class, ast.ClassDeclaration) {
		r.declare(r.current(), name, class, SymbolClass)
	}
	scope := r.enter(ScopeClass, class)
	if name.IsValid() && tree.Is(class, ast.ClassExpression) {
		r.declare(scope, name, class, SymbolLocal)
	}
	r.declareNode(tree.Child(class, ast.FieldSuperClass))
	r.declareNode(tree.Child(class, ast.FieldBody))
	r.leave()
}

func (r *resolver) declareVariables(decl ast.NodeID) {
	tree := r.table.Tree
	kind := varKind(tree.Text(decl))
	scope := r.current()
	if kind == SymbolVar {
		scope = r.varScope()
	}
	for _, d := range tree.List(decl, ast.FieldDeclarations) {
		r.declarePattern(tree.Child(d, ast.FieldID), d, kind, scope)
		r.declareNode(tree.Child(d, ast.FieldInit))
	}
}

func (r *resolver) declareImport(decl ast.NodeID) {
	tree := r.table.Tree
	if tree.Node(decl).Flags.Has(ast.FlagTypeOnly) {
		return
	}
	for _, spec := range tree.List(decl, ast.FieldSpecifiers) {
		if tree.Node(spec).Flags.Has(ast.FlagTypeOnly) {
			continue
		}
		local := tree.Child(spec, ast.FieldLocal)
		if !local.IsValid() {
			local = tree.Child(spec, ast.FieldImported)
		}
		if tree.Is(local, ast.Identifier) {
			r.declare(r.table.Root, local, spec, SymbolImport)
		}
	}
}

// declarePattern declares every name bound by a parameter, declarator or
// catch pattern; expressions inside the pattern (defaults, computed keys)
// are walked for nested scopes.
func (r *resolver) declarePattern(pat, decl ast.NodeID, kind SymbolKind, scope ScopeID) {
	tree := r.table.Tree
	switch tree.Kind(pat) {
	case ast.Identifier:
		r.declare(scope, pat, decl, kind)
	case ast.ObjectPattern:
		for _, prop := range tree.List(pat, ast.FieldProperties) {
			if tree.Is(prop, ast.RestElement) {
				r.declarePattern(tree.Child(prop, ast.FieldArgument), decl, kind, scope)
				continue
			}
			if tree.Node(prop).Flags.Has(ast.FlagComputed) {
				r.declareNode(tree.Child(prop, ast.FieldKey))
			}
			r.declarePattern(tree.Child(prop, ast.FieldValue), decl, kind, scope)
		}
	case ast.ArrayPattern:
		for _, el := range tree.List(pat, ast.FieldElements) {
			if el.IsValid() {
				r.declarePattern(el, decl, kind, scope)
			}
		}
	case ast.AssignmentPattern:
		r.declarePattern(tree.Child(pat, ast.FieldLeft), decl, kind, scope)
		r.declareNode(tree.Child(pat, ast.FieldRight))
	case ast.RestElement:
		r.declarePattern(tree.Child(pat, ast.FieldArgument), decl, kind, scope)
	default:
		r.declareNode(pat)
	}
}
