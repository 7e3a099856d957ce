package symbols

import (
	"strings"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
)

// IsIntrinsicTag reports whether a JSX element name denotes a host element
// (div, my-widget) rather than a component.
func IsIntrinsicTag(name string) bool {
	if name == "" {
		return false
	}
	return name[0] >= 'a' && name[0] <= 'z' || strings.Contains(name, "-")
}

// IsReference reports whether the identifier at id reads or writes a
// variable. Declarations, property names, labels, meta property parts,
// JSX attribute names and host tag names are not references.
func IsReference(tree *ast.Tree, id ast.NodeID) bool {
	n := tree.Node(id)
	if n == nil {
		return false
	}
	switch n.Kind {
	case ast.Identifier:
		return identIsReference(tree, id)
	case ast.JSXIdentifier:
		return jsxIdentIsReference(tree, id)
	}
	return false
}

func identIsReference(tree *ast.Tree, id ast.NodeID) bool {
	n := tree.Node(id)
	parent := tree.Node(n.Parent)
	if parent == nil {
		return false
	}
	switch parent.Kind {
	case ast.MemberExpression:
		return n.Field != ast.FieldProperty || parent.Flags.Has(ast.FlagComputed)
	case ast.ObjectProperty, ast.ObjectMethod, ast.ClassMethod, ast.ClassProperty:
		if n.Field == ast.FieldKey && !parent.Flags.Has(ast.FlagComputed) {
			return false
		}
	case ast.LabeledStatement, ast.BreakStatement, ast.ContinueStatement, ast.MetaProperty:
		return false
	case ast.ImportSpecifier, ast.ImportDefaultSpecifier, ast.ImportNamespaceSpecifier, ast.ExportAllDeclaration:
		return false
	case ast.ExportSpecifier:
		// export { a as b } from "m" не ссылается на локальное a
		decl := tree.Parent(n.Parent)
		return n.Field == ast.FieldLocal && !tree.Child(decl, ast.FieldSource).IsValid()
	case ast.FunctionDeclaration, ast.FunctionExpression, ast.ClassDeclaration, ast.ClassExpression:
		if n.Field == ast.FieldID {
			return false
		}
	}
	return !isBindingPattern(tree, id)
}

// isBindingPattern reports whether id sits in a declaring pattern:
// a declarator id, a parameter or a catch parameter.
func isBindingPattern(tree *ast.Tree, id ast.NodeID) bool {
	cur := id
	for {
		n := tree.Node(cur)
		parent := tree.Node(n.Parent)
		if parent == nil {
			return false
		}
		switch parent.Kind {
		case ast.ObjectPattern, ast.ArrayPattern, ast.RestElement:
		case ast.AssignmentPattern:
			if n.Field != ast.FieldLeft {
				return false
			}
		case ast.ObjectProperty:
			if n.Field != ast.FieldValue || !tree.Is(parent.Parent, ast.ObjectPattern) {
				return false
			}
		case ast.VariableDeclarator:
			return n.Field == ast.FieldID
		case ast.CatchClause:
			return n.Field == ast.FieldParam
		case ast.FunctionDeclaration, ast.FunctionExpression, ast.ArrowFunctionExpression, ast.ObjectMethod, ast.ClassMethod:
			return n.Field == ast.FieldParams
		default:
			return false
		}
		cur = n.Parent
	}
}

func jsxIdentIsReference(tree *ast.Tree, id ast.NodeID) bool {
	n := tree.Node(id)
	if n.Text == "this" {
		return false
	}
	switch tree.Kind(n.Parent) {
	case ast.JSXOpeningElement, ast.JSXClosingElement:
		return !IsIntrinsicTag(n.Text)
	case ast.JSXMemberExpression:
		return n.Field == ast.FieldObject
	}
	return false
}

// PatternNames calls fn for every identifier bound or assigned by pattern.
// Member expression targets are skipped.
func PatternNames(tree *ast.Tree, pat ast.NodeID, fn func(ident ast.NodeID)) {
	switch tree.Kind(pat) {
	case ast.Identifier:
		fn(pat)
	case ast.ObjectPattern:
		for _, prop := range tree.List(pat, ast.FieldProperties) {
			if tree.Is(prop, ast.RestElement) {
				PatternNames(tree, tree.Child(prop, ast.FieldArgument), fn)
				continue
			}
			PatternNames(tree, tree.Child(prop, ast.FieldValue), fn)
		}
	case ast.ArrayPattern:
		for _, el := range tree.List(pat, ast.FieldElements) {
			PatternNames(tree, el, fn)
		}
	case ast.AssignmentPattern:
		PatternNames(tree, tree.Child(pat, ast.FieldLeft), fn)
	case ast.RestElement:
		PatternNames(tree, tree.Child(pat, ast.FieldArgument), fn)
	case ast.VariableDeclaration:
		for _, d := range tree.List(pat, ast.FieldDeclarations) {
			PatternNames(tree, tree.Child(d, ast.FieldID), fn)
		}
	}
}
