package hoist

import (
	"fmt"
	"strings"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
)

// NodesEqual reports whether two expressions are structurally identical.
// Only this, identifiers, string and numeric literals and member
// expressions over them are supported; other kinds return
// ErrUnsupportedNode rather than a guess.
func NodesEqual(tree *ast.Tree, a, b ast.NodeID) (bool, error) {
	na, nb := tree.Node(a), tree.Node(b)
	if na == nil || nb == nil {
		return na == nb, nil
	}
	if na.Kind != nb.Kind {
		return false, nil
	}
	switch na.Kind {
	case ast.ThisExpression:
		return true, nil
	case ast.Identifier, ast.StringLiteral, ast.NumericLiteral:
		return na.Text == nb.Text, nil
	case ast.MemberExpression:
		const shape = ast.FlagComputed | ast.FlagOptional
		if na.Flags&shape != nb.Flags&shape {
			return false, nil
		}
		eq, err := NodesEqual(tree, tree.Child(a, ast.FieldObject), tree.Child(b, ast.FieldObject))
		if err != nil || !eq {
			return eq, err
		}
		return NodesEqual(tree, tree.Child(a, ast.FieldProperty), tree.Child(b, ast.FieldProperty))
	}
	return false, fmt.Errorf("%s: %w", na.Kind, ErrUnsupportedNode)
}

// Render prints a short form of an expression for log messages.
func Render(tree *ast.Tree, id ast.NodeID) string {
	n := tree.Node(id)
	if n == nil {
		return ""
	}
	switch {
	case n.Kind == ast.NullLiteral:
		return "null"
	case n.Kind.IsLiteral():
		return n.Text
	}
	switch n.Kind {
	case ast.Identifier, ast.PrivateName:
		return n.Text
	case ast.ThisExpression:
		return "this"
	case ast.MemberExpression:
		obj := Render(tree, tree.Child(id, ast.FieldObject))
		prop := Render(tree, tree.Child(id, ast.FieldProperty))
		if n.Flags.Has(ast.FlagComputed) {
			return obj + "[" + prop + "]"
		}
		return obj + "." + prop
	case ast.CallExpression:
		args := tree.List(id, ast.FieldArguments)
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = Render(tree, arg)
		}
		return Render(tree, tree.Child(id, ast.FieldCallee)) + "(" + strings.Join(parts, ", ") + ")"
	}
	return "__" + n.Kind.String() + "__"
}
