package order_test

import (
	"errors"
	"testing"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/order"
	"github.com/qza7849467chensh5/reflective-bind/internal/testkit"
)

// nodes addresses a node by kind, text and occurrence.
type nodes struct {
	kind ast.Kind
	text string
	nth  int
}

func TestIsDefinitelyBefore(t *testing.T) {
	tests := []struct {
		name string
		src  string
		a, b nodes
		want bool
	}{
		{
			"earlier statement",
			"const a = 1; const f = () => a;",
			nodes{ast.VariableDeclarator, "", 0}, nodes{ast.ArrowFunctionExpression, "", 0},
			true,
		},
		{
			"later statement",
			"const f = () => a; const a = 1;",
			nodes{ast.VariableDeclarator, "", 1}, nodes{ast.ArrowFunctionExpression, "", 0},
			false,
		},
		{
			"hoisted function declaration",
			"const f = () => g; function g() {}",
			nodes{ast.FunctionDeclaration, "", 0}, nodes{ast.ArrowFunctionExpression, "", 0},
			true,
		},
		{
			"a contains b",
			"const f = () => f;",
			nodes{ast.VariableDeclarator, "", 0}, nodes{ast.ArrowFunctionExpression, "", 0},
			false,
		},
		{
			"b contains a",
			"let a; const f = () => { a = 1; };",
			nodes{ast.AssignmentExpression, "", 0}, nodes{ast.ArrowFunctionExpression, "", 0},
			false,
		},
		{
			"write inside another function",
			"let a; function w() { a = 2; } const f = () => a;",
			nodes{ast.AssignmentExpression, "", 0}, nodes{ast.ArrowFunctionExpression, "", 0},
			false,
		},
		{
			"write inside a nested block",
			"let a; if (c) { a = 2; } const f = () => a;",
			nodes{ast.AssignmentExpression, "", 0}, nodes{ast.ArrowFunctionExpression, "", 0},
			true,
		},
		{
			"field order: test before consequent",
			"if (a = 1) { f = () => a; }",
			nodes{ast.AssignmentExpression, "", 0}, nodes{ast.ArrowFunctionExpression, "", 0},
			true,
		},
		{
			"field order: right after left",
			"x = [() => a, a = 1];",
			nodes{ast.AssignmentExpression, "", 1}, nodes{ast.ArrowFunctionExpression, "", 0},
			false,
		},
		{
			"parameter before body",
			"function h(p) { const f = () => p; }",
			nodes{ast.Identifier, "p", 0}, nodes{ast.ArrowFunctionExpression, "", 0},
			true,
		},
		{
			"same node",
			"const f = () => 1;",
			nodes{ast.ArrowFunctionExpression, "", 0}, nodes{ast.ArrowFunctionExpression, "", 0},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := testkit.Parse(t, tt.src)
			a := testkit.Find(t, tree, tt.a.kind, tt.a.text, tt.a.nth)
			b := testkit.Find(t, tree, tt.b.kind, tt.b.text, tt.b.nth)
			got, err := order.IsDefinitelyBefore(tree, a, b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("IsDefinitelyBefore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetachedNodeIsInternalError(t *testing.T) {
	tree := testkit.Parse(t, "const f = () => 1;")
	arrow := testkit.Find(t, tree, ast.ArrowFunctionExpression, "", 0)
	loose := tree.NewIdent("loose")

	_, err := order.IsDefinitelyBefore(tree, loose, arrow)
	if !errors.Is(err, order.ErrNoCommonAncestor) {
		t.Fatalf("expected ErrNoCommonAncestor, got %v", err)
	}
	var ie *order.InternalError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *order.InternalError, got %T", err)
	}
}
