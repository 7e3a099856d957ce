package hoist_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/hoist"
	"github.com/qza7849467chensh5/reflective-bind/internal/testkit"
)

func paramNames(tree *ast.Tree, fn ast.NodeID) []string {
	var out []string
	for _, p := range tree.List(fn, ast.FieldParams) {
		out = append(out, tree.Text(p))
	}
	return out
}

func TestHoistNormalizesContext(t *testing.T) {
	src := `class C {
  render() {
    const g = (e) => this.props.nested.value + this.props.nested.other + e;
    return g;
  }
}`
	tree, table := build(t, src)
	arrow := testkit.Find(t, tree, ast.ArrowFunctionExpression, "", 0)
	v, err := hoist.Analyze(context.Background(), table, arrow, hoist.Options{})
	if err != nil || !v.CanHoist {
		t.Fatalf("analyze: %v %+v", err, v.Blocker)
	}
	params, err := hoist.Normalize(table, v.Context)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(params) != 1 || params[0].Name != "_temp" {
		t.Fatalf("expected a single _temp parameter, got %+v", params)
	}

	tgt := &hoist.Target{Table: table, Helper: "_rbBabelBind", Prefix: "rbHoisted"}
	h, err := hoist.Hoist(tgt, arrow, v, params)
	if err != nil {
		t.Fatalf("hoist: %v", err)
	}
	if h.Name != "_rbHoisted" {
		t.Fatalf("hoisted name = %q", h.Name)
	}
	if got := hoist.Render(tree, h.Call); got != "_rbBabelBind(_rbHoisted, this, this.props.nested)" {
		t.Fatalf("call = %s", got)
	}
	if tree.Attached(arrow) {
		t.Fatalf("closure still attached after hoist")
	}
	if err := testkit.CheckLinks(tree); err != nil {
		t.Fatalf("links: %v", err)
	}

	body := tree.List(tree.Root, ast.FieldBody)
	if body[0] != h.Decl {
		t.Fatalf("hoisted declaration is not the first statement")
	}
	if diff := cmp.Diff([]string{"_temp", "e"}, paramNames(tree, h.Decl)); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
	ret := tree.List(tree.Child(h.Decl, ast.FieldBody), ast.FieldBody)
	if len(ret) != 1 || !tree.Is(ret[0], ast.ReturnStatement) {
		t.Fatalf("expression body not wrapped in a return")
	}
}

func TestHoistParameterOrder(t *testing.T) {
	src := `function outer() {
  let a = 1;
  const hoistable = (c, d) => { let b = 2; return a + b + c + d; };
}`
	tree, table := build(t, src)
	arrow := testkit.Find(t, tree, ast.ArrowFunctionExpression, "", 0)
	decl := tree.Parent(arrow)
	v, err := hoist.Analyze(context.Background(), table, arrow, hoist.Options{})
	if err != nil || !v.CanHoist {
		t.Fatalf("analyze: %v %+v", err, v.Blocker)
	}
	h, err := hoist.Hoist(&hoist.Target{Table: table, Helper: "_h", Prefix: "rbHoisted"}, arrow, v, nil)
	if err != nil {
		t.Fatalf("hoist: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "c", "d"}, paramNames(tree, h.Decl)); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
	if got := hoist.Render(tree, h.Call); got != "_h(_rbHoisted, this, a)" {
		t.Fatalf("call = %s", got)
	}
	if tree.Child(decl, ast.FieldInit) != h.Call {
		t.Fatalf("declarator init was not replaced by the helper call")
	}
}

func TestHoistKeepsDirectivesFirst(t *testing.T) {
	src := `"use strict";
function outer() { const g = () => 1; }`
	tree, table := build(t, src)
	arrow := testkit.Find(t, tree, ast.ArrowFunctionExpression, "", 0)
	v, err := hoist.Analyze(context.Background(), table, arrow, hoist.Options{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	tgt := &hoist.Target{Table: table, Helper: "_h", Prefix: "fn"}
	h, err := hoist.Hoist(tgt, arrow, v, nil)
	if err != nil {
		t.Fatalf("hoist: %v", err)
	}
	imp, err := hoist.AddImport(tgt, "reflective-bind")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	body := tree.List(tree.Root, ast.FieldBody)
	if !tree.Node(body[0]).Flags.Has(ast.FlagDirective) || body[1] != imp || body[2] != h.Decl {
		t.Fatalf("unexpected prelude order: %v", body)
	}
}

func TestHoistRefusesDeclinedVerdict(t *testing.T) {
	tree, table := build(t, "function f() { const g = () => 1; }")
	arrow := testkit.Find(t, tree, ast.ArrowFunctionExpression, "", 0)
	if _, err := hoist.Hoist(&hoist.Target{Table: table}, arrow, hoist.Verdict{}, nil); err == nil {
		t.Fatalf("expected error for a declined verdict")
	}
}

func TestRewriteBind(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x = fn.bind(ctx, 1, 2);", "_b(fn, ctx, 1, 2)"},
		{"x = this.handle.bind(this);", "_b(this.handle, this)"},
		{"x = a.b().bind(null);", "_b(a.b(), null)"},
		{"x = fn[bind](ctx);", ""},
		{`x = fn["bind"](ctx);`, ""},
		{"x = fn.bind;", ""},
		{"x = fn.call(ctx);", ""},
		{"x = a?.b.bind(ctx);", ""},
		{"x = fn.bind?.(ctx);", ""},
		{"class A extends B { m() { x = super.bind(this); } }", ""},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, table := build(t, tt.src)
			assign := testkit.Find(t, tree, ast.AssignmentExpression, "", 0)
			right := tree.Child(assign, ast.FieldRight)
			got, err := hoist.RewriteBind(&hoist.Target{Table: table, Helper: "_b"}, right)
			if err != nil {
				t.Fatalf("rewrite: %v", err)
			}
			if tt.want == "" {
				if got.IsValid() {
					t.Fatalf("unexpected rewrite to %s", hoist.Render(tree, got))
				}
				return
			}
			if !got.IsValid() {
				t.Fatalf("bind call not rewritten")
			}
			if tree.Child(assign, ast.FieldRight) != got {
				t.Fatalf("rewritten call not in place")
			}
			if s := hoist.Render(tree, got); s != tt.want {
				t.Fatalf("rewrite = %s, want %s", s, tt.want)
			}
		})
	}
}

func TestNodesEqual(t *testing.T) {
	src := `this.props.a;
this.props.a;
this.props["a"];
this.props["a"];
this.props[a];
this.props[1];
this.props[1];
f();
f();
`
	tree := testkit.Parse(t, src)
	body := tree.List(tree.Root, ast.FieldBody)
	expr := func(i int) ast.NodeID { return tree.Child(body[i], ast.FieldExpression) }

	tests := []struct {
		name string
		a, b int
		want bool
	}{
		{"same member", 0, 1, true},
		{"computed vs plain", 0, 2, false},
		{"same string key", 2, 3, true},
		{"literal vs identifier key", 2, 4, false},
		{"same numeric key", 5, 6, true},
		{"different kinds", 0, 7, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hoist.NodesEqual(tree, expr(tt.a), expr(tt.b))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("NodesEqual = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := hoist.NodesEqual(tree, expr(7), expr(8)); !errors.Is(err, hoist.ErrUnsupportedNode) {
		t.Fatalf("expected ErrUnsupportedNode for calls, got %v", err)
	}
}

func TestRender(t *testing.T) {
	tree := testkit.Parse(t, `a.b[c](null, "s", 1, x => x);`)
	call := tree.Child(tree.List(tree.Root, ast.FieldBody)[0], ast.FieldExpression)
	if got := hoist.Render(tree, call); got != `a.b[c](null, "s", 1, __ArrowFunctionExpression__)` {
		t.Fatalf("Render = %s", got)
	}
}
