package symbols_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/symbols"
	"github.com/qza7849467chensh5/reflective-bind/internal/testkit"
)

func build(t *testing.T, src string) (*ast.Tree, *symbols.Table) {
	t.Helper()
	tree := testkit.Parse(t, src)
	table, err := symbols.Build(tree)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	return tree, table
}

func names(table *symbols.Table, scope symbols.ScopeID) []string {
	var out []string
	for name := range table.Scope(scope).NameIndex {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func TestDeclarationScopes(t *testing.T) {
	src := `import React, { Component as C } from "react";
import type { T } from "t";
var a = 1;
let b;
function f(p, { q, r: [s] } = {}) {
  var c;
  {
    let d;
    var e;
    function g() {}
  }
}
class K {}
`
	tree, table := build(t, src)

	if diff := cmp.Diff([]string{"C", "K", "React", "a", "b", "f"}, names(table, table.Root)); diff != "" {
		t.Fatalf("program names mismatch (-want +got):\n%s", diff)
	}

	fn := testkit.Find(t, tree, ast.FunctionDeclaration, "", 0)
	fnScope := table.OwnScope(fn)
	if got := table.Scope(fnScope).Kind; got != symbols.ScopeFunction {
		t.Fatalf("function scope kind = %s", got)
	}
	if diff := cmp.Diff([]string{"c", "e", "p", "q", "s"}, names(table, fnScope)); diff != "" {
		t.Fatalf("function names mismatch (-want +got):\n%s", diff)
	}

	d := testkit.Ident(t, tree, "d", 0)
	block := table.ScopeOf(d)
	if diff := cmp.Diff([]string{"d", "g"}, names(table, block)); diff != "" {
		t.Fatalf("block names mismatch (-want +got):\n%s", diff)
	}
	if table.Scope(block).Parent != fnScope {
		t.Fatalf("block parent = %d, want function scope %d", table.Scope(block).Parent, fnScope)
	}

	kinds := map[string]symbols.SymbolKind{
		"React": symbols.SymbolImport, "a": symbols.SymbolVar, "b": symbols.SymbolLet,
		"f": symbols.SymbolFunction, "K": symbols.SymbolClass,
	}
	for name, want := range kinds {
		sym := table.Symbol(table.Lookup(table.Root, name))
		if sym == nil || sym.Kind != want {
			t.Errorf("%s: got %v, want kind %s", name, sym, want)
		}
	}
	if sym := table.Symbol(table.Lookup(fnScope, "q")); sym == nil || sym.Kind != symbols.SymbolParam || !tree.Is(sym.Decl, ast.AssignmentPattern) {
		t.Errorf("q should be a param declared by the whole default pattern, got %+v", sym)
	}
}

func TestReferencesAndViolations(t *testing.T) {
	src := `let a = 1;
a = 2;
a++;
const f = () => a;
for (a of xs) {}
({ a } = o);
a.b = 3;
`
	tree, table := build(t, src)
	sym := table.Symbol(table.Lookup(table.Root, "a"))
	if sym == nil {
		t.Fatal("a is not declared")
	}
	var kinds []string
	for _, v := range sym.Violations {
		kinds = append(kinds, tree.Kind(v).String())
	}
	want := []string{"AssignmentExpression", "UpdateExpression", "ForOfStatement", "AssignmentExpression"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
	if sym.Constant() {
		t.Fatal("a must not be constant")
	}
	if len(sym.References) != 6 {
		t.Fatalf("a has %d references, want 6", len(sym.References))
	}
	if !table.IsGlobal("xs") || !table.IsGlobal("o") {
		t.Fatal("xs and o should be globals")
	}
	if f := table.Symbol(table.Lookup(table.Root, "f")); !f.Constant() || f.Kind != symbols.SymbolConst {
		t.Fatalf("f = %+v, want constant const", f)
	}
}

func TestRedeclarationWritesAreViolations(t *testing.T) {
	_, table := build(t, "var a = 1; var a = 2; var a; function g() {} function g() {}")
	if got := len(table.Symbol(table.Lookup(table.Root, "a")).Violations); got != 1 {
		t.Errorf("a has %d violations, want 1", got)
	}
	if got := len(table.Symbol(table.Lookup(table.Root, "g")).Violations); got != 1 {
		t.Errorf("g has %d violations, want 1", got)
	}
}

func TestScopeOfNameFields(t *testing.T) {
	src := `function decl() {}
const e = function named() { return named; };
switch (x) { case 1: let y = x; }
try {} catch ({ message }) { message; }
for (let i = 0; i < 1; i++) {}
`
	tree, table := build(t, src)

	if got := table.ScopeOf(testkit.Ident(t, tree, "decl", 0)); got != table.Root {
		t.Errorf("function declaration name resolved in scope %d, want root", got)
	}

	named := testkit.Ident(t, tree, "named", 0)
	fnExpr := testkit.Find(t, tree, ast.FunctionExpression, "", 0)
	if got := table.ScopeOf(named); got != table.OwnScope(fnExpr) {
		t.Errorf("function expression name resolved in scope %d, want its own", got)
	}
	if sym := table.Symbol(table.Resolve(testkit.Ident(t, tree, "named", 1))); sym == nil || sym.Kind != symbols.SymbolLocal {
		t.Errorf("named reference resolves to %+v", sym)
	}

	sw := testkit.Find(t, tree, ast.SwitchStatement, "", 0)
	if got := table.ScopeOf(testkit.Ident(t, tree, "x", 0)); got != table.Root {
		t.Errorf("switch discriminant resolved in scope %d, want root", got)
	}
	if got := table.ScopeOf(testkit.Ident(t, tree, "y", 0)); got != table.OwnScope(sw) {
		t.Errorf("case declaration resolved in scope %d, want switch scope", got)
	}

	catch := testkit.Find(t, tree, ast.CatchClause, "", 0)
	use := testkit.Ident(t, tree, "message", 1)
	if got := table.ScopeOf(use); got != table.OwnScope(catch) {
		t.Errorf("catch body resolved in scope %d, want catch scope", got)
	}
	if sym := table.Symbol(table.Resolve(use)); sym == nil || sym.Kind != symbols.SymbolCatch {
		t.Errorf("message resolves to %+v", sym)
	}

	loop := testkit.Find(t, tree, ast.ForStatement, "", 0)
	i := table.Symbol(table.Lookup(table.OwnScope(loop), "i"))
	if i == nil || i.Scope != table.OwnScope(loop) || len(i.Violations) != 1 {
		t.Errorf("loop variable = %+v", i)
	}
}

func TestIsReference(t *testing.T) {
	src := `label: for (;;) { break label; }
o.p;
o[k];
({ key: v, [ck]: 1, short });
class C { m() {} [cm]() {} f = val; }
new.target;
<Comp attr={x}><div /><ns.Item /></Comp>;
`
	tree := testkit.Parse(t, src)
	tests := []struct {
		kind ast.Kind
		name string
		want bool
	}{
		{ast.Identifier, "label", false},
		{ast.Identifier, "o", true},
		{ast.Identifier, "p", false},
		{ast.Identifier, "k", true},
		{ast.Identifier, "key", false},
		{ast.Identifier, "v", true},
		{ast.Identifier, "ck", true},
		{ast.Identifier, "short", true},
		{ast.Identifier, "m", false},
		{ast.Identifier, "cm", true},
		{ast.Identifier, "f", false},
		{ast.Identifier, "val", true},
		{ast.Identifier, "target", false},
		{ast.Identifier, "x", true},
		{ast.JSXIdentifier, "Comp", true},
		{ast.JSXIdentifier, "attr", false},
		{ast.JSXIdentifier, "div", false},
		{ast.JSXIdentifier, "ns", true},
		{ast.JSXIdentifier, "Item", false},
	}
	for _, tt := range tests {
		id := testkit.Find(t, tree, tt.kind, tt.name, 0)
		if got := symbols.IsReference(tree, id); got != tt.want {
			t.Errorf("IsReference(%s %s) = %v, want %v", tt.kind, tt.name, got, tt.want)
		}
	}
}

func TestBoundWithin(t *testing.T) {
	src := `const outer = 1;
use(outer);
function f(arg) {
  const g = (p) => { let local; return outer + arg + p + local; };
}
`
	tree, table := build(t, src)
	arrow := testkit.Find(t, tree, ast.ArrowFunctionExpression, "", 0)
	limit := table.OwnScope(arrow)

	tests := []struct {
		name string
		want bool
	}{
		{"outer", false},
		{"arg", false},
		{"p", true},
		{"local", true},
	}
	for _, tt := range tests {
		nth := 1
		if tt.name == "outer" {
			nth = 2
		}
		ident := testkit.Ident(t, tree, tt.name, nth)
		got, err := table.BoundWithin(ident, limit)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("BoundWithin(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}

	// идентификатор вне limit: обход доходит до корня
	if _, err := table.BoundWithin(testkit.Ident(t, tree, "use", 0), limit); !errors.Is(err, symbols.ErrLimitNotAncestor) {
		t.Fatalf("expected ErrLimitNotAncestor, got %v", err)
	}
}

func TestGenerateUID(t *testing.T) {
	_, table := build(t, "const _temp = 1; label: _temp2; function _rbHoisted() {}")

	if got := table.GenerateUID("temp"); got != "_temp3" {
		t.Fatalf("first uid = %q, want _temp3", got)
	}
	if got := table.GenerateUID("temp"); got != "_temp4" {
		t.Fatalf("second uid = %q, want _temp4", got)
	}
	if got := table.GenerateUID("__rbHoisted12"); got != "_rbHoisted2" {
		t.Fatalf("normalized uid = %q, want _rbHoisted2", got)
	}
	if got := table.GenerateUID("my-helper"); got != "_myHelper" {
		t.Fatalf("uid from invalid name = %q, want _myHelper", got)
	}

	// выданные имена переживают Rebuild
	if err := table.Rebuild(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if got := table.GenerateUID("temp"); got != "_temp5" {
		t.Fatalf("uid after rebuild = %q, want _temp5", got)
	}
}
