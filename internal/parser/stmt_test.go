package parser

import (
	"testing"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
)

func TestStatementShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"for-of with destructuring",
			"for (const [k, v] of m) {}",
			"ForOfStatement(VariableDeclaration(VariableDeclarator(ArrayPattern(Identifier:k Identifier:v))) Identifier:m BlockStatement)",
		},
		{
			"for-in with member target",
			"for (x.y in o);",
			"ForInStatement(MemberExpression(Identifier:x Identifier:y) Identifier:o EmptyStatement)",
		},
		{
			"classic for",
			"for (let i = 0; i < n; i++) f(i);",
			"ForStatement(VariableDeclaration(VariableDeclarator(Identifier:i NumericLiteral:0)) BinaryExpression(Identifier:i Identifier:n) UpdateExpression(Identifier:i) ExpressionStatement(CallExpression(Identifier:f Identifier:i)))",
		},
		{
			"for header with in inside parens",
			"for (var a = (b in c); a; ) {}",
			"ForStatement(VariableDeclaration(VariableDeclarator(Identifier:a BinaryExpression(Identifier:b Identifier:c))) Identifier:a BlockStatement)",
		},
		{
			"do-while keeps source order",
			"do x(); while (y)",
			"DoWhileStatement(ExpressionStatement(CallExpression(Identifier:x)) Identifier:y)",
		},
		{
			"labeled continue",
			"outer: while (a) { continue outer; }",
			"LabeledStatement(Identifier:outer WhileStatement(Identifier:a BlockStatement(ContinueStatement(Identifier:outer))))",
		},
		{
			"try catch finally",
			"try { a(); } catch ({ message }) { b(); } finally { c(); }",
			"TryStatement(BlockStatement(ExpressionStatement(CallExpression(Identifier:a))) CatchClause(ObjectPattern(ObjectProperty(Identifier:message)) BlockStatement(ExpressionStatement(CallExpression(Identifier:b)))) BlockStatement(ExpressionStatement(CallExpression(Identifier:c))))",
		},
		{
			"switch",
			"switch (x) { case 1: a(); break; default: b(); }",
			"SwitchStatement(Identifier:x SwitchCase(NumericLiteral:1 ExpressionStatement(CallExpression(Identifier:a)) BreakStatement) SwitchCase(ExpressionStatement(CallExpression(Identifier:b))))",
		},
		{
			"let as identifier",
			"let = 5;",
			"ExpressionStatement(AssignmentExpression(Identifier:let NumericLiteral:5))",
		},
		{
			"function declaration with defaults and rest",
			"function f(a, {b} = {}, ...c) { return; }",
			"FunctionDeclaration(Identifier:f Identifier:a AssignmentPattern(ObjectPattern(ObjectProperty(Identifier:b)) ObjectExpression) RestElement(Identifier:c) BlockStatement(ReturnStatement))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parseOK(t, tt.input)
			if got := ast.Shape(tree, stmt(t, tree, 0)); got != tt.want {
				t.Errorf("shape mismatch\n got: %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestDirectives(t *testing.T) {
	tree := parseOK(t, "'use strict';\n\"use client\";\nfoo();\n'not a directive';")
	want := []bool{true, true, false, false}
	for i, w := range want {
		s := stmt(t, tree, i)
		if got := tree.Node(s).Flags.Has(ast.FlagDirective); got != w {
			t.Errorf("statement %d directive = %v, want %v", i, got, w)
		}
	}

	tree = parseOK(t, "function f() { 'use strict'; g(); }")
	body := tree.List(tree.Child(stmt(t, tree, 0), ast.FieldBody), ast.FieldBody)
	if !tree.Node(body[0]).Flags.Has(ast.FlagDirective) || tree.Node(body[1]).Flags.Has(ast.FlagDirective) {
		t.Error("function body prologue not marked")
	}
}

func TestClassMembers(t *testing.T) {
	src := `class A extends B {
  static x = 1;
  #y;
  constructor() { super(); }
  get z() { return this.#y }
  static { init(); }
  async *gen() {}
  handle = () => this.x;
}`
	tree := parseOK(t, src)
	class := stmt(t, tree, 0)
	if !tree.Is(class, ast.ClassDeclaration) {
		t.Fatalf("got %s", tree.Kind(class))
	}
	if got := tree.Text(tree.Child(class, ast.FieldID)); got != "A" {
		t.Errorf("class id = %q", got)
	}
	if !tree.Is(tree.Child(class, ast.FieldSuperClass), ast.Identifier) {
		t.Error("missing superclass")
	}

	members := tree.List(tree.Child(class, ast.FieldBody), ast.FieldBody)
	type want struct {
		kind  ast.Kind
		text  string
		flags ast.Flags
	}
	wants := []want{
		{ast.ClassProperty, "", ast.FlagStatic},
		{ast.ClassProperty, "", 0},
		{ast.ClassMethod, "constructor", 0},
		{ast.ClassMethod, "get", 0},
		{ast.StaticBlock, "", 0},
		{ast.ClassMethod, "method", ast.FlagAsync | ast.FlagGenerator},
		{ast.ClassProperty, "", 0},
	}
	if len(members) != len(wants) {
		t.Fatalf("got %d members, want %d", len(members), len(wants))
	}
	for i, w := range wants {
		n := tree.Node(members[i])
		if n.Kind != w.kind || n.Text != w.text || n.Flags&(ast.FlagStatic|ast.FlagAsync|ast.FlagGenerator) != w.flags {
			t.Errorf("member %d = %s %q %b, want %s %q %b", i, n.Kind, n.Text, n.Flags, w.kind, w.text, w.flags)
		}
	}
	if key := tree.Child(members[1], ast.FieldKey); !tree.Is(key, ast.PrivateName) {
		t.Errorf("private field key = %s", tree.Kind(key))
	}
	if v := tree.Child(members[6], ast.FieldValue); !tree.Is(v, ast.ArrowFunctionExpression) {
		t.Errorf("class field value = %s", tree.Kind(v))
	}
}

func TestModules(t *testing.T) {
	src := `import React, { Component as C, type Props } from "react";
import * as ns from './ns';
import type { T } from "./t";
import "side-effect";
export default function () {}
export const a = 1, b = 2;
export { a as c, b };
export * from "x";
`
	tree := parseOK(t, src)
	kinds := []ast.Kind{
		ast.ImportDeclaration, ast.ImportDeclaration, ast.ImportDeclaration, ast.ImportDeclaration,
		ast.ExportDefaultDeclaration, ast.ExportNamedDeclaration, ast.ExportNamedDeclaration, ast.ExportAllDeclaration,
	}
	for i, k := range kinds {
		if got := tree.Kind(stmt(t, tree, i)); got != k {
			t.Errorf("statement %d = %s, want %s", i, got, k)
		}
	}

	specs := tree.List(stmt(t, tree, 0), ast.FieldSpecifiers)
	if len(specs) != 3 {
		t.Fatalf("got %d specifiers", len(specs))
	}
	if !tree.Is(specs[0], ast.ImportDefaultSpecifier) {
		t.Errorf("first specifier = %s", tree.Kind(specs[0]))
	}
	if got := tree.Text(tree.Child(specs[1], ast.FieldLocal)); got != "C" {
		t.Errorf("aliased local = %q", got)
	}
	if !tree.Node(specs[2]).Flags.Has(ast.FlagTypeOnly) {
		t.Error("inline type specifier not flagged")
	}
	if !tree.Node(stmt(t, tree, 2)).Flags.Has(ast.FlagTypeOnly) {
		t.Error("import type not flagged")
	}
	if tree.Node(stmt(t, tree, 0)).Flags.Has(ast.FlagTypeOnly) {
		t.Error("value import flagged as type-only")
	}
}

func TestFlowDeclarations(t *testing.T) {
	src := `type A = {
  a: number,
} | null;
export type B = A
opaque type C = string;
interface D { m(): void }
declare var e: number;
const x = (y: any);
function f<T>(v: T): Array<Array<T>> { return [[v]]; }
`
	tree := parseOK(t, src)
	kinds := []ast.Kind{
		ast.FlowDeclaration, ast.FlowDeclaration, ast.FlowDeclaration, ast.FlowDeclaration,
		ast.FlowDeclaration, ast.VariableDeclaration, ast.FunctionDeclaration,
	}
	body := tree.List(tree.Root, ast.FieldBody)
	if len(body) != len(kinds) {
		t.Fatalf("got %d statements, want %d", len(body), len(kinds))
	}
	for i, k := range kinds {
		if got := tree.Kind(body[i]); got != k {
			t.Errorf("statement %d = %s, want %s", i, got, k)
		}
	}
	if got := tree.Source(body[1]); got != "export type B = A" {
		t.Errorf("flow declaration span = %q", got)
	}
	fn := body[6]
	if got := tree.Source(tree.Child(fn, ast.FieldReturnType)); got != ": Array<Array<T>>" {
		t.Errorf("return type = %q", got)
	}
}

func TestErrorRecovery(t *testing.T) {
	tree, bag := parseSource(t, "let x = ;\nfoo();")
	if !bag.HasErrors() {
		t.Fatal("expected errors")
	}
	body := tree.List(tree.Root, ast.FieldBody)
	if len(body) == 0 {
		t.Fatal("recovery dropped the following statement")
	}
	last := body[len(body)-1]
	if got, want := ast.Shape(tree, last), "ExpressionStatement(CallExpression(Identifier:foo))"; got != want {
		t.Errorf("last statement = %s, want %s", got, want)
	}
}

func TestSpeculationLeavesNoDiagnostics(t *testing.T) {
	_, bag := parseSource(t, "(a, b);\n(c + d) * 2;\nx = (y) ? (z) : w;")
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
}

func TestMaxErrorsStopsReporting(t *testing.T) {
	fs := source.NewFileSetWithBase("")
	file := fs.Get(fs.AddVirtual("errors.js", []byte("a +;\nb +;\nc +;\n")))
	bag := diag.NewBag(0)
	res := ParseFile(file, Options{MaxErrors: 1, Reporter: &diag.BagReporter{Bag: bag}})
	if bag.Len() != 1 {
		t.Errorf("reported %d diagnostics, want 1: %s", bag.Len(), diagnosticsSummary(bag))
	}
	if res.Errors != 3 {
		t.Errorf("counted %d errors, want 3", res.Errors)
	}
}
