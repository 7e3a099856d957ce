package printer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/hoist"
	"github.com/qza7849467chensh5/reflective-bind/internal/printer"
	"github.com/qza7849467chensh5/reflective-bind/internal/symbols"
	"github.com/qza7849467chensh5/reflective-bind/internal/testkit"
)

func render(t *testing.T, tree *ast.Tree) string {
	t.Helper()
	out, err := printer.Print(tree, printer.Options{})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	return string(out)
}

func target(t *testing.T, tree *ast.Tree) *hoist.Target {
	t.Helper()
	table, err := symbols.Build(tree)
	if err != nil {
		t.Fatalf("symbols: %v", err)
	}
	return &hoist.Target{Table: table, Helper: "_rbBabelBind", Prefix: "rbHoisted"}
}

func TestUntouchedTreeIsCopied(t *testing.T) {
	src := "// @flow\nconst a = 1;   /* keep */\n\nfunction f(x: number) { return x }\n"
	tree := testkit.Parse(t, src)
	if got := render(t, tree); got != src {
		t.Fatalf("round trip changed the source:\n%s", cmp.Diff(src, got))
	}
}

func TestPrintBindRewrite(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "simple",
			src:  "const g = this.onClick.bind(this, 1);\n",
			want: "const g = _rbBabelBind(this.onClick, this, 1);\n",
		},
		{
			name: "sequence argument keeps parentheses",
			src:  "f.bind((a, b));\n",
			want: "_rbBabelBind(f, (a, b));\n",
		},
		{
			name: "comments around the call survive",
			src:  "x(/* a */ f.bind(null) /* b */);\n",
			want: "x(/* a */ _rbBabelBind(f, null) /* b */);\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := testkit.Parse(t, tt.src)
			tgt := target(t, tree)
			call := testkit.Find(t, tree, ast.CallExpression, "", 0)
			if !hoist.IsBindCall(tree, call) {
				call = testkit.Find(t, tree, ast.CallExpression, "", 1)
			}
			if _, err := hoist.RewriteBind(tgt, call); err != nil {
				t.Fatalf("rewrite: %v", err)
			}
			if diff := cmp.Diff(tt.want, render(t, tree)); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPrintHoistedFunction(t *testing.T) {
	src := `// @flow
"use strict";
// comment on the first statement
function outer(a) {
  return <Button onClick={(c, d) => a + c + d} />;
}
`
	want := `// @flow
"use strict";
// comment on the first statement
import { babelBind as _rbBabelBind } from "reflective-bind";
function _rbHoisted(a, c, d) {
  return a + c + d;
}
function outer(a) {
  return <Button onClick={_rbBabelBind(_rbHoisted, this, a)} />;
}
`
	tree := testkit.Parse(t, src)
	tgt := target(t, tree)
	arrow := testkit.Find(t, tree, ast.ArrowFunctionExpression, "", 0)
	v := hoist.Verdict{CanHoist: true, Captured: []string{"a"}}
	if _, err := hoist.Hoist(tgt, arrow, v, nil); err != nil {
		t.Fatalf("hoist: %v", err)
	}
	if _, err := hoist.AddImport(tgt, "reflective-bind"); err != nil {
		t.Fatalf("import: %v", err)
	}
	if diff := cmp.Diff(want, render(t, tree)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintReindentsMovedBody(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "block body",
			src: "class C {\n  render(a) {\n    return (\n      <Button\n        onClick={() => {\n" +
				"          const s = `x\n  y`;\n\n          return a + s;\n        }}\n      />\n    );\n  }\n}\n",
			want: "function _rbHoisted(a) {\n  const s = `x\n  y`;\n\n  return a + s;\n}\n" +
				"class C {\n  render(a) {\n    return (\n      <Button\n        onClick={_rbBabelBind(_rbHoisted, this, a)}\n      />\n    );\n  }\n}\n",
		},
		{
			name: "expression body",
			src:  "function f(a) {\n  return <B on={() =>\n    g(\n      a\n    )} />;\n}\n",
			want: "function _rbHoisted(a) {\n  return g(\n    a\n  );\n}\n" +
				"function f(a) {\n  return <B on={_rbBabelBind(_rbHoisted, this, a)} />;\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := testkit.Parse(t, tt.src)
			tgt := target(t, tree)
			arrow := testkit.Find(t, tree, ast.ArrowFunctionExpression, "", 0)
			if _, err := hoist.Hoist(tgt, arrow, hoist.Verdict{CanHoist: true, Captured: []string{"a"}}, nil); err != nil {
				t.Fatalf("hoist: %v", err)
			}
			if diff := cmp.Diff(tt.want, render(t, tree)); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPrintKeepsCRLF(t *testing.T) {
	src := "function f(a) {\r\n  return <B on={() => a} />;\r\n}\r\n"
	want := "import { babelBind as _h } from \"m\";\r\n" +
		"function _rbHoisted(a) {\r\n  return a;\r\n}\r\n" +
		"function f(a) {\r\n  return <B on={_h(_rbHoisted, this, a)} />;\r\n}\r\n"
	tree := testkit.Parse(t, src)
	tgt := target(t, tree)
	tgt.Helper = "_h"
	arrow := testkit.Find(t, tree, ast.ArrowFunctionExpression, "", 0)
	if _, err := hoist.Hoist(tgt, arrow, hoist.Verdict{CanHoist: true, Captured: []string{"a"}}, nil); err != nil {
		t.Fatalf("hoist: %v", err)
	}
	if _, err := hoist.AddImport(tgt, "m"); err != nil {
		t.Fatalf("import: %v", err)
	}
	if diff := cmp.Diff(want, render(t, tree)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintRejectsUnknownSynthetic(t *testing.T) {
	tree := testkit.Parse(t, "a;\n")
	stmt := tree.List(tree.Root, ast.FieldBody)[0]
	odd := tree.NewNode(ast.ArrayExpression, tree.Node(stmt).Span)
	tree.Node(odd).Flags |= ast.FlagSynthetic
	if err := tree.Replace(tree.Child(stmt, ast.FieldExpression), odd); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := printer.Print(tree, printer.Options{}); err == nil {
		t.Fatalf("expected an error for an unprintable synthetic node")
	}
}
