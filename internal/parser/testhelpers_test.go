package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, src string) (*ast.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSetWithBase("")
	file := fs.Get(fs.AddVirtual("test.js", []byte(src)))
	bag := diag.NewBag(0)
	res := ParseFile(file, Options{Reporter: &diag.BagReporter{Bag: bag}})
	return res.Tree, bag
}

// parseOK разбирает src и требует отсутствия ошибок.
func parseOK(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors for %q: %s", src, diagnosticsSummary(bag))
	}
	return tree
}

// stmt возвращает i-й оператор программы.
func stmt(t *testing.T, tree *ast.Tree, i int) ast.NodeID {
	t.Helper()
	body := tree.List(tree.Root, ast.FieldBody)
	if i >= len(body) {
		t.Fatalf("program has %d statements, want index %d", len(body), i)
	}
	return body[i]
}

// exprOf возвращает выражение i-го ExpressionStatement.
func exprOf(t *testing.T, tree *ast.Tree, i int) ast.NodeID {
	t.Helper()
	s := stmt(t, tree, i)
	if !tree.Is(s, ast.ExpressionStatement) {
		t.Fatalf("statement %d is %s, want ExpressionStatement", i, tree.Kind(s))
	}
	return tree.Child(s, ast.FieldExpression)
}
