package testkit

import (
	"fmt"
	"strings"
	"testing"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/parser"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
)

// Parse parses src as test.jsx and fails the test on syntax errors or
// broken tree invariants.
func Parse(tb testing.TB, src string) *ast.Tree {
	tb.Helper()
	return ParseNamed(tb, "test.jsx", src)
}

// ParseNamed is Parse with an explicit file name.
func ParseNamed(tb testing.TB, name, src string) *ast.Tree {
	tb.Helper()
	fs := source.NewFileSetWithBase("")
	file := fs.Get(fs.AddVirtual(name, []byte(src)))
	bag := diag.NewBag(0)
	res := parser.ParseFile(file, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		tb.Fatalf("unexpected errors for %q: %s", src, Summary(bag))
	}
	if err := CheckLinks(res.Tree); err != nil {
		tb.Fatalf("links: %v", err)
	}
	if err := CheckSpanInvariants(res.Tree); err != nil {
		tb.Fatalf("spans: %v", err)
	}
	return res.Tree
}

// Summary renders diagnostics as "[CODE] message; ...".
func Summary(bag *diag.Bag) string {
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

// Find returns the nth (0-based, pre-order) attached node of kind whose
// Text equals text; an empty text matches any node of that kind.
func Find(tb testing.TB, tree *ast.Tree, kind ast.Kind, text string, nth int) ast.NodeID {
	tb.Helper()
	var found ast.NodeID
	count := 0
	tree.Inspect(tree.Root, func(id ast.NodeID) bool {
		if found.IsValid() {
			return false
		}
		if tree.Is(id, kind) && (text == "" || tree.Text(id) == text) {
			if count == nth {
				found = id
				return false
			}
			count++
		}
		return true
	})
	if !found.IsValid() {
		tb.Fatalf("no %s %q #%d in tree", kind, text, nth)
	}
	return found
}

// Ident returns the nth identifier named name.
func Ident(tb testing.TB, tree *ast.Tree, name string, nth int) ast.NodeID {
	tb.Helper()
	return Find(tb, tree, ast.Identifier, name, nth)
}
