package ast_test

import (
	"strings"
	"testing"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
)

// buildCall строит дерево для `f(a, b);` вручную.
func buildCall(t *testing.T) (tree *ast.Tree, call, a, b ast.NodeID) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.js", []byte("f(a, b);")))
	tree = ast.NewTree(file, 0)
	sp := func(s, e uint32) source.Span { return source.Span{File: file.ID, Start: s, End: e} }

	prog := tree.NewNode(ast.Program, sp(0, 8))
	stmt := tree.NewNode(ast.ExpressionStatement, sp(0, 8))
	call = tree.NewNode(ast.CallExpression, sp(0, 7))
	f := tree.NewNode(ast.Identifier, sp(0, 1))
	a = tree.NewNode(ast.Identifier, sp(2, 3))
	b = tree.NewNode(ast.Identifier, sp(5, 6))
	tree.Node(f).Text, tree.Node(a).Text, tree.Node(b).Text = "f", "a", "b"

	tree.Link(call, ast.FieldCallee, f)
	tree.Link(call, ast.FieldArguments, a)
	tree.Link(call, ast.FieldArguments, b)
	tree.Link(stmt, ast.FieldExpression, call)
	tree.Link(prog, ast.FieldBody, stmt)
	tree.Root = prog
	return tree, call, a, b
}

func TestLinkBackReferences(t *testing.T) {
	tree, call, a, b := buildCall(t)
	args := tree.List(call, ast.FieldArguments)
	if len(args) != 2 || args[0] != a || args[1] != b {
		t.Fatalf("unexpected args %v", args)
	}
	nb := tree.Node(b)
	if nb.Parent != call || nb.Field != ast.FieldArguments || nb.Index != 1 {
		t.Fatalf("bad back reference %+v", nb)
	}
	if tree.Node(tree.Child(call, ast.FieldCallee)).Index != -1 {
		t.Fatal("single slot must have index -1")
	}
	if !tree.Attached(a) || tree.Source(a) != "a" {
		t.Fatal("a must be attached with source text")
	}
	if got := len(tree.Ancestors(a)); got != 4 {
		t.Fatalf("expected 4 ancestors (self..root), got %d", got)
	}
}

func TestReplaceDetachesAndMarksDirty(t *testing.T) {
	tree, call, a, _ := buildCall(t)
	x := tree.NewIdent("x")
	if err := tree.Replace(a, x); err != nil {
		t.Fatal(err)
	}
	if tree.Attached(a) {
		t.Fatal("replaced node must be detached")
	}
	if !tree.Attached(x) {
		t.Fatal("replacement must be attached")
	}
	if pos, ok := tree.Pos(x); !ok || pos.Start != 2 || pos.End != 3 {
		t.Fatalf("replacement must take the old position, got %v %v", pos, ok)
	}
	for id := call; id.IsValid(); id = tree.Parent(id) {
		if !tree.Node(id).Flags.Has(ast.FlagDirty) {
			t.Fatalf("%s must be dirty", tree.Kind(id))
		}
	}
	if err := tree.Replace(a, tree.NewIdent("y")); err == nil {
		t.Fatal("replacing a detached node must fail")
	}
}

func TestInsertAtReindexes(t *testing.T) {
	tree, call, a, b := buildCall(t)
	c := tree.NewIdent("c")
	if err := tree.InsertAt(call, ast.FieldArguments, 0, c); err != nil {
		t.Fatal(err)
	}
	if tree.Node(a).Index != 1 || tree.Node(b).Index != 2 || tree.Node(c).Index != 0 {
		t.Fatal("indices not updated after insert")
	}
	if _, ok := tree.Pos(c); ok {
		t.Fatal("inserted synthetic node has no position")
	}
	if err := tree.InsertAt(call, ast.FieldCallee, 0, c); err == nil {
		t.Fatal("insert into a single slot must fail")
	}
}

func TestFieldOrder(t *testing.T) {
	tests := []struct {
		kind        ast.Kind
		first, then ast.Field
	}{
		{ast.FunctionDeclaration, ast.FieldParams, ast.FieldBody},
		{ast.ForStatement, ast.FieldInit, ast.FieldBody},
		{ast.DoWhileStatement, ast.FieldBody, ast.FieldTest},
		{ast.AssignmentExpression, ast.FieldLeft, ast.FieldRight},
		{ast.JSXElement, ast.FieldOpeningElement, ast.FieldChildren},
	}
	for _, tt := range tests {
		i, ok1 := ast.FieldOrder(tt.kind, tt.first)
		j, ok2 := ast.FieldOrder(tt.kind, tt.then)
		if !ok1 || !ok2 || i >= j {
			t.Errorf("%s: expected %s before %s", tt.kind, tt.first, tt.then)
		}
	}
	if _, ok := ast.FieldOrder(ast.Identifier, ast.FieldBody); ok {
		t.Error("Identifier has no body")
	}
	if !ast.IsListField(ast.Program, ast.FieldBody) || ast.IsListField(ast.FunctionDeclaration, ast.FieldBody) {
		t.Error("list flags mismatch")
	}
}

func TestKindPredicates(t *testing.T) {
	if !ast.ArrowFunctionExpression.IsFunction() || ast.ClassProperty.IsFunction() {
		t.Error("IsFunction mismatch")
	}
	if !ast.ClassProperty.IsDeferred() || ast.BlockStatement.IsDeferred() {
		t.Error("IsDeferred mismatch")
	}
	if !ast.ForOfStatement.IsLoop() || !ast.TypeAnnotation.IsFlow() {
		t.Error("loop/flow predicates mismatch")
	}
}

func TestDump(t *testing.T) {
	tree, _, _, _ := buildCall(t)
	var sb strings.Builder
	if err := ast.Dump(&sb, tree, tree.Root); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{"Program [0:8]", "callee: Identifier [0:1] \"f\"", "arguments[1]: Identifier [5:6] \"b\""} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestSyntheticImport(t *testing.T) {
	tree, _, _, _ := buildCall(t)
	imp := tree.NewNamedImport("babelBind", "_rbBabelBind", "reflective-bind")
	specs := tree.List(imp, ast.FieldSpecifiers)
	if len(specs) != 1 {
		t.Fatalf("expected one specifier, got %d", len(specs))
	}
	if got := tree.Text(tree.Child(specs[0], ast.FieldLocal)); got != "_rbBabelBind" {
		t.Fatalf("unexpected local %q", got)
	}
	if got := tree.Text(tree.Child(imp, ast.FieldSource)); got != `"reflective-bind"` {
		t.Fatalf("unexpected source %q", got)
	}
}
