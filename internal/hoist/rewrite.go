package hoist

import (
	"fmt"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/symbols"
)

// Target is where rewrites of one file land.
type Target struct {
	Table *symbols.Table
	// Helper is the local name of the imported bind helper.
	Helper string
	// Prefix seeds the names of hoisted functions.
	Prefix string
}

// Hoisted describes one hoisted closure.
type Hoisted struct {
	Name string
	Decl ast.NodeID
	Call ast.NodeID
}

// Hoist moves closure to a function declaration at the top of the program
// and replaces it with helper(fn, this, captured..., accesses...). The
// closure's context accesses must already be normalized into params.
func Hoist(tgt *Target, closure ast.NodeID, v Verdict, params []ContextParam) (Hoisted, error) {
	tree := tgt.Table.Tree
	if !v.CanHoist {
		return Hoisted{}, fmt.Errorf("hoist %s: verdict declined", tree.Kind(closure))
	}
	name := tgt.Table.GenerateUID(tgt.Prefix)

	// параметры: захваченные, контекстные, затем исходные
	fnParams := make([]ast.NodeID, 0, len(v.Captured)+len(params))
	args := []ast.NodeID{tree.NewIdent(name), tree.NewThis()}
	for _, c := range v.Captured {
		fnParams = append(fnParams, tree.NewIdent(c))
		args = append(args, tree.NewIdent(c))
	}
	for _, p := range params {
		fnParams = append(fnParams, tree.NewIdent(p.Name))
		args = append(args, p.Access)
	}
	fnParams = append(fnParams, tree.List(closure, ast.FieldParams)...)

	body := tree.Child(closure, ast.FieldBody)
	if !tree.Is(body, ast.BlockStatement) {
		body = tree.NewBlock(tree.NewReturn(body))
	}
	decl := tree.NewFunctionDecl(tree.NewIdent(name), fnParams, body)

	call := tree.NewCall(tree.NewIdent(tgt.Helper), args...)
	if err := tree.Replace(closure, call); err != nil {
		return Hoisted{}, fmt.Errorf("hoist %s: %w", name, err)
	}
	if err := tree.InsertAt(tree.Root, ast.FieldBody, PreludeIndex(tree), decl); err != nil {
		return Hoisted{}, fmt.Errorf("hoist %s: %w", name, err)
	}
	return Hoisted{Name: name, Decl: decl, Call: call}, nil
}

// RewriteBind turns expr.bind(args...) into helper(expr, args...). It
// returns the new call, or NoNodeID when call is not a bind call.
func RewriteBind(tgt *Target, call ast.NodeID) (ast.NodeID, error) {
	tree := tgt.Table.Tree
	if !IsBindCall(tree, call) {
		return ast.NoNodeID, nil
	}
	callee := tree.Child(call, ast.FieldCallee)
	args := append([]ast.NodeID{tree.Child(callee, ast.FieldObject)}, tree.List(call, ast.FieldArguments)...)
	repl := tree.NewCall(tree.NewIdent(tgt.Helper), args...)
	if err := tree.Replace(call, repl); err != nil {
		return ast.NoNodeID, fmt.Errorf("rewrite bind: %w", err)
	}
	return repl, nil
}

// IsBindCall reports whether call has the form expr.bind(...) with a plain
// (not computed, not optional) member callee.
func IsBindCall(tree *ast.Tree, call ast.NodeID) bool {
	n := tree.Node(call)
	if n == nil || n.Kind != ast.CallExpression || n.Flags.Has(ast.FlagOptional) {
		return false
	}
	callee := tree.Child(call, ast.FieldCallee)
	cn := tree.Node(callee)
	if cn == nil || cn.Kind != ast.MemberExpression || cn.Flags.Has(ast.FlagComputed|ast.FlagOptional) {
		return false
	}
	prop := tree.Child(callee, ast.FieldProperty)
	if !tree.Is(prop, ast.Identifier) || tree.Text(prop) != "bind" {
		return false
	}
	obj := tree.Child(callee, ast.FieldObject)
	if tree.Is(obj, ast.Super) {
		return false
	}
	// a?.b.bind(x) замыкает цепочку целиком, вынести a?.b нельзя
	for cur := obj; tree.Is(cur, ast.MemberExpression) || tree.Is(cur, ast.CallExpression); {
		if tree.Node(cur).Flags.Has(ast.FlagOptional) {
			return false
		}
		if tree.Is(cur, ast.MemberExpression) {
			cur = tree.Child(cur, ast.FieldObject)
		} else {
			cur = tree.Child(cur, ast.FieldCallee)
		}
	}
	return true
}

// PreludeIndex returns the position in the program body where generated
// declarations go: after the leading directives.
func PreludeIndex(tree *ast.Tree) int {
	body := tree.List(tree.Root, ast.FieldBody)
	i := 0
	for i < len(body) && tree.Node(body[i]).Flags.Has(ast.FlagDirective) {
		i++
	}
	return i
}

// AddImport inserts `import {babelBind as <helper>} from "<module>";` at
// the prelude position.
func AddImport(tgt *Target, module string) (ast.NodeID, error) {
	tree := tgt.Table.Tree
	imp := tree.NewNamedImport("babelBind", tgt.Helper, module)
	if err := tree.InsertAt(tree.Root, ast.FieldBody, PreludeIndex(tree), imp); err != nil {
		return ast.NoNodeID, fmt.Errorf("add import: %w", err)
	}
	return imp, nil
}
