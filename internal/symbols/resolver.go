package symbols

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
)

// resolver drives scope management for one Rebuild.
type resolver struct {
	table *Table
	stack []ScopeID
}

// current returns the scope at the top of the stack.
func (r *resolver) current() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// enter creates a child scope owned by node and pushes it onto the stack.
func (r *resolver) enter(kind ScopeKind, owner ast.NodeID) ScopeID {
	scope := r.table.Scopes.New(kind, r.current(), owner)
	r.table.nodeScope[owner] = scope
	r.stack = append(r.stack, scope)
	return scope
}

func (r *resolver) leave() {
	if len(r.stack) > 0 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// varScope returns the nearest scope that receives `var` declarations.
func (r *resolver) varScope() ScopeID {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if s := r.table.Scopes.Get(r.stack[i]); s.Kind.IsVarScope() {
			return r.stack[i]
		}
	}
	return r.table.Root
}

// declare installs name of ident into scope. A repeated declaration of the
// same name does not create a second binding: if it writes a value it is
// recorded as a violation of the existing one.
func (r *resolver) declare(scope ScopeID, ident, decl ast.NodeID, kind SymbolKind) SymbolID {
	tree := r.table.Tree
	name := tree.Text(ident)
	if name == "" {
		return NoSymbolID
	}
	r.table.names[name] = struct{}{}
	sc := r.table.Scopes.Get(scope)
	if prev, ok := sc.NameIndex[name]; ok {
		if writesValue(tree, decl) {
			sym := r.table.Symbols.Get(prev)
			sym.Violations = append(sym.Violations, decl)
		}
		return prev
	}
	id := r.table.Symbols.New(&Symbol{Name: name, Kind: kind, Scope: scope, Decl: decl, Ident: ident})
	sc.Symbols = append(sc.Symbols, id)
	sc.NameIndex[name] = id
	return id
}

// writesValue: `var a;` повторно ничего не присваивает.
func writesValue(tree *ast.Tree, decl ast.NodeID) bool {
	if tree.Is(decl, ast.VariableDeclarator) {
		return tree.Child(decl, ast.FieldInit).IsValid()
	}
	return true
}

func varKind(text string) SymbolKind {
	switch text {
	case "let":
		return SymbolLet
	case "const":
		return SymbolConst
	default:
		return SymbolVar
	}
}
