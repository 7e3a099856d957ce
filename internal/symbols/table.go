package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
)

var (
	// ErrNoProgram is returned for a tree without a Program root.
	ErrNoProgram = errors.New("tree has no program node")
	// ErrLimitNotAncestor means a scope walk passed the root without meeting
	// the limit scope: the identifier does not lie inside the limit.
	ErrLimitNotAncestor = errors.New("identifier has no valid binding and limit scope is not an ancestor scope")
)

// Table aggregates the scope tree and bindings of one parsed file.
type Table struct {
	Tree    *ast.Tree
	Scopes  *Scopes
	Symbols *Symbols
	Root    ScopeID

	nodeScope map[ast.NodeID]ScopeID
	// names: все имена файла: объявления, ссылки, метки, глобальные.
	names   map[string]struct{}
	globals map[string][]ast.NodeID
	// uids переживают Rebuild: выданное имя не выдаётся повторно.
	uids map[string]struct{}
}

// Build resolves every scope and binding of tree.
func Build(tree *ast.Tree) (*Table, error) {
	t := &Table{Tree: tree, uids: make(map[string]struct{})}
	if err := t.Rebuild(); err != nil {
		return nil, err
	}
	return t, nil
}

// Rebuild recomputes scopes and bindings after the tree was rewritten.
// Handles obtained from the previous build are invalid afterwards.
func (t *Table) Rebuild() error {
	if !t.Tree.Is(t.Tree.Root, ast.Program) {
		return ErrNoProgram
	}
	hint, err := safecast.Conv[uint32](t.Tree.Len() / 16)
	if err != nil {
		return fmt.Errorf("scope capacity overflow: %w", err)
	}
	t.Scopes = NewScopes(hint)
	t.Symbols = NewSymbols(hint * 2)
	t.nodeScope = make(map[ast.NodeID]ScopeID)
	t.names = make(map[string]struct{})
	t.globals = make(map[string][]ast.NodeID)

	r := &resolver{table: t}
	t.Root = r.enter(ScopeProgram, t.Tree.Root)
	r.declareList(t.Tree.List(t.Tree.Root, ast.FieldBody))
	r.leave()
	r.resolveNode(t.Tree.Root, NoScopeID)
	return nil
}

// Scope returns the scope for id or nil.
func (t *Table) Scope(id ScopeID) *Scope { return t.Scopes.Get(id) }

// Symbol returns the binding for id or nil.
func (t *Table) Symbol(id SymbolID) *Symbol { return t.Symbols.Get(id) }

// OwnScope returns the scope opened by node, NoScopeID if it opens none.
func (t *Table) OwnScope(node ast.NodeID) ScopeID {
	return t.nodeScope[node]
}

// ScopeOf returns the scope in which names at node are resolved. For a
// node that opens a scope this is the enclosing scope.
func (t *Table) ScopeOf(node ast.NodeID) ScopeID {
	child := node
	for p := t.Tree.Parent(node); p.IsValid(); p = t.Tree.Parent(p) {
		if s, ok := t.nodeScope[p]; ok && inOwnScope(t.Tree.Kind(p), t.Tree.Node(child).Field) {
			return s
		}
		child = p
	}
	return NoScopeID
}

// inOwnScope reports whether the child in field f of a scope-opening node
// of kind k is resolved inside that node's scope.
func inOwnScope(k ast.Kind, f ast.Field) bool {
	switch k {
	case ast.FunctionDeclaration:
		return f != ast.FieldID
	case ast.ObjectMethod, ast.ClassMethod:
		return f != ast.FieldKey && f != ast.FieldDecorators
	case ast.ClassDeclaration:
		return f != ast.FieldID && f != ast.FieldDecorators
	case ast.ClassExpression:
		return f != ast.FieldDecorators
	case ast.SwitchStatement:
		return f != ast.FieldDiscriminant
	}
	return true
}

// Lookup walks the scope chain from scope searching for name.
func (t *Table) Lookup(scope ScopeID, name string) SymbolID {
	for s := t.Scopes.Get(scope); s != nil; s = t.Scopes.Get(s.Parent) {
		if id, ok := s.NameIndex[name]; ok {
			return id
		}
	}
	return NoSymbolID
}

// Resolve returns the binding an identifier refers to, NoSymbolID for globals.
func (t *Table) Resolve(ident ast.NodeID) SymbolID {
	return t.Lookup(t.ScopeOf(ident), t.Tree.Text(ident))
}

// HasOwn reports whether name is declared directly in scope.
func (t *Table) HasOwn(scope ScopeID, name string) bool {
	s := t.Scopes.Get(scope)
	if s == nil {
		return false
	}
	_, ok := s.NameIndex[name]
	return ok
}

// BoundWithin reports whether the name of ident is declared in the scope
// of ident or in any scope up to and including limit.
func (t *Table) BoundWithin(ident ast.NodeID, limit ScopeID) (bool, error) {
	name := t.Tree.Text(ident)
	for id := t.ScopeOf(ident); id.IsValid(); id = t.Scopes.Get(id).Parent {
		if t.HasOwn(id, name) {
			return true, nil
		}
		// после проверки привязки: объявление в самой limit тоже считается
		if id == limit {
			return false, nil
		}
	}
	return false, fmt.Errorf("%q: %w", name, ErrLimitNotAncestor)
}

// IsAncestor reports whether anc is a strict ancestor of scope.
func (t *Table) IsAncestor(anc, scope ScopeID) bool {
	s := t.Scopes.Get(scope)
	if s == nil {
		return false
	}
	for p := s.Parent; p.IsValid(); p = t.Scopes.Get(p).Parent {
		if p == anc {
			return true
		}
	}
	return false
}

// IsGlobal reports whether name is used in the file without a declaration.
func (t *Table) IsGlobal(name string) bool {
	_, ok := t.globals[name]
	return ok
}

