package hoist

import (
	"context"
	"fmt"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/order"
	"github.com/qza7849467chensh5/reflective-bind/internal/symbols"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// analysis accumulates the state of one Analyze call.
type analysis struct {
	ctx     context.Context
	table   *symbols.Table
	tree    *ast.Tree
	closure ast.NodeID
	limit   symbols.ScopeID
	fields  map[string]struct{}
	// path: узлы от замыкания до корня, для поиска общего предка
	path map[ast.NodeID]struct{}

	captured []string
	seen     map[string]struct{}
	context  []ast.NodeID
	advice   []Advice
	blocker  *Blocker
	err      error
}

// IsCandidate reports whether id is an arrow function Analyze accepts.
func IsCandidate(tree *ast.Tree, id ast.NodeID) bool {
	n := tree.Node(id)
	return n != nil && n.Kind == ast.ArrowFunctionExpression && !n.Flags.Has(ast.FlagAsync|ast.FlagGenerator)
}

// Analyze decides whether closure can be hoisted. A closure that cannot be
// hoisted is reported through Verdict.Blocker, not as an error; errors mean
// the tree and the table disagree, or ctx was cancelled.
func Analyze(ctx context.Context, table *symbols.Table, closure ast.NodeID, opts Options) (Verdict, error) {
	tree := table.Tree
	if !IsCandidate(tree, closure) {
		return Verdict{}, fmt.Errorf("%s: %w", tree.Kind(closure), ErrNotArrow)
	}
	limit := table.OwnScope(closure)
	if !limit.IsValid() {
		return Verdict{}, ErrNoScope
	}

	a := &analysis{
		ctx:     ctx,
		table:   table,
		tree:    tree,
		closure: closure,
		limit:   limit,
		fields:  opts.fields(),
		path:    make(map[ast.NodeID]struct{}),
		seen:    make(map[string]struct{}),
	}
	for _, id := range tree.Ancestors(closure) {
		a.path[id] = struct{}{}
	}
	for _, c := range tree.Children(closure) {
		a.visit(c)
	}
	if a.err != nil {
		return Verdict{}, a.err
	}
	if a.blocker != nil {
		return Verdict{Blocker: a.blocker}, nil
	}
	return Verdict{
		CanHoist: true,
		Captured: a.captured,
		Context:  a.context,
		Advice:   a.advice,
	}, nil
}

// stopped is the cancellation token of the walk: the first blocker or
// error ends it everywhere, not only among siblings.
func (a *analysis) stopped() bool {
	if a.blocker != nil || a.err != nil {
		return true
	}
	if err := a.ctx.Err(); err != nil {
		a.err = err
		return true
	}
	return false
}

func (a *analysis) visit(id ast.NodeID) {
	if a.stopped() {
		return
	}
	n := a.tree.Node(id)
	if n.Kind.IsFlow() {
		return
	}
	switch n.Kind {
	case ast.Identifier, ast.JSXIdentifier:
		if symbols.IsReference(a.tree, id) {
			a.identifier(id)
		}
	case ast.ThisExpression:
		a.this(id)
	case ast.Super:
		if a.transparent(id) {
			a.block("super", id, ReasonImplicit)
		}
	case ast.MetaProperty:
		if a.tree.Text(a.tree.Child(id, ast.FieldMeta)) == "new" && a.transparent(id) {
			a.block("new.target", id, ReasonImplicit)
		}
	}
	for _, c := range a.tree.Children(id) {
		a.visit(c)
	}
}

func (a *analysis) block(name string, id ast.NodeID, reason Reason) {
	a.blocker = &Blocker{Name: name, Node: id, Reason: reason}
}

func (a *analysis) identifier(id ast.NodeID) {
	name := a.tree.Text(id)
	local, err := a.table.BoundWithin(id, a.limit)
	if err != nil {
		a.err = err
		return
	}
	if local {
		return
	}
	symID := a.table.Resolve(id)
	if !symID.IsValid() {
		// глобальное имя; arguments без привязки принадлежит внешней функции
		if name == "arguments" && a.tree.Is(id, ast.Identifier) && a.transparent(id) {
			a.block(name, id, ReasonImplicit)
		}
		return
	}
	sym := a.table.Symbol(symID)
	if at := a.table.ScopeOf(a.closure); sym.Scope != at && !a.table.IsAncestor(sym.Scope, at) {
		a.err = fmt.Errorf("%q: %w", name, ErrScopeNotAncestor)
		return
	}

	owner := a.table.Scope(sym.Scope).Owner
	sites := append([]ast.NodeID{sym.Decl}, sym.Violations...)
	for _, site := range sites {
		before, err := order.IsDefinitelyBefore(a.tree, site, a.closure)
		if err != nil {
			a.err = fmt.Errorf("%q: %w", name, err)
			return
		}
		if !before {
			a.block(name, id, ReasonLateBinding)
			return
		}
		if a.reentrant(site, owner) {
			a.block(name, id, ReasonReentrant)
			return
		}
	}

	if _, ok := a.seen[name]; !ok {
		a.seen[name] = struct{}{}
		a.captured = append(a.captured, name)
	}
	if a.tree.Is(id, ast.Identifier) {
		a.adviseNested(id)
	}
}

// reentrant reports whether site and the closure are separated by a loop or
// a deferred boundary below the scope owning the binding. Such a site can
// run again after the closure was created, changing the value it sees.
func (a *analysis) reentrant(site, owner ast.NodeID) bool {
	lca := site
	for lca.IsValid() {
		if _, ok := a.path[lca]; ok {
			break
		}
		lca = a.tree.Parent(lca)
	}
	for n := lca; n.IsValid() && n != owner; n = a.tree.Parent(n) {
		if k := a.tree.Kind(n); k.IsLoop() || k.IsDeferred() {
			return true
		}
	}
	return false
}

// transparent reports whether id sees the same this, arguments and super
// as the closure: every deferred boundary in between is an arrow function
// or is crossed through a part evaluated outside it (keys, decorators).
func (a *analysis) transparent(id ast.NodeID) bool {
	child := id
	for p := a.tree.Parent(id); p.IsValid() && p != a.closure; p = a.tree.Parent(p) {
		k := a.tree.Kind(p)
		f := a.tree.Node(child).Field
		if k.IsDeferred() && k != ast.ArrowFunctionExpression && f != ast.FieldKey && f != ast.FieldDecorators {
			return false
		}
		child = p
	}
	return true
}

// this records `this.<field>` and `this.<field>.<attr>` accesses.
func (a *analysis) this(id ast.NodeID) {
	if !a.transparent(id) {
		return
	}
	member := a.tree.Parent(id)
	m := a.tree.Node(member)
	if m == nil || m.Kind != ast.MemberExpression || a.tree.Node(id).Field != ast.FieldObject || m.Flags.Has(ast.FlagComputed) {
		return
	}
	prop := a.tree.Child(member, ast.FieldProperty)
	if !a.tree.Is(prop, ast.Identifier) {
		return
	}
	if _, ok := a.fields[a.tree.Text(prop)]; !ok {
		return
	}

	access := member
	if outer := a.tree.Parent(member); a.tree.Is(outer, ast.MemberExpression) && m.Field == ast.FieldObject && a.staticMember(outer) && !a.receiverBound(outer) {
		access = outer
	}
	if a.receiverBound(access) {
		return
	}
	for _, prev := range a.context {
		if a.tree.Contains(prev, access) {
			return
		}
	}
	a.adviseNested(access)
	a.context = append(a.context, access)
}

// staticMember reports whether the property of member id can be read at
// the call site: a plain name or a string/number literal key. Any other
// computed key may refer to names local to the closure.
func (a *analysis) staticMember(id ast.NodeID) bool {
	if !a.tree.Node(id).Flags.Has(ast.FlagComputed) {
		return true
	}
	switch a.tree.Kind(a.tree.Child(id, ast.FieldProperty)) {
	case ast.StringLiteral, ast.NumericLiteral:
		return true
	}
	return false
}

// adviseNested notes reads like obj.a.b where only obj is bound. Calls
// through the member (obj.a()) are fine: pulling obj.a out would lose its
// receiver.
func (a *analysis) adviseNested(id ast.NodeID) {
	parent := a.tree.Parent(id)
	if !a.tree.Is(parent, ast.MemberExpression) {
		return
	}
	gp := a.tree.Parent(parent)
	if !gp.IsValid() || a.tree.Is(gp, ast.CallExpression) {
		return
	}
	a.advice = append(a.advice, Advice{Node: id, Expr: Render(a.tree, parent)})
}

// receiverBound reports whether replacing id by a plain identifier would
// change behaviour: id is called as a method, tagged, written or deleted.
func (a *analysis) receiverBound(id ast.NodeID) bool {
	n := a.tree.Node(id)
	parent := a.tree.Node(n.Parent)
	if parent == nil {
		return false
	}
	switch parent.Kind {
	case ast.CallExpression:
		return n.Field == ast.FieldCallee
	case ast.TaggedTemplateExpression:
		return n.Field == ast.FieldTag
	case ast.AssignmentExpression, ast.ForInStatement, ast.ForOfStatement:
		return n.Field == ast.FieldLeft
	case ast.UpdateExpression:
		return true
	case ast.UnaryExpression:
		return parent.Op == token.KwDelete
	case ast.ArrayPattern, ast.ObjectProperty, ast.RestElement:
		return a.inPattern(id)
	case ast.AssignmentPattern:
		return n.Field == ast.FieldLeft
	}
	return false
}

// inPattern reports whether id is a target inside a destructuring pattern.
func (a *analysis) inPattern(id ast.NodeID) bool {
	for p := a.tree.Parent(id); p.IsValid(); p = a.tree.Parent(p) {
		switch a.tree.Kind(p) {
		case ast.ArrayPattern, ast.ObjectPattern:
			return true
		case ast.ObjectProperty, ast.RestElement, ast.AssignmentPattern:
			continue
		}
		return false
	}
	return false
}
