package hoist

import (
	"errors"
	"fmt"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
)

var (
	// ErrUnsupportedNode is returned by NodesEqual for node kinds it cannot
	// compare.
	ErrUnsupportedNode = errors.New("equality comparison not supported for node kind")
	// ErrNotArrow means Analyze was given something other than a
	// synchronous arrow function.
	ErrNotArrow = errors.New("closure is not a synchronous arrow function")
	// ErrNoScope means the closure does not own a scope in the table.
	ErrNoScope = errors.New("closure has no scope of its own")
	// ErrScopeNotAncestor means a binding resolved for a captured name is
	// not visible from the closure.
	ErrScopeNotAncestor = errors.New("binding's scope must be equal to or an ancestor of the closure's scope")
)

// DefaultContextFields are the members of `this` whose accesses become
// parameters of the hoisted function.
var DefaultContextFields = []string{"props", "state"}

// Options tunes the analysis.
type Options struct {
	// ContextFields whitelists `this.<field>` accesses; nil means
	// DefaultContextFields.
	ContextFields []string
}

func (o Options) fields() map[string]struct{} {
	list := o.ContextFields
	if list == nil {
		list = DefaultContextFields
	}
	set := make(map[string]struct{}, len(list))
	for _, f := range list {
		set[f] = struct{}{}
	}
	return set
}

// Reason classifies why a closure stays in place.
type Reason uint8

const (
	ReasonNone Reason = iota
	// ReasonLateBinding: a captured variable is declared or assigned after
	// the closure, or in code that may run after it.
	ReasonLateBinding
	// ReasonReentrant: a captured variable is written inside a loop or a
	// function that can run again once the closure exists.
	ReasonReentrant
	// ReasonImplicit: the closure uses arguments, super or new.target of
	// the enclosing function.
	ReasonImplicit
)

// Blocker records the first reference that disqualified a closure.
type Blocker struct {
	Name   string
	Node   ast.NodeID
	Reason Reason
}

// Message renders the warning for the blocker.
func (b *Blocker) Message() string {
	switch b.Reason {
	case ReasonReentrant:
		return fmt.Sprintf("Cannot transform arrow function because the variable '%s' may be reassigned when the enclosing loop or function runs again.", b.Name)
	case ReasonImplicit:
		return fmt.Sprintf("Cannot transform arrow function because it uses '%s' of the enclosing function.", b.Name)
	}
	return fmt.Sprintf("Cannot transform arrow function because the variable '%s' is assigned to after the arrow function definition.", b.Name)
}

// Advice points at a nested property read of a captured value. Binding the
// outer object means the hoisted call compares unequal whenever the object
// identity changes, even if the nested value did not.
type Advice struct {
	Node ast.NodeID
	Expr string
}

func (a Advice) Message() string {
	return fmt.Sprintf("Accessing nested property '%s'. Consider pulling the nested property value out to a constant and closing over the constant.", a.Expr)
}

// Verdict is the outcome of Analyze.
type Verdict struct {
	CanHoist bool
	// Captured lists free variables in first-use order, without repeats.
	Captured []string
	// Context lists every `this` access site to normalize, in source order.
	// Structurally equal sites are grouped by Normalize.
	Context []ast.NodeID
	Blocker *Blocker
	Advice  []Advice
}
