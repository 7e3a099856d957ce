// Package order decides from tree structure alone whether one node is
// guaranteed to finish executing before another one starts.
package order

import (
	"errors"
	"fmt"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
)

var (
	// ErrNoCommonAncestor means the two nodes do not share a root.
	ErrNoCommonAncestor = errors.New("nodes have no common ancestor")
	// ErrUnknownField means a child hangs off a slot that its parent kind
	// does not declare.
	ErrUnknownField = errors.New("child field is not a visitor key of the common ancestor")
)

// InternalError reports an inconsistent tree. It never stems from user
// input and aborts the transform of the current file.
type InternalError struct {
	A, B source.Span
	Err  error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("order %v vs %v: %v", e.A, e.B, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

func internalErr(tree *ast.Tree, a, b ast.NodeID, err error) error {
	sa, _ := tree.Pos(a)
	sb, _ := tree.Pos(b)
	return &InternalError{A: sa, B: sb, Err: err}
}

// IsDefinitelyBefore reports whether a always completes before execution
// reaches b. false means "cannot prove", not "after".
//
// Positions in the source are not consulted: nodes moved by earlier
// rewrites keep stale offsets, while the tree shape is always current.
func IsDefinitelyBefore(tree *ast.Tree, a, b ast.NodeID) (bool, error) {
	chainA := tree.Ancestors(a)
	chainB := tree.Ancestors(b)
	ia, ib := commonAncestor(chainA, chainB)
	switch {
	case ia < 0:
		return false, internalErr(tree, a, b, ErrNoCommonAncestor)
	case ia == 0:
		// a содержит b: рекурсивная ссылка вида const f = () => f
		return false, nil
	case ib == 0:
		// b содержит a: объявление или запись внутри самого замыкания
		return false, nil
	}

	// код внутри функции может выполниться когда угодно позже
	for i := 1; i < ia; i++ {
		if tree.Kind(chainA[i]).IsDeferred() {
			return false, nil
		}
	}

	anc := tree.Kind(chainA[ia])
	ca, cb := tree.Node(chainA[ia-1]), tree.Node(chainB[ib-1])
	if ca.Field == cb.Field && ast.IsListField(anc, ca.Field) {
		// объявления функций поднимаются и доступны раньше своей позиции
		return tree.Is(a, ast.FunctionDeclaration) || ca.Index < cb.Index, nil
	}
	pa, ok := ast.FieldOrder(anc, ca.Field)
	if !ok {
		return false, internalErr(tree, a, b, fmt.Errorf("%s.%s: %w", anc, ca.Field, ErrUnknownField))
	}
	pb, ok := ast.FieldOrder(anc, cb.Field)
	if !ok {
		return false, internalErr(tree, a, b, fmt.Errorf("%s.%s: %w", anc, cb.Field, ErrUnknownField))
	}
	return pa < pb, nil
}

// commonAncestor returns the indices of the lowest common node in two
// self-first ancestor chains, or -1, -1.
func commonAncestor(chainA, chainB []ast.NodeID) (int, int) {
	pos := make(map[ast.NodeID]int, len(chainB))
	for j, id := range chainB {
		pos[id] = j
	}
	for i, id := range chainA {
		if j, ok := pos[id]; ok {
			return i, j
		}
	}
	return -1, -1
}
