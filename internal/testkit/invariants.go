package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed tree:
// 1) the program span is within file content bounds
// 2) every node with source text lies inside the span of its nearest
// ancestor that has source text
// 3) siblings with source text do not overlap and appear in source order
func CheckSpanInvariants(tree *ast.Tree) error {
	if tree == nil || tree.File == nil {
		return fmt.Errorf("nil tree or file")
	}
	root := tree.Node(tree.Root)
	if root == nil {
		return fmt.Errorf("program node not found")
	}
	lenContent, err := safecast.Conv[uint32](len(tree.File.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Span.End > lenContent {
		return fmt.Errorf("program span end beyond content: %d > %d", root.Span.End, lenContent)
	}
	if root.Span.File != tree.File.ID {
		return fmt.Errorf("program span points to different file id: got=%d want=%d", root.Span.File, tree.File.ID)
	}
	return checkSpans(tree, tree.Root)
}

func checkSpans(tree *ast.Tree, id ast.NodeID) error {
	outer, hasOuter := tree.Pos(id)
	var prev ast.NodeID
	for _, kid := range tree.Children(id) {
		sp, ok := tree.Pos(kid)
		if ok && hasOuter {
			if !outer.Contains(sp) {
				return fmt.Errorf("%s %v is outside of parent %s %v", tree.Kind(kid), sp, tree.Kind(id), outer)
			}
			if prev.IsValid() {
				prevSp, _ := tree.Pos(prev)
				if !prevSp.Before(sp) {
					return fmt.Errorf("%s %v overlaps or precedes sibling %s %v", tree.Kind(kid), sp, tree.Kind(prev), prevSp)
				}
			}
		}
		if ok {
			prev = kid
		}
		if err := checkSpans(tree, kid); err != nil {
			return err
		}
	}
	return nil
}

// CheckLinks verifies that every attached child points back to its parent,
// slot and list index, and that no detached node is still linked.
func CheckLinks(tree *ast.Tree) error {
	var err error
	tree.Inspect(tree.Root, func(id ast.NodeID) bool {
		if err != nil {
			return false
		}
		n := tree.Node(id)
		if n.Flags.Has(ast.FlagDetached) {
			err = fmt.Errorf("%s #%d is linked but marked detached", n.Kind, id)
			return false
		}
		for _, spec := range ast.VisitorKeys(n.Kind) {
			kids := tree.List(id, spec.Field)
			if !spec.List {
				kids = nil
				if c := tree.Child(id, spec.Field); c.IsValid() {
					kids = []ast.NodeID{c}
				}
			}
			for i, kid := range kids {
				if !kid.IsValid() {
					continue
				}
				c := tree.Node(kid)
				want := int32(-1)
				if spec.List {
					want = int32(i) //nolint:gosec // test trees are small
				}
				if c.Parent != id || c.Field != spec.Field || c.Index != want {
					err = fmt.Errorf("%s #%d in %s.%s[%d] has backlink %d.%s[%d]",
						c.Kind, kid, n.Kind, spec.Field, want, c.Parent, c.Field, c.Index)
					return false
				}
			}
		}
		return true
	})
	return err
}
