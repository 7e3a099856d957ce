package ast

import (
	"fmt"

	"github.com/qza7849467chensh5/reflective-bind/internal/source"
)

// Tree owns every node of one parsed file.
type Tree struct {
	File  *source.File
	Root  NodeID
	nodes *Arena[Node]
}

func NewTree(file *source.File, capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Tree{File: file, nodes: NewArena[Node](capHint)}
}

// NewNode allocates a detached node of the given kind.
func (t *Tree) NewNode(kind Kind, sp source.Span) NodeID {
	var kids [][]NodeID
	if keys := VisitorKeys(kind); len(keys) > 0 {
		kids = make([][]NodeID, len(keys))
	}
	return NodeID(t.nodes.Allocate(Node{Kind: kind, Span: sp, Index: -1, kids: kids}))
}

// Node returns the node for id or nil for NoNodeID.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes.Get(uint32(id))
}

// Kind returns the kind of id, Invalid for NoNodeID.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return Invalid
}

// Is reports whether id is a node of kind k.
func (t *Tree) Is(id NodeID, k Kind) bool {
	return id.IsValid() && t.Kind(id) == k
}

// Len returns the number of allocated nodes, attached or not.
func (t *Tree) Len() int { return int(t.nodes.Len()) }

// Text returns Node.Text of id.
func (t *Tree) Text(id NodeID) string {
	if n := t.Node(id); n != nil {
		return n.Text
	}
	return ""
}

// Source returns the original source text of a node. Synthetic nodes have none.
func (t *Tree) Source(id NodeID) string {
	n := t.Node(id)
	if n == nil || n.Flags.Has(FlagSynthetic) {
		return ""
	}
	return string(t.File.Content[n.Span.Start:n.Span.End])
}

// Parent returns the parent of id, NoNodeID for the root and detached nodes.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}

func (t *Tree) slot(id NodeID, f Field) int {
	n := t.Node(id)
	if n == nil {
		return -1
	}
	i, ok := FieldOrder(n.Kind, f)
	if !ok {
		return -1
	}
	return i
}

// Child returns the occupant of a single-node slot.
func (t *Tree) Child(id NodeID, f Field) NodeID {
	i := t.slot(id, f)
	if i < 0 {
		return NoNodeID
	}
	if kids := t.Node(id).kids[i]; len(kids) > 0 {
		return kids[0]
	}
	return NoNodeID
}

// List returns the nodes of a list slot. The slice is owned by the tree;
// callers must copy it before mutating the tree.
func (t *Tree) List(id NodeID, f Field) []NodeID {
	i := t.slot(id, f)
	if i < 0 {
		return nil
	}
	return t.Node(id).kids[i]
}

// Children returns all children of id in canonical order, holes skipped.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var out []NodeID
	for _, kids := range n.kids {
		for _, k := range kids {
			if k.IsValid() {
				out = append(out, k)
			}
		}
	}
	return out
}

// Link attaches child to a slot of parent while the tree is being built.
// For list slots the child is appended; NoNodeID appends a hole.
// Link does not mark anything dirty.
func (t *Tree) Link(parent NodeID, f Field, child NodeID) {
	n := t.Node(parent)
	i := t.slot(parent, f)
	if i < 0 {
		panic(fmt.Sprintf("ast: %s has no field %s", n.Kind, f))
	}
	index := int32(-1)
	if visitorKeys[n.Kind][i].List {
		index = int32(len(n.kids[i])) //nolint:gosec // list lengths are bounded by file size
		n.kids[i] = append(n.kids[i], child)
	} else {
		n.kids[i] = append(n.kids[i][:0], child)
		if !child.IsValid() {
			n.kids[i] = n.kids[i][:0]
		}
	}
	if c := t.Node(child); c != nil {
		c.Parent, c.Field, c.Index = parent, f, index
		c.Flags &^= FlagDetached
	}
}

// Pos returns where the node sits in the original source: its own span, or
// for a replacement the span of the node it replaced. ok is false for
// inserted synthetic nodes that have no position at all.
func (t *Tree) Pos(id NodeID) (sp source.Span, ok bool) {
	n := t.Node(id)
	switch {
	case n == nil:
		return source.Span{}, false
	case n.Flags.Has(FlagReplacement):
		return n.Orig, true
	case n.Flags.Has(FlagSynthetic):
		return source.Span{}, false
	}
	return n.Span, true
}

// Attached reports whether id is still reachable from the root.
func (t *Tree) Attached(id NodeID) bool {
	for id.IsValid() {
		if id == t.Root {
			return true
		}
		n := t.Node(id)
		if n.Flags.Has(FlagDetached) || !n.Parent.IsValid() {
			return false
		}
		p := t.Node(n.Parent)
		i := t.slot(n.Parent, n.Field)
		if i < 0 {
			return false
		}
		kids := p.kids[i]
		idx := int(n.Index)
		if idx < 0 {
			idx = 0
		}
		if idx >= len(kids) || kids[idx] != id {
			return false
		}
		id = n.Parent
	}
	return false
}

// Ancestors returns the chain from id (inclusive) up to the root.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var chain []NodeID
	for id.IsValid() {
		chain = append(chain, id)
		id = t.Parent(id)
	}
	return chain
}

// Position returns the 1-based line and column of the node start.
func (t *Tree) Position(id NodeID) source.LineCol {
	sp, _ := t.Pos(id)
	return t.File.Position(sp.Start)
}
