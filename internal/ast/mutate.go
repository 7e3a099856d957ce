package ast

import (
	"errors"
	"fmt"
)

var (
	ErrDetached = errors.New("node is not attached to the tree")
	ErrNotList  = errors.New("field is not a list")
)

// Replace puts repl into the slot occupied by old. old is marked detached;
// handles into its subtree must be re-fetched by the caller. repl records
// the position of old so the printer can splice it in place.
func (t *Tree) Replace(old, repl NodeID) error {
	o := t.Node(old)
	if o == nil || !o.Parent.IsValid() || o.Flags.Has(FlagDetached) {
		return fmt.Errorf("replace %s: %w", t.Kind(old), ErrDetached)
	}
	parent, f, index := o.Parent, o.Field, o.Index
	i := t.slot(parent, f)
	p := t.Node(parent)
	idx := max(int(index), 0)
	if i < 0 || idx >= len(p.kids[i]) || p.kids[i][idx] != old {
		return fmt.Errorf("replace %s: %w", o.Kind, ErrDetached)
	}

	r := t.Node(repl)
	if pos, ok := t.Pos(old); ok {
		r.Orig = pos
		r.Flags |= FlagReplacement
	}
	p.kids[i][idx] = repl
	r.Parent, r.Field, r.Index = parent, f, index
	r.Flags &^= FlagDetached

	o.Parent = NoNodeID
	o.Flags |= FlagDetached
	t.MarkDirty(parent)
	return nil
}

// InsertAt inserts child into the list slot f of parent at index.
func (t *Tree) InsertAt(parent NodeID, f Field, index int, child NodeID) error {
	n := t.Node(parent)
	i := t.slot(parent, f)
	if i < 0 || !visitorKeys[n.Kind][i].List {
		return fmt.Errorf("insert into %s.%s: %w", n.Kind, f, ErrNotList)
	}
	kids := n.kids[i]
	index = min(max(index, 0), len(kids))
	kids = append(kids, NoNodeID)
	copy(kids[index+1:], kids[index:])
	kids[index] = child
	n.kids[i] = kids
	for j := index; j < len(kids); j++ {
		if c := t.Node(kids[j]); c != nil {
			c.Parent, c.Field, c.Index = parent, f, int32(j) //nolint:gosec // list lengths are bounded by file size
			c.Flags &^= FlagDetached
		}
	}
	t.MarkDirty(parent)
	return nil
}

// MarkDirty flags id and all of its ancestors as modified.
func (t *Tree) MarkDirty(id NodeID) {
	for id.IsValid() {
		n := t.Node(id)
		n.Flags |= FlagDirty
		id = n.Parent
	}
}

// Retag changes the kind of id in place, moving children to the slots of
// the same name in the new layout. The parser uses it to reinterpret an
// already built expression as an assignment pattern.
func (t *Tree) Retag(id NodeID, kind Kind) {
	n := t.Node(id)
	oldKeys := VisitorKeys(n.Kind)
	var kids [][]NodeID
	if keys := VisitorKeys(kind); len(keys) > 0 {
		kids = make([][]NodeID, len(keys))
	}
	for i, fs := range oldKeys {
		j, ok := FieldOrder(kind, fs.Field)
		if !ok {
			if len(n.kids[i]) > 0 {
				panic(fmt.Sprintf("ast: retag %s to %s drops field %s", n.Kind, kind, fs.Field))
			}
			continue
		}
		kids[j] = n.kids[i]
	}
	n.Kind = kind
	n.kids = kids
}
