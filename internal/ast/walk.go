package ast

// Inspect walks the subtree rooted at id in depth-first pre-order.
// If f returns false the children of that node are skipped.
func (t *Tree) Inspect(id NodeID, f func(id NodeID) bool) {
	if !id.IsValid() || !f(id) {
		return
	}
	for _, c := range t.Children(id) {
		t.Inspect(c, f)
	}
}

// Contains reports whether inner lies in the subtree of outer (inclusive).
func (t *Tree) Contains(outer, inner NodeID) bool {
	for id := inner; id.IsValid(); id = t.Parent(id) {
		if id == outer {
			return true
		}
	}
	return false
}
