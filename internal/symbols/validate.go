package symbols

import (
	"errors"
	"fmt"
)

// Validate walks the arenas checking structural invariants: parent and
// child backlinks, name index consistency and that every reference
// resolves to a binding declared in the reference scope or an ancestor.
func (t *Table) Validate() error {
	var errs []error

	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scopeID := ScopeID(idx) //nolint:gosec // bounded by arena size
		scope := t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}
		if scope.Parent.IsValid() {
			parent := t.Scopes.Get(scope.Parent)
			if parent == nil || scope.Parent == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
				continue
			}
			found := false
			for _, child := range parent.Children {
				if child == scopeID {
					found = true
					break
				}
			}
			if !found {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
			}
		} else if scopeID != t.Root {
			errs = append(errs, fmt.Errorf("scope %d has no parent", scopeID))
		}
		for name, symID := range scope.NameIndex {
			sym := t.Symbols.Get(symID)
			switch {
			case sym == nil:
				errs = append(errs, fmt.Errorf("scope %d: name %q points to invalid symbol %d", scopeID, name, symID))
			case sym.Scope != scopeID || sym.Name != name:
				errs = append(errs, fmt.Errorf("scope %d: name %q points to symbol %d of scope %d", scopeID, name, symID, sym.Scope))
			}
		}
	}

	for idx := 1; idx < len(t.Symbols.data); idx++ {
		sym := &t.Symbols.data[idx]
		for _, ref := range sym.References {
			refScope := t.ScopeOf(ref)
			if sym.Scope != refScope && !t.IsAncestor(sym.Scope, refScope) {
				errs = append(errs, fmt.Errorf("symbol %q: reference outside of scope %d", sym.Name, sym.Scope))
			}
		}
	}

	return errors.Join(errs...)
}
