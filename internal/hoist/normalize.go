package hoist

import (
	"fmt"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/symbols"
)

// ContextParam is one synthetic parameter of a hoisted function.
type ContextParam struct {
	Name string
	// Access is the first replaced expression, now detached; Hoist passes
	// it as the bound argument.
	Access ast.NodeID
}

// Normalize replaces every access with an identifier. Structurally equal
// accesses share one name.
func Normalize(table *symbols.Table, accesses []ast.NodeID) ([]ContextParam, error) {
	tree := table.Tree
	var params []ContextParam
	for _, access := range accesses {
		name := ""
		for _, p := range params {
			eq, err := NodesEqual(tree, p.Access, access)
			if err != nil {
				return nil, err
			}
			if eq {
				name = p.Name
				break
			}
		}
		if name == "" {
			name = table.GenerateUID("temp")
			params = append(params, ContextParam{Name: name, Access: access})
		}
		if err := tree.Replace(access, tree.NewIdent(name)); err != nil {
			return nil, fmt.Errorf("normalize %s: %w", Render(tree, access), err)
		}
	}
	return params, nil
}
