package symbols

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
)

// SymbolKind classifies how a name was declared.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVar
	SymbolLet
	SymbolConst
	SymbolFunction
	SymbolClass
	SymbolParam
	SymbolImport
	SymbolCatch
	// SymbolLocal is the own name of a function or class expression,
	// visible only inside it.
	SymbolLocal
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "var"
	case SymbolLet:
		return "let"
	case SymbolConst:
		return "const"
	case SymbolFunction:
		return "function"
	case SymbolClass:
		return "class"
	case SymbolParam:
		return "param"
	case SymbolImport:
		return "module"
	case SymbolCatch:
		return "catch"
	case SymbolLocal:
		return "local"
	default:
		return "invalid"
	}
}

// Symbol is the binding of one name in one scope.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Scope ScopeID
	// Decl is the node whose evaluation creates the binding: the variable
	// declarator, the function or class declaration, the import specifier,
	// the top-level parameter or the catch parameter.
	Decl ast.NodeID
	// Ident is the identifier that introduces the name.
	Ident ast.NodeID
	// Violations lists every node that writes the binding after its
	// declaration: assignments, updates, for-in/of heads and redeclarations.
	Violations []ast.NodeID
	References []ast.NodeID
}

// Constant reports whether the binding is never written after declaration.
func (s *Symbol) Constant() bool {
	return len(s.Violations) == 0
}
