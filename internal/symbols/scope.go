package symbols

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid     ScopeKind = iota
	ScopeProgram               // корень файла
	ScopeFunction              // параметры и тело функции
	ScopeBlock                 // { ... } вне функций и catch
	ScopeFor                   // заголовок for с let/const
	ScopeSwitch                // общий блок всех case
	ScopeCatch                 // параметр и тело catch
	ScopeClass                 // имя class-выражения, тело класса
	ScopeStaticBlock           // static { ... }
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeProgram:
		return "program"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeFor:
		return "for"
	case ScopeSwitch:
		return "switch"
	case ScopeCatch:
		return "catch"
	case ScopeClass:
		return "class"
	case ScopeStaticBlock:
		return "static block"
	default:
		return "invalid"
	}
}

// IsVarScope reports whether `var` declarations stop at this scope.
func (k ScopeKind) IsVarScope() bool {
	return k == ScopeProgram || k == ScopeFunction || k == ScopeStaticBlock
}

// Scope models a lexical scope with a parent-child hierarchy.
type Scope struct {
	Kind   ScopeKind
	Parent ScopeID
	// Owner is the node that opened the scope: Program, a function,
	// a block, a loop, a switch, a catch clause, a class or a static block.
	Owner     ast.NodeID
	NameIndex map[string]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}
