package ast

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

type Flags uint32

const (
	FlagComputed    Flags = 1 << iota // a[b], {[k]: v}
	FlagOptional                      // a?.b, a?.(), x?: T
	FlagShorthand                     // {a}
	FlagAsync                         // async functions, for await
	FlagGenerator                     // function*
	FlagStatic                        // static class members
	FlagPrefix                        // ++a
	FlagDelegate                      // yield*
	FlagSelfClosing                   // <a />
	FlagTypeOnly                      // import type, import typeof
	FlagDirective                     // "use strict";
	FlagDirty                         // поддерево изменено, печатать по частям
	FlagSynthetic                     // создан трансформацией, нет исходного текста
	FlagReplacement                   // занял слот другого узла, Orig хранит его позицию
	FlagDetached                      // вытеснен из дерева через Replace
)

func (f Flags) Has(x Flags) bool { return f&x != 0 }

// Node: единый формат узла дерева. Дети хранятся по слотам в порядке
// VisitorKeys(Kind); одиночный слот это список из нуля или одного элемента.
type Node struct {
	Kind  Kind
	Flags Flags
	// Op holds the operator of unary, update, binary, logical and
	// assignment expressions.
	Op   token.Kind
	Span source.Span
	// Orig is the position of the node this one replaced.
	Orig source.Span
	// Text is the name of identifiers, the raw text of literals and JSX
	// text, the declaration kind (var, let, const) of variable declarations
	// and the method kind (method, get, set, constructor) of methods.
	Text string

	Parent NodeID
	Field  Field
	Index  int32 // позиция в списке; -1 для одиночного слота

	kids [][]NodeID
}
