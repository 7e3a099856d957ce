package ast

import (
	"strconv"

	"github.com/qza7849467chensh5/reflective-bind/internal/source"
)

// Конструкторы синтетических узлов. Такие узлы не имеют исходного текста
// и печатаются структурно.

func (t *Tree) newSynthetic(kind Kind) NodeID {
	id := t.NewNode(kind, source.At(t.File.ID, 0))
	t.Node(id).Flags |= FlagSynthetic
	return id
}

// NewIdent creates an identifier reference.
func (t *Tree) NewIdent(name string) NodeID {
	id := t.newSynthetic(Identifier)
	t.Node(id).Text = name
	return id
}

func (t *Tree) NewThis() NodeID {
	return t.newSynthetic(ThisExpression)
}

// NewCall creates callee(args...).
func (t *Tree) NewCall(callee NodeID, args ...NodeID) NodeID {
	id := t.newSynthetic(CallExpression)
	t.Link(id, FieldCallee, callee)
	for _, a := range args {
		t.Link(id, FieldArguments, a)
	}
	return id
}

func (t *Tree) NewReturn(arg NodeID) NodeID {
	id := t.newSynthetic(ReturnStatement)
	t.Link(id, FieldArgument, arg)
	return id
}

func (t *Tree) NewBlock(stmts ...NodeID) NodeID {
	id := t.newSynthetic(BlockStatement)
	for _, s := range stmts {
		t.Link(id, FieldBody, s)
	}
	return id
}

// NewFunctionDecl creates `function name(params...) body`.
func (t *Tree) NewFunctionDecl(name NodeID, params []NodeID, body NodeID) NodeID {
	id := t.newSynthetic(FunctionDeclaration)
	t.Link(id, FieldID, name)
	for _, p := range params {
		t.Link(id, FieldParams, p)
	}
	t.Link(id, FieldBody, body)
	return id
}

// NewNamedImport creates `import { imported as local } from "module";`.
func (t *Tree) NewNamedImport(imported, local, module string) NodeID {
	spec := t.newSynthetic(ImportSpecifier)
	t.Link(spec, FieldImported, t.NewIdent(imported))
	t.Link(spec, FieldLocal, t.NewIdent(local))

	src := t.newSynthetic(StringLiteral)
	t.Node(src).Text = strconv.Quote(module)

	id := t.newSynthetic(ImportDeclaration)
	t.Link(id, FieldSpecifiers, spec)
	t.Link(id, FieldSource, src)
	return id
}
