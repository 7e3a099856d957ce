package printer

import (
	"errors"
	"fmt"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
)

var (
	ErrNoRoot      = errors.New("printer: tree has no root")
	ErrUnsupported = errors.New("printer: no structural form for synthetic node")
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	return o
}

type printer struct {
	tree   *ast.Tree
	writer *Writer
	opt    Options
	err    error
}

// Print renders tree. A tree without rewrites yields the original bytes.
func Print(tree *ast.Tree, opt Options) ([]byte, error) {
	if tree == nil || !tree.Root.IsValid() {
		return nil, ErrNoRoot
	}
	root := tree.Node(tree.Root)
	if !root.Flags.Has(ast.FlagDirty) {
		return append([]byte(nil), tree.File.Content...), nil
	}

	opt = opt.withDefaults()
	pr := printer{
		tree:   tree,
		writer: NewWriter(tree.File, opt),
		opt:    opt,
	}
	// Program покрывает весь файл, хвостовые комментарии копируются splice
	pr.splice(tree.Root)
	if pr.err != nil {
		return nil, pr.err
	}
	return pr.writer.Bytes(), nil
}

func (p *printer) fail(id ast.NodeID, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%s: %w", p.tree.Kind(id), err)
	}
}

func (p *printer) emit(id ast.NodeID) {
	n := p.tree.Node(id)
	switch {
	case n == nil:
		return
	case n.Flags.Has(ast.FlagSynthetic):
		p.printSynthetic(id, n)
	case n.Flags.Has(ast.FlagDirty):
		p.splice(id)
	default:
		p.writer.CopySpan(n.Span)
	}
}

// splice copies the text of an original node, printing its children in
// place. Children without a position are inserted statements: they go
// right before the next positioned child, after the comments above it.
func (p *printer) splice(id ast.NodeID) {
	n := p.tree.Node(id)
	prev, end := p.writer.offset(n.Span.Start), p.writer.offset(n.Span.End)
	var pending []ast.NodeID
	for _, c := range p.tree.Children(id) {
		sp, ok := p.tree.Pos(c)
		if !ok {
			pending = append(pending, c)
			continue
		}
		start := p.writer.offset(sp.Start)
		if start < prev {
			// позиции идут не по порядку: печатаем без копирования промежутка
			p.flush(pending)
			pending = pending[:0]
			p.emit(c)
			continue
		}
		p.writer.CopyRange(prev, start)
		p.flush(pending)
		pending = pending[:0]
		p.emit(c)
		prev = p.writer.offset(sp.End)
	}
	if len(pending) > 0 {
		p.writer.CopyRange(prev, end)
		p.writer.Newline()
		p.flush(pending)
		return
	}
	p.writer.CopyRange(prev, end)
}

// flush prints inserted statements, one per line.
func (p *printer) flush(stmts []ast.NodeID) {
	for _, s := range stmts {
		p.emit(s)
		p.writer.WriteString(p.tree.File.Newline())
	}
}

func (p *printer) printSynthetic(id ast.NodeID, n *ast.Node) {
	switch n.Kind {
	case ast.Identifier, ast.StringLiteral:
		p.writer.WriteString(n.Text)
	case ast.ThisExpression:
		p.writer.WriteString("this")
	case ast.CallExpression:
		p.printCall(id)
	case ast.ReturnStatement:
		p.printReturn(id)
	case ast.BlockStatement:
		p.printBlock(id)
	case ast.FunctionDeclaration:
		p.printFunction(id)
	case ast.ImportDeclaration:
		p.printImport(id)
	case ast.ImportSpecifier:
		p.printSpecifier(id)
	default:
		p.fail(id, ErrUnsupported)
	}
}
