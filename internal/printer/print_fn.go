package printer

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
)

// printFunction prints `function name(params) body`.
func (p *printer) printFunction(id ast.NodeID) {
	p.writer.WriteString("function ")
	p.emit(p.tree.Child(id, ast.FieldID))
	p.writer.WriteString("(")
	for i, param := range p.tree.List(id, ast.FieldParams) {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.emit(param)
	}
	p.writer.WriteString(") ")
	p.emitMoved(p.tree.Child(id, ast.FieldBody))
}

// emitMoved prints an original node under a synthetic parent, re-indenting
// its lines relative to the line it started on.
func (p *printer) emitMoved(id ast.NodeID) {
	n := p.tree.Node(id)
	if n == nil || n.Flags.Has(ast.FlagSynthetic) {
		p.emit(id)
		return
	}
	var lits []source.Span
	p.tree.Inspect(id, func(c ast.NodeID) bool {
		switch p.tree.Kind(c) {
		case ast.StringLiteral, ast.TemplateLiteral:
			if sp, ok := p.tree.Pos(c); ok {
				lits = append(lits, sp)
			}
			return false
		}
		return true
	})
	restore := p.writer.Shift(lineIndent(p.tree.File.Content, p.writer.offset(n.Span.Start)), lits)
	p.emit(id)
	restore()
}

func (p *printer) printBlock(id ast.NodeID) {
	p.writer.WriteString("{")
	p.writer.Newline()
	p.writer.IndentPush()
	for _, stmt := range p.tree.List(id, ast.FieldBody) {
		p.emit(stmt)
		p.writer.Newline()
	}
	p.writer.IndentPop()
	p.writer.WriteString("}")
}

func (p *printer) printReturn(id ast.NodeID) {
	p.writer.WriteString("return")
	if arg := p.tree.Child(id, ast.FieldArgument); arg.IsValid() {
		p.writer.WriteString(" ")
		p.emitMoved(arg)
	}
	p.writer.WriteString(";")
}
