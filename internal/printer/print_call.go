package printer

import "github.com/qza7849467chensh5/reflective-bind/internal/ast"

func (p *printer) printCall(id ast.NodeID) {
	p.emit(p.tree.Child(id, ast.FieldCallee))
	p.writer.WriteString("(")
	for i, arg := range p.tree.List(id, ast.FieldArguments) {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.printArg(arg)
	}
	p.writer.WriteString(")")
}

// printArg prints an argument; a comma expression needs parentheses there.
func (p *printer) printArg(id ast.NodeID) {
	if p.tree.Is(id, ast.SequenceExpression) {
		p.writer.WriteString("(")
		p.emit(id)
		p.writer.WriteString(")")
		return
	}
	p.emit(id)
}
