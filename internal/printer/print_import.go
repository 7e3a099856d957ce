package printer

import "github.com/qza7849467chensh5/reflective-bind/internal/ast"

// printImport prints `import { a as b } from "module";`.
func (p *printer) printImport(id ast.NodeID) {
	p.writer.WriteString("import { ")
	for i, spec := range p.tree.List(id, ast.FieldSpecifiers) {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.emit(spec)
	}
	p.writer.WriteString(" } from ")
	p.emit(p.tree.Child(id, ast.FieldSource))
	p.writer.WriteString(";")
}

func (p *printer) printSpecifier(id ast.NodeID) {
	imported := p.tree.Child(id, ast.FieldImported)
	local := p.tree.Child(id, ast.FieldLocal)
	p.emit(imported)
	if local.IsValid() && p.tree.Text(local) != p.tree.Text(imported) {
		p.writer.WriteString(" as ")
		p.emit(local)
	}
}
