package parser

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// parseImport разбирает все формы import-объявления, включая
// import type / import typeof.
func (p *Parser) parseImport() (ast.NodeID, bool) {
	id := p.node(ast.ImportDeclaration, p.tok.Span.Start)
	p.advance() // import

	if p.atWord("type") || p.at(token.KwTypeof) {
		next := p.peek()
		if next.Kind == token.LBrace || next.Kind == token.Star || (next.IsIdent() && !next.Is("from")) {
			p.tree.Node(id).Flags |= ast.FlagTypeOnly
			p.advance()
		}
	}

	if !p.at(token.StringLit) {
		if !p.parseImportClause(id) {
			return ast.NoNodeID, false
		}
		if !p.atWord("from") {
			p.unexpected("in import declaration, expected 'from'")
			return ast.NoNodeID, false
		}
		p.advance()
	}

	if !p.parseModuleSource(id) {
		return ast.NoNodeID, false
	}
	if !p.consumeSemicolon() {
		return ast.NoNodeID, false
	}
	return p.finish(id), true
}

// parseImportClause разбирает `x`, `* as ns`, `{...}` и `x, {...}`.
func (p *Parser) parseImportClause(id ast.NodeID) bool {
	if p.at(token.Ident) {
		spec := p.node(ast.ImportDefaultSpecifier, p.tok.Span.Start)
		p.link(spec, ast.FieldLocal, p.leaf(ast.Identifier))
		p.link(id, ast.FieldSpecifiers, p.finish(spec))
		if !p.eat(token.Comma) {
			return true
		}
	}
	switch {
	case p.at(token.Star):
		spec := p.node(ast.ImportNamespaceSpecifier, p.tok.Span.Start)
		p.advance()
		if !p.atWord("as") {
			p.unexpected("in namespace import, expected 'as'")
			return false
		}
		p.advance()
		if !p.at(token.Ident) {
			p.unexpected("in namespace import")
			return false
		}
		p.link(spec, ast.FieldLocal, p.leaf(ast.Identifier))
		p.link(id, ast.FieldSpecifiers, p.finish(spec))
		return true
	case p.at(token.LBrace):
		return p.parseImportSpecifiers(id)
	}
	p.unexpected("in import declaration")
	return false
}

func (p *Parser) parseImportSpecifiers(owner ast.NodeID) bool {
	open := p.advance()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		spec := p.node(ast.ImportSpecifier, p.tok.Span.Start)
		if (p.atWord("type") || p.at(token.KwTypeof)) && p.peek().IsWord() && !p.peek().Is("as") {
			p.tree.Node(spec).Flags |= ast.FlagTypeOnly
			p.advance()
		}
		if !p.tok.IsWord() && !p.at(token.StringLit) {
			p.unexpected("in import specifier")
			return false
		}
		if p.at(token.StringLit) {
			p.link(spec, ast.FieldImported, p.leaf(ast.StringLiteral))
		} else {
			p.link(spec, ast.FieldImported, p.leaf(ast.Identifier))
		}
		if p.atWord("as") {
			p.advance()
			if !p.at(token.Ident) {
				p.unexpected("after 'as'")
				return false
			}
			p.link(spec, ast.FieldLocal, p.leaf(ast.Identifier))
		}
		p.link(owner, ast.FieldSpecifiers, p.finish(spec))
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.at(token.RBrace) {
		p.errAt(diag.SynUnclosedBrace, open.Span, "unclosed '{' in import specifiers")
		return false
	}
	p.advance()
	return true
}

// parseModuleSource разбирает "module" и необязательные атрибуты импорта.
func (p *Parser) parseModuleSource(owner ast.NodeID) bool {
	if !p.at(token.StringLit) {
		p.unexpected("where a module specifier was expected")
		return false
	}
	p.link(owner, ast.FieldSource, p.leaf(ast.StringLiteral))
	if (p.atWord("assert") || p.at(token.KwWith)) && !p.tok.NewlineBefore && p.peek().Kind == token.LBrace {
		p.advance()
		return p.skipBalanced()
	}
	return true
}

func (p *Parser) parseExport() (ast.NodeID, bool) {
	return p.parseExportWith(p.tok.Span.Start, nil)
}

// parseExportWith разбирает export-объявление; decorators относятся
// к экспортируемому классу (`@dec export class ...`).
func (p *Parser) parseExportWith(start uint32, decorators []ast.NodeID) (ast.NodeID, bool) {
	p.advance() // export

	switch {
	case p.at(token.KwDefault):
		id := p.node(ast.ExportDefaultDeclaration, start)
		p.advance()
		decl, ok := p.parseExportDefaultValue(decorators)
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldDeclaration, decl)
		return p.finish(id), true

	case p.at(token.Star):
		id := p.node(ast.ExportAllDeclaration, start)
		p.advance()
		if p.atWord("as") {
			p.advance()
			if !p.tok.IsWord() && !p.at(token.StringLit) {
				p.unexpected("after 'as'")
				return ast.NoNodeID, false
			}
			if p.at(token.StringLit) {
				p.link(id, ast.FieldExported, p.leaf(ast.StringLiteral))
			} else {
				p.link(id, ast.FieldExported, p.leaf(ast.Identifier))
			}
		}
		if !p.atWord("from") {
			p.unexpected("in export declaration, expected 'from'")
			return ast.NoNodeID, false
		}
		p.advance()
		if !p.parseModuleSource(id) || !p.consumeSemicolon() {
			return ast.NoNodeID, false
		}
		return p.finish(id), true

	case p.at(token.LBrace):
		id := p.node(ast.ExportNamedDeclaration, start)
		if !p.parseExportSpecifiers(id) {
			return ast.NoNodeID, false
		}
		if p.atWord("from") {
			p.advance()
			if !p.parseModuleSource(id) {
				return ast.NoNodeID, false
			}
		}
		if !p.consumeSemicolon() {
			return ast.NoNodeID, false
		}
		return p.finish(id), true

	case p.atFlowDeclaration() || p.atWord("type"):
		// export type / opaque type / interface не влияют на исполнение
		return p.parseFlowDeclaration(start)
	}

	id := p.node(ast.ExportNamedDeclaration, start)
	var decl ast.NodeID
	var ok bool
	switch {
	case p.at(token.KwVar) || p.at(token.KwConst) || p.atLetDeclaration():
		decl, ok = p.parseVarStatement()
	case p.at(token.KwFunction):
		decl, ok = p.parseFunction(p.tok.Span.Start, false, true)
	case p.atAsyncFunction():
		fnStart := p.tok.Span.Start
		p.advance()
		decl, ok = p.parseFunction(fnStart, true, true)
	case p.at(token.KwClass):
		decl, ok = p.parseClass(p.classStart(decorators), decorators, true)
	case p.at(token.At):
		decl, ok = p.parseDecoratedClass(true)
	default:
		p.unexpected("after 'export'")
		return ast.NoNodeID, false
	}
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldDeclaration, decl)
	return p.finish(id), true
}

// classStart: класс с декораторами перед export начинается с первого декоратора.
func (p *Parser) classStart(decorators []ast.NodeID) uint32 {
	if len(decorators) > 0 {
		return p.startOf(decorators[0])
	}
	return p.tok.Span.Start
}

func (p *Parser) parseExportDefaultValue(decorators []ast.NodeID) (ast.NodeID, bool) {
	switch {
	case p.at(token.KwFunction):
		return p.parseFunction(p.tok.Span.Start, false, true)
	case p.atAsyncFunction():
		start := p.tok.Span.Start
		p.advance()
		return p.parseFunction(start, true, true)
	case p.at(token.KwClass):
		return p.parseClass(p.classStart(decorators), decorators, true)
	case p.at(token.At):
		return p.parseDecoratedClass(true)
	}
	expr, ok := p.parseAssign()
	if !ok || !p.consumeSemicolon() {
		return ast.NoNodeID, false
	}
	return expr, true
}

func (p *Parser) parseExportSpecifiers(owner ast.NodeID) bool {
	open := p.advance()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		spec := p.node(ast.ExportSpecifier, p.tok.Span.Start)
		if !p.tok.IsWord() && !p.at(token.StringLit) {
			p.unexpected("in export specifier")
			return false
		}
		if p.at(token.StringLit) {
			p.link(spec, ast.FieldLocal, p.leaf(ast.StringLiteral))
		} else {
			p.link(spec, ast.FieldLocal, p.leaf(ast.Identifier))
		}
		if p.atWord("as") {
			p.advance()
			switch {
			case p.at(token.StringLit):
				p.link(spec, ast.FieldExported, p.leaf(ast.StringLiteral))
			case p.tok.IsWord():
				p.link(spec, ast.FieldExported, p.leaf(ast.Identifier))
			default:
				p.unexpected("after 'as'")
				return false
			}
		}
		p.link(owner, ast.FieldSpecifiers, p.finish(spec))
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.at(token.RBrace) {
		p.errAt(diag.SynUnclosedBrace, open.Span, "unclosed '{' in export specifiers")
		return false
	}
	p.advance()
	return true
}
