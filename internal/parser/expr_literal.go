package parser

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// parseTemplate разбирает шаблонную строку. Части и подстановки лежат
// в одном списке parts в порядке исходного текста.
func (p *Parser) parseTemplate() (ast.NodeID, bool) {
	id := p.node(ast.TemplateLiteral, p.tok.Span.Start)
	if p.at(token.TemplateFull) {
		p.link(id, ast.FieldParts, p.leaf(ast.TemplateElement))
		return p.finish(id), true
	}
	p.link(id, ast.FieldParts, p.leaf(ast.TemplateElement))

	saved := p.enterBrackets()
	defer p.leaveCtx(saved)
	for {
		expr, ok := p.parseExpression()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldParts, expr)
		if !p.at(token.RBrace) {
			p.err(diag.SynUnclosedBrace, "expected '}' after template substitution")
			return ast.NoNodeID, false
		}
		p.tok = p.lx.RescanTemplate(p.tok)
		tail := p.at(token.TemplateTail)
		p.link(id, ast.FieldParts, p.leaf(ast.TemplateElement))
		if tail {
			return p.finish(id), true
		}
		if p.at(token.EOF) {
			return ast.NoNodeID, false
		}
	}
}

func (p *Parser) parseArrayLiteral() (ast.NodeID, bool) {
	id := p.node(ast.ArrayExpression, p.tok.Span.Start)
	open := p.advance()
	saved := p.enterBrackets()
	defer p.leaveCtx(saved)

	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.eat(token.Comma) {
			p.link(id, ast.FieldElements, ast.NoNodeID) // дырка [a, , b]
			continue
		}
		elem, ok := p.parseSpreadOrAssign()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldElements, elem)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.at(token.RBracket) {
		p.errAt(diag.SynUnclosedBracket, open.Span, "unclosed '[' in array literal")
		return ast.NoNodeID, false
	}
	p.advance()
	return p.finish(id), true
}

func (p *Parser) parseObjectLiteral() (ast.NodeID, bool) {
	id := p.node(ast.ObjectExpression, p.tok.Span.Start)
	open := p.advance()
	saved := p.enterBrackets()
	defer p.leaveCtx(saved)

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		var prop ast.NodeID
		var ok bool
		if p.at(token.DotDotDot) {
			prop, ok = p.parseSpreadOrAssign()
		} else {
			prop, ok = p.parseObjectMember()
		}
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldProperties, prop)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.at(token.RBrace) {
		p.errAt(diag.SynUnclosedBrace, open.Span, "unclosed '{' in object literal")
		return ast.NoNodeID, false
	}
	p.advance()
	return p.finish(id), true
}

// peekIsKeyStart: следующий токен может начинать имя свойства, значит
// текущее слово (get, set, async, static) модификатор, а не имя.
func (p *Parser) peekIsKeyStart() bool {
	next := p.peek()
	switch next.Kind {
	case token.StringLit, token.NumberLit, token.BigIntLit, token.LBracket, token.PrivateName, token.Star:
		return true
	}
	return next.IsWord()
}

// methodModifiers читает async, * и get/set перед именем метода.
func (p *Parser) methodModifiers() (flags ast.Flags, kind string) {
	kind = "method"
	if p.atWord("async") && !p.peek().NewlineBefore && p.peekIsKeyStart() {
		p.advance()
		flags |= ast.FlagAsync
	}
	if p.eat(token.Star) {
		flags |= ast.FlagGenerator
	}
	if flags == 0 && (p.atWord("get") || p.atWord("set")) && p.peekIsKeyStart() && p.peek().Kind != token.Star {
		kind = p.advance().Text
	}
	return flags, kind
}

func (p *Parser) parseObjectMember() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	flags, kind := p.methodModifiers()

	key, computed, ok := p.parsePropertyKey(false)
	if !ok {
		return ast.NoNodeID, false
	}
	if computed {
		flags |= ast.FlagComputed
	}

	if p.at(token.LParen) || p.at(token.Lt) || flags.Has(ast.FlagAsync|ast.FlagGenerator) || kind != "method" {
		id := p.node(ast.ObjectMethod, start)
		n := p.tree.Node(id)
		n.Flags, n.Text = flags, kind
		p.link(id, ast.FieldKey, key)
		if !p.parseFunctionRest(id, flags.Has(ast.FlagAsync), flags.Has(ast.FlagGenerator)) {
			return ast.NoNodeID, false
		}
		return p.finish(id), true
	}

	id := p.node(ast.ObjectProperty, start)
	p.tree.Node(id).Flags = flags
	if p.eat(token.Colon) {
		p.link(id, ast.FieldKey, key)
		value, ok := p.parseAssign()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldValue, value)
		return p.finish(id), true
	}

	// {a} и {a = 1}; последнее допустимо только как шаблон присваивания
	if computed || !p.tree.Is(key, ast.Identifier) {
		p.unexpected("after property name")
		return ast.NoNodeID, false
	}
	p.tree.Node(id).Flags |= ast.FlagShorthand
	value := key
	if p.at(token.Assign) {
		value = p.node(ast.AssignmentPattern, start)
		p.advance()
		def, ok := p.parseAssign()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(value, ast.FieldLeft, key)
		p.link(value, ast.FieldRight, def)
		p.finish(value)
	}
	p.link(id, ast.FieldValue, value)
	return p.finish(id), true
}

// parsePropertyKey разбирает имя свойства объекта или члена класса.
func (p *Parser) parsePropertyKey(allowPrivate bool) (key ast.NodeID, computed, ok bool) {
	switch {
	case p.at(token.LBracket):
		key, ok = p.parseComputedMember()
		return key, true, ok
	case p.at(token.StringLit):
		return p.leaf(ast.StringLiteral), false, true
	case p.at(token.NumberLit):
		return p.leaf(ast.NumericLiteral), false, true
	case p.at(token.BigIntLit):
		return p.leaf(ast.BigIntLiteral), false, true
	case p.at(token.PrivateName) && allowPrivate:
		return p.leaf(ast.PrivateName), false, true
	case p.tok.IsWord():
		return p.leaf(ast.Identifier), false, true
	}
	p.unexpected("where a property name was expected")
	return ast.NoNodeID, false, false
}
