package parser

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// parseParams разбирает список формальных параметров в params узла owner.
func (p *Parser) parseParams(owner ast.NodeID) bool {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' before parameters")
	if !ok {
		return false
	}
	saved := p.enterBrackets()
	defer p.leaveCtx(saved)

	for !p.at(token.RParen) && !p.at(token.EOF) {
		var param ast.NodeID
		switch {
		case p.at(token.DotDotDot):
			param, ok = p.parseRestElement()
		case p.at(token.KwThis) && p.peek().Kind == token.Colon:
			// function f(this: T): аннотация типа this
			param, ok = p.parseTypedName()
		default:
			param, ok = p.parseBindingElement(true)
		}
		if !ok {
			return false
		}
		p.link(owner, ast.FieldParams, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.at(token.RParen) {
		p.errAt(diag.SynUnclosedParen, open.Span, "unclosed '(' in parameter list")
		return false
	}
	p.advance()
	return true
}

// parseBindingElement разбирает цель привязки с необязательным значением по умолчанию.
func (p *Parser) parseBindingElement(allowType bool) (ast.NodeID, bool) {
	start := p.tok.Span.Start
	target, ok := p.parseBindingTarget(allowType)
	if !ok || !p.at(token.Assign) {
		return target, ok
	}
	p.advance()
	def, ok := p.parseAssign()
	if !ok {
		return ast.NoNodeID, false
	}
	id := p.node(ast.AssignmentPattern, start)
	p.link(id, ast.FieldLeft, target)
	p.link(id, ast.FieldRight, def)
	return p.finish(id), true
}

// parseBindingTarget разбирает идентификатор, [...] или {...} и,
// если allowType, аннотацию типа после него.
func (p *Parser) parseBindingTarget(allowType bool) (ast.NodeID, bool) {
	var id ast.NodeID
	var ok bool
	switch {
	case p.at(token.Ident):
		if allowType {
			return p.parseTypedName()
		}
		return p.leaf(ast.Identifier), true
	case p.at(token.LBracket):
		id, ok = p.parseArrayPattern()
	case p.at(token.LBrace):
		id, ok = p.parseObjectPattern()
	default:
		p.err(diag.SynInvalidArrowParam, "expected binding name or pattern, found "+describe(p.tok))
		return ast.NoNodeID, false
	}
	if !ok {
		return ast.NoNodeID, false
	}
	if allowType && p.at(token.Colon) {
		ann, ok := p.parseTypeAnnotation()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldTypeAnnotation, ann)
		p.finish(id)
	}
	return id, true
}

// parseTypedName разбирает `x`, `x?` или `x?: T`. Span идентификатора
// покрывает аннотацию.
func (p *Parser) parseTypedName() (ast.NodeID, bool) {
	id := p.leaf(ast.Identifier)
	if p.at(token.Question) {
		p.advance()
		p.tree.Node(id).Flags |= ast.FlagOptional
		p.finish(id)
	}
	if p.at(token.Colon) {
		ann, ok := p.parseTypeAnnotation()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldTypeAnnotation, ann)
		p.finish(id)
	}
	return id, true
}

func (p *Parser) parseRestElement() (ast.NodeID, bool) {
	id := p.node(ast.RestElement, p.tok.Span.Start)
	p.advance() // ...
	arg, ok := p.parseBindingTarget(true)
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldArgument, arg)
	return p.finish(id), true
}

func (p *Parser) parseArrayPattern() (ast.NodeID, bool) {
	id := p.node(ast.ArrayPattern, p.tok.Span.Start)
	open := p.advance()
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.eat(token.Comma) {
			p.link(id, ast.FieldElements, ast.NoNodeID)
			continue
		}
		var elem ast.NodeID
		var ok bool
		if p.at(token.DotDotDot) {
			elem, ok = p.parseRestElement()
		} else {
			elem, ok = p.parseBindingElement(false)
		}
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldElements, elem)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.at(token.RBracket) {
		p.errAt(diag.SynUnclosedBracket, open.Span, "unclosed '[' in pattern")
		return ast.NoNodeID, false
	}
	p.advance()
	return p.finish(id), true
}

func (p *Parser) parseObjectPattern() (ast.NodeID, bool) {
	id := p.node(ast.ObjectPattern, p.tok.Span.Start)
	open := p.advance()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			rest, ok := p.parseRestElement()
			if !ok {
				return ast.NoNodeID, false
			}
			p.link(id, ast.FieldProperties, rest)
		} else {
			prop, ok := p.parseObjectPatternProperty()
			if !ok {
				return ast.NoNodeID, false
			}
			p.link(id, ast.FieldProperties, prop)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.at(token.RBrace) {
		p.errAt(diag.SynUnclosedBrace, open.Span, "unclosed '{' in pattern")
		return ast.NoNodeID, false
	}
	p.advance()
	return p.finish(id), true
}

func (p *Parser) parseObjectPatternProperty() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	id := p.node(ast.ObjectProperty, start)
	key, computed, ok := p.parsePropertyKey(false)
	if !ok {
		return ast.NoNodeID, false
	}
	if computed {
		p.tree.Node(id).Flags |= ast.FlagComputed
	}
	if p.eat(token.Colon) {
		p.link(id, ast.FieldKey, key)
		value, ok := p.parseBindingElement(false)
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldValue, value)
		return p.finish(id), true
	}
	if computed || !p.tree.Is(key, ast.Identifier) {
		p.unexpected("in object pattern")
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

// toPattern переосмысливает уже разобранное выражение как цель
// присваивания: левая часть `=` и for-in/of.
func (p *Parser) toPattern(id ast.NodeID) bool {
	switch p.tree.Kind(id) {
	case ast.Identifier:
		return true
	case ast.MemberExpression:
		if !p.tree.Node(id).Flags.Has(ast.FlagOptional) {
			return true
		}
	case ast.AssignmentPattern:
		return p.toPattern(p.tree.Child(id, ast.FieldLeft))
	case ast.AssignmentExpression:
		if p.tree.Node(id).Op == token.Assign {
			p.tree.Retag(id, ast.AssignmentPattern)
			p.tree.Node(id).Op = token.Invalid
			return p.toPattern(p.tree.Child(id, ast.FieldLeft))
		}
	case ast.ArrayExpression:
		p.tree.Retag(id, ast.ArrayPattern)
		for _, el := range p.tree.List(id, ast.FieldElements) {
			if el.IsValid() && !p.toPatternElement(el) {
				return false
			}
		}
		return true
	case ast.ObjectExpression:
		p.tree.Retag(id, ast.ObjectPattern)
		for _, prop := range p.tree.List(id, ast.FieldProperties) {
			switch p.tree.Kind(prop) {
			case ast.ObjectProperty:
				if !p.toPattern(p.tree.Child(prop, ast.FieldValue)) {
					return false
				}
			case ast.SpreadElement:
				if !p.toPatternElement(prop) {
					return false
				}
			default:
				p.errAt(diag.SynInvalidAssignment, p.tree.Node(prop).Span, "invalid destructuring target")
				return false
			}
		}
		return true
	}
	p.errAt(diag.SynInvalidAssignment, p.tree.Node(id).Span, "invalid assignment target")
	return false
}

func (p *Parser) toPatternElement(id ast.NodeID) bool {
	if p.tree.Is(id, ast.SpreadElement) {
		p.tree.Retag(id, ast.RestElement)
		return p.toPattern(p.tree.Child(id, ast.FieldArgument))
	}
	return p.toPattern(id)
}
