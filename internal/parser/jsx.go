package parser

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// jsxAfter: в каком режиме читать токен после закрывающего '>' элемента.
type jsxAfter uint8

const (
	jsxAfterExpr  jsxAfter = iota // элемент в позиции выражения
	jsxAfterChild                 // вложенный элемент среди детей
	jsxAfterTag                   // значение атрибута: <a b=<c/> d>
)

func (p *Parser) advanceAfter(mode jsxAfter) token.Token {
	switch mode {
	case jsxAfterChild:
		return p.advanceJSXChild()
	case jsxAfterTag:
		return p.advanceJSXTag()
	}
	return p.advance()
}

// parseJSXElement разбирает элемент или фрагмент; текущий токен: '<'.
func (p *Parser) parseJSXElement(mode jsxAfter) (ast.NodeID, bool) {
	start := p.tok.Span.Start
	p.advanceJSXTag() // '<'
	return p.parseJSXElementRest(start, mode)
}

// parseJSXElementRest продолжает разбор после уже съеденного '<'.
func (p *Parser) parseJSXElementRest(start uint32, mode jsxAfter) (ast.NodeID, bool) {
	if p.at(token.Gt) {
		return p.parseJSXFragment(start, mode)
	}

	el := p.node(ast.JSXElement, start)
	opening := p.node(ast.JSXOpeningElement, start)
	name, ok := p.parseJSXName()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(opening, ast.FieldName, name)

	for !p.at(token.Gt) && !p.at(token.Slash) && !p.at(token.EOF) {
		attr, ok := p.parseJSXAttribute()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(opening, ast.FieldAttributes, attr)
	}

	if p.at(token.Slash) {
		p.advanceJSXTag()
		if !p.at(token.Gt) {
			p.err(diag.SynUnexpectedToken, "expected '>' after '/' in self-closing tag")
			return ast.NoNodeID, false
		}
		p.advanceAfter(mode)
		p.tree.Node(opening).Flags |= ast.FlagSelfClosing
		p.link(el, ast.FieldOpeningElement, p.finish(opening))
		return p.finish(el), true
	}
	if !p.at(token.Gt) {
		p.err(diag.SynUnexpectedToken, "unterminated JSX opening tag")
		return ast.NoNodeID, false
	}
	p.advanceJSXChild()
	p.link(el, ast.FieldOpeningElement, p.finish(opening))

	closeStart, ok := p.parseJSXChildren(el)
	if !ok {
		return ast.NoNodeID, false
	}

	closing := p.node(ast.JSXClosingElement, closeStart)
	p.advanceJSXTag() // '/'
	closeName, ok := p.parseJSXName()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(closing, ast.FieldName, closeName)
	if !p.at(token.Gt) {
		p.err(diag.SynUnexpectedToken, "expected '>' in closing tag")
		return ast.NoNodeID, false
	}
	p.advanceAfter(mode)
	p.link(el, ast.FieldClosingElement, p.finish(closing))

	if want, got := p.tree.Source(name), p.tree.Source(closeName); want != got {
		p.errAt(diag.SynJSXMismatchedTag, p.tree.Node(closeName).Span,
			"expected corresponding closing tag for <"+want+">, found </"+got+">")
		return ast.NoNodeID, false
	}
	return p.finish(el), true
}

func (p *Parser) parseJSXFragment(start uint32, mode jsxAfter) (ast.NodeID, bool) {
	frag := p.node(ast.JSXFragment, start)
	opening := p.node(ast.JSXOpeningFragment, start)
	p.advanceJSXChild() // '>'
	p.link(frag, ast.FieldOpeningFragment, p.finish(opening))

	closeStart, ok := p.parseJSXChildren(frag)
	if !ok {
		return ast.NoNodeID, false
	}
	closing := p.node(ast.JSXClosingFragment, closeStart)
	p.advanceJSXTag() // '/'
	if !p.at(token.Gt) {
		p.err(diag.SynJSXMismatchedTag, "expected '</>' to close fragment")
		return ast.NoNodeID, false
	}
	p.advanceAfter(mode)
	p.link(frag, ast.FieldClosingFragment, p.finish(closing))
	return p.finish(frag), true
}

// parseJSXChildren читает детей до '</'. Возвращает позицию '<'
// закрывающего тега; текущий токен после возврата: '/'.
func (p *Parser) parseJSXChildren(owner ast.NodeID) (uint32, bool) {
	for {
		switch p.tok.Kind {
		case token.JSXText:
			id := p.node(ast.JSXText, p.tok.Span.Start)
			p.tree.Node(id).Text = p.advanceJSXChild().Text
			p.link(owner, ast.FieldChildren, p.finish(id))

		case token.LBrace:
			child, ok := p.parseJSXChildContainer()
			if !ok {
				return 0, false
			}
			p.link(owner, ast.FieldChildren, child)

		case token.Lt:
			lt := p.advanceJSXTag()
			if p.at(token.Slash) {
				return lt.Span.Start, true
			}
			child, ok := p.parseJSXElementRest(lt.Span.Start, jsxAfterChild)
			if !ok {
				return 0, false
			}
			p.link(owner, ast.FieldChildren, child)

		default:
			p.errAt(diag.SynJSXMismatchedTag, p.tree.Node(owner).Span, "unclosed JSX element")
			return 0, false
		}
	}
}

// parseJSXChildContainer разбирает {expr}, {} и {...expr} среди детей.
func (p *Parser) parseJSXChildContainer() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	p.advance() // '{'

	var id ast.NodeID
	switch {
	case p.at(token.RBrace):
		id = p.node(ast.JSXExpressionContainer, start)
		empty := p.node(ast.JSXEmptyExpression, p.prevEnd)
		p.tree.Node(empty).Span.End = p.tok.Span.Start
		p.link(id, ast.FieldExpression, empty)
	case p.at(token.DotDotDot):
		id = p.node(ast.JSXSpreadChild, start)
		p.advance()
		expr, ok := p.parseExpression()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldExpression, expr)
	default:
		id = p.node(ast.JSXExpressionContainer, start)
		saved := p.enterBrackets()
		expr, ok := p.parseExpression()
		p.leaveCtx(saved)
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldExpression, expr)
	}
	if !p.at(token.RBrace) {
		p.err(diag.SynUnclosedBrace, "expected '}' to close JSX expression")
		return ast.NoNodeID, false
	}
	p.advanceJSXChild()
	return p.finish(id), true
}

// parseJSXName разбирает a, a:b и a.b.c внутри тега.
func (p *Parser) parseJSXName() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	if !p.at(token.Ident) {
		p.err(diag.SynUnexpectedToken, "expected JSX tag name, found "+describe(p.tok))
		return ast.NoNodeID, false
	}
	name := p.jsxIdent()

	if p.at(token.Colon) {
		p.advanceJSXTag()
		if !p.at(token.Ident) {
			p.err(diag.SynUnexpectedToken, "expected name after ':' in JSX")
			return ast.NoNodeID, false
		}
		ns := p.node(ast.JSXNamespacedName, start)
		p.link(ns, ast.FieldNamespace, name)
		p.link(ns, ast.FieldName, p.jsxIdent())
		return p.finish(ns), true
	}

	for p.at(token.Dot) {
		p.advanceJSXTag()
		if !p.at(token.Ident) {
			p.err(diag.SynUnexpectedToken, "expected name after '.' in JSX")
			return ast.NoNodeID, false
		}
		member := p.node(ast.JSXMemberExpression, start)
		p.link(member, ast.FieldObject, name)
		p.link(member, ast.FieldProperty, p.jsxIdent())
		name = p.finish(member)
	}
	return name, true
}

func (p *Parser) jsxIdent() ast.NodeID {
	id := p.node(ast.JSXIdentifier, p.tok.Span.Start)
	p.tree.Node(id).Text = p.advanceJSXTag().Text
	return p.finish(id)
}

// parseJSXAttribute разбирает name, name="v", name={expr}, name=<el/> и {...spread}.
func (p *Parser) parseJSXAttribute() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	if p.at(token.LBrace) {
		id := p.node(ast.JSXSpreadAttribute, start)
		p.advance()
		if _, ok := p.expect(token.DotDotDot, diag.SynUnexpectedToken, "expected '...' in JSX spread attribute"); !ok {
			return ast.NoNodeID, false
		}
		arg, ok := p.parseAssign()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldArgument, arg)
		if !p.at(token.RBrace) {
			p.err(diag.SynUnclosedBrace, "expected '}' after JSX spread attribute")
			return ast.NoNodeID, false
		}
		p.advanceJSXTag()
		return p.finish(id), true
	}

	id := p.node(ast.JSXAttribute, start)
	name, ok := p.parseJSXAttributeName()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldName, name)
	if !p.at(token.Assign) {
		return p.finish(id), true
	}
	p.advanceJSXTag()

	switch {
	case p.at(token.StringLit):
		value := p.node(ast.StringLiteral, p.tok.Span.Start)
		p.tree.Node(value).Text = p.advanceJSXTag().Text
		p.link(id, ast.FieldValue, p.finish(value))
	case p.at(token.LBrace):
		value := p.node(ast.JSXExpressionContainer, p.tok.Span.Start)
		p.advance()
		if p.at(token.RBrace) {
			p.err(diag.SynUnexpectedToken, "JSX attribute value must not be empty")
			return ast.NoNodeID, false
		}
		saved := p.enterBrackets()
		expr, ok := p.parseAssign()
		p.leaveCtx(saved)
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(value, ast.FieldExpression, expr)
		if !p.at(token.RBrace) {
			p.err(diag.SynUnclosedBrace, "expected '}' to close JSX attribute value")
			return ast.NoNodeID, false
		}
		p.advanceJSXTag()
		p.link(id, ast.FieldValue, p.finish(value))
	case p.at(token.Lt):
		value, ok := p.parseJSXElement(jsxAfterTag)
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldValue, value)
	default:
		p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.tok)+" as JSX attribute value")
		return ast.NoNodeID, false
	}
	return p.finish(id), true
}

func (p *Parser) parseJSXAttributeName() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	if !p.at(token.Ident) {
		p.err(diag.SynUnexpectedToken, "expected JSX attribute name, found "+describe(p.tok))
		return ast.NoNodeID, false
	}
	name := p.jsxIdent()
	if !p.at(token.Colon) {
		return name, true
	}
	p.advanceJSXTag()
	if !p.at(token.Ident) {
		p.err(diag.SynUnexpectedToken, "expected name after ':' in JSX attribute")
		return ast.NoNodeID, false
	}
	ns := p.node(ast.JSXNamespacedName, start)
	p.link(ns, ast.FieldNamespace, name)
	p.link(ns, ast.FieldName, p.jsxIdent())
	return p.finish(ns), true
}
