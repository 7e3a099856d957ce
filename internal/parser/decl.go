package parser

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// parseFunction разбирает function [*] [name] (...) {...}; текущий токен: function.
// Для объявлений имя может отсутствовать только в export default.
func (p *Parser) parseFunction(start uint32, async, declaration bool) (ast.NodeID, bool) {
	kind := ast.FunctionExpression
	if declaration {
		kind = ast.FunctionDeclaration
	}
	id := p.node(kind, start)
	p.advance() // function

	var flags ast.Flags
	if async {
		flags |= ast.FlagAsync
	}
	if p.eat(token.Star) {
		flags |= ast.FlagGenerator
	}
	p.tree.Node(id).Flags = flags

	if p.at(token.Ident) {
		p.link(id, ast.FieldID, p.leaf(ast.Identifier))
	}
	if !p.parseFunctionRest(id, async, flags.Has(ast.FlagGenerator)) {
		return ast.NoNodeID, false
	}
	return p.finish(id), true
}

// parseFunctionRest разбирает общую часть функций и методов:
// [<T>](params)[: R] { body }.
func (p *Parser) parseFunctionRest(id ast.NodeID, async, generator bool) bool {
	if p.at(token.Lt) {
		tparams, ok := p.parseTypeParameters()
		if !ok {
			return false
		}
		p.link(id, ast.FieldTypeParameters, tparams)
	}

	saved := p.ctx
	defer p.leaveCtx(saved)
	p.ctx = parseCtx{inFunction: true, inAsync: async, inGenerator: generator}

	if !p.parseParams(id) {
		return false
	}
	if p.at(token.Colon) {
		ret, ok := p.parseTypeAnnotation()
		if !ok {
			return false
		}
		p.link(id, ast.FieldReturnType, ret)
	}
	body, ok := p.parseFunctionBody()
	if !ok {
		return false
	}
	p.link(id, ast.FieldBody, body)
	return true
}

// ===== классы =====

func (p *Parser) parseDecorators() ([]ast.NodeID, bool) {
	var decs []ast.NodeID
	for p.at(token.At) {
		dec, ok := p.parseDecorator()
		if !ok {
			return nil, false
		}
		decs = append(decs, dec)
	}
	return decs, true
}

// parseDecorator разбирает @a.b.c, @a(...) и @(expr).
func (p *Parser) parseDecorator() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	id := p.node(ast.Decorator, start)
	p.advance() // @

	exprStart := p.tok.Span.Start
	var expr ast.NodeID
	var ok bool
	if p.at(token.LParen) {
		expr, ok = p.parseParenExpr()
	} else {
		if !p.at(token.Ident) {
			p.unexpected("after '@'")
			return ast.NoNodeID, false
		}
		expr = p.leaf(ast.Identifier)
		ok = true
		for ok && p.at(token.Dot) {
			p.advance()
			var prop ast.NodeID
			prop, ok = p.parseMemberName()
			expr = p.member(exprStart, expr, prop, 0)
		}
		if ok && p.at(token.LParen) {
			call := p.node(ast.CallExpression, exprStart)
			p.link(call, ast.FieldCallee, expr)
			ok = p.parseArguments(call)
			expr = p.finish(call)
		}
	}
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldExpression, expr)
	return p.finish(id), true
}

// parseDecoratedClass разбирает декораторы и следующий за ними класс,
// в том числе `@dec export class`.
func (p *Parser) parseDecoratedClass(declaration bool) (ast.NodeID, bool) {
	start := p.tok.Span.Start
	decs, ok := p.parseDecorators()
	if !ok {
		return ast.NoNodeID, false
	}
	if declaration && p.at(token.KwExport) {
		return p.parseExportWith(start, decs)
	}
	if !p.at(token.KwClass) {
		p.unexpected("after decorators")
		return ast.NoNodeID, false
	}
	return p.parseClass(start, decs, declaration)
}

// parseClass разбирает class [Name] [<T>] [extends X] [implements Y] { ... }.
func (p *Parser) parseClass(start uint32, decorators []ast.NodeID, declaration bool) (ast.NodeID, bool) {
	kind := ast.ClassExpression
	if declaration {
		kind = ast.ClassDeclaration
	}
	id := p.node(kind, start)
	for _, d := range decorators {
		p.link(id, ast.FieldDecorators, d)
	}
	p.advance() // class

	if p.at(token.Ident) && !p.atWord("implements") {
		p.link(id, ast.FieldID, p.leaf(ast.Identifier))
	}
	if p.at(token.Lt) {
		tparams, ok := p.parseTypeParameters()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldTypeParameters, tparams)
	}
	if p.eat(token.KwExtends) {
		superStart := p.tok.Span.Start
		super, ok := p.parsePrimary()
		if ok {
			super, ok = p.parseCallTail(superStart, super, false)
		}
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldSuperClass, super)
		if p.at(token.Lt) {
			targs, ok := p.parseTypeParameters()
			if !ok {
				return ast.NoNodeID, false
			}
			p.link(id, ast.FieldSuperTypeParameters, targs)
		}
	}
	if p.atWord("implements") {
		impl := p.node(ast.TypeAnnotation, p.tok.Span.Start)
		p.advance()
		for {
			if !p.skipType() {
				return ast.NoNodeID, false
			}
			if !p.eat(token.Comma) {
				break
			}
		}
		p.link(id, ast.FieldImplements, p.finish(impl))
	}

	body, ok := p.parseClassBody()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldBody, body)
	return p.finish(id), true
}

func (p *Parser) parseClassBody() (ast.NodeID, bool) {
	id := p.node(ast.ClassBody, p.tok.Span.Start)
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' before class body")
	if !ok {
		return ast.NoNodeID, false
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.eat(token.Semicolon) {
			continue
		}
		member, ok := p.parseClassMember()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldBody, member)
	}
	if !p.at(token.RBrace) {
		p.errAt(diag.SynUnclosedBrace, open.Span, "unclosed '{' in class body")
		return ast.NoNodeID, false
	}
	p.advance()
	return p.finish(id), true
}

// modifierFollows: текущее слово: модификатор члена класса, а не его имя.
func (p *Parser) modifierFollows() bool {
	next := p.peek()
	return !next.NewlineBefore && p.peekIsKeyStart()
}

func (p *Parser) parseClassMember() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	decs, ok := p.parseDecorators()
	if !ok {
		return ast.NoNodeID, false
	}

	var static ast.Flags
	if p.atWord("static") {
		next := p.peek()
		switch {
		case next.Kind == token.LBrace:
			return p.parseStaticBlock(start)
		case p.peekIsKeyStart():
			p.advance()
			static = ast.FlagStatic
		}
	}
	// flow: declare-поля и вариантность +x / -x
	if p.atWord("declare") && p.modifierFollows() {
		p.advance()
	}
	if (p.at(token.Plus) || p.at(token.Minus)) && p.peekIsKeyStart() {
		p.advance()
	}

	flags, kind := p.methodModifiers()
	flags |= static
	key, computed, ok := p.parsePropertyKey(true)
	if !ok {
		return ast.NoNodeID, false
	}
	if computed {
		flags |= ast.FlagComputed
	}

	if p.at(token.LParen) || p.at(token.Lt) || flags.Has(ast.FlagAsync|ast.FlagGenerator) || kind != "method" {
		id := p.node(ast.ClassMethod, start)
		if kind == "method" && !computed && !flags.Has(ast.FlagStatic) && p.isConstructorKey(key) {
			kind = "constructor"
		}
		n := p.tree.Node(id)
		n.Flags, n.Text = flags, kind
		for _, d := range decs {
			p.link(id, ast.FieldDecorators, d)
		}
		p.link(id, ast.FieldKey, key)
		if !p.parseFunctionRest(id, flags.Has(ast.FlagAsync), flags.Has(ast.FlagGenerator)) {
			return ast.NoNodeID, false
		}
		return p.finish(id), true
	}

	id := p.node(ast.ClassProperty, start)
	p.tree.Node(id).Flags = flags
	for _, d := range decs {
		p.link(id, ast.FieldDecorators, d)
	}
	p.link(id, ast.FieldKey, key)
	if p.eat(token.Question) {
		p.tree.Node(id).Flags |= ast.FlagOptional
	}
	if p.at(token.Colon) {
		ann, ok := p.parseTypeAnnotation()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldTypeAnnotation, ann)
	}
	if p.eat(token.Assign) {
		// инициализатор поля исполняется как тело метода
		saved := p.ctx
		p.ctx = parseCtx{inFunction: true}
		value, ok := p.parseAssign()
		p.leaveCtx(saved)
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldValue, value)
	}
	if !p.consumeSemicolon() {
		return ast.NoNodeID, false
	}
	return p.finish(id), true
}

func (p *Parser) isConstructorKey(key ast.NodeID) bool {
	switch p.tree.Kind(key) {
	case ast.Identifier:
		return p.tree.Text(key) == "constructor"
	case ast.StringLiteral:
		txt := p.tree.Text(key)
		return len(txt) == len(`"constructor"`) && txt[1:len(txt)-1] == "constructor"
	}
	return false
}

func (p *Parser) parseStaticBlock(start uint32) (ast.NodeID, bool) {
	id := p.node(ast.StaticBlock, start)
	p.advance() // static
	open := p.advance()
	saved := p.ctx
	p.ctx = parseCtx{inFunction: true}
	defer p.leaveCtx(saved)
	p.parseStatementList(id, ast.FieldBody, token.RBrace, false)
	if !p.at(token.RBrace) {
		p.errAt(diag.SynUnclosedBrace, open.Span, "unclosed '{' in static block")
		return ast.NoNodeID, false
	}
	p.advance()
	return p.finish(id), true
}
