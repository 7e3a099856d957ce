package parser

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// tryArrow распознаёт стрелочную функцию в начале AssignmentExpression.
// Голова стрелки (параметры, тип результата, =>) разбирается спекулятивно;
// после => разбор тела уже не откатывается. handled=false значит, что здесь
// не стрелка и нужно разбирать обычное выражение.
func (p *Parser) tryArrow() (id ast.NodeID, ok, handled bool) {
	start := p.tok.Span.Start
	head := ast.NoNodeID
	switch {
	case p.at(token.Ident) && p.arrowFollows(p.peek()):
		head = p.node(ast.ArrowFunctionExpression, start)
		p.link(head, ast.FieldParams, p.leaf(ast.Identifier))
		p.advance() // =>

	case p.atWord("async") && !p.peek().NewlineBefore:
		switch p.peek().Kind {
		case token.Ident, token.LParen, token.Lt:
			head, _ = p.try(func() (ast.NodeID, bool) { return p.parseAsyncArrowHead(start) })
		}

	case p.at(token.LParen):
		head, _ = p.try(func() (ast.NodeID, bool) { return p.parseArrowHead(start, false) })

	case p.at(token.Lt):
		head, _ = p.try(func() (ast.NodeID, bool) { return p.parseArrowHead(start, false) })
	}
	if !head.IsValid() {
		return ast.NoNodeID, false, false
	}
	id, ok = p.parseArrowBody(head)
	return id, ok, true
}

func (p *Parser) arrowFollows(tok token.Token) bool {
	return tok.Kind == token.FatArrow && !tok.NewlineBefore
}

func (p *Parser) parseAsyncArrowHead(start uint32) (ast.NodeID, bool) {
	p.advance() // async
	if !p.at(token.Ident) {
		return p.parseArrowHead(start, true)
	}
	id := p.node(ast.ArrowFunctionExpression, start)
	p.tree.Node(id).Flags |= ast.FlagAsync
	p.link(id, ast.FieldParams, p.leaf(ast.Identifier))
	if !p.at(token.FatArrow) || p.tok.NewlineBefore {
		return ast.NoNodeID, false
	}
	p.advance()
	return id, true
}

// parseArrowHead разбирает [<T>](params)[: R] =>.
func (p *Parser) parseArrowHead(start uint32, async bool) (ast.NodeID, bool) {
	id := p.node(ast.ArrowFunctionExpression, start)
	if async {
		p.tree.Node(id).Flags |= ast.FlagAsync
	}
	if p.at(token.Lt) {
		tparams, ok := p.parseTypeParameters()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldTypeParameters, tparams)
	}
	if !p.at(token.LParen) {
		return ast.NoNodeID, false
	}

	saved := p.ctx
	p.ctx.inAsync = async
	ok := p.parseParams(id)
	p.ctx.inAsync = saved.inAsync
	if !ok {
		return ast.NoNodeID, false
	}

	if p.at(token.Colon) && !saved.noArrowReturnType {
		// в типе результата `T => U` не функциональный тип: => принадлежит стрелке
		p.ctx.noAnonFunctionType = true
		ret, ok := p.parseTypeAnnotation()
		p.ctx.noAnonFunctionType = saved.noAnonFunctionType
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldReturnType, ret)
	}
	if !p.at(token.FatArrow) || p.tok.NewlineBefore {
		return ast.NoNodeID, false
	}
	p.advance()
	return id, true
}

// parseArrowBody дочитывает тело стрелки: блок или выражение.
func (p *Parser) parseArrowBody(id ast.NodeID) (ast.NodeID, bool) {
	async := p.tree.Node(id).Flags.Has(ast.FlagAsync)
	saved := p.ctx
	defer p.leaveCtx(saved)

	var body ast.NodeID
	var ok bool
	if p.at(token.LBrace) {
		p.ctx = parseCtx{inFunction: true, inAsync: async}
		body, ok = p.parseFunctionBody()
	} else {
		p.ctx.inFunction, p.ctx.inAsync, p.ctx.inGenerator = true, async, false
		body, ok = p.parseAssign()
	}
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldBody, body)
	return p.finish(id), true
}
