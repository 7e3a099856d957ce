package parser

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// enterBrackets сбрасывает флаги, действующие только до ближайшей скобки,
// и возвращает прежний контекст для leaveCtx.
func (p *Parser) enterBrackets() parseCtx {
	saved := p.ctx
	p.ctx.noIn = false
	p.ctx.noArrowReturnType = false
	p.ctx.noAnonFunctionType = false
	return saved
}

func (p *Parser) leaveCtx(saved parseCtx) {
	p.ctx = saved
}

// parseExpression разбирает Expression: присваивания через запятую.
func (p *Parser) parseExpression() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	first, ok := p.parseAssign()
	if !ok {
		return ast.NoNodeID, false
	}
	if !p.at(token.Comma) {
		return first, true
	}
	seq := p.node(ast.SequenceExpression, start)
	p.link(seq, ast.FieldExpressions, first)
	for p.eat(token.Comma) {
		expr, ok := p.parseAssign()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(seq, ast.FieldExpressions, expr)
	}
	return p.finish(seq), true
}

// parseAssign разбирает AssignmentExpression, включая стрелки и yield.
func (p *Parser) parseAssign() (ast.NodeID, bool) {
	if p.ctx.inGenerator && p.atWord("yield") {
		return p.parseYield()
	}
	if id, ok, handled := p.tryArrow(); handled {
		return id, ok
	}

	start := p.tok.Span.Start
	left, ok := p.parseConditional()
	if !ok {
		return ast.NoNodeID, false
	}
	if !p.tok.Kind.IsAssign() {
		return left, true
	}

	op := p.tok.Kind
	if op == token.Assign {
		if !p.toPattern(left) {
			return ast.NoNodeID, false
		}
	} else if !p.isSimpleTarget(left) {
		p.errAt(diag.SynInvalidAssignment, p.tree.Node(left).Span, "invalid left-hand side in assignment")
		return ast.NoNodeID, false
	}
	p.advance()
	right, ok := p.parseAssign()
	if !ok {
		return ast.NoNodeID, false
	}
	id := p.node(ast.AssignmentExpression, start)
	p.tree.Node(id).Op = op
	p.link(id, ast.FieldLeft, left)
	p.link(id, ast.FieldRight, right)
	return p.finish(id), true
}

func (p *Parser) parseYield() (ast.NodeID, bool) {
	id := p.node(ast.YieldExpression, p.tok.Span.Start)
	p.advance()
	if p.tok.NewlineBefore {
		return p.finish(id), true
	}
	if p.eat(token.Star) {
		p.tree.Node(id).Flags |= ast.FlagDelegate
	} else {
		switch p.tok.Kind {
		case token.RParen, token.RBracket, token.RBrace, token.Comma, token.Semicolon,
			token.Colon, token.EOF:
			return p.finish(id), true
		}
	}
	arg, ok := p.parseAssign()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldArgument, arg)
	return p.finish(id), true
}

func (p *Parser) parseConditional() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	test, ok := p.parseBinary(0)
	if !ok || !p.at(token.Question) {
		return test, ok
	}
	p.advance()

	id := p.node(ast.ConditionalExpression, start)
	p.link(id, ast.FieldTest, test)

	saved := p.ctx
	p.ctx.noIn = false
	p.ctx.noArrowReturnType = true
	cons, ok := p.parseAssign()
	p.leaveCtx(saved)
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldConsequent, cons)

	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression"); !ok {
		return ast.NoNodeID, false
	}
	alt, ok := p.parseAssign()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldAlternate, alt)
	return p.finish(id), true
}

// parseBinary: разбор бинарных операторов методом восхождения по приоритетам.
// Принимаются только операторы с приоритетом строго больше minPrec.
func (p *Parser) parseBinary(minPrec int) (ast.NodeID, bool) {
	start := p.tok.Span.Start
	left, ok := p.parseUnary()
	if !ok {
		return ast.NoNodeID, false
	}
	for {
		prec, rightAssoc := p.getBinaryOperatorPrec(p.tok.Kind)
		if prec == 0 || prec <= minPrec {
			return left, true
		}
		op := p.advance().Kind
		next := prec
		if rightAssoc {
			next = prec - 1
		}
		right, ok := p.parseBinary(next)
		if !ok {
			return ast.NoNodeID, false
		}
		id := p.node(binaryKind(op), start)
		p.tree.Node(id).Op = op
		p.link(id, ast.FieldLeft, left)
		p.link(id, ast.FieldRight, right)
		left = p.finish(id)
	}
}

func (p *Parser) parseUnary() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	switch {
	case isUnaryOp(p.tok.Kind):
		op := p.advance().Kind
		arg, ok := p.parseUnary()
		if !ok {
			return ast.NoNodeID, false
		}
		id := p.node(ast.UnaryExpression, start)
		n := p.tree.Node(id)
		n.Op, n.Flags = op, ast.FlagPrefix
		p.link(id, ast.FieldArgument, arg)
		return p.finish(id), true

	case p.at(token.PlusPlus) || p.at(token.MinusMinus):
		op := p.advance().Kind
		arg, ok := p.parseUnary()
		if !ok {
			return ast.NoNodeID, false
		}
		if !p.isSimpleTarget(arg) {
			p.errAt(diag.SynInvalidAssignment, p.tree.Node(arg).Span, "invalid operand of "+op.String())
			return ast.NoNodeID, false
		}
		id := p.node(ast.UpdateExpression, start)
		n := p.tree.Node(id)
		n.Op, n.Flags = op, ast.FlagPrefix
		p.link(id, ast.FieldArgument, arg)
		return p.finish(id), true

	case p.atAwait():
		p.advance()
		arg, ok := p.parseUnary()
		if !ok {
			return ast.NoNodeID, false
		}
		id := p.node(ast.AwaitExpression, start)
		p.link(id, ast.FieldArgument, arg)
		return p.finish(id), true
	}
	return p.parsePostfix()
}

// atAwait: внутри async-функций await всегда оператор; на верхнем уровне
// модуля: только если за ним на той же строке идёт операнд.
func (p *Parser) atAwait() bool {
	if !p.atWord("await") {
		return false
	}
	if p.ctx.inAsync {
		return true
	}
	if p.ctx.inFunction {
		return false
	}
	next := p.peek()
	if next.NewlineBefore {
		return false
	}
	switch next.Kind {
	case token.Ident, token.KwThis, token.KwNew, token.LParen, token.LBracket,
		token.NumberLit, token.StringLit, token.TemplateFull, token.TemplateHead:
		return true
	}
	return false
}

func (p *Parser) parsePostfix() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	expr, ok := p.parseLHS()
	if !ok {
		return ast.NoNodeID, false
	}
	if (p.at(token.PlusPlus) || p.at(token.MinusMinus)) && !p.tok.NewlineBefore {
		if !p.isSimpleTarget(expr) {
			p.errAt(diag.SynInvalidAssignment, p.tree.Node(expr).Span, "invalid operand of "+p.tok.Text)
			return ast.NoNodeID, false
		}
		id := p.node(ast.UpdateExpression, start)
		p.tree.Node(id).Op = p.advance().Kind
		p.link(id, ast.FieldArgument, expr)
		return p.finish(id), true
	}
	return expr, true
}

func (p *Parser) parseLHS() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	var expr ast.NodeID
	var ok bool
	if p.at(token.KwNew) {
		expr, ok = p.parseNew()
	} else {
		expr, ok = p.parsePrimary()
	}
	if !ok {
		return ast.NoNodeID, false
	}
	return p.parseCallTail(start, expr, false)
}

func (p *Parser) parseNew() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	newTok := p.advance()

	if p.at(token.Dot) {
		// new.target
		id := p.node(ast.MetaProperty, start)
		meta := p.node(ast.Identifier, start)
		p.tree.Node(meta).Text = newTok.Text
		p.tree.Node(meta).Span.End = newTok.Span.End
		p.link(id, ast.FieldMeta, meta)
		p.advance()
		if !p.at(token.Ident) {
			p.unexpected("after 'new.'")
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldProperty, p.leaf(ast.Identifier))
		return p.finish(id), true
	}

	calleeStart := p.tok.Span.Start
	var callee ast.NodeID
	var ok bool
	if p.at(token.KwNew) {
		callee, ok = p.parseNew()
	} else {
		callee, ok = p.parsePrimary()
	}
	if !ok {
		return ast.NoNodeID, false
	}
	if callee, ok = p.parseCallTail(calleeStart, callee, true); !ok {
		return ast.NoNodeID, false
	}

	id := p.node(ast.NewExpression, start)
	p.link(id, ast.FieldCallee, callee)
	if p.at(token.Lt) {
		if targs, ok := p.try(p.parseTypeArgumentsBeforeCall); ok {
			p.link(id, ast.FieldTypeArguments, targs)
		}
	}
	if p.at(token.LParen) {
		if !p.parseArguments(id) {
			return ast.NoNodeID, false
		}
	}
	return p.finish(id), true
}

// parseCallTail разбирает цепочку .x, ?.x, [x], (args) и шаблонные теги.
// noCall запрещает вызовы: callee выражения new.
func (p *Parser) parseCallTail(start uint32, expr ast.NodeID, noCall bool) (ast.NodeID, bool) {
	for {
		switch {
		case p.at(token.Dot):
			p.advance()
			prop, ok := p.parseMemberName()
			if !ok {
				return ast.NoNodeID, false
			}
			expr = p.member(start, expr, prop, 0)

		case p.at(token.QuestionDot) && !noCall:
			p.advance()
			switch {
			case p.at(token.LParen):
				id := p.node(ast.CallExpression, start)
				p.tree.Node(id).Flags |= ast.FlagOptional
				p.link(id, ast.FieldCallee, expr)
				if !p.parseArguments(id) {
					return ast.NoNodeID, false
				}
				expr = p.finish(id)
			case p.at(token.LBracket):
				prop, ok := p.parseComputedMember()
				if !ok {
					return ast.NoNodeID, false
				}
				expr = p.member(start, expr, prop, ast.FlagOptional|ast.FlagComputed)
			default:
				prop, ok := p.parseMemberName()
				if !ok {
					return ast.NoNodeID, false
				}
				expr = p.member(start, expr, prop, ast.FlagOptional)
			}

		case p.at(token.LBracket):
			prop, ok := p.parseComputedMember()
			if !ok {
				return ast.NoNodeID, false
			}
			expr = p.member(start, expr, prop, ast.FlagComputed)

		case p.at(token.LParen) && !noCall:
			id := p.node(ast.CallExpression, start)
			p.link(id, ast.FieldCallee, expr)
			if !p.parseArguments(id) {
				return ast.NoNodeID, false
			}
			expr = p.finish(id)

		case p.at(token.Lt) && !noCall:
			// f<T>(x): аргументы типов перед вызовом, иначе это сравнение
			targs, ok := p.try(p.parseTypeArgumentsBeforeCall)
			if !ok {
				return expr, true
			}
			id := p.node(ast.CallExpression, start)
			p.link(id, ast.FieldCallee, expr)
			p.link(id, ast.FieldTypeArguments, targs)
			if !p.parseArguments(id) {
				return ast.NoNodeID, false
			}
			expr = p.finish(id)

		case p.at(token.TemplateFull) || p.at(token.TemplateHead):
			id := p.node(ast.TaggedTemplateExpression, start)
			p.link(id, ast.FieldTag, expr)
			quasi, ok := p.parseTemplate()
			if !ok {
				return ast.NoNodeID, false
			}
			p.link(id, ast.FieldQuasi, quasi)
			expr = p.finish(id)

		default:
			return expr, true
		}
	}
}

func (p *Parser) member(start uint32, object, prop ast.NodeID, flags ast.Flags) ast.NodeID {
	id := p.node(ast.MemberExpression, start)
	p.tree.Node(id).Flags |= flags
	p.link(id, ast.FieldObject, object)
	p.link(id, ast.FieldProperty, prop)
	return p.finish(id)
}

// parseMemberName разбирает имя свойства после '.' или '?.'.
func (p *Parser) parseMemberName() (ast.NodeID, bool) {
	switch {
	case p.at(token.PrivateName):
		return p.leaf(ast.PrivateName), true
	case p.tok.IsWord():
		return p.leaf(ast.Identifier), true
	}
	p.unexpected("after '.'")
	return ast.NoNodeID, false
}

func (p *Parser) parseComputedMember() (ast.NodeID, bool) {
	p.advance() // '['
	saved := p.enterBrackets()
	defer p.leaveCtx(saved)
	prop, ok := p.parseExpression()
	if !ok {
		return ast.NoNodeID, false
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
		return ast.NoNodeID, false
	}
	return prop, true
}

// parseTypeArgumentsBeforeCall разбирает <T> и требует за ним '('.
func (p *Parser) parseTypeArgumentsBeforeCall() (ast.NodeID, bool) {
	targs, ok := p.parseTypeParameters()
	if !ok || !p.at(token.LParen) {
		return ast.NoNodeID, false
	}
	return targs, true
}

// parseArguments разбирает (a, ...b) в список arguments узла owner.
func (p *Parser) parseArguments(owner ast.NodeID) bool {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	if !ok {
		return false
	}
	saved := p.enterBrackets()
	defer p.leaveCtx(saved)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, ok := p.parseSpreadOrAssign()
		if !ok {
			return false
		}
		p.link(owner, ast.FieldArguments, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.at(token.RParen) {
		p.errAt(diag.SynUnclosedParen, open.Span, "unclosed '(' in argument list")
		return false
	}
	p.advance()
	return true
}

func (p *Parser) parseSpreadOrAssign() (ast.NodeID, bool) {
	if !p.at(token.DotDotDot) {
		return p.parseAssign()
	}
	id := p.node(ast.SpreadElement, p.tok.Span.Start)
	p.advance()
	arg, ok := p.parseAssign()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldArgument, arg)
	return p.finish(id), true
}

func (p *Parser) parsePrimary() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.KwThis:
		return p.leaf(ast.ThisExpression), true
	case token.KwSuper:
		return p.leaf(ast.Super), true
	case token.KwImport:
		if p.peek().Kind == token.Dot {
			id := p.node(ast.MetaProperty, start)
			p.link(id, ast.FieldMeta, p.leaf(ast.Identifier))
			p.advance()
			if !p.at(token.Ident) {
				p.unexpected("after 'import.'")
				return ast.NoNodeID, false
			}
			p.link(id, ast.FieldProperty, p.leaf(ast.Identifier))
			return p.finish(id), true
		}
		return p.leaf(ast.Import), true
	case token.Ident:
		if p.atAsyncFunction() {
			p.advance()
			return p.parseFunction(start, true, false)
		}
		return p.leaf(ast.Identifier), true
	case token.PrivateName:
		// #x in obj
		if p.peek().Kind == token.KwIn {
			return p.leaf(ast.PrivateName), true
		}
	case token.NumberLit:
		return p.leaf(ast.NumericLiteral), true
	case token.BigIntLit:
		return p.leaf(ast.BigIntLiteral), true
	case token.StringLit:
		return p.leaf(ast.StringLiteral), true
	case token.KwNull:
		return p.leaf(ast.NullLiteral), true
	case token.KwTrue, token.KwFalse:
		return p.leaf(ast.BooleanLiteral), true
	case token.TemplateFull, token.TemplateHead:
		return p.parseTemplate()
	case token.Slash, token.SlashAssign:
		p.tok = p.lx.RescanRegex(p.tok)
		return p.leaf(ast.RegExpLiteral), true
	case token.LParen:
		return p.parseParenExpr()
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	case token.KwFunction:
		return p.parseFunction(start, false, false)
	case token.KwClass:
		return p.parseClass(start, nil, false)
	case token.At:
		return p.parseDecoratedClass(false)
	case token.Lt:
		return p.parseJSXElement(jsxAfterExpr)
	}
	p.unexpected("in expression")
	return ast.NoNodeID, false
}

// parseParenExpr разбирает ( expr ) и приведение типа (expr: T).
// Скобки в дереве не сохраняются.
func (p *Parser) parseParenExpr() (ast.NodeID, bool) {
	open := p.advance()
	saved := p.enterBrackets()
	defer p.leaveCtx(saved)

	expr, ok := p.parseExpression()
	if !ok {
		return ast.NoNodeID, false
	}
	if p.at(token.Colon) {
		ann, ok := p.parseTypeAnnotation()
		if !ok {
			return ast.NoNodeID, false
		}
		cast := p.node(ast.TypeCastExpression, p.startOf(expr))
		p.link(cast, ast.FieldExpression, expr)
		p.link(cast, ast.FieldTypeAnnotation, ann)
		expr = p.finish(cast)
	}
	if !p.at(token.RParen) {
		p.errAt(diag.SynUnclosedParen, open.Span, "unclosed '('")
		return ast.NoNodeID, false
	}
	p.advance()
	return expr, true
}

// isSimpleTarget: цель составного присваивания и ++/--.
func (p *Parser) isSimpleTarget(id ast.NodeID) bool {
	switch p.tree.Kind(id) {
	case ast.Identifier:
		return true
	case ast.MemberExpression:
		return !p.tree.Node(id).Flags.Has(ast.FlagOptional)
	}
	return false
}
