package parser

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// parseStatementListItem: оператор или объявление на уровне списка.
func (p *Parser) parseStatementListItem() (ast.NodeID, bool) {
	switch p.tok.Kind {
	case token.KwFunction:
		return p.parseFunction(p.tok.Span.Start, false, true)
	case token.KwClass:
		return p.parseClass(p.tok.Span.Start, nil, true)
	case token.At:
		return p.parseDecoratedClass(true)
	case token.KwConst:
		return p.parseVarStatement()
	case token.KwImport:
		if next := p.peek(); next.Kind != token.LParen && next.Kind != token.Dot {
			return p.parseImport()
		}
	case token.KwExport:
		return p.parseExport()
	case token.Ident:
		switch {
		case p.atLetDeclaration():
			return p.parseVarStatement()
		case p.atAsyncFunction():
			start := p.tok.Span.Start
			p.advance()
			return p.parseFunction(start, true, true)
		case p.atFlowDeclaration():
			return p.parseFlowDeclaration(p.tok.Span.Start)
		}
	}
	return p.parseStatement()
}

// parseStatement: оператор (без объявлений let/const/class на уровне списка).
func (p *Parser) parseStatement() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		id := p.node(ast.EmptyStatement, start)
		p.advance()
		return p.finish(id), true
	case token.KwVar:
		return p.parseVarStatement()
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwReturn:
		return p.parseJump(ast.ReturnStatement)
	case token.KwThrow:
		return p.parseJump(ast.ThrowStatement)
	case token.KwBreak:
		return p.parseBreakContinue(ast.BreakStatement)
	case token.KwContinue:
		return p.parseBreakContinue(ast.ContinueStatement)
	case token.KwTry:
		return p.parseTry()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwWith:
		return p.parseWith()
	case token.KwDebugger:
		id := p.node(ast.DebuggerStatement, start)
		p.advance()
		p.consumeSemicolon()
		return p.finish(id), true
	case token.KwFunction:
		// function в позиции оператора (if (x) function f() {})
		return p.parseFunction(start, false, true)
	case token.Ident:
		if p.peek().Kind == token.Colon {
			return p.parseLabeled()
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	expr, ok := p.parseExpression()
	if !ok {
		return ast.NoNodeID, false
	}
	id := p.node(ast.ExpressionStatement, start)
	p.link(id, ast.FieldExpression, expr)
	if !p.consumeSemicolon() {
		return ast.NoNodeID, false
	}
	return p.finish(id), true
}

// parseBlock разбирает { ... }.
func (p *Parser) parseBlock() (ast.NodeID, bool) {
	return p.parseBlockWith(false)
}

// parseFunctionBody: блок тела функции с прологом директив.
func (p *Parser) parseFunctionBody() (ast.NodeID, bool) {
	return p.parseBlockWith(true)
}

func (p *Parser) parseBlockWith(directives bool) (ast.NodeID, bool) {
	id := p.node(ast.BlockStatement, p.tok.Span.Start)
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'"); !ok {
		return ast.NoNodeID, false
	}
	p.parseStatementList(id, ast.FieldBody, token.RBrace, directives)
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block"); !ok {
		return ast.NoNodeID, false
	}
	return p.finish(id), true
}

func (p *Parser) parseIf() (ast.NodeID, bool) {
	id := p.node(ast.IfStatement, p.tok.Span.Start)
	p.advance()
	test, ok := p.parseParenExpression()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldTest, test)
	cons, ok := p.parseStatement()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldConsequent, cons)
	if p.eat(token.KwElse) {
		alt, ok := p.parseStatement()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldAlternate, alt)
	}
	return p.finish(id), true
}

// parseParenExpression разбирает ( expr ) в заголовках if/while/switch.
func (p *Parser) parseParenExpression() (ast.NodeID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return ast.NoNodeID, false
	}
	expr, ok := p.parseExpression()
	if !ok {
		return ast.NoNodeID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return ast.NoNodeID, false
	}
	return expr, true
}

func (p *Parser) parseWhile() (ast.NodeID, bool) {
	id := p.node(ast.WhileStatement, p.tok.Span.Start)
	p.advance()
	test, ok := p.parseParenExpression()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldTest, test)
	body, ok := p.parseStatement()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldBody, body)
	return p.finish(id), true
}

func (p *Parser) parseDoWhile() (ast.NodeID, bool) {
	id := p.node(ast.DoWhileStatement, p.tok.Span.Start)
	p.advance()
	body, ok := p.parseStatement()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldBody, body)
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body"); !ok {
		return ast.NoNodeID, false
	}
	test, ok := p.parseParenExpression()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldTest, test)
	p.eat(token.Semicolon) // после do-while ';' всегда необязательна
	return p.finish(id), true
}

// parseFor разбирает for (;;), for-in, for-of и for await.
func (p *Parser) parseFor() (ast.NodeID, bool) {
	start := p.tok.Span.Start
	p.advance()
	var flags ast.Flags
	if p.atWord("await") {
		flags |= ast.FlagAsync
		p.advance()
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after for"); !ok {
		return ast.NoNodeID, false
	}

	init := ast.NoNodeID
	if !p.at(token.Semicolon) {
		saved := p.ctx
		p.ctx.noIn = true
		var ok bool
		if p.at(token.KwVar) || p.at(token.KwConst) || p.atLetDeclaration() {
			init, ok = p.parseVarDeclaration(p.tok.Span.Start)
		} else {
			init, ok = p.parseExpression()
		}
		p.ctx = saved
		if !ok {
			return ast.NoNodeID, false
		}
	}

	if p.at(token.KwIn) || p.atWord("of") {
		kind := ast.ForInStatement
		if p.atWord("of") {
			kind = ast.ForOfStatement
		}
		p.advance()
		if !p.tree.Is(init, ast.VariableDeclaration) {
			if !p.toPattern(init) {
				return ast.NoNodeID, false
			}
		}
		id := p.node(kind, start)
		p.tree.Node(id).Flags |= flags
		p.link(id, ast.FieldLeft, init)
		var right ast.NodeID
		var ok bool
		if kind == ast.ForOfStatement {
			right, ok = p.parseAssign()
		} else {
			right, ok = p.parseExpression()
		}
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldRight, right)
		return p.finishLoop(id)
	}

	id := p.node(ast.ForStatement, start)
	p.link(id, ast.FieldInit, init)
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for header"); !ok {
		return ast.NoNodeID, false
	}
	if !p.at(token.Semicolon) {
		test, ok := p.parseExpression()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldTest, test)
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for header"); !ok {
		return ast.NoNodeID, false
	}
	if !p.at(token.RParen) {
		update, ok := p.parseExpression()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldUpdate, update)
	}
	return p.finishLoop(id)
}

func (p *Parser) finishLoop(id ast.NodeID) (ast.NodeID, bool) {
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after for header"); !ok {
		return ast.NoNodeID, false
	}
	body, ok := p.parseStatement()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldBody, body)
	return p.finish(id), true
}

// parseJump разбирает return/throw с учётом запрета перевода строки.
func (p *Parser) parseJump(kind ast.Kind) (ast.NodeID, bool) {
	id := p.node(kind, p.tok.Span.Start)
	p.advance()
	if !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.at(token.EOF) && !p.tok.NewlineBefore {
		arg, ok := p.parseExpression()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldArgument, arg)
	} else if kind == ast.ThrowStatement {
		p.err(diag.SynUnexpectedToken, "expected expression after throw")
		return ast.NoNodeID, false
	}
	if !p.consumeSemicolon() {
		return ast.NoNodeID, false
	}
	return p.finish(id), true
}

func (p *Parser) parseBreakContinue(kind ast.Kind) (ast.NodeID, bool) {
	id := p.node(kind, p.tok.Span.Start)
	p.advance()
	if p.at(token.Ident) && !p.tok.NewlineBefore {
		p.link(id, ast.FieldLabel, p.leaf(ast.Identifier))
	}
	if !p.consumeSemicolon() {
		return ast.NoNodeID, false
	}
	return p.finish(id), true
}

func (p *Parser) parseLabeled() (ast.NodeID, bool) {
	id := p.node(ast.LabeledStatement, p.tok.Span.Start)
	p.link(id, ast.FieldLabel, p.leaf(ast.Identifier))
	p.advance() // ':'
	var body ast.NodeID
	var ok bool
	if p.at(token.KwFunction) {
		body, ok = p.parseFunction(p.tok.Span.Start, false, true)
	} else {
		body, ok = p.parseStatement()
	}
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldBody, body)
	return p.finish(id), true
}

func (p *Parser) parseTry() (ast.NodeID, bool) {
	id := p.node(ast.TryStatement, p.tok.Span.Start)
	p.advance()
	block, ok := p.parseBlock()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldBlock, block)

	if p.at(token.KwCatch) {
		handler := p.node(ast.CatchClause, p.tok.Span.Start)
		p.advance()
		if p.eat(token.LParen) {
			param, ok := p.parseBindingElement(false)
			if !ok {
				return ast.NoNodeID, false
			}
			p.link(handler, ast.FieldParam, param)
			if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after catch parameter"); !ok {
				return ast.NoNodeID, false
			}
		}
		body, ok := p.parseBlock()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(handler, ast.FieldBody, body)
		p.link(id, ast.FieldHandler, p.finish(handler))
	}
	if p.eat(token.KwFinally) {
		fin, ok := p.parseBlock()
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(id, ast.FieldFinalizer, fin)
	}
	if !p.tree.Child(id, ast.FieldHandler).IsValid() && !p.tree.Child(id, ast.FieldFinalizer).IsValid() {
		p.err(diag.SynUnexpectedToken, "expected catch or finally after try block")
		return ast.NoNodeID, false
	}
	return p.finish(id), true
}

func (p *Parser) parseSwitch() (ast.NodeID, bool) {
	id := p.node(ast.SwitchStatement, p.tok.Span.Start)
	p.advance()
	disc, ok := p.parseParenExpression()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldDiscriminant, disc)
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after switch"); !ok {
		return ast.NoNodeID, false
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		c := p.node(ast.SwitchCase, p.tok.Span.Start)
		switch {
		case p.eat(token.KwCase):
			test, ok := p.parseExpression()
			if !ok {
				return ast.NoNodeID, false
			}
			p.link(c, ast.FieldTest, test)
		case p.eat(token.KwDefault):
		default:
			p.unexpected("in switch body")
			return ast.NoNodeID, false
		}
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after case"); !ok {
			return ast.NoNodeID, false
		}
		for !p.at(token.KwCase) && !p.at(token.KwDefault) && !p.at(token.RBrace) && !p.at(token.EOF) {
			start := p.tok.Span.Start
			stmt, ok := p.parseStatementListItem()
			if !ok {
				p.resync(start)
				continue
			}
			p.link(c, ast.FieldConsequent, stmt)
		}
		p.link(id, ast.FieldCases, p.finish(c))
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close switch"); !ok {
		return ast.NoNodeID, false
	}
	return p.finish(id), true
}

func (p *Parser) parseWith() (ast.NodeID, bool) {
	id := p.node(ast.WithStatement, p.tok.Span.Start)
	p.advance()
	obj, ok := p.parseParenExpression()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldObject, obj)
	body, ok := p.parseStatement()
	if !ok {
		return ast.NoNodeID, false
	}
	p.link(id, ast.FieldBody, body)
	return p.finish(id), true
}

// ===== объявления переменных =====

// atLetDeclaration отличает `let x` от использования let как имени.
func (p *Parser) atLetDeclaration() bool {
	if !p.atWord("let") {
		return false
	}
	switch next := p.peek(); next.Kind {
	case token.LBracket, token.LBrace:
		return true
	case token.Ident:
		return true
	default:
		return next.Kind.IsKeyword() && next.Kind != token.KwIn && next.Kind != token.KwInstanceof
	}
}

func (p *Parser) atAsyncFunction() bool {
	if !p.atWord("async") {
		return false
	}
	next := p.peek()
	return next.Kind == token.KwFunction && !next.NewlineBefore
}

func (p *Parser) parseVarStatement() (ast.NodeID, bool) {
	id, ok := p.parseVarDeclaration(p.tok.Span.Start)
	if !ok {
		return ast.NoNodeID, false
	}
	if !p.consumeSemicolon() {
		return ast.NoNodeID, false
	}
	return p.finish(id), true
}

// parseVarDeclaration разбирает `var|let|const a = 1, b` без ';'.
func (p *Parser) parseVarDeclaration(start uint32) (ast.NodeID, bool) {
	id := p.node(ast.VariableDeclaration, start)
	p.tree.Node(id).Text = p.advance().Text
	for {
		decl := p.node(ast.VariableDeclarator, p.tok.Span.Start)
		target, ok := p.parseBindingTarget(true)
		if !ok {
			return ast.NoNodeID, false
		}
		p.link(decl, ast.FieldID, target)
		if p.eat(token.Assign) {
			init, ok := p.parseAssign()
			if !ok {
				return ast.NoNodeID, false
			}
			p.link(decl, ast.FieldInit, init)
		}
		p.link(id, ast.FieldDeclarations, p.finish(decl))
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.finish(id), true
}
