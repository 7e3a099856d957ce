package parser

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// Аннотации Flow не интерпретируются: парсер только находит их границы
// и сворачивает в непрозрачные узлы TypeAnnotation / TypeParameters /
// FlowDeclaration, чтобы печать сохранила исходный текст.

// parseTypeAnnotation разбирает `: Type` (и `%checks` у возвращаемого типа).
func (p *Parser) parseTypeAnnotation() (ast.NodeID, bool) {
	id := p.node(ast.TypeAnnotation, p.tok.Span.Start)
	p.advance() // ':'
	if !p.atChecks() {
		if !p.skipType() {
			return ast.NoNodeID, false
		}
	}
	if p.atChecks() {
		p.advance()
		p.advance()
	}
	return p.finish(id), true
}

func (p *Parser) atChecks() bool {
	return p.at(token.Percent) && p.peek().Is("checks")
}

// parseTypeParameters разбирает <...> как непрозрачный узел.
func (p *Parser) parseTypeParameters() (ast.NodeID, bool) {
	id := p.node(ast.TypeParameters, p.tok.Span.Start)
	if !p.skipAngle() {
		return ast.NoNodeID, false
	}
	return p.finish(id), true
}

// skipType пропускает тип: объединения и пересечения префиксных типов.
func (p *Parser) skipType() bool {
	if !p.eat(token.Pipe) {
		p.eat(token.Amp)
	}
	for {
		if !p.skipPrefixType() {
			return false
		}
		if !p.eat(token.Pipe) && !p.eat(token.Amp) {
			return true
		}
	}
}

func (p *Parser) skipPrefixType() bool {
	if p.eat(token.Question) {
		return p.skipPrefixType()
	}
	if !p.skipPrimaryType() {
		return false
	}
	// T[] и T[K]
	for p.at(token.LBracket) && !p.tok.NewlineBefore {
		if !p.skipBalanced() {
			return false
		}
	}
	return true
}

func (p *Parser) skipPrimaryType() bool {
	switch {
	case p.at(token.LBrace), p.at(token.LBracket):
		return p.skipBalanced()
	case p.at(token.LParen):
		if !p.skipBalanced() {
			return false
		}
		return p.skipFunctionTypeTail()
	case p.at(token.Lt):
		// <T>(x: T) => T
		if !p.skipAngle() {
			return false
		}
		if !p.at(token.LParen) {
			p.err(diag.SynBadTypeAnnotation, "expected '(' after type parameters")
			return false
		}
		if !p.skipBalanced() {
			return false
		}
		return p.skipFunctionTypeTail()
	case p.at(token.KwTypeof):
		p.advance()
		return p.skipTypeName()
	case p.at(token.Minus) && p.peek().Kind == token.NumberLit:
		p.advance()
		p.advance()
		return true
	}
	switch p.tok.Kind {
	case token.StringLit, token.NumberLit, token.BigIntLit, token.KwTrue, token.KwFalse,
		token.KwNull, token.KwVoid, token.KwThis, token.Star:
		p.advance()
		return true
	}
	if p.tok.IsWord() {
		if !p.skipTypeName() {
			return false
		}
		if p.at(token.Lt) && !p.skipAngle() {
			return false
		}
		// string => void: функциональный тип без скобок
		return p.skipFunctionTypeTail()
	}
	p.err(diag.SynBadTypeAnnotation, "expected type, found "+describe(p.tok))
	return false
}

// skipTypeName пропускает A.B.C.
func (p *Parser) skipTypeName() bool {
	if !p.tok.IsWord() {
		p.err(diag.SynBadTypeAnnotation, "expected type name, found "+describe(p.tok))
		return false
	}
	p.advance()
	for p.at(token.Dot) {
		p.advance()
		if !p.tok.IsWord() {
			p.err(diag.SynBadTypeAnnotation, "expected type name after '.'")
			return false
		}
		p.advance()
	}
	return true
}

func (p *Parser) skipFunctionTypeTail() bool {
	if !p.at(token.FatArrow) || p.ctx.noAnonFunctionType {
		return true
	}
	p.advance()
	return p.skipType()
}

// skipAngle пропускает <...> с учётом вложенности. '>>' и '>>>'
// разрезаются на отдельные '>'.
func (p *Parser) skipAngle() bool {
	open := p.advance()
	depth := 1
	for depth > 0 {
		switch p.tok.Kind {
		case token.EOF, token.Semicolon, token.RParen, token.RBrace, token.RBracket:
			p.errAt(diag.SynBadTypeAnnotation, open.Span, "unclosed '<' in type")
			return false
		case token.Lt:
			depth++
			p.advance()
		case token.LParen, token.LBrace, token.LBracket:
			if !p.skipBalanced() {
				return false
			}
		case token.Gt, token.Shr, token.UShr, token.GtEq, token.ShrAssign, token.UShrAssign:
			p.tok = p.lx.SplitGt(p.tok)
			depth--
			p.advance()
		default:
			p.advance()
		}
	}
	return true
}

// skipBalanced пропускает группу от открывающей скобки до парной закрывающей.
func (p *Parser) skipBalanced() bool {
	open := p.tok
	depth := 0
	for {
		switch p.tok.Kind {
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			depth--
		case token.EOF:
			p.errAt(unclosedCode(open.Kind), open.Span, "unclosed '"+open.Text+"'")
			return false
		}
		p.advance()
		if depth == 0 {
			return true
		}
	}
}

func unclosedCode(k token.Kind) diag.Code {
	switch k {
	case token.LParen:
		return diag.SynUnclosedParen
	case token.LBracket:
		return diag.SynUnclosedBracket
	}
	return diag.SynUnclosedBrace
}

// ===== объявления Flow =====

// atFlowDeclaration распознаёт type, opaque type, interface, declare и enum
// в позиции оператора.
func (p *Parser) atFlowDeclaration() bool {
	if !p.at(token.Ident) {
		return false
	}
	next := p.peek()
	switch p.tok.Text {
	case "type", "interface", "enum":
		return next.IsIdent()
	case "opaque":
		return next.Is("type")
	case "declare":
		if next.NewlineBefore {
			return false
		}
		switch next.Kind {
		case token.Ident, token.KwVar, token.KwConst, token.KwFunction, token.KwClass, token.KwExport:
			return true
		}
	}
	return false
}

// parseFlowDeclaration сворачивает объявление Flow в один непрозрачный
// оператор от start до его конца.
func (p *Parser) parseFlowDeclaration(start uint32) (ast.NodeID, bool) {
	id := p.node(ast.FlowDeclaration, start)
	p.skipFlowStatement()
	return p.finish(id), true
}

// skipFlowStatement пропускает токены до конца объявления: ';' на нулевой
// глубине, закрывающая скобка объемлющего блока или перевод строки после
// того, как тело объявления уже началось и не продолжается оператором.
func (p *Parser) skipFlowStatement() {
	depth := 0
	body := false
	last := token.Invalid
	for !p.at(token.EOF) {
		if depth == 0 {
			switch {
			case p.at(token.Semicolon):
				p.advance()
				return
			case p.at(token.RBrace) || p.at(token.RParen) || p.at(token.RBracket):
				return
			case p.tok.NewlineBefore && body && !typeContinues(last, p.tok.Kind):
				return
			}
		}
		switch p.tok.Kind {
		case token.LParen, token.LBrace, token.LBracket, token.Lt:
			depth++
		case token.RParen, token.RBrace, token.RBracket, token.Gt:
			depth--
		case token.Shr:
			depth -= 2
		case token.UShr:
			depth -= 3
		case token.Assign, token.Colon:
			if depth == 0 {
				body = true
			}
		}
		depth = max(depth, 0)
		if depth == 0 && (p.at(token.RBrace) || p.at(token.RParen)) {
			body = true
		}
		last = p.tok.Kind
		p.advance()
	}
}

// typeContinues: перевод строки между last и next не завершает объявление.
func typeContinues(last, next token.Kind) bool {
	switch last {
	case token.Assign, token.Pipe, token.Amp, token.Colon, token.Comma, token.FatArrow,
		token.Question, token.Dot, token.Lt:
		return true
	}
	switch next {
	case token.Pipe, token.Amp, token.FatArrow, token.Dot, token.Lt, token.Question,
		token.Assign, token.Colon, token.LBracket:
		return true
	}
	return false
}
