package lexer

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// scanString читает '...' или "..." вместе с кавычками. Escape-последовательности
// не декодируются: Text хранит исходный текст литерала.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' || lx.cursor.Peek() == '\r' {
			tok := lx.emit(token.StringLit, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
			return tok
		}
		switch lx.cursor.Bump() {
		case '\\':
			if lx.cursor.HasPrefix("\r\n") {
				lx.cursor.Bump()
			}
			lx.cursor.Bump()
		case quote:
			return lx.emit(token.StringLit, start)
		}
	}
}

// scanTemplate читает фрагмент шаблонной строки. Для head=true курсор стоит
// на '`', иначе на '}' закрывающем подстановку.
func (lx *Lexer) scanTemplate(head bool) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		switch {
		case lx.cursor.Peek() == '`':
			lx.cursor.Bump()
			if head {
				return lx.emit(token.TemplateFull, start)
			}
			return lx.emit(token.TemplateTail, start)
		case lx.cursor.HasPrefix("${"):
			lx.cursor.BumpN(2)
			if head {
				return lx.emit(token.TemplateHead, start)
			}
			return lx.emit(token.TemplateMiddle, start)
		case lx.cursor.Peek() == '\\':
			lx.cursor.BumpN(2)
		default:
			lx.cursor.Bump()
		}
	}
	kind := token.TemplateTail
	if head {
		kind = token.TemplateFull
	}
	tok := lx.emit(kind, start)
	lx.errLex(diag.LexUnterminatedTemplate, tok.Span, "unterminated template literal")
	return tok
}

// RescanTemplate re-reads a '}' token as the continuation of a template
// literal. The parser calls it after the substitution expression.
func (lx *Lexer) RescanTemplate(tok token.Token) token.Token {
	if tok.Kind != token.RBrace {
		return tok
	}
	lx.resetTo(tok.Span.Start)
	t := lx.scanTemplate(false)
	t.Leading = tok.Leading
	t.NewlineBefore = tok.NewlineBefore
	return t
}
