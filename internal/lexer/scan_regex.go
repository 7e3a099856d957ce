package lexer

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// RescanRegex re-reads a '/' or '/=' token as a regular expression literal.
// The parser calls it when a slash appears where an operand is expected.
func (lx *Lexer) RescanRegex(tok token.Token) token.Token {
	if tok.Kind != token.Slash && tok.Kind != token.SlashAssign {
		return tok
	}
	lx.resetTo(tok.Span.Start)
	start := lx.cursor.Mark()
	lx.cursor.Bump()

	inClass := false
	for {
		if lx.cursor.EOF() || lx.atNewline() {
			t := lx.emit(token.RegexLit, start)
			lx.errLex(diag.LexUnterminatedRegex, t.Span, "unterminated regular expression")
			t.Leading, t.NewlineBefore = tok.Leading, tok.NewlineBefore
			return t
		}
		b := lx.cursor.Bump()
		if b == '\\' {
			if !lx.atNewline() {
				lx.cursor.Bump()
			}
			continue
		}
		if b == '[' {
			inClass = true
		} else if b == ']' {
			inClass = false
		} else if b == '/' && !inClass {
			break
		}
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	t := lx.emit(token.RegexLit, start)
	t.Leading, t.NewlineBefore = tok.Leading, tok.NewlineBefore
	return t
}
