package lexer

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном
// и сообщает, был ли среди них перевод строки.
//   - ' ', '\t', '\v', '\f' и NBSP/BOM коалесцируются в один TriviaSpace
//   - '\n', '\r\n', '\r', LS, PS коалесцируются в один TriviaNewline
//   - //... и #!... в начале файла -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment; многострочный считается переводом строки
func (lx *Lexer) collectLeadingTrivia() bool {
	newline := false
	if lx.cursor.Off == 0 && lx.cursor.HasPrefix("#!") {
		start := lx.cursor.Mark()
		lx.skipToLineEnd()
		lx.pushTrivia(token.TriviaLineComment, start)
	}
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch {
		case lx.atSpace():
			for lx.atSpace() {
				lx.bumpSpace()
			}
			lx.pushTrivia(token.TriviaSpace, start)
		case lx.atNewline():
			for lx.atNewline() {
				lx.bumpNewline()
			}
			newline = true
			lx.pushTrivia(token.TriviaNewline, start)
		case lx.cursor.HasPrefix("//"):
			lx.skipToLineEnd()
			lx.pushTrivia(token.TriviaLineComment, start)
		case lx.cursor.HasPrefix("/*"):
			if lx.scanBlockComment() {
				newline = true
			}
			lx.pushTrivia(token.TriviaBlockComment, start)
		default:
			return newline
		}
	}
	return newline
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) skipToLineEnd() {
	for !lx.cursor.EOF() && !lx.atNewline() {
		lx.cursor.Bump()
	}
}

// scanBlockComment consumes /* ... */ and reports whether it spans lines.
func (lx *Lexer) scanBlockComment() bool {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(2)
	multiline := false
	for !lx.cursor.EOF() {
		if lx.cursor.HasPrefix("*/") {
			lx.cursor.BumpN(2)
			return multiline
		}
		if lx.atNewline() {
			multiline = true
		}
		lx.cursor.Bump()
	}
	lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	return multiline
}

func (lx *Lexer) atSpace() bool {
	switch lx.cursor.Peek() {
	case ' ', '\t', '\v', '\f':
		return true
	}
	return lx.cursor.HasPrefix("\u00a0") || lx.cursor.HasPrefix("\ufeff")
}

func (lx *Lexer) bumpSpace() {
	switch {
	case lx.cursor.HasPrefix("\u00a0"):
		lx.cursor.BumpN(2)
	case lx.cursor.HasPrefix("\ufeff"):
		lx.cursor.BumpN(3)
	default:
		lx.cursor.Bump()
	}
}

func (lx *Lexer) atNewline() bool {
	switch lx.cursor.Peek() {
	case '\n', '\r':
		return true
	}
	return lx.cursor.HasPrefix("\u2028") || lx.cursor.HasPrefix("\u2029")
}

func (lx *Lexer) bumpNewline() {
	switch {
	case lx.cursor.HasPrefix("\r\n"):
		lx.cursor.BumpN(2)
	case lx.cursor.Peek() == '\n' || lx.cursor.Peek() == '\r':
		lx.cursor.Bump()
	default:
		lx.cursor.BumpN(3)
	}
}
