package lexer

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// NextJSXChild reads the next token between JSX tags: raw text, '{' or '<'.
// Whitespace belongs to the text, so no trivia is collected.
func (lx *Lexer) NextJSXChild() token.Token {
	lx.unread()
	start := lx.cursor.Mark()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}
	switch lx.cursor.Peek() {
	case '{':
		lx.cursor.Bump()
		return lx.emit(token.LBrace, start)
	case '<':
		lx.cursor.Bump()
		return lx.emit(token.Lt, start)
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '{' || b == '<' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.JSXText, start)
}

// NextJSXTag reads the next token inside a JSX tag. Names may contain '-'
// and are always returned as Ident, even when they spell a keyword.
// Attribute strings have no escapes and may span lines.
func (lx *Lexer) NextJSXTag() token.Token {
	lx.unread()
	before := lx.cursor.Off
	nl := lx.collectLeadingTrivia()
	start := lx.cursor.Mark()

	var tok token.Token
	switch b := lx.cursor.Peek(); {
	case lx.cursor.EOF():
		tok = token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	case isIdentStartByte(b) || b >= utf8RuneSelf:
		if !lx.bumpIdentStart() {
			tok = lx.scanUnknown(start)
			break
		}
		for {
			lx.scanIdentTail()
			if !lx.cursor.Eat('-') {
				break
			}
		}
		tok = lx.emit(token.Ident, start)
	case b == '"' || b == '\'':
		lx.cursor.Bump()
		for !lx.cursor.EOF() && lx.cursor.Peek() != b {
			lx.cursor.Bump()
		}
		if !lx.cursor.Eat(b) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated JSX attribute string")
		}
		tok = lx.emit(token.StringLit, start)
	default:
		kind, ok := jsxPunct[b]
		if !ok {
			lx.resetTo(before)
			return lx.Next()
		}
		lx.cursor.Bump()
		tok = lx.emit(kind, start)
	}
	tok.Leading = lx.takeHold()
	tok.NewlineBefore = nl
	return tok
}

var jsxPunct = map[byte]token.Kind{
	'<': token.Lt,
	'>': token.Gt,
	'/': token.Slash,
	'=': token.Assign,
	'{': token.LBrace,
	'}': token.RBrace,
	':': token.Colon,
	'.': token.Dot,
}

// unread drops the lookahead token so the cursor again points at its
// leading trivia.
func (lx *Lexer) unread() {
	if lx.look == nil {
		return
	}
	off := lx.look.Span.Start
	if len(lx.look.Leading) > 0 {
		off = lx.look.Leading[0].Span.Start
	}
	lx.resetTo(off)
}
