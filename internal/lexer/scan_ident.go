package lexer

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// scanIdent читает идентификатор или ключевое слово.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	if !lx.bumpIdentStart() {
		return lx.scanUnknown(start)
	}
	ascii := lx.scanIdentTail()
	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	if !ascii && !norm.NFC.IsNormalString(tok.Text) {
		lx.warnLex(diag.LexNonNormalizedIdent, tok.Span,
			"identifier '"+tok.Text+"' is not in Unicode NFC form; equal-looking names may not match")
	}
	return tok
}

// scanPrivateName читает #name.
func (lx *Lexer) scanPrivateName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	if !lx.bumpIdentStart() {
		return lx.scanUnknown(start)
	}
	lx.scanIdentTail()
	return lx.emit(token.PrivateName, start)
}

// bumpIdentStart consumes one identifier-start character.
func (lx *Lexer) bumpIdentStart() bool {
	b := lx.cursor.Peek()
	switch {
	case isIdentStartByte(b):
		lx.cursor.Bump()
		return true
	case b == '\\':
		return lx.bumpUnicodeEscape()
	case b >= utf8RuneSelf:
		r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		if r == utf8.RuneError || !isIDStartRune(r) {
			return false
		}
		lx.cursor.BumpN(uint32(size)) //nolint:gosec // size <= utf8.UTFMax
		return true
	}
	return false
}

// scanIdentTail consumes identifier-part characters and reports whether
// everything consumed was plain ASCII.
func (lx *Lexer) scanIdentTail() bool {
	ascii := true
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isIdentContinueByte(b):
			lx.cursor.Bump()
		case b == '\\':
			if !lx.bumpUnicodeEscape() {
				return ascii
			}
		case b >= utf8RuneSelf:
			r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
			if r == utf8.RuneError || !isIDContinueRune(r) {
				return ascii
			}
			ascii = false
			lx.cursor.BumpN(uint32(size)) //nolint:gosec // size <= utf8.UTFMax
		default:
			return ascii
		}
	}
	return ascii
}

// bumpUnicodeEscape consumes \uXXXX or \u{X...}.
func (lx *Lexer) bumpUnicodeEscape() bool {
	if lx.cursor.PeekAt(1) != 'u' {
		return false
	}
	m := lx.cursor.Mark()
	lx.cursor.BumpN(2)
	if lx.cursor.Eat('{') {
		n := 0
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			n++
		}
		if n > 0 && lx.cursor.Eat('}') {
			return true
		}
		lx.cursor.Reset(m)
		return false
	}
	for range 4 {
		if !isHex(lx.cursor.Peek()) {
			lx.cursor.Reset(m)
			return false
		}
		lx.cursor.Bump()
	}
	return true
}

// scanUnknown consumes a single character that cannot start any token.
func (lx *Lexer) scanUnknown(start Mark) token.Token {
	lx.cursor.Reset(start)
	if lx.cursor.Peek() >= utf8RuneSelf {
		_, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		lx.cursor.BumpN(uint32(size)) //nolint:gosec // size <= utf8.UTFMax
	} else {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character '"+tok.Text+"'")
	return tok
}
