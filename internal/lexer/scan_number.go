package lexer

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// scanNumber читает числовой литерал:
//   - 0x.. / 0o.. / 0b.. с разделителями '_' и суффиксом n
//   - десятичные с дробной частью и экспонентой
//   - 123n (BigInt) только для целых без точки и экспоненты
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.NumberLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) | 0x20 {
		case 'x':
			lx.cursor.BumpN(2)
			return lx.finishRadix(start, isHex)
		case 'o':
			lx.cursor.BumpN(2)
			return lx.finishRadix(start, func(b byte) bool { return b >= '0' && b <= '7' })
		case 'b':
			lx.cursor.BumpN(2)
			return lx.finishRadix(start, func(b byte) bool { return b == '0' || b == '1' })
		}
	}

	integer := true
	lx.scanDigits(isDec)
	if lx.cursor.Peek() == '.' {
		integer = false
		lx.cursor.Bump()
		lx.scanDigits(isDec)
	}
	if lx.cursor.Peek()|0x20 == 'e' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) || (next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2)) {
			integer = false
			lx.cursor.BumpN(2)
			lx.scanDigits(isDec)
		}
	}
	if integer && lx.cursor.Eat('n') {
		kind = token.BigIntLit
	}
	return lx.finishNumber(start, kind)
}

func (lx *Lexer) finishRadix(start Mark, digit func(byte) bool) token.Token {
	if lx.scanDigits(digit) == 0 {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "missing digits after radix prefix")
	}
	kind := token.NumberLit
	if lx.cursor.Eat('n') {
		kind = token.BigIntLit
	}
	return lx.finishNumber(start, kind)
}

// finishNumber rejects an identifier glued to the literal (3in, 1px).
func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	if b := lx.cursor.Peek(); isIdentStartByte(b) || b == '\\' {
		lx.scanIdentTail()
		tok := lx.emit(kind, start)
		lx.errLex(diag.LexBadNumber, tok.Span, "identifier starts immediately after numeric literal")
		return tok
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) scanDigits(digit func(byte) bool) int {
	n := 0
	for {
		b := lx.cursor.Peek()
		if digit(b) {
			n++
		} else if b != '_' || n == 0 {
			return n
		}
		lx.cursor.Bump()
	}
}
