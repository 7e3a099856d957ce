package lexer

import (
	"unicode"
	"unicode/utf8"
)

const utf8RuneSelf = utf8.RuneSelf

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || (b|0x20) >= 'a' && (b|0x20) <= 'f'
}

func isIdentStartByte(b byte) bool {
	return b == '_' || b == '$' || (b|0x20) >= 'a' && (b|0x20) <= 'z'
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isIDStartRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.Other_ID_Start, r)
}

func isIDContinueRune(r rune) bool {
	if isIDStartRune(r) {
		return true
	}
	switch {
	case unicode.Is(unicode.Mn, r), unicode.Is(unicode.Mc, r),
		unicode.Is(unicode.Nd, r), unicode.Is(unicode.Pc, r):
		return true
	case r == '\u200c' || r == '\u200d':
		return true
	}
	return false
}
