package lexer

import (
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

// Lexer turns a source file into tokens on demand.
//
// JavaScript cannot be tokenized without context: '/' may start a regex,
// '}' may continue a template and JSX text has its own rules. The lexer
// always scans the "expression operator" reading; the parser asks for the
// other reading through the Rescan* and NextJSX* methods.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

// State is a snapshot used by the parser to backtrack.
type State struct {
	off  uint32
	look *token.Token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	nl := lx.collectLeadingTrivia()
	if lx.cursor.EOF() {
		return token.Token{
			Kind:          token.EOF,
			Span:          lx.EmptySpan(),
			Leading:       lx.takeHold(),
			NewlineBefore: true,
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch) || ch == '\\':
		tok = lx.scanIdent()
	case ch >= utf8RuneSelf:
		tok = lx.scanIdent()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)
	case ch == '`':
		tok = lx.scanTemplate(true)
	case ch == '#':
		tok = lx.scanPrivateName()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.takeHold()
	tok.NewlineBefore = nl
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// Save captures the lexer position for backtracking.
func (lx *Lexer) Save() State {
	st := State{off: lx.cursor.Off}
	if lx.look != nil {
		t := *lx.look
		st.look = &t
	}
	return st
}

// Restore rewinds to a previously saved state.
func (lx *Lexer) Restore(st State) {
	lx.cursor.Off = st.off
	lx.look = st.look
	lx.hold = nil
}

// EmptySpan returns a zero-length span at the cursor.
func (lx *Lexer) EmptySpan() source.Span {
	return source.At(lx.file.ID, lx.cursor.Off)
}

// resetTo drops lookahead and moves the cursor to off.
func (lx *Lexer) resetTo(off uint32) {
	lx.look = nil
	lx.hold = nil
	lx.cursor.Off = off
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	h := lx.hold
	lx.hold = nil
	return h
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}
