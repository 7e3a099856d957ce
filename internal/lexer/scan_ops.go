package lexer

import (
	"sort"

	"github.com/qza7849467chensh5/reflective-bind/internal/token"
)

type opEntry struct {
	text string
	kind token.Kind
}

// opsByFirst группирует операторы по первому байту, длинные первыми
// (жадное сопоставление: ">>>=" раньше ">>").
var opsByFirst = func() [128][]opEntry {
	all := []opEntry{
		{"{", token.LBrace}, {"}", token.RBrace},
		{"(", token.LParen}, {")", token.RParen},
		{"[", token.LBracket}, {"]", token.RBracket},
		{";", token.Semicolon}, {",", token.Comma},
		{".", token.Dot}, {"...", token.DotDotDot},
		{"?", token.Question}, {"?.", token.QuestionDot},
		{"??", token.QuestionQuestion}, {"??=", token.QuestionQuestionAssign},
		{":", token.Colon}, {"=>", token.FatArrow}, {"@", token.At},
		{"<", token.Lt}, {">", token.Gt}, {"<=", token.LtEq}, {">=", token.GtEq},
		{"==", token.EqEq}, {"!=", token.BangEq}, {"===", token.EqEqEq}, {"!==", token.BangEqEq},
		{"+", token.Plus}, {"-", token.Minus}, {"*", token.Star}, {"**", token.StarStar},
		{"/", token.Slash}, {"%", token.Percent}, {"++", token.PlusPlus}, {"--", token.MinusMinus},
		{"<<", token.Shl}, {">>", token.Shr}, {">>>", token.UShr},
		{"&", token.Amp}, {"|", token.Pipe}, {"^", token.Caret}, {"!", token.Bang}, {"~", token.Tilde},
		{"&&", token.AndAnd}, {"||", token.OrOr},
		{"=", token.Assign}, {"+=", token.PlusAssign}, {"-=", token.MinusAssign},
		{"*=", token.StarAssign}, {"**=", token.StarStarAssign}, {"/=", token.SlashAssign},
		{"%=", token.PercentAssign}, {"<<=", token.ShlAssign}, {">>=", token.ShrAssign},
		{">>>=", token.UShrAssign}, {"&=", token.AmpAssign}, {"|=", token.PipeAssign},
		{"^=", token.CaretAssign}, {"&&=", token.AndAndAssign}, {"||=", token.OrOrAssign},
	}
	var t [128][]opEntry
	for _, e := range all {
		t[e.text[0]] = append(t[e.text[0]], e)
	}
	for i := range t {
		sort.SliceStable(t[i], func(a, b int) bool { return len(t[i][a].text) > len(t[i][b].text) })
	}
	return t
}()

// scanOperatorOrPunct читает самый длинный оператор с текущей позиции.
// '/' всегда читается как деление: регулярные выражения распознаёт парсер
// через RescanRegex.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()
	if b < 128 {
		for _, e := range opsByFirst[b] {
			if !lx.cursor.HasPrefix(e.text) {
				continue
			}
			// a?.5:0 это тернарный оператор, а не optional chaining
			if e.kind == token.QuestionDot && isDec(lx.cursor.PeekAt(2)) {
				continue
			}
			lx.cursor.BumpN(uint32(len(e.text))) //nolint:gosec // operators are at most 4 bytes
			return lx.emit(e.kind, start)
		}
	}
	return lx.scanUnknown(start)
}

// SplitGt splits a compound token that starts with '>' (">>", ">=", ...)
// and returns a single '>' token. The rest is scanned again on the next call.
// Type argument lists such as Array<Array<T>> need this.
func (lx *Lexer) SplitGt(tok token.Token) token.Token {
	if tok.Kind == token.Gt || len(tok.Text) < 2 || tok.Text[0] != '>' {
		return tok
	}
	lx.resetTo(tok.Span.Start + 1)
	sp := tok.Span
	sp.End = sp.Start + 1
	return token.Token{
		Kind:          token.Gt,
		Span:          sp,
		Text:          ">",
		Leading:       tok.Leading,
		NewlineBefore: tok.NewlineBefore,
	}
}
