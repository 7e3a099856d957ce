package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier or a contextual keyword.
	Ident
	// PrivateName represents a class private name such as #count.
	PrivateName

	// NumberLit represents a numeric literal.
	NumberLit
	// BigIntLit represents a numeric literal with the n suffix.
	BigIntLit
	// StringLit represents a single or double quoted string.
	StringLit
	// TemplateFull is a template literal without substitutions: `abc`.
	TemplateFull
	// TemplateHead is the part of a template up to the first ${.
	TemplateHead
	// TemplateMiddle is the part between } and the next ${.
	TemplateMiddle
	// TemplateTail is the part from } to the closing backtick.
	TemplateTail
	// RegexLit is a regular expression literal, produced only on parser request.
	RegexLit
	// JSXText is raw text between JSX tags.
	JSXText

	kwFirst
	KwBreak      // break
	KwCase       // case
	KwCatch      // catch
	KwClass      // class
	KwConst      // const
	KwContinue   // continue
	KwDebugger   // debugger
	KwDefault    // default
	KwDelete     // delete
	KwDo         // do
	KwElse       // else
	KwExport     // export
	KwExtends    // extends
	KwFalse      // false
	KwFinally    // finally
	KwFor        // for
	KwFunction   // function
	KwIf         // if
	KwImport     // import
	KwIn         // in
	KwInstanceof // instanceof
	KwNew        // new
	KwNull       // null
	KwReturn     // return
	KwSuper      // super
	KwSwitch     // switch
	KwThis       // this
	KwThrow      // throw
	KwTrue       // true
	KwTry        // try
	KwTypeof     // typeof
	KwVar        // var
	KwVoid       // void
	KwWhile      // while
	KwWith       // with
	kwLast

	LBrace           // {
	RBrace           // }
	LParen           // (
	RParen           // )
	LBracket         // [
	RBracket         // ]
	Semicolon        // ;
	Comma            // ,
	Dot              // .
	DotDotDot        // ...
	Question         // ?
	QuestionDot      // ?.
	QuestionQuestion // ??
	Colon            // :
	FatArrow         // =>
	At               // @

	Lt       // <
	Gt       // >
	LtEq     // <=
	GtEq     // >=
	EqEq     // ==
	BangEq   // !=
	EqEqEq   // ===
	BangEqEq // !==

	Plus       // +
	Minus      // -
	Star       // *
	StarStar   // **
	Slash      // /
	Percent    // %
	PlusPlus   // ++
	MinusMinus // --
	Shl        // <<
	Shr        // >>
	UShr       // >>>
	Amp        // &
	Pipe       // |
	Caret      // ^
	Bang       // !
	Tilde      // ~
	AndAnd     // &&
	OrOr       // ||

	Assign                 // =
	PlusAssign             // +=
	MinusAssign            // -=
	StarAssign             // *=
	StarStarAssign         // **=
	SlashAssign            // /=
	PercentAssign          // %=
	ShlAssign              // <<=
	ShrAssign              // >>=
	UShrAssign             // >>>=
	AmpAssign              // &=
	PipeAssign             // |=
	CaretAssign            // ^=
	AndAndAssign           // &&=
	OrOrAssign             // ||=
	QuestionQuestionAssign // ??=
)

var kindNames = map[Kind]string{
	Invalid: "invalid", EOF: "EOF", Ident: "identifier", PrivateName: "private name",
	NumberLit: "number", BigIntLit: "bigint", StringLit: "string",
	TemplateFull: "template", TemplateHead: "template head", TemplateMiddle: "template middle",
	TemplateTail: "template tail", RegexLit: "regex", JSXText: "JSX text",
	LBrace: "{", RBrace: "}", LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	Semicolon: ";", Comma: ",", Dot: ".", DotDotDot: "...", Question: "?", QuestionDot: "?.",
	QuestionQuestion: "??", Colon: ":", FatArrow: "=>", At: "@",
	Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=", EqEq: "==", BangEq: "!=", EqEqEq: "===", BangEqEq: "!==",
	Plus: "+", Minus: "-", Star: "*", StarStar: "**", Slash: "/", Percent: "%",
	PlusPlus: "++", MinusMinus: "--", Shl: "<<", Shr: ">>", UShr: ">>>",
	Amp: "&", Pipe: "|", Caret: "^", Bang: "!", Tilde: "~", AndAnd: "&&", OrOr: "||",
	Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", StarStarAssign: "**=",
	SlashAssign: "/=", PercentAssign: "%=", ShlAssign: "<<=", ShrAssign: ">>=", UShrAssign: ">>>=",
	AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=", AndAndAssign: "&&=", OrOrAssign: "||=",
	QuestionQuestionAssign: "??=",
}

func (k Kind) String() string {
	if k.IsKeyword() {
		for word, kw := range keywords {
			if kw == k {
				return word
			}
		}
	}
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k > kwFirst && k < kwLast
}

// IsAssign reports whether k is = or a compound assignment operator.
func (k Kind) IsAssign() bool {
	return k >= Assign && k <= QuestionQuestionAssign
}
