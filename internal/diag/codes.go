package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedTemplate     Code = 1005
	LexUnterminatedRegex        Code = 1006
	LexNonNormalizedIdent       Code = 1007

	// Синтаксические
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectSemicolon   Code = 2002
	SynUnclosedParen     Code = 2003
	SynUnclosedBrace     Code = 2004
	SynUnclosedBracket   Code = 2005
	SynJSXMismatchedTag  Code = 2006
	SynInvalidAssignment Code = 2007
	SynInvalidArrowParam Code = 2008
	SynBadTypeAnnotation Code = 2009
	SynUnexpectedEOF     Code = 2010

	// Трансформация
	TrnInfo            Code = 3000
	TrnInternal        Code = 3001
	TrnHoistDeclined   Code = 3002
	TrnNestedProperty  Code = 3003
	TrnOptOut          Code = 3004
	TrnBindRewritten   Code = 3005
	TrnClosureHoisted  Code = 3006
	TrnTopLevelClosure Code = 3007

	// I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	IOCacheError     Code = 4003

	// Конфигурация
	CfgInfo         Code = 5000
	CfgInvalidValue Code = 5001
	CfgUnknownKey   Code = 5002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexUnterminatedTemplate:     "Unterminated template literal",
		LexUnterminatedRegex:        "Unterminated regular expression",
		LexNonNormalizedIdent:       "Identifier is not in Unicode NFC form",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectSemicolon:          "Missing semicolon",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynUnclosedBracket:          "Unclosed bracket",
		SynJSXMismatchedTag:         "Mismatched JSX closing tag",
		SynInvalidAssignment:        "Invalid assignment target",
		SynInvalidArrowParam:        "Invalid arrow function parameter",
		SynBadTypeAnnotation:        "Malformed type annotation",
		SynUnexpectedEOF:            "Unexpected end of file",
		TrnInfo:                     "Transform information",
		TrnInternal:                 "Internal transform error",
		TrnHoistDeclined:            "Arrow function not hoisted",
		TrnNestedProperty:           "Nested property access in hoisted function",
		TrnOptOut:                   "Transform disabled by marker comment",
		TrnBindRewritten:            "Call to bind rewritten",
		TrnClosureHoisted:           "Arrow function hoisted",
		TrnTopLevelClosure:          "Arrow function already at top level",
		IOLoadFileError:             "I/O load file error",
		IOWriteFileError:            "I/O write file error",
		IOCacheError:                "Cache error",
		CfgInfo:                     "Configuration information",
		CfgInvalidValue:             "Invalid configuration value",
		CfgUnknownKey:               "Unknown configuration key",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TRN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
