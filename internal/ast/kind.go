package ast

// Kind: тип узла. Имена совпадают с общепринятыми именами ESTree/Babel,
// чтобы дампы дерева читались без словаря.
type Kind uint8

const (
	Invalid Kind = iota
	Program
	ExpressionStatement
	BlockStatement
	EmptyStatement
	DebuggerStatement
	WithStatement
	ReturnStatement
	LabeledStatement
	BreakStatement
	ContinueStatement
	IfStatement
	SwitchStatement
	SwitchCase
	ThrowStatement
	TryStatement
	CatchClause
	WhileStatement
	DoWhileStatement
	ForStatement
	ForInStatement
	ForOfStatement
	FunctionDeclaration
	VariableDeclaration
	VariableDeclarator
	ClassDeclaration
	ClassBody
	ClassMethod
	ClassProperty
	StaticBlock
	ImportDeclaration
	ImportSpecifier
	ImportDefaultSpecifier
	ImportNamespaceSpecifier
	ExportNamedDeclaration
	ExportSpecifier
	ExportDefaultDeclaration
	ExportAllDeclaration
	Identifier
	PrivateName
	ThisExpression
	Super
	Import
	NullLiteral
	BooleanLiteral
	NumericLiteral
	BigIntLiteral
	StringLiteral
	RegExpLiteral
	TemplateLiteral
	TemplateElement
	TaggedTemplateExpression
	ArrayExpression
	ObjectExpression
	ObjectProperty
	ObjectMethod
	SpreadElement
	RestElement
	FunctionExpression
	ArrowFunctionExpression
	ClassExpression
	UnaryExpression
	UpdateExpression
	BinaryExpression
	LogicalExpression
	AssignmentExpression
	ConditionalExpression
	CallExpression
	NewExpression
	MemberExpression
	SequenceExpression
	YieldExpression
	AwaitExpression
	MetaProperty
	Decorator
	ObjectPattern
	ArrayPattern
	AssignmentPattern
	JSXElement
	JSXOpeningElement
	JSXClosingElement
	JSXFragment
	JSXOpeningFragment
	JSXClosingFragment
	JSXAttribute
	JSXSpreadAttribute
	JSXIdentifier
	JSXNamespacedName
	JSXMemberExpression
	JSXExpressionContainer
	JSXEmptyExpression
	JSXSpreadChild
	JSXText
	TypeAnnotation
	TypeParameters
	TypeCastExpression
	FlowDeclaration
	kindCount
)

var kindNames = [...]string{
	Invalid:                  "Invalid",
	Program:                  "Program",
	ExpressionStatement:      "ExpressionStatement",
	BlockStatement:           "BlockStatement",
	EmptyStatement:           "EmptyStatement",
	DebuggerStatement:        "DebuggerStatement",
	WithStatement:            "WithStatement",
	ReturnStatement:          "ReturnStatement",
	LabeledStatement:         "LabeledStatement",
	BreakStatement:           "BreakStatement",
	ContinueStatement:        "ContinueStatement",
	IfStatement:              "IfStatement",
	SwitchStatement:          "SwitchStatement",
	SwitchCase:               "SwitchCase",
	ThrowStatement:           "ThrowStatement",
	TryStatement:             "TryStatement",
	CatchClause:              "CatchClause",
	WhileStatement:           "WhileStatement",
	DoWhileStatement:         "DoWhileStatement",
	ForStatement:             "ForStatement",
	ForInStatement:           "ForInStatement",
	ForOfStatement:           "ForOfStatement",
	FunctionDeclaration:      "FunctionDeclaration",
	VariableDeclaration:      "VariableDeclaration",
	VariableDeclarator:       "VariableDeclarator",
	ClassDeclaration:         "ClassDeclaration",
	ClassBody:                "ClassBody",
	ClassMethod:              "ClassMethod",
	ClassProperty:            "ClassProperty",
	StaticBlock:              "StaticBlock",
	ImportDeclaration:        "ImportDeclaration",
	ImportSpecifier:          "ImportSpecifier",
	ImportDefaultSpecifier:   "ImportDefaultSpecifier",
	ImportNamespaceSpecifier: "ImportNamespaceSpecifier",
	ExportNamedDeclaration:   "ExportNamedDeclaration",
	ExportSpecifier:          "ExportSpecifier",
	ExportDefaultDeclaration: "ExportDefaultDeclaration",
	ExportAllDeclaration:     "ExportAllDeclaration",
	Identifier:               "Identifier",
	PrivateName:              "PrivateName",
	ThisExpression:           "ThisExpression",
	Super:                    "Super",
	Import:                   "Import",
	NullLiteral:              "NullLiteral",
	BooleanLiteral:           "BooleanLiteral",
	NumericLiteral:           "NumericLiteral",
	BigIntLiteral:            "BigIntLiteral",
	StringLiteral:            "StringLiteral",
	RegExpLiteral:            "RegExpLiteral",
	TemplateLiteral:          "TemplateLiteral",
	TemplateElement:          "TemplateElement",
	TaggedTemplateExpression: "TaggedTemplateExpression",
	ArrayExpression:          "ArrayExpression",
	ObjectExpression:         "ObjectExpression",
	ObjectProperty:           "ObjectProperty",
	ObjectMethod:             "ObjectMethod",
	SpreadElement:            "SpreadElement",
	RestElement:              "RestElement",
	FunctionExpression:       "FunctionExpression",
	ArrowFunctionExpression:  "ArrowFunctionExpression",
	ClassExpression:          "ClassExpression",
	UnaryExpression:          "UnaryExpression",
	UpdateExpression:         "UpdateExpression",
	BinaryExpression:         "BinaryExpression",
	LogicalExpression:        "LogicalExpression",
	AssignmentExpression:     "AssignmentExpression",
	ConditionalExpression:    "ConditionalExpression",
	CallExpression:           "CallExpression",
	NewExpression:            "NewExpression",
	MemberExpression:         "MemberExpression",
	SequenceExpression:       "SequenceExpression",
	YieldExpression:          "YieldExpression",
	AwaitExpression:          "AwaitExpression",
	MetaProperty:             "MetaProperty",
	Decorator:                "Decorator",
	ObjectPattern:            "ObjectPattern",
	ArrayPattern:             "ArrayPattern",
	AssignmentPattern:        "AssignmentPattern",
	JSXElement:               "JSXElement",
	JSXOpeningElement:        "JSXOpeningElement",
	JSXClosingElement:        "JSXClosingElement",
	JSXFragment:              "JSXFragment",
	JSXOpeningFragment:       "JSXOpeningFragment",
	JSXClosingFragment:       "JSXClosingFragment",
	JSXAttribute:             "JSXAttribute",
	JSXSpreadAttribute:       "JSXSpreadAttribute",
	JSXIdentifier:            "JSXIdentifier",
	JSXNamespacedName:        "JSXNamespacedName",
	JSXMemberExpression:      "JSXMemberExpression",
	JSXExpressionContainer:   "JSXExpressionContainer",
	JSXEmptyExpression:       "JSXEmptyExpression",
	JSXSpreadChild:           "JSXSpreadChild",
	JSXText:                  "JSXText",
	TypeAnnotation:           "TypeAnnotation",
	TypeParameters:           "TypeParameters",
	TypeCastExpression:       "TypeCastExpression",
	FlowDeclaration:          "FlowDeclaration",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsFunction reports whether k creates a new function body.
func (k Kind) IsFunction() bool {
	switch k {
	case FunctionDeclaration, FunctionExpression, ArrowFunctionExpression, ObjectMethod, ClassMethod:
		return true
	}
	return false
}

// IsDeferred reports whether code under a node of this kind does not run
// when the node itself is evaluated: functions, class field initializers
// and static blocks. Ordering and `this` analysis treat them as boundaries.
func (k Kind) IsDeferred() bool {
	return k.IsFunction() || k == ClassProperty || k == StaticBlock
}

// IsLoop reports whether k is an iteration statement.
func (k Kind) IsLoop() bool {
	switch k {
	case WhileStatement, DoWhileStatement, ForStatement, ForInStatement, ForOfStatement:
		return true
	}
	return false
}

// IsFlow reports whether k only carries static type information.
func (k Kind) IsFlow() bool {
	switch k {
	case TypeAnnotation, TypeParameters, FlowDeclaration:
		return true
	}
	return false
}

// IsLiteral reports whether k is a primitive literal.
func (k Kind) IsLiteral() bool {
	switch k {
	case NullLiteral, BooleanLiteral, NumericLiteral, BigIntLiteral, StringLiteral, RegExpLiteral:
		return true
	}
	return false
}

