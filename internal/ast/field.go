package ast

// Field: именованный слот ребёнка в узле.
type Field uint8

const (
	NoField Field = iota
	FieldBody
	FieldExpression
	FieldObject
	FieldArgument
	FieldLabel
	FieldTest
	FieldConsequent
	FieldAlternate
	FieldDiscriminant
	FieldCases
	FieldBlock
	FieldHandler
	FieldFinalizer
	FieldParam
	FieldInit
	FieldUpdate
	FieldLeft
	FieldRight
	FieldID
	FieldTypeParameters
	FieldParams
	FieldReturnType
	FieldDeclarations
	FieldSuperClass
	FieldSuperTypeParameters
	FieldImplements
	FieldDecorators
	FieldKey
	FieldValue
	FieldTypeAnnotation
	FieldSpecifiers
	FieldSource
	FieldImported
	FieldLocal
	FieldExported
	FieldDeclaration
	FieldParts
	FieldTag
	FieldTypeArguments
	FieldQuasi
	FieldElements
	FieldProperties
	FieldCallee
	FieldArguments
	FieldProperty
	FieldExpressions
	FieldMeta
	FieldOpeningElement
	FieldChildren
	FieldClosingElement
	FieldName
	FieldAttributes
	FieldNamespace
	FieldOpeningFragment
	FieldClosingFragment
	fieldCount
)

var fieldNames = [...]string{
	NoField:                  "<none>",
	FieldBody:                "body",
	FieldExpression:          "expression",
	FieldObject:              "object",
	FieldArgument:            "argument",
	FieldLabel:               "label",
	FieldTest:                "test",
	FieldConsequent:          "consequent",
	FieldAlternate:           "alternate",
	FieldDiscriminant:        "discriminant",
	FieldCases:               "cases",
	FieldBlock:               "block",
	FieldHandler:             "handler",
	FieldFinalizer:           "finalizer",
	FieldParam:               "param",
	FieldInit:                "init",
	FieldUpdate:              "update",
	FieldLeft:                "left",
	FieldRight:               "right",
	FieldID:                  "id",
	FieldTypeParameters:      "typeParameters",
	FieldParams:              "params",
	FieldReturnType:          "returnType",
	FieldDeclarations:        "declarations",
	FieldSuperClass:          "superClass",
	FieldSuperTypeParameters: "superTypeParameters",
	FieldImplements:          "implements",
	FieldDecorators:          "decorators",
	FieldKey:                 "key",
	FieldValue:               "value",
	FieldTypeAnnotation:      "typeAnnotation",
	FieldSpecifiers:          "specifiers",
	FieldSource:              "source",
	FieldImported:            "imported",
	FieldLocal:               "local",
	FieldExported:            "exported",
	FieldDeclaration:         "declaration",
	FieldParts:               "parts",
	FieldTag:                 "tag",
	FieldTypeArguments:       "typeArguments",
	FieldQuasi:               "quasi",
	FieldElements:            "elements",
	FieldProperties:          "properties",
	FieldCallee:              "callee",
	FieldArguments:           "arguments",
	FieldProperty:            "property",
	FieldExpressions:         "expressions",
	FieldMeta:                "meta",
	FieldOpeningElement:      "openingElement",
	FieldChildren:            "children",
	FieldClosingElement:      "closingElement",
	FieldName:                "name",
	FieldAttributes:          "attributes",
	FieldNamespace:           "namespace",
	FieldOpeningFragment:     "openingFragment",
	FieldClosingFragment:     "closingFragment",
}

func (f Field) String() string {
	if f < fieldCount {
		return fieldNames[f]
	}
	return "Field(?)"
}

// FieldSpec describes one child slot of a node kind.
type FieldSpec struct {
	Field Field
	List  bool
}

// visitorKeys перечисляет слоты каждого вида узла в порядке исходного текста.
// Этот порядок и есть канонический порядок обхода: от него зависят печать
// изменённых узлов и сравнение позиций в order.
var visitorKeys = [kindCount][]FieldSpec{
	Program:                  {{FieldBody, true}},
	ExpressionStatement:      {{FieldExpression, false}},
	BlockStatement:           {{FieldBody, true}},
	WithStatement:            {{FieldObject, false}, {FieldBody, false}},
	ReturnStatement:          {{FieldArgument, false}},
	LabeledStatement:         {{FieldLabel, false}, {FieldBody, false}},
	BreakStatement:           {{FieldLabel, false}},
	ContinueStatement:        {{FieldLabel, false}},
	IfStatement:              {{FieldTest, false}, {FieldConsequent, false}, {FieldAlternate, false}},
	SwitchStatement:          {{FieldDiscriminant, false}, {FieldCases, true}},
	SwitchCase:               {{FieldTest, false}, {FieldConsequent, true}},
	ThrowStatement:           {{FieldArgument, false}},
	TryStatement:             {{FieldBlock, false}, {FieldHandler, false}, {FieldFinalizer, false}},
	CatchClause:              {{FieldParam, false}, {FieldBody, false}},
	WhileStatement:           {{FieldTest, false}, {FieldBody, false}},
	DoWhileStatement:         {{FieldBody, false}, {FieldTest, false}},
	ForStatement:             {{FieldInit, false}, {FieldTest, false}, {FieldUpdate, false}, {FieldBody, false}},
	ForInStatement:           {{FieldLeft, false}, {FieldRight, false}, {FieldBody, false}},
	ForOfStatement:           {{FieldLeft, false}, {FieldRight, false}, {FieldBody, false}},
	FunctionDeclaration:      {{FieldID, false}, {FieldTypeParameters, false}, {FieldParams, true}, {FieldReturnType, false}, {FieldBody, false}},
	VariableDeclaration:      {{FieldDeclarations, true}},
	VariableDeclarator:       {{FieldID, false}, {FieldInit, false}},
	ClassDeclaration:         {{FieldDecorators, true}, {FieldID, false}, {FieldTypeParameters, false}, {FieldSuperClass, false}, {FieldSuperTypeParameters, false}, {FieldImplements, false}, {FieldBody, false}},
	ClassBody:                {{FieldBody, true}},
	ClassMethod:              {{FieldDecorators, true}, {FieldKey, false}, {FieldTypeParameters, false}, {FieldParams, true}, {FieldReturnType, false}, {FieldBody, false}},
	ClassProperty:            {{FieldDecorators, true}, {FieldKey, false}, {FieldTypeAnnotation, false}, {FieldValue, false}},
	StaticBlock:              {{FieldBody, true}},
	ImportDeclaration:        {{FieldSpecifiers, true}, {FieldSource, false}},
	ImportSpecifier:          {{FieldImported, false}, {FieldLocal, false}},
	ImportDefaultSpecifier:   {{FieldLocal, false}},
	ImportNamespaceSpecifier: {{FieldLocal, false}},
	ExportNamedDeclaration:   {{FieldDeclaration, false}, {FieldSpecifiers, true}, {FieldSource, false}},
	ExportSpecifier:          {{FieldLocal, false}, {FieldExported, false}},
	ExportDefaultDeclaration: {{FieldDeclaration, false}},
	ExportAllDeclaration:     {{FieldExported, false}, {FieldSource, false}},
	Identifier:               {{FieldTypeAnnotation, false}},
	TemplateLiteral:          {{FieldParts, true}},
	TaggedTemplateExpression: {{FieldTag, false}, {FieldTypeArguments, false}, {FieldQuasi, false}},
	ArrayExpression:          {{FieldElements, true}},
	ObjectExpression:         {{FieldProperties, true}},
	ObjectProperty:           {{FieldKey, false}, {FieldValue, false}},
	ObjectMethod:             {{FieldKey, false}, {FieldTypeParameters, false}, {FieldParams, true}, {FieldReturnType, false}, {FieldBody, false}},
	SpreadElement:            {{FieldArgument, false}},
	RestElement:              {{FieldArgument, false}, {FieldTypeAnnotation, false}},
	FunctionExpression:       {{FieldID, false}, {FieldTypeParameters, false}, {FieldParams, true}, {FieldReturnType, false}, {FieldBody, false}},
	ArrowFunctionExpression:  {{FieldTypeParameters, false}, {FieldParams, true}, {FieldReturnType, false}, {FieldBody, false}},
	ClassExpression:          {{FieldDecorators, true}, {FieldID, false}, {FieldTypeParameters, false}, {FieldSuperClass, false}, {FieldSuperTypeParameters, false}, {FieldImplements, false}, {FieldBody, false}},
	UnaryExpression:          {{FieldArgument, false}},
	UpdateExpression:         {{FieldArgument, false}},
	BinaryExpression:         {{FieldLeft, false}, {FieldRight, false}},
	LogicalExpression:        {{FieldLeft, false}, {FieldRight, false}},
	AssignmentExpression:     {{FieldLeft, false}, {FieldRight, false}},
	ConditionalExpression:    {{FieldTest, false}, {FieldConsequent, false}, {FieldAlternate, false}},
	CallExpression:           {{FieldCallee, false}, {FieldTypeArguments, false}, {FieldArguments, true}},
	NewExpression:            {{FieldCallee, false}, {FieldTypeArguments, false}, {FieldArguments, true}},
	MemberExpression:         {{FieldObject, false}, {FieldProperty, false}},
	SequenceExpression:       {{FieldExpressions, true}},
	YieldExpression:          {{FieldArgument, false}},
	AwaitExpression:          {{FieldArgument, false}},
	MetaProperty:             {{FieldMeta, false}, {FieldProperty, false}},
	Decorator:                {{FieldExpression, false}},
	ObjectPattern:            {{FieldProperties, true}, {FieldTypeAnnotation, false}},
	ArrayPattern:             {{FieldElements, true}, {FieldTypeAnnotation, false}},
	AssignmentPattern:        {{FieldLeft, false}, {FieldRight, false}},
	JSXElement:               {{FieldOpeningElement, false}, {FieldChildren, true}, {FieldClosingElement, false}},
	JSXOpeningElement:        {{FieldName, false}, {FieldTypeArguments, false}, {FieldAttributes, true}},
	JSXClosingElement:        {{FieldName, false}},
	JSXFragment:              {{FieldOpeningFragment, false}, {FieldChildren, true}, {FieldClosingFragment, false}},
	JSXAttribute:             {{FieldName, false}, {FieldValue, false}},
	JSXSpreadAttribute:       {{FieldArgument, false}},
	JSXNamespacedName:        {{FieldNamespace, false}, {FieldName, false}},
	JSXMemberExpression:      {{FieldObject, false}, {FieldProperty, false}},
	JSXExpressionContainer:   {{FieldExpression, false}},
	JSXSpreadChild:           {{FieldExpression, false}},
	TypeCastExpression:       {{FieldExpression, false}, {FieldTypeAnnotation, false}},
}

// VisitorKeys returns the child slots of kind k in canonical order.
// The returned slice must not be modified.
func VisitorKeys(k Kind) []FieldSpec {
	if k >= kindCount {
		return nil
	}
	return visitorKeys[k]
}

// FieldOrder returns the position of field f among the visitor keys of k.
func FieldOrder(k Kind, f Field) (int, bool) {
	for i, spec := range VisitorKeys(k) {
		if spec.Field == f {
			return i, true
		}
	}
	return -1, false
}

// IsListField reports whether field f of kind k holds a list of children.
func IsListField(k Kind, f Field) bool {
	i, ok := FieldOrder(k, f)
	return ok && visitorKeys[k][i].List
}
