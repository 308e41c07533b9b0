package ast

// nodeType is used to declare the different possible types of AST nodes
type nodeType string

const (
	TypePatternMessage     nodeType = "PatternMessage"
	TypeSelectMessage      nodeType = "SelectMessage"
	TypeInputDeclaration   nodeType = "InputDeclaration"
	TypeLocalDeclaration   nodeType = "LocalDeclaration"
	TypeVariant            nodeType = "Variant"
	TypeCatchAllKey        nodeType = "CatchAllKey"
	TypeText               nodeType = "Text"
	TypeLiteralExpression  nodeType = "LiteralExpression"
	TypeVariableExpression nodeType = "VariableExpression"
	TypeFunctionExpression nodeType = "FunctionExpression"
	TypeFunctionRef        nodeType = "FunctionRef"
	TypeMarkup             nodeType = "Markup"
	TypeLiteral            nodeType = "Literal"
	TypeVariableRef        nodeType = "VariableRef"
	TypeBooleanAttribute   nodeType = "BooleanAttribute"
)

// MarkupKind tells whether a markup opens, closes or stands alone
type MarkupKind string

const (
	MarkupOpen       MarkupKind = "open"
	MarkupStandAlone MarkupKind = "standalone"
	MarkupClose      MarkupKind = "close"
)
