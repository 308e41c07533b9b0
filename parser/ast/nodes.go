package ast

// Node represents an interface that every AST node type implements to act as a super type
type Node interface {
	node()
}

// Base represents the base structure that every AST node embeds.
// Span holds the half-open [start, end) character offsets of the node in the source.
type Base struct {
	Type nodeType `json:"type"`
	Span [2]uint  `json:"-"`
}

func (_ *Base) node() {}

// Message is either a *PatternMessage or a *SelectMessage
type Message interface {
	Node
	message()
}

// Declaration is either an *InputDeclaration or a *LocalDeclaration
type Declaration interface {
	Node
	declaration()
}

// PatternItem is a *Text, an Expression or a *Markup
type PatternItem interface {
	Node
	patternItem()
}

// Expression is a *LiteralExpression, a *VariableExpression or a *FunctionExpression
type Expression interface {
	PatternItem
	expression()
}

// VariantKey is either a *Literal or a *CatchAllKey
type VariantKey interface {
	Node
	variantKey()
}

// OptionValue is either a *Literal or a *VariableRef
type OptionValue interface {
	Node
	optionValue()
}

// AttributeValue is either a *Literal or a *BooleanAttribute
type AttributeValue interface {
	Node
	attributeValue()
}

// Options maps option names of a function or markup to their values.
// A nil map means that no options were written.
type Options map[string]OptionValue

// Attributes maps attribute names of an expression or markup to their values.
// A nil map means that no attributes were written.
type Attributes map[string]AttributeValue

// PatternMessage represents a message consisting of declarations and a single pattern
type PatternMessage struct {
	Base
	Declarations []Declaration `json:"declarations"`
	Pattern      []PatternItem `json:"pattern"`
}

func (_ *PatternMessage) message() {}

// SelectMessage represents a message that chooses one of its variants based on its selectors
type SelectMessage struct {
	Base
	Declarations []Declaration  `json:"declarations"`
	Selectors    []*VariableRef `json:"selectors"`
	Variants     []*Variant     `json:"variants"`
}

func (_ *SelectMessage) message() {}

// InputDeclaration represents an '.input' declaration.
// Its name is always the name of the variable referenced by its value.
type InputDeclaration struct {
	Base
	Name  string              `json:"name"`
	Value *VariableExpression `json:"value"`
}

func (_ *InputDeclaration) declaration() {}

// LocalDeclaration represents a '.local' declaration
type LocalDeclaration struct {
	Base
	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func (_ *LocalDeclaration) declaration() {}

// Variant represents a single variant of a select message
type Variant struct {
	Base
	Keys  []VariantKey  `json:"keys"`
	Value []PatternItem `json:"value"`
}

// CatchAllKey represents the '*' variant key
type CatchAllKey struct {
	Base
}

func (_ *CatchAllKey) variantKey() {}

// Text represents a run of literal text inside a pattern
type Text struct {
	Base
	Value string `json:"value"`
}

func (_ *Text) patternItem() {}

// LiteralExpression represents an expression with a literal operand
type LiteralExpression struct {
	Base
	Literal    *Literal     `json:"arg"`
	Function   *FunctionRef `json:"function,omitempty"`
	Attributes Attributes   `json:"attributes,omitempty"`
}

func (_ *LiteralExpression) patternItem() {}
func (_ *LiteralExpression) expression()  {}

// VariableExpression represents an expression with a variable operand
type VariableExpression struct {
	Base
	Variable   *VariableRef `json:"arg"`
	Function   *FunctionRef `json:"function,omitempty"`
	Attributes Attributes   `json:"attributes,omitempty"`
}

func (_ *VariableExpression) patternItem() {}
func (_ *VariableExpression) expression()  {}

// FunctionExpression represents an expression consisting of a function without an operand
type FunctionExpression struct {
	Base
	Function   *FunctionRef `json:"function"`
	Attributes Attributes   `json:"attributes,omitempty"`
}

func (_ *FunctionExpression) patternItem() {}
func (_ *FunctionExpression) expression()  {}

// FunctionRef represents the AST node of a reference to a function.
// The name may contain a single namespace separator (e.g. 'ns:name').
type FunctionRef struct {
	Base
	Name    string  `json:"name"`
	Options Options `json:"options,omitempty"`
}

// Markup represents an opening, closing or standalone markup placeholder
type Markup struct {
	Base
	Kind       MarkupKind `json:"kind"`
	Name       string     `json:"name"`
	Options    Options    `json:"options,omitempty"`
	Attributes Attributes `json:"attributes,omitempty"`
}

func (_ *Markup) patternItem() {}

// Literal represents a quoted or unquoted literal.
// The value of a quoted literal keeps its escape sequences verbatim.
type Literal struct {
	Base
	Value string `json:"value"`
}

func (_ *Literal) variantKey()     {}
func (_ *Literal) optionValue()    {}
func (_ *Literal) attributeValue() {}

// Normalize returns the value used to compare the literal with other literals.
// TODO: apply the normalization form of the MF2 data model once it is pinned down there.
func (literal *Literal) Normalize() string {
	return literal.Value
}

// VariableRef represents the AST node of a reference to a variable
type VariableRef struct {
	Base
	Name string `json:"name"`
}

func (_ *VariableRef) optionValue() {}

// BooleanAttribute represents an attribute written without a value
type BooleanAttribute struct {
	Base
	Value bool `json:"value"`
}

func (_ *BooleanAttribute) attributeValue() {}
