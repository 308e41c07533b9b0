package parser

import (
	"strings"

	"github.com/lus/mf2.go/parser/ast"
)

// Parser is used to parse a MessageFormat 2 source into an AST
type Parser struct {
	str *stream
}

// New creates a new MF2 parser from a source string
func New(source string) *Parser {
	return &Parser{str: newStream(source)}
}

// Parse parses the underlying MF2 source string into either an *ast.PatternMessage or an *ast.SelectMessage.
// Parsing stops at the first error; the returned error is always a *Error in that case.
// Calling Parse again starts over from the beginning of the source.
func (parser *Parser) Parse() (ast.Message, error) {
	parser.str.SetCursorTo(0)

	// Declarations may precede both the pattern and the matcher
	declarations, isMatch, err := parser.parseDeclarations()
	if err != nil {
		return nil, err
	}
	if isMatch {
		message, err := parser.parseSelectMessage(declarations)
		if err != nil {
			return nil, err
		}
		return message, nil
	}

	// A message is quoted if its pattern is enclosed in '{{' and '}}'.
	// Everything else is a simple message, so any consumed content is parsed again as its pattern.
	parser.skipWhitespaces()
	quoted := string(parser.str.PeekN(2)) == "{{"
	if !quoted && parser.str.CurrentCursorPos() > 0 {
		declarations = []ast.Declaration{}
		parser.str.SetCursorTo(0)
	}

	pattern, err := parser.parsePattern(quoted)
	if err != nil {
		return nil, err
	}

	// Nothing but whitespace may follow a quoted pattern
	if quoted {
		parser.skipWhitespaces()
		if parser.str.HasNext() {
			return nil, newError(ExtraContent, parser.str.CurrentCursorPos(), -1, "")
		}
	}

	// Build the pattern message AST node
	return &ast.PatternMessage{
		Base: ast.Base{
			Type: ast.TypePatternMessage,
			Span: [2]uint{0, uint(parser.str.SrcLen())},
		},
		Declarations: declarations,
		Pattern:      pattern,
	}, nil
}

// parseDeclarations parses the '.input' and '.local' declarations at the start of a message.
// The returned flag reports whether the declarations were terminated by the '.match' keyword.
func (parser *Parser) parseDeclarations() ([]ast.Declaration, bool, error) {
	declarations := []ast.Declaration{}

	parser.skipWhitespaces()
	for parser.str.Peek() == '.' {
		start := parser.str.CurrentCursorPos()

		// Every keyword has the same length, so a fixed window decides which one is used
		switch string(parser.str.PeekN(6)) {
		case ".input":
			parser.str.Skip(6)
			declaration, err := parser.parseInputDeclaration(start)
			if err != nil {
				return nil, false, err
			}
			declarations = append(declarations, declaration)
		case ".local":
			parser.str.Skip(6)
			declaration, err := parser.parseLocalDeclaration(start)
			if err != nil {
				return nil, false, err
			}
			declarations = append(declarations, declaration)
		case ".match":
			parser.str.Skip(6)
			return declarations, true, nil
		default:
			return nil, false, newError(ParseError, start, -1, "")
		}

		// Whitespace between declarations is ignored
		parser.skipWhitespaces()
	}

	return declarations, false, nil
}

// parseInputDeclaration parses an input declaration node (the '.input' keyword is already consumed)
func (parser *Parser) parseInputDeclaration(start int) (*ast.InputDeclaration, error) {
	parser.skipWhitespaces()

	// The value has to be an expression
	if err := parser.expect("{", false); err != nil {
		return nil, err
	}
	valueStart := parser.str.CurrentCursorPos()
	value, err := parser.parseExpressionOrMarkup(false)
	if err != nil {
		return nil, err
	}

	// Only variables may be declared as input
	expression, ok := value.(*ast.VariableExpression)
	if !ok {
		return nil, newError(BadInputExpression, valueStart, parser.str.CurrentCursorPos(), "")
	}

	// Build the input declaration AST node
	return &ast.InputDeclaration{
		Base: ast.Base{
			Type: ast.TypeInputDeclaration,
			Span: [2]uint{uint(start), uint(parser.str.CurrentCursorPos())},
		},
		Name:  expression.Variable.Name,
		Value: expression,
	}, nil
}

// parseLocalDeclaration parses a local declaration node (the '.local' keyword is already consumed)
func (parser *Parser) parseLocalDeclaration(start int) (*ast.LocalDeclaration, error) {
	// The keyword has to be separated from the variable
	if err := parser.skipWhitespacesRequired(); err != nil {
		return nil, err
	}

	// A '$' followed by the name of the variable is required
	if err := parser.expect("$", true); err != nil {
		return nil, err
	}
	name, err := parser.parseName()
	if err != nil {
		return nil, err
	}

	// A '=' surrounded by optional whitespace is required
	parser.skipWhitespaces()
	if err := parser.expect("=", true); err != nil {
		return nil, err
	}
	parser.skipWhitespaces()

	// Parse the expression the variable is bound to
	if err := parser.expect("{", false); err != nil {
		return nil, err
	}
	valueStart := parser.str.CurrentCursorPos()
	value, err := parser.parseExpressionOrMarkup(false)
	if err != nil {
		return nil, err
	}
	expression, ok := value.(ast.Expression)
	if !ok {
		return nil, newError(ParseError, valueStart, parser.str.CurrentCursorPos(), "")
	}

	// Build the local declaration AST node
	return &ast.LocalDeclaration{
		Base: ast.Base{
			Type: ast.TypeLocalDeclaration,
			Span: [2]uint{uint(start), uint(parser.str.CurrentCursorPos())},
		},
		Name:  name,
		Value: expression,
	}, nil
}

// parseSelectMessage parses the selectors and variants of a select message (the '.match' keyword is already consumed)
func (parser *Parser) parseSelectMessage(declarations []ast.Declaration) (*ast.SelectMessage, error) {
	// The keyword has to be separated from the selectors
	if err := parser.skipWhitespacesRequired(); err != nil {
		return nil, err
	}

	// Parse the selectors; each one has to be followed by whitespace
	var selectors []*ast.VariableRef
	for parser.str.Peek() == '$' {
		selector, err := parser.parseVariable()
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, selector)

		if err := parser.skipWhitespacesRequired(); err != nil {
			return nil, err
		}
	}
	if len(selectors) == 0 {
		return nil, newError(EmptyToken, parser.str.CurrentCursorPos(), -1, "")
	}

	// Parse the variants until the source ends
	var variants []*ast.Variant
	for parser.str.HasNext() {
		variant, err := parser.parseVariant()
		if err != nil {
			return nil, err
		}
		variants = append(variants, variant)

		// Whitespace between variants is ignored
		parser.skipWhitespaces()
	}
	if len(variants) == 0 {
		return nil, newError(EmptyToken, parser.str.CurrentCursorPos(), -1, "")
	}

	// Build the select message AST node
	return &ast.SelectMessage{
		Base: ast.Base{
			Type: ast.TypeSelectMessage,
			Span: [2]uint{0, uint(parser.str.SrcLen())},
		},
		Declarations: declarations,
		Selectors:    selectors,
		Variants:     variants,
	}, nil
}

// parseVariant parses a variant node consisting of its keys and a quoted pattern
func (parser *Parser) parseVariant() (*ast.Variant, error) {
	start := parser.str.CurrentCursorPos()

	var keys []ast.VariantKey
collect:
	for parser.str.HasNext() {
		// Keys have to be separated from each other, but not from the pattern
		if len(keys) > 0 {
			if err := parser.skipWhitespacesRequiredIfNotFollowedBy('{'); err != nil {
				return nil, err
			}
		} else {
			parser.skipWhitespaces()
		}

		keyStart := parser.str.CurrentCursorPos()
		switch parser.str.Peek() {
		case '{':
			break collect
		case '*':
			parser.str.Skip(1)
			keys = append(keys, &ast.CatchAllKey{
				Base: ast.Base{
					Type: ast.TypeCatchAllKey,
					Span: [2]uint{uint(keyStart), uint(parser.str.CurrentCursorPos())},
				},
			})
		default:
			key, err := parser.parseLiteral(true)
			if err != nil {
				return nil, err
			}
			key.Value = key.Normalize()
			keys = append(keys, key)
		}
	}

	// A variant without keys can never be selected
	if len(keys) == 0 {
		return nil, newError(EmptyToken, parser.str.CurrentCursorPos(), -1, "")
	}

	// Parse the pattern that represents the variant's value
	value, err := parser.parsePattern(true)
	if err != nil {
		return nil, err
	}

	// Build the variant AST node
	return &ast.Variant{
		Base: ast.Base{
			Type: ast.TypeVariant,
			Span: [2]uint{uint(start), uint(parser.str.CurrentCursorPos())},
		},
		Keys:  keys,
		Value: value,
	}, nil
}

// parsePattern parses the elements of a pattern.
// A quoted pattern is enclosed in '{{' and '}}', an unquoted one lasts until the source ends.
func (parser *Parser) parsePattern(quoted bool) ([]ast.PatternItem, error) {
	// A quoted pattern has to start with a '{{'
	if quoted {
		if err := parser.expect("{{", true); err != nil {
			return nil, err
		}
	}

	items := []ast.PatternItem{}
	var text strings.Builder
	textStart := parser.str.CurrentCursorPos()

	// Text is accumulated until a placeholder starts or the pattern ends
	flush := func() {
		if text.Len() == 0 {
			return
		}
		items = append(items, &ast.Text{
			Base: ast.Base{
				Type: ast.TypeText,
				Span: [2]uint{uint(textStart), uint(parser.str.CurrentCursorPos())},
			},
			Value: text.String(),
		})
		text.Reset()
	}

elements:
	for parser.str.HasNext() {
		switch parser.str.Peek() {
		case '{':
			flush()
			item, err := parser.parseExpressionOrMarkup(true)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			textStart = parser.str.CurrentCursorPos()
		case '}':
			// An unquoted pattern never contains a single '}'
			if !quoted {
				return nil, newError(ParseError, parser.str.CurrentCursorPos(), -1, "")
			}
			break elements
		case 0:
			return nil, newError(InvalidCharacter, parser.str.CurrentCursorPos(), -1, "")
		default:
			text.WriteRune(parser.str.Consume())
		}
	}
	flush()

	// A quoted pattern has to end with a '}}'
	if quoted {
		if err := parser.expect("}}", true); err != nil {
			return nil, err
		}
	}

	return items, nil
}

// parseExpressionOrMarkup parses a placeholder enclosed in '{' and '}'.
// Markup is only accepted if allowMarkup is set; otherwise the result is always an ast.Expression.
func (parser *Parser) parseExpressionOrMarkup(allowMarkup bool) (ast.PatternItem, error) {
	start := parser.str.CurrentCursorPos()

	// Skip the '{' and any whitespace after it
	parser.str.Skip(1)
	parser.skipWhitespaces()

	// Parse the optional operand; it has to be separated from anything but the closing '}'
	operand, err := parser.parseValue(false)
	if err != nil {
		return nil, err
	}
	if operand != nil {
		if err := parser.skipWhitespacesRequiredIfNotFollowedBy('}'); err != nil {
			return nil, err
		}
	}

	// Decide whether a function or a markup follows
	var function *ast.FunctionRef
	var markup *ast.Markup
	switch peek := parser.str.Peek(); peek {
	case '@', '}':
	case ':':
		functionStart := parser.str.CurrentCursorPos()
		parser.str.Skip(1)
		name, err := parser.parseIdentifier()
		if err != nil {
			return nil, err
		}
		options, err := parser.parseOptions()
		if err != nil {
			return nil, err
		}
		function = &ast.FunctionRef{
			Base: ast.Base{
				Type: ast.TypeFunctionRef,
				Span: [2]uint{uint(functionStart), uint(parser.str.CurrentCursorPos())},
			},
			Name:    name,
			Options: options,
		}
	case '#', '/':
		// Markup may neither appear outside of patterns nor have an operand
		if !allowMarkup || operand != nil {
			return nil, newError(ParseError, start, -1, "")
		}
		kind := ast.MarkupOpen
		if peek == '/' {
			kind = ast.MarkupClose
		}
		parser.str.Skip(1)
		name, err := parser.parseIdentifier()
		if err != nil {
			return nil, err
		}
		options, err := parser.parseOptions()
		if err != nil {
			return nil, err
		}
		markup = &ast.Markup{
			Base: ast.Base{
				Type: ast.TypeMarkup,
			},
			Kind:    kind,
			Name:    name,
			Options: options,
		}
	case EOF:
		return nil, newError(MissingSyntax, parser.str.CurrentCursorPos(), -1, "}")
	default:
		return nil, newError(ParseError, parser.str.CurrentCursorPos(), -1, "")
	}

	attributes, err := parser.parseAttributes()
	if err != nil {
		return nil, err
	}

	// An opening markup directly followed by a '/' stands alone
	if markup != nil && markup.Kind == ast.MarkupOpen && parser.str.Peek() == '/' {
		markup.Kind = ast.MarkupStandAlone
		parser.str.Skip(1)
	}

	// A closing '}' is required
	if err := parser.expect("}", true); err != nil {
		return nil, err
	}
	span := [2]uint{uint(start), uint(parser.str.CurrentCursorPos())}

	if markup != nil {
		markup.Span = span
		markup.Attributes = attributes
		return markup, nil
	}

	// Build the expression AST node matching the operand
	switch value := operand.(type) {
	case *ast.Literal:
		return &ast.LiteralExpression{
			Base: ast.Base{
				Type: ast.TypeLiteralExpression,
				Span: span,
			},
			Literal:    value,
			Function:   function,
			Attributes: attributes,
		}, nil
	case *ast.VariableRef:
		return &ast.VariableExpression{
			Base: ast.Base{
				Type: ast.TypeVariableExpression,
				Span: span,
			},
			Variable:   value,
			Function:   function,
			Attributes: attributes,
		}, nil
	default:
		// Without an operand, the expression consists of its function
		if function == nil {
			return nil, newError(EmptyToken, start, -1, "")
		}
		return &ast.FunctionExpression{
			Base: ast.Base{
				Type: ast.TypeFunctionExpression,
				Span: span,
			},
			Function:   function,
			Attributes: attributes,
		}, nil
	}
}

// parseOptions parses the options of a function or markup.
// If no options are present, nil is returned.
func (parser *Parser) parseOptions() (ast.Options, error) {
	var options ast.Options

	if err := parser.skipWhitespacesRequiredIfNotFollowedBy('/', '}'); err != nil {
		return nil, err
	}

	for parser.str.HasNext() {
		if anyOf(parser.str.Peek(), '/', '}', '@') {
			break
		}

		// Parse the name and ensure it is only used once
		nameStart := parser.str.CurrentCursorPos()
		name, err := parser.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if _, ok := options[name]; ok {
			return nil, newError(DuplicateOptionName, nameStart, parser.str.CurrentCursorPos(), "")
		}

		// A '=' surrounded by optional whitespace is required
		parser.skipWhitespaces()
		if err := parser.expect("=", true); err != nil {
			return nil, err
		}
		parser.skipWhitespaces()

		// Parse the value, which is always either a literal or a variable
		value, err := parser.parseValue(true)
		if err != nil {
			return nil, err
		}
		if options == nil {
			options = make(ast.Options)
		}
		options[name] = value

		if err := parser.skipWhitespacesRequiredIfNotFollowedBy('/', '}'); err != nil {
			return nil, err
		}
	}

	return options, nil
}

// parseAttributes parses the attributes of an expression or markup.
// If no attributes are present, nil is returned.
func (parser *Parser) parseAttributes() (ast.Attributes, error) {
	var attributes ast.Attributes

	for parser.str.Peek() == '@' {
		start := parser.str.CurrentCursorPos()

		// Skip the '@', parse the name and ensure it is only used once
		parser.str.Skip(1)
		name, err := parser.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if _, ok := attributes[name]; ok {
			return nil, newError(DuplicateAttribute, start, parser.str.CurrentCursorPos(), "")
		}
		if attributes == nil {
			attributes = make(ast.Attributes)
		}

		if err := parser.skipWhitespacesRequiredIfNotFollowedBy('=', '/', '}'); err != nil {
			return nil, err
		}

		// An attribute without a value is a boolean one
		if parser.str.Peek() != '=' {
			attributes[name] = &ast.BooleanAttribute{
				Base: ast.Base{
					Type: ast.TypeBooleanAttribute,
					Span: [2]uint{uint(start), uint(parser.str.CurrentCursorPos())},
				},
				Value: true,
			}
			continue
		}

		// Skip the '=' and parse the literal value
		parser.str.Skip(1)
		parser.skipWhitespaces()
		value, err := parser.parseLiteral(true)
		if err != nil {
			return nil, err
		}
		attributes[name] = value

		if err := parser.skipWhitespacesRequiredIfNotFollowedBy('/', '}'); err != nil {
			return nil, err
		}
	}

	return attributes, nil
}

// parseValue parses a variable or a literal.
// If required is not set and neither of them is present, nil is returned.
func (parser *Parser) parseValue(required bool) (ast.OptionValue, error) {
	if parser.str.Peek() == '$' {
		variable, err := parser.parseVariable()
		if err != nil {
			return nil, err
		}
		return variable, nil
	}

	literal, err := parser.parseLiteral(required)
	if err != nil {
		return nil, err
	}
	if literal == nil {
		return nil, nil
	}
	return literal, nil
}

// parseVariable parses a variable reference node
func (parser *Parser) parseVariable() (*ast.VariableRef, error) {
	start := parser.str.CurrentCursorPos()

	// A '$' is required
	if err := parser.expect("$", true); err != nil {
		return nil, err
	}

	name, err := parser.parseName()
	if err != nil {
		return nil, err
	}

	// Build the variable reference AST node
	return &ast.VariableRef{
		Base: ast.Base{
			Type: ast.TypeVariableRef,
			Span: [2]uint{uint(start), uint(parser.str.CurrentCursorPos())},
		},
		Name: name,
	}, nil
}

// parseLiteral parses a quoted or unquoted literal node.
// If required is not set and no literal is present, nil is returned.
func (parser *Parser) parseLiteral(required bool) (*ast.Literal, error) {
	if parser.str.Peek() == '|' {
		return parser.parseQuotedLiteral()
	}

	// An unquoted literal consists of name characters only
	start := parser.str.CurrentCursorPos()
	value := parser.str.PeekUntil(func(char rune) bool {
		return !isNameChar(char)
	})
	if len(value) == 0 {
		if required {
			return nil, newError(EmptyToken, start, -1, "")
		}
		return nil, nil
	}
	parser.str.Skip(len(value))

	// Build the literal AST node
	return &ast.Literal{
		Base: ast.Base{
			Type: ast.TypeLiteral,
			Span: [2]uint{uint(start), uint(parser.str.CurrentCursorPos())},
		},
		Value: string(value),
	}, nil
}

// parseQuotedLiteral parses a literal node enclosed in '|'.
// Escape sequences are kept as they are written.
func (parser *Parser) parseQuotedLiteral() (*ast.Literal, error) {
	start := parser.str.CurrentCursorPos()

	// Skip the opening '|'
	parser.str.Skip(1)

	var buffer strings.Builder
	for parser.str.HasNext() {
		switch peek := parser.str.Peek(); peek {
		case '\\':
			escaped := parser.str.PeekNth(1)
			if escaped == EOF {
				return nil, newError(MissingSyntax, parser.str.SrcLen(), -1, "|")
			}
			if !anyOf(escaped, '{', '}', '|', '\\') {
				pos := parser.str.CurrentCursorPos()
				return nil, newError(BadEscape, pos, pos+2, "")
			}
			buffer.WriteRune(peek)
			buffer.WriteRune(escaped)
			parser.str.Skip(2)
		case '|':
			parser.str.Skip(1)

			// Build the literal AST node
			return &ast.Literal{
				Base: ast.Base{
					Type: ast.TypeLiteral,
					Span: [2]uint{uint(start), uint(parser.str.CurrentCursorPos())},
				},
				Value: buffer.String(),
			}, nil
		case 0:
			return nil, newError(InvalidCharacter, parser.str.CurrentCursorPos(), -1, "")
		default:
			buffer.WriteRune(parser.str.Consume())
		}
	}

	// The source ended before the literal was closed
	return nil, newError(MissingSyntax, parser.str.SrcLen(), -1, "|")
}

// parseIdentifier parses a name that may be prefixed with a namespace ('namespace:name')
func (parser *Parser) parseIdentifier() (string, error) {
	name, err := parser.parseName()
	if err != nil {
		return "", err
	}

	if parser.str.Peek() != ':' {
		return name, nil
	}
	parser.str.Skip(1)
	local, err := parser.parseName()
	if err != nil {
		return "", err
	}
	return name + ":" + local, nil
}

// parseName parses a name.
// Leading bidi control characters are skipped; trailing ones and whitespace are not part of the name.
func (parser *Parser) parseName() (string, error) {
	parser.skipBidis()
	start := parser.str.CurrentCursorPos()

	// Collect every name character
	raw := parser.str.PeekUntil(func(char rune) bool {
		return !isNameChar(char)
	})
	parser.str.Skip(len(raw))

	name := trimTrailingWhitespaceAndBidi(raw)
	if !isValidName(name) {
		return "", newError(EmptyToken, start, parser.str.CurrentCursorPos(), "")
	}
	return string(name), nil
}

// readWhitespaces peeks the whitespace and bidi control characters at the cursor.
// The returned flag reports whether no actual whitespace is among them.
func (parser *Parser) readWhitespaces() ([]rune, bool) {
	blank := parser.str.PeekUntil(func(char rune) bool {
		return !isWhitespace(char) && !isBidi(char)
	})
	onlyBidiOrEmpty := true
	for _, char := range blank {
		if isWhitespace(char) {
			onlyBidiOrEmpty = false
			break
		}
	}
	return blank, onlyBidiOrEmpty
}

// skipWhitespaces moves the stream cursor forward until a character is found that is no whitespace and no bidi control character
func (parser *Parser) skipWhitespaces() {
	blank, _ := parser.readWhitespaces()
	parser.str.Skip(len(blank))
}

// skipBidis moves the stream cursor forward until a character is found that is no bidi control character
func (parser *Parser) skipBidis() {
	bidis := parser.str.PeekUntil(func(char rune) bool {
		return !isBidi(char)
	})
	parser.str.Skip(len(bidis))
}

// skipWhitespacesRequired skips whitespace and raises an error if there was none
func (parser *Parser) skipWhitespacesRequired() error {
	blank, onlyBidiOrEmpty := parser.readWhitespaces()
	parser.str.Skip(len(blank))
	if onlyBidiOrEmpty {
		return newError(EmptyToken, parser.str.CurrentCursorPos(), -1, "")
	}
	return nil
}

// skipWhitespacesRequiredIfNotFollowedBy skips whitespace.
// Whitespace is only optional if the first character after it is one of the terminators; otherwise an error is raised if there was none.
func (parser *Parser) skipWhitespacesRequiredIfNotFollowedBy(terminators ...rune) error {
	blank, onlyBidiOrEmpty := parser.readWhitespaces()
	next := parser.str.PeekNth(len(blank))
	parser.str.Skip(len(blank))
	if anyOf(next, terminators...) {
		return nil
	}
	if onlyBidiOrEmpty {
		return newError(EmptyToken, parser.str.CurrentCursorPos(), -1, "")
	}
	return nil
}

// expect expects a sequence of characters at the cursor and consumes them if consume is set.
// The error points to the first character that does not match.
func (parser *Parser) expect(expected string, consume bool) error {
	found := 0
	for _, char := range expected {
		if parser.str.PeekNth(found) != char {
			return newError(MissingSyntax, parser.str.CurrentCursorPos()+found, -1, expected)
		}
		found++
	}
	if consume {
		parser.str.Skip(found)
	}
	return nil
}
