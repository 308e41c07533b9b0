package mf2

import (
	"strings"
	"testing"

	"github.com/lus/mf2.go/parser"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

func TestAddMessage(t *testing.T) {
	bundle := NewBundle(language.English)

	if err := bundle.AddMessage("greeting", "Hello {$name}!"); err != nil {
		t.Fatal(err)
	}
	if !bundle.HasMessage("greeting") {
		t.Fatal("message 'greeting' was not added")
	}
	if bundle.HasMessage("farewell") {
		t.Fatal("message 'farewell' should not exist")
	}

	// Adding the same ID twice is only allowed when overriding
	if err := bundle.AddMessage("greeting", "Hi"); err == nil {
		t.Fatal("expected an error when adding a duplicate message")
	}
	if err := bundle.AddMessageOverriding("greeting", "Hi"); err != nil {
		t.Fatal(err)
	}
	result, _, err := bundle.FormatMessage("greeting")
	if err != nil {
		t.Fatal(err)
	}
	if result != "Hi" {
		t.Errorf("overridden message formatted to %q", result)
	}
}

func TestAddMessageInvalid(t *testing.T) {
	bundle := NewBundle(language.English)

	err := bundle.AddMessage("broken", "{{x}}y")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), "message 'broken'") {
		t.Errorf("error %q does not name the message", err)
	}
	parseErr, ok := errors.Cause(err).(*parser.Error)
	if !ok {
		t.Fatalf("cause of %q is not a *parser.Error", err)
	}
	if parseErr.Kind != parser.ExtraContent || parseErr.Span != [2]uint{5, 6} {
		t.Errorf("unexpected parse error %+v", parseErr)
	}
	if !parser.IsKind(err, parser.ExtraContent) {
		t.Error("IsKind does not see through the wrapped error")
	}
	if bundle.HasMessage("broken") {
		t.Error("invalid message was added")
	}
}

func TestFormatMessageUnknown(t *testing.T) {
	bundle := NewBundle(language.English)

	result, errs, err := bundle.FormatMessage("missing")
	if err == nil {
		t.Fatal("expected an error for an unknown message")
	}
	if result != "" || errs != nil {
		t.Errorf("unexpected result %q with errors %v", result, errs)
	}
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name    string
		locale  language.Tag
		source  string
		options []FormatOption
		result  string
		errors  int
	}{
		{
			name:    "variable",
			source:  "Hello {$name}!",
			options: []FormatOption{WithVariable("name", "World")},
			result:  "Hello World!",
		},
		{
			name:   "unbound variable",
			source: "Hello {$name}!",
			result: "Hello {$name}!",
			errors: 1,
		},
		{
			name:   "local declaration",
			source: ".local $x = {42}\n{{You have {$x} items}}",
			result: "You have 42 items",
		},
		{
			name:    "local shadows variable",
			source:  ".local $x = {|inner|}\n{{{$x}}}",
			options: []FormatOption{WithVariable("x", "outer")},
			result:  "inner",
		},
		{
			name:    "local references earlier declaration",
			source:  ".input {$a}\n.local $b = {$a :string}\n{{{$b}}}",
			options: []FormatOption{WithVariable("a", "value")},
			result:  "value",
		},
		{
			name:   "quoted literal escapes",
			source: `{|a\|b\\c|}`,
			result: `a|b\c`,
		},
		{
			name:   "markup renders empty",
			source: "Click {#link href=|/x|}here{/link}{#br/}",
			result: "Click here",
		},
		{
			name:   "unknown function",
			source: "Now: {:now}",
			result: "Now: {:now}",
			errors: 1,
		},
		{
			name:   "function on unbound variable",
			source: "{$n :number}",
			result: "{$n}",
			errors: 1,
		},
		{
			name:   "function without operand",
			source: "{:upper}",
			options: []FormatOption{WithFunction("upper", func(operand Value, _ map[string]Value) Value {
				if operand != nil {
					return String("unexpected")
				}
				return String("NONE")
			})},
			result: "NONE",
		},
		{
			name:   "custom function with options",
			source: "{$name :wrap left=|<| right=$right}",
			options: []FormatOption{
				WithVariables(map[string]interface{}{"name": "x", "right": ">"}),
				WithFunction("wrap", func(operand Value, options map[string]Value) Value {
					return String(options["left"].String() + operand.String() + options["right"].String())
				}),
			},
			result: "<x>",
		},
		{
			name:   "custom function overrides built-in",
			source: "{$n :number}",
			options: []FormatOption{
				WithVariable("n", 5),
				WithFunction("number", func(operand Value, _ map[string]Value) Value {
					return String("five")
				}),
			},
			result: "five",
		},
		{
			name:   "function returning nil",
			source: "{:nothing}",
			options: []FormatOption{WithFunction("nothing", func(Value, map[string]Value) Value {
				return nil
			})},
			result: "{:nothing}",
			errors: 1,
		},
		{
			name:    "number english",
			source:  "{$n :number}",
			options: []FormatOption{WithVariable("n", 1234.5)},
			result:  "1,234.5",
		},
		{
			name:    "number german",
			locale:  language.German,
			source:  "{$n :number}",
			options: []FormatOption{WithVariable("n", 1234.5)},
			result:  "1.234,5",
		},
		{
			name:    "number minimum fraction digits",
			source:  "{$n :number minimumFractionDigits=2}",
			options: []FormatOption{WithVariable("n", 3)},
			result:  "3.00",
		},
		{
			name:   "number from literal",
			source: "{|1000| :number}",
			result: "1,000",
		},
		{
			name:   "number from invalid literal",
			source: "{|abc| :number}",
			result: "{|abc|}",
		},
		{
			name:    "integer",
			source:  "{$n :integer}",
			options: []FormatOption{WithVariable("n", 4.7)},
			result:  "4",
		},
		{
			name:   "number without operand",
			source: "{:number}",
			result: "{:number}",
		},
		{
			name:   "integer without operand",
			source: "{:integer}",
			result: "{:integer}",
		},
		{
			name:    "string",
			source:  "{$n :string}",
			options: []FormatOption{WithVariable("n", 12)},
			result:  "12",
		},
		{
			name:    "plain number variable",
			source:  "{$n}",
			options: []FormatOption{WithVariable("n", 2.5)},
			result:  "2.5",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			locale := test.locale
			if locale == language.Und {
				locale = language.English
			}
			bundle := NewBundle(locale)
			if err := bundle.AddMessage("test", test.source); err != nil {
				t.Fatal(err)
			}

			result, errs, err := bundle.FormatMessage("test", test.options...)
			if err != nil {
				t.Fatal(err)
			}
			if result != test.result {
				t.Errorf("formatted to %q, expected %q", result, test.result)
			}
			if len(errs) != test.errors {
				t.Errorf("got %d resolver errors (%v), expected %d", len(errs), errs, test.errors)
			}
		})
	}
}
