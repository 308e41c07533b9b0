package mf2

import (
	"fmt"
	"strings"

	"github.com/lus/mf2.go/parser/ast"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

// Bundle represents a collection of parsed messages sharing the same locales.
// It provides the main API to format messages.
type Bundle struct {
	locales  []language.Tag
	messages map[string]ast.Message
}

// NewBundle creates a new empty bundle
func NewBundle(primaryLocale language.Tag, fallbackLocales ...language.Tag) *Bundle {
	locales := make([]language.Tag, 0, len(fallbackLocales)+1)
	locales = append(locales, primaryLocale)
	locales = append(locales, fallbackLocales...)

	return &Bundle{
		locales:  locales,
		messages: make(map[string]ast.Message),
	}
}

// Locales returns the primary locale of the bundle followed by its fallbacks
func (bundle *Bundle) Locales() []language.Tag {
	return bundle.locales
}

// AddMessage parses the source of a message and adds it to the Bundle under the given ID.
// If a message with the same ID was already added, an error is raised and the message is skipped.
func (bundle *Bundle) AddMessage(id, source string) error {
	if bundle.messages[id] != nil {
		return errors.Errorf("message '%s' is already defined", id)
	}
	return bundle.AddMessageOverriding(id, source)
}

// AddMessageOverriding parses the source of a message and adds it to the Bundle under the given ID.
// If a message with the same ID was already added, the already existing one gets overridden.
func (bundle *Bundle) AddMessageOverriding(id, source string) error {
	message, err := Parse(source)
	if err != nil {
		return errors.Wrapf(err, "message '%s'", id)
	}
	bundle.messages[id] = message
	return nil
}

// HasMessage checks whether a message with the given ID was added to the Bundle
func (bundle *Bundle) HasMessage(id string) bool {
	return bundle.messages[id] != nil
}

// FormatOption configures a single FormatMessage call
type FormatOption func(*resolver)

// WithVariable passes a single variable to the message
func WithVariable(key string, value interface{}) FormatOption {
	return WithVariables(map[string]interface{}{key: value})
}

// WithVariables passes multiple variables to the message
func WithVariables(variables map[string]interface{}) FormatOption {
	return func(r *resolver) {
		if r.variables == nil {
			r.variables = make(map[string]Value, len(variables))
		}

		for name, variable := range variables {
			r.variables[strings.TrimSpace(name)] = resolveValue(variable)
		}
	}
}

func resolveValue(value interface{}) Value {
	switch val := value.(type) {
	case Value:
		return val
	case string:
		return String(val)
	case float32:
		return Number(float64(val))
	case float64:
		return Number(val)
	case int:
		return Number(float64(val))
	case int8:
		return Number(float64(val))
	case int16:
		return Number(float64(val))
	case int32:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case uint:
		return Number(float64(val))
	case uint8:
		return Number(float64(val))
	case uint16:
		return Number(float64(val))
	case uint32:
		return Number(float64(val))
	case uint64:
		return Number(float64(val))
	default:
		return String(fmt.Sprint(val))
	}
}

// WithFunction makes a single function available to the message.
// Functions passed this way take precedence over the built-in ones.
func WithFunction(name string, function Function) FormatOption {
	return WithFunctions(map[string]Function{name: function})
}

// WithFunctions makes multiple functions available to the message
func WithFunctions(functions map[string]Function) FormatOption {
	return func(r *resolver) {
		if r.functions == nil {
			r.functions = make(map[string]Function, len(functions))
		}

		for name, function := range functions {
			r.functions[strings.TrimSpace(name)] = function
		}
	}
}

// FormatMessage formats the message with the given ID.
// To pass variables or functions, pass options created using WithVariable, WithVariables, WithFunction or WithFunctions.
// Besides the formatted message, this method returns the errors the resolver stumbled upon during resolving specific values
// and an optional error if there is no message with the given ID.
// If the resolver returns errors it does not automatically mean that the whole message could not be resolved.
// It may be just incomplete.
func (bundle *Bundle) FormatMessage(id string, options ...FormatOption) (string, []error, error) {
	msg := bundle.messages[id]
	if msg == nil {
		return "", nil, errors.Errorf("message '%s' does not exist", id)
	}

	res := &resolver{
		bundle:    bundle,
		locals:    make(map[string]Value),
		variables: make(map[string]Value),
		functions: bundle.builtinFunctions(),
		errors:    []error{},
	}
	for _, opt := range options {
		opt(res)
	}

	result := res.resolveMessage(msg).String()
	return result, res.errors, nil
}
