package mf2

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lus/mf2.go/parser/ast"
	"github.com/pkg/errors"
	"golang.org/x/text/feature/plural"
)

var pluralStrings = map[plural.Form]string{
	plural.Other: "other",
	plural.Zero:  "zero",
	plural.One:   "one",
	plural.Two:   "two",
	plural.Few:   "few",
	plural.Many:  "many",
}

// Ranks of a single key when matched against its selector; lower ranks are preferred
const (
	rankExact = iota
	rankPlural
	rankCatchAll
)

// The resolver is used to resolve instances of ast.Message into instances of Value.
// It uses context-relevant values and the initial Bundle for resolving specific values.
type resolver struct {
	bundle    *Bundle
	locals    map[string]Value
	variables map[string]Value
	functions map[string]Function
	errors    []error
}

func (resolver *resolver) resolveMessage(message ast.Message) Value {
	switch m := message.(type) {
	case *ast.PatternMessage:
		resolver.resolveDeclarations(m.Declarations)
		return resolver.resolvePattern(m.Pattern)

	case *ast.SelectMessage:
		resolver.resolveDeclarations(m.Declarations)
		return resolver.resolveSelectMessage(m)

	default:
		return &NoValue{value: "???"}
	}
}

// Declarations are resolved in source order, so a declaration only sees the ones before it
func (resolver *resolver) resolveDeclarations(declarations []ast.Declaration) {
	for _, declaration := range declarations {
		switch d := declaration.(type) {
		case *ast.InputDeclaration:
			resolver.locals[d.Name] = resolver.resolveExpression(d.Value)
		case *ast.LocalDeclaration:
			resolver.locals[d.Name] = resolver.resolveExpression(d.Value)
		}
	}
}

func (resolver *resolver) resolveExpression(expression ast.Expression) Value {
	switch e := expression.(type) {
	case *ast.LiteralExpression:
		return resolver.resolveAnnotation(String(unescape(e.Literal.Value)), e.Function)

	case *ast.VariableExpression:
		return resolver.resolveAnnotation(resolver.resolveVariableReference(e.Variable), e.Function)

	case *ast.FunctionExpression:
		return resolver.resolveFunctionReference(e.Function, nil)

	default:
		return &NoValue{value: "???"}
	}
}

func (resolver *resolver) resolveAnnotation(operand Value, function *ast.FunctionRef) Value {
	if function == nil {
		return operand
	}
	// Functions are never called with a fallback value
	if _, ok := operand.(*NoValue); ok {
		return operand
	}
	return resolver.resolveFunctionReference(function, operand)
}

func (resolver *resolver) resolveVariableReference(ref *ast.VariableRef) Value {
	if val, set := resolver.locals[ref.Name]; set {
		return val
	}
	if val, set := resolver.variables[ref.Name]; set {
		return val
	}

	resolver.errors = append(resolver.errors, errors.Errorf("unknown variable '$%s'", ref.Name))
	return &NoValue{"$" + ref.Name}
}

func (resolver *resolver) resolveFunctionReference(ref *ast.FunctionRef, operand Value) Value {
	function := resolver.functions[ref.Name]
	if function == nil {
		resolver.errors = append(resolver.errors, errors.Errorf("unknown function '%s'", ref.Name))
		return &NoValue{
			value: ":" + ref.Name,
		}
	}

	result := function(operand, resolver.assembleOptions(ref.Options))
	if result == nil {
		resolver.errors = append(resolver.errors, errors.Errorf("function '%s' returned no value", ref.Name))
		return &NoValue{
			value: ":" + ref.Name,
		}
	}
	return result
}

func (resolver *resolver) assembleOptions(options ast.Options) map[string]Value {
	named := make(map[string]Value, len(options))
	for name, option := range options {
		switch o := option.(type) {
		case *ast.Literal:
			named[name] = String(unescape(o.Value))
		case *ast.VariableRef:
			named[name] = resolver.resolveVariableReference(o)
		}
	}
	return named
}

func (resolver *resolver) resolveSelectMessage(message *ast.SelectMessage) Value {
	selectors := make([]Value, 0, len(message.Selectors))
	for _, selector := range message.Selectors {
		selectors = append(selectors, resolver.resolveVariableReference(selector))
	}

	var best *ast.Variant
	var bestRanks []int
	for _, variant := range message.Variants {
		if len(variant.Keys) != len(selectors) {
			resolver.errors = append(resolver.errors, errors.Errorf("variant has %d keys but the message has %d selectors", len(variant.Keys), len(selectors)))
			continue
		}
		ranks, ok := resolver.matchVariant(selectors, variant.Keys)
		if !ok {
			continue
		}
		// Ties keep the variant that comes first
		if best == nil || lessRanks(ranks, bestRanks) {
			best = variant
			bestRanks = ranks
		}
	}

	if best == nil {
		resolver.errors = append(resolver.errors, errors.New("no variant matches the selectors"))
		return &NoValue{
			value: "???",
		}
	}
	return resolver.resolvePattern(best.Value)
}

func (resolver *resolver) matchVariant(selectors []Value, keys []ast.VariantKey) ([]int, bool) {
	ranks := make([]int, 0, len(keys))
	for i, key := range keys {
		switch k := key.(type) {
		case *ast.CatchAllKey:
			ranks = append(ranks, rankCatchAll)
		case *ast.Literal:
			rank, ok := resolver.matchKey(selectors[i], unescape(k.Normalize()))
			if !ok {
				return nil, false
			}
			ranks = append(ranks, rank)
		default:
			return nil, false
		}
	}
	return ranks, true
}

func (resolver *resolver) matchKey(selector Value, key string) (int, bool) {
	switch s := selector.(type) {
	case *NumberValue:
		if parsed, err := strconv.ParseFloat(key, 64); err == nil && parsed == s.Value {
			return rankExact, true
		}
		if pluralStrings[resolver.getPluralCategory(s.Value)] == key {
			return rankPlural, true
		}
		return 0, false

	case *NoValue:
		// A selector that failed to resolve only matches catch-all keys
		return 0, false

	default:
		return rankExact, selector.String() == key
	}
}

func lessRanks(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func (resolver *resolver) resolvePattern(pattern []ast.PatternItem) Value {
	var result strings.Builder
	for _, item := range pattern {
		switch i := item.(type) {
		case *ast.Text:
			result.WriteString(i.Value)
		case ast.Expression:
			result.WriteString(resolver.resolveExpression(i).String())
		case *ast.Markup:
			// Markup carries no text of its own
		}
	}
	return &StringValue{
		Value: result.String(),
	}
}

func (resolver *resolver) getPluralCategory(value float64) plural.Form {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return plural.Other
	}

	format := fmt.Sprintf("%.2f", math.Abs(value))
	parts := strings.Split(strings.TrimRight(format, "0"), ".")

	bytes := make([]byte, len(parts[0])+len(parts[1]))
	for i, digit := range parts[0] {
		bytes[i] = byte(digit - '0')
	}
	for i, digit := range parts[1] {
		bytes[i+len(parts[0])] = byte(digit - '0')
	}

	return plural.Cardinal.MatchDigits(resolver.bundle.locales[0], bytes, len(parts[0]), len(parts[1]))
}

// unescape drops the backslashes a quoted literal uses to escape '\' and '|'
func unescape(value string) string {
	if !strings.ContainsRune(value, '\\') {
		return value
	}

	var result strings.Builder
	escaped := false
	for _, char := range value {
		if char == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		result.WriteRune(char)
	}
	return result.String()
}
