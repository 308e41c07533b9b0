package mf2

import "strconv"

// Function represents a function that builds a Value from an operand and named options.
// The operand is nil if the expression calling the function has none.
type Function func(operand Value, options map[string]Value) Value

// A Value is the result of a resolving operation performed by the resolver.
// It represents either a string or a number.
type Value interface {
	String() string
}

// StringValue wraps a string in order to comply with the Value API
type StringValue struct {
	Value string
}

// String returns the wrapped value of a StringValue
func (value *StringValue) String() string {
	return value.Value
}

// String returns a new StringValue with the given value; used for variables
func String(val string) *StringValue {
	return &StringValue{
		Value: val,
	}
}

// NumberValue wraps a number in order to comply with the Value API.
// Formatted holds a locale specific representation if a function produced one.
type NumberValue struct {
	Value     float64
	Formatted string
}

// String formats a NumberValue into a string
func (value *NumberValue) String() string {
	if value.Formatted != "" {
		return value.Formatted
	}
	return strconv.FormatFloat(value.Value, 'f', -1, 64)
}

// Number returns a new NumberValue with the given value; used for variables
func Number(val float64) *NumberValue {
	return &NumberValue{
		Value: val,
	}
}

// NoValue is used whenever no "real" value could be built
type NoValue struct {
	value string
}

// String returns the NoValue's string representation
func (value *NoValue) String() string {
	return "{" + value.value + "}"
}
