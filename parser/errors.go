package parser

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the syntax errors the parser may raise
type ErrorKind string

const (
	EmptyToken          ErrorKind = "EmptyToken"
	BadEscape           ErrorKind = "BadEscape"
	BadInputExpression  ErrorKind = "BadInputExpression"
	DuplicateAttribute  ErrorKind = "DuplicateAttribute"
	DuplicateOptionName ErrorKind = "DuplicateOptionName"
	ExtraContent        ErrorKind = "ExtraContent"
	ParseError          ErrorKind = "ParseError"
	MissingSyntax       ErrorKind = "MissingSyntax"
	InvalidCharacter    ErrorKind = "InvalidCharacter"
)

// Error represents an error raised by the parser.
// Span holds the half-open [start, end) character offsets the error refers to.
type Error struct {
	Kind     ErrorKind
	Span     [2]uint
	Expected string
}

// Error turns the error into a string
func (err *Error) Error() string {
	if err.Expected != "" {
		return fmt.Sprintf("%s at %d: '%s' expected", err.Kind, err.Span[0], err.Expected)
	}
	return fmt.Sprintf("%s at %d", err.Kind, err.Span[0])
}

// IsKind checks whether err is (or wraps) a parser error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.Kind == kind
	}
	return false
}

// newError creates a new error.
// If end is not behind start, the error spans a single character.
func newError(kind ErrorKind, start, end int, expected string) *Error {
	if end <= start {
		end = start + 1
	}
	return &Error{
		Kind:     kind,
		Span:     [2]uint{uint(start), uint(end)},
		Expected: expected,
	}
}
