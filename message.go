package mf2

import (
	"github.com/lus/mf2.go/parser"
	"github.com/lus/mf2.go/parser/ast"
)

// Parse parses the given MF2 source string into either an *ast.PatternMessage or an *ast.SelectMessage.
// If the source is not valid, the returned error is a *parser.Error describing the first problem.
func Parse(source string) (ast.Message, error) {
	return parser.New(source).Parse()
}
