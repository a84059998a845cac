// Package formula parses, simplifies and differentiates symbolic
// expressions. It wraps the lexer, parser, simplify and derive packages
// behind a small set of functions for callers that need no configuration.
package formula

import (
	"github.com/gnoswap-labs/formula/ast"
	"github.com/gnoswap-labs/formula/derive"
	"github.com/gnoswap-labs/formula/formatter"
	"github.com/gnoswap-labs/formula/internal/types"
	"github.com/gnoswap-labs/formula/lexer"
	"github.com/gnoswap-labs/formula/parser"
	"github.com/gnoswap-labs/formula/simplify"
)

type (
	Node  = ast.Node
	Token = lexer.Token

	LexError          = types.LexError
	ParseError        = types.ParseError
	NotSupportedError = types.NotSupportedError
	ArgumentError     = types.ArgumentError
)

// ErrDivideByZero is returned when simplification meets a literal zero divisor.
var ErrDivideByZero = types.ErrDivideByZero

var defaultDerivator = derive.New()

func Tokenize(text string) ([]Token, error) {
	return lexer.Tokenize(text)
}

func Parse(text string) (Node, error) {
	return parser.Parse(text)
}

func ParseTokens(tokens []Token) (Node, error) {
	return parser.ParseTokens(tokens)
}

// RPN returns the postfix form of text, one item per token.
func RPN(text string) (string, error) {
	tokens, err := lexer.Tokenize(text)
	if err != nil {
		return "", err
	}
	items, err := parser.ToRPN(tokens)
	if err != nil {
		return "", err
	}
	return parser.FormatRPN(items), nil
}

// Analyze runs a on n. It is ast.Analyze re-exported for callers that only
// import this package.
func Analyze(n Node, a ast.Analyzer, ctx any) (Node, error) {
	return ast.Analyze(n, a, ctx)
}

// Simplify rewrites n with every rule enabled. Params are substituted for
// free variables first.
func Simplify(n Node, params map[string]Node) (Node, error) {
	return simplify.New().Simplify(n, &simplify.Context{Params: params})
}

// Differentiate returns the simplified derivative of n with respect to
// variable.
func Differentiate(n Node, variable string) (Node, error) {
	return defaultDerivator.Derive(n, &derive.Context{Var: variable})
}

// Evaluate parses text, resolves embedded derivatives and simplifies the
// result. A formula without free variables evaluates to a literal.
func Evaluate(text string, params map[string]Node) (Node, error) {
	n, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	if n, err = defaultDerivator.Resolve(n, nil); err != nil {
		return nil, err
	}
	return Simplify(n, params)
}

// Format prints n in infix notation with the fewest parentheses that keep
// its structure.
func Format(n Node) string {
	return formatter.Infix(n)
}
