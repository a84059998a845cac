// Package parser turns tokens into an expression tree in two stages: a
// shunting-yard pass to reverse Polish notation, then an operand-stack pass
// that builds and shape-checks the nodes.
package parser

import (
	"errors"
	"fmt"

	"github.com/gnoswap-labs/formula/ast"
	"github.com/gnoswap-labs/formula/internal/types"
	"github.com/gnoswap-labs/formula/lexer"
)

// Parser builds a tree from a fixed token sequence.
type Parser struct {
	tokens []lexer.Token
}

func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes and parses text.
func Parse(text string) (ast.Node, error) {
	tokens, err := lexer.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// ParseTokens parses an already tokenized formula.
func ParseTokens(tokens []lexer.Token) (ast.Node, error) {
	return NewParser(tokens).Parse()
}

// Parse runs both stages and returns the single resulting tree.
func (p *Parser) Parse() (ast.Node, error) {
	rpn, err := ToRPN(p.tokens)
	if err != nil {
		return nil, err
	}
	return Build(rpn)
}

type operand struct {
	node ast.Node
	pos  int
}

// Build turns an RPN sequence into a tree. Exactly one operand must remain.
func Build(items []Item) (ast.Node, error) {
	var stack []operand

	pop := func(n int, tok lexer.Token) ([]operand, error) {
		if len(stack) < n {
			return nil, types.NewParseError(tok.Pos, "missing operand for %s", funcName(tok))
		}
		args := append([]operand(nil), stack[len(stack)-n:]...)
		stack = stack[:len(stack)-n]
		return args, nil
	}

	for _, it := range items {
		tok := it.Token
		var (
			node ast.Node
			err  error
		)

		switch k := tok.Kind; {
		case k == lexer.NUMBER:
			node = ast.NumUnit(tok.Value, tok.Unit)
		case k == lexer.IDENT:
			node = ast.Var(tok.Name)
		case k == lexer.TRUE || k == lexer.FALSE:
			node = ast.BoolLit(k == lexer.TRUE)

		case k == lexer.LBRACK:
			var args []operand
			if args, err = pop(it.Argc, tok); err != nil {
				return nil, err
			}
			node, err = bracket(nodes(args))

		case k.IsFunction():
			var args []operand
			if args, err = pop(it.Argc, tok); err != nil {
				return nil, err
			}
			node, err = function(tok, nodes(args))

		case k.IsOperator():
			def := operators[k]
			if def.fix != infix {
				var args []operand
				if args, err = pop(1, tok); err != nil {
					return nil, err
				}
				node, err = ast.NewUnary(def.op, args[0].node)
				break
			}
			var args []operand
			if args, err = pop(2, tok); err != nil {
				return nil, err
			}
			if k == lexer.ASSIGN {
				target, ok := args[0].node.(*ast.Variable)
				if !ok {
					return nil, types.NewParseError(tok.Pos, "assignment target must be a variable, got %s", args[0].node)
				}
				node, err = ast.NewAssign(target, args[1].node)
				break
			}
			node, err = ast.NewBinary(def.op, args[0].node, args[1].node)

		default:
			return nil, types.NewParseError(tok.Pos, "unexpected token %s", tok)
		}

		if err != nil {
			return nil, shapeError(tok.Pos, err)
		}
		stack = append(stack, operand{node: node, pos: tok.Pos})
	}

	switch len(stack) {
	case 0:
		return nil, types.NewParseError(-1, "empty expression")
	case 1:
		return stack[0].node, nil
	}
	return nil, types.NewParseError(stack[1].pos, "unexpected operand %s", stack[1].node)
}

func nodes(args []operand) []ast.Node {
	out := make([]ast.Node, len(args))
	for i, a := range args {
		out[i] = a.node
	}
	return out
}

// bracket builds a vector, or a matrix when every element is a vector.
func bracket(elems []ast.Node) (ast.Node, error) {
	rows := 0
	for _, e := range elems {
		if v, ok := e.(*ast.Variadic); ok && v.Op() == ast.OpVector {
			rows++
		}
	}
	if rows > 0 && rows == len(elems) {
		return ast.NewVariadic(ast.OpMatrix, "", elems)
	}
	return ast.NewVariadic(ast.OpVector, "", elems)
}

func function(tok lexer.Token, args []ast.Node) (ast.Node, error) {
	op := functions[tok.Kind]
	if short, ok := shorthands[op]; ok && len(args) == 1 {
		op = short
	}

	switch op.Shape() {
	case ast.ShapeUnary:
		if len(args) != 1 {
			return nil, arityError(tok, 1, len(args))
		}
		return ast.NewUnary(op, args[0])
	case ast.ShapeBinary:
		if len(args) != 2 {
			return nil, arityError(tok, 2, len(args))
		}
		if op == ast.OpDiff {
			if _, ok := args[1].(*ast.Variable); !ok {
				return nil, types.NewParseError(tok.Pos, "diff: second argument must be a variable, got %s", args[1])
			}
		}
		return ast.NewBinary(op, args[0], args[1])
	case ast.ShapeVariadic:
		return ast.NewVariadic(op, tok.Name, args)
	case ast.ShapeControl:
		return ast.NewControl(op, args...)
	}
	return nil, types.NewParseError(tok.Pos, "unknown function %s", funcName(tok))
}

func arityError(tok lexer.Token, want, got int) error {
	noun := "arguments"
	if want == 1 {
		noun = "argument"
	}
	return types.NewParseError(tok.Pos, "%s takes %d %s, got %d", funcName(tok), want, noun, got)
}

// shapeError reports construction failures as parse errors at pos.
func shapeError(pos int, err error) error {
	var pe *types.ParseError
	if errors.As(err, &pe) {
		return err
	}
	var ce *ast.ConstructError
	if errors.As(err, &ce) {
		return &types.ParseError{Pos: pos, Msg: ce.Error()}
	}
	return fmt.Errorf("parse: %w", err)
}
