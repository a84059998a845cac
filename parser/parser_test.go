package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/formula/ast"
	"github.com/gnoswap-labs/formula/internal/types"
	"github.com/gnoswap-labs/formula/lexer"
)

func num(v float64) ast.Node { return ast.Num(v) }
func v(name string) ast.Node  { return ast.Var(name) }

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  ast.Node
	}{
		{"power is right associative", "1 ^ 2 ^ 3", ast.Pow(num(1), ast.Pow(num(2), num(3)))},
		{"subtraction is left associative", "1 - 2 - 3", ast.Sub(ast.Sub(num(1), num(2)), num(3))},
		{"implicit multiplication with constant", "3pi", ast.Mul(num(3), v("pi"))},
		{"implicit multiplication with variable", "2x + 1", ast.Add(ast.Mul(num(2), v("x")), num(1))},
		{"implicit multiplication before group", "2(x+1)", ast.Mul(num(2), ast.Add(v("x"), num(1)))},
		{"implicit multiplication between calls", "sin(x)cos(x)", ast.Mul(ast.Fn(ast.OpSin, v("x")), ast.Fn(ast.OpCos, v("x")))},
		{"leading minus", "-2", ast.Neg(num(2))},
		{"minus after paren", "(-2)", ast.Neg(num(2))},
		{"minus binds weaker than power", "-x^2", ast.Neg(ast.Pow(v("x"), num(2)))},
		{"minus binds tighter than product", "-a*b", ast.Mul(ast.Neg(v("a")), v("b"))},
		{"factorial is postfix", "3!^2", ast.Pow(ast.Fn(ast.OpFact, num(3)), num(2))},
		{"precedence of product over sum", "1 + 2 * 3", ast.Add(num(1), ast.Mul(num(2), num(3)))},
		{"mod keyword", "7 mod 3", ast.Bin(ast.OpMod, num(7), num(3))},
		{"two argument log", "log(8, 2)", ast.Bin(ast.OpLog, num(8), num(2))},
		{"one argument log is lg", "log(100)", ast.Fn(ast.OpLg, num(100))},
		{"one argument root is sqrt", "root(9)", ast.Fn(ast.OpSqrt, num(9))},
		{"derivative", "diff(x^2, x)", ast.Derivative(ast.Pow(v("x"), num(2)), ast.Var("x"))},
		{"vector", "[1, 2, 3]", ast.Vector(num(1), num(2), num(3))},
		{
			"matrix",
			"[[1, 2], [3, 4]]",
			ast.MustVariadic(ast.OpMatrix, "", []ast.Node{
				ast.Vector(num(1), num(2)),
				ast.Vector(num(3), num(4)),
			}),
		},
		{"vector of mixed elements", "[[1], 2]", ast.Vector(ast.Vector(num(1)), num(2))},
		{"user call", "f(x, 2)", ast.Call("f", v("x"), num(2))},
		{"min is variadic", "min(3, 1, 2)", ast.MustVariadic(ast.OpMin, "", []ast.Node{num(3), num(1), num(2)})},
		{"assignment", "a := 2 + 3", &ast.Assign{}},
		{"not binds tighter than and", "not a & b", ast.Bin(ast.OpAnd, ast.Not(v("a")), v("b"))},
		{"comparison under implication", "x < 1 -> y", ast.Bin(ast.OpImpl, ast.Bin(ast.OpLt, v("x"), num(1)), v("y"))},
		{"implication is right associative", "a -> b -> c", ast.Bin(ast.OpImpl, v("a"), ast.Bin(ast.OpImpl, v("b"), v("c")))},
		{"boolean literal", "true | x", ast.Bin(ast.OpOr, ast.BoolLit(true), v("x"))},
		{"degree literal", "90°", ast.NumUnit(90, "deg")},
		{"unit literal", "3_kg", ast.NumUnit(3, "kg")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.input)
			require.NoError(t, err)

			want := tt.want
			if _, ok := want.(*ast.Assign); ok {
				a, err := ast.NewAssign(ast.Var("a"), ast.Add(num(2), num(3)))
				require.NoError(t, err)
				want = a
			}
			assert.True(t, ast.Equal(want, got), "want %s, got %s", want, got)
		})
	}
}

func TestParseControl(t *testing.T) {
	t.Parallel()

	got, err := Parse("if(x > 0, 1, 2)")
	require.NoError(t, err)

	c, ok := got.(*ast.Control)
	require.True(t, ok, "got %T", got)
	assert.Equal(t, ast.OpIf, c.Op())
	assert.True(t, ast.Equal(ast.Bin(ast.OpGt, v("x"), num(0)), c.Cond()))
	assert.True(t, ast.Equal(num(1), c.Then()))
	assert.True(t, ast.Equal(num(2), c.Else()))

	got, err = Parse("table(x^2, x, 0, 10, 2)")
	require.NoError(t, err)
	tbl, ok := got.(*ast.Variadic)
	require.True(t, ok)
	assert.Equal(t, ast.OpTable, tbl.Op())
	assert.Equal(t, 5, tbl.Len())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"leftover operand", "sin(x)2"},
		{"unbalanced open paren", "(2"},
		{"unmatched close paren", "2)"},
		{"unmatched close bracket", "(1]"},
		{"empty input", ""},
		{"blank input", "   "},
		{"comma outside group", "1, 2"},
		{"comma in plain parens", "(1, 2)"},
		{"function without parens", "sin x"},
		{"function at end", "2 + sin"},
		{"empty group", "()"},
		{"empty argument list", "[]"},
		{"empty leading argument", "f(, x)"},
		{"empty trailing argument", "f(x, )"},
		{"diff needs a variable", "diff(x^2, 2)"},
		{"assignment needs a variable", "2 := 3"},
		{"unary function arity", "sin(1, 2)"},
		{"binary function arity", "diff(x)"},
		{"table variable", "table(x, 1, 2, 3)"},
		{"table arity", "table(x, x, 1)"},
		{"if arity", "if(true, 1)"},
		{"ragged matrix", "[[1, 2], [3]]"},
		{"dangling operator", "2 +"},
		{"missing left operand", "* 2"},
		{"lone minus", "-"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, got)

			var pe *types.ParseError
			assert.ErrorAs(t, err, &pe, "got %v", err)
		})
	}
}

func TestParseLexErrorPassesThrough(t *testing.T) {
	t.Parallel()

	_, err := Parse("2 @ 3")
	require.Error(t, err)

	var le *types.LexError
	assert.ErrorAs(t, err, &le)
}

func TestToRPN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "NUMBER(1) NUMBER(2) NUMBER(3) * +"},
		{"(1 + 2) * 3", "NUMBER(1) NUMBER(2) + NUMBER(3) *"},
		{"2 ^ 3 ^ 4", "NUMBER(2) NUMBER(3) NUMBER(4) ^ ^"},
		{"max(1, 2, 3)", "NUMBER(1) NUMBER(2) NUMBER(3) max/3"},
		{"f(x)", "IDENT(x) f/1"},
		{"[1, x]", "NUMBER(1) IDENT(x) []/2"},
		{"2x", "NUMBER(2) IDENT(x) *(implicit)"},
		{"-x!", "IDENT(x) ! neg"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			toks, err := lexer.Tokenize(tt.input)
			require.NoError(t, err)

			items, err := ToRPN(toks)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatRPN(items))
		})
	}
}

func TestParseTokensMatchesParse(t *testing.T) {
	t.Parallel()

	inputs := []string{"x^2 + 3x - 1", "sin(2x)/x", "a := [1, 2]", "if(a <= b, a, b)"}
	for _, in := range inputs {
		toks, err := lexer.Tokenize(in)
		require.NoError(t, err)

		fromTokens, err := ParseTokens(toks)
		require.NoError(t, err)
		fromText, err := Parse(in)
		require.NoError(t, err)
		assert.True(t, ast.Equal(fromText, fromTokens), in)
	}
}
