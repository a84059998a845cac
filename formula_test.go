package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/formula/ast"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		params map[string]Node
		want   string
	}{
		{"1 + 2 * 3", nil, "7"},
		{"x + 0", nil, "x"},
		{"a * x + a", map[string]Node{"a": ast.Num(2)}, "2 * x + 2"},
		{"diff(x^2, x)", nil, "2 * x"},
		{"diff(a * x, x)", map[string]Node{"a": ast.Num(4)}, "4"},
		{"not true | x", nil, "x"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			n, err := Evaluate(tt.input, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Format(n))
		})
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()

	_, err := Tokenize("2 @ 3")
	var lexErr *LexError
	assert.ErrorAs(t, err, &lexErr)

	_, err = Parse("(1 + 2")
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)

	_, err = Evaluate("1 / 0", nil)
	assert.ErrorIs(t, err, ErrDivideByZero)

	n, err := Parse("y := x")
	require.NoError(t, err)
	_, err = Differentiate(n, "x")
	var notSupported *NotSupportedError
	assert.ErrorAs(t, err, &notSupported)

	_, err = Differentiate(n, "")
	var argErr *ArgumentError
	assert.ErrorAs(t, err, &argErr)
}

func TestTokenizeAndParseTokens(t *testing.T) {
	t.Parallel()

	tokens, err := Tokenize("2x + 1")
	require.NoError(t, err)

	fromTokens, err := ParseTokens(tokens)
	require.NoError(t, err)
	fromText, err := Parse("2x + 1")
	require.NoError(t, err)
	assert.True(t, ast.Equal(fromTokens, fromText))
}

func TestRPN(t *testing.T) {
	t.Parallel()

	out, err := RPN("1 + 2 * 3")
	require.NoError(t, err)
	assert.Equal(t, "NUMBER(1) NUMBER(2) NUMBER(3) * +", out)

	_, err = RPN("(1 + 2")
	assert.Error(t, err)
}

func TestDifferentiate(t *testing.T) {
	t.Parallel()

	n, err := Parse("x^3 + sin(x)")
	require.NoError(t, err)

	d, err := Differentiate(n, "x")
	require.NoError(t, err)
	assert.Equal(t, "3 * x ^ 2 + cos(x)", Format(d))
}

// renamer replaces one variable name by another.
type renamer struct {
	ast.Base
	from, to string
}

func (r *renamer) VisitVariable(v *ast.Variable, _ any) (Node, error) {
	if v.Name() == r.from {
		return ast.Var(r.to), nil
	}
	return v, nil
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	n, err := Parse("x * y + sin(x)")
	require.NoError(t, err)

	r := &renamer{from: "x", to: "z"}
	r.Self = r
	out, err := Analyze(n, r, nil)
	require.NoError(t, err)
	assert.Equal(t, "z * y + sin(z)", Format(out))
	assert.Equal(t, "x * y + sin(x)", Format(n))

	r.from = "w"
	same, err := Analyze(n, r, nil)
	require.NoError(t, err)
	assert.Same(t, n, same)
}
