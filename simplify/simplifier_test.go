package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gnoswap-labs/formula/ast"
	"github.com/gnoswap-labs/formula/internal/types"
	"github.com/gnoswap-labs/formula/parser"
)

func mustParse(t *testing.T, text string) ast.Node {
	t.Helper()
	n, err := parser.Parse(text)
	require.NoError(t, err, text)
	return n
}

var simplifyCases = []struct {
	name  string
	input string
	want  string
}{
	{"add zero right", "x + 0", "x"},
	{"add zero left", "0 + x", "x"},
	{"subtract zero", "x - 0", "x"},
	{"zero minus", "0 - x", "(-x)"},
	{"times one", "x * 1", "x"},
	{"one times", "1 * x", "x"},
	{"times zero", "x * 0", "0"},
	{"divide by one", "x / 1", "x"},
	{"zero divided", "0 / x", "0"},
	{"power zero", "x ^ 0", "1"},
	{"power one", "x ^ 1", "x"},
	{"one to a power", "1 ^ x", "1"},
	{"self difference", "x - x", "0"},
	{"self quotient", "x / x", "1"},

	{"fold arithmetic", "2 + 3 * 4", "14"},
	{"fold power", "2 ^ 10", "1024"},
	{"fold comparison", "3 < 4", "true"},
	{"fold equality", "2 = 3", "false"},
	{"fold shift", "1 << 4", "16"},
	{"fold mod", "7 mod 3", "1"},
	{"fold sqrt of square", "sqrt(16)", "4"},
	{"keep irrational sqrt", "sqrt(2)", "sqrt(2)"},
	{"fold factorial", "4!", "24"},
	{"fold sin zero", "sin(0)", "0"},
	{"fold cos zero", "cos(0)", "1"},
	{"fold abs", "abs(-3)", "3"},
	{"fold sign", "sign(-7)", "-1"},
	{"fold floor", "floor(2.7)", "2"},
	{"fold min", "min(3, 1, 2)", "1"},
	{"fold exact log", "log(8, 2)", "3"},
	{"fold exact root", "root(27, 3)", "3"},

	{"units add convertible", "3_kg + 500_g", "3.5_kg"},
	{"units keep mismatch", "3_kg + 2_m", "(3_kg + 2_m)"},
	{"units scale", "2 * 3_kg", "6_kg"},
	{"units max", "max(1_km, 500_m)", "1_km"},
	{"units ratio", "6_m / 3_m", "2"},
	{"angle zero", "sin(0°)", "0"},

	{"double negation", "-(-x)", "x"},
	{"negated literal", "-(3)", "-3"},
	{"negated difference", "-(x - y)", "(y - x)"},
	{"add negated", "x + (-y)", "(x - y)"},
	{"subtract negated", "x - (-y)", "(x + y)"},
	{"negated product", "(-x) * y", "(-(x * y))"},
	{"product of negations", "(-x) * (-y)", "(x * y)"},
	{"quotient of negations", "(-x) / (-y)", "(x / y)"},

	{"collect like terms", "x + x", "(2 * x)"},
	{"merge coefficients", "2x + 3x", "(5 * x)"},
	{"negative coefficient", "3x - 5x", "(-2 * x)"},
	{"constants last", "(2 + x) + 2", "(x + 4)"},
	{"mixed terms", "x + 2y - x + 1", "((2 * y) + 1)"},
	{"lead with positive", "-x + y", "(y - x)"},
	{"constant leads subtraction", "2 - x", "(2 - x)"},

	{"square", "x * x", "(x ^ 2)"},
	{"power times base", "x * x^2", "(x ^ 3)"},
	{"powers of same base", "x^2 * x^3", "(x ^ 5)"},
	{"power of power", "(x^2)^3", "(x ^ 6)"},
	{"coefficient and square", "3x * x", "(3 * (x ^ 2))"},

	{"ln e", "ln(e)", "1"},
	{"lg ten", "lg(10)", "1"},
	{"lb exact", "lb(8)", "3"},
	{"ln one", "ln(1)", "0"},
	{"log same base", "log(x, x)", "1"},
	{"exp of ln", "exp(ln(x))", "x"},
	{"ln of exp", "ln(exp(x))", "x"},
	{"e to ln", "e^(ln(x))", "x"},
	{"two to lb", "2^(lb(x))", "x"},
	{"base to log", "b^(log(x, b))", "x"},
	{"ln of e power", "ln(e^x)", "x"},

	{"regroup product", "2 * (3 * x)", "(6 * x)"},
	{"regroup quotient", "2 / (x / 2)", "(4 / x)"},
	{"regroup scaled quotient", "(6x) / 2", "(3 * x)"},
	{"regroup nested quotient", "(x / 2) / 3", "(x / 6)"},
	{"literal moves left", "x * 3", "(3 * x)"},

	{"and true", "true & x", "x"},
	{"and false", "false & x", "false"},
	{"or true", "true | x", "true"},
	{"or false", "x | false", "x"},
	{"double not", "not not x", "x"},
	{"fold logic", "true xor false", "true"},
	{"if true", "if(true, a, b)", "a"},
	{"if false", "if(false, a, b)", "b"},
	{"if folded condition", "if(1 < 2, a, b)", "a"},

	{"assignment value", "y := 2 + 3", "(y := 5)"},
	{"vector elements", "[x + 0, 2 * 3]", "[x, 6]"},
	{"derivative body", "diff(x * 1, x)", "diff(x, x)"},
}

func TestSimplify(t *testing.T) {
	t.Parallel()

	s := New()
	for _, tt := range simplifyCases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := s.Simplify(mustParse(t, tt.input), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestSimplifyIsIdempotent(t *testing.T) {
	t.Parallel()

	s := New()
	for _, tt := range simplifyCases {
		once, err := s.Simplify(mustParse(t, tt.input), nil)
		require.NoError(t, err, tt.input)
		twice, err := s.Simplify(once, nil)
		require.NoError(t, err, tt.input)
		assert.Same(t, once, twice, tt.input)
	}
}

func TestSimplifyKeepsUnchangedTree(t *testing.T) {
	t.Parallel()

	s := New()
	for _, in := range []string{"x + y", "sin(x)", "(3 * x)", "f(x, y)", "[a, b]"} {
		n := mustParse(t, in)
		out, err := s.Simplify(n, nil)
		require.NoError(t, err)
		assert.Same(t, n, out, in)
	}
}

func TestSimplifyDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	n := mustParse(t, "(2 + x) + 2")
	before := n.String()
	_, err := New().Simplify(n, nil)
	require.NoError(t, err)
	assert.Equal(t, before, n.String())
}

func TestSimplifyDivisionByZero(t *testing.T) {
	t.Parallel()

	s := New()
	for _, in := range []string{"x / 0", "1 / 0", "5 mod 0", "y + 3 / (1 - 1)"} {
		out, err := s.Simplify(mustParse(t, in), nil)
		assert.ErrorIs(t, err, types.ErrDivideByZero, in)
		assert.Nil(t, out)
	}

	out, err := s.Simplify(mustParse(t, "0 / 0"), nil)
	require.NoError(t, err)
	num, ok := out.(*ast.Number)
	require.True(t, ok)
	assert.True(t, num.IsNaN())
}

func TestSimplifyParams(t *testing.T) {
	t.Parallel()

	ctx := &Context{Params: map[string]ast.Node{
		"a": ast.Num(2),
		"b": ast.Num(3),
	}}
	out, err := New().Simplify(mustParse(t, "a * x + b"), ctx)
	require.NoError(t, err)
	assert.Equal(t, "((2 * x) + 3)", out.String())

	out, err = New().Simplify(mustParse(t, "a * b"), ctx)
	require.NoError(t, err)
	assert.Equal(t, "6", out.String())
}

func TestSimplifyDisabledRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		disabled []string
		input    string
		want     string
	}{
		{[]string{RuleFold, RuleLikeTerms}, "2 + 3", "(2 + 3)"},
		{[]string{RuleCanonical}, "x * 3", "(x * 3)"},
		{[]string{RuleIdentity, RuleCanonical}, "x * 1", "(x * 1)"},
		{[]string{RulePower}, "x * x", "(x * x)"},
		{[]string{RuleLogExp}, "ln(e)", "ln(e)"},
		{[]string{RuleBoolean}, "if(true, a, b)", "if(true, a, b)"},
	}

	for _, tt := range tests {
		s := New(WithDisabled(tt.disabled...))
		for _, name := range tt.disabled {
			assert.True(t, s.Disabled(name))
		}
		out, err := s.Simplify(mustParse(t, tt.input), nil)
		require.NoError(t, err)
		assert.Equal(t, tt.want, out.String(), "disabled %v", tt.disabled)
	}
}

func TestSimplifyLogsRewrites(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	s := New(WithLogger(zap.New(core)))

	_, err := s.Simplify(mustParse(t, "x + 0"), nil)
	require.NoError(t, err)

	entries := logs.FilterMessage("rewrite").All()
	require.Len(t, entries, 1)
	assert.Equal(t, RuleIdentity, entries[0].ContextMap()["rule"])
	assert.Equal(t, "(x + 0)", entries[0].ContextMap()["from"])
	assert.Equal(t, "x", entries[0].ContextMap()["to"])
}

func TestSimplifyNil(t *testing.T) {
	t.Parallel()

	_, err := New().Simplify(nil, nil)
	assert.Error(t, err)
}

func TestRuleResults(t *testing.T) {
	t.Parallel()

	s := New()
	x := ast.Var("x")

	res, err := newBinaryRule().Apply(s, ast.MustBinary(ast.OpAdd, x, ast.Num(0)), &state{})
	require.NoError(t, err)
	assert.Equal(t, Continue, res.Status)
	assert.Same(t, x, res.Node)

	res, err = newBinaryRule().Apply(s, ast.MustBinary(ast.OpAdd, x, ast.Var("y")), &state{})
	require.NoError(t, err)
	assert.Equal(t, NotHandled, res.Status)
	assert.Nil(t, res.Node)

	// the child changes, the node itself has no rewrite
	n := ast.MustUnary(ast.OpSin, ast.MustBinary(ast.OpMul, x, ast.Num(1)))
	res, err = newUnaryRule().Apply(s, n, &state{})
	require.NoError(t, err)
	assert.Equal(t, Handled, res.Status)
	assert.Equal(t, "sin(x)", res.Node.String())

	res, err = LeafRule{}.Apply(s, ast.Num(0))
	require.NoError(t, err)
	assert.Equal(t, NotHandled, res.Status)

	assert.Equal(t, "continue", Continue.String())
	assert.Equal(t, "not handled", NotHandled.String())
}

func TestAnalyzeWithoutState(t *testing.T) {
	t.Parallel()

	out, err := ast.Analyze(mustParse(t, "x * 1 + 0"), New(), nil)
	require.NoError(t, err)
	assert.Equal(t, "x", out.String())
}

func TestNames(t *testing.T) {
	t.Parallel()

	assert.Len(t, Names(), 9)
	assert.True(t, IsRule(RuleLikeTerms))
	assert.False(t, IsRule("no-such-rule"))
}
