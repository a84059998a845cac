package ast

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	t.Parallel()

	x := Var("x")
	tests := []struct {
		name string
		a, b Node
		want bool
	}{
		{"same pointer", x, x, true},
		{"same literal", Num(2), Num(2), true},
		{"different literal", Num(2), Num(3), false},
		{"unit matters", NumUnit(2, "kg"), Num(2), false},
		{"nan equals nan", NaN(), NaN(), true},
		{"variables by name", Var("x"), Var("x"), true},
		{"different variables", Var("x"), Var("y"), false},
		{"structure", Add(Var("x"), Num(1)), Add(Var("x"), Num(1)), true},
		{"operand order", Add(Var("x"), Num(1)), Add(Num(1), Var("x")), false},
		{"operator", Add(x, x), Mul(x, x), false},
		{"kind", Num(1), BoolLit(true), false},
		{"call name", Call("f", x), Call("g", x), false},
		{"call args", Call("f", x), Call("f", x, x), false},
		{"nil", nil, nil, true},
		{"nil and node", nil, x, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	assign, err := NewAssign(Var("y"), Add(Var("x"), Num(1)))
	require.NoError(t, err)
	ifNode, err := NewControl(OpIf, BoolLit(true), Num(1), Num(2))
	require.NoError(t, err)

	trees := []Node{
		Num(3),
		NumUnit(90, "deg"),
		Pow(Var("x"), Num(2)),
		Fn(OpSin, Mul(Num(2), Var("x"))),
		Vector(Num(1), Var("a")),
		Call("f", Var("x"), Num(2)),
		Derivative(Pow(Var("x"), Num(3)), Var("x")),
		assign,
		ifNode,
	}

	for _, n := range trees {
		c := Clone(n)
		assert.True(t, Equal(n, c), n.String())
		assert.Equal(t, n.String(), c.String())
		if len(n.Children()) > 0 {
			assert.NotSame(t, n.Children()[0], c.Children()[0], "clone shares a child of %s", n)
		}
	}
}

func TestConstructorErrors(t *testing.T) {
	t.Parallel()

	x := Var("x")
	tests := []struct {
		name string
		fn   func() error
	}{
		{"unary with binary op", func() error { _, err := NewUnary(OpAdd, x); return err }},
		{"unary without operand", func() error { _, err := NewUnary(OpSin, nil); return err }},
		{"binary with unary op", func() error { _, err := NewBinary(OpSin, x, x); return err }},
		{"binary missing operand", func() error { _, err := NewBinary(OpAdd, x, nil); return err }},
		{"diff without variable", func() error { _, err := NewBinary(OpDiff, x, Num(1)); return err }},
		{"call without name", func() error { _, err := NewVariadic(OpCall, "", []Node{x}); return err }},
		{"empty vector", func() error { _, err := NewVariadic(OpVector, "", nil); return err }},
		{"ragged matrix", func() error {
			_, err := NewVariadic(OpMatrix, "", []Node{Vector(x, x), Vector(x)})
			return err
		}},
		{"matrix row not vector", func() error { _, err := NewVariadic(OpMatrix, "", []Node{x}); return err }},
		{"table without variable", func() error {
			_, err := NewVariadic(OpTable, "", []Node{x, Num(1), Num(0), Num(1)})
			return err
		}},
		{"table too long", func() error {
			_, err := NewVariadic(OpTable, "", []Node{x, x, x, x, x, x})
			return err
		}},
		{"if arity", func() error { _, err := NewControl(OpIf, x, x); return err }},
		{"for arity", func() error { _, err := NewControl(OpFor, x, x, x); return err }},
		{"control with binary op", func() error { _, err := NewControl(OpAdd, x, x); return err }},
		{"assign without value", func() error { _, err := NewAssign(x, nil); return err }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.fn()
			require.Error(t, err)
			var ce *ConstructError
			assert.True(t, errors.As(err, &ce))
		})
	}
}

func TestMustPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustUnary(OpAdd, Var("x")) })
	assert.Panics(t, func() { MustBinary(OpDiff, Var("x"), Num(2)) })
	assert.Panics(t, func() { MustVariadic(OpMin, "", nil) })
	assert.NotPanics(t, func() { Derivative(Var("x"), Var("x")) })
}

func TestString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		node Node
		want string
	}{
		{Num(2.5), "2.5"},
		{NumUnit(3, "kg"), "3_kg"},
		{NaN(), "NaN"},
		{Num(1e21), "1000000000000000000000"},
		{Num(1e-7), "0.0000001"},
		{Num(math.Inf(1)), "Inf"},
		{Num(math.Inf(-1)), "-Inf"},
		{Add(Var("x"), Mul(Num(2), Var("y"))), "(x + (2 * y))"},
		{Neg(Var("x")), "(-x)"},
		{Not(Var("p")), "(¬p)"},
		{Fn(OpFact, Num(3)), "(3!)"},
		{Fn(OpSin, Var("x")), "sin(x)"},
		{Bin(OpLog, Var("x"), Num(2)), "log(x, 2)"},
		{Vector(Num(1), Num(2)), "[1, 2]"},
		{Call("f", Var("x")), "f(x)"},
		{MustVariadic(OpMax, "", []Node{Num(1), Var("a")}), "max(1, a)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.node.String())
	}
}

func TestControlRoles(t *testing.T) {
	t.Parallel()

	i, err := NewControl(OpIf, Var("c"), Num(1), Num(2))
	require.NoError(t, err)
	assert.Equal(t, "c", i.Cond().String())
	assert.Equal(t, "1", i.Then().String())
	assert.Equal(t, "2", i.Else().String())
	assert.Nil(t, i.Body())
	assert.Nil(t, i.Init())

	f, err := NewControl(OpFor, Var("i"), Var("c"), Var("s"), Var("b"))
	require.NoError(t, err)
	assert.Equal(t, "i", f.Init().String())
	assert.Equal(t, "c", f.Cond().String())
	assert.Equal(t, "s", f.Step().String())
	assert.Equal(t, "b", f.Body().String())
	assert.Nil(t, f.Then())

	w, err := NewControl(OpWhile, Var("c"), Var("b"))
	require.NoError(t, err)
	assert.Equal(t, "c", w.Cond().String())
	assert.Equal(t, "b", w.Body().String())
}

func TestOpTable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ShapeUnary, OpSin.Shape())
	assert.Equal(t, ShapeBinary, OpDiff.Shape())
	assert.Equal(t, ShapeVariadic, OpTable.Shape())
	assert.Equal(t, ShapeControl, OpFor.Shape())
	assert.True(t, OpPow.RightAssoc())
	assert.False(t, OpSub.RightAssoc())
	assert.Greater(t, OpPow.Precedence(), OpMul.Precedence())
	assert.Greater(t, OpMul.Precedence(), OpAdd.Precedence())
	assert.True(t, OpLog.IsFunction())
	assert.False(t, OpAdd.IsFunction())
	assert.True(t, OpMul.IsCommutative())
	assert.False(t, OpDiv.IsCommutative())

	lo, hi := OpMin.Arity()
	assert.Equal(t, 1, lo)
	assert.Equal(t, Unbounded, hi)
	lo, hi = OpTable.Arity()
	assert.Equal(t, []int{4, 5}, []int{lo, hi})
	assert.Equal(t, "Op(0)", OpInvalid.String())
}

func TestTreeHelpers(t *testing.T) {
	t.Parallel()

	n := Add(Mul(Var("a"), Var("x")), Fn(OpSin, Var("a")))
	assert.True(t, Contains(n, "x"))
	assert.False(t, Contains(n, "y"))
	assert.Equal(t, []string{"a", "x"}, Variables(n))
	assert.Equal(t, 6, Size(n))
}

func TestRebuild(t *testing.T) {
	t.Parallel()

	n := Add(Var("x"), Num(1))
	out, err := Rebuild(n, []Node{Var("y"), Num(2)})
	require.NoError(t, err)
	assert.Equal(t, "(y + 2)", out.String())

	_, err = Rebuild(n, []Node{Var("y")})
	assert.Error(t, err)

	a, err := NewAssign(Var("x"), Num(1))
	require.NoError(t, err)
	_, err = Rebuild(a, []Node{Num(2), Num(1)})
	assert.Error(t, err)
}

// renamer replaces variable x with y and leaves everything else to Base.
type renamer struct {
	Base
}

func (r *renamer) VisitVariable(v *Variable, _ any) (Node, error) {
	if v.Name() == "x" {
		return Var("y"), nil
	}
	return v, nil
}

func newRenamer() *renamer {
	r := &renamer{}
	r.Self = r
	return r
}

func TestDescendPreservesIdentity(t *testing.T) {
	t.Parallel()

	unchanged := Add(Mul(Num(2), Var("a")), Fn(OpCos, Var("b")))
	out, err := Analyze(unchanged, newRenamer(), nil)
	require.NoError(t, err)
	assert.Same(t, unchanged, out)

	left := Mul(Num(2), Var("a"))
	changed := Add(left, Fn(OpCos, Var("x")))
	out, err = Analyze(changed, newRenamer(), nil)
	require.NoError(t, err)
	assert.NotSame(t, changed, out)
	assert.Equal(t, "((2 * a) + cos(y))", out.String())
	assert.Same(t, left, out.Children()[0], "untouched subtree is shared")
	assert.Equal(t, "((2 * a) + cos(x))", changed.String(), "input is not mutated")
}

func TestDescendSkipsBinders(t *testing.T) {
	t.Parallel()

	d := Derivative(Pow(Var("x"), Num(2)), Var("x"))
	out, err := Analyze(d, newRenamer(), nil)
	require.NoError(t, err)
	assert.Equal(t, "diff((y ^ 2), x)", out.String())

	a, err := NewAssign(Var("x"), Var("x"))
	require.NoError(t, err)
	out, err = Analyze(a, newRenamer(), nil)
	require.NoError(t, err)
	assert.Equal(t, "(x := y)", out.String())
}

func TestSubstitute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		node     Node
		bindings map[string]Node
		want     string
	}{
		{"free variable", Add(Var("a"), Var("x")), map[string]Node{"a": Num(2)}, "(2 + x)"},
		{"expression binding", Pow(Var("x"), Num(2)), map[string]Node{"x": Add(Var("t"), Num(1))}, "((t + 1) ^ 2)"},
		{"diff variable stays bound", Derivative(Mul(Var("a"), Var("x")), Var("x")), map[string]Node{"x": Num(3), "a": Num(2)}, "diff((2 * x), x)"},
		{
			"table variable stays bound",
			MustVariadic(OpTable, "", []Node{Mul(Var("k"), Var("x")), Var("x"), Num(0), Num(2)}),
			map[string]Node{"x": Num(9), "k": Num(5)},
			"table((5 * x), x, 0, 2)",
		},
		{"no bindings", Var("x"), nil, "x"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := Substitute(tt.node, tt.bindings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) call(method string, n Node, ctx any) (Node, error) {
	args := m.MethodCalled(method, n, ctx)
	out, _ := args.Get(0).(Node)
	return out, args.Error(1)
}

func (m *mockAnalyzer) VisitNumber(n *Number, ctx any) (Node, error) {
	return m.call("VisitNumber", n, ctx)
}

func (m *mockAnalyzer) VisitVariable(n *Variable, ctx any) (Node, error) {
	return m.call("VisitVariable", n, ctx)
}

func (m *mockAnalyzer) VisitBool(n *Bool, ctx any) (Node, error) {
	return m.call("VisitBool", n, ctx)
}

func (m *mockAnalyzer) VisitUnary(n *Unary, ctx any) (Node, error) {
	return m.call("VisitUnary", n, ctx)
}

func (m *mockAnalyzer) VisitBinary(n *Binary, ctx any) (Node, error) {
	return m.call("VisitBinary", n, ctx)
}

func (m *mockAnalyzer) VisitVariadic(n *Variadic, ctx any) (Node, error) {
	return m.call("VisitVariadic", n, ctx)
}

func (m *mockAnalyzer) VisitControl(n *Control, ctx any) (Node, error) {
	return m.call("VisitControl", n, ctx)
}

func (m *mockAnalyzer) VisitAssign(n *Assign, ctx any) (Node, error) {
	return m.call("VisitAssign", n, ctx)
}

func TestAcceptDispatch(t *testing.T) {
	t.Parallel()

	assign, err := NewAssign(Var("a"), Num(1))
	require.NoError(t, err)
	ctl, err := NewControl(OpWhile, BoolLit(false), Num(1))
	require.NoError(t, err)

	tests := []struct {
		method string
		node   Node
	}{
		{"VisitNumber", Num(1)},
		{"VisitVariable", Var("x")},
		{"VisitBool", BoolLit(true)},
		{"VisitUnary", Neg(Var("x"))},
		{"VisitBinary", Add(Var("x"), Num(1))},
		{"VisitVariadic", Vector(Num(1))},
		{"VisitControl", ctl},
		{"VisitAssign", assign},
	}

	for _, tt := range tests {
		m := &mockAnalyzer{}
		replacement := Num(42)
		m.On(tt.method, tt.node, "ctx").Return(replacement, nil).Once()

		out, err := Analyze(tt.node, m, "ctx")
		require.NoError(t, err)
		assert.Same(t, replacement, out)
		m.AssertExpectations(t)
	}
}

func TestDescendStopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	m := &mockAnalyzer{}
	m.On("VisitVariable", mock.Anything, mock.Anything).Return(nil, boom)

	out, err := Descend(Add(Var("x"), Var("y")), m, nil)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
	m.AssertNumberOfCalls(t, "VisitVariable", 1)
}
