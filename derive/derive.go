// Package derive computes symbolic derivatives of expression trees.
//
// The Differentiator is an ast.Analyzer. Every derivative it returns from
// Derive has been passed through the simplifier; Raw exposes the
// unsimplified form.
package derive

import (
	"go.uber.org/zap"

	"github.com/gnoswap-labs/formula/ast"
	"github.com/gnoswap-labs/formula/internal/types"
	"github.com/gnoswap-labs/formula/simplify"
)

// Function is a user-defined function body over named parameters.
type Function struct {
	Params []string
	Body   ast.Node
}

// FunctionTable maps user function names to their definitions.
type FunctionTable map[string]Function

// Context selects the differentiation variable and the user functions that
// calls may expand to.
type Context struct {
	Var       string
	Functions FunctionTable
}

type Option func(*Differentiator)

// WithSimplifier replaces the default post-pass simplifier.
func WithSimplifier(s *simplify.Simplifier) Option {
	return func(d *Differentiator) {
		if s != nil {
			d.simplifier = s
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(d *Differentiator) {
		if l != nil {
			d.logger = l
		}
	}
}

type Differentiator struct {
	simplifier *simplify.Simplifier
	logger     *zap.Logger
}

func New(opts ...Option) *Differentiator {
	d := &Differentiator{
		simplifier: simplify.New(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// state is the analyzer context of one Raw call.
type state struct {
	*Context
	// expanding holds the user functions currently being inlined.
	expanding map[string]bool
}

// Derive returns the simplified derivative of n.
func (d *Differentiator) Derive(n ast.Node, c *Context) (ast.Node, error) {
	raw, err := d.Raw(n, c)
	if err != nil {
		return nil, err
	}
	out, err := d.simplifier.Simplify(raw, nil)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("derivative",
		zap.String("var", c.Var),
		zap.Stringer("expr", n),
		zap.Stringer("raw", raw),
		zap.Stringer("result", out),
	)
	return out, nil
}

// Raw returns the derivative of n before simplification.
func (d *Differentiator) Raw(n ast.Node, c *Context) (ast.Node, error) {
	if n == nil {
		return nil, types.NewArgumentError("expr", "expression is required")
	}
	if c == nil || c.Var == "" {
		return nil, types.NewArgumentError("var", "differentiation variable is required")
	}
	return d.derive(n, &state{Context: c, expanding: make(map[string]bool)})
}

// derive short-circuits subtrees that cannot depend on the variable.
func (d *Differentiator) derive(n ast.Node, st *state) (ast.Node, error) {
	if independent(n, st.Var) {
		return ast.Num(0), nil
	}
	return ast.Analyze(n, d, st)
}

// independent reports whether n is constant with respect to name. Calls are
// never independent since their bodies are not visible here.
func independent(n ast.Node, name string) bool {
	if v, ok := n.(*ast.Variadic); ok && v.Op() == ast.OpCall {
		return false
	}
	if v, ok := n.(*ast.Variable); ok {
		return v.Name() != name
	}
	for _, c := range n.Children() {
		if !independent(c, name) {
			return false
		}
	}
	return true
}

func stateOf(ctx any) *state {
	return ctx.(*state)
}

func (d *Differentiator) VisitNumber(*ast.Number, any) (ast.Node, error) {
	return ast.Num(0), nil
}

func (d *Differentiator) VisitVariable(v *ast.Variable, ctx any) (ast.Node, error) {
	if v.Name() == stateOf(ctx).Var {
		return ast.Num(1), nil
	}
	return ast.Num(0), nil
}

func (d *Differentiator) VisitBool(*ast.Bool, any) (ast.Node, error) {
	return ast.Num(0), nil
}

func (d *Differentiator) VisitUnary(u *ast.Unary, ctx any) (ast.Node, error) {
	st := stateOf(ctx)
	df, err := d.derive(u.X(), st)
	if err != nil {
		return nil, err
	}
	if u.Op() == ast.OpNeg {
		return ast.Neg(df), nil
	}
	outer, err := outerDerivative(u.Op(), u.X())
	if err != nil {
		return nil, err
	}
	return outer(df), nil
}

func (d *Differentiator) VisitBinary(b *ast.Binary, ctx any) (ast.Node, error) {
	st := stateOf(ctx)
	switch b.Op() {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpPow:
		return d.arithmetic(b, st)
	case ast.OpLog:
		return d.derive(ast.Div(ast.Fn(ast.OpLn, b.L()), ast.Fn(ast.OpLn, b.R())), st)
	case ast.OpRoot:
		return d.derive(ast.Pow(b.L(), ast.Div(ast.Num(1), b.R())), st)
	case ast.OpDiff:
		inner, err := d.Derive(b.L(), &Context{
			Var:       b.R().(*ast.Variable).Name(),
			Functions: st.Functions,
		})
		if err != nil {
			return nil, err
		}
		return d.derive(inner, st)
	}
	return nil, unsupported(b.Op())
}

func (d *Differentiator) VisitVariadic(v *ast.Variadic, ctx any) (ast.Node, error) {
	st := stateOf(ctx)
	switch v.Op() {
	case ast.OpVector, ast.OpMatrix:
		elems := make([]ast.Node, v.Len())
		for i := range elems {
			de, err := d.derive(v.Arg(i), st)
			if err != nil {
				return nil, err
			}
			elems[i] = de
		}
		return ast.MustVariadic(v.Op(), "", elems), nil
	case ast.OpCall:
		return d.call(v, st)
	}
	return nil, unsupported(v.Op())
}

func (d *Differentiator) VisitControl(c *ast.Control, _ any) (ast.Node, error) {
	return nil, unsupported(c.Op())
}

func (d *Differentiator) VisitAssign(*ast.Assign, any) (ast.Node, error) {
	return nil, types.NewNotSupported("assignment", "no derivative")
}

// call inlines a user function and differentiates its body.
func (d *Differentiator) call(v *ast.Variadic, st *state) (ast.Node, error) {
	name := v.Name()
	fn, ok := st.Functions[name]
	if !ok {
		return nil, types.NewNotSupported(name, "function is not defined")
	}
	if len(fn.Params) != v.Len() {
		return nil, types.NewArgumentError(name, "expects %d arguments, got %d", len(fn.Params), v.Len())
	}
	if st.expanding[name] {
		return nil, types.NewNotSupported(name, "recursive definition")
	}

	bindings := make(map[string]ast.Node, len(fn.Params))
	for i, p := range fn.Params {
		bindings[p] = v.Arg(i)
	}
	body, err := ast.Substitute(fn.Body, bindings)
	if err != nil {
		return nil, err
	}

	st.expanding[name] = true
	defer delete(st.expanding, name)
	return d.derive(body, st)
}

func unsupported(op ast.Op) error {
	return types.NewNotSupported(op.String(), "no derivative")
}
