package derive

import (
	"github.com/gnoswap-labs/formula/ast"
)

func (d *Differentiator) arithmetic(b *ast.Binary, st *state) (ast.Node, error) {
	f, g := b.L(), b.R()

	if b.Op() == ast.OpPow {
		return d.power(f, g, st)
	}

	df, err := d.derive(f, st)
	if err != nil {
		return nil, err
	}
	dg, err := d.derive(g, st)
	if err != nil {
		return nil, err
	}

	switch b.Op() {
	case ast.OpAdd:
		return ast.Add(df, dg), nil
	case ast.OpSub:
		return ast.Sub(df, dg), nil
	case ast.OpMul:
		// f'g + fg'
		return ast.Add(ast.Mul(df, g), ast.Mul(f, dg)), nil
	default:
		// (f'g - fg') / g^2
		return ast.Div(
			ast.Sub(ast.Mul(df, g), ast.Mul(f, dg)),
			ast.Pow(g, ast.Num(2)),
		), nil
	}
}

func (d *Differentiator) power(f, g ast.Node, st *state) (ast.Node, error) {
	switch {
	case independent(g, st.Var):
		// f'·(g·f^(g-1))
		df, err := d.derive(f, st)
		if err != nil {
			return nil, err
		}
		return ast.Mul(df, ast.Mul(g, ast.Pow(f, ast.Sub(g, ast.Num(1))))), nil

	case independent(f, st.Var):
		// f^g·(g'·ln f)
		dg, err := d.derive(g, st)
		if err != nil {
			return nil, err
		}
		return ast.Mul(ast.Pow(f, g), ast.Mul(dg, ast.Fn(ast.OpLn, f))), nil
	}

	df, err := d.derive(f, st)
	if err != nil {
		return nil, err
	}
	dg, err := d.derive(g, st)
	if err != nil {
		return nil, err
	}
	// f^g·(g'·ln f + g·f'/f)
	return ast.Mul(
		ast.Pow(f, g),
		ast.Add(
			ast.Mul(dg, ast.Fn(ast.OpLn, f)),
			ast.Div(ast.Mul(g, df), f),
		),
	), nil
}

// chain scales the derivative of the outer function at u by the inner
// derivative.
type chain func(du ast.Node) ast.Node

func times(outer ast.Node) chain {
	return func(du ast.Node) ast.Node { return ast.Mul(outer, du) }
}

func over(denominator ast.Node) chain {
	return func(du ast.Node) ast.Node { return ast.Div(du, denominator) }
}

func negOver(denominator ast.Node) chain {
	return func(du ast.Node) ast.Node { return ast.Neg(ast.Div(du, denominator)) }
}

func square(u ast.Node) ast.Node { return ast.Pow(u, ast.Num(2)) }

// outerDerivative returns the chain rule step for a one-argument function
// applied to u.
func outerDerivative(op ast.Op, u ast.Node) (chain, error) {
	one := ast.Num(1)
	fn := func(op ast.Op) ast.Node { return ast.Fn(op, u) }

	switch op {
	case ast.OpSin:
		return times(fn(ast.OpCos)), nil
	case ast.OpCos:
		return times(ast.Neg(fn(ast.OpSin))), nil
	case ast.OpTan:
		return over(square(fn(ast.OpCos))), nil
	case ast.OpCot:
		return negOver(square(fn(ast.OpSin))), nil
	case ast.OpSec:
		return times(ast.Mul(fn(ast.OpSec), fn(ast.OpTan))), nil
	case ast.OpCsc:
		return times(ast.Neg(ast.Mul(fn(ast.OpCsc), fn(ast.OpCot)))), nil

	case ast.OpArcsin:
		return over(ast.Fn(ast.OpSqrt, ast.Sub(one, square(u)))), nil
	case ast.OpArccos:
		return negOver(ast.Fn(ast.OpSqrt, ast.Sub(one, square(u)))), nil
	case ast.OpArctan:
		return over(ast.Add(one, square(u))), nil
	case ast.OpArccot:
		return negOver(ast.Add(one, square(u))), nil

	case ast.OpSinh:
		return times(fn(ast.OpCosh)), nil
	case ast.OpCosh:
		return times(fn(ast.OpSinh)), nil
	case ast.OpTanh:
		return over(square(fn(ast.OpCosh))), nil
	case ast.OpCoth:
		return negOver(square(fn(ast.OpSinh))), nil
	case ast.OpArsinh:
		return over(ast.Fn(ast.OpSqrt, ast.Add(square(u), one))), nil
	case ast.OpArcosh:
		return over(ast.Fn(ast.OpSqrt, ast.Sub(square(u), one))), nil
	case ast.OpArtanh, ast.OpArcoth:
		return over(ast.Sub(one, square(u))), nil

	case ast.OpLn:
		return over(u), nil
	case ast.OpLg:
		return over(ast.Mul(u, ast.Fn(ast.OpLn, ast.Num(10)))), nil
	case ast.OpLb:
		return over(ast.Mul(u, ast.Fn(ast.OpLn, ast.Num(2)))), nil
	case ast.OpExp:
		return times(fn(ast.OpExp)), nil
	case ast.OpSqrt:
		return over(ast.Mul(ast.Num(2), fn(ast.OpSqrt))), nil
	case ast.OpAbs:
		return times(fn(ast.OpSign)), nil
	}
	return nil, unsupported(op)
}
