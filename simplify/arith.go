package simplify

import (
	"github.com/gnoswap-labs/formula/ast"
)

func identity(b *ast.Binary) (ast.Node, error) {
	l, r := b.L(), b.R()
	switch b.Op() {
	case ast.OpAdd:
		switch {
		case is(r, 0):
			return l, nil
		case is(l, 0):
			return r, nil
		}
	case ast.OpSub:
		switch {
		case is(r, 0):
			return l, nil
		case is(l, 0):
			return ast.Neg(r), nil
		case ast.Equal(l, r):
			return ast.Num(0), nil
		}
	case ast.OpMul:
		switch {
		case is(r, 1):
			return l, nil
		case is(l, 1):
			return r, nil
		case is(l, 0), is(r, 0):
			return ast.Num(0), nil
		}
	case ast.OpDiv:
		switch {
		case is(r, 1):
			return l, nil
		case zero(r):
		case is(l, 0):
			return ast.Num(0), nil
		case ast.Equal(l, r):
			return ast.Num(1), nil
		}
	case ast.OpPow:
		switch {
		case is(r, 0):
			return ast.Num(1), nil
		case is(r, 1):
			return l, nil
		case is(l, 1):
			return ast.Num(1), nil
		}
	}
	return nil, nil
}

// negRules handles double negation, negated literals and sign pushing into
// differences and products with a literal factor.
func negRules(u *ast.Unary) (ast.Node, error) {
	x := u.X()
	if inner, ok := unaryOf(x, ast.OpNeg); ok {
		return inner, nil
	}
	if n, ok := number(x); ok {
		return lit(-n.Value(), n.Unit()), nil
	}
	if l, r, ok := binaryOf(x, ast.OpSub); ok {
		return ast.Sub(r, l), nil
	}
	if l, r, ok := binaryOf(x, ast.OpMul); ok {
		if c, ok := plain(l); ok {
			return ast.Mul(lit(-c, ""), r), nil
		}
	}
	return nil, nil
}

// pushSign moves unary minus out of products and quotients and turns
// additions of negated terms into subtractions.
func pushSign(b *ast.Binary) (ast.Node, error) {
	l, r := b.L(), b.R()
	nl, lneg := unaryOf(l, ast.OpNeg)
	nr, rneg := unaryOf(r, ast.OpNeg)

	switch b.Op() {
	case ast.OpAdd:
		switch {
		case rneg:
			return ast.Sub(l, nr), nil
		case lneg:
			return ast.Sub(r, nl), nil
		}
		if c, ok := plain(r); ok && c < 0 {
			return ast.Sub(l, lit(-c, "")), nil
		}
	case ast.OpSub:
		if rneg {
			return ast.Add(l, nr), nil
		}
		if c, ok := plain(r); ok && c < 0 {
			return ast.Add(l, lit(-c, "")), nil
		}
	case ast.OpMul, ast.OpDiv:
		switch {
		case lneg && rneg:
			return ast.Bin(b.Op(), nl, nr), nil
		case lneg:
			return ast.Neg(ast.Bin(b.Op(), nl, r)), nil
		case rneg:
			return ast.Neg(ast.Bin(b.Op(), l, nr)), nil
		}
		if b.Op() == ast.OpMul && is(l, -1) {
			return ast.Neg(r), nil
		}
	}
	return nil, nil
}

// factor splits n into a base and a literal exponent.
func factor(n ast.Node) (ast.Node, float64) {
	if base, exp, ok := binaryOf(n, ast.OpPow); ok {
		if e, ok := plain(exp); ok {
			return base, e
		}
	}
	return n, 1
}

// combine multiplies two powers of the same base.
func combine(l, r ast.Node) (ast.Node, bool) {
	if isLiteral(l) || isLiteral(r) {
		return nil, false
	}
	lb, le := factor(l)
	rb, re := factor(r)
	if !ast.Equal(lb, rb) {
		return nil, false
	}
	return ast.Pow(lb, lit(le+re, "")), true
}

func powerRules(b *ast.Binary) (ast.Node, error) {
	l, r := b.L(), b.R()
	switch b.Op() {
	case ast.OpMul:
		if out, ok := combine(l, r); ok {
			return out, nil
		}
		// c·x·x^n
		if cl, inner, ok := binaryOf(l, ast.OpMul); ok && isLiteral(cl) {
			if out, ok := combine(inner, r); ok {
				return ast.Mul(cl, out), nil
			}
		}
	case ast.OpPow:
		if base, e1, ok := binaryOf(l, ast.OpPow); ok {
			a, okA := plain(e1)
			c, okC := plain(r)
			if okA && okC {
				return ast.Pow(base, lit(a*c, "")), nil
			}
		}
	}
	return nil, nil
}

// regroup collects the literals of nested products and quotients.
func regroup(b *ast.Binary) (ast.Node, error) {
	l, r := b.L(), b.R()

	if b.Op() == ast.OpMul {
		c1, ok := plain(l)
		if !ok {
			return nil, nil
		}
		if il, ir, ok := binaryOf(r, ast.OpMul); ok {
			if c2, ok := plain(il); ok {
				return ast.Mul(lit(c1*c2, ""), ir), nil
			}
			if c2, ok := plain(ir); ok {
				return ast.Mul(lit(c1*c2, ""), il), nil
			}
		}
		if il, ir, ok := binaryOf(r, ast.OpDiv); ok {
			if c2, ok := plain(il); ok {
				return ast.Div(lit(c1*c2, ""), ir), nil
			}
			if c2, ok := plain(ir); ok && c2 != 0 {
				return ast.Mul(lit(c1/c2, ""), il), nil
			}
		}
		return nil, nil
	}

	// division
	if c1, ok := plain(l); ok {
		if il, ir, ok := binaryOf(r, ast.OpMul); ok {
			if c2, ok := plain(il); ok && c2 != 0 {
				return ast.Div(lit(c1/c2, ""), ir), nil
			}
		}
		if il, ir, ok := binaryOf(r, ast.OpDiv); ok {
			if c2, ok := plain(ir); ok {
				return ast.Div(lit(c1*c2, ""), il), nil
			}
			if c2, ok := plain(il); ok && c2 != 0 {
				return ast.Mul(lit(c1/c2, ""), ir), nil
			}
		}
		return nil, nil
	}
	c2, ok := plain(r)
	if !ok || c2 == 0 {
		return nil, nil
	}
	if il, ir, ok := binaryOf(l, ast.OpMul); ok {
		if c1, ok := plain(il); ok {
			return ast.Mul(lit(c1/c2, ""), ir), nil
		}
	}
	if il, ir, ok := binaryOf(l, ast.OpDiv); ok {
		if c1, ok := plain(ir); ok {
			return ast.Div(il, lit(c1*c2, "")), nil
		}
		if c1, ok := plain(il); ok {
			return ast.Div(lit(c1/c2, ""), ir), nil
		}
	}
	return nil, nil
}

// canonical moves a literal factor to the left of a product.
func canonical(b *ast.Binary) (ast.Node, error) {
	if isLiteral(b.R()) && !isLiteral(b.L()) {
		return ast.Mul(b.R(), b.L()), nil
	}
	return nil, nil
}
