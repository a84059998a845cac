package simplify

import (
	"github.com/gnoswap-labs/formula/ast"
)

// euler is the variable name read as Euler's number.
const euler = "e"

// logBase returns the implicit base of ln, lg and lb.
func logBase(op ast.Op) (ast.Node, bool) {
	switch op {
	case ast.OpLn:
		return ast.Var(euler), true
	case ast.OpLg:
		return ast.Num(10), true
	case ast.OpLb:
		return ast.Num(2), true
	}
	return nil, false
}

func logExpUnary(u *ast.Unary) (ast.Node, error) {
	x := u.X()
	if u.Op() == ast.OpExp {
		if inner, ok := unaryOf(x, ast.OpLn); ok {
			return inner, nil
		}
		return nil, nil
	}

	base, _ := logBase(u.Op())
	switch {
	case ast.Equal(x, base):
		return ast.Num(1), nil
	case is(x, 1):
		return ast.Num(0), nil
	}
	if u.Op() == ast.OpLn {
		if inner, ok := unaryOf(x, ast.OpExp); ok {
			return inner, nil
		}
	}
	if b, e, ok := binaryOf(x, ast.OpPow); ok && ast.Equal(b, base) {
		return e, nil
	}
	return nil, nil
}

func logExpBinary(b *ast.Binary) (ast.Node, error) {
	l, r := b.L(), b.R()
	switch b.Op() {
	case ast.OpLog:
		switch {
		case ast.Equal(l, r):
			return ast.Num(1), nil
		case is(l, 1):
			return ast.Num(0), nil
		}
		if pb, e, ok := binaryOf(l, ast.OpPow); ok && ast.Equal(pb, r) {
			return e, nil
		}
	case ast.OpPow:
		// b^(log_b x) = x
		if u, ok := r.(*ast.Unary); ok {
			if base, ok := logBase(u.Op()); ok && ast.Equal(l, base) {
				return u.X(), nil
			}
		}
		if x, base, ok := binaryOf(r, ast.OpLog); ok && ast.Equal(l, base) {
			return x, nil
		}
	}
	return nil, nil
}
