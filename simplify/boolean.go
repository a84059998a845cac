package simplify

import (
	"github.com/gnoswap-labs/formula/ast"
)

func notRules(u *ast.Unary) (ast.Node, error) {
	if inner, ok := unaryOf(u.X(), ast.OpNot); ok {
		return inner, nil
	}
	if v, ok := boolean(u.X()); ok {
		return ast.BoolLit(!v), nil
	}
	return nil, nil
}

// booleanRules drops neutral operands and short-circuits absorbing ones.
func booleanRules(b *ast.Binary) (ast.Node, error) {
	l, r := b.L(), b.R()
	lv, lok := boolean(l)
	rv, rok := boolean(r)

	switch b.Op() {
	case ast.OpAnd:
		switch {
		case lok && !lv, rok && !rv:
			return ast.BoolLit(false), nil
		case lok:
			return r, nil
		case rok:
			return l, nil
		}
	case ast.OpOr:
		switch {
		case lok && lv, rok && rv:
			return ast.BoolLit(true), nil
		case lok:
			return r, nil
		case rok:
			return l, nil
		}
	}
	return nil, nil
}

// constantBranch selects the branch of an if whose condition is a literal.
func constantBranch(c *ast.Control) (ast.Node, error) {
	v, ok := boolean(c.Cond())
	if !ok {
		return nil, nil
	}
	if v {
		return c.Then(), nil
	}
	return c.Else(), nil
}
