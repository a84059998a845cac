package simplify

import (
	"math"

	"github.com/gnoswap-labs/formula/ast"
)

// number returns n as a finite or infinite literal. NaN is not a number here.
func number(n ast.Node) (*ast.Number, bool) {
	x, ok := n.(*ast.Number)
	if !ok || x.IsNaN() {
		return nil, false
	}
	return x, true
}

// plain returns the value of a unitless literal.
func plain(n ast.Node) (float64, bool) {
	x, ok := number(n)
	if !ok || x.Unit() != "" {
		return 0, false
	}
	return x.Value(), true
}

// is reports whether n is the unitless literal v.
func is(n ast.Node, v float64) bool {
	x, ok := n.(*ast.Number)
	return ok && x.Is(v)
}

// zero reports whether n is a literal zero with any unit.
func zero(n ast.Node) bool {
	x, ok := n.(*ast.Number)
	return ok && x.Value() == 0
}

func boolean(n ast.Node) (bool, bool) {
	b, ok := n.(*ast.Bool)
	if !ok {
		return false, false
	}
	return b.Value(), true
}

func isVar(n ast.Node, name string) bool {
	v, ok := n.(*ast.Variable)
	return ok && v.Name() == name
}

func isLiteral(n ast.Node) bool {
	switch n.(type) {
	case *ast.Number, *ast.Bool:
		return true
	}
	return false
}

// lit builds a literal, dropping the sign of zero.
func lit(v float64, unit string) *ast.Number {
	if v == 0 {
		v = 0
	}
	return ast.NumUnit(v, unit)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func integral(v float64) bool {
	return finite(v) && v == math.Trunc(v)
}

func signbit(v float64) bool {
	return math.Signbit(v)
}

// unary and binary accessors that tolerate any node.

func unaryOf(n ast.Node, op ast.Op) (ast.Node, bool) {
	u, ok := n.(*ast.Unary)
	if !ok || u.Op() != op {
		return nil, false
	}
	return u.X(), true
}

func binaryOf(n ast.Node, op ast.Op) (l, r ast.Node, ok bool) {
	b, isBin := n.(*ast.Binary)
	if !isBin || b.Op() != op {
		return nil, nil, false
	}
	return b.L(), b.R(), true
}
