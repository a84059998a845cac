package simplify

import (
	"github.com/gnoswap-labs/formula/ast"
	"github.com/gnoswap-labs/formula/internal/units"
)

// term is coef·base. A nil base marks a constant carrying unit.
type term struct {
	coef float64
	base ast.Node
	unit string
}

func (t term) constant() bool { return t.base == nil }

// likeTerms flattens a sum chain into signed terms, merges terms with equal
// bases and rebuilds the chain with constants last.
func likeTerms(b *ast.Binary) (ast.Node, error) {
	var terms []term
	collect(b, 1, &terms)
	return rebuildSum(merge(terms)), nil
}

func collect(n ast.Node, sign float64, out *[]term) {
	switch {
	case isOp(n, ast.OpAdd):
		l, r, _ := binaryOf(n, ast.OpAdd)
		collect(l, sign, out)
		collect(r, sign, out)
		return
	case isOp(n, ast.OpSub):
		l, r, _ := binaryOf(n, ast.OpSub)
		collect(l, sign, out)
		collect(r, -sign, out)
		return
	}
	if x, ok := unaryOf(n, ast.OpNeg); ok {
		collect(x, -sign, out)
		return
	}
	if x, ok := number(n); ok {
		*out = append(*out, term{coef: sign * x.Value(), unit: x.Unit()})
		return
	}
	if l, r, ok := binaryOf(n, ast.OpMul); ok {
		if c, ok := plain(l); ok {
			*out = append(*out, term{coef: sign * c, base: r})
			return
		}
		if c, ok := plain(r); ok {
			*out = append(*out, term{coef: sign * c, base: l})
			return
		}
	}
	*out = append(*out, term{coef: sign, base: n})
}

func isOp(n ast.Node, op ast.Op) bool {
	b, ok := n.(*ast.Binary)
	return ok && b.Op() == op
}

// merge sums coefficients of equal bases and of convertible constants,
// keeping first-seen order with constants moved to the end.
func merge(terms []term) []term {
	var vars, consts []term
	for _, t := range terms {
		if t.constant() {
			consts = addConstant(consts, t)
			continue
		}
		found := false
		for i := range vars {
			if ast.Equal(vars[i].base, t.base) {
				vars[i].coef += t.coef
				found = true
				break
			}
		}
		if !found {
			vars = append(vars, t)
		}
	}

	out := make([]term, 0, len(vars)+len(consts))
	for _, t := range append(vars, consts...) {
		if t.coef != 0 {
			out = append(out, t)
		}
	}

	// lead with a positive term when there is one
	if len(out) > 1 && out[0].coef < 0 {
		for i, t := range out {
			if t.coef > 0 {
				copy(out[1:i+1], out[:i])
				out[0] = t
				break
			}
		}
	}
	return out
}

func addConstant(consts []term, t term) []term {
	for i := range consts {
		if v, ok := units.Convert(t.coef, t.unit, consts[i].unit); ok {
			consts[i].coef += v
			return consts
		}
	}
	return append(consts, t)
}

func rebuildSum(terms []term) ast.Node {
	if len(terms) == 0 {
		return ast.Num(0)
	}

	first := terms[0]
	var acc ast.Node
	switch {
	case first.constant():
		acc = lit(first.coef, first.unit)
	case first.coef == -1:
		acc = ast.Neg(first.base)
	default:
		acc = scaled(first.coef, first.base)
	}

	for _, t := range terms[1:] {
		if t.coef < 0 {
			t.coef = -t.coef
			acc = ast.Sub(acc, t.node())
		} else {
			acc = ast.Add(acc, t.node())
		}
	}
	return acc
}

func (t term) node() ast.Node {
	if t.constant() {
		return lit(t.coef, t.unit)
	}
	return scaled(t.coef, t.base)
}

func scaled(c float64, base ast.Node) ast.Node {
	if c == 1 {
		return base
	}
	return ast.Mul(lit(c, ""), base)
}
