package simplify

import (
	"fmt"
	"math"

	"github.com/gnoswap-labs/formula/ast"
	"github.com/gnoswap-labs/formula/internal/types"
	"github.com/gnoswap-labs/formula/internal/units"
)

var foldableUnary = []ast.Op{
	ast.OpFact,
	ast.OpSin, ast.OpCos, ast.OpTan,
	ast.OpArcsin, ast.OpArccos, ast.OpArctan,
	ast.OpSinh, ast.OpCosh, ast.OpTanh,
	ast.OpArsinh, ast.OpArcosh, ast.OpArtanh,
	ast.OpLn, ast.OpLg, ast.OpLb, ast.OpExp, ast.OpSqrt,
	ast.OpAbs, ast.OpSign, ast.OpFloor, ast.OpCeil, ast.OpRound,
}

// maxFactorial is the largest n whose n! is folded.
const maxFactorial = 20

func foldUnary(u *ast.Unary) (ast.Node, error) {
	x, ok := number(u.X())
	if !ok {
		return nil, nil
	}
	v, unit := x.Value(), x.Unit()

	switch u.Op() {
	case ast.OpAbs:
		return lit(math.Abs(v), unit), nil
	case ast.OpFloor:
		return lit(math.Floor(v), unit), nil
	case ast.OpCeil:
		return lit(math.Ceil(v), unit), nil
	case ast.OpRound:
		return lit(math.Round(v), unit), nil
	case ast.OpSign:
		switch {
		case v > 0:
			return ast.Num(1), nil
		case v < 0:
			return ast.Num(-1), nil
		}
		return ast.Num(0), nil
	}

	if unit != "" {
		info, ok := units.Lookup(unit)
		if !ok || info.Dimension != units.Angle {
			return nil, nil
		}
		v *= info.Factor
	}

	switch u.Op() {
	case ast.OpSin, ast.OpTan, ast.OpSinh, ast.OpTanh, ast.OpArsinh:
		if v == 0 {
			return ast.Num(0), nil
		}
	case ast.OpCos, ast.OpCosh:
		if v == 0 {
			return ast.Num(1), nil
		}
	}
	if unit != "" {
		return nil, nil
	}

	switch u.Op() {
	case ast.OpArcsin, ast.OpArctan, ast.OpArtanh:
		if v == 0 {
			return ast.Num(0), nil
		}
	case ast.OpArccos, ast.OpArcosh:
		if v == 1 {
			return ast.Num(0), nil
		}
	case ast.OpExp:
		if v == 0 {
			return ast.Num(1), nil
		}
	case ast.OpLn:
		if v == 1 {
			return ast.Num(0), nil
		}
	case ast.OpLg:
		return exactLog(v, 10), nil
	case ast.OpLb:
		return exactLog(v, 2), nil
	case ast.OpSqrt:
		return exactRoot(v, 2), nil
	case ast.OpFact:
		if integral(v) && v >= 0 && v <= maxFactorial {
			f := 1.0
			for i := 2.0; i <= v; i++ {
				f *= i
			}
			return ast.Num(f), nil
		}
	}
	return nil, nil
}

// exactLog folds log_base(v) only when the result is an integer.
func exactLog(v, base float64) ast.Node {
	if v <= 0 || base <= 0 || base == 1 {
		return nil
	}
	r := math.Round(math.Log(v) / math.Log(base))
	if math.Pow(base, r) != v {
		return nil
	}
	return lit(r, "")
}

// exactRoot folds the n-th root of v only when it is an integer.
func exactRoot(v, n float64) ast.Node {
	if v < 0 || n <= 0 || !integral(n) {
		return nil
	}
	r := math.Round(math.Pow(v, 1/n))
	if math.Pow(r, n) != v {
		return nil
	}
	return lit(r, "")
}

func foldBinary(b *ast.Binary) (ast.Node, error) {
	if lb, ok := boolean(b.L()); ok {
		if rb, ok := boolean(b.R()); ok {
			return foldLogic(b.Op(), lb, rb), nil
		}
		return nil, nil
	}

	switch b.Op() {
	case ast.OpDiv, ast.OpMod:
		if zero(b.R()) {
			if b.Op() == ast.OpDiv && zero(b.L()) {
				return ast.NaN(), nil
			}
			return nil, fmt.Errorf("%s: %w", b, types.ErrDivideByZero)
		}
	}

	x, ok := number(b.L())
	if !ok {
		return nil, nil
	}
	y, ok := number(b.R())
	if !ok {
		return nil, nil
	}
	a, c := x.Value(), y.Value()
	ua, uc := x.Unit(), y.Unit()

	switch op := b.Op(); op {
	case ast.OpAdd, ast.OpSub:
		if !units.Convertible(ua, uc) {
			return nil, nil
		}
		c, _ = units.Convert(c, uc, ua)
		if op == ast.OpSub {
			c = -c
		}
		return lit(a+c, ua), nil

	case ast.OpMul:
		switch {
		case ua == "":
			return lit(a*c, uc), nil
		case uc == "":
			return lit(a*c, ua), nil
		}
		return nil, nil

	case ast.OpDiv:
		switch {
		case uc == "":
			return lit(a/c, ua), nil
		case units.Convertible(ua, uc):
			c, _ = units.Convert(c, uc, ua)
			return lit(a/c, ""), nil
		}
		return nil, nil

	case ast.OpMod:
		if uc != "" {
			return nil, nil
		}
		return lit(math.Mod(a, c), ua), nil

	case ast.OpPow:
		if ua != "" || uc != "" {
			return nil, nil
		}
		if r := math.Pow(a, c); finite(r) {
			return lit(r, ""), nil
		}
		return nil, nil

	case ast.OpLog:
		if ua != "" || uc != "" {
			return nil, nil
		}
		return exactLog(a, c), nil

	case ast.OpRoot:
		if ua != "" || uc != "" {
			return nil, nil
		}
		return exactRoot(a, c), nil

	case ast.OpShl, ast.OpShr:
		if ua != "" || uc != "" || !integral(a) || !integral(c) || c < 0 || c > 62 {
			return nil, nil
		}
		if op == ast.OpShl {
			return lit(float64(int64(a)<<uint(c)), ""), nil
		}
		return lit(float64(int64(a)>>uint(c)), ""), nil

	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if !units.Convertible(ua, uc) {
			return nil, nil
		}
		c, _ = units.Convert(c, uc, ua)
		return ast.BoolLit(compare(op, a, c)), nil
	}
	return nil, nil
}

func compare(op ast.Op, a, b float64) bool {
	switch op {
	case ast.OpEq:
		return a == b
	case ast.OpNeq:
		return a != b
	case ast.OpLt:
		return a < b
	case ast.OpLe:
		return a <= b
	case ast.OpGt:
		return a > b
	case ast.OpGe:
		return a >= b
	}
	return false
}

func foldLogic(op ast.Op, a, b bool) ast.Node {
	switch op {
	case ast.OpAnd:
		return ast.BoolLit(a && b)
	case ast.OpOr:
		return ast.BoolLit(a || b)
	case ast.OpXor, ast.OpNeq:
		return ast.BoolLit(a != b)
	case ast.OpNand:
		return ast.BoolLit(!(a && b))
	case ast.OpNor:
		return ast.BoolLit(!(a || b))
	case ast.OpImpl:
		return ast.BoolLit(!a || b)
	case ast.OpEquiv, ast.OpEq:
		return ast.BoolLit(a == b)
	}
	return nil
}

// foldExtremum folds min and max whose arguments are all convertible literals.
func foldExtremum(v *ast.Variadic) (ast.Node, error) {
	var best *ast.Number
	for i := 0; i < v.Len(); i++ {
		x, ok := number(v.Arg(i))
		if !ok {
			return nil, nil
		}
		if best == nil {
			best = x
			continue
		}
		if !units.Convertible(best.Unit(), x.Unit()) {
			return nil, nil
		}
		xv, _ := units.Convert(x.Value(), x.Unit(), best.Unit())
		if (v.Op() == ast.OpMin && xv < best.Value()) || (v.Op() == ast.OpMax && xv > best.Value()) {
			best = x
		}
	}
	return best, nil
}
