package derive

import (
	"github.com/gnoswap-labs/formula/ast"
)

// Resolve replaces every diff(f, v) node in n with the simplified
// derivative of f with respect to v, using a default Differentiator.
func Resolve(n ast.Node, functions FunctionTable) (ast.Node, error) {
	return New().Resolve(n, functions)
}

// Resolve replaces every diff(f, v) node in n with its simplified
// derivative. Trees without derivative nodes are returned unchanged.
func (d *Differentiator) Resolve(n ast.Node, functions FunctionTable) (ast.Node, error) {
	r := &resolver{d: d, functions: functions}
	r.Self = r
	return ast.Analyze(n, r, nil)
}

type resolver struct {
	ast.Base
	d         *Differentiator
	functions FunctionTable
}

func (r *resolver) VisitBinary(b *ast.Binary, ctx any) (ast.Node, error) {
	if b.Op() != ast.OpDiff {
		return ast.Descend(b, r, ctx)
	}
	return r.d.Derive(b.L(), &Context{
		Var:       b.R().(*ast.Variable).Name(),
		Functions: r.functions,
	})
}
