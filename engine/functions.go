package engine

import (
	"github.com/gnoswap-labs/formula/ast"
	"github.com/gnoswap-labs/formula/derive"
	"github.com/gnoswap-labs/formula/internal/types"
)

// expand inlines calls of the user functions in table. Calls of unknown
// functions stay as they are.
func expand(n ast.Node, table derive.FunctionTable) (ast.Node, error) {
	if len(table) == 0 {
		return n, nil
	}
	x := &expander{table: table}
	x.Self = x
	return ast.Analyze(n, x, map[string]bool{})
}

type expander struct {
	ast.Base
	table derive.FunctionTable
}

func (x *expander) VisitVariadic(v *ast.Variadic, ctx any) (ast.Node, error) {
	n, err := ast.Descend(v, x, ctx)
	if err != nil {
		return nil, err
	}
	call, ok := n.(*ast.Variadic)
	if !ok || call.Op() != ast.OpCall {
		return n, nil
	}

	fn, ok := x.table[call.Name()]
	if !ok {
		return n, nil
	}
	if len(fn.Params) != call.Len() {
		return nil, types.NewArgumentError(call.Name(), "expects %d arguments, got %d", len(fn.Params), call.Len())
	}

	active := ctx.(map[string]bool)
	if active[call.Name()] {
		return nil, types.NewNotSupported(call.Name(), "recursive definition")
	}

	bindings := make(map[string]ast.Node, len(fn.Params))
	for i, p := range fn.Params {
		bindings[p] = call.Arg(i)
	}
	body, err := ast.Substitute(fn.Body, bindings)
	if err != nil {
		return nil, err
	}

	active[call.Name()] = true
	defer delete(active, call.Name())
	return ast.Analyze(body, x, active)
}
