package ast

// Substitute replaces free occurrences of the bound variables in n. The
// variable of a derivative or table node is bound inside that node and is
// left alone there.
func Substitute(n Node, bindings map[string]Node) (Node, error) {
	if len(bindings) == 0 {
		return n, nil
	}
	s := &substituter{}
	s.Self = s
	return Analyze(n, s, bindings)
}

type substituter struct {
	Base
}

func (s *substituter) VisitVariable(v *Variable, ctx any) (Node, error) {
	if repl, ok := ctx.(map[string]Node)[v.name]; ok {
		return repl, nil
	}
	return v, nil
}

func (s *substituter) VisitBinary(b *Binary, ctx any) (Node, error) {
	if b.op == OpDiff {
		return Descend(b, s, without(ctx.(map[string]Node), b.r.(*Variable).name))
	}
	return Descend(b, s, ctx)
}

func (s *substituter) VisitVariadic(v *Variadic, ctx any) (Node, error) {
	if v.op == OpTable {
		return Descend(v, s, without(ctx.(map[string]Node), v.args[1].(*Variable).name))
	}
	return Descend(v, s, ctx)
}

func without(bindings map[string]Node, name string) map[string]Node {
	if _, ok := bindings[name]; !ok {
		return bindings
	}
	out := make(map[string]Node, len(bindings)-1)
	for k, v := range bindings {
		if k != name {
			out[k] = v
		}
	}
	return out
}
