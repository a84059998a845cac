package ast

// Analyzer is a tree transformation with one visit method per node type.
// Each method returns the replacement for the visited node; returning the
// node itself signals that nothing changed.
type Analyzer interface {
	VisitNumber(n *Number, ctx any) (Node, error)
	VisitVariable(n *Variable, ctx any) (Node, error)
	VisitBool(n *Bool, ctx any) (Node, error)
	VisitUnary(n *Unary, ctx any) (Node, error)
	VisitBinary(n *Binary, ctx any) (Node, error)
	VisitVariadic(n *Variadic, ctx any) (Node, error)
	VisitControl(n *Control, ctx any) (Node, error)
	VisitAssign(n *Assign, ctx any) (Node, error)
}

// Analyze runs a over n, threading ctx through the recursion.
func Analyze(n Node, a Analyzer, ctx any) (Node, error) {
	return n.Accept(a, ctx)
}

// Base provides the default visits: leaves are returned as they are and
// composite nodes are rebuilt from their analyzed children only when one of
// them changed. Embed it and set Self to the embedding analyzer so that
// recursion reaches the overridden methods.
type Base struct {
	Self Analyzer
}

func (b Base) self() Analyzer {
	if b.Self != nil {
		return b.Self
	}
	return b
}

func (b Base) VisitNumber(n *Number, _ any) (Node, error)     { return n, nil }
func (b Base) VisitVariable(n *Variable, _ any) (Node, error) { return n, nil }
func (b Base) VisitBool(n *Bool, _ any) (Node, error)         { return n, nil }

func (b Base) VisitUnary(n *Unary, ctx any) (Node, error)       { return Descend(n, b.self(), ctx) }
func (b Base) VisitBinary(n *Binary, ctx any) (Node, error)     { return Descend(n, b.self(), ctx) }
func (b Base) VisitVariadic(n *Variadic, ctx any) (Node, error) { return Descend(n, b.self(), ctx) }
func (b Base) VisitControl(n *Control, ctx any) (Node, error)   { return Descend(n, b.self(), ctx) }
func (b Base) VisitAssign(n *Assign, ctx any) (Node, error)     { return Descend(n, b.self(), ctx) }

// Descend analyzes the children of n bottom-up with a and rebuilds n only if
// at least one child came back as a different node. The variable operand of
// a derivative and the target of an assignment are binders and are not
// visited.
func Descend(n Node, a Analyzer, ctx any) (Node, error) {
	kids := n.Children()
	if len(kids) == 0 {
		return n, nil
	}

	skip := -1
	switch n := n.(type) {
	case *Binary:
		if n.op == OpDiff {
			skip = 1
		}
	case *Assign:
		skip = 0
	}

	changed := false
	for i, k := range kids {
		if i == skip {
			continue
		}
		out, err := k.Accept(a, ctx)
		if err != nil {
			return nil, err
		}
		if out != k {
			kids[i] = out
			changed = true
		}
	}
	if !changed {
		return n, nil
	}
	return Rebuild(n, kids)
}
