package ast

import "math"

// Clone returns a structurally identical copy of n that shares no nodes with it.
func Clone(n Node) Node {
	switch n := n.(type) {
	case nil:
		return nil
	case *Number:
		return &Number{value: n.value, unit: n.unit}
	case *Variable:
		return &Variable{name: n.name}
	case *Bool:
		return &Bool{value: n.value}
	case *Unary:
		return &Unary{op: n.op, x: Clone(n.x)}
	case *Binary:
		return &Binary{op: n.op, l: Clone(n.l), r: Clone(n.r)}
	case *Variadic:
		return &Variadic{op: n.op, name: n.name, args: cloneAll(n.args)}
	case *Control:
		return &Control{op: n.op, kids: cloneAll(n.kids)}
	case *Assign:
		return &Assign{target: &Variable{name: n.target.name}, value: Clone(n.value)}
	}
	panic("ast: unknown node type")
}

func cloneAll(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(n)
	}
	return out
}

// Equal reports whether a and b have the same kind, operator, payload and
// children. NaN literals compare equal to each other.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	switch x := a.(type) {
	case *Number:
		y, ok := b.(*Number)
		if !ok || x.unit != y.unit {
			return false
		}
		return x.value == y.value || (math.IsNaN(x.value) && math.IsNaN(y.value))
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.name == y.name
	case *Bool:
		y, ok := b.(*Bool)
		return ok && x.value == y.value
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.op == y.op && Equal(x.x, y.x)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.op == y.op && Equal(x.l, y.l) && Equal(x.r, y.r)
	case *Variadic:
		y, ok := b.(*Variadic)
		return ok && x.op == y.op && x.name == y.name && equalAll(x.args, y.args)
	case *Control:
		y, ok := b.(*Control)
		return ok && x.op == y.op && equalAll(x.kids, y.kids)
	case *Assign:
		y, ok := b.(*Assign)
		return ok && x.target.name == y.target.name && Equal(x.value, y.value)
	}
	return false
}

func equalAll(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Rebuild returns a node of the same kind and operator as n with the given
// children, in Children order. Leaves are returned unchanged.
func Rebuild(n Node, kids []Node) (Node, error) {
	switch n := n.(type) {
	case *Number, *Variable, *Bool:
		return n, nil
	case *Unary:
		if len(kids) != 1 {
			return nil, constructErr(n.op, "takes 1 argument, got %d", len(kids))
		}
		return NewUnary(n.op, kids[0])
	case *Binary:
		if len(kids) != 2 {
			return nil, constructErr(n.op, "takes 2 arguments, got %d", len(kids))
		}
		return NewBinary(n.op, kids[0], kids[1])
	case *Variadic:
		return NewVariadic(n.op, n.name, kids)
	case *Control:
		return NewControl(n.op, kids...)
	case *Assign:
		if len(kids) != 2 {
			return nil, &ConstructError{Op: "assign", Msg: "takes a target and a value"}
		}
		target, ok := kids[0].(*Variable)
		if !ok {
			return nil, &ConstructError{Op: "assign", Msg: "target must be a variable"}
		}
		return NewAssign(target, kids[1])
	}
	return nil, &ConstructError{Op: "unknown", Msg: "unknown node type"}
}

// Contains reports whether the variable name occurs anywhere in n.
func Contains(n Node, name string) bool {
	if v, ok := n.(*Variable); ok {
		return v.name == name
	}
	for _, c := range n.Children() {
		if Contains(c, name) {
			return true
		}
	}
	return false
}

// Variables returns the distinct variable names of n in first-seen order.
func Variables(n Node) []string {
	seen := make(map[string]bool)
	var names []string
	var walk func(Node)
	walk = func(n Node) {
		if v, ok := n.(*Variable); ok {
			if !seen[v.name] {
				seen[v.name] = true
				names = append(names, v.name)
			}
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(n)
	return names
}

// Size counts the nodes of n.
func Size(n Node) int {
	total := 1
	for _, c := range n.Children() {
		total += Size(c)
	}
	return total
}
