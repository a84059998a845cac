package ast

import "math"

// Num returns a unitless numeric literal.
func Num(v float64) *Number { return &Number{value: v} }

// NumUnit returns a numeric literal tagged with unit.
func NumUnit(v float64, unit string) *Number { return &Number{value: v, unit: unit} }

// NaN returns the literal produced by folding 0/0.
func NaN() *Number { return &Number{value: math.NaN()} }

// Var returns a variable leaf.
func Var(name string) *Variable { return &Variable{name: name} }

// BoolLit returns a boolean literal.
func BoolLit(v bool) *Bool { return &Bool{value: v} }

// NewUnary builds a unary node, checking that op is unary and x is present.
func NewUnary(op Op, x Node) (*Unary, error) {
	if op.Shape() != ShapeUnary {
		return nil, constructErr(op, "not a unary operator")
	}
	if x == nil {
		return nil, constructErr(op, "missing operand")
	}
	return &Unary{op: op, x: x}, nil
}

// NewBinary builds a binary node. A derivative node requires a bare
// variable as its right operand.
func NewBinary(op Op, l, r Node) (*Binary, error) {
	if op.Shape() != ShapeBinary {
		return nil, constructErr(op, "not a binary operator")
	}
	if l == nil || r == nil {
		return nil, constructErr(op, "missing operand")
	}
	if op == OpDiff {
		if _, ok := r.(*Variable); !ok {
			return nil, constructErr(op, "differentiation variable must be a variable, got %s", r)
		}
	}
	return &Binary{op: op, l: l, r: r}, nil
}

// NewVariadic builds a variadic node and checks its arity window. name is
// required for OpCall and ignored otherwise.
func NewVariadic(op Op, name string, args []Node) (*Variadic, error) {
	if op.Shape() != ShapeVariadic {
		return nil, constructErr(op, "not a variadic operator")
	}
	if err := checkArity(op, len(args)); err != nil {
		return nil, err
	}
	for i, a := range args {
		if a == nil {
			return nil, constructErr(op, "missing argument %d", i+1)
		}
	}

	switch op {
	case OpCall:
		if name == "" {
			return nil, constructErr(op, "missing function name")
		}
	case OpMatrix:
		width := -1
		for i, a := range args {
			row, ok := a.(*Variadic)
			if !ok || row.op != OpVector {
				return nil, constructErr(op, "row %d is not a vector", i+1)
			}
			if width >= 0 && row.Len() != width {
				return nil, constructErr(op, "row %d has %d columns, want %d", i+1, row.Len(), width)
			}
			width = row.Len()
		}
		name = ""
	case OpTable:
		if _, ok := args[1].(*Variable); !ok {
			return nil, constructErr(op, "table variable must be a variable, got %s", args[1])
		}
		name = ""
	default:
		name = ""
	}
	return &Variadic{op: op, name: name, args: append([]Node(nil), args...)}, nil
}

// NewControl builds an if, while or for node with its exact arity.
func NewControl(op Op, kids ...Node) (*Control, error) {
	if op.Shape() != ShapeControl {
		return nil, constructErr(op, "not a control construct")
	}
	if err := checkArity(op, len(kids)); err != nil {
		return nil, err
	}
	for i, k := range kids {
		if k == nil {
			return nil, constructErr(op, "missing argument %d", i+1)
		}
	}
	return &Control{op: op, kids: append([]Node(nil), kids...)}, nil
}

// NewAssign builds an assignment.
func NewAssign(target *Variable, value Node) (*Assign, error) {
	if target == nil {
		return nil, &ConstructError{Op: "assign", Msg: "missing target"}
	}
	if value == nil {
		return nil, &ConstructError{Op: "assign", Msg: "missing value"}
	}
	return &Assign{target: target, value: value}, nil
}

func checkArity(op Op, n int) error {
	lo, hi := op.Arity()
	if n < lo || (hi != Unbounded && n > hi) {
		if lo == hi {
			return constructErr(op, "takes %d arguments, got %d", lo, n)
		}
		if hi == Unbounded {
			return constructErr(op, "takes at least %d arguments, got %d", lo, n)
		}
		return constructErr(op, "takes %d to %d arguments, got %d", lo, hi, n)
	}
	return nil
}

// MustUnary is NewUnary for callers that construct nodes from known-good parts.
func MustUnary(op Op, x Node) *Unary {
	u, err := NewUnary(op, x)
	if err != nil {
		panic(err)
	}
	return u
}

// MustBinary is NewBinary for callers that construct nodes from known-good parts.
func MustBinary(op Op, l, r Node) *Binary {
	b, err := NewBinary(op, l, r)
	if err != nil {
		panic(err)
	}
	return b
}

// MustVariadic is NewVariadic for callers that construct nodes from known-good parts.
func MustVariadic(op Op, name string, args []Node) *Variadic {
	v, err := NewVariadic(op, name, args)
	if err != nil {
		panic(err)
	}
	return v
}

func Neg(x Node) Node           { return MustUnary(OpNeg, x) }
func Not(x Node) Node           { return MustUnary(OpNot, x) }
func Fn(op Op, x Node) Node     { return MustUnary(op, x) }
func Add(l, r Node) Node        { return MustBinary(OpAdd, l, r) }
func Sub(l, r Node) Node        { return MustBinary(OpSub, l, r) }
func Mul(l, r Node) Node        { return MustBinary(OpMul, l, r) }
func Div(l, r Node) Node        { return MustBinary(OpDiv, l, r) }
func Pow(l, r Node) Node        { return MustBinary(OpPow, l, r) }
func Bin(op Op, l, r Node) Node { return MustBinary(op, l, r) }

// Vector returns a vector literal.
func Vector(elems ...Node) Node { return MustVariadic(OpVector, "", elems) }

// Call returns a user function call.
func Call(name string, args ...Node) Node { return MustVariadic(OpCall, name, args) }

// Derivative returns diff(f, v).
func Derivative(f Node, v *Variable) Node { return MustBinary(OpDiff, f, v) }
