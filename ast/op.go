package ast

import "fmt"

// Op identifies the operator or function of a non-leaf node.
type Op int

const (
	OpInvalid Op = iota

	// unary
	OpNeg
	OpNot
	OpFact
	OpSin
	OpCos
	OpTan
	OpCot
	OpSec
	OpCsc
	OpArcsin
	OpArccos
	OpArctan
	OpArccot
	OpSinh
	OpCosh
	OpTanh
	OpCoth
	OpArsinh
	OpArcosh
	OpArtanh
	OpArcoth
	OpLn
	OpLg
	OpLb
	OpExp
	OpSqrt
	OpAbs
	OpSign
	OpFloor
	OpCeil
	OpRound
	OpTranspose
	OpInverse
	OpDet

	// binary
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpLog  // log(x, base)
	OpRoot // root(x, n)
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpXor
	OpNand
	OpNor
	OpImpl
	OpEquiv
	OpShl
	OpShr
	OpDiff // diff(f, v)

	// variadic
	OpMin
	OpMax
	OpVector
	OpMatrix
	OpCall
	OpTable

	// control
	OpIf
	OpWhile
	OpFor

	opCount
)

// Shape is the node type an Op belongs to.
type Shape int

const (
	ShapeInvalid Shape = iota
	ShapeUnary
	ShapeBinary
	ShapeVariadic
	ShapeControl
)

// Precedence levels, lowest binding first.
const (
	PrecAssign = iota + 1
	PrecEquiv
	PrecImpl
	PrecOr
	PrecAnd
	PrecNot
	PrecCompare
	PrecShift
	PrecAdd
	PrecMul
	PrecNeg
	PrecPow
	PrecPostfix
	PrecAtom
)

// Unbounded marks a variadic Op without an upper arity limit.
const Unbounded = -1

type opInfo struct {
	name       string
	symbol     string // infix spelling; empty for function-style ops
	shape      Shape
	prec       int
	rightAssoc bool
	minArgs    int
	maxArgs    int
}

var ops = [opCount]opInfo{
	OpNeg:       {name: "neg", symbol: "-", shape: ShapeUnary, prec: PrecNeg, rightAssoc: true},
	OpNot:       {name: "not", symbol: "¬", shape: ShapeUnary, prec: PrecNot, rightAssoc: true},
	OpFact:      {name: "fact", symbol: "!", shape: ShapeUnary, prec: PrecPostfix},
	OpSin:       fn1("sin"),
	OpCos:       fn1("cos"),
	OpTan:       fn1("tan"),
	OpCot:       fn1("cot"),
	OpSec:       fn1("sec"),
	OpCsc:       fn1("csc"),
	OpArcsin:    fn1("arcsin"),
	OpArccos:    fn1("arccos"),
	OpArctan:    fn1("arctan"),
	OpArccot:    fn1("arccot"),
	OpSinh:      fn1("sinh"),
	OpCosh:      fn1("cosh"),
	OpTanh:      fn1("tanh"),
	OpCoth:      fn1("coth"),
	OpArsinh:    fn1("arsinh"),
	OpArcosh:    fn1("arcosh"),
	OpArtanh:    fn1("artanh"),
	OpArcoth:    fn1("arcoth"),
	OpLn:        fn1("ln"),
	OpLg:        fn1("lg"),
	OpLb:        fn1("lb"),
	OpExp:       fn1("exp"),
	OpSqrt:      fn1("sqrt"),
	OpAbs:       fn1("abs"),
	OpSign:      fn1("sign"),
	OpFloor:     fn1("floor"),
	OpCeil:      fn1("ceil"),
	OpRound:     fn1("round"),
	OpTranspose: fn1("transpose"),
	OpInverse:   fn1("inverse"),
	OpDet:       fn1("det"),

	OpAdd:   infix("add", "+", PrecAdd, false),
	OpSub:   infix("sub", "-", PrecAdd, false),
	OpMul:   infix("mul", "*", PrecMul, false),
	OpDiv:   infix("div", "/", PrecMul, false),
	OpMod:   infix("mod", "mod", PrecMul, false),
	OpPow:   infix("pow", "^", PrecPow, true),
	OpLog:   fn2("log"),
	OpRoot:  fn2("root"),
	OpEq:    infix("eq", "=", PrecCompare, false),
	OpNeq:   infix("neq", "!=", PrecCompare, false),
	OpLt:    infix("lt", "<", PrecCompare, false),
	OpLe:    infix("le", "<=", PrecCompare, false),
	OpGt:    infix("gt", ">", PrecCompare, false),
	OpGe:    infix("ge", ">=", PrecCompare, false),
	OpAnd:   infix("and", "&", PrecAnd, false),
	OpOr:    infix("or", "|", PrecOr, false),
	OpXor:   infix("xor", "xor", PrecOr, false),
	OpNand:  infix("nand", "nand", PrecAnd, false),
	OpNor:   infix("nor", "nor", PrecOr, false),
	OpImpl:  infix("impl", "->", PrecImpl, true),
	OpEquiv: infix("equiv", "<->", PrecEquiv, false),
	OpShl:   infix("shl", "<<", PrecShift, false),
	OpShr:   infix("shr", ">>", PrecShift, false),
	OpDiff:  fn2("diff"),

	OpMin:    {name: "min", shape: ShapeVariadic, prec: PrecAtom, minArgs: 1, maxArgs: Unbounded},
	OpMax:    {name: "max", shape: ShapeVariadic, prec: PrecAtom, minArgs: 1, maxArgs: Unbounded},
	OpVector: {name: "vector", shape: ShapeVariadic, prec: PrecAtom, minArgs: 1, maxArgs: Unbounded},
	OpMatrix: {name: "matrix", shape: ShapeVariadic, prec: PrecAtom, minArgs: 1, maxArgs: Unbounded},
	OpCall:   {name: "call", shape: ShapeVariadic, prec: PrecAtom, minArgs: 1, maxArgs: Unbounded},
	OpTable:  {name: "table", shape: ShapeVariadic, prec: PrecAtom, minArgs: 4, maxArgs: 5},

	OpIf:    {name: "if", shape: ShapeControl, prec: PrecAtom, minArgs: 3, maxArgs: 3},
	OpWhile: {name: "while", shape: ShapeControl, prec: PrecAtom, minArgs: 2, maxArgs: 2},
	OpFor:   {name: "for", shape: ShapeControl, prec: PrecAtom, minArgs: 4, maxArgs: 4},
}

func fn1(name string) opInfo {
	return opInfo{name: name, shape: ShapeUnary, prec: PrecAtom, minArgs: 1, maxArgs: 1}
}

func fn2(name string) opInfo {
	return opInfo{name: name, shape: ShapeBinary, prec: PrecAtom, minArgs: 2, maxArgs: 2}
}

func infix(name, symbol string, prec int, right bool) opInfo {
	return opInfo{name: name, symbol: symbol, shape: ShapeBinary, prec: prec, rightAssoc: right, minArgs: 2, maxArgs: 2}
}

func (op Op) info() opInfo {
	if op <= OpInvalid || op >= opCount {
		return opInfo{}
	}
	return ops[op]
}

func (op Op) String() string {
	if name := op.info().name; name != "" {
		return name
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Symbol is the infix or prefix spelling, empty for function-style ops.
func (op Op) Symbol() string { return op.info().symbol }

// Shape returns the node type op belongs to.
func (op Op) Shape() Shape { return op.info().shape }

// Precedence returns the binding strength of op.
func (op Op) Precedence() int { return op.info().prec }

// RightAssoc reports whether op groups right to left.
func (op Op) RightAssoc() bool { return op.info().rightAssoc }

// Arity returns the arity window of op. max is Unbounded for open lists.
func (op Op) Arity() (min, max int) {
	i := op.info()
	switch i.shape {
	case ShapeUnary:
		return 1, 1
	case ShapeBinary:
		return 2, 2
	}
	return i.minArgs, i.maxArgs
}

// IsFunction reports whether op is written as name(args).
func (op Op) IsFunction() bool {
	i := op.info()
	return i.shape != ShapeInvalid && i.symbol == ""
}

// IsCommutative reports whether the operands of op may be swapped.
func (op Op) IsCommutative() bool {
	switch op {
	case OpAdd, OpMul, OpEq, OpNeq, OpAnd, OpOr, OpXor, OpNand, OpNor, OpEquiv:
		return true
	}
	return false
}
