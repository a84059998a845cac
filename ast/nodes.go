package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node is an immutable expression tree node. The set of implementations is
// closed: Number, Variable, Bool, Unary, Binary, Variadic, Control, Assign.
type Node interface {
	// Accept dispatches to the visit method of a matching n's concrete type.
	Accept(a Analyzer, ctx any) (Node, error)
	// Children returns a fresh slice of the direct children.
	Children() []Node
	String() string
	node()
}

// Number is a numeric literal with an optional unit.
type Number struct {
	value float64
	unit  string
}

func (n *Number) Value() float64 { return n.value }
func (n *Number) Unit() string   { return n.unit }

// IsNaN reports whether n is the NaN literal produced by folding 0/0.
func (n *Number) IsNaN() bool { return math.IsNaN(n.value) }

// Is reports whether n is the unitless literal v.
func (n *Number) Is(v float64) bool { return n.unit == "" && n.value == v }

func (n *Number) Accept(a Analyzer, ctx any) (Node, error) { return a.VisitNumber(n, ctx) }
func (n *Number) Children() []Node                         { return nil }
func (*Number) node()                                      {}

func (n *Number) String() string {
	s := FormatFloat(n.value)
	if n.unit != "" {
		s += "_" + n.unit
	}
	return s
}

// FormatFloat renders v the way literals are printed. Finite values are
// written without an exponent so the lexer reads them back unchanged.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Variable is a named value, including constants such as pi and e.
type Variable struct {
	name string
}

func (v *Variable) Name() string                             { return v.name }
func (v *Variable) Accept(a Analyzer, ctx any) (Node, error) { return a.VisitVariable(v, ctx) }
func (v *Variable) Children() []Node                         { return nil }
func (v *Variable) String() string                           { return v.name }
func (*Variable) node()                                      {}

// Bool is a boolean literal.
type Bool struct {
	value bool
}

func (b *Bool) Value() bool                              { return b.value }
func (b *Bool) Accept(a Analyzer, ctx any) (Node, error) { return a.VisitBool(b, ctx) }
func (b *Bool) Children() []Node                         { return nil }
func (b *Bool) String() string                           { return strconv.FormatBool(b.value) }
func (*Bool) node()                                      {}

// Unary applies a prefix, postfix or one-argument function operator.
type Unary struct {
	op Op
	x  Node
}

func (u *Unary) Op() Op                                   { return u.op }
func (u *Unary) X() Node                                  { return u.x }
func (u *Unary) Accept(a Analyzer, ctx any) (Node, error) { return a.VisitUnary(u, ctx) }
func (u *Unary) Children() []Node                         { return []Node{u.x} }
func (*Unary) node()                                      {}

func (u *Unary) String() string {
	switch u.op {
	case OpNeg:
		return "(-" + u.x.String() + ")"
	case OpNot:
		return "(¬" + u.x.String() + ")"
	case OpFact:
		return "(" + u.x.String() + "!)"
	}
	return u.op.String() + "(" + u.x.String() + ")"
}

// Binary combines two operands. For OpDiff the right operand is the
// differentiation variable.
type Binary struct {
	op   Op
	l, r Node
}

func (b *Binary) Op() Op                                   { return b.op }
func (b *Binary) L() Node                                  { return b.l }
func (b *Binary) R() Node                                  { return b.r }
func (b *Binary) Accept(a Analyzer, ctx any) (Node, error) { return a.VisitBinary(b, ctx) }
func (b *Binary) Children() []Node                         { return []Node{b.l, b.r} }
func (*Binary) node()                                      {}

func (b *Binary) String() string {
	if b.op.IsFunction() {
		return b.op.String() + "(" + b.l.String() + ", " + b.r.String() + ")"
	}
	return "(" + b.l.String() + " " + b.op.Symbol() + " " + b.r.String() + ")"
}

// Variadic holds an ordered argument list whose length is checked against the
// arity window of its Op. Name is set for user function calls only.
type Variadic struct {
	op   Op
	name string
	args []Node
}

func (v *Variadic) Op() Op         { return v.op }
func (v *Variadic) Name() string   { return v.name }
func (v *Variadic) Len() int       { return len(v.args) }
func (v *Variadic) Arg(i int) Node { return v.args[i] }

func (v *Variadic) Accept(a Analyzer, ctx any) (Node, error) { return a.VisitVariadic(v, ctx) }
func (v *Variadic) Children() []Node                         { return append([]Node(nil), v.args...) }
func (*Variadic) node()                                      {}

func (v *Variadic) String() string {
	parts := make([]string, len(v.args))
	for i, a := range v.args {
		parts[i] = a.String()
	}
	list := strings.Join(parts, ", ")
	switch v.op {
	case OpVector, OpMatrix:
		return "[" + list + "]"
	case OpCall:
		return v.name + "(" + list + ")"
	}
	return v.op.String() + "(" + list + ")"
}

// Control roles by index.
const (
	roleCond = 0
	roleThen = 1
	roleElse = 2

	roleInit    = 0
	roleForCond = 1
	roleStep    = 2
	roleForBody = 3

	roleWhileBody = 1
)

// Control is an if, while or for construct with fixed arity.
type Control struct {
	op   Op
	kids []Node
}

func (c *Control) Op() Op { return c.op }

// Cond returns the condition of any control node.
func (c *Control) Cond() Node {
	if c.op == OpFor {
		return c.kids[roleForCond]
	}
	return c.kids[roleCond]
}

// Then returns the branch taken when an if condition holds.
func (c *Control) Then() Node { return c.role(OpIf, roleThen) }

// Else returns the branch taken when an if condition fails.
func (c *Control) Else() Node { return c.role(OpIf, roleElse) }

// Init returns the initializer of a for loop.
func (c *Control) Init() Node { return c.role(OpFor, roleInit) }

// Step returns the step expression of a for loop.
func (c *Control) Step() Node { return c.role(OpFor, roleStep) }

// Body returns the loop body of a while or for node.
func (c *Control) Body() Node {
	switch c.op {
	case OpWhile:
		return c.kids[roleWhileBody]
	case OpFor:
		return c.kids[roleForBody]
	}
	return nil
}

func (c *Control) role(op Op, i int) Node {
	if c.op != op {
		return nil
	}
	return c.kids[i]
}

func (c *Control) Accept(a Analyzer, ctx any) (Node, error) { return a.VisitControl(c, ctx) }
func (c *Control) Children() []Node                         { return append([]Node(nil), c.kids...) }
func (*Control) node()                                      {}

func (c *Control) String() string {
	parts := make([]string, len(c.kids))
	for i, k := range c.kids {
		parts[i] = k.String()
	}
	return c.op.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Assign binds Value to Target.
type Assign struct {
	target *Variable
	value  Node
}

func (s *Assign) Target() *Variable                        { return s.target }
func (s *Assign) Value() Node                              { return s.value }
func (s *Assign) Accept(a Analyzer, ctx any) (Node, error) { return a.VisitAssign(s, ctx) }
func (s *Assign) Children() []Node                         { return []Node{s.target, s.value} }
func (*Assign) node()                                      {}

func (s *Assign) String() string {
	return "(" + s.target.String() + " := " + s.value.String() + ")"
}

// ConstructError reports a node that violates the arity or shape of its kind.
type ConstructError struct {
	Op  string
	Msg string
}

func (e *ConstructError) Error() string {
	return fmt.Sprintf("invalid %s node: %s", e.Op, e.Msg)
}

func constructErr(op fmt.Stringer, format string, args ...any) error {
	return &ConstructError{Op: op.String(), Msg: fmt.Sprintf(format, args...)}
}
