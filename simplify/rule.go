package simplify

import (
	"go.uber.org/zap"

	"github.com/gnoswap-labs/formula/ast"
)

// Status tells the driver what a rule did with a node.
type Status int

const (
	// NotHandled keeps the original node.
	NotHandled Status = iota
	// Handled replaces the node with Result.Node as it is.
	Handled
	// Continue replaces the node and simplifies the replacement again.
	Continue
)

func (s Status) String() string {
	switch s {
	case Handled:
		return "handled"
	case Continue:
		return "continue"
	default:
		return "not handled"
	}
}

// Result is the outcome of applying a rule to one node.
type Result struct {
	Status Status
	Node   ast.Node
}

// Names of the rewrite groups. Each can be disabled by name.
const (
	RuleIdentity  = "identity"
	RuleFold      = "constant-fold"
	RuleNegation  = "negation"
	RuleLikeTerms = "like-terms"
	RulePower     = "power"
	RuleLogExp    = "log-exp"
	RuleRegroup   = "regroup"
	RuleCanonical = "canonical"
	RuleBoolean   = "boolean"
)

// Names lists every rewrite group in the order rules try them.
func Names() []string {
	return []string{
		RuleFold,
		RuleIdentity,
		RuleBoolean,
		RuleNegation,
		RuleLogExp,
		RulePower,
		RuleRegroup,
		RuleLikeTerms,
		RuleCanonical,
	}
}

// IsRule reports whether name is a rewrite group.
func IsRule(name string) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}

type opNode interface {
	ast.Node
	Op() ast.Op
}

// rewrite returns the replacement for n, or nil when it does not apply.
type rewrite[N opNode] struct {
	name string
	fn   func(n N) (ast.Node, error)
}

// table holds the rewrites of one node kind keyed by operator.
type table[N opNode] map[ast.Op][]rewrite[N]

func (t table[N]) on(name string, fn func(N) (ast.Node, error), ops ...ast.Op) {
	for _, op := range ops {
		t[op] = append(t[op], rewrite[N]{name: name, fn: fn})
	}
}

// settle runs the rewrites registered for cur. orig is the node before its
// children were simplified.
func settle[N opNode](s *Simplifier, t table[N], orig ast.Node, cur N) (Result, error) {
	for _, rw := range t[cur.Op()] {
		if s.disabled[rw.name] {
			continue
		}
		out, err := rw.fn(cur)
		if err != nil {
			return Result{}, err
		}
		if out == nil || ast.Equal(out, cur) {
			continue
		}
		s.logger.Debug("rewrite",
			zap.String("rule", rw.name),
			zap.Stringer("from", cur),
			zap.Stringer("to", out),
		)
		return Result{Status: Continue, Node: out}, nil
	}
	if ast.Node(cur) != orig {
		return Result{Status: Handled, Node: cur}, nil
	}
	return Result{Status: NotHandled}, nil
}

// LeafRule normalizes literals.
type LeafRule struct{}

func (LeafRule) Apply(_ *Simplifier, n ast.Node) (Result, error) {
	if num, ok := n.(*ast.Number); ok && num.Value() == 0 && signbit(num.Value()) {
		return Result{Status: Handled, Node: ast.NumUnit(0, num.Unit())}, nil
	}
	return Result{Status: NotHandled}, nil
}

// UnaryRule simplifies the operand, then applies the unary rewrite table.
type UnaryRule struct {
	rewrites table[*ast.Unary]
}

func (r *UnaryRule) Apply(s *Simplifier, u *ast.Unary, st *state) (Result, error) {
	n, err := ast.Descend(u, s, st)
	if err != nil {
		return Result{}, err
	}
	return settle(s, r.rewrites, u, n.(*ast.Unary))
}

// BinaryRule simplifies both operands, then applies the binary rewrite table.
type BinaryRule struct {
	rewrites table[*ast.Binary]
}

func (r *BinaryRule) Apply(s *Simplifier, b *ast.Binary, st *state) (Result, error) {
	n, err := ast.Descend(b, s, st)
	if err != nil {
		return Result{}, err
	}
	return settle(s, r.rewrites, b, n.(*ast.Binary))
}

// VariadicRule simplifies arguments and folds min and max of literals.
type VariadicRule struct {
	rewrites table[*ast.Variadic]
}

func (r *VariadicRule) Apply(s *Simplifier, v *ast.Variadic, st *state) (Result, error) {
	n, err := ast.Descend(v, s, st)
	if err != nil {
		return Result{}, err
	}
	return settle(s, r.rewrites, v, n.(*ast.Variadic))
}

// ControlRule simplifies every part and selects constant if branches.
type ControlRule struct {
	rewrites table[*ast.Control]
}

func (r *ControlRule) Apply(s *Simplifier, c *ast.Control, st *state) (Result, error) {
	n, err := ast.Descend(c, s, st)
	if err != nil {
		return Result{}, err
	}
	return settle(s, r.rewrites, c, n.(*ast.Control))
}

// AssignRule simplifies the assigned value.
type AssignRule struct{}

func (AssignRule) Apply(s *Simplifier, a *ast.Assign, st *state) (Result, error) {
	n, err := ast.Descend(a, s, st)
	if err != nil {
		return Result{}, err
	}
	if n != ast.Node(a) {
		return Result{Status: Handled, Node: n}, nil
	}
	return Result{Status: NotHandled}, nil
}

func newUnaryRule() *UnaryRule {
	t := table[*ast.Unary]{}
	t.on(RuleFold, foldUnary, foldableUnary...)
	t.on(RuleBoolean, notRules, ast.OpNot)
	t.on(RuleNegation, negRules, ast.OpNeg)
	t.on(RuleLogExp, logExpUnary, ast.OpLn, ast.OpLg, ast.OpLb, ast.OpExp)
	return &UnaryRule{rewrites: t}
}

func newBinaryRule() *BinaryRule {
	arith := []ast.Op{ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow}
	compare := []ast.Op{ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe}
	logic := []ast.Op{ast.OpAnd, ast.OpOr, ast.OpXor, ast.OpNand, ast.OpNor, ast.OpImpl, ast.OpEquiv}

	t := table[*ast.Binary]{}
	t.on(RuleFold, foldBinary, arith...)
	t.on(RuleFold, foldBinary, compare...)
	t.on(RuleFold, foldBinary, logic...)
	t.on(RuleFold, foldBinary, ast.OpShl, ast.OpShr, ast.OpLog, ast.OpRoot)
	t.on(RuleIdentity, identity, ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpPow)
	t.on(RuleBoolean, booleanRules, ast.OpAnd, ast.OpOr)
	t.on(RuleNegation, pushSign, ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv)
	t.on(RuleLogExp, logExpBinary, ast.OpLog, ast.OpPow)
	t.on(RulePower, powerRules, ast.OpMul, ast.OpPow)
	t.on(RuleRegroup, regroup, ast.OpMul, ast.OpDiv)
	t.on(RuleLikeTerms, likeTerms, ast.OpAdd, ast.OpSub)
	t.on(RuleCanonical, canonical, ast.OpMul)
	return &BinaryRule{rewrites: t}
}

func newVariadicRule() *VariadicRule {
	t := table[*ast.Variadic]{}
	t.on(RuleFold, foldExtremum, ast.OpMin, ast.OpMax)
	return &VariadicRule{rewrites: t}
}

func newControlRule() *ControlRule {
	t := table[*ast.Control]{}
	t.on(RuleBoolean, constantBranch, ast.OpIf)
	return &ControlRule{rewrites: t}
}
