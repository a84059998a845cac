// Package simplify rewrites expression trees into simpler equivalent forms.
//
// A Simplifier is an ast.Analyzer that delegates each node kind to a rule
// object. Rules simplify children first and then try a table of named
// rewrites keyed by operator. The driver repeats whole-tree passes until a
// pass returns the identical tree, so simplifying a result again changes
// nothing.
package simplify

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/formula/ast"
)

const (
	// DefaultMaxPasses bounds the fixpoint loop.
	DefaultMaxPasses = 64

	// maxContinue bounds immediate re-simplification inside one pass.
	maxContinue = 256
)

// Context carries per-call inputs.
type Context struct {
	// Params are substituted for free variables before simplifying.
	Params map[string]ast.Node
}

type Option func(*Simplifier)

// WithLogger logs every applied rewrite at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *Simplifier) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDisabled turns off the named rewrite groups.
func WithDisabled(names ...string) Option {
	return func(s *Simplifier) {
		for _, n := range names {
			s.disabled[n] = true
		}
	}
}

// WithMaxPasses overrides DefaultMaxPasses. Values below one are ignored.
func WithMaxPasses(n int) Option {
	return func(s *Simplifier) {
		if n > 0 {
			s.maxPasses = n
		}
	}
}

// Simplifier is safe for concurrent use once built.
type Simplifier struct {
	logger    *zap.Logger
	disabled  map[string]bool
	maxPasses int

	leaf     LeafRule
	unary    *UnaryRule
	binary   *BinaryRule
	variadic *VariadicRule
	control  *ControlRule
	assign   AssignRule
}

func New(opts ...Option) *Simplifier {
	s := &Simplifier{
		logger:    zap.NewNop(),
		disabled:  make(map[string]bool),
		maxPasses: DefaultMaxPasses,
		unary:     newUnaryRule(),
		binary:    newBinaryRule(),
		variadic:  newVariadicRule(),
		control:   newControlRule(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Disabled reports whether the named rewrite group is off.
func (s *Simplifier) Disabled(name string) bool {
	return s.disabled[name]
}

// state is the per-call context threaded through a pass.
type state struct {
	depth int
}

// stateOf lets the Simplifier run under ast.Analyze with any context.
func stateOf(ctx any) *state {
	if st, ok := ctx.(*state); ok {
		return st
	}
	return &state{}
}

// Simplify returns the simplified form of n. The input tree is not modified.
func (s *Simplifier) Simplify(n ast.Node, c *Context) (ast.Node, error) {
	if n == nil {
		return nil, fmt.Errorf("simplify: nil tree")
	}
	if c != nil && len(c.Params) > 0 {
		var err error
		if n, err = ast.Substitute(n, c.Params); err != nil {
			return nil, err
		}
	}

	st := &state{}
	for pass := 1; pass <= s.maxPasses; pass++ {
		out, err := ast.Analyze(n, s, st)
		if err != nil {
			return nil, err
		}
		if out == n {
			return out, nil
		}
		n = out
	}
	s.logger.Warn("simplify stopped before reaching a fixpoint",
		zap.Int("passes", s.maxPasses),
		zap.Stringer("tree", n),
	)
	return n, nil
}

func (s *Simplifier) VisitNumber(n *ast.Number, ctx any) (ast.Node, error) {
	res, err := s.leaf.Apply(s, n)
	return s.finish(n, res, err, ctx)
}

func (s *Simplifier) VisitVariable(n *ast.Variable, ctx any) (ast.Node, error) {
	res, err := s.leaf.Apply(s, n)
	return s.finish(n, res, err, ctx)
}

func (s *Simplifier) VisitBool(n *ast.Bool, ctx any) (ast.Node, error) {
	res, err := s.leaf.Apply(s, n)
	return s.finish(n, res, err, ctx)
}

func (s *Simplifier) VisitUnary(n *ast.Unary, ctx any) (ast.Node, error) {
	res, err := s.unary.Apply(s, n, stateOf(ctx))
	return s.finish(n, res, err, ctx)
}

func (s *Simplifier) VisitBinary(n *ast.Binary, ctx any) (ast.Node, error) {
	res, err := s.binary.Apply(s, n, stateOf(ctx))
	return s.finish(n, res, err, ctx)
}

func (s *Simplifier) VisitVariadic(n *ast.Variadic, ctx any) (ast.Node, error) {
	res, err := s.variadic.Apply(s, n, stateOf(ctx))
	return s.finish(n, res, err, ctx)
}

func (s *Simplifier) VisitControl(n *ast.Control, ctx any) (ast.Node, error) {
	res, err := s.control.Apply(s, n, stateOf(ctx))
	return s.finish(n, res, err, ctx)
}

func (s *Simplifier) VisitAssign(n *ast.Assign, ctx any) (ast.Node, error) {
	res, err := s.assign.Apply(s, n, stateOf(ctx))
	return s.finish(n, res, err, ctx)
}

func (s *Simplifier) finish(n ast.Node, res Result, err error, ctx any) (ast.Node, error) {
	if err != nil {
		return nil, err
	}
	switch res.Status {
	case Handled:
		return res.Node, nil
	case Continue:
		st := stateOf(ctx)
		if st.depth >= maxContinue {
			return res.Node, nil
		}
		st.depth++
		defer func() { st.depth-- }()
		return ast.Analyze(res.Node, s, st)
	}
	return n, nil
}
