// Package engine is the host-facing facade over the formula packages: it
// applies a configuration, keeps a parse cache, resolves user functions and
// parameters, and processes single formulas or whole files of them.
package engine

import (
	"fmt"
	"io"
	"os"
	"unicode"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/formula/ast"
	"github.com/gnoswap-labs/formula/derive"
	"github.com/gnoswap-labs/formula/internal/cache"
	"github.com/gnoswap-labs/formula/parser"
	"github.com/gnoswap-labs/formula/simplify"
)

type Engine struct {
	config     Config
	logger     *zap.Logger
	simplifier *simplify.Simplifier
	derivator  *derive.Differentiator
	functions  derive.FunctionTable
	params     map[string]ast.Node
	cache      *cache.Cache
	progress   io.Writer
	workers    int
}

type Option func(*Engine)

// WithProgress sets where batch progress bars are drawn. Nil hides them.
func WithProgress(w io.Writer) Option {
	return func(e *Engine) {
		if w == nil {
			w = io.Discard
		}
		e.progress = w
	}
}

// WithWorkers bounds the number of formulas processed concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// New loads the configuration at configPath (defaults when empty) and
// builds an Engine from it.
func New(configPath string, logger *zap.Logger, opts ...Option) (*Engine, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(config, logger, opts...)
}

func NewWithConfig(config Config, logger *zap.Logger, opts ...Option) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		config:   config,
		logger:   logger,
		progress: os.Stderr,
		workers:  defaultWorkers(),
	}
	for _, opt := range opts {
		opt(e)
	}

	for name := range config.Rules {
		if !simplify.IsRule(name) {
			logger.Warn("unknown rule in configuration", zap.String("rule", name))
		}
	}

	e.simplifier = simplify.New(
		simplify.WithLogger(logger.Named("simplify")),
		simplify.WithDisabled(config.disabledRules()...),
		simplify.WithMaxPasses(config.MaxPasses),
	)
	e.derivator = derive.New(
		derive.WithSimplifier(e.simplifier),
		derive.WithLogger(logger.Named("derive")),
	)
	if config.CacheSize >= 0 {
		e.cache = cache.New(config.CacheSize, config.CacheMaxAge)
	}

	if err := e.loadFunctions(config.Functions); err != nil {
		return nil, err
	}
	if err := e.loadParams(config.Params); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) loadFunctions(defs []FunctionDef) error {
	e.functions = make(derive.FunctionTable, len(defs))
	for _, def := range defs {
		if !validFunctionName(def.Name) {
			return fmt.Errorf("function %q: name must be a single letter", def.Name)
		}
		body, err := parser.Parse(def.Body)
		if err != nil {
			return fmt.Errorf("function %s: %w", def.Name, err)
		}
		e.functions[def.Name] = derive.Function{Params: def.Params, Body: body}
	}
	return nil
}

func validFunctionName(name string) bool {
	r := []rune(name)
	return len(r) == 1 && unicode.IsLetter(r[0])
}

func (e *Engine) loadParams(params map[string]string) error {
	e.params = make(map[string]ast.Node, len(params))
	for name, text := range params {
		n, err := parser.Parse(text)
		if err != nil {
			return fmt.Errorf("param %s: %w", name, err)
		}
		e.params[name] = n
	}
	return nil
}

func (e *Engine) Config() Config { return e.config }

// Functions returns the user function table built from the configuration.
func (e *Engine) Functions() derive.FunctionTable { return e.functions }

// Parse parses text, serving repeated formulas from the cache.
func (e *Engine) Parse(text string) (ast.Node, error) {
	if e.cache != nil {
		if n, ok := e.cache.Get(text); ok {
			return n, nil
		}
	}
	n, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Set(text, n)
	}
	return n, nil
}

// Process parses one formula, inlines user functions, resolves embedded
// derivatives and simplifies the result with the configured parameters.
func (e *Engine) Process(line string) (ast.Node, error) {
	return e.Simplify(line, nil)
}

// Simplify is Process with extra parameter bindings that override the
// configured ones.
func (e *Engine) Simplify(text string, extra map[string]ast.Node) (ast.Node, error) {
	n, err := e.Parse(text)
	if err != nil {
		return nil, err
	}
	if n, err = e.derivator.Resolve(n, e.functions); err != nil {
		return nil, err
	}
	if n, err = expand(n, e.functions); err != nil {
		return nil, err
	}
	return e.simplifier.Simplify(n, &simplify.Context{Params: e.bindings(extra)})
}

// Differentiate returns the derivative of text with respect to variable.
// With raw set the derivative is returned before simplification.
func (e *Engine) Differentiate(text, variable string, raw bool) (ast.Node, error) {
	n, err := e.Parse(text)
	if err != nil {
		return nil, err
	}
	c := &derive.Context{Var: variable, Functions: e.functions}
	if raw {
		return e.derivator.Raw(n, c)
	}
	return e.derivator.Derive(n, c)
}

func (e *Engine) bindings(extra map[string]ast.Node) map[string]ast.Node {
	if len(extra) == 0 {
		return e.params
	}
	out := make(map[string]ast.Node, len(e.params)+len(extra))
	for k, v := range e.params {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
