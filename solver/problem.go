// Package solver solves a declaration scope once and decodes the model into
// native values.
package solver

import (
	"errors"
	"fmt"
	"log/slog"

	"slava0135/easyz3/symbolic"
)

// Problem is a declaration being written. Variables are declared and
// constraints asserted through the embedded Scope, then Solve is called
// once.
type Problem struct {
	*symbolic.Scope

	engine Engine
	logger *slog.Logger
}

type config struct {
	engine  Engine
	logger  *slog.Logger
	globals symbolic.Env
}

type Option func(*config)

func WithEngine(e Engine) Option {
	return func(c *config) {
		c.engine = e
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithGlobals(env symbolic.Env) Option {
	return func(c *config) {
		c.globals = env
	}
}

func New(name string, opts ...Option) *Problem {
	c := config{
		engine: Z3(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	scopeOpts := []symbolic.ScopeOption{symbolic.WithLogger(c.logger)}
	if c.globals != nil {
		scopeOpts = append(scopeOpts, symbolic.WithGlobals(c.globals))
	}
	return &Problem{
		Scope:  symbolic.NewScope(name, scopeOpts...),
		engine: c.engine,
		logger: c.logger,
	}
}

func (p *Problem) Engine() Engine {
	return p.engine
}

// MustDeclare is Declare that panics on error.
func (p *Problem) MustDeclare(name string, sort symbolic.Sort) *symbolic.Variable {
	v, err := p.Declare(name, sort)
	if err != nil {
		panic(err)
	}
	return v
}

// Solve seals the problem and runs one satisfiability check. A failed solve
// exposes no values and leaves the registry untouched.
func (p *Problem) Solve() (*Solution, error) {
	if p.Sealed() {
		return nil, fmt.Errorf("'%s': %w", p.Name(), ErrAlreadySolved)
	}
	p.Seal()
	p.logger.Debug("solving",
		"problem", p.Name(),
		"engine", p.engine.Name(),
		"vars", len(p.Declarations()),
		"assertions", len(p.Assertions()),
	)
	model, err := p.engine.Solve(p.Scope)
	if err != nil {
		if errors.Is(err, ErrUnsatisfiable) {
			p.logger.Warn("unsatisfiable", "problem", p.Name())
		}
		return nil, fmt.Errorf("'%s': %w", p.Name(), err)
	}
	s := newSolution(p.Name(), p.Declarations(), model)
	register(s)
	p.logger.Debug("solved", "problem", p.Name(), "engine", p.engine.Name())
	return s, nil
}

// MustSolve is Solve that panics on error.
func (p *Problem) MustSolve() *Solution {
	s, err := p.Solve()
	if err != nil {
		panic(err)
	}
	return s
}
