package symbolic

import (
	"fmt"
	"go/token"
	"log/slog"

	"github.com/hashicorp/go-set/v3"
)

// reserved are the metadata slots of a declaration; they never become
// variables.
var reserved = set.From([]string{
	"__name__",
	"__annotations__",
	"__assertions__",
	"__module__",
	"__qualname__",
})

// Env is a read-only name lookup, such as process-wide globals.
type Env interface {
	Lookup(name string) (any, bool)
}

type MapEnv map[string]any

func (e MapEnv) Lookup(name string) (any, bool) {
	v, ok := e[name]
	return v, ok
}

// Declaration pairs a variable name with its declared sort.
type Declaration struct {
	Name string
	Sort Sort
}

func (d Declaration) String() string {
	return d.Name + ":" + d.Sort.String()
}

// Scope collects the declared variables and the asserted constraints of one
// solving session. It is filled while the problem is written and sealed when
// the problem is solved.
type Scope struct {
	name    string
	globals Env
	logger  *slog.Logger

	decls   []Declaration
	sorts   map[string]Sort
	vars    map[string]*Variable
	locals  map[string]any
	asserts []Value
	sealed  bool
}

type ScopeOption func(*Scope)

// WithGlobals makes env visible to Resolve after local names.
func WithGlobals(env Env) ScopeOption {
	return func(s *Scope) {
		s.globals = env
	}
}

func WithLogger(logger *slog.Logger) ScopeOption {
	return func(s *Scope) {
		s.logger = logger
	}
}

func NewScope(name string, opts ...ScopeOption) *Scope {
	s := &Scope{
		name:   name,
		logger: slog.Default(),
		sorts:  make(map[string]Sort),
		vars:   make(map[string]*Variable),
		locals: make(map[string]any),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scope) Name() string {
	return s.name
}

func (s *Scope) Logger() *slog.Logger {
	return s.logger
}

// Declare pins the sort of name and returns its variable. Declaring a name
// again with the same sort returns the same variable.
func (s *Scope) Declare(name string, sort Sort) (*Variable, error) {
	if s.sealed {
		return nil, fmt.Errorf("%w: declare '%s' in '%s'", ErrSealed, name, s.name)
	}
	if reserved.Contains(name) {
		return nil, fmt.Errorf("%w: '%s'", ErrReservedName, name)
	}
	if !token.IsIdentifier(name) {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidName, name)
	}
	if old, ok := s.sorts[name]; ok {
		if !old.Equal(sort) {
			return nil, fmt.Errorf("%w: '%s' is '%s', not '%s'", ErrRedeclared, name, old, sort)
		}
		return s.Var(name), nil
	}
	if _, ok := s.locals[name]; ok {
		return nil, fmt.Errorf("%w: '%s' is bound to a local value", ErrRedeclared, name)
	}
	s.sorts[name] = sort
	s.decls = append(s.decls, Declaration{Name: name, Sort: sort})
	return s.Var(name), nil
}

// Var returns the variable stamped with name, creating it on first use.
// Repeated calls return the same node.
func (s *Scope) Var(name string) *Variable {
	if reserved.Contains(name) {
		panic(fmt.Errorf("%w: '%s'", ErrReservedName, name))
	}
	if v, ok := s.vars[name]; ok {
		return v
	}
	v := newVariable(name, s)
	s.vars[name] = v
	return v
}

// Bind makes a helper value, symbolic or native, resolvable under name.
func (s *Scope) Bind(name string, value any) error {
	if s.sealed {
		return fmt.Errorf("%w: bind '%s' in '%s'", ErrSealed, name, s.name)
	}
	if reserved.Contains(name) {
		return fmt.Errorf("%w: '%s'", ErrReservedName, name)
	}
	if _, ok := s.sorts[name]; ok {
		return fmt.Errorf("%w: '%s' is a declared variable", ErrRedeclared, name)
	}
	s.locals[name] = value
	return nil
}

// Resolve looks up a free name: local bindings and declared variables
// first, then globals, then builtins. Any other name becomes a variable of
// this scope. Reserved names fail with ErrReservedName.
func (s *Scope) Resolve(name string) (any, error) {
	if reserved.Contains(name) {
		return nil, fmt.Errorf("%w: '%s'", ErrReservedName, name)
	}
	if v, ok := s.locals[name]; ok {
		return v, nil
	}
	if _, ok := s.sorts[name]; ok {
		return s.Var(name), nil
	}
	if s.globals != nil {
		if v, ok := s.globals.Lookup(name); ok {
			return v, nil
		}
	}
	if v, ok := Builtins[name]; ok {
		return v, nil
	}
	return s.Var(name), nil
}

// Assert registers constraints in order. It panics on a sealed scope and
// on values built in another scope.
func (s *Scope) Assert(values ...Value) {
	if s.sealed {
		panic(fmt.Errorf("%w: assert in '%s'", ErrSealed, s.name))
	}
	for _, v := range values {
		if v.Scope() != s {
			panic(fmt.Errorf("%w: '%s' of '%s' asserted in '%s'", ErrForeignScope, v, v.Scope().Name(), s.name))
		}
	}
	for _, v := range values {
		s.logger.Debug("assert", "scope", s.name, "value", v.String())
		s.asserts = append(s.asserts, v)
	}
}

func (s *Scope) Assertions() []Value {
	return append([]Value(nil), s.asserts...)
}

func (s *Scope) Declarations() []Declaration {
	return append([]Declaration(nil), s.decls...)
}

func (s *Scope) SortOf(name string) (Sort, bool) {
	sort, ok := s.sorts[name]
	return sort, ok
}

// Seal ends the writing phase; the scope is read-only afterwards.
func (s *Scope) Seal() {
	s.sealed = true
}

func (s *Scope) Sealed() bool {
	return s.sealed
}
