package solver

import (
	"fmt"

	"github.com/aclements/go-z3/z3"

	"slava0135/easyz3/lower"
	"slava0135/easyz3/symbolic"
)

// Engine checks the assertions of a sealed scope once.
type Engine interface {
	Name() string
	Solve(scope *symbolic.Scope) (Model, error)
}

// Model is the satisfying assignment found by an engine.
type Model interface {
	// Value decodes the value of a declared name.
	Value(name string, sort symbolic.Sort) (any, error)
	// String returns the model in the backend's own text form.
	String() string
}

func EngineByName(name string) (Engine, error) {
	switch name {
	case "", "z3":
		return Z3(), nil
	case "sat":
		return SAT(), nil
	default:
		return nil, fmt.Errorf("%w '%s'", ErrUnknownEngine, name)
	}
}

type z3Engine struct{}

// Z3 returns the engine backed by the Z3 SMT solver. It handles every sort.
func Z3() Engine {
	return z3Engine{}
}

func (z3Engine) Name() string {
	return "z3"
}

func (z3Engine) Solve(scope *symbolic.Scope) (Model, error) {
	logger := scope.Logger()
	ctx := z3.NewContext(nil)
	table := lower.NewTable(ctx, scope.Declarations())
	solver := z3.NewSolver(ctx)
	for i, a := range scope.Assertions() {
		term, err := lower.LowerBool(a, table)
		if err != nil {
			return nil, fmt.Errorf("assertion %d: %w", i+1, err)
		}
		logger.Debug("lowered", "scope", scope.Name(), "assertion", i+1, "term", term.String())
		solver.Assert(term)
	}
	sat, err := solver.Check()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknown, err)
	}
	if !sat {
		return nil, ErrUnsatisfiable
	}
	return &z3Model{table: table, model: solver.Model()}, nil
}

type z3Model struct {
	table *lower.Table
	model *z3.Model
}

func (m *z3Model) Value(name string, sort symbolic.Sort) (any, error) {
	if sort.Kind() == symbolic.KindFunc {
		decl, ok := m.table.Func(name)
		if !ok {
			return nil, fmt.Errorf("%w '%s'", ErrNoSuchVariable, name)
		}
		return &FuncInterp{name: name, sort: sort, decl: decl, table: m.table, model: m.model}, nil
	}
	c, ok := m.table.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrNoSuchVariable, name)
	}
	return decode(m.model.Eval(c, true))
}

func (m *z3Model) String() string {
	return m.model.String()
}
