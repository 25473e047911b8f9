package solver

import (
	"fmt"
	"strings"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"slava0135/easyz3/lower"
	"slava0135/easyz3/symbolic"
)

type satEngine struct{}

// SAT returns a pure Go engine for problems whose variables are all
// boolean and whose assertions are propositional.
func SAT() Engine {
	return satEngine{}
}

func (satEngine) Name() string {
	return "sat"
}

func (satEngine) Solve(scope *symbolic.Scope) (Model, error) {
	logger := scope.Logger()
	table, err := lower.NewPropTable(scope.Declarations())
	if err != nil {
		return nil, err
	}
	c := table.Circuit()
	var roots []z.Lit
	for i, a := range scope.Assertions() {
		m, err := lower.LowerProp(a, table)
		if err != nil {
			return nil, fmt.Errorf("assertion %d: %w", i+1, err)
		}
		logger.Debug("lowered", "scope", scope.Name(), "assertion", i+1, "lit", m)
		roots = append(roots, m)
	}
	root := c.T
	if len(roots) > 0 {
		root = c.Ands(roots...)
	}

	g := gini.New()
	c.ToCnf(g)
	g.Add(root)
	g.Add(z.LitNull)
	// every input gets a clause, so the solver knows unconstrained ones too
	for _, name := range table.Names() {
		m, _ := table.Lit(name)
		g.Add(m)
		g.Add(c.T)
		g.Add(z.LitNull)
	}
	switch g.Solve() {
	case 1:
	case -1:
		return nil, ErrUnsatisfiable
	default:
		return nil, ErrUnknown
	}
	model := &satModel{values: make(map[string]bool)}
	for _, name := range table.Names() {
		m, _ := table.Lit(name)
		model.names = append(model.names, name)
		model.values[name] = g.Value(m)
	}
	return model, nil
}

type satModel struct {
	names  []string
	values map[string]bool
}

func (m *satModel) Value(name string, sort symbolic.Sort) (any, error) {
	v, ok := m.values[name]
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrNoSuchVariable, name)
	}
	return v, nil
}

// String prints the model the way Z3 does, one "name -> value" per line.
func (m *satModel) String() string {
	var b strings.Builder
	for _, name := range m.names {
		fmt.Fprintf(&b, "%s -> %t\n", name, m.values[name])
	}
	return b.String()
}
