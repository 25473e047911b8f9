package constraints

import (
	"fmt"
	"io"

	"slava0135/easyz3/solver"
	"slava0135/easyz3/symbolic"
)

type logicCase struct {
	path  string
	build func(x, y *symbolic.Variable) []symbolic.Value
	sat   bool
}

var logicCases = []logicCase{
	{"x & y, !x", func(x, y *symbolic.Variable) []symbolic.Value {
		return []symbolic.Value{x.And(y), x.Not()}
	}, false},
	{"x | y, !x", func(x, y *symbolic.Variable) []symbolic.Value {
		return []symbolic.Value{x.Or(y), x.Not()}
	}, true},
	{"x ^ y, x, y", func(x, y *symbolic.Variable) []symbolic.Value {
		return []symbolic.Value{x.Xor(y), x, y}
	}, false},
	{"x >> y, x, !y", func(x, y *symbolic.Variable) []symbolic.Value {
		return []symbolic.Value{x.Implies(y), x, y.Not()}
	}, false},
	{"x << y, y, !x", func(x, y *symbolic.Variable) []symbolic.Value {
		return []symbolic.Value{x.ImpliedBy(y), y, x.Not()}
	}, false},
	{"x << y, x, !y", func(x, y *symbolic.Variable) []symbolic.Value {
		return []symbolic.Value{x.ImpliedBy(y), x, y.Not()}
	}, true},
}

// LogicalOperators checks the logical reading of the bitwise operators on
// both engines.
func LogicalOperators(w io.Writer) {
	for _, engine := range []solver.Engine{solver.Z3(), solver.SAT()} {
		for _, c := range logicCases {
			p := solver.New("logic", solver.WithEngine(engine))
			x := p.MustDeclare("x", symbolic.Bool)
			y := p.MustDeclare("y", symbolic.Bool)
			p.Assert(c.build(x, y)...)

			path := fmt.Sprintf("[%s] %s", engine.Name(), c.path)
			if c.sat {
				solve(w, p, path)
				continue
			}
			expectUnsat(w, p, path)
		}
	}
}
