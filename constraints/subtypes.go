package constraints

import (
	"fmt"
	"io"
	"strings"

	"slava0135/easyz3/solver"
	"slava0135/easyz3/symbolic"
)

// Types are numbered by their index.
var types = []string{"Any", "AnyVal", "Int", "Long", "AnyRef", "Seq", "List", "String"}

var parents = map[string][]string{
	"AnyVal": {"Any"},
	"Int":    {"AnyVal"},
	"Long":   {"AnyVal"},
	"AnyRef": {"Any"},
	"Seq":    {"AnyRef"},
	"List":   {"Seq"},
	"String": {"AnyRef"},
}

func typeID(name string) int {
	for i, t := range types {
		if t == name {
			return i
		}
	}
	panic(fmt.Sprintf("unknown type '%s'", name))
}

// subtypeProblem states the direct parents and the order axioms of sub
// over the known types. Value and reference types never meet below Any.
func subtypeProblem(name string) (*solver.Problem, *symbolic.Variable) {
	p := solver.New(name)
	sub := p.MustDeclare("sub", symbolic.Func([]symbolic.Sort{symbolic.Int, symbolic.Int}, symbolic.Bool))
	for child, ps := range parents {
		for _, parent := range ps {
			p.Assert(sub.Call(typeID(child), typeID(parent)))
		}
	}
	n := len(types)
	for i := 0; i < n; i++ {
		p.Assert(sub.Call(i, i))
		p.Assert(sub.Call(i, typeID("AnyVal")).And(sub.Call(i, typeID("AnyRef"))).Not())
		for j := 0; j < n; j++ {
			if i != j {
				p.Assert(sub.Call(i, j).And(sub.Call(j, i)).Not())
			}
			for k := 0; k < n; k++ {
				p.Assert(sub.Call(i, j).And(sub.Call(j, k)).Implies(sub.Call(i, k)))
			}
		}
	}
	return p, sub
}

func Subtypes(w io.Writer) {
	{
		p, _ := subtypeProblem("subtypes")
		printPath(w, "sub is a partial order with the declared parents")
		s, err := p.Solve()
		if err != nil {
			panic(err)
		}
		interp, err := s.Func("sub")
		if err != nil {
			panic(err)
		}
		for _, q := range [][2]string{{"List", "AnyRef"}, {"Int", "Any"}, {"Any", "Int"}} {
			v, err := interp.Apply(typeID(q[0]), typeID(q[1]))
			if err != nil {
				panic(err)
			}
			fmt.Fprintf(w, "[%s]%s<:  [%s]%s> %v\n", q[0], pad(q[0]), q[1], pad(q[1]), v)
		}
		fmt.Fprintln(w)
	}
	{
		p, sub := subtypeProblem("subtypes-derived")
		p.Assert(sub.Call(typeID("List"), typeID("AnyRef")).Not())
		expectUnsat(w, p, "!([List] <: [AnyRef])")
	}
	{
		p, sub := subtypeProblem("subtypes-disjoint")
		p.Assert(sub.Call(typeID("Long"), typeID("Seq")))
		expectUnsat(w, p, "[Long] <: [Seq]")
	}
}

func pad(name string) string {
	return strings.Repeat(" ", 8-len(name))
}
