package constraints

import (
	"fmt"
	"io"
	"math"

	"slava0135/easyz3/solver"
	"slava0135/easyz3/symbolic"
)

func IntegerOperations(w io.Writer) {
	{
		p := solver.New("integers-gt")
		a := p.MustDeclare("a", symbolic.Int)
		b := p.MustDeclare("b", symbolic.Int)
		p.Assert(a.Gt(b))
		solve(w, p, "a > b")
	}
	{
		p := solver.New("integers-lt")
		a := p.MustDeclare("a", symbolic.Int)
		b := p.MustDeclare("b", symbolic.Int)
		p.Assert(a.Gt(b).Not().And(a.Lt(b)))
		solve(w, p, "!(a > b) && (a < b)")
	}
	{
		p := solver.New("integers-eq")
		a := p.MustDeclare("a", symbolic.Int)
		b := p.MustDeclare("b", symbolic.Int)
		p.Assert(a.Gt(b).Not().And(a.Lt(b).Not()))
		s := solve(w, p, "!(a > b) && !(a < b)")
		av, _ := s.Int("a")
		bv, _ := s.Int("b")
		if av != bv {
			panic(fmt.Sprintf("a = %d and b = %d must be equal", av, bv))
		}
	}
	{
		p := solver.New("integers-div")
		a := p.MustDeclare("a", symbolic.Int)
		p.Assert(a.Div(7).Eq(3), a.Mod(7).Eq(5))
		s := solve(w, p, "a / 7 == 3 && a % 7 == 5")
		if av, _ := s.Int("a"); av != 26 {
			panic(fmt.Sprintf("a = %d; want 26", av))
		}
	}
}

func RealOperations(w io.Writer) {
	{
		p := solver.New("reals-sqrt2")
		x := p.MustDeclare("x", symbolic.Real)
		p.Assert(x.Mul(x).Eq(2), x.Gt(0))
		s := solve(w, p, "x * x == 2 && x > 0")
		if xv, _ := s.Float("x"); math.Abs(xv-math.Sqrt2) > 1e-9 {
			panic(fmt.Sprintf("x = %v; want sqrt(2)", xv))
		}
	}
	{
		p := solver.New("reals-third")
		x := p.MustDeclare("x", symbolic.Real)
		y := p.MustDeclare("y", symbolic.Real)
		p.Assert(symbolic.Mul(3, x).Eq(1), y.Eq(x.FloorDiv(0.1)))
		solve(w, p, "3 * x == 1 && y == x // 0.1")
	}
}

func MixedOperations(w io.Writer) {
	p := solver.New("mixed")
	a := p.MustDeclare("a", symbolic.Int)
	r := p.MustDeclare("r", symbolic.Real)
	p.Assert(
		a.Mod(2).Eq(0),
		r.Eq(a.Add(0.5)),
		r.Lt(10),
		r.Gt(5),
	)
	s := solve(w, p, "(a % 2 == 0) && (r == a + 0.5) && (5 < r < 10)")
	av, _ := s.Int("a")
	rv, _ := s.Float("r")
	if rv != float64(av)+0.5 {
		panic(fmt.Sprintf("r = %v is not a + 0.5 for a = %d", rv, av))
	}
}
