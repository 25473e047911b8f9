package lower

import (
	"errors"
	"testing"

	"github.com/aclements/go-z3/z3"

	"slava0135/easyz3/symbolic"
)

func newTable(t *testing.T, s *symbolic.Scope) *Table {
	t.Helper()
	return NewTable(z3.NewContext(nil), s.Declarations())
}

func declare(t *testing.T, s *symbolic.Scope, name string, sort symbolic.Sort) *symbolic.Variable {
	t.Helper()
	v, err := s.Declare(name, sort)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return v
}

func lowerString(t *testing.T, v symbolic.Value, table *Table) string {
	t.Helper()
	res, err := Lower(v, table)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return res.String()
}

func TestLower_SourceOrder(t *testing.T) {
	s := symbolic.NewScope("t")
	a := declare(t, s, "a", symbolic.Int)
	table := newTable(t, s)

	if got := lowerString(t, symbolic.Sub(5, a), table); got != "(- 5 a)" {
		t.Errorf("got %v; want (- 5 a)", got)
	}
	if got := lowerString(t, a.Sub(5), table); got != "(- a 5)" {
		t.Errorf("got %v; want (- a 5)", got)
	}
}

func TestLower_LogicalRemap(t *testing.T) {
	s := symbolic.NewScope("t")
	x := declare(t, s, "x", symbolic.Bool)
	y := declare(t, s, "y", symbolic.Bool)
	table := newTable(t, s)

	cases := map[string]symbolic.Value{
		"(and x y)": x.And(y),
		"(or x y)":  x.Or(y),
		"(xor x y)": x.Xor(y),
		"(=> x y)":  x.Implies(y),
		"(=> y x)":  x.ImpliedBy(y),
		"(not x)":   x.Not(),
	}
	for want, v := range cases {
		if got := lowerString(t, v, table); got != want {
			t.Errorf("%s: got %v; want %v", v, got, want)
		}
	}
}

func TestLower_Promotion(t *testing.T) {
	s := symbolic.NewScope("t")
	a := declare(t, s, "a", symbolic.Int)
	r := declare(t, s, "r", symbolic.Real)
	table := newTable(t, s)

	for _, v := range []symbolic.Value{a.Add(r), r.Mul(a), a.Add(0.5), symbolic.Div(1.5, a)} {
		res, err := Lower(v, table)
		if err != nil {
			t.Fatalf("%s: unexpected error: %s", v, err)
		}
		if res.Sort().Kind() != z3.KindReal {
			t.Errorf("%s: got sort %v; want real", v, res.Sort())
		}
	}
	res, err := Lower(a.Div(2), table)
	if err != nil {
		t.Fatal(err)
	}
	if res.Sort().Kind() != z3.KindInt {
		t.Errorf("integer division: got sort %v; want int", res.Sort())
	}
	res, err = Lower(a.FloorDiv(-2), table)
	if err != nil {
		t.Fatal(err)
	}
	if res.Sort().Kind() != z3.KindInt {
		t.Errorf("integer floor division: got sort %v; want int", res.Sort())
	}
}

func TestLower_Errors(t *testing.T) {
	s := symbolic.NewScope("t")
	a := declare(t, s, "a", symbolic.Int)
	x := declare(t, s, "x", symbolic.Bool)
	r := declare(t, s, "r", symbolic.Real)
	f := declare(t, s, "f", symbolic.Func([]symbolic.Sort{symbolic.Int}, symbolic.Bool))
	ghost := s.Var("ghost")
	table := newTable(t, s)

	cases := []struct {
		v    symbolic.Value
		want error
	}{
		{ghost.Add(1), ErrUndeclared},
		{a.Add(x), ErrSortMismatch},
		{x.And(a), ErrSortMismatch},
		{x.Neg(), ErrSortMismatch},
		{r.Mod(2), ErrUnsupported},
		{a.Call(1), ErrNotFunction},
		{f.Call(1, 2), ErrArity},
		{f.Call(x), ErrSortMismatch},
		{f.Add(1), ErrUnsupported},
	}
	for _, tc := range cases {
		_, err := Lower(tc.v, table)
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v; want %v", tc.v, err, tc.want)
		}
		var lerr *Error
		if !errors.As(err, &lerr) || lerr.Node == nil {
			t.Errorf("%s: got %v; want *Error with a node", tc.v, err)
		}
	}
}

func TestLowerBool(t *testing.T) {
	s := symbolic.NewScope("t")
	a := declare(t, s, "a", symbolic.Int)
	f := declare(t, s, "f", symbolic.Func([]symbolic.Sort{symbolic.Real, symbolic.Int}, symbolic.Bool))
	table := newTable(t, s)

	if _, err := LowerBool(a.Add(1), table); !errors.Is(err, ErrNotBool) {
		t.Errorf("got %v; want ErrNotBool", err)
	}
	b, err := LowerBool(f.Call(a, 3), table)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := b.String(); got != "(f (to_real a) 3)" {
		t.Errorf("got %v; want (f (to_real a) 3)", got)
	}
}

func TestTable(t *testing.T) {
	s := symbolic.NewScope("t")
	declare(t, s, "b", symbolic.Bool)
	declare(t, s, "f", symbolic.Func([]symbolic.Sort{symbolic.Int}, symbolic.Int))
	table := newTable(t, s)

	if names := table.Names(); len(names) != 2 || names[0] != "b" || names[1] != "f" {
		t.Errorf("got %v; want [b f]", names)
	}
	if _, ok := table.Lookup("f"); ok {
		t.Errorf("function found as a constant")
	}
	if _, ok := table.Func("f"); !ok {
		t.Errorf("function not declared")
	}
	if _, err := table.Literal(1.5, symbolic.Int); !errors.Is(err, ErrSortMismatch) {
		t.Errorf("got %v; want ErrSortMismatch", err)
	}
	if v, err := table.Literal(3, symbolic.Real); err != nil || v.Sort().Kind() != z3.KindReal {
		t.Errorf("got %v, %v; want a real literal", v, err)
	}
}
