package problem

import (
	"errors"
	"strings"
	"testing"

	"slava0135/easyz3/solver"
	"slava0135/easyz3/symbolic"
)

func TestBuilder_Assert(t *testing.T) {
	b := newBuilder(t)
	if err := b.Assert("a > 1"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := b.Assert("1 < 2"); err != nil {
		t.Errorf("constant true: unexpected error: %s", err)
	}
	if err := b.Assert("1 > 2"); !errors.Is(err, ErrFalseAssertion) {
		t.Errorf("got %v; want ErrFalseAssertion", err)
	}
	if err := b.Assert("1 + 2"); !errors.Is(err, ErrNotAssertable) {
		t.Errorf("got %v; want ErrNotAssertable", err)
	}
	asserts := b.Problem().Assertions()
	if len(asserts) != 1 || asserts[0].String() != "(a > 1)" {
		t.Errorf("got %v; want [(a > 1)]", asserts)
	}
}

func TestBuilder_Exec(t *testing.T) {
	b := NewBuilder("exec")
	lines := []string{
		"# pythagorean triple",
		"a: int",
		"b: int",
		"c: int",
		"",
		"lim = 20",
		"sq = a*a + b*b",
		"assert a > 0 && b > 0 && c > 0",
		"a < b && b < lim",
		"sq == c*c",
	}
	for _, line := range lines {
		if err := b.Exec(line); err != nil {
			t.Fatalf("%q: unexpected error: %s", line, err)
		}
	}
	if got := len(b.Problem().Declarations()); got != 3 {
		t.Errorf("got %d declarations; want 3", got)
	}
	s, err := b.Problem().Solve()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	a, _ := s.Int("a")
	bv, _ := s.Int("b")
	c, _ := s.Int("c")
	if a*a+bv*bv != c*c || a <= 0 || a >= bv || bv >= 20 {
		t.Errorf("got a=%d b=%d c=%d; want a pythagorean triple", a, bv, c)
	}
}

func TestBuilder_ExecErrors(t *testing.T) {
	b := newBuilder(t)
	cases := map[string]error{
		"a: real":        symbolic.ErrRedeclared,
		"z: string":      symbolic.ErrBadSort,
		"a = 3":          symbolic.ErrRedeclared,
		"__module__ = 1": symbolic.ErrReservedName,
		"assert 2 + 2":   ErrNotAssertable,
		"a == ":          ErrSyntax,
	}
	for line, want := range cases {
		if err := b.Exec(line); !errors.Is(err, want) {
			t.Errorf("%q: got %v; want %v", line, err, want)
		}
	}
}

func TestBuilder_LetShadowsBuiltins(t *testing.T) {
	b := newBuilder(t)
	if err := b.Let("k", "2 * 3"); err != nil {
		t.Fatal(err)
	}
	v, err := b.Eval("a + k")
	if err != nil {
		t.Fatal(err)
	}
	if got := v.(symbolic.Value).String(); got != "(a + 6)" {
		t.Errorf("got %v; want (a + 6)", got)
	}
}

func TestBuilder_Globals(t *testing.T) {
	b := NewBuilder("globals", solver.WithGlobals(symbolic.MapEnv{"limit": 7}))
	if err := b.Exec("a: int"); err != nil {
		t.Fatal(err)
	}
	if err := b.Exec("a == limit"); err != nil {
		t.Fatal(err)
	}
	got, err := b.Problem().MustSolve().Int("a")
	if err != nil || got != 7 {
		t.Errorf("got %v, %v; want 7", got, err)
	}
}

func TestBuilder_FreeNameBecomesVariable(t *testing.T) {
	b := newBuilder(t)
	if err := b.Assert("ghost > 0"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	_, err := b.Problem().Solve()
	if err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Errorf("got %v; want an undeclared 'ghost' error", err)
	}
}
