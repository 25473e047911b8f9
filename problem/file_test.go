package problem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slava0135/easyz3/solver"
)

const pythagoras = `
name: file-pythagoras
engine: z3
vars:
  a: int
  b: int
  c: int
let:
  lim: 30
  sq: a*a + b*b
assert:
  - a > 0 && b > 0 && c > 0
  - a < b && b < lim
  - sq == c*c
`

func TestLoad_Build(t *testing.T) {
	f, err := Load(strings.NewReader(pythagoras))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if f.Name != "file-pythagoras" || f.Engine != "z3" || len(f.Assert) != 3 {
		t.Errorf("got %+v", f)
	}
	b, err := f.Build()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	s := b.Problem().MustSolve()
	if got := strings.Join(s.Names(), " "); got != "a b c" {
		t.Errorf("got %v; want declaration order a b c", got)
	}
	values, err := s.Values()
	if err != nil {
		t.Fatal(err)
	}
	a, bv, c := values["a"].(int64), values["b"].(int64), values["c"].(int64)
	if a*a+bv*bv != c*c {
		t.Errorf("got a=%d b=%d c=%d", a, bv, c)
	}
}

func TestLoad_FunctionMapping(t *testing.T) {
	src := `
name: file-func
vars:
  f: {int: bool}
  g: "{(int, real): bool}"
assert:
  - f(3)
  - "!f(4)"
  - g(1, 2.5)
`
	f, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	b, err := f.Build()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	interp, err := b.Problem().MustSolve().Func("f")
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := interp.Apply(3); got != true {
		t.Errorf("f(3): got %v; want true", got)
	}
	if got, _ := interp.Apply(4); got != false {
		t.Errorf("f(4): got %v; want false", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]error{
		"vars: {a: int}":                            ErrBadFile,
		"name: x\nbogus: 1":                         ErrBadFile,
		"name: x\nvars: [a]":                        ErrBadFile,
		"name: x\nvars:\n  a: int\n  a: bool":       ErrDuplicateKey,
		"name: x\nengine: cvc5":                     solver.ErrUnknownEngine,
		"name: x\nvars:\n  a: int\nassert: [1 + 1]": ErrNotAssertable,
	}
	for src, want := range cases {
		f, err := Load(strings.NewReader(src))
		if err == nil {
			_, err = f.Build()
		}
		if !errors.Is(err, want) {
			t.Errorf("%q: got %v; want %v", src, err, want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.yaml")
	src := "name: file-sat\nengine: sat\nvars:\n  p: bool\n  q: bool\nassert:\n  - p ^ q\n  - q\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	b, err := f.Build()
	if err != nil {
		t.Fatal(err)
	}
	if b.Problem().Engine().Name() != "sat" {
		t.Errorf("got engine %s; want sat", b.Problem().Engine().Name())
	}
	s := b.Problem().MustSolve()
	if p, _ := s.Bool("p"); p {
		t.Errorf("p: got true; want false")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v; want ErrNotExist", err)
	}
}
