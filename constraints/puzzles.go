package constraints

import (
	"fmt"
	"io"
	"strings"

	"slava0135/easyz3/problem"
)

func Pythagoras(w io.Writer) {
	src := `
a: int
b: int
c: int
assert a > 0 && b > 0 && c > 0
assert a < b && b < 20
a*a + b*b == c*c`
	printSrc(w, src)

	b := problem.NewBuilder("pythagoras")
	for _, line := range strings.Split(src, "\n") {
		if err := b.Exec(line); err != nil {
			panic(err)
		}
	}
	s := solve(w, b.Problem(), "a² + b² == c²")
	av, _ := s.Int("a")
	bv, _ := s.Int("b")
	cv, _ := s.Int("c")
	if av*av+bv*bv != cv*cv {
		panic(fmt.Sprintf("%d, %d, %d is not a triple", av, bv, cv))
	}
}

func SendMoreMoney(w io.Writer) {
	src := `
name: send-more-money
vars:
  s: int
  e: int
  n: int
  d: int
  m: int
  o: int
  r: int
  y: int
let:
  send: 1000*s + 100*e + 10*n + d
  more: 1000*m + 100*o + 10*r + e
  money: 10000*m + 1000*o + 100*n + 10*e + y
assert:
  - send + more == money
  - s > 0 && m > 0`
	printSrc(w, src)

	f, err := problem.Load(strings.NewReader(src))
	if err != nil {
		panic(err)
	}
	letters := []string{"s", "e", "n", "d", "m", "o", "r", "y"}
	for i, l := range letters {
		f.Assert = append(f.Assert, fmt.Sprintf("%s >= 0 && %s <= 9", l, l))
		for _, other := range letters[i+1:] {
			f.Assert = append(f.Assert, fmt.Sprintf("%s != %s", l, other))
		}
	}
	b, err := f.Build()
	if err != nil {
		panic(err)
	}
	s := solve(w, b.Problem(), "SEND + MORE == MONEY")
	var digits []string
	for _, l := range letters {
		v, _ := s.Int(l)
		digits = append(digits, fmt.Sprint(v))
	}
	if got := strings.Join(digits, ""); got != "95671082" {
		panic(fmt.Sprintf("got digits %s; want 95671082", got))
	}
}

func Unsatisfiable(w io.Writer) {
	b := problem.NewBuilder("unsat")
	for _, line := range []string{"a: int", "a > 0", "a < 0"} {
		if err := b.Exec(line); err != nil {
			panic(err)
		}
	}
	expectUnsat(w, b.Problem(), "a > 0 && a < 0")
}
