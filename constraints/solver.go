// Package constraints holds runnable demo problems.
package constraints

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"slava0135/easyz3/solver"
)

type Demo struct {
	Name string
	Run  func(w io.Writer)
}

var Demos = []Demo{
	{"integers", IntegerOperations},
	{"reals", RealOperations},
	{"mixed", MixedOperations},
	{"logic", LogicalOperators},
	{"subtypes", Subtypes},
	{"pythagoras", Pythagoras},
	{"send-more-money", SendMoreMoney},
	{"unsat", Unsatisfiable},
}

// Run runs the named demo. A demo whose outcome is not the expected one
// is reported as an error.
func Run(name string, w io.Writer) error {
	for _, d := range Demos {
		if d.Name == name {
			return run(d, w)
		}
	}
	return fmt.Errorf("unknown demo '%s'", name)
}

func RunAll(w io.Writer) error {
	for _, d := range Demos {
		if err := run(d, w); err != nil {
			return err
		}
	}
	return nil
}

func run(d Demo, w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("demo '%s': %v", d.Name, r)
		}
	}()
	d.Run(w)
	return nil
}

func solve(w io.Writer, p *solver.Problem, path string) *solver.Solution {
	printPath(w, path)
	s, err := p.Solve()
	if err != nil {
		panic(err)
	}
	printValues(w, s)
	return s
}

func expectUnsat(w io.Writer, p *solver.Problem, path string) {
	printPath(w, path)
	_, err := p.Solve()
	if err == nil {
		panic("unexpected sat")
	}
	if !errors.Is(err, solver.ErrUnsatisfiable) {
		panic(err)
	}
	fmt.Fprintln(w, "unsat")
	fmt.Fprintln(w)
}

func printValues(w io.Writer, s *solver.Solution) {
	values, err := s.Values()
	if err != nil {
		panic(err)
	}
	for _, name := range s.Names() {
		fmt.Fprintf(w, "%s = %v\n", name, values[name])
	}
	fmt.Fprintln(w)
}

func printSrc(w io.Writer, src string) {
	maxLen := 0
	for _, line := range strings.Split(src, "\n") {
		len := len(line)
		if len > maxLen {
			maxLen = len
		}
	}
	fmt.Fprint(w, strings.Repeat("%", maxLen))
	fmt.Fprintln(w, src)
	fmt.Fprintln(w, strings.Repeat("%", maxLen))
	fmt.Fprintln(w)
}

func printPath(w io.Writer, path string) {
	fmt.Fprintln(w, ":: "+path)
}
