// Package problem writes solver problems from text: YAML problem files and
// single statements typed at a prompt. Expressions use Go syntax.
package problem

import (
	"fmt"
	"go/constant"
	"go/token"
	"strings"

	"slava0135/easyz3/solver"
	"slava0135/easyz3/symbolic"
)

// Builder feeds declarations, helper bindings and assertions written as text
// into a solver.Problem.
type Builder struct {
	problem *solver.Problem
	ev      evaluator
}

func NewBuilder(name string, opts ...solver.Option) *Builder {
	p := solver.New(name, opts...)
	return &Builder{problem: p, ev: evaluator{scope: p.Scope}}
}

func (b *Builder) Problem() *solver.Problem {
	return b.problem
}

// Declare declares name with a sort annotation such as "int",
// "func(int) bool" or "{int: bool}".
func (b *Builder) Declare(name, sortText string) error {
	sort, err := symbolic.ParseSort(sortText)
	if err != nil {
		return err
	}
	_, err = b.problem.Declare(name, sort)
	return err
}

// Eval builds the value of an expression without asserting it. Expressions
// without variables evaluate to native values.
func (b *Builder) Eval(expr string) (any, error) {
	v, err := b.ev.parse(expr)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", expr, err)
	}
	return native(v), nil
}

// Let binds name to the value of expr, so later expressions can use it.
func (b *Builder) Let(name, expr string) error {
	v, err := b.Eval(expr)
	if err != nil {
		return err
	}
	return b.problem.Bind(name, v)
}

// Assert adds expr as a constraint. A constant true is accepted and
// dropped; a constant false fails at once.
func (b *Builder) Assert(expr string) error {
	v, err := b.ev.parse(expr)
	if err != nil {
		return fmt.Errorf("'%s': %w", expr, err)
	}
	switch v := v.(type) {
	case symbolic.Value:
		b.problem.Assert(v)
		return nil
	case constant.Value:
		if v.Kind() == constant.Bool {
			if constant.BoolVal(v) {
				return nil
			}
			return fmt.Errorf("'%s': %w", expr, ErrFalseAssertion)
		}
	}
	return fmt.Errorf("'%s': %w", expr, ErrNotAssertable)
}

// Exec runs one statement:
//
//	name: sort      declares a variable
//	name = expr     binds a helper value
//	assert expr     asserts expr
//	expr            asserts expr
//
// Blank lines and lines starting with # are ignored.
func (b *Builder) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	if rest, ok := strings.CutPrefix(line, "assert "); ok {
		return b.Assert(rest)
	}
	if name, sort, ok := strings.Cut(line, ":"); ok && token.IsIdentifier(strings.TrimSpace(name)) {
		return b.Declare(strings.TrimSpace(name), sort)
	}
	if i := strings.Index(line, "="); i > 0 && (i+1 == len(line) || line[i+1] != '=') {
		if name := strings.TrimSpace(line[:i]); token.IsIdentifier(name) {
			return b.Let(name, line[i+1:])
		}
	}
	return b.Assert(line)
}
