// Package lower translates symbolic expression trees into Z3 terms and,
// for purely propositional problems, into gini circuits.
package lower

import (
	"github.com/aclements/go-z3/z3"

	"slava0135/easyz3/symbolic"
)

// Lower converts v into a backend term. Integer and real operands are
// mixed by converting the integer side to a real. Lower does not touch the
// solver.
func Lower(v symbolic.Value, t *Table) (res z3.Value, err error) {
	defer catch(&err)
	return t.lower(v), nil
}

// LowerBool lowers an assertion, which must be boolean.
func LowerBool(v symbolic.Value, t *Table) (res z3.Bool, err error) {
	defer catch(&err)
	b, ok := t.lower(v).(z3.Bool)
	if !ok {
		fail(v, ErrNotBool, "")
	}
	return b, nil
}

func (t *Table) lower(v symbolic.Value) z3.Value {
	switch v := v.(type) {
	case *symbolic.Variable:
		if c, ok := t.consts[v.Name()]; ok {
			return c
		}
		if _, ok := t.funcs[v.Name()]; ok {
			fail(v, ErrUnsupported, "function '%s' used without arguments", v.Name())
		}
		fail(v, ErrUndeclared, "'%s'", v.Name())
	case *symbolic.Const:
		return t.literal(v)
	case *symbolic.UnaryOp:
		return t.lowerUnary(v)
	case *symbolic.BinaryOp:
		return t.lowerBinary(v)
	case *symbolic.Call:
		return t.lowerCall(v)
	}
	fail(v, ErrUnsupported, "node %T", v)
	panic("unreachable")
}

func (t *Table) lowerUnary(u *symbolic.UnaryOp) z3.Value {
	x := t.lower(u.Operand())
	switch u.Op() {
	case symbolic.OpPlus:
		switch x.(type) {
		case z3.Int, z3.Real:
			return x
		}
	case symbolic.OpNegate:
		switch x := x.(type) {
		case z3.Int:
			return x.Neg()
		case z3.Real:
			return x.Neg()
		}
	case symbolic.OpNot:
		if x, ok := x.(z3.Bool); ok {
			return x.Not()
		}
	}
	fail(u, ErrSortMismatch, "'%s' on %s", u.Op(), x.Sort())
	panic("unreachable")
}

func (t *Table) lowerBinary(b *symbolic.BinaryOp) z3.Value {
	l := t.lower(b.Left())
	r := t.lower(b.Right())
	switch {
	case b.Op().IsLogical():
		return t.logical(b, l, r)
	case b.Op() == symbolic.OpEq || b.Op() == symbolic.OpNe:
		if lb, ok := l.(z3.Bool); ok {
			rb, ok := r.(z3.Bool)
			if !ok {
				fail(b, ErrSortMismatch, "%s %s %s", l.Sort(), b.Op(), r.Sort())
			}
			if b.Op() == symbolic.OpEq {
				return lb.Eq(rb)
			}
			return lb.NE(rb)
		}
		return t.compare(b, l, r)
	case b.Op().IsComparison():
		return t.compare(b, l, r)
	default:
		return t.arith(b, l, r)
	}
}

// logical applies the boolean reading of the bitwise operators.
func (t *Table) logical(b *symbolic.BinaryOp, l, r z3.Value) z3.Bool {
	lb, lok := l.(z3.Bool)
	rb, rok := r.(z3.Bool)
	if !lok || !rok {
		fail(b, ErrSortMismatch, "'%s' needs bool operands, got %s and %s", b.Op(), l.Sort(), r.Sort())
	}
	switch b.Op() {
	case symbolic.OpAnd:
		return lb.And(rb)
	case symbolic.OpOr:
		return lb.Or(rb)
	case symbolic.OpXor:
		return lb.Xor(rb)
	case symbolic.OpImplies:
		return lb.Implies(rb)
	case symbolic.OpImpliedBy:
		return rb.Implies(lb)
	}
	fail(b, ErrUnsupported, "'%s'", b.Op())
	panic("unreachable")
}

func (t *Table) compare(b *symbolic.BinaryOp, l, r z3.Value) z3.Bool {
	switch l := t.promote(b, l, r).(type) {
	case z3.Int:
		r := t.coerce(b, r, symbolic.Int).(z3.Int)
		switch b.Op() {
		case symbolic.OpEq:
			return l.Eq(r)
		case symbolic.OpNe:
			return l.NE(r)
		case symbolic.OpLt:
			return l.LT(r)
		case symbolic.OpLe:
			return l.LE(r)
		case symbolic.OpGt:
			return l.GT(r)
		case symbolic.OpGe:
			return l.GE(r)
		}
	case z3.Real:
		r := t.coerce(b, r, symbolic.Real).(z3.Real)
		switch b.Op() {
		case symbolic.OpEq:
			return l.Eq(r)
		case symbolic.OpNe:
			return l.NE(r)
		case symbolic.OpLt:
			return l.LT(r)
		case symbolic.OpLe:
			return l.LE(r)
		case symbolic.OpGt:
			return l.GT(r)
		case symbolic.OpGe:
			return l.GE(r)
		}
	}
	fail(b, ErrUnsupported, "'%s'", b.Op())
	panic("unreachable")
}

func (t *Table) arith(b *symbolic.BinaryOp, l, r z3.Value) z3.Value {
	switch l := t.promote(b, l, r).(type) {
	case z3.Int:
		r := t.coerce(b, r, symbolic.Int).(z3.Int)
		switch b.Op() {
		case symbolic.OpAdd:
			return l.Add(r)
		case symbolic.OpSub:
			return l.Sub(r)
		case symbolic.OpMul:
			return l.Mul(r)
		case symbolic.OpDiv:
			return l.Div(r)
		case symbolic.OpFloorDiv:
			// div is Euclidean; to_int rounds toward negative infinity
			return l.ToReal().Div(r.ToReal()).ToInt()
		case symbolic.OpPow:
			return l.Exp(r)
		case symbolic.OpMod:
			return l.Mod(r)
		}
	case z3.Real:
		r := t.coerce(b, r, symbolic.Real).(z3.Real)
		switch b.Op() {
		case symbolic.OpAdd:
			return l.Add(r)
		case symbolic.OpSub:
			return l.Sub(r)
		case symbolic.OpMul:
			return l.Mul(r)
		case symbolic.OpDiv:
			return l.Div(r)
		case symbolic.OpFloorDiv:
			return l.Div(r).ToInt().ToReal()
		case symbolic.OpPow:
			return l.Exp(r)
		case symbolic.OpMod:
			fail(b, ErrUnsupported, "'%%' on reals")
		}
	}
	fail(b, ErrUnsupported, "'%s'", b.Op())
	panic("unreachable")
}

// promote returns l, converted to a real if either side is real. Both sides
// must be numeric.
func (t *Table) promote(b *symbolic.BinaryOp, l, r z3.Value) z3.Value {
	_, lint := l.(z3.Int)
	_, lreal := l.(z3.Real)
	_, rint := r.(z3.Int)
	_, rreal := r.(z3.Real)
	if !(lint || lreal) || !(rint || rreal) {
		fail(b, ErrSortMismatch, "'%s' needs numeric operands, got %s and %s", b.Op(), l.Sort(), r.Sort())
	}
	if lint && rreal {
		return l.(z3.Int).ToReal()
	}
	return l
}

// coerce converts x to sort want, widening integers to reals.
func (t *Table) coerce(node symbolic.Value, x z3.Value, want symbolic.Sort) z3.Value {
	switch want.Kind() {
	case symbolic.KindBool:
		if b, ok := x.(z3.Bool); ok {
			return b
		}
	case symbolic.KindInt:
		if i, ok := x.(z3.Int); ok {
			return i
		}
	case symbolic.KindReal:
		switch x := x.(type) {
		case z3.Real:
			return x
		case z3.Int:
			return x.ToReal()
		}
	}
	fail(node, ErrSortMismatch, "%s is not %s", x.Sort(), want)
	panic("unreachable")
}

func (t *Table) lowerCall(c *symbolic.Call) z3.Value {
	name := c.Callee().Name()
	fd, ok := t.funcs[name]
	if !ok {
		if _, ok := t.consts[name]; ok {
			fail(c, ErrNotFunction, "'%s' is %s", name, t.sorts[name])
		}
		fail(c, ErrUndeclared, "'%s'", name)
	}
	sort := t.sorts[name]
	domain := sort.Domain()
	args := c.Args()
	if len(args) != len(domain) {
		fail(c, ErrArity, "'%s' takes %d, got %d", name, len(domain), len(args))
	}
	var lowered []z3.Value
	for i, a := range args {
		lowered = append(lowered, t.coerce(c, t.lower(a), domain[i]))
	}
	return fd.Apply(lowered...)
}
