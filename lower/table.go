package lower

import (
	"fmt"
	"math/big"

	"github.com/aclements/go-z3/z3"

	"slava0135/easyz3/symbolic"
)

// Table maps declared names to backend symbols. It is built once per solve
// and never changes afterwards.
type Table struct {
	ctx    *z3.Context
	names  []string
	sorts  map[string]symbolic.Sort
	consts map[string]z3.Value
	funcs  map[string]z3.FuncDecl
}

func NewTable(ctx *z3.Context, decls []symbolic.Declaration) *Table {
	t := &Table{
		ctx:    ctx,
		sorts:  make(map[string]symbolic.Sort, len(decls)),
		consts: make(map[string]z3.Value),
		funcs:  make(map[string]z3.FuncDecl),
	}
	for _, d := range decls {
		t.names = append(t.names, d.Name)
		t.sorts[d.Name] = d.Sort
		switch d.Sort.Kind() {
		case symbolic.KindBool:
			t.consts[d.Name] = ctx.BoolConst(d.Name)
		case symbolic.KindInt:
			t.consts[d.Name] = ctx.IntConst(d.Name)
		case symbolic.KindReal:
			t.consts[d.Name] = ctx.Const(d.Name, ctx.RealSort()).(z3.Real)
		case symbolic.KindFunc:
			var domain []z3.Sort
			for _, s := range d.Sort.Domain() {
				domain = append(domain, t.Z3Sort(s))
			}
			t.funcs[d.Name] = ctx.FuncDecl(d.Name, domain, t.Z3Sort(d.Sort.Range()))
		}
	}
	return t
}

func (t *Table) Context() *z3.Context {
	return t.ctx
}

// Lookup returns the constant of a scalar variable.
func (t *Table) Lookup(name string) (z3.Value, bool) {
	c, ok := t.consts[name]
	return c, ok
}

// Func returns the declaration of a function-sorted variable.
func (t *Table) Func(name string) (z3.FuncDecl, bool) {
	f, ok := t.funcs[name]
	return f, ok
}

func (t *Table) Sort(name string) (symbolic.Sort, bool) {
	s, ok := t.sorts[name]
	return s, ok
}

// Names returns the declared names in declaration order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// Z3Sort returns the backend sort of a scalar sort.
func (t *Table) Z3Sort(s symbolic.Sort) z3.Sort {
	switch s.Kind() {
	case symbolic.KindBool:
		return t.ctx.BoolSort()
	case symbolic.KindInt:
		return t.ctx.IntSort()
	case symbolic.KindReal:
		return t.ctx.RealSort()
	default:
		panic(fmt.Sprintf("no backend sort for '%s'", s))
	}
}

// Literal converts a native value to a backend literal of sort want.
// Integers are accepted where reals are expected, and integral rationals
// where integers are.
func (t *Table) Literal(x any, want symbolic.Sort) (z3.Value, error) {
	lit, err := symbolic.NormalizeLiteral(x)
	if err != nil {
		return nil, err
	}
	switch want.Kind() {
	case symbolic.KindBool:
		if b, ok := lit.(bool); ok {
			return t.ctx.FromBool(b), nil
		}
	case symbolic.KindInt:
		switch v := lit.(type) {
		case *big.Int:
			return t.ctx.FromBigInt(v, t.ctx.IntSort()).(z3.Int), nil
		case *big.Rat:
			if v.IsInt() {
				return t.ctx.FromBigInt(v.Num(), t.ctx.IntSort()).(z3.Int), nil
			}
		}
	case symbolic.KindReal:
		switch v := lit.(type) {
		case *big.Int:
			return t.ctx.FromBigInt(v, t.ctx.RealSort()).(z3.Real), nil
		case *big.Rat:
			return t.rat(v), nil
		}
	}
	return nil, fmt.Errorf("%w: %v is not %s", ErrSortMismatch, x, want)
}

// literal converts a Const node by the kind of its own value.
func (t *Table) literal(c *symbolic.Const) z3.Value {
	switch v := c.Value().(type) {
	case bool:
		return t.ctx.FromBool(v)
	case *big.Int:
		return t.ctx.FromBigInt(v, t.ctx.IntSort()).(z3.Int)
	case *big.Rat:
		return t.rat(v)
	default:
		fail(c, ErrUnsupported, "literal of type %T", v)
		panic("unreachable")
	}
}

func (t *Table) rat(r *big.Rat) z3.Real {
	num := t.ctx.FromBigInt(r.Num(), t.ctx.RealSort()).(z3.Real)
	if r.IsInt() {
		return num
	}
	return num.Div(t.ctx.FromBigInt(r.Denom(), t.ctx.RealSort()).(z3.Real))
}
