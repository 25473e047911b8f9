package lower

import (
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"slava0135/easyz3/symbolic"
)

// PropTable maps boolean declarations to inputs of a gini circuit.
type PropTable struct {
	c     *logic.C
	names []string
	lits  map[string]z.Lit
}

// NewPropTable fails with ErrUnsupported unless every declaration is
// boolean.
func NewPropTable(decls []symbolic.Declaration) (*PropTable, error) {
	p := &PropTable{
		c:    logic.NewC(),
		lits: make(map[string]z.Lit, len(decls)),
	}
	for _, d := range decls {
		if d.Sort.Kind() != symbolic.KindBool {
			return nil, &Error{Err: wrapf(ErrUnsupported, "'%s' is %s, not bool", d.Name, d.Sort)}
		}
		p.names = append(p.names, d.Name)
		p.lits[d.Name] = p.c.Lit()
	}
	return p, nil
}

func (p *PropTable) Circuit() *logic.C {
	return p.c
}

func (p *PropTable) Lit(name string) (z.Lit, bool) {
	m, ok := p.lits[name]
	return m, ok
}

func (p *PropTable) Names() []string {
	return append([]string(nil), p.names...)
}

// LowerProp lowers a propositional expression into the circuit of p.
func LowerProp(v symbolic.Value, p *PropTable) (res z.Lit, err error) {
	defer catch(&err)
	return p.lower(v), nil
}

func (p *PropTable) lower(v symbolic.Value) z.Lit {
	switch v := v.(type) {
	case *symbolic.Variable:
		m, ok := p.lits[v.Name()]
		if !ok {
			fail(v, ErrUndeclared, "'%s'", v.Name())
		}
		return m
	case *symbolic.Const:
		b, ok := v.Value().(bool)
		if !ok {
			fail(v, ErrUnsupported, "non-boolean literal")
		}
		if b {
			return p.c.T
		}
		return p.c.F
	case *symbolic.UnaryOp:
		if v.Op() != symbolic.OpNot {
			fail(v, ErrUnsupported, "'%s' in a propositional formula", v.Op())
		}
		return p.lower(v.Operand()).Not()
	case *symbolic.BinaryOp:
		l, r := p.lower(v.Left()), p.lower(v.Right())
		switch v.Op() {
		case symbolic.OpAnd:
			return p.c.And(l, r)
		case symbolic.OpOr:
			return p.c.Or(l, r)
		case symbolic.OpXor, symbolic.OpNe:
			return p.c.Xor(l, r)
		case symbolic.OpEq:
			return p.c.Xor(l, r).Not()
		case symbolic.OpImplies:
			return p.c.Implies(l, r)
		case symbolic.OpImpliedBy:
			return p.c.Implies(r, l)
		}
		fail(v, ErrUnsupported, "'%s' in a propositional formula", v.Op())
	case *symbolic.Call:
		fail(v, ErrUnsupported, "function application in a propositional formula")
	}
	fail(v, ErrUnsupported, "node %T", v)
	panic("unreachable")
}
