package symbolic

import (
	"errors"
	"math/big"
	"testing"
)

func TestBinary_BuildsNode(t *testing.T) {
	s := NewScope("t")
	a, b := s.Var("a"), s.Var("b")
	v := a.Add(b)
	bin, ok := v.(*BinaryOp)
	if !ok {
		t.Fatalf("got %T; want *BinaryOp", v)
	}
	if bin.Op() != OpAdd || bin.Left() != a || bin.Right() != b {
		t.Errorf("got %v; want (a + b)", bin)
	}
	if bin.Scope() != s {
		t.Errorf("node lost its scope")
	}
}

func TestBinary_SourceOrder(t *testing.T) {
	s := NewScope("t")
	a := s.Var("a")

	left := Sub(5, a).(*BinaryOp)
	if c, ok := left.Left().(*Const); !ok || c.String() != "5" || left.Right() != a {
		t.Errorf("got %v; want (5 - a)", left)
	}
	right := Sub(a, 5).(*BinaryOp)
	if right.Left() != a || right.Right().String() != "5" {
		t.Errorf("got %v; want (a - 5)", right)
	}
	if got := a.RSub(5).String(); got != "(5 - a)" {
		t.Errorf("got %v; want (5 - a)", got)
	}
}

func TestBinary_ReflectedLogical(t *testing.T) {
	s := NewScope("t")
	x := s.Var("x")
	if got := Implies(true, x).String(); got != "(true >> x)" {
		t.Errorf("got %v; want (true >> x)", got)
	}
	if got := ImpliedBy(x, false).String(); got != "(x << false)" {
		t.Errorf("got %v; want (x << false)", got)
	}
}

func TestBinary_MirroredComparison(t *testing.T) {
	s := NewScope("t")
	a := s.Var("a")
	cases := map[string]Value{
		"(a > 5)":  Lt(5, a),
		"(a >= 5)": Le(5, a),
		"(a < 5)":  Gt(5, a),
		"(a <= 5)": Ge(5, a),
		"(a == 5)": Eq(5, a),
		"(a != 5)": Ne(5, a),
	}
	for want, v := range cases {
		if v.String() != want {
			t.Errorf("got %v; want %v", v, want)
		}
	}
}

func TestBinary_NoSymbolicOperand(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNoSymbolicOperand) {
			t.Errorf("got %v; want ErrNoSymbolicOperand panic", r)
		}
	}()
	Add(1, 2)
}

func TestUnary(t *testing.T) {
	s := NewScope("t")
	a := s.Var("a")
	for _, tc := range []struct {
		v    Value
		op   UnaryOperator
		want string
	}{
		{a.Neg(), OpNegate, "(-a)"},
		{a.Pos(), OpPlus, "(+a)"},
		{Not(a), OpNot, "(~a)"},
	} {
		u, ok := tc.v.(*UnaryOp)
		if !ok {
			t.Errorf("got %T; want *UnaryOp", tc.v)
			continue
		}
		if u.Op() != tc.op || u.Operand() != a || u.String() != tc.want {
			t.Errorf("got %v; want %v", u, tc.want)
		}
	}
}

func TestCall(t *testing.T) {
	s := NewScope("t")
	f, a := s.Var("f"), s.Var("a")
	c := f.Call(3, a.Add(1))
	if c.Callee() != f {
		t.Errorf("callee lost")
	}
	if len(c.Args()) != 2 {
		t.Fatalf("got %d args; want 2", len(c.Args()))
	}
	if got := c.String(); got != "(f(3, (a + 1)))" {
		t.Errorf("got %v; want (f(3, (a + 1)))", got)
	}
	if got := c.Eq(true).String(); got != "((f(3, (a + 1))) == true)" {
		t.Errorf("got %v", got)
	}
}

func TestConst_Literals(t *testing.T) {
	s := NewScope("t")
	a := s.Var("a")
	cases := []struct {
		lit  any
		kind Kind
		text string
	}{
		{true, KindBool, "true"},
		{int8(-3), KindInt, "-3"},
		{uint64(1 << 63), KindInt, "9223372036854775808"},
		{big.NewInt(7), KindInt, "7"},
		{0.5, KindReal, "0.5"},
		{float32(2), KindReal, "2.0"},
		{big.NewRat(1, 4), KindReal, "0.25"},
	}
	for _, tc := range cases {
		c := a.Add(tc.lit).(*BinaryOp).Right().(*Const)
		if c.Kind() != tc.kind || c.String() != tc.text {
			t.Errorf("lit %v: got %v %v; want %v %v", tc.lit, c.Kind(), c, tc.kind, tc.text)
		}
	}
}

func TestNormalizeLiteral_DecimalFloat(t *testing.T) {
	got, err := NormalizeLiteral(0.1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got.(*big.Rat).Cmp(big.NewRat(1, 10)) != 0 {
		t.Errorf("got %v; want 1/10", got)
	}
}

func TestNormalizeLiteral_Unsupported(t *testing.T) {
	for _, lit := range []any{"x", struct{}{}, (*big.Int)(nil)} {
		if _, err := NormalizeLiteral(lit); !errors.Is(err, ErrUnsupportedLiteral) {
			t.Errorf("NormalizeLiteral(%v): got %v; want ErrUnsupportedLiteral", lit, err)
		}
	}
}

func TestAllAny(t *testing.T) {
	s := NewScope("t")
	a, b, c := s.Var("a"), s.Var("b"), s.Var("c")
	if got := All(a, b, c).String(); got != "((a & b) & c)" {
		t.Errorf("got %v", got)
	}
	if got := Any(a, b).String(); got != "(a | b)" {
		t.Errorf("got %v", got)
	}
}
