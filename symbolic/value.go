// Package symbolic captures arithmetic and boolean expressions over solver
// variables as immutable trees instead of evaluating them.
package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Value is an unevaluated expression. Every operator method returns a new
// node; nothing is ever computed. Arguments of type any may be other Values or
// native literals (bool, integers, floats, *big.Int, *big.Rat).
//
// The R-prefixed methods are the reflected forms: x.RSub(5) is 5 - x.
type Value interface {
	fmt.Stringer

	// Scope returns the declaration scope the node was built in.
	Scope() *Scope

	// Bool registers the value as a constraint of its scope and reports
	// true. It exists for code that tests a symbolic value as a Go boolean;
	// such use is logged as a warning since the surrounding &&, || or !
	// cannot be captured. On a sealed scope nothing is registered.
	Bool() bool

	Pos() Value
	Neg() Value
	Not() Value

	Add(r any) Value
	Sub(r any) Value
	Mul(r any) Value
	Div(r any) Value
	FloorDiv(r any) Value
	Pow(r any) Value
	Mod(r any) Value

	RAdd(l any) Value
	RSub(l any) Value
	RMul(l any) Value
	RDiv(l any) Value
	RFloorDiv(l any) Value
	RPow(l any) Value
	RMod(l any) Value

	Eq(r any) Value
	Ne(r any) Value
	Lt(r any) Value
	Le(r any) Value
	Gt(r any) Value
	Ge(r any) Value

	And(r any) Value
	Or(r any) Value
	Xor(r any) Value
	Implies(r any) Value
	ImpliedBy(r any) Value

	RAnd(l any) Value
	ROr(l any) Value
	RXor(l any) Value
	RImplies(l any) Value
	RImpliedBy(l any) Value

	node() ops
}

// ops is embedded in every node. self is the embedding node.
type ops struct {
	self  Value
	scope *Scope
}

func (o ops) node() ops {
	return o
}

func (o ops) Scope() *Scope {
	return o.scope
}

func (o ops) Bool() bool {
	if o.scope.sealed {
		o.scope.logger.Warn("symbolic value used as a Go boolean after solving; not asserted",
			"scope", o.scope.name,
			"value", o.self.String(),
		)
		return true
	}
	o.scope.logger.Warn("symbolic value used as a Go boolean; only this value is asserted",
		"scope", o.scope.name,
		"value", o.self.String(),
		"hint", "use And/Or/Not and Scope.Assert instead of &&, || and !",
	)
	o.scope.Assert(o.self)
	return true
}

func (o ops) unary(op UnaryOperator) Value {
	return newUnary(op, o.self)
}

func (o ops) binary(op BinaryOperator, r any) Value {
	return newBinary(op, o.self, lift(r, o.scope))
}

func (o ops) reflected(op BinaryOperator, l any) Value {
	return newBinary(op, lift(l, o.scope), o.self)
}

func (o ops) Pos() Value { return o.unary(OpPlus) }
func (o ops) Neg() Value { return o.unary(OpNegate) }
func (o ops) Not() Value { return o.unary(OpNot) }

func (o ops) Add(r any) Value      { return o.binary(OpAdd, r) }
func (o ops) Sub(r any) Value      { return o.binary(OpSub, r) }
func (o ops) Mul(r any) Value      { return o.binary(OpMul, r) }
func (o ops) Div(r any) Value      { return o.binary(OpDiv, r) }
func (o ops) FloorDiv(r any) Value { return o.binary(OpFloorDiv, r) }
func (o ops) Pow(r any) Value      { return o.binary(OpPow, r) }
func (o ops) Mod(r any) Value      { return o.binary(OpMod, r) }

func (o ops) RAdd(l any) Value      { return o.reflected(OpAdd, l) }
func (o ops) RSub(l any) Value      { return o.reflected(OpSub, l) }
func (o ops) RMul(l any) Value      { return o.reflected(OpMul, l) }
func (o ops) RDiv(l any) Value      { return o.reflected(OpDiv, l) }
func (o ops) RFloorDiv(l any) Value { return o.reflected(OpFloorDiv, l) }
func (o ops) RPow(l any) Value      { return o.reflected(OpPow, l) }
func (o ops) RMod(l any) Value      { return o.reflected(OpMod, l) }

func (o ops) Eq(r any) Value { return o.binary(OpEq, r) }
func (o ops) Ne(r any) Value { return o.binary(OpNe, r) }
func (o ops) Lt(r any) Value { return o.binary(OpLt, r) }
func (o ops) Le(r any) Value { return o.binary(OpLe, r) }
func (o ops) Gt(r any) Value { return o.binary(OpGt, r) }
func (o ops) Ge(r any) Value { return o.binary(OpGe, r) }

func (o ops) And(r any) Value       { return o.binary(OpAnd, r) }
func (o ops) Or(r any) Value        { return o.binary(OpOr, r) }
func (o ops) Xor(r any) Value       { return o.binary(OpXor, r) }
func (o ops) Implies(r any) Value   { return o.binary(OpImplies, r) }
func (o ops) ImpliedBy(r any) Value { return o.binary(OpImpliedBy, r) }

func (o ops) RAnd(l any) Value       { return o.reflected(OpAnd, l) }
func (o ops) ROr(l any) Value        { return o.reflected(OpOr, l) }
func (o ops) RXor(l any) Value       { return o.reflected(OpXor, l) }
func (o ops) RImplies(l any) Value   { return o.reflected(OpImplies, l) }
func (o ops) RImpliedBy(l any) Value { return o.reflected(OpImpliedBy, l) }

// Variable is a named solver variable. Its sort is declared on the scope.
type Variable struct {
	ops
	name string
}

func newVariable(name string, s *Scope) *Variable {
	v := &Variable{name: name}
	v.ops = ops{self: v, scope: s}
	return v
}

func (v *Variable) Name() string {
	return v.name
}

func (v *Variable) String() string {
	return v.name
}

// Call applies the variable, which must be declared with a function sort,
// to args.
func (v *Variable) Call(args ...any) *Call {
	c := &Call{callee: v}
	for _, a := range args {
		arg := lift(a, v.scope)
		sameScope(v, arg)
		c.args = append(c.args, arg)
	}
	c.ops = ops{self: c, scope: v.scope}
	return c
}

// Const is a native literal lifted into an expression. Its value is a bool,
// a *big.Int or a *big.Rat.
type Const struct {
	ops
	val any
}

func newConst(val any, s *Scope) *Const {
	c := &Const{val: val}
	c.ops = ops{self: c, scope: s}
	return c
}

// Value returns a copy of the literal.
func (c *Const) Value() any {
	switch v := c.val.(type) {
	case *big.Int:
		return new(big.Int).Set(v)
	case *big.Rat:
		return new(big.Rat).Set(v)
	default:
		return v
	}
}

func (c *Const) Kind() Kind {
	switch c.val.(type) {
	case bool:
		return KindBool
	case *big.Int:
		return KindInt
	default:
		return KindReal
	}
}

func (c *Const) String() string {
	switch v := c.val.(type) {
	case bool:
		return strconv.FormatBool(v)
	case *big.Int:
		return v.String()
	case *big.Rat:
		f, _ := v.Float64()
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprint(v)
	}
}

type UnaryOp struct {
	ops
	op      UnaryOperator
	operand Value
}

func newUnary(op UnaryOperator, operand Value) *UnaryOp {
	u := &UnaryOp{op: op, operand: operand}
	u.ops = ops{self: u, scope: operand.Scope()}
	return u
}

func (u *UnaryOp) Op() UnaryOperator {
	return u.op
}

func (u *UnaryOp) Operand() Value {
	return u.operand
}

func (u *UnaryOp) String() string {
	return fmt.Sprintf("(%s%s)", u.op, u.operand)
}

type BinaryOp struct {
	ops
	op    BinaryOperator
	left  Value
	right Value
}

// newBinary keeps operands in source order. A lifted literal carries the
// scope of the operand it was combined with, so left always has one.
func newBinary(op BinaryOperator, left, right Value) *BinaryOp {
	sameScope(left, right)
	b := &BinaryOp{op: op, left: left, right: right}
	b.ops = ops{self: b, scope: left.Scope()}
	return b
}

func (b *BinaryOp) Op() BinaryOperator {
	return b.op
}

func (b *BinaryOp) Left() Value {
	return b.left
}

func (b *BinaryOp) Right() Value {
	return b.right
}

func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.left, b.op, b.right)
}

// Call is the application of a declared uninterpreted function.
type Call struct {
	ops
	callee *Variable
	args   []Value
}

func (c *Call) Callee() *Variable {
	return c.callee
}

func (c *Call) Args() []Value {
	return append([]Value(nil), c.args...)
}

func (c *Call) String() string {
	var args []string
	for _, a := range c.args {
		args = append(args, a.String())
	}
	return fmt.Sprintf("(%s(%s))", c.callee, strings.Join(args, ", "))
}

// sameScope panics unless both operands were built in the same scope.
func sameScope(l, r Value) {
	if l.Scope() != r.Scope() {
		panic(fmt.Errorf("%w: '%s' of '%s' combined with '%s' of '%s'",
			ErrForeignScope, l, l.Scope().Name(), r, r.Scope().Name()))
	}
}

func lift(x any, s *Scope) Value {
	if v, ok := x.(Value); ok {
		return v
	}
	lit, err := NormalizeLiteral(x)
	if err != nil {
		panic(err)
	}
	return newConst(lit, s)
}

// NormalizeLiteral converts a native Go literal into the representation used
// by Const: bool, *big.Int for every integer kind and *big.Rat for floats.
// Floats are read through their shortest decimal form, so 0.1 becomes 1/10.
func NormalizeLiteral(x any) (any, error) {
	switch x := x.(type) {
	case bool:
		return x, nil
	case int:
		return big.NewInt(int64(x)), nil
	case int8:
		return big.NewInt(int64(x)), nil
	case int16:
		return big.NewInt(int64(x)), nil
	case int32:
		return big.NewInt(int64(x)), nil
	case int64:
		return big.NewInt(x), nil
	case uint:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint64:
		return new(big.Int).SetUint64(x), nil
	case float32:
		return ratFromFloat(float64(x), 32)
	case float64:
		return ratFromFloat(x, 64)
	case *big.Int:
		if x == nil {
			break
		}
		return new(big.Int).Set(x), nil
	case *big.Rat:
		if x == nil {
			break
		}
		return new(big.Rat).Set(x), nil
	}
	return nil, fmt.Errorf("%w: %v of type %T", ErrUnsupportedLiteral, x, x)
}

func ratFromFloat(f float64, bits int) (*big.Rat, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: non-finite float %v", ErrUnsupportedLiteral, f)
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, bits))
	if !ok {
		return nil, fmt.Errorf("%w: float %v", ErrUnsupportedLiteral, f)
	}
	return r, nil
}
