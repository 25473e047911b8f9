package symbolic

import "fmt"

// The functions below build nodes from operands written in source order,
// either of which may be a native literal. A literal left operand is handled
// the way a reflected operator is: 5 - x is built by x.RSub(5), and
// comparisons are mirrored, so 5 < x is built as x > 5.

func Pos(x Value) Value { return x.Pos() }
func Neg(x Value) Value { return x.Neg() }
func Not(x Value) Value { return x.Not() }

func Add(l, r any) Value      { return binary(OpAdd, l, r) }
func Sub(l, r any) Value      { return binary(OpSub, l, r) }
func Mul(l, r any) Value      { return binary(OpMul, l, r) }
func Div(l, r any) Value      { return binary(OpDiv, l, r) }
func FloorDiv(l, r any) Value { return binary(OpFloorDiv, l, r) }
func Pow(l, r any) Value      { return binary(OpPow, l, r) }
func Mod(l, r any) Value      { return binary(OpMod, l, r) }

func Eq(l, r any) Value { return binary(OpEq, l, r) }
func Ne(l, r any) Value { return binary(OpNe, l, r) }
func Lt(l, r any) Value { return binary(OpLt, l, r) }
func Le(l, r any) Value { return binary(OpLe, l, r) }
func Gt(l, r any) Value { return binary(OpGt, l, r) }
func Ge(l, r any) Value { return binary(OpGe, l, r) }

func And(l, r any) Value       { return binary(OpAnd, l, r) }
func Or(l, r any) Value        { return binary(OpOr, l, r) }
func Xor(l, r any) Value       { return binary(OpXor, l, r) }
func Implies(l, r any) Value   { return binary(OpImplies, l, r) }
func ImpliedBy(l, r any) Value { return binary(OpImpliedBy, l, r) }

// All folds values into a single conjunction.
func All(first Value, rest ...Value) Value {
	res := first
	for _, v := range rest {
		res = res.And(v)
	}
	return res
}

// Any folds values into a single disjunction.
func Any(first Value, rest ...Value) Value {
	res := first
	for _, v := range rest {
		res = res.Or(v)
	}
	return res
}

// Binary builds op applied to l and r. It panics if neither operand is a
// Value.
func Binary(op BinaryOperator, l, r any) Value {
	return binary(op, l, r)
}

func binary(op BinaryOperator, l, r any) Value {
	if lv, ok := l.(Value); ok {
		return newBinary(op, lv, lift(r, lv.Scope()))
	}
	rv, ok := r.(Value)
	if !ok {
		panic(fmt.Errorf("%w: %v %s %v", ErrNoSymbolicOperand, l, op, r))
	}
	if op.Reversible() {
		return rv.node().reflected(op, l)
	}
	return newBinary(op.mirror(), rv, lift(l, rv.Scope()))
}
