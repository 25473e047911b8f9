package problem

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
	"math/big"

	"golang.org/x/tools/go/ast/astutil"

	"slava0135/easyz3/symbolic"
)

// binaryOps maps Go operators to expression operators. The bitwise and
// shift operators are read as logical ones: x >> y is x implies y.
var binaryOps = map[token.Token]symbolic.BinaryOperator{
	token.ADD:  symbolic.OpAdd,
	token.SUB:  symbolic.OpSub,
	token.MUL:  symbolic.OpMul,
	token.QUO:  symbolic.OpDiv,
	token.REM:  symbolic.OpMod,
	token.EQL:  symbolic.OpEq,
	token.NEQ:  symbolic.OpNe,
	token.LSS:  symbolic.OpLt,
	token.LEQ:  symbolic.OpLe,
	token.GTR:  symbolic.OpGt,
	token.GEQ:  symbolic.OpGe,
	token.AND:  symbolic.OpAnd,
	token.LAND: symbolic.OpAnd,
	token.OR:   symbolic.OpOr,
	token.LOR:  symbolic.OpOr,
	token.XOR:  symbolic.OpXor,
	token.SHR:  symbolic.OpImplies,
	token.SHL:  symbolic.OpImpliedBy,
}

// evaluator builds symbolic values from Go expressions. Names resolve
// through the scope; sub-expressions without variables are folded with
// go/constant.
type evaluator struct {
	scope *symbolic.Scope
}

func (ev evaluator) parse(text string) (any, error) {
	e, err := parser.ParseExpr(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return ev.eval(e)
}

// eval returns a symbolic.Value, a constant.Value or whatever a name is
// bound to.
func (ev evaluator) eval(e ast.Expr) (any, error) {
	switch e := astutil.Unparen(e).(type) {
	case *ast.BasicLit:
		switch e.Kind {
		case token.INT, token.FLOAT:
			c := constant.MakeFromLiteral(e.Value, e.Kind, 0)
			if c.Kind() == constant.Unknown {
				return nil, fmt.Errorf("%w: bad number %s", ErrSyntax, e.Value)
			}
			return c, nil
		default:
			return nil, fmt.Errorf("%w: %s literals are not supported", ErrSyntax, e.Kind)
		}
	case *ast.Ident:
		v, err := ev.scope.Resolve(e.Name)
		if err != nil {
			return nil, err
		}
		if c, err := toConstant(v); err == nil {
			return c, nil
		}
		return v, nil
	case *ast.UnaryExpr:
		x, err := ev.operand(e.X)
		if err != nil {
			return nil, err
		}
		return unary(e.Op, x)
	case *ast.BinaryExpr:
		l, err := ev.operand(e.X)
		if err != nil {
			return nil, err
		}
		r, err := ev.operand(e.Y)
		if err != nil {
			return nil, err
		}
		return binary(e.Op, l, r)
	case *ast.CallExpr:
		return ev.call(e)
	default:
		return nil, fmt.Errorf("%w: unsupported expression %T", ErrSyntax, e)
	}
}

// operand evaluates e and checks that it can take part in an operator.
func (ev evaluator) operand(e ast.Expr) (any, error) {
	v, err := ev.eval(e)
	if err != nil {
		return nil, err
	}
	switch v.(type) {
	case symbolic.Value, constant.Value:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %T in an expression", ErrBadOperands, v)
	}
}

func (ev evaluator) call(e *ast.CallExpr) (any, error) {
	if e.Ellipsis.IsValid() {
		return nil, fmt.Errorf("%w: variadic call", ErrSyntax)
	}
	fn, err := ev.eval(e.Fun)
	if err != nil {
		return nil, err
	}
	var args []any
	for _, a := range e.Args {
		v, err := ev.operand(a)
		if err != nil {
			return nil, err
		}
		args = append(args, native(v))
	}
	switch fn := fn.(type) {
	case *symbolic.Variable:
		return fn.Call(args...), nil
	case symbolic.Builtin:
		return fn(args...)
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotCallable, fn)
	}
}

func unary(op token.Token, x any) (any, error) {
	if v, ok := x.(symbolic.Value); ok {
		switch op {
		case token.ADD:
			return v.Pos(), nil
		case token.SUB:
			return v.Neg(), nil
		case token.NOT, token.XOR:
			return v.Not(), nil
		}
		return nil, fmt.Errorf("%w: unary %s", ErrSyntax, op)
	}
	c := x.(constant.Value)
	switch {
	case c.Kind() == constant.Bool && (op == token.NOT || op == token.XOR):
		return constant.MakeBool(!constant.BoolVal(c)), nil
	case isNumeric(c) && (op == token.ADD || op == token.SUB):
		return constant.UnaryOp(op, c, 0), nil
	case c.Kind() == constant.Int && op == token.XOR:
		return constant.UnaryOp(op, c, 0), nil
	}
	return nil, fmt.Errorf("%w: %s%s", ErrBadOperands, op, c)
}

func binary(op token.Token, l, r any) (any, error) {
	lc, lok := l.(constant.Value)
	rc, rok := r.(constant.Value)
	if lok && rok {
		return fold(op, lc, rc)
	}
	bop, ok := binaryOps[op]
	if !ok {
		return nil, fmt.Errorf("%w: operator %s", ErrSyntax, op)
	}
	return symbolic.Binary(bop, native(l), native(r)), nil
}

// fold evaluates an operator over two constants with the same meaning it
// has on symbolic operands: logical for booleans, Euclidean division and
// remainder for integers.
func fold(op token.Token, x, y constant.Value) (constant.Value, error) {
	if x.Kind() == constant.Bool && y.Kind() == constant.Bool {
		a, b := constant.BoolVal(x), constant.BoolVal(y)
		switch op {
		case token.AND, token.LAND:
			return constant.MakeBool(a && b), nil
		case token.OR, token.LOR:
			return constant.MakeBool(a || b), nil
		case token.XOR, token.NEQ:
			return constant.MakeBool(a != b), nil
		case token.EQL:
			return constant.MakeBool(a == b), nil
		case token.SHR:
			return constant.MakeBool(!a || b), nil
		case token.SHL:
			return constant.MakeBool(a || !b), nil
		}
		return nil, fmt.Errorf("%w: %s %s %s", ErrBadOperands, x, op, y)
	}
	if !isNumeric(x) || !isNumeric(y) {
		return nil, fmt.Errorf("%w: %s %s %s", ErrBadOperands, x, op, y)
	}
	ints := x.Kind() == constant.Int && y.Kind() == constant.Int
	switch op {
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		return constant.MakeBool(constant.Compare(x, op, y)), nil
	case token.ADD, token.SUB, token.MUL:
		return constant.BinaryOp(x, op, y), nil
	case token.QUO, token.REM:
		if constant.Sign(y) == 0 {
			return nil, fmt.Errorf("%w: division by zero", ErrBadOperands)
		}
		if !ints {
			if op == token.REM {
				return nil, fmt.Errorf("%w: %% on reals", ErrBadOperands)
			}
			return constant.BinaryOp(x, op, y), nil
		}
		if op == token.QUO {
			return constant.Make(new(big.Int).Div(bigInt(x), bigInt(y))), nil
		}
		return constant.Make(new(big.Int).Mod(bigInt(x), bigInt(y))), nil
	case token.AND, token.OR, token.XOR:
		if ints {
			return constant.BinaryOp(x, op, y), nil
		}
	case token.SHL, token.SHR:
		if s, ok := constant.Uint64Val(y); ok && ints && s <= 1024 {
			return constant.Shift(x, op, uint(s)), nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s %s", ErrBadOperands, x, op, y)
}

func isNumeric(c constant.Value) bool {
	return c.Kind() == constant.Int || c.Kind() == constant.Float
}

func bigInt(c constant.Value) *big.Int {
	switch v := constant.Val(c).(type) {
	case int64:
		return big.NewInt(v)
	case *big.Int:
		return v
	default:
		panic(fmt.Sprintf("not an integer constant '%s'", c))
	}
}

// toConstant converts a native literal bound to a name.
func toConstant(x any) (constant.Value, error) {
	lit, err := symbolic.NormalizeLiteral(x)
	if err != nil {
		return nil, err
	}
	return constant.Make(lit), nil
}

// native converts constants back to the literals symbolic values accept.
// Other values are returned unchanged.
func native(x any) any {
	c, ok := x.(constant.Value)
	if !ok {
		return x
	}
	switch c.Kind() {
	case constant.Bool:
		return constant.BoolVal(c)
	case constant.Int:
		return bigInt(c)
	case constant.Float:
		switch v := constant.Val(c).(type) {
		case *big.Rat:
			return v
		case *big.Float:
			r, _ := v.Rat(nil)
			return r
		}
	}
	return x
}
