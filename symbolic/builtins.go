package symbolic

import "fmt"

// Builtin is a function available to Resolve.
type Builtin func(args ...any) (Value, error)

// Builtins are resolved after locals and globals.
var Builtins = map[string]any{
	"true":      true,
	"false":     false,
	"pow":       binaryBuiltin("pow", Pow),
	"floordiv":  binaryBuiltin("floordiv", FloorDiv),
	"implies":   binaryBuiltin("implies", Implies),
	"impliedby": binaryBuiltin("impliedby", ImpliedBy),
	"xor":       binaryBuiltin("xor", Xor),
	"not":       unaryBuiltin("not", Not),
	"neg":       unaryBuiltin("neg", Neg),
	"pos":       unaryBuiltin("pos", Pos),
}

func binaryBuiltin(name string, fn func(l, r any) Value) Builtin {
	return func(args ...any) (Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: %s takes 2, got %d", ErrArity, name, len(args))
		}
		_, lok := args[0].(Value)
		_, rok := args[1].(Value)
		if !lok && !rok {
			return nil, fmt.Errorf("%w: %s(%v, %v)", ErrNoSymbolicOperand, name, args[0], args[1])
		}
		return catchLiteral(func() Value { return fn(args[0], args[1]) })
	}
}

func unaryBuiltin(name string, fn func(x Value) Value) Builtin {
	return func(args ...any) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: %s takes 1, got %d", ErrArity, name, len(args))
		}
		x, ok := args[0].(Value)
		if !ok {
			return nil, fmt.Errorf("%w: %s(%v)", ErrNoSymbolicOperand, name, args[0])
		}
		return fn(x), nil
	}
}

// catchLiteral turns the panic of an unsupported literal operand into an
// error.
func catchLiteral(build func() Value) (v Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			v, err = nil, e
		}
	}()
	return build(), nil
}
