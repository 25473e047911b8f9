package solver

import (
	"fmt"

	"github.com/aclements/go-z3/z3"
)

// RealPrecision is the number of decimal digits irrational model values are
// approximated to before they are converted to float64. The lower bound of
// the approximation is used.
const RealPrecision = 20

// decode converts a model value into a native one: bool, int64 (or
// *big.Int when it does not fit) or float64. Eval returns nil when
// evaluation fails; that is ErrNotLiteral.
func decode(v z3.Value) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: evaluation failed", ErrNotLiteral)
	}
	switch v := v.(type) {
	case z3.Bool:
		b, ok := v.AsBool()
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotLiteral, v)
		}
		return b, nil
	case z3.Int:
		i, ok := v.AsBigInt()
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotLiteral, v)
		}
		if i.IsInt64() {
			return i.Int64(), nil
		}
		return i, nil
	case z3.Real:
		return decodeReal(v)
	default:
		return nil, fmt.Errorf("%w: value '%s' of sort '%s'", ErrWrongSort, v, v.Sort())
	}
}

func decodeReal(v z3.Real) (float64, error) {
	if r, ok := v.AsBigRat(); ok {
		f, _ := r.Float64()
		return f, nil
	}
	lower, _, ok := v.Approx(RealPrecision)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotLiteral, v)
	}
	r, ok := lower.AsBigRat()
	if !ok {
		return 0, fmt.Errorf("%w: approximation %s", ErrNotLiteral, lower)
	}
	f, _ := r.Float64()
	return f, nil
}
