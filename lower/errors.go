package lower

import (
	"errors"
	"fmt"

	"slava0135/easyz3/symbolic"
)

var (
	ErrUndeclared   = errors.New("undeclared variable")
	ErrSortMismatch = errors.New("sort mismatch")
	ErrUnsupported  = errors.New("unsupported operation")
	ErrNotFunction  = errors.New("not a function")
	ErrNotBool      = errors.New("assertion is not boolean")
	ErrArity        = symbolic.ErrArity
)

// Error reports the node that failed to lower.
type Error struct {
	Node symbolic.Value
	Err  error
}

func (e *Error) Error() string {
	if e.Node == nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("lower '%s': %v", e.Node, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(node symbolic.Value, err error, format string, args ...any) {
	if format != "" {
		err = wrapf(err, format, args...)
	}
	panic(&Error{Node: node, Err: err})
}

// catch recovers a lowering panic into err. Other panics are not touched.
func catch(err *error) {
	if r := recover(); r != nil {
		lerr, ok := r.(*Error)
		if !ok {
			panic(r)
		}
		*err = lerr
	}
}

func wrapf(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
}
