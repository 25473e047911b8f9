package solver

import "errors"

var (
	ErrUnsatisfiable  = errors.New("unsatisfiable constraints")
	ErrUnknown        = errors.New("solver gave no answer")
	ErrAlreadySolved  = errors.New("already solved")
	ErrNoSuchVariable = errors.New("no such variable")
	ErrWrongSort      = errors.New("wrong sort")
	ErrNotLiteral     = errors.New("model value is not a literal")
	ErrOverflow       = errors.New("value out of range")
	ErrUnknownEngine  = errors.New("unknown engine")
)
