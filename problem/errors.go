package problem

import "errors"

var (
	ErrSyntax         = errors.New("syntax error")
	ErrBadOperands    = errors.New("bad operands")
	ErrNotCallable    = errors.New("not callable")
	ErrNotAssertable  = errors.New("not an assertion")
	ErrFalseAssertion = errors.New("assertion is always false")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrBadFile        = errors.New("bad problem file")
)
