package symbolic

import "errors"

var (
	ErrBadSort            = errors.New("bad sort")
	ErrReservedName       = errors.New("reserved name")
	ErrInvalidName        = errors.New("invalid variable name")
	ErrRedeclared         = errors.New("name already declared")
	ErrSealed             = errors.New("scope is sealed")
	ErrUnsupportedLiteral = errors.New("unsupported literal")
	ErrNoSymbolicOperand  = errors.New("no symbolic operand")
	ErrArity              = errors.New("wrong number of arguments")
	ErrForeignScope       = errors.New("value belongs to another scope")
)
