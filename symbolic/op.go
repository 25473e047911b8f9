package symbolic

type UnaryOperator int

const (
	OpPlus UnaryOperator = iota
	OpNegate
	OpNot // ~x, logical negation
)

func (op UnaryOperator) String() string {
	switch op {
	case OpPlus:
		return "+"
	case OpNegate:
		return "-"
	case OpNot:
		return "~"
	default:
		return "unknown"
	}
}

type BinaryOperator int

const (
	// arithmetic
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpPow
	OpMod

	// comparison
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	// logical, written with the bitwise operators
	OpAnd       // x & y
	OpOr        // x | y
	OpXor       // x ^ y
	OpImplies   // x >> y, x implies y
	OpImpliedBy // x << y, y implies x
)

func (op BinaryOperator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpFloorDiv:
		return "//"
	case OpPow:
		return "**"
	case OpMod:
		return "%"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	case OpXor:
		return "^"
	case OpImplies:
		return ">>"
	case OpImpliedBy:
		return "<<"
	default:
		return "unknown"
	}
}

func (op BinaryOperator) IsArithmetic() bool {
	return op >= OpAdd && op <= OpMod
}

func (op BinaryOperator) IsComparison() bool {
	return op >= OpEq && op <= OpGe
}

func (op BinaryOperator) IsLogical() bool {
	return op >= OpAnd && op <= OpImpliedBy
}

// Reversible reports whether a literal left operand is handled by the right
// operand's reflected method. Comparisons are mirrored instead.
func (op BinaryOperator) Reversible() bool {
	return op.IsArithmetic() || op.IsLogical()
}

// mirror returns the comparison that holds with its operands swapped.
func (op BinaryOperator) mirror() BinaryOperator {
	switch op {
	case OpLt:
		return OpGt
	case OpLe:
		return OpGe
	case OpGt:
		return OpLt
	case OpGe:
		return OpLe
	default:
		return op
	}
}
