package expr

import "fmt"

// BinaryOperator tags a BinOp node. Constants are declared by inverse order
// of precedence.
type BinaryOperator uint8

const (
	BoolOr BinaryOperator = iota + 1
	BoolAnd

	// Comparisons
	Eq
	NotEq
	Gt
	GtE
	Lt
	LtE
	Is
	IsNot
	In
	NotIn

	// Bitwise
	BitOr
	BitXor
	BitAnd
	RShift
	LShift

	// Arithmetic. Unary operators sit between multiplication and power.
	Add
	Sub
	Mul
	Div
	MatMult
	Mod
	FloorDiv
	Pow
)

type operatorInfo struct {
	symbol     string
	name       string
	precedence int
}

var binaryOperators = map[BinaryOperator]operatorInfo{
	BoolOr:   {"or", "OR_", 1},
	BoolAnd:  {"and", "AND_", 2},
	Eq:       {"==", "EQ", 4},
	NotEq:    {"!=", "NE", 4},
	Gt:       {">", "GT", 4},
	GtE:      {">=", "GE", 4},
	Lt:       {"<", "LT", 4},
	LtE:      {"<=", "LE", 4},
	Is:       {"is", "IS", 4},
	IsNot:    {"is not", "IS_NOT", 4},
	In:       {"in", "IN", 4},
	NotIn:    {"not in", "NOT_IN", 4},
	BitOr:    {"|", "OR", 5},
	BitXor:   {"^", "XOR", 6},
	BitAnd:   {"&", "AND", 7},
	RShift:   {">>", "RSHIFT", 8},
	LShift:   {"<<", "LSHIFT", 8},
	Add:      {"+", "ADD", 9},
	Sub:      {"-", "SUB", 9},
	Mul:      {"*", "MUL", 10},
	Div:      {"/", "TRUEDIV", 10},
	MatMult:  {"@", "MATMUL", 10},
	Mod:      {"%", "MOD", 10},
	FloorDiv: {"//", "FLOORDIV", 10},
	Pow:      {"**", "POW", 12},
}

// precedence levels for nodes that are not binary operators
const (
	lambdaPrecedence  = -1
	ternaryPrecedence = 0
	notPrecedence     = 3
	unaryPrecedence   = 11
	atomPrecedence    = 100
)

// BinaryOperatorFromSymbol returns the operator spelled by symbol, e.g. "+" or "not in".
func BinaryOperatorFromSymbol(symbol string) (BinaryOperator, error) {
	for op, info := range binaryOperators {
		if info.symbol == symbol {
			return op, nil
		}
	}
	return 0, fmt.Errorf("invalid operator: %s", symbol)
}

// Symbol is the source spelling of the operator.
func (op BinaryOperator) Symbol() string {
	return binaryOperators[op].symbol
}

// Precedence level of the operator. Higher values bind tighter.
func (op BinaryOperator) Precedence() int {
	return binaryOperators[op].precedence
}

// RightAssociative reports whether the operator groups from the right.
func (op BinaryOperator) RightAssociative() bool {
	switch op {
	case Pow, BoolOr, BoolAnd:
		return true
	}
	return false
}

// IsComparison reports whether op is one of the comparison operators.
func (op BinaryOperator) IsComparison() bool {
	return op >= Eq && op <= NotIn
}

func (op BinaryOperator) String() string {
	info, ok := binaryOperators[op]
	if !ok {
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
	return "Op." + info.name
}

// Apply evaluates the operator on two literal values.
func (op BinaryOperator) Apply(lhs, rhs any) (any, error) {
	if _, ok := binaryOperators[op]; !ok {
		return nil, NewOperationError(op.String(), "unknown operator")
	}
	return evalBinary(op, normalizeLiteral(lhs), normalizeLiteral(rhs))
}

// UnaryOperator tags a UnaryOp node.
type UnaryOperator uint8

const (
	Not UnaryOperator = iota + 1
	UAdd
	USub
	Invert
)

var unaryOperators = map[UnaryOperator]operatorInfo{
	Not:    {"not", "NOT_", notPrecedence},
	UAdd:   {"+", "POS", unaryPrecedence},
	USub:   {"-", "NEG", unaryPrecedence},
	Invert: {"~", "NOT", unaryPrecedence},
}

// UnaryOperatorFromSymbol returns the unary operator spelled by symbol.
func UnaryOperatorFromSymbol(symbol string) (UnaryOperator, error) {
	for op, info := range unaryOperators {
		if info.symbol == symbol {
			return op, nil
		}
	}
	return 0, fmt.Errorf("invalid operator: %s", symbol)
}

func (op UnaryOperator) Symbol() string {
	return unaryOperators[op].symbol
}

func (op UnaryOperator) Precedence() int {
	return unaryOperators[op].precedence
}

func (op UnaryOperator) String() string {
	info, ok := unaryOperators[op]
	if !ok {
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
	return "Op." + info.name
}

// Apply evaluates the operator on a literal value.
func (op UnaryOperator) Apply(operand any) (any, error) {
	if _, ok := unaryOperators[op]; !ok {
		return nil, NewOperationError(op.String(), "unknown operator")
	}
	return evalUnary(op, normalizeLiteral(operand))
}
