package expr

import "fmt"

// Attr returns base.name.
func Attr(base Expr, name string) (*GetAttr, error) {
	if IsVoid(base) {
		return nil, NewInvalidOperandError("getattr")
	}
	return NewGetAttr(base, name), nil
}

// Binary returns lhs <op> rhs. The boolean operators build And and Or nodes.
func Binary(op BinaryOperator, lhs, rhs Expr) (Expr, error) {
	if IsVoid(lhs) || IsVoid(rhs) {
		return nil, NewInvalidOperandError(op.Symbol())
	}
	switch op {
	case BoolAnd:
		return NewAnd(lhs, rhs), nil
	case BoolOr:
		return NewOr(lhs, rhs), nil
	}
	return NewBinOp(op, lhs, rhs), nil
}

// Unary returns <op> operand.
func Unary(op UnaryOperator, operand Expr) (*UnaryOp, error) {
	if IsVoid(operand) {
		return nil, NewInvalidOperandError(op.Symbol())
	}
	return NewUnaryOp(op, operand), nil
}

// Compare is Binary restricted to comparison operators.
func Compare(op BinaryOperator, lhs, rhs Expr) (*BinOp, error) {
	if !op.IsComparison() {
		return nil, fmt.Errorf("%s is not a comparison operator", op)
	}
	e, err := Binary(op, lhs, rhs)
	if err != nil {
		return nil, err
	}
	return e.(*BinOp), nil
}
