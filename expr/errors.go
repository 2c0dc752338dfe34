package expr

import (
	"fmt"
)

// UnsupportedValueError is returned when ToExpr receives a value with no
// registered conversion.
type UnsupportedValueError struct {
	Value any
}

func (e UnsupportedValueError) Error() string {
	return fmt.Sprintf("cannot convert value of type %T to an expression", e.Value)
}

// NewUnsupportedValueError creates a new instance of UnsupportedValueError for the given value.
func NewUnsupportedValueError(value any) UnsupportedValueError {
	return UnsupportedValueError{
		Value: value,
	}
}

// InvalidOperandError is returned when an operation is attempted on a Void node.
type InvalidOperandError struct {
	Operation string
}

func (e InvalidOperandError) Error() string {
	return fmt.Sprintf("invalid operation with void node: %s", e.Operation)
}

// NewInvalidOperandError creates a new instance of InvalidOperandError for the given operation.
func NewInvalidOperandError(operation string) InvalidOperandError {
	return InvalidOperandError{
		Operation: operation,
	}
}

// ArgumentOrderError is returned when a positional or starred argument would
// follow a keyword or double starred argument.
type ArgumentOrderError struct {
	Message string
}

func (e ArgumentOrderError) Error() string {
	return e.Message
}

// NewArgumentOrderError creates a new instance of ArgumentOrderError with the given message.
func NewArgumentOrderError(message string) ArgumentOrderError {
	return ArgumentOrderError{
		Message: message,
	}
}

// ArgumentTypeError is returned when a call argument input is neither an
// expression nor a star marker.
type ArgumentTypeError struct {
	Value   any
	Message string
}

func (e ArgumentTypeError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("expect expression, got %s", typeName(e.Value))
}

// NewArgumentTypeError creates a new instance of ArgumentTypeError for the offending value.
func NewArgumentTypeError(value any) ArgumentTypeError {
	return ArgumentTypeError{
		Value: value,
	}
}

// FoldTypeError is returned when an Atom would be rebuilt from a value that
// is not one of the primitive literal kinds.
type FoldTypeError struct {
	Value any
}

func (e FoldTypeError) Error() string {
	return fmt.Sprintf("cannot fold atom from value of type %s", typeName(e.Value))
}

// NewFoldTypeError creates a new instance of FoldTypeError for the given value.
func NewFoldTypeError(value any) FoldTypeError {
	return FoldTypeError{
		Value: value,
	}
}

// OperationError is returned when an operator cannot be evaluated on literal
// operands, e.g. division by zero or mismatched operand types.
type OperationError struct {
	Operator string
	Message  string
}

func (e OperationError) Error() string {
	return fmt.Sprintf("cannot evaluate %q: %s", e.Operator, e.Message)
}

// NewOperationError creates a new instance of OperationError.
func NewOperationError(operator, message string) OperationError {
	return OperationError{
		Operator: operator,
		Message:  message,
	}
}

// InvalidNodeError is returned when a node is used in a structurally invalid way.
type InvalidNodeError struct {
	Kind    Kind
	Message string
}

func (e InvalidNodeError) Error() string {
	return fmt.Sprintf("invalid %s node: %s", e.Kind, e.Message)
}

// NewInvalidNodeError creates a new instance of InvalidNodeError.
func NewInvalidNodeError(kind Kind, message string) InvalidNodeError {
	return InvalidNodeError{
		Kind:    kind,
		Message: message,
	}
}

// typeName names the type of v the way error messages show it to users.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "str"
	}
	return fmt.Sprintf("%T", v)
}
