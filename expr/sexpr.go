package expr

import (
	"fmt"
	"strings"
)

// S builds an expression from an S-expression head and its arguments.
// Arguments that are not already expressions go through ToExpr, so plain
// strings become names.
//
// Supported heads are the operator symbols ("+" and "-" are unary with one
// argument and binary with two, "*" and "**" build starred arguments when
// given a single operand), "and", "or", "not", ".", "getattr", "call", "if",
// "yield", "yield from" and "lambda". A head without arguments that is not
// one of these becomes a string atom.
func S(head string, args ...any) (Expr, error) {
	switch head {
	case "and", "or":
		return sBool(head, args)
	case "not", "~":
		if len(args) != 1 {
			return nil, sArity(head, "1", len(args))
		}
		op, _ := UnaryOperatorFromSymbol(head)
		return sUnary(op, args[0])
	case "+", "-":
		if len(args) == 1 {
			op, _ := UnaryOperatorFromSymbol(head)
			return sUnary(op, args[0])
		}
	case "*", "**":
		if len(args) == 1 {
			value, err := ToExpr(args[0])
			if err != nil {
				return nil, err
			}
			if IsVoid(value) {
				return nil, NewInvalidOperandError(head)
			}
			return NewStarred(value, head == "**"), nil
		}
	case ".", "getattr":
		if len(args) != 2 {
			return nil, sArity(head, "2", len(args))
		}
		base, err := ToExpr(args[0])
		if err != nil {
			return nil, err
		}
		attr, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("attribute name must be a string, got %s", typeName(args[1]))
		}
		return Attr(base, attr)
	case "call":
		if len(args) == 0 {
			return nil, sArity(head, "at least 1", 0)
		}
		return sCall(args[0], args[1:])
	case "if":
		if len(args) != 3 {
			return nil, sArity(head, "3", len(args))
		}
		kids, err := toExprs(args)
		if err != nil {
			return nil, err
		}
		for _, k := range kids {
			if IsVoid(k) {
				return nil, NewInvalidOperandError(head)
			}
		}
		return NewTernary(kids[0], kids[1], kids[2]), nil
	case "yield", "yield from":
		if len(args) != 1 {
			return nil, sArity(head, "1", len(args))
		}
		value, err := ToExpr(args[0])
		if err != nil {
			return nil, err
		}
		if IsVoid(value) {
			return nil, NewInvalidOperandError(head)
		}
		if head == "yield" {
			return NewYield(value), nil
		}
		return NewYieldFrom(value), nil
	case "lambda":
		if len(args) != 2 {
			return nil, sArity(head, "2", len(args))
		}
		return sLambda(args[0], args[1])
	}

	if op, err := BinaryOperatorFromSymbol(head); err == nil {
		if len(args) != 2 {
			return nil, sArity(head, "2", len(args))
		}
		kids, err := toExprs(args)
		if err != nil {
			return nil, err
		}
		return Binary(op, kids[0], kids[1])
	}

	if len(args) == 0 {
		return Str(head), nil
	}
	return nil, fmt.Errorf("invalid S-expression head: %q", head)
}

func sArity(head, want string, got int) error {
	return fmt.Errorf("S-expression %q expects %s argument(s), got %d", head, want, got)
}

func toExprs(values []any) ([]Expr, error) {
	exprs := make([]Expr, len(values))
	for i, v := range values {
		e, err := ToExpr(v)
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return exprs, nil
}

// sBool folds two or more operands left to right.
func sBool(head string, args []any) (Expr, error) {
	if len(args) < 2 {
		return nil, sArity(head, "at least 2", len(args))
	}
	kids, err := toExprs(args)
	if err != nil {
		return nil, err
	}
	op := BoolAnd
	if head == "or" {
		op = BoolOr
	}
	result := kids[0]
	for _, rhs := range kids[1:] {
		result, err = Binary(op, result, rhs)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func sUnary(op UnaryOperator, arg any) (Expr, error) {
	operand, err := ToExpr(arg)
	if err != nil {
		return nil, err
	}
	return Unary(op, operand)
}

// sCall keeps string arguments as star markers and coerces the rest.
func sCall(callee any, args []any) (Expr, error) {
	fn, err := ToExpr(callee)
	if err != nil {
		return nil, err
	}
	values := make([]any, len(args))
	for i, a := range args {
		switch a.(type) {
		case string, Arg, Expr:
			values[i] = a
		default:
			if values[i], err = ToExpr(a); err != nil {
				return nil, err
			}
		}
	}
	return CallFromArgs(fn, values...)
}

// sLambda builds a lambda from a parameter list. Parameters are names,
// "*name" for the variadic parameter, "**kwargs", or *ArgDef values.
func sLambda(params any, body any) (Expr, error) {
	var items []any
	switch p := params.(type) {
	case []any:
		items = p
	case []string:
		for _, s := range p {
			items = append(items, s)
		}
	case []*ArgDef:
		for _, a := range p {
			items = append(items, a)
		}
	case nil:
	default:
		return nil, fmt.Errorf("lambda parameters must be a list, got %s", typeName(params))
	}

	var (
		defs     []*ArgDef
		vararg   string
		hasKwarg bool
	)
	for _, item := range items {
		switch p := item.(type) {
		case *ArgDef:
			defs = append(defs, p)
		case string:
			switch {
			case strings.HasPrefix(p, "**"):
				if p[2:] != kwargsName {
					return nil, NewInvalidNodeError(LambdaKind, fmt.Sprintf("keyword parameter must be named %s, got %q", kwargsName, p[2:]))
				}
				hasKwarg = true
			case strings.HasPrefix(p, "*"):
				if err := CheckName(p[1:]); err != nil {
					return nil, NewInvalidNodeError(LambdaKind, "variadic parameter: "+err.Error())
				}
				vararg = p[1:]
			default:
				if err := CheckName(p); err != nil {
					return nil, NewInvalidNodeError(LambdaKind, "parameter: "+err.Error())
				}
				defs = append(defs, NewArgDef(NewName(p), nil, nil))
			}
		default:
			return nil, fmt.Errorf("invalid lambda parameter of type %s", typeName(item))
		}
	}

	b, err := ToExpr(body)
	if err != nil {
		return nil, err
	}
	if IsVoid(b) {
		return nil, NewInvalidOperandError("lambda")
	}
	return NewLambda(defs, b, vararg, hasKwarg), nil
}
