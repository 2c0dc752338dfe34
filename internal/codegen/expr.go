package codegen

import (
	"fmt"
	"go/token"
	"math"
	"math/big"
	"strconv"

	"github.com/dave/dst"
	"github.com/oxgen/pyexpr/expr"
)

var binaryOperatorNames = map[expr.BinaryOperator]string{
	expr.BoolOr:   "BoolOr",
	expr.BoolAnd:  "BoolAnd",
	expr.Eq:       "Eq",
	expr.NotEq:    "NotEq",
	expr.Gt:       "Gt",
	expr.GtE:      "GtE",
	expr.Lt:       "Lt",
	expr.LtE:      "LtE",
	expr.Is:       "Is",
	expr.IsNot:    "IsNot",
	expr.In:       "In",
	expr.NotIn:    "NotIn",
	expr.BitOr:    "BitOr",
	expr.BitXor:   "BitXor",
	expr.BitAnd:   "BitAnd",
	expr.RShift:   "RShift",
	expr.LShift:   "LShift",
	expr.Add:      "Add",
	expr.Sub:      "Sub",
	expr.Mul:      "Mul",
	expr.Div:      "Div",
	expr.MatMult:  "MatMult",
	expr.Mod:      "Mod",
	expr.FloorDiv: "FloorDiv",
	expr.Pow:      "Pow",
}

var unaryOperatorNames = map[expr.UnaryOperator]string{
	expr.Not:    "Not",
	expr.UAdd:   "UAdd",
	expr.USub:   "USub",
	expr.Invert: "Invert",
}

// exprIdent returns an identifier exported by the expr package.
func exprIdent(name string) *dst.Ident {
	return &dst.Ident{
		Name: name,
		Path: ExprImportPath,
	}
}

// exprCall returns a call to the named function of the expr package.
func exprCall(name string, args ...dst.Expr) *dst.CallExpr {
	return &dst.CallExpr{
		Fun:  exprIdent(name),
		Args: args,
	}
}

func stringLit(s string) *dst.BasicLit {
	return &dst.BasicLit{
		Kind:  token.STRING,
		Value: strconv.Quote(s),
	}
}

func boolIdent(b bool) *dst.Ident {
	return dst.NewIdent(strconv.FormatBool(b))
}

// negate wraps x in a unary minus when negative is set.
func negate(x dst.Expr, negative bool) dst.Expr {
	if !negative {
		return x
	}
	return &dst.UnaryExpr{
		Op: token.SUB,
		X:  x,
	}
}

// FloatLiteral returns a Go expression evaluating to f. Infinities, NaN and
// negative zero, which have no constant form, become calls into math.
func FloatLiteral(f float64) dst.Expr {
	switch {
	case math.IsNaN(f):
		return &dst.CallExpr{Fun: &dst.Ident{Name: "NaN", Path: "math"}}
	case math.IsInf(f, 0):
		sign := "1"
		if f < 0 {
			sign = "-1"
		}
		return &dst.CallExpr{
			Fun:  &dst.Ident{Name: "Inf", Path: "math"},
			Args: []dst.Expr{&dst.BasicLit{Kind: token.INT, Value: sign}},
		}
	case f == 0 && math.Signbit(f):
		return &dst.CallExpr{
			Fun: &dst.Ident{Name: "Copysign", Path: "math"},
			Args: []dst.Expr{
				&dst.BasicLit{Kind: token.INT, Value: "0"},
				&dst.BasicLit{Kind: token.INT, Value: "-1"},
			},
		}
	}

	lit := strconv.FormatFloat(math.Abs(f), 'g', -1, 64)
	return negate(&dst.BasicLit{Kind: token.FLOAT, Value: lit}, f < 0)
}

// Atom returns a constructor call creating an atom with the given value.
func Atom(a *expr.Atom) (dst.Expr, error) {
	switch v := a.Value.(type) {
	case expr.NoneType:
		return exprCall("MustAtom", exprIdent("None")), nil
	case expr.EllipsisType:
		return exprCall("MustAtom", exprIdent("Ellipsis")), nil
	case bool:
		return exprCall("Bool", boolIdent(v)), nil
	case *big.Int:
		if !v.IsInt64() {
			return exprCall("MustInt", stringLit(v.String())), nil
		}
		abs := new(big.Int).Abs(v)
		lit := &dst.BasicLit{Kind: token.INT, Value: abs.String()}
		return exprCall("Int", negate(lit, v.Sign() < 0)), nil
	case float64:
		return exprCall("Float", FloatLiteral(v)), nil
	case complex128:
		return exprCall("Complex", &dst.CallExpr{
			Fun:  dst.NewIdent("complex"),
			Args: []dst.Expr{FloatLiteral(real(v)), FloatLiteral(imag(v))},
		}), nil
	case string:
		return exprCall("Str", stringLit(v)), nil
	case []byte:
		return exprCall("Bytes", &dst.CallExpr{
			Fun:  &dst.ArrayType{Elt: dst.NewIdent("byte")},
			Args: []dst.Expr{stringLit(string(v))},
		}), nil
	}
	return nil, expr.NewInvalidNodeError(expr.AtomKind, fmt.Sprintf("unsupported literal of type %T", a.Value))
}

// optional returns the expression for an optional child, nil for Void.
func optional(e expr.Expr) (dst.Expr, error) {
	if expr.IsVoid(e) {
		return dst.NewIdent("nil"), nil
	}
	return Expression(e)
}

// Expression returns a Go expression that rebuilds e with the constructors of
// the expr package.
func Expression(e expr.Expr) (dst.Expr, error) {
	switch n := e.(type) {
	case nil:
		return nil, expr.NewInvalidOperandError("generate")
	case *expr.Atom:
		return Atom(n)
	case *expr.Name:
		return exprCall("NewName", stringLit(n.Identifier)), nil
	case *expr.Void:
		return exprCall("NewVoid"), nil
	case *expr.And:
		return binary("NewAnd", nil, n.LHS, n.RHS)
	case *expr.Or:
		return binary("NewOr", nil, n.LHS, n.RHS)
	case *expr.UnaryOp:
		name, ok := unaryOperatorNames[n.Op]
		if !ok {
			return nil, expr.NewInvalidNodeError(expr.UnaryOpKind, "unknown operator "+n.Op.String())
		}
		operand, err := Expression(n.Operand)
		if err != nil {
			return nil, err
		}
		return exprCall("NewUnaryOp", exprIdent(name), operand), nil
	case *expr.BinOp:
		name, ok := binaryOperatorNames[n.Op]
		if !ok {
			return nil, expr.NewInvalidNodeError(expr.BinOpKind, "unknown operator "+n.Op.String())
		}
		return binary("NewBinOp", exprIdent(name), n.LHS, n.RHS)
	case *expr.GetAttr:
		base, err := Expression(n.Base)
		if err != nil {
			return nil, err
		}
		return exprCall("NewGetAttr", base, stringLit(n.Attr)), nil
	case *expr.Call:
		return call(n)
	case *expr.Starred:
		value, err := Expression(n.Value)
		if err != nil {
			return nil, err
		}
		return exprCall("NewStarred", value, boolIdent(n.Double)), nil
	case *expr.Keyword:
		value, err := Expression(n.Value)
		if err != nil {
			return nil, err
		}
		return exprCall("NewKeyword", value, stringLit(n.Name)), nil
	case *expr.Ternary:
		args := make([]dst.Expr, 0, 3)
		for _, child := range []expr.Expr{n.Cond, n.Then, n.Else} {
			x, err := Expression(child)
			if err != nil {
				return nil, err
			}
			args = append(args, x)
		}
		return exprCall("NewTernary", args...), nil
	case *expr.Lambda:
		return lambda(n)
	case *expr.ArgDef:
		return argDef(n)
	case *expr.Yield:
		value, err := Expression(n.Value)
		if err != nil {
			return nil, err
		}
		return exprCall("NewYield", value), nil
	case *expr.YieldFrom:
		value, err := Expression(n.Value)
		if err != nil {
			return nil, err
		}
		return exprCall("NewYieldFrom", value), nil
	}
	return nil, expr.NewInvalidNodeError(e.Kind(), "cannot generate code for node")
}

// binary returns a call to the named two operand constructor. When op is not
// nil it is passed as the first argument.
func binary(constructor string, op dst.Expr, lhs, rhs expr.Expr) (dst.Expr, error) {
	l, err := Expression(lhs)
	if err != nil {
		return nil, err
	}
	r, err := Expression(rhs)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return exprCall(constructor, l, r), nil
	}
	return exprCall(constructor, op, l, r), nil
}

// call returns expr.MustCall with one argument helper per argument. The
// arguments of a Call node are already in a valid order.
func call(n *expr.Call) (dst.Expr, error) {
	callee, err := Expression(n.Callee)
	if err != nil {
		return nil, err
	}

	args := []dst.Expr{callee}
	for _, arg := range n.Args {
		var (
			helper string
			value  expr.Expr
			extra  dst.Expr
		)
		switch a := arg.(type) {
		case *expr.Starred:
			helper, value = "Star", a.Value
			if a.Double {
				helper = "DoubleStar"
			}
		case *expr.Keyword:
			helper, value, extra = "Kw", a.Value, stringLit(a.Name)
		default:
			helper, value = "Positional", arg
		}

		x, err := Expression(value)
		if err != nil {
			return nil, err
		}
		if extra != nil {
			args = append(args, exprCall(helper, extra, x))
		} else {
			args = append(args, exprCall(helper, x))
		}
	}
	return exprCall("MustCall", args...), nil
}

func argDef(n *expr.ArgDef) (dst.Expr, error) {
	name, err := Expression(n.Name)
	if err != nil {
		return nil, err
	}
	def, err := optional(n.Default)
	if err != nil {
		return nil, err
	}
	annotation, err := optional(n.Annotation)
	if err != nil {
		return nil, err
	}
	return exprCall("NewArgDef", name, def, annotation), nil
}

func lambda(n *expr.Lambda) (dst.Expr, error) {
	var params dst.Expr = dst.NewIdent("nil")
	if len(n.Params) > 0 {
		elts := make([]dst.Expr, 0, len(n.Params))
		for _, p := range n.Params {
			x, err := argDef(p)
			if err != nil {
				return nil, err
			}
			elts = append(elts, x)
		}
		params = &dst.CompositeLit{
			Type: &dst.ArrayType{Elt: &dst.StarExpr{X: exprIdent("ArgDef")}},
			Elts: elts,
		}
	}

	body, err := Expression(n.Body)
	if err != nil {
		return nil, err
	}
	return exprCall("NewLambda", params, body, stringLit(n.Vararg), boolIdent(n.HasKwarg)), nil
}
