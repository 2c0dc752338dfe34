package codegen

import (
	"errors"
	"go/token"
	"math"
	"testing"

	"github.com/dave/dst"
	"github.com/oxgen/pyexpr/expr"
	"github.com/oxgen/pyexpr/internal/util"
)

func intLit(v string) *dst.BasicLit {
	return &dst.BasicLit{Kind: token.INT, Value: v}
}

func TestExpression(t *testing.T) {
	x := expr.NewName("x")
	nameX := exprCall("NewName", stringLit("x"))

	tests := []struct {
		name string
		expr expr.Expr
		want dst.Expr
	}{
		{
			name: "name",
			expr: x,
			want: exprCall("NewName", stringLit("x")),
		},
		{
			name: "int",
			expr: expr.Int(42),
			want: exprCall("Int", intLit("42")),
		},
		{
			name: "negative_int",
			expr: expr.Int(-3),
			want: exprCall("Int", &dst.UnaryExpr{Op: token.SUB, X: intLit("3")}),
		},
		{
			name: "big_int",
			expr: expr.MustInt("123456789012345678901234567890"),
			want: exprCall("MustInt", stringLit("123456789012345678901234567890")),
		},
		{
			name: "float",
			expr: expr.Float(2.5),
			want: exprCall("Float", &dst.BasicLit{Kind: token.FLOAT, Value: "2.5"}),
		},
		{
			name: "infinity",
			expr: expr.Float(math.Inf(-1)),
			want: exprCall("Float", &dst.CallExpr{Fun: &dst.Ident{Name: "Inf", Path: "math"}, Args: []dst.Expr{intLit("-1")}}),
		},
		{
			name: "none",
			expr: expr.MustAtom(nil),
			want: exprCall("MustAtom", exprIdent("None")),
		},
		{
			name: "bytes",
			expr: expr.Bytes([]byte("ab")),
			want: exprCall("Bytes", &dst.CallExpr{Fun: &dst.ArrayType{Elt: dst.NewIdent("byte")}, Args: []dst.Expr{stringLit("ab")}}),
		},
		{
			name: "binop",
			expr: expr.NewBinOp(expr.Add, x, expr.Int(1)),
			want: exprCall("NewBinOp", exprIdent("Add"), nameX, exprCall("Int", intLit("1"))),
		},
		{
			name: "not",
			expr: expr.NewUnaryOp(expr.Not, x),
			want: exprCall("NewUnaryOp", exprIdent("Not"), nameX),
		},
		{
			name: "and",
			expr: expr.NewAnd(x, x),
			want: exprCall("NewAnd", nameX, nameX),
		},
		{
			name: "attribute",
			expr: expr.NewGetAttr(x, "y"),
			want: exprCall("NewGetAttr", nameX, stringLit("y")),
		},
		{
			name: "call",
			expr: expr.MustCall(x, expr.Positional(x), expr.StarName("rest"), expr.Kw("k", x), expr.DoubleStar(x)),
			want: exprCall("MustCall",
				nameX,
				exprCall("Positional", nameX),
				exprCall("Star", exprCall("NewName", stringLit("rest"))),
				exprCall("Kw", stringLit("k"), nameX),
				exprCall("DoubleStar", nameX),
			),
		},
		{
			name: "lambda",
			expr: expr.NewLambda([]*expr.ArgDef{expr.NewArgDef(x, expr.Int(1), nil)}, x, "", true),
			want: exprCall("NewLambda",
				&dst.CompositeLit{
					Type: &dst.ArrayType{Elt: &dst.StarExpr{X: exprIdent("ArgDef")}},
					Elts: []dst.Expr{exprCall("NewArgDef", nameX, exprCall("Int", intLit("1")), dst.NewIdent("nil"))},
				},
				nameX,
				stringLit(""),
				dst.NewIdent("true"),
			),
		},
		{
			name: "lambda_without_parameters",
			expr: expr.NewLambda(nil, x, "args", false),
			want: exprCall("NewLambda", dst.NewIdent("nil"), nameX, stringLit("args"), dst.NewIdent("false")),
		},
		{
			name: "yield_from",
			expr: expr.NewYieldFrom(x),
			want: exprCall("NewYieldFrom", nameX),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expression(tt.expr)
			if err != nil {
				t.Fatalf("Expression() error = %v", err)
			}
			if !util.ExpressionEqual(got, tt.want) {
				t.Errorf("Expression() = %s, want %s", util.DebugPrint(got), util.DebugPrint(tt.want))
			}
		})
	}
}

func TestExpression_Nil(t *testing.T) {
	_, err := Expression(nil)
	var target expr.InvalidOperandError
	if !errors.As(err, &target) {
		t.Errorf("expected InvalidOperandError, got %v", err)
	}
}

func TestFloatLiteral(t *testing.T) {
	tests := []struct {
		name string
		f    float64
		want dst.Expr
	}{
		{"integral", 2, &dst.BasicLit{Kind: token.FLOAT, Value: "2"}},
		{"negative", -0.5, &dst.UnaryExpr{Op: token.SUB, X: &dst.BasicLit{Kind: token.FLOAT, Value: "0.5"}}},
		{"large", 1e300, &dst.BasicLit{Kind: token.FLOAT, Value: "1e+300"}},
		{"nan", math.NaN(), &dst.CallExpr{Fun: &dst.Ident{Name: "NaN", Path: "math"}}},
		{"negative_zero", math.Copysign(0, -1), &dst.CallExpr{
			Fun:  &dst.Ident{Name: "Copysign", Path: "math"},
			Args: []dst.Expr{intLit("0"), intLit("-1")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FloatLiteral(tt.f); !util.ExpressionEqual(got, tt.want) {
				t.Errorf("FloatLiteral() = %s, want %s", util.DebugPrint(got), util.DebugPrint(tt.want))
			}
		})
	}
}
