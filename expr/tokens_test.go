package expr

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, e Expr) []string {
	t.Helper()
	var tokens []string
	for tok, err := range Tokens(e, NewPrintContext(0, "    ")) {
		require.NoError(t, err)
		tokens = append(tokens, tok)
	}
	return tokens
}

func TestSource(t *testing.T) {
	x, y, f := NewName("x"), NewName("y"), NewName("f")
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{
			name: "higher_precedence_rhs",
			expr: NewBinOp(Add, Int(1), NewBinOp(Mul, Int(2), Int(3))),
			want: "1 + 2 * 3",
		},
		{
			name: "lower_precedence_lhs",
			expr: NewBinOp(Mul, NewBinOp(Add, Int(1), Int(2)), Int(3)),
			want: "(1 + 2) * 3",
		},
		{
			name: "chained_products",
			expr: NewBinOp(Mul, NewBinOp(Mul, NewBinOp(Add, x, Int(1)), y), Int(2)),
			want: "(x + 1) * y * 2",
		},
		{
			name: "starred_and_keyword_arguments",
			expr: &Call{Callee: f, Args: []Expr{NewStarred(NewName("args"), false), NewKeyword(Int(1), "x")}},
			want: "f(*args, x=1)",
		},
		{
			name: "empty_call",
			expr: &Call{Callee: f},
			want: "f()",
		},
		{
			name: "call_with_keyword",
			expr: MustCall(NewName("fn"), Positional(x), Kw("y", Int(42))),
			want: "fn(x, y=42)",
		},
		{
			name: "call_with_string",
			expr: MustCall(NewName("foo"), Positional(Str("bar")), Kw("kw", Int(42))),
			want: "foo('bar', kw=42)",
		},
		{
			name: "double_starred",
			expr: MustCall(f, Positional(x), DoubleStarName("kwargs")),
			want: "f(x, **kwargs)",
		},
		{
			name: "nested_ternary_in_else",
			expr: NewTernary(NewName("c"), Int(1), NewTernary(NewName("d"), Int(2), Int(3))),
			want: "1 if c else 2 if d else 3",
		},
		{
			name: "nested_ternary_in_then",
			expr: NewTernary(NewName("c"), NewTernary(NewName("d"), Int(1), Int(2)), Int(3)),
			want: "(1 if d else 2) if c else 3",
		},
		{
			name: "numeric_attribute_base",
			expr: NewGetAttr(Int(42), "y"),
			want: "(42).y",
		},
		{
			name: "name_attribute_base",
			expr: NewGetAttr(NewGetAttr(x, "y"), "z"),
			want: "x.y.z",
		},
		{
			name: "boolean_attribute_base",
			expr: NewGetAttr(NewOr(x, y), "z"),
			want: "(x or y).z",
		},
		{
			name: "binop_callee",
			expr: MustCall(NewBinOp(Add, x, y)),
			want: "(x + y)()",
		},
		{
			name: "not_binds_looser_than_and_operand",
			expr: NewAnd(NewUnaryOp(Not, x), y),
			want: "not x and y",
		},
		{
			name: "not_wraps_and",
			expr: NewUnaryOp(Not, NewAnd(x, y)),
			want: "not (x and y)",
		},
		{
			name: "and_inside_or",
			expr: NewOr(NewAnd(x, y), NewName("z")),
			want: "x and y or z",
		},
		{
			name: "or_inside_and",
			expr: NewAnd(NewOr(x, y), NewName("z")),
			want: "(x or y) and z",
		},
		{
			name: "negated_sum",
			expr: NewUnaryOp(USub, NewBinOp(Add, x, y)),
			want: "-(x + y)",
		},
		{
			name: "unary_inside_binop",
			expr: NewBinOp(Mul, NewUnaryOp(USub, x), y),
			want: "(-x) * y",
		},
		{
			name: "negative_atom_inside_binop",
			expr: NewBinOp(Add, x, Int(-1)),
			want: "x + (-1)",
		},
		{
			name: "power_over_unary",
			expr: NewUnaryOp(USub, NewBinOp(Pow, x, Int(2))),
			want: "-x ** 2",
		},
		{
			name: "comparison",
			expr: NewBinOp(NotIn, x, NewBinOp(BitOr, y, NewName("z"))),
			want: "x not in y | z",
		},
		{
			name: "ternary_operand",
			expr: NewBinOp(Add, NewTernary(x, Int(1), Int(2)), Int(3)),
			want: "(1 if x else 2) + 3",
		},
		{
			name: "starred_boolean",
			expr: NewStarred(NewOr(x, y), false),
			want: "*(x or y)",
		},
		{
			name: "lambda",
			expr: NewLambda(
				[]*ArgDef{NewArgDef(x, nil, nil), NewArgDef(y, Int(1), nil)},
				NewBinOp(Add, x, y),
				"args",
				true,
			),
			want: "lambda x, y=1, *args, **kwargs: x + y",
		},
		{
			name: "lambda_without_parameters",
			expr: NewLambda(nil, Int(0), "", false),
			want: "lambda: 0",
		},
		{
			name: "lambda_argument",
			expr: MustCall(f, Positional(NewLambda([]*ArgDef{NewArgDef(x, nil, nil)}, x, "", false))),
			want: "f(lambda x: x)",
		},
		{
			name: "annotated_default",
			expr: NewArgDef(x, Int(1), NewName("int")),
			want: "x: int = 1",
		},
		{
			name: "annotation_only",
			expr: NewArgDef(x, nil, NewName("int")),
			want: "x: int",
		},
		{
			name: "plain_default",
			expr: NewArgDef(x, Int(1), nil),
			want: "x=1",
		},
		{
			name: "yield",
			expr: NewYield(x),
			want: "(yield x)",
		},
		{
			name: "yield_from",
			expr: NewYieldFrom(NewName("xs")),
			want: "(yield from xs)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Source(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSource_Atoms(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{None, "None"},
		{nil, "None"},
		{Ellipsis, "..."},
		{true, "True"},
		{false, "False"},
		{42, "42"},
		{-7, "-7"},
		{2.0, "2.0"},
		{1.5, "1.5"},
		{0.1, "0.1"},
		{1e16, "1e+16"},
		{1e-5, "1e-05"},
		{0.0001, "0.0001"},
		{complex(0, 2), "2j"},
		{complex(1, 2), "(1+2j)"},
		{complex(1, -2), "(1-2j)"},
		{"text", "'text'"},
		{"it's", `"it's"`},
		{"a\nb", `'a\nb'`},
		{[]byte("a\x00"), `b'a\x00'`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := Source(MustAtom(tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	big, err := Source(MustInt("123456789012345678901234567890"))
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", big)
}

func TestTokens(t *testing.T) {
	e := NewBinOp(Add, Int(1), NewBinOp(Mul, Int(2), Int(3)))
	first := collectTokens(t, e)
	assert.Equal(t, []string{"1", " + ", "2", " * ", "3"}, first)

	second := collectTokens(t, e)
	assert.True(t, slices.Equal(first, second), "rendering the same tree twice should give the same tokens")

	var partial []string
	for tok := range Tokens(e, nil) {
		partial = append(partial, tok)
		if len(partial) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"1", " + "}, partial)
}

func TestTokens_Errors(t *testing.T) {
	t.Run("void_operand", func(t *testing.T) {
		_, err := Source(NewBinOp(Add, NewName("x"), NewVoid()))
		var target InvalidOperandError
		require.True(t, errors.As(err, &target), "expected InvalidOperandError, got %v", err)
	})

	t.Run("void_stops_stream", func(t *testing.T) {
		var tokens []string
		var errs []error
		for tok, err := range Tokens(NewBinOp(Add, NewName("x"), NewVoid()), nil) {
			if err != nil {
				errs = append(errs, err)
				continue
			}
			tokens = append(tokens, tok)
		}
		assert.Equal(t, []string{"x", " + "}, tokens)
		assert.Len(t, errs, 1)
	})

	t.Run("annotated_lambda_parameter", func(t *testing.T) {
		x := NewName("x")
		_, err := Source(NewLambda([]*ArgDef{NewArgDef(x, nil, NewName("int"))}, x, "", false))
		var target InvalidNodeError
		require.True(t, errors.As(err, &target), "expected InvalidNodeError, got %v", err)
		assert.Equal(t, LambdaKind, target.Kind)
	})
}

func TestPrintContext(t *testing.T) {
	ctx := NewPrintContext(1, "  ")
	assert.Equal(t, "  ", ctx.StartLine())

	ctx.Indent(2)
	assert.Equal(t, "      ", ctx.StartLine())

	require.NoError(t, ctx.Dedent(3))
	assert.Equal(t, "", ctx.StartLine())
	assert.Error(t, ctx.Dedent(1))
}
