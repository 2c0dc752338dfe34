package expr

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int
}

type stringer interface {
	String() string
}

type label string

func (l label) String() string { return string(l) }

func TestToExpr(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Expr
	}{
		{"nil", nil, MustAtom(None)},
		{"int", 3, Int(3)},
		{"uint64", uint64(1) << 63, MustInt("9223372036854775808")},
		{"big_int", big.NewInt(5), Int(5)},
		{"float32", float32(0.5), Float(0.5)},
		{"complex64", complex64(complex(1, 2)), Complex(complex(1, 2))},
		{"bool", true, Bool(true)},
		{"bytes", []byte("x"), Bytes([]byte("x"))},
		{"ellipsis", Ellipsis, MustAtom(Ellipsis)},
		{"string_is_name", "x", NewName("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToExpr(tt.value)
			require.NoError(t, err)
			assert.True(t, Equal(tt.want, got), "got %#v, want %#v", got, tt.want)
		})
	}
}

func TestToExpr_Idempotent(t *testing.T) {
	x := NewName("x")
	nodes := []Expr{
		Int(1),
		x,
		NewVoid(),
		NewAnd(x, x),
		NewOr(x, x),
		NewUnaryOp(Not, x),
		NewBinOp(Add, x, x),
		NewGetAttr(x, "y"),
		MustCall(x),
		NewStarred(x, true),
		NewKeyword(x, "k"),
		NewTernary(x, x, x),
		NewLambda(nil, x, "", false),
		NewArgDef(x, nil, nil),
		NewYield(x),
		NewYieldFrom(x),
	}

	for _, node := range nodes {
		t.Run(node.Kind().String(), func(t *testing.T) {
			once, err := ToExpr(node)
			require.NoError(t, err)
			twice, err := ToExpr(once)
			require.NoError(t, err)
			assert.Same(t, node, once)
			assert.Same(t, once, twice)
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Run("unsupported", func(t *testing.T) {
		_, err := NewRegistry().ToExpr(point{1, 2})
		var target UnsupportedValueError
		require.True(t, errors.As(err, &target), "expected UnsupportedValueError, got %v", err)
		assert.Equal(t, point{1, 2}, target.Value)
	})

	t.Run("exact_type", func(t *testing.T) {
		r := NewRegistry()
		r.Register(reflect.TypeFor[point](), func(value any) (Expr, error) {
			p := value.(point)
			return MustCall(NewName("Point"), Positional(Int(int64(p.X))), Positional(Int(int64(p.Y)))), nil
		})

		e, err := r.ToExpr(point{1, 2})
		require.NoError(t, err)
		got, err := Source(e)
		require.NoError(t, err)
		assert.Equal(t, "Point(1, 2)", got)
	})

	t.Run("interface_type", func(t *testing.T) {
		r := NewRegistry()
		r.Register(reflect.TypeFor[stringer](), func(value any) (Expr, error) {
			return Str(value.(stringer).String()), nil
		})

		e, err := r.ToExpr(label("hello"))
		require.NoError(t, err)
		assert.True(t, Equal(Str("hello"), e))

		// exact registrations win over interfaces
		e, err = r.ToExpr("plain")
		require.NoError(t, err)
		assert.True(t, Equal(NewName("plain"), e))
	})

	t.Run("converter_error", func(t *testing.T) {
		r := NewRegistry()
		r.Register(reflect.TypeFor[point](), func(value any) (Expr, error) {
			return nil, fmt.Errorf("no points")
		})
		_, err := r.ToExpr(point{})
		assert.EqualError(t, err, "no points")
	})
}

func TestRegisterType(t *testing.T) {
	type celsius float64
	RegisterType(func(c celsius) (Expr, error) {
		return MustCall(NewName("Celsius"), Positional(Float(float64(c)))), nil
	})

	e, err := ToExpr(celsius(21.5))
	require.NoError(t, err)
	got, err := Source(e)
	require.NoError(t, err)
	assert.Equal(t, "Celsius(21.5)", got)
}
