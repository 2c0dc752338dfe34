package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	x := NewName("x")
	tests := []struct {
		name string
		a, b Expr
		want bool
	}{
		{"same_int", Int(1), MustInt("1"), true},
		{"int_and_float", Int(1), Float(1), false},
		{"int_and_bool", Int(1), Bool(true), false},
		{"nan", Float(math.NaN()), Float(math.NaN()), true},
		{"bytes", Bytes([]byte("a")), Bytes([]byte("a")), true},
		{"names", NewName("x"), x, true},
		{"different_names", NewName("y"), x, false},
		{"void_and_nil", NewVoid(), nil, true},
		{"different_operators", NewBinOp(Add, x, x), NewBinOp(Sub, x, x), false},
		{"same_call", MustCall(x, Kw("k", Int(1))), MustCall(NewName("x"), Kw("k", Int(1))), true},
		{"different_keyword", MustCall(x, Kw("k", Int(1))), MustCall(x, Kw("j", Int(1))), false},
		{"different_arity", MustCall(x), MustCall(x, Positional(x)), false},
		{"starred_kind", NewStarred(x, true), NewStarred(x, false), false},
		{"lambda_vararg", NewLambda(nil, x, "a", false), NewLambda(nil, x, "b", false), false},
		{"attr", NewGetAttr(x, "a"), NewGetAttr(x, "a"), true},
		{"kinds", NewYield(x), NewYieldFrom(x), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}
