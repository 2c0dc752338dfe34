package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreeVars(t *testing.T) {
	x, y, z := NewName("x"), NewName("y"), NewName("z")

	tests := []struct {
		name string
		expr Expr
		want []string
	}{
		{
			name: "atom",
			expr: Int(1),
			want: []string{},
		},
		{
			name: "sorted_and_unique",
			expr: NewBinOp(Add, z, NewBinOp(Mul, x, z)),
			want: []string{"x", "z"},
		},
		{
			name: "attribute_and_keyword_names_are_not_variables",
			expr: MustCall(NewGetAttr(x, "method"), Kw("key", y)),
			want: []string{"x", "y"},
		},
		{
			name: "lambda_binds_parameters",
			expr: NewLambda([]*ArgDef{NewArgDef(x, y, nil)}, NewBinOp(Add, x, NewBinOp(Add, z, NewName("rest"))), "rest", false),
			want: []string{"y", "z"},
		},
		{
			name: "binding_is_scoped",
			expr: NewBinOp(Add, NewLambda([]*ArgDef{NewArgDef(x, nil, nil)}, x, "", false), x),
			want: []string{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FreeVars(tt.expr))
		})
	}
}
