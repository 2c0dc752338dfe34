package codegen

import (
	"errors"
	"math"
	"testing"

	"github.com/dave/dst"
	"github.com/oxgen/pyexpr/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"area", "area"},
		{"type", "typeExpr"},
		{"func", "funcExpr"},
		{"expr", "exprExpr"},
		{"math", "mathExpr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VariableName(tt.name))
		})
	}
}

func TestFile(t *testing.T) {
	area := expr.NewBinOp(expr.Mul, expr.NewName("pi"), expr.NewBinOp(expr.Pow, expr.NewName("r"), expr.Int(2)))
	limit := expr.NewTernary(expr.NewName("strict"), expr.Float(0), expr.Float(-1e300))
	call := expr.MustCall(expr.NewName("f"), expr.Kw("scale", expr.Float(0.5)))

	file, err := File("shapes", []Var{
		{Name: "area", Expr: area, Position: "shapes.yaml:3"},
		{Name: "type", Expr: limit, Position: "shapes.yaml:5"},
		{Name: "scaled", Expr: call, Position: "shapes.yaml:7"},
	})
	require.NoError(t, err)
	require.Len(t, file.Decls, 3)

	for _, decl := range file.Decls {
		assert.Equal(t, dst.EmptyLine, decl.Decorations().Before)
	}

	out, err := Print("shapes.go", file)
	require.NoError(t, err)
	src := string(out)

	assert.Contains(t, src, GeneratedHeader)
	assert.Contains(t, src, "package shapes")
	assert.Contains(t, src, `"github.com/oxgen/pyexpr/expr"`)
	assert.Contains(t, src, "// area renders as: pi * r ** 2\nvar area = expr.NewBinOp(expr.Mul, expr.NewName(\"pi\"), expr.NewBinOp(expr.Pow, expr.NewName(\"r\"), expr.Int(2)))")
	assert.Contains(t, src, "// type renders as: 0.0 if strict else -1e+300\nvar typeExpr = expr.NewTernary(expr.NewName(\"strict\"), expr.Float(0), expr.Float(-1e+300))")
	assert.Contains(t, src, "var scaled = expr.MustCall(expr.NewName(\"f\"), expr.Kw(\"scale\", expr.Float(0.5)))")
	assert.NotContains(t, src, `"math"`)
}

func TestFile_MathImport(t *testing.T) {
	file, err := File("limits", []Var{{Name: "top", Expr: expr.Float(math.Inf(1))}})
	require.NoError(t, err)

	out, err := Print("limits.go", file)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"math"`)
	assert.Contains(t, string(out), "var top = expr.Float(math.Inf(1))")
}

func TestFile_Warnings(t *testing.T) {
	file, err := File("gen", []Var{{Name: "g", Expr: expr.NewYield(expr.NewName("x"))}})
	require.NoError(t, err)

	decs := file.Decls[0].Decorations()
	assert.Equal(t, []string{
		"// WARN: yield expressions are only valid inside a function body",
		"//",
		"// g renders as: (yield x)",
	}, []string(decs.Start))
}

func TestFile_Errors(t *testing.T) {
	x := expr.NewName("x")
	tests := []struct {
		name string
		pkg  string
		vars []Var
	}{
		{
			name: "invalid_package",
			pkg:  "my-pkg",
		},
		{
			name: "duplicate_name",
			pkg:  "gen",
			vars: []Var{{Name: "typeExpr", Expr: x}, {Name: "type", Expr: x}},
		},
		{
			name: "void",
			pkg:  "gen",
			vars: []Var{{Name: "v", Expr: expr.NewBinOp(expr.Add, x, expr.NewVoid())}},
		},
		{
			name: "keyword",
			pkg:  "gen",
			vars: []Var{{Name: "k", Expr: expr.NewKeyword(x, "k")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := File(tt.pkg, tt.vars)
			assert.Error(t, err)
		})
	}

	t.Run("keyword_error_type", func(t *testing.T) {
		_, err := File("gen", []Var{{Name: "s", Expr: expr.NewStarred(x, false)}})
		var target expr.InvalidNodeError
		assert.True(t, errors.As(err, &target))
	})
}
