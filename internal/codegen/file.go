package codegen

import (
	"bytes"
	"fmt"
	"go/token"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/dave/dst/decorator/resolver/guess"
	"github.com/oxgen/pyexpr/expr"
	"github.com/oxgen/pyexpr/internal/comment"
	"github.com/oxgen/pyexpr/internal/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/tools/imports"
)

// Var is a named expression to declare in a generated file.
type Var struct {
	Name     string
	Expr     expr.Expr
	Position string
}

// VariableName returns the Go identifier used for a variable named name.
// Names that are Go keywords, or that would shadow an import of the
// generated file, get an "Expr" suffix.
func VariableName(name string) string {
	if token.IsKeyword(name) || name == "expr" || name == "math" {
		return name + "Expr"
	}
	return name
}

// VarDecl returns a var declaration of v, annotated with the source the
// expression renders as.
func VarDecl(v Var) (*dst.GenDecl, error) {
	switch v.Expr.(type) {
	case *expr.Keyword, *expr.Starred:
		return nil, expr.NewInvalidNodeError(v.Expr.Kind(), "cannot declare an argument outside of a call")
	}

	source, err := expr.Source(v.Expr)
	if err != nil {
		return nil, err
	}
	value, err := Expression(v.Expr)
	if err != nil {
		return nil, err
	}

	decl := &dst.GenDecl{
		Tok: token.VAR,
		Specs: []dst.Spec{
			&dst.ValueSpec{
				Names:  []*dst.Ident{dst.NewIdent(VariableName(v.Name))},
				Values: []dst.Expr{value},
			},
		},
	}
	comment.Source(decl, v.Position, v.Name, source)
	if containsYield(v.Expr) {
		comment.Warn(decl, v.Position, "yield expressions are only valid inside a function body")
	}
	util.LogNode("pyexpr::codegen::VarDecl; built declaration", decl, log.Fields{"var": v.Name, "position": v.Position})
	return decl, nil
}

func containsYield(e expr.Expr) bool {
	switch e.(type) {
	case *expr.Yield, *expr.YieldFrom:
		return true
	}
	for _, child := range expr.Children(e) {
		if containsYield(child) {
			return true
		}
	}
	return false
}

// File returns a Go file in package pkgName declaring one variable per entry
// of vars, in order.
func File(pkgName string, vars []Var) (*dst.File, error) {
	if !token.IsIdentifier(pkgName) {
		return nil, fmt.Errorf("invalid package name %q", pkgName)
	}

	file := &dst.File{
		Name: dst.NewIdent(pkgName),
	}
	file.Decs.Start.Append(GeneratedHeader)

	declared := map[string]string{}
	for _, v := range vars {
		goName := VariableName(v.Name)
		if !token.IsIdentifier(goName) {
			return nil, fmt.Errorf("%s: %q is not a valid Go identifier", v.Position, v.Name)
		}
		if previous, ok := declared[goName]; ok {
			return nil, fmt.Errorf("%s: %q and %q are both declared as %s", v.Position, previous, v.Name, goName)
		}
		declared[goName] = v.Name

		decl, err := VarDecl(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", v.Position, v.Name, err)
		}
		file.Decls = append(file.Decls, decl)
	}
	SpaceDeclarations(file.Decls...)

	log.WithFields(log.Fields{"package": pkgName, "vars": len(vars)}).Debug("pyexpr::codegen::File; generated file")
	return file, nil
}

// Print renders file as formatted Go source. The filename is only used for
// error messages.
func Print(filename string, file *dst.File) ([]byte, error) {
	restorer := decorator.NewRestorerWithImports("", guess.New())
	buf := bytes.NewBuffer([]byte{})
	if err := restorer.Fprint(buf, file); err != nil {
		return nil, fmt.Errorf("error printing %s: %w", filename, err)
	}

	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error formatting %s: %w", filename, err)
	}
	return out, nil
}
