package codegen

import (
	"github.com/dave/dst"
)

// SpaceDeclarations modifies the formatting of a set of declarations so that
// each one starts on its own line, separated from the previous one by an
// empty line.
func SpaceDeclarations(decls ...dst.Decl) {
	for _, decl := range decls {
		decs := decl.Decorations()
		decs.Before = dst.EmptyLine
		decs.After = dst.NewLine
	}
}
