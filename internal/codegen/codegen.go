// codegen is a library that creates DST objects rebuilding expression trees through the public
// API of the expr package. This library is a common place for logic around how generated nodes are
// shaped and laid out, as well as how they are annotated. When implementing functions for this
// library, the following rules should apply:
//
// 1. Every call returns freshly allocated DST objects. A node that appears twice in a tree makes
// the restorer panic, so nothing is cached or shared between outputs.
// 2. Generated code must only use exported constructors of the expr package, so that the printed
// file compiles against it without further imports beyond math.
// 3. Please add a comment header about what the output of your function is and what it does. All
// exported functions MUST be documented in way that is compatible with `godoc`.
package codegen

const (
	// the import path of the expr package
	ExprImportPath string = "github.com/oxgen/pyexpr/expr"

	// GeneratedHeader marks generated files for tools and reviewers.
	GeneratedHeader string = "// Code generated by pyexpr gogen. DO NOT EDIT."
)
