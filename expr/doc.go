// expr builds, simplifies and renders expression trees for Python source code.
// Callers assemble trees out of literal atoms, names, operators, calls and
// lambdas, and the package turns them into syntactically valid source text
// with the minimum amount of parentheses needed to preserve grouping.
//
// The node set is closed: every node is one of the pointer types declared in
// nodes.go, and rendering, folding and wrapping decisions are exhaustive type
// switches over that set. The only open extension point is the coercion
// registry, which teaches ToExpr how to embed new host value types.
//
// The following rules apply to everything in this package:
//
// 1. Nodes are immutable once constructed. Operations that "modify" a node,
// like folding or appending call arguments, return a new node instead. Never
// write to the exported fields of a node that is already part of a tree.
// 2. A tree never shares nodes between parents and never contains cycles.
// 3. Rendering is pure, so the same tree may be rendered any number of times,
// from any number of goroutines.
package expr
