package expr

import (
	"errors"
	"fmt"
)

// Fold rebuilds e from children, which replace the node's children in the
// order Children returns them. A child is either an Expr or a literal host
// value.
//
// And, Or, UnaryOp, BinOp and Ternary nodes whose children are all literal
// values are evaluated and the result goes through ToExpr, so a folded string
// becomes a Name. In every other case a new node of the same variant is built
// over the given children, with literal values wrapped in atoms. Fold never
// modifies e.
func Fold(e Expr, children ...any) (Expr, error) {
	return fold(e, children, ToExpr)
}

// fold is Fold with the conversion of evaluated results left to result.
func fold(e Expr, children []any, result Converter) (Expr, error) {
	switch n := e.(type) {
	case *Atom:
		if err := checkArity(n, children, 1); err != nil {
			return nil, err
		}
		if _, isExpr := children[0].(Expr); isExpr || !IsLiteral(children[0]) {
			return nil, NewFoldTypeError(children[0])
		}
		return NewAtom(children[0])
	case *Name:
		if err := checkArity(n, children, 1); err != nil {
			return nil, err
		}
		return ToExpr(children[0])
	case *Void:
		if err := checkArity(n, children, 0); err != nil {
			return nil, err
		}
		return NewVoid(), nil
	case *And:
		if err := checkArity(n, children, 2); err != nil {
			return nil, err
		}
		if allLiteral(children) {
			if truthy(normalizeLiteral(children[0])) {
				return result(normalizeLiteral(children[1]))
			}
			return result(normalizeLiteral(children[0]))
		}
		kids, err := rebuildChildren(children)
		if err != nil {
			return nil, err
		}
		return NewAnd(kids[0], kids[1]), nil
	case *Or:
		if err := checkArity(n, children, 2); err != nil {
			return nil, err
		}
		if allLiteral(children) {
			if truthy(normalizeLiteral(children[0])) {
				return result(normalizeLiteral(children[0]))
			}
			return result(normalizeLiteral(children[1]))
		}
		kids, err := rebuildChildren(children)
		if err != nil {
			return nil, err
		}
		return NewOr(kids[0], kids[1]), nil
	case *UnaryOp:
		if err := checkArity(n, children, 1); err != nil {
			return nil, err
		}
		if allLiteral(children) {
			value, err := n.Op.Apply(children[0])
			if err != nil {
				return nil, err
			}
			return result(value)
		}
		kids, err := rebuildChildren(children)
		if err != nil {
			return nil, err
		}
		return NewUnaryOp(n.Op, kids[0]), nil
	case *BinOp:
		if err := checkArity(n, children, 2); err != nil {
			return nil, err
		}
		if allLiteral(children) {
			value, err := n.Op.Apply(children[0], children[1])
			if err != nil {
				return nil, err
			}
			return result(value)
		}
		kids, err := rebuildChildren(children)
		if err != nil {
			return nil, err
		}
		return NewBinOp(n.Op, kids[0], kids[1]), nil
	case *Ternary:
		if err := checkArity(n, children, 3); err != nil {
			return nil, err
		}
		if allLiteral(children) {
			if truthy(normalizeLiteral(children[0])) {
				return result(normalizeLiteral(children[1]))
			}
			return result(normalizeLiteral(children[2]))
		}
		kids, err := rebuildChildren(children)
		if err != nil {
			return nil, err
		}
		return NewTernary(kids[0], kids[1], kids[2]), nil
	case *GetAttr:
		if err := checkArity(n, children, 1); err != nil {
			return nil, err
		}
		kids, err := rebuildChildren(children)
		if err != nil {
			return nil, err
		}
		return NewGetAttr(kids[0], n.Attr), nil
	case *Call:
		if err := checkArity(n, children, len(n.Args)+1); err != nil {
			return nil, err
		}
		kids, err := rebuildChildren(children)
		if err != nil {
			return nil, err
		}
		return &Call{Callee: kids[0], Args: kids[1:]}, nil
	case *Starred:
		if err := checkArity(n, children, 1); err != nil {
			return nil, err
		}
		kids, err := rebuildChildren(children)
		if err != nil {
			return nil, err
		}
		return NewStarred(kids[0], n.Double), nil
	case *Keyword:
		if err := checkArity(n, children, 1); err != nil {
			return nil, err
		}
		kids, err := rebuildChildren(children)
		if err != nil {
			return nil, err
		}
		return NewKeyword(kids[0], n.Name), nil
	case *Lambda:
		if err := checkArity(n, children, len(n.Params)+1); err != nil {
			return nil, err
		}
		kids, err := rebuildChildren(children)
		if err != nil {
			return nil, err
		}
		params := make([]*ArgDef, len(n.Params))
		for i, kid := range kids[:len(n.Params)] {
			param, ok := kid.(*ArgDef)
			if !ok {
				return nil, NewInvalidNodeError(LambdaKind, fmt.Sprintf("parameter %d must be an ArgDef, got %s", i, kid.Kind()))
			}
			params[i] = param
		}
		return NewLambda(params, kids[len(n.Params)], n.Vararg, n.HasKwarg), nil
	case *ArgDef:
		if err := checkArity(n, children, 3); err != nil {
			return nil, err
		}
		kids, err := rebuildChildren(children)
		if err != nil {
			return nil, err
		}
		return NewArgDef(kids[0], kids[1], kids[2]), nil
	case *Yield:
		if err := checkArity(n, children, 1); err != nil {
			return nil, err
		}
		kids, err := rebuildChildren(children)
		if err != nil {
			return nil, err
		}
		return NewYield(kids[0]), nil
	case *YieldFrom:
		if err := checkArity(n, children, 1); err != nil {
			return nil, err
		}
		kids, err := rebuildChildren(children)
		if err != nil {
			return nil, err
		}
		return NewYieldFrom(kids[0]), nil
	}
	return nil, fmt.Errorf("cannot fold %T", e)
}

func checkArity(e Expr, children []any, want int) error {
	if len(children) != want {
		return NewInvalidNodeError(e.Kind(), fmt.Sprintf("fold expects %d children, got %d", want, len(children)))
	}
	return nil
}

func allLiteral(children []any) bool {
	for _, child := range children {
		if _, isExpr := child.(Expr); isExpr || !IsLiteral(child) {
			return false
		}
	}
	return true
}

func rebuildChildren(children []any) ([]Expr, error) {
	kids := make([]Expr, len(children))
	for i, child := range children {
		var kid Expr
		var err error
		if IsLiteral(child) {
			kid, err = NewAtom(child)
		} else {
			kid, err = ToExpr(child)
		}
		if err != nil {
			return nil, err
		}
		kids[i] = kid
	}
	return kids, nil
}

// Simplify folds e bottom up. Children are simplified first; whenever all the
// children of an And, Or, UnaryOp, BinOp or Ternary reduce to atoms, the node
// is evaluated. Unlike Fold, evaluated strings stay string atoms, so the
// simplified tree renders the same value. Nodes whose evaluation fails with an
// OperationError, like a division by zero, are kept unevaluated.
func Simplify(e Expr) (Expr, error) {
	switch e.(type) {
	case *Atom, *Name, *Void:
		return e, nil
	}

	kids := Children(e)
	simplified := make([]any, len(kids))
	literals := make([]any, len(kids))
	static := true
	for i, kid := range kids {
		s, err := Simplify(kid)
		if err != nil {
			return nil, err
		}
		simplified[i] = s
		if atom, ok := s.(*Atom); ok {
			literals[i] = atom.Value
		} else {
			static = false
		}
	}

	switch e.(type) {
	case *And, *Or, *UnaryOp, *BinOp, *Ternary:
		if static {
			folded, err := fold(e, literals, literalExpr)
			var opErr OperationError
			if errors.As(err, &opErr) {
				return Fold(e, simplified...)
			}
			return folded, err
		}
	}
	return Fold(e, simplified...)
}
