package expr

import (
	"bytes"
	"math"
	"math/big"
	"reflect"
)

// Equal reports whether a and b are structurally identical trees. Atoms are
// equal when they hold the same literal of the same type; float atoms compare
// by bit pattern, so NaN equals itself.
func Equal(a, b Expr) bool {
	if IsVoid(a) && IsVoid(b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	switch a := a.(type) {
	case *Atom:
		return atomValueEqual(a.Value, b.(*Atom).Value)
	case *Name:
		return a.Identifier == b.(*Name).Identifier
	case *UnaryOp:
		b := b.(*UnaryOp)
		return a.Op == b.Op && Equal(a.Operand, b.Operand)
	case *BinOp:
		b := b.(*BinOp)
		return a.Op == b.Op && Equal(a.LHS, b.LHS) && Equal(a.RHS, b.RHS)
	case *GetAttr:
		b := b.(*GetAttr)
		return a.Attr == b.Attr && Equal(a.Base, b.Base)
	case *Starred:
		b := b.(*Starred)
		return a.Double == b.Double && Equal(a.Value, b.Value)
	case *Keyword:
		b := b.(*Keyword)
		return a.Name == b.Name && Equal(a.Value, b.Value)
	case *Lambda:
		b := b.(*Lambda)
		if a.Vararg != b.Vararg || a.HasKwarg != b.HasKwarg {
			return false
		}
	}

	ac, bc := Children(a), Children(b)
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

func atomValueEqual(a, b any) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	switch a := a.(type) {
	case *big.Int:
		return a.Cmp(b.(*big.Int)) == 0
	case float64:
		return math.Float64bits(a) == math.Float64bits(b.(float64))
	case complex128:
		c := b.(complex128)
		return math.Float64bits(real(a)) == math.Float64bits(real(c)) &&
			math.Float64bits(imag(a)) == math.Float64bits(imag(c))
	case []byte:
		return bytes.Equal(a, b.([]byte))
	default:
		return a == b
	}
}
