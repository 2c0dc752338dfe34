package expr

import (
	"bytes"
	"fmt"
	"math"
	"math/big"
	"math/cmplx"
	"strings"
)

const (
	// maxFoldedLength bounds the size of sequences produced by folding.
	maxFoldedLength = 1 << 20

	// maxFoldedBits bounds the size of integers produced by shifts and powers.
	maxFoldedBits = 1 << 16
)

// literal number ranks of the numeric tower
const (
	notNumber = iota
	intRank
	floatRank
	complexRank
)

func numberRank(v any) int {
	switch v.(type) {
	case bool, *big.Int:
		return intRank
	case float64:
		return floatRank
	case complex128:
		return complexRank
	}
	return notNumber
}

func literalTypeName(v any) string {
	switch v.(type) {
	case NoneType:
		return "NoneType"
	case EllipsisType:
		return "ellipsis"
	case bool:
		return "bool"
	case *big.Int:
		return "int"
	case float64:
		return "float"
	case complex128:
		return "complex"
	case string:
		return "str"
	case []byte:
		return "bytes"
	}
	return fmt.Sprintf("%T", v)
}

func unsupportedOperands(op BinaryOperator, a, b any) error {
	return NewOperationError(op.Symbol(), fmt.Sprintf("unsupported operand type(s): '%s' and '%s'", literalTypeName(a), literalTypeName(b)))
}

func toInt(v any) *big.Int {
	switch v := v.(type) {
	case bool:
		if v {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	case *big.Int:
		return v
	}
	return nil
}

func toFloat(op string, v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case bool, *big.Int:
		f, _ := new(big.Float).SetInt(toInt(v)).Float64()
		if math.IsInf(f, 0) {
			return 0, NewOperationError(op, "int too large to convert to float")
		}
		return f, nil
	}
	return 0, NewOperationError(op, fmt.Sprintf("'%s' is not a number", literalTypeName(v)))
}

func toComplex(op string, v any) (complex128, error) {
	if c, ok := v.(complex128); ok {
		return c, nil
	}
	f, err := toFloat(op, v)
	if err != nil {
		return 0, err
	}
	return complex(f, 0), nil
}

func evalUnary(op UnaryOperator, v any) (any, error) {
	if !IsLiteral(v) {
		return nil, NewOperationError(op.Symbol(), fmt.Sprintf("not a literal: %T", v))
	}
	if op == Not {
		return !truthy(v), nil
	}

	bad := NewOperationError(op.Symbol(), fmt.Sprintf("bad operand type for unary %s: '%s'", op.Symbol(), literalTypeName(v)))
	switch v := v.(type) {
	case bool, *big.Int:
		i := toInt(v)
		switch op {
		case UAdd:
			return new(big.Int).Set(i), nil
		case USub:
			return new(big.Int).Neg(i), nil
		case Invert:
			return new(big.Int).Not(i), nil
		}
	case float64:
		switch op {
		case UAdd:
			return v, nil
		case USub:
			return -v, nil
		}
	case complex128:
		switch op {
		case UAdd:
			return v, nil
		case USub:
			return -v, nil
		}
	}
	return nil, bad
}

func evalBinary(op BinaryOperator, a, b any) (any, error) {
	if !IsLiteral(a) || !IsLiteral(b) {
		return nil, NewOperationError(op.Symbol(), fmt.Sprintf("not a literal: %T, %T", a, b))
	}

	switch op {
	case BoolOr:
		if truthy(a) {
			return a, nil
		}
		return b, nil
	case BoolAnd:
		if truthy(a) {
			return b, nil
		}
		return a, nil
	case Eq:
		return literalEqual(a, b), nil
	case NotEq:
		return !literalEqual(a, b), nil
	case Lt, LtE, Gt, GtE:
		return literalOrder(op, a, b)
	case Is, IsNot:
		same, err := literalIdentity(op, a, b)
		if err != nil {
			return nil, err
		}
		return same == (op == Is), nil
	case In, NotIn:
		contains, err := literalContains(op, a, b)
		if err != nil {
			return nil, err
		}
		return contains == (op == In), nil
	case BitOr, BitXor, BitAnd:
		return evalBitwise(op, a, b)
	case LShift, RShift:
		return evalShift(op, a, b)
	case Add, Sub, Mul, Div, Mod, FloorDiv, Pow:
		if numberRank(a) != notNumber && numberRank(b) != notNumber {
			return evalArithmetic(op, a, b)
		}
		return evalSequence(op, a, b)
	}
	return nil, unsupportedOperands(op, a, b)
}

func literalEqual(a, b any) bool {
	ra, rb := numberRank(a), numberRank(b)
	if ra != notNumber && rb != notNumber {
		switch max(ra, rb) {
		case intRank:
			return toInt(a).Cmp(toInt(b)) == 0
		case floatRank:
			return numberCompare(a, b) == 0
		default:
			ca, errA := toComplex("==", a)
			cb, errB := toComplex("==", b)
			return errA == nil && errB == nil && ca == cb
		}
	}

	switch a := a.(type) {
	case NoneType:
		_, ok := b.(NoneType)
		return ok
	case EllipsisType:
		_, ok := b.(EllipsisType)
		return ok
	case string:
		s, ok := b.(string)
		return ok && a == s
	case []byte:
		s, ok := b.([]byte)
		return ok && bytes.Equal(a, s)
	}
	return false
}

// numberCompare compares two non complex numbers exactly. NaN compares as 2.
func numberCompare(a, b any) int {
	fa, fb := bigFloat(a), bigFloat(b)
	if fa == nil || fb == nil {
		return 2
	}
	return fa.Cmp(fb)
}

func bigFloat(v any) *big.Float {
	switch v := v.(type) {
	case bool, *big.Int:
		return new(big.Float).SetInt(toInt(v))
	case float64:
		if math.IsNaN(v) {
			return nil
		}
		return new(big.Float).SetFloat64(v)
	}
	return nil
}

func literalOrder(op BinaryOperator, a, b any) (any, error) {
	var c int
	ra, rb := numberRank(a), numberRank(b)
	switch {
	case ra != notNumber && rb != notNumber && ra != complexRank && rb != complexRank:
		c = numberCompare(a, b)
		if c == 2 {
			return false, nil
		}
	case literalTypeName(a) == "str" && literalTypeName(b) == "str":
		c = strings.Compare(a.(string), b.(string))
	case literalTypeName(a) == "bytes" && literalTypeName(b) == "bytes":
		c = bytes.Compare(a.([]byte), b.([]byte))
	default:
		return nil, NewOperationError(op.Symbol(), fmt.Sprintf("'%s' not supported between instances of '%s' and '%s'", op.Symbol(), literalTypeName(a), literalTypeName(b)))
	}

	switch op {
	case Lt:
		return c < 0, nil
	case LtE:
		return c <= 0, nil
	case Gt:
		return c > 0, nil
	default:
		return c >= 0, nil
	}
}

// literalIdentity decides "is" for singletons. Identity of other literals
// depends on the runtime and cannot be folded.
func literalIdentity(op BinaryOperator, a, b any) (bool, error) {
	singleton := func(v any) bool {
		switch v.(type) {
		case NoneType, EllipsisType, bool:
			return true
		}
		return false
	}
	if !singleton(a) && !singleton(b) {
		return false, NewOperationError(op.Symbol(), "identity of non singleton literals is not statically known")
	}
	if literalTypeName(a) != literalTypeName(b) {
		return false, nil
	}
	return literalEqual(a, b), nil
}

func literalContains(op BinaryOperator, item, container any) (bool, error) {
	switch c := container.(type) {
	case string:
		s, ok := item.(string)
		if !ok {
			return false, NewOperationError(op.Symbol(), fmt.Sprintf("'in <string>' requires string as left operand, not %s", literalTypeName(item)))
		}
		return strings.Contains(c, s), nil
	case []byte:
		switch s := item.(type) {
		case []byte:
			return bytes.Contains(c, s), nil
		case *big.Int:
			if !s.IsInt64() || s.Int64() < 0 || s.Int64() > 255 {
				return false, NewOperationError(op.Symbol(), "byte must be in range(0, 256)")
			}
			return bytes.IndexByte(c, byte(s.Int64())) >= 0, nil
		}
		return false, NewOperationError(op.Symbol(), fmt.Sprintf("a bytes-like object is required, not '%s'", literalTypeName(item)))
	}
	return false, NewOperationError(op.Symbol(), fmt.Sprintf("argument of type '%s' is not iterable", literalTypeName(container)))
}

func evalBitwise(op BinaryOperator, a, b any) (any, error) {
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch op {
			case BitOr:
				return ba || bb, nil
			case BitXor:
				return ba != bb, nil
			default:
				return ba && bb, nil
			}
		}
	}

	x, y := toInt(a), toInt(b)
	if x == nil || y == nil {
		return nil, unsupportedOperands(op, a, b)
	}
	switch op {
	case BitOr:
		return new(big.Int).Or(x, y), nil
	case BitXor:
		return new(big.Int).Xor(x, y), nil
	default:
		return new(big.Int).And(x, y), nil
	}
}

func evalShift(op BinaryOperator, a, b any) (any, error) {
	x, y := toInt(a), toInt(b)
	if x == nil || y == nil {
		return nil, unsupportedOperands(op, a, b)
	}
	if y.Sign() < 0 {
		return nil, NewOperationError(op.Symbol(), "negative shift count")
	}
	if op == RShift {
		if !y.IsInt64() || y.Int64() > int64(x.BitLen()) {
			if x.Sign() < 0 {
				return big.NewInt(-1), nil
			}
			return big.NewInt(0), nil
		}
		return new(big.Int).Rsh(x, uint(y.Int64())), nil
	}
	if !y.IsInt64() || y.Int64()+int64(x.BitLen()) > maxFoldedBits {
		return nil, NewOperationError(op.Symbol(), "result too large to fold")
	}
	return new(big.Int).Lsh(x, uint(y.Int64())), nil
}

func evalArithmetic(op BinaryOperator, a, b any) (any, error) {
	switch max(numberRank(a), numberRank(b)) {
	case intRank:
		return intArithmetic(op, toInt(a), toInt(b))
	case floatRank:
		x, err := toFloat(op.Symbol(), a)
		if err != nil {
			return nil, err
		}
		y, err := toFloat(op.Symbol(), b)
		if err != nil {
			return nil, err
		}
		return floatArithmetic(op, x, y)
	default:
		x, err := toComplex(op.Symbol(), a)
		if err != nil {
			return nil, err
		}
		y, err := toComplex(op.Symbol(), b)
		if err != nil {
			return nil, err
		}
		return complexArithmetic(op, x, y)
	}
}

func intArithmetic(op BinaryOperator, x, y *big.Int) (any, error) {
	switch op {
	case Add:
		return new(big.Int).Add(x, y), nil
	case Sub:
		return new(big.Int).Sub(x, y), nil
	case Mul:
		if x.BitLen()+y.BitLen() > maxFoldedBits {
			return nil, NewOperationError(op.Symbol(), "result too large to fold")
		}
		return new(big.Int).Mul(x, y), nil
	case Div:
		if y.Sign() == 0 {
			return nil, NewOperationError(op.Symbol(), "division by zero")
		}
		f, _ := new(big.Rat).SetFrac(x, y).Float64()
		if math.IsInf(f, 0) {
			return nil, NewOperationError(op.Symbol(), "integer division result too large for a float")
		}
		return f, nil
	case FloorDiv, Mod:
		if y.Sign() == 0 {
			return nil, NewOperationError(op.Symbol(), "integer division or modulo by zero")
		}
		q, m := floorDivMod(x, y)
		if op == FloorDiv {
			return q, nil
		}
		return m, nil
	case Pow:
		if y.Sign() < 0 {
			fx, err := toFloat(op.Symbol(), x)
			if err != nil {
				return nil, err
			}
			fy, err := toFloat(op.Symbol(), y)
			if err != nil {
				return nil, err
			}
			return floatArithmetic(op, fx, fy)
		}
		if x.BitLen() > 1 && (!y.IsInt64() || int64(x.BitLen())*y.Int64() > maxFoldedBits) {
			return nil, NewOperationError(op.Symbol(), "result too large to fold")
		}
		return new(big.Int).Exp(x, y, nil), nil
	}
	return nil, unsupportedOperands(op, x, y)
}

// floorDivMod divides rounding towards negative infinity, so the modulo takes
// the sign of the divisor.
func floorDivMod(x, y *big.Int) (*big.Int, *big.Int) {
	q, m := new(big.Int).DivMod(x, y, new(big.Int))
	if y.Sign() < 0 && m.Sign() != 0 {
		q.Sub(q, big.NewInt(1))
		m.Add(m, y)
	}
	return q, m
}

func floatArithmetic(op BinaryOperator, x, y float64) (any, error) {
	switch op {
	case Add:
		return x + y, nil
	case Sub:
		return x - y, nil
	case Mul:
		return x * y, nil
	case Div:
		if y == 0 {
			return nil, NewOperationError(op.Symbol(), "float division by zero")
		}
		return x / y, nil
	case FloorDiv, Mod:
		if y == 0 {
			return nil, NewOperationError(op.Symbol(), "float floor division by zero")
		}
		div, mod := floatDivMod(x, y)
		if op == FloorDiv {
			return div, nil
		}
		return mod, nil
	case Pow:
		if x == 0 && y < 0 {
			return nil, NewOperationError(op.Symbol(), "0.0 cannot be raised to a negative power")
		}
		if x < 0 && y != math.Trunc(y) {
			return cmplx.Pow(complex(x, 0), complex(y, 0)), nil
		}
		return math.Pow(x, y), nil
	}
	return nil, unsupportedOperands(op, x, y)
}

func floatDivMod(x, y float64) (float64, float64) {
	mod := math.Mod(x, y)
	div := (x - mod) / y
	if mod != 0 {
		if (y < 0) != (mod < 0) {
			mod += y
			div -= 1
		}
	} else {
		mod = math.Copysign(0, y)
	}
	if div != 0 {
		floor := math.Floor(div)
		if div-floor > 0.5 {
			floor += 1
		}
		div = floor
	} else {
		div = math.Copysign(0, x/y)
	}
	return div, mod
}

func complexArithmetic(op BinaryOperator, x, y complex128) (any, error) {
	switch op {
	case Add:
		return x + y, nil
	case Sub:
		return x - y, nil
	case Mul:
		return x * y, nil
	case Div:
		if y == 0 {
			return nil, NewOperationError(op.Symbol(), "complex division by zero")
		}
		return x / y, nil
	case Pow:
		if x == 0 && (real(y) < 0 || imag(y) != 0) {
			return nil, NewOperationError(op.Symbol(), "0.0 to a negative or complex power")
		}
		return cmplx.Pow(x, y), nil
	}
	return nil, NewOperationError(op.Symbol(), "unsupported operand type(s) for complex numbers")
}

func evalSequence(op BinaryOperator, a, b any) (any, error) {
	switch op {
	case Add:
		switch x := a.(type) {
		case string:
			if y, ok := b.(string); ok {
				return x + y, nil
			}
		case []byte:
			if y, ok := b.([]byte); ok {
				return append(append([]byte{}, x...), y...), nil
			}
		}
	case Mul:
		seq, count := a, b
		if numberRank(a) == intRank {
			seq, count = b, a
		}
		n := toInt(count)
		if n == nil {
			break
		}
		times := 0
		if n.Sign() > 0 {
			if !n.IsInt64() || n.Int64() > maxFoldedLength || n.Int64()*int64(sequenceLen(seq)) > maxFoldedLength {
				return nil, NewOperationError(op.Symbol(), "result too large to fold")
			}
			times = int(n.Int64())
		}
		switch s := seq.(type) {
		case string:
			return strings.Repeat(s, times), nil
		case []byte:
			return bytes.Repeat(s, times), nil
		}
	case Mod:
		if _, ok := a.(string); ok {
			return nil, NewOperationError(op.Symbol(), "string formatting is not folded")
		}
		if _, ok := a.([]byte); ok {
			return nil, NewOperationError(op.Symbol(), "bytes formatting is not folded")
		}
	}
	return nil, unsupportedOperands(op, a, b)
}

func sequenceLen(v any) int {
	switch v := v.(type) {
	case string:
		return len(v)
	case []byte:
		return len(v)
	}
	return 0
}
