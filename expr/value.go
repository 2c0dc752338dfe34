package expr

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// NoneType is the type of the None literal.
type NoneType struct{}

// EllipsisType is the type of the Ellipsis (...) literal.
type EllipsisType struct{}

var (
	None     = NoneType{}
	Ellipsis = EllipsisType{}
)

// IsLiteral reports whether v is one of the primitive kinds an Atom can hold,
// after normalization of Go numeric types.
func IsLiteral(v any) bool {
	switch normalizeLiteral(v).(type) {
	case NoneType, EllipsisType, bool, *big.Int, float64, complex128, string, []byte:
		return true
	}
	return false
}

// normalizeLiteral maps Go numeric kinds onto the canonical literal
// representation. Values that are not literals are returned unchanged.
func normalizeLiteral(v any) any {
	switch v := v.(type) {
	case nil:
		return None
	case int:
		return big.NewInt(int64(v))
	case int8:
		return big.NewInt(int64(v))
	case int16:
		return big.NewInt(int64(v))
	case int32:
		return big.NewInt(int64(v))
	case int64:
		return big.NewInt(v)
	case uint:
		return new(big.Int).SetUint64(uint64(v))
	case uint8:
		return big.NewInt(int64(v))
	case uint16:
		return big.NewInt(int64(v))
	case uint32:
		return big.NewInt(int64(v))
	case uint64:
		return new(big.Int).SetUint64(v)
	case big.Int:
		return new(big.Int).Set(&v)
	case float32:
		return float64(v)
	case complex64:
		return complex128(v)
	}
	return v
}

// isNumeric reports whether v is an int, float or complex literal. Booleans
// are not numeric for rendering purposes.
func isNumeric(v any) bool {
	switch v.(type) {
	case *big.Int, float64, complex128:
		return true
	}
	return false
}

// isNegative reports whether v is a numeric literal rendered with a leading minus.
func isNegative(v any) bool {
	switch v := v.(type) {
	case *big.Int:
		return v.Sign() < 0
	case float64:
		return math.Signbit(v)
	case complex128:
		return real(v) == 0 && !math.Signbit(real(v)) && math.Signbit(imag(v))
	}
	return false
}

// truthy implements the truth value of a literal.
func truthy(v any) bool {
	switch v := v.(type) {
	case NoneType:
		return false
	case EllipsisType:
		return true
	case bool:
		return v
	case *big.Int:
		return v.Sign() != 0
	case float64:
		return v != 0
	case complex128:
		return v != 0
	case string:
		return v != ""
	case []byte:
		return len(v) != 0
	}
	return true
}

// literalSource returns the canonical source text of a literal value.
func literalSource(v any) string {
	switch v := v.(type) {
	case NoneType:
		return "None"
	case EllipsisType:
		return "..."
	case bool:
		if v {
			return "True"
		}
		return "False"
	case *big.Int:
		return v.String()
	case float64:
		return floatSource(v)
	case complex128:
		return complexSource(v)
	case string:
		return quoteString(v)
	case []byte:
		return quoteBytes(v)
	}
	return fmt.Sprintf("%v", v)
}

// floatSource formats f with the shortest representation that round trips,
// switching to exponent notation outside [1e-4, 1e16).
func floatSource(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "float('inf')"
	case math.IsInf(f, -1):
		return "-float('inf')"
	case math.IsNaN(f):
		return "float('nan')"
	}
	s := shortFloat(f)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// shortFloat is floatSource without the trailing ".0" on integral values.
func shortFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return floatSource(f)
	}
	if f == 0 {
		if math.Signbit(f) {
			return "-0"
		}
		return "0"
	}
	exp := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exponent, _ := strings.Cut(exp, "e")
	e, _ := strconv.Atoi(exponent)
	if e >= -4 && e < 16 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	sign := "+"
	if e < 0 {
		sign = "-"
		e = -e
	}
	return fmt.Sprintf("%se%s%02d", mantissa, sign, e)
}

func complexSource(c complex128) string {
	re, im := real(c), imag(c)
	if re == 0 && !math.Signbit(re) {
		return shortFloat(im) + "j"
	}
	imag := shortFloat(im)
	if !strings.HasPrefix(imag, "-") {
		imag = "+" + imag
	}
	return "(" + shortFloat(re) + imag + "j)"
}

// quoteString quotes s with single quotes unless it contains a single quote
// and no double quotes.
func quoteString(s string) string {
	quote := byte('\'')
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = '"'
	}

	b := strings.Builder{}
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == rune(quote) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

func quoteBytes(data []byte) string {
	quote := byte('\'')
	if strings.Contains(string(data), "'") && !strings.Contains(string(data), `"`) {
		quote = '"'
	}

	b := strings.Builder{}
	b.WriteString("b")
	b.WriteByte(quote)
	for _, c := range data {
		switch {
		case c == quote || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, `\x%02x`, c)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
