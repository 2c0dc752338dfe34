package expr

import (
	"fmt"
	"strings"
)

// ArgKind tags an Arg.
type ArgKind uint8

const (
	PositionalArg ArgKind = iota
	StarArg
	DoubleStarArg
	KeywordArg
)

func (k ArgKind) String() string {
	switch k {
	case PositionalArg:
		return "positional"
	case StarArg:
		return "star"
	case DoubleStarArg:
		return "double star"
	case KeywordArg:
		return "keyword"
	default:
		return "unknown"
	}
}

// Arg is one input to the call argument builder. Name is only set for
// keyword arguments.
type Arg struct {
	Kind  ArgKind
	Name  string
	Value Expr
}

// Positional creates a plain positional argument.
func Positional(value Expr) Arg {
	return Arg{Kind: PositionalArg, Value: value}
}

// Star creates a *value argument.
func Star(value Expr) Arg {
	return Arg{Kind: StarArg, Value: value}
}

// StarName creates a *name argument.
func StarName(name string) Arg {
	return Star(NewName(name))
}

// DoubleStar creates a **value argument.
func DoubleStar(value Expr) Arg {
	return Arg{Kind: DoubleStarArg, Value: value}
}

// DoubleStarName creates a **name argument.
func DoubleStarName(name string) Arg {
	return DoubleStar(NewName(name))
}

// Kw creates a name=value argument.
func Kw(name string, value Expr) Arg {
	return Arg{Kind: KeywordArg, Name: name, Value: value}
}

// ParseArgs converts the loose argument form into Args. Accepted values are:
//
//   - an Expr, used as a positional argument
//   - "*" or "**" followed by an Expr, which is starred
//   - "*name" or "**name", shorthand for a starred Name
//   - an Arg, used as is
func ParseArgs(values ...any) ([]Arg, error) {
	args := make([]Arg, 0, len(values))
	for i := 0; i < len(values); i++ {
		switch v := values[i].(type) {
		case Arg:
			args = append(args, v)
		case Expr:
			args = append(args, Positional(v))
		case string:
			if v != "*" && v != "**" {
				var name string
				switch {
				case strings.HasPrefix(v, "**"):
					name = v[2:]
				case strings.HasPrefix(v, "*"):
					name = v[1:]
				default:
					return nil, NewArgumentTypeError(v)
				}
				if err := CheckName(name); err != nil {
					return nil, ArgumentTypeError{Value: v, Message: fmt.Sprintf("invalid starred argument %q: %v", v, err)}
				}
				if strings.HasPrefix(v, "**") {
					args = append(args, DoubleStarName(name))
				} else {
					args = append(args, StarName(name))
				}
				continue
			}

			if i+1 >= len(values) {
				return nil, ArgumentTypeError{Message: "expect expression after " + v}
			}
			i++
			value, ok := values[i].(Expr)
			if !ok {
				return nil, NewArgumentTypeError(values[i])
			}
			if v == "*" {
				args = append(args, Star(value))
			} else {
				args = append(args, DoubleStar(value))
			}
		default:
			return nil, NewArgumentTypeError(v)
		}
	}
	return args, nil
}

// BuildArguments validates args and returns the argument nodes of a call in
// order.
func BuildArguments(args ...Arg) ([]Expr, error) {
	return generateArgs(nil, args)
}

// generateArgs appends args to existing. Ordering is checked across both
// lists so extending a call that already ends in keywords is rejected the
// same way as building it in one go.
func generateArgs(existing []Expr, args []Arg) ([]Expr, error) {
	seenKeyword := false
	for _, e := range existing {
		if isKeywordArgument(e) {
			seenKeyword = true
			break
		}
	}

	result := make([]Expr, len(existing), len(existing)+len(args))
	copy(result, existing)
	for _, arg := range args {
		if IsVoid(arg.Value) {
			return nil, NewInvalidOperandError("call argument")
		}

		var node Expr
		switch arg.Kind {
		case PositionalArg:
			node = arg.Value
		case StarArg:
			node = NewStarred(arg.Value, false)
		case DoubleStarArg:
			node = NewStarred(arg.Value, true)
		case KeywordArg:
			if arg.Name == "" {
				return nil, ArgumentTypeError{Value: arg.Value, Message: "keyword argument without a name"}
			}
			node = NewKeyword(arg.Value, arg.Name)
		default:
			return nil, ArgumentTypeError{Value: arg.Value, Message: "unknown argument kind " + arg.Kind.String()}
		}

		if isKeywordArgument(node) {
			seenKeyword = true
		} else if seenKeyword {
			if s, ok := node.(*Starred); ok && !s.Double {
				return nil, NewArgumentOrderError("iterable argument unpacking follows keyword argument")
			}
			return nil, NewArgumentOrderError("positional argument follows keyword argument")
		}
		result = append(result, node)
	}
	return result, nil
}

// isKeywordArgument reports whether e is a keyword or a double starred
// argument.
func isKeywordArgument(e Expr) bool {
	switch n := e.(type) {
	case *Keyword:
		return true
	case *Starred:
		return n.Double
	}
	return false
}

// NewCall builds a call of callee with the given arguments.
func NewCall(callee Expr, args ...Arg) (*Call, error) {
	if IsVoid(callee) {
		return nil, NewInvalidOperandError("call")
	}
	nodes, err := BuildArguments(args...)
	if err != nil {
		return nil, err
	}
	return &Call{
		Callee: callee,
		Args:   nodes,
	}, nil
}

// MustCall is like NewCall but panics on error.
func MustCall(callee Expr, args ...Arg) *Call {
	c, err := NewCall(callee, args...)
	if err != nil {
		panic(err)
	}
	return c
}

// CallFromArgs builds a call from the loose argument form accepted by
// ParseArgs.
func CallFromArgs(callee Expr, values ...any) (*Call, error) {
	args, err := ParseArgs(values...)
	if err != nil {
		return nil, err
	}
	return NewCall(callee, args...)
}

// AddArgs returns a copy of c with args appended, along with the newly
// created argument nodes. c is left unchanged.
func (c *Call) AddArgs(args ...Arg) (*Call, []Expr, error) {
	nodes, err := generateArgs(c.Args, args)
	if err != nil {
		return nil, nil, err
	}
	return &Call{
		Callee: c.Callee,
		Args:   nodes,
	}, nodes[len(c.Args):], nil
}
