package expr

import (
	"fmt"
	"math/big"
)

// Expr is an expression node. The set of implementations is closed to the
// types declared in this package.
type Expr interface {
	Kind() Kind
	exprNode()
}

// Atom is a literal whose value is known statically.
type Atom struct {
	Value any
}

// NewAtom wraps a literal value. Go integer, float and complex kinds are
// normalized, and nil becomes None.
func NewAtom(value any) (*Atom, error) {
	v := normalizeLiteral(value)
	if !IsLiteral(v) {
		return nil, NewFoldTypeError(value)
	}
	return &Atom{Value: v}, nil
}

// MustAtom is like NewAtom but panics if value is not a literal.
func MustAtom(value any) *Atom {
	a, err := NewAtom(value)
	if err != nil {
		panic(err)
	}
	return a
}

// Int, Float, Complex, Bool, Str and Bytes build atoms of the matching kind.
func Int(i int64) *Atom {
	return &Atom{Value: big.NewInt(i)}
}

func Float(f float64) *Atom {
	return &Atom{Value: f}
}

func Complex(c complex128) *Atom {
	return &Atom{Value: c}
}

func Bool(b bool) *Atom {
	return &Atom{Value: b}
}

func Str(s string) *Atom {
	return &Atom{Value: s}
}

func Bytes(b []byte) *Atom {
	return &Atom{Value: append([]byte{}, b...)}
}

func (*Atom) Kind() Kind { return AtomKind }
func (*Atom) exprNode()  {}

// MustInt parses a base 10 integer of any size. It panics if s is not an integer.
func MustInt(s string) *Atom {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(fmt.Sprintf("invalid integer literal: %q", s))
	}
	return &Atom{Value: i}
}

// Name is a reference to a variable.
type Name struct {
	Identifier string
}

func NewName(identifier string) *Name {
	return &Name{Identifier: identifier}
}

func (*Name) Kind() Kind { return NameKind }
func (*Name) exprNode()  {}

// Void represents the absence of an expression where an optional child is
// expected. Any operation on it fails.
type Void struct{}

func NewVoid() *Void {
	return &Void{}
}

func (*Void) Kind() Kind { return VoidKind }
func (*Void) exprNode()  {}

// IsVoid reports whether e is missing, either as a nil interface or a Void node.
func IsVoid(e Expr) bool {
	if e == nil {
		return true
	}
	_, ok := e.(*Void)
	return ok
}

func orVoid(e Expr) Expr {
	if e == nil {
		return NewVoid()
	}
	return e
}

// And is the short-circuit "and" operator.
type And struct {
	LHS Expr
	RHS Expr
}

func NewAnd(lhs, rhs Expr) *And {
	return &And{LHS: lhs, RHS: rhs}
}

func (*And) Kind() Kind { return AndKind }
func (*And) exprNode()  {}

// Or is the short-circuit "or" operator.
type Or struct {
	LHS Expr
	RHS Expr
}

func NewOr(lhs, rhs Expr) *Or {
	return &Or{LHS: lhs, RHS: rhs}
}

func (*Or) Kind() Kind { return OrKind }
func (*Or) exprNode()  {}

// UnaryOp applies +, -, ~ or not to an operand.
type UnaryOp struct {
	Op      UnaryOperator
	Operand Expr
}

func NewUnaryOp(op UnaryOperator, operand Expr) *UnaryOp {
	return &UnaryOp{Op: op, Operand: operand}
}

func (*UnaryOp) Kind() Kind { return UnaryOpKind }
func (*UnaryOp) exprNode()  {}

// BinOp is an arithmetic, bitwise or comparison operator.
type BinOp struct {
	Op  BinaryOperator
	LHS Expr
	RHS Expr
}

func NewBinOp(op BinaryOperator, lhs, rhs Expr) *BinOp {
	return &BinOp{Op: op, LHS: lhs, RHS: rhs}
}

func (*BinOp) Kind() Kind { return BinOpKind }
func (*BinOp) exprNode()  {}

// Precedence is the precedence level of the node's operator.
func (b *BinOp) Precedence() int {
	return b.Op.Precedence()
}

// GetAttr is an attribute access, <base>.<attr>.
type GetAttr struct {
	Base Expr
	Attr string
}

func NewGetAttr(base Expr, attr string) *GetAttr {
	return &GetAttr{Base: base, Attr: attr}
}

func (*GetAttr) Kind() Kind { return GetAttrKind }
func (*GetAttr) exprNode()  {}

// Call is a function call. Args holds positional expressions, Starred and
// Keyword nodes in source order. Calls are built with NewCall so argument
// ordering is validated.
type Call struct {
	Callee Expr
	Args   []Expr
}

func (*Call) Kind() Kind { return CallKind }
func (*Call) exprNode()  {}

// Starred is *<value>, or **<value> when Double is set. It is only valid as a
// call argument.
type Starred struct {
	Value  Expr
	Double bool
}

func NewStarred(value Expr, double bool) *Starred {
	return &Starred{Value: value, Double: double}
}

func (*Starred) Kind() Kind { return StarredKind }
func (*Starred) exprNode()  {}

// Keyword is a keyword argument, <name>=<value>. It is only valid as a call argument.
type Keyword struct {
	Value Expr
	Name  string
}

func NewKeyword(value Expr, name string) *Keyword {
	return &Keyword{Value: value, Name: name}
}

func (*Keyword) Kind() Kind { return KeywordKind }
func (*Keyword) exprNode()  {}

// Ternary is the conditional expression <then> if <cond> else <else>.
type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
}

func NewTernary(cond, then, other Expr) *Ternary {
	return &Ternary{Cond: cond, Then: then, Else: other}
}

func (*Ternary) Kind() Kind { return TernaryKind }
func (*Ternary) exprNode()  {}

// kwargsName is the name of the keyword parameter a lambda declares when
// HasKwarg is set.
const kwargsName = "kwargs"

// Lambda is an anonymous function. An empty Vararg means there is no *args
// parameter; HasKwarg adds a **kwargs parameter.
type Lambda struct {
	Params   []*ArgDef
	Body     Expr
	Vararg   string
	HasKwarg bool
}

func NewLambda(params []*ArgDef, body Expr, vararg string, hasKwarg bool) *Lambda {
	return &Lambda{
		Params:   append([]*ArgDef{}, params...),
		Body:     body,
		Vararg:   vararg,
		HasKwarg: hasKwarg,
	}
}

func (*Lambda) Kind() Kind { return LambdaKind }
func (*Lambda) exprNode()  {}

// ArgDef declares a parameter. Default and Annotation are Void when absent.
type ArgDef struct {
	Name       Expr
	Default    Expr
	Annotation Expr
}

// NewArgDef declares a parameter. A nil default or annotation becomes Void.
func NewArgDef(name, def, annotation Expr) *ArgDef {
	return &ArgDef{
		Name:       name,
		Default:    orVoid(def),
		Annotation: orVoid(annotation),
	}
}

func (*ArgDef) Kind() Kind { return ArgDefKind }
func (*ArgDef) exprNode()  {}

// Yield is the "(yield <value>)" expression.
type Yield struct {
	Value Expr
}

func NewYield(value Expr) *Yield {
	return &Yield{Value: value}
}

func (*Yield) Kind() Kind { return YieldKind }
func (*Yield) exprNode()  {}

// YieldFrom is the "(yield from <value>)" expression.
type YieldFrom struct {
	Value Expr
}

func NewYieldFrom(value Expr) *YieldFrom {
	return &YieldFrom{Value: value}
}

func (*YieldFrom) Kind() Kind { return YieldFromKind }
func (*YieldFrom) exprNode()  {}

// Children returns the child nodes of e in order. Attributes that are not
// expressions, like GetAttr.Attr or Keyword.Name, are not children.
func Children(e Expr) []Expr {
	switch n := e.(type) {
	case *And:
		return []Expr{n.LHS, n.RHS}
	case *Or:
		return []Expr{n.LHS, n.RHS}
	case *UnaryOp:
		return []Expr{n.Operand}
	case *BinOp:
		return []Expr{n.LHS, n.RHS}
	case *GetAttr:
		return []Expr{n.Base}
	case *Call:
		return append([]Expr{n.Callee}, n.Args...)
	case *Starred:
		return []Expr{n.Value}
	case *Keyword:
		return []Expr{n.Value}
	case *Ternary:
		return []Expr{n.Cond, n.Then, n.Else}
	case *Lambda:
		children := make([]Expr, 0, len(n.Params)+1)
		for _, p := range n.Params {
			children = append(children, p)
		}
		return append(children, n.Body)
	case *ArgDef:
		return []Expr{n.Name, n.Default, n.Annotation}
	case *Yield:
		return []Expr{n.Value}
	case *YieldFrom:
		return []Expr{n.Value}
	}
	return nil
}
