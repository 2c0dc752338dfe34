package expr

import (
	"iter"
	"strings"
)

// PrintContext stores information about the current printing job. Rendering
// passes it to every node without looking at it; statement level printers
// use it to track indentation.
type PrintContext struct {
	IndentLevel int
	Indentation string
}

// NewPrintContext creates a context at the given indentation level.
func NewPrintContext(indent int, indentation string) *PrintContext {
	return &PrintContext{
		IndentLevel: indent,
		Indentation: indentation,
	}
}

// Indent increases the indentation level by n.
func (ctx *PrintContext) Indent(n int) {
	ctx.IndentLevel += n
}

// Dedent decreases the indentation level by n.
func (ctx *PrintContext) Dedent(n int) error {
	if ctx.IndentLevel < n {
		return NewOperationError("dedent", "cannot dedent below zero")
	}
	ctx.IndentLevel -= n
	return nil
}

// StartLine returns the indentation string for the current level.
func (ctx *PrintContext) StartLine() string {
	return strings.Repeat(ctx.Indentation, ctx.IndentLevel)
}

// Tokens returns the source fragments of e. The sequence is lazy and can be
// iterated any number of times. If a Void node is reached, or the tree is
// otherwise unrenderable, the sequence yields a single error and stops.
func Tokens(e Expr, ctx *PrintContext) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		em := &emitter{yield: yield, ctx: ctx}
		em.expr(e)
	}
}

// Source renders e as a string.
func Source(e Expr) (string, error) {
	b := strings.Builder{}
	for tok, err := range Tokens(e, NewPrintContext(0, "    ")) {
		if err != nil {
			return "", err
		}
		b.WriteString(tok)
	}
	return b.String(), nil
}

type emitter struct {
	yield func(string, error) bool
	ctx   *PrintContext
	done  bool
}

func (em *emitter) text(s string) {
	if em.done {
		return
	}
	if !em.yield(s, nil) {
		em.done = true
	}
}

func (em *emitter) fail(err error) {
	if em.done {
		return
	}
	em.yield("", err)
	em.done = true
}

// child renders a child of parent, wrapping it in parentheses when needed.
func (em *emitter) child(parent, child Expr, role Role) {
	wrap := NeedsParens(parent, child, role)
	if wrap {
		em.text("(")
	}
	em.expr(child)
	if wrap {
		em.text(")")
	}
}

func (em *emitter) expr(e Expr) {
	if em.done {
		return
	}

	switch n := e.(type) {
	case nil:
		em.fail(NewInvalidOperandError("render"))
	case *Void:
		em.fail(NewInvalidOperandError("render"))
	case *Atom:
		em.text(literalSource(n.Value))
	case *Name:
		em.text(n.Identifier)
	case *And:
		em.child(n, n.LHS, RoleLHS)
		em.text(" and ")
		em.child(n, n.RHS, RoleRHS)
	case *Or:
		em.child(n, n.LHS, RoleLHS)
		em.text(" or ")
		em.child(n, n.RHS, RoleRHS)
	case *UnaryOp:
		if n.Op == Not {
			em.text("not ")
		} else {
			em.text(n.Op.Symbol())
		}
		em.child(n, n.Operand, RoleOperand)
	case *BinOp:
		em.child(n, n.LHS, RoleLHS)
		em.text(" " + n.Op.Symbol() + " ")
		em.child(n, n.RHS, RoleRHS)
	case *GetAttr:
		em.child(n, n.Base, RoleBase)
		em.text(".")
		em.text(n.Attr)
	case *Call:
		em.child(n, n.Callee, RoleCallee)
		em.text("(")
		for i, arg := range n.Args {
			if i > 0 {
				em.text(", ")
			}
			em.child(n, arg, RoleArgument)
		}
		em.text(")")
	case *Starred:
		if n.Double {
			em.text("**")
		} else {
			em.text("*")
		}
		em.child(n, n.Value, RoleValue)
	case *Keyword:
		em.text(n.Name)
		em.text("=")
		em.child(n, n.Value, RoleValue)
	case *Ternary:
		em.child(n, n.Then, RoleThen)
		em.text(" if ")
		em.child(n, n.Cond, RoleCondition)
		em.text(" else ")
		em.child(n, n.Else, RoleElse)
	case *Lambda:
		em.lambda(n)
	case *ArgDef:
		em.argDef(n)
	case *Yield:
		em.text("(yield ")
		em.child(n, n.Value, RoleValue)
		em.text(")")
	case *YieldFrom:
		em.text("(yield from ")
		em.child(n, n.Value, RoleValue)
		em.text(")")
	default:
		em.fail(NewInvalidNodeError(e.Kind(), "cannot render node"))
	}
}

// argDef renders a parameter. Annotated defaults use a spaced "=", plain
// defaults an unspaced one.
func (em *emitter) argDef(n *ArgDef) {
	em.child(n, n.Name, RoleName)
	if !IsVoid(n.Annotation) {
		em.text(": ")
		em.child(n, n.Annotation, RoleAnnotation)
		if !IsVoid(n.Default) {
			em.text(" = ")
			em.child(n, n.Default, RoleDefault)
		}
	} else if !IsVoid(n.Default) {
		em.text("=")
		em.child(n, n.Default, RoleDefault)
	}
}

func (em *emitter) lambda(n *Lambda) {
	for _, p := range n.Params {
		if !IsVoid(p.Annotation) {
			em.fail(NewInvalidNodeError(LambdaKind, "lambda parameters cannot be annotated"))
			return
		}
	}

	em.text("lambda")
	first := true
	sep := func() {
		if first {
			em.text(" ")
			first = false
		} else {
			em.text(", ")
		}
	}
	for _, p := range n.Params {
		sep()
		em.child(n, p, RoleParam)
	}
	if n.Vararg != "" {
		sep()
		em.text("*" + n.Vararg)
	}
	if n.HasKwarg {
		sep()
		em.text("**" + kwargsName)
	}
	em.text(": ")
	em.child(n, n.Body, RoleBody)
}
