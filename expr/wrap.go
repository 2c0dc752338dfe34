package expr

// Role is the structural position a child occupies in its parent.
type Role uint8

const (
	RoleLHS Role = iota + 1
	RoleRHS
	RoleOperand
	RoleBase
	RoleCallee
	RoleArgument
	RoleValue
	RoleCondition
	RoleThen
	RoleElse
	RoleParam
	RoleBody
	RoleName
	RoleDefault
	RoleAnnotation
)

// NeedsParens reports whether child must be enclosed in parentheses when
// rendered in the given role of parent.
func NeedsParens(parent, child Expr, role Role) bool {
	switch p := parent.(type) {
	case *BinOp:
		switch c := child.(type) {
		case *BinOp:
			return c.Precedence() < p.Precedence()
		case *UnaryOp, *And, *Or, *Ternary, *Lambda:
			return true
		case *Atom:
			return isNumeric(c.Value) && isNegative(c.Value)
		}
		return false
	case *UnaryOp:
		return precedenceOf(child) < p.Op.Precedence()
	case *And, *Or:
		return precedenceOf(child) < precedenceOf(parent)
	case *GetAttr, *Call:
		if role == RoleArgument {
			return false
		}
		switch c := child.(type) {
		case *BinOp, *UnaryOp, *And, *Or, *Ternary, *Lambda:
			return true
		case *Atom:
			return isNumeric(c.Value)
		}
		return false
	case *Starred:
		switch child.(type) {
		case *And, *Or:
			return true
		}
		return false
	case *Ternary:
		if role == RoleElse {
			return false
		}
		switch child.(type) {
		case *Ternary, *Lambda:
			return true
		}
		return false
	}
	return false
}

// precedenceOf returns how tightly e binds when rendered. Atoms, names,
// attribute access, calls and the parenthesized yield forms all bind tightest.
func precedenceOf(e Expr) int {
	switch n := e.(type) {
	case *BinOp:
		return n.Precedence()
	case *UnaryOp:
		return n.Op.Precedence()
	case *And:
		return BoolAnd.Precedence()
	case *Or:
		return BoolOr.Precedence()
	case *Ternary:
		return ternaryPrecedence
	case *Lambda:
		return lambdaPrecedence
	}
	return atomPrecedence
}
