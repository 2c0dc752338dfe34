package expr

// Kind identifies the variant of an expression node.
type Kind uint8

const (
	// InvalidKind is the zero value of Kind and never names a real node.
	InvalidKind Kind = iota
	AtomKind
	NameKind
	VoidKind
	AndKind
	OrKind
	UnaryOpKind
	BinOpKind
	GetAttrKind
	CallKind
	StarredKind
	KeywordKind
	TernaryKind
	LambdaKind
	ArgDefKind
	YieldKind
	YieldFromKind
)

func (k Kind) String() string {
	switch k {
	case AtomKind:
		return "Atom"
	case NameKind:
		return "Name"
	case VoidKind:
		return "Void"
	case AndKind:
		return "And"
	case OrKind:
		return "Or"
	case UnaryOpKind:
		return "UnaryOp"
	case BinOpKind:
		return "BinOp"
	case GetAttrKind:
		return "GetAttr"
	case CallKind:
		return "Call"
	case StarredKind:
		return "Starred"
	case KeywordKind:
		return "Keyword"
	case TernaryKind:
		return "Ternary"
	case LambdaKind:
		return "Lambda"
	case ArgDefKind:
		return "ArgDef"
	case YieldKind:
		return "Yield"
	case YieldFromKind:
		return "YieldFrom"
	default:
		return "Unknown"
	}
}
