package expr

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool {
	return keywords[s]
}

// IsName reports whether s is a valid identifier that is not a reserved
// word. Identifiers are compared in NFKC form, so "ｉｆ" is rejected like "if".
func IsName(s string) bool {
	return CheckName(s) == nil
}

// CheckName is IsName with an error describing the problem.
func CheckName(s string) error {
	if s == "" {
		return fmt.Errorf("empty identifier")
	}
	normalized := norm.NFKC.String(s)
	for i, r := range normalized {
		if r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) {
			continue
		}
		if i > 0 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r)) {
			continue
		}
		return fmt.Errorf("invalid identifier %q: unexpected %q", s, r)
	}
	if keywords[normalized] {
		return fmt.Errorf("invalid identifier %q: reserved word", s)
	}
	return nil
}
