// Package document loads expression documents, YAML files listing named
// expressions written as S-expressions:
//
//	expressions:
//	  - name: area
//	    expr: ["*", "pi", ["**", "r", 2]]
//
// Scalars become atoms, except strings which become names ("..." is the
// Ellipsis). Lists are S-expressions whose first element is the head; besides
// the heads understood by expr.S, "str", "bytes" and "complex" build literals,
// and "call" and "lambda" accept the argument and parameter forms described
// on convertCall and convertLambda.
package document

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/oxgen/pyexpr/expr"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Entry is one named expression of a document.
type Entry struct {
	Name string
	Expr expr.Expr
	Line int
}

// Document is a parsed expression document.
type Document struct {
	Path    string
	Entries []Entry
}

type rawDocument struct {
	Expressions []rawEntry `yaml:"expressions"`
}

type rawEntry struct {
	Name string    `yaml:"name"`
	Expr yaml.Node `yaml:"expr"`
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading document %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses a document. The path is only used in errors and logs.
func Parse(path string, data []byte) (*Document, error) {
	raw := rawDocument{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error unmarshalling document %s: %w", path, err)
	}

	doc := &Document{
		Path:    path,
		Entries: make([]Entry, 0, len(raw.Expressions)),
	}
	seen := map[string]int{}
	var errs []error
	for i, re := range raw.Expressions {
		if err := expr.CheckName(re.Name); err != nil {
			errs = append(errs, fmt.Errorf("%s: entry %d: %w", path, i, err))
			continue
		}
		if line, ok := seen[re.Name]; ok {
			errs = append(errs, fmt.Errorf("%s: entry %q redefined, first defined on line %d", path, re.Name, line))
			continue
		}
		if re.Expr.Kind == 0 {
			errs = append(errs, fmt.Errorf("%s: entry %q has no expr", path, re.Name))
			continue
		}

		if err := checkAliases(&re.Expr, map[*yaml.Node]bool{}); err != nil {
			errs = append(errs, fmt.Errorf("%s: entry %q: %w", path, re.Name, err))
			continue
		}
		e, err := convert(&re.Expr)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: entry %q: %w", path, re.Name, err))
			continue
		}
		seen[re.Name] = re.Expr.Line
		doc.Entries = append(doc.Entries, Entry{
			Name: re.Name,
			Expr: e,
			Line: re.Expr.Line,
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	log.WithFields(log.Fields{"path": path, "entries": len(doc.Entries)}).Debug("pyexpr::document::Parse; parsed document")
	return doc, nil
}

// Render renders every entry as a "name = source" line prefixed by the
// context's indentation. Entries are simplified first when fold is set.
func (d *Document) Render(ctx *expr.PrintContext, fold bool) ([]string, error) {
	lines := make([]string, 0, len(d.Entries))
	for _, entry := range d.Entries {
		e := entry.Expr
		if fold {
			simplified, err := expr.Simplify(e)
			if err != nil {
				return nil, fmt.Errorf("%s: entry %q: %w", d.Path, entry.Name, err)
			}
			e = simplified
		}

		b := strings.Builder{}
		b.WriteString(ctx.StartLine())
		b.WriteString(entry.Name)
		b.WriteString(" = ")
		for tok, err := range expr.Tokens(e, ctx) {
			if err != nil {
				return nil, fmt.Errorf("%s: entry %q: %w", d.Path, entry.Name, err)
			}
			b.WriteString(tok)
		}
		lines = append(lines, b.String())
	}
	return lines, nil
}

// nodeError prefixes err with the position of n.
func nodeError(n *yaml.Node, err error) error {
	return fmt.Errorf("line %d, column %d: %w", n.Line, n.Column, err)
}

// checkAliases reports an alias that refers to one of the nodes enclosing it.
// expanding holds the nodes on the path from the root to n.
func checkAliases(n *yaml.Node, expanding map[*yaml.Node]bool) error {
	if n.Kind == yaml.AliasNode {
		if n.Alias == nil || expanding[n.Alias] {
			return nodeError(n, fmt.Errorf("recursive alias %q", n.Value))
		}
		return checkAliases(n.Alias, expanding)
	}

	expanding[n] = true
	defer delete(expanding, n)
	for _, child := range n.Content {
		if err := checkAliases(child, expanding); err != nil {
			return err
		}
	}
	return nil
}

func convert(n *yaml.Node) (expr.Expr, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return convert(n.Alias)
	case yaml.ScalarNode:
		e, err := convertScalar(n)
		if err != nil {
			return nil, nodeError(n, err)
		}
		return e, nil
	case yaml.SequenceNode:
		return convertSequence(n)
	}
	return nil, nodeError(n, fmt.Errorf("expected a scalar or a list, got %s", kindName(n.Kind)))
}

func convertScalar(n *yaml.Node) (expr.Expr, error) {
	switch n.ShortTag() {
	case "!!null":
		return expr.NewAtom(expr.None)
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, err
		}
		return expr.Bool(b), nil
	case "!!int":
		i, ok := new(big.Int).SetString(n.Value, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", n.Value)
		}
		return expr.NewAtom(i)
	case "!!float":
		f, err := parseFloat(n.Value)
		if err != nil {
			return nil, err
		}
		return expr.Float(f), nil
	case "!!str":
		if n.Value == "..." {
			return expr.NewAtom(expr.Ellipsis)
		}
		if err := expr.CheckName(n.Value); err != nil {
			return nil, err
		}
		return expr.NewName(n.Value), nil
	}
	return nil, fmt.Errorf("unsupported tag %s", n.ShortTag())
}

func parseFloat(s string) (float64, error) {
	switch strings.ToLower(s) {
	case ".inf", "+.inf":
		return math.Inf(1), nil
	case "-.inf":
		return math.Inf(-1), nil
	case ".nan":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
}

func convertSequence(n *yaml.Node) (expr.Expr, error) {
	if len(n.Content) == 0 {
		return nil, nodeError(n, fmt.Errorf("empty S-expression"))
	}
	head := n.Content[0]
	if head.Kind != yaml.ScalarNode || head.ShortTag() != "!!str" {
		return nil, nodeError(head, fmt.Errorf("S-expression head must be a string"))
	}
	args := n.Content[1:]

	switch head.Value {
	case "str", "bytes":
		if len(args) != 1 || args[0].Kind != yaml.ScalarNode {
			return nil, nodeError(n, fmt.Errorf("%s expects a single scalar", head.Value))
		}
		if head.Value == "str" {
			return expr.Str(args[0].Value), nil
		}
		return expr.Bytes([]byte(args[0].Value)), nil
	case "complex":
		return convertComplex(n, args)
	case ".", "getattr":
		if len(args) != 2 || args[1].Kind != yaml.ScalarNode {
			return nil, nodeError(n, fmt.Errorf("%s expects a base and an attribute name", head.Value))
		}
		base, err := convert(args[0])
		if err != nil {
			return nil, err
		}
		if err := expr.CheckName(args[1].Value); err != nil {
			return nil, nodeError(args[1], err)
		}
		return expr.Attr(base, args[1].Value)
	case "call":
		return convertCall(n, args)
	case "lambda":
		return convertLambda(n, args)
	}

	values := make([]any, len(args))
	for i, arg := range args {
		e, err := convert(arg)
		if err != nil {
			return nil, err
		}
		values[i] = e
	}
	e, err := expr.S(head.Value, values...)
	if err != nil {
		return nil, nodeError(n, err)
	}
	return e, nil
}

func convertComplex(n *yaml.Node, args []*yaml.Node) (expr.Expr, error) {
	if len(args) != 2 {
		return nil, nodeError(n, fmt.Errorf("complex expects a real and an imaginary part"))
	}
	var parts [2]float64
	for i, arg := range args {
		if arg.Kind != yaml.ScalarNode || (arg.ShortTag() != "!!int" && arg.ShortTag() != "!!float") {
			return nil, nodeError(arg, fmt.Errorf("complex parts must be numbers"))
		}
		f, err := parseFloat(arg.Value)
		if err != nil {
			return nil, nodeError(arg, err)
		}
		parts[i] = f
	}
	return expr.Complex(complex(parts[0], parts[1])), nil
}

// convertCall builds ["call", callee, args...]. An argument is an
// expression, a "*name" or "**name" string, a {"*": expr} or {"**": expr}
// mapping, or a {name: expr} mapping for keywords.
func convertCall(n *yaml.Node, args []*yaml.Node) (expr.Expr, error) {
	if len(args) == 0 {
		return nil, nodeError(n, fmt.Errorf("call expects a callee"))
	}
	callee, err := convert(args[0])
	if err != nil {
		return nil, err
	}

	var callArgs []expr.Arg
	for _, arg := range args[1:] {
		switch {
		case arg.Kind == yaml.ScalarNode && arg.ShortTag() == "!!str" && strings.HasPrefix(arg.Value, "*"):
			parsed, err := expr.ParseArgs(arg.Value)
			if err != nil {
				return nil, nodeError(arg, err)
			}
			callArgs = append(callArgs, parsed...)
		case arg.Kind == yaml.MappingNode:
			if len(arg.Content) != 2 {
				return nil, nodeError(arg, fmt.Errorf("argument mappings must have exactly one key"))
			}
			key, value := arg.Content[0].Value, arg.Content[1]
			e, err := convert(value)
			if err != nil {
				return nil, err
			}
			switch key {
			case "*":
				callArgs = append(callArgs, expr.Star(e))
			case "**":
				callArgs = append(callArgs, expr.DoubleStar(e))
			default:
				if err := expr.CheckName(key); err != nil {
					return nil, nodeError(arg, err)
				}
				callArgs = append(callArgs, expr.Kw(key, e))
			}
		default:
			e, err := convert(arg)
			if err != nil {
				return nil, err
			}
			callArgs = append(callArgs, expr.Positional(e))
		}
	}

	call, err := expr.NewCall(callee, callArgs...)
	if err != nil {
		return nil, nodeError(n, err)
	}
	return call, nil
}

// convertLambda builds ["lambda", [params...], body]. A parameter is a name,
// "*name", "**kwargs", or a {name: default} mapping.
func convertLambda(n *yaml.Node, args []*yaml.Node) (expr.Expr, error) {
	if len(args) != 2 || args[0].Kind != yaml.SequenceNode {
		return nil, nodeError(n, fmt.Errorf("lambda expects a parameter list and a body"))
	}

	var params []any
	for _, p := range args[0].Content {
		switch p.Kind {
		case yaml.ScalarNode:
			name := strings.TrimLeft(p.Value, "*")
			if err := expr.CheckName(name); err != nil {
				return nil, nodeError(p, err)
			}
			params = append(params, p.Value)
		case yaml.MappingNode:
			if len(p.Content) != 2 {
				return nil, nodeError(p, fmt.Errorf("parameter mappings must have exactly one key"))
			}
			name := p.Content[0].Value
			if err := expr.CheckName(name); err != nil {
				return nil, nodeError(p, err)
			}
			def, err := convert(p.Content[1])
			if err != nil {
				return nil, err
			}
			params = append(params, expr.NewArgDef(expr.NewName(name), def, nil))
		default:
			return nil, nodeError(p, fmt.Errorf("invalid lambda parameter"))
		}
	}

	body, err := convert(args[1])
	if err != nil {
		return nil, err
	}
	e, err := expr.S("lambda", params, body)
	if err != nil {
		return nil, nodeError(n, err)
	}
	return e, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
