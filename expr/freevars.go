package expr

import "sort"

// FreeVars returns the sorted names referenced by e that are not bound by an
// enclosing lambda. Attribute and keyword names are not variables.
func FreeVars(e Expr) []string {
	found := map[string]bool{}
	collectFreeVars(e, map[string]int{}, found)

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectFreeVars(e Expr, bound map[string]int, found map[string]bool) {
	switch n := e.(type) {
	case nil:
		return
	case *Name:
		if bound[n.Identifier] == 0 {
			found[n.Identifier] = true
		}
	case *Lambda:
		// defaults are evaluated outside the lambda scope
		for _, p := range n.Params {
			collectFreeVars(p.Default, bound, found)
		}
		var params []string
		for _, p := range n.Params {
			if name, ok := p.Name.(*Name); ok {
				params = append(params, name.Identifier)
			}
		}
		if n.Vararg != "" {
			params = append(params, n.Vararg)
		}
		if n.HasKwarg {
			params = append(params, kwargsName)
		}
		for _, p := range params {
			bound[p]++
		}
		collectFreeVars(n.Body, bound, found)
		for _, p := range params {
			bound[p]--
		}
	case *ArgDef:
		collectFreeVars(n.Default, bound, found)
		collectFreeVars(n.Annotation, bound, found)
	default:
		for _, child := range Children(e) {
			collectFreeVars(child, bound, found)
		}
	}
}
