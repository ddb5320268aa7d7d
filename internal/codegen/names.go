package codegen

import (
	"slices"
	"sort"
	"strconv"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"narratr/internal/ast"
	"narratr/internal/diag"
	"narratr/internal/token"
)

// isGod reports whether name is a god variable as seen from fr's scope.
func (g *Generator) isGod(fr *frame, name string) bool {
	if e, ok := g.syms.Get(name, fr.scope); ok {
		return e.God
	}
	return false
}

// ident resolves a name read: the local scope first (item attributes or
// scene locals), then god variables of any scope.
func (g *Generator) ident(fr *frame, id *ast.Ident) (string, error) {
	name := id.Name
	if name == token.Pocket {
		return "", diag.Errorf(diag.GenPocketMethod, id.Position().Span, id.Line(),
			"'pocket' can only be used as pocket.add, pocket.get or pocket.remove")
	}
	if e, ok := g.syms.Get(name, fr.scope); ok {
		switch {
		case e.God:
			return "god(" + strconv.Quote(name) + ")", nil
		case fr.section == sectionItem:
			return "o.get(" + strconv.Quote(name) + ")", nil
		default:
			return "s." + localField(name), nil
		}
	}
	if g.syms.IsGod(name) {
		return "god(" + strconv.Quote(name) + ")", nil
	}
	if it, ok := g.prog.Blocks.Items[name]; ok {
		return "", diag.Errorf(diag.GenArity, id.Position().Span, id.Line(),
			"item '%s' must be called with %d argument(s)", name, len(it.Params))
	}

	err := diag.Errorf(diag.GenUndefinedName, id.Position().Span, id.Line(), "name '%s' is not defined", name)
	if s := suggest(name, g.candidates(fr)); s != "" {
		err = err.WithHint("did you mean '" + s + "'?")
	}
	return "", err
}

// candidates are the names visible from fr.
func (g *Generator) candidates(fr *frame) []string {
	var names []string
	for _, e := range g.syms.ScopeEntries(fr.scope) {
		names = append(names, e.Symbol)
	}
	for _, e := range g.syms.Entries() {
		if e.God {
			names = append(names, e.Symbol)
		}
	}
	names = append(names, g.items...)
	slices.Sort(names)
	return slices.Compact(names)
}

// suggest picks the closest candidate: a fuzzy subsequence match first, then
// a small edit distance.
func suggest(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	if ranks := fuzzy.RankFindFold(name, candidates); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", 3
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// call lowers item construction and pocket operations; nothing else is callable.
func (g *Generator) call(fr *frame, c *ast.CallExpr) (string, error) {
	switch fun := c.Fun.(type) {
	case *ast.MemberExpr:
		if recv, ok := fun.X.(*ast.Ident); ok && recv.Name == token.Pocket {
			return g.pocket(fr, c, fun.Name)
		}
	case *ast.Ident:
		if fun.Name == token.Pocket {
			break
		}
		if it, ok := g.prog.Blocks.Items[fun.Name]; ok && !g.shadowed(fr, fun.Name) {
			if len(c.Args) != len(it.Params) {
				return "", diag.Errorf(diag.GenArity, c.Position().Span, c.Line(),
					"item '%s' takes %d argument(s) but %d were given", it.Name, len(it.Params), len(c.Args))
			}
			args, err := g.exprs(fr, c.Args)
			if err != nil {
				return "", err
			}
			return itemFunc(it.Name) + "(" + args + ")", nil
		}
	}
	return "", diag.Errorf(diag.GenNotCallable, c.Position().Span, c.Line(),
		"'%s' is not callable; only items and pocket operations can be called", callee(c.Fun))
}

// shadowed reports whether a local or god variable hides an item name.
func (g *Generator) shadowed(fr *frame, name string) bool {
	if _, ok := g.syms.Get(name, fr.scope); ok {
		return true
	}
	return g.syms.IsGod(name)
}

var pocketArity = map[string]int{
	"add":    2,
	"get":    1,
	"remove": 1,
}

func (g *Generator) pocket(fr *frame, c *ast.CallExpr, method string) (string, error) {
	want, ok := pocketArity[method]
	if !ok {
		return "", diag.Errorf(diag.GenPocketMethod, c.Position().Span, c.Line(),
			"pocket has no operation '%s'; use add, get or remove", method)
	}
	if len(c.Args) != want {
		return "", diag.Errorf(diag.GenPocketArity, c.Position().Span, c.Line(),
			"pocket.%s takes %d argument(s) but %d were given", method, want, len(c.Args))
	}
	args, err := g.exprs(fr, c.Args)
	if err != nil {
		return "", err
	}
	return "pocket." + method + "(" + args + ")", nil
}

func callee(x ast.Expr) string {
	switch x := x.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.MemberExpr:
		return callee(x.X) + "." + x.Name
	}
	return x.Kind()
}
