package diagfmt

import (
	"fmt"
	"io"

	"narratr/internal/ast"
	"narratr/internal/symtab"
)

// FormatSymtab prints one entry per line as
// "<key> : [symbol, value, type, scope, god]", ordered by key.
func FormatSymtab(w io.Writer, entries []symtab.Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s : [%s, %s, %s, %s, %t]\n",
			symtab.Key(e.Symbol, e.Scope), e.Symbol, entryValue(e.Value), e.TypeName(), e.Scope, e.God); err != nil {
			return err
		}
	}
	return nil
}

func entryValue(n ast.Node) string {
	if isNilNode(n) {
		return "None"
	}
	if label := ast.Label(n); label != "" {
		return n.Kind() + " " + label
	}
	return n.Kind()
}
