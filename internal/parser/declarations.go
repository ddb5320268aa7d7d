package parser

import (
	"narratr/internal/ast"
	"narratr/internal/symtab"
)

// Declaration is one assignment found in a scene or item body.
type Declaration struct {
	Symbol string
	Scope  symtab.Scope
	God    bool
	Stmt   *ast.AssignStmt
}

// CollectDeclarations walks body, including nested if/elif/else and while
// bodies, and returns its assignments in source order. It does not touch the
// symbol table.
func CollectDeclarations(body *ast.Suite, scope symtab.Scope) []Declaration {
	var out []Declaration
	collect(body, scope, &out)
	return out
}

func collect(suite *ast.Suite, scope symtab.Scope, out *[]Declaration) {
	if suite == nil {
		return
	}
	for _, stmt := range suite.Stmts {
		switch s := stmt.(type) {
		case *ast.AssignStmt:
			*out = append(*out, Declaration{Symbol: s.Name, Scope: scope, God: s.God, Stmt: s})
		case *ast.IfStmt:
			for _, c := range s.Clauses {
				collect(c.Body, scope, out)
			}
			collect(s.Else, scope, out)
		case *ast.WhileStmt:
			collect(s.Body, scope, out)
		}
	}
}
