// Package ast defines the narratr syntax tree as a closed set of node types.
//
// Every node implements Node; statements additionally implement Stmt and
// expressions implement Expr. The marker methods are unexported, so the set of
// variants is fixed by this package and a type switch over them is exhaustive.
// The parser builds the tree once; later phases only read it.
package ast
