package ast

import (
	"narratr/internal/source"
)

// Node is any syntax tree node.
type Node interface {
	// Kind is the grammar category, e.g. "scene_block" or "binary".
	Kind() string
	Line() int
	Position() Pos
	node()
}

// Stmt is a statement inside a Suite.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression with a parse-time value type.
type Expr interface {
	Node
	ValueType() ValueType
	exprNode()
}

// Pos locates a node in the source.
type Pos struct {
	Span    source.Span
	LineNum int
}

func (p Pos) Line() int     { return p.LineNum }
func (p Pos) Position() Pos { return p }

// node seals Node: only types embedding Pos satisfy it.
func (Pos) node() {}

// At builds a Pos.
func At(span source.Span, line int) Pos {
	return Pos{Span: span, LineNum: line}
}

// Typed carries the value type of an expression.
type Typed struct {
	Type ValueType
}

func (t Typed) ValueType() ValueType { return t.Type }
