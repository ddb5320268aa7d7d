package ast

import (
	"fmt"
	"strconv"
)

// Children returns the direct children of n in source order.
// A node is a leaf iff it has no children.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Program:
		if n.Blocks == nil {
			return nil
		}
		return []Node{n.Blocks}
	case *Blocks:
		out := make([]Node, 0, len(n.Scenes)+len(n.Items)+len(n.Starts))
		for _, id := range n.SceneIDs() {
			out = append(out, n.Scenes[id])
		}
		for _, name := range n.ItemNames() {
			out = append(out, n.Items[name])
		}
		for _, s := range n.Starts {
			out = append(out, s)
		}
		return out
	case *SceneBlock:
		return []Node{n.Setup, n.Action, n.Cleanup}
	case *ItemBlock:
		return []Node{n.Body}
	case *Suite:
		out := make([]Node, len(n.Stmts))
		for i, s := range n.Stmts {
			out[i] = s
		}
		return out
	case *SayStmt:
		return []Node{n.Values}
	case *ExpositionStmt:
		return []Node{n.Values}
	case *WinStmt:
		if n.Values == nil {
			return nil
		}
		return []Node{n.Values}
	case *LoseStmt:
		if n.Values == nil {
			return nil
		}
		return []Node{n.Values}
	case *AssignStmt:
		return []Node{n.Value}
	case *ExprStmt:
		return []Node{n.X}
	case *IfStmt:
		out := make([]Node, 0, len(n.Clauses)+1)
		for _, c := range n.Clauses {
			out = append(out, c)
		}
		if n.Else != nil {
			out = append(out, n.Else)
		}
		return out
	case *CondClause:
		return []Node{n.Cond, n.Body}
	case *WhileStmt:
		return []Node{n.Cond, n.Body}
	case *TestList:
		return exprNodes(n.Items)
	case *BinaryExpr:
		return []Node{n.Left, n.Right}
	case *UnaryExpr:
		return []Node{n.X}
	case *ParenExpr:
		return []Node{n.X}
	case *ListLit:
		return exprNodes(n.Elems)
	case *CallExpr:
		return append([]Node{n.Fun}, exprNodes(n.Args)...)
	case *MemberExpr:
		return []Node{n.X}
	case *IndexExpr:
		return []Node{n.X, n.Index}
	case *StartState, *BreakStmt, *ContinueStmt, *MovesStmt, *MoveToStmt,
		*Ident, *IntLit, *FloatLit, *StringLit, *BoolLit:
		return nil
	}
	panic(fmt.Sprintf("ast: unexpected node %T", n))
}

func exprNodes(xs []Expr) []Node {
	out := make([]Node, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

// Inspect walks the tree depth-first. If f returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Label is the short value shown next to a node's kind in tree dumps.
func Label(n Node) string {
	switch n := n.(type) {
	case *SceneBlock:
		return "$" + strconv.Itoa(n.ID)
	case *ItemBlock:
		return n.Name
	case *StartState:
		return "$" + strconv.Itoa(n.Scene)
	case *MoveToStmt:
		return "$" + strconv.Itoa(n.Scene)
	case *MovesStmt:
		s := ""
		for i, m := range n.Moves {
			if i > 0 {
				s += ", "
			}
			s += fmt.Sprintf("%s($%d)", m.Dir, m.Scene)
		}
		return s
	case *AssignStmt:
		if n.God {
			return "god " + n.Name
		}
		return n.Name
	case *BinaryExpr:
		return n.Op.String()
	case *UnaryExpr:
		return n.Op.String()
	case *Ident:
		return n.Name
	case *IntLit:
		return strconv.FormatInt(n.Value, 10)
	case *FloatLit:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *StringLit:
		return strconv.Quote(n.Value)
	case *BoolLit:
		return strconv.FormatBool(n.Value)
	case *MemberExpr:
		return n.Name
	}
	return ""
}
