package ast

// ExprBinaryOp enumerates binary operators.
type ExprBinaryOp uint8

const (
	ExprBinaryOr ExprBinaryOp = iota
	ExprBinaryAnd
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryGreater
	ExprBinaryLessEq
	ExprBinaryGreaterEq
	ExprBinaryAdd
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryIntDiv
)

func (op ExprBinaryOp) String() string {
	switch op {
	case ExprBinaryOr:
		return "or"
	case ExprBinaryAnd:
		return "and"
	case ExprBinaryEq:
		return "=="
	case ExprBinaryNotEq:
		return "!="
	case ExprBinaryLess:
		return "<"
	case ExprBinaryGreater:
		return ">"
	case ExprBinaryLessEq:
		return "<="
	case ExprBinaryGreaterEq:
		return ">="
	case ExprBinaryAdd:
		return "+"
	case ExprBinarySub:
		return "-"
	case ExprBinaryMul:
		return "*"
	case ExprBinaryDiv:
		return "/"
	case ExprBinaryIntDiv:
		return "//"
	}
	return "?"
}

// IsComparison reports == != < > <= >=.
func (op ExprBinaryOp) IsComparison() bool {
	return op >= ExprBinaryEq && op <= ExprBinaryGreaterEq
}

// IsArithmetic reports + - * / //.
func (op ExprBinaryOp) IsArithmetic() bool {
	return op >= ExprBinaryAdd
}

// ExprUnaryOp enumerates prefix operators.
type ExprUnaryOp uint8

const (
	ExprUnaryNeg ExprUnaryOp = iota
	ExprUnaryPos
	ExprUnaryNot
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryNeg:
		return "-"
	case ExprUnaryPos:
		return "+"
	default:
		return "not"
	}
}

type BinaryExpr struct {
	Pos
	Typed
	Op    ExprBinaryOp
	Left  Expr
	Right Expr
}

type UnaryExpr struct {
	Pos
	Typed
	Op ExprUnaryOp
	X  Expr
}

// Ident is a name reference. `pocket` is an Ident too.
type Ident struct {
	Pos
	Typed
	Name string
}

type IntLit struct {
	Pos
	Typed
	Value int64
}

type FloatLit struct {
	Pos
	Typed
	Value float64
}

type StringLit struct {
	Pos
	Typed
	Value string // decoded
}

type BoolLit struct {
	Pos
	Typed
	Value bool
}

type ListLit struct {
	Pos
	Typed
	Elems []Expr
}

type ParenExpr struct {
	Pos
	Typed
	X Expr
}

// CallExpr is `fun(args)`.
type CallExpr struct {
	Pos
	Typed
	Fun  Expr
	Args []Expr
}

// MemberExpr is `x.name`.
type MemberExpr struct {
	Pos
	Typed
	X    Expr
	Name string
}

// IndexExpr is `x[index]`.
type IndexExpr struct {
	Pos
	Typed
	X     Expr
	Index Expr
}

// TestList is a comma separated list of expressions.
type TestList struct {
	Pos
	Items []Expr
}

func (*BinaryExpr) Kind() string { return "binary" }
func (*UnaryExpr) Kind() string  { return "unary" }
func (*Ident) Kind() string      { return "id" }
func (*IntLit) Kind() string     { return "integer" }
func (*FloatLit) Kind() string   { return "float" }
func (*StringLit) Kind() string  { return "string" }
func (*BoolLit) Kind() string    { return "boolean" }
func (*ListLit) Kind() string    { return "list" }
func (*ParenExpr) Kind() string  { return "paren" }
func (*CallExpr) Kind() string   { return "call" }
func (*MemberExpr) Kind() string { return "member" }
func (*IndexExpr) Kind() string  { return "index" }
func (*TestList) Kind() string   { return "testlist" }

func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*Ident) exprNode()      {}
func (*IntLit) exprNode()     {}
func (*FloatLit) exprNode()   {}
func (*StringLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*ListLit) exprNode()    {}
func (*ParenExpr) exprNode()  {}
func (*CallExpr) exprNode()   {}
func (*MemberExpr) exprNode() {}
func (*IndexExpr) exprNode()  {}
