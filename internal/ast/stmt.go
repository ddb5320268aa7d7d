package ast

// SayStmt displays its values.
type SayStmt struct {
	Pos
	Values *TestList
}

// ExpositionStmt displays narration. It behaves like say.
type ExpositionStmt struct {
	Pos
	Values *TestList
}

// WinStmt optionally displays a message and ends the game.
type WinStmt struct {
	Pos
	Values *TestList // nil when bare
}

// LoseStmt optionally displays a message and ends the game.
type LoseStmt struct {
	Pos
	Values *TestList // nil when bare
}

type BreakStmt struct{ Pos }

type ContinueStmt struct{ Pos }

// Direction is one of the four movement keywords.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	default:
		return "down"
	}
}

// Move maps a direction to a destination scene.
type Move struct {
	Pos
	Dir   Direction
	Scene int
}

// MovesStmt declares the legal moves of the current scene.
type MovesStmt struct {
	Pos
	Moves []Move
}

// MoveToStmt transfers control to another scene.
type MoveToStmt struct {
	Pos
	Scene int
}

// AssignStmt is `[god] name is value`.
type AssignStmt struct {
	Pos
	Name  string
	God   bool
	Value Expr
}

// ExprStmt evaluates an expression for its effects.
type ExprStmt struct {
	Pos
	X Expr
}

// CondClause is one `if`/`elif` arm.
type CondClause struct {
	Pos
	Cond Expr
	Body *Suite
}

// IfStmt is an if/elif/else chain. Clauses has at least one element.
type IfStmt struct {
	Pos
	Clauses []*CondClause
	Else    *Suite // nil without else
}

type WhileStmt struct {
	Pos
	Cond Expr
	Body *Suite
}

func (*SayStmt) Kind() string        { return "say" }
func (*ExpositionStmt) Kind() string { return "exposition" }
func (*WinStmt) Kind() string        { return "win" }
func (*LoseStmt) Kind() string       { return "lose" }
func (*BreakStmt) Kind() string      { return "break" }
func (*ContinueStmt) Kind() string   { return "continue" }
func (*MovesStmt) Kind() string      { return "moves" }
func (*MoveToStmt) Kind() string     { return "moveto" }
func (*AssignStmt) Kind() string     { return "assignment" }
func (*ExprStmt) Kind() string       { return "expression_statement" }
func (*IfStmt) Kind() string         { return "if" }
func (*WhileStmt) Kind() string      { return "while" }
func (*CondClause) Kind() string     { return "cond_clause" }

func (*SayStmt) stmtNode()        {}
func (*ExpositionStmt) stmtNode() {}
func (*WinStmt) stmtNode()        {}
func (*LoseStmt) stmtNode()       {}
func (*BreakStmt) stmtNode()      {}
func (*ContinueStmt) stmtNode()   {}
func (*MovesStmt) stmtNode()      {}
func (*MoveToStmt) stmtNode()     {}
func (*AssignStmt) stmtNode()     {}
func (*ExprStmt) stmtNode()       {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
