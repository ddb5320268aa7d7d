package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleProgram() *Program {
	blocks := NewBlocks()
	say := &SayStmt{Values: &TestList{Items: []Expr{&StringLit{Value: "hi", Typed: Typed{Type: TypeString}}}}}
	blocks.Scenes[2] = &SceneBlock{ID: 2, Setup: &Suite{}, Action: &Suite{}, Cleanup: &Suite{}}
	blocks.Scenes[1] = &SceneBlock{ID: 1, Setup: &Suite{Stmts: []Stmt{say}}, Action: &Suite{}, Cleanup: &Suite{}}
	blocks.Items["lamp"] = &ItemBlock{Name: "lamp", Body: &Suite{Stmts: []Stmt{
		&AssignStmt{Name: "lit", Value: &BoolLit{Value: true}},
	}}}
	blocks.Starts = append(blocks.Starts, &StartState{Scene: 1})
	return &Program{Blocks: blocks}
}

func TestInspectOrderIsDeterministic(t *testing.T) {
	var first []string
	for i := range 5 {
		var kinds []string
		Inspect(sampleProgram(), func(n Node) bool {
			kinds = append(kinds, n.Kind()+":"+Label(n))
			return true
		})
		if i == 0 {
			first = kinds
			continue
		}
		if diff := cmp.Diff(first, kinds); diff != "" {
			t.Fatalf("walk order changed (-first +now):\n%s", diff)
		}
	}
	want := []string{
		"program:", "blocks:",
		"scene_block:$1", "suite:", "say:", "testlist:", "string:\"hi\"", "suite:", "suite:",
		"scene_block:$2", "suite:", "suite:", "suite:",
		"item_block:lamp", "suite:", "assignment:lit", "boolean:true",
		"start_state:$1",
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	count := 0
	Inspect(sampleProgram(), func(n Node) bool {
		count++
		_, isScene := n.(*SceneBlock)
		return !isScene
	})
	// program, blocks, 2 scenes, item, suite, assignment, boolean, start
	if count != 9 {
		t.Fatalf("visited %d nodes, want 9", count)
	}
}

func TestLeafHasNoChildren(t *testing.T) {
	leaves := []Node{&Ident{Name: "x"}, &IntLit{Value: 1}, &BreakStmt{}, &MoveToStmt{Scene: 3}}
	for _, n := range leaves {
		if len(Children(n)) != 0 {
			t.Errorf("%s should be a leaf", n.Kind())
		}
	}
	bin := &BinaryExpr{Op: ExprBinaryAdd, Left: &IntLit{Value: 1}, Right: &IntLit{Value: 2}}
	if len(Children(bin)) != 2 {
		t.Errorf("binary should have two children")
	}
}

func TestOperatorClasses(t *testing.T) {
	if !ExprBinaryLessEq.IsComparison() || ExprBinaryAdd.IsComparison() {
		t.Error("comparison classification wrong")
	}
	if !ExprBinaryIntDiv.IsArithmetic() || ExprBinaryOr.IsArithmetic() {
		t.Error("arithmetic classification wrong")
	}
}

func TestEveryNodeKindIsSealed(t *testing.T) {
	nodes := []Node{
		&Program{}, &Blocks{}, &SceneBlock{}, &ItemBlock{}, &StartState{}, &Suite{},
		&SayStmt{}, &ExpositionStmt{}, &WinStmt{}, &LoseStmt{}, &BreakStmt{}, &ContinueStmt{},
		&MovesStmt{}, &MoveToStmt{}, &AssignStmt{}, &ExprStmt{}, &CondClause{}, &IfStmt{}, &WhileStmt{},
		&BinaryExpr{}, &UnaryExpr{}, &Ident{}, &IntLit{}, &FloatLit{}, &StringLit{}, &BoolLit{},
		&ListLit{}, &ParenExpr{}, &CallExpr{}, &MemberExpr{}, &IndexExpr{}, &TestList{},
	}
	seen := map[string]bool{}
	for _, n := range nodes {
		n.node()
		if n.Kind() == "" {
			t.Fatalf("%T has no kind", n)
		}
		seen[n.Kind()] = true
	}
	if len(seen) != len(nodes) {
		t.Fatalf("kinds are not distinct: %d kinds for %d node types", len(seen), len(nodes))
	}
}
