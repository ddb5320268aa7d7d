package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"narratr/internal/ast"
	"narratr/internal/diag"
	"narratr/internal/source"
	"narratr/internal/symtab"
	"narratr/internal/testkit"
)

func parseSource(t *testing.T, input string) (*ast.Program, *symtab.Table, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ntr", []byte(input)))
	return ParseFile(context.Background(), file, Options{})
}

func mustParse(t *testing.T, input string) (*ast.Program, *symtab.Table) {
	t.Helper()
	prog, syms, err := parseSource(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return prog, syms
}

func mustFail(t *testing.T, input string, code diag.Code) *diag.Error {
	t.Helper()
	_, _, err := parseSource(t, input)
	de, ok := diag.AsError(err)
	if !ok {
		t.Fatalf("expected *diag.Error with %s, got %v", code.ID(), err)
	}
	if de.Code != code {
		t.Fatalf("expected %s, got %s (%s)", code.ID(), de.Code.ID(), de.Error())
	}
	return de
}

// scene wraps section bodies into a scene declaration.
func scene(id int, setup, action, cleanup string) string {
	section := func(name, body string) string {
		if body == "" {
			return "    " + name + ":\n"
		}
		var b strings.Builder
		b.WriteString("    " + name + ":\n")
		for _, line := range strings.Split(body, "\n") {
			b.WriteString("        " + line + "\n")
		}
		return b.String()
	}
	return fmt.Sprintf("scene $%d {\n%s%s%s}\n", id,
		section("setup", setup), section("action", action), section("cleanup", cleanup))
}

// sexpr renders an expression in prefix form to check tree shape.
func sexpr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.Op, sexpr(e.Left), sexpr(e.Right))
	case *ast.UnaryExpr:
		return fmt.Sprintf("(%s %s)", e.Op, sexpr(e.X))
	case *ast.ParenExpr:
		return sexpr(e.X)
	case *ast.CallExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = sexpr(a)
		}
		return fmt.Sprintf("(call %s [%s])", sexpr(e.Fun), strings.Join(args, " "))
	case *ast.MemberExpr:
		return fmt.Sprintf("(. %s %s)", sexpr(e.X), e.Name)
	case *ast.IndexExpr:
		return fmt.Sprintf("([] %s %s)", sexpr(e.X), sexpr(e.Index))
	case *ast.ListLit:
		items := make([]string, len(e.Elems))
		for i, a := range e.Elems {
			items[i] = sexpr(a)
		}
		return "[" + strings.Join(items, " ") + "]"
	default:
		return ast.Label(e)
	}
}

func firstStmt(t *testing.T, prog *ast.Program) ast.Stmt {
	t.Helper()
	sc := prog.Blocks.Scenes[1]
	if sc == nil || len(sc.Setup.Stmts) == 0 {
		t.Fatal("scene $1 has no setup statements")
	}
	return sc.Setup.Stmts[0]
}

func TestHelloWorld(t *testing.T) {
	prog, syms := mustParse(t, scene(1, `say "Hello, World!"`, "", "")+"start: $1\n")

	if len(prog.Blocks.Scenes) != 1 || len(prog.Blocks.Starts) != 1 {
		t.Fatalf("unexpected blocks: %d scenes, %d starts", len(prog.Blocks.Scenes), len(prog.Blocks.Starts))
	}
	sc := prog.Blocks.Scenes[1]
	if !sc.Action.Empty() || !sc.Cleanup.Empty() {
		t.Fatal("action and cleanup should be empty suites")
	}
	say, ok := sc.Setup.Stmts[0].(*ast.SayStmt)
	if !ok {
		t.Fatalf("expected say, got %T", sc.Setup.Stmts[0])
	}
	if lit := say.Values.Items[0].(*ast.StringLit); lit.Value != "Hello, World!" {
		t.Errorf("say value = %q", lit.Value)
	}
	if e, ok := syms.Get("$1", symtab.Global); !ok || e.Type != symtab.TypeScene || e.Value != sc {
		t.Errorf("scene not registered: %+v", e)
	}
	if prog.Blocks.Starts[0].Scene != 1 {
		t.Errorf("start = %d", prog.Blocks.Starts[0].Scene)
	}
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"8 // 3 / 2", "(/ (// 8 3) 2)"},
		{"a or b and c", "(or a (and b c))"},
		{"not a and b", "(and (not a) b)"},
		{"not a == b", "(not (== a b))"},
		{"not not a", "(not (not a))"},
		{"a < b + 1", "(< a (+ b 1))"},
		{"-x * 2", "(* (- x) 2)"},
		{"a.b(1, 2)[0]", "([] (call (. a b) [1 2]) 0)"},
		{"pocket.get(\"key\")", "(call (. pocket get) [\"key\"])"},
		{"[1, 2.5, \"s\"]", "[1 2.5 \"s\"]"},
		{"x - 1", "(- x 1)"},
		{"a == b or c != d", "(or (== a b) (!= c d))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, _ := mustParse(t, scene(1, tt.src, "", ""))
			stmt, ok := firstStmt(t, prog).(*ast.ExprStmt)
			if !ok {
				t.Fatalf("expected expression statement, got %T", firstStmt(t, prog))
			}
			if got := sexpr(stmt.X); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValueTypes(t *testing.T) {
	tests := []struct {
		src  string
		want ast.ValueType
	}{
		{"1 + 2", ast.TypeInteger},
		{"1 + 2.0", ast.TypeFloat},
		{"7 / 2", ast.TypeInteger},
		{"7 // 2.0", ast.TypeFloat},
		{`"a" + "b"`, ast.TypeString},
		{`"a" + name`, ast.TypeString},
		{"x * 2", ast.TypeID},
		{"1 < 2", ast.TypeBoolean},
		{"not x", ast.TypeBoolean},
		{"[1] + [2]", ast.TypeList},
		{"-2.5", ast.TypeFloat},
		{"(3)", ast.TypeInteger},
		{"f(1)", ast.TypeID},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, _ := mustParse(t, scene(1, "v is "+tt.src, "", ""))
			assign := firstStmt(t, prog).(*ast.AssignStmt)
			if got := assign.Value.ValueType(); got != tt.want {
				t.Fatalf("type of %s = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestTypeErrors(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{`say "text" - 3`, "ERROR: Line 3: Type error: unsupported operand types for -: string and integer"},
		{`say "a" + 1`, "ERROR: Line 3: Type error: unsupported operand types for +: string and integer"},
		{`say "a" * 2`, "ERROR: Line 3: Type error: unsupported operand types for *: string and integer"},
		{`say true + 1`, "ERROR: Line 3: Type error: unsupported operand types for +: boolean and integer"},
		{`say x - false`, "ERROR: Line 3: Type error: unsupported operand types for -: id and boolean"},
		{`say -"a"`, "ERROR: Line 3: Type error: bad operand type for unary -: string"},
		{`say [1] - [2]`, "ERROR: Line 3: Type error: unsupported operand types for -: list and list"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			de := mustFail(t, scene(1, tt.src, "", ""), diag.SemaTypeError)
			if de.Error() != tt.msg {
				t.Fatalf("message = %q, want %q", de.Error(), tt.msg)
			}
			if de.Phase() != diag.PhaseSemantic {
				t.Errorf("phase = %v", de.Phase())
			}
		})
	}
}

func TestStatements(t *testing.T) {
	body := strings.Join([]string{
		`exposition "You wake up.", "Cold."`,
		`win`,
		`lose "dead"`,
		`moves left($2), up($3)`,
		`moveto $2`,
		`god score is 0`,
		`x is score + 1`,
		`while x < 3:`,
		`    x is x + 1`,
		`    if x == 2:`,
		`        continue`,
		`    elif x == 5:`,
		`        break`,
		`    else:`,
		`        say x`,
		`if ready: say "go"`,
	}, "\n")
	prog, _ := mustParse(t, scene(1, body, "", ""))
	stmts := prog.Blocks.Scenes[1].Setup.Stmts

	var kinds []string
	for _, s := range stmts {
		kinds = append(kinds, s.Kind())
	}
	want := []string{"exposition", "win", "lose", "moves", "moveto", "assignment", "assignment", "while", "if"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("statement kinds (-want +got):\n%s", diff)
	}

	if stmts[1].(*ast.WinStmt).Values != nil {
		t.Error("bare win should have no values")
	}
	moves := stmts[3].(*ast.MovesStmt)
	if len(moves.Moves) != 2 || moves.Moves[0].Dir != ast.DirLeft || moves.Moves[1].Scene != 3 {
		t.Errorf("moves = %+v", moves.Moves)
	}
	if !stmts[5].(*ast.AssignStmt).God {
		t.Error("god flag lost")
	}
	loop := stmts[7].(*ast.WhileStmt)
	ifs := loop.Body.Stmts[1].(*ast.IfStmt)
	if len(ifs.Clauses) != 2 || ifs.Else == nil {
		t.Fatalf("if chain: %d clauses, else=%v", len(ifs.Clauses), ifs.Else != nil)
	}
	inline := stmts[8].(*ast.IfStmt)
	if len(inline.Clauses[0].Body.Stmts) != 1 {
		t.Error("inline if body should hold one statement")
	}
}

func TestPassDownRegistersLocals(t *testing.T) {
	src := scene(1, "god lamp is true\nif x:\n    hidden is 1", "while true:\n    count is 0", "bye is 2") +
		"item key(color, size) {\n    weight is size * 2\n}\n"
	_, syms := mustParse(t, src)

	for _, name := range []string{"lamp", "hidden", "count", "bye"} {
		if _, ok := syms.Get(name, symtab.SceneScope(1)); !ok {
			t.Errorf("%s not registered in scene $1", name)
		}
	}
	if e, _ := syms.Get("lamp", symtab.SceneScope(1)); !e.God {
		t.Error("lamp should be god")
	}
	if e, ok := syms.Get("color", symtab.ItemScope("key")); !ok || e.Type != symtab.TypeParam {
		t.Errorf("param color: %+v", e)
	}
	if e, ok := syms.Get("weight", symtab.ItemScope("key")); !ok || e.TypeName() != "id" {
		t.Errorf("weight: %+v", e)
	}
	if e, ok := syms.Get("key", symtab.Global); !ok || e.Type != symtab.TypeItem {
		t.Errorf("item key: %+v", e)
	}
}

func TestGodBindsAcrossScenes(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"god declared first", scene(1, "god score is 1", "", "") + scene(2, "score is score + 1", "", "")},
		{"god declared later", scene(2, "score is score + 1", "", "") + scene(1, "god score is 1", "", "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, syms := mustParse(t, tt.src+"item badge(score) {\n    score is 2\n}\n")
			e, ok := syms.Get("score", symtab.SceneScope(2))
			if !ok || !e.God {
				t.Fatalf("score in $2 = %+v, want a god binding", e)
			}
			if e, _ := syms.Get("score", symtab.ItemScope("badge")); e == nil || e.God {
				t.Errorf("item attribute must stay local: %+v", e)
			}
		})
	}
}

func TestCollectDeclarationsIsPure(t *testing.T) {
	prog, _ := mustParse(t, scene(1, "a is 1\nwhile a:\n    god b is 2\n    if b:\n        c is 3\n    else:\n        d is 4", "", ""))
	decls := CollectDeclarations(prog.Blocks.Scenes[1].Setup, symtab.SceneScope(7))
	var got []string
	for _, d := range decls {
		got = append(got, fmt.Sprintf("%s/%s/%v", d.Symbol, d.Scope, d.God))
	}
	want := []string{"a/$7/false", "b/$7/true", "c/$7/false", "d/$7/false"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestReassignmentIsNotAnError(t *testing.T) {
	mustParse(t, scene(1, "x is 1\nx is 2", "x is 3", "god g is 1\ng is 2"))
}

func TestSemanticErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		line int
	}{
		{"duplicate scene", scene(1, "", "", "") + scene(1, "", "", ""), diag.SemaDuplicateSymbol, 6},
		{"duplicate item", "item a() {\n}\nitem a() {\n}\n", diag.SemaDuplicateSymbol, 3},
		{"god redeclared", scene(1, "god x is 1\ngod x is 2", "", ""), diag.SemaGodConflict, 4},
		{"plain then god", scene(1, "x is 1", "god x is 2", ""), diag.SemaGodConflict, 5},
		{"god shadows param", "item a(p) {\n    god p is 1\n}\n", diag.SemaGodConflict, 2},
		{"duplicate param", "item a(p, p) {\n}\n", diag.SemaDuplicateParam, 1},
		{"assign pocket", scene(1, "pocket is 3", "", ""), diag.SemaReservedName, 3},
		{"item named pocket", "item pocket() {\n}\n", diag.SemaReservedName, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := mustFail(t, tt.src, tt.code)
			if de.Line != tt.line {
				t.Fatalf("line = %d, want %d (%s)", de.Line, tt.line, de.Error())
			}
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"missing action", "scene $1 {\n    setup:\n    cleanup:\n}\n", diag.SynExpectSection},
		{"different order", "scene $1 {\n    action:\n    setup:\n    cleanup:\n}\n", diag.SynExpectSection},
		{"multiple setups", "scene $1 {\n    setup:\n    setup:\n    action:\n    cleanup:\n}\n", diag.SynExpectSection},
		{"misspelled start", "strt: $1\n", diag.SynUnexpectedTopLevel},
		{"unmatched brace", "scene $1 {\n    setup:\n    action:\n    cleanup:\n\nstart: $1\n", diag.SynUnexpectedToken},
		{"missing expression", scene(1, "say", "", ""), diag.SynExpectExpression},
		{"bad direction", scene(1, "moves north($2)", "", ""), diag.SynUnexpectedToken},
		{"if without block", scene(1, "if x:\nsay 1", "", ""), diag.SynExpectBlock},
		{"trailing tokens", scene(1, "say 1 2", "", ""), diag.SynExpectNewline},
		{"unclosed paren", scene(1, "say (1 + 2", "", ""), diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := mustFail(t, tt.src, tt.code)
			if de.Phase() != diag.PhaseSyntax {
				t.Errorf("phase = %v", de.Phase())
			}
		})
	}
}

func TestLexicalErrorPropagates(t *testing.T) {
	mustFail(t, scene(1, "say 1 # 2", "", ""), diag.LexUnknownChar)
}

func TestItemsAndStarts(t *testing.T) {
	src := "item empty() {\n}\n\n% comment between blocks\n" +
		"item key(color) {\n    shiny is true\n}\n" +
		scene(2, "", "", "") + scene(1, "", "", "") +
		"start: $1\nstart: $2\n"
	prog, _ := mustParse(t, src)

	if diff := cmp.Diff([]int{1, 2}, prog.Blocks.SceneIDs()); diff != "" {
		t.Errorf("scene ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"empty", "key"}, prog.Blocks.ItemNames()); diff != "" {
		t.Errorf("item names (-want +got):\n%s", diff)
	}
	if !prog.Blocks.Items["empty"].Body.Empty() {
		t.Error("empty item body should be empty")
	}
	if len(prog.Blocks.Starts) != 2 {
		t.Errorf("both start declarations must be kept for codegen to reject, got %d", len(prog.Blocks.Starts))
	}
}

func TestParseIsDeterministic(t *testing.T) {
	src := scene(1, "god a is 1\nmoves left($2)", "say a, [1, 2]", "") + scene(2, "", "", "") +
		"item lamp(on) {\n    lit is on\n}\nstart: $1\n"
	first, firstSyms := mustParse(t, src)
	for range 3 {
		again, syms := mustParse(t, src)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("AST differs between runs:\n%s", diff)
		}
		if diff := cmp.Diff(entryKeys(firstSyms), entryKeys(syms)); diff != "" {
			t.Fatalf("symbol tables differ:\n%s", diff)
		}
	}
}

func entryKeys(t *symtab.Table) []string {
	var out []string
	for _, e := range t.Entries() {
		out = append(out, fmt.Sprintf("%s.%s:%s:%v", e.Scope.Key(), e.Symbol, e.TypeName(), e.God))
	}
	return out
}

func TestCancelledContext(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("c.ntr", []byte(scene(1, "", "", ""))))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ParseFile(ctx, file, Options{}); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSpansStayInsideSource(t *testing.T) {
	src := "item lamp(color) {\n    lit is true\n}\n" +
		scene(1, "l is lamp(\"red\")\nif l.lit and 1 < 2:\n    say [1, 2][0]\nmoves up($2)", "say -3 // 2", "") +
		scene(2, "win \"bye\"", "", "") +
		"start: $1\n"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("spans.ntr", []byte(src)))
	prog, _, err := ParseFile(context.Background(), file, Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := testkit.CheckSpanInvariants(prog, file); err != nil {
		t.Fatal(err)
	}
}
