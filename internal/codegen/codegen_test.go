package codegen

import (
	"bytes"
	"context"
	"errors"
	goparser "go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"narratr/internal/diag"
	"narratr/internal/parser"
	"narratr/internal/source"
)

func generate(t *testing.T, src string) (string, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("game.ntr", []byte(src)))
	prog, syms, err := parser.ParseFile(context.Background(), file, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := Generate(prog, syms.View(), Options{Source: "game.ntr"})
	return string(out), err
}

func mustGenerate(t *testing.T, src string) string {
	t.Helper()
	out, err := generate(t, src)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := goparser.ParseFile(token.NewFileSet(), "main.go", out, goparser.AllErrors); err != nil {
		t.Fatalf("generated code is not valid Go: %v\n%s", err, out)
	}
	return out
}

func mustReject(t *testing.T, src string, code diag.Code) *diag.Error {
	t.Helper()
	_, err := generate(t, src)
	de, ok := diag.AsError(err)
	if !ok {
		t.Fatalf("expected %s, got %v", code.ID(), err)
	}
	if de.Code != code {
		t.Fatalf("expected %s, got %s: %s", code.ID(), de.Code.ID(), de.Error())
	}
	if de.Phase() != diag.PhaseCodegen {
		t.Errorf("phase = %v", de.Phase())
	}
	return de
}

func assertContains(t *testing.T, out string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(out, p) {
			t.Errorf("output does not contain %q", p)
		}
	}
}

const hello = `scene $1 {
    setup:
        say "Hello, World!"
    action:
        win
    cleanup:
}
start: $1
`

func TestHelloWorld(t *testing.T) {
	out := mustGenerate(t, hello)
	assertContains(t, out,
		"// Code generated by narratr. DO NOT EDIT.",
		"// Source: game.ntr",
		"package main",
		"type scene1 struct",
		`say("Hello, World!")`,
		"finish()",
		"func (s *scene1) setup() int",
		"func (s *scene1) action(moves map[string]int) int",
		"func (s *scene1) cleanup() int",
		"current := 1",
	)
}

func TestStartValidation(t *testing.T) {
	scene := "scene $1 {\n    setup:\n    action:\n    cleanup:\n}\n"

	de := mustReject(t, scene, diag.GenMissingStart)
	if de.Error() != "ERROR: missing start scene declaration" {
		t.Errorf("message = %q", de.Error())
	}
	de = mustReject(t, scene+"start: $1\nstart: $1\n", diag.GenMultipleStart)
	if de.Line != 7 {
		t.Errorf("line = %d", de.Line)
	}
	mustReject(t, scene+"start: $4\n", diag.GenUnknownStart)
}

func TestPocketOperations(t *testing.T) {
	src := `scene $1 {
    setup:
        pocket.add("key", 1)
        k is pocket.get("key")
        pocket.remove("key")
    action:
    cleanup:
}
start: $1
`
	out := mustGenerate(t, src)
	assertContains(t, out,
		`pocket.add("key", int64(1))`,
		`s.v_k = pocket.get("key")`,
		`pocket.remove("key")`,
	)

	de := mustReject(t, strings.Replace(src, `pocket.add("key", 1)`, `pocket.add("key")`, 1), diag.GenPocketArity)
	if de.Line != 3 {
		t.Errorf("line = %d", de.Line)
	}
	mustReject(t, strings.Replace(src, `pocket.remove("key")`, `pocket.drop("key")`, 1), diag.GenPocketMethod)
	mustReject(t, strings.Replace(src, `pocket.remove("key")`, `say pocket`, 1), diag.GenPocketMethod)
}

func TestMovement(t *testing.T) {
	src := `scene $1 {
    setup:
        moves left($2), right($3)
    action:
    cleanup:
        say "leaving"
}
scene $2 {
    setup:
        moveto $3
    action:
    cleanup:
}
scene $3 {
    setup:
        win "done"
    action:
    cleanup:
}
start: $1
`
	out := mustGenerate(t, src)
	assertContains(t, out,
		`moves = map[string]int{"left": 2, "right": 3}`,
		"return 3",
		"if next := respond(moves); next != stay",
		`finish("done")`,
		"1: &scene1{},",
		"next := scenes[current].setup()",
	)
	// cleanup of scene 1 runs before setup of the next scene
	cleanup := strings.Index(out, "func (s *scene1) cleanup() int")
	if cleanup < 0 || !strings.Contains(out[cleanup:], `say("leaving")`) {
		t.Error("cleanup body not emitted in scene1.cleanup")
	}
}

func TestMovementErrors(t *testing.T) {
	wrap := func(setup, action, cleanup string) string {
		return "scene $1 {\n    setup:\n" + setup + "    action:\n" + action + "    cleanup:\n" + cleanup + "}\nstart: $1\n"
	}
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unknown move target", wrap("        moves up($9)\n", "", ""), diag.GenUnknownScene},
		{"unknown moveto target", wrap("", "        moveto $5\n", ""), diag.GenUnknownScene},
		{"moves twice", wrap("        moves up($1)\n", "        moves down($1)\n", ""), diag.GenDuplicateMoves},
		{"moves in cleanup", wrap("", "", "        moves up($1)\n"), diag.GenMisplaced},
		{"moveto in item", "item a() {\n    moveto $1\n}\n" + wrap("", "", ""), diag.GenMisplaced},
		{"break outside while", wrap("        break\n", "", ""), diag.GenMisplaced},
		{"continue in if", wrap("        if true:\n            continue\n", "", ""), diag.GenMisplaced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustReject(t, tt.src, tt.code)
		})
	}
}

func TestLoopsAndConditionals(t *testing.T) {
	src := `scene $1 {
    setup:
        n is 0
        while n < 3:
            n is n + 1
            if n == 2:
                continue
            elif not n:
                break
            else:
                say n
    action:
    cleanup:
}
start: $1
`
	out := mustGenerate(t, src)
	assertContains(t, out,
		`for truthy(compare("<", s.v_n, int64(3))) {`,
		"s.v_n = add(s.v_n, int64(1))",
		"if truthy(equal(s.v_n, int64(2))) {",
		"} else if truthy(!truthy(s.v_n)) {",
		"continue",
		"break",
		"} else {",
	)
}

func TestNameResolution(t *testing.T) {
	src := `item lamp(color) {
    bright is true
    say color, bright
}
scene $1 {
    setup:
        god score is 0
        l is lamp("red")
        say l.color
    action:
        score is score + 1
    cleanup:
}
scene $2 {
    setup:
        say score
    action:
    cleanup:
}
start: $1
`
	out := mustGenerate(t, src)
	assertContains(t, out,
		`func item_lamp(args ...any) *object {`,
		`o.set("color", args[0])`,
		`o.set("bright", true)`,
		`say(o.get("color"), o.get("bright"))`,
		`if !hasGod("score") {`,
		`setGod("score", int64(0))`,
		`s.v_l = item_lamp("red")`,
		`say(attr(s.v_l, "color"))`,
		`setGod("score", add(god("score"), int64(1)))`,
		`say(god("score"))`,
	)
	if strings.Contains(out, "v_score") {
		t.Error("god variable must not become a scene field")
	}
}

func TestNameErrors(t *testing.T) {
	wrap := func(body string) string {
		return "item lamp(color) {\n}\nscene $1 {\n    setup:\n        score is 1\n        " + body + "\n    action:\n    cleanup:\n}\nstart: $1\n"
	}

	de := mustReject(t, wrap("say scor"), diag.GenUndefinedName)
	if de.Hint != "did you mean 'score'?" {
		t.Errorf("hint = %q", de.Hint)
	}
	if de.Line != 6 {
		t.Errorf("line = %d", de.Line)
	}
	mustReject(t, wrap(`lamp("a", "b")`), diag.GenArity)
	mustReject(t, wrap("say lamp"), diag.GenArity)
	mustReject(t, wrap("score(1)"), diag.GenNotCallable)
	mustReject(t, wrap("lamp.color(1)"), diag.GenNotCallable)
}

func TestEmptyCleanupResetsLocals(t *testing.T) {
	out := mustGenerate(t, "scene $1 {\n    setup:\n        x is 1\n    action:\n    cleanup:\n}\nstart: $1\n")
	i := strings.Index(out, "func (s *scene1) cleanup() int {")
	if i < 0 {
		t.Fatal("cleanup missing")
	}
	body := out[i:]
	body = body[:strings.Index(body, "\n}")]
	assertContains(t, body, "*s = scene1{}", "return stay")
}

func TestExpressions(t *testing.T) {
	src := "scene $1 {\n    setup:\n        x is [1, 2.5, \"a\"][0] // -2\n        y is -x * (3 / 1.0)\n        z is x >= 1 and y != 2 or false\n    action:\n    cleanup:\n}\nstart: $1\n"
	out := mustGenerate(t, src)
	assertContains(t, out,
		`s.v_x = idiv(index([]any{int64(1), float64(2.5), "a"}, int64(0)), int64(-2))`,
		`s.v_y = mul(neg(s.v_x), (div(int64(3), float64(1))))`,
		`compare(">=", s.v_x, int64(1))`,
		`truthy(!equal(s.v_y, int64(2)))`,
		"&&",
		"||",
	)
}

func TestGenerateIsIdempotent(t *testing.T) {
	src := strings.Replace(hello, "    action:\n", "    action:\n        moves up($1)\n", 1)
	first := mustGenerate(t, src)
	for range 3 {
		if again := mustGenerate(t, src); again != first {
			t.Fatal("generated output differs between runs")
		}
	}
}

func TestConstructRequiresProcess(t *testing.T) {
	g := New(Options{})
	var buf bytes.Buffer
	if err := g.Construct(&buf); !errors.Is(err, ErrNotProcessed) {
		t.Fatalf("expected ErrNotProcessed, got %v", err)
	}

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("x.ntr", []byte("scene $1 {\n    setup:\n    action:\n    cleanup:\n}\n")))
	prog, syms, err := parser.ParseFile(context.Background(), file, parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Process(prog, syms.View()); err == nil {
		t.Fatal("expected missing start error")
	}
	if err := g.Construct(&buf); !errors.Is(err, ErrNotProcessed) {
		t.Fatalf("Construct after failed Process: %v", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written")
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"scor", []string{"score", "lamp"}, "score"},
		{"lmap", []string{"score", "lamp"}, "lamp"},
		{"zzz", []string{"score", "lamp"}, ""},
		{"x", nil, ""},
	}
	for _, tt := range tests {
		if got := suggest(tt.name, tt.candidates); got != tt.want {
			t.Errorf("suggest(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTestdataStories(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "*.ntr"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no testdata stories")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			out := mustGenerate(t, string(src))
			assertContains(t, out, "func main() {", "current := 1")
		})
	}
}

func TestGodAssignedInAnotherScene(t *testing.T) {
	src := `scene $1 {
    setup:
        score is score * 2
    action:
    cleanup:
}
scene $2 {
    setup:
        god score is 1
    action:
        score is score + 1
        say score
    cleanup:
}
start: $2
`
	out := mustGenerate(t, src)
	assertContains(t, out,
		`setGod("score", mul(god("score"), int64(2)))`,
		`setGod("score", add(god("score"), int64(1)))`,
	)
	if strings.Contains(out, "v_score") {
		t.Error("god variable must not become a scene field in any scene")
	}
}
