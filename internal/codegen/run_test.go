package codegen

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type gameRun struct {
	stdout string
	stderr string
	code   int
}

// play generates src, runs it with `go run` and feeds it stdin.
func play(t *testing.T, src, stdin string) gameRun {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping generated program run in short mode")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not available")
	}
	code := mustGenerate(t, src)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, goBin, "run", "main.go")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GOWORK=off", "GOFLAGS=", "GO111MODULE=auto")
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	run := gameRun{code: 0}
	if err := cmd.Run(); err != nil {
		var exit *exec.ExitError
		if !errors.As(err, &exit) {
			t.Fatalf("go run: %v\n%s", err, stderr.String())
		}
		run.code = exit.ExitCode()
	}
	run.stdout, run.stderr = stdout.String(), stderr.String()
	return run
}

func TestRunHelloWorld(t *testing.T) {
	got := play(t, hello, "")
	if got.code != 0 {
		t.Fatalf("exit status %d\n%s", got.code, got.stderr)
	}
	if got.stdout != "Hello, World!\n" {
		t.Errorf("stdout = %q", got.stdout)
	}
}

const twoRooms = `scene $1 {
    setup:
        say "one"
        moves left($2), right($3)
    action:
    cleanup:
        say "cleanup one"
}
scene $2 {
    setup:
        say "in two"
        win "bye"
    action:
    cleanup:
}
scene $3 {
    setup:
        lose
    action:
    cleanup:
}
start: $1
`

func TestRunMoveRunsCleanupFirst(t *testing.T) {
	for _, input := range []string{"move left\n", "  Move   LEFT!!\n"} {
		got := play(t, twoRooms, input)
		if got.code != 0 {
			t.Fatalf("input %q: exit status %d\n%s", input, got.code, got.stderr)
		}
		want := "one\n -->> cleanup one\nin two\nbye\n"
		if got.stdout != want {
			t.Errorf("input %q: stdout = %q, want %q", input, got.stdout, want)
		}
	}
}

func TestRunInvalidDirectionAndExit(t *testing.T) {
	got := play(t, twoRooms, "move up\nexit\n")
	if got.code != 0 {
		t.Fatalf("exit status %d\n%s", got.code, got.stderr)
	}
	for _, part := range []string{
		`"up" is not a valid direction from this scene.`,
		"== GAME TERMINATED ==",
	} {
		if !strings.Contains(got.stdout, part) {
			t.Errorf("stdout %q does not contain %q", got.stdout, part)
		}
	}
	if strings.Contains(got.stdout, "cleanup one") {
		t.Error("cleanup must not run when the game is left with exit")
	}
}

func TestRunGodSharedBetweenScenes(t *testing.T) {
	src := `scene $1 {
    setup:
        god seen is pocket.add("map", 1)
        god visits is 0
        visits is visits + 1
        if visits == 2:
            win "visits:", visits, pocket.get("map")
        moves left($2)
    action:
    cleanup:
}
scene $2 {
    setup:
        visits is visits * 1
        moveto $1
    action:
    cleanup:
}
start: $1
`
	got := play(t, src, "move left\n")
	if got.code != 0 {
		t.Fatalf("exit status %d\n%s", got.code, got.stderr)
	}
	if n := strings.Count(got.stdout, "is now in your pocket"); n != 1 {
		t.Errorf("god initialiser ran %d times:\n%s", n, got.stdout)
	}
	if !strings.HasSuffix(got.stdout, "visits: 2 1\n") {
		t.Errorf("stdout = %q", got.stdout)
	}
}

func TestRunDisplaysValues(t *testing.T) {
	src := `scene $1 {
    setup:
        fruit is ["apple", "banana"] + [3, 2.0, true]
        say fruit, fruit[-1], 7 // 2, 7 / 2.0, pocket.get("none")
        win
    action:
    cleanup:
}
start: $1
`
	got := play(t, src, "")
	if got.code != 0 {
		t.Fatalf("exit status %d\n%s", got.code, got.stderr)
	}
	want := "['apple', 'banana', 3, 2.0, true] true 3 3.5 None\n"
	if got.stdout != want {
		t.Errorf("stdout = %q, want %q", got.stdout, want)
	}
}

func TestRunTypeErrorExitsNonZero(t *testing.T) {
	src := "scene $1 {\n    setup:\n        x is \"a\"\n        say x - 1\n    action:\n    cleanup:\n}\nstart: $1\n"
	got := play(t, src, "")
	if got.code != 1 {
		t.Fatalf("exit status %d, want 1", got.code)
	}
	if !strings.HasPrefix(got.stderr, "ERROR: Type error:") {
		t.Errorf("stderr = %q", got.stderr)
	}
}
