// Package codegen turns a parsed narratr program into a self-contained Go
// program. Each scene becomes a type with setup, action and cleanup methods,
// each item a constructor, and main drives scene transfers in a loop.
package codegen

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"go/format"
	"io"

	"narratr/internal/ast"
	"narratr/internal/diag"
	"narratr/internal/source"
	"narratr/internal/symtab"
)

//go:embed prelude.go.in
var prelude string

// ErrNotProcessed is returned by Construct when Process did not succeed.
var ErrNotProcessed = errors.New("codegen: no successfully processed program to construct")

type Options struct {
	// Source is mentioned in the generated header when set.
	Source string
	// NoFormat skips go/format; used when debugging the generator itself.
	NoFormat bool
}

// Generator lowers one program. Process may be called again to generate another.
type Generator struct {
	opts Options

	prog   *ast.Program
	syms   symtab.View
	out    []byte
	ready  bool
	scenes []int // sorted scene ids
	items  []string
	start  int
}

func New(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Process validates prog against syms and produces the Go source in memory.
// The first fatal error stops it; Construct then refuses to write.
func (g *Generator) Process(prog *ast.Program, syms symtab.View) error {
	g.ready = false
	g.out = nil
	if prog == nil || prog.Blocks == nil || syms == nil {
		return diag.Errorf(diag.GenInternal, source.Span{}, 0, "nothing to generate")
	}
	g.prog = prog
	g.syms = syms
	g.scenes = prog.Blocks.SceneIDs()
	g.items = prog.Blocks.ItemNames()

	if err := g.checkStart(); err != nil {
		return err
	}

	var buf bytes.Buffer
	e := &emitter{w: &buf}
	e.emit("// Code generated by narratr. DO NOT EDIT.")
	if g.opts.Source != "" {
		e.emit("// Source: %s", g.opts.Source)
	}
	e.emitLine()
	e.emitRaw(prelude)

	for _, id := range g.scenes {
		if err := g.scene(e, prog.Blocks.Scenes[id]); err != nil {
			return err
		}
	}
	for _, name := range g.items {
		if err := g.item(e, prog.Blocks.Items[name]); err != nil {
			return err
		}
	}
	g.main(e)
	if e.err != nil {
		return e.err
	}

	out := buf.Bytes()
	if !g.opts.NoFormat {
		formatted, err := format.Source(out)
		if err != nil {
			return diag.Errorf(diag.GenInternal, source.Span{}, 0, "generated code does not format: %v", err)
		}
		out = formatted
	}
	g.out = out
	g.ready = true
	return nil
}

// Construct writes the generated program to w.
func (g *Generator) Construct(w io.Writer) error {
	if !g.ready {
		return ErrNotProcessed
	}
	if _, err := w.Write(g.out); err != nil {
		return fmt.Errorf("write generated code: %w", err)
	}
	return nil
}

// Generate runs Process and returns the output.
func Generate(prog *ast.Program, syms symtab.View, opts Options) ([]byte, error) {
	g := New(opts)
	if err := g.Process(prog, syms); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := g.Construct(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) checkStart() error {
	starts := g.prog.Blocks.Starts
	switch {
	case len(starts) == 0:
		return diag.Errorf(diag.GenMissingStart, source.Span{File: g.prog.Position().Span.File}, 0, "missing start scene declaration")
	case len(starts) > 1:
		return diag.Errorf(diag.GenMultipleStart, starts[1].Position().Span, starts[1].Line(),
			"multiple start scene declarations")
	}
	st := starts[0]
	if _, ok := g.prog.Blocks.Scenes[st.Scene]; !ok {
		return diag.Errorf(diag.GenUnknownStart, st.Position().Span, st.Line(),
			"start scene $%d does not exist", st.Scene)
	}
	g.start = st.Scene
	return nil
}

// main emits the trampoline: each transfer returns to this loop, which runs
// the cleanup of the scene being left and the setup of the next one.
func (g *Generator) main(e *emitter) {
	e.emitLine()
	e.open("func main() {")
	e.open("scenes := map[int]scene{")
	for _, id := range g.scenes {
		e.emit("%d: &%s{},", id, sceneType(id))
	}
	e.close()
	e.emit("current := %d", g.start)
	e.open("for {")
	e.emit("next := scenes[current].setup()")
	e.open("if to := scenes[current].cleanup(); to != stay {")
	e.emit("next = to")
	e.close()
	e.emit("current = next")
	e.close()
	e.close()
}
