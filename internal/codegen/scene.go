package codegen

import (
	"strconv"

	"narratr/internal/ast"
	"narratr/internal/diag"
	"narratr/internal/symtab"
)

type section uint8

const (
	sectionSetup section = iota
	sectionAction
	sectionCleanup
	sectionItem
)

func (s section) String() string {
	switch s {
	case sectionSetup:
		return "setup"
	case sectionAction:
		return "action"
	case sectionCleanup:
		return "cleanup"
	default:
		return "item"
	}
}

// frame is the lowering context of one body.
type frame struct {
	scope   symtab.Scope
	section section
	scene   *ast.SceneBlock
	item    *ast.ItemBlock
	loops   int
	moves   *bool // shared by the sections of one scene
}

func sceneType(id int) string {
	return "scene" + strconv.Itoa(id)
}

func localField(name string) string {
	return "v_" + name
}

func itemFunc(name string) string {
	return "item_" + name
}

// locals lists the non-god variables of a scene in name order.
func (g *Generator) locals(scope symtab.Scope) []string {
	var out []string
	for _, e := range g.syms.ScopeEntries(scope) {
		if e.Type == symtab.TypeValue && !e.God {
			out = append(out, e.Symbol)
		}
	}
	return out
}

func (g *Generator) scene(e *emitter, sc *ast.SceneBlock) error {
	typ := sceneType(sc.ID)
	scope := symtab.SceneScope(sc.ID)

	e.emitLine()
	e.open("type %s struct {", typ)
	for _, name := range g.locals(scope) {
		e.emit("%s any", localField(name))
	}
	e.close()

	seen := false
	fr := func(sec section) *frame {
		return &frame{scope: scope, section: sec, scene: sc, moves: &seen}
	}

	e.emitLine()
	e.open("func (s *%s) setup() int {", typ)
	e.emit("*s = %s{}", typ)
	e.emit("moves := map[string]int{}")
	if err := g.suite(e, fr(sectionSetup), sc.Setup); err != nil {
		return err
	}
	e.emit("return s.action(moves)")
	e.close()

	e.emitLine()
	e.open("func (s *%s) action(moves map[string]int) int {", typ)
	e.open("for {")
	if err := g.suite(e, fr(sectionAction), sc.Action); err != nil {
		return err
	}
	e.open("if next := respond(moves); next != stay {")
	e.emit("return next")
	e.close()
	e.close()
	e.close()

	e.emitLine()
	e.open("func (s *%s) cleanup() int {", typ)
	e.emit("*s = %s{}", typ)
	if err := g.suite(e, fr(sectionCleanup), sc.Cleanup); err != nil {
		return err
	}
	e.emit("return stay")
	e.close()
	return nil
}

func (g *Generator) item(e *emitter, it *ast.ItemBlock) error {
	e.emitLine()
	e.open("func %s(args ...any) *object {", itemFunc(it.Name))
	e.emit("o := newObject(%s)", strconv.Quote(it.Name))
	for i, p := range it.Params {
		e.emit("o.set(%s, args[%d])", strconv.Quote(p), i)
	}
	fr := &frame{scope: symtab.ItemScope(it.Name), section: sectionItem, item: it}
	if err := g.suite(e, fr, it.Body); err != nil {
		return err
	}
	e.emit("return o")
	e.close()
	return nil
}

// target checks that a moves or moveto destination exists.
func (g *Generator) target(n ast.Node, id int) error {
	if _, ok := g.prog.Blocks.Scenes[id]; !ok {
		return diag.Errorf(diag.GenUnknownScene, n.Position().Span, n.Line(), "scene $%d does not exist", id)
	}
	return nil
}
