package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"narratr/internal/ast"
	"narratr/internal/diag"
)

func (g *Generator) suite(e *emitter, fr *frame, s *ast.Suite) error {
	if s == nil {
		return nil
	}
	for _, stmt := range s.Stmts {
		if err := g.stmt(e, fr, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) stmt(e *emitter, fr *frame, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.SayStmt:
		return g.display(e, fr, "say", s.Values)
	case *ast.ExpositionStmt:
		return g.display(e, fr, "say", s.Values)
	case *ast.WinStmt:
		return g.display(e, fr, "finish", s.Values)
	case *ast.LoseStmt:
		return g.display(e, fr, "finish", s.Values)

	case *ast.BreakStmt:
		if fr.loops == 0 {
			return misplaced(s, "'break' outside loop")
		}
		e.emit("break")
	case *ast.ContinueStmt:
		if fr.loops == 0 {
			return misplaced(s, "'continue' not properly in loop")
		}
		e.emit("continue")

	case *ast.MovesStmt:
		return g.moves(e, fr, s)
	case *ast.MoveToStmt:
		if fr.section == sectionItem {
			return misplaced(s, "'moveto' can only be used inside a scene")
		}
		if err := g.target(s, s.Scene); err != nil {
			return err
		}
		e.emit("return %d", s.Scene)

	case *ast.AssignStmt:
		return g.assign(e, fr, s)

	case *ast.ExprStmt:
		x, err := g.expr(fr, s.X)
		if err != nil {
			return err
		}
		if _, ok := s.X.(*ast.CallExpr); ok {
			e.emit("%s", x)
		} else {
			e.emit("_ = %s", x)
		}

	case *ast.IfStmt:
		for i, c := range s.Clauses {
			cond, err := g.cond(fr, c.Cond)
			if err != nil {
				return err
			}
			if i == 0 {
				e.open("if %s {", cond)
			} else {
				e.open("} else if %s {", cond)
			}
			if err := g.suite(e, fr, c.Body); err != nil {
				return err
			}
			e.indent--
		}
		if s.Else != nil {
			e.open("} else {")
			if err := g.suite(e, fr, s.Else); err != nil {
				return err
			}
			e.indent--
		}
		e.emit("}")

	case *ast.WhileStmt:
		cond, err := g.cond(fr, s.Cond)
		if err != nil {
			return err
		}
		e.open("for %s {", cond)
		fr.loops++
		err = g.suite(e, fr, s.Body)
		fr.loops--
		if err != nil {
			return err
		}
		e.close()

	default:
		return diag.Errorf(diag.GenInternal, stmt.Position().Span, stmt.Line(), "unexpected statement %s", stmt.Kind())
	}
	return nil
}

// display lowers say, exposition, win and lose.
func (g *Generator) display(e *emitter, fr *frame, fn string, values *ast.TestList) error {
	var args []string
	if values != nil {
		for _, v := range values.Items {
			x, err := g.expr(fr, v)
			if err != nil {
				return err
			}
			args = append(args, x)
		}
	}
	e.emit("%s(%s)", fn, strings.Join(args, ", "))
	return nil
}

func (g *Generator) moves(e *emitter, fr *frame, s *ast.MovesStmt) error {
	switch fr.section {
	case sectionItem:
		return misplaced(s, "'moves' can only be used inside a scene")
	case sectionCleanup:
		return misplaced(s, "'moves' is not allowed in cleanup")
	}
	if *fr.moves {
		return diag.Errorf(diag.GenDuplicateMoves, s.Position().Span, s.Line(),
			"scene $%d already declares its moves", fr.scene.ID)
	}
	*fr.moves = true

	entries := make([]string, 0, len(s.Moves))
	for _, m := range s.Moves {
		if err := g.target(s, m.Scene); err != nil {
			return err
		}
		entries = append(entries, fmt.Sprintf("%s: %d", strconv.Quote(m.Dir.String()), m.Scene))
	}
	e.emit("moves = map[string]int{%s}", strings.Join(entries, ", "))
	return nil
}

func (g *Generator) assign(e *emitter, fr *frame, s *ast.AssignStmt) error {
	v, err := g.expr(fr, s.Value)
	if err != nil {
		return err
	}
	name := strconv.Quote(s.Name)
	switch {
	case s.God:
		// the initialiser only runs the first time
		e.open("if !hasGod(%s) {", name)
		e.emit("setGod(%s, %s)", name, v)
		e.close()
	case g.isGod(fr, s.Name):
		e.emit("setGod(%s, %s)", name, v)
	case fr.section == sectionItem:
		e.emit("o.set(%s, %s)", name, v)
	case g.syms.IsGod(s.Name):
		e.emit("setGod(%s, %s)", name, v)
	default:
		e.emit("s.%s = %s", localField(s.Name), v)
	}
	return nil
}

func misplaced(n ast.Node, format string, args ...any) error {
	return diag.Errorf(diag.GenMisplaced, n.Position().Span, n.Line(), format, args...)
}
