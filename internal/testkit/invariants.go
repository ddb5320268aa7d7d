// Package testkit holds structural checks shared by the lexer, parser and
// fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"narratr/internal/ast"
	"narratr/internal/source"
	"narratr/internal/token"
)

// CheckLayout verifies that INDENT and DEDENT tokens pair up and that the
// stream ends with EOF.
func CheckLayout(toks []token.Token) error {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		return fmt.Errorf("token stream does not end with EOF")
	}
	depth := 0
	for i, tok := range toks {
		switch tok.Kind {
		case token.Indent:
			depth++
		case token.Dedent:
			depth--
			if depth < 0 {
				return fmt.Errorf("token %d: DEDENT without matching INDENT (line %d)", i, tok.Line)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%d INDENT token(s) never closed", depth)
	}
	return nil
}

// CheckSpanInvariants walks prog and checks every positioned node:
// 1) its line lies within the file
// 2) a non-empty span points into sf and stays within its content
// Synthetic containers (line 0) must carry an empty span.
func CheckSpanInvariants(prog ast.Node, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("content length overflow: %w", err)
	}
	lines := len(sf.LineIdx) + 1

	var check func(n ast.Node) error
	check = func(n ast.Node) error {
		pos := n.Position()
		switch {
		case n.Line() == 0:
			if !pos.Span.Empty() {
				return fmt.Errorf("%s: span %v without a line", n.Kind(), pos.Span)
			}
		case n.Line() < 0 || n.Line() > lines:
			return fmt.Errorf("%s: line %d outside 1..%d", n.Kind(), n.Line(), lines)
		case !pos.Span.Empty():
			if pos.Span.File != sf.ID {
				return fmt.Errorf("%s: span points to file %d, want %d", n.Kind(), pos.Span.File, sf.ID)
			}
			if pos.Span.End < pos.Span.Start || pos.Span.End > size {
				return fmt.Errorf("%s: span %v outside content (%d bytes)", n.Kind(), pos.Span, size)
			}
		}
		for _, c := range ast.Children(n) {
			if absent(c) {
				continue
			}
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	return check(prog)
}

func absent(n ast.Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *ast.Suite:
		return n == nil
	case *ast.TestList:
		return n == nil
	}
	return false
}
