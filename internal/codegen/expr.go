package codegen

import (
	"strconv"
	"strings"

	"narratr/internal/ast"
	"narratr/internal/diag"
)

var arithHelpers = map[ast.ExprBinaryOp]string{
	ast.ExprBinaryAdd:    "add",
	ast.ExprBinarySub:    "sub",
	ast.ExprBinaryMul:    "mul",
	ast.ExprBinaryDiv:    "div",
	ast.ExprBinaryIntDiv: "idiv",
}

// expr lowers e to a Go expression of type any, or bool for tests.
func (g *Generator) expr(fr *frame, e ast.Expr) (string, error) {
	switch x := e.(type) {
	case *ast.IntLit:
		return "int64(" + strconv.FormatInt(x.Value, 10) + ")", nil
	case *ast.FloatLit:
		return "float64(" + strconv.FormatFloat(x.Value, 'g', -1, 64) + ")", nil
	case *ast.StringLit:
		return strconv.Quote(x.Value), nil
	case *ast.BoolLit:
		return strconv.FormatBool(x.Value), nil
	case *ast.ListLit:
		items, err := g.exprs(fr, x.Elems)
		if err != nil {
			return "", err
		}
		return "[]any{" + items + "}", nil
	case *ast.ParenExpr:
		inner, err := g.expr(fr, x.X)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case *ast.Ident:
		return g.ident(fr, x)
	case *ast.UnaryExpr:
		return g.unary(fr, x)
	case *ast.BinaryExpr:
		return g.binary(fr, x)
	case *ast.CallExpr:
		return g.call(fr, x)
	case *ast.MemberExpr:
		if id, ok := x.X.(*ast.Ident); ok && fr.section == sectionItem && g.isItemSelf(fr, id) {
			return "o.get(" + strconv.Quote(x.Name) + ")", nil
		}
		recv, err := g.expr(fr, x.X)
		if err != nil {
			return "", err
		}
		return "attr(" + recv + ", " + strconv.Quote(x.Name) + ")", nil
	case *ast.IndexExpr:
		recv, err := g.expr(fr, x.X)
		if err != nil {
			return "", err
		}
		at, err := g.expr(fr, x.Index)
		if err != nil {
			return "", err
		}
		return "index(" + recv + ", " + at + ")", nil
	}
	return "", diag.Errorf(diag.GenInternal, e.Position().Span, e.Line(), "unexpected expression %s", e.Kind())
}

func (g *Generator) exprs(fr *frame, list []ast.Expr) (string, error) {
	out := make([]string, len(list))
	for i, x := range list {
		s, err := g.expr(fr, x)
		if err != nil {
			return "", err
		}
		out[i] = s
	}
	return strings.Join(out, ", "), nil
}

// cond lowers a test used as an if or while condition.
func (g *Generator) cond(fr *frame, e ast.Expr) (string, error) {
	x, err := g.expr(fr, e)
	if err != nil {
		return "", err
	}
	return "truthy(" + x + ")", nil
}

func (g *Generator) unary(fr *frame, u *ast.UnaryExpr) (string, error) {
	x, err := g.expr(fr, u.X)
	if err != nil {
		return "", err
	}
	switch u.Op {
	case ast.ExprUnaryNot:
		return "!truthy(" + x + ")", nil
	case ast.ExprUnaryNeg:
		return "neg(" + x + ")", nil
	default:
		return "pos(" + x + ")", nil
	}
}

func (g *Generator) binary(fr *frame, b *ast.BinaryExpr) (string, error) {
	l, err := g.expr(fr, b.Left)
	if err != nil {
		return "", err
	}
	r, err := g.expr(fr, b.Right)
	if err != nil {
		return "", err
	}
	if fn, ok := arithHelpers[b.Op]; ok {
		return fn + "(" + l + ", " + r + ")", nil
	}
	switch b.Op {
	case ast.ExprBinaryOr:
		return "(truthy(" + l + ") || truthy(" + r + "))", nil
	case ast.ExprBinaryAnd:
		return "(truthy(" + l + ") && truthy(" + r + "))", nil
	case ast.ExprBinaryEq:
		return "equal(" + l + ", " + r + ")", nil
	case ast.ExprBinaryNotEq:
		return "!equal(" + l + ", " + r + ")", nil
	case ast.ExprBinaryLess, ast.ExprBinaryGreater, ast.ExprBinaryLessEq, ast.ExprBinaryGreaterEq:
		return "compare(" + strconv.Quote(b.Op.String()) + ", " + l + ", " + r + ")", nil
	}
	return "", diag.Errorf(diag.GenInternal, b.Position().Span, b.Line(), "unexpected operator %s", b.Op)
}

// isItemSelf reports whether id names the item being built, so `key.color`
// inside item key reads its own attribute.
func (g *Generator) isItemSelf(fr *frame, id *ast.Ident) bool {
	if fr.item == nil || id.Name != fr.item.Name {
		return false
	}
	_, shadowed := g.syms.Get(id.Name, fr.scope)
	return !shadowed
}
