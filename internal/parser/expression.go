package parser

import (
	"narratr/internal/ast"
	"narratr/internal/diag"
	"narratr/internal/token"
)

// parseTest is the entry point for expressions.
func (p *Parser) parseTest() (ast.Expr, error) {
	return p.parseBinaryExpr(precOr)
}

// parseTestList: test (',' test)*
func (p *Parser) parseTestList() (*ast.TestList, error) {
	list := &ast.TestList{Pos: p.pos(p.tok)}
	for {
		x, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, x)
		if !p.at(token.Comma) {
			return list, nil
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
}

// parseBinaryExpr climbs operator precedence: each loop iteration reduces
// `left op right` as soon as the next operator binds no tighter than minPrec.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, error) {
	var (
		left ast.Expr
		err  error
	)
	if minPrec <= precNot {
		left, err = p.parseNotTest()
	} else {
		left, err = p.parseFactor()
	}
	if err != nil {
		return nil, err
	}

	for {
		prec := binaryPrec(p.tok.Kind)
		if prec < 0 || prec < minPrec {
			return left, nil
		}
		opTok, err := p.advance()
		if err != nil {
			return nil, err
		}
		right, err := p.parseBinaryExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		op := binaryOp(opTok.Kind)
		vt, err := binaryType(op, left.ValueType(), right.ValueType())
		if err != nil {
			return nil, diag.Errorf(diag.SemaTypeError, opTok.Span, opTok.Line, "Type error: %v", err)
		}
		left = &ast.BinaryExpr{
			Pos:   ast.At(left.Position().Span.Cover(right.Position().Span), left.Line()),
			Typed: ast.Typed{Type: vt},
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

// parseNotTest: 'not' not_test | comparison
func (p *Parser) parseNotTest() (ast.Expr, error) {
	if !p.at(token.KwNot) {
		return p.parseBinaryExpr(precComparison)
	}
	notTok, err := p.advance()
	if err != nil {
		return nil, err
	}
	x, err := p.parseNotTest()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{
		Pos:   p.pos(notTok),
		Typed: ast.Typed{Type: ast.TypeBoolean},
		Op:    ast.ExprUnaryNot,
		X:     x,
	}, nil
}

// parseFactor: ('+'|'-') factor | power
func (p *Parser) parseFactor() (ast.Expr, error) {
	op, ok := unaryOp(p.tok.Kind)
	if !ok {
		return p.parsePower()
	}
	opTok, err := p.advance()
	if err != nil {
		return nil, err
	}
	x, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	vt, err := unaryType(op, x.ValueType())
	if err != nil {
		return nil, diag.Errorf(diag.SemaTypeError, opTok.Span, opTok.Line, "Type error: %v", err)
	}
	return &ast.UnaryExpr{Pos: p.pos(opTok), Typed: ast.Typed{Type: vt}, Op: op, X: x}, nil
}

// parsePower: atom trailer*
func (p *Parser) parsePower() (ast.Expr, error) {
	x, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.tok.Kind {
		case token.LParen:
			lp, err := p.advance()
			if err != nil {
				return nil, err
			}
			call := &ast.CallExpr{Pos: ast.At(x.Position().Span, lp.Line), Typed: ast.Typed{Type: ast.TypeID}, Fun: x}
			if !p.at(token.RParen) {
				args, err := p.parseTestList()
				if err != nil {
					return nil, err
				}
				call.Args = args.Items
			}
			if _, err := p.expect(token.RParen, "')'"); err != nil {
				return nil, err
			}
			x = call
		case token.Dot:
			dot, err := p.advance()
			if err != nil {
				return nil, err
			}
			name, err := p.expect(token.Ident, "attribute name after '.'")
			if err != nil {
				return nil, err
			}
			x = &ast.MemberExpr{Pos: ast.At(x.Position().Span.Cover(name.Span), dot.Line), Typed: ast.Typed{Type: ast.TypeID}, X: x, Name: name.Text}
		case token.LBracket:
			lb, err := p.advance()
			if err != nil {
				return nil, err
			}
			index, err := p.parseTest()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBracket, "']'"); err != nil {
				return nil, err
			}
			x = &ast.IndexExpr{Pos: ast.At(x.Position().Span, lb.Line), Typed: ast.Typed{Type: ast.TypeID}, X: x, Index: index}
		default:
			return x, nil
		}
	}
}

// parseAtom: '(' test ')' | '[' [testlist] ']' | literal | ID
func (p *Parser) parseAtom() (ast.Expr, error) {
	tok := p.tok
	pos := p.pos(tok)
	switch tok.Kind {
	case token.IntLit:
		_, err := p.advance()
		return &ast.IntLit{Pos: pos, Typed: ast.Typed{Type: ast.TypeInteger}, Value: tok.Value.(int64)}, err
	case token.FloatLit:
		_, err := p.advance()
		return &ast.FloatLit{Pos: pos, Typed: ast.Typed{Type: ast.TypeFloat}, Value: tok.Value.(float64)}, err
	case token.StringLit:
		_, err := p.advance()
		return &ast.StringLit{Pos: pos, Typed: ast.Typed{Type: ast.TypeString}, Value: tok.Value.(string)}, err
	case token.KwTrue, token.KwFalse:
		_, err := p.advance()
		return &ast.BoolLit{Pos: pos, Typed: ast.Typed{Type: ast.TypeBoolean}, Value: tok.Kind == token.KwTrue}, err
	case token.Ident:
		_, err := p.advance()
		return &ast.Ident{Pos: pos, Typed: ast.Typed{Type: ast.TypeID}, Name: tok.Text}, err
	case token.LParen:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, "')'"); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Pos: pos, Typed: ast.Typed{Type: x.ValueType()}, X: x}, nil
	case token.LBracket:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		list := &ast.ListLit{Pos: pos, Typed: ast.Typed{Type: ast.TypeList}}
		if !p.at(token.RBracket) {
			items, err := p.parseTestList()
			if err != nil {
				return nil, err
			}
			list.Elems = items.Items
		}
		if _, err := p.expect(token.RBracket, "']'"); err != nil {
			return nil, err
		}
		return list, nil
	}
	return nil, p.unexpectedCode(diag.SynExpectExpression, "an expression")
}
