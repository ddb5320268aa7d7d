package parser

import (
	"narratr/internal/ast"
	"narratr/internal/diag"
	"narratr/internal/token"
)

// parseSuite parses the body after a ':'. It is either a simple statement on
// the same line or NEWLINE followed by an indented block. Sections allow the
// block to be missing, which yields an empty Suite.
func (p *Parser) parseSuite(allowEmpty bool) (*ast.Suite, error) {
	if !p.at(token.Newline) {
		stmt, err := p.parseSimpleStatement()
		if err != nil {
			return nil, err
		}
		return &ast.Suite{Pos: stmt.Position(), Stmts: []ast.Stmt{stmt}}, nil
	}
	nl, err := p.advance()
	if err != nil {
		return nil, err
	}
	if !p.at(token.Indent) {
		if allowEmpty {
			return &ast.Suite{Pos: p.pos(nl)}, nil
		}
		return nil, p.unexpectedCode(diag.SynExpectBlock, "an indented block")
	}
	return p.parseIndentedBlock()
}

// parseIndentedBlock: INDENT statement+ DEDENT
func (p *Parser) parseIndentedBlock() (*ast.Suite, error) {
	indent, err := p.expect(token.Indent, "indented block")
	if err != nil {
		return nil, err
	}
	suite := &ast.Suite{Pos: p.pos(indent)}
	for !p.at(token.Dedent) {
		if p.at(token.EOF) {
			return nil, p.unexpected("dedent")
		}
		if p.at(token.Newline) {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		suite.Stmts = append(suite.Stmts, stmt)
	}
	if _, err := p.advance(); err != nil { // DEDENT
		return nil, err
	}
	return suite, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.tok.Kind {
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	default:
		return p.parseSimpleStatement()
	}
}

// parseSimpleStatement parses one line-terminated statement, NEWLINE included.
func (p *Parser) parseSimpleStatement() (ast.Stmt, error) {
	stmt, err := p.parseSimpleBody()
	if err != nil {
		return nil, err
	}
	if err := p.endLine(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseSimpleBody() (ast.Stmt, error) {
	first := p.tok
	pos := p.pos(first)
	switch first.Kind {
	case token.KwSay, token.KwExposition:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		values, err := p.parseTestList()
		if err != nil {
			return nil, err
		}
		if first.Kind == token.KwSay {
			return &ast.SayStmt{Pos: pos, Values: values}, nil
		}
		return &ast.ExpositionStmt{Pos: pos, Values: values}, nil

	case token.KwWin, token.KwLose:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		var values *ast.TestList
		if !p.atOr(token.Newline, token.EOF) {
			var err error
			if values, err = p.parseTestList(); err != nil {
				return nil, err
			}
		}
		if first.Kind == token.KwWin {
			return &ast.WinStmt{Pos: pos, Values: values}, nil
		}
		return &ast.LoseStmt{Pos: pos, Values: values}, nil

	case token.KwBreak:
		_, err := p.advance()
		return &ast.BreakStmt{Pos: pos}, err

	case token.KwContinue:
		_, err := p.advance()
		return &ast.ContinueStmt{Pos: pos}, err

	case token.KwMoves:
		return p.parseMoves()

	case token.KwMoveTo:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		target, err := p.expect(token.SceneID, "scene id after 'moveto'")
		if err != nil {
			return nil, err
		}
		return &ast.MoveToStmt{Pos: pos, Scene: target.Value.(int)}, nil

	case token.KwGod:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expect(token.Ident, "variable name after 'god'")
		if err != nil {
			return nil, err
		}
		return p.parseAssignment(pos, name, true)

	case token.Ident:
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.Kind == token.KwIs {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			return p.parseAssignment(pos, first, false)
		}
	}

	x, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Pos: pos, X: x}, nil
}

// parseAssignment parses `is value` once the name was consumed.
func (p *Parser) parseAssignment(pos ast.Pos, name token.Token, god bool) (ast.Stmt, error) {
	if _, err := p.expect(token.KwIs, "'is'"); err != nil {
		return nil, err
	}
	if name.Text == token.Pocket {
		return nil, diag.Errorf(diag.SemaReservedName, name.Span, name.Line, "cannot assign to '%s'", token.Pocket)
	}
	value, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	return &ast.AssignStmt{Pos: pos, Name: name.Text, God: god, Value: value}, nil
}

// parseMoves: moves dir($N) (, dir($N))*
func (p *Parser) parseMoves() (ast.Stmt, error) {
	kw, err := p.advance()
	if err != nil {
		return nil, err
	}
	stmt := &ast.MovesStmt{Pos: p.pos(kw)}
	for {
		dirTok := p.tok
		dir, ok := direction(dirTok.Kind)
		if !ok {
			return nil, p.unexpected("'left', 'right', 'up' or 'down'")
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LParen, "'('"); err != nil {
			return nil, err
		}
		target, err := p.expect(token.SceneID, "scene id")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, "')'"); err != nil {
			return nil, err
		}
		stmt.Moves = append(stmt.Moves, ast.Move{Pos: p.pos(dirTok), Dir: dir, Scene: target.Value.(int)})
		if !p.at(token.Comma) {
			return stmt, nil
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
}

// parseIf: if test : suite (elif test : suite)* [else : suite]
func (p *Parser) parseIf() (ast.Stmt, error) {
	stmt := &ast.IfStmt{Pos: p.pos(p.tok)}
	for {
		clauseTok, err := p.advance() // 'if' or 'elif'
		if err != nil {
			return nil, err
		}
		cond, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon, "':'"); err != nil {
			return nil, err
		}
		body, err := p.parseSuite(false)
		if err != nil {
			return nil, err
		}
		stmt.Clauses = append(stmt.Clauses, &ast.CondClause{Pos: p.pos(clauseTok), Cond: cond, Body: body})
		if !p.at(token.KwElif) {
			break
		}
	}
	if p.at(token.KwElse) {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon, "':'"); err != nil {
			return nil, err
		}
		body, err := p.parseSuite(false)
		if err != nil {
			return nil, err
		}
		stmt.Else = body
	}
	return stmt, nil
}

// parseWhile: while test : suite
func (p *Parser) parseWhile() (ast.Stmt, error) {
	kw, err := p.advance()
	if err != nil {
		return nil, err
	}
	cond, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon, "':'"); err != nil {
		return nil, err
	}
	body, err := p.parseSuite(false)
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Pos: p.pos(kw), Cond: cond, Body: body}, nil
}
