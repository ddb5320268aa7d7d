package parser

import (
	"errors"
	"fmt"
	"strconv"

	"narratr/internal/ast"
	"narratr/internal/diag"
	"narratr/internal/symtab"
	"narratr/internal/token"
)

// parseBlock dispatches on the first token of a top-level declaration.
func (p *Parser) parseBlock() error {
	switch p.tok.Kind {
	case token.KwScene:
		return p.parseScene()
	case token.KwItem:
		return p.parseItem()
	case token.KwStart:
		return p.parseStart()
	default:
		return p.unexpectedCode(diag.SynUnexpectedTopLevel, "'scene', 'item' or 'start'")
	}
}

// parseScene: scene $N { NEWLINE INDENT setup action cleanup DEDENT }
func (p *Parser) parseScene() error {
	kw, err := p.advance()
	if err != nil {
		return err
	}
	idTok, err := p.expect(token.SceneID, "scene id")
	if err != nil {
		return err
	}
	scene := &ast.SceneBlock{Pos: p.pos(kw), ID: idTok.Value.(int)}

	if _, err = p.expect(token.LBrace, "'{'"); err != nil {
		return err
	}
	if _, err = p.expect(token.Newline, "end of line after '{'"); err != nil {
		return err
	}
	if _, err = p.expect(token.Indent, "indented scene body"); err != nil {
		return err
	}
	if scene.Setup, err = p.parseSection(token.KwSetup); err != nil {
		return err
	}
	if scene.Action, err = p.parseSection(token.KwAction); err != nil {
		return err
	}
	if scene.Cleanup, err = p.parseSection(token.KwCleanup); err != nil {
		return err
	}
	if _, err = p.expect(token.Dedent, "'}' after cleanup"); err != nil {
		return err
	}
	if _, err = p.expect(token.RBrace, "'}'"); err != nil {
		return err
	}
	if err = p.endLine(); err != nil {
		return err
	}

	key := SceneKey(scene.ID)
	if _, err := p.syms.Insert(key, scene, symtab.TypeScene, symtab.Global, false); err != nil {
		return p.duplicate(scene, "Scene "+key, err)
	}
	p.blocks.Scenes[scene.ID] = scene

	scope := symtab.SceneScope(scene.ID)
	for _, body := range []*ast.Suite{scene.Setup, scene.Action, scene.Cleanup} {
		if err := p.declare(CollectDeclarations(body, scope)); err != nil {
			return err
		}
	}
	return nil
}

// parseSection parses `kw : body` where the body may be empty.
func (p *Parser) parseSection(kw token.Kind) (*ast.Suite, error) {
	if !p.at(kw) {
		return nil, p.unexpectedCode(diag.SynExpectSection, "'"+keywordText(kw)+"' section")
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon, "':'"); err != nil {
		return nil, err
	}
	return p.parseSuite(true)
}

// parseItem: item name(params) { NEWLINE [INDENT statements DEDENT] }
func (p *Parser) parseItem() error {
	kw, err := p.advance()
	if err != nil {
		return err
	}
	nameTok, err := p.expect(token.Ident, "item name")
	if err != nil {
		return err
	}
	item := &ast.ItemBlock{Pos: p.pos(kw), Name: nameTok.Text}
	if item.Name == token.Pocket {
		return p.semantic(diag.SemaReservedName, item, "'%s' is reserved and cannot name an item", token.Pocket)
	}

	if _, err = p.expect(token.LParen, "'('"); err != nil {
		return err
	}
	for !p.at(token.RParen) {
		param, err := p.expect(token.Ident, "parameter name")
		if err != nil {
			return err
		}
		item.Params = append(item.Params, param.Text)
		if !p.at(token.Comma) {
			break
		}
		if _, err = p.advance(); err != nil {
			return err
		}
	}
	if _, err = p.expect(token.RParen, "')'"); err != nil {
		return err
	}
	lbrace, err := p.expect(token.LBrace, "'{'")
	if err != nil {
		return err
	}
	if _, err = p.expect(token.Newline, "end of line after '{'"); err != nil {
		return err
	}

	item.Body = &ast.Suite{Pos: p.pos(lbrace)}
	if p.at(token.Indent) {
		if item.Body, err = p.parseIndentedBlock(); err != nil {
			return err
		}
	}
	if _, err = p.expect(token.RBrace, "'}'"); err != nil {
		return err
	}
	if err = p.endLine(); err != nil {
		return err
	}

	if _, err := p.syms.Insert(item.Name, item, symtab.TypeItem, symtab.Global, false); err != nil {
		return p.duplicate(item, fmt.Sprintf("Item '%s'", item.Name), err)
	}
	p.blocks.Items[item.Name] = item

	scope := symtab.ItemScope(item.Name)
	for _, param := range item.Params {
		if param == token.Pocket {
			return p.semantic(diag.SemaReservedName, item, "'%s' is reserved and cannot be a parameter", token.Pocket)
		}
		if _, err := p.syms.Insert(param, nil, symtab.TypeParam, scope, false); err != nil {
			return p.semantic(diag.SemaDuplicateParam, item, "Duplicate parameter '%s' in item '%s'", param, item.Name)
		}
	}
	return p.declare(CollectDeclarations(item.Body, scope))
}

// parseStart: start : $N
func (p *Parser) parseStart() error {
	kw, err := p.advance()
	if err != nil {
		return err
	}
	if _, err = p.expect(token.Colon, "':'"); err != nil {
		return err
	}
	idTok, err := p.expect(token.SceneID, "scene id")
	if err != nil {
		return err
	}
	p.blocks.Starts = append(p.blocks.Starts, &ast.StartState{Pos: p.pos(kw), Scene: idTok.Value.(int)})
	return p.endLine()
}

func (p *Parser) duplicate(n ast.Node, what string, err error) error {
	if errors.Is(err, symtab.ErrDuplicateSymbol) {
		return p.semantic(diag.SemaDuplicateSymbol, n, "%s is already declared", what)
	}
	return p.semantic(diag.GenInternal, n, "%v", err)
}

// declare applies collected assignments to the symbol table in order.
func (p *Parser) declare(decls []Declaration) error {
	for _, d := range decls {
		_, ok := p.syms.Get(d.Symbol, d.Scope)
		switch {
		case ok && d.God:
			return p.semantic(diag.SemaGodConflict, d.Stmt,
				"god variable '%s' conflicts with an existing declaration in %s", d.Symbol, d.Scope)
		case ok:
			// reassignment
		default:
			if _, err := p.syms.Insert(d.Symbol, d.Stmt.Value, symtab.TypeValue, d.Scope, d.God); err != nil {
				return p.semantic(diag.GenInternal, d.Stmt, "%v", err)
			}
		}
	}
	return nil
}

// bindGods marks scene locals that share a name with a god variable declared
// in another scene. God variables live for the whole program, so a plain
// assignment anywhere writes the god store. Item attributes are not affected.
func (p *Parser) bindGods() error {
	for _, e := range p.syms.Entries() {
		if e.God || e.Scope.Kind != symtab.ScopeScene || !p.syms.IsGod(e.Symbol) {
			continue
		}
		if err := p.syms.Update(e.Symbol, e.Value, e.Type, e.Scope, true); err != nil {
			return err
		}
	}
	return nil
}

// SceneKey is the global symbol of scene id.
func SceneKey(id int) string {
	return "$" + strconv.Itoa(id)
}

func keywordText(k token.Kind) string {
	switch k {
	case token.KwSetup:
		return "setup"
	case token.KwAction:
		return "action"
	case token.KwCleanup:
		return "cleanup"
	}
	return k.String()
}
