package parser

import (
	"context"
	"slices"

	"narratr/internal/ast"
	"narratr/internal/diag"
	"narratr/internal/lexer"
	"narratr/internal/source"
	"narratr/internal/symtab"
	"narratr/internal/token"
)

type Options struct {
	Lexer lexer.Options
}

// Parser holds the state of one compilation unit. It is not reusable across goroutines.
type Parser struct {
	lx     *lexer.Lexer
	file   *source.File
	opts   Options
	tok    token.Token // current token
	syms   *symtab.Table
	blocks *ast.Blocks
}

func New(opts Options) *Parser {
	return &Parser{opts: opts}
}

// ParseFile parses file and returns the tree together with the populated symbol table.
func ParseFile(ctx context.Context, file *source.File, opts Options) (*ast.Program, *symtab.Table, error) {
	p := New(opts)
	prog, err := p.Parse(ctx, file)
	if err != nil {
		return nil, nil, err
	}
	return prog, p.Symbols(), nil
}

// Parse builds the program. The first syntax or semantic error stops parsing.
func (p *Parser) Parse(ctx context.Context, file *source.File) (*ast.Program, error) {
	p.file = file
	p.syms = symtab.New()
	p.blocks = ast.NewBlocks()
	if p.lx == nil {
		p.lx = lexer.New(file, p.opts.Lexer)
	} else {
		p.lx.Reset(file)
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}

	start := p.tok
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		if p.at(token.EOF) {
			break
		}
		if err := p.parseBlock(); err != nil {
			return nil, err
		}
	}

	if err := p.bindGods(); err != nil {
		return nil, err
	}
	p.blocks.Pos = p.pos(start)
	return &ast.Program{Pos: p.pos(start), Blocks: p.blocks}, nil
}

// Symbols returns the table filled by the last Parse.
func (p *Parser) Symbols() *symtab.Table {
	return p.syms
}

// advance consumes the current token and returns it.
func (p *Parser) advance() (token.Token, error) {
	prev := p.tok
	next, err := p.lx.Next()
	if err != nil {
		return prev, err
	}
	p.tok = next
	return prev, nil
}

func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.tok.Kind)
}

// peek returns the token after the current one.
func (p *Parser) peek() (token.Token, error) {
	return p.lx.Peek()
}

// expect consumes a token of kind k or fails with a syntax error naming what.
func (p *Parser) expect(k token.Kind, what string) (token.Token, error) {
	if p.at(k) {
		return p.advance()
	}
	return token.Token{}, p.unexpected(what)
}

func (p *Parser) skipNewlines() error {
	for p.at(token.Newline) {
		if _, err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

// endLine accepts NEWLINE, or EOF after the last statement.
func (p *Parser) endLine() error {
	switch {
	case p.at(token.Newline):
		_, err := p.advance()
		return err
	case p.at(token.EOF):
		return nil
	}
	return p.unexpectedCode(diag.SynExpectNewline, "end of line")
}

func (p *Parser) unexpected(want string) error {
	return p.unexpectedCode(diag.SynUnexpectedToken, want)
}

func (p *Parser) unexpectedCode(code diag.Code, want string) error {
	return diag.Errorf(code, p.tok.Span, p.tok.Line, "Syntax error at %s: expected %s", describe(p.tok), want)
}

func (p *Parser) semantic(code diag.Code, n ast.Node, format string, args ...any) error {
	return diag.Errorf(code, n.Position().Span, n.Line(), format, args...)
}

func (p *Parser) pos(tok token.Token) ast.Pos {
	return ast.At(tok.Span, tok.Line)
}

// describe renders a token for error messages.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Newline:
		return "end of line"
	case token.Indent:
		return "indentation"
	case token.Dedent:
		return "dedent"
	case token.EOF:
		return "end of file"
	}
	return "'" + tok.Text + "'"
}
