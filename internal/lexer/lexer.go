package lexer

import (
	"narratr/internal/diag"
	"narratr/internal/source"
	"narratr/internal/token"
)

// Lexer turns narratr source into tokens, synthesising NEWLINE, INDENT and DEDENT
// from line structure. Errors are fatal: once Next fails it keeps returning the same error.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	indents     []int         // open indentation widths, bottom is always 0
	pending     []token.Token // queued DEDENTs
	atLineStart bool
	last        token.Kind
	emitted     bool
	done        bool
	err         error

	look *token.Token
}

func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{opts: opts}
	lx.Reset(file)
	return lx
}

// Reset stages new input and forgets all layout state.
func (lx *Lexer) Reset(file *source.File) {
	lx.file = file
	lx.cursor = NewCursor(file)
	lx.indents = append(lx.indents[:0], 0)
	lx.pending = lx.pending[:0]
	lx.atLineStart = true
	lx.last = token.Invalid
	lx.emitted = false
	lx.done = false
	lx.err = nil
	lx.look = nil
}

// Next returns the next token. After EOF it returns EOF forever.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok, nil
	}
	if lx.err != nil {
		return lx.invalid(), lx.err
	}
	tok, err := lx.next()
	if err != nil {
		lx.err = err
		return lx.invalid(), err
	}
	lx.last = tok.Kind
	lx.emitted = true
	return tok, nil
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() (token.Token, error) {
	tok, err := lx.Next()
	if err != nil {
		return tok, err
	}
	lx.look = &tok
	return tok, nil
}

// Depth reports how many indentation levels are open.
func (lx *Lexer) Depth() int {
	return len(lx.indents) - 1
}

func (lx *Lexer) next() (token.Token, error) {
	if len(lx.pending) > 0 {
		tok := lx.pending[0]
		lx.pending = lx.pending[1:]
		return tok, nil
	}
	if lx.done {
		return lx.layout(token.EOF, 0), nil
	}

	for {
		if lx.atLineStart {
			tok, ok, err := lx.lineStart()
			if err != nil || ok {
				return tok, err
			}
			if lx.atLineStart {
				continue // blank or comment-only line
			}
		}

		lx.skipSpaces()
		if lx.cursor.EOF() {
			return lx.finish(), nil
		}

		switch ch := lx.cursor.Peek(); {
		case ch == '%':
			lx.skipComment()
		case ch == '\n':
			lx.cursor.Bump()
			lx.atLineStart = true
			if lx.needNewline() {
				return lx.newlineAt(lx.cursor.Off - 1), nil
			}
		default:
			return lx.scanToken()
		}
	}
}

// lineStart measures indentation of the current line. It returns ok=true with an
// INDENT or DEDENT, or leaves atLineStart set when the line was blank.
func (lx *Lexer) lineStart() (token.Token, bool, error) {
	start := lx.cursor.Mark()
	width := lx.skipSpaces()

	switch lx.cursor.Peek() {
	case '\n':
		lx.cursor.Bump()
		return token.Token{}, false, nil
	case '%':
		lx.skipComment()
		if lx.cursor.EOF() {
			lx.atLineStart = false
			return token.Token{}, false, nil
		}
		lx.cursor.Bump()
		return token.Token{}, false, nil
	case 0:
		if lx.cursor.EOF() {
			lx.atLineStart = false
			return token.Token{}, false, nil
		}
	}

	lx.atLineStart = false
	top := lx.indents[len(lx.indents)-1]
	switch {
	case width > top:
		lx.indents = append(lx.indents, width)
		tok := lx.layout(token.Indent, width)
		tok.Span = lx.cursor.SpanFrom(start)
		return tok, true, nil
	case width < top:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > width {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.pending = append(lx.pending, lx.layout(token.Dedent, width))
		}
		if lx.indents[len(lx.indents)-1] != width {
			lx.pending = lx.pending[:0]
			line := lx.lineOf(lx.cursor.Off)
			return token.Token{}, false, diag.Errorf(diag.LexBadIndent, lx.cursor.SpanFrom(start), line,
				"Unindent does not match any outer indentation level")
		}
		tok := lx.pending[0]
		lx.pending = lx.pending[1:]
		return tok, true, nil
	}
	return token.Token{}, false, nil
}

// finish emits the trailing NEWLINE, closes every open level and marks EOF.
func (lx *Lexer) finish() token.Token {
	lx.done = true
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.pending = append(lx.pending, lx.layout(token.Dedent, 0))
	}
	lx.pending = append(lx.pending, lx.layout(token.EOF, 0))
	if lx.needNewline() {
		return lx.newlineAt(lx.cursor.Off)
	}
	tok := lx.pending[0]
	lx.pending = lx.pending[1:]
	return tok
}

func (lx *Lexer) needNewline() bool {
	return lx.emitted && lx.last != token.Newline && lx.last != token.Indent && lx.last != token.Dedent
}

// skipSpaces consumes blanks and returns their count. Tabs count as one column.
func (lx *Lexer) skipSpaces() int {
	n := 0
	for {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r', '\f':
			lx.cursor.Bump()
			n++
		default:
			return n
		}
	}
}

// skipComment consumes '%' up to, not including, the line break.
func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) layout(kind token.Kind, width int) token.Token {
	off := lx.cursor.Off
	tok := token.Token{
		Kind: kind,
		Span: source.Span{File: lx.file.ID, Start: off, End: off},
		Line: lx.lineOf(off),
		Col:  lx.colOf(off),
	}
	if kind == token.Indent || kind == token.Dedent {
		tok.Value = width
	}
	return tok
}

func (lx *Lexer) newlineAt(off uint32) token.Token {
	end := off
	if end < lx.cursor.Limit {
		end++
	}
	return token.Token{
		Kind: token.Newline,
		Span: source.Span{File: lx.file.ID, Start: off, End: end},
		Text: "\n",
		Line: lx.lineOf(off),
		Col:  lx.colOf(off),
	}
}

func (lx *Lexer) invalid() token.Token {
	return token.Token{Kind: token.Invalid, Span: source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}}
}

func (lx *Lexer) lineOf(off uint32) int {
	return int(lx.file.Position(off).Line)
}

func (lx *Lexer) colOf(off uint32) int {
	return int(lx.file.Position(off).Col)
}
