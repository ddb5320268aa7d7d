package lexer

import (
	"strconv"

	"narratr/internal/diag"
	"narratr/internal/source"
	"narratr/internal/token"
)

// scanToken dispatches on the first byte of a significant token.
func (lx *Lexer) scanToken() (token.Token, error) {
	ch := lx.cursor.Peek()
	var (
		tok token.Token
		err error
	)
	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch) || (ch == '.' && lx.isNumberAfterDot()):
		tok, err = lx.scanNumber()
	case (ch == '+' || ch == '-') && lx.signStartsNumber():
		tok, err = lx.scanNumber()
	case ch == '"':
		tok, err = lx.scanString()
	case ch == '$':
		tok, err = lx.scanSceneID()
	default:
		tok, err = lx.scanOperatorOrPunct()
	}
	if err != nil {
		return tok, err
	}
	if int(tok.Span.Len()) > lx.opts.maxTokenLength() {
		return tok, diag.Errorf(diag.LexTokenTooLong, tok.Span, tok.Line, "token exceeds %d bytes", lx.opts.maxTokenLength())
	}
	return tok, nil
}

// signStartsNumber reports whether a leading '+' or '-' belongs to a number literal:
// a digit must follow and the previous token must not end an operand.
func (lx *Lexer) signStartsNumber() bool {
	if lx.emitted && (token.Token{Kind: lx.last}).EndsOperand() {
		return false
	}
	m := lx.cursor.Mark()
	defer lx.cursor.Reset(m)
	lx.cursor.Bump()
	return isDec(lx.cursor.Peek()) || lx.isNumberAfterDot()
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Line: lx.lineOf(sp.Start),
		Col:  lx.colOf(sp.Start),
	}
}

func (lx *Lexer) fail(code diag.Code, sp source.Span, format string, args ...any) (token.Token, error) {
	return lx.invalid(), diag.Errorf(code, sp, lx.lineOf(sp.Start), format, args...)
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
		switch k {
		case token.KwTrue:
			tok.Value = true
		case token.KwFalse:
			tok.Value = false
		}
		return tok
	}
	tok.Value = tok.Text
	return tok
}

// scanNumber accepts an optional sign, digits, and an optional fraction: 12, -3, 1.5, .5, 3.
func (lx *Lexer) scanNumber() (token.Token, error) {
	start := lx.cursor.Mark()
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	kind := token.IntLit
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		return lx.fail(diag.LexBadNumber, sp, "Malformed number '%s'", lx.file.Content[sp.Start:sp.End])
	}

	tok := lx.emit(kind, start)
	if kind == token.IntLit {
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return lx.fail(diag.LexBadNumber, tok.Span, "Integer literal '%s' out of range", tok.Text)
		}
		tok.Value = v
		return tok, nil
	}
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		return lx.fail(diag.LexBadNumber, tok.Span, "Malformed number '%s'", tok.Text)
	}
	tok.Value = v
	return tok, nil
}

// scanString reads a double-quoted literal and decodes its escapes into Value.
func (lx *Lexer) scanString() (token.Token, error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	var buf []byte
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch b {
		case '"':
			tok := lx.emit(token.StringLit, start)
			tok.Value = string(buf)
			return tok, nil
		case '\n':
			return lx.fail(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "Newline in string literal")
		case '\\':
			if lx.cursor.EOF() {
				break
			}
			esc := lx.cursor.Bump()
			r, ok := unescape(esc)
			if !ok {
				return lx.fail(diag.LexBadEscape, lx.cursor.SpanFrom(start), "Unknown escape sequence '\\%c'", esc)
			}
			buf = append(buf, r)
		default:
			buf = append(buf, b)
		}
	}
	return lx.fail(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "Unterminated string literal")
}

func unescape(b byte) (byte, bool) {
	switch b {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	case '\'':
		return '\'', true
	}
	return 0, false
}

// scanSceneID reads '$' digits. Value holds the numeric id.
func (lx *Lexer) scanSceneID() (token.Token, error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'
	if !isDec(lx.cursor.Peek()) {
		return lx.fail(diag.LexBadSceneID, lx.cursor.SpanFrom(start), "Scene id must be '$' followed by digits")
	}
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.SceneID, start)
	id, err := strconv.Atoi(tok.Text[1:])
	if err != nil {
		return lx.fail(diag.LexBadSceneID, tok.Span, "Scene id '%s' out of range", tok.Text)
	}
	tok.Value = id
	return tok, nil
}

func (lx *Lexer) scanOperatorOrPunct() (token.Token, error) {
	start := lx.cursor.Mark()
	switch {
	case lx.try2('=', '='):
		return lx.emit(token.Equals, start), nil
	case lx.try2('!', '='):
		return lx.emit(token.NotEq, start), nil
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start), nil
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start), nil
	case lx.try2('/', '/'):
		return lx.emit(token.SlashSlash, start), nil
	}

	ch := lx.cursor.Bump()
	var kind token.Kind
	switch ch {
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case ':':
		kind = token.Colon
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
	case '=':
		kind = token.Equals
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	default:
		lx.cursor.Reset(start)
		r, size := lx.peekRune()
		lx.cursor.Off += uint32(size) // #nosec G115 -- rune size is at most 4
		return lx.fail(diag.LexUnknownChar, lx.cursor.SpanFrom(start), "Unrecognized character '%c'", r)
	}
	return lx.emit(kind, start), nil
}
