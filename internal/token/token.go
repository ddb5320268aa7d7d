package token

import (
	"narratr/internal/source"
)

// Token is a single lexeme with its decoded value and position.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Value any // int64, float64, string, bool, scene id (int) or indent width (int)
	Line  int
	Col   int
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwScene && t.Kind <= KwBreak
}

// IsDirection reports whether the token names a movement direction.
func (t Token) IsDirection() bool {
	switch t.Kind {
	case KwLeft, KwRight, KwUp, KwDown:
		return true
	default:
		return false
	}
}

// IsLayout reports whether the token is NEWLINE, INDENT or DEDENT.
func (t Token) IsLayout() bool {
	return t.Kind == Newline || t.Kind == Indent || t.Kind == Dedent
}

// EndsOperand reports whether a following '+' or '-' must be a binary operator.
func (t Token) EndsOperand() bool {
	switch t.Kind {
	case Ident, SceneID, IntLit, FloatLit, StringLit, KwTrue, KwFalse, RParen, RBracket:
		return true
	default:
		return false
	}
}
