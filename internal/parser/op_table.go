package parser

import (
	"narratr/internal/ast"
	"narratr/internal/token"
)

// Binary operator precedence. Higher binds tighter; 'not' sits between 'and' and comparisons.
const (
	precOr             = 1
	precAnd            = 2
	precNot            = 3
	precComparison     = 4
	precAdditive       = 5
	precMultiplicative = 6
)

// binaryPrec returns the precedence of kind as a binary operator, or -1.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.KwOr:
		return precOr
	case token.KwAnd:
		return precAnd
	case token.Equals, token.NotEq, token.Lt, token.Gt, token.LtEq, token.GtEq:
		return precComparison
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.SlashSlash:
		return precMultiplicative
	default:
		return -1
	}
}

func binaryOp(kind token.Kind) ast.ExprBinaryOp {
	switch kind {
	case token.KwOr:
		return ast.ExprBinaryOr
	case token.KwAnd:
		return ast.ExprBinaryAnd
	case token.Equals:
		return ast.ExprBinaryEq
	case token.NotEq:
		return ast.ExprBinaryNotEq
	case token.Lt:
		return ast.ExprBinaryLess
	case token.Gt:
		return ast.ExprBinaryGreater
	case token.LtEq:
		return ast.ExprBinaryLessEq
	case token.GtEq:
		return ast.ExprBinaryGreaterEq
	case token.Plus:
		return ast.ExprBinaryAdd
	case token.Minus:
		return ast.ExprBinarySub
	case token.Star:
		return ast.ExprBinaryMul
	case token.Slash:
		return ast.ExprBinaryDiv
	case token.SlashSlash:
		return ast.ExprBinaryIntDiv
	}
	panic("parser: binaryOp on non-operator " + kind.String())
}

func unaryOp(kind token.Kind) (ast.ExprUnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.ExprUnaryNeg, true
	case token.Plus:
		return ast.ExprUnaryPos, true
	default:
		return 0, false
	}
}

func direction(kind token.Kind) (ast.Direction, bool) {
	switch kind {
	case token.KwLeft:
		return ast.DirLeft, true
	case token.KwRight:
		return ast.DirRight, true
	case token.KwUp:
		return ast.DirUp, true
	case token.KwDown:
		return ast.DirDown, true
	}
	return 0, false
}
