package parser

import (
	"fmt"

	"narratr/internal/ast"
)

// binaryType infers the value type of `l op r`, rejecting combinations that can
// never succeed at run time. Identifiers stay deferred.
func binaryType(op ast.ExprBinaryOp, l, r ast.ValueType) (ast.ValueType, error) {
	if !op.IsArithmetic() {
		return ast.TypeBoolean, nil
	}
	bad := func() (ast.ValueType, error) {
		return ast.TypeUnknown, fmt.Errorf("unsupported operand types for %s: %s and %s", op, l, r)
	}
	if l == ast.TypeBoolean || r == ast.TypeBoolean {
		return bad()
	}

	if op == ast.ExprBinaryAdd {
		switch {
		case l == ast.TypeString || r == ast.TypeString:
			if stringish(l) && stringish(r) {
				return ast.TypeString, nil
			}
			return bad()
		case l == ast.TypeList || r == ast.TypeList:
			if listish(l) && listish(r) {
				return ast.TypeList, nil
			}
			return bad()
		}
		return numericResult(l, r), nil
	}

	if l == ast.TypeString || r == ast.TypeString || l == ast.TypeList || r == ast.TypeList {
		return bad()
	}
	return numericResult(l, r), nil
}

// numericResult applies float dominance; anything deferred stays deferred.
func numericResult(l, r ast.ValueType) ast.ValueType {
	switch {
	case l == ast.TypeID || r == ast.TypeID:
		return ast.TypeID
	case l == ast.TypeUnknown || r == ast.TypeUnknown:
		return ast.TypeUnknown
	case l == ast.TypeFloat || r == ast.TypeFloat:
		return ast.TypeFloat
	}
	return ast.TypeInteger
}

func unaryType(op ast.ExprUnaryOp, x ast.ValueType) (ast.ValueType, error) {
	switch x {
	case ast.TypeInteger, ast.TypeFloat, ast.TypeID, ast.TypeUnknown:
		return x, nil
	}
	return ast.TypeUnknown, fmt.Errorf("bad operand type for unary %s: %s", op, x)
}

func stringish(t ast.ValueType) bool {
	return t == ast.TypeString || t == ast.TypeID
}

func listish(t ast.ValueType) bool {
	return t == ast.TypeList || t == ast.TypeID
}
