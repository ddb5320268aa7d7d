package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadIndent          Code = 1004
	LexBadSceneID         Code = 1005
	LexBadEscape          Code = 1006
	LexTokenTooLong       Code = 1007

	// Syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectExpression   Code = 2002
	SynExpectNewline      Code = 2003
	SynExpectSection      Code = 2004
	SynUnexpectedTopLevel Code = 2005
	SynExpectBlock        Code = 2006

	// Semantic (parse-time checks against the symbol table)
	SemaInfo            Code = 3000
	SemaDuplicateSymbol Code = 3001
	SemaGodConflict     Code = 3002
	SemaTypeError       Code = 3003
	SemaDuplicateParam  Code = 3004
	SemaReservedName    Code = 3005
	SemaUndefinedSymbol Code = 3006

	// Code generation
	GenInfo           Code = 4000
	GenMissingStart   Code = 4001
	GenMultipleStart  Code = 4002
	GenUnknownStart   Code = 4003
	GenUnknownScene   Code = 4004
	GenPocketArity    Code = 4005
	GenPocketMethod   Code = 4006
	GenMisplaced      Code = 4007
	GenDuplicateMoves Code = 4008
	GenUndefinedName  Code = 4009
	GenNotCallable    Code = 4010
	GenArity          Code = 4011
	GenInternal       Code = 4012

	// IO
	IOLoadFileError Code = 5001
	IOWriteError    Code = 5002

	// Project
	PrjManifest Code = 6001
	PrjVersion  Code = 6002
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unrecognized character",
	LexUnterminatedString: "Unterminated string literal",
	LexBadNumber:          "Malformed number literal",
	LexBadIndent:          "Unindent does not match any outer indentation level",
	LexBadSceneID:         "Scene id must be '$' followed by digits",
	LexBadEscape:          "Unknown escape sequence",
	LexTokenTooLong:       "Token exceeds maximum length",

	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectExpression:   "Expected expression",
	SynExpectNewline:      "Expected end of line",
	SynExpectSection:      "Scene needs setup, action and cleanup in order",
	SynUnexpectedTopLevel: "Expected scene, item or start declaration",
	SynExpectBlock:        "Expected an indented block",

	SemaInfo:            "Semantic information",
	SemaDuplicateSymbol: "Duplicate declaration",
	SemaGodConflict:     "God variable conflicts with an existing name",
	SemaTypeError:       "Type error",
	SemaDuplicateParam:  "Duplicate item parameter",
	SemaReservedName:    "Reserved name",
	SemaUndefinedSymbol: "Undefined symbol",

	GenInfo:           "Code generation information",
	GenMissingStart:   "Missing start scene declaration",
	GenMultipleStart:  "Multiple start scene declarations",
	GenUnknownStart:   "Start scene does not exist",
	GenUnknownScene:   "Scene does not exist",
	GenPocketArity:    "Wrong number of pocket arguments",
	GenPocketMethod:   "Unknown pocket operation",
	GenMisplaced:      "Statement not allowed here",
	GenDuplicateMoves: "More than one moves declaration in scene",
	GenUndefinedName:  "Undefined name",
	GenNotCallable:    "Value is not callable",
	GenArity:          "Wrong number of arguments",
	GenInternal:       "Internal compiler error",

	IOLoadFileError: "Failed to load source",
	IOWriteError:    "Failed to write output",

	PrjManifest: "Invalid narratr.toml",
	PrjVersion:  "Compiler version too old for project",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Phase reports which compiler stage owns the code.
func (c Code) Phase() Phase {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return PhaseLexical
	case ic >= 2000 && ic < 3000:
		return PhaseSyntax
	case ic >= 3000 && ic < 4000:
		return PhaseSemantic
	case ic >= 4000 && ic < 5000:
		return PhaseCodegen
	}
	return PhaseDriver
}
