package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline terminates a logical line. Runs of blank lines collapse into one.
	Newline
	// Indent opens a deeper indentation level.
	Indent
	// Dedent closes one indentation level.
	Dedent

	// Ident represents an identifier token.
	Ident
	// SceneID is a '$' followed by digits.
	SceneID
	// IntLit is an integer literal, optionally signed.
	IntLit
	// FloatLit is a float literal, optionally signed.
	FloatLit
	// StringLit is a double-quoted string literal.
	StringLit

	KwScene      // scene
	KwSetup      // setup
	KwAction     // action
	KwCleanup    // cleanup
	KwSay        // say
	KwWin        // win
	KwLose       // lose
	KwStart      // start
	KwExposition // exposition
	KwMoves      // moves
	KwMoveTo     // moveto
	KwLeft       // left
	KwRight      // right
	KwUp         // up
	KwDown       // down
	KwIs         // is
	KwItem       // item
	KwIf         // if
	KwElif       // elif
	KwElse       // else
	KwWhile      // while
	KwAnd        // and
	KwOr         // or
	KwNot        // not
	KwTrue       // true
	KwFalse      // false
	KwGod        // god
	KwContinue   // continue
	KwBreak      // break

	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
	LParen     // (
	RParen     // )
	Colon      // :
	Comma      // ,
	Dot        // .
	Equals     // == or =
	NotEq      // !=
	Lt         // <
	Gt         // >
	LtEq       // <=
	GtEq       // >=
	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	SlashSlash // //

	kindCount
)

var kindNames = [...]string{
	Invalid:      "INVALID",
	EOF:          "EOF",
	Newline:      "NEWLINE",
	Indent:       "INDENT",
	Dedent:       "DEDENT",
	Ident:        "ID",
	SceneID:      "SCENEID",
	IntLit:       "INTEGER",
	FloatLit:     "FLOAT",
	StringLit:    "STRING",
	KwScene:      "SCENE",
	KwSetup:      "SETUP",
	KwAction:     "ACTION",
	KwCleanup:    "CLEANUP",
	KwSay:        "SAY",
	KwWin:        "WIN",
	KwLose:       "LOSE",
	KwStart:      "START",
	KwExposition: "EXPOSITION",
	KwMoves:      "MOVES",
	KwMoveTo:     "MOVETO",
	KwLeft:       "LEFT",
	KwRight:      "RIGHT",
	KwUp:         "UP",
	KwDown:       "DOWN",
	KwIs:         "IS",
	KwItem:       "ITEM",
	KwIf:         "IF",
	KwElif:       "ELIF",
	KwElse:       "ELSE",
	KwWhile:      "WHILE",
	KwAnd:        "AND",
	KwOr:         "OR",
	KwNot:        "NOT",
	KwTrue:       "TRUE",
	KwFalse:      "FALSE",
	KwGod:        "GOD",
	KwContinue:   "CONTINUE",
	KwBreak:      "BREAK",
	LBrace:       "LBRACE",
	RBrace:       "RBRACE",
	LBracket:     "LBRACKET",
	RBracket:     "RBRACKET",
	LParen:       "LPAREN",
	RParen:       "RPAREN",
	Colon:        "COLON",
	Comma:        "COMMA",
	Dot:          "DOT",
	Equals:       "EQUALS",
	NotEq:        "NOTEQ",
	Lt:           "LT",
	Gt:           "GT",
	LtEq:         "LTEQ",
	GtEq:         "GTEQ",
	Plus:         "PLUS",
	Minus:        "MINUS",
	Star:         "TIMES",
	Slash:        "DIVIDE",
	SlashSlash:   "FLOORDIVIDE",
}

// String returns the upper-case token name used in token dumps.
func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "INVALID"
}
