package token

var keywords = map[string]Kind{
	"scene":      KwScene,
	"setup":      KwSetup,
	"action":     KwAction,
	"cleanup":    KwCleanup,
	"say":        KwSay,
	"win":        KwWin,
	"lose":       KwLose,
	"start":      KwStart,
	"exposition": KwExposition,
	"moves":      KwMoves,
	"moveto":     KwMoveTo,
	"left":       KwLeft,
	"right":      KwRight,
	"up":         KwUp,
	"down":       KwDown,
	"is":         KwIs,
	"item":       KwItem,
	"if":         KwIf,
	"elif":       KwElif,
	"else":       KwElse,
	"while":      KwWhile,
	"and":        KwAnd,
	"or":         KwOr,
	"not":        KwNot,
	"true":       KwTrue,
	"false":      KwFalse,
	"god":        KwGod,
	"continue":   KwContinue,
	"break":      KwBreak,
}

// Pocket is the reserved identifier naming the global inventory.
const Pocket = "pocket"

// LookupKeyword reports whether ident is a keyword. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keywords returns every reserved word in no particular order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}
