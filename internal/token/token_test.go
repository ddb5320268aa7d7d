package token_test

import (
	"testing"

	"narratr/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"scene":      token.KwScene,
		"exposition": token.KwExposition,
		"moveto":     token.KwMoveTo,
		"god":        token.KwGod,
		"elif":       token.KwElif,
		"true":       token.KwTrue,
	}
	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", lexeme, got, ok, want)
		}
	}

	for _, s := range []string{"Scene", "SAY", "pocket", "goto", "x"} {
		if k, ok := token.LookupKeyword(s); ok {
			t.Errorf("LookupKeyword(%q) = %v, want not a keyword", s, k)
		}
	}
}

func TestEveryKeywordIsKeywordKind(t *testing.T) {
	for _, w := range token.Keywords() {
		k, _ := token.LookupKeyword(w)
		if !(token.Token{Kind: k}).IsKeyword() {
			t.Errorf("%q maps to %v which is outside the keyword range", w, k)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    token.Kind
		want string
	}{
		{token.SceneID, "SCENEID"},
		{token.Ident, "ID"},
		{token.Indent, "INDENT"},
		{token.SlashSlash, "FLOORDIVIDE"},
		{token.Kind(250), "INVALID"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestEndsOperand(t *testing.T) {
	for _, k := range []token.Kind{token.Ident, token.IntLit, token.RParen, token.RBracket} {
		if !(token.Token{Kind: k}).EndsOperand() {
			t.Errorf("%v should end an operand", k)
		}
	}
	for _, k := range []token.Kind{token.Plus, token.LParen, token.Equals, token.Newline, token.KwSay} {
		if (token.Token{Kind: k}).EndsOperand() {
			t.Errorf("%v must not end an operand", k)
		}
	}
}
