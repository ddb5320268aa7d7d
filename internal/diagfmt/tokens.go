package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"narratr/internal/token"
)

type TokenOutput struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Value any    `json:"value,omitempty"`
	Line  int    `json:"line"`
	Col   int    `json:"col"`
}

// FormatTokensPretty prints one token per line: index, kind, value, position.
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%4d  %-11s %-24s %d:%d\n", i+1, tok.Kind, tokenValue(tok), tok.Line, tok.Col); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// tokenValue is the decoded value, falling back to the lexeme.
func tokenValue(tok token.Token) string {
	switch v := tok.Value.(type) {
	case nil:
		if tok.Kind == token.Newline {
			return `"\n"`
		}
		return tok.Text
	case string:
		if tok.Kind == token.StringLit {
			return strconv.Quote(v)
		}
		return v
	case int:
		if tok.Kind == token.SceneID {
			return "$" + strconv.Itoa(v)
		}
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

// FormatTokensJSON writes the tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Value: tok.Value,
			Line:  tok.Line,
			Col:   tok.Col,
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
