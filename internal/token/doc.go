// Package token defines the lexical token kinds of narratr source.
// Invariants:
//   - Token.Text is the raw lexeme; Token.Value holds the decoded literal.
//   - INDENT and DEDENT carry the indentation width in Value.
//   - 'pocket' is lexed as Ident; it is reserved by the parser, not the lexer.
//   - '=' and '==' both produce Equals.
package token
