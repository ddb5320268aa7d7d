// Package diag defines the error and diagnostic model shared by every compiler phase.
//
// # Fatal errors
//
// Compilation is fail-fast. The lexer, parser and code generator return the
// first problem as an *Error. Its Code places it in a phase:
//
//   - LEX1xxx – lexical (unknown character, bad indentation, bad literal)
//   - SYN2xxx – syntax (unexpected token, missing section)
//   - SEM3xxx – semantic checks done while parsing (duplicates, god conflicts, operand types)
//   - GEN4xxx – code generation (start scene, pocket arity, misplaced statements)
//   - IO5xxx / PRJ6xxx – driver and project problems
//
// Error() renders the canonical "ERROR: Line <n>: <message>" line.
//
// # Aggregation
//
// Multi-file builds convert errors to Diagnostic records and push them through
// a Reporter into a Bag. Rendering lives in internal/diagfmt.
package diag
