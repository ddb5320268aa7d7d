// Package fuzztests holds fuzz harnesses for the front end and code
// generator (source -> lexer -> parser -> codegen). They look for panics,
// hangs and broken structural invariants on arbitrary input.
package fuzztests
