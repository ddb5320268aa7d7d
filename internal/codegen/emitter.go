package codegen

import (
	"fmt"
	"io"
	"strings"
)

// emitter wraps an io.Writer with helpers for emitting Go source text.
type emitter struct {
	w      io.Writer
	err    error // first write error
	indent int
}

// emit writes one indented line.
func (e *emitter) emit(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, strings.Repeat("\t", e.indent)+format+"\n", args...)
}

// emitRaw writes s as is.
func (e *emitter) emitRaw(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

// emitLine writes a blank line.
func (e *emitter) emitLine() {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w)
}

// open emits a line ending in '{' and indents what follows.
func (e *emitter) open(format string, args ...any) {
	e.emit(format, args...)
	e.indent++
}

// close dedents and emits the closing line, "}" by default.
func (e *emitter) close(line ...string) {
	e.indent--
	if len(line) > 0 {
		e.emit("%s", line[0])
		return
	}
	e.emit("}")
}
