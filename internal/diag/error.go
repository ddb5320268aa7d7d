package diag

import (
	"errors"
	"fmt"

	"narratr/internal/source"
)

// Phase names the stage that rejected the program.
type Phase uint8

const (
	PhaseDriver Phase = iota
	PhaseLexical
	PhaseSyntax
	PhaseSemantic
	PhaseCodegen
)

func (p Phase) String() string {
	switch p {
	case PhaseLexical:
		return "lexical"
	case PhaseSyntax:
		return "syntax"
	case PhaseSemantic:
		return "semantic"
	case PhaseCodegen:
		return "codegen"
	default:
		return "driver"
	}
}

// Error is the single fatal error type of the compiler. Every phase stops at the first one.
type Error struct {
	Code    Code
	Span    source.Span
	Line    int
	Message string
	Hint    string // optional, e.g. a "did you mean" suggestion
}

// Errorf builds an *Error for code at line.
func Errorf(code Code, span source.Span, line int, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Span:    span,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithHint attaches a suggestion and returns e.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

func (e *Error) Phase() Phase {
	return e.Code.Phase()
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: Line %d: %s", SevError, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", SevError, e.Message)
}

// Diagnostic converts the error for reporting through a Reporter or Bag.
func (e *Error) Diagnostic() Diagnostic {
	d := NewError(e.Code, e.Span, e.Message)
	d.Line = e.Line
	if e.Hint != "" {
		d = d.WithNote(e.Span, e.Hint)
	}
	return d
}

// AsError unwraps err into an *Error.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
