package diagfmt

import (
	"encoding/json"
	"io"

	"narratr/internal/diag"
	"narratr/internal/source"
)

// Reported pairs an error with the file it was raised for.
type Reported struct {
	Err  error
	File *source.File
}

// DiagnosticJSON is one error in JSON output.
type DiagnosticJSON struct {
	Severity string `json:"severity"`
	Code     string `json:"code,omitempty"`
	Phase    string `json:"phase,omitempty"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Col      uint32 `json:"col,omitempty"`
	Hint     string `json:"hint,omitempty"`
}

// DiagnosticsOutput is the root of JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// ToJSON converts one reported error.
func ToJSON(r Reported, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{Severity: diag.SevError.String(), Message: r.Err.Error()}
	if r.File != nil {
		out.File = formatPath(r.File.Path, opts.PathMode)
	}
	de, ok := diag.AsError(r.Err)
	if !ok {
		return out
	}
	out.Code = de.Code.ID()
	out.Phase = de.Phase().String()
	out.Message = de.Message
	out.Line = de.Line
	out.Hint = de.Hint
	if r.File != nil && !de.Span.Empty() && int(de.Span.Start) <= len(r.File.Content) {
		pos := r.File.Position(de.Span.Start)
		out.Col = pos.Col
		if out.Line == 0 {
			out.Line = int(pos.Line)
		}
	}
	return out
}

// FormatJSON writes every error as one JSON document.
func FormatJSON(w io.Writer, errs []Reported, opts JSONOpts) error {
	output := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(errs))}
	for _, r := range errs {
		if r.Err == nil {
			continue
		}
		output.Diagnostics = append(output.Diagnostics, ToJSON(r, opts))
	}
	output.Count = len(output.Diagnostics)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
