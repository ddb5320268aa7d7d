package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"narratr/internal/diag"
	"narratr/internal/source"
)

// Error prints err. Compiler errors get the full Pretty treatment with file
// as context; anything else is printed as "ERROR: <err>".
func Error(w io.Writer, err error, file *source.File, opts PrettyOpts) {
	if err == nil {
		return
	}
	if de, ok := diag.AsError(err); ok {
		Pretty(w, de.Diagnostic(), file, opts)
		return
	}
	sev := palette(opts.Color, color.FgRed, color.Bold)
	fmt.Fprintf(w, "%s: %s\n", sev.Sprint(diag.SevError), err)
}

// Pretty prints one diagnostic:
//
//	ERROR: Line 3: Type error: unsupported operand types for -: string and integer
//	  --> cave.ntr:3:14 [SEM3004]
//	   |
//	 3 |         x is "a" - 3
//	   |              ^~~~~~~
//	   = help: ...
//
// The headline matches what *diag.Error prints; the rest needs file.
func Pretty(w io.Writer, d diag.Diagnostic, file *source.File, opts PrettyOpts) {
	sev := palette(opts.Color, severityColor(d.Severity)...)
	bold := palette(opts.Color, color.Bold)
	blue := palette(opts.Color, color.FgBlue, color.Bold)

	line := d.Line
	var col uint32
	haveSpan := file != nil && (!d.Primary.Empty() || d.Primary.Start > 0) && int(d.Primary.Start) <= len(file.Content)
	if haveSpan {
		pos := file.Position(d.Primary.Start)
		col = pos.Col
		if line == 0 && !d.Primary.Empty() {
			line = int(pos.Line)
		}
	}

	if line > 0 {
		fmt.Fprintf(w, "%s: %s\n", sev.Sprint(d.Severity), bold.Sprintf("Line %d: %s", line, d.Message))
	} else {
		fmt.Fprintf(w, "%s: %s\n", sev.Sprint(d.Severity), bold.Sprint(d.Message))
	}
	if opts.NoSource || file == nil {
		printNotes(w, d.Notes, blue, 0)
		return
	}

	loc := formatPath(file.Path, opts.PathMode)
	if line > 0 {
		loc += ":" + strconv.Itoa(line)
		if col > 0 {
			loc += ":" + strconv.FormatUint(uint64(col), 10)
		}
	}
	gutter := len(strconv.Itoa(line))
	fmt.Fprintf(w, "%s %s %s\n", blue.Sprint(strings.Repeat(" ", gutter)+"-->"), loc, sev.Sprintf("[%s]", d.Code.ID()))
	if line <= 0 {
		printNotes(w, d.Notes, blue, gutter)
		return
	}

	bar := blue.Sprint(strings.Repeat(" ", gutter+1) + "|")
	fmt.Fprintln(w, bar)
	for n := max(1, line-opts.Context); n <= line; n++ {
		fmt.Fprintf(w, "%s %s\n", blue.Sprintf("%*d |", gutter, n), file.GetLine(uint32(n))) // #nosec G115 -- n > 0
	}
	if haveSpan {
		text := file.GetLine(uint32(line)) // #nosec G115 -- line > 0
		fmt.Fprintf(w, "%s %s\n", bar, sev.Sprint(underline(text, int(col), int(d.Primary.Len()))))
	}
	printNotes(w, d.Notes, blue, gutter)
}

// underline builds the ^~~~ marker below text. col is 1-based and counted
// in bytes; the marker is aligned by display width.
func underline(text string, col, length int) string {
	if col < 1 {
		col = 1
	}
	prefix := text
	if col-1 < len(text) {
		prefix = text[:col-1]
	}
	pad := make([]byte, 0, len(prefix))
	for _, r := range prefix {
		if r == '\t' {
			pad = append(pad, '\t')
			continue
		}
		pad = append(pad, strings.Repeat(" ", runewidth.RuneWidth(r))...)
	}
	rest := ""
	if col-1 < len(text) {
		rest = text[col-1:]
	}
	if length > len(rest) {
		length = len(rest)
	}
	width := max(runewidth.StringWidth(rest[:length]), 1)
	return string(pad) + "^" + strings.Repeat("~", width-1)
}

func printNotes(w io.Writer, notes []diag.Note, c *color.Color, gutter int) {
	for _, n := range notes {
		fmt.Fprintf(w, "%s %s\n", c.Sprint(strings.Repeat(" ", gutter+1)+"="), "help: "+n.Msg)
	}
}

func severityColor(s diag.Severity) []color.Attribute {
	switch s {
	case diag.SevError:
		return []color.Attribute{color.FgRed, color.Bold}
	case diag.SevWarning:
		return []color.Attribute{color.FgYellow, color.Bold}
	default:
		return []color.Attribute{color.FgCyan}
	}
}
