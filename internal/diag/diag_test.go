package diag

import (
	"errors"
	"fmt"
	"testing"

	"narratr/internal/source"
)

func TestCodeIDAndPhase(t *testing.T) {
	tests := []struct {
		code  Code
		id    string
		phase Phase
	}{
		{LexUnknownChar, "LEX1001", PhaseLexical},
		{SynUnexpectedToken, "SYN2001", PhaseSyntax},
		{SemaTypeError, "SEM3003", PhaseSemantic},
		{GenMissingStart, "GEN4001", PhaseCodegen},
		{IOWriteError, "IO5002", PhaseDriver},
		{UnknownCode, "E0000", PhaseDriver},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.id)
		}
		if got := tt.code.Phase(); got != tt.phase {
			t.Errorf("%d.Phase() = %v, want %v", tt.code, got, tt.phase)
		}
	}
}

func TestErrorString(t *testing.T) {
	err := Errorf(LexUnknownChar, source.Span{}, 3, "Unrecognized character '%c'", '#')
	if got, want := err.Error(), "ERROR: Line 3: Unrecognized character '#'"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	noLine := Errorf(GenMissingStart, source.Span{}, 0, "missing start scene declaration")
	if got, want := noLine.Error(), "ERROR: missing start scene declaration"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestAsErrorThroughWrap(t *testing.T) {
	inner := Errorf(SemaDuplicateSymbol, source.Span{}, 7, "duplicate scene $1")
	wrapped := fmt.Errorf("compile cave.ntr: %w", inner)

	got, ok := AsError(wrapped)
	if !ok || got != inner {
		t.Fatalf("AsError did not unwrap: %v %v", got, ok)
	}
	if got.Phase() != PhaseSemantic {
		t.Errorf("phase = %v", got.Phase())
	}
	if _, ok := AsError(errors.New("plain")); ok {
		t.Error("plain error must not convert")
	}
}

func TestReportErrorIntoBag(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}

	ReportError(r, 2, Errorf(GenUndefinedName, source.Span{}, 4, "undefined name 'lamp'").WithHint("did you mean 'lamps'?"))
	ReportError(r, 3, errors.New("disk on fire"))

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(items))
	}
	if items[0].Primary.File != 2 || items[0].Line != 4 || len(items[0].Notes) != 1 {
		t.Errorf("unexpected first diagnostic: %+v", items[0])
	}
	if items[1].Code != UnknownCode || items[1].Message != "disk on fire" {
		t.Errorf("unexpected second diagnostic: %+v", items[1])
	}
	if !bag.HasErrors() {
		t.Error("expected HasErrors")
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	bag := NewBag(3)
	d := NewError(SynUnexpectedToken, source.Span{File: 1, Start: 5, End: 6}, "x")
	d.Line = 2
	bag.Add(d)
	bag.Add(d)
	early := NewError(LexUnknownChar, source.Span{File: 1}, "y")
	early.Line = 1
	bag.Add(early)
	if bag.Add(early) {
		t.Fatal("Add past the limit must fail")
	}

	bag.Dedup()
	bag.Sort()
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 after dedup, got %d", len(items))
	}
	if items[0].Code != LexUnknownChar {
		t.Errorf("sort order wrong: %v first", items[0].Code)
	}
}
