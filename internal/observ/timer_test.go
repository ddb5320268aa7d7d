package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestMeasureRecordsPhases(t *testing.T) {
	tm := NewTimer()
	_ = tm.Measure("lex", func() error { return nil })
	err := tm.Measure("parse", func() error { return errors.New("boom") })
	if err == nil || err.Error() != "boom" {
		t.Fatalf("Measure must return fn's error, got %v", err)
	}

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "lex" || r.Phases[1].Note != "failed" {
		t.Fatalf("unexpected report %+v", r)
	}
	s := tm.Summary()
	for _, want := range []string{"timings:", "lex", "parse", "// failed", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	tm := NewTimer()
	tm.End(3, "ignored")
	if r := tm.Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Fatalf("expected empty report, got %+v", r)
	}
}
