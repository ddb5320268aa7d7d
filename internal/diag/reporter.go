package diag

import "narratr/internal/source"

// Reporter receives diagnostics from the driver and build pipeline.
type Reporter interface {
	Report(d Diagnostic)
}

// ReportError forwards err to r. Errors that are not *Error are reported as UnknownCode.
func ReportError(r Reporter, file source.FileID, err error) {
	if r == nil || err == nil {
		return
	}
	if de, ok := AsError(err); ok {
		d := de.Diagnostic()
		if d.Primary == (source.Span{}) {
			d.Primary.File = file
		}
		r.Report(d)
		return
	}
	r.Report(NewError(UnknownCode, source.Span{File: file}, err.Error()))
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}
