package diag

import "yulc/internal/source"

// Reporter receives diagnostics from stages.
// Implementations: BagReporter (stores into a Bag), NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter stores every reported diagnostic into Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}

// Emit forwards err to r when both are non-nil and returns err unchanged,
// so stages can write `return diag.Emit(p.reporter, err)`.
func Emit(r Reporter, err *Error) *Error {
	if r != nil && err != nil {
		r.Report(err.Code, err.Severity, err.Primary, err.Message, err.Notes)
	}
	return err
}
