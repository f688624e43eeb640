package analysis

import (
	"fmt"

	"github.com/mkorsbak/sattlint/pkg/lang"
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one analyzer finding.
type Diagnostic struct {
	Severity Severity      `json:"severity"`
	Unit     string        `json:"unit"`
	Loc      lang.Location `json:"location"`
	Message  string        `json:"message"`
}

// Report is the ordered result of one analysis run over a project
// blueprint. It is read-only for callers.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
}

func (r *Report) add(sev Severity, unit string, loc lang.Location, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Severity: sev,
		Unit:     unit,
		Loc:      loc,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Count returns the number of diagnostics with the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Summary gives a one-line overview of the report.
func (r *Report) Summary() string {
	return fmt.Sprintf("analysis: %d errors, %d warnings, %d notes (%d findings)",
		r.Count(SeverityError), r.Count(SeverityWarning), r.Count(SeverityInfo),
		len(r.Diagnostics))
}
