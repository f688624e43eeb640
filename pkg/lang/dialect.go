package lang

import "fmt"

// Dialect selects one of the two accepted surface syntaxes. It is a
// run-wide setting: every unit in one resolution run is parsed with the
// same dialect.
type Dialect string

const (
	// DialectOfficial is the classic syntax: uppercase keywords,
	// semicolon-terminated statements, ":=" assignment.
	DialectOfficial Dialect = "official"

	// DialectDraft is the proposed syntax: lowercase keywords,
	// newline-terminated statements, "=" assignment.
	DialectDraft Dialect = "draft"
)

// ParseDialect maps a user-supplied mode string to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "official":
		return DialectOfficial, nil
	case "draft":
		return DialectDraft, nil
	default:
		return "", fmt.Errorf("unknown dialect %q (want official or draft)", s)
	}
}
