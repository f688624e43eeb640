package docgen

import (
	"fmt"
	"os"
	"strings"

	"github.com/mkorsbak/sattlint/pkg/analysis"
	"github.com/mkorsbak/sattlint/pkg/project"
)

// Generate renders a project blueprint and its analysis report as a
// markdown document and writes it to path. The document covers the
// dependency manifest (including missing and unparseable units), each
// unit's declarations, and the analyzer findings.
func Generate(bp *project.Blueprint, rep *analysis.Report, path string) error {
	doc := Render(bp, rep)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing project document: %w", err)
	}
	return nil
}

// Render produces the document text without touching the filesystem.
func Render(bp *project.Blueprint, rep *analysis.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Project %s\n\n", bp.Root)
	fmt.Fprintf(&b, "%s\n\n", bp.String())

	b.WriteString("## Units\n\n")
	b.WriteString("| Unit | Status | File |\n")
	b.WriteString("|------|--------|------|\n")
	for _, m := range bp.Manifest {
		path := m.Path
		if path == "" {
			path = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", m.Name, m.Status, path)
	}
	b.WriteString("\n")

	for _, unit := range bp.Order {
		frag := bp.Fragments[unit]
		fmt.Fprintf(&b, "## Unit %s\n\n", unit)
		if len(frag.Vars) > 0 {
			b.WriteString("### Variables\n\n")
			for _, v := range frag.Vars {
				if v.Init != "" {
					fmt.Fprintf(&b, "- `%s : %s := %s`\n", v.Name, v.Type, v.Init)
				} else {
					fmt.Fprintf(&b, "- `%s : %s`\n", v.Name, v.Type)
				}
			}
			b.WriteString("\n")
		}
		if len(frag.Routines) > 0 {
			b.WriteString("### Routines\n\n")
			for _, r := range frag.Routines {
				fmt.Fprintf(&b, "- `%s` (%s)\n", r.Name, r.Loc)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Findings\n\n")
	if len(rep.Diagnostics) == 0 {
		b.WriteString("No findings.\n")
	} else {
		for _, d := range rep.Diagnostics {
			fmt.Fprintf(&b, "- **%s** %s: %s\n", d.Severity, d.Loc, d.Message)
		}
	}
	fmt.Fprintf(&b, "\n%s\n", rep.Summary())

	return b.String()
}
