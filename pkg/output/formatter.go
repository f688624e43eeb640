package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/mkorsbak/sattlint/pkg/analysis"
	"github.com/mkorsbak/sattlint/pkg/cycles"
	"github.com/mkorsbak/sattlint/pkg/graph"
	"github.com/mkorsbak/sattlint/pkg/project"
)

// PrintResolutionReport prints a formatted summary of one resolution
// run: how many units resolved, what is missing, and what failed to
// parse. Partial success is a first-class outcome and is shown as such.
func PrintResolutionReport(root string, g *graph.Graph) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Println("SattLint - Resolution Report")
	bold.Println("============================")
	fmt.Printf("Root: %s\n", root)

	resolved, parseErrors := 0, 0
	for _, name := range g.Names() {
		node, _ := g.Node(name)
		switch node.Status {
		case graph.StatusResolved:
			resolved++
		case graph.StatusParseError:
			parseErrors++
		}
	}

	green.Printf("Resolved: %d unit(s)\n", resolved)
	if parseErrors > 0 {
		red.Printf("Parse errors: %d unit(s)\n", parseErrors)
		for _, name := range g.Names() {
			node, _ := g.Node(name)
			if node.Status == graph.StatusParseError {
				yellow.Printf("  %s\n", name)
				fmt.Printf("    File: %s\n", node.Path)
				fmt.Printf("    Error: %s\n", node.Err)
			}
		}
	}

	missing := g.Missing()
	if len(missing) == 0 {
		green.Println("Missing: 0 unit(s)")
	} else {
		yellow.Printf("Missing: %d unit(s)\n", len(missing))
	}
	fmt.Println()
}

// PrintMissing lists every unresolvable reference with its requester.
func PrintMissing(entries []graph.MissingEntry) {
	if len(entries) == 0 {
		return
	}
	red := color.New(color.FgRed)
	red.Println("MISSING UNITS:")
	for _, m := range entries {
		by := m.RequestedBy
		if by == "" {
			by = "(root request)"
		}
		fmt.Printf("  %s (requested by %s): %s\n", m.Name, by, m.Reason)
	}
	fmt.Println()
}

// PrintBlueprintSummary prints the merged project overview, including
// symbol collisions and reference cycles.
func PrintBlueprintSummary(bp *project.Blueprint, unitCycles []cycles.UnitCycle) {
	bold := color.New(color.Bold)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	bold.Println(bp.String())
	cyan.Printf("Load order: %s\n", strings.Join(bp.Order, ", "))

	if len(bp.Collisions) > 0 {
		yellow.Printf("Symbol collisions: %d (first declaration wins)\n", len(bp.Collisions))
		for _, c := range bp.Collisions {
			fmt.Printf("  %s: kept %s (%s), dropped %s (%s)\n",
				c.Name, c.Kept.Unit, c.Kept.Loc, c.Dropped.Unit, c.Dropped.Loc)
		}
	}

	if len(unitCycles) > 0 {
		yellow.Printf("Reference cycles: %d\n", len(unitCycles))
		for _, c := range unitCycles {
			fmt.Printf("  %s\n", strings.Join(c.Units, " -> "))
		}
	}
	fmt.Println()
}

// PrintAnalysisReport prints the analyzer diagnostics and summary line.
func PrintAnalysisReport(rep *analysis.Report) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Println("Variable Analysis")
	bold.Println("-----------------")
	for _, d := range rep.Diagnostics {
		switch d.Severity {
		case analysis.SeverityError:
			red.Printf("  error   %s: %s\n", d.Loc, d.Message)
		case analysis.SeverityWarning:
			yellow.Printf("  warning %s: %s\n", d.Loc, d.Message)
		default:
			fmt.Printf("  note    %s: %s\n", d.Loc, d.Message)
		}
	}

	if len(rep.Diagnostics) == 0 {
		green.Println("  no findings")
	}
	fmt.Println(rep.Summary())
}
