package analysis

import (
	"github.com/mkorsbak/sattlint/pkg/project"
)

// builtins are identifiers that are always in scope and never flagged.
var builtins = map[string]bool{
	"TRUE":  true,
	"FALSE": true,
	"true":  true,
	"false": true,
}

// AnalyzeVariables runs the variable checks over a merged blueprint:
// duplicate declarations inside one unit, references to identifiers
// declared nowhere in the project, and variables no routine ever
// touches. Diagnostics follow the blueprint's unit order, so identical
// inputs produce identical reports.
func AnalyzeVariables(bp *project.Blueprint) *Report {
	rep := &Report{}

	for _, unit := range bp.Order {
		frag := bp.Fragments[unit]

		declared := make(map[string]int) // name -> index of first declaration
		for _, v := range frag.Vars {
			if _, dup := declared[v.Name]; dup {
				rep.add(SeverityError, unit, v.Loc, "%s redeclared in unit %s", v.Name, unit)
				continue
			}
			declared[v.Name] = 1
		}
		for _, r := range frag.Routines {
			if _, dup := declared[r.Name]; dup {
				rep.add(SeverityError, unit, r.Loc, "%s redeclared in unit %s", r.Name, unit)
				continue
			}
			declared[r.Name] = 1
		}

		// Flag each unknown identifier once per unit, at its first use.
		flagged := make(map[string]bool)
		for _, r := range frag.Routines {
			for _, ref := range r.Refs {
				if builtins[ref.Name] || flagged[ref.Name] {
					continue
				}
				if _, ok := bp.Symbol(ref.Name); ok {
					continue
				}
				flagged[ref.Name] = true
				rep.add(SeverityWarning, unit, ref.Loc, "undeclared identifier %s", ref.Name)
			}
		}
	}

	// Project-wide usage: a variable is used if any routine of any
	// resolved unit references it.
	used := make(map[string]bool)
	for _, unit := range bp.Order {
		for _, r := range bp.Fragments[unit].Routines {
			for _, ref := range r.Refs {
				used[ref.Name] = true
			}
		}
	}
	for _, name := range bp.Symbols.Keys() {
		sym, _ := bp.Symbol(name)
		if sym.Kind != project.SymbolVariable || used[name] {
			continue
		}
		rep.add(SeverityInfo, sym.Unit, sym.Loc, "variable %s declared but never referenced", name)
	}

	return rep
}
