package blueprint

import (
	"fmt"
	"strings"

	"github.com/mkorsbak/sattlint/pkg/lang"
)

// Fragment is the abstract representation of one parsed unit: its
// declared name, the libraries it uses, and its variable and routine
// declarations. A fragment is immutable once the parser returns it.
type Fragment struct {
	Name     string
	Dialect  lang.Dialect
	Uses     []Ref // referenced units in source order, duplicates kept
	Vars     []Variable
	Routines []Routine
}

// Ref is one identifier occurrence with its source position.
type Ref struct {
	Name string
	Loc  lang.Location
}

// Variable is one variable declaration.
type Variable struct {
	Name string
	Type string
	Init string // initializer expression text, empty when absent
	Loc  lang.Location
}

// Routine is one routine declaration. Refs lists every identifier
// occurrence in the body (assignment targets, callees, and operands)
// in source order.
type Routine struct {
	Name string
	Loc  lang.Location
	Refs []Ref
}

// References returns the ordered list of unit names a fragment depends
// on: the uses clauses in order of first textual appearance, later
// duplicates dropped. It performs no resolution and touches no files.
func References(f *Fragment) []string {
	seen := make(map[string]bool, len(f.Uses))
	refs := make([]string, 0, len(f.Uses))
	for _, u := range f.Uses {
		if seen[u.Name] {
			continue
		}
		seen[u.Name] = true
		refs = append(refs, u.Name)
	}
	return refs
}

// String renders the fragment in a stable textual form, used by the
// --dump-ast debug export.
func (f *Fragment) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unit %s (%s dialect)\n", f.Name, f.Dialect)
	for _, u := range References(f) {
		fmt.Fprintf(&b, "  uses %s\n", u)
	}
	for _, v := range f.Vars {
		if v.Init != "" {
			fmt.Fprintf(&b, "  var %s : %s := %s\n", v.Name, v.Type, v.Init)
		} else {
			fmt.Fprintf(&b, "  var %s : %s\n", v.Name, v.Type)
		}
	}
	for _, r := range f.Routines {
		fmt.Fprintf(&b, "  routine %s (%d refs)\n", r.Name, len(r.Refs))
	}
	return b.String()
}
