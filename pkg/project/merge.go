package project

import (
	"fmt"

	"github.com/mkorsbak/sattlint/pkg/blueprint"
	"github.com/mkorsbak/sattlint/pkg/graph"
	"github.com/mkorsbak/sattlint/pkg/lang"
)

// SymbolKind distinguishes the two declaration kinds that share the
// project namespace.
type SymbolKind string

const (
	SymbolVariable SymbolKind = "variable"
	SymbolRoutine  SymbolKind = "routine"
)

// Symbol is one declaration in the merged project namespace.
type Symbol struct {
	Name string        `json:"name"`
	Kind SymbolKind    `json:"kind"`
	Unit string        `json:"unit"` // unit that declared it
	Type string        `json:"type,omitempty"` // variable type, empty for routines
	Loc  lang.Location `json:"location"`
}

// Collision records a symbol declared by two units. The earlier
// declaration is kept; collisions are diagnostics, never fatal.
type Collision struct {
	Name    string `json:"name"`
	Kept    Symbol `json:"kept"`
	Dropped Symbol `json:"dropped"`
}

// ManifestEntry lists one unit in the blueprint's dependency manifest,
// including units that resolved to nothing or failed to parse.
type ManifestEntry struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Path   string `json:"path,omitempty"` // empty for missing units
}

// Blueprint is the merged, project-wide model: the root fragment plus
// every resolved dependency fragment under a single symbol namespace.
// It is immutable once Merge returns it and safe to share read-only.
type Blueprint struct {
	Root       string
	Order      []string // resolved units in discovery order, root first
	Fragments  map[string]*blueprint.Fragment
	Symbols    *blueprint.Registry[Symbol]
	Manifest   []ManifestEntry
	Collisions []Collision
}

// RootUnresolvedError reports that Merge was invoked on a graph whose
// root node is absent or not resolved.
type RootUnresolvedError struct {
	Name   string
	Reason string
}

func (e *RootUnresolvedError) Error() string {
	return fmt.Sprintf("root unit %s is not resolved: %s", e.Name, e.Reason)
}

// Merge folds a completed dependency graph into one project blueprint.
// Symbols are inserted root first, then dependencies in the graph's
// discovery order; on a name collision the entry already present wins
// and the conflict is recorded. This mirrors the resolver's
// first-match-wins file rule: the closest-encountered declaration wins
// throughout the pipeline.
func Merge(root string, g *graph.Graph) (*Blueprint, error) {
	rootNode, ok := g.Node(root)
	if !ok {
		return nil, &RootUnresolvedError{Name: root, Reason: "no node in graph"}
	}
	if rootNode.Status != graph.StatusResolved {
		return nil, &RootUnresolvedError{Name: root, Reason: rootNode.Status.String()}
	}

	bp := &Blueprint{
		Root:      root,
		Fragments: make(map[string]*blueprint.Fragment),
		Symbols:   blueprint.NewRegistry[Symbol](),
	}

	// Discovery order puts the root first; the claim registry keeps it
	// that way.
	for _, name := range g.Names() {
		node, _ := g.Node(name)
		bp.Manifest = append(bp.Manifest, ManifestEntry{
			Name:   name,
			Status: node.Status.String(),
			Path:   node.Path,
		})
		if node.Status != graph.StatusResolved {
			continue // contributes no symbols, stays in the manifest
		}
		bp.Order = append(bp.Order, name)
		bp.Fragments[name] = node.Fragment
		bp.mergeSymbols(name, node.Fragment)
	}

	for _, m := range g.Missing() {
		bp.Manifest = append(bp.Manifest, ManifestEntry{
			Name:   m.Name,
			Status: graph.StatusMissing.String(),
		})
	}

	return bp, nil
}

func (bp *Blueprint) mergeSymbols(unit string, frag *blueprint.Fragment) {
	for _, v := range frag.Vars {
		bp.claim(Symbol{Name: v.Name, Kind: SymbolVariable, Unit: unit, Type: v.Type, Loc: v.Loc})
	}
	for _, r := range frag.Routines {
		bp.claim(Symbol{Name: r.Name, Kind: SymbolRoutine, Unit: unit, Loc: r.Loc})
	}
}

func (bp *Blueprint) claim(sym Symbol) {
	if bp.Symbols.Claim(sym.Name, sym) {
		return
	}
	kept, _ := bp.Symbols.Get(sym.Name)
	bp.Collisions = append(bp.Collisions, Collision{Name: sym.Name, Kept: kept, Dropped: sym})
}

// Symbol looks up a name in the merged namespace.
func (bp *Blueprint) Symbol(name string) (Symbol, bool) {
	return bp.Symbols.Get(name)
}

// String gives a short human-readable summary, printed by the CLI
// after a successful merge.
func (bp *Blueprint) String() string {
	return fmt.Sprintf("project %s: %d units, %d symbols, %d collisions",
		bp.Root, len(bp.Order), bp.Symbols.Len(), len(bp.Collisions))
}
