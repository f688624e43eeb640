package graph

import (
	"errors"

	"github.com/mkorsbak/sattlint/pkg/blueprint"
	"github.com/mkorsbak/sattlint/pkg/lang"
	"github.com/mkorsbak/sattlint/pkg/parser"
	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Status is the resolution outcome for one unit name.
type Status int

const (
	StatusResolved Status = iota
	StatusMissing
	StatusParseError
)

func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusMissing:
		return "missing"
	case StatusParseError:
		return "parse-error"
	default:
		return "unknown"
	}
}

// Node is one resolved (or parse-failed) unit in the dependency graph.
// The parse tree and fragment are owned by the node and never shared
// between nodes.
type Node struct {
	Name     string       // unit name as requested by the referencing unit
	Path     string       // file the name resolved to
	Dir      string       // search directory the file was found under
	Dialect  lang.Dialect // dialect the unit was parsed with
	Status   Status
	Tree     *parser.Node        // nil when Status is StatusParseError
	Fragment *blueprint.Fragment // nil when Status is StatusParseError
	Err      string              // parse error text when Status is StatusParseError
}

// ParseErr returns the node's parse failure as an error, nil for
// resolved nodes.
func (n *Node) ParseErr() error {
	if n.Err == "" {
		return nil
	}
	return errors.New(n.Err)
}

// MissingEntry records a unit name that could not be resolved.
type MissingEntry struct {
	Name        string `json:"name"`        // requested unit name
	RequestedBy string `json:"requestedBy"` // unit that referenced it, empty for the root
	Reason      string `json:"reason"`
}

// Graph owns all nodes of one resolution run, keyed by unit name in
// discovery order, plus the missing/error list. It is populated by the
// resolver and read-only afterwards.
//
// Node names are claimed through a first-writer-wins registry, so a
// name can never map to more than one node: the first successful
// resolution wins and later references reuse the existing node. A
// gonum directed graph mirrors the reference edges for cycle analysis.
type Graph struct {
	nodes   *blueprint.Registry[*Node]
	missing []MissingEntry

	directed *simple.DirectedGraph
	ids      map[string]int64
	names    map[int64]string
	nextID   int64
}

func New() *Graph {
	return &Graph{
		nodes:    blueprint.NewRegistry[*Node](),
		directed: simple.NewDirectedGraph(),
		ids:      make(map[string]int64),
		names:    make(map[int64]string),
	}
}

// Claim inserts a node under its unit name. It reports false, leaving
// the graph unchanged, if the name is already taken.
func (g *Graph) Claim(n *Node) bool {
	if !g.nodes.Claim(n.Name, n) {
		return false
	}
	g.id(n.Name)
	return true
}

// Node returns the node claimed under name.
func (g *Graph) Node(name string) (*Node, bool) {
	return g.nodes.Get(name)
}

// Has reports whether name has a node.
func (g *Graph) Has(name string) bool {
	return g.nodes.Has(name)
}

// Names returns all claimed unit names in discovery order. The order
// is load-bearing: the merger's first-declared-wins rule follows it.
func (g *Graph) Names() []string {
	return g.nodes.Keys()
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return g.nodes.Len()
}

// AddEdge records a reference edge between two unit names. Either end
// may be a name without a node (a missing unit); the edge is still
// kept so the reference structure stays complete.
func (g *Graph) AddEdge(from, to string) {
	if from == to {
		return // self-reference, gonum rejects self-edges
	}
	fromID := g.id(from)
	toID := g.id(to)
	if !g.directed.HasEdgeFromTo(fromID, toID) {
		g.directed.SetEdge(g.directed.NewEdge(g.directed.Node(fromID), g.directed.Node(toID)))
	}
}

// Edges returns all reference edges as [from, to] name pairs.
func (g *Graph) Edges() [][2]string {
	var edges [][2]string
	iter := g.directed.Edges()
	for iter.Next() {
		e := iter.Edge()
		edges = append(edges, [2]string{g.names[e.From().ID()], g.names[e.To().ID()]})
	}
	return edges
}

// AddMissing records an unresolvable reference.
func (g *Graph) AddMissing(name, requestedBy, reason string) {
	g.missing = append(g.missing, MissingEntry{Name: name, RequestedBy: requestedBy, Reason: reason})
}

// Missing returns the missing/error list in the order entries were
// recorded.
func (g *Graph) Missing() []MissingEntry {
	out := make([]MissingEntry, len(g.missing))
	copy(out, g.missing)
	return out
}

// Directed exposes the reference structure as a gonum directed graph
// for cycle analysis.
func (g *Graph) Directed() gograph.Directed {
	return g.directed
}

// NameByID maps a gonum node ID back to its unit name.
func (g *Graph) NameByID(id int64) string {
	return g.names[id]
}

func (g *Graph) id(name string) int64 {
	if id, ok := g.ids[name]; ok {
		return id
	}
	id := g.nextID
	g.nextID++
	g.ids[name] = id
	g.names[id] = name
	g.directed.AddNode(simple.Node(id))
	return id
}
