package cycles

import (
	"sort"
	"testing"

	"github.com/mkorsbak/sattlint/pkg/graph"
)

func claim(g *graph.Graph, names ...string) {
	for _, name := range names {
		g.Claim(&graph.Node{Name: name, Status: graph.StatusResolved})
	}
}

func TestFindReportsTwoUnitCycle(t *testing.T) {
	g := graph.New()
	claim(g, "UnitA", "UnitB", "LibC")
	g.AddEdge("UnitA", "UnitB")
	g.AddEdge("UnitB", "UnitA")
	g.AddEdge("UnitA", "LibC")

	found := Find(g)
	if len(found) != 1 {
		t.Fatalf("Expected 1 cycle, got %d: %v", len(found), found)
	}

	units := append([]string(nil), found[0].Units...)
	sort.Strings(units)
	if len(units) != 2 || units[0] != "UnitA" || units[1] != "UnitB" {
		t.Errorf("Expected cycle {UnitA, UnitB}, got %v", found[0].Units)
	}
}

func TestFindIgnoresAcyclicGraph(t *testing.T) {
	g := graph.New()
	claim(g, "Main", "LibA", "LibB")
	g.AddEdge("Main", "LibA")
	g.AddEdge("Main", "LibB")
	g.AddEdge("LibA", "LibB")

	if found := Find(g); len(found) != 0 {
		t.Errorf("Expected no cycles, got %v", found)
	}
}

func TestFindSeparatesComponents(t *testing.T) {
	g := graph.New()
	claim(g, "A", "B", "C", "D", "E")
	g.AddEdge("A", "B")
	g.AddEdge("B", "A")
	g.AddEdge("C", "D")
	g.AddEdge("D", "C")
	g.AddEdge("B", "E")

	found := Find(g)
	if len(found) != 2 {
		t.Fatalf("Expected 2 cycles, got %d: %v", len(found), found)
	}
	for _, c := range found {
		if len(c.Units) != 2 {
			t.Errorf("Expected 2-unit cycle, got %v", c.Units)
		}
	}
}
