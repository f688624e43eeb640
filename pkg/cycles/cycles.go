package cycles

import (
	gograph "gonum.org/v1/gonum/graph"

	"github.com/mkorsbak/sattlint/pkg/graph"
)

// UnitCycle is one reference cycle between units. Resolution itself is
// cycle-safe (every unit is visited once), so cycles are reported as
// informational findings, not errors.
type UnitCycle struct {
	Units []string
}

// Find reports all reference cycles in a resolved dependency graph
// using Tarjan's strongly-connected-components algorithm over the
// graph's gonum mirror. Single-node components are not cycles and are
// dropped.
func Find(g *graph.Graph) []UnitCycle {
	f := &sccFinder{
		g:       g.Directed(),
		onStack: make(map[int64]bool),
		indices: make(map[int64]int),
		lowLink: make(map[int64]int),
	}
	nodes := f.g.Nodes()
	for nodes.Next() {
		id := nodes.Node().ID()
		if _, seen := f.indices[id]; !seen {
			f.connect(id)
		}
	}

	cycles := make([]UnitCycle, 0, len(f.sccs))
	for _, scc := range f.sccs {
		units := make([]string, 0, len(scc))
		for _, id := range scc {
			units = append(units, g.NameByID(id))
		}
		cycles = append(cycles, UnitCycle{Units: units})
	}
	return cycles
}

// sccFinder runs Tarjan's algorithm. Only components with more than
// one node are kept.
type sccFinder struct {
	g       gograph.Directed
	index   int
	stack   []int64
	onStack map[int64]bool
	indices map[int64]int
	lowLink map[int64]int
	sccs    [][]int64
}

func (f *sccFinder) connect(id int64) {
	f.indices[id] = f.index
	f.lowLink[id] = f.index
	f.index++
	f.stack = append(f.stack, id)
	f.onStack[id] = true

	succ := f.g.From(id)
	for succ.Next() {
		next := succ.Node().ID()
		if _, seen := f.indices[next]; !seen {
			f.connect(next)
			f.lowLink[id] = min(f.lowLink[id], f.lowLink[next])
		} else if f.onStack[next] {
			f.lowLink[id] = min(f.lowLink[id], f.indices[next])
		}
	}

	if f.lowLink[id] != f.indices[id] {
		return
	}
	var scc []int64
	for {
		w := f.stack[len(f.stack)-1]
		f.stack = f.stack[:len(f.stack)-1]
		f.onStack[w] = false
		scc = append(scc, w)
		if w == id {
			break
		}
	}
	if len(scc) > 1 {
		f.sccs = append(f.sccs, scc)
	}
}
