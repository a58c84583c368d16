package cycles

import (
	"slices"

	"gonum.org/v1/gonum/graph"
)

// TarjanSCC finds all strongly connected components using Tarjan's algorithm.
// Nodes and successors are visited in ascending id order so the result does
// not depend on map iteration inside the graph implementation.
type TarjanSCC struct {
	graph   graph.Directed
	index   int
	stack   []int64
	onStack map[int64]bool
	indices map[int64]int
	lowLink map[int64]int
	sccs    [][]int64
}

// NewTarjanSCC creates a new Tarjan SCC finder
func NewTarjanSCC(g graph.Directed) *TarjanSCC {
	return &TarjanSCC{
		graph:   g,
		index:   0,
		stack:   make([]int64, 0),
		onStack: make(map[int64]bool),
		indices: make(map[int64]int),
		lowLink: make(map[int64]int),
		sccs:    make([][]int64, 0),
	}
}

// FindSCCs returns the components with more than one node, each sorted ascending
func (t *TarjanSCC) FindSCCs() [][]int64 {
	for _, id := range sortedIDs(t.graph.Nodes()) {
		if _, visited := t.indices[id]; !visited {
			t.strongConnect(id)
		}
	}
	return t.sccs
}

// strongConnect performs the recursive Tarjan's algorithm
func (t *TarjanSCC) strongConnect(nodeID int64) {
	t.indices[nodeID] = t.index
	t.lowLink[nodeID] = t.index
	t.index++

	t.stack = append(t.stack, nodeID)
	t.onStack[nodeID] = true

	for _, successorID := range sortedIDs(t.graph.From(nodeID)) {
		if _, visited := t.indices[successorID]; !visited {
			t.strongConnect(successorID)
			t.lowLink[nodeID] = min(t.lowLink[nodeID], t.lowLink[successorID])
		} else if t.onStack[successorID] {
			t.lowLink[nodeID] = min(t.lowLink[nodeID], t.indices[successorID])
		}
	}

	// Root node: pop the stack and create an SCC
	if t.lowLink[nodeID] == t.indices[nodeID] {
		scc := make([]int64, 0)
		for {
			w := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == nodeID {
				break
			}
		}
		// Single nodes are not cycles, self-loops are never part of the view
		if len(scc) > 1 {
			slices.Sort(scc)
			t.sccs = append(t.sccs, scc)
		}
	}
}

func sortedIDs(it graph.Nodes) []int64 {
	ids := make([]int64, 0, max(it.Len(), 0))
	for it.Next() {
		ids = append(ids, it.Node().ID())
	}
	slices.Sort(ids)
	return ids
}
