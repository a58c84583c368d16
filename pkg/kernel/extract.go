package kernel

import (
	"fmt"

	"github.com/ritzau/electre-kernel/pkg/graph"
	"github.com/ritzau/electre-kernel/pkg/logging"
	"github.com/ritzau/electre-kernel/pkg/model"
)

// Extract computes the kernel of an acyclic graph.
//
// Each pass selects every remaining node without an incoming edge from
// another remaining node, then removes the selected nodes together with
// their direct successors. Nodes are returned pass by pass, each pass in
// ascending id order. The graph itself is not modified.
func Extract(g *graph.Graph) ([]int64, error) {
	remaining := g.NodeIDs()
	present := make(map[int64]bool, len(remaining))
	for _, id := range remaining {
		present[id] = true
	}

	kernel := make([]int64, 0, len(remaining))
	for pass := 1; len(remaining) > 0; pass++ {
		var selected []int64
		for _, id := range remaining {
			if !dominated(g, id, present) {
				selected = append(selected, id)
			}
		}
		if len(selected) == 0 {
			return nil, fmt.Errorf("%w: every one of the %d remaining nodes is dominated, graph is not acyclic",
				model.ErrInternal, len(remaining))
		}

		for _, id := range selected {
			delete(present, id)
			for _, succ := range g.Successors(id) {
				delete(present, succ)
			}
		}
		kernel = append(kernel, selected...)
		logging.Trace("kernel pass", "pass", pass, "selected", selected, "remaining", len(present))

		next := remaining[:0]
		for _, id := range remaining {
			if present[id] {
				next = append(next, id)
			}
		}
		remaining = next
	}

	return kernel, nil
}

// dominated reports whether another present node points to id
func dominated(g *graph.Graph, id int64, present map[int64]bool) bool {
	for _, pred := range g.Predecessors(id) {
		if pred != id && present[pred] {
			return true
		}
	}
	return false
}
