package cycles

import (
	"slices"

	"github.com/ritzau/electre-kernel/pkg/graph"
)

// FindCycle returns the ascending node ids of one simple cycle of g, or nil
// when g is acyclic. Self-loops are ignored.
//
// Sinks are peeled off first; whatever remains lies on or leads into a cycle.
// The remainder is split into strongly connected components and the result
// is a shortest cycle through the smallest id of the component holding the
// smallest id, so the same graph always yields the same cycle.
func FindCycle(g *graph.Graph) []int64 {
	remainder := peelSinks(g)
	if len(remainder) == 0 {
		return nil
	}

	sccs := NewTarjanSCC(g.DirectedView(remainder)).FindSCCs()
	if len(sccs) == 0 {
		return nil
	}

	first := sccs[0]
	for _, scc := range sccs[1:] {
		if scc[0] < first[0] {
			first = scc
		}
	}
	return shortestCycle(g, first)
}

// peelSinks repeatedly strips nodes without outgoing edges, together with the
// edges pointing at them, and returns the ids left over in ascending order
func peelSinks(g *graph.Graph) []int64 {
	ids := g.NodeIDs()
	outDegree := make(map[int64]int, len(ids))
	queue := make([]int64, 0, len(ids))
	for _, id := range ids {
		for _, succ := range g.Successors(id) {
			if succ != id {
				outDegree[id]++
			}
		}
		if outDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	peeled := make(map[int64]bool, len(ids))
	for len(queue) > 0 {
		sink := queue[0]
		queue = queue[1:]
		peeled[sink] = true

		for _, pred := range g.Predecessors(sink) {
			if pred == sink || peeled[pred] {
				continue
			}
			outDegree[pred]--
			if outDegree[pred] == 0 {
				queue = append(queue, pred)
			}
		}
	}

	remainder := make([]int64, 0, len(ids)-len(peeled))
	for _, id := range ids {
		if !peeled[id] {
			remainder = append(remainder, id)
		}
	}
	return remainder
}

// shortestCycle runs a breadth-first search from the smallest member back to
// itself, staying inside the component
func shortestCycle(g *graph.Graph, members []int64) []int64 {
	inside := make(map[int64]bool, len(members))
	for _, id := range members {
		inside[id] = true
	}

	start := members[0]
	parent := map[int64]int64{start: start}
	queue := []int64{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		for _, v := range g.Successors(u) {
			if v == u || !inside[v] {
				continue
			}
			if v == start {
				cycle := []int64{start}
				for n := u; n != start; n = parent[n] {
					cycle = append(cycle, n)
				}
				slices.Sort(cycle)
				return cycle
			}
			if _, seen := parent[v]; seen {
				continue
			}
			parent[v] = u
			queue = append(queue, v)
		}
	}
	return nil
}
