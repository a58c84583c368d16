package kernel

import (
	"slices"

	"github.com/ritzau/electre-kernel/pkg/graph"
)

// ExpandLabels maps kernel node ids back to alternative labels.
// Aggregated nodes expand to the alternatives they absorbed. Labels are
// returned once each, in the order the alternatives were added to the graph.
func ExpandLabels(g *graph.Graph, ids []int64) []string {
	originals := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if _, ok := g.Label(id); ok {
			originals[id] = true
		}
		if n, ok := g.Node(id); ok {
			for _, m := range n.Merged {
				originals[m] = true
			}
		}
	}

	sorted := make([]int64, 0, len(originals))
	for id := range originals {
		sorted = append(sorted, id)
	}
	slices.Sort(sorted)

	labels := make([]string, 0, len(sorted))
	for _, id := range sorted {
		if l, ok := g.Label(id); ok {
			labels = append(labels, l)
		}
	}
	return labels
}
