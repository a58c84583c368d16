package kernel

import (
	"fmt"
	"testing"

	"github.com/ritzau/electre-kernel/pkg/graph"
	"github.com/ritzau/electre-kernel/pkg/model"
	"github.com/stretchr/testify/require"
)

var universities = []string{"APS", "AWF", "PW", "PWT", "SGGW", "SGH", "SGSP", "UKSW", "UW", "WAT"}

// universityRows holds the crisp outranking of the universities data set
var universityRows = map[string]string{
	"APS":  "1000001000",
	"AWF":  "1101001001",
	"PW":   "1111111101",
	"PWT":  "1001001000",
	"SGGW": "1101101101",
	"SGH":  "1101111101",
	"SGSP": "1001001000",
	"UKSW": "1101001101",
	"UW":   "1111111111",
	"WAT":  "1101001001",
}

func universityOutranking() model.Comparisons {
	c := model.NewComparisons(len(universityRows))
	for a, row := range universityRows {
		for j, flag := range row {
			v := 0.0
			if flag == '1' {
				v = 1.0
			}
			c.Set(a, universities[j], v)
		}
	}
	return c
}

// universityEdges lists the university relation as node id pairs
func universityEdges(selfLoops bool) [][2]int64 {
	var edges [][2]int64
	for i, a := range universities {
		for j, flag := range universityRows[a] {
			if flag == '1' && (selfLoops || i != j) {
				edges = append(edges, [2]int64{int64(i), int64(j)})
			}
		}
	}
	return edges
}

// newGraph builds a graph with nodes 0..n-1 and the given unweighted edges
func newGraph(t *testing.T, n int, edges [][2]int64) *graph.Graph {
	t.Helper()
	g := graph.New()
	for i := 0; i < n; i++ {
		g.AddNode(fmt.Sprintf("a%d", i))
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

func g6(t *testing.T) *graph.Graph {
	t.Helper()
	edges := [][2]int64{{0, 4}, {1, 2}, {2, 3}, {3, 1}, {4, 0}, {6, 2}, {6, 4}}
	weights := []float64{0.7, 0.9, 0.7, 0.5, 0.9, 0.8, 0.5}
	g := graph.New()
	for i := 0; i < 7; i++ {
		g.AddNode(fmt.Sprintf("a%d", i))
	}
	for i, e := range edges {
		require.NoError(t, g.AddWeightedEdge(e[0], e[1], weights[i]))
	}
	return g
}

// requireIndependent checks that no edge joins two kernel nodes
func requireIndependent(t *testing.T, g *graph.Graph, kernel []int64) {
	t.Helper()
	for _, a := range kernel {
		for _, b := range kernel {
			require.False(t, a != b && g.HasEdge(a, b), "kernel nodes %d and %d are adjacent", a, b)
		}
	}
}

// requireAbsorbing checks that every node of g outside the kernel has a
// direct in-edge from a kernel node
func requireAbsorbing(t *testing.T, g *graph.Graph, kernel []int64) {
	t.Helper()
	inKernel := make(map[int64]bool, len(kernel))
	for _, id := range kernel {
		inKernel[id] = true
	}
	for _, id := range g.NodeIDs() {
		if inKernel[id] {
			continue
		}
		dominated := false
		for _, pred := range g.Predecessors(id) {
			if inKernel[pred] {
				dominated = true
				break
			}
		}
		require.True(t, dominated, "node %d has no predecessor in the kernel %v", id, kernel)
	}
}

// requireDominating checks that every alternative outside the kernel is
// reachable in the original graph from an alternative inside it
func requireDominating(t *testing.T, original *graph.Graph, labels []string) {
	t.Helper()
	inKernel := make(map[string]bool, len(labels))
	for _, l := range labels {
		inKernel[l] = true
	}

	var queue []int64
	seen := make(map[int64]bool)
	for _, id := range original.NodeIDs() {
		if l, _ := original.Label(id); inKernel[l] {
			queue = append(queue, id)
			seen[id] = true
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, succ := range original.Successors(id) {
			if !seen[succ] {
				seen[succ] = true
				queue = append(queue, succ)
			}
		}
	}

	for _, id := range original.NodeIDs() {
		l, _ := original.Label(id)
		require.True(t, seen[id], "alternative %s is not dominated by the kernel %v", l, labels)
	}
}
