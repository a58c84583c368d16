package cycles

import (
	"fmt"
	"testing"

	"github.com/ritzau/electre-kernel/pkg/graph"
	"github.com/stretchr/testify/require"
)

// newGraph builds a graph with nodes 0..n-1 and the given unweighted edges
func newGraph(t *testing.T, n int, edges [][2]int64) *graph.Graph {
	t.Helper()
	g := graph.New()
	for i := 0; i < n; i++ {
		g.AddNode(fmt.Sprintf("a%02d", i))
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

// newWeightedGraph builds a graph with nodes 0..n-1 and weighted edges
func newWeightedGraph(t *testing.T, n int, edges [][2]int64, weights []float64) *graph.Graph {
	t.Helper()
	require.Len(t, weights, len(edges))
	g := graph.New()
	for i := 0; i < n; i++ {
		g.AddNode(fmt.Sprintf("a%02d", i))
	}
	for i, e := range edges {
		require.NoError(t, g.AddWeightedEdge(e[0], e[1], weights[i]))
	}
	return g
}

// requireSimpleCycle checks that ids can be ordered into a directed cycle of g
func requireSimpleCycle(t *testing.T, g *graph.Graph, ids []int64) {
	t.Helper()
	require.GreaterOrEqual(t, len(ids), 2, "cycle too short: %v", ids)

	inside := memberSet(ids)
	start := ids[0]
	visited := map[int64]bool{start: true}
	current := start
	for step := 1; step < len(ids); step++ {
		next := int64(-1)
		for _, succ := range g.Successors(current) {
			if inside[succ] && !visited[succ] {
				next = succ
				break
			}
		}
		require.NotEqual(t, int64(-1), next, "no path through %v from %d", ids, current)
		visited[next] = true
		current = next
	}
	require.True(t, g.HasEdge(current, start), "cycle %v is not closed", ids)
}

// g6 is the seven node sample graph with two cycles and a weighted edge set
func g6(t *testing.T) *graph.Graph {
	return newWeightedGraph(t, 7,
		[][2]int64{{0, 4}, {1, 2}, {2, 3}, {3, 1}, {4, 0}, {6, 2}, {6, 4}},
		[]float64{0.7, 0.9, 0.7, 0.5, 0.9, 0.8, 0.5},
	)
}
