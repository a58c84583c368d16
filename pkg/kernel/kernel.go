package kernel

import (
	"fmt"
	"time"

	"github.com/ritzau/electre-kernel/pkg/cycles"
	"github.com/ritzau/electre-kernel/pkg/graph"
	"github.com/ritzau/electre-kernel/pkg/logging"
	"github.com/ritzau/electre-kernel/pkg/model"
	"gonum.org/v1/gonum/graph/topo"
)

// Result holds the kernel of an outranking graph and how it was reached
type Result struct {
	Kernel     []int64  // Node ids of the reduced graph, in extraction order
	Labels     []string // Alternatives in the kernel, in input order
	Method     model.EliminationMethod
	Iterations int // Number of cycles eliminated
	SelfLoops  int // Number of self-loops stripped before elimination
	Initial    *model.GraphSnapshot
	Reduced    *graph.Graph
}

// Find builds the outranking graph of the alternatives and returns its kernel
func Find(alternatives []string, rel model.Relation, credibility model.Comparisons, method model.EliminationMethod) (*Result, error) {
	g, err := graph.Build(alternatives, rel, credibility)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	return FindGraph(g, method)
}

// FindGraph returns the kernel of g after removing its cycles with the given method.
// g is left untouched; all work happens on a copy.
func FindGraph(g *graph.Graph, method model.EliminationMethod) (*Result, error) {
	start := time.Now()
	strategy, err := cycles.NewStrategy(method)
	if err != nil {
		return nil, err
	}

	logging.Debug("finding kernel", "method", method, "nodes", g.NodeCount(), "edges", g.EdgeCount())

	reduced := g.Clone()
	loops := reduced.RemoveSelfLoops()

	iterations, err := cycles.Eliminate(reduced, strategy)
	if err != nil {
		return nil, err
	}

	if _, err := topo.Sort(reduced.DirectedView(reduced.NodeIDs())); err != nil {
		return nil, fmt.Errorf("%w: graph has cycles after elimination: %v", model.ErrInternal, err)
	}

	ids, err := Extract(reduced)
	if err != nil {
		return nil, fmt.Errorf("failed to extract kernel: %w", err)
	}

	result := &Result{
		Kernel:     ids,
		Labels:     ExpandLabels(reduced, ids),
		Method:     method,
		Iterations: iterations,
		SelfLoops:  loops,
		Initial:    g.Snapshot(),
		Reduced:    reduced,
	}

	logging.Info("kernel found",
		"method", method,
		"kernel", result.Labels,
		"eliminated", iterations,
		"durationMs", time.Since(start).Milliseconds(),
	)
	return result, nil
}
