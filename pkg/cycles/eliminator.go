package cycles

import (
	"fmt"
	"slices"

	"github.com/ritzau/electre-kernel/pkg/graph"
	"github.com/ritzau/electre-kernel/pkg/logging"
	"github.com/ritzau/electre-kernel/pkg/model"
)

// Strategy removes one cycle from a graph
type Strategy interface {
	// Method returns the configuration name of the strategy
	Method() model.EliminationMethod

	// Validate checks that the strategy can run on g at all
	Validate(g *graph.Graph) error

	// Bound returns the maximum number of eliminations needed to make g acyclic
	Bound(g *graph.Graph) int

	// Eliminate removes the given cycle from g in place
	Eliminate(g *graph.Graph, cycle []int64) error
}

// NewStrategy returns the strategy configured by method
func NewStrategy(method model.EliminationMethod) (Strategy, error) {
	switch method {
	case model.MethodAggregate:
		return Aggregate{}, nil
	case model.MethodCutWeakest:
		return CutWeakest{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown cycle elimination method %q", model.ErrConfiguration, method)
	}
}

// Eliminate removes cycles from g until none is left and returns how many
// cycles were eliminated. Every elimination strictly shrinks the graph, so
// exceeding the strategy's bound means an invariant is broken.
func Eliminate(g *graph.Graph, s Strategy) (int, error) {
	if err := s.Validate(g); err != nil {
		return 0, &model.EliminationError{Method: s.Method(), Err: err}
	}

	limit := s.Bound(g)
	for i := 0; ; i++ {
		cycle := FindCycle(g)
		if cycle == nil {
			logging.Debug("graph is acyclic", "method", s.Method(), "iterations", i)
			return i, nil
		}

		if i >= limit {
			return i, &model.EliminationError{
				Method:    s.Method(),
				Cycle:     cycle,
				Iteration: i + 1,
				Err:       fmt.Errorf("%w: cycle elimination exceeded %d iterations", model.ErrInternal, limit),
			}
		}

		logging.Debug("eliminating cycle", "method", s.Method(), "iteration", i+1, "cycle", cycle)
		if err := s.Eliminate(g, cycle); err != nil {
			return i, &model.EliminationError{Method: s.Method(), Cycle: cycle, Iteration: i + 1, Err: err}
		}
	}
}

// CutWeakest breaks a cycle by removing its lowest-weight edge.
// Edges inside the cycle are compared in (From, To) order and the first of
// several equally weak edges is removed.
type CutWeakest struct{}

func (CutWeakest) Method() model.EliminationMethod {
	return model.MethodCutWeakest
}

// Validate fails for graphs with edges but no weights
func (CutWeakest) Validate(g *graph.Graph) error {
	weighted, err := g.Weighted()
	if err != nil {
		return err
	}
	if !weighted && g.EdgeCount() > 0 {
		return fmt.Errorf("%w: can't use %q method because the graph has no weights available",
			model.ErrConfiguration, model.MethodCutWeakest)
	}
	return nil
}

func (CutWeakest) Bound(g *graph.Graph) int {
	return g.EdgeCount()
}

func (CutWeakest) Eliminate(g *graph.Graph, cycle []int64) error {
	inside := memberSet(cycle)

	var weakest *graph.Edge
	for _, from := range cycle {
		for _, to := range g.Successors(from) {
			if to == from || !inside[to] {
				continue
			}
			e, _ := g.Edge(from, to)
			if !e.Weighted {
				return fmt.Errorf("%w: edge %d->%d has no weight", model.ErrConfiguration, from, to)
			}
			if weakest == nil || e.Weight < weakest.Weight {
				weakest = e
			}
		}
	}
	if weakest == nil {
		return fmt.Errorf("%w: cycle %v has no edges", model.ErrInternal, cycle)
	}

	logging.Trace("cutting weakest edge", "from", weakest.From, "to", weakest.To, "weight", weakest.Weight)
	g.RemoveEdge(weakest.From, weakest.To)
	return nil
}

// Aggregate collapses the members of a cycle into a single new node.
// Edges between the cycle and the rest of the graph are redirected to the
// new node; parallel edges collapse and keep their largest weight.
type Aggregate struct{}

func (Aggregate) Method() model.EliminationMethod {
	return model.MethodAggregate
}

func (Aggregate) Validate(g *graph.Graph) error {
	_, err := g.Weighted()
	return err
}

func (Aggregate) Bound(g *graph.Graph) int {
	return g.NodeCount()
}

func (Aggregate) Eliminate(g *graph.Graph, cycle []int64) error {
	if len(cycle) < 2 {
		return fmt.Errorf("%w: cannot aggregate %d node(s)", model.ErrInternal, len(cycle))
	}
	inside := memberSet(cycle)

	merged := make([]int64, 0, len(cycle))
	successors := make(map[int64]*graph.Edge)
	predecessors := make(map[int64]*graph.Edge)
	for _, id := range cycle {
		node, ok := g.Node(id)
		if !ok {
			return fmt.Errorf("%w: cycle member %d is not in the graph", model.ErrInternal, id)
		}
		if node.IsAggregate() {
			merged = append(merged, node.Merged...)
		} else {
			merged = append(merged, id)
		}

		for _, succ := range g.Successors(id) {
			if !inside[succ] {
				e, _ := g.Edge(id, succ)
				keepStrongest(successors, succ, e)
			}
		}
		for _, pred := range g.Predecessors(id) {
			if !inside[pred] {
				e, _ := g.Edge(pred, id)
				keepStrongest(predecessors, pred, e)
			}
		}
	}

	aggregate := g.AddAggregate(merged)
	for _, id := range cycle {
		g.RemoveNode(id)
	}

	for _, succ := range sortedEdgeKeys(successors) {
		if err := redirect(g, aggregate, succ, successors[succ]); err != nil {
			return err
		}
	}
	for _, pred := range sortedEdgeKeys(predecessors) {
		if err := redirect(g, pred, aggregate, predecessors[pred]); err != nil {
			return err
		}
	}

	logging.Trace("aggregated cycle", "cycle", cycle, "node", aggregate)
	return nil
}

func keepStrongest(edges map[int64]*graph.Edge, key int64, e *graph.Edge) {
	if current, ok := edges[key]; !ok || (e.Weighted && e.Weight > current.Weight) {
		edges[key] = e
	}
}

func redirect(g *graph.Graph, from, to int64, e *graph.Edge) error {
	if e.Weighted {
		return g.AddWeightedEdge(from, to, e.Weight)
	}
	return g.AddEdge(from, to)
}

func memberSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func sortedEdgeKeys(m map[int64]*graph.Edge) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
