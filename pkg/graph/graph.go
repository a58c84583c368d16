package graph

import (
	"fmt"
	"slices"

	"github.com/ritzau/electre-kernel/pkg/model"
	"gonum.org/v1/gonum/graph/simple"
)

// Node is a vertex of the outranking graph.
// Original nodes carry the label of an alternative. Aggregated nodes have no
// label and list the original node ids they absorbed in Merged.
type Node struct {
	ID     int64
	Label  string
	Merged []int64 // Sorted, flattened original ids
}

// IsAggregate reports whether the node was created by merging a cycle
func (n *Node) IsAggregate() bool {
	return len(n.Merged) > 0
}

// Edge is a directed "outranks" edge with an optional weight
type Edge struct {
	From     int64
	To       int64
	Weight   float64
	Weighted bool
}

// Graph is an outranking graph with integer node ids.
// Every collection is keyed by id and read back in ascending id order,
// so all traversals are deterministic.
type Graph struct {
	nodes  map[int64]*Node
	out    map[int64]map[int64]*Edge // from -> to -> edge
	in     map[int64]map[int64]*Edge // to -> from -> edge
	labels map[int64]string          // Survives node removal, used to expand aggregates
	edges  int
	nextID int64
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		nodes:  make(map[int64]*Node),
		out:    make(map[int64]map[int64]*Edge),
		in:     make(map[int64]map[int64]*Edge),
		labels: make(map[int64]string),
		nextID: 0,
	}
}

// AddNode adds an original node for an alternative and returns its id
func (g *Graph) AddNode(label string) int64 {
	id := g.nextID
	g.nextID++

	g.nodes[id] = &Node{ID: id, Label: label}
	g.out[id] = make(map[int64]*Edge)
	g.in[id] = make(map[int64]*Edge)
	g.labels[id] = label
	return id
}

// AddAggregate adds a node standing for the given original ids and returns its id
func (g *Graph) AddAggregate(merged []int64) int64 {
	id := g.nextID
	g.nextID++

	m := slices.Clone(merged)
	slices.Sort(m)
	g.nodes[id] = &Node{ID: id, Merged: slices.Compact(m)}
	g.out[id] = make(map[int64]*Edge)
	g.in[id] = make(map[int64]*Edge)
	return id
}

// AddEdge adds an unweighted edge. Adding an existing edge is a no-op.
func (g *Graph) AddEdge(from, to int64) error {
	return g.setEdge(&Edge{From: from, To: to})
}

// AddWeightedEdge adds an edge carrying a weight, replacing the weight of an existing edge
func (g *Graph) AddWeightedEdge(from, to int64, weight float64) error {
	return g.setEdge(&Edge{From: from, To: to, Weight: weight, Weighted: true})
}

func (g *Graph) setEdge(e *Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return fmt.Errorf("%w: edge %d->%d: unknown node %d", model.ErrConfiguration, e.From, e.To, e.From)
	}
	if _, ok := g.nodes[e.To]; !ok {
		return fmt.Errorf("%w: edge %d->%d: unknown node %d", model.ErrConfiguration, e.From, e.To, e.To)
	}

	if existing, ok := g.out[e.From][e.To]; ok {
		if e.Weighted {
			existing.Weight = e.Weight
			existing.Weighted = true
		}
		return nil
	}

	g.out[e.From][e.To] = e
	g.in[e.To][e.From] = e
	g.edges++
	return nil
}

// RemoveEdge deletes the edge from -> to if present
func (g *Graph) RemoveEdge(from, to int64) bool {
	if _, ok := g.out[from][to]; !ok {
		return false
	}
	delete(g.out[from], to)
	delete(g.in[to], from)
	g.edges--
	return true
}

// RemoveNode deletes a node together with every incident edge
func (g *Graph) RemoveNode(id int64) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	for to := range g.out[id] {
		delete(g.in[to], id)
		g.edges--
	}
	for from := range g.in[id] {
		delete(g.out[from], id)
		g.edges--
	}
	delete(g.out, id)
	delete(g.in, id)
	delete(g.nodes, id)
}

// RemoveSelfLoops deletes every edge whose endpoints coincide and returns how many were removed
func (g *Graph) RemoveSelfLoops() int {
	removed := 0
	for _, id := range g.NodeIDs() {
		if g.RemoveEdge(id, id) {
			removed++
		}
	}
	return removed
}

// Node returns the node with the given id
func (g *Graph) Node(id int64) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Label returns the alternative label of an original node, even after it was removed
func (g *Graph) Label(id int64) (string, bool) {
	l, ok := g.labels[id]
	return l, ok
}

// HasEdge reports whether the edge from -> to exists
func (g *Graph) HasEdge(from, to int64) bool {
	_, ok := g.out[from][to]
	return ok
}

// Edge returns the edge from -> to
func (g *Graph) Edge(from, to int64) (*Edge, bool) {
	e, ok := g.out[from][to]
	return e, ok
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges, including self-loops
func (g *Graph) EdgeCount() int {
	return g.edges
}

// NodeIDs returns all node ids in ascending order
func (g *Graph) NodeIDs() []int64 {
	ids := make([]int64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Edges returns all edges sorted by (From, To)
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, 0, g.edges)
	for _, from := range g.NodeIDs() {
		for _, to := range g.Successors(from) {
			edges = append(edges, g.out[from][to])
		}
	}
	return edges
}

// Successors returns the ids the node points to, in ascending order
func (g *Graph) Successors(id int64) []int64 {
	return sortedKeys(g.out[id])
}

// Predecessors returns the ids pointing to the node, in ascending order
func (g *Graph) Predecessors(id int64) []int64 {
	return sortedKeys(g.in[id])
}

// Weighted reports whether every edge of the graph carries a weight.
// A graph mixing weighted and unweighted edges is invalid.
func (g *Graph) Weighted() (bool, error) {
	weighted, unweighted := 0, 0
	for _, targets := range g.out {
		for _, e := range targets {
			if e.Weighted {
				weighted++
			} else {
				unweighted++
			}
		}
	}
	if weighted > 0 && unweighted > 0 {
		return false, fmt.Errorf("%w: graph mixes %d weighted and %d unweighted edges",
			model.ErrConfiguration, weighted, unweighted)
	}
	return weighted > 0, nil
}

// Clone returns an independent deep copy of the graph
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes:  make(map[int64]*Node, len(g.nodes)),
		out:    make(map[int64]map[int64]*Edge, len(g.out)),
		in:     make(map[int64]map[int64]*Edge, len(g.in)),
		labels: make(map[int64]string, len(g.labels)),
		edges:  g.edges,
		nextID: g.nextID,
	}
	for id, n := range g.nodes {
		c.nodes[id] = &Node{ID: n.ID, Label: n.Label, Merged: slices.Clone(n.Merged)}
		c.out[id] = make(map[int64]*Edge, len(g.out[id]))
		c.in[id] = make(map[int64]*Edge, len(g.in[id]))
	}
	for from, targets := range g.out {
		for to, e := range targets {
			copied := *e
			c.out[from][to] = &copied
			c.in[to][from] = &copied
		}
	}
	for id, l := range g.labels {
		c.labels[id] = l
	}
	return c
}

// DirectedView returns a gonum view of the subgraph induced by ids.
// Self-loops are left out since simple graphs cannot hold them.
func (g *Graph) DirectedView(ids []int64) *simple.DirectedGraph {
	view := simple.NewDirectedGraph()
	include := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if _, ok := g.nodes[id]; !ok {
			continue
		}
		include[id] = true
		view.AddNode(simple.Node(id))
	}
	for _, from := range ids {
		if !include[from] {
			continue
		}
		for to := range g.out[from] {
			if to == from || !include[to] {
				continue
			}
			view.SetEdge(view.NewEdge(view.Node(from), view.Node(to)))
		}
	}
	return view
}

// Snapshot returns a serializable copy of the graph, with aggregates expanded to labels
func (g *Graph) Snapshot() *model.GraphSnapshot {
	s := &model.GraphSnapshot{
		Nodes: make([]model.NodeSnapshot, 0, len(g.nodes)),
		Edges: make([]model.EdgeSnapshot, 0, g.edges),
	}
	for _, id := range g.NodeIDs() {
		n := g.nodes[id]
		ns := model.NodeSnapshot{ID: id, Label: n.Label}
		for _, m := range n.Merged {
			ns.Merged = append(ns.Merged, g.labels[m])
		}
		s.Nodes = append(s.Nodes, ns)
	}
	for _, e := range g.Edges() {
		es := model.EdgeSnapshot{From: e.From, To: e.To}
		if e.Weighted {
			w := e.Weight
			es.Weight = &w
		}
		s.Edges = append(s.Edges, es)
	}
	return s
}

func sortedKeys(m map[int64]*Edge) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
