package model

// GraphSnapshot is a serializable view of an outranking graph.
// It is used for diagnostics output and by the HTTP API.
type GraphSnapshot struct {
	Nodes []NodeSnapshot `json:"nodes"`
	Edges []EdgeSnapshot `json:"edges"`
}

// NodeSnapshot represents a vertex of the graph.
// Aggregated nodes have no label of their own and list the alternatives they absorbed.
type NodeSnapshot struct {
	ID     int64    `json:"id"`
	Label  string   `json:"label,omitempty"`
	Merged []string `json:"merged,omitempty"`
}

// EdgeSnapshot represents a directed "outranks" edge
type EdgeSnapshot struct {
	From   int64    `json:"from"`
	To     int64    `json:"to"`
	Weight *float64 `json:"weight,omitempty"`
}

// EdgeCount returns the number of edges, counting self-loops
func (s *GraphSnapshot) EdgeCount() int {
	return len(s.Edges)
}

// Labels returns the labels of all non-aggregated nodes in snapshot order
func (s *GraphSnapshot) Labels() []string {
	labels := make([]string, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.Label != "" {
			labels = append(labels, n.Label)
		}
	}
	return labels
}
