package kernel

import (
	"fmt"
	"slices"
)

// Diff describes how a kernel run differs from a previous one
type Diff struct {
	AddedLabels   []string `json:"addedLabels"`
	RemovedLabels []string `json:"removedLabels"`
	AddedEdges    []string `json:"addedEdges"`   // Edge keys (initial|terminal)
	RemovedEdges  []string `json:"removedEdges"` // Edge keys (initial|terminal)
	Full          bool     `json:"full"`         // True if there was no previous run
}

// Empty reports whether neither the kernel nor the outranking edges changed
func (d *Diff) Empty() bool {
	return !d.Full &&
		len(d.AddedLabels) == 0 && len(d.RemovedLabels) == 0 &&
		len(d.AddedEdges) == 0 && len(d.RemovedEdges) == 0
}

// Compare computes the difference between two results.
// With no previous result everything in cur counts as added.
func Compare(prev, cur *Result) *Diff {
	curEdges := edgeKeys(cur)
	if prev == nil {
		return &Diff{
			AddedLabels: slices.Clone(cur.Labels),
			AddedEdges:  curEdges,
			Full:        true,
		}
	}

	prevEdges := edgeKeys(prev)
	return &Diff{
		AddedLabels:   missing(cur.Labels, prev.Labels),
		RemovedLabels: missing(prev.Labels, cur.Labels),
		AddedEdges:    missing(curEdges, prevEdges),
		RemovedEdges:  missing(prevEdges, curEdges),
	}
}

// edgeKeys lists the edges of the initial graph by alternative labels, sorted
func edgeKeys(r *Result) []string {
	if r.Initial == nil {
		return nil
	}
	labels := make(map[int64]string, len(r.Initial.Nodes))
	for _, n := range r.Initial.Nodes {
		labels[n.ID] = n.Label
	}

	keys := make([]string, 0, len(r.Initial.Edges))
	for _, e := range r.Initial.Edges {
		keys = append(keys, edgeKey(labels[e.From], labels[e.To]))
	}
	slices.Sort(keys)
	return keys
}

func edgeKey(from, to string) string {
	return fmt.Sprintf("%s|%s", from, to)
}

// missing returns the elements of a that are not in b, keeping the order of a
func missing(a, b []string) []string {
	out := make([]string, 0)
	for _, s := range a {
		if !slices.Contains(b, s) {
			out = append(out, s)
		}
	}
	return out
}
