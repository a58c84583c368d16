package graph

import (
	"fmt"

	"github.com/ritzau/electre-kernel/pkg/model"
)

// Build creates the outranking graph for the given alternatives.
// Node ids follow the position of each alternative in the list, and an edge
// i -> j exists exactly when the relation holds from alternative i to j.
// When credibility is non-nil every edge is weighted with the credibility
// of its pair; otherwise edges are unweighted.
func Build(alternatives []string, rel model.Relation, credibility model.Comparisons) (*Graph, error) {
	index := make(map[string]int64, len(alternatives))
	for i, a := range alternatives {
		if a == "" {
			return nil, fmt.Errorf("%w: alternative at position %d has an empty id", model.ErrConfiguration, i)
		}
		if _, dup := index[a]; dup {
			return nil, fmt.Errorf("%w: duplicate alternative %q", model.ErrConfiguration, a)
		}
		index[a] = int64(i)
	}

	if err := checkKnown(rel.Pairs, index, "outranking relation"); err != nil {
		return nil, err
	}
	if credibility != nil {
		if err := checkKnown(credibility, index, "credibility matrix"); err != nil {
			return nil, err
		}
	}

	g := New()
	for _, a := range alternatives {
		g.AddNode(a)
	}

	for i, a := range alternatives {
		for j, b := range alternatives {
			if !rel.Holds(a, b) {
				continue
			}

			from, to := int64(i), int64(j)
			if credibility == nil {
				if err := g.AddEdge(from, to); err != nil {
					return nil, err
				}
				continue
			}

			w, ok := credibility.Value(a, b)
			if !ok {
				return nil, fmt.Errorf("%w: no credibility value for pair (%s, %s)", model.ErrConfiguration, a, b)
			}
			if err := g.AddWeightedEdge(from, to, w); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// checkKnown fails on the first label of the table (in sorted order) missing from index
func checkKnown(c model.Comparisons, index map[string]int64, what string) error {
	for _, label := range c.Labels() {
		if _, ok := index[label]; !ok {
			return fmt.Errorf("%w: %s references unknown alternative %q", model.ErrConfiguration, what, label)
		}
	}
	return nil
}
