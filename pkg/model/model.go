package model

import (
	"fmt"
	"sort"
	"strings"
)

// EliminationMethod selects how cycles are removed from the outranking graph
type EliminationMethod string

const (
	MethodAggregate  EliminationMethod = "aggregate"   // Merge the members of a cycle into one node
	MethodCutWeakest EliminationMethod = "cut_weakest" // Remove the lowest-weight edge inside a cycle
)

// ParseEliminationMethod converts a configuration value into an EliminationMethod
func ParseEliminationMethod(s string) (EliminationMethod, error) {
	switch m := EliminationMethod(strings.TrimSpace(s)); m {
	case MethodAggregate, MethodCutWeakest:
		return m, nil
	case "":
		return "", fmt.Errorf("%w: missing method for cycle elimination", ErrConfiguration)
	default:
		return "", fmt.Errorf("%w: invalid method for cycle elimination %q (want %q or %q)",
			ErrConfiguration, s, MethodAggregate, MethodCutWeakest)
	}
}

// Comparisons holds a pairwise value for ordered pairs of alternatives.
// The outer key is the initial alternative, the inner key the terminal one.
type Comparisons map[string]map[string]float64

// NewComparisons creates an empty comparison table sized for n initial alternatives
func NewComparisons(n int) Comparisons {
	return make(Comparisons, n)
}

// Set stores the value for the pair (a, b), allocating the row if needed
func (c Comparisons) Set(a, b string, v float64) {
	row, ok := c[a]
	if !ok {
		row = make(map[string]float64)
		c[a] = row
	}
	row[b] = v
}

// Value returns the value for the pair (a, b) without allocating
func (c Comparisons) Value(a, b string) (float64, bool) {
	row, ok := c[a]
	if !ok {
		return 0, false
	}
	v, ok := row[b]
	return v, ok
}

// Labels returns every alternative mentioned in the table, sorted
func (c Comparisons) Labels() []string {
	seen := make(map[string]bool, len(c))
	for a, row := range c {
		seen[a] = true
		for b := range row {
			seen[b] = true
		}
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Relation is an outranking relation between alternatives.
// A valued relation holds for a pair when its value reaches CutThreshold;
// a crisp relation holds whenever the value is non-zero.
type Relation struct {
	Pairs        Comparisons
	CutThreshold float64
	Crisp        bool
}

// NewValuedRelation creates a relation cut at the given credibility threshold
func NewValuedRelation(pairs Comparisons, cutThreshold float64) Relation {
	return Relation{Pairs: pairs, CutThreshold: cutThreshold}
}

// NewCrispRelation creates a relation from binary outranking values
func NewCrispRelation(pairs Comparisons) Relation {
	return Relation{Pairs: pairs, Crisp: true}
}

// Holds reports whether a outranks b
func (r Relation) Holds(a, b string) bool {
	v, ok := r.Pairs.Value(a, b)
	if !ok {
		return false
	}
	if r.Crisp {
		return v != 0
	}
	return v >= r.CutThreshold
}
