package outranking

import (
	"fmt"

	"github.com/ritzau/electre-kernel/pkg/model"
)

// RelationType is the crisp relation between an ordered pair after a cut
type RelationType string

const (
	Preference      RelationType = "preference"      // a outranks b but not the other way around
	Indifference    RelationType = "indifference"    // a and b outrank each other
	Incomparability RelationType = "incomparability" // neither outranks the other
	None            RelationType = "none"            // b is preferred to a
)

// Outranks reports whether the relation type means the initial element outranks the terminal one
func (t RelationType) Outranks() bool {
	return t == Preference || t == Indifference
}

// Pair is one entry of a cut relation
type Pair struct {
	Initial  string       `json:"initial"`
	Terminal string       `json:"terminal"`
	Relation RelationType `json:"relation"`
}

// Relations maps an initial element and a terminal element to their relation
type Relations map[string]map[string]RelationType

func (r Relations) set(a, b string, t RelationType) {
	row, ok := r[a]
	if !ok {
		row = make(map[string]RelationType)
		r[a] = row
	}
	row[b] = t
}

// Get returns the relation of the pair (a, b)
func (r Relations) Get(a, b string) (RelationType, bool) {
	row, ok := r[a]
	if !ok {
		return "", false
	}
	t, ok := row[b]
	return t, ok
}

// ValidateCutThreshold checks that a cut threshold lies in [0, 1]
func ValidateCutThreshold(threshold float64) error {
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: cut threshold should be in range [0.0, 1.0], got %v", model.ErrConfiguration, threshold)
	}
	return nil
}

// Cut turns a credibility matrix into crisp relations.
// Every a in as is compared with every b in bs in both directions, so the
// credibility matrix must hold both c(a, b) and c(b, a). bs is either the
// alternatives themselves or a set of category profiles.
func Cut(as, bs []string, credibility model.Comparisons, threshold float64) (Relations, error) {
	if err := ValidateCutThreshold(threshold); err != nil {
		return nil, err
	}

	relations := make(Relations, len(as)+len(bs))
	for _, a := range as {
		for _, b := range bs {
			cab, ok := credibility.Value(a, b)
			if !ok {
				return nil, fmt.Errorf("%w: no credibility value for pair (%s, %s)", model.ErrConfiguration, a, b)
			}
			cba, ok := credibility.Value(b, a)
			if !ok {
				return nil, fmt.Errorf("%w: no credibility value for pair (%s, %s)", model.ErrConfiguration, b, a)
			}

			switch ab, ba := cab >= threshold, cba >= threshold; {
			case ab && ba:
				relations.set(a, b, Indifference)
				relations.set(b, a, Indifference)
			case ab:
				relations.set(a, b, Preference)
				relations.set(b, a, None)
			case ba:
				relations.set(b, a, Preference)
				relations.set(a, b, None)
			default:
				relations.set(a, b, Incomparability)
				relations.set(b, a, Incomparability)
			}
		}
	}
	return relations, nil
}

// Pairs lists the relations in output order: every (a, b) of as x bs, then
// every (b, a). Pairs already listed are not repeated, so comparing a set
// with itself yields each ordered pair once.
func (r Relations) Pairs(as, bs []string) []Pair {
	pairs := make([]Pair, 0, 2*len(as)*len(bs))
	seen := make(map[[2]string]bool, cap(pairs))
	add := func(a, b string) {
		key := [2]string{a, b}
		if seen[key] {
			return
		}
		if t, ok := r.Get(a, b); ok {
			seen[key] = true
			pairs = append(pairs, Pair{Initial: a, Terminal: b, Relation: t})
		}
	}

	for _, a := range as {
		for _, b := range bs {
			add(a, b)
		}
	}
	for _, b := range bs {
		for _, a := range as {
			add(b, a)
		}
	}
	return pairs
}

// Outranking returns the crisp outranking relation: 1 where the initial
// element is preferred or indifferent to the terminal one, 0 otherwise.
func (r Relations) Outranking() model.Comparisons {
	c := model.NewComparisons(len(r))
	for a, row := range r {
		for b, t := range row {
			v := 0.0
			if t.Outranks() {
				v = 1.0
			}
			c.Set(a, b, v)
		}
	}
	return c
}
