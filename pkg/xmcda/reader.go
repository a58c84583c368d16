package xmcda

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ritzau/electre-kernel/pkg/logging"
	"github.com/ritzau/electre-kernel/pkg/model"
	"github.com/ritzau/electre-kernel/pkg/outranking"
)

// Parameters holds method parameters by name. Values are strings, int64,
// float64 or bool depending on the XMCDA value type.
type Parameters map[string]any

// String returns a label parameter
func (p Parameters) String(name string) (string, bool) {
	s, ok := p[name].(string)
	return s, ok
}


func readDocument(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: problem with input file %q: %v", model.ErrConfiguration, filepath.Base(path), err)
	}

	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", model.ErrConfiguration, filepath.Base(path), err)
	}
	return &doc, nil
}

// ReadAlternatives returns the ids of the active alternatives in document order
func ReadAlternatives(path string) ([]string, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, block := range doc.Alternatives {
		for _, a := range block.Alternatives {
			if a.Active != nil && strings.TrimSpace(*a.Active) == "false" {
				logging.Debug("skipping inactive alternative", "id", a.ID)
				continue
			}
			id := strings.TrimSpace(a.ID)
			if id == "" {
				return nil, fmt.Errorf("%w: %s: alternative without an id", model.ErrConfiguration, filepath.Base(path))
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s: no active alternatives", model.ErrConfiguration, filepath.Base(path))
	}
	return ids, nil
}

// ReadParameters returns every method parameter with a value
func ReadParameters(path string) (Parameters, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	params := make(Parameters)
	for _, block := range doc.MethodParameters {
		for _, p := range block.Parameters {
			v, ok, err := p.Value.parameter()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: parameter %q: %v", model.ErrConfiguration, filepath.Base(path), p.Name, err)
			}
			if ok {
				params[p.Name] = v
			}
		}
	}
	return params, nil
}

// ReadComparisons reads pairwise values between known elements.
// With an empty concept the first comparisons block is used. Pairs naming
// unknown elements are skipped.
func ReadComparisons(path string, known []string, concept string) (model.Comparisons, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	block := doc.comparisons(concept)
	if block == nil {
		return nil, fmt.Errorf("%w: %s: no alternativesComparisons found", model.ErrConfiguration, filepath.Base(path))
	}
	return block.values(known, filepath.Base(path))
}

// ReadOutranking reads an outranking relation. If the file holds the
// intersection of the distillations, that block is used and read as a crisp
// relation with value 1 for every listed pair.
func ReadOutranking(path string, known []string) (model.Comparisons, bool, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, false, err
	}

	if block := doc.comparisons(DistillationConcept); block != nil {
		logging.Debug("reading outranking from distillation", "pairs", len(block.Pairs))
		isKnown := knownSet(known)
		c := model.NewComparisons(len(known))
		for _, p := range block.Pairs {
			initial, terminal := strings.TrimSpace(p.Initial), strings.TrimSpace(p.Terminal)
			if isKnown[initial] && isKnown[terminal] {
				c.Set(initial, terminal, 1.0)
			}
		}
		return c, true, nil
	}

	block := doc.comparisons("")
	if block == nil {
		return nil, false, fmt.Errorf("%w: %s: no alternativesComparisons found", model.ErrConfiguration, filepath.Base(path))
	}
	c, err := block.values(known, filepath.Base(path))
	return c, false, err
}

// ReadProfiles returns the category profiles to compare alternatives with.
// comparisonWith is either "boundary_profiles" or "central_profiles".
func ReadProfiles(path string, comparisonWith string) ([]string, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	var profiles []string
	seen := make(map[string]bool)
	for _, block := range doc.CategoriesProfiles {
		for _, p := range block.Profiles {
			id := strings.TrimSpace(p.AlternativeID)
			switch comparisonWith {
			case "boundary_profiles":
			case "central_profiles":
				if p.Central == nil {
					continue
				}
			default:
				return nil, fmt.Errorf("%w: wrong comparison type %q specified", model.ErrConfiguration, comparisonWith)
			}
			if id != "" && !seen[id] {
				seen[id] = true
				profiles = append(profiles, id)
			}
		}
	}
	return profiles, nil
}

func (d *document) comparisons(concept string) *comparisons {
	for i := range d.Comparisons {
		if concept == "" || d.Comparisons[i].MCDAConcept == concept {
			return &d.Comparisons[i]
		}
	}
	return nil
}

func (c *comparisons) values(known []string, file string) (model.Comparisons, error) {
	isKnown := knownSet(known)
	result := model.NewComparisons(len(known))
	for _, p := range c.Pairs {
		initial, terminal := strings.TrimSpace(p.Initial), strings.TrimSpace(p.Terminal)
		if !isKnown[initial] || !isKnown[terminal] {
			logging.Trace("ignoring pair with unknown element", "file", file, "initial", initial, "terminal", terminal)
			continue
		}
		if p.Value == nil {
			return nil, fmt.Errorf("%w: %s: pair (%s, %s) has no value", model.ErrConfiguration, file, initial, terminal)
		}

		v, ok, err := p.Value.number()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: pair (%s, %s): %v", model.ErrConfiguration, file, initial, terminal, err)
		}
		if ok {
			result.Set(initial, terminal, v)
		}
	}
	return result, nil
}

// number converts a comparison value. Relation labels count as 1 when the
// initial element outranks the terminal one and 0 otherwise. NA is reported
// as absent.
func (v *value) number() (float64, bool, error) {
	switch {
	case v.Integer != nil:
		n, err := strconv.ParseInt(strings.TrimSpace(*v.Integer), 10, 64)
		return float64(n), err == nil, err
	case v.Real != nil:
		f, err := strconv.ParseFloat(strings.TrimSpace(*v.Real), 64)
		return f, err == nil, err
	case v.Rational != nil:
		f, err := v.Rational.float()
		return f, err == nil, err
	case v.Label != nil:
		switch t := outranking.RelationType(strings.TrimSpace(*v.Label)); t {
		case outranking.Preference, outranking.Indifference:
			return 1, true, nil
		case outranking.Incomparability, outranking.None:
			return 0, true, nil
		default:
			return 0, false, fmt.Errorf("unknown relation label %q", t)
		}
	case v.NA != nil:
		return 0, false, nil
	default:
		return 0, false, fmt.Errorf("value is not numeric")
	}
}

// parameter converts a parameter value to its Go representation
func (v *value) parameter() (any, bool, error) {
	switch {
	case v.Label != nil:
		return strings.TrimSpace(*v.Label), true, nil
	case v.Boolean != nil:
		b, err := strconv.ParseBool(strings.TrimSpace(*v.Boolean))
		return b, err == nil, err
	case v.Integer != nil:
		n, err := strconv.ParseInt(strings.TrimSpace(*v.Integer), 10, 64)
		return n, err == nil, err
	case v.Real != nil:
		f, err := strconv.ParseFloat(strings.TrimSpace(*v.Real), 64)
		return f, err == nil, err
	case v.Rational != nil:
		f, err := v.Rational.float()
		return f, err == nil, err
	default:
		return nil, false, nil
	}
}

func (r *rational) float() (float64, error) {
	num, err := strconv.ParseFloat(strings.TrimSpace(r.Numerator), 64)
	if err != nil {
		return 0, err
	}
	den, err := strconv.ParseFloat(strings.TrimSpace(r.Denominator), 64)
	if err != nil {
		return 0, err
	}
	if den == 0 {
		return 0, fmt.Errorf("rational with zero denominator")
	}
	return num / den, nil
}

func knownSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
