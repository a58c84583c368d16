package xmcda

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/ritzau/electre-kernel/pkg/model"
)

// Parameter names recognised in method_parameters.xml
const (
	ParamEliminateCyclesMethod = "eliminate_cycles_method"
	ParamCutThreshold          = "cut_threshold"
	ParamComparisonWith        = "comparison_with"
)

// KernelInput is the content of an input directory for kernel extraction
type KernelInput struct {
	Alternatives []string
	Outranking   model.Comparisons
	Crisp        bool              // Outranking came from the distillation intersection
	Credibility  model.Comparisons // nil without credibility.xml
	Parameters   Parameters        // Empty without method_parameters.xml
}

// LoadKernelInput reads alternatives.xml, outranking.xml and, when present,
// method_parameters.xml and credibility.xml from dir.
// Alternatives are sorted by id; node ids and the kernel order follow that order.
func LoadKernelInput(dir string) (*KernelInput, error) {
	alternatives, err := ReadAlternatives(filepath.Join(dir, AlternativesFile))
	if err != nil {
		return nil, err
	}
	slices.Sort(alternatives)

	params, err := readOptionalParameters(dir)
	if err != nil {
		return nil, err
	}

	out, crisp, err := ReadOutranking(filepath.Join(dir, OutrankingFile), alternatives)
	if err != nil {
		return nil, err
	}

	in := &KernelInput{
		Alternatives: alternatives,
		Outranking:   out,
		Crisp:        crisp,
		Parameters:   params,
	}

	credibilityPath := filepath.Join(dir, CredibilityFile)
	if exists(credibilityPath) {
		if in.Credibility, err = ReadComparisons(credibilityPath, alternatives, ""); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// Relation returns the outranking relation, cut at the threshold unless it is crisp
func (in *KernelInput) Relation(cutThreshold float64) model.Relation {
	if in.Crisp {
		return model.NewCrispRelation(in.Outranking)
	}
	return model.NewValuedRelation(in.Outranking, cutThreshold)
}

// Weights returns the edge weights: the credibility matrix if one was given,
// else the outranking values themselves. Distillation pairs all weigh 1.
func (in *KernelInput) Weights() model.Comparisons {
	if in.Credibility != nil {
		return in.Credibility
	}
	return in.Outranking
}

// CutInput is the content of an input directory for the cut relation
type CutInput struct {
	Alternatives   []string
	Profiles       []string // nil when alternatives are compared with each other
	ComparisonWith string
	Credibility    model.Comparisons
	Parameters     Parameters
}

// LoadCutInput reads alternatives.xml, credibility.xml, method_parameters.xml
// and, for comparisons with profiles, categories_profiles.xml from dir.
func LoadCutInput(dir string) (*CutInput, error) {
	alternatives, err := ReadAlternatives(filepath.Join(dir, AlternativesFile))
	if err != nil {
		return nil, err
	}

	params, err := readOptionalParameters(dir)
	if err != nil {
		return nil, err
	}

	in := &CutInput{
		Alternatives:   alternatives,
		ComparisonWith: "alternatives",
		Parameters:     params,
	}
	if with, ok := params.String(ParamComparisonWith); ok && with != "" {
		in.ComparisonWith = with
	}

	known := alternatives
	if in.ComparisonWith != "alternatives" {
		if in.Profiles, err = ReadProfiles(filepath.Join(dir, CategoriesProfilesFile), in.ComparisonWith); err != nil {
			return nil, err
		}
		if len(in.Profiles) == 0 {
			return nil, fmt.Errorf("%w: %s: no category profiles found", model.ErrConfiguration, CategoriesProfilesFile)
		}
		known = append(append([]string{}, alternatives...), in.Profiles...)
	}

	if in.Credibility, err = ReadComparisons(filepath.Join(dir, CredibilityFile), known, ""); err != nil {
		return nil, err
	}
	return in, nil
}

// Comparables returns the two sets compared by the cut
func (in *CutInput) Comparables() ([]string, []string) {
	if in.Profiles != nil {
		return in.Alternatives, in.Profiles
	}
	return in.Alternatives, in.Alternatives
}

func readOptionalParameters(dir string) (Parameters, error) {
	path := filepath.Join(dir, MethodParametersFile)
	if !exists(path) {
		return Parameters{}, nil
	}
	return ReadParameters(path)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
