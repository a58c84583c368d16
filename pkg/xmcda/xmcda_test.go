package xmcda

import (
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ritzau/electre-kernel/pkg/model"
	"github.com/ritzau/electre-kernel/pkg/outranking"
)

const alternativesXML = `<?xml version="1.0" encoding="UTF-8"?>
<xmcda:XMCDA xmlns:xmcda="http://www.decision-deck.org/2012/XMCDA-2.2.0">
  <alternatives>
    <alternative id="b"/>
    <alternative id="a">
      <active>true</active>
    </alternative>
    <alternative id="x">
      <active>false</active>
    </alternative>
    <alternative id="c"/>
  </alternatives>
</xmcda:XMCDA>`

const parametersXML = `<?xml version="1.0" encoding="UTF-8"?>
<xmcda:XMCDA xmlns:xmcda="http://www.decision-deck.org/2012/XMCDA-2.2.0">
  <methodParameters>
    <parameter name="eliminate_cycles_method">
      <value><label>cut_weakest</label></value>
    </parameter>
    <parameter name="cut_threshold">
      <value><real>0.7</real></value>
    </parameter>
    <parameter name="iterations">
      <value><integer>3</integer></value>
    </parameter>
  </methodParameters>
</xmcda:XMCDA>`

const outrankingXML = `<?xml version="1.0" encoding="UTF-8"?>
<xmcda:XMCDA xmlns:xmcda="http://www.decision-deck.org/2012/XMCDA-2.2.0">
  <alternativesComparisons>
    <pairs>
      <pair>
        <initial><alternativeID>a</alternativeID></initial>
        <terminal><alternativeID>b</alternativeID></terminal>
        <value><real>0.8</real></value>
      </pair>
      <pair>
        <initial><alternativeID>b</alternativeID></initial>
        <terminal><alternativeID>c</alternativeID></terminal>
        <value><rational><numerator>1</numerator><denominator>2</denominator></rational></value>
      </pair>
      <pair>
        <initial><alternativeID>c</alternativeID></initial>
        <terminal><alternativeID>a</alternativeID></terminal>
        <value><integer>1</integer></value>
      </pair>
      <pair>
        <initial><alternativeID>ghost</alternativeID></initial>
        <terminal><alternativeID>a</alternativeID></terminal>
        <value><real>1.0</real></value>
      </pair>
    </pairs>
  </alternativesComparisons>
</xmcda:XMCDA>`

const distillationXML = `<?xml version="1.0" encoding="UTF-8"?>
<xmcda:XMCDA xmlns:xmcda="http://www.decision-deck.org/2012/XMCDA-2.2.0">
  <alternativesComparisons mcdaConcept="Upwards distillation">
    <pairs>
      <pair>
        <initial><alternativeID>c</alternativeID></initial>
        <terminal><alternativeID>b</alternativeID></terminal>
        <value><real>1.0</real></value>
      </pair>
    </pairs>
  </alternativesComparisons>
  <alternativesComparisons mcdaConcept="Intersection of upwards and downwards distillation">
    <pairs>
      <pair>
        <initial><alternativeID>a</alternativeID></initial>
        <terminal><alternativeID>b</alternativeID></terminal>
      </pair>
      <pair>
        <initial><alternativeID>a</alternativeID></initial>
        <terminal><alternativeID>x</alternativeID></terminal>
      </pair>
    </pairs>
  </alternativesComparisons>
</xmcda:XMCDA>`

const profilesXML = `<?xml version="1.0" encoding="UTF-8"?>
<xmcda:XMCDA xmlns:xmcda="http://www.decision-deck.org/2012/XMCDA-2.2.0">
  <categoriesProfiles>
    <categoryProfile>
      <alternativeID>pBM</alternativeID>
      <central><categoryID>Medium</categoryID></central>
    </categoryProfile>
    <categoryProfile>
      <alternativeID>pMG</alternativeID>
      <limits>
        <lowerCategory><categoryID>Medium</categoryID></lowerCategory>
        <upperCategory><categoryID>Good</categoryID></upperCategory>
      </limits>
    </categoryProfile>
  </categoriesProfiles>
</xmcda:XMCDA>`

func writeInput(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestReadAlternatives(t *testing.T) {
	dir := writeInput(t, map[string]string{AlternativesFile: alternativesXML})

	got, err := ReadAlternatives(filepath.Join(dir, AlternativesFile))
	if err != nil {
		t.Fatalf("ReadAlternatives() error = %v", err)
	}

	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadAlternatives() = %v, want %v", got, want)
	}
}

func TestReadParameters(t *testing.T) {
	dir := writeInput(t, map[string]string{MethodParametersFile: parametersXML})

	params, err := ReadParameters(filepath.Join(dir, MethodParametersFile))
	if err != nil {
		t.Fatalf("ReadParameters() error = %v", err)
	}

	if m, ok := params.String(ParamEliminateCyclesMethod); !ok || m != "cut_weakest" {
		t.Errorf("Expected method cut_weakest, got %q", m)
	}
	if v := params[ParamCutThreshold]; v != 0.7 {
		t.Errorf("Expected cut threshold 0.7, got %#v", v)
	}
	if v := params["iterations"]; v != int64(3) {
		t.Errorf("Expected integer parameter 3, got %#v", v)
	}
	if _, ok := params.String(ParamCutThreshold); ok {
		t.Error("Numeric parameter should not read as a label")
	}
}

func TestReadOutranking(t *testing.T) {
	dir := writeInput(t, map[string]string{OutrankingFile: outrankingXML})
	known := []string{"a", "b", "c"}

	c, crisp, err := ReadOutranking(filepath.Join(dir, OutrankingFile), known)
	if err != nil {
		t.Fatalf("ReadOutranking() error = %v", err)
	}
	if crisp {
		t.Error("Plain comparisons should give a valued relation")
	}

	tests := []struct {
		a, b string
		want float64
	}{
		{"a", "b", 0.8},
		{"b", "c", 0.5},
		{"c", "a", 1.0},
	}
	for _, tt := range tests {
		if v, ok := c.Value(tt.a, tt.b); !ok || v != tt.want {
			t.Errorf("Value(%s, %s) = %v, want %v", tt.a, tt.b, v, tt.want)
		}
	}
	if _, ok := c["ghost"]; ok {
		t.Error("Pairs with unknown alternatives should be ignored")
	}
}

func TestReadOutranking_Distillation(t *testing.T) {
	dir := writeInput(t, map[string]string{OutrankingFile: distillationXML})

	c, crisp, err := ReadOutranking(filepath.Join(dir, OutrankingFile), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("ReadOutranking() error = %v", err)
	}
	if !crisp {
		t.Error("Distillation should give a crisp relation")
	}
	if v, ok := c.Value("a", "b"); !ok || v != 1.0 {
		t.Errorf("Value(a, b) = %v, want 1", v)
	}
	if _, ok := c.Value("c", "b"); ok {
		t.Error("Only the intersection block should be read")
	}
	if _, ok := c.Value("a", "x"); ok {
		t.Error("Pairs with unknown alternatives should be ignored")
	}
}

func TestReadComparisons_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "<xmcda:XMCDA><alternativesComparisons>"},
		{"no comparisons", alternativesXML},
		{"missing value", strings.Replace(outrankingXML, "<value><real>0.8</real></value>", "", 1)},
		{"bad number", strings.Replace(outrankingXML, "<real>0.8</real>", "<real>high</real>", 1)},
		{"bad label", strings.Replace(outrankingXML, "<real>0.8</real>", "<label>better</label>", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeInput(t, map[string]string{CredibilityFile: tt.content})
			_, err := ReadComparisons(filepath.Join(dir, CredibilityFile), []string{"a", "b", "c"}, "")
			if !errors.Is(err, model.ErrConfiguration) {
				t.Errorf("Expected configuration error, got %v", err)
			}
		})
	}

	_, err := ReadComparisons(filepath.Join(t.TempDir(), CredibilityFile), nil, "")
	if !errors.Is(err, model.ErrConfiguration) {
		t.Errorf("Expected configuration error for a missing file, got %v", err)
	}
}

func TestReadComparisons_Labels(t *testing.T) {
	content := strings.Replace(outrankingXML, "<real>0.8</real>", "<label>preference</label>", 1)
	content = strings.Replace(content, "<integer>1</integer>", "<label>none</label>", 1)
	dir := writeInput(t, map[string]string{OutrankingFile: content})

	c, err := ReadComparisons(filepath.Join(dir, OutrankingFile), []string{"a", "b", "c"}, "")
	if err != nil {
		t.Fatalf("ReadComparisons() error = %v", err)
	}
	if v, _ := c.Value("a", "b"); v != 1 {
		t.Errorf("preference should read as 1, got %v", v)
	}
	if v, ok := c.Value("c", "a"); !ok || v != 0 {
		t.Errorf("none should read as 0, got %v", v)
	}
}

func TestReadProfiles(t *testing.T) {
	dir := writeInput(t, map[string]string{CategoriesProfilesFile: profilesXML})
	path := filepath.Join(dir, CategoriesProfilesFile)

	boundary, err := ReadProfiles(path, "boundary_profiles")
	if err != nil || !reflect.DeepEqual(boundary, []string{"pBM", "pMG"}) {
		t.Errorf("boundary profiles = %v (err %v)", boundary, err)
	}
	central, err := ReadProfiles(path, "central_profiles")
	if err != nil || !reflect.DeepEqual(central, []string{"pBM"}) {
		t.Errorf("central profiles = %v (err %v)", central, err)
	}
	if _, err := ReadProfiles(path, "neighbours"); !errors.Is(err, model.ErrConfiguration) {
		t.Errorf("Expected configuration error for unknown comparison type, got %v", err)
	}
}

func TestLoadKernelInput(t *testing.T) {
	dir := writeInput(t, map[string]string{
		AlternativesFile:     alternativesXML,
		MethodParametersFile: parametersXML,
		OutrankingFile:       outrankingXML,
	})

	in, err := LoadKernelInput(dir)
	if err != nil {
		t.Fatalf("LoadKernelInput() error = %v", err)
	}
	if in.Crisp || in.Credibility != nil {
		t.Errorf("Expected valued relation without credibility, got %+v", in)
	}
	// Document order is b, a, c; kernel input is sorted by id
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(in.Alternatives, want) {
		t.Errorf("Alternatives = %v, want %v", in.Alternatives, want)
	}

	rel := in.Relation(0.7)
	if !rel.Holds("a", "b") || rel.Holds("b", "c") {
		t.Error("Relation should be cut at 0.7")
	}
	if w := in.Weights(); w == nil {
		t.Error("A valued relation should weight its own edges")
	}
}

func TestLoadKernelInput_DistillationWeights(t *testing.T) {
	dir := writeInput(t, map[string]string{
		AlternativesFile: alternativesXML,
		OutrankingFile:   distillationXML,
	})

	in, err := LoadKernelInput(dir)
	if err != nil {
		t.Fatalf("LoadKernelInput() error = %v", err)
	}
	if !in.Crisp {
		t.Fatal("Expected crisp relation from the distillation block")
	}
	// Every distillation pair weighs 1 so cut_weakest can run on it
	if v, ok := in.Weights().Value("a", "b"); !ok || v != 1.0 {
		t.Errorf("Weight of (a, b) = %v, %v; want 1", v, ok)
	}
}

func TestLoadKernelInput_MissingFile(t *testing.T) {
	dir := writeInput(t, map[string]string{AlternativesFile: alternativesXML})

	_, err := LoadKernelInput(dir)
	if !errors.Is(err, model.ErrConfiguration) {
		t.Errorf("Expected configuration error, got %v", err)
	}
}

func TestLoadCutInput_Profiles(t *testing.T) {
	params := strings.Replace(parametersXML,
		`<parameter name="iterations">`,
		`<parameter name="comparison_with"><value><label>boundary_profiles</label></value></parameter>
    <parameter name="iterations">`, 1)
	dir := writeInput(t, map[string]string{
		AlternativesFile:       alternativesXML,
		MethodParametersFile:   params,
		CategoriesProfilesFile: profilesXML,
		CredibilityFile:        outrankingXML,
	})

	in, err := LoadCutInput(dir)
	if err != nil {
		t.Fatalf("LoadCutInput() error = %v", err)
	}
	as, bs := in.Comparables()
	if !reflect.DeepEqual(as, []string{"b", "a", "c"}) || !reflect.DeepEqual(bs, []string{"pBM", "pMG"}) {
		t.Errorf("Comparables() = %v, %v", as, bs)
	}
}

func TestWriteKernel(t *testing.T) {
	path := filepath.Join(t.TempDir(), KernelFile)

	if err := WriteKernel(path, []string{"UW", "PW"}); err != nil {
		t.Fatalf("WriteKernel() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "<?xml version='1.0' encoding='UTF-8'?>") {
		t.Errorf("Missing XML declaration: %q", content)
	}
	if !strings.Contains(content, "XMCDA-2.2.0") || !strings.HasSuffix(content, "</xmcda:XMCDA>\n") {
		t.Errorf("Missing XMCDA root element: %q", content)
	}

	start := strings.Index(content, "<alternativesSet")
	end := strings.Index(content, "</alternativesSet>") + len("</alternativesSet>")
	var set alternativesSet
	if err := xml.Unmarshal([]byte(content[start:end]), &set); err != nil {
		t.Fatalf("Failed to decode alternativesSet: %v", err)
	}
	if set.MCDAConcept != "kernel" || len(set.Elements) != 2 || set.Elements[0].AlternativeID != "UW" {
		t.Errorf("Unexpected kernel %+v", set)
	}
}

func TestWriteMessages(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name       string
		logs, errs []string
		want       string
	}{
		{"log", []string{"Everything OK."}, nil, "<logMessage>\n    <text>Everything OK.</text>"},
		{"error wins", []string{"ignored"}, []string{"bad <input>"}, "<errorMessage>\n    <text>bad &lt;input&gt;</text>"},
		{"empty", nil, nil, "Neither log nor error messages have been supplied."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, MessagesFile)
			if err := WriteMessages(path, tt.logs, tt.errs); err != nil {
				t.Fatalf("WriteMessages() error = %v", err)
			}
			data, _ := os.ReadFile(path)
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("Expected %q in %s", tt.want, data)
			}
			if strings.Contains(string(data), "ignored") {
				t.Error("Log messages should not be written alongside errors")
			}
		})
	}
}

func TestWriteRelations(t *testing.T) {
	path := filepath.Join(t.TempDir(), OutrankingFile)
	pairs := []outranking.Pair{
		{Initial: "a", Terminal: "p1", Relation: outranking.Preference},
		{Initial: "p1", Terminal: "a", Relation: outranking.None},
	}

	if err := WriteRelations(path, pairs, ProfilesComparisonsConcept); err != nil {
		t.Fatalf("WriteRelations() error = %v", err)
	}

	// The written file reads back as comparisons with label values
	c, err := ReadComparisons(path, []string{"a", "p1"}, ProfilesComparisonsConcept)
	if err != nil {
		t.Fatalf("ReadComparisons() error = %v", err)
	}
	if v, _ := c.Value("a", "p1"); v != 1 {
		t.Errorf("Expected preference to read back as 1, got %v", v)
	}
	if v, ok := c.Value("p1", "a"); !ok || v != 0 {
		t.Errorf("Expected none to read back as 0, got %v", v)
	}
}
