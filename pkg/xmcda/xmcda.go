// Package xmcda reads and writes the XMCDA 2.2 files exchanged with
// decision-aiding workflows: alternatives, method parameters, pairwise
// comparisons, kernels and method messages.
package xmcda

import "encoding/xml"

// File names inside input and output directories
const (
	AlternativesFile       = "alternatives.xml"
	MethodParametersFile   = "method_parameters.xml"
	OutrankingFile         = "outranking.xml"
	CredibilityFile        = "credibility.xml"
	CategoriesProfilesFile = "categories_profiles.xml"
	KernelFile             = "kernel.xml"
	MessagesFile           = "messages.xml"
)

// DistillationConcept marks comparisons produced by the intersection of the
// upwards and downwards distillations. They are read as a crisp relation.
const DistillationConcept = "Intersection of upwards and downwards distillation"

// ProfilesComparisonsConcept marks comparisons between alternatives and category profiles
const ProfilesComparisonsConcept = "alternativesProfilesComparisons"

const (
	header = "<?xml version='1.0' encoding='UTF-8'?>\n" +
		"<xmcda:XMCDA xmlns:xmcda='http://www.decision-deck.org/2012/XMCDA-2.2.0'\n" +
		"  xmlns:xsi='http://www.w3.org/2001/XMLSchema-instance'\n" +
		"  xsi:schemaLocation='http://www.decision-deck.org/2012/XMCDA-2.2.0 " +
		"http://www.decision-deck.org/xmcda/_downloads/XMCDA-2.2.0.xsd'>\n"
	footer = "\n</xmcda:XMCDA>\n"
)

// document is the XMCDA root element. Only the sections used here are decoded.
type document struct {
	XMLName            xml.Name
	Alternatives       []alternatives       `xml:"alternatives"`
	MethodParameters   []methodParameters   `xml:"methodParameters"`
	Comparisons        []comparisons        `xml:"alternativesComparisons"`
	CategoriesProfiles []categoriesProfiles `xml:"categoriesProfiles"`
}

type alternatives struct {
	Alternatives []alternative `xml:"alternative"`
}

type alternative struct {
	ID     string  `xml:"id,attr"`
	Active *string `xml:"active"`
}

type methodParameters struct {
	Parameters []parameter `xml:"parameter"`
}

type parameter struct {
	Name  string `xml:"name,attr"`
	Value value  `xml:"value"`
}

type value struct {
	Integer  *string   `xml:"integer"`
	Real     *string   `xml:"real"`
	Rational *rational `xml:"rational"`
	Label    *string   `xml:"label"`
	Boolean  *string   `xml:"boolean"`
	NA       *struct{} `xml:"NA"`
}

type rational struct {
	Numerator   string `xml:"numerator"`
	Denominator string `xml:"denominator"`
}

type comparisons struct {
	MCDAConcept string `xml:"mcdaConcept,attr,omitempty"`
	Pairs       []pair `xml:"pairs>pair"`
}

type pair struct {
	Initial  string `xml:"initial>alternativeID"`
	Terminal string `xml:"terminal>alternativeID"`
	Value    *value `xml:"value"`
}

type categoriesProfiles struct {
	Profiles []categoryProfile `xml:"categoryProfile"`
}

type categoryProfile struct {
	AlternativeID string  `xml:"alternativeID"`
	Central       *string `xml:"central>categoryID"`
}

// alternativesSet is the output element holding a kernel
type alternativesSet struct {
	XMLName     xml.Name  `xml:"alternativesSet"`
	MCDAConcept string    `xml:"mcdaConcept,attr"`
	Elements    []element `xml:"element"`
}

type element struct {
	AlternativeID string `xml:"alternativeID"`
}

type methodMessages struct {
	XMLName xml.Name  `xml:"methodMessages"`
	Logs    []message `xml:"logMessage"`
	Errors  []message `xml:"errorMessage"`
}

type message struct {
	Text string `xml:"text"`
}

// labelledComparisons is the output element of a cut relation
type labelledComparisons struct {
	XMLName     xml.Name       `xml:"alternativesComparisons"`
	MCDAConcept string         `xml:"mcdaConcept,attr,omitempty"`
	Pairs       []labelledPair `xml:"pairs>pair"`
}

type labelledPair struct {
	Initial  string `xml:"initial>alternativeID"`
	Terminal string `xml:"terminal>alternativeID"`
	Label    string `xml:"value>label"`
}
