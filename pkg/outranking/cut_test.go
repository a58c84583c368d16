package outranking

import (
	"testing"

	"github.com/ritzau/electre-kernel/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func credibility(values map[[2]string]float64) model.Comparisons {
	c := model.NewComparisons(len(values))
	for pair, v := range values {
		c.Set(pair[0], pair[1], v)
	}
	return c
}

func TestCut(t *testing.T) {
	alternatives := []string{"a", "b", "c", "d"}
	c := credibility(map[[2]string]float64{
		{"a", "a"}: 1.0, {"a", "b"}: 0.8, {"a", "c"}: 0.9, {"a", "d"}: 0.1,
		{"b", "a"}: 0.75, {"b", "b"}: 1.0, {"b", "c"}: 0.2, {"b", "d"}: 0.3,
		{"c", "a"}: 0.4, {"c", "b"}: 0.6, {"c", "c"}: 1.0, {"c", "d"}: 0.7,
		{"d", "a"}: 0.2, {"d", "b"}: 0.1, {"d", "c"}: 0.7, {"d", "d"}: 1.0,
	})

	relations, err := Cut(alternatives, alternatives, c, 0.7)
	require.NoError(t, err)

	tests := []struct {
		a, b string
		want RelationType
	}{
		{"a", "a", Indifference},
		{"a", "b", Indifference},
		{"b", "a", Indifference},
		{"a", "c", Preference},
		{"c", "a", None},
		{"a", "d", Incomparability},
		{"d", "a", Incomparability},
		{"c", "b", Incomparability},
		{"b", "c", Incomparability},
		{"c", "d", Indifference},
	}
	for _, tt := range tests {
		got, ok := relations.Get(tt.a, tt.b)
		require.True(t, ok, "missing pair (%s, %s)", tt.a, tt.b)
		assert.Equal(t, tt.want, got, "pair (%s, %s)", tt.a, tt.b)
	}

	outranking := relations.Outranking()
	v, _ := outranking.Value("a", "c")
	assert.Equal(t, 1.0, v)
	v, _ = outranking.Value("c", "a")
	assert.Equal(t, 0.0, v)
}

func TestCut_Profiles(t *testing.T) {
	c := credibility(map[[2]string]float64{
		{"a1", "p1"}: 0.9, {"p1", "a1"}: 0.2,
		{"a2", "p1"}: 0.1, {"p1", "a2"}: 0.95,
	})

	relations, err := Cut([]string{"a1", "a2"}, []string{"p1"}, c, 0.5)
	require.NoError(t, err)

	pairs := relations.Pairs([]string{"a1", "a2"}, []string{"p1"})
	assert.Equal(t, []Pair{
		{Initial: "a1", Terminal: "p1", Relation: Preference},
		{Initial: "a2", Terminal: "p1", Relation: None},
		{Initial: "p1", Terminal: "a1", Relation: None},
		{Initial: "p1", Terminal: "a2", Relation: Preference},
	}, pairs)
}

func TestPairs_SameSetListsEachPairOnce(t *testing.T) {
	c := credibility(map[[2]string]float64{
		{"a", "a"}: 1, {"a", "b"}: 1, {"b", "a"}: 0, {"b", "b"}: 1,
	})
	as := []string{"a", "b"}

	relations, err := Cut(as, as, c, 0.5)
	require.NoError(t, err)
	assert.Len(t, relations.Pairs(as, as), 4)
}

func TestCut_Errors(t *testing.T) {
	c := credibility(map[[2]string]float64{{"a", "b"}: 0.5})

	_, err := Cut([]string{"a"}, []string{"b"}, c, 0.5)
	assert.ErrorIs(t, err, model.ErrConfiguration, "missing reverse credibility")

	_, err = Cut([]string{"a"}, []string{"b"}, c, 1.5)
	assert.ErrorIs(t, err, model.ErrConfiguration, "threshold above range")
}

func TestValidateCutThreshold(t *testing.T) {
	for _, threshold := range []float64{0, 0.5, 1} {
		assert.NoError(t, ValidateCutThreshold(threshold))
	}
	for _, threshold := range []float64{-0.01, 1.01} {
		assert.ErrorIs(t, ValidateCutThreshold(threshold), model.ErrConfiguration)
	}
}
