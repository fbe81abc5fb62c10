package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trouchet/eule/set"
)

func family(raw map[string][]int) map[string]set.Set[int] {
	sets, _ := set.AdaptSlices(raw)
	return sets
}

func TestBuild_SymmetricUnitDiagonal(t *testing.T) {
	g := Build(family(map[string][]int{
		"a": {1, 2, 3},
		"b": {2, 3, 4},
		"c": {7, 8},
	}))
	require.Equal(t, 3, g.Len())
	assert.Equal(t, []string{"a", "b", "c"}, g.Keys)

	for i := 0; i < g.Len(); i++ {
		assert.Equal(t, 1.0, g.Matrix[i][i])
		for j := 0; j < g.Len(); j++ {
			assert.Equal(t, g.Matrix[i][j], g.Matrix[j][i])
		}
	}
}

func TestBuild_JaccardWeights(t *testing.T) {
	g := Build(family(map[string][]int{
		"a": {1, 2, 3},
		"b": {2, 3, 4},
	}))
	// |{2,3}| / |{1,2,3,4}| = 0.5
	w, err := g.Overlap("a", "b")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, w, 1e-12)
}

func TestBuild_DisjointAndEmpty(t *testing.T) {
	g := Build(family(map[string][]int{
		"a": {1},
		"b": {2},
		"c": {},
	}))
	w, err := g.Overlap("a", "b")
	require.NoError(t, err)
	assert.Zero(t, w)

	// Empty union stays 0, not NaN.
	w, err = g.Overlap("c", "c")
	require.NoError(t, err)
	assert.Equal(t, 1.0, w) // diagonal

	i, _ := g.Index("a")
	j, _ := g.Index("c")
	assert.Zero(t, g.Matrix[i][j])
}

func TestBuild_AdjacencyPruning(t *testing.T) {
	g := Build(family(map[string][]int{
		"a": {1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		"b": {10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, // jaccard 1/19 < 0.1
		"c": {1, 2, 3, 4, 5},                          // jaccard 0.5 with a
	}))
	ai, _ := g.Index("a")
	bi, _ := g.Index("b")
	ci, _ := g.Index("c")

	assert.Len(t, g.Adjacency[bi], 0)
	require.Len(t, g.Adjacency[ai], 1)
	assert.Equal(t, ci, g.Adjacency[ai][0].To)
	require.Len(t, g.Adjacency[ci], 1)
	assert.Equal(t, ai, g.Adjacency[ci][0].To)
}

func TestBuild_ThresholdOption(t *testing.T) {
	sets := family(map[string][]int{
		"a": {1, 2},
		"b": {2, 3},
	})
	pruned := Build(sets, WithThreshold(0.5))
	kept := Build(sets, WithThreshold(0.2))

	assert.Empty(t, pruned.Adjacency[0]) // 1/3 < 0.5
	assert.Len(t, kept.Adjacency[0], 1)
	assert.Equal(t, 0.2, kept.Threshold())
}

func TestOverlap_UnknownKey(t *testing.T) {
	g := Build(family(map[string][]int{"a": {1}}))
	_, err := g.Overlap("a", "nope")
	assert.Error(t, err)
	_, err = g.Index("nope")
	assert.Error(t, err)
}
