package eule

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trouchet/eule/model"
)

func readmeSets() map[string][]int {
	return map[string][]int{
		"a": {1, 2, 3},
		"b": {2, 3, 4},
		"c": {3, 4, 5},
		"d": {3, 5, 6},
	}
}

func TestEuler(t *testing.T) {
	diagram, err := Euler(readmeSets())
	require.NoError(t, err)

	want := map[model.RegionKey][]int{
		model.MakeRegionKey("a"):                []int{1},
		model.MakeRegionKey("d"):                []int{6},
		model.MakeRegionKey("a", "b"):           []int{2},
		model.MakeRegionKey("b", "c"):           []int{4},
		model.MakeRegionKey("c", "d"):           []int{5},
		model.MakeRegionKey("a", "b", "c", "d"): []int{3},
	}
	require.Len(t, diagram, len(want))
	for key, elems := range want {
		assert.ElementsMatch(t, elems, diagram[key], "region %s", key)
	}
}

func TestEuler_PartitionProperties(t *testing.T) {
	sets := readmeSets()
	diagram, err := Euler(sets)
	require.NoError(t, err)

	// Every element of every set lands in exactly one region, and that
	// region's key names the set.
	seen := make(map[int]model.RegionKey)
	for key, elems := range diagram {
		for _, e := range elems {
			prev, dup := seen[e]
			require.False(t, dup, "element %d in both %s and %s", e, prev, key)
			seen[e] = key
		}
	}
	for name, elems := range sets {
		for _, e := range elems {
			key, ok := seen[e]
			require.True(t, ok, "element %d of set %q missing", e, name)
			assert.True(t, key.Contains(name), "element %d of set %q in region %s", e, name, key)
		}
	}
}

func TestEuler_SingleSet(t *testing.T) {
	diagram, err := Euler(map[string][]string{"only": {"x", "y"}})
	require.NoError(t, err)

	require.Len(t, diagram, 1)
	assert.ElementsMatch(t, []string{"x", "y"}, diagram[model.MakeRegionKey("only")])
}

func TestEuler_EmptyFamily(t *testing.T) {
	diagram, err := Euler(map[string][]int{})
	require.NoError(t, err)
	assert.Empty(t, diagram)
}

func TestEuler_EmptySetsSkipped(t *testing.T) {
	diagram, err := Euler(map[string][]int{
		"a": {1, 2},
		"b": {},
	})
	require.NoError(t, err)

	require.Len(t, diagram, 1)
	assert.ElementsMatch(t, []int{1, 2}, diagram[model.MakeRegionKey("a")])
}

func TestEuler_DisjointSets(t *testing.T) {
	diagram, err := Euler(map[string][]int{
		"a": {1, 2},
		"b": {3, 4},
	})
	require.NoError(t, err)

	require.Len(t, diagram, 2)
	assert.ElementsMatch(t, []int{1, 2}, diagram[model.MakeRegionKey("a")])
	assert.ElementsMatch(t, []int{3, 4}, diagram[model.MakeRegionKey("b")])
}

func TestEuler_DeduplicatesInput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	diagram, err := Euler(map[string][]int{
		"a": {1, 1, 2, 2, 2},
		"b": {2, 3},
	}, WithLogger(logger))
	require.NoError(t, err)

	assert.ElementsMatch(t, []int{1}, diagram[model.MakeRegionKey("a")])
	assert.ElementsMatch(t, []int{2}, diagram[model.MakeRegionKey("a", "b")])
	assert.Contains(t, buf.String(), "deduplicating")
	assert.Contains(t, buf.String(), `key=a`)
}

func TestEulerKeys(t *testing.T) {
	keys, err := EulerKeys(readmeSets())
	require.NoError(t, err)

	want := []model.RegionKey{
		model.MakeRegionKey("a"),
		model.MakeRegionKey("a", "b"),
		model.MakeRegionKey("a", "b", "c", "d"),
		model.MakeRegionKey("b", "c"),
		model.MakeRegionKey("c", "d"),
		model.MakeRegionKey("d"),
	}
	assert.Equal(t, want, keys)
}

func TestEulerKeys_Deterministic(t *testing.T) {
	first, err := EulerKeys(readmeSets())
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := EulerKeys(readmeSets())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEulerBoundaries(t *testing.T) {
	boundaries, err := EulerBoundaries(readmeSets())
	require.NoError(t, err)

	want := map[string][]string{
		"a": {"b", "c", "d"},
		"b": {"a", "c", "d"},
		"c": {"a", "b", "d"},
		"d": {"a", "b", "c"},
	}
	assert.Equal(t, want, boundaries)
}

func TestEulerBoundaries_Disjoint(t *testing.T) {
	boundaries, err := EulerBoundaries(map[string][]int{
		"a": {1},
		"b": {2},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"a": {}, "b": {}}, boundaries)
}

func TestRegions_Streaming(t *testing.T) {
	seq, err := Regions(readmeSets())
	require.NoError(t, err)

	total := 0
	for key, elems := range seq {
		assert.Positive(t, key.Len())
		assert.NotEmpty(t, elems)
		total++
	}
	assert.Equal(t, 6, total)
}

func TestRegions_EarlyStop(t *testing.T) {
	seq, err := Regions(readmeSets())
	require.NoError(t, err)

	consumed := 0
	for range seq {
		consumed++
		break
	}
	assert.Equal(t, 1, consumed)
}

func TestFamily(t *testing.T) {
	fam, err := NewFamily(readmeSets())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d"}, fam.SetKeys())
	assert.Len(t, fam.Keys(), 6)

	elems, err := fam.Elements("a", "b")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, elems)
}

func TestFamily_ElementsUnknownKey(t *testing.T) {
	fam, err := NewFamily(readmeSets())
	require.NoError(t, err)

	_, err = fam.Elements("a", "nope")
	var notFound *ErrKeyNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nope", notFound.Key)
}

func TestFamily_Match(t *testing.T) {
	fam, err := NewFamily(readmeSets())
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, fam.Match([]int{1, 2, 3}))
	assert.Equal(t, []string{"b", "c", "d"}, fam.Match([]int{2, 3, 4, 5, 6}))
	assert.Empty(t, fam.Match([]int{7}))
}

func TestFamily_RemoveKey(t *testing.T) {
	fam, err := NewFamily(readmeSets())
	require.NoError(t, err)

	require.NoError(t, fam.RemoveKey("d"))
	assert.Equal(t, []string{"a", "b", "c"}, fam.SetKeys())

	diagram := fam.Diagram()
	assert.ElementsMatch(t, []int{3}, diagram[model.MakeRegionKey("a", "b", "c")])
	assert.ElementsMatch(t, []int{5}, diagram[model.MakeRegionKey("c")])

	// Removing an unknown key is a warning, not an error.
	require.NoError(t, fam.RemoveKey("ghost"))
	assert.Equal(t, []string{"a", "b", "c"}, fam.SetKeys())
}
