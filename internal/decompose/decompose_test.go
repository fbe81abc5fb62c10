package decompose

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trouchet/eule/model"
	"github.com/trouchet/eule/resource"
	"github.com/trouchet/eule/set"
)

func newFamily(raw map[string][]int) *Family[int] {
	sets, _ := set.AdaptSlices(raw)
	return NewFamily(sets)
}

func collect(f *Family[int]) map[model.RegionKey][]int {
	out := make(map[model.RegionKey][]int)
	for key, elems := range Regions(f) {
		out[key] = set.Elements(elems)
	}
	return out
}

func TestRegions_FourSetExample(t *testing.T) {
	got := collect(newFamily(map[string][]int{
		"a": {1, 2, 3},
		"b": {2, 3, 4},
		"c": {3, 4, 5},
		"d": {3, 5, 6},
	}))

	want := map[model.RegionKey][]int{
		model.MakeRegionKey("a", "b"):           {2},
		model.MakeRegionKey("b", "c"):           {4},
		model.MakeRegionKey("a", "b", "c", "d"): {3},
		model.MakeRegionKey("c", "d"):           {5},
		model.MakeRegionKey("d"):                {6},
		model.MakeRegionKey("a"):                {1},
	}
	require.Len(t, got, len(want))
	for key, elems := range want {
		assert.ElementsMatch(t, elems, got[key], "region %s", key)
	}
}

func TestRegions_SingleSet(t *testing.T) {
	got := collect(newFamily(map[string][]int{"a": {1, 2}}))
	require.Len(t, got, 1)
	assert.ElementsMatch(t, []int{1, 2}, got[model.MakeRegionKey("a")])
}

func TestRegions_SingleNonEmptyAmongEmpty(t *testing.T) {
	got := collect(newFamily(map[string][]int{
		"a": {},
		"b": {1, 2},
		"c": {},
	}))
	require.Len(t, got, 1)
	assert.ElementsMatch(t, []int{1, 2}, got[model.MakeRegionKey("b")])
}

func TestRegions_Empty(t *testing.T) {
	assert.Empty(t, collect(newFamily(map[string][]int{})))
	assert.Empty(t, collect(newFamily(map[string][]int{"a": {}})))
}

func TestRegions_DisjointSets(t *testing.T) {
	got := collect(newFamily(map[string][]int{
		"a": {1},
		"b": {2},
	}))
	require.Len(t, got, 2)
	assert.ElementsMatch(t, []int{1}, got[model.MakeRegionKey("a")])
	assert.ElementsMatch(t, []int{2}, got[model.MakeRegionKey("b")])
}

func TestRegions_IdenticalSets(t *testing.T) {
	got := collect(newFamily(map[string][]int{
		"a": {1, 2},
		"b": {1, 2},
	}))
	require.Len(t, got, 1)
	assert.ElementsMatch(t, []int{1, 2}, got[model.MakeRegionKey("a", "b")])
}

// The three partition properties must hold for any input.
func TestRegions_PartitionProperties(t *testing.T) {
	inputs := []map[string][]int{
		{"a": {1, 2, 3}, "b": {2, 3, 4}},
		{"a": {1, 2, 3}, "b": {2, 3, 4}, "c": {3, 4, 5}, "d": {3, 5, 6}},
		{"a": {1}, "b": {1}, "c": {1}},
		{"a": {1, 2, 3, 4}, "b": {2}, "c": {2, 4, 9}, "d": {}},
		{"x": {1, 2}, "y": {3, 4}, "z": {1, 4, 5}},
	}

	for _, raw := range inputs {
		got := collect(newFamily(raw))

		universe := map[int]bool{}
		for _, elems := range raw {
			for _, e := range elems {
				universe[e] = true
			}
		}

		seen := map[int]model.RegionKey{}
		for key, elems := range got {
			for _, e := range elems {
				// Disjointness.
				prev, dup := seen[e]
				assert.False(t, dup, "element %d in both %s and %s", e, prev, key)
				seen[e] = key

				// Exactness: the region key is exactly the owning sets.
				for name, setElems := range raw {
					owns := false
					for _, se := range setElems {
						if se == e {
							owns = true
							break
						}
					}
					assert.Equal(t, owns, key.Contains(name),
						"element %d, set %s, region %s", e, name, key)
				}
			}
		}

		// Completeness.
		assert.Len(t, seen, len(universe))
	}
}

func TestRegions_Deterministic(t *testing.T) {
	raw := map[string][]int{
		"a": {1, 2, 3}, "b": {2, 3, 4}, "c": {3, 4, 5}, "d": {3, 5, 6},
	}
	first := collect(newFamily(raw))
	for i := 0; i < 10; i++ {
		again := collect(newFamily(raw))
		require.Len(t, again, len(first))
		for key, elems := range first {
			assert.ElementsMatch(t, elems, again[key])
		}
	}
}

func TestRegions_EarlyStop(t *testing.T) {
	f := newFamily(map[string][]int{
		"a": {1, 2, 3}, "b": {2, 3, 4}, "c": {3, 4, 5},
	})
	count := 0
	for range Regions(f) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestRegions_InputFamilyUntouched(t *testing.T) {
	f := newFamily(map[string][]int{"a": {1, 2}, "b": {2, 3}})
	collect(f)
	assert.ElementsMatch(t, []int{1, 2}, set.Elements(f.Set("a")))
	assert.ElementsMatch(t, []int{2, 3}, set.Elements(f.Set("b")))
}

func TestFamily_Basics(t *testing.T) {
	f := newFamily(map[string][]int{"b": {1}, "a": {}, "c": {2}})
	assert.Equal(t, []string{"a", "b", "c"}, f.Keys())
	assert.Equal(t, []string{"b", "c"}, f.NonEmptyKeys())
	assert.Nil(t, f.Set("nope"))

	c := f.Clone()
	assert.Equal(t, f.Keys(), c.Keys())
}

func TestWorkerRegions_MatchesSequentialContribution(t *testing.T) {
	raw := map[string][]int{
		"a": {1, 2, 3}, "b": {2, 3, 4}, "c": {3, 4, 5}, "d": {3, 5, 6},
	}
	f := newFamily(raw)

	// Concatenating every worker's regions reproduces the full diagram.
	merged := make(map[model.RegionKey][]int)
	for _, key := range f.NonEmptyKeys() {
		for _, region := range WorkerRegions(f, key) {
			merged[region.Key] = set.Elements(region.Elements)
		}
	}

	sequential := collect(newFamily(raw))
	require.Len(t, merged, len(sequential))
	for key, elems := range sequential {
		assert.ElementsMatch(t, elems, merged[key])
	}
}

func TestWorkerRegions_EmptyKey(t *testing.T) {
	f := newFamily(map[string][]int{"a": {}, "b": {1}})
	assert.Nil(t, WorkerRegions(f, "a"))
}

func TestParallel_EquivalentToSequential(t *testing.T) {
	inputs := []map[string][]int{
		{"a": {1, 2}},
		{"a": {1, 2}, "b": {2, 3}},
		{"a": {1, 2, 3}, "b": {2, 3, 4}, "c": {3, 4, 5}},
		{"a": {1, 2, 3}, "b": {2, 3, 4}, "c": {3, 4, 5}, "d": {3, 5, 6}},
		{"a": {1}, "b": {2}, "c": {3}, "d": {4}},
	}

	for _, raw := range inputs {
		sequential := collect(newFamily(raw))

		regions, err := Parallel(context.Background(), newFamily(raw), nil)
		require.NoError(t, err)

		parallel := make(map[model.RegionKey][]int)
		for _, r := range regions {
			parallel[r.Key] = set.Elements(r.Elements)
		}
		require.Len(t, parallel, len(sequential))
		for key, elems := range sequential {
			assert.ElementsMatch(t, elems, parallel[key], "region %s", key)
		}
	}
}

func TestParallel_SingleKeyShortCircuit(t *testing.T) {
	regions, err := Parallel(context.Background(), newFamily(map[string][]int{"a": {1, 2}}), nil)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, model.MakeRegionKey("a"), regions[0].Key)
	assert.ElementsMatch(t, []int{1, 2}, set.Elements(regions[0].Elements))
}

func TestParallel_WithController(t *testing.T) {
	ctrl := resource.NewController(resource.Config{MaxWorkers: 1})
	regions, err := Parallel(context.Background(),
		newFamily(map[string][]int{"a": {1, 2}, "b": {2, 3}}), ctrl)
	require.NoError(t, err)

	got := make(map[model.RegionKey][]int)
	for _, r := range regions {
		got[r.Key] = set.Elements(r.Elements)
	}
	require.Len(t, got, 3)
	assert.ElementsMatch(t, []int{2}, got[model.MakeRegionKey("a", "b")])
}

// The decomposition is container-agnostic: a bitmap-backed family must
// produce the same regions as a hash-backed one.
func TestRegions_BitmapFamily(t *testing.T) {
	bitmaps := map[string]set.Set[uint32]{
		"a": set.NewBitmap(1, 2, 3),
		"b": set.NewBitmap(2, 3, 4),
		"c": set.NewBitmap(3, 4, 5),
		"d": set.NewBitmap(3, 5, 6),
	}

	got := make(map[model.RegionKey][]uint32)
	for key, elems := range Regions(NewFamily(bitmaps)) {
		got[key] = set.Elements(elems)
	}

	want := map[model.RegionKey][]uint32{
		model.MakeRegionKey("a"):                {1},
		model.MakeRegionKey("d"):                {6},
		model.MakeRegionKey("a", "b"):           {2},
		model.MakeRegionKey("b", "c"):           {4},
		model.MakeRegionKey("c", "d"):           {5},
		model.MakeRegionKey("a", "b", "c", "d"): {3},
	}
	require.Len(t, got, len(want))
	for key, elems := range want {
		assert.ElementsMatch(t, elems, got[key], "region %s", key)
	}
}
