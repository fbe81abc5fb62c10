package decompose

import (
	"iter"
	"sort"

	"github.com/trouchet/eule/model"
	"github.com/trouchet/eule/set"
)

// Family is the working state of one decomposition: per-key element sets in
// ascending key order. A Family owns its map; the Set values themselves are
// immutable and may be shared between copies.
type Family[T comparable] struct {
	keys []string
	sets map[string]set.Set[T]
}

// NewFamily builds a Family from a keyed set map, deep-copying every set so
// the decomposition never aliases caller state.
func NewFamily[T comparable](sets map[string]set.Set[T]) *Family[T] {
	f := &Family[T]{
		keys: make([]string, 0, len(sets)),
		sets: make(map[string]set.Set[T], len(sets)),
	}
	for key, s := range sets {
		f.keys = append(f.keys, key)
		f.sets[key] = s.Clone()
	}
	sort.Strings(f.keys)
	return f
}

// Clone returns an independent Family sharing the immutable set values.
func (f *Family[T]) Clone() *Family[T] {
	out := &Family[T]{
		keys: make([]string, len(f.keys)),
		sets: make(map[string]set.Set[T], len(f.sets)),
	}
	copy(out.keys, f.keys)
	for key, s := range f.sets {
		out.sets[key] = s
	}
	return out
}

// Keys returns the family's keys in ascending order.
func (f *Family[T]) Keys() []string { return f.keys }

// Set returns the working set of a key, or nil if absent.
func (f *Family[T]) Set(key string) set.Set[T] { return f.sets[key] }

// NonEmptyKeys returns the keys whose working sets still hold elements.
func (f *Family[T]) NonEmptyKeys() []string {
	keys := make([]string, 0, len(f.keys))
	for _, key := range f.keys {
		if !f.sets[key].IsEmpty() {
			keys = append(keys, key)
		}
	}
	return keys
}

// Region is one materialized (region key, elements) pair.
type Region[T comparable] struct {
	Key      model.RegionKey
	Elements set.Set[T]
}

// Regions lazily yields every (region key, elements) pair of the family's
// decomposition. The sequence is finite and single-use; region keys are
// ascending-sorted tuples and the yielded element sets are pairwise
// disjoint with union equal to the family union. The input family is not
// modified.
func Regions[T comparable](f *Family[T]) iter.Seq2[model.RegionKey, set.Set[T]] {
	return func(yield func(model.RegionKey, set.Set[T]) bool) {
		work := f.Clone()
		traverse(work.sets, work.keys, yield)
	}
}

// traverse walks the combination lattice over a working map it owns.
// Returns false when the consumer stopped early.
func traverse[T comparable](sets map[string]set.Set[T], order []string, yield func(model.RegionKey, set.Set[T]) bool) bool {
	keys := nonEmpty(sets, order)

	// A lone non-empty key is its own exclusive region.
	if len(keys) == 1 {
		key := keys[0]
		if !yield(model.MakeRegionKey(key), sets[key]) {
			return false
		}
		return true
	}

	for _, key := range keys {
		// Snapshot of the key's set at this point: the exclusive regions of
		// the complementary sub-problem must exclude everything the key ever
		// held, not just what is still unassigned.
		thisSet := sets[key]
		if thisSet.IsEmpty() {
			continue
		}
		others := complement(nonEmpty(sets, order), key)
		if len(others) == 0 {
			continue
		}

		csets := make(map[string]set.Set[T], len(others))
		for _, other := range others {
			csets[other] = sets[other]
		}

		ok := traverse(csets, others, func(subKey model.RegionKey, subElems set.Set[T]) bool {
			excl := subElems.Difference(thisSet)
			if !excl.IsEmpty() {
				if !yield(subKey, excl) {
					return false
				}
				for _, name := range subKey.Names() {
					sets[name] = sets[name].Difference(excl)
				}
			}

			inter := subElems.Intersect(sets[key])
			if !inter.IsEmpty() {
				combKey := subKey.With(key)
				if !yield(combKey, inter) {
					return false
				}
				for _, name := range combKey.Names() {
					sets[name] = sets[name].Difference(inter)
				}
			}
			return true
		})
		if !ok {
			return false
		}

		// Whatever survived every combination is exclusive to the key.
		if !sets[key].IsEmpty() {
			if !yield(model.MakeRegionKey(key), sets[key]) {
				return false
			}
			sets[key] = emptyLike(sets[key])
		}
	}
	return true
}

func nonEmpty[T comparable](sets map[string]set.Set[T], order []string) []string {
	keys := make([]string, 0, len(order))
	for _, key := range order {
		if !sets[key].IsEmpty() {
			keys = append(keys, key)
		}
	}
	return keys
}

func complement(keys []string, key string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

func emptyLike[T comparable](s set.Set[T]) set.Set[T] {
	return s.New(func(func(T) bool) {})
}
