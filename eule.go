package eule

import (
	"context"
	"iter"
	"sort"
	"time"

	"github.com/trouchet/eule/internal/decompose"
	"github.com/trouchet/eule/model"
	"github.com/trouchet/eule/set"
)

// Diagram maps each region key to the elements exclusive to that region.
// Element order within a region is unspecified.
type Diagram[T comparable] map[model.RegionKey][]T

// Keys returns the diagram's region keys in ascending order.
func (d Diagram[T]) Keys() []model.RegionKey {
	keys := make([]model.RegionKey, 0, len(d))
	for key := range d {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Compare(keys[j]) < 0
	})
	return keys
}

// Euler computes the full Euler diagram of the given family. The input is
// never modified; duplicate elements within one set are deduplicated with
// a warning.
func Euler[T comparable](sets map[string][]T, optFns ...Option) (Diagram[T], error) {
	o := applyOptions(optFns)
	start := time.Now()

	fam := adapt(context.Background(), sets, o)
	out := make(Diagram[T])
	for key, elems := range decompose.Regions(fam) {
		out[key] = set.Elements(elems)
	}

	o.logger.LogDecompose(context.Background(), len(sets), len(out), time.Since(start))
	o.metrics.RecordDecompose(len(sets), len(out), time.Since(start))
	return out, nil
}

// Regions returns the diagram as a lazy sequence of (region key, elements)
// pairs. The sequence is finite and single-use; consumers may stop early.
func Regions[T comparable](sets map[string][]T, optFns ...Option) (iter.Seq2[model.RegionKey, []T], error) {
	o := applyOptions(optFns)
	fam := adapt(context.Background(), sets, o)

	return func(yield func(model.RegionKey, []T) bool) {
		for key, elems := range decompose.Regions(fam) {
			if !yield(key, set.Elements(elems)) {
				return
			}
		}
	}, nil
}

// EulerKeys returns the diagram's region keys in ascending order.
func EulerKeys[T comparable](sets map[string][]T, optFns ...Option) ([]model.RegionKey, error) {
	diagram, err := Euler(sets, optFns...)
	if err != nil {
		return nil, err
	}
	return diagram.Keys(), nil
}

// EulerBoundaries maps every set key to the sorted list of its neighbors:
// the set keys that share at least one region with it.
func EulerBoundaries[T comparable](sets map[string][]T, optFns ...Option) (map[string][]string, error) {
	keys, err := EulerKeys(sets, optFns...)
	if err != nil {
		return nil, err
	}

	neighbors := make(map[string]map[string]struct{}, len(sets))
	for key := range sets {
		neighbors[key] = make(map[string]struct{})
	}
	for _, regionKey := range keys {
		names := regionKey.Names()
		for _, name := range names {
			for _, other := range names {
				if other != name {
					neighbors[name][other] = struct{}{}
				}
			}
		}
	}

	out := make(map[string][]string, len(sets))
	for key, ns := range neighbors {
		sorted := make([]string, 0, len(ns))
		for n := range ns {
			sorted = append(sorted, n)
		}
		sort.Strings(sorted)
		out[key] = sorted
	}
	return out, nil
}

// adapt converts raw input slices into a decomposition family, emitting
// the corrective deduplication warning where needed.
func adapt[T comparable](ctx context.Context, sets map[string][]T, o options) *decompose.Family[T] {
	adapted, dups := set.AdaptSlices(sets)
	for key, removed := range dups {
		o.logger.LogDeduplicate(ctx, key, removed)
	}
	return decompose.NewFamily(adapted)
}
