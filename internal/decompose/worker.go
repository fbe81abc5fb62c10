package decompose

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/trouchet/eule/model"
	"github.com/trouchet/eule/resource"
	"github.com/trouchet/eule/set"
)

// WorkerRegions computes one top-level key's share of the decomposition:
// step 2 of the lattice traversal for that key, plus the key's remaining
// exclusive elements. It works on its own copy of the family, so concurrent
// workers never observe each other's mutations.
func WorkerRegions[T comparable](f *Family[T], key string) []Region[T] {
	work := f.Clone()
	sets := work.sets
	keys := work.NonEmptyKeys()

	thisSet := sets[key]
	if thisSet == nil || thisSet.IsEmpty() {
		return nil
	}
	if len(keys) == 1 {
		return []Region[T]{{Key: model.MakeRegionKey(key), Elements: thisSet}}
	}

	others := complement(keys, key)
	if len(others) == 0 {
		return nil
	}

	csets := make(map[string]set.Set[T], len(others))
	for _, other := range others {
		csets[other] = sets[other]
	}

	var results []Region[T]
	traverse(csets, others, func(subKey model.RegionKey, subElems set.Set[T]) bool {
		excl := subElems.Difference(thisSet)
		if !excl.IsEmpty() {
			results = append(results, Region[T]{Key: subKey, Elements: excl})
			for _, name := range subKey.Names() {
				sets[name] = sets[name].Difference(excl)
			}
		}

		inter := subElems.Intersect(thisSet)
		if !inter.IsEmpty() {
			combKey := subKey.With(key)
			results = append(results, Region[T]{Key: combKey, Elements: inter})
			for _, name := range combKey.Names() {
				sets[name] = sets[name].Difference(inter)
			}
			sets[key] = sets[key].Difference(inter)
		}
		return true
	})

	if !sets[key].IsEmpty() {
		results = append(results, Region[T]{Key: model.MakeRegionKey(key), Elements: sets[key]})
	}
	return results
}

// Parallel fans the decomposition out one task per top-level key and
// concatenates the per-key results in ascending key order. Every task
// receives a pristine copy of the family; tasks never communicate. The
// first task error aborts the whole call with no partial result.
func Parallel[T comparable](ctx context.Context, f *Family[T], ctrl *resource.Controller) ([]Region[T], error) {
	keys := f.NonEmptyKeys()
	if len(keys) == 0 {
		return nil, nil
	}
	// Single-key input short-circuits without spawning workers.
	if len(keys) == 1 {
		key := keys[0]
		return []Region[T]{{Key: model.MakeRegionKey(key), Elements: f.Set(key)}}, nil
	}

	if ctrl == nil {
		ctrl = resource.Default()
	}

	perKey := make([][]Region[T], len(keys))
	g, ctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		if err := ctrl.Acquire(ctx); err != nil {
			return nil, err
		}
		g.Go(func() error {
			defer ctrl.Release()
			perKey[i] = WorkerRegions(f, key)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []Region[T]
	for _, regions := range perKey {
		results = append(results, regions...)
	}
	return results, nil
}
