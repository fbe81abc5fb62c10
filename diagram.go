package eule

import (
	"context"
	"sort"

	"github.com/trouchet/eule/model"
	"github.com/trouchet/eule/set"
)

// Family holds a named-set family together with its computed diagram and
// offers region-oriented lookups over it. The family deep-copies its input
// and never aliases caller state.
type Family[T comparable] struct {
	opts    options
	sets    map[string]set.Set[T]
	diagram Diagram[T]
}

// NewFamily builds a Family and computes its diagram.
func NewFamily[T comparable](sets map[string][]T, optFns ...Option) (*Family[T], error) {
	o := applyOptions(optFns)

	adapted, dups := set.AdaptSlices(sets)
	for key, removed := range dups {
		o.logger.LogDeduplicate(context.Background(), key, removed)
	}

	f := &Family[T]{opts: o, sets: adapted}
	if err := f.recompute(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Family[T]) recompute() error {
	raw := make(map[string][]T, len(f.sets))
	for key, s := range f.sets {
		raw[key] = set.Elements(s)
	}
	diagram, err := Euler(raw, WithLogger(f.opts.logger), WithMetricsCollector(f.opts.metrics))
	if err != nil {
		return err
	}
	f.diagram = diagram
	return nil
}

// Diagram returns the computed diagram.
func (f *Family[T]) Diagram() Diagram[T] { return f.diagram }

// Keys returns the diagram's region keys in ascending order.
func (f *Family[T]) Keys() []model.RegionKey { return f.diagram.Keys() }

// SetKeys returns the family's set names in ascending order.
func (f *Family[T]) SetKeys() []string {
	keys := make([]string, 0, len(f.sets))
	for key := range f.sets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Boundaries maps every set key to the sorted set keys sharing a region
// with it.
func (f *Family[T]) Boundaries() (map[string][]string, error) {
	raw := make(map[string][]T, len(f.sets))
	for key, s := range f.sets {
		raw[key] = set.Elements(s)
	}
	return EulerBoundaries(raw)
}

// Elements returns the union of the sets named by keys. Looking up a key
// the family does not hold is fatal.
func (f *Family[T]) Elements(keys ...string) ([]T, error) {
	acc := set.NewHash[T]()
	var union set.Set[T] = acc
	for _, key := range keys {
		s, ok := f.sets[key]
		if !ok {
			return nil, &ErrKeyNotFound{Key: key}
		}
		union = union.Union(s)
	}
	return set.Elements(union), nil
}

// Match returns the sorted set keys whose sets are entirely contained in
// items.
func (f *Family[T]) Match(items []T) []string {
	itemSet, _ := set.FromSlice(items)

	var matched []string
	for key, s := range f.sets {
		if s.Intersect(itemSet).Len() == s.Len() {
			matched = append(matched, key)
		}
	}
	sort.Strings(matched)
	return matched
}

// RemoveKey drops a set from the family and recomputes the diagram.
// Removing a key the family does not hold is a warning, not an error.
func (f *Family[T]) RemoveKey(key string) error {
	if _, ok := f.sets[key]; !ok {
		f.opts.logger.WarnContext(context.Background(), "cannot remove unknown set key",
			"key", key,
			"available", f.SetKeys(),
		)
		return nil
	}
	delete(f.sets, key)
	return f.recompute()
}
