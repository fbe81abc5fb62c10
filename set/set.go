package set

import "iter"

// Set is the capability contract every element container must satisfy to
// participate in a decomposition. Implementations must treat receivers as
// immutable: the three binary operations and Clone return new sets.
type Set[T comparable] interface {
	// Union returns the elements present in either set.
	Union(other Set[T]) Set[T]

	// Intersect returns the elements present in both sets.
	Intersect(other Set[T]) Set[T]

	// Difference returns the elements of the receiver absent from other.
	Difference(other Set[T]) Set[T]

	// Contains reports whether elem is a member.
	Contains(elem T) bool

	// IsEmpty reports whether the set has no elements.
	IsEmpty() bool

	// Len returns the number of elements.
	Len() int

	// All iterates over the elements in unspecified order.
	All() iter.Seq[T]

	// Clone returns an independent copy.
	Clone() Set[T]

	// New constructs a set of the same kind from the given elements.
	New(elems iter.Seq[T]) Set[T]
}

// Elements materializes a set into a slice. Order is unspecified.
func Elements[T comparable](s Set[T]) []T {
	out := make([]T, 0, s.Len())
	for e := range s.All() {
		out = append(out, e)
	}
	return out
}

// Equal reports whether two sets hold exactly the same elements.
func Equal[T comparable](a, b Set[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for e := range a.All() {
		if !b.Contains(e) {
			return false
		}
	}
	return true
}
