package set

import "iter"

// Hash is a map-backed Set for arbitrary comparable elements.
type Hash[T comparable] struct {
	elems map[T]struct{}
}

// NewHash creates a Hash set holding the given elements.
func NewHash[T comparable](elems ...T) *Hash[T] {
	h := &Hash[T]{elems: make(map[T]struct{}, len(elems))}
	for _, e := range elems {
		h.elems[e] = struct{}{}
	}
	return h
}

// Union returns the elements present in either set.
func (h *Hash[T]) Union(other Set[T]) Set[T] {
	out := &Hash[T]{elems: make(map[T]struct{}, h.Len()+other.Len())}
	for e := range h.elems {
		out.elems[e] = struct{}{}
	}
	for e := range other.All() {
		out.elems[e] = struct{}{}
	}
	return out
}

// Intersect returns the elements present in both sets.
func (h *Hash[T]) Intersect(other Set[T]) Set[T] {
	out := &Hash[T]{elems: make(map[T]struct{})}
	for e := range h.elems {
		if other.Contains(e) {
			out.elems[e] = struct{}{}
		}
	}
	return out
}

// Difference returns the elements of the receiver absent from other.
func (h *Hash[T]) Difference(other Set[T]) Set[T] {
	out := &Hash[T]{elems: make(map[T]struct{})}
	for e := range h.elems {
		if !other.Contains(e) {
			out.elems[e] = struct{}{}
		}
	}
	return out
}

// Contains reports whether elem is a member.
func (h *Hash[T]) Contains(elem T) bool {
	_, ok := h.elems[elem]
	return ok
}

// IsEmpty reports whether the set has no elements.
func (h *Hash[T]) IsEmpty() bool { return len(h.elems) == 0 }

// Len returns the number of elements.
func (h *Hash[T]) Len() int { return len(h.elems) }

// All iterates over the elements in unspecified order.
func (h *Hash[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for e := range h.elems {
			if !yield(e) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (h *Hash[T]) Clone() Set[T] {
	out := &Hash[T]{elems: make(map[T]struct{}, len(h.elems))}
	for e := range h.elems {
		out.elems[e] = struct{}{}
	}
	return out
}

// New constructs a Hash set from the given elements.
func (h *Hash[T]) New(elems iter.Seq[T]) Set[T] {
	out := &Hash[T]{elems: make(map[T]struct{})}
	for e := range elems {
		out.elems[e] = struct{}{}
	}
	return out
}
