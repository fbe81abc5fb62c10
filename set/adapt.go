package set

import "strconv"

// FromSlice adapts a plain slice into a Hash set. The returned count is the
// number of duplicate occurrences that were dropped; callers surface it as a
// corrective warning rather than an error.
func FromSlice[T comparable](elems []T) (Set[T], int) {
	h := NewHash[T]()
	dropped := 0
	for _, e := range elems {
		if _, ok := h.elems[e]; ok {
			dropped++
			continue
		}
		h.elems[e] = struct{}{}
	}
	return h, dropped
}

// AdaptSlices adapts a keyed family of plain slices into a family of sets.
// The returned map reports dropped duplicates per key; it is nil when every
// input slice was duplicate-free.
func AdaptSlices[T comparable](sets map[string][]T) (map[string]Set[T], map[string]int) {
	out := make(map[string]Set[T], len(sets))
	var dups map[string]int
	for key, elems := range sets {
		s, dropped := FromSlice(elems)
		out[key] = s
		if dropped > 0 {
			if dups == nil {
				dups = make(map[string]int)
			}
			dups[key] = dropped
		}
	}
	return out, dups
}

// AdaptIndexed admits the sequence-of-sequences input form by assigning
// each slice its position as a stringified key.
func AdaptIndexed[T comparable](sets [][]T) map[string][]T {
	out := make(map[string][]T, len(sets))
	for i, elems := range sets {
		out[strconv.Itoa(i)] = elems
	}
	return out
}
