package set

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Bitmap is a Roaring-Bitmap-backed Set for uint32 element universes.
// It wraps the official roaring implementation and takes the compressed
// fast path (Or/And/AndNot) whenever both operands are Bitmaps.
type Bitmap struct {
	rb *roaring.Bitmap
}

// NewBitmap creates a Bitmap holding the given elements.
func NewBitmap(elems ...uint32) *Bitmap {
	rb := roaring.New()
	rb.AddMany(elems)
	return &Bitmap{rb: rb}
}

// Union returns the elements present in either set.
func (b *Bitmap) Union(other Set[uint32]) Set[uint32] {
	if ob, ok := other.(*Bitmap); ok {
		return &Bitmap{rb: roaring.Or(b.rb, ob.rb)}
	}
	out := b.rb.Clone()
	for e := range other.All() {
		out.Add(e)
	}
	return &Bitmap{rb: out}
}

// Intersect returns the elements present in both sets.
func (b *Bitmap) Intersect(other Set[uint32]) Set[uint32] {
	if ob, ok := other.(*Bitmap); ok {
		return &Bitmap{rb: roaring.And(b.rb, ob.rb)}
	}
	out := roaring.New()
	for e := range b.All() {
		if other.Contains(e) {
			out.Add(e)
		}
	}
	return &Bitmap{rb: out}
}

// Difference returns the elements of the receiver absent from other.
func (b *Bitmap) Difference(other Set[uint32]) Set[uint32] {
	if ob, ok := other.(*Bitmap); ok {
		return &Bitmap{rb: roaring.AndNot(b.rb, ob.rb)}
	}
	out := roaring.New()
	for e := range b.All() {
		if !other.Contains(e) {
			out.Add(e)
		}
	}
	return &Bitmap{rb: out}
}

// Contains reports whether elem is a member.
func (b *Bitmap) Contains(elem uint32) bool { return b.rb.Contains(elem) }

// IsEmpty reports whether the set has no elements.
func (b *Bitmap) IsEmpty() bool { return b.rb.IsEmpty() }

// Len returns the number of elements.
func (b *Bitmap) Len() int { return int(b.rb.GetCardinality()) }

// All iterates over the elements in ascending order.
func (b *Bitmap) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := b.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (b *Bitmap) Clone() Set[uint32] {
	return &Bitmap{rb: b.rb.Clone()}
}

// New constructs a Bitmap from the given elements.
func (b *Bitmap) New(elems iter.Seq[uint32]) Set[uint32] {
	out := roaring.New()
	for e := range elems {
		out.Add(e)
	}
	return &Bitmap{rb: out}
}
