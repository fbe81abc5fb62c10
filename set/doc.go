// Package set defines the set capability consumed by the decomposition
// engine and two concrete implementations: a map-backed set for arbitrary
// comparable elements and a Roaring-Bitmap-backed set for dense uint32
// element universes.
//
// All operations are non-mutating: Union, Intersect and Difference return
// new sets, so working copies of a set family can share values safely.
package set
