// Package decompose implements the exact disjoint-region decomposition of a
// named-set family: a recursive combination-lattice traversal that assigns
// every element to the unique region identified by exactly the sets that
// contain it.
//
// The traversal owns an explicit working state (a Family of shrinking
// per-key element sets) instead of mutating a captured closure; all set
// values are immutable, so recursive sub-problems share them without
// aliasing hazards. Worst-case cost is exponential in the number of keys.
package decompose
