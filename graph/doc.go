// Package graph builds the pairwise overlap graph of a named-set family:
// a symmetric Jaccard similarity matrix plus a threshold-pruned adjacency
// list. The graph is immutable once built and only drives clustering; it
// never affects decomposition correctness.
package graph
