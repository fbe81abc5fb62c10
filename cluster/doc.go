// Package cluster assigns the nodes of an overlap graph to clusters so a
// large decomposition can be divided into independent sub-problems. Four
// policies are provided: Leiden-style local moving, spectral bisection,
// hierarchical recursive bisection, and overlapping membership detection,
// plus rebalancing and per-cluster quality metrics.
//
// Clustering is a heuristic accelerator: with a non-zero similarity
// threshold, cross-cluster element overlap can survive pruning, and a
// per-cluster decomposition is then an approximation of the true global
// one. Callers that need the exact diagram decompose without clustering.
package cluster
