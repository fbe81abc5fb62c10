// Package eule computes exact Euler diagrams: given a family of named
// sets, it partitions every element into the unique region identified by
// exactly the sets that contain it.
//
// # Quick Start
//
//	diagram, _ := eule.Euler(map[string][]int{
//	    "a": {1, 2, 3},
//	    "b": {2, 3, 4},
//	    "c": {3, 4, 5},
//	    "d": {3, 5, 6},
//	})
//	// {(a, b): [2], (b, c): [4], (a, b, c, d): [3],
//	//  (c, d): [5], (d): [6], (a): [1]}
//
// Region keys are ascending-sorted tuples of set names; across one input
// the regions partition the union of all elements.
//
// # Streaming
//
// Regions yields (key, elements) pairs lazily, so consumers can stop
// early:
//
//	seq, _ := eule.Regions(sets)
//	for key, elems := range seq {
//	    process(key, elems)
//	}
//
// # Scaling
//
// The decomposition is worst-case exponential in the number of sets. Two
// mitigations are provided:
//
//   - EulerParallel fans the traversal out one worker per top-level set.
//   - ClusteredEuler divides the family into overlap-graph clusters
//     (Leiden, spectral or hierarchical), decomposes each cluster
//     independently (optionally in parallel) and merges the results with
//     collision-aware keys. With cross-cluster overlap this is a
//     documented approximation of the global diagram; bridge diagnostics
//     report the affected elements and sets.
package eule
