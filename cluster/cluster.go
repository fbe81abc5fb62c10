package cluster

import (
	"errors"
	"fmt"
	"sort"
)

// Method selects a clustering policy.
type Method string

const (
	// MethodLeiden is Leiden-style local moving with connectivity repair.
	MethodLeiden Method = "leiden"
	// MethodSpectral is recursive spectral bisection.
	MethodSpectral Method = "spectral"
	// MethodHierarchical is recursive spectral bisection with a size bound.
	MethodHierarchical Method = "hierarchical"
)

// ErrUnknownMethod is returned for an unrecognized clustering method name.
var ErrUnknownMethod = errors.New("cluster: unknown clustering method")

// ParseMethod validates a method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodLeiden, MethodSpectral, MethodHierarchical:
		return Method(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Assignment maps every set key to its cluster id.
type Assignment map[string]int

// Clusters groups the assignment by cluster id, member keys sorted.
func (a Assignment) Clusters() map[int][]string {
	out := make(map[int][]string)
	for key, id := range a {
		out[id] = append(out[id], key)
	}
	for id := range out {
		sort.Strings(out[id])
	}
	return out
}

// IDs returns the distinct cluster ids in ascending order.
func (a Assignment) IDs() []int {
	seen := make(map[int]struct{})
	for _, id := range a {
		seen[id] = struct{}{}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Count returns the number of distinct clusters.
func (a Assignment) Count() int { return len(a.IDs()) }

// Membership is one overlapping-clustering membership: a cluster id and the
// strength of the node's affinity to it. A node's primary membership has
// strength 1.0.
type Membership struct {
	Cluster  int
	Strength float64
}

// OverlappingAssignment maps every set key to its memberships, strongest
// first.
type OverlappingAssignment map[string][]Membership

// Primary reduces the overlapping assignment to each key's strongest
// cluster.
func (oa OverlappingAssignment) Primary() Assignment {
	out := make(Assignment, len(oa))
	for key, members := range oa {
		out[key] = members[0].Cluster
	}
	return out
}

// Clusters groups keys by every cluster they belong to; a key with
// secondary memberships appears under several ids.
func (oa OverlappingAssignment) Clusters() map[int][]string {
	out := make(map[int][]string)
	for key, members := range oa {
		for _, m := range members {
			out[m.Cluster] = append(out[m.Cluster], key)
		}
	}
	for id := range out {
		sort.Strings(out[id])
	}
	return out
}
