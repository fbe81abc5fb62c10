package model

import (
	"fmt"
	"sort"
	"strings"
)

// regionKeySep joins set names inside the canonical form of a RegionKey.
// The unit separator keeps arbitrary printable set names unambiguous.
const regionKeySep = "\x1f"

// RegionKey identifies one disjoint region of an Euler diagram: the
// ascending-sorted tuple of set names whose sets all contain the region's
// elements. It is a comparable value type and can be used as a map key.
//
// The zero value is the empty key.
type RegionKey struct {
	canon string
}

// MakeRegionKey builds a RegionKey from the given set names.
// Names are sorted ascending; the input slice is not modified.
func MakeRegionKey(names ...string) RegionKey {
	if len(names) == 0 {
		return RegionKey{}
	}
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return RegionKey{canon: strings.Join(sorted, regionKeySep)}
}

// Names returns the set names of the key in ascending order.
func (k RegionKey) Names() []string {
	if k.canon == "" {
		return nil
	}
	return strings.Split(k.canon, regionKeySep)
}

// Len returns the number of set names in the key.
func (k RegionKey) Len() int {
	if k.canon == "" {
		return 0
	}
	return strings.Count(k.canon, regionKeySep) + 1
}

// Contains reports whether the key includes the given set name.
func (k RegionKey) Contains(name string) bool {
	for _, n := range k.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// With returns a new key extended by name, keeping ascending order.
func (k RegionKey) With(name string) RegionKey {
	return MakeRegionKey(append(k.Names(), name)...)
}

// Compare orders keys lexicographically by their name tuples.
func (k RegionKey) Compare(other RegionKey) int {
	return strings.Compare(k.canon, other.canon)
}

// String renders the key as "(a, b, c)".
func (k RegionKey) String() string {
	return "(" + strings.Join(k.Names(), ", ") + ")"
}

// GlobalKey is a region key in a merged multi-cluster diagram. It is either
// plain (the common case after flattening) or scoped to the cluster that
// produced it, which happens when two clusters emit the same RegionKey and
// silent overwrite must be avoided.
type GlobalKey struct {
	Region  RegionKey
	Cluster int
	Scoped  bool
}

// Plain wraps a RegionKey without cluster scope.
func Plain(region RegionKey) GlobalKey {
	return GlobalKey{Region: region}
}

// ClusterScoped wraps a RegionKey with the producing cluster's id.
func ClusterScoped(cluster int, region RegionKey) GlobalKey {
	return GlobalKey{Region: region, Cluster: cluster, Scoped: true}
}

// String renders plain keys as the region key and scoped keys as
// "cluster:N(a, b)".
func (g GlobalKey) String() string {
	if !g.Scoped {
		return g.Region.String()
	}
	return fmt.Sprintf("cluster:%d%s", g.Cluster, g.Region)
}
