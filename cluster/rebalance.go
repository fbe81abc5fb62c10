package cluster

import (
	"sort"

	"github.com/trouchet/eule/graph"
	"github.com/trouchet/eule/set"
)

// Rebalance re-splits oversized clusters until none exceeds maxSize: each
// oversized cluster is spectrally bisected, the first half keeps the
// cluster id and the second half gets a fresh one. Clusters below minSize
// are left alone; merging undersized clusters is deliberately not done.
// A cluster that spectral bisection cannot split is accepted as-is.
func Rebalance[T comparable](sets map[string]set.Set[T], a Assignment, maxSize, minSize int, graphOpts ...graph.Option) Assignment {
	_ = minSize

	out := make(Assignment, len(a))
	for key, id := range a {
		out[key] = id
	}
	if maxSize <= 0 {
		return out
	}

	nextID := 0
	for _, id := range a.IDs() {
		if id >= nextID {
			nextID = id + 1
		}
	}

	pending := a.IDs()
	for len(pending) > 0 {
		id := pending[0]
		pending = pending[1:]

		members := membersOf(out, id)
		if len(members) <= maxSize {
			continue
		}

		subgraph := graph.Build(subset(sets, members), graphOpts...)
		left, right := Bisect(subgraph)
		if len(left) == 0 || len(right) == 0 {
			continue
		}

		for _, key := range right {
			out[key] = nextID
		}
		pending = append(pending, id, nextID)
		nextID++
	}
	return out
}

func membersOf(a Assignment, id int) []string {
	var members []string
	for key, cid := range a {
		if cid == id {
			members = append(members, key)
		}
	}
	sort.Strings(members)
	return members
}
