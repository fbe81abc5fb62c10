package cluster

import (
	"sort"

	"github.com/trouchet/eule/graph"
	"github.com/trouchet/eule/set"
)

// DefaultMaxClusterSize bounds hierarchical cluster sizes when no override
// is given.
const DefaultMaxClusterSize = 30

// Hierarchical recursively bisects the set family until every partition
// holds at most maxClusterSize keys. A bisection that yields an empty side
// accepts the current group as one final cluster instead of looping.
// graphOpts configure the overlap subgraphs built for each bisection.
func Hierarchical[T comparable](sets map[string]set.Set[T], maxClusterSize int, graphOpts ...graph.Option) Assignment {
	if maxClusterSize <= 0 {
		maxClusterSize = DefaultMaxClusterSize
	}

	keys := make([]string, 0, len(sets))
	for key := range sets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(Assignment, len(sets))
	nextID := 0

	var bisect func(group []string)
	bisect = func(group []string) {
		if len(group) <= maxClusterSize {
			for _, key := range group {
				out[key] = nextID
			}
			nextID++
			return
		}

		subgraph := graph.Build(subset(sets, group), graphOpts...)
		left, right := Bisect(subgraph)
		if len(left) == 0 || len(right) == 0 {
			for _, key := range group {
				out[key] = nextID
			}
			nextID++
			return
		}
		bisect(left)
		bisect(right)
	}
	bisect(keys)
	return out
}

func subset[T comparable](sets map[string]set.Set[T], keys []string) map[string]set.Set[T] {
	out := make(map[string]set.Set[T], len(keys))
	for _, key := range keys {
		out[key] = sets[key]
	}
	return out
}
