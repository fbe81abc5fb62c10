package cluster

import (
	"sort"

	"github.com/trouchet/eule/graph"
)

// LeidenOptions configures Leiden-style clustering.
type LeidenOptions struct {
	// Resolution scales the modularity delta; higher values favor more,
	// smaller clusters.
	Resolution float64

	// MaxIterations bounds the local-moving loop.
	MaxIterations int
}

// Leiden runs Leiden-style community detection over the pruned adjacency:
// every node starts in its own cluster, then local moving repeatedly shifts
// nodes to the neighboring cluster with the best strictly-positive
// modularity delta until no move improves. A repair pass splits any
// resulting cluster that is not connected.
func Leiden(g *graph.Graph, optFns ...func(*LeidenOptions)) Assignment {
	o := LeidenOptions{Resolution: 1.0, MaxIterations: 100}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	clusters := make([]int, g.Len())
	for i := range clusters {
		clusters[i] = i
	}

	for iter := 0; iter < o.MaxIterations; iter++ {
		if !localMove(g, clusters, o.Resolution) {
			break
		}
	}
	repairConnectivity(g, clusters)

	out := make(Assignment, g.Len())
	for i, key := range g.Keys {
		out[key] = clusters[i]
	}
	return out
}

// localMove performs one pass over all nodes, moving each to its best
// neighboring cluster when the modularity delta is strictly positive.
// Candidate clusters are visited in ascending id order so ties break
// deterministically.
func localMove(g *graph.Graph, clusters []int, resolution float64) bool {
	improved := false

	for node := 0; node < g.Len(); node++ {
		current := clusters[node]

		candidates := make(map[int]struct{})
		for _, edge := range g.Adjacency[node] {
			candidates[clusters[edge.To]] = struct{}{}
		}
		delete(candidates, current)
		if len(candidates) == 0 {
			continue
		}
		ordered := make([]int, 0, len(candidates))
		for id := range candidates {
			ordered = append(ordered, id)
		}
		sort.Ints(ordered)

		best := current
		bestDelta := 0.0
		for _, candidate := range ordered {
			delta := modularityDelta(g, clusters, node, current, candidate, resolution)
			if delta > bestDelta {
				bestDelta = delta
				best = candidate
			}
		}

		if best != current {
			clusters[node] = best
			improved = true
		}
	}
	return improved
}

// modularityDelta is the gain from moving node between clusters:
// resolution times the edge weight into the target minus the edge weight
// into the current cluster.
func modularityDelta(g *graph.Graph, clusters []int, node, from, to int, resolution float64) float64 {
	weightFrom := 0.0
	weightTo := 0.0
	for _, edge := range g.Adjacency[node] {
		switch clusters[edge.To] {
		case from:
			weightFrom += edge.Weight
		case to:
			weightTo += edge.Weight
		}
	}
	return resolution * (weightTo - weightFrom)
}

// repairConnectivity splits clusters that are not connected under the
// pruned adjacency: the largest component keeps the cluster id, every other
// component gets a fresh one.
func repairConnectivity(g *graph.Graph, clusters []int) {
	byCluster := make(map[int][]int)
	maxID := 0
	for node, id := range clusters {
		byCluster[id] = append(byCluster[id], node)
		if id > maxID {
			maxID = id
		}
	}
	nextID := maxID + 1

	ids := make([]int, 0, len(byCluster))
	for id := range byCluster {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		nodes := byCluster[id]
		if len(nodes) <= 1 {
			continue
		}
		components := connectedComponents(g, nodes)
		if len(components) <= 1 {
			continue
		}

		// Largest component first; equal sizes break on lowest node index.
		sort.SliceStable(components, func(i, j int) bool {
			if len(components[i]) != len(components[j]) {
				return len(components[i]) > len(components[j])
			}
			return components[i][0] < components[j][0]
		})
		for _, comp := range components[1:] {
			for _, node := range comp {
				clusters[node] = nextID
			}
			nextID++
		}
	}
}

// connectedComponents runs BFS over the pruned adjacency restricted to the
// given node set.
func connectedComponents(g *graph.Graph, nodes []int) [][]int {
	inCluster := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		inCluster[n] = true
	}

	visited := make(map[int]bool, len(nodes))
	var components [][]int
	for _, start := range nodes {
		if visited[start] {
			continue
		}
		var component []int
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			component = append(component, node)
			for _, edge := range g.Adjacency[node] {
				if inCluster[edge.To] && !visited[edge.To] {
					visited[edge.To] = true
					queue = append(queue, edge.To)
				}
			}
		}
		components = append(components, component)
	}
	return components
}
