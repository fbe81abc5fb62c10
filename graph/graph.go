package graph

import (
	"fmt"
	"sort"

	"github.com/trouchet/eule/set"
)

// DefaultThreshold is the minimum Jaccard weight for an edge to survive
// adjacency pruning.
const DefaultThreshold = 0.1

// Edge is one pruned adjacency entry: the neighbor's node index and the
// Jaccard weight of the connection.
type Edge struct {
	To     int
	Weight float64
}

// Graph is the overlap graph of a set family. Nodes are set names in
// ascending order; Matrix is the full symmetric Jaccard matrix with a unit
// diagonal; Adjacency keeps only edges whose weight exceeds the build
// threshold. Do not mutate after Build.
type Graph struct {
	Keys      []string
	Matrix    [][]float64
	Adjacency [][]Edge

	index     map[string]int
	threshold float64
}

// Option configures Build.
type Option func(*options)

type options struct {
	threshold float64
}

// WithThreshold overrides the adjacency pruning threshold.
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// Build computes the overlap graph of the given family. Node order is the
// ascending order of set names, so identical inputs always produce an
// identical graph.
func Build[T comparable](sets map[string]set.Set[T], optFns ...Option) *Graph {
	o := options{threshold: DefaultThreshold}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	keys := make([]string, 0, len(sets))
	for key := range sets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	n := len(keys)
	g := &Graph{
		Keys:      keys,
		Matrix:    make([][]float64, n),
		Adjacency: make([][]Edge, n),
		index:     make(map[string]int, n),
		threshold: o.threshold,
	}
	for i, key := range keys {
		g.Matrix[i] = make([]float64, n)
		g.index[key] = i
	}

	for i := 0; i < n; i++ {
		g.Matrix[i][i] = 1.0
		for j := i + 1; j < n; j++ {
			w := jaccard(sets[keys[i]], sets[keys[j]])
			g.Matrix[i][j] = w
			g.Matrix[j][i] = w
			if w > o.threshold {
				g.Adjacency[i] = append(g.Adjacency[i], Edge{To: j, Weight: w})
				g.Adjacency[j] = append(g.Adjacency[j], Edge{To: i, Weight: w})
			}
		}
	}
	return g
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.Keys) }

// Threshold returns the pruning threshold the graph was built with.
func (g *Graph) Threshold() float64 { return g.threshold }

// Index returns the node index of a set name.
func (g *Graph) Index(key string) (int, error) {
	i, ok := g.index[key]
	if !ok {
		return 0, fmt.Errorf("graph: unknown set key %q", key)
	}
	return i, nil
}

// Overlap returns the Jaccard similarity between two sets by name.
func (g *Graph) Overlap(keyI, keyJ string) (float64, error) {
	i, err := g.Index(keyI)
	if err != nil {
		return 0, err
	}
	j, err := g.Index(keyJ)
	if err != nil {
		return 0, err
	}
	return g.Matrix[i][j], nil
}

func jaccard[T comparable](a, b set.Set[T]) float64 {
	inter := a.Intersect(b).Len()
	union := a.Union(b).Len()
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
