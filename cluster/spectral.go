package cluster

import (
	"math"
	"sort"

	"github.com/trouchet/eule/graph"
	"github.com/trouchet/eule/internal/eigen"
)

// degreeGuard keeps isolated nodes from dividing by zero when normalizing
// the Laplacian.
const degreeGuard = 1e-10

// Bisect splits the graph's nodes into two groups along the Fiedler vector
// of the normalized Laplacian: nodes at or below the median value go left,
// the rest go right. A single-node graph returns (all, empty).
func Bisect(g *graph.Graph) (left, right []string) {
	n := g.Len()
	if n == 0 {
		return nil, nil
	}
	if n == 1 {
		return []string{g.Keys[0]}, nil
	}

	lap := normalizedLaplacian(g)
	_, vectors := eigen.Decompose(lap)
	fiedler := vectors[1]

	med := median(fiedler)
	for i, key := range g.Keys {
		if fiedler[i] <= med {
			left = append(left, key)
		} else {
			right = append(right, key)
		}
	}
	return left, right
}

// normalizedLaplacian builds I - D^-1/2 A D^-1/2 with self-loops excluded.
func normalizedLaplacian(g *graph.Graph) [][]float64 {
	n := g.Len()

	adj := make([][]float64, n)
	degree := make([]float64, n)
	for i := 0; i < n; i++ {
		adj[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			adj[i][j] = g.Matrix[i][j]
			degree[i] += g.Matrix[i][j]
		}
	}

	invSqrt := make([]float64, n)
	for i := range invSqrt {
		invSqrt[i] = 1.0 / math.Sqrt(degree[i]+degreeGuard)
	}

	lap := make([][]float64, n)
	for i := 0; i < n; i++ {
		lap[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			lap[i][j] = -invSqrt[i] * adj[i][j] * invSqrt[j]
		}
		lap[i][i] += 1.0
	}
	return lap
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
