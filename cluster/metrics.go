package cluster

import (
	"math"

	"github.com/trouchet/eule/set"
)

// scoreEpsilon keeps Score finite for near-zero external overlap.
const scoreEpsilon = 1e-10

// Metrics summarizes the quality of one cluster. IntraOverlap sums the
// pairwise intersection sizes within the cluster; InterOverlap sums the
// intersections of cluster members against every external set.
type Metrics struct {
	Size         int
	IntraOverlap float64
	InterOverlap float64
	Conductance  float64
}

// Score is IntraOverlap/(InterOverlap+eps); +Inf for a fully internal
// cluster. Higher is better.
func (m Metrics) Score() float64 {
	if m.InterOverlap == 0 {
		return math.Inf(1)
	}
	return m.IntraOverlap / (m.InterOverlap + scoreEpsilon)
}

// ComputeMetrics evaluates every cluster of the assignment. Metrics are
// diagnostic only; they never alter the assignment.
func ComputeMetrics[T comparable](sets map[string]set.Set[T], a Assignment) map[int]Metrics {
	grouped := a.Clusters()

	out := make(map[int]Metrics, len(grouped))
	for id, members := range grouped {
		inside := make(map[string]bool, len(members))
		for _, key := range members {
			inside[key] = true
		}

		intra := 0.0
		for i, keyI := range members {
			for _, keyJ := range members[i+1:] {
				intra += float64(sets[keyI].Intersect(sets[keyJ]).Len())
			}
		}

		inter := 0.0
		for _, keyI := range members {
			for keyJ := range sets {
				if inside[keyJ] {
					continue
				}
				inter += float64(sets[keyI].Intersect(sets[keyJ]).Len())
			}
		}

		conductance := 1.0
		if intra+inter > 0 {
			conductance = inter / (intra + inter + 1)
		}

		out[id] = Metrics{
			Size:         len(members),
			IntraOverlap: intra,
			InterOverlap: inter,
			Conductance:  conductance,
		}
	}
	return out
}
