package cluster

import (
	"sort"

	"github.com/trouchet/eule/graph"
)

// OverlappingOptions configures overlapping membership detection.
type OverlappingOptions struct {
	// OverlapThreshold is the minimum pairwise similarity for a connection
	// toward a foreign cluster to count.
	OverlapThreshold float64

	// MinBridgeStrength is the minimum affinity, relative to the primary
	// membership, for a secondary membership to be added.
	MinBridgeStrength float64

	// BaseResolution is the resolution of the primary Leiden pass.
	BaseResolution float64
}

// Overlapping detects sets that straddle cluster boundaries. It first runs
// a disjoint Leiden pass for primary memberships, then grants secondary
// memberships wherever a node's aggregate affinity toward a foreign cluster
// is strong enough. Affinity is the mean similarity to the cluster's
// members, boosted by the number of connections (saturating at three).
// Each node's memberships are sorted strongest first.
func Overlapping(g *graph.Graph, optFns ...func(*OverlappingOptions)) OverlappingAssignment {
	o := OverlappingOptions{
		OverlapThreshold:  0.18,
		MinBridgeStrength: 0.15,
		BaseResolution:    0.8,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	primary := Leiden(g, func(lo *LeidenOptions) {
		lo.Resolution = o.BaseResolution
	})

	memberships := make(OverlappingAssignment, g.Len())
	for _, key := range g.Keys {
		memberships[key] = []Membership{{Cluster: primary[key], Strength: 1.0}}
	}

	for i, keyI := range g.Keys {
		primaryCluster := primary[keyI]

		// Connections toward each foreign cluster above the threshold.
		connections := make(map[int][]float64)
		for j, keyJ := range g.Keys {
			if i == j {
				continue
			}
			clusterJ := primary[keyJ]
			if clusterJ == primaryCluster {
				continue
			}
			if w := g.Matrix[i][j]; w > o.OverlapThreshold {
				connections[clusterJ] = append(connections[clusterJ], w)
			}
		}

		foreign := make([]int, 0, len(connections))
		for id := range connections {
			foreign = append(foreign, id)
		}
		sort.Ints(foreign)

		const primaryStrength = 1.0
		for _, clusterID := range foreign {
			weights := connections[clusterID]
			affinity := mean(weights) * (0.7 + 0.3*minFloat(1.0, float64(len(weights))/3.0))
			if affinity/primaryStrength <= o.MinBridgeStrength {
				continue
			}
			if hasCluster(memberships[keyI], clusterID) {
				continue
			}
			memberships[keyI] = append(memberships[keyI], Membership{
				Cluster:  clusterID,
				Strength: affinity,
			})
		}
	}

	for key := range memberships {
		members := memberships[key]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Strength > members[j].Strength
		})
	}
	return memberships
}

func hasCluster(members []Membership, cluster int) bool {
	for _, m := range members {
		if m.Cluster == cluster {
			return true
		}
	}
	return false
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
