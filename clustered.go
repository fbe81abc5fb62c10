package eule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trouchet/eule/cluster"
	"github.com/trouchet/eule/graph"
	"github.com/trouchet/eule/internal/decompose"
	"github.com/trouchet/eule/model"
	"github.com/trouchet/eule/resource"
	"github.com/trouchet/eule/set"
)

// Clustered is a divide-and-conquer Euler diagram: the set family is
// partitioned into overlap-graph clusters, each cluster is decomposed
// independently and the per-cluster diagrams are merged into a global
// diagram with collision-aware keys.
//
// Whenever cross-cluster element overlap survives adjacency pruning, the
// merged diagram is an approximation of the true global decomposition;
// BridgeElements and BridgeSets report what was affected.
type Clustered[T comparable] struct {
	opts   options
	sets   map[string]set.Set[T]
	keys   []string
	method cluster.Method

	graph       *graph.Graph
	clustering  cluster.Assignment
	overlapping cluster.OverlappingAssignment
	metrics     map[int]cluster.Metrics

	diagrams    map[int]Diagram[T]
	global      map[model.GlobalKey][]T
	bridgeElems map[T][]int
	collisions  int
	computed    bool
}

// ClusteredEuler builds a Clustered diagram for the given family. By
// default clustering engages only above 30 sets (below that the whole
// family forms one cluster) and the cluster diagrams are computed before
// returning; see WithClusterThreshold, WithDeferredCompute, WithMethod and
// WithOverlap.
func ClusteredEuler[T comparable](ctx context.Context, sets map[string][]T, optFns ...Option) (*Clustered[T], error) {
	o := applyOptions(optFns)
	method, err := cluster.ParseMethod(string(o.method))
	if err != nil {
		return nil, err
	}

	adapted, dups := set.AdaptSlices(sets)
	for key, removed := range dups {
		o.logger.LogDeduplicate(ctx, key, removed)
	}

	keys := make([]string, 0, len(adapted))
	for key := range adapted {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	c := &Clustered[T]{
		opts:   o,
		sets:   adapted,
		keys:   keys,
		method: method,
		graph:  graph.Build(adapted, graph.WithThreshold(o.overlapThreshold)),
	}
	c.assign(ctx)

	if !o.deferCompute {
		if err := c.Compute(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// assign runs the configured clustering policy and the rebalancing pass.
func (c *Clustered[T]) assign(ctx context.Context) {
	start := time.Now()
	o := c.opts
	graphOpts := graph.WithThreshold(o.overlapThreshold)

	if len(c.keys) <= o.clusterThreshold {
		// Small families are one cluster; the decomposition stays exact.
		c.clustering = make(cluster.Assignment, len(c.keys))
		for _, key := range c.keys {
			c.clustering[key] = 0
		}
		if o.allowOverlap {
			c.overlapping = make(cluster.OverlappingAssignment, len(c.keys))
			for _, key := range c.keys {
				c.overlapping[key] = []cluster.Membership{{Cluster: 0, Strength: 1.0}}
			}
		}
	} else if o.allowOverlap {
		c.overlapping = cluster.Overlapping(c.graph, func(oo *cluster.OverlappingOptions) {
			oo.OverlapThreshold = o.membershipThreshold
			oo.MinBridgeStrength = o.minBridgeStrength
			oo.BaseResolution = o.baseResolution
		})
		c.clustering = c.overlapping.Primary()
	} else {
		var assignment cluster.Assignment
		switch c.method {
		case cluster.MethodLeiden:
			assignment = cluster.Leiden(c.graph, func(lo *cluster.LeidenOptions) {
				lo.Resolution = o.resolution
				lo.MaxIterations = o.maxIterations
			})
		default: // spectral and hierarchical both bisect recursively
			assignment = cluster.Hierarchical(c.sets, o.maxClusterSize, graphOpts)
		}
		c.clustering = cluster.Rebalance(c.sets, assignment, o.maxClusterSize, o.minClusterSize, graphOpts)
	}

	c.metrics = cluster.ComputeMetrics(c.sets, c.clustering)

	o.logger.LogClustering(ctx, string(c.method), len(c.keys), c.clustering.Count(), time.Since(start))
	o.metrics.RecordClustering(string(c.method), c.clustering.Count(), time.Since(start))
}

// clusterSets groups the family by cluster. In overlapping mode a set with
// several memberships appears in every cluster it belongs to, so its
// elements can be duplicated across cluster-local diagrams.
func (c *Clustered[T]) clusterSets() map[int]map[string]set.Set[T] {
	out := make(map[int]map[string]set.Set[T])
	var grouped map[int][]string
	if c.overlapping != nil {
		grouped = c.overlapping.Clusters()
	} else {
		grouped = c.clustering.Clusters()
	}
	for id, members := range grouped {
		subset := make(map[string]set.Set[T], len(members))
		for _, key := range members {
			subset[key] = c.sets[key]
		}
		out[id] = subset
	}
	return out
}

// Compute decomposes every cluster (sequentially, or in parallel when the
// family is large enough) and merges the results into the global diagram.
func (c *Clustered[T]) Compute(ctx context.Context) error {
	clusterSets := c.clusterSets()
	ids := make([]int, 0, len(clusterSets))
	for id := range clusterSets {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	parallel := len(ids) > c.opts.parallelMinClusters && len(c.keys) > c.opts.parallelMinSets
	if c.opts.parallel != nil {
		parallel = *c.opts.parallel
	}

	diagrams := make(map[int]Diagram[T], len(ids))
	if parallel {
		ctrl := c.opts.controller
		if ctrl == nil {
			ctrl = resource.Default()
		}
		results := make([]Diagram[T], len(ids))
		g, ctx := errgroup.WithContext(ctx)
		for i, id := range ids {
			subset := clusterSets[id]
			if err := ctrl.Acquire(ctx); err != nil {
				return err
			}
			g.Go(func() error {
				defer ctrl.Release()
				results[i] = clusterDiagram(subset)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		for i, id := range ids {
			diagrams[id] = results[i]
		}
	} else {
		for _, id := range ids {
			diagrams[id] = clusterDiagram(clusterSets[id])
		}
	}
	c.diagrams = diagrams

	c.identifyBridges()
	c.merge(ctx)
	c.computed = true
	return nil
}

func clusterDiagram[T comparable](sets map[string]set.Set[T]) Diagram[T] {
	out := make(Diagram[T])
	for key, elems := range decompose.Regions(decompose.NewFamily(sets)) {
		out[key] = set.Elements(elems)
	}
	return out
}

// identifyBridges records every element whose owning sets span more than
// one cluster (by primary membership).
func (c *Clustered[T]) identifyBridges() {
	elemClusters := make(map[T]map[int]struct{})
	for key, id := range c.clustering {
		for elem := range c.sets[key].All() {
			if elemClusters[elem] == nil {
				elemClusters[elem] = make(map[int]struct{})
			}
			elemClusters[elem][id] = struct{}{}
		}
	}

	c.bridgeElems = make(map[T][]int)
	for elem, ids := range elemClusters {
		if len(ids) < 2 {
			continue
		}
		sorted := make([]int, 0, len(ids))
		for id := range ids {
			sorted = append(sorted, id)
		}
		sort.Ints(sorted)
		c.bridgeElems[elem] = sorted
	}
}

// merge assembles the cluster-scoped global diagram and counts region-key
// collisions across clusters.
func (c *Clustered[T]) merge(ctx context.Context) {
	start := time.Now()

	producers := make(map[model.RegionKey]int)
	c.global = make(map[model.GlobalKey][]T)
	for id, diagram := range c.diagrams {
		for key, elems := range diagram {
			c.global[model.ClusterScoped(id, key)] = elems
			producers[key]++
		}
	}

	c.collisions = 0
	for _, n := range producers {
		if n > 1 {
			c.collisions++
		}
	}

	c.opts.logger.LogMerge(ctx, len(c.global), c.collisions, time.Since(start))
	c.opts.metrics.RecordMerge(len(c.global), c.collisions, time.Since(start))
}

// Graph returns the overlap graph the clustering was computed on.
func (c *Clustered[T]) Graph() *graph.Graph { return c.graph }

// Clustering returns the (primary) cluster assignment.
func (c *Clustered[T]) Clustering() cluster.Assignment { return c.clustering }

// OverlappingClustering returns the full membership assignment, or nil
// when overlapping mode is disabled.
func (c *Clustered[T]) OverlappingClustering() cluster.OverlappingAssignment {
	return c.overlapping
}

// Metrics returns the per-cluster quality metrics.
func (c *Clustered[T]) Metrics() map[int]cluster.Metrics { return c.metrics }

// ClusterDiagrams returns every cluster-local diagram.
func (c *Clustered[T]) ClusterDiagrams() (map[int]Diagram[T], error) {
	if !c.computed {
		return nil, ErrNotComputed
	}
	return c.diagrams, nil
}

// ClusterDiagram returns the diagram of one cluster. Looking up a cluster
// id that does not exist is fatal.
func (c *Clustered[T]) ClusterDiagram(id int) (Diagram[T], error) {
	if !c.computed {
		return nil, ErrNotComputed
	}
	diagram, ok := c.diagrams[id]
	if !ok {
		return nil, &ErrClusterNotFound{Cluster: id}
	}
	return diagram, nil
}

// AsEulerDict returns the merged global diagram. With flatten false every
// key is cluster-scoped. With flatten true the cluster scope is stripped
// from a region key only while no other cluster produced the same key;
// later colliding entries keep their scope to prevent silent overwrite.
func (c *Clustered[T]) AsEulerDict(flatten bool) (map[model.GlobalKey][]T, error) {
	if !c.computed {
		return nil, ErrNotComputed
	}

	out := make(map[model.GlobalKey][]T, len(c.global))
	if !flatten {
		for key, elems := range c.global {
			out[key] = elems
		}
		return out, nil
	}

	ids := make([]int, 0, len(c.diagrams))
	for id := range c.diagrams {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	seen := make(map[model.RegionKey]struct{})
	for _, id := range ids {
		for _, key := range c.diagrams[id].Keys() {
			elems := c.diagrams[id][key]
			if _, dup := seen[key]; dup {
				out[model.ClusterScoped(id, key)] = elems
				continue
			}
			seen[key] = struct{}{}
			out[model.Plain(key)] = elems
		}
	}
	return out, nil
}

// BridgeElements maps every element spanning two or more clusters to the
// ascending list of those cluster ids.
func (c *Clustered[T]) BridgeElements() map[T][]int { return c.bridgeElems }

// BridgeSets maps every set that overlaps a set in a different cluster to
// the ascending list of those foreign cluster ids.
func (c *Clustered[T]) BridgeSets() map[string][]int {
	bridges := make(map[string][]int)
	for _, key := range c.keys {
		own := c.clustering[key]
		connected := make(map[int]struct{})
		for _, other := range c.keys {
			if other == key || c.clustering[other] == own {
				continue
			}
			if !c.sets[key].Intersect(c.sets[other]).IsEmpty() {
				connected[c.clustering[other]] = struct{}{}
			}
		}
		if len(connected) == 0 {
			continue
		}
		ids := make([]int, 0, len(connected))
		for id := range connected {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		bridges[key] = ids
	}
	return bridges
}

// OverlapStats summarizes overlapping memberships.
type OverlapStats struct {
	Overlapping     bool
	OverlappingSets int
	MaxMemberships  int
	AvgMemberships  float64
}

// GetOverlapStats reports membership statistics for overlapping mode.
func (c *Clustered[T]) GetOverlapStats() OverlapStats {
	if c.overlapping == nil {
		return OverlapStats{}
	}
	stats := OverlapStats{Overlapping: true}
	total := 0
	for _, members := range c.overlapping {
		total += len(members)
		if len(members) > 1 {
			stats.OverlappingSets++
		}
		if len(members) > stats.MaxMemberships {
			stats.MaxMemberships = len(members)
		}
	}
	if len(c.overlapping) > 0 {
		stats.AvgMemberships = float64(total) / float64(len(c.overlapping))
	}
	return stats
}

// Summary renders a human-readable report of the clustering and the
// computed diagrams.
func (c *Clustered[T]) Summary() string {
	var b strings.Builder
	b.WriteString("Clustered Euler Diagram Summary\n")
	b.WriteString("================================\n")
	fmt.Fprintf(&b, "Method: %s\n", c.method)
	fmt.Fprintf(&b, "Total sets: %d\n", len(c.keys))
	fmt.Fprintf(&b, "Number of clusters: %d\n", c.clustering.Count())

	ids := c.clustering.IDs()

	b.WriteString("\nCluster Metrics:\n")
	for _, id := range ids {
		m := c.metrics[id]
		fmt.Fprintf(&b, "  Cluster %d: size=%d, intra=%.1f, inter=%.1f, conductance=%.3f, score=%.2f\n",
			id, m.Size, m.IntraOverlap, m.InterOverlap, m.Conductance, m.Score())
	}

	if len(c.bridgeElems) > 0 {
		fmt.Fprintf(&b, "\nBridge elements (span multiple clusters): %d\n", len(c.bridgeElems))
	}

	if c.computed {
		b.WriteString("\nEuler diagrams computed:\n")
		for _, id := range ids {
			fmt.Fprintf(&b, "  Cluster %d: %d regions\n", id, len(c.diagrams[id]))
		}
	}

	if bridges := c.BridgeSets(); len(bridges) > 0 {
		b.WriteString("\nBridge sets (connect clusters):\n")
		keys := make([]string, 0, len(bridges))
		for key := range bridges {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&b, "  Set %q connects clusters: %v\n", key, bridges[key])
		}
	}

	if stats := c.GetOverlapStats(); stats.Overlapping {
		b.WriteString("\nOverlapping clustering:\n")
		fmt.Fprintf(&b, "  Sets with multiple memberships: %d\n", stats.OverlappingSets)
		fmt.Fprintf(&b, "  Max memberships per set: %d\n", stats.MaxMemberships)
		fmt.Fprintf(&b, "  Avg memberships per set: %.2f\n", stats.AvgMemberships)
	}

	return b.String()
}
