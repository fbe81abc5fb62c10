package eule

import (
	"log/slog"

	"github.com/trouchet/eule/cluster"
	"github.com/trouchet/eule/resource"
)

type options struct {
	logger     *Logger
	metrics    MetricsCollector
	controller *resource.Controller

	// Clustering knobs.
	method              cluster.Method
	resolution          float64
	maxIterations       int
	maxClusterSize      int
	minClusterSize      int
	overlapThreshold    float64
	clusterThreshold    int
	parallel            *bool
	parallelMinClusters int
	parallelMinSets     int
	deferCompute        bool

	// Overlapping-membership knobs.
	allowOverlap        bool
	membershipThreshold float64
	minBridgeStrength   float64
	baseResolution      float64
}

// Option configures the eule entry points.
//
// Options that only affect clustering are ignored by the plain
// decomposition paths.
type Option func(*options)

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithController configures the resource controller bounding parallel
// fan-outs. The default controller allows GOMAXPROCS concurrent tasks.
func WithController(ctrl *resource.Controller) Option {
	return func(o *options) {
		o.controller = ctrl
	}
}

// WithMethod selects the clustering policy. Default is leiden.
func WithMethod(method cluster.Method) Option {
	return func(o *options) {
		o.method = method
	}
}

// WithResolution sets the Leiden resolution parameter.
func WithResolution(resolution float64) Option {
	return func(o *options) {
		o.resolution = resolution
	}
}

// WithMaxIterations bounds the Leiden local-moving loop.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithMaxClusterSize bounds cluster sizes for the hierarchical policy and
// the rebalancing pass.
func WithMaxClusterSize(n int) Option {
	return func(o *options) {
		o.maxClusterSize = n
	}
}

// WithMinClusterSize sets the lower size bound exposed by rebalancing.
// Undersized clusters are currently never merged; the knob is accepted for
// forward compatibility.
func WithMinClusterSize(n int) Option {
	return func(o *options) {
		o.minClusterSize = n
	}
}

// WithOverlapThreshold sets the Jaccard threshold for overlap-graph
// adjacency pruning.
func WithOverlapThreshold(threshold float64) Option {
	return func(o *options) {
		o.overlapThreshold = threshold
	}
}

// WithClusterThreshold sets the set count above which ClusteredEuler
// engages clustering; at or below it, all sets share one cluster.
// Pass 0 to always cluster.
func WithClusterThreshold(n int) Option {
	return func(o *options) {
		o.clusterThreshold = n
	}
}

// WithParallel overrides the automatic per-cluster parallelism decision.
func WithParallel(parallel bool) Option {
	return func(o *options) {
		o.parallel = &parallel
	}
}

// WithParallelThresholds sets the cluster and set counts both of which
// must be exceeded before per-cluster decomposition runs in parallel.
func WithParallelThresholds(minClusters, minSets int) Option {
	return func(o *options) {
		o.parallelMinClusters = minClusters
		o.parallelMinSets = minSets
	}
}

// WithDeferredCompute constructs a Clustered without computing the cluster
// diagrams; call Compute explicitly.
func WithDeferredCompute() Option {
	return func(o *options) {
		o.deferCompute = true
	}
}

// WithOverlap enables overlapping cluster memberships: a set may belong to
// several clusters and is decomposed once per cluster.
func WithOverlap() Option {
	return func(o *options) {
		o.allowOverlap = true
	}
}

// WithMembershipThreshold sets the minimum pairwise similarity for a
// connection to count toward a secondary membership.
func WithMembershipThreshold(threshold float64) Option {
	return func(o *options) {
		o.membershipThreshold = threshold
	}
}

// WithMinBridgeStrength sets the minimum relative affinity for a secondary
// membership.
func WithMinBridgeStrength(strength float64) Option {
	return func(o *options) {
		o.minBridgeStrength = strength
	}
}

// WithBaseResolution sets the resolution of the primary Leiden pass used
// by overlapping clustering.
func WithBaseResolution(resolution float64) Option {
	return func(o *options) {
		o.baseResolution = resolution
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:              NoopLogger(),
		metrics:             NoopMetricsCollector{},
		method:              cluster.MethodLeiden,
		resolution:          1.0,
		maxIterations:       100,
		maxClusterSize:      30,
		minClusterSize:      3,
		overlapThreshold:    0.1,
		clusterThreshold:    30,
		parallelMinClusters: 4,
		parallelMinSets:     50,
		membershipThreshold: 0.3,
		minBridgeStrength:   0.15,
		baseResolution:      0.8,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
