package eule

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordDecompose is called after each sequential decomposition.
	RecordDecompose(sets, regions int, duration time.Duration)

	// RecordParallelDecompose is called after each parallel decomposition.
	// err is nil on success.
	RecordParallelDecompose(sets, regions int, duration time.Duration, err error)

	// RecordClustering is called after each cluster assignment.
	RecordClustering(method string, clusters int, duration time.Duration)

	// RecordMerge is called after each global-diagram merge. collisions is
	// the number of region keys produced by more than one cluster.
	RecordMerge(regions, collisions int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDecompose(int, int, time.Duration)                {}
func (NoopMetricsCollector) RecordParallelDecompose(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordClustering(string, int, time.Duration)            {}
func (NoopMetricsCollector) RecordMerge(int, int, time.Duration)                    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	DecomposeCount         atomic.Int64
	DecomposeRegions       atomic.Int64
	DecomposeTotalNanos    atomic.Int64
	ParallelCount          atomic.Int64
	ParallelErrors         atomic.Int64
	ParallelTotalNanos     atomic.Int64
	ClusteringCount        atomic.Int64
	ClusteringClusters     atomic.Int64
	ClusteringTotalNanos   atomic.Int64
	MergeCount             atomic.Int64
	MergeCollisions        atomic.Int64
	MergeTotalNanos        atomic.Int64
}

// RecordDecompose implements MetricsCollector.
func (m *BasicMetricsCollector) RecordDecompose(sets, regions int, duration time.Duration) {
	m.DecomposeCount.Add(1)
	m.DecomposeRegions.Add(int64(regions))
	m.DecomposeTotalNanos.Add(duration.Nanoseconds())
}

// RecordParallelDecompose implements MetricsCollector.
func (m *BasicMetricsCollector) RecordParallelDecompose(sets, regions int, duration time.Duration, err error) {
	m.ParallelCount.Add(1)
	if err != nil {
		m.ParallelErrors.Add(1)
		return
	}
	m.ParallelTotalNanos.Add(duration.Nanoseconds())
}

// RecordClustering implements MetricsCollector.
func (m *BasicMetricsCollector) RecordClustering(method string, clusters int, duration time.Duration) {
	m.ClusteringCount.Add(1)
	m.ClusteringClusters.Add(int64(clusters))
	m.ClusteringTotalNanos.Add(duration.Nanoseconds())
}

// RecordMerge implements MetricsCollector.
func (m *BasicMetricsCollector) RecordMerge(regions, collisions int, duration time.Duration) {
	m.MergeCount.Add(1)
	m.MergeCollisions.Add(int64(collisions))
	m.MergeTotalNanos.Add(duration.Nanoseconds())
}

// MetricsStats is a point-in-time snapshot of a BasicMetricsCollector.
type MetricsStats struct {
	DecomposeCount     int64
	DecomposeRegions   int64
	DecomposeAvgNanos  int64
	ParallelCount      int64
	ParallelErrors     int64
	ClusteringCount    int64
	ClusteringClusters int64
	MergeCount         int64
	MergeCollisions    int64
}

// GetStats returns a snapshot of the collected metrics.
func (m *BasicMetricsCollector) GetStats() MetricsStats {
	stats := MetricsStats{
		DecomposeCount:     m.DecomposeCount.Load(),
		DecomposeRegions:   m.DecomposeRegions.Load(),
		ParallelCount:      m.ParallelCount.Load(),
		ParallelErrors:     m.ParallelErrors.Load(),
		ClusteringCount:    m.ClusteringCount.Load(),
		ClusteringClusters: m.ClusteringClusters.Load(),
		MergeCount:         m.MergeCount.Load(),
		MergeCollisions:    m.MergeCollisions.Load(),
	}
	if stats.DecomposeCount > 0 {
		stats.DecomposeAvgNanos = m.DecomposeTotalNanos.Load() / stats.DecomposeCount
	}
	return stats
}
