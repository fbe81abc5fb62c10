package eule

import (
	"context"
	"time"

	"github.com/trouchet/eule/internal/decompose"
	"github.com/trouchet/eule/set"
)

// EulerParallel computes the same diagram as Euler, fanned out one worker
// per top-level set. Every worker receives a pristine copy of the family;
// a single worker failure aborts the whole call with no partial result and
// no fallback to the sequential path.
func EulerParallel[T comparable](ctx context.Context, sets map[string][]T, optFns ...Option) (Diagram[T], error) {
	o := applyOptions(optFns)
	start := time.Now()

	fam := adapt(ctx, sets, o)
	regions, err := decompose.Parallel(ctx, fam, o.controller)
	if err != nil {
		o.logger.LogParallelDecompose(ctx, len(sets), 0, time.Since(start), err)
		o.metrics.RecordParallelDecompose(len(sets), 0, time.Since(start), err)
		return nil, err
	}

	// Workers that share a region compute identical elements for it, so
	// collapsing duplicates is a plain overwrite.
	out := make(Diagram[T])
	for _, region := range regions {
		out[region.Key] = set.Elements(region.Elements)
	}

	o.logger.LogParallelDecompose(ctx, len(sets), len(out), time.Since(start), nil)
	o.metrics.RecordParallelDecompose(len(sets), len(out), time.Since(start), nil)
	return out, nil
}
