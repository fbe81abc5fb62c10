// Package resource bounds the concurrency of decomposition fan-outs: a
// weighted semaphore caps in-flight tasks and an optional rate limiter
// paces task launches so a large run does not saturate the host.
package resource

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits for parallel decomposition.
type Config struct {
	// MaxWorkers is the maximum number of concurrent tasks.
	// If 0, defaults to GOMAXPROCS.
	MaxWorkers int64

	// TasksPerSec rate-limits task launches. If 0, unlimited.
	TasksPerSec float64
}

// Controller manages task concurrency for the parallel paths.
type Controller struct {
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// NewController creates a Controller from the given config.
func NewController(cfg Config) *Controller {
	workers := cfg.MaxWorkers
	if workers <= 0 {
		workers = int64(runtime.GOMAXPROCS(0))
	}

	c := &Controller{
		sem: semaphore.NewWeighted(workers),
	}
	if cfg.TasksPerSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.TasksPerSec), 1)
	}
	return c
}

// Default returns a Controller with GOMAXPROCS workers and no rate limit.
func Default() *Controller {
	return NewController(Config{})
}

// Acquire blocks until a task slot is available and the rate limiter (if
// configured) admits a launch. Callers must Release the slot when done.
func (c *Controller) Acquire(ctx context.Context) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	return c.sem.Acquire(ctx, 1)
}

// Release frees a slot taken by Acquire.
func (c *Controller) Release() {
	c.sem.Release(1)
}
