package areq

import (
	"fmt"

	"github.com/panjf2000/ants/v2"
)

// Pool executes blocking closures away from the submitting goroutine. The
// facade consumes this contract and never runs workers of its own; whether a
// closure waits, runs, or is rejected is entirely the pool's business.
// *ants.Pool satisfies Pool.
type Pool interface {
	Submit(task func()) error
}

var _ Pool = (*ants.Pool)(nil)

// NewWorkerPool creates a standalone worker pool suitable for sharing between
// clients through Config.Pool. size caps concurrently running closures; zero
// or negative means unbounded, growing and shrinking with demand. Submission
// to a saturated bounded pool is rejected rather than blocking the submitter.
// The caller owns the pool and must Release it when done.
func NewWorkerPool(size int, logger Logger) (*ants.Pool, error) {
	if size <= 0 {
		size = -1
	}
	if logger == nil {
		logger = &NoopLogger{}
	}

	p, err := ants.NewPool(size, ants.WithNonblocking(true), ants.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}

	return p, nil
}
