// Package worker runs the periodic background jobs.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// runTimeout bounds a single pass so a stuck query cannot stall the loop.
const runTimeout = time.Minute

// Stopper is the job the AutoStop loop drives.
type Stopper interface {
	Run(ctx context.Context, now time.Time) (int, error)
}

// AutoStop periodically stops live trips that have ended.
type AutoStop struct {
	job      Stopper
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewAutoStop runs job every interval.
func NewAutoStop(job Stopper, interval time.Duration, logger *zap.Logger) *AutoStop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutoStop{job: job, interval: interval, logger: logger, now: time.Now}
}

// Run performs one pass immediately and then one per interval until ctx is
// cancelled. A failed pass is logged and retried on the next tick.
func (a *AutoStop) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.logger.Info("auto-stop worker started", zap.Duration("interval", a.interval))
	a.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("auto-stop worker stopped")
			return nil
		case <-ticker.C:
			a.tick(ctx)
		}
	}
}

func (a *AutoStop) tick(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	n, err := a.job.Run(ctx, a.now())
	if err != nil {
		a.logger.Error("auto-stop pass failed", zap.Error(err))
		return
	}
	if n > 0 {
		a.logger.Info("auto-stop pass finished", zap.Int("stopped", n))
	}
}
