// Package refresh keeps the dashboard snapshots warm so the overview
// endpoints can serve from the cache instead of hitting postgres on
// every page load.
package refresh

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const defaultInterval = 5 * time.Minute

type SnapshotRefresher interface {
	RefreshSnapshots(ctx context.Context) error
}

type Job struct {
	refresher SnapshotRefresher
	interval  time.Duration
	logger    *zap.Logger
}

func New(refresher SnapshotRefresher, interval time.Duration, logger *zap.Logger) *Job {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Job{
		refresher: refresher,
		interval:  interval,
		logger:    logger,
	}
}

// Run recomputes the snapshots once.
func (j *Job) Run(ctx context.Context) error {
	if j.refresher == nil {
		return nil
	}
	if err := j.refresher.RefreshSnapshots(ctx); err != nil {
		return fmt.Errorf("refresh dashboard snapshots: %w", err)
	}
	return nil
}

// Loop refreshes immediately and then on every tick until the context
// is cancelled. A failed refresh is logged and retried on the next
// tick; the stale snapshot stays served until then.
func (j *Job) Loop(ctx context.Context) {
	if j.refresher == nil {
		return
	}

	if err := j.Run(ctx); err != nil {
		j.logger.Warn("snapshot refresh failed", zap.Error(err))
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("snapshot refresh failed", zap.Error(err))
			}
		}
	}
}
