package cleanup

import (
	"context"
	"log/slog"
	"time"
)

// Pruner deletes challenges older than a given age
type Pruner interface {
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

// Cleaner periodically removes challenges past the retention period
type Cleaner struct {
	pruner    Pruner
	interval  time.Duration
	retention time.Duration
}

// NewCleaner creates a new retention worker
func NewCleaner(pruner Pruner, interval, retention time.Duration) *Cleaner {
	if interval <= 0 {
		interval = time.Hour
	}

	return &Cleaner{
		pruner:    pruner,
		interval:  interval,
		retention: retention,
	}
}

// Start begins the worker in a goroutine. A zero retention keeps everything
// and the worker does not start.
func (c *Cleaner) Start(ctx context.Context) {
	if c.retention <= 0 {
		slog.Info("challenge retention disabled")
		return
	}
	go c.run(ctx)
}

func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval, "retention", c.retention)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

func (c *Cleaner) cleanup(ctx context.Context) {
	deleted, err := c.pruner.DeleteOlderThan(ctx, c.retention)
	if err != nil {
		slog.Error("failed to delete expired challenges", "error", err)
		return
	}

	if deleted == 0 {
		slog.Debug("no expired challenges found")
		return
	}

	slog.Info("expired challenges deleted", "count", deleted)
}
