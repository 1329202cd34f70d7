// Package coordinator schedules background reconciliation runs.
package coordinator

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	pkgsync "github.com/fridgeboard/calendar-server/internal/sync"
)

// Trigger runs one reconciliation and records its outcome. Satisfied by
// the event service so scheduled and API-triggered runs share the same
// path, including the single-writer guard and run history.
type Trigger interface {
	TriggerSync(ctx context.Context, opts pkgsync.Options) (*pkgsync.Result, error)
}

// Coordinator manages the scheduled reconciliation loop.
type Coordinator interface {
	// Start begins the loop and blocks until the context is cancelled.
	Start(ctx context.Context) error

	// Stop gracefully stops the loop and waits for it to finish.
	Stop() error
}

type defaultCoordinator struct {
	trigger  Trigger
	interval time.Duration
	opts     pkgsync.Options

	cancelFunc context.CancelFunc
	done       chan struct{}
}

// New creates a coordinator that triggers a run every interval, with
// jitter so multiple instances sharing a database don't tick together.
func New(trigger Trigger, interval time.Duration, opts pkgsync.Options) Coordinator {
	return &defaultCoordinator{
		trigger:  trigger,
		interval: interval,
		opts:     opts,
		done:     make(chan struct{}),
	}
}

// jitteredInterval applies a random offset of up to ±10% of the base
// interval.
func (c *defaultCoordinator) jitteredInterval() time.Duration {
	jitter := c.interval / 10
	if jitter <= 0 {
		return c.interval
	}
	//nolint:gosec // G404: non-cryptographic randomness is fine for tick jitter
	offset := time.Duration(rand.Int64N(int64(2*jitter))) - jitter
	return c.interval + offset
}

// Start runs an initial reconciliation, then ticks until cancelled.
func (c *defaultCoordinator) Start(ctx context.Context) error {
	coordCtx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel
	defer func() {
		close(c.done)
		slog.Info("Sync coordinator shut down")
	}()

	interval := c.jitteredInterval()
	slog.Info("Starting sync coordinator",
		"base_interval", c.interval,
		"actual_interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.runOnce(coordCtx)

	for {
		select {
		case <-ticker.C:
			c.runOnce(coordCtx)
			// Fresh jitter each tick.
			ticker.Reset(c.jitteredInterval())
		case <-coordCtx.Done():
			slog.Info("Sync coordinator stopping")
			return nil
		}
	}
}

// Stop cancels the loop and waits for it to exit.
func (c *defaultCoordinator) Stop() error {
	if c.cancelFunc != nil {
		c.cancelFunc()
		<-c.done
	}
	return nil
}

func (c *defaultCoordinator) runOnce(ctx context.Context) {
	start := time.Now()
	result, err := c.trigger.TriggerSync(ctx, c.opts)
	if err != nil {
		// An overlapping manual run is routine, everything else is not.
		if errors.Is(err, pkgsync.ErrSyncInProgress) {
			slog.Debug("Skipping scheduled sync, another run is in progress")
			return
		}
		slog.Error("Scheduled sync failed", "error", err)
		return
	}

	slog.Info("Scheduled sync completed",
		"pulled", result.Pulled,
		"updated", result.Updated,
		"pushed", result.Pushed,
		"deleted", result.Deleted,
		"errors", len(result.Errors),
		"duration", time.Since(start))
}
