package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/lectio/internal/guideapi"
	"github.com/five82/lectio/internal/state"
)

const (
	defaultPollInterval = 15 * time.Second
	maxBackoff          = 2 * time.Minute
)

// HealthProber is the backend call the poller makes.
type HealthProber interface {
	Health(ctx context.Context) (guideapi.HealthResponse, error)
}

// StartPoller launches a background goroutine that probes backend health and
// records the result in store. Consecutive failures back off exponentially.
// The returned channel closes once the goroutine has exited after ctx is
// cancelled.
func StartPoller(ctx context.Context, store *state.Store, prober HealthProber, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, store, prober, logger)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
	return done
}

func refresh(ctx context.Context, store *state.Store, prober HealthProber, logger *zap.Logger) {
	start := time.Now()
	health, err := prober.Health(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		store.Update(nil, 0, err)
		logger.Warn("health probe failed", zap.Error(err))
		return
	}
	store.Update(&health, time.Since(start), nil)
	if !health.Healthy() {
		logger.Warn("backend reports unhealthy", zap.String("status", health.Status))
	}
}

// calculateBackoff doubles the interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	backoff := interval
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
