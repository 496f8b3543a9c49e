package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ExpiredTokenSweeper drops expired entries from the validity set.
type ExpiredTokenSweeper interface {
	SweepExpired() int
}

// StartTokenSweeper runs the sweeper every interval until ctx is done. The
// returned channel is closed once the loop has exited.
func StartTokenSweeper(ctx context.Context, tokens ExpiredTokenSweeper, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	if tokens == nil || interval <= 0 {
		close(done)
		return done
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := tokens.SweepExpired(); n > 0 {
					logger.Info("swept expired tokens", zap.Int("count", n))
				}
			}
		}
	}()
	return done
}
