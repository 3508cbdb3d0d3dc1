package review

import (
	"context"
	"log/slog"
	"time"

	"docshelf/pkg/requestcontext"
)

// Sweeper periodically persists deadline expiry. Lazy reads keep the system
// correct without it; the sweep only stops stale pending rows from lingering
// and returns documents of abandoned reviews to the assignment pool.
type Sweeper struct {
	svc      *Service
	interval time.Duration
	logger   *slog.Logger
}

func NewSweeper(svc *Service, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{svc: svc, interval: interval, logger: logger}
}

// Run sweeps on the configured interval until the context ends.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// One pinned clock per batch keeps every expiry decision in
			// this pass consistent with lazy reads at the same instant.
			swept, err := s.svc.Sweep(requestcontext.WithTime(ctx, time.Now().UTC()))
			if err != nil {
				s.logger.ErrorContext(ctx, "review sweep failed", "error", err)
				continue
			}
			if swept > 0 {
				s.logger.InfoContext(ctx, "review sweep completed", "expired", swept)
			}
		}
	}
}
