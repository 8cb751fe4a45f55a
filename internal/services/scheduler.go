package service

import (
	"context"
	"log/slog"
	"time"
)

// Rotator is the part of the engine the scheduler drives.
type Rotator interface {
	Rotate(ctx context.Context, batchSize int) (int, error)
}

// Scheduler runs a rotation immediately and then every period until the
// context is done. A non-positive period disables it.
type Scheduler struct {
	rotator   Rotator
	period    time.Duration
	batchSize int
}

func NewScheduler(rotator Rotator, period time.Duration, batchSize int) *Scheduler {
	return &Scheduler{rotator: rotator, period: period, batchSize: batchSize}
}

func (s *Scheduler) Run(ctx context.Context) {
	if s.period <= 0 {
		slog.Info("black market rotation disabled")
		return
	}

	s.tick(ctx)
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("black market scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// Errors are already logged by Rotate; one failed run does not stop the loop.
func (s *Scheduler) tick(ctx context.Context) {
	if _, err := s.rotator.Rotate(ctx, s.batchSize); err != nil && ctx.Err() == nil {
		slog.Warn("scheduled rotation failed", "error", err)
	}
}
