// Package timer provides scheduled execution built on a runtime.Provider's
// SleepFor primitive: one-shot delays, absolute-time delays, and recurring
// intervals with no drift correction (each iteration simply sleeps the full
// interval again), matching the fixed lower-bound spacing the original
// timer manager guarantees.
package timer

import (
	"context"
	"time"

	"github.com/webcraft-project/async-core/runtime"
)

// Service schedules delayed and recurring work atop a Provider.
type Service struct {
	provider runtime.Provider
}

// New creates a Service backed by p.
func New(p runtime.Provider) *Service {
	return &Service{provider: p}
}

// SleepFor blocks until d has elapsed or ctx is done.
func (s *Service) SleepFor(ctx context.Context, d time.Duration) error {
	cancelled, err := s.provider.SleepFor(ctx, d, nil)
	if err != nil {
		return err
	}
	if cancelled {
		//nolint:wrapcheck
		return context.Cause(ctx)
	}

	return nil
}

// SleepUntil blocks until t has arrived or ctx is done.
func (s *Service) SleepUntil(ctx context.Context, t time.Time) error {
	return s.SleepFor(ctx, time.Until(t))
}

// SetTimeout schedules fn to run once after d. The returned CancelFunc
// cancels both the pending timer and, if already running, fn itself via
// context propagation.
func (s *Service) SetTimeout(fn func(context.Context) error, d time.Duration) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := s.SleepFor(ctx, d); err != nil {
			return
		}
		_ = fn(ctx)
	}()

	return cancel
}

// SetInterval reschedules fn every d, starting after the first d has
// elapsed, with no drift correction: each iteration's wait is a full d
// regardless of how long the previous iteration took. The returned
// CancelFunc stops future iterations and cancels one currently running.
func (s *Service) SetInterval(fn func(context.Context) error, d time.Duration) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		for {
			if err := s.SleepFor(ctx, d); err != nil {
				return
			}
			if err := fn(ctx); err != nil {
				return
			}
		}
	}()

	return cancel
}
