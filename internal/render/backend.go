package render

import (
	"context"
	"time"
)

// Backend performs the pixel work for a frame. Implementations live outside
// the engine; they must honour ctx cancellation.
type Backend interface {
	Render(ctx context.Context, job Job) error
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(ctx context.Context, job Job) error

// Render calls f.
func (f BackendFunc) Render(ctx context.Context, job Job) error {
	return f(ctx, job)
}

// NopBackend accepts every job without doing pixel work.
type NopBackend struct{}

// Render only checks for cancellation.
func (NopBackend) Render(ctx context.Context, _ Job) error {
	return ctx.Err()
}

// SimulatedBackend sleeps for a cost derived from the job, standing in for a
// GPU renderer in previews and tests.
type SimulatedBackend struct {
	PerEffect time.Duration
	PerPass   time.Duration
}

// Render waits for the simulated cost or until ctx ends.
func (b SimulatedBackend) Render(ctx context.Context, job Job) error {
	cost := time.Duration(len(job.Effects))*b.PerEffect + time.Duration(len(job.Passes))*b.PerPass
	if job.Options.Quality == QualityFinal {
		cost *= 2
	}
	if cost <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(cost)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
