package render

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"reelfx/internal/faults"
)

// Request asks for one frame.
type Request struct {
	RequestID   string
	FrameNumber int
	Time        float64
	Options     Options
}

// Planner builds the backend job for a request that missed the cache.
type Planner func(req Request) Job

// Pipeline resolves frames through the cache and, on a miss, the backend.
type Pipeline struct {
	cache   *Cache
	backend Backend
	timeout atomic.Int64 // time.Duration; renders run outside the engine lock
	now     func() time.Time
}

// NewPipeline wires a cache and backend. A nil backend is replaced by NopBackend.
func NewPipeline(cache *Cache, backend Backend, timeout time.Duration) *Pipeline {
	if backend == nil {
		backend = NopBackend{}
	}
	if cache == nil {
		cache = NewCache(0)
	}
	p := &Pipeline{cache: cache, backend: backend, now: time.Now}
	p.timeout.Store(int64(timeout))
	return p
}

// Cache exposes the frame cache.
func (p *Pipeline) Cache() *Cache {
	return p.cache
}

// SetTimeout changes the per-frame render deadline. Zero disables it.
func (p *Pipeline) SetTimeout(timeout time.Duration) {
	p.timeout.Store(int64(timeout))
}

// Timeout reports the current per-frame render deadline.
func (p *Pipeline) Timeout() time.Duration {
	return time.Duration(p.timeout.Load())
}

// Render returns the cached result for req or renders it. Cancelled or
// failed renders are not cached, and neither is a frame whose inputs were
// invalidated while it rendered.
func (p *Pipeline) Render(ctx context.Context, req Request, plan Planner) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req.Options = req.Options.Normalize()
	if err := req.Options.Validate(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	key := KeyFor(req.FrameNumber, req.Time, req.Options)
	if cached, ok := p.cache.Get(key); ok {
		cached.Cached = true
		cached.RequestID = req.RequestID
		return cached, nil
	}

	epoch := p.cache.Epoch()
	job := plan(req)
	timeout := p.Timeout()
	renderCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	started := p.now()
	if err := p.backend.Render(renderCtx, job); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return Result{}, fmt.Errorf("render frame %d: exceeded %s: %w", req.FrameNumber, timeout, err)
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, faults.Wrap(faults.ErrBackend, "render frame", fmt.Sprintf("frame %d", req.FrameNumber), err)
	}
	elapsed := p.now().Sub(started)

	ids := make([]string, 0, len(job.Effects))
	for _, e := range job.Effects {
		ids = append(ids, e.ID)
	}
	result := Result{
		RequestID:      req.RequestID,
		FrameNumber:    req.FrameNumber,
		Time:           req.Time,
		EffectsApplied: len(job.Effects),
		EffectIDs:      ids,
		Passes:         job.Passes,
		Quality:        req.Options.Quality,
		Resolution:     req.Options.Resolution,
		RenderTime:     elapsed,
	}
	start, end := req.Options.FrameWindow(req.Time)
	p.cache.PutAt(epoch, key, start, end, result)
	return result.Clone(), nil
}
