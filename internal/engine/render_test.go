package engine_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"reelfx/internal/effects"
	"reelfx/internal/engine"
	"reelfx/internal/events"
	"reelfx/internal/faults"
	"reelfx/internal/render"
	"reelfx/internal/tuning"
)

func sequentialIDs() engine.Option {
	n := 0
	return engine.WithRequestIDs(func() string {
		n++
		return fmt.Sprintf("req-%d", n)
	})
}

func TestRenderFrameUsesEnabledActiveEffects(t *testing.T) {
	var jobs []render.Job
	backend := render.BackendFunc(func(_ context.Context, job render.Job) error {
		jobs = append(jobs, job)
		return nil
	})
	e, rec := newEngine(t, engine.WithBackend(backend), sequentialIDs())
	a, _ := e.CreateColorGrade(0, 2, effects.ColorGradePatch{})
	b, _ := e.CreateBlur(effects.BlurGaussian, 5, 1, 2, effects.BlurPatch{})
	off, _ := e.CreateBlur(effects.BlurMotion, 5, 0, 5, effects.BlurPatch{})
	_, _ = e.CreateColorGrade(3, 1, effects.ColorGradePatch{})
	disabled := false
	_, _ = e.ToggleEffect(off, &disabled)
	layerID, _ := e.CreateLayer("main", "")
	_ = e.AddEffectToLayer(layerID, b)

	result, err := e.RenderFrame(context.Background(), 45, 1.5, render.DefaultOptions())
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if result.EffectsApplied != 2 || result.EffectIDs[0] != a || result.EffectIDs[1] != b {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.RequestID != "req-1" || result.Cached {
		t.Fatalf("unexpected request id %q cached=%v", result.RequestID, result.Cached)
	}
	if len(result.Passes) != 1 || result.Passes[0].LayerID != layerID || result.Passes[0].EffectIDs[0] != b {
		t.Fatalf("unexpected passes %+v", result.Passes)
	}
	if len(jobs) != 1 || jobs[0].FrameNumber != 45 {
		t.Fatalf("backend jobs = %+v", jobs)
	}
	if rec.count(events.KindFrameRendered) != 1 {
		t.Fatal("expected frame-rendered event")
	}
}

func TestRenderFrameCacheAndInvalidation(t *testing.T) {
	calls := 0
	backend := render.BackendFunc(func(context.Context, render.Job) error {
		calls++
		return nil
	})
	e, rec := newEngine(t, engine.WithBackend(backend))
	id, _ := e.CreateBlur(effects.BlurGaussian, 5, 0, 2, effects.BlurPatch{})
	opts := render.DefaultOptions()

	if _, err := e.RenderFrame(context.Background(), 0, 0.5, opts); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	cached, err := e.RenderFrame(context.Background(), 0, 0.5, opts)
	if err != nil || !cached.Cached {
		t.Fatalf("second render cached=%v err=%v", cached.Cached, err)
	}
	if calls != 1 || rec.count(events.KindFrameRendered) != 1 {
		t.Fatalf("backend calls=%d frame events=%d, want 1/1", calls, rec.count(events.KindFrameRendered))
	}

	amount := 9.0
	if err := e.UpdateBlur(id, effects.BlurPatch{Amount: &amount}); err != nil {
		t.Fatalf("UpdateBlur: %v", err)
	}
	again, _ := e.RenderFrame(context.Background(), 0, 0.5, opts)
	if again.Cached || calls != 2 {
		t.Fatalf("mutation did not invalidate the cached frame (cached=%v calls=%d)", again.Cached, calls)
	}

	// An unrelated effect outside the frame window keeps the frame cached.
	_, _ = e.CreateColorGrade(10, 1, effects.ColorGradePatch{})
	if res, _ := e.RenderFrame(context.Background(), 0, 0.5, opts); !res.Cached {
		t.Fatal("unrelated mutation evicted the frame")
	}

	if n := e.ClearRenderCache(); n != 1 {
		t.Fatalf("ClearRenderCache = %d, want 1", n)
	}
	if rec.count(events.KindCacheCleared) != 1 {
		t.Fatal("expected cache-cleared event")
	}
}

func TestRenderStatsTrackLastRender(t *testing.T) {
	e, _ := newEngine(t, engine.WithBackend(render.SimulatedBackend{PerEffect: 2 * time.Millisecond}))
	_, _ = e.CreateBlur(effects.BlurGaussian, 5, 0, 10, effects.BlurPatch{})
	opts := render.DefaultOptions()
	if _, err := e.RenderFrame(context.Background(), 0, 0, opts); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	stats := e.GetStats()
	if stats.RenderTime <= 0 || stats.FramesRendered != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	last := stats.RenderTime
	if _, err := e.RenderFrame(context.Background(), 0, 0, opts); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	stats = e.GetStats()
	if stats.RenderTime != last || stats.CacheHits != 1 {
		t.Fatalf("cache hit changed render time or was not counted: %+v", stats)
	}
}

func TestRenderFrameValidationAndCancellation(t *testing.T) {
	e, rec := newEngine(t, engine.WithBackend(render.SimulatedBackend{PerEffect: time.Second}))
	_, _ = e.CreateBlur(effects.BlurGaussian, 5, 0, 10, effects.BlurPatch{})

	bad := render.DefaultOptions()
	bad.Quality = "cinema"
	if _, err := e.RenderFrame(context.Background(), 0, 0, bad); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := e.RenderFrame(context.Background(), 0, -1, render.DefaultOptions()); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error for negative time, got %v", err)
	}
	if rec.count(events.KindError) != 2 {
		t.Fatalf("error events = %d, want 2", rec.count(events.KindError))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if _, err := e.RenderFrame(ctx, 1, 0, render.DefaultOptions()); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if e.GetStats().Cache.Entries != 0 {
		t.Fatal("cancelled render was cached")
	}
}

func TestRenderTimeoutFromConfig(t *testing.T) {
	cfg := tuning.Default()
	cfg.RenderTimeout = 5 * time.Millisecond
	e, _ := newEngine(t, engine.WithConfig(cfg), engine.WithBackend(render.SimulatedBackend{PerEffect: time.Second}))
	_, _ = e.CreateBlur(effects.BlurGaussian, 5, 0, 10, effects.BlurPatch{})
	if _, err := e.RenderFrame(context.Background(), 0, 0, render.DefaultOptions()); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected render timeout, got %v", err)
	}
}

func TestRenderFrameConcurrentWithConfigUpdates(t *testing.T) {
	e, _ := newEngine(t)
	if _, err := e.CreateColorGrade(0, 10, effects.ColorGradePatch{}); err != nil {
		t.Fatalf("create: %v", err)
	}
	opts := render.DefaultOptions()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if _, err := e.RenderFrame(context.Background(), i, float64(i%10), opts); err != nil {
				t.Errorf("RenderFrame %d: %v", i, err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			d := time.Duration(i%5+1) * time.Second
			if _, err := e.UpdateConfig(tuning.Patch{RenderTimeout: &d}); err != nil {
				t.Errorf("UpdateConfig %d: %v", i, err)
				return
			}
		}
	}()
	wg.Wait()

	if got := e.GetConfig().RenderTimeout; got != 5*time.Second {
		t.Fatalf("render timeout = %s, want 5s", got)
	}
	if stats := e.GetStats(); stats.FramesRendered+stats.CacheHits != 500 {
		t.Fatalf("frames %d + hits %d, want 500", stats.FramesRendered, stats.CacheHits)
	}
}

func TestLayerChangeClearsCache(t *testing.T) {
	e, _ := newEngine(t)
	_, _ = e.CreateBlur(effects.BlurGaussian, 5, 0, 10, effects.BlurPatch{})
	if _, err := e.RenderFrame(context.Background(), 0, 0, render.DefaultOptions()); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if _, err := e.CreateLayer("late", ""); err != nil {
		t.Fatalf("CreateLayer: %v", err)
	}
	if e.GetStats().Cache.Entries != 0 {
		t.Fatal("layer change kept stale frames")
	}
}
