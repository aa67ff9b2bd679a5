package engine

import (
	"context"
	"errors"
	"fmt"
	"math"

	"reelfx/internal/effects"
	"reelfx/internal/events"
	"reelfx/internal/faults"
	"reelfx/internal/logging"
	"reelfx/internal/render"
	"reelfx/internal/reqctx"
)

// RenderFrame resolves the enabled effects active during the frame starting
// at t and returns the frame descriptor, from the cache when possible.
// The call blocks on the render backend and honours ctx and the configured
// render timeout.
func (e *Engine) RenderFrame(ctx context.Context, frameNumber int, t float64, opts render.Options) (render.Result, error) {
	const op = "render frame"
	if ctx == nil {
		ctx = context.Background()
	}
	requestID := e.newID()
	ctx = reqctx.WithRequestID(ctx, requestID)
	ctx = reqctx.WithFrame(ctx, frameNumber)
	logger := logging.WithContext(ctx, e.logger)

	if frameNumber < 0 || t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		err := faults.Wrap(faults.ErrValidation, op, fmt.Sprintf("frame %d at %gs is out of range", frameNumber, t), nil)
		e.publishFailure(op, err)
		return render.Result{}, err
	}

	req := render.Request{RequestID: requestID, FrameNumber: frameNumber, Time: t, Options: opts}
	result, err := e.pipeline.Render(ctx, req, e.plan)
	if err != nil {
		switch {
		case errors.Is(err, faults.ErrValidation):
			e.publishFailure(op, err)
		case errors.Is(err, context.Canceled):
			logger.Debug("frame render cancelled")
		default:
			logging.ErrorWithContext(logger, "frame render failed", "render_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the render backend or raise render_timeout"),
			)
			e.publishFailure(op, err)
		}
		return render.Result{}, err
	}

	e.statsMu.Lock()
	if result.Cached {
		e.cacheHits++
	} else {
		e.lastRenderTime = result.RenderTime
		e.framesRendered++
	}
	e.statsMu.Unlock()

	if !result.Cached {
		e.bus.Publish(events.FrameRendered{
			FrameNumber:    result.FrameNumber,
			Time:           result.Time,
			EffectsApplied: result.EffectsApplied,
			RenderTime:     result.RenderTime,
			RequestID:      result.RequestID,
		})
	}
	logger.Debug("frame rendered",
		logging.Int("effects_applied", result.EffectsApplied),
		logging.Bool("cached", result.Cached),
		logging.Duration("render_time", result.RenderTime),
	)
	return result, nil
}

func (e *Engine) publishFailure(operation string, err error) {
	e.bus.Publish(events.Error{Code: string(faults.CodeOf(err)), Operation: operation, Message: err.Error()})
}

// plan builds the backend job for a cache miss: the enabled effects active
// in the frame window, plus one pass per enabled layer holding any of them.
func (e *Engine) plan(req render.Request) render.Job {
	start, end := req.Options.FrameWindow(req.Time)
	candidates := e.registry.InRange(start, end)
	active := make([]effects.Effect, 0, len(candidates))
	activeIDs := make(map[string]struct{}, len(candidates))
	for _, ef := range candidates {
		if ef.Enabled {
			active = append(active, ef)
			activeIDs[ef.ID] = struct{}{}
		}
	}

	var passes []render.Pass
	for _, layer := range e.layers.List() {
		if !layer.Enabled {
			continue
		}
		var members []string
		for _, id := range layer.EffectIDs {
			if _, ok := activeIDs[id]; ok {
				members = append(members, id)
			}
		}
		if len(members) == 0 {
			continue
		}
		passes = append(passes, render.Pass{
			LayerID:   layer.ID,
			LayerName: layer.Name,
			BlendMode: string(layer.BlendMode),
			Opacity:   layer.Opacity,
			EffectIDs: members,
		})
	}

	return render.Job{
		RequestID:   req.RequestID,
		FrameNumber: req.FrameNumber,
		Time:        req.Time,
		Options:     req.Options,
		Effects:     active,
		Passes:      passes,
	}
}
