package engine

import (
	"fmt"
	"math"

	"reelfx/internal/activity"
	"reelfx/internal/effects"
	"reelfx/internal/events"
	"reelfx/internal/faults"
	"reelfx/internal/logging"
)

// CreateParticleEffect registers a particle system. Overrides are applied on
// top of the per-type defaults.
func (e *Engine) CreateParticleEffect(t effects.ParticleType, start, duration float64, overrides effects.ParticlePatch) (string, error) {
	return e.create("create particle effect", effects.NewParticle(t), start, duration, overrides)
}

// CreateTransition registers a transition.
func (e *Engine) CreateTransition(t effects.TransitionType, start, duration float64, overrides effects.TransitionPatch) (string, error) {
	return e.create("create transition", effects.NewTransition(t), start, duration, overrides)
}

// CreateTracking registers a motion tracking effect with an empty path.
func (e *Engine) CreateTracking(t effects.TrackingType, start, duration float64, overrides effects.TrackingPatch) (string, error) {
	return e.create("create tracking", effects.NewTracking(t), start, duration, overrides)
}

// CreateChromaKey registers a keyer for keyColor.
func (e *Engine) CreateChromaKey(keyColor string, start, duration float64, overrides effects.ChromaKeyPatch) (string, error) {
	return e.create("create chroma key", effects.NewChromaKey(keyColor), start, duration, overrides)
}

// CreateColorGrade registers a neutral colour grade.
func (e *Engine) CreateColorGrade(start, duration float64, overrides effects.ColorGradePatch) (string, error) {
	return e.create("create color grade", effects.NewColorGrade(), start, duration, overrides)
}

// CreateBlur registers a blur of the given strength.
func (e *Engine) CreateBlur(t effects.BlurType, amount, start, duration float64, overrides effects.BlurPatch) (string, error) {
	return e.create("create blur", effects.NewBlur(t, amount), start, duration, overrides)
}

// CreateDistortion registers a geometric distortion.
func (e *Engine) CreateDistortion(t effects.DistortionType, start, duration float64, overrides effects.DistortionPatch) (string, error) {
	return e.create("create distortion", effects.NewDistortion(t), start, duration, overrides)
}

// CreateTimeEffect registers a time remap running at speed.
func (e *Engine) CreateTimeEffect(t effects.TimeType, speed, start, duration float64, overrides effects.TimePatch) (string, error) {
	return e.create("create time effect", effects.NewTimeRemap(t, speed), start, duration, overrides)
}

func (e *Engine) create(operation string, params effects.Params, start, duration float64, overrides effects.Patch) (string, error) {
	var id string
	err := e.run(operation, "", func(b *batch) error {
		if err := effects.ValidateTiming(start, duration); err != nil {
			return err
		}
		draft := effects.New(params, start, duration)
		if err := effects.ApplyPatch(&draft, overrides); err != nil {
			return err
		}
		stored, err := e.insertLocked(b, draft)
		if err != nil {
			return err
		}
		id = stored.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// insertLocked registers draft, invalidates the frames it covers and queues
// the creation event and activity entry. Callers hold e.mu.
func (e *Engine) insertLocked(b *batch, draft effects.Effect) (effects.Effect, error) {
	stored, err := e.registry.Insert(draft)
	if err != nil {
		return effects.Effect{}, err
	}
	e.pipeline.Cache().InvalidateRange(stored.Start, stored.End())
	e.record(b, activity.TypeCreated, stored.ID, fmt.Sprintf("created %s", stored.Name), map[string]any{"kind": string(stored.Kind())})
	b.emit(events.EffectCreated{Effect: stored})
	e.logger.Debug("effect created",
		logging.EffectID(stored.ID),
		logging.Seconds("start", stored.Start),
		logging.Seconds("duration", stored.Duration),
	)
	return stored, nil
}

// GetEffect returns a copy of the effect.
func (e *Engine) GetEffect(id string) (effects.Effect, bool) {
	return e.registry.Get(id)
}

// GetAllEffects returns copies of every effect in creation order.
func (e *Engine) GetAllEffects() []effects.Effect {
	return e.registry.All()
}

// GetEffectsByType returns the effects of one kind in creation order.
func (e *Engine) GetEffectsByType(kind effects.Kind) []effects.Effect {
	return e.registry.ByKind(kind)
}

// GetEffectsInTimeRange returns the effects whose interval overlaps [a, b),
// ordered by start time.
func (e *Engine) GetEffectsInTimeRange(a, b float64) []effects.Effect {
	return e.registry.InRange(a, b)
}

// UpdateParticleEffect applies a partial change to a particle effect.
func (e *Engine) UpdateParticleEffect(id string, p effects.ParticlePatch) error {
	return e.update("update particle effect", id, p)
}

// UpdateTransition applies a partial change to a transition.
func (e *Engine) UpdateTransition(id string, p effects.TransitionPatch) error {
	return e.update("update transition", id, p)
}

// UpdateTracking applies a partial change to a tracking effect.
func (e *Engine) UpdateTracking(id string, p effects.TrackingPatch) error {
	return e.update("update tracking", id, p)
}

// UpdateChromaKey applies a partial change to a chroma key.
func (e *Engine) UpdateChromaKey(id string, p effects.ChromaKeyPatch) error {
	return e.update("update chroma key", id, p)
}

// UpdateColorGrade applies a partial change to a colour grade.
func (e *Engine) UpdateColorGrade(id string, p effects.ColorGradePatch) error {
	return e.update("update color grade", id, p)
}

// UpdateBlur applies a partial change to a blur.
func (e *Engine) UpdateBlur(id string, p effects.BlurPatch) error {
	return e.update("update blur", id, p)
}

// UpdateDistortion applies a partial change to a distortion.
func (e *Engine) UpdateDistortion(id string, p effects.DistortionPatch) error {
	return e.update("update distortion", id, p)
}

// UpdateTimeEffect applies a partial change to a time remap.
func (e *Engine) UpdateTimeEffect(id string, p effects.TimePatch) error {
	return e.update("update time effect", id, p)
}

// UpdateEffect changes the shared fields of an effect of any kind.
func (e *Engine) UpdateEffect(id string, p effects.CommonPatch) error {
	current, ok := e.registry.Get(id)
	if !ok {
		return faults.NotFound("update effect", "effect", id)
	}
	return e.update("update effect", id, effects.CommonOnly{Target: current.Kind(), Common: p})
}

func (e *Engine) update(operation, id string, p effects.Patch) error {
	return e.run(operation, id, func(b *batch) error {
		_, err := e.mutateLocked(b, id, func(ef *effects.Effect) error {
			return effects.ApplyPatch(ef, p)
		})
		return err
	})
}

// mutateLocked runs mutate against the stored effect, invalidates the frames
// covered before and after the change and queues the update event.
// Callers hold e.mu.
func (e *Engine) mutateLocked(b *batch, id string, mutate func(*effects.Effect) error) (effects.Effect, error) {
	before, after, err := e.registry.Update(id, mutate)
	if err != nil {
		return effects.Effect{}, err
	}
	e.invalidateEffect(before, after)
	e.record(b, activity.TypeUpdated, id, fmt.Sprintf("updated %s", after.Name), nil)
	b.emit(events.EffectUpdated{Effect: after})
	return after, nil
}

func (e *Engine) invalidateEffect(before, after effects.Effect) {
	cache := e.pipeline.Cache()
	cache.InvalidateRange(before.Start, before.End())
	if before.Start != after.Start || before.Duration != after.Duration {
		cache.InvalidateRange(after.Start, after.End())
	}
}

// ToggleEffect sets the enabled flag, or flips it when enabled is nil.
// It returns the new state.
func (e *Engine) ToggleEffect(id string, enabled *bool) (bool, error) {
	var state bool
	err := e.run("toggle effect", id, func(b *batch) error {
		before, after, err := e.registry.Update(id, func(ef *effects.Effect) error {
			if enabled != nil {
				ef.Enabled = *enabled
			} else {
				ef.Enabled = !ef.Enabled
			}
			return nil
		})
		if err != nil {
			return err
		}
		state = after.Enabled
		if before.Enabled != after.Enabled {
			e.invalidateEffect(before, after)
		}
		verb := "disabled"
		if state {
			verb = "enabled"
		}
		e.record(b, activity.TypeToggled, id, fmt.Sprintf("%s %s", verb, after.Name), map[string]any{"enabled": state})
		b.emit(events.EffectToggled{EffectID: id, Enabled: state})
		return nil
	})
	return state, err
}

// DeleteEffect removes the effect and detaches it from every layer.
func (e *Engine) DeleteEffect(id string) error {
	return e.run("delete effect", id, func(b *batch) error {
		removed, ok := e.registry.Delete(id)
		if !ok {
			return faults.NotFound("delete effect", "effect", id)
		}
		e.pipeline.Cache().InvalidateRange(removed.Start, removed.End())
		for _, layer := range e.layers.DetachEffect(id) {
			b.emit(events.LayerUpdated{Layer: snapshot(layer)})
		}
		e.record(b, activity.TypeDeleted, id, fmt.Sprintf("deleted %s", removed.Name), nil)
		b.emit(events.EffectDeleted{EffectID: id})
		e.logger.Debug("effect deleted", logging.EffectID(id))
		return nil
	})
}

// DuplicateEffect registers a deep copy of the effect under a new id and
// returns that id. The copy's name gains a " (copy)" suffix.
func (e *Engine) DuplicateEffect(id string) (string, error) {
	var newID string
	err := e.run("duplicate effect", id, func(b *batch) error {
		original, ok := e.registry.Get(id)
		if !ok {
			return faults.NotFound("duplicate effect", "effect", id)
		}
		draft := original.Clone()
		draft.ID = ""
		draft.Name = original.Name + " (copy)"
		stored, err := e.registry.Insert(draft)
		if err != nil {
			return err
		}
		newID = stored.ID
		e.pipeline.Cache().InvalidateRange(stored.Start, stored.End())
		e.record(b, activity.TypeDuplicated, stored.ID, fmt.Sprintf("duplicated %s", original.Name), map[string]any{"original_id": id})
		b.emit(events.EffectDuplicated{OriginalID: id, NewID: stored.ID})
		return nil
	})
	if err != nil {
		return "", err
	}
	return newID, nil
}

func kindMismatch(operation string, ef *effects.Effect, want effects.Kind) error {
	return faults.Wrap(faults.ErrKindMismatch, operation,
		fmt.Sprintf("effect %q is %s, want %s", ef.ID, ef.Kind(), want), nil)
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
