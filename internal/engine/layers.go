package engine

import (
	"fmt"
	"slices"

	"reelfx/internal/activity"
	"reelfx/internal/events"
	"reelfx/internal/faults"
	"reelfx/internal/layers"
	"reelfx/internal/logging"
)

// CreateLayer appends a layer and returns its id. An empty mode selects normal.
func (e *Engine) CreateLayer(name string, mode layers.BlendMode) (string, error) {
	var id string
	err := e.run("create layer", "", func(b *batch) error {
		layer, err := e.layers.Create(name, mode)
		if err != nil {
			return err
		}
		id = layer.ID
		e.pipeline.Cache().Clear()
		e.record(b, activity.TypeCreated, layer.ID, fmt.Sprintf("created layer %s", layer.Name), nil)
		b.emit(events.LayerCreated{Layer: snapshot(layer)})
		e.logger.Debug("layer created", logging.LayerID(layer.ID))
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetLayer returns a copy of the layer.
func (e *Engine) GetLayer(id string) (layers.Layer, bool) {
	return e.layers.Get(id)
}

// Layers returns the layers in composition order.
func (e *Engine) Layers() []layers.Layer {
	return e.layers.List()
}

// AddEffectToLayer appends an existing effect to a layer.
func (e *Engine) AddEffectToLayer(layerID, effectID string) error {
	const op = "add effect to layer"
	return e.run(op, layerID, func(b *batch) error {
		if !e.registry.Has(effectID) {
			return faults.NotFound(op, "effect", effectID)
		}
		return e.layerChangedLocked(b, fmt.Sprintf("added %s", effectID), func() (layers.Layer, error) {
			return e.layers.AddEffect(layerID, effectID)
		})
	})
}

// RemoveEffectFromLayer drops an effect from a layer. The effect itself is kept.
func (e *Engine) RemoveEffectFromLayer(layerID, effectID string) error {
	const op = "remove effect from layer"
	return e.run(op, layerID, func(b *batch) error {
		if !e.registry.Has(effectID) {
			return faults.NotFound(op, "effect", effectID)
		}
		return e.layerChangedLocked(b, fmt.Sprintf("removed %s", effectID), func() (layers.Layer, error) {
			return e.layers.RemoveEffect(layerID, effectID)
		})
	})
}

// SetLayerOpacity sets a layer's opacity in 0..1.
func (e *Engine) SetLayerOpacity(layerID string, opacity float64) error {
	return e.run("set layer opacity", layerID, func(b *batch) error {
		return e.layerChangedLocked(b, fmt.Sprintf("opacity %g", opacity), func() (layers.Layer, error) {
			return e.layers.SetOpacity(layerID, opacity)
		})
	})
}

// SetLayerEnabled switches a layer on or off.
func (e *Engine) SetLayerEnabled(layerID string, enabled bool) error {
	return e.run("set layer enabled", layerID, func(b *batch) error {
		return e.layerChangedLocked(b, fmt.Sprintf("enabled=%t", enabled), func() (layers.Layer, error) {
			return e.layers.SetEnabled(layerID, enabled)
		})
	})
}

// SetLayerBlendMode changes a layer's blend mode.
func (e *Engine) SetLayerBlendMode(layerID string, mode layers.BlendMode) error {
	return e.run("set layer blend mode", layerID, func(b *batch) error {
		return e.layerChangedLocked(b, fmt.Sprintf("blend mode %s", mode), func() (layers.Layer, error) {
			return e.layers.SetBlendMode(layerID, mode)
		})
	})
}

func (e *Engine) layerChangedLocked(b *batch, description string, change func() (layers.Layer, error)) error {
	layer, err := change()
	if err != nil {
		return err
	}
	e.pipeline.Cache().Clear()
	e.record(b, activity.TypeUpdated, layer.ID, fmt.Sprintf("layer %s: %s", layer.Name, description), nil)
	b.emit(events.LayerUpdated{Layer: snapshot(layer)})
	return nil
}

// DeleteLayer removes a layer. Its effects stay registered.
func (e *Engine) DeleteLayer(layerID string) error {
	return e.run("delete layer", layerID, func(b *batch) error {
		layer, err := e.layers.Delete(layerID)
		if err != nil {
			return err
		}
		e.pipeline.Cache().Clear()
		e.record(b, activity.TypeDeleted, layerID, fmt.Sprintf("deleted layer %s", layer.Name), nil)
		b.emit(events.LayerDeleted{LayerID: layerID})
		return nil
	})
}

// ReorderLayers replaces the composition order. ids must name every layer
// exactly once. Each layer whose position changed also gets a LayerUpdated.
func (e *Engine) ReorderLayers(ids []string) error {
	return e.run("reorder layers", "", func(b *batch) error {
		before := e.layers.List()
		if err := e.layers.Reorder(ids); err != nil {
			return err
		}
		e.pipeline.Cache().Clear()
		e.record(b, activity.TypeUpdated, "", "reordered layers", map[string]any{"order": slices.Clone(ids)})
		b.emit(events.LayersReordered{LayerIDs: slices.Clone(ids)})
		for i, layer := range e.layers.List() {
			if before[i].ID != layer.ID {
				b.emit(events.LayerUpdated{Layer: snapshot(layer)})
			}
		}
		return nil
	})
}

func snapshot(l layers.Layer) events.LayerSnapshot {
	return events.LayerSnapshot{
		ID:        l.ID,
		Name:      l.Name,
		BlendMode: string(l.BlendMode),
		Opacity:   l.Opacity,
		Enabled:   l.Enabled,
		EffectIDs: slices.Clone(l.EffectIDs),
	}
}
