// Package layers groups effect references into ordered, capacity-bounded
// composition layers.
package layers

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"reelfx/internal/faults"
)

// BlendMode controls how a layer composites onto the layers below it.
type BlendMode string

const (
	BlendNormal   BlendMode = "normal"
	BlendMultiply BlendMode = "multiply"
	BlendScreen   BlendMode = "screen"
	BlendOverlay  BlendMode = "overlay"
	BlendAdd      BlendMode = "add"
	BlendSubtract BlendMode = "subtract"
)

// ParseBlendMode normalizes a blend mode name. Empty selects normal.
func ParseBlendMode(value string) (BlendMode, error) {
	mode := BlendMode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case "":
		return BlendNormal, nil
	case BlendNormal, BlendMultiply, BlendScreen, BlendOverlay, BlendAdd, BlendSubtract:
		return mode, nil
	default:
		return "", faults.Wrap(faults.ErrValidation, "blend mode", fmt.Sprintf("unsupported blend mode %q", value), nil)
	}
}

// Layer is an ordered group of effect ids.
type Layer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BlendMode BlendMode `json:"blend_mode"`
	Opacity   float64   `json:"opacity"`
	Enabled   bool      `json:"enabled"`
	EffectIDs []string  `json:"effect_ids"`
}

// Clone returns a copy that does not share the effect id slice.
func (l Layer) Clone() Layer {
	l.EffectIDs = slices.Clone(l.EffectIDs)
	return l
}

// Contains reports whether effectID is a member of the layer.
func (l Layer) Contains(effectID string) bool {
	return slices.Contains(l.EffectIDs, effectID)
}

// Manager owns the layer set and its ordering.
type Manager struct {
	mu                 sync.RWMutex
	order              []string
	byID               map[string]*Layer
	maxLayers          int
	maxEffectsPerLayer int
	seq                uint64
}

// NewManager constructs a manager enforcing the given limits.
func NewManager(maxLayers, maxEffectsPerLayer int) *Manager {
	return &Manager{
		byID:               make(map[string]*Layer),
		maxLayers:          maxLayers,
		maxEffectsPerLayer: maxEffectsPerLayer,
	}
}

// SetLimits changes the capacity limits. Existing layers above a lowered
// limit are kept; only further growth is refused.
func (m *Manager) SetLimits(maxLayers, maxEffectsPerLayer int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxLayers = maxLayers
	m.maxEffectsPerLayer = maxEffectsPerLayer
}

// Create appends a new enabled, fully opaque layer.
func (m *Manager) Create(name string, mode BlendMode) (Layer, error) {
	if mode == "" {
		mode = BlendNormal
	}
	if _, err := ParseBlendMode(string(mode)); err != nil {
		return Layer{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.order) >= m.maxLayers {
		return Layer{}, faults.Wrap(faults.ErrCapacityExceeded, "create layer",
			fmt.Sprintf("maximum of %d layers reached", m.maxLayers), nil)
	}
	m.seq++
	layer := &Layer{
		ID:        fmt.Sprintf("layer-%d", m.seq),
		Name:      name,
		BlendMode: mode,
		Opacity:   1,
		Enabled:   true,
		EffectIDs: []string{},
	}
	m.byID[layer.ID] = layer
	m.order = append(m.order, layer.ID)
	return layer.Clone(), nil
}

// Get returns a copy of the layer.
func (m *Manager) Get(id string) (Layer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	layer, ok := m.byID[id]
	if !ok {
		return Layer{}, false
	}
	return layer.Clone(), true
}

// List returns copies of every layer in composition order.
func (m *Manager) List() []Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Layer, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id].Clone())
	}
	return out
}

// Len reports the number of layers.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// AddEffect appends effectID to the layer. The caller is responsible for
// checking that the effect exists.
func (m *Manager) AddEffect(layerID, effectID string) (Layer, error) {
	return m.mutate(layerID, "add effect to layer", func(layer *Layer) error {
		if layer.Contains(effectID) {
			return faults.Wrap(faults.ErrValidation, "add effect to layer",
				fmt.Sprintf("effect %q already on layer %q", effectID, layerID), nil)
		}
		if len(layer.EffectIDs) >= m.maxEffectsPerLayer {
			return faults.Wrap(faults.ErrCapacityExceeded, "add effect to layer",
				fmt.Sprintf("layer %q holds the maximum of %d effects", layerID, m.maxEffectsPerLayer), nil)
		}
		layer.EffectIDs = append(layer.EffectIDs, effectID)
		return nil
	})
}

// RemoveEffect drops effectID from the layer.
func (m *Manager) RemoveEffect(layerID, effectID string) (Layer, error) {
	return m.mutate(layerID, "remove effect from layer", func(layer *Layer) error {
		idx := slices.Index(layer.EffectIDs, effectID)
		if idx < 0 {
			return faults.NotFound("remove effect from layer", "effect", effectID)
		}
		layer.EffectIDs = slices.Delete(layer.EffectIDs, idx, idx+1)
		return nil
	})
}

// SetOpacity changes the layer opacity. Values outside 0..1 are rejected.
func (m *Manager) SetOpacity(layerID string, opacity float64) (Layer, error) {
	if math.IsNaN(opacity) || opacity < 0 || opacity > 1 {
		return Layer{}, faults.Wrap(faults.ErrValidation, "set layer opacity",
			fmt.Sprintf("opacity %g outside 0..1", opacity), nil)
	}
	return m.mutate(layerID, "set layer opacity", func(layer *Layer) error {
		layer.Opacity = opacity
		return nil
	})
}

// SetEnabled switches the layer on or off.
func (m *Manager) SetEnabled(layerID string, enabled bool) (Layer, error) {
	return m.mutate(layerID, "set layer enabled", func(layer *Layer) error {
		layer.Enabled = enabled
		return nil
	})
}

// SetBlendMode changes how the layer composites.
func (m *Manager) SetBlendMode(layerID string, mode BlendMode) (Layer, error) {
	parsed, err := ParseBlendMode(string(mode))
	if err != nil {
		return Layer{}, err
	}
	return m.mutate(layerID, "set blend mode", func(layer *Layer) error {
		layer.BlendMode = parsed
		return nil
	})
}

// Delete removes a layer.
func (m *Manager) Delete(layerID string) (Layer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	layer, ok := m.byID[layerID]
	if !ok {
		return Layer{}, faults.NotFound("delete layer", "layer", layerID)
	}
	delete(m.byID, layerID)
	m.order = slices.DeleteFunc(m.order, func(id string) bool { return id == layerID })
	return layer.Clone(), nil
}

// Reorder replaces the layer ordering. ids must be a permutation of the
// current layer ids.
func (m *Manager) Reorder(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(ids) != len(m.order) {
		return faults.Wrap(faults.ErrValidation, "reorder layers",
			fmt.Sprintf("got %d ids for %d layers", len(ids), len(m.order)), nil)
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := m.byID[id]; !ok {
			return faults.NotFound("reorder layers", "layer", id)
		}
		if _, dup := seen[id]; dup {
			return faults.Wrap(faults.ErrValidation, "reorder layers", fmt.Sprintf("layer %q listed twice", id), nil)
		}
		seen[id] = struct{}{}
	}
	m.order = slices.Clone(ids)
	return nil
}

// DetachEffect removes effectID from every layer and returns the layers
// that changed.
func (m *Manager) DetachEffect(effectID string) []Layer {
	m.mu.Lock()
	defer m.mu.Unlock()
	var changed []Layer
	for _, id := range m.order {
		layer := m.byID[id]
		if idx := slices.Index(layer.EffectIDs, effectID); idx >= 0 {
			layer.EffectIDs = slices.Delete(layer.EffectIDs, idx, idx+1)
			changed = append(changed, layer.Clone())
		}
	}
	return changed
}

// Clear removes every layer. Id sequences keep increasing.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = nil
	m.byID = make(map[string]*Layer)
}

func (m *Manager) mutate(layerID, operation string, fn func(*Layer) error) (Layer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	layer, ok := m.byID[layerID]
	if !ok {
		return Layer{}, faults.NotFound(operation, "layer", layerID)
	}
	working := layer.Clone()
	if err := fn(&working); err != nil {
		return Layer{}, err
	}
	*layer = working
	return working.Clone(), nil
}
