package events

import (
	"time"

	"reelfx/internal/effects"
	"reelfx/internal/tuning"
)

// Kind enumerates every event the engine publishes.
type Kind int

const (
	KindEffectCreated Kind = iota
	KindEffectUpdated
	KindEffectDeleted
	KindEffectToggled
	KindEffectDuplicated
	KindTrackingUpdated
	KindStabilizationApplied
	KindChromaKeyDetected
	KindLUTApplied
	KindCurvesUpdated
	KindLayerCreated
	KindLayerUpdated
	KindLayerDeleted
	KindLayersReordered
	KindPresetCreated
	KindPresetDeleted
	KindPresetApplied
	KindFrameRendered
	KindCacheCleared
	KindActivityLogged
	KindConfigUpdated
	KindSystemReset
	KindError
	kindCount
)

var kindNames = [...]string{
	KindEffectCreated:        "effect:created",
	KindEffectUpdated:        "effect:updated",
	KindEffectDeleted:        "effect:deleted",
	KindEffectToggled:        "effect:toggled",
	KindEffectDuplicated:     "effect:duplicated",
	KindTrackingUpdated:      "tracking:updated",
	KindStabilizationApplied: "stabilization:applied",
	KindChromaKeyDetected:    "chromakey:detected",
	KindLUTApplied:           "lut:applied",
	KindCurvesUpdated:        "curves:updated",
	KindLayerCreated:         "layer:created",
	KindLayerUpdated:         "layer:updated",
	KindLayerDeleted:         "layer:deleted",
	KindLayersReordered:      "layers:reordered",
	KindPresetCreated:        "preset:created",
	KindPresetDeleted:        "preset:deleted",
	KindPresetApplied:        "preset:applied",
	KindFrameRendered:        "frame:rendered",
	KindCacheCleared:         "cache:cleared",
	KindActivityLogged:       "activity:logged",
	KindConfigUpdated:        "config:updated",
	KindSystemReset:          "system:reset",
	KindError:                "error",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Event is implemented by every payload struct below.
type Event interface {
	Kind() Kind
}

// EffectCreated carries a snapshot of the new effect.
type EffectCreated struct{ Effect effects.Effect }

// EffectUpdated carries a snapshot of the effect after the change.
type EffectUpdated struct{ Effect effects.Effect }

// EffectDeleted names the removed effect.
type EffectDeleted struct{ EffectID string }

// EffectToggled reports the new enabled state.
type EffectToggled struct {
	EffectID string
	Enabled  bool
}

// EffectDuplicated links a copy to its source.
type EffectDuplicated struct {
	OriginalID string
	NewID      string
}

// TrackingUpdated reports one appended path sample.
type TrackingUpdated struct {
	EffectID string
	Point    effects.PathPoint
}

// StabilizationApplied reports stabilization analysis attached to a tracking effect.
type StabilizationApplied struct{ Effect effects.Effect }

// ChromaKeyDetected reports an auto-detected key colour.
type ChromaKeyDetected struct {
	EffectID string
	Color    string
}

// LUTApplied reports a LUT attached to a colour grade.
type LUTApplied struct {
	EffectID string
	LUTPath  string
}

// CurvesUpdated reports a replaced curve channel.
type CurvesUpdated struct {
	EffectID string
	Channel  effects.CurveChannel
	Points   []float64
}

// LayerSnapshot is the event view of a layer.
type LayerSnapshot struct {
	ID        string
	Name      string
	BlendMode string
	Opacity   float64
	Enabled   bool
	EffectIDs []string
}

// LayerCreated carries the new layer.
type LayerCreated struct{ Layer LayerSnapshot }

// LayerUpdated carries the layer after a structural change.
type LayerUpdated struct{ Layer LayerSnapshot }

// LayerDeleted names the removed layer.
type LayerDeleted struct{ LayerID string }

// LayersReordered carries the new ordering.
type LayersReordered struct{ LayerIDs []string }

// PresetCreated names a stored preset.
type PresetCreated struct {
	PresetID string
	Name     string
	Category string
}

// PresetDeleted names a removed preset.
type PresetDeleted struct{ PresetID string }

// PresetApplied lists the effects instantiated from a preset, in template order.
type PresetApplied struct {
	PresetID  string
	EffectIDs []string
}

// FrameRendered summarizes a completed (non-cached) render.
type FrameRendered struct {
	FrameNumber    int
	Time           float64
	EffectsApplied int
	RenderTime     time.Duration
	RequestID      string
}

// CacheCleared is published when the frame cache is emptied.
type CacheCleared struct{ Evicted int }

// ActivityLogged mirrors an appended activity entry.
type ActivityLogged struct {
	Sequence    uint64
	Type        string
	TargetID    string
	Description string
	Timestamp   time.Time
}

// ConfigUpdated carries the merged configuration.
type ConfigUpdated struct{ Config tuning.Config }

// SystemReset is published after reset completes.
type SystemReset struct{}

// Error notifies listeners of a failed operation. It carries no control-flow role.
type Error struct {
	Code      string
	Operation string
	TargetID  string
	Message   string
}

func (EffectCreated) Kind() Kind        { return KindEffectCreated }
func (EffectUpdated) Kind() Kind        { return KindEffectUpdated }
func (EffectDeleted) Kind() Kind        { return KindEffectDeleted }
func (EffectToggled) Kind() Kind        { return KindEffectToggled }
func (EffectDuplicated) Kind() Kind     { return KindEffectDuplicated }
func (TrackingUpdated) Kind() Kind      { return KindTrackingUpdated }
func (StabilizationApplied) Kind() Kind { return KindStabilizationApplied }
func (ChromaKeyDetected) Kind() Kind    { return KindChromaKeyDetected }
func (LUTApplied) Kind() Kind           { return KindLUTApplied }
func (CurvesUpdated) Kind() Kind        { return KindCurvesUpdated }
func (LayerCreated) Kind() Kind         { return KindLayerCreated }
func (LayerUpdated) Kind() Kind         { return KindLayerUpdated }
func (LayerDeleted) Kind() Kind         { return KindLayerDeleted }
func (LayersReordered) Kind() Kind      { return KindLayersReordered }
func (PresetCreated) Kind() Kind        { return KindPresetCreated }
func (PresetDeleted) Kind() Kind        { return KindPresetDeleted }
func (PresetApplied) Kind() Kind        { return KindPresetApplied }
func (FrameRendered) Kind() Kind        { return KindFrameRendered }
func (CacheCleared) Kind() Kind         { return KindCacheCleared }
func (ActivityLogged) Kind() Kind       { return KindActivityLogged }
func (ConfigUpdated) Kind() Kind        { return KindConfigUpdated }
func (SystemReset) Kind() Kind          { return KindSystemReset }
func (Error) Kind() Kind                { return KindError }
