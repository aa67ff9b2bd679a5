package effects

import "maps"

// Vec2 is a 2D vector or point in normalized or pixel space depending on the field.
type Vec2 struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Range bounds a randomized scalar.
type Range struct {
	Min float64 `json:"min" toml:"min"`
	Max float64 `json:"max" toml:"max"`
}

// Fade describes a value interpolated from Start to End over a lifetime.
type Fade struct {
	Start float64 `json:"start" toml:"start"`
	End   float64 `json:"end" toml:"end"`
}

// Rect is an axis-aligned box.
type Rect struct {
	X      float64 `json:"x" toml:"x"`
	Y      float64 `json:"y" toml:"y"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// PathPoint is one tracked sample.
type PathPoint struct {
	X         float64 `json:"x" toml:"x"`
	Y         float64 `json:"y" toml:"y"`
	Timestamp float64 `json:"timestamp" toml:"timestamp"`
}

// Params is the kind-specific payload of an Effect. The set of implementations
// is closed: Particle, Transition, Tracking, ChromaKey, ColorGrade, Blur,
// Distortion and TimeRemap.
type Params interface {
	Kind() Kind
	cloneParams() Params
}

// Effect is one timed, typed treatment. The active interval is the half-open
// range [Start, Start+Duration).
type Effect struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Start     float64        `json:"start"`
	Duration  float64        `json:"duration"`
	Enabled   bool           `json:"enabled"`
	Intensity float64        `json:"intensity"`
	Easing    Easing         `json:"easing,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Params    Params         `json:"params"`
}

// Kind returns the variant tag of the effect.
func (e Effect) Kind() Kind {
	if e.Params == nil {
		return ""
	}
	return e.Params.Kind()
}

// End returns the exclusive end of the active interval.
func (e Effect) End() float64 {
	return e.Start + e.Duration
}

// Overlaps reports whether the effect's interval intersects [a, b).
func (e Effect) Overlaps(a, b float64) bool {
	return e.Start < b && e.End() > a
}

// Clone returns a deep copy that shares no mutable state with e.
func (e Effect) Clone() Effect {
	out := e
	out.Metadata = CloneMetadata(e.Metadata)
	if e.Params != nil {
		out.Params = e.Params.cloneParams()
	}
	return out
}

// Particle returns the particle payload when the effect is a particle system.
func (e Effect) Particle() (*Particle, bool) {
	p, ok := e.Params.(*Particle)
	return p, ok
}

// Transition returns the transition payload.
func (e Effect) Transition() (*Transition, bool) {
	p, ok := e.Params.(*Transition)
	return p, ok
}

// Tracking returns the tracking payload.
func (e Effect) Tracking() (*Tracking, bool) {
	p, ok := e.Params.(*Tracking)
	return p, ok
}

// ChromaKey returns the chroma key payload.
func (e Effect) ChromaKey() (*ChromaKey, bool) {
	p, ok := e.Params.(*ChromaKey)
	return p, ok
}

// ColorGrade returns the colour grading payload.
func (e Effect) ColorGrade() (*ColorGrade, bool) {
	p, ok := e.Params.(*ColorGrade)
	return p, ok
}

// Blur returns the blur payload.
func (e Effect) Blur() (*Blur, bool) {
	p, ok := e.Params.(*Blur)
	return p, ok
}

// Distortion returns the distortion payload.
func (e Effect) Distortion() (*Distortion, bool) {
	p, ok := e.Params.(*Distortion)
	return p, ok
}

// TimeRemap returns the time effect payload.
func (e Effect) TimeRemap() (*TimeRemap, bool) {
	p, ok := e.Params.(*TimeRemap)
	return p, ok
}

// CloneMetadata deep-copies a metadata map, descending into nested maps and
// slices. Other values are copied by assignment.
func CloneMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return CloneMetadata(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case map[string]string:
		return maps.Clone(val)
	case []string:
		return append([]string(nil), val...)
	case []float64:
		return append([]float64(nil), val...)
	default:
		return val
	}
}
