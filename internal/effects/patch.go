package effects

import (
	"fmt"

	"reelfx/internal/faults"
)

// CommonPatch carries optional changes to the fields every effect shares.
// Nil pointers leave the current value untouched. Metadata keys are merged.
type CommonPatch struct {
	Name      *string
	Start     *float64
	Duration  *float64
	Enabled   *bool
	Intensity *float64
	Easing    *Easing
	Metadata  map[string]any
}

// TouchesTiming reports whether the patch moves or resizes the interval.
func (c CommonPatch) TouchesTiming() bool {
	return c.Start != nil || c.Duration != nil
}

func (c CommonPatch) apply(e *Effect) {
	if c.Name != nil {
		e.Name = *c.Name
	}
	if c.Start != nil {
		e.Start = *c.Start
	}
	if c.Duration != nil {
		e.Duration = *c.Duration
	}
	if c.Enabled != nil {
		e.Enabled = *c.Enabled
	}
	if c.Intensity != nil {
		e.Intensity = *c.Intensity
	}
	if c.Easing != nil {
		e.Easing = *c.Easing
	}
	if len(c.Metadata) > 0 {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any, len(c.Metadata))
		}
		for k, v := range c.Metadata {
			e.Metadata[k] = cloneValue(v)
		}
	}
}

// Patch is a partial, kind-specific change set. It is used both as creation
// overrides and as the argument of kind-specific updates.
type Patch interface {
	Kind() Kind
	common() CommonPatch
	applyParams(Params)
}

// ApplyPatch applies p to e in place. It fails with faults.ErrKindMismatch
// when p targets a different kind. The result is not validated.
func ApplyPatch(e *Effect, p Patch) error {
	if p == nil {
		return nil
	}
	if e.Kind() != p.Kind() {
		return faults.Wrap(faults.ErrKindMismatch, "apply patch",
			fmt.Sprintf("effect %q is %s, patch targets %s", e.ID, e.Kind(), p.Kind()), nil)
	}
	p.common().apply(e)
	p.applyParams(e.Params)
	return nil
}

// ParticlePatch overrides particle fields.
type ParticlePatch struct {
	Common   CommonPatch `toml:"-"`
	Count    *int        `toml:"count"`
	Size     *Range      `toml:"size"`
	Velocity *Vec2       `toml:"velocity"`
	Gravity  *float64    `toml:"gravity"`
	Lifetime *float64    `toml:"lifetime"`
	Color    *string     `toml:"color"`
	Opacity  *Fade       `toml:"opacity"`
	Rotation *bool       `toml:"rotation"`
	Wind     *Vec2       `toml:"wind"`
}

func (ParticlePatch) Kind() Kind            { return KindParticle }
func (p ParticlePatch) common() CommonPatch { return p.Common }

func (p ParticlePatch) applyParams(params Params) {
	t := params.(*Particle)
	setIf(&t.Count, p.Count)
	setIf(&t.Size, p.Size)
	setIf(&t.Velocity, p.Velocity)
	setIf(&t.Gravity, p.Gravity)
	setIf(&t.Lifetime, p.Lifetime)
	setIf(&t.Color, p.Color)
	setIf(&t.Opacity, p.Opacity)
	setIf(&t.Rotation, p.Rotation)
	if p.Wind != nil {
		t.Wind = clonePtr(p.Wind)
	}
}

// TransitionPatch overrides transition fields.
type TransitionPatch struct {
	Common      CommonPatch `toml:"-"`
	Direction   *Direction  `toml:"direction"`
	Feather     *float64    `toml:"feather"`
	BorderWidth *float64    `toml:"border_width"`
	BorderColor *string     `toml:"border_color"`
	CustomMask  *string     `toml:"custom_mask"`
}

func (TransitionPatch) Kind() Kind            { return KindTransition }
func (p TransitionPatch) common() CommonPatch { return p.Common }

func (p TransitionPatch) applyParams(params Params) {
	t := params.(*Transition)
	setIf(&t.Direction, p.Direction)
	setIf(&t.Feather, p.Feather)
	setIf(&t.BorderWidth, p.BorderWidth)
	setIf(&t.BorderColor, p.BorderColor)
	setIf(&t.CustomMask, p.CustomMask)
}

// TrackingPatch overrides tracking fields. A non-nil Path replaces the path.
type TrackingPatch struct {
	Common     CommonPatch `toml:"-"`
	Target     *Rect       `toml:"target"`
	Smoothing  *float64    `toml:"smoothing"`
	Confidence *float64    `toml:"confidence"`
	Path       []PathPoint `toml:"path"`
}

func (TrackingPatch) Kind() Kind            { return KindTracking }
func (p TrackingPatch) common() CommonPatch { return p.Common }

func (p TrackingPatch) applyParams(params Params) {
	t := params.(*Tracking)
	if p.Target != nil {
		t.Target = clonePtr(p.Target)
	}
	setIf(&t.Smoothing, p.Smoothing)
	setIf(&t.Confidence, p.Confidence)
	if p.Path != nil {
		t.Path = append([]PathPoint(nil), p.Path...)
	}
}

// ChromaKeyPatch overrides keyer fields.
type ChromaKeyPatch struct {
	Common     CommonPatch `toml:"-"`
	KeyColor   *string     `toml:"key_color"`
	Tolerance  *float64    `toml:"tolerance"`
	Softness   *float64    `toml:"softness"`
	Despill    *float64    `toml:"despill"`
	EdgeBlur   *float64    `toml:"edge_blur"`
	Shadows    *bool       `toml:"shadows"`
	Highlights *bool       `toml:"highlights"`
}

func (ChromaKeyPatch) Kind() Kind            { return KindChromaKey }
func (p ChromaKeyPatch) common() CommonPatch { return p.Common }

func (p ChromaKeyPatch) applyParams(params Params) {
	t := params.(*ChromaKey)
	setIf(&t.KeyColor, p.KeyColor)
	setIf(&t.Tolerance, p.Tolerance)
	setIf(&t.Softness, p.Softness)
	setIf(&t.Despill, p.Despill)
	setIf(&t.EdgeBlur, p.EdgeBlur)
	setIf(&t.Shadows, p.Shadows)
	setIf(&t.Highlights, p.Highlights)
}

// ColorGradePatch overrides grading fields. A non-nil Curves replaces all channels.
type ColorGradePatch struct {
	Common      CommonPatch `toml:"-"`
	LUT         *string     `toml:"lut"`
	Temperature *float64    `toml:"temperature"`
	Tint        *float64    `toml:"tint"`
	Exposure    *float64    `toml:"exposure"`
	Contrast    *float64    `toml:"contrast"`
	Highlights  *float64    `toml:"highlights"`
	Shadows     *float64    `toml:"shadows"`
	Whites      *float64    `toml:"whites"`
	Blacks      *float64    `toml:"blacks"`
	Saturation  *float64    `toml:"saturation"`
	Vibrance    *float64    `toml:"vibrance"`
	Hue         *float64    `toml:"hue"`
	Curves      *Curves     `toml:"curves"`
}

func (ColorGradePatch) Kind() Kind            { return KindColorGrade }
func (p ColorGradePatch) common() CommonPatch { return p.Common }

func (p ColorGradePatch) applyParams(params Params) {
	t := params.(*ColorGrade)
	setIf(&t.LUT, p.LUT)
	setIf(&t.Temperature, p.Temperature)
	setIf(&t.Tint, p.Tint)
	setIf(&t.Exposure, p.Exposure)
	setIf(&t.Contrast, p.Contrast)
	setIf(&t.Highlights, p.Highlights)
	setIf(&t.Shadows, p.Shadows)
	setIf(&t.Whites, p.Whites)
	setIf(&t.Blacks, p.Blacks)
	setIf(&t.Saturation, p.Saturation)
	setIf(&t.Vibrance, p.Vibrance)
	setIf(&t.Hue, p.Hue)
	if p.Curves != nil {
		t.Curves = p.Curves.clone()
	}
}

// BlurPatch overrides blur fields.
type BlurPatch struct {
	Common  CommonPatch  `toml:"-"`
	Amount  *float64     `toml:"amount"`
	Angle   *float64     `toml:"angle"`
	Quality *BlurQuality `toml:"quality"`
	Center  *Vec2        `toml:"center"`
	Falloff *float64     `toml:"falloff"`
}

func (BlurPatch) Kind() Kind            { return KindBlur }
func (p BlurPatch) common() CommonPatch { return p.Common }

func (p BlurPatch) applyParams(params Params) {
	t := params.(*Blur)
	setIf(&t.Amount, p.Amount)
	if p.Angle != nil {
		t.Angle = clonePtr(p.Angle)
	}
	setIf(&t.Quality, p.Quality)
	if p.Center != nil {
		t.Center = clonePtr(p.Center)
	}
	if p.Falloff != nil {
		t.Falloff = clonePtr(p.Falloff)
	}
}

// DistortionPatch overrides distortion fields. A non-nil Corners replaces the list.
type DistortionPatch struct {
	Common     CommonPatch `toml:"-"`
	Amount     *float64    `toml:"amount"`
	Center     *Vec2       `toml:"center"`
	Wavelength *float64    `toml:"wavelength"`
	Frequency  *float64    `toml:"frequency"`
	Corners    []Vec2      `toml:"corners"`
}

func (DistortionPatch) Kind() Kind            { return KindDistortion }
func (p DistortionPatch) common() CommonPatch { return p.Common }

func (p DistortionPatch) applyParams(params Params) {
	t := params.(*Distortion)
	setIf(&t.Amount, p.Amount)
	if p.Center != nil {
		t.Center = clonePtr(p.Center)
	}
	if p.Wavelength != nil {
		t.Wavelength = clonePtr(p.Wavelength)
	}
	if p.Frequency != nil {
		t.Frequency = clonePtr(p.Frequency)
	}
	if p.Corners != nil {
		t.Corners = append([]Vec2(nil), p.Corners...)
	}
}

// TimePatch overrides time effect fields.
type TimePatch struct {
	Common        CommonPatch    `toml:"-"`
	Speed         *float64       `toml:"speed"`
	Interpolation *Interpolation `toml:"interpolation"`
	FreezeFrame   *int           `toml:"freeze_frame"`
}

func (TimePatch) Kind() Kind            { return KindTime }
func (p TimePatch) common() CommonPatch { return p.Common }

func (p TimePatch) applyParams(params Params) {
	t := params.(*TimeRemap)
	setIf(&t.Speed, p.Speed)
	setIf(&t.Interpolation, p.Interpolation)
	if p.FreezeFrame != nil {
		t.FreezeFrame = clonePtr(p.FreezeFrame)
	}
}

// CommonOnly is a Patch that changes shared fields of an effect of any kind.
type CommonOnly struct {
	Target Kind
	Common CommonPatch
}

func (c CommonOnly) Kind() Kind          { return c.Target }
func (c CommonOnly) common() CommonPatch { return c.Common }
func (CommonOnly) applyParams(Params)    {}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
