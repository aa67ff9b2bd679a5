package scene

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"reelfx/internal/effects"
	"reelfx/internal/engine"
	"reelfx/internal/faults"
	"reelfx/internal/layers"
)

// Applied maps scene names to the ids the engine assigned.
type Applied struct {
	Effects map[string]string
	Layers  []string
	Presets map[string][]string
}

// Apply creates the scene's effects, applies its presets, then builds its
// layers. It stops at the first failure; state created before it is kept.
func (d *Document) Apply(e *engine.Engine) (*Applied, error) {
	out := &Applied{
		Effects: make(map[string]string, len(d.Effects)),
		Presets: make(map[string][]string, len(d.Presets)),
	}
	for _, decl := range d.Effects {
		id, err := createEffect(e, decl)
		if err != nil {
			return out, fmt.Errorf("effect %q: %w", decl.Key, err)
		}
		out.Effects[decl.Key] = id
	}
	for _, p := range d.Presets {
		presetID, err := resolvePreset(e, p.Preset)
		if err != nil {
			return out, err
		}
		ids, err := e.ApplyPreset(presetID, p.At)
		if err != nil {
			return out, fmt.Errorf("preset %q: %w", p.Preset, err)
		}
		out.Presets[p.Preset] = append(out.Presets[p.Preset], ids...)
	}
	for _, decl := range d.Layers {
		layerID, err := e.CreateLayer(decl.Name, layers.BlendMode(decl.BlendMode))
		if err != nil {
			return out, fmt.Errorf("layer %q: %w", decl.Name, err)
		}
		out.Layers = append(out.Layers, layerID)
		if decl.Opacity != nil {
			if err := e.SetLayerOpacity(layerID, *decl.Opacity); err != nil {
				return out, fmt.Errorf("layer %q: %w", decl.Name, err)
			}
		}
		if decl.Enabled != nil && !*decl.Enabled {
			if err := e.SetLayerEnabled(layerID, false); err != nil {
				return out, fmt.Errorf("layer %q: %w", decl.Name, err)
			}
		}
		for _, ref := range decl.Effects {
			if err := e.AddEffectToLayer(layerID, out.Effects[ref]); err != nil {
				return out, fmt.Errorf("layer %q: %w", decl.Name, err)
			}
		}
	}
	return out, nil
}

func resolvePreset(e *engine.Engine, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if p, ok := e.GetPreset(ref); ok {
		return p.ID, nil
	}
	for _, p := range e.Presets() {
		if strings.EqualFold(p.Name, ref) {
			return p.ID, nil
		}
	}
	return "", faults.NotFound("apply scene", "preset", ref)
}

func createEffect(e *engine.Engine, decl EffectSpec) (string, error) {
	kind, ok := effects.ParseKind(decl.Kind)
	if !ok {
		return "", unknownKind(decl.Kind)
	}
	common := decl.common()
	switch kind {
	case effects.KindParticle:
		var p effects.ParticlePatch
		if err := decodeParams(decl.Params, &p); err != nil {
			return "", err
		}
		p.Common = common
		return e.CreateParticleEffect(effects.ParticleType(decl.subtype(string(effects.ParticleSnow))), decl.Start, decl.Duration, p)
	case effects.KindTransition:
		var p effects.TransitionPatch
		if err := decodeParams(decl.Params, &p); err != nil {
			return "", err
		}
		p.Common = common
		return e.CreateTransition(effects.TransitionType(decl.subtype(string(effects.TransitionWipe))), decl.Start, decl.Duration, p)
	case effects.KindTracking:
		var p effects.TrackingPatch
		if err := decodeParams(decl.Params, &p); err != nil {
			return "", err
		}
		p.Common = common
		return e.CreateTracking(effects.TrackingType(decl.subtype(string(effects.TrackingObject))), decl.Start, decl.Duration, p)
	case effects.KindChromaKey:
		var p effects.ChromaKeyPatch
		if err := decodeParams(decl.Params, &p); err != nil {
			return "", err
		}
		p.Common = common
		color := decl.KeyColor
		if color == "" {
			color = effects.DetectedKeyColor
		}
		return e.CreateChromaKey(color, decl.Start, decl.Duration, p)
	case effects.KindColorGrade:
		var p effects.ColorGradePatch
		if err := decodeParams(decl.Params, &p); err != nil {
			return "", err
		}
		p.Common = common
		return e.CreateColorGrade(decl.Start, decl.Duration, p)
	case effects.KindBlur:
		var p effects.BlurPatch
		if err := decodeParams(decl.Params, &p); err != nil {
			return "", err
		}
		p.Common = common
		amount := 10.0
		if decl.Amount != nil {
			amount = *decl.Amount
		}
		return e.CreateBlur(effects.BlurType(decl.subtype(string(effects.BlurGaussian))), amount, decl.Start, decl.Duration, p)
	case effects.KindDistortion:
		var p effects.DistortionPatch
		if err := decodeParams(decl.Params, &p); err != nil {
			return "", err
		}
		p.Common = common
		return e.CreateDistortion(effects.DistortionType(decl.subtype(string(effects.DistortionLens))), decl.Start, decl.Duration, p)
	case effects.KindTime:
		var p effects.TimePatch
		if err := decodeParams(decl.Params, &p); err != nil {
			return "", err
		}
		p.Common = common
		speed := 1.0
		if decl.Speed != nil {
			speed = *decl.Speed
		}
		return e.CreateTimeEffect(effects.TimeType(decl.subtype(string(effects.TimeSlow))), speed, decl.Start, decl.Duration, p)
	default:
		return "", faults.Wrap(faults.ErrValidation, "apply scene", fmt.Sprintf("kind %s has no constructor", kind), nil)
	}
}

func unknownKind(value string) error {
	names := make([]string, 0, len(effects.AllKinds()))
	for _, k := range effects.AllKinds() {
		names = append(names, string(k))
	}
	return faults.Wrap(faults.ErrValidation, "apply scene",
		fmt.Sprintf("unknown kind %q (want one of %s)", value, strings.Join(names, ", ")), nil)
}

func (s EffectSpec) subtype(fallback string) string {
	if t := strings.ToLower(strings.TrimSpace(s.Type)); t != "" {
		return t
	}
	return fallback
}

func (s EffectSpec) common() effects.CommonPatch {
	var c effects.CommonPatch
	if s.Name != "" {
		name := s.Name
		c.Name = &name
	}
	c.Enabled = s.Enabled
	c.Intensity = s.Intensity
	if s.Easing != "" {
		easing := effects.Easing(s.Easing)
		c.Easing = &easing
	}
	c.Metadata = s.Metadata
	return c
}

// decodeParams re-encodes the free-form params table and decodes it into
// the kind's patch type, so unknown parameter names are rejected.
func decodeParams(params map[string]any, dst any) error {
	if len(params) == 0 {
		return nil
	}
	data, err := toml.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	decoder := toml.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return faults.Wrap(faults.ErrValidation, "scene params", "decode params", err)
	}
	return nil
}
