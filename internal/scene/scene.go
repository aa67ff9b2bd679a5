package scene

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"reelfx/internal/effects"
	"reelfx/internal/faults"
	"reelfx/internal/layers"
	"reelfx/internal/render"
)

// Document is a scene file: effects, the layers grouping them, preset
// applications and the frame range to render.
type Document struct {
	Name        string         `toml:"name"`
	Description string         `toml:"description"`
	Render      *RenderSection `toml:"render"`
	Effects     []EffectSpec   `toml:"effects"`
	Layers      []LayerSpec    `toml:"layers"`
	Presets     []PresetSpec   `toml:"presets"`
}

// RenderSection overrides the configured render options and selects frames.
type RenderSection struct {
	Quality      string  `toml:"quality"`
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
	FPS          float64 `toml:"fps"`
	Format       string  `toml:"format"`
	Antialiasing *bool   `toml:"antialiasing"`
	MotionBlur   *bool   `toml:"motion_blur"`
	From         int     `toml:"from"`
	To           int     `toml:"to"`
}

// EffectSpec declares one effect. Key names the effect inside the scene so
// layers can reference it. Params holds kind-specific overrides using the
// same field names as the effect's patch type.
type EffectSpec struct {
	Key       string         `toml:"key"`
	Kind      string         `toml:"kind"`
	Type      string         `toml:"type"`
	Start     float64        `toml:"start"`
	Duration  float64        `toml:"duration"`
	Name      string         `toml:"name"`
	Enabled   *bool          `toml:"enabled"`
	Intensity *float64       `toml:"intensity"`
	Easing    string         `toml:"easing"`
	Amount    *float64       `toml:"amount"`
	Speed     *float64       `toml:"speed"`
	KeyColor  string         `toml:"key_color"`
	Params    map[string]any `toml:"params"`
	Metadata  map[string]any `toml:"metadata"`
}

// LayerSpec declares a layer and the effect keys it holds, in order.
type LayerSpec struct {
	Name      string   `toml:"name"`
	BlendMode string   `toml:"blend_mode"`
	Opacity   *float64 `toml:"opacity"`
	Enabled   *bool    `toml:"enabled"`
	Effects   []string `toml:"effects"`
}

// PresetSpec applies a preset, by id or name, at a start time.
type PresetSpec struct {
	Preset string  `toml:"preset"`
	At     float64 `toml:"at"`
}

// Load reads and validates a scene file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates a scene document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks references and enumerations. Effect parameters are
// validated by the engine when the scene is applied.
func (d *Document) Validate() error {
	keys := make(map[string]struct{}, len(d.Effects))
	for i := range d.Effects {
		decl := &d.Effects[i]
		decl.Key = strings.TrimSpace(decl.Key)
		if decl.Key == "" {
			decl.Key = fmt.Sprintf("effect%d", i+1)
		}
		if _, dup := keys[decl.Key]; dup {
			return invalid(fmt.Sprintf("effect key %q declared twice", decl.Key))
		}
		keys[decl.Key] = struct{}{}
		if _, ok := effects.ParseKind(decl.Kind); !ok {
			return invalid(fmt.Sprintf("effect %q: unknown kind %q", decl.Key, decl.Kind))
		}
		if err := effects.ValidateTiming(decl.Start, decl.Duration); err != nil {
			return faults.Wrap(faults.ErrValidation, "scene", fmt.Sprintf("effect %q", decl.Key), err)
		}
	}
	for _, layer := range d.Layers {
		if _, err := layers.ParseBlendMode(layer.BlendMode); err != nil {
			return faults.Wrap(faults.ErrValidation, "scene", fmt.Sprintf("layer %q", layer.Name), err)
		}
		for _, ref := range layer.Effects {
			if _, ok := keys[ref]; !ok {
				return invalid(fmt.Sprintf("layer %q references unknown effect %q", layer.Name, ref))
			}
		}
	}
	for _, p := range d.Presets {
		if strings.TrimSpace(p.Preset) == "" {
			return invalid("preset application needs a preset id or name")
		}
		if p.At < 0 {
			return invalid(fmt.Sprintf("preset %q applied at negative time %g", p.Preset, p.At))
		}
	}
	if r := d.Render; r != nil {
		if r.From < 0 || r.To < r.From {
			return invalid(fmt.Sprintf("frame range %d..%d is invalid", r.From, r.To))
		}
	}
	return nil
}

// Options applies the scene's render overrides to base.
func (d *Document) Options(base render.Options) render.Options {
	r := d.Render
	if r == nil {
		return base.Normalize()
	}
	if r.Quality != "" {
		base.Quality = render.Quality(r.Quality)
	}
	if r.Width > 0 {
		base.Resolution.Width = r.Width
	}
	if r.Height > 0 {
		base.Resolution.Height = r.Height
	}
	if r.FPS > 0 {
		base.FPS = r.FPS
	}
	if r.Format != "" {
		base.Format = render.Format(r.Format)
	}
	if r.Antialiasing != nil {
		base.Antialiasing = *r.Antialiasing
	}
	if r.MotionBlur != nil {
		base.MotionBlur = *r.MotionBlur
	}
	return base.Normalize()
}

// Frame is one frame to render.
type Frame struct {
	Number int
	Time   float64
}

// Frames lists the frames of the render range at fps. A scene without a
// render section renders frame 0 only.
func (d *Document) Frames(fps float64) []Frame {
	from, to := 0, 0
	if d.Render != nil {
		from, to = d.Render.From, d.Render.To
	}
	if fps <= 0 {
		fps = 1
	}
	frames := make([]Frame, 0, to-from+1)
	for n := from; n <= to; n++ {
		frames = append(frames, Frame{Number: n, Time: float64(n) / fps})
	}
	return frames
}

func invalid(message string) error {
	return faults.Wrap(faults.ErrValidation, "scene", message, nil)
}
