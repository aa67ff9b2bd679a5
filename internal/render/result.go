package render

import (
	"slices"
	"time"

	"reelfx/internal/effects"
)

// Pass is one layer's contribution to a frame, in composition order.
type Pass struct {
	LayerID   string   `json:"layer_id"`
	LayerName string   `json:"layer_name"`
	BlendMode string   `json:"blend_mode"`
	Opacity   float64  `json:"opacity"`
	EffectIDs []string `json:"effect_ids"`
}

// Job is the work handed to a Backend for one frame.
type Job struct {
	RequestID   string
	FrameNumber int
	Time        float64
	Options     Options
	Effects     []effects.Effect
	Passes      []Pass
}

// Result describes a rendered frame.
type Result struct {
	RequestID      string        `json:"request_id"`
	FrameNumber    int           `json:"frame_number"`
	Time           float64       `json:"time"`
	EffectsApplied int           `json:"effects_applied"`
	EffectIDs      []string      `json:"effect_ids"`
	Passes         []Pass        `json:"passes"`
	Quality        Quality       `json:"quality"`
	Resolution     Resolution    `json:"resolution"`
	RenderTime     time.Duration `json:"render_time"`
	Cached         bool          `json:"cached"`
}

// Clone returns a copy that shares no slices with r.
func (r Result) Clone() Result {
	r.EffectIDs = slices.Clone(r.EffectIDs)
	if r.Passes != nil {
		passes := make([]Pass, len(r.Passes))
		for i, p := range r.Passes {
			p.EffectIDs = slices.Clone(p.EffectIDs)
			passes[i] = p
		}
		r.Passes = passes
	}
	return r
}
