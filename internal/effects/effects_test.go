package effects_test

import (
	"errors"
	"math"
	"testing"

	"reelfx/internal/effects"
	"reelfx/internal/faults"
)

func TestParticleDefaults(t *testing.T) {
	snow := effects.NewParticle(effects.ParticleSnow)
	if snow.Count != 100 || snow.Color != "#ffffff" {
		t.Fatalf("unexpected snow defaults: count=%d color=%q", snow.Count, snow.Color)
	}
	rain := effects.NewParticle(effects.ParticleRain)
	if rain.Count != 200 || rain.Velocity.Y != 300 {
		t.Fatalf("unexpected rain defaults: count=%d vy=%v", rain.Count, rain.Velocity.Y)
	}
	fire := effects.NewParticle(effects.ParticleFire)
	if fire.Color != "#ff6600" || fire.Velocity.Y != -80 {
		t.Fatalf("unexpected fire defaults: color=%q vy=%v", fire.Color, fire.Velocity.Y)
	}
	if confetti := effects.NewParticle(effects.ParticleConfetti); !confetti.Rotation {
		t.Fatal("expected confetti rotation enabled")
	}
}

func TestNewParticleDoesNotShareDefaults(t *testing.T) {
	a := effects.NewParticle(effects.ParticleSnow)
	a.Wind.X = 999
	b := effects.NewParticle(effects.ParticleSnow)
	if b.Wind.X == 999 {
		t.Fatal("default wind vector leaked between instances")
	}
}

func TestCloneIsDeep(t *testing.T) {
	tracking := effects.NewTracking(effects.TrackingFace)
	tracking.Path = append(tracking.Path, effects.PathPoint{X: 1, Y: 2, Timestamp: 0.5})
	original := effects.New(tracking, 0, 3)
	original.Metadata = map[string]any{"nested": map[string]any{"k": "v"}}

	dup := original.Clone()
	dupTracking, ok := dup.Tracking()
	if !ok {
		t.Fatal("expected tracking payload on clone")
	}
	dupTracking.Path[0].X = 42
	dup.Metadata["nested"].(map[string]any)["k"] = "changed"

	if tracking.Path[0].X != 1 {
		t.Fatal("clone shares tracking path with original")
	}
	if original.Metadata["nested"].(map[string]any)["k"] != "v" {
		t.Fatal("clone shares nested metadata with original")
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	e := effects.New(effects.NewColorGrade(), 5, 5)
	cases := []struct {
		a, b float64
		want bool
	}{
		{4, 11, true},
		{0, 5, false},
		{10, 12, false},
		{9.999, 10, true},
		{5, 5.001, true},
	}
	for _, tc := range cases {
		if got := e.Overlaps(tc.a, tc.b); got != tc.want {
			t.Fatalf("Overlaps(%v,%v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestApplyPatchKindMismatch(t *testing.T) {
	e := effects.New(effects.NewBlur(effects.BlurGaussian, 10), 0, 1)
	count := 5
	err := effects.ApplyPatch(&e, effects.ParticlePatch{Count: &count})
	if !errors.Is(err, faults.ErrKindMismatch) {
		t.Fatalf("expected kind mismatch, got %v", err)
	}
}

func TestApplyPatchMergesCommonAndParams(t *testing.T) {
	e := effects.New(effects.NewParticle(effects.ParticleSnow), 0, 4)
	name := "blizzard"
	count := 500
	err := effects.ApplyPatch(&e, effects.ParticlePatch{
		Common: effects.CommonPatch{Name: &name, Metadata: map[string]any{"mood": "cold"}},
		Count:  &count,
	})
	if err != nil {
		t.Fatalf("ApplyPatch failed: %v", err)
	}
	p, _ := e.Particle()
	if e.Name != "blizzard" || p.Count != 500 || p.Color != "#ffffff" {
		t.Fatalf("unexpected patched effect: name=%q count=%d color=%q", e.Name, p.Count, p.Color)
	}
	if e.Metadata["mood"] != "cold" {
		t.Fatalf("expected metadata merge, got %v", e.Metadata)
	}
}

func TestValidateTiming(t *testing.T) {
	if err := effects.ValidateTiming(0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tc := range []struct{ start, duration float64 }{{-1, 1}, {0, 0}, {0, -2}} {
		if err := effects.ValidateTiming(tc.start, tc.duration); !errors.Is(err, faults.ErrValidation) {
			t.Fatalf("ValidateTiming(%v,%v) = %v, want validation error", tc.start, tc.duration, err)
		}
	}
}

func TestValidateRejectsUnknownSubtype(t *testing.T) {
	e := effects.New(effects.NewTimeRemap("warp", 2), 0, 1)
	if err := effects.Validate(e); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	e = effects.New(effects.NewTimeRemap(effects.TimeSlow, 50), 0, 1)
	if err := effects.Validate(e); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected speed validation error, got %v", err)
	}
}

func TestValidateRejectsNonFiniteIntensity(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1.5} {
		e := effects.New(effects.NewTimeRemap(effects.TimeSlow, 2), 0, 1)
		e.Intensity = v
		if err := effects.Validate(e); !errors.Is(err, faults.ErrValidation) {
			t.Fatalf("intensity %v: got %v, want validation error", v, err)
		}
	}
	e := effects.New(effects.NewTimeRemap(effects.TimeSlow, 2), 0, 1)
	if err := effects.Validate(e); err != nil {
		t.Fatalf("default intensity rejected: %v", err)
	}
}

func TestTemplateInstantiateOffsetsStart(t *testing.T) {
	tpl := effects.NewTemplate(effects.NewTransition(effects.TransitionZoom), 1.5, 2)
	e := tpl.Instantiate(10)
	if e.ID != "" {
		t.Fatalf("expected no id on instantiated template, got %q", e.ID)
	}
	if e.Start != 11.5 || e.Duration != 2 {
		t.Fatalf("unexpected interval start=%v duration=%v", e.Start, e.Duration)
	}
	if e.Name != "zoom transition" || e.Easing != effects.EaseInOut {
		t.Fatalf("unexpected defaults name=%q easing=%q", e.Name, e.Easing)
	}
}

func TestParseKind(t *testing.T) {
	if k, ok := effects.ParseKind(" ColorGrade "); !ok || k != effects.KindColorGrade {
		t.Fatalf("ParseKind = %q,%v", k, ok)
	}
	if _, ok := effects.ParseKind("composite"); ok {
		t.Fatal("expected composite to be rejected")
	}
}
