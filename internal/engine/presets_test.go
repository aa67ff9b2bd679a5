package engine_test

import (
	"errors"
	"strings"
	"testing"

	"reelfx/internal/effects"
	"reelfx/internal/events"
	"reelfx/internal/faults"
	"reelfx/internal/presets"
)

func TestBuiltInPresetsSeeded(t *testing.T) {
	e, _ := newEngine(t)
	for _, category := range []string{"cinematic", "vintage", "horror", "romantic", "custom", "Sci-Fi"} {
		if len(e.GetPresetsByCategory(category)) == 0 {
			t.Fatalf("no built-in preset for %q", category)
		}
	}
	if got := e.GetPresetsByCategory("nonsense"); len(got) != 0 {
		t.Fatalf("unknown category matched %d presets", len(got))
	}
}

func TestApplyPresetCreatesFreshEffects(t *testing.T) {
	e, rec := newEngine(t)
	cinematic := e.GetPresetsByCategory("cinematic")[0]

	first, err := e.ApplyPreset(cinematic.ID, 10)
	if err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	if len(first) != len(cinematic.Templates) {
		t.Fatalf("created %d effects, want %d", len(first), len(cinematic.Templates))
	}
	for i, id := range first {
		ef, ok := e.GetEffect(id)
		if !ok {
			t.Fatalf("effect %q missing", id)
		}
		want := cinematic.Templates[i]
		if ef.Kind() != want.Kind() || ef.Start != 10+want.Offset {
			t.Fatalf("effect %d: kind=%s start=%v, want %s at %v", i, ef.Kind(), ef.Start, want.Kind(), 10+want.Offset)
		}
	}
	second, err := e.ApplyPreset(cinematic.ID, 0)
	if err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	for i := range second {
		if second[i] == first[i] {
			t.Fatalf("preset application reused id %q", first[i])
		}
	}
	if rec.count(events.KindPresetApplied) != 2 {
		t.Fatalf("preset-applied events = %d, want 2", rec.count(events.KindPresetApplied))
	}

	if ids, err := e.ApplyPreset("preset-999", 0); ids != nil || !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("unknown preset: %v, %v", ids, err)
	}
	before := len(e.GetAllEffects())
	if _, err := e.ApplyPreset(cinematic.ID, -1); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("negative start: expected validation, got %v", err)
	}
	if len(e.GetAllEffects()) != before {
		t.Fatal("failed preset application left partial effects")
	}
}

func TestCreateAndDeleteUserPreset(t *testing.T) {
	e, rec := newEngine(t)
	templates := []effects.Template{
		effects.NewTemplate(effects.NewBlur(effects.BlurBokeh, 20), 0, 2),
		effects.NewTemplate(effects.NewTransition(effects.TransitionGlitch), 1.5, 0.5),
	}
	id, err := e.CreatePreset("Dreamy", "soft focus", presets.CategoryRomantic, templates)
	if err != nil {
		t.Fatalf("CreatePreset: %v", err)
	}
	romantic := e.GetPresetsByCategory("romantic")
	if romantic[len(romantic)-1].ID != id {
		t.Fatal("user preset not appended after built-ins")
	}
	ids, err := e.ApplyPreset(id, 4)
	if err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	if !strings.HasPrefix(ids[0], "blur-") || !strings.HasPrefix(ids[1], "transition-") {
		t.Fatalf("unexpected ids %v", ids)
	}
	if ef, _ := e.GetEffect(ids[1]); ef.Start != 5.5 {
		t.Fatalf("offset template start = %v, want 5.5", ef.Start)
	}
	if rec.count(events.KindPresetCreated) != 1 {
		t.Fatal("expected preset-created event")
	}

	if _, err := e.CreatePreset("", "", presets.CategoryCustom, nil); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("empty name: expected validation, got %v", err)
	}
	builtIn := e.GetPresetsByCategory("horror")[0]
	if err := e.DeletePreset(builtIn.ID); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("deleting built-in: expected validation, got %v", err)
	}
	if err := e.DeletePreset(id); err != nil {
		t.Fatalf("DeletePreset: %v", err)
	}
	if _, ok := e.GetPreset(id); ok {
		t.Fatal("preset still present")
	}
}

func TestSavePresetFromEffects(t *testing.T) {
	e, _ := newEngine(t)
	a, _ := e.CreateColorGrade(3, 2, effects.ColorGradePatch{})
	b, _ := e.CreateBlur(effects.BlurGaussian, 4, 5, 1, effects.BlurPatch{})
	id, err := e.SavePreset("Look", "", presets.CategoryCustom, []string{a, b})
	if err != nil {
		t.Fatalf("SavePreset: %v", err)
	}
	p, _ := e.GetPreset(id)
	if p.Templates[0].Offset != 0 || p.Templates[1].Offset != 2 {
		t.Fatalf("unexpected offsets %v, %v", p.Templates[0].Offset, p.Templates[1].Offset)
	}
	if _, err := e.SavePreset("Missing", "", presets.CategoryCustom, []string{"blur-999"}); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
