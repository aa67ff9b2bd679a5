package registry_test

import (
	"errors"
	"testing"

	"reelfx/internal/effects"
	"reelfx/internal/faults"
	"reelfx/internal/registry"
)

func insert(t *testing.T, r *registry.Registry, p effects.Params, start, duration float64) effects.Effect {
	t.Helper()
	e, err := r.Insert(effects.New(p, start, duration))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	return e
}

func TestInsertAssignsKindPrefixedIDs(t *testing.T) {
	r := registry.New()
	for _, p := range []effects.Params{
		effects.NewParticle(effects.ParticleSnow),
		effects.NewTransition(effects.TransitionWipe),
		effects.NewTracking(effects.TrackingObject),
		effects.NewChromaKey("#00ff00"),
		effects.NewColorGrade(),
		effects.NewBlur(effects.BlurGaussian, 5),
		effects.NewDistortion(effects.DistortionWave),
		effects.NewTimeRemap(effects.TimeSlow, 0.5),
	} {
		e := insert(t, r, p, 0, 1)
		if want := string(p.Kind()) + "-1"; e.ID != want {
			t.Fatalf("id = %q, want %q", e.ID, want)
		}
	}
	second := insert(t, r, effects.NewBlur(effects.BlurMotion, 1), 0, 1)
	if second.ID != "blur-2" {
		t.Fatalf("id = %q, want blur-2", second.ID)
	}
}

func TestInsertRejectsBadTiming(t *testing.T) {
	r := registry.New()
	if _, err := r.Insert(effects.New(effects.NewColorGrade(), -1, 2)); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("len = %d, want 0", r.Len())
	}
}

func TestGetReturnsCopies(t *testing.T) {
	r := registry.New()
	stored := insert(t, r, effects.NewParticle(effects.ParticleRain), 0, 1)
	got, _ := r.Get(stored.ID)
	p, _ := got.Particle()
	p.Count = 1
	again, _ := r.Get(stored.ID)
	if q, _ := again.Particle(); q.Count != 200 {
		t.Fatalf("registry state leaked through Get: count=%d", q.Count)
	}
}

func TestInRangeAndByKind(t *testing.T) {
	r := registry.New()
	insert(t, r, effects.NewBlur(effects.BlurGaussian, 1), 0, 5)
	insert(t, r, effects.NewColorGrade(), 5, 5)
	insert(t, r, effects.NewBlur(effects.BlurRadial, 1), 10, 5)

	if got := r.InRange(4, 11); len(got) != 3 {
		t.Fatalf("InRange(4,11) len = %d, want 3", len(got))
	}
	blurs := r.ByKind(effects.KindBlur)
	if len(blurs) != 2 || blurs[0].ID != "blur-1" || blurs[1].ID != "blur-2" {
		t.Fatalf("ByKind(blur) = %v", blurs)
	}
}

func TestUpdateValidatesAndReindexes(t *testing.T) {
	r := registry.New()
	e := insert(t, r, effects.NewColorGrade(), 0, 2)

	_, _, err := r.Update(e.ID, func(x *effects.Effect) error { x.Duration = 0; return nil })
	if !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got, _ := r.Get(e.ID); got.Duration != 2 {
		t.Fatalf("failed update changed state: duration=%v", got.Duration)
	}

	before, after, err := r.Update(e.ID, func(x *effects.Effect) error { x.Start = 20; x.Enabled = false; return nil })
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if before.Start != 0 || after.Start != 20 {
		t.Fatalf("before=%v after=%v", before.Start, after.Start)
	}
	if got := r.InRange(0, 2); len(got) != 0 {
		t.Fatalf("stale index entry: %v", got)
	}
	if got := r.InRange(20, 21); len(got) != 1 {
		t.Fatalf("moved effect not indexed: %v", got)
	}
	if r.EnabledCount() != 0 {
		t.Fatalf("enabled count = %d, want 0", r.EnabledCount())
	}
}

func TestUpdateUnknown(t *testing.T) {
	r := registry.New()
	_, _, err := r.Update("blur-9", func(*effects.Effect) error { return nil })
	if !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteCompactsAndKeepsOrder(t *testing.T) {
	r := registry.New()
	var ids []string
	for i := 0; i < 100; i++ {
		ids = append(ids, insert(t, r, effects.NewBlur(effects.BlurGaussian, 1), float64(i), 1).ID)
	}
	for i := 0; i < 80; i++ {
		if _, ok := r.Delete(ids[i]); !ok {
			t.Fatalf("Delete(%s) reported missing", ids[i])
		}
	}
	all := r.All()
	if len(all) != 20 || all[0].ID != ids[80] || all[19].ID != ids[99] {
		t.Fatalf("unexpected survivors: first=%s last=%s len=%d", all[0].ID, all[len(all)-1].ID, len(all))
	}
	if _, ok := r.Get(ids[90]); !ok {
		t.Fatal("lookup broken after compaction")
	}
	if _, ok := r.Delete(ids[0]); ok {
		t.Fatal("double delete should report false")
	}
}

func TestClearKeepsSequences(t *testing.T) {
	r := registry.New()
	insert(t, r, effects.NewDistortion(effects.DistortionLens), 0, 1)
	r.Clear()
	e := insert(t, r, effects.NewDistortion(effects.DistortionLens), 0, 1)
	if e.ID != "distortion-2" {
		t.Fatalf("id after clear = %q, want distortion-2", e.ID)
	}
	if r.Len() != 1 || r.EnabledCount() != 1 {
		t.Fatalf("len=%d enabled=%d", r.Len(), r.EnabledCount())
	}
}
