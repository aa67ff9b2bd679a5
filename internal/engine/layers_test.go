package engine_test

import (
	"errors"
	"fmt"
	"testing"

	"reelfx/internal/effects"
	"reelfx/internal/events"
	"reelfx/internal/faults"
	"reelfx/internal/layers"
)

func TestCreateLayerBeyondLimitFailsOnce(t *testing.T) {
	e, rec := newEngine(t, smallLimits(3, 20))
	for i := 0; i < 3; i++ {
		if id, err := e.CreateLayer(fmt.Sprintf("layer %d", i), ""); err != nil || id == "" {
			t.Fatalf("CreateLayer %d = %q, %v", i, id, err)
		}
	}
	rec.reset()
	id, err := e.CreateLayer("overflow", layers.BlendAdd)
	if id != "" || !errors.Is(err, faults.ErrCapacityExceeded) {
		t.Fatalf("CreateLayer beyond limit = %q, %v", id, err)
	}
	if got := rec.count(events.KindError); got != 1 {
		t.Fatalf("error events = %d, want exactly 1", got)
	}
	if errEv, ok := rec.events[0].(events.Error); !ok || errEv.Code != string(faults.CodeCapacityExceeded) {
		t.Fatalf("unexpected error event %+v", rec.events[0])
	}
}

func TestAddEffectBeyondLayerLimit(t *testing.T) {
	e, rec := newEngine(t, smallLimits(2, 2))
	layerID, _ := e.CreateLayer("fx", "")
	var ids []string
	for i := 0; i < 3; i++ {
		id, err := e.CreateBlur(effects.BlurGaussian, 5, float64(i), 1, effects.BlurPatch{})
		if err != nil {
			t.Fatalf("CreateBlur: %v", err)
		}
		ids = append(ids, id)
	}
	for _, id := range ids[:2] {
		if err := e.AddEffectToLayer(layerID, id); err != nil {
			t.Fatalf("AddEffectToLayer(%s): %v", id, err)
		}
	}
	rec.reset()
	if err := e.AddEffectToLayer(layerID, ids[2]); !errors.Is(err, faults.ErrCapacityExceeded) {
		t.Fatalf("expected capacity error, got %v", err)
	}
	if rec.count(events.KindError) != 1 {
		t.Fatalf("error events = %d, want 1", rec.count(events.KindError))
	}
}

func TestLayerReferencesMustExist(t *testing.T) {
	e, rec := newEngine(t)
	layerID, _ := e.CreateLayer("fx", "")
	effectID, _ := e.CreateColorGrade(0, 1, effects.ColorGradePatch{})
	rec.reset()

	if err := e.AddEffectToLayer("layer-99", effectID); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("unknown layer: got %v", err)
	}
	if err := e.AddEffectToLayer(layerID, "blur-99"); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("unknown effect: got %v", err)
	}
	if err := e.RemoveEffectFromLayer(layerID, effectID); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("effect not on layer: got %v", err)
	}
	if rec.count(events.KindError) != 0 {
		t.Fatal("not-found failures should not publish error events")
	}

	if err := e.AddEffectToLayer(layerID, effectID); err != nil {
		t.Fatalf("AddEffectToLayer: %v", err)
	}
	if err := e.AddEffectToLayer(layerID, effectID); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("duplicate add: expected validation, got %v", err)
	}
	if err := e.RemoveEffectFromLayer(layerID, effectID); err != nil {
		t.Fatalf("RemoveEffectFromLayer: %v", err)
	}
	if _, ok := e.GetEffect(effectID); !ok {
		t.Fatal("removing from a layer must not delete the effect")
	}
}

func TestReorderLayers(t *testing.T) {
	e, rec := newEngine(t)
	a, _ := e.CreateLayer("a", "")
	b, _ := e.CreateLayer("b", layers.BlendMultiply)
	c, _ := e.CreateLayer("c", layers.BlendOverlay)
	rec.reset()

	if err := e.ReorderLayers([]string{c, a, b}); err != nil {
		t.Fatalf("ReorderLayers: %v", err)
	}
	got := e.Layers()
	if got[0].ID != c || got[1].ID != a || got[2].ID != b {
		t.Fatalf("unexpected order %s,%s,%s", got[0].ID, got[1].ID, got[2].ID)
	}
	if rec.count(events.KindLayersReordered) != 1 {
		t.Fatal("expected layers-reordered event")
	}
	// Every layer moved, so each gets an update.
	if got := rec.count(events.KindLayerUpdated); got != 3 {
		t.Fatalf("layer-updated events = %d, want 3", got)
	}

	bad := [][]string{{a, b}, {a, a, b}, {a, b, "layer-42"}}
	for _, ids := range bad {
		if err := e.ReorderLayers(ids); err == nil {
			t.Fatalf("ReorderLayers(%v) should fail", ids)
		}
	}
	if got := e.Layers(); got[0].ID != c {
		t.Fatal("failed reorder changed the order")
	}
}

func TestLayerProperties(t *testing.T) {
	e, rec := newEngine(t)
	id, _ := e.CreateLayer("grade", "")
	if err := e.SetLayerOpacity(id, 0.25); err != nil {
		t.Fatalf("SetLayerOpacity: %v", err)
	}
	if err := e.SetLayerOpacity(id, 2); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := e.SetLayerEnabled(id, false); err != nil {
		t.Fatalf("SetLayerEnabled: %v", err)
	}
	if err := e.SetLayerBlendMode(id, layers.BlendSubtract); err != nil {
		t.Fatalf("SetLayerBlendMode: %v", err)
	}
	if _, err := e.CreateLayer("bad", "dissolve"); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error for unknown blend mode, got %v", err)
	}
	layer, _ := e.GetLayer(id)
	if layer.Opacity != 0.25 || layer.Enabled || layer.BlendMode != layers.BlendSubtract {
		t.Fatalf("unexpected layer %+v", layer)
	}
	if rec.count(events.KindLayerUpdated) != 3 {
		t.Fatalf("layer-updated events = %d, want 3", rec.count(events.KindLayerUpdated))
	}
	if err := e.DeleteLayer(id); err != nil {
		t.Fatalf("DeleteLayer: %v", err)
	}
	if _, ok := e.GetLayer(id); ok {
		t.Fatal("layer still present")
	}
}
