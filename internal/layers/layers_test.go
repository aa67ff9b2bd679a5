package layers_test

import (
	"errors"
	"reflect"
	"testing"

	"reelfx/internal/faults"
	"reelfx/internal/layers"
)

func TestCreateRespectsMaxLayers(t *testing.T) {
	m := layers.NewManager(2, 5)
	for i := 0; i < 2; i++ {
		if _, err := m.Create("bg", ""); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}
	layer, err := m.Create("overflow", layers.BlendScreen)
	if !errors.Is(err, faults.ErrCapacityExceeded) {
		t.Fatalf("expected capacity error, got %v", err)
	}
	if layer.ID != "" {
		t.Fatalf("expected empty layer on failure, got %q", layer.ID)
	}
}

func TestCreateDefaults(t *testing.T) {
	m := layers.NewManager(3, 3)
	layer, err := m.Create("grade", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if layer.ID != "layer-1" || layer.BlendMode != layers.BlendNormal || layer.Opacity != 1 || !layer.Enabled {
		t.Fatalf("unexpected layer %+v", layer)
	}
	if _, err := m.Create("bad", "dissolve"); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected blend mode validation error, got %v", err)
	}
}

func TestAddEffectCapacityAndDuplicates(t *testing.T) {
	m := layers.NewManager(1, 2)
	layer, _ := m.Create("fx", "")
	if _, err := m.AddEffect(layer.ID, "blur-1"); err != nil {
		t.Fatalf("AddEffect: %v", err)
	}
	if _, err := m.AddEffect(layer.ID, "blur-1"); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
	if _, err := m.AddEffect(layer.ID, "blur-2"); err != nil {
		t.Fatalf("AddEffect: %v", err)
	}
	if _, err := m.AddEffect(layer.ID, "blur-3"); !errors.Is(err, faults.ErrCapacityExceeded) {
		t.Fatalf("expected capacity error, got %v", err)
	}
	got, _ := m.Get(layer.ID)
	if !reflect.DeepEqual(got.EffectIDs, []string{"blur-1", "blur-2"}) {
		t.Fatalf("effect ids = %v", got.EffectIDs)
	}
	if _, err := m.AddEffect("layer-9", "blur-1"); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveAndDetach(t *testing.T) {
	m := layers.NewManager(3, 5)
	a, _ := m.Create("a", "")
	b, _ := m.Create("b", "")
	m.AddEffect(a.ID, "time-1")
	m.AddEffect(b.ID, "time-1")
	m.AddEffect(b.ID, "time-2")

	if _, err := m.RemoveEffect(a.ID, "time-2"); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	changed := m.DetachEffect("time-1")
	if len(changed) != 2 {
		t.Fatalf("changed layers = %d, want 2", len(changed))
	}
	got, _ := m.Get(b.ID)
	if !reflect.DeepEqual(got.EffectIDs, []string{"time-2"}) {
		t.Fatalf("effect ids = %v", got.EffectIDs)
	}
}

func TestReorderRequiresExactSet(t *testing.T) {
	m := layers.NewManager(3, 5)
	a, _ := m.Create("a", "")
	b, _ := m.Create("b", "")
	c, _ := m.Create("c", "")

	if err := m.Reorder([]string{a.ID, b.ID}); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error for short list, got %v", err)
	}
	if err := m.Reorder([]string{a.ID, a.ID, b.ID}); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error for duplicate, got %v", err)
	}
	if err := m.Reorder([]string{a.ID, b.ID, "layer-x"}); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := m.Reorder([]string{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	var ids []string
	for _, l := range m.List() {
		ids = append(ids, l.ID)
	}
	if !reflect.DeepEqual(ids, []string{c.ID, a.ID, b.ID}) {
		t.Fatalf("order = %v", ids)
	}
}

func TestOpacityEnabledDelete(t *testing.T) {
	m := layers.NewManager(2, 2)
	layer, _ := m.Create("a", "")
	if _, err := m.SetOpacity(layer.ID, 1.5); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	updated, err := m.SetOpacity(layer.ID, 0.25)
	if err != nil || updated.Opacity != 0.25 {
		t.Fatalf("SetOpacity = %+v, %v", updated, err)
	}
	updated, _ = m.SetEnabled(layer.ID, false)
	if updated.Enabled {
		t.Fatal("expected layer disabled")
	}
	if _, err := m.Delete(layer.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("len = %d", m.Len())
	}
	next, _ := m.Create("b", "")
	if next.ID != "layer-2" {
		t.Fatalf("id reused: %q", next.ID)
	}
}
