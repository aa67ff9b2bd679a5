// Package registry owns every effect instance. Effects live in an arena
// addressed through an id to slot map; readers always receive deep copies.
package registry

import (
	"fmt"
	"sync"

	"reelfx/internal/effects"
	"reelfx/internal/faults"
	"reelfx/internal/timeindex"
)

type slot struct {
	effect effects.Effect
	live   bool
}

// Registry stores effects in insertion order and indexes their intervals.
type Registry struct {
	mu       sync.RWMutex
	slots    []slot
	byID     map[string]int
	dead     int
	enabled  int
	counters map[effects.Kind]uint64
	index    *timeindex.Index
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{
		byID:     make(map[string]int),
		counters: make(map[effects.Kind]uint64),
		index:    timeindex.New(),
	}
}

// Insert validates e, assigns it a fresh "<kind>-<n>" id and stores a copy.
// Any id already present on e is ignored. The stored effect is returned.
func (r *Registry) Insert(e effects.Effect) (effects.Effect, error) {
	if err := effects.Validate(e); err != nil {
		return effects.Effect{}, err
	}
	stored := e.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	kind := stored.Kind()
	r.counters[kind]++
	stored.ID = fmt.Sprintf("%s-%d", kind, r.counters[kind])
	r.byID[stored.ID] = len(r.slots)
	r.slots = append(r.slots, slot{effect: stored, live: true})
	if stored.Enabled {
		r.enabled++
	}
	r.index.Put(stored.ID, stored.Start, stored.Duration)
	return stored.Clone(), nil
}

// Get returns a copy of the effect with the given id.
func (r *Registry) Get(id string) (effects.Effect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.byID[id]
	if !ok {
		return effects.Effect{}, false
	}
	return r.slots[pos].effect.Clone(), true
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

// All returns copies of every effect in insertion order.
func (r *Registry) All() []effects.Effect {
	return r.collect(func(effects.Effect) bool { return true })
}

// ByKind returns copies of the effects of one kind in insertion order.
func (r *Registry) ByKind(kind effects.Kind) []effects.Effect {
	return r.collect(func(e effects.Effect) bool { return e.Kind() == kind })
}

// InRange returns copies of the effects whose interval overlaps [a, b),
// ordered by start time.
func (r *Registry) InRange(a, b float64) []effects.Effect {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.index.Query(a, b)
	out := make([]effects.Effect, 0, len(ids))
	for _, id := range ids {
		if pos, ok := r.byID[id]; ok {
			out = append(out, r.slots[pos].effect.Clone())
		}
	}
	return out
}

// Update applies mutate to a working copy of the effect and stores the result
// when mutate succeeds and the result validates. It returns the effect as it
// was before and after the change.
func (r *Registry) Update(id string, mutate func(*effects.Effect) error) (before, after effects.Effect, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, ok := r.byID[id]
	if !ok {
		return effects.Effect{}, effects.Effect{}, faults.NotFound("update effect", "effect", id)
	}
	current := r.slots[pos].effect
	working := current.Clone()
	if err := mutate(&working); err != nil {
		return effects.Effect{}, effects.Effect{}, err
	}
	// Identity and kind are fixed for the lifetime of an effect.
	working.ID = current.ID
	if working.Kind() != current.Kind() {
		return effects.Effect{}, effects.Effect{}, faults.Wrap(faults.ErrKindMismatch, "update effect",
			fmt.Sprintf("effect %q cannot change kind from %s to %s", id, current.Kind(), working.Kind()), nil)
	}
	if err := effects.Validate(working); err != nil {
		return effects.Effect{}, effects.Effect{}, err
	}
	r.slots[pos].effect = working
	if current.Enabled != working.Enabled {
		if working.Enabled {
			r.enabled++
		} else {
			r.enabled--
		}
	}
	if current.Start != working.Start || current.Duration != working.Duration {
		r.index.Put(id, working.Start, working.Duration)
	}
	return current.Clone(), working.Clone(), nil
}

// Delete removes the effect and returns it.
func (r *Registry) Delete(id string) (effects.Effect, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, ok := r.byID[id]
	if !ok {
		return effects.Effect{}, false
	}
	removed := r.slots[pos].effect
	r.slots[pos] = slot{}
	delete(r.byID, id)
	r.index.Remove(id)
	if removed.Enabled {
		r.enabled--
	}
	r.dead++
	if r.dead > 32 && r.dead > len(r.slots)/2 {
		r.compactLocked()
	}
	return removed, true
}

// Len reports the number of registered effects.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// EnabledCount reports how many registered effects are enabled.
func (r *Registry) EnabledCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled
}

// Clear removes every effect. Id sequences are not rewound, so ids stay
// unique for the lifetime of the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots = nil
	r.byID = make(map[string]int)
	r.dead = 0
	r.enabled = 0
	r.index.Clear()
}

func (r *Registry) collect(keep func(effects.Effect) bool) []effects.Effect {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]effects.Effect, 0, len(r.byID))
	for _, s := range r.slots {
		if s.live && keep(s.effect) {
			out = append(out, s.effect.Clone())
		}
	}
	return out
}

func (r *Registry) compactLocked() {
	live := make([]slot, 0, len(r.byID))
	for _, s := range r.slots {
		if s.live {
			r.byID[s.effect.ID] = len(live)
			live = append(live, s)
		}
	}
	r.slots = live
	r.dead = 0
}
