package engine

import (
	"fmt"

	"reelfx/internal/activity"
	"reelfx/internal/effects"
	"reelfx/internal/events"
	"reelfx/internal/faults"
	"reelfx/internal/logging"
	"reelfx/internal/presets"
)

// CreatePreset stores a user preset and returns its id. Template order is kept.
func (e *Engine) CreatePreset(name, description string, category presets.Category, templates []effects.Template) (string, error) {
	var id string
	err := e.run("create preset", "", func(b *batch) error {
		p, err := e.presets.Create(name, description, category, templates)
		if err != nil {
			return err
		}
		id = p.ID
		e.record(b, activity.TypeCreated, p.ID, fmt.Sprintf("created preset %s", p.Name), map[string]any{"category": string(p.Category)})
		b.emit(events.PresetCreated{PresetID: p.ID, Name: p.Name, Category: string(p.Category)})
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// SavePreset captures existing effects as a user preset. Offsets are taken
// relative to the earliest effect.
func (e *Engine) SavePreset(name, description string, category presets.Category, effectIDs []string) (string, error) {
	selected := make([]effects.Effect, 0, len(effectIDs))
	for _, id := range effectIDs {
		ef, ok := e.registry.Get(id)
		if !ok {
			return "", faults.NotFound("save preset", "effect", id)
		}
		selected = append(selected, ef)
	}
	origin := 0.0
	for i, ef := range selected {
		if i == 0 || ef.Start < origin {
			origin = ef.Start
		}
	}
	templates := make([]effects.Template, 0, len(selected))
	for _, ef := range selected {
		t := effects.TemplateOf(ef)
		t.Offset = ef.Start - origin
		templates = append(templates, t)
	}
	return e.CreatePreset(name, description, category, templates)
}

// GetPreset returns a copy of the preset.
func (e *Engine) GetPreset(id string) (presets.Preset, bool) {
	return e.presets.Get(id)
}

// Presets returns every preset in insertion order.
func (e *Engine) Presets() []presets.Preset {
	return e.presets.List()
}

// GetPresetsByCategory returns the presets of one category, built-in and
// user-created, in insertion order. Unknown categories match nothing.
func (e *Engine) GetPresetsByCategory(category string) []presets.Preset {
	parsed, err := presets.ParseCategory(category)
	if err != nil {
		return nil
	}
	return e.presets.ByCategory(parsed)
}

// DeletePreset removes a user preset. Built-in presets cannot be deleted.
func (e *Engine) DeletePreset(id string) error {
	const op = "delete preset"
	return e.run(op, id, func(b *batch) error {
		p, ok := e.presets.Get(id)
		if !ok {
			return faults.NotFound(op, "preset", id)
		}
		if p.BuiltIn {
			return faults.Wrap(faults.ErrValidation, op, fmt.Sprintf("preset %q is built in", id), nil)
		}
		if _, err := e.presets.Delete(id); err != nil {
			return err
		}
		e.record(b, activity.TypeDeleted, id, fmt.Sprintf("deleted preset %s", p.Name), nil)
		b.emit(events.PresetDeleted{PresetID: id})
		return nil
	})
}

// ApplyPreset instantiates every template of the preset at startTime and
// returns the new effect ids in template order. Either every template is
// instantiated or none is.
func (e *Engine) ApplyPreset(presetID string, startTime float64) ([]string, error) {
	const op = "apply preset"
	var ids []string
	err := e.run(op, presetID, func(b *batch) error {
		p, ok := e.presets.Get(presetID)
		if !ok {
			return faults.NotFound(op, "preset", presetID)
		}
		drafts := make([]effects.Effect, 0, len(p.Templates))
		for i, t := range p.Templates {
			draft := t.Instantiate(startTime)
			if err := effects.Validate(draft); err != nil {
				return faults.Wrap(faults.ErrValidation, op, fmt.Sprintf("template %d of %q", i, presetID), err)
			}
			drafts = append(drafts, draft)
		}
		ids = make([]string, 0, len(drafts))
		for _, draft := range drafts {
			stored, err := e.insertLocked(b, draft)
			if err != nil {
				return err
			}
			ids = append(ids, stored.ID)
		}
		e.record(b, activity.TypeApplied, presetID, fmt.Sprintf("applied preset %s at %gs", p.Name, startTime),
			map[string]any{"effect_ids": append([]string(nil), ids...)})
		b.emit(events.PresetApplied{PresetID: presetID, EffectIDs: append([]string(nil), ids...)})
		e.logger.Debug("preset applied",
			logging.PresetID(presetID),
			logging.Int("effects", len(ids)),
			logging.Float64("start", startTime),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
