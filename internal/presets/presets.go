// Package presets stores named, categorized bundles of effect templates.
package presets

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"reelfx/internal/effects"
	"reelfx/internal/faults"
)

// Category groups presets for browsing.
type Category string

const (
	CategoryCinematic Category = "cinematic"
	CategoryVintage   Category = "vintage"
	CategoryHorror    Category = "horror"
	CategorySciFi     Category = "sci-fi"
	CategoryRomantic  Category = "romantic"
	CategoryAction    Category = "action"
	CategoryCustom    Category = "custom"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{CategoryCinematic, CategoryVintage, CategoryHorror, CategorySciFi, CategoryRomantic, CategoryAction, CategoryCustom}
}

// ParseCategory resolves a category name case-insensitively. "scifi" and
// "sci fi" are accepted as spellings of sci-fi.
func ParseCategory(value string) (Category, error) {
	key := cases.Fold().String(strings.TrimSpace(value))
	switch key {
	case "scifi", "sci fi", "sci_fi":
		key = string(CategorySciFi)
	}
	for _, c := range Categories() {
		if string(c) == key {
			return c, nil
		}
	}
	return "", faults.Wrap(faults.ErrValidation, "preset category", fmt.Sprintf("unknown category %q", value), nil)
}

// Preset is a reusable bundle of templates.
type Preset struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    Category           `json:"category"`
	Templates   []effects.Template `json:"templates"`
	BuiltIn     bool               `json:"built_in"`
}

// Clone returns a deep copy of p.
func (p Preset) Clone() Preset {
	out := p
	out.Templates = make([]effects.Template, len(p.Templates))
	for i, t := range p.Templates {
		out.Templates[i] = t.Clone()
	}
	return out
}

// Library holds presets in insertion order.
type Library struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Preset
	seq   uint64
}

// NewLibrary returns an empty library. Call Seed to install the built-ins.
func NewLibrary() *Library {
	return &Library{byID: make(map[string]Preset)}
}

// Create stores a user preset. Templates are validated and copied.
func (l *Library) Create(name, description string, category Category, templates []effects.Template) (Preset, error) {
	if strings.TrimSpace(name) == "" {
		return Preset{}, faults.Wrap(faults.ErrValidation, "create preset", "preset name is required", nil)
	}
	parsed, err := ParseCategory(string(category))
	if err != nil {
		return Preset{}, err
	}
	for i, t := range templates {
		if err := validateTemplate(t); err != nil {
			return Preset{}, faults.Wrap(faults.ErrValidation, "create preset", fmt.Sprintf("template %d", i), err)
		}
	}
	return l.add(Preset{Name: name, Description: description, Category: parsed, Templates: templates}), nil
}

// Seed installs the built-in presets. It is called at construction and after
// every reset; existing presets are kept.
func (l *Library) Seed() []Preset {
	defaults := builtIns()
	out := make([]Preset, 0, len(defaults))
	for _, p := range defaults {
		p.BuiltIn = true
		out = append(out, l.add(p))
	}
	return out
}

// Get returns a copy of the preset.
func (l *Library) Get(id string) (Preset, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.byID[id]
	if !ok {
		return Preset{}, false
	}
	return p.Clone(), true
}

// List returns every preset in insertion order.
func (l *Library) List() []Preset {
	return l.filter(func(Preset) bool { return true })
}

// ByCategory returns the presets of one category in insertion order.
func (l *Library) ByCategory(category Category) []Preset {
	parsed, err := ParseCategory(string(category))
	if err != nil {
		return nil
	}
	return l.filter(func(p Preset) bool { return p.Category == parsed })
}

// Delete removes a preset.
func (l *Library) Delete(id string) (Preset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.byID[id]
	if !ok {
		return Preset{}, faults.NotFound("delete preset", "preset", id)
	}
	delete(l.byID, id)
	l.order = slices.DeleteFunc(l.order, func(v string) bool { return v == id })
	return p, nil
}

// Len reports the number of presets.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}

// Clear removes every preset. Id sequences keep increasing.
func (l *Library) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.order = nil
	l.byID = make(map[string]Preset)
}

func (l *Library) add(p Preset) Preset {
	stored := p.Clone()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	stored.ID = fmt.Sprintf("preset-%d", l.seq)
	l.byID[stored.ID] = stored
	l.order = append(l.order, stored.ID)
	return stored.Clone()
}

func (l *Library) filter(keep func(Preset) bool) []Preset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Preset, 0, len(l.order))
	for _, id := range l.order {
		if p := l.byID[id]; keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func validateTemplate(t effects.Template) error {
	if t.Params == nil {
		return faults.Wrap(faults.ErrValidation, "template", "template has no parameters", nil)
	}
	if t.Offset < 0 {
		return faults.Wrap(faults.ErrValidation, "template", fmt.Sprintf("offset %g must be >= 0", t.Offset), nil)
	}
	// Instantiate at zero so the offset becomes the start being checked.
	return effects.Validate(t.Instantiate(0))
}
