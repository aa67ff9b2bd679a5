package effects

// Template is an effect configuration not bound to an id or start time.
// Offset shifts the instance relative to the time the template is applied.
type Template struct {
	Name      string         `json:"name"`
	Offset    float64        `json:"offset,omitempty"`
	Duration  float64        `json:"duration"`
	Enabled   bool           `json:"enabled"`
	Intensity float64        `json:"intensity"`
	Easing    Easing         `json:"easing,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Params    Params         `json:"params"`
}

// Kind returns the kind of effect the template produces.
func (t Template) Kind() Kind {
	if t.Params == nil {
		return ""
	}
	return t.Params.Kind()
}

// TemplateOf strips the identity and start time of e.
func TemplateOf(e Effect) Template {
	c := e.Clone()
	return Template{
		Name:      c.Name,
		Duration:  c.Duration,
		Enabled:   c.Enabled,
		Intensity: c.Intensity,
		Easing:    c.Easing,
		Metadata:  c.Metadata,
		Params:    c.Params,
	}
}

// NewTemplate builds an enabled, full-intensity template with default naming.
func NewTemplate(p Params, offset, duration float64) Template {
	return Template{
		Name:      DefaultName(p),
		Offset:    offset,
		Duration:  duration,
		Enabled:   true,
		Intensity: defaultIntensity,
		Easing:    DefaultEasing(p.Kind()),
		Params:    p,
	}
}

// Clone returns a deep copy of t.
func (t Template) Clone() Template {
	out := t
	out.Metadata = CloneMetadata(t.Metadata)
	out.Params = CloneParams(t.Params)
	return out
}

// Instantiate materializes the template as a new unregistered effect
// starting at start+Offset. The id is left empty.
func (t Template) Instantiate(start float64) Effect {
	c := t.Clone()
	name := c.Name
	if name == "" && c.Params != nil {
		name = DefaultName(c.Params)
	}
	return Effect{
		Name:      name,
		Start:     start + c.Offset,
		Duration:  c.Duration,
		Enabled:   c.Enabled,
		Intensity: c.Intensity,
		Easing:    c.Easing,
		Metadata:  c.Metadata,
		Params:    c.Params,
	}
}
