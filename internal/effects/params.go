package effects

import "slices"

// Particle configures a particle system.
type Particle struct {
	ParticleType ParticleType `json:"particleType"`
	Count        int          `json:"count"`
	Size         Range        `json:"size"`
	Velocity     Vec2         `json:"velocity"`
	Gravity      float64      `json:"gravity"`
	Lifetime     float64      `json:"lifetime"`
	Color        string       `json:"color"`
	Opacity      Fade         `json:"opacity"`
	Rotation     bool         `json:"rotation"`
	Wind         *Vec2        `json:"wind,omitempty"`
}

func (*Particle) Kind() Kind { return KindParticle }

func (p *Particle) cloneParams() Params {
	out := *p
	out.Wind = clonePtr(p.Wind)
	return &out
}

// Transition configures a transition between shots.
type Transition struct {
	TransitionType TransitionType `json:"transitionType"`
	Direction      Direction      `json:"direction"`
	Feather        float64        `json:"feather"`
	BorderWidth    float64        `json:"borderWidth,omitempty"`
	BorderColor    string         `json:"borderColor,omitempty"`
	CustomMask     string         `json:"customMask,omitempty"`
}

func (*Transition) Kind() Kind { return KindTransition }

func (p *Transition) cloneParams() Params {
	out := *p
	return &out
}

// Tracking configures motion tracking. Path is ordered by insertion.
type Tracking struct {
	TrackingType TrackingType `json:"trackingType"`
	Target       *Rect        `json:"target,omitempty"`
	Smoothing    float64      `json:"smoothing"`
	Confidence   float64      `json:"confidence"`
	Path         []PathPoint  `json:"path"`
}

func (*Tracking) Kind() Kind { return KindTracking }

func (p *Tracking) cloneParams() Params {
	out := *p
	out.Target = clonePtr(p.Target)
	out.Path = slices.Clone(p.Path)
	return &out
}

// ChromaKey configures green/blue screen keying.
type ChromaKey struct {
	KeyColor   string  `json:"keyColor"`
	Tolerance  float64 `json:"tolerance"`
	Softness   float64 `json:"softness"`
	Despill    float64 `json:"despill"`
	EdgeBlur   float64 `json:"edgeBlur"`
	Shadows    bool    `json:"shadows"`
	Highlights bool    `json:"highlights"`
}

func (*ChromaKey) Kind() Kind { return KindChromaKey }

func (p *ChromaKey) cloneParams() Params {
	out := *p
	return &out
}

// Curves holds per-channel curve control points.
type Curves struct {
	Red   []float64 `json:"red" toml:"red"`
	Green []float64 `json:"green" toml:"green"`
	Blue  []float64 `json:"blue" toml:"blue"`
	RGB   []float64 `json:"rgb" toml:"rgb"`
}

// Channel returns the points of one channel.
func (c *Curves) Channel(ch CurveChannel) []float64 {
	switch ch {
	case ChannelRed:
		return c.Red
	case ChannelGreen:
		return c.Green
	case ChannelBlue:
		return c.Blue
	case ChannelRGB:
		return c.RGB
	default:
		return nil
	}
}

// SetChannel replaces the points of one channel.
func (c *Curves) SetChannel(ch CurveChannel, points []float64) {
	points = slices.Clone(points)
	switch ch {
	case ChannelRed:
		c.Red = points
	case ChannelGreen:
		c.Green = points
	case ChannelBlue:
		c.Blue = points
	case ChannelRGB:
		c.RGB = points
	}
}

func (c *Curves) clone() *Curves {
	if c == nil {
		return nil
	}
	return &Curves{
		Red:   slices.Clone(c.Red),
		Green: slices.Clone(c.Green),
		Blue:  slices.Clone(c.Blue),
		RGB:   slices.Clone(c.RGB),
	}
}

// ColorGrade configures primary colour correction. Adjustments are in the
// range -100..100 except Exposure (-5..5) and Hue (-180..180).
type ColorGrade struct {
	LUT         string  `json:"lut,omitempty"`
	Temperature float64 `json:"temperature"`
	Tint        float64 `json:"tint"`
	Exposure    float64 `json:"exposure"`
	Contrast    float64 `json:"contrast"`
	Highlights  float64 `json:"highlights"`
	Shadows     float64 `json:"shadows"`
	Whites      float64 `json:"whites"`
	Blacks      float64 `json:"blacks"`
	Saturation  float64 `json:"saturation"`
	Vibrance    float64 `json:"vibrance"`
	Hue         float64 `json:"hue"`
	Curves      *Curves `json:"curves,omitempty"`
}

func (*ColorGrade) Kind() Kind { return KindColorGrade }

func (p *ColorGrade) cloneParams() Params {
	out := *p
	out.Curves = p.Curves.clone()
	return &out
}

// Blur configures a blur pass.
type Blur struct {
	BlurType BlurType    `json:"blurType"`
	Amount   float64     `json:"amount"`
	Angle    *float64    `json:"angle,omitempty"`
	Quality  BlurQuality `json:"quality"`
	Center   *Vec2       `json:"center,omitempty"`
	Falloff  *float64    `json:"falloff,omitempty"`
}

func (*Blur) Kind() Kind { return KindBlur }

func (p *Blur) cloneParams() Params {
	out := *p
	out.Angle = clonePtr(p.Angle)
	out.Center = clonePtr(p.Center)
	out.Falloff = clonePtr(p.Falloff)
	return &out
}

// Distortion configures a geometric distortion.
type Distortion struct {
	DistortionType DistortionType `json:"distortionType"`
	Amount         float64        `json:"amount"`
	Center         *Vec2          `json:"center,omitempty"`
	Wavelength     *float64       `json:"wavelength,omitempty"`
	Frequency      *float64       `json:"frequency,omitempty"`
	Corners        []Vec2         `json:"corners,omitempty"`
}

func (*Distortion) Kind() Kind { return KindDistortion }

func (p *Distortion) cloneParams() Params {
	out := *p
	out.Center = clonePtr(p.Center)
	out.Wavelength = clonePtr(p.Wavelength)
	out.Frequency = clonePtr(p.Frequency)
	out.Corners = slices.Clone(p.Corners)
	return &out
}

// TimeRemap configures speed changes, reversal and freeze frames.
type TimeRemap struct {
	TimeType      TimeType      `json:"timeType"`
	Speed         float64       `json:"speed"`
	Interpolation Interpolation `json:"interpolation"`
	FreezeFrame   *int          `json:"freezeFrame,omitempty"`
}

func (*TimeRemap) Kind() Kind { return KindTime }

func (p *TimeRemap) cloneParams() Params {
	out := *p
	out.FreezeFrame = clonePtr(p.FreezeFrame)
	return &out
}

// CloneParams returns a deep copy of p.
func CloneParams(p Params) Params {
	if p == nil {
		return nil
	}
	return p.cloneParams()
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
