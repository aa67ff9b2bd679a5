package effects

import "fmt"

const (
	defaultIntensity = 1.0

	// DetectedKeyColor is the colour reported by the built-in chroma key detector.
	DetectedKeyColor = "#00ff00"
)

var particleDefaults = map[ParticleType]Particle{
	ParticleSnow: {
		Count:    100,
		Size:     Range{Min: 2, Max: 5},
		Velocity: Vec2{X: 0, Y: 50},
		Gravity:  0.5,
		Lifetime: 5,
		Color:    "#ffffff",
		Opacity:  Fade{Start: 0.8, End: 0},
		Rotation: true,
		Wind:     &Vec2{X: 10, Y: 0},
	},
	ParticleRain: {
		Count:    200,
		Size:     Range{Min: 1, Max: 2},
		Velocity: Vec2{X: 5, Y: 300},
		Gravity:  2,
		Lifetime: 2,
		Color:    "#a0c0ff",
		Opacity:  Fade{Start: 0.6, End: 0.3},
	},
	ParticleFire: {
		Count:    50,
		Size:     Range{Min: 10, Max: 30},
		Velocity: Vec2{X: 0, Y: -80},
		Gravity:  -0.5,
		Lifetime: 1.5,
		Color:    "#ff6600",
		Opacity:  Fade{Start: 1, End: 0},
		Rotation: true,
	},
	ParticleConfetti: {
		Count:    150,
		Size:     Range{Min: 5, Max: 15},
		Velocity: Vec2{X: 0, Y: -100},
		Gravity:  1.5,
		Lifetime: 4,
		Color:    "#ff0000",
		Opacity:  Fade{Start: 1, End: 0.5},
		Rotation: true,
		Wind:     &Vec2{X: 20, Y: 0},
	},
	ParticleSmoke: {
		Count:    30,
		Size:     Range{Min: 20, Max: 60},
		Velocity: Vec2{X: 5, Y: -30},
		Gravity:  -0.2,
		Lifetime: 6,
		Color:    "#888888",
		Opacity:  Fade{Start: 0.7, End: 0},
		Rotation: true,
	},
	ParticleSparkle: {
		Count:    80,
		Size:     Range{Min: 3, Max: 8},
		Lifetime: 1,
		Color:    "#ffff00",
		Opacity:  Fade{Start: 1, End: 0},
	},
	ParticleDust: {
		Count:    60,
		Size:     Range{Min: 1, Max: 3},
		Velocity: Vec2{X: 2, Y: 5},
		Gravity:  0.1,
		Lifetime: 8,
		Color:    "#cccccc",
		Opacity:  Fade{Start: 0.4, End: 0},
		Rotation: true,
		Wind:     &Vec2{X: 5, Y: 0},
	},
}

// NewParticle returns the default particle configuration for t.
func NewParticle(t ParticleType) *Particle {
	base := particleDefaults[t]
	p := base.cloneParams().(*Particle)
	p.ParticleType = t
	return p
}

// NewTransition returns the default transition configuration for t.
func NewTransition(t TransitionType) *Transition {
	return &Transition{
		TransitionType: t,
		Direction:      DirectionRight,
		Feather:        0.1,
	}
}

// NewTracking returns the default tracking configuration for t.
func NewTracking(t TrackingType) *Tracking {
	return &Tracking{
		TrackingType: t,
		Smoothing:    0.5,
		Confidence:   0.8,
		Path:         []PathPoint{},
	}
}

// NewChromaKey returns the default keyer for keyColor.
func NewChromaKey(keyColor string) *ChromaKey {
	return &ChromaKey{
		KeyColor:   keyColor,
		Tolerance:  0.3,
		Softness:   0.2,
		Despill:    0.5,
		EdgeBlur:   1,
		Shadows:    true,
		Highlights: true,
	}
}

// NewColorGrade returns a neutral grade.
func NewColorGrade() *ColorGrade {
	return &ColorGrade{}
}

// NewBlur returns the default blur configuration.
func NewBlur(t BlurType, amount float64) *Blur {
	return &Blur{
		BlurType: t,
		Amount:   amount,
		Quality:  BlurQualityMedium,
	}
}

// NewDistortion returns the default distortion configuration.
func NewDistortion(t DistortionType) *Distortion {
	return &Distortion{
		DistortionType: t,
		Amount:         0.5,
	}
}

// NewTimeRemap returns the default time effect configuration.
func NewTimeRemap(t TimeType, speed float64) *TimeRemap {
	return &TimeRemap{
		TimeType:      t,
		Speed:         speed,
		Interpolation: InterpolationOpticalFlow,
	}
}

// DefaultName returns the display name a freshly created effect receives.
func DefaultName(p Params) string {
	switch v := p.(type) {
	case *Particle:
		return fmt.Sprintf("%s particles", v.ParticleType)
	case *Transition:
		return fmt.Sprintf("%s transition", v.TransitionType)
	case *Tracking:
		return fmt.Sprintf("%s tracking", v.TrackingType)
	case *ChromaKey:
		return "Chroma Key"
	case *ColorGrade:
		return "Color Grading"
	case *Blur:
		return fmt.Sprintf("%s blur", v.BlurType)
	case *Distortion:
		return fmt.Sprintf("%s distortion", v.DistortionType)
	case *TimeRemap:
		return fmt.Sprintf("%s motion", v.TimeType)
	default:
		return "effect"
	}
}

// DefaultEasing returns the easing a freshly created effect of kind receives.
func DefaultEasing(kind Kind) Easing {
	if kind == KindTransition {
		return EaseInOut
	}
	return EaseLinear
}

// New assembles an unregistered effect with default common fields.
func New(p Params, start, duration float64) Effect {
	return Effect{
		Name:      DefaultName(p),
		Start:     start,
		Duration:  duration,
		Enabled:   true,
		Intensity: defaultIntensity,
		Easing:    DefaultEasing(p.Kind()),
		Params:    p,
	}
}
