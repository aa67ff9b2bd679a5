package effects

import "strings"

// Kind identifies the variant carried by an Effect.
type Kind string

const (
	KindParticle   Kind = "particle"
	KindTransition Kind = "transition"
	KindTracking   Kind = "tracking"
	KindChromaKey  Kind = "chromakey"
	KindColorGrade Kind = "colorgrade"
	KindBlur       Kind = "blur"
	KindDistortion Kind = "distortion"
	KindTime       Kind = "time"
)

var allKinds = []Kind{
	KindParticle,
	KindTransition,
	KindTracking,
	KindChromaKey,
	KindColorGrade,
	KindBlur,
	KindDistortion,
	KindTime,
}

// AllKinds returns the ordered list of supported kinds.
func AllKinds() []Kind {
	cp := make([]Kind, len(allKinds))
	copy(cp, allKinds)
	return cp
}

// ParseKind converts a string into a known Kind.
func ParseKind(value string) (Kind, bool) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(value)))
	for _, kind := range allKinds {
		if kind == normalized {
			return kind, true
		}
	}
	return "", false
}

// Easing names the interpolation curve applied over an effect's lifetime.
type Easing string

const (
	EaseLinear  Easing = "linear"
	EaseIn      Easing = "ease-in"
	EaseOut     Easing = "ease-out"
	EaseInOut   Easing = "ease-in-out"
	EaseBounce  Easing = "bounce"
	EaseElastic Easing = "elastic"
	EaseBack    Easing = "back"
)

// ParticleType selects the particle system preset.
type ParticleType string

const (
	ParticleSnow     ParticleType = "snow"
	ParticleRain     ParticleType = "rain"
	ParticleFire     ParticleType = "fire"
	ParticleConfetti ParticleType = "confetti"
	ParticleSmoke    ParticleType = "smoke"
	ParticleSparkle  ParticleType = "sparkle"
	ParticleDust     ParticleType = "dust"
)

// TransitionType selects the transition animation.
type TransitionType string

const (
	TransitionWipe     TransitionType = "wipe"
	TransitionZoom     TransitionType = "zoom"
	TransitionRotate   TransitionType = "rotate"
	TransitionPageTurn TransitionType = "page-turn"
	TransitionMorph    TransitionType = "morph"
	TransitionGlitch   TransitionType = "glitch"
	TransitionRipple   TransitionType = "ripple"
)

// Direction is the travel direction of a transition.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionIn    Direction = "in"
	DirectionOut   Direction = "out"
)

// TrackingType selects what a tracking effect follows.
type TrackingType string

const (
	TrackingObject        TrackingType = "object"
	TrackingFace          TrackingType = "face"
	TrackingMotion        TrackingType = "motion"
	TrackingStabilization TrackingType = "stabilization"
)

// BlurType selects the blur kernel.
type BlurType string

const (
	BlurGaussian  BlurType = "gaussian"
	BlurMotion    BlurType = "motion"
	BlurRadial    BlurType = "radial"
	BlurTiltShift BlurType = "tilt-shift"
	BlurBokeh     BlurType = "bokeh"
)

// BlurQuality trades blur fidelity for render cost.
type BlurQuality string

const (
	BlurQualityLow    BlurQuality = "low"
	BlurQualityMedium BlurQuality = "medium"
	BlurQualityHigh   BlurQuality = "high"
	BlurQualityUltra  BlurQuality = "ultra"
)

// DistortionType selects the lens or wave distortion.
type DistortionType string

const (
	DistortionFisheye     DistortionType = "fisheye"
	DistortionLens        DistortionType = "lens"
	DistortionPerspective DistortionType = "perspective"
	DistortionWave        DistortionType = "wave"
	DistortionRipple      DistortionType = "ripple"
)

// TimeType selects the time remapping mode.
type TimeType string

const (
	TimeSlow    TimeType = "slow"
	TimeFast    TimeType = "fast"
	TimeReverse TimeType = "reverse"
	TimeFreeze  TimeType = "freeze"
	TimeRamp    TimeType = "ramp"
)

// Interpolation selects how in-between frames are synthesized.
type Interpolation string

const (
	InterpolationLinear      Interpolation = "linear"
	InterpolationOpticalFlow Interpolation = "optical-flow"
	InterpolationFrameBlend  Interpolation = "frame-blend"
)

// CurveChannel names one of the colour-grade curve channels.
type CurveChannel string

const (
	ChannelRed   CurveChannel = "red"
	ChannelGreen CurveChannel = "green"
	ChannelBlue  CurveChannel = "blue"
	ChannelRGB   CurveChannel = "rgb"
)

func oneOf[T ~string](value T, allowed ...T) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}

func validEasing(e Easing) bool {
	return oneOf(e, EaseLinear, EaseIn, EaseOut, EaseInOut, EaseBounce, EaseElastic, EaseBack)
}

func validParticleType(t ParticleType) bool {
	return oneOf(t, ParticleSnow, ParticleRain, ParticleFire, ParticleConfetti, ParticleSmoke, ParticleSparkle, ParticleDust)
}

func validTransitionType(t TransitionType) bool {
	return oneOf(t, TransitionWipe, TransitionZoom, TransitionRotate, TransitionPageTurn, TransitionMorph, TransitionGlitch, TransitionRipple)
}

func validDirection(d Direction) bool {
	return oneOf(d, DirectionLeft, DirectionRight, DirectionUp, DirectionDown, DirectionIn, DirectionOut)
}

func validTrackingType(t TrackingType) bool {
	return oneOf(t, TrackingObject, TrackingFace, TrackingMotion, TrackingStabilization)
}

func validBlurType(t BlurType) bool {
	return oneOf(t, BlurGaussian, BlurMotion, BlurRadial, BlurTiltShift, BlurBokeh)
}

func validBlurQuality(q BlurQuality) bool {
	return oneOf(q, BlurQualityLow, BlurQualityMedium, BlurQualityHigh, BlurQualityUltra)
}

func validDistortionType(t DistortionType) bool {
	return oneOf(t, DistortionFisheye, DistortionLens, DistortionPerspective, DistortionWave, DistortionRipple)
}

func validTimeType(t TimeType) bool {
	return oneOf(t, TimeSlow, TimeFast, TimeReverse, TimeFreeze, TimeRamp)
}

func validInterpolation(i Interpolation) bool {
	return oneOf(i, InterpolationLinear, InterpolationOpticalFlow, InterpolationFrameBlend)
}

// ValidChannel reports whether c names a colour-grade curve channel.
func ValidChannel(c CurveChannel) bool {
	return oneOf(c, ChannelRed, ChannelGreen, ChannelBlue, ChannelRGB)
}
