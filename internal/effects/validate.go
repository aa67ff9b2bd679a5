package effects

import (
	"fmt"
	"math"

	"reelfx/internal/faults"
)

const (
	minTimeSpeed = 0.1
	maxTimeSpeed = 10
)

// ValidateTiming checks that start is non-negative and duration positive.
func ValidateTiming(start, duration float64) error {
	switch {
	case math.IsNaN(start) || math.IsInf(start, 0):
		return invalid("start time must be finite")
	case math.IsNaN(duration) || math.IsInf(duration, 0):
		return invalid("duration must be finite")
	case start < 0:
		return invalid(fmt.Sprintf("start time %g must be >= 0", start))
	case duration <= 0:
		return invalid(fmt.Sprintf("duration %g must be > 0", duration))
	}
	return nil
}

// Validate checks the common fields and the kind-specific payload of e.
func Validate(e Effect) error {
	if err := ValidateTiming(e.Start, e.Duration); err != nil {
		return err
	}
	if e.Params == nil {
		return invalid("effect has no parameters")
	}
	if math.IsNaN(e.Intensity) || e.Intensity < 0 || e.Intensity > 1 {
		return invalid(fmt.Sprintf("intensity %g outside 0..1", e.Intensity))
	}
	if e.Easing != "" && !validEasing(e.Easing) {
		return invalid(fmt.Sprintf("unknown easing %q", e.Easing))
	}
	return ValidateParams(e.Params)
}

// ValidateParams checks the kind-specific payload.
func ValidateParams(p Params) error {
	switch v := p.(type) {
	case *Particle:
		if !validParticleType(v.ParticleType) {
			return invalid(fmt.Sprintf("unknown particle type %q", v.ParticleType))
		}
		if v.Count < 0 {
			return invalid("particle count must be >= 0")
		}
		if v.Size.Min > v.Size.Max {
			return invalid("particle size min exceeds max")
		}
	case *Transition:
		if !validTransitionType(v.TransitionType) {
			return invalid(fmt.Sprintf("unknown transition type %q", v.TransitionType))
		}
		if !validDirection(v.Direction) {
			return invalid(fmt.Sprintf("unknown direction %q", v.Direction))
		}
		if !unit(v.Feather) {
			return invalid("feather outside 0..1")
		}
	case *Tracking:
		if !validTrackingType(v.TrackingType) {
			return invalid(fmt.Sprintf("unknown tracking type %q", v.TrackingType))
		}
		if !unit(v.Smoothing) || !unit(v.Confidence) {
			return invalid("smoothing and confidence must be within 0..1")
		}
	case *ChromaKey:
		if v.KeyColor == "" {
			return invalid("key color is required")
		}
		if !unit(v.Tolerance) || !unit(v.Softness) || !unit(v.Despill) {
			return invalid("tolerance, softness and despill must be within 0..1")
		}
	case *ColorGrade:
		if v.Exposure < -5 || v.Exposure > 5 {
			return invalid(fmt.Sprintf("exposure %g outside -5..5", v.Exposure))
		}
		if v.Hue < -180 || v.Hue > 180 {
			return invalid(fmt.Sprintf("hue %g outside -180..180", v.Hue))
		}
	case *Blur:
		if !validBlurType(v.BlurType) {
			return invalid(fmt.Sprintf("unknown blur type %q", v.BlurType))
		}
		if !validBlurQuality(v.Quality) {
			return invalid(fmt.Sprintf("unknown blur quality %q", v.Quality))
		}
		if v.Amount < 0 || v.Amount > 100 {
			return invalid(fmt.Sprintf("blur amount %g outside 0..100", v.Amount))
		}
	case *Distortion:
		if !validDistortionType(v.DistortionType) {
			return invalid(fmt.Sprintf("unknown distortion type %q", v.DistortionType))
		}
	case *TimeRemap:
		if !validTimeType(v.TimeType) {
			return invalid(fmt.Sprintf("unknown time type %q", v.TimeType))
		}
		if v.Speed < minTimeSpeed || v.Speed > maxTimeSpeed {
			return invalid(fmt.Sprintf("speed %g outside %g..%g", v.Speed, minTimeSpeed, float64(maxTimeSpeed)))
		}
		if !validInterpolation(v.Interpolation) {
			return invalid(fmt.Sprintf("unknown interpolation %q", v.Interpolation))
		}
	default:
		return invalid("unsupported effect parameters")
	}
	return nil
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

func invalid(message string) error {
	return faults.Wrap(faults.ErrValidation, "validate effect", message, nil)
}
