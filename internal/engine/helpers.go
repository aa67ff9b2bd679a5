package engine

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"reelfx/internal/activity"
	"reelfx/internal/effects"
	"reelfx/internal/events"
	"reelfx/internal/faults"
)

// AppendTrackingPoint adds a sample to a tracking effect's path.
func (e *Engine) AppendTrackingPoint(id string, point effects.PathPoint) error {
	const op = "append tracking point"
	if !finite(point.X, point.Y, point.Timestamp) {
		return e.run(op, id, func(*batch) error {
			return faults.Wrap(faults.ErrValidation, op, "tracking point must be finite", nil)
		})
	}
	return e.run(op, id, func(b *batch) error {
		_, after, err := e.registry.Update(id, func(ef *effects.Effect) error {
			tracking, ok := ef.Tracking()
			if !ok {
				return kindMismatch(op, ef, effects.KindTracking)
			}
			tracking.Path = append(tracking.Path, point)
			return nil
		})
		if err != nil {
			return err
		}
		e.pipeline.Cache().InvalidateRange(after.Start, after.End())
		e.record(b, activity.TypeUpdated, id, fmt.Sprintf("tracked point on %s", after.Name),
			map[string]any{"x": point.X, "y": point.Y, "timestamp": point.Timestamp})
		b.emit(events.TrackingUpdated{EffectID: id, Point: point})
		return nil
	})
}

// ApplyStabilization attaches stabilization analysis to a tracking effect of
// type stabilization. The analysis and the time it was applied are kept in
// the effect metadata.
func (e *Engine) ApplyStabilization(id string, analysis map[string]any) error {
	const op = "apply stabilization"
	return e.run(op, id, func(b *batch) error {
		_, after, err := e.registry.Update(id, func(ef *effects.Effect) error {
			tracking, ok := ef.Tracking()
			if !ok {
				return kindMismatch(op, ef, effects.KindTracking)
			}
			if tracking.TrackingType != effects.TrackingStabilization {
				return faults.Wrap(faults.ErrValidation, op,
					fmt.Sprintf("tracking effect %q is %s, want %s", ef.ID, tracking.TrackingType, effects.TrackingStabilization), nil)
			}
			if ef.Metadata == nil {
				ef.Metadata = make(map[string]any, 2)
			}
			ef.Metadata["stabilization"] = effects.CloneMetadata(analysis)
			ef.Metadata["stabilization_applied_at"] = e.now().UTC().Format(time.RFC3339)
			return nil
		})
		if err != nil {
			return err
		}
		e.pipeline.Cache().InvalidateRange(after.Start, after.End())
		e.record(b, activity.TypeApplied, id, fmt.Sprintf("stabilized %s", after.Name), nil)
		b.emit(events.StabilizationApplied{Effect: after})
		return nil
	})
}

// DetectChromaKey samples the key colour from area, stores it on the chroma
// key effect and returns it.
func (e *Engine) DetectChromaKey(id string, area effects.Rect) (string, error) {
	const op = "detect chroma key"
	color := effects.DetectedKeyColor
	err := e.run(op, id, func(b *batch) error {
		_, after, err := e.registry.Update(id, func(ef *effects.Effect) error {
			key, ok := ef.ChromaKey()
			if !ok {
				return kindMismatch(op, ef, effects.KindChromaKey)
			}
			key.KeyColor = color
			if ef.Metadata == nil {
				ef.Metadata = make(map[string]any, 1)
			}
			ef.Metadata["key_sample_area"] = map[string]any{
				"x": area.X, "y": area.Y, "width": area.Width, "height": area.Height,
			}
			return nil
		})
		if err != nil {
			return err
		}
		e.pipeline.Cache().InvalidateRange(after.Start, after.End())
		e.record(b, activity.TypeUpdated, id, fmt.Sprintf("detected key colour %s", color), nil)
		b.emit(events.ChromaKeyDetected{EffectID: id, Color: color})
		return nil
	})
	if err != nil {
		return "", err
	}
	return color, nil
}

// ApplyLUT attaches a lookup table to a colour grade.
func (e *Engine) ApplyLUT(id, lutPath string) error {
	const op = "apply lut"
	lutPath = strings.TrimSpace(lutPath)
	return e.run(op, id, func(b *batch) error {
		_, after, err := e.registry.Update(id, func(ef *effects.Effect) error {
			grade, ok := ef.ColorGrade()
			if !ok {
				return kindMismatch(op, ef, effects.KindColorGrade)
			}
			if lutPath == "" {
				return faults.Wrap(faults.ErrValidation, op, "lut path is required", nil)
			}
			grade.LUT = lutPath
			return nil
		})
		if err != nil {
			return err
		}
		e.pipeline.Cache().InvalidateRange(after.Start, after.End())
		e.record(b, activity.TypeUpdated, id, fmt.Sprintf("applied LUT %s", lutPath), nil)
		b.emit(events.LUTApplied{EffectID: id, LUTPath: lutPath})
		return nil
	})
}

// UpdateCurves replaces one curve channel of a colour grade.
func (e *Engine) UpdateCurves(id string, channel effects.CurveChannel, points []float64) error {
	const op = "update curves"
	return e.run(op, id, func(b *batch) error {
		_, after, err := e.registry.Update(id, func(ef *effects.Effect) error {
			grade, ok := ef.ColorGrade()
			if !ok {
				return kindMismatch(op, ef, effects.KindColorGrade)
			}
			if !effects.ValidChannel(channel) {
				return faults.Wrap(faults.ErrValidation, op, fmt.Sprintf("unknown curve channel %q", channel), nil)
			}
			if !finite(points...) {
				return faults.Wrap(faults.ErrValidation, op, "curve points must be finite", nil)
			}
			if grade.Curves == nil {
				grade.Curves = &effects.Curves{}
			}
			grade.Curves.SetChannel(channel, points)
			return nil
		})
		if err != nil {
			return err
		}
		e.pipeline.Cache().InvalidateRange(after.Start, after.End())
		e.record(b, activity.TypeUpdated, id, fmt.Sprintf("updated %s curve", channel), nil)
		b.emit(events.CurvesUpdated{EffectID: id, Channel: channel, Points: slices.Clone(points)})
		return nil
	})
}
