package logging

import (
	"context"
	"log/slog"

	"reelfx/internal/reqctx"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSessionID identifies the editing session a log line belongs to.
	FieldSessionID = "session_id"
	// FieldRequestID correlates the log lines of one frame render.
	FieldRequestID = "request_id"
	// FieldFrame is the frame number being rendered.
	FieldFrame = "frame"
	// FieldEffectID, FieldLayerID and FieldPresetID name the entity an operation touched.
	FieldEffectID = "effect_id"
	FieldLayerID  = "layer_id"
	FieldPresetID = "preset_id"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to an operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := reqctx.SessionIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSessionID, id))
	}
	if id, ok := reqctx.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRequestID, id))
	}
	if frame, ok := reqctx.FrameFromContext(ctx); ok {
		fields = append(fields, slog.Int(FieldFrame, frame))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
