package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrKindMismatch     = errors.New("kind mismatch")
	ErrValidation       = errors.New("validation error")
	ErrBackend          = errors.New("render backend failure")
)

// Code is the reason code carried by error events.
type Code string

const (
	CodeNotFound         Code = "not_found"
	CodeCapacityExceeded Code = "capacity_exceeded"
	CodeKindMismatch     Code = "kind_mismatch"
	CodeValidation       Code = "validation"
	CodeBackend          Code = "backend"
	CodeUnknown          Code = "unknown"
)

// ErrorClassifier allows errors to declare their own reason code.
type ErrorClassifier interface {
	ErrorKind() string
}

// Wrap builds an error message that includes operation context while tagging it
// with the provided marker. The marker should be one of the exported sentinel
// errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// NotFound reports an unknown effect, layer, or preset reference.
func NotFound(operation, what, id string) error {
	return Wrap(ErrNotFound, operation, fmt.Sprintf("%s %q", what, id), nil)
}

// CodeOf maps an error to its reason code.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		if kind := strings.TrimSpace(classifier.ErrorKind()); kind != "" {
			return Code(kind)
		}
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrCapacityExceeded):
		return CodeCapacityExceeded
	case errors.Is(err, ErrKindMismatch):
		return CodeKindMismatch
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrBackend):
		return CodeBackend
	default:
		return CodeUnknown
	}
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "engine failure"
	}
	return strings.Join(parts, ": ")
}
