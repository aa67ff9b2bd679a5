package faults_test

import (
	"errors"
	"strings"
	"testing"

	"reelfx/internal/faults"
)

type classified struct{}

func (classified) Error() string     { return "custom" }
func (classified) ErrorKind() string { return "throttled" }

func TestWrapPreservesMarker(t *testing.T) {
	cause := errors.New("boom")
	err := faults.Wrap(faults.ErrNotFound, "get effect", "effect \"blur-1\"", cause)
	if !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected ErrNotFound marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "get effect") {
		t.Fatalf("expected operation in message, got %q", err.Error())
	}
}

func TestWrapDefaultsToValidation(t *testing.T) {
	err := faults.Wrap(nil, "", "", nil)
	if !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "engine failure") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want faults.Code
	}{
		{"nil", nil, ""},
		{"not found", faults.NotFound("delete", "effect", "x"), faults.CodeNotFound},
		{"capacity", faults.Wrap(faults.ErrCapacityExceeded, "create layer", "", nil), faults.CodeCapacityExceeded},
		{"mismatch", faults.Wrap(faults.ErrKindMismatch, "apply lut", "", nil), faults.CodeKindMismatch},
		{"validation", faults.Wrap(faults.ErrValidation, "create", "", nil), faults.CodeValidation},
		{"backend", faults.Wrap(faults.ErrBackend, "render frame", "", errors.New("gpu lost")), faults.CodeBackend},
		{"classifier", classified{}, faults.Code("throttled")},
		{"plain", errors.New("plain"), faults.CodeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := faults.CodeOf(tc.err); got != tc.want {
				t.Fatalf("CodeOf = %q, want %q", got, tc.want)
			}
		})
	}
}
