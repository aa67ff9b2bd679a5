// Package effects models the typed visual and audio treatments the engine
// composes.
//
// An Effect carries the fields every treatment shares (identity, interval,
// enabled flag, intensity, easing, metadata) plus a Params payload. Params is
// a closed sum type with one struct per Kind, so kind-specific accessors are
// type switches and a mismatched update is detected before anything changes.
//
// Creation defaults live in defaults.go; partial changes are expressed as
// per-kind Patch values that serve both as creation overrides and update
// arguments. Preset templates are effects stripped of id and start time.
package effects
