// Package preflight provides readiness checks for the filesystem paths and
// settings reelfx depends on.
//
// The CLI "reelfx check" command runs RunAll and prints one status line per
// result. Checks gated by a config toggle are skipped when the feature is off.
package preflight
