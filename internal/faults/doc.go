// Package faults defines the error kinds shared by every engine component.
//
// Engine operations fail soft: they return the zero value of their result
// together with an error wrapping one of the sentinel markers declared here.
// Callers branch with errors.Is, and the engine maps the same markers to the
// reason codes carried by error events.
package faults
