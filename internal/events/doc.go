// Package events is the engine's notification surface. Every state change is
// described by a typed payload, and a Bus delivers payloads synchronously to
// the handlers registered for their kind.
package events
