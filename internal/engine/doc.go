// Package engine is the effects composition engine: the single entry point
// the editor UI and the CLI drive.
//
// It owns the effect registry, layer manager, preset library, activity log,
// event bus and render pipeline, and enforces the configured limits. Every
// successful mutation appends one activity entry and publishes its events
// after the engine's writer lock is released, so a handler observes the state
// the event describes and may call back into the engine.
//
// Failures are returned as errors wrapping the sentinels in internal/faults.
// Capacity and validation failures also publish an events.Error for UI
// notification. The frame cache is invalidated on write: effect changes evict
// the frames they cover and layer changes clear it.
package engine
